// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

// Package query answers single-fact lookups against a derived database,
// including conjunctions that were never themselves registered but are
// equivalent, at the operator's reducibility, to one that was.
package query

import (
	"fmt"
	"strings"

	"github.com/bits-and-blooms/bitset"
	"github.com/rmzoo-go/rmzoo/pkg/zoo/fact"
	"github.com/rmzoo-go/rmzoo/pkg/zoo/justify"
	"github.com/rmzoo-go/rmzoo/pkg/zoo/kernel"
	"github.com/rmzoo-go/rmzoo/pkg/zoo/lattice"
	"github.com/rmzoo-go/rmzoo/pkg/zoo/registry"
)

// Result is the outcome of resolving a single query.
type Result struct {
	// Hit reports whether the fact (or an equivalent substitution of it)
	// was found on file.
	Hit bool

	// Proof is the rendered justification tree, present only when Hit.
	// It is prefixed with the rendered equivalence bridges for any side
	// that needed conjunction substitution.
	Proof string

	// Advice is a human-readable explanation of why the query missed:
	// which side (if either) is entirely unknown, and whether that side
	// is a conjunction of otherwise-known principles worth registering
	// with --force.
	Advice string

	// Contradiction is the rendered proof of the opposite fact, present
	// only when a miss's opposite-operator probe found one. This should
	// never happen against a database derived without error.
	Contradiction string
}

// Resolve answers the query "a op b" against db. Conjunctions on either
// side that were never explicitly registered are searched for an
// equivalent registered conjunction at the operator's reducibility
// (Conservative/NonConservative always search at RCA); a found
// substitution's bridging equivalence is synthesized into the
// justification store so it renders alongside the proof, mirroring
// rmzoo.py's queryDatabase/knownEquivalent.
func Resolve(db *kernel.Database, a string, op fact.Op, b string) (*Result, error) {
	r := reductionFor(op)

	aPrime, aKnown := resolveSide(db, a, r)
	bPrime, bKnown := resolveSide(db, b, r)

	if !aKnown || !bKnown {
		return &Result{Advice: unknownAdvice(db, a, b, aKnown, bKnown)}, nil
	}

	target := fact.New(aPrime, op, bPrime)
	if db.Justify.Has(target) {
		proof, err := renderWithBridges(db, a, aPrime, b, bPrime, r, target)
		if err != nil {
			return nil, err
		}

		return &Result{Hit: true, Proof: proof}, nil
	}

	contradiction, err := probeContradiction(db, aPrime, op, bPrime)
	if err != nil {
		return nil, err
	}

	return &Result{Contradiction: contradiction}, nil
}

// reductionFor returns the reduction a query should search equivalence
// classes under: the conservation operators always compare principals
// under RCA-equivalence, per rmzoo.py's queryDatabase.
func reductionFor(op fact.Op) lattice.Reduction {
	switch op.Kind {
	case fact.Conservative, fact.NonConservative:
		return lattice.RCA
	default:
		return op.Reduction
	}
}

// resolveSide returns the registered name to query in place of name, and
// whether resolution succeeded. If name is already registered it is
// returned unchanged; otherwise its conjuncts are substituted for
// r-equivalent principals until a registered combination is found.
func resolveSide(db *kernel.Database, name string, r lattice.Reduction) (string, bool) {
	if db.Registry.Has(name) {
		return name, true
	}

	if !db.Registry.AllConjunctsKnown(name) {
		return "", false
	}

	conjuncts := registry.Conjuncts(name)
	classes := make([][]string, len(conjuncts))

	for i, p := range conjuncts {
		classes[i] = equivalenceClass(db, p, r)
	}

	combo := make([]string, len(conjuncts))

	found := searchCombination(db, classes, combo, 0)
	if found == "" {
		return "", false
	}

	if found != name {
		bridgeJustification(db, conjuncts, combo, r, name, found)
	}

	return found, true
}

// equivalenceClass returns every principal known r-equivalent to p
// (including p itself, once seeded reflexivity has run), as a
// name list backed by a bitset over the registry's principal-id space —
// the variable-size per-(principal, reduction) equivalence class spec's
// design note calls for.
func equivalenceClass(db *kernel.Database, p string, r lattice.Reduction) []string {
	principals := db.Registry.List()
	set := bitset.New(uint(len(principals)))

	for i, q := range principals {
		if lattice.Reduction(0).IsPresent(r, db.Store.Equivalent(p, q)) {
			set.Set(uint(i))
		}
	}

	out := make([]string, 0, set.Count())
	for i, ok := set.NextSet(0); ok; i, ok = set.NextSet(i + 1) {
		out = append(out, principals[i])
	}

	return out
}

// searchCombination walks the Cartesian product of classes depth-first,
// accepting the first combination whose canonical join is registered —
// matching rmzoo.py's knownEquivalent, which also accepts the first hit
// from itertools.product rather than searching for a best one.
func searchCombination(db *kernel.Database, classes [][]string, combo []string, idx int) string {
	if idx == len(classes) {
		if canonical, ok := db.Registry.JoinPrinciples(combo...); ok {
			return canonical
		}

		return ""
	}

	for _, q := range classes[idx] {
		combo[idx] = q

		if found := searchCombination(db, classes, combo, idx+1); found != "" {
			return found
		}
	}

	return ""
}

// bridgeJustification records a provisional equivalence fact between name
// and found, citing the per-conjunct equivalences that justify the
// substitution, without running it through the kernel's lattice-closure
// propagation: this is a rendering aid for one query, not a new fact for
// the database to reason from further.
func bridgeJustification(db *kernel.Database, conjuncts, combo []string, r lattice.Reduction, name, found string) {
	refs := make([]justify.Ref, 0, len(conjuncts))

	for i, p := range conjuncts {
		if p != combo[i] {
			refs = append(refs, justify.FactRef(fact.New(p, fact.EquivalentOp(r), combo[i])))
		}
	}

	db.Justify.Add(fact.New(name, fact.EquivalentOp(r), found), justify.Derive(refs...))
}

// renderWithBridges renders target's proof, prefixed by the rendered
// equivalence bridges for whichever side needed conjunction substitution.
func renderWithBridges(db *kernel.Database, a, aPrime, b, bPrime string, r lattice.Reduction, target fact.Fact) (string, error) {
	var out strings.Builder

	if a != aPrime {
		bridge, err := db.Justify.Render(fact.New(a, fact.EquivalentOp(r), aPrime))
		if err != nil {
			return "", err
		}

		out.WriteString(fmt.Sprintf("NOTE: %s is not a known principle, but is equivalent to %s\n", a, aPrime))
		out.WriteString(bridge)
		out.WriteString("\n")
	}

	if b != bPrime {
		bridge, err := db.Justify.Render(fact.New(b, fact.EquivalentOp(r), bPrime))
		if err != nil {
			return "", err
		}

		out.WriteString(fmt.Sprintf("NOTE: %s is not a known principle, but is equivalent to %s\n", b, bPrime))
		out.WriteString(bridge)
		out.WriteString("\n")
	}

	proof, err := db.Justify.Render(target)
	if err != nil {
		return "", err
	}

	out.WriteString(proof)

	return out.String(), nil
}

// probeContradiction looks for the opposite fact on a miss: if found, the
// database is inconsistent, which should never happen after a clean
// derivation. Mirrors rmzoo.py's post-miss opposite-operator probe,
// including its extra reverse-direction check for Equivalent queries.
func probeContradiction(db *kernel.Database, aPrime string, op fact.Op, bPrime string) (string, error) {
	if opp, ok := op.Opposite(); ok {
		target := fact.New(aPrime, opp, bPrime)
		if db.Justify.Has(target) {
			return db.Justify.Render(target)
		}
	}

	if op.Kind == fact.Equivalent {
		reverse := fact.New(bPrime, fact.NotImpliesOp(op.Reduction), aPrime)
		if db.Justify.Has(reverse) {
			return db.Justify.Render(reverse)
		}
	}

	return "", nil
}

// unknownAdvice renders the error message rmzoo.py's queryDatabase builds
// when one or both sides fail to resolve: which side is unknown, and
// whether it is a conjunction of otherwise-known principles worth
// re-running with --force.
func unknownAdvice(db *kernel.Database, a, b string, aKnown, bKnown bool) string {
	var out strings.Builder

	switch {
	case !aKnown && !bKnown:
		fmt.Fprintf(&out, "%s and %s are unknown principles.", a, b)
	case !aKnown:
		fmt.Fprintf(&out, "%s is an unknown principle.", a)
	case !bKnown:
		fmt.Fprintf(&out, "%s is an unknown principle.", b)
	}

	aConjunct := !aKnown && db.Registry.AllConjunctsKnown(a)
	bConjunct := !bKnown && db.Registry.AllConjunctsKnown(b)

	switch {
	case aConjunct && bConjunct:
		fmt.Fprintf(&out, "\n\tHOWEVER: %s and %s are conjunctions of known principles; try running with --force.", a, b)
	case aConjunct && bKnown:
		fmt.Fprintf(&out, "\n\tHOWEVER: %s is a conjunction of known principles; try running with --force.", a)
	case bConjunct && aKnown:
		fmt.Fprintf(&out, "\n\tHOWEVER: %s is a conjunction of known principles; try running with --force.", b)
	}

	return out.String()
}
