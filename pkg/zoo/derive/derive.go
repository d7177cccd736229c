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

// Package derive computes the deductive closure of a database: it seeds
// the trivial facts every principle carries, then runs two dirty-flag
// fixpoint loops over the registered principles (in their fixed sorted
// order) until no further fact can be derived. Phase 1 grows the positive
// relations (implication, equivalence, conservation); phase 2 grows their
// negative counterparts (non-implication, non-conservation) from
// contrapositives of the phase 1 rules.
package derive

import (
	"github.com/rmzoo-go/rmzoo/pkg/zoo/fact"
	"github.com/rmzoo-go/rmzoo/pkg/zoo/internal/diag"
	"github.com/rmzoo-go/rmzoo/pkg/zoo/justify"
	"github.com/rmzoo-go/rmzoo/pkg/zoo/kernel"
	"github.com/rmzoo-go/rmzoo/pkg/zoo/lattice"
	"github.com/rmzoo-go/rmzoo/pkg/zoo/registry"
)

// seedReflexivity is the citation for every "a r<-> a", "a r-> a" and
// "a f-c a" fact recorded before closure begins.
const seedReflexivity = "every principle trivially reduces to, and is conservative over, itself"

// seedBottom is the citation for "a r-> RCA", recording RCA as the bottom
// of the reducibility lattice.
const seedBottom = "RCA is the weakest principle in the zoo"

// seedConjunctionWeakening is the citation for "a r-> b" when b's
// conjuncts are a strict subset of a's.
const seedConjunctionWeakening = "a conjunction trivially implies any sub-conjunction of its conjuncts"

// Run computes the full deductive closure of db: it seeds the trivial
// facts, then runs phase 1 (positive closure) and phase 2 (negative
// closure) to a fixpoint. The principal iteration order is fixed for the
// whole run, taken once from the registry's sorted list, per the
// database's determinism requirement.
func Run(db *kernel.Database) error {
	principals := db.Registry.List()

	sw := diag.Start("seed")
	if err := seed(db, principals); err != nil {
		return err
	}
	sw.Done(0)

	sw = diag.Start("positive closure")
	rounds, err := phase1(db, principals)
	sw.Done(rounds)
	if err != nil {
		return err
	}

	sw = diag.Start("negative closure")
	rounds, err = phase2(db, principals)
	sw.Done(rounds)

	return err
}

func seed(db *kernel.Database, principals []string) error {
	for _, a := range principals {
		for _, r := range lattice.Reduction(0).Iterate(lattice.AllReductions) {
			if _, err := db.AddFact(fact.New(a, fact.EquivalentOp(r), a), justify.Cite(seedReflexivity)); err != nil {
				return err
			}
		}

		for _, f := range lattice.Form(0).Iterate(lattice.AllForms) {
			if _, err := db.AddFact(fact.New(a, fact.ConservativeOp(f), a), justify.Cite(seedReflexivity)); err != nil {
				return err
			}
		}

		for _, r := range lattice.Reduction(0).Iterate(lattice.AllReductions) {
			if _, err := db.AddFact(fact.New(a, fact.ImpliesOp(r), "RCA"), justify.Cite(seedBottom)); err != nil {
				return err
			}
		}
	}

	if err := seedConjunctions(db, principals); err != nil {
		return err
	}

	return nil
}

// seedConjunctions records, for every pair of registered principles where
// b's conjuncts are a strict, known subset of a's, that a trivially
// implies b via every reduction.
func seedConjunctions(db *kernel.Database, principals []string) error {
	for _, a := range principals {
		partsA := conjunctSet(a)
		if len(partsA) < 2 {
			continue
		}

		for _, b := range principals {
			if a == b {
				continue
			}

			partsB := conjunctSet(b)
			if len(partsB) >= len(partsA) || !subsetOf(partsB, partsA) {
				continue
			}

			for _, r := range lattice.Reduction(0).Iterate(lattice.AllReductions) {
				if _, err := db.AddFact(fact.New(a, fact.ImpliesOp(r), b), justify.Cite(seedConjunctionWeakening)); err != nil {
					return err
				}
			}
		}
	}

	return nil
}

func conjunctSet(name string) map[string]struct{} {
	out := make(map[string]struct{})
	for _, p := range registry.Conjuncts(name) {
		out[p] = struct{}{}
	}

	return out
}

func subsetOf(small, big map[string]struct{}) bool {
	for p := range small {
		if _, ok := big[p]; !ok {
			return false
		}
	}

	return true
}
