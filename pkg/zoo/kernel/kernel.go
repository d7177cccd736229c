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

// Package kernel implements the single entry point through which every
// fact enters a database: AddFact. It updates the relation store,
// propagates the fact across the relevant lattice closure, records a
// justification for every reduction or form it newly establishes, and
// detects contradictions as soon as they arise.
package kernel

import (
	"fmt"

	"github.com/rmzoo-go/rmzoo/pkg/zoo/fact"
	"github.com/rmzoo-go/rmzoo/pkg/zoo/justify"
	"github.com/rmzoo-go/rmzoo/pkg/zoo/lattice"
	"github.com/rmzoo-go/rmzoo/pkg/zoo/registry"
	"github.com/rmzoo-go/rmzoo/pkg/zoo/store"
)

// ContradictionError reports that a newly justified fact directly
// contradicts a fact already on file.
type ContradictionError struct {
	Fact, Opposite           fact.Fact
	FactProof, OppositeProof string
}

func (e *ContradictionError) Error() string {
	return fmt.Sprintf("the following facts are contradictory\n\n%s\n\n%s", e.FactProof, e.OppositeProof)
}

// Database bundles the registry, relation store, and justification store
// that together make up a working copy of the zoo.
type Database struct {
	Registry *registry.Registry
	Store    *store.Store
	Justify  *justify.Store
}

// New creates an empty database.
func New() *Database {
	return &Database{
		Registry: registry.New(),
		Store:    store.New(),
		Justify:  justify.New(),
	}
}

// AddFact asserts f with justification jst. It returns true if this
// changed the database: either f had no prior justification, or (when
// proof-complexity minimization is enabled) jst is strictly shorter than
// the one on file. If f contradicts a fact already on file, it returns a
// *ContradictionError — the caller is responsible for deciding whether
// that is fatal; ingestion and the derivation driver both treat it as
// fatal, per §7.
func (db *Database) AddFact(f fact.Fact, jst justify.Justification) (bool, error) {
	if !db.Justify.Add(f, jst) {
		return false, nil
	}

	var err error

	switch f.Op.Kind {
	case fact.Implies:
		err = db.propagateImplies(f)
	case fact.NotImplies:
		err = db.propagateNotImplies(f)
	case fact.Equivalent:
		_, err = db.propagateEquivalent(f)
	case fact.Conservative:
		err = db.propagateConservative(f)
	case fact.NonConservative:
		err = db.propagateNonConservative(f)
	default:
		err = fmt.Errorf("unrecognized operator kind %d", f.Op.Kind)
	}

	return true, err
}

// DeclareForm records that principal a is of syntactic form f, folding in
// the stronger-closure: a statement of a simple form is trivially also of
// every more complex form. A form declaration is a per-principle
// attribute (spec's pseudo-operator "form"), not a binary relation
// between two principals, so unlike AddFact it is not itself entered into
// the justification store — it is read directly by the propagation and
// derivation rules that need a principal's declared form.
func (db *Database) DeclareForm(a string, f lattice.Form) {
	db.Store.AddForm(a, f)
}

// trivialConservation is the citation attached to the fact (b, f-c, a)
// recorded whenever a RCA-reduces to b: a weaker principle is trivially
// conservative, in every syntactic form, over a stronger one.
const trivialConservation = "trivial conservation of a weaker principle over a stronger"

// contrapositiveTrivialConservation is the corresponding citation on the
// non-implication side.
const contrapositiveTrivialConservation = "non-conservation from non-implication"

// formConservativeImplication is the citation attached to the implication
// derived when a conservative extension is itself of the relevant form.
const formConservativeImplication = "a conservative extension of its own syntactic form is implied by the weaker principle"

// formNonConservativeImplication is the contrapositive of the above.
const formNonConservativeImplication = "contrapositive of trivial conservation"

func (db *Database) propagateImplies(f fact.Fact) error {
	r := f.Op.Reduction
	db.Store.AddReduction(f.A, r, f.B)

	for _, x := range lattice.Reduction(0).Iterate(lattice.Reduction(0).Weaker(r)) {
		weaker := fact.New(f.A, fact.ImpliesOp(x), f.B)
		if x != r {
			db.Justify.Add(weaker, justify.Derive(justify.FactRef(f)))
		}

		if lattice.Reduction(0).IsPresent(x, db.Store.NotImplies(f.A, f.B)) {
			return db.contradiction(weaker, fact.New(f.A, fact.NotImpliesOp(x), f.B))
		}

		if x == lattice.RCA {
			if err := db.addEveryForm(f.B, f.A, trivialConservation); err != nil {
				return err
			}
		}
	}

	return nil
}

func (db *Database) propagateNotImplies(f fact.Fact) error {
	r := f.Op.Reduction
	db.Store.AddNonReduction(f.A, r, f.B)

	for _, x := range lattice.Reduction(0).Iterate(lattice.Reduction(0).Stronger(r)) {
		stronger := fact.New(f.A, fact.NotImpliesOp(x), f.B)
		if x != r {
			db.Justify.Add(stronger, justify.Derive(justify.FactRef(f)))
		}

		if lattice.Reduction(0).IsPresent(x, db.Store.Implies(f.A, f.B)) {
			return db.contradiction(fact.New(f.A, fact.ImpliesOp(x), f.B), stronger)
		}

		if x == lattice.RCA {
			for _, frm := range lattice.Form(0).Iterate(db.Store.Form(f.B)) {
				if _, err := db.AddFact(fact.New(f.B, fact.NonConservativeOp(frm), f.A),
					justify.Derive(justify.FactRef(f), justify.TextRef(contrapositiveTrivialConservation))); err != nil {
					return err
				}
			}
		}
	}

	return nil
}

// addEveryForm records (dst, f-c, src) for every syntactic form f.
func (db *Database) addEveryForm(dst, src, citation string) error {
	for _, frm := range lattice.Form(0).Iterate(lattice.AllForms) {
		if _, err := db.AddFact(fact.New(dst, fact.ConservativeOp(frm), src), justify.Cite(citation)); err != nil {
			return err
		}
	}

	return nil
}

// propagateEquivalent records the symmetric partner fact, folds the
// weaker-closure of r into both directed equivalences, and cites both
// directed implications from the top reduction down.
func (db *Database) propagateEquivalent(f fact.Fact) (bool, error) {
	r := f.Op.Reduction
	db.Store.AddEquivalent(f.A, r, f.B)
	db.Store.AddEquivalent(f.B, r, f.A)

	changed, err := db.AddFact(fact.New(f.B, fact.EquivalentOp(r), f.A), justify.Derive(justify.FactRef(f)))
	if err != nil {
		return changed, err
	}

	for _, x := range lattice.Reduction(0).Iterate(lattice.Reduction(0).Weaker(r)) {
		if x == r {
			continue
		}

		ok, err := db.AddFact(fact.New(f.A, fact.EquivalentOp(x), f.B), justify.Derive(justify.FactRef(f)))
		changed = changed || ok
		if err != nil {
			return changed, err
		}

		ok, err = db.AddFact(fact.New(f.B, fact.EquivalentOp(x), f.A), justify.Derive(justify.FactRef(f)))
		changed = changed || ok
		if err != nil {
			return changed, err
		}
	}

	forward, err := db.AddFact(fact.New(f.A, fact.ImpliesOp(r), f.B), justify.Derive(justify.FactRef(f)))
	changed = changed || forward
	if err != nil {
		return changed, err
	}

	backward, err := db.AddFact(fact.New(f.B, fact.ImpliesOp(r), f.A), justify.Derive(justify.FactRef(f)))
	changed = changed || backward

	return changed, err
}

func (db *Database) propagateConservative(f fact.Fact) error {
	frm := f.Op.Form
	db.Store.AddConservative(f.A, frm, f.B)

	for _, x := range lattice.Form(0).Iterate(lattice.Form(0).Weaker(frm)) {
		weaker := fact.New(f.A, fact.ConservativeOp(x), f.B)
		if x != frm {
			db.Justify.Add(weaker, justify.Derive(justify.FactRef(f)))
		}

		if lattice.Form(0).IsPresent(x, db.Store.NonConservative(f.A, f.B)) {
			return db.contradiction(weaker, fact.New(f.A, fact.NonConservativeOp(x), f.B))
		}

		if lattice.Form(0).IsPresent(x, db.Store.Form(f.A)) {
			if _, err := db.AddFact(fact.New(f.B, fact.ImpliesOp(lattice.RCA), f.A),
				justify.Derive(justify.FactRef(f), justify.TextRef(formConservativeImplication))); err != nil {
				return err
			}
		}
	}

	return nil
}

func (db *Database) propagateNonConservative(f fact.Fact) error {
	frm := f.Op.Form
	db.Store.AddNonConservative(f.A, frm, f.B)

	for _, x := range lattice.Form(0).Iterate(lattice.Form(0).Stronger(frm)) {
		stronger := fact.New(f.A, fact.NonConservativeOp(x), f.B)
		if x != frm {
			db.Justify.Add(stronger, justify.Derive(justify.FactRef(f)))
		}

		if lattice.Form(0).IsPresent(x, db.Store.Conservative(f.A, f.B)) {
			return db.contradiction(fact.New(f.A, fact.ConservativeOp(x), f.B), stronger)
		}
	}

	_, err := db.AddFact(fact.New(f.B, fact.NotImpliesOp(lattice.RCA), f.A),
		justify.Derive(justify.FactRef(f), justify.TextRef(formNonConservativeImplication)))

	return err
}

func (db *Database) contradiction(a, b fact.Fact) error {
	aProof, _ := db.Justify.Render(a)
	bProof, _ := db.Justify.Render(b)

	return &ContradictionError{Fact: a, Opposite: b, FactProof: aProof, OppositeProof: bProof}
}
