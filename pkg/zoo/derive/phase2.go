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
package derive

import (
	"fmt"

	"github.com/rmzoo-go/rmzoo/pkg/zoo/fact"
	"github.com/rmzoo-go/rmzoo/pkg/zoo/justify"
	"github.com/rmzoo-go/rmzoo/pkg/zoo/kernel"
	"github.com/rmzoo-go/rmzoo/pkg/zoo/lattice"
)

// phase2 runs the negative-closure loop to a fixpoint, following
// rmupdater.py's single-flag handling of its second deriveInferences
// loop: every rule reruns each round until none of them find anything new.
func phase2(db *kernel.Database, principals []string) (int, error) {
	dirty := true
	rounds := 0

	for dirty {
		rounds++
		dirty = false

		ch, err := contrapositiveTransitivityReduction(db, principals)
		if err != nil {
			return rounds, err
		}
		dirty = dirty || ch

		ch, err = contrapositiveConjunction(db, principals)
		if err != nil {
			return rounds, err
		}
		dirty = dirty || ch

		ch, err = contrapositiveConservation(db, principals)
		if err != nil {
			return rounds, err
		}
		dirty = dirty || ch

		ch, err = contrapositiveTransitivityForm(db, principals)
		if err != nil {
			return rounds, err
		}
		dirty = dirty || ch

		ch, err = definitionOfNonConservation(db, principals)
		if err != nil {
			return rounds, err
		}
		dirty = dirty || ch

		ch, err = liftNonConservation(db, principals)
		if err != nil {
			return rounds, err
		}
		dirty = dirty || ch
	}

	return rounds, nil
}

// contrapositiveTransitivityReduction is the contrapositive of
// transitiveClosureReduction over implies: if a r-> b held together with
// b r-> c, transitivity would force a r-> c, so a r-> b and a r-|> c force
// b r-|> c, and likewise for the other leg. Grounded on rmupdater.py's
// nonImplicationClosure.
func contrapositiveTransitivityReduction(db *kernel.Database, principals []string) (bool, error) {
	changed := false

	for _, a := range principals {
		for _, b := range principals {
			if b == a {
				continue
			}

			ab := db.Store.Implies(a, b)
			if ab == lattice.None {
				continue
			}

			for _, c := range principals {
				if c == a || c == b {
					continue
				}

				bc := ab & db.Store.NotImplies(a, c)
				for _, x := range lattice.Reduction(0).Iterate(bc) {
					ok, err := db.AddFact(fact.New(b, fact.NotImpliesOp(x), c), justify.Derive(
						justify.FactRef(fact.New(a, fact.ImpliesOp(x), b)),
						justify.FactRef(fact.New(a, fact.NotImpliesOp(x), c)),
					))
					if err != nil {
						return changed, err
					}
					changed = changed || ok
				}

				ca := ab & db.Store.NotImplies(c, b)
				for _, x := range lattice.Reduction(0).Iterate(ca) {
					ok, err := db.AddFact(fact.New(c, fact.NotImpliesOp(x), a), justify.Derive(
						justify.FactRef(fact.New(a, fact.ImpliesOp(x), b)),
						justify.FactRef(fact.New(c, fact.NotImpliesOp(x), b)),
					))
					if err != nil {
						return changed, err
					}
					changed = changed || ok
				}
			}
		}
	}

	return changed, nil
}

// contrapositiveConjunction records a r-|> b whenever a r-> c and a r-|>
// (b+c): a is known to reach c, but not the conjunction of b and c, so it
// cannot be reaching b either. Grounded on rmupdater.py's
// conjunctionSplit.
func contrapositiveConjunction(db *kernel.Database, principals []string) (bool, error) {
	changed := false

	for _, b := range principals {
		for _, c := range principals {
			if c == b {
				continue
			}

			bc, ok := db.Registry.JoinPrinciples(b, c)
			if !ok {
				continue
			}

			for _, a := range principals {
				split := db.Store.NotImplies(a, bc) & db.Store.Implies(a, c)

				for _, x := range lattice.Reduction(0).Iterate(split) {
					ok, err := db.AddFact(fact.New(a, fact.NotImpliesOp(x), b), justify.Derive(
						justify.FactRef(fact.New(a, fact.NotImpliesOp(x), bc)),
						justify.FactRef(fact.New(a, fact.ImpliesOp(x), c)),
					))
					if err != nil {
						return changed, err
					}
					changed = changed || ok
				}
			}
		}
	}

	return changed, nil
}

// contrapositiveConservation records a RCA-|> b whenever c RCA-|> b, a is
// F-conservative over c, and b is of form F: the contrapositive of
// definitionOfConservation. Grounded on rmupdater.py's
// conservativeClosure.
func contrapositiveConservation(db *kernel.Database, principals []string) (bool, error) {
	changed := false

	for _, c := range principals {
		for _, b := range principals {
			if b == c {
				continue
			}

			if !lattice.Reduction(0).IsPresent(lattice.RCA, db.Store.NotImplies(c, b)) {
				continue
			}

			for _, a := range principals {
				if a == c {
					continue
				}

				frms := db.Store.Form(b) & db.Store.Conservative(a, c)
				if frms == lattice.NoForm {
					continue
				}

				frm := lattice.Form(0).Strongest(frms)

				ok, err := db.AddFact(fact.New(a, fact.NotImpliesOp(lattice.RCA), b), justify.Derive(
					justify.FactRef(fact.New(c, fact.NotImpliesOp(lattice.RCA), b)),
					justify.FactRef(fact.New(a, fact.ConservativeOp(frm), c)),
					justify.TextRef(fmt.Sprintf("%s is of form %s", b, frm)),
				))
				if err != nil {
					return changed, err
				}
				changed = changed || ok
			}
		}
	}

	return changed, nil
}

// contrapositiveTransitivityForm is the contrapositive of
// transitiveClosureForm over the conservative relation: a F-c b and b F-c
// c would force a F-c c by transitivity, so a F-c b together with a F-nc
// c forces b F-nc c, and likewise for the other leg.
func contrapositiveTransitivityForm(db *kernel.Database, principals []string) (bool, error) {
	changed := false

	for _, a := range principals {
		for _, b := range principals {
			if b == a {
				continue
			}

			ab := db.Store.Conservative(a, b)
			if ab == lattice.NoForm {
				continue
			}

			for _, c := range principals {
				if c == a || c == b {
					continue
				}

				bc := ab & db.Store.NonConservative(a, c)
				for _, x := range lattice.Form(0).Iterate(bc) {
					ok, err := db.AddFact(fact.New(b, fact.NonConservativeOp(x), c), justify.Derive(
						justify.FactRef(fact.New(a, fact.ConservativeOp(x), b)),
						justify.FactRef(fact.New(a, fact.NonConservativeOp(x), c)),
					))
					if err != nil {
						return changed, err
					}
					changed = changed || ok
				}

				ca := ab & db.Store.NonConservative(c, b)
				for _, x := range lattice.Form(0).Iterate(ca) {
					ok, err := db.AddFact(fact.New(c, fact.NonConservativeOp(x), a), justify.Derive(
						justify.FactRef(fact.New(a, fact.ConservativeOp(x), b)),
						justify.FactRef(fact.New(c, fact.NonConservativeOp(x), b)),
					))
					if err != nil {
						return changed, err
					}
					changed = changed || ok
				}
			}
		}
	}

	return changed, nil
}

// definitionOfNonConservation records a F-nc b whenever a RCA-> c, b
// RCA-|> c, and c is of form F: any extension reaching c that b cannot
// reach is, by definition, not F-conservative over b. Grounded on
// rmupdater.py's extractNonConservation.
func definitionOfNonConservation(db *kernel.Database, principals []string) (bool, error) {
	changed := false

	for _, c := range principals {
		forms := db.Store.Form(c)
		if forms == lattice.NoForm {
			continue
		}

		for _, a := range principals {
			if a == c || !lattice.Reduction(0).IsPresent(lattice.RCA, db.Store.Implies(a, c)) {
				continue
			}

			for _, b := range principals {
				if b == a || b == c {
					continue
				}

				if !lattice.Reduction(0).IsPresent(lattice.RCA, db.Store.NotImplies(b, c)) {
					continue
				}

				for _, x := range lattice.Form(0).Iterate(forms) {
					ok, err := db.AddFact(fact.New(a, fact.NonConservativeOp(x), b), justify.Derive(
						justify.FactRef(fact.New(a, fact.ImpliesOp(lattice.RCA), c)),
						justify.FactRef(fact.New(b, fact.NotImpliesOp(lattice.RCA), c)),
						justify.TextRef(fmt.Sprintf("%s is of form %s", c, x)),
					))
					if err != nil {
						return changed, err
					}
					changed = changed || ok
				}
			}
		}
	}

	return changed, nil
}

// liftNonConservation is the contrapositive of liftConservation: if c
// RCA-> a and a F-nc b, then c cannot have been F-conservative over b
// either (else a would have inherited it); symmetrically, if b RCA-> c and
// a F-nc b, then a cannot be F-conservative over c.
func liftNonConservation(db *kernel.Database, principals []string) (bool, error) {
	changed := false

	for _, c := range principals {
		for _, a := range principals {
			if a == c {
				continue
			}

			caRCA := lattice.Reduction(0).IsPresent(lattice.RCA, db.Store.Implies(c, a))

			for _, b := range principals {
				if b == a || b == c {
					continue
				}

				if caRCA {
					for _, x := range lattice.Form(0).Iterate(db.Store.NonConservative(a, b)) {
						ok, err := db.AddFact(fact.New(c, fact.NonConservativeOp(x), b), justify.Derive(
							justify.FactRef(fact.New(c, fact.ImpliesOp(lattice.RCA), a)),
							justify.FactRef(fact.New(a, fact.NonConservativeOp(x), b)),
						))
						if err != nil {
							return changed, err
						}
						changed = changed || ok
					}
				}

				if lattice.Reduction(0).IsPresent(lattice.RCA, db.Store.Implies(b, c)) {
					for _, x := range lattice.Form(0).Iterate(db.Store.NonConservative(a, b)) {
						ok, err := db.AddFact(fact.New(a, fact.NonConservativeOp(x), c), justify.Derive(
							justify.FactRef(fact.New(b, fact.ImpliesOp(lattice.RCA), c)),
							justify.FactRef(fact.New(a, fact.NonConservativeOp(x), b)),
						))
						if err != nil {
							return changed, err
						}
						changed = changed || ok
					}
				}
			}
		}
	}

	return changed, nil
}
