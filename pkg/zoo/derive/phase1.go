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
	"github.com/rmzoo-go/rmzoo/pkg/zoo/registry"
)

// phase1 runs the positive-closure loop to a fixpoint: three dirty flags
// (equivalence, implication, conservation) gate which rules re-run each
// round, following rmupdater.py's deriveInferences outer loop. It returns
// the number of rounds taken.
func phase1(db *kernel.Database, principals []string) (int, error) {
	equiv, impl, cons := true, true, true
	rounds := 0

	for equiv || impl || cons {
		rounds++
		eo, io, co := equiv, impl, cons
		equiv, impl, cons = false, false, false

		if io {
			ch, err := extractEquivalences(db, principals)
			if err != nil {
				return rounds, err
			}
			equiv = equiv || ch
		}

		if eo {
			ch, err := transitiveClosureReduction(db, principals, db.Store.Equivalent, fact.EquivalentOp)
			if err != nil {
				return rounds, err
			}
			equiv = equiv || ch
		}

		if io {
			ch, err := transitiveClosureReduction(db, principals, db.Store.Implies, fact.ImpliesOp)
			if err != nil {
				return rounds, err
			}
			impl = impl || ch

			ch, err = unifyOverConjunctions(db, principals)
			if err != nil {
				return rounds, err
			}
			impl = impl || ch
		}

		if eo || io || co {
			ch, err := definitionOfConservation(db, principals)
			if err != nil {
				return rounds, err
			}
			impl = impl || ch
		}

		if co {
			ch, err := transitiveClosureForm(db, principals, db.Store.Conservative, fact.ConservativeOp)
			if err != nil {
				return rounds, err
			}
			cons = cons || ch
		}

		if eo || io || co {
			ch, err := liftConservation(db, principals)
			if err != nil {
				return rounds, err
			}
			cons = cons || ch
		}
	}

	return rounds, nil
}

// extractEquivalences records a r<-> b wherever a r-> b and b r-> a have
// both already been established.
func extractEquivalences(db *kernel.Database, principals []string) (bool, error) {
	changed := false

	for _, a := range principals {
		for _, b := range principals {
			if a == b {
				continue
			}

			mutual := db.Store.Implies(a, b) & db.Store.Implies(b, a)

			for _, r := range lattice.Reduction(0).Iterate(mutual) {
				ok, err := db.AddFact(fact.New(a, fact.EquivalentOp(r), b), justify.Derive(
					justify.FactRef(fact.New(a, fact.ImpliesOp(r), b)),
					justify.FactRef(fact.New(b, fact.ImpliesOp(r), a)),
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

// transitiveClosureReduction runs a single Floyd-Warshall relaxation pass
// over a reduction-valued relation indexed by ordered principal pairs,
// used for both implication and equivalence.
func transitiveClosureReduction(
	db *kernel.Database,
	principals []string,
	get func(a, b string) lattice.Reduction,
	op func(lattice.Reduction) fact.Op,
) (bool, error) {
	changed := false

	for _, c := range principals {
		for _, a := range principals {
			if a == c {
				continue
			}

			ac := get(a, c)
			if ac == lattice.None {
				continue
			}

			for _, b := range principals {
				if b == a || b == c {
					continue
				}

				through := ac & get(c, b)

				for _, x := range lattice.Reduction(0).Iterate(through) {
					ok, err := db.AddFact(fact.New(a, op(x), b), justify.Derive(
						justify.FactRef(fact.New(a, op(x), c)),
						justify.FactRef(fact.New(c, op(x), b)),
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

// transitiveClosureForm is transitiveClosureReduction's form-valued
// counterpart, used for the conservative relation.
func transitiveClosureForm(
	db *kernel.Database,
	principals []string,
	get func(a, b string) lattice.Form,
	op func(lattice.Form) fact.Op,
) (bool, error) {
	changed := false

	for _, c := range principals {
		for _, a := range principals {
			if a == c {
				continue
			}

			ac := get(a, c)
			if ac == lattice.NoForm {
				continue
			}

			for _, b := range principals {
				if b == a || b == c {
					continue
				}

				through := ac & get(c, b)

				for _, x := range lattice.Form(0).Iterate(through) {
					ok, err := db.AddFact(fact.New(a, op(x), b), justify.Derive(
						justify.FactRef(fact.New(a, op(x), c)),
						justify.FactRef(fact.New(c, op(x), b)),
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

// unifyOverConjunctions records a r-> b, where b is a registered
// conjunction, whenever a is already known to imply every one of b's
// conjuncts via r. Grounded on rmupdater.py's reductionConjunction.
func unifyOverConjunctions(db *kernel.Database, principals []string) (bool, error) {
	changed := false

	for _, b := range principals {
		conjuncts := registry.Conjuncts(b)
		if len(conjuncts) < 2 {
			continue
		}

		for _, a := range principals {
			if a == b {
				continue
			}

			common := lattice.AllReductions

			for _, t := range conjuncts {
				common &= db.Store.Implies(a, t)
			}

			if common == lattice.None {
				continue
			}

			for _, r := range lattice.Reduction(0).Iterate(common) {
				refs := make([]justify.Ref, 0, len(conjuncts))
				for _, t := range conjuncts {
					refs = append(refs, justify.FactRef(fact.New(a, fact.ImpliesOp(r), t)))
				}

				ok, err := db.AddFact(fact.New(a, fact.ImpliesOp(r), b), justify.Derive(refs...))
				if err != nil {
					return changed, err
				}
				changed = changed || ok
			}
		}
	}

	return changed, nil
}

// definitionOfConservation records a RCA-> b whenever some c is known
// F-conservative over a, c RCA-> b, and b is of form F: the conservative
// extension c of a already reaches b, and b's own complexity can't
// distinguish it from a. Grounded on rmupdater.py's rcClosure (third
// branch).
func definitionOfConservation(db *kernel.Database, principals []string) (bool, error) {
	changed := false

	for _, c := range principals {
		for _, b := range principals {
			if b == c {
				continue
			}

			if !lattice.Reduction(0).IsPresent(lattice.RCA, db.Store.Implies(c, b)) {
				continue
			}

			for _, a := range principals {
				if a == c {
					continue
				}

				frms := db.Store.Form(b) & db.Store.Conservative(c, a)
				if frms == lattice.NoForm {
					continue
				}

				frm := lattice.Form(0).Strongest(frms)

				ok, err := db.AddFact(fact.New(a, fact.ImpliesOp(lattice.RCA), b), justify.Derive(
					justify.FactRef(fact.New(c, fact.ImpliesOp(lattice.RCA), b)),
					justify.FactRef(fact.New(c, fact.ConservativeOp(frm), a)),
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

// liftConservation records a F-c b from either direction: if c RCA-> a and
// c is F-conservative over b, then a inherits it; symmetrically if b RCA->
// c and a is F-conservative over c. Grounded on rmupdater.py's rcClosure
// (first two branches).
func liftConservation(db *kernel.Database, principals []string) (bool, error) {
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
					for _, x := range lattice.Form(0).Iterate(db.Store.Conservative(c, b)) {
						ok, err := db.AddFact(fact.New(a, fact.ConservativeOp(x), b), justify.Derive(
							justify.FactRef(fact.New(c, fact.ImpliesOp(lattice.RCA), a)),
							justify.FactRef(fact.New(c, fact.ConservativeOp(x), b)),
						))
						if err != nil {
							return changed, err
						}
						changed = changed || ok
					}
				}

				if lattice.Reduction(0).IsPresent(lattice.RCA, db.Store.Implies(b, c)) {
					for _, x := range lattice.Form(0).Iterate(db.Store.Conservative(a, c)) {
						ok, err := db.AddFact(fact.New(a, fact.ConservativeOp(x), b), justify.Derive(
							justify.FactRef(fact.New(b, fact.ImpliesOp(lattice.RCA), c)),
							justify.FactRef(fact.New(a, fact.ConservativeOp(x), c)),
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

