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

// Package store holds the bitmask-keyed relation tables between ordered
// pairs of principals: which reductions are known to hold or fail, which
// forms are known to be conservative or not, each principal's declared
// syntactic form, and the set of "primary" principals worth reporting on.
package store

import "github.com/rmzoo-go/rmzoo/pkg/zoo/lattice"

// Pair identifies an ordered pair of principal names, the key every
// relation table is indexed by.
type Pair struct {
	A, B string
}

// Store is the complete set of relation tables for a database. The zero
// value is ready to use.
type Store struct {
	implies         map[Pair]lattice.Reduction
	notImplies      map[Pair]lattice.Reduction
	equivalent      map[Pair]lattice.Reduction
	conservative    map[Pair]lattice.Form
	nonConservative map[Pair]lattice.Form
	forms           map[string]lattice.Form
	primary         map[string]struct{}
	primaryIndex    []string
}

// New creates an empty relation store.
func New() *Store {
	return &Store{
		implies:         make(map[Pair]lattice.Reduction),
		notImplies:      make(map[Pair]lattice.Reduction),
		equivalent:      make(map[Pair]lattice.Reduction),
		conservative:    make(map[Pair]lattice.Form),
		nonConservative: make(map[Pair]lattice.Form),
		forms:           make(map[string]lattice.Form),
		primary:         make(map[string]struct{}),
	}
}

// Implies returns the mask of reductions currently known to hold from a to b.
func (s *Store) Implies(a, b string) lattice.Reduction {
	return s.implies[Pair{a, b}]
}

// Equivalent returns the mask of reductions for which a and b are currently
// known equivalent.
func (s *Store) Equivalent(a, b string) lattice.Reduction {
	return s.equivalent[Pair{a, b}]
}

// NotImplies returns the mask of reductions currently known to fail from a to b.
func (s *Store) NotImplies(a, b string) lattice.Reduction {
	return s.notImplies[Pair{a, b}]
}

// Conservative returns the mask of forms for which a is known conservative over b.
func (s *Store) Conservative(a, b string) lattice.Form {
	return s.conservative[Pair{a, b}]
}

// NonConservative returns the mask of forms for which a is known non-conservative over b.
func (s *Store) NonConservative(a, b string) lattice.Form {
	return s.nonConservative[Pair{a, b}]
}

// Form returns the mask of forms declared (directly or by closure) for principal a.
func (s *Store) Form(a string) lattice.Form {
	return s.forms[a]
}

// AddReduction folds the weaker-closure of r into implies[a,b], following
// rmupdater.py's addReduction. It returns the mask's value after the
// update so callers can detect whether anything new was learned.
func (s *Store) AddReduction(a string, r lattice.Reduction, b string) lattice.Reduction {
	key := Pair{a, b}
	s.implies[key] |= lattice.Reduction(0).Weaker(r)

	return s.implies[key]
}

// AddEquivalent folds the weaker-closure of r into equivalent[a,b]: once a
// and b are known equivalent via r, they are also equivalent via every
// weaker reduction.
func (s *Store) AddEquivalent(a string, r lattice.Reduction, b string) lattice.Reduction {
	key := Pair{a, b}
	s.equivalent[key] |= lattice.Reduction(0).Weaker(r)

	return s.equivalent[key]
}

// AddNonReduction folds the stronger-closure of r into notImplies[a,b].
func (s *Store) AddNonReduction(a string, r lattice.Reduction, b string) lattice.Reduction {
	key := Pair{a, b}
	s.notImplies[key] |= lattice.Reduction(0).Stronger(r)

	return s.notImplies[key]
}

// AddConservative folds the weaker-closure of frm into conservative[a,b].
func (s *Store) AddConservative(a string, frm lattice.Form, b string) lattice.Form {
	key := Pair{a, b}
	s.conservative[key] |= lattice.Form(0).Weaker(frm)

	return s.conservative[key]
}

// AddNonConservative folds the stronger-closure of frm into nonConservative[a,b].
func (s *Store) AddNonConservative(a string, frm lattice.Form, b string) lattice.Form {
	key := Pair{a, b}
	s.nonConservative[key] |= lattice.Form(0).Stronger(frm)

	return s.nonConservative[key]
}

// AddForm declares that principal a belongs to syntactic form frm, folding
// in the stronger-closure: a statement of a simple form is trivially also
// of every more complex form.
func (s *Store) AddForm(a string, frm lattice.Form) {
	s.forms[a] |= lattice.Form(0).Stronger(frm)
}

// AddPrimary marks a principal as primary (worth reporting on), recording
// its first-seen order.
func (s *Store) AddPrimary(a string) {
	if _, ok := s.primary[a]; ok {
		return
	}

	s.primary[a] = struct{}{}
	s.primaryIndex = append(s.primaryIndex, a)
}

// IsPrimary reports whether a has been marked primary.
func (s *Store) IsPrimary(a string) bool {
	_, ok := s.primary[a]
	return ok
}

// PrimaryIndex returns every primary principal in first-seen order.
func (s *Store) PrimaryIndex() []string {
	out := make([]string, len(s.primaryIndex))
	copy(out, s.primaryIndex)

	return out
}

// Snapshot is the gob-encodable mirror of a Store's relation tables, used
// by pkg/zoo/snapshot to persist a database. Every field here is exported
// for exactly that reason; Store itself keeps its maps private so every
// mutation goes through the Add* folding methods above.
type Snapshot struct {
	Implies, NotImplies, Equivalent map[Pair]lattice.Reduction
	Conservative, NonConservative   map[Pair]lattice.Form
	Forms                          map[string]lattice.Form
	Primary                        map[string]struct{}
	PrimaryIndex                   []string
}

// Export captures the current state of s as a Snapshot.
func (s *Store) Export() Snapshot {
	return Snapshot{
		Implies:         s.implies,
		NotImplies:      s.notImplies,
		Equivalent:      s.equivalent,
		Conservative:    s.conservative,
		NonConservative: s.nonConservative,
		Forms:           s.forms,
		Primary:         s.primary,
		PrimaryIndex:    s.primaryIndex,
	}
}

// Import rebuilds a Store from a previously captured Snapshot.
func Import(snap Snapshot) *Store {
	return &Store{
		implies:         snap.Implies,
		notImplies:      snap.NotImplies,
		equivalent:      snap.Equivalent,
		conservative:    snap.Conservative,
		nonConservative: snap.NonConservative,
		forms:           snap.Forms,
		primary:         snap.Primary,
		primaryIndex:    snap.PrimaryIndex,
	}
}
