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

// Package justify stores and renders the justification DAG: the proof
// attached to every asserted or derived fact, either a leaf (quoted
// external citation) or a composite referencing other facts already
// justified.
package justify

import (
	"reflect"

	"github.com/rmzoo-go/rmzoo/pkg/zoo/fact"
)

// Ref is a single element of a composite justification: either a literal
// text fragment (a parenthetical note, e.g. "WKL form Pi11") or a
// reference to another fact that must already be justified.
type Ref struct {
	IsFact bool
	Text   string
	Fact   fact.Fact
}

// TextRef builds a literal-text reference.
func TextRef(s string) Ref { return Ref{Text: s} }

// FactRef builds a reference to another fact.
func FactRef(f fact.Fact) Ref { return Ref{IsFact: true, Fact: f} }

// Justification is either a leaf (an externally supplied citation) or a
// composite built from references to other facts and literal notes.
type Justification struct {
	Leaf bool
	Text string
	Refs []Ref
}

// Cite builds a leaf justification from an external citation string.
func Cite(text string) Justification {
	return Justification{Leaf: true, Text: text}
}

// Derive builds a composite justification from one or more references.
func Derive(refs ...Ref) Justification {
	return Justification{Refs: refs}
}

// Store is the complete justification DAG for a database, plus the
// bookkeeping needed to keep every cached proof complexity consistent
// when shorter replacement proofs are installed.
type Store struct {
	minimizing bool
	justify    map[fact.Fact]Justification
	complexity map[fact.Fact]int
	dependents map[fact.Fact]map[fact.Fact]struct{}
	rendered   map[fact.Fact]string
}

// New creates an empty justification store. By default the first
// justification offered for a fact is kept permanently; call
// SetMinimizing(true) to instead keep whichever justification has the
// lowest recursive complexity, re-examining past choices as new facts
// arrive.
func New() *Store {
	return &Store{
		justify:    make(map[fact.Fact]Justification),
		complexity: make(map[fact.Fact]int),
		dependents: make(map[fact.Fact]map[fact.Fact]struct{}),
		rendered:   make(map[fact.Fact]string),
	}
}

// SetMinimizing toggles proof-complexity minimization, the supplemented
// behavior of rmupdater.py's "-s" flag. Much slower, but finds shorter
// proofs between principles.
func (s *Store) SetMinimizing(on bool) {
	s.minimizing = on
}

// Has reports whether f already has a justification on file.
func (s *Store) Has(f fact.Fact) bool {
	_, ok := s.justify[f]
	return ok
}

// Get returns the current justification for f, if any.
func (s *Store) Get(f fact.Fact) (Justification, bool) {
	j, ok := s.justify[f]
	return j, ok
}

// Add records jst as a justification for f. It returns true if this
// changed the store: either f had no prior justification, or (when
// minimizing) jst is strictly less complex than the one on file.
func (s *Store) Add(f fact.Fact, jst Justification) bool {
	if !s.minimizing {
		if s.Has(f) {
			return false
		}

		s.justify[f] = jst

		return true
	}

	deps := factDependencies(jst)

	old, existed := s.justify[f]
	if !existed {
		s.justify[f] = jst
		for d := range deps {
			s.addDependent(d, f)
		}

		return true
	}

	if reflect.DeepEqual(jst, old) {
		return false
	}

	complexity := s.refComplexity(jst)
	if complexity >= s.Complexity(f) {
		return false
	}

	s.invalidateComplexity(f)

	oldDeps := factDependencies(old)
	for d := range oldDeps {
		if _, still := deps[d]; !still {
			s.removeDependent(d, f)
		}
	}

	for d := range deps {
		if _, already := oldDeps[d]; !already {
			s.addDependent(d, f)
		}
	}

	s.justify[f] = jst
	s.complexity[f] = complexity
	delete(s.rendered, f)

	return true
}

func (s *Store) addDependent(of, dependent fact.Fact) {
	set, ok := s.dependents[of]
	if !ok {
		set = make(map[fact.Fact]struct{})
		s.dependents[of] = set
	}

	set[dependent] = struct{}{}
}

func (s *Store) removeDependent(of, dependent fact.Fact) {
	if set, ok := s.dependents[of]; ok {
		delete(set, dependent)
	}
}

// invalidateComplexity clears the cached complexity of f and of every
// fact whose own cached complexity was computed in terms of f, following
// rmupdater.py's addJustification cache-eviction walk.
func (s *Store) invalidateComplexity(f fact.Fact) {
	queue := []fact.Fact{f}
	seen := map[fact.Fact]struct{}{}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		delete(s.complexity, cur)
		delete(s.rendered, cur)
		seen[cur] = struct{}{}

		for dep := range s.dependents[cur] {
			if _, done := seen[dep]; !done {
				queue = append(queue, dep)
			}
		}
	}
}

func factDependencies(jst Justification) map[fact.Fact]struct{} {
	out := make(map[fact.Fact]struct{})

	for _, r := range jst.Refs {
		if r.IsFact {
			out[r.Fact] = struct{}{}
		}
	}

	return out
}

// Complexity returns the recursive proof complexity of f: 1 for a leaf,
// or 1 plus the sum of the complexities of every fact it references, for
// a composite. The result is memoized.
func (s *Store) Complexity(f fact.Fact) int {
	if c, ok := s.complexity[f]; ok {
		return c
	}

	c := s.refComplexity(s.justify[f])
	s.complexity[f] = c

	return c
}

func (s *Store) refComplexity(jst Justification) int {
	if jst.Leaf {
		return 1
	}

	complexity := 1

	for _, r := range jst.Refs {
		if r.IsFact {
			complexity += s.Complexity(r.Fact)
		} else {
			complexity++
		}
	}

	return complexity
}

// Facts returns every fact currently on file, in no particular order.
func (s *Store) Facts() []fact.Fact {
	out := make([]fact.Fact, 0, len(s.justify))
	for f := range s.justify {
		out = append(out, f)
	}

	return out
}

// Snapshot is the gob-encodable mirror of a Store's justification DAG,
// used by pkg/zoo/snapshot to persist a database. Only the justifications
// themselves are persisted; complexity and rendered are caches recomputed
// lazily on demand, and dependents is rebuilt by Import.
type Snapshot struct {
	Minimizing bool
	Justify    map[fact.Fact]Justification
}

// Export captures the current state of s as a Snapshot.
func (s *Store) Export() Snapshot {
	return Snapshot{Minimizing: s.minimizing, Justify: s.justify}
}

// Import rebuilds a Store from a previously captured Snapshot, with empty
// caches.
func Import(snap Snapshot) *Store {
	return &Store{
		minimizing: snap.Minimizing,
		justify:    snap.Justify,
		complexity: make(map[fact.Fact]int),
		dependents: rebuildDependents(snap.Justify),
		rendered:   make(map[fact.Fact]string),
	}
}

// rebuildDependents reconstructs the reverse-dependency index a
// minimizing store needs for cache invalidation, since it is not itself
// persisted.
func rebuildDependents(justify map[fact.Fact]Justification) map[fact.Fact]map[fact.Fact]struct{} {
	out := make(map[fact.Fact]map[fact.Fact]struct{})

	for f, jst := range justify {
		for d := range factDependencies(jst) {
			set, ok := out[d]
			if !ok {
				set = make(map[fact.Fact]struct{})
				out[d] = set
			}

			set[f] = struct{}{}
		}
	}

	return out
}
