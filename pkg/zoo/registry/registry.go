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

// Package registry interns the names of principles and their conjunctions,
// and maintains the stable sorted iteration order the derivation driver
// relies on.
package registry

import (
	"fmt"
	"sort"
	"strings"
)

// UnknownPrincipleError reports that a name was used in a fact or query
// without ever having been registered, directly or as a conjunct.
type UnknownPrincipleError struct {
	Name string
}

func (e *UnknownPrincipleError) Error() string {
	return fmt.Sprintf("%q is an unknown principle", e.Name)
}

// Registry is the set of every principle name known to a database,
// including both atomic principles and the conjunctions that have been
// explicitly registered (conjunctions are never synthesized on the fly:
// only Add creates them, so a conjunction must appear in the source
// corpus before anything may reason about it).
type Registry struct {
	principles map[string]struct{}
	ordered    []string
	sorted     bool
}

// New creates a registry pre-populated with the distinguished bottom
// principle RCA, matching the original tool's `principles = set(['RCA'])`.
func New() *Registry {
	r := &Registry{principles: make(map[string]struct{})}
	r.intern("RCA")

	return r
}

func (r *Registry) intern(name string) {
	if _, ok := r.principles[name]; ok {
		return
	}

	r.principles[name] = struct{}{}
	r.ordered = append(r.ordered, name)
	r.sorted = false
}

// Canonicalize splits name on '+', deduplicates and sorts the conjuncts,
// and rejoins with '+' — so "B+A" and "A+B+A" both canonicalize to "A+B".
// It does not intern anything; callers that want to register a name use
// Add.
func Canonicalize(name string) string {
	parts := strings.Split(name, "+")
	set := make(map[string]struct{}, len(parts))

	for _, p := range parts {
		set[p] = struct{}{}
	}

	unique := make([]string, 0, len(set))
	for p := range set {
		unique = append(unique, p)
	}

	sort.Strings(unique)

	return strings.Join(unique, "+")
}

// Add registers a (possibly conjunctive) principle name, canonicalized per
// Canonicalize. Both the conjunction and each individual conjunct are
// interned. The canonical name is returned.
func (r *Registry) Add(name string) string {
	canonical := Canonicalize(name)

	r.intern(canonical)
	for _, p := range Conjuncts(canonical) {
		r.intern(p)
	}

	return canonical
}

// Has reports whether name (exactly as given — callers should canonicalize
// conjunctions first) is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.principles[name]
	return ok
}

// JoinPrinciples canonicalizes the union of names and reports whether that
// conjunction is already registered. It never registers the join itself:
// new conjunctions are created only by Add, from ingestion or an explicit
// --force re-derivation, never as a side effect of derivation or a query.
func (r *Registry) JoinPrinciples(names ...string) (string, bool) {
	canonical := Canonicalize(strings.Join(names, "+"))
	return canonical, r.Has(canonical)
}

// Conjuncts splits a (possibly canonicalized) principle name into its
// individual conjuncts.
func Conjuncts(name string) []string {
	return strings.Split(name, "+")
}

// AllConjunctsKnown reports whether every individual conjunct of name is
// itself registered, even if the conjunction as a whole is not.
func (r *Registry) AllConjunctsKnown(name string) bool {
	for _, p := range Conjuncts(name) {
		if !r.Has(p) {
			return false
		}
	}

	return true
}

// List returns every registered principle name (atoms and conjunctions) in
// ascending sorted order. The slice is owned by the caller and is not
// invalidated by future registrations.
func (r *Registry) List() []string {
	if !r.sorted {
		sort.Strings(r.ordered)
		r.sorted = true
	}

	out := make([]string, len(r.ordered))
	copy(out, r.ordered)

	return out
}

// Len returns the number of registered principle names.
func (r *Registry) Len() int {
	return len(r.ordered)
}

// Snapshot is the gob-encodable mirror of a Registry, used by
// pkg/zoo/snapshot to persist a database.
type Snapshot struct {
	Principles map[string]struct{}
	Ordered    []string
}

// Export captures the current state of r as a Snapshot.
func (r *Registry) Export() Snapshot {
	return Snapshot{Principles: r.principles, Ordered: r.ordered}
}

// Import rebuilds a Registry from a previously captured Snapshot.
func Import(snap Snapshot) *Registry {
	return &Registry{principles: snap.Principles, ordered: snap.Ordered}
}
