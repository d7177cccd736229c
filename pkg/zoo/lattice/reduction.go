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

// Package lattice encodes the two fixed ontologies of the zoo: the
// reducibility lattice between principles, and the syntactic form
// hierarchy of statements those principles prove. Both are small, so each
// is a bitmask over a handful of named bits rather than a general-purpose
// set structure.
package lattice

import (
	"fmt"
	"math/bits"
)

// Reduction identifies one of the seven reducibility notions used to
// compare principles, or None if no reduction is asserted. A value may
// also be a mask combining several bits, in which case it denotes a set of
// reductions rather than a single one.
type Reduction uint8

// The reducibility notions, ordered from weakest (w) to strongest (sW).
// None carries no bit and is never present in a combined mask.
const (
	None Reduction = 0
	W    Reduction = 1 << 0
	RCA  Reduction = 1 << 1
	C    Reduction = 1 << 2
	SC   Reduction = 1 << 3
	GW   Reduction = 1 << 4
	BigW Reduction = 1 << 5
	SW   Reduction = 1 << 6

	// AllReductions is the mask containing every non-None reduction.
	AllReductions = W | RCA | C | SC | GW | BigW | SW
)

var reductionNames = [...]struct {
	name string
	val  Reduction
}{
	{"w", W},
	{"RCA", RCA},
	{"c", C},
	{"sc", SC},
	{"gW", GW},
	{"W", BigW},
	{"sW", SW},
}

// String returns the canonical spelling of a single reduction bit. It
// panics if r is not exactly one of the named constants; callers holding a
// combined mask should use Iterate instead.
func (r Reduction) String() string {
	if r == None {
		return "none"
	}

	for _, e := range reductionNames {
		if e.val == r {
			return e.name
		}
	}

	panic(fmt.Sprintf("not a single reduction: %d", r))
}

// ReductionFromString parses the canonical spelling of a reduction. An
// empty string aliases to RCA (the default reduction used by bare "->"
// facts), and "gc" aliases to w for compatibility with older corpora.
func ReductionFromString(s string) (Reduction, error) {
	switch s {
	case "":
		return RCA, nil
	case "gc":
		return W, nil
	}

	for _, e := range reductionNames {
		if e.name == s {
			return e.val, nil
		}
	}

	return None, fmt.Errorf("the reduction %q is not implemented", s)
}

// IsPresent reports whether the single bit r is set within mask.
func (Reduction) IsPresent(r, mask Reduction) bool {
	return r&mask != 0
}

// Strongest returns the strongest reduction present in mask, or None if
// mask is empty.
func (Reduction) Strongest(mask Reduction) Reduction {
	if mask == None {
		return None
	}

	return Reduction(1) << (bits.Len8(uint8(mask)) - 1)
}

// Iterate returns every individual reduction present in mask, in ascending
// strength order.
func (Reduction) Iterate(mask Reduction) []Reduction {
	out := make([]Reduction, 0, len(reductionNames))

	for _, e := range reductionNames {
		if mask&e.val != 0 {
			out = append(out, e.val)
		}
	}

	return out
}

// rWeaker[bit] is the set of reductions implied by bit together with bit
// itself: if a reduces to b via r, then a also reduces to b via every
// reduction in rWeaker[r]. Computed once at init time from the Hasse edges
// below, following rmBitmasks.py's _completeImplications.
var rWeaker [8]Reduction

// rStronger is the reverse table: rStronger[bit] is the set of reductions
// which, were any of them established, would imply bit.
var rStronger [8]Reduction

func bit(r Reduction) int {
	return bits.TrailingZeros8(uint8(r))
}

func init() {
	for _, e := range reductionNames {
		rWeaker[bit(e.val)] = e.val
	}
	// Hasse edges, direct "implies trivially" relationships.
	rWeaker[bit(RCA)] |= W
	rWeaker[bit(SC)] |= C
	rWeaker[bit(C)] |= W
	rWeaker[bit(SW)] |= BigW | SC
	rWeaker[bit(BigW)] |= GW | C
	rWeaker[bit(GW)] |= W

	for _, c := range reductionNames {
		for _, a := range reductionNames {
			if rWeaker[bit(a.val)]&c.val != 0 {
				rWeaker[bit(a.val)] |= rWeaker[bit(c.val)]
			}
		}
	}

	for _, p0 := range reductionNames {
		for _, p1 := range reductionNames {
			if rWeaker[bit(p1.val)]&p0.val != 0 {
				rStronger[bit(p0.val)] |= p1.val
			}
		}
	}
}

// Weaker returns r together with every reduction weaker than r: the set of
// reductions that necessarily hold once r is established.
func (Reduction) Weaker(r Reduction) Reduction {
	return rWeaker[bit(r)]
}

// Stronger returns r together with every reduction that would imply r: the
// set of reductions whose absence is necessarily implied once r is known to
// fail.
func (Reduction) Stronger(r Reduction) Reduction {
	return rStronger[bit(r)]
}
