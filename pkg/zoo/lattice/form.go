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
package lattice

import (
	"fmt"
	"math/bits"
)

// Form identifies one of the eleven syntactic complexity classes a
// statement may belong to, or NoForm if no class is asserted. As with
// Reduction, a value may combine several bits to denote a set.
type Form uint16

// The syntactic forms, ordered from simplest (Pi02) to most complex
// (Pi13). The ordering and the two edges named explicitly in the source
// material (Sig02 included in Pi03, Pi11 included in rPi12) fix a total
// order over the eleven classes; see DESIGN.md for the rationale.
const (
	NoForm Form = 0
	Pi02   Form = 1 << 0
	Sig02  Form = 1 << 1
	Pi03   Form = 1 << 2
	UPi03  Form = 1 << 3
	Sig03  Form = 1 << 4
	Pi04   Form = 1 << 5
	Sig04  Form = 1 << 6
	Pi11   Form = 1 << 7
	RPi12  Form = 1 << 8
	Pi12   Form = 1 << 9
	Pi13   Form = 1 << 10

	// AllForms is the mask containing every non-NoForm form.
	AllForms = Pi02 | Sig02 | Pi03 | UPi03 | Sig03 | Pi04 | Sig04 | Pi11 | RPi12 | Pi12 | Pi13
)

var formNames = [...]struct {
	name string
	val  Form
}{
	{"Pi02", Pi02},
	{"Sig02", Sig02},
	{"Pi03", Pi03},
	{"uPi03", UPi03},
	{"Sig03", Sig03},
	{"Pi04", Pi04},
	{"Sig04", Sig04},
	{"Pi11", Pi11},
	{"rPi12", RPi12},
	{"Pi12", Pi12},
	{"Pi13", Pi13},
}

// String returns the canonical spelling of a single form bit. It panics if
// f is not exactly one of the named constants; callers holding a combined
// mask should use Iterate instead.
func (f Form) String() string {
	if f == NoForm {
		return "none"
	}

	for _, e := range formNames {
		if e.val == f {
			return e.name
		}
	}

	panic(fmt.Sprintf("not a single form: %d", f))
}

// FormFromString parses the canonical spelling of a syntactic form.
func FormFromString(s string) (Form, error) {
	for _, e := range formNames {
		if e.name == s {
			return e.val, nil
		}
	}

	return NoForm, fmt.Errorf("the form %q is not implemented", s)
}

// IsPresent reports whether the single bit f is set within mask.
func (Form) IsPresent(f, mask Form) bool {
	return f&mask != 0
}

// Strongest returns the most complex form present in mask, or NoForm if
// mask is empty.
func (Form) Strongest(mask Form) Form {
	if mask == NoForm {
		return NoForm
	}

	return Form(1) << (bits.Len16(uint16(mask)) - 1)
}

// Iterate returns every individual form present in mask, from simplest to
// most complex.
func (Form) Iterate(mask Form) []Form {
	out := make([]Form, 0, len(formNames))

	for _, e := range formNames {
		if mask&e.val != 0 {
			out = append(out, e.val)
		}
	}

	return out
}

// fWeaker[bit] is f together with every syntactically simpler form
// included within it: a statement in any form in fWeaker[f] is also,
// trivially, in form f.
var fWeaker [11]Form

// fStronger is the reverse table.
var fStronger [11]Form

func fbit(f Form) int {
	return bits.TrailingZeros16(uint16(f))
}

func init() {
	for _, e := range formNames {
		fWeaker[fbit(e.val)] = e.val
	}
	// Single total order, strongest to weakest: Pi13 > Pi12 > rPi12 > Pi11
	// > Sig04 > Pi04 > Sig03 > uPi03 > Pi03 > Sig02 > Pi02. Each edge marks
	// that the right class is (trivially) also an instance of the left.
	fWeaker[fbit(Pi13)] |= Pi12
	fWeaker[fbit(Pi12)] |= RPi12
	fWeaker[fbit(RPi12)] |= Pi11
	fWeaker[fbit(Pi11)] |= Sig04
	fWeaker[fbit(Sig04)] |= Pi04
	fWeaker[fbit(Pi04)] |= Sig03
	fWeaker[fbit(Sig03)] |= UPi03
	fWeaker[fbit(UPi03)] |= Pi03
	fWeaker[fbit(Pi03)] |= Sig02
	fWeaker[fbit(Sig02)] |= Pi02

	for _, c := range formNames {
		for _, a := range formNames {
			if fWeaker[fbit(a.val)]&c.val != 0 {
				fWeaker[fbit(a.val)] |= fWeaker[fbit(c.val)]
			}
		}
	}

	for _, p0 := range formNames {
		for _, p1 := range formNames {
			if fWeaker[fbit(p1.val)]&p0.val != 0 {
				fStronger[fbit(p0.val)] |= p1.val
			}
		}
	}
}

// Weaker returns f together with every syntactically simpler form, i.e.
// every form whose statements are trivially also instances of f.
func (Form) Weaker(f Form) Form {
	return fWeaker[fbit(f)]
}

// Stronger returns f together with every more complex form, i.e. every
// form a statement of form f is trivially also an instance of.
func (Form) Stronger(f Form) Form {
	return fStronger[fbit(f)]
}
