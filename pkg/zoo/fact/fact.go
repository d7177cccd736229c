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

// Package fact defines the shared vocabulary for asserting a relationship
// between two principles: the operator kinds, and the (a, op, b) triple
// identifying a single fact. It has no dependencies beyond lattice, so
// every other zoo package can depend on it without creating cycles.
package fact

import (
	"fmt"

	"github.com/rmzoo-go/rmzoo/pkg/zoo/lattice"
)

// Kind identifies which of the five relations an operator expresses.
type Kind int

// The five relation kinds a fact may assert.
const (
	Implies Kind = iota
	NotImplies
	Equivalent
	Conservative
	NonConservative
)

// Op is a single operator: a relation kind together with the reduction or
// form it is parameterized by. Exactly one of Reduction or Form is
// meaningful, depending on Kind.
type Op struct {
	Kind      Kind
	Reduction lattice.Reduction
	Form      lattice.Form
}

// ImpliesOp builds the "r->" operator.
func ImpliesOp(r lattice.Reduction) Op { return Op{Kind: Implies, Reduction: r} }

// NotImpliesOp builds the "r-|>" operator.
func NotImpliesOp(r lattice.Reduction) Op { return Op{Kind: NotImplies, Reduction: r} }

// EquivalentOp builds the "r<->" operator.
func EquivalentOp(r lattice.Reduction) Op { return Op{Kind: Equivalent, Reduction: r} }

// ConservativeOp builds the "f-c" operator.
func ConservativeOp(f lattice.Form) Op { return Op{Kind: Conservative, Form: f} }

// NonConservativeOp builds the "f-nc" operator.
func NonConservativeOp(f lattice.Form) Op { return Op{Kind: NonConservative, Form: f} }

// String renders an operator using the zoo's compact notation, e.g.
// "RCA->", "sW-|>", "Pi02c", "nPi02c".
func (o Op) String() string {
	switch o.Kind {
	case Implies:
		return o.Reduction.String() + "->"
	case NotImplies:
		return o.Reduction.String() + "-|>"
	case Equivalent:
		return o.Reduction.String() + "<->"
	case Conservative:
		return o.Form.String() + "c"
	case NonConservative:
		return "n" + o.Form.String() + "c"
	default:
		panic(fmt.Sprintf("unrecognized operator kind %d", o.Kind))
	}
}

// Opposite returns the operator that directly contradicts o, if any:
// "->"/"-|>" and "c"/"nc" are opposite pairs over the same parameter;
// "<->" opposes "-|>". Every recognized operator kind has an opposite;
// ok=false is returned only for an unrecognized kind.
func (o Op) Opposite() (Op, bool) {
	switch o.Kind {
	case Implies:
		return NotImpliesOp(o.Reduction), true
	case NotImplies:
		return ImpliesOp(o.Reduction), true
	case Conservative:
		return NonConservativeOp(o.Form), true
	case NonConservative:
		return ConservativeOp(o.Form), true
	case Equivalent:
		return NotImpliesOp(o.Reduction), true
	default:
		return Op{}, false
	}
}

// Fact is a single asserted or derived triple "a op b".
type Fact struct {
	A  string
	Op Op
	B  string
}

// New builds a Fact triple.
func New(a string, op Op, b string) Fact {
	return Fact{A: a, Op: op, B: b}
}

// String renders the fact in the zoo's compact notation, e.g. "WKL RCA-> ACA".
func (f Fact) String() string {
	return fmt.Sprintf("%s %s %s", f.A, f.Op, f.B)
}
