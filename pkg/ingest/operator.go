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
package ingest

import (
	"fmt"
	"strings"

	"github.com/rmzoo-go/rmzoo/pkg/zoo/fact"
	"github.com/rmzoo-go/rmzoo/pkg/zoo/lattice"
	"github.com/rmzoo-go/rmzoo/pkg/zoo/registry"
)

// suffixAlias is a suffix-style reducibility operator: "=>_R" and its
// siblings, read left-to-right as "name1 =>_R name2". Checked longest
// marker first so "<=>" is never mistaken for "<=". The "<=" and "</="
// spellings read backwards ("name1 <=_R name2" means name2 reduces to
// name1), so standardize swaps their operands once the marker is matched.
var suffixAliases = []struct {
	marker string
	kind   fact.Kind
	swap   bool
}{
	{"<=>", fact.Equivalent, false},
	{"=/>", fact.NotImplies, false},
	{"</=", fact.NotImplies, true},
	{"=>", fact.Implies, false},
	{"<=", fact.Implies, true},
}

// prefixOperators is a reducibility-prefixed operator: "R->", "R-|>",
// "R<->", with an empty prefix defaulting to RCA.
var prefixOperators = []struct {
	marker string
	kind   fact.Kind
}{
	{"<->", fact.Equivalent},
	{"-|>", fact.NotImplies},
	{"->", fact.Implies},
}

// parseOperator recognizes one operator token: a reducibility operator (in
// either its prefix or its suffix-alias spelling), a conservation operator
// "<Form>c", or a non-conservation operator "n<Form>c". The returned bool
// reports whether standardize must swap the surrounding operand names.
func parseOperator(tok string) (fact.Op, bool, error) {
	for _, a := range suffixAliases {
		if strings.HasPrefix(tok, a.marker) {
			redName := strings.TrimPrefix(strings.TrimPrefix(tok, a.marker), "_")

			r, err := lattice.ReductionFromString(redName)
			if err != nil {
				return fact.Op{}, false, err
			}

			return reductionOp(a.kind, r), a.swap, nil
		}
	}

	for _, p := range prefixOperators {
		if strings.HasSuffix(tok, p.marker) {
			redName := strings.TrimSuffix(tok, p.marker)

			if r, err := lattice.ReductionFromString(redName); err == nil {
				return reductionOp(p.kind, r), false, nil
			}
		}
	}

	if strings.HasPrefix(tok, "n") && strings.HasSuffix(tok, "c") && len(tok) > 2 {
		if f, err := lattice.FormFromString(tok[1 : len(tok)-1]); err == nil {
			return fact.NonConservativeOp(f), false, nil
		}
	}

	if strings.HasSuffix(tok, "c") && len(tok) > 1 {
		if f, err := lattice.FormFromString(tok[:len(tok)-1]); err == nil {
			return fact.ConservativeOp(f), false, nil
		}
	}

	return fact.Op{}, false, fmt.Errorf("the operator %q is not recognized", tok)
}

// standardize reduces both operand names to their canonical conjunction
// spelling, then swaps them if op was parsed from a "<=_R"/"</=_R" marker,
// so every fact the kernel ever sees is already in its "a op b" storage
// order.
func standardize(a string, op fact.Op, swap bool, b string) (string, fact.Op, string) {
	a = registry.Canonicalize(a)
	b = registry.Canonicalize(b)

	if swap {
		a, b = b, a
	}

	return a, op, b
}

func reductionOp(kind fact.Kind, r lattice.Reduction) fact.Op {
	switch kind {
	case fact.Implies:
		return fact.ImpliesOp(r)
	case fact.NotImplies:
		return fact.NotImpliesOp(r)
	case fact.Equivalent:
		return fact.EquivalentOp(r)
	default:
		panic("unreachable")
	}
}
