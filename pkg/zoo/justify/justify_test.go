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
package justify_test

import (
	"strings"
	"testing"

	"github.com/rmzoo-go/rmzoo/pkg/util/assert"
	"github.com/rmzoo-go/rmzoo/pkg/zoo/fact"
	"github.com/rmzoo-go/rmzoo/pkg/zoo/lattice"
	"github.com/rmzoo-go/rmzoo/pkg/zoo/justify"
)

func Test_Store_Add_01(t *testing.T) {
	s := justify.New()
	f := fact.New("WKL", fact.ImpliesOp(lattice.RCA), "RCA")

	assert.True(t, s.Add(f, justify.Cite("trivial")))
	assert.False(t, s.Add(f, justify.Cite("different citation")))
}

func Test_Store_Complexity_01(t *testing.T) {
	s := justify.New()
	leaf := fact.New("WKL", fact.ImpliesOp(lattice.RCA), "RCA")
	composite := fact.New("ACA", fact.ImpliesOp(lattice.RCA), "RCA")

	s.Add(leaf, justify.Cite("trivial"))
	s.Add(composite, justify.Derive(
		justify.FactRef(fact.New("ACA", fact.ImpliesOp(lattice.RCA), "WKL")),
		justify.FactRef(leaf),
	))

	s.Add(fact.New("ACA", fact.ImpliesOp(lattice.RCA), "WKL"), justify.Cite("standard"))

	assert.Equal(t, 1, s.Complexity(leaf))
	assert.Equal(t, 3, s.Complexity(composite))
}

func Test_Store_Render_01(t *testing.T) {
	s := justify.New()
	f := fact.New("WKL", fact.ImpliesOp(lattice.RCA), "RCA")
	s.Add(f, justify.Cite("trivial"))

	out, err := s.Render(f)
	assert.Equal(t, nil, err)
	assert.True(t, strings.Contains(out, "WKL RCA-> RCA"))
	assert.True(t, strings.Contains(out, "trivial"))
}

func Test_Store_Render_02(t *testing.T) {
	s := justify.New()
	leaf := fact.New("WKL", fact.ImpliesOp(lattice.RCA), "RCA")
	s.Add(leaf, justify.Cite("trivial"))

	composite := fact.New("ACA", fact.ImpliesOp(lattice.RCA), "RCA")
	s.Add(composite, justify.Derive(justify.FactRef(leaf), justify.TextRef("note")))

	out, err := s.Render(composite)
	assert.Equal(t, nil, err)
	assert.True(t, strings.Contains(out, "ACA RCA-> RCA"))
	assert.True(t, strings.Contains(out, "    WKL RCA-> RCA"))
	assert.True(t, strings.Contains(out, "note"))
}

func Test_Store_Minimizing_01(t *testing.T) {
	s := justify.New()
	s.SetMinimizing(true)

	f := fact.New("ACA", fact.ImpliesOp(lattice.RCA), "RCA")
	long := justify.Derive(justify.TextRef("a"), justify.TextRef("b"), justify.TextRef("c"))
	short := justify.Cite("direct")

	assert.True(t, s.Add(f, long))
	assert.Equal(t, 4, s.Complexity(f))

	assert.True(t, s.Add(f, short))
	assert.Equal(t, 1, s.Complexity(f))
}
