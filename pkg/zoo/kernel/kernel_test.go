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
package kernel_test

import (
	"errors"
	"testing"

	"github.com/rmzoo-go/rmzoo/pkg/util/assert"
	"github.com/rmzoo-go/rmzoo/pkg/zoo/fact"
	"github.com/rmzoo-go/rmzoo/pkg/zoo/kernel"
	"github.com/rmzoo-go/rmzoo/pkg/zoo/lattice"
	"github.com/rmzoo-go/rmzoo/pkg/zoo/justify"
)

func Test_AddFact_Implies_01(t *testing.T) {
	db := kernel.New()

	changed, err := db.AddFact(fact.New("WKL", fact.ImpliesOp(lattice.SW), "RCA"), justify.Cite("lemma"))
	assert.Equal(t, nil, err)
	assert.True(t, changed)

	// sW is the strongest reduction; every weaker reduction must also hold.
	for _, r := range []lattice.Reduction{lattice.BigW, lattice.SC, lattice.GW, lattice.C, lattice.W} {
		mask := db.Store.Implies("WKL", "RCA")
		assert.True(t, lattice.Reduction(0).IsPresent(r, mask))
	}
}

func Test_AddFact_Implies_02(t *testing.T) {
	// Establishing a RCA-> b must trivially record b f-c a for every form.
	db := kernel.New()

	_, err := db.AddFact(fact.New("A", fact.ImpliesOp(lattice.RCA), "B"), justify.Cite("x"))
	assert.Equal(t, nil, err)

	for _, f := range lattice.Form(0).Iterate(lattice.AllForms) {
		assert.True(t, db.Justify.Has(fact.New("B", fact.ConservativeOp(f), "A")))
	}
}

func Test_AddFact_Contradiction_01(t *testing.T) {
	db := kernel.New()

	_, err := db.AddFact(fact.New("A", fact.ImpliesOp(lattice.SW), "B"), justify.Cite("x"))
	assert.Equal(t, nil, err)

	_, err = db.AddFact(fact.New("A", fact.NotImpliesOp(lattice.SW), "B"), justify.Cite("y"))

	var contra *kernel.ContradictionError
	assert.True(t, errors.As(err, &contra))
}

func Test_AddFact_Equivalent_01(t *testing.T) {
	db := kernel.New()

	_, err := db.AddFact(fact.New("A", fact.EquivalentOp(lattice.RCA), "B"), justify.Cite("x"))
	assert.Equal(t, nil, err)

	assert.True(t, lattice.Reduction(0).IsPresent(lattice.RCA, db.Store.Implies("A", "B")))
	assert.True(t, lattice.Reduction(0).IsPresent(lattice.RCA, db.Store.Implies("B", "A")))
}

func Test_AddFact_Unchanged_01(t *testing.T) {
	db := kernel.New()

	f := fact.New("A", fact.ImpliesOp(lattice.RCA), "B")
	changed1, err := db.AddFact(f, justify.Cite("x"))
	assert.Equal(t, nil, err)
	assert.True(t, changed1)

	changed2, err := db.AddFact(f, justify.Cite("y"))
	assert.Equal(t, nil, err)
	assert.False(t, changed2)
}
