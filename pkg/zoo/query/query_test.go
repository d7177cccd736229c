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
package query_test

import (
	"testing"

	"github.com/rmzoo-go/rmzoo/pkg/util/assert"
	"github.com/rmzoo-go/rmzoo/pkg/zoo/derive"
	"github.com/rmzoo-go/rmzoo/pkg/zoo/fact"
	"github.com/rmzoo-go/rmzoo/pkg/zoo/justify"
	"github.com/rmzoo-go/rmzoo/pkg/zoo/kernel"
	"github.com/rmzoo-go/rmzoo/pkg/zoo/lattice"
	"github.com/rmzoo-go/rmzoo/pkg/zoo/query"
)

func Test_Query_Resolve_ConjunctionSubstitution_01(t *testing.T) {
	db := kernel.New()
	db.Registry.Add("A")
	db.Registry.Add("B")
	db.Registry.Add("A2")
	db.Registry.Add("A2+B")
	db.Registry.Add("C")

	_, err := db.AddFact(fact.New("A", fact.EquivalentOp(lattice.RCA), "A2"), justify.Cite("A and A2 coincide"))
	assert.Equal(t, nil, err)

	_, err = db.AddFact(fact.New("A2+B", fact.ImpliesOp(lattice.RCA), "C"), justify.Cite("lemma"))
	assert.Equal(t, nil, err)

	err = derive.Run(db)
	assert.Equal(t, nil, err)

	result, err := query.Resolve(db, "A+B", fact.ImpliesOp(lattice.RCA), "C")
	assert.Equal(t, nil, err)
	assert.True(t, result.Hit)
	assert.True(t, len(result.Proof) > 0)
}

func Test_Query_Resolve_UnknownPrinciple_01(t *testing.T) {
	db := kernel.New()
	db.Registry.Add("WKL")

	result, err := query.Resolve(db, "WKL", fact.ImpliesOp(lattice.RCA), "GHOST")
	assert.Equal(t, nil, err)
	assert.False(t, result.Hit)
	assert.True(t, len(result.Advice) > 0)
}

func Test_Query_Resolve_ConjunctOfKnownPrinciples_01(t *testing.T) {
	db := kernel.New()
	db.Registry.Add("A")
	db.Registry.Add("B")

	result, err := query.Resolve(db, "A+B", fact.ImpliesOp(lattice.RCA), "A")
	assert.Equal(t, nil, err)
	assert.False(t, result.Hit)
	assert.True(t, len(result.Advice) > 0)
}

func Test_Query_Resolve_Miss_01(t *testing.T) {
	db := kernel.New()
	db.Registry.Add("WKL")
	db.Registry.Add("ACA")

	result, err := query.Resolve(db, "WKL", fact.ImpliesOp(lattice.SW), "ACA")
	assert.Equal(t, nil, err)
	assert.False(t, result.Hit)
	assert.Equal(t, "", result.Contradiction)
}

func Test_Query_Resolve_ContradictionProbe_01(t *testing.T) {
	db := kernel.New()
	db.Registry.Add("A")
	db.Registry.Add("B")

	db.Justify.Add(fact.New("A", fact.NotImpliesOp(lattice.SW), "B"), justify.Cite("inconsistent fixture"))

	result, err := query.Resolve(db, "A", fact.ImpliesOp(lattice.SW), "B")
	assert.Equal(t, nil, err)
	assert.False(t, result.Hit)
	assert.True(t, len(result.Contradiction) > 0)
}
