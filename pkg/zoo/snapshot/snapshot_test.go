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
package snapshot_test

import (
	"errors"
	"testing"

	"github.com/rmzoo-go/rmzoo/pkg/util/assert"
	"github.com/rmzoo-go/rmzoo/pkg/zoo/fact"
	"github.com/rmzoo-go/rmzoo/pkg/zoo/justify"
	"github.com/rmzoo-go/rmzoo/pkg/zoo/kernel"
	"github.com/rmzoo-go/rmzoo/pkg/zoo/lattice"
	"github.com/rmzoo-go/rmzoo/pkg/zoo/snapshot"
)

func Test_Snapshot_RoundTrip_01(t *testing.T) {
	db := kernel.New()
	db.Registry.Add("WKL")
	db.Registry.Add("ACA")
	db.DeclareForm("WKL", lattice.Pi11)
	db.Store.AddPrimary("WKL")

	_, err := db.AddFact(fact.New("ACA", fact.ImpliesOp(lattice.SW), "WKL"), justify.Cite("lemma"))
	assert.Equal(t, nil, err)

	data, err := snapshot.Encode(db, nil)
	assert.Equal(t, nil, err)

	restored, err := snapshot.Decode(data)
	assert.Equal(t, nil, err)

	mask := restored.Store.Implies("ACA", "WKL")
	assert.True(t, lattice.Reduction(0).IsPresent(lattice.SW, mask))
	assert.True(t, restored.Store.IsPrimary("WKL"))
	assert.True(t, lattice.Form(0).IsPresent(lattice.Pi11, restored.Store.Form("WKL")))
	assert.True(t, restored.Registry.Has("ACA"))

	_, ok := restored.Justify.Get(fact.New("ACA", fact.ImpliesOp(lattice.SW), "WKL"))
	assert.True(t, ok)
}

func Test_Snapshot_RoundTrip_WithMetadata_01(t *testing.T) {
	db := kernel.New()
	db.Registry.Add("WKL")

	data, err := snapshot.Encode(db, []byte(`{"source":"test-corpus"}`))
	assert.Equal(t, nil, err)

	restored, err := snapshot.Decode(data)
	assert.Equal(t, nil, err)
	assert.True(t, restored.Registry.Has("WKL"))
}

func Test_Snapshot_Decode_RejectsGarbage_01(t *testing.T) {
	_, err := snapshot.Decode([]byte("not a snapshot at all"))
	assert.True(t, err != nil)
}

func Test_Snapshot_Decode_RejectsVersionMismatch_01(t *testing.T) {
	db := kernel.New()
	data, err := snapshot.Encode(db, nil)
	assert.Equal(t, nil, err)

	corrupted := append([]byte(nil), data...)
	corrupted[9] = 0xFF

	_, err = snapshot.Decode(corrupted)
	assert.True(t, err != nil)

	var verErr *snapshot.VersionError
	assert.True(t, errors.As(err, &verErr))
}
