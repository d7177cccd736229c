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
package ingest_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rmzoo-go/rmzoo/pkg/ingest"
	"github.com/rmzoo-go/rmzoo/pkg/util/assert"
	"github.com/rmzoo-go/rmzoo/pkg/zoo/kernel"
	"github.com/rmzoo-go/rmzoo/pkg/zoo/lattice"
)

func writeFixture(t *testing.T, contents string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "corpus.txt")
	assert.Equal(t, nil, os.WriteFile(path, []byte(contents), 0o644))

	return path
}

func Test_Ingest_Load_01(t *testing.T) {
	path := writeFixture(t, ""+
		"WKL RCA-> ACA \"well known lemma\"\n"+
		"WKL form Pi11\n"+
		"WKL is primary\n")

	db := kernel.New()
	assert.Equal(t, nil, ingest.Load(db, path))

	assert.True(t, db.Registry.Has("WKL"))
	assert.True(t, db.Registry.Has("ACA"))
	assert.True(t, db.Store.IsPrimary("WKL"))

	mask := db.Store.Form("WKL")
	assert.True(t, lattice.Form(0).IsPresent(lattice.Pi11, mask))
}

func Test_Ingest_Load_UnjustifiedFact_01(t *testing.T) {
	path := writeFixture(t, "WKL RCA-> ACA\n")

	db := kernel.New()
	err := ingest.Load(db, path)
	assert.True(t, err != nil)

	var unjustified *ingest.UnjustifiedFactError
	assert.True(t, errors.As(err, &unjustified))
}

func Test_Ingest_Load_Contradiction_01(t *testing.T) {
	path := writeFixture(t, ""+
		"A sW-> B \"x\"\n"+
		"A sW-|> B \"y\"\n")

	db := kernel.New()
	err := ingest.Load(db, path)
	assert.True(t, err != nil)
}

func Test_Ingest_Load_Conjunction_01(t *testing.T) {
	path := writeFixture(t, "A+B RCA-> C \"x\"\n")

	db := kernel.New()
	assert.Equal(t, nil, ingest.Load(db, path))

	assert.True(t, db.Registry.Has("A+B"))
	assert.True(t, db.Registry.Has("A"))
	assert.True(t, db.Registry.Has("B"))
}
