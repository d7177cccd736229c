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
	"testing"

	"github.com/rmzoo-go/rmzoo/pkg/ingest"
	"github.com/rmzoo-go/rmzoo/pkg/util/assert"
	"github.com/rmzoo-go/rmzoo/pkg/zoo/fact"
	"github.com/rmzoo-go/rmzoo/pkg/zoo/lattice"
)

func parse(t *testing.T, text string) []ingest.Entry {
	t.Helper()

	f := ingest.NewFile("fixture", text)

	entries, err := ingest.Parse(f)
	assert.Equal(t, nil, err)

	return entries
}

func Test_Parser_BareImplication_01(t *testing.T) {
	entries := parse(t, `WKL -> ACA "lemma"`)
	assert.Equal(t, 1, len(entries))

	fe := entries[0].(ingest.FactEntry)
	assert.Equal(t, "WKL", fe.A)
	assert.Equal(t, "ACA", fe.B)
	assert.Equal(t, fact.ImpliesOp(lattice.RCA), fe.Op)
	assert.Equal(t, "lemma", fe.Justification)
	assert.True(t, fe.HasJustification)
}

func Test_Parser_PrefixReduction_01(t *testing.T) {
	entries := parse(t, `WKL sW-> ACA "lemma"`)
	fe := entries[0].(ingest.FactEntry)
	assert.Equal(t, fact.ImpliesOp(lattice.SW), fe.Op)
}

func Test_Parser_SuffixAlias_01(t *testing.T) {
	entries := parse(t, `WKL <=_sW ACA "lemma"`)
	fe := entries[0].(ingest.FactEntry)
	assert.Equal(t, fact.ImpliesOp(lattice.SW), fe.Op)
	assert.Equal(t, "ACA", fe.A)
	assert.Equal(t, "WKL", fe.B)
}

func Test_Parser_SuffixAlias_02(t *testing.T) {
	entries := parse(t, `WKL </=_c ACA "lemma"`)
	fe := entries[0].(ingest.FactEntry)
	assert.Equal(t, fact.NotImpliesOp(lattice.C), fe.Op)
	assert.Equal(t, "ACA", fe.A)
	assert.Equal(t, "WKL", fe.B)
}

func Test_Parser_SuffixAlias_NoSwap_01(t *testing.T) {
	entries := parse(t, `WKL =>_sW ACA "lemma"`)
	fe := entries[0].(ingest.FactEntry)
	assert.Equal(t, fact.ImpliesOp(lattice.SW), fe.Op)
	assert.Equal(t, "WKL", fe.A)
	assert.Equal(t, "ACA", fe.B)
}

func Test_Parser_Equivalence_01(t *testing.T) {
	entries := parse(t, `WKL RCA<-> ACA "lemma"`)
	fe := entries[0].(ingest.FactEntry)
	assert.Equal(t, fact.EquivalentOp(lattice.RCA), fe.Op)
}

func Test_Parser_Conservation_01(t *testing.T) {
	entries := parse(t, `WKL Pi02c ACA "lemma"`)
	fe := entries[0].(ingest.FactEntry)
	assert.Equal(t, fact.ConservativeOp(lattice.Pi02), fe.Op)
}

func Test_Parser_NonConservation_01(t *testing.T) {
	entries := parse(t, `WKL nPi02c ACA "lemma"`)
	fe := entries[0].(ingest.FactEntry)
	assert.Equal(t, fact.NonConservativeOp(lattice.Pi02), fe.Op)
}

func Test_Parser_MultilineJustification_01(t *testing.T) {
	entries := parse(t, "WKL RCA-> ACA \"\"\"line one\nline two\"\"\"")
	fe := entries[0].(ingest.FactEntry)
	assert.Equal(t, "line one\nline two", fe.Justification)
}

func Test_Parser_UnjustifiedFact_01(t *testing.T) {
	entries := parse(t, `WKL RCA-> ACA`)
	fe := entries[0].(ingest.FactEntry)
	assert.False(t, fe.HasJustification)
}

func Test_Parser_Form_01(t *testing.T) {
	entries := parse(t, `WKL form Pi11`)
	fe := entries[0].(ingest.FormEntry)
	assert.Equal(t, "WKL", fe.Name)
	assert.Equal(t, lattice.Pi11, fe.Form)
}

func Test_Parser_Primary_01(t *testing.T) {
	entries := parse(t, `WKL is primary`)
	fe := entries[0].(ingest.PrimaryEntry)
	assert.Equal(t, "WKL", fe.Name)
}

func Test_Parser_Comment_01(t *testing.T) {
	entries := parse(t, "# a header comment\nWKL is primary\n# trailing\n")
	assert.Equal(t, 1, len(entries))
}

func Test_Parser_MultipleEntries_01(t *testing.T) {
	entries := parse(t, "A RCA-> B \"x\"\nB RCA-> C \"y\"\nA+B is primary\n")
	assert.Equal(t, 3, len(entries))
}

func Test_Parser_ConjunctionName_01(t *testing.T) {
	entries := parse(t, `A+B RCA-> C "x"`)
	fe := entries[0].(ingest.FactEntry)
	assert.Equal(t, "A+B", fe.A)
}

func Test_Parser_InvalidName_01(t *testing.T) {
	f := ingest.NewFile("fixture", `WK!L RCA-> ACA "x"`)

	_, err := ingest.Parse(f)
	assert.True(t, err != nil)
}

func Test_Parser_UnterminatedJustification_01(t *testing.T) {
	f := ingest.NewFile("fixture", `WKL RCA-> ACA "unterminated`)

	_, err := ingest.Parse(f)
	assert.True(t, err != nil)
}
