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
package registry_test

import (
	"testing"

	"github.com/rmzoo-go/rmzoo/pkg/util/assert"
	"github.com/rmzoo-go/rmzoo/pkg/zoo/registry"
)

func Test_Registry_New_01(t *testing.T) {
	r := registry.New()
	assert.True(t, r.Has("RCA"))
}

func Test_Registry_Add_01(t *testing.T) {
	r := registry.New()
	canon := r.Add("B+A")
	assert.Equal(t, "A+B", canon)
	assert.True(t, r.Has("A+B"))
	assert.True(t, r.Has("A"))
	assert.True(t, r.Has("B"))
}

func Test_Registry_Add_02(t *testing.T) {
	r := registry.New()
	canon := r.Add("A+B+A")
	assert.Equal(t, "A+B", canon)
}

func Test_Registry_Canonicalize_01(t *testing.T) {
	assert.Equal(t, "A+B", registry.Canonicalize("B+A+B"))
}

func Test_Registry_AllConjunctsKnown_01(t *testing.T) {
	r := registry.New()
	r.Add("A")
	r.Add("B")
	assert.True(t, r.AllConjunctsKnown("A+B"))
	assert.False(t, r.AllConjunctsKnown("A+C"))
}

func Test_Registry_JoinPrinciples_Registered_01(t *testing.T) {
	r := registry.New()
	r.Add("A+B")

	canon, ok := r.JoinPrinciples("B", "A")
	assert.True(t, ok)
	assert.Equal(t, "A+B", canon)
}

func Test_Registry_JoinPrinciples_Unregistered_01(t *testing.T) {
	r := registry.New()
	r.Add("A")
	r.Add("B")

	canon, ok := r.JoinPrinciples("A", "B")
	assert.False(t, ok)
	assert.Equal(t, "A+B", canon)
}

func Test_Registry_List_01(t *testing.T) {
	r := registry.New()
	r.Add("WKL")
	r.Add("ACA")
	list := r.List()
	assert.Equal(t, 3, len(list))
	assert.Equal(t, "ACA", list[0])
	assert.Equal(t, "RCA", list[1])
	assert.Equal(t, "WKL", list[2])
}
