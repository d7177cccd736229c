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
package lattice_test

import (
	"testing"

	"github.com/rmzoo-go/rmzoo/pkg/util/assert"
	"github.com/rmzoo-go/rmzoo/pkg/zoo/lattice"
)

func Test_Reduction_Weaker_01(t *testing.T) {
	// sW is the strongest reduction; establishing it must establish every
	// other reduction except RCA, which sits on a separate branch above w.
	w := lattice.Reduction(0).Weaker(lattice.SW)
	for _, r := range []lattice.Reduction{lattice.W, lattice.C, lattice.SC, lattice.GW, lattice.BigW, lattice.SW} {
		assert.True(t, lattice.Reduction(0).IsPresent(r, w), "expected %v present in weaker(sW)", r)
	}
	assert.False(t, lattice.Reduction(0).IsPresent(lattice.RCA, w), "expected RCA absent from weaker(sW)")
}

func Test_Reduction_Weaker_02(t *testing.T) {
	// w is the weakest reduction; nothing but itself follows from it.
	w := lattice.Reduction(0).Weaker(lattice.W)
	assert.Equal(t, lattice.W, w)
}

func Test_Reduction_Stronger_01(t *testing.T) {
	s := lattice.Reduction(0).Stronger(lattice.W)
	for _, r := range []lattice.Reduction{lattice.W, lattice.RCA, lattice.C, lattice.SC, lattice.GW, lattice.BigW, lattice.SW} {
		assert.True(t, lattice.Reduction(0).IsPresent(r, s), "expected %v present in stronger(w)", r)
	}
}

func Test_Reduction_FromString_01(t *testing.T) {
	r, err := lattice.ReductionFromString("")
	assert.Equal(t, nil, err)
	assert.Equal(t, lattice.RCA, r)
}

func Test_Reduction_FromString_02(t *testing.T) {
	r, err := lattice.ReductionFromString("gc")
	assert.Equal(t, nil, err)
	assert.Equal(t, lattice.W, r)
}

func Test_Reduction_FromString_03(t *testing.T) {
	_, err := lattice.ReductionFromString("bogus")
	assert.True(t, err != nil)
}

func Test_Reduction_Strongest_01(t *testing.T) {
	mask := lattice.W | lattice.RCA | lattice.C
	assert.Equal(t, lattice.C, lattice.Reduction(0).Strongest(mask))
}

func Test_Form_Weaker_01(t *testing.T) {
	// The two edges named explicitly in the source material must hold.
	assert.True(t, lattice.Form(0).IsPresent(lattice.Pi03, lattice.Form(0).Weaker(lattice.Sig02)))
	assert.True(t, lattice.Form(0).IsPresent(lattice.RPi12, lattice.Form(0).Weaker(lattice.Pi11)))
}

func Test_Form_Weaker_02(t *testing.T) {
	// Pi13 is the most complex form; its weaker-set includes the simplest.
	w := lattice.Form(0).Weaker(lattice.Pi13)
	assert.True(t, lattice.Form(0).IsPresent(lattice.Pi02, w))
}

func Test_Form_FromString_01(t *testing.T) {
	f, err := lattice.FormFromString("uPi03")
	assert.Equal(t, nil, err)
	assert.Equal(t, lattice.UPi03, f)
}

func Test_Form_Iterate_01(t *testing.T) {
	mask := lattice.Pi02 | lattice.Pi13
	got := lattice.Form(0).Iterate(mask)
	assert.Equal(t, 2, len(got))
	assert.Equal(t, lattice.Pi02, got[0])
	assert.Equal(t, lattice.Pi13, got[1])
}
