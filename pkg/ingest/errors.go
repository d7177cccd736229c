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
	"errors"
	"fmt"
)

var errEmptyName = errors.New("expected a principle name")

// invalidNameError reports a character outside the principle-name alphabet.
type invalidNameError struct {
	token string
	char  rune
}

func (e *invalidNameError) Error() string {
	return fmt.Sprintf("%q is not a valid principle name: unexpected character %q", e.token, e.char)
}

// UnjustifiedFactError reports a fact entry with no trailing justification
// string, fatal during ingestion per rmupdater.py's addUnjustified.
type UnjustifiedFactError struct {
	Filename string
	Fact     FactEntry
}

func (e *UnjustifiedFactError) Error() string {
	return fmt.Sprintf("%s: the fact \"%s %s %s\" is not justified", e.Filename, e.Fact.A, e.Fact.Op, e.Fact.B)
}
