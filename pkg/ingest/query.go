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
)

// ParseQuery reads a single "<name> <op> <name>" expression off a query
// CLI's -q/-F argument, the same operator grammar a corpus fact uses minus
// the trailing justification.
func ParseQuery(s string) (a string, op fact.Op, b string, err error) {
	fields := strings.Fields(s)
	if len(fields) != 3 {
		return "", fact.Op{}, "", fmt.Errorf("expected \"<name> <op> <name>\", got %q", s)
	}

	if err := validateName(fields[0]); err != nil {
		return "", fact.Op{}, "", err
	}

	if err := validateName(fields[2]); err != nil {
		return "", fact.Op{}, "", err
	}

	op, swap, err := parseOperator(fields[1])
	if err != nil {
		return "", fact.Op{}, "", err
	}

	a, op, b = standardize(fields[0], op, swap, fields[2])

	return a, op, b, nil
}
