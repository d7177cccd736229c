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
package justify

import (
	"fmt"
	"strings"

	"github.com/rmzoo-go/rmzoo/pkg/zoo/fact"
)

// Proof rendering uses a two-character marker scheme so that nesting can be
// computed incrementally: each fact's own raw rendering begins with
// lineMarker+indentMarker, and quoting a raw rendering one level deeper
// (indentJust) inserts one extra indentMarker after every such occurrence.
// Only the final, fully-assembled string has the markers expanded into an
// actual newline plus four spaces of indentation per level.
const (
	lineMarker   = "*"
	indentMarker = "@"
)

var justMarker = lineMarker + indentMarker
var justIndented = justMarker + indentMarker

func indentJust(raw string) string {
	return strings.ReplaceAll(raw, justMarker, justIndented)
}

// Render returns the fully formatted proof of f: a human-readable tree
// with one derivation step per line, nested sub-proofs indented four
// spaces per level. It returns an error if f has never been justified.
func (s *Store) Render(f fact.Fact) (string, error) {
	if !s.Has(f) {
		return "", fmt.Errorf("no justification on file for %q", f)
	}

	raw := s.renderRaw(f)
	replacer := strings.NewReplacer(lineMarker, "\n", indentMarker, "    ")

	return replacer.Replace(raw), nil
}

// renderRaw computes (and memoizes) the unexpanded, marker-laden
// rendering of f, mirroring rmupdater.py's printJustification(...,
// formatted=False).
func (s *Store) renderRaw(f fact.Fact) string {
	if raw, ok := s.rendered[f]; ok {
		return raw
	}

	jst := s.justify[f]
	prefix := justMarker + f.String() + ": "

	var raw string

	if jst.Leaf {
		raw = prefix + jst.Text
	} else {
		var b strings.Builder
		b.WriteString(prefix)

		for _, r := range jst.Refs {
			if r.IsFact {
				b.WriteString(indentJust(s.renderRaw(r.Fact)))
			} else {
				b.WriteString(justIndented)
				b.WriteString(r.Text)
			}
		}

		raw = b.String()
	}

	s.rendered[f] = raw

	return raw
}
