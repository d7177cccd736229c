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

// Span identifies a contiguous run of runes within a corpus file, by
// physical index rather than by substring, so a syntax error can later be
// mapped back to an enclosing line without re-scanning from the start.
type Span struct {
	start int
	end   int
}

// NewSpan constructs a span, checking the invariant start <= end.
func NewSpan(start, end int) Span {
	if start > end {
		panic("invalid span")
	}

	return Span{start, end}
}

// Start returns the index of the first rune covered by this span.
func (s Span) Start() int { return s.start }

// End returns one past the index of the last rune covered by this span.
func (s Span) End() int { return s.end }

// Length returns the number of runes covered by this span.
func (s Span) Length() int { return s.end - s.start }
