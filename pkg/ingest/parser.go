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
	"strings"
	"unicode"

	"github.com/rmzoo-go/rmzoo/pkg/zoo/fact"
	"github.com/rmzoo-go/rmzoo/pkg/zoo/lattice"
)

// nameExtra is the set of punctuation a principle name may contain beyond
// letters and digits, matching rmupdater.py's pyparsing Word alphabet
// ("_+^{}\$"). The '+' in it is what lets a conjunction be written and
// read back as a single name token.
const nameExtra = "_+^{}\\$"

// Entry is one parsed corpus statement: a FactEntry, a FormEntry, or a
// PrimaryEntry.
type Entry interface {
	entry()
}

// FactEntry is a parsed "<name> <op> <name>" line, with or without a
// trailing quoted justification.
type FactEntry struct {
	A, B             string
	Op               fact.Op
	Justification    string
	HasJustification bool
	Span             Span
}

func (FactEntry) entry() {}

// FormEntry is a parsed "<name> form <Form>" line.
type FormEntry struct {
	Name string
	Form lattice.Form
	Span Span
}

func (FormEntry) entry() {}

// PrimaryEntry is a parsed "<name> is primary" line.
type PrimaryEntry struct {
	Name string
	Span Span
}

func (PrimaryEntry) entry() {}

// Parse reads every entry out of f, in file order, stopping at the first
// syntax error.
func Parse(f *File) ([]Entry, error) {
	p := &parser{file: f, runes: f.contents}

	var entries []Entry

	for {
		p.skipSpaceAndComments()

		if p.atEOF() {
			return entries, nil
		}

		entry, err := p.parseEntry()
		if err != nil {
			return nil, err
		}

		entries = append(entries, entry)
	}
}

type parser struct {
	file  *File
	runes []rune
	pos   int
}

func (p *parser) atEOF() bool { return p.pos >= len(p.runes) }

func (p *parser) peek() (rune, bool) {
	if p.atEOF() {
		return 0, false
	}

	return p.runes[p.pos], true
}

func (p *parser) skipSpaceAndComments() {
	for {
		r, ok := p.peek()
		if !ok {
			return
		}

		if unicode.IsSpace(r) {
			p.pos++
			continue
		}

		if r == '#' {
			for !p.atEOF() && p.runes[p.pos] != '\n' {
				p.pos++
			}

			continue
		}

		return
	}
}

// readWord reads a maximal run of non-whitespace runes, the generic token
// unit for names and operators alike: the grammar never requires knowing a
// token's category before its boundaries are found.
func (p *parser) readWord() (string, Span) {
	start := p.pos

	for {
		r, ok := p.peek()
		if !ok || unicode.IsSpace(r) {
			break
		}

		p.pos++
	}

	return string(p.runes[start:p.pos]), Span{start, p.pos}
}

func (p *parser) parseEntry() (Entry, error) {
	nameStart := p.pos

	a, _ := p.readWord()
	if err := validateName(a); err != nil {
		return nil, p.file.syntaxError(Span{nameStart, p.pos}, err.Error())
	}

	p.skipSpaceAndComments()

	second, secondSpan := p.readWord()

	if second == "form" {
		p.skipSpaceAndComments()

		formTok, formSpan := p.readWord()

		frm, err := lattice.FormFromString(formTok)
		if err != nil {
			return nil, p.file.syntaxError(formSpan, err.Error())
		}

		return FormEntry{Name: a, Form: frm, Span: Span{nameStart, p.pos}}, nil
	}

	if second == "is" {
		p.skipSpaceAndComments()

		kw, kwSpan := p.readWord()
		if kw != "primary" {
			return nil, p.file.syntaxError(kwSpan, "expected \"primary\" after \"is\"")
		}

		return PrimaryEntry{Name: a, Span: Span{nameStart, p.pos}}, nil
	}

	op, swap, err := parseOperator(second)
	if err != nil {
		return nil, p.file.syntaxError(secondSpan, err.Error())
	}

	p.skipSpaceAndComments()

	bStart := p.pos

	b, _ := p.readWord()
	if err := validateName(b); err != nil {
		return nil, p.file.syntaxError(Span{bStart, p.pos}, err.Error())
	}

	endBeforeJustification := p.pos

	p.skipSpaceAndComments()

	just, hasJust, err := p.tryReadJustification()
	if err != nil {
		return nil, err
	}

	span := Span{nameStart, p.pos}
	if !hasJust {
		span = Span{nameStart, endBeforeJustification}
	}

	a, op, b = standardize(a, op, swap, b)

	return FactEntry{A: a, Op: op, B: b, Justification: just, HasJustification: hasJust, Span: span}, nil
}

// tryReadJustification reads a quoted justification if the next character
// is a double quote, supporting both the single-line "..." form and the
// multiline """...""" form. It returns hasJust=false, with no error and no
// position change, when no quote is present: absence of a justification is
// a valid (if fatal-downstream) parse, not a syntax error.
func (p *parser) tryReadJustification() (string, bool, error) {
	r, ok := p.peek()
	if !ok || r != '"' {
		return "", false, nil
	}

	start := p.pos

	if p.hasPrefix(`"""`) {
		p.pos += 3

		contentStart := p.pos

		idx := indexOf(p.runes[p.pos:], `"""`)
		if idx < 0 {
			return "", false, p.file.syntaxError(Span{start, len(p.runes)}, "unterminated triple-quoted justification")
		}

		content := string(p.runes[contentStart : contentStart+idx])
		p.pos = contentStart + idx + 3

		return content, true, nil
	}

	p.pos++

	contentStart := p.pos

	for {
		r, ok := p.peek()
		if !ok {
			return "", false, p.file.syntaxError(Span{start, p.pos}, "unterminated justification")
		}

		if r == '"' {
			content := string(p.runes[contentStart:p.pos])
			p.pos++

			return content, true, nil
		}

		if r == '\n' {
			return "", false, p.file.syntaxError(Span{start, p.pos}, "unterminated justification")
		}

		p.pos++
	}
}

func (p *parser) hasPrefix(s string) bool {
	if p.pos+len(s) > len(p.runes) {
		return false
	}

	return string(p.runes[p.pos:p.pos+len(s)]) == s
}

func indexOf(haystack []rune, needle string) int {
	n := []rune(needle)

	for i := 0; i+len(n) <= len(haystack); i++ {
		if string(haystack[i:i+len(n)]) == needle {
			return i
		}
	}

	return -1
}

// validateName checks that a token uses only the principle-name alphabet:
// letters, digits, and the conjunction/subscript punctuation rmupdater.py's
// grammar allows.
func validateName(s string) error {
	if s == "" {
		return errEmptyName
	}

	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || strings.ContainsRune(nameExtra, r) {
			continue
		}

		return &invalidNameError{s, r}
	}

	return nil
}
