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
	"github.com/sirupsen/logrus"

	"github.com/rmzoo-go/rmzoo/pkg/zoo/fact"
	"github.com/rmzoo-go/rmzoo/pkg/zoo/justify"
	"github.com/rmzoo-go/rmzoo/pkg/zoo/kernel"
)

var log = logrus.StandardLogger()

// Load parses filename and asserts every entry it describes into db, in
// file order, mirroring rmupdater.py's parseDatabase driving addFact
// directly from each parse action. A fact with no justification is a fatal
// UnjustifiedFactError; a fact that contradicts one already on file
// surfaces the kernel's *kernel.ContradictionError unchanged, since both
// are fatal to ingestion per the engine's error handling design.
func Load(db *kernel.Database, filename string) error {
	f, err := ReadFile(filename)
	if err != nil {
		return err
	}

	entries, err := Parse(f)
	if err != nil {
		return err
	}

	log.Debugf("parsed %d entries from %s", len(entries), filename)

	for _, e := range entries {
		if err := apply(db, f, e); err != nil {
			return err
		}
	}

	return nil
}

func apply(db *kernel.Database, f *File, e Entry) error {
	switch entry := e.(type) {
	case FactEntry:
		return applyFact(db, f, entry)
	case FormEntry:
		db.Registry.Add(entry.Name)
		db.DeclareForm(entry.Name, entry.Form)

		return nil
	case PrimaryEntry:
		db.Registry.Add(entry.Name)
		db.Store.AddPrimary(entry.Name)

		return nil
	default:
		panic("unrecognized entry type")
	}
}

func applyFact(db *kernel.Database, f *File, entry FactEntry) error {
	if !entry.HasJustification {
		return &UnjustifiedFactError{Filename: f.Filename(), Fact: entry}
	}

	db.Registry.Add(entry.A)
	db.Registry.Add(entry.B)

	target := fact.New(entry.A, entry.Op, entry.B)

	_, err := db.AddFact(target, justify.Cite(entry.Justification))

	return err
}
