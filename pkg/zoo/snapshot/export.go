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
package snapshot

import (
	"encoding/json"

	"github.com/rmzoo-go/rmzoo/pkg/zoo/fact"
	"github.com/rmzoo-go/rmzoo/pkg/zoo/kernel"
	"github.com/rmzoo-go/rmzoo/pkg/zoo/lattice"
)

// Document is the JSON rendering of a database for external tooling
// (web front ends, graph viewers), supplementing the original tool's
// node/edge/property export.
type Document struct {
	Version string          `json:"version"`
	Nodes   map[string]Node `json:"nodes"`
}

// Node is a single principal: its declared forms and the directed edges
// recording what is known between it and every other principal it has a
// relation with.
type Node struct {
	Label   string               `json:"label"`
	Primary bool                 `json:"primary"`
	Forms   []string             `json:"forms,omitempty"`
	Edges   map[string]EdgeProps `json:"edges,omitempty"`
}

// EdgeProps maps a compact operator string ("RCA->", "Pi11c", ...) to the
// rendered proof of that fact.
type EdgeProps map[string]string

// DocumentVersion is the format's own version string, independent of the
// snapshot binary format's MajorVersion/MinorVersion.
const DocumentVersion = "1.0"

// ToJSON renders db as a Document and marshals it, grounded on
// databaseToJSON.py's node/edge/property shape but flattened: every
// justification is rendered eagerly rather than split into a separate
// shared property table, since Go's JSON encoder has no use for the
// original's uid-based de-duplication.
func ToJSON(db *kernel.Database) ([]byte, error) {
	return json.MarshalIndent(toDocument(db), "", "  ")
}

func toDocument(db *kernel.Database) Document {
	principals := db.Registry.List()

	doc := Document{
		Version: DocumentVersion,
		Nodes:   make(map[string]Node, len(principals)),
	}

	for _, p := range principals {
		node := Node{
			Label:   p,
			Primary: db.Store.IsPrimary(p),
			Forms:   formNames(db.Store.Form(p)),
			Edges:   make(map[string]EdgeProps),
		}

		for _, q := range principals {
			if q == p {
				continue
			}

			props := edgeProperties(db, p, q)
			if len(props) > 0 {
				node.Edges[q] = props
			}
		}

		doc.Nodes[p] = node
	}

	return doc
}

func formNames(mask lattice.Form) []string {
	forms := lattice.Form(0).Iterate(mask)
	out := make([]string, 0, len(forms))

	for _, f := range forms {
		out = append(out, f.String())
	}

	return out
}

// edgeProperties collects, for every fact on file relating a to b, the
// operator string mapped to its rendered proof.
func edgeProperties(db *kernel.Database, a, b string) EdgeProps {
	out := make(EdgeProps)

	for _, r := range lattice.Reduction(0).Iterate(db.Store.Implies(a, b)) {
		addProperty(db, out, fact.New(a, fact.ImpliesOp(r), b))
	}

	for _, r := range lattice.Reduction(0).Iterate(db.Store.NotImplies(a, b)) {
		addProperty(db, out, fact.New(a, fact.NotImpliesOp(r), b))
	}

	for _, r := range lattice.Reduction(0).Iterate(db.Store.Equivalent(a, b)) {
		addProperty(db, out, fact.New(a, fact.EquivalentOp(r), b))
	}

	for _, f := range lattice.Form(0).Iterate(db.Store.Conservative(a, b)) {
		addProperty(db, out, fact.New(a, fact.ConservativeOp(f), b))
	}

	for _, f := range lattice.Form(0).Iterate(db.Store.NonConservative(a, b)) {
		addProperty(db, out, fact.New(a, fact.NonConservativeOp(f), b))
	}

	return out
}

func addProperty(db *kernel.Database, out EdgeProps, f fact.Fact) {
	if !db.Justify.Has(f) {
		return
	}

	rendered, err := db.Justify.Render(f)
	if err != nil {
		return
	}

	out[f.Op.String()] = rendered
}
