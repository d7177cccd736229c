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
package query

import (
	"github.com/rmzoo-go/rmzoo/pkg/zoo/registry"
)

// View is a read-only restriction of a database's principal universe to a
// named sub-class, supplementing rmzoo.py's "-r CLASS" flag. The DOT
// renderer that originally consumed it is out of scope, and Resolve does
// not take a View: it searches the whole registry.
type View struct {
	Principals []string
	Primary    []string
}

// Restrict builds a View containing only the named principals, erroring if
// any of them is not registered.
func Restrict(reg *registry.Registry, primary func(string) bool, principals ...string) (*View, error) {
	v := &View{Principals: make([]string, 0, len(principals))}

	for _, p := range principals {
		if !reg.Has(p) {
			return nil, &registry.UnknownPrincipleError{Name: p}
		}

		v.Principals = append(v.Principals, p)

		if primary(p) {
			v.Primary = append(v.Primary, p)
		}
	}

	return v, nil
}

// Contains reports whether p is within the view's restricted universe.
func (v *View) Contains(p string) bool {
	for _, q := range v.Principals {
		if q == p {
			return true
		}
	}

	return false
}
