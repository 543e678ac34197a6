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
package term

import "github.com/varro-lang/varro/pkg/util/source/sexp"

// Constant refers to a declaration in the ambient environment by name.
// Whether it is opaque, a builtin, or unfoldable is a property of the
// environment (an external collaborator), not of the term itself.
type Constant struct {
	Name string
}

// MkConstant constructs a (possibly shared) constant reference.
func MkConstant(name string) Term {
	var t Term = &Constant{name}
	return intern(t)
}

// Lisp implementation for Term interface.
func (p *Constant) Lisp() sexp.SExp {
	return sexp.NewSymbol(p.Name)
}
