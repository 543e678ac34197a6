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

// Let binds Value to a name within Body.  Body is expressed in the
// context extended with this binder; Value is expressed in the enclosing
// context.
type Let struct {
	Name  string
	Value Term
	Body  Term
}

// MkLet constructs a (possibly shared) let-binding.
func MkLet(name string, value, body Term) Term {
	var t Term = &Let{name, value, body}
	return intern(t)
}

// Lisp implementation for Term interface.
func (p *Let) Lisp() sexp.SExp {
	return sexp.NewList([]sexp.SExp{
		sexp.NewSymbol("let"),
		sexp.NewSymbol(p.Name),
		p.Value.Lisp(),
		p.Body.Lisp(),
	})
}
