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

// Lambda is a binder introducing a function value.  Name is cosmetic
// (binding is by de Bruijn index); Domain is the binder's declared type,
// expressed in the enclosing context; Body is expressed in the context
// extended with this binder.
type Lambda struct {
	Name   string
	Domain Term
	Body   Term
}

// MkLambda constructs a (possibly shared) lambda.
func MkLambda(name string, domain, body Term) Term {
	var t Term = &Lambda{name, domain, body}
	return intern(t)
}

// Lisp implementation for Term interface.
func (p *Lambda) Lisp() sexp.SExp {
	return sexp.NewList([]sexp.SExp{
		sexp.NewSymbol("lambda"),
		sexp.NewSymbol(p.Name),
		p.Domain.Lisp(),
		p.Body.Lisp(),
	})
}
