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

// Pi is a dependent function type (or, when its codomain is a Sort of
// level 0, a universally quantified proposition).  Name is cosmetic;
// Domain is expressed in the enclosing context, Body in the context
// extended with this binder.
type Pi struct {
	Name   string
	Domain Term
	Body   Term
}

// MkPi constructs a (possibly shared) dependent product.
func MkPi(name string, domain, body Term) Term {
	var t Term = &Pi{name, domain, body}
	return intern(t)
}

// Arrow constructs a non-dependent function type domain -> codomain.
func Arrow(domain, codomain Term) Term {
	return MkPi("_", domain, Lift(codomain, 0, 1))
}

// IsArrow reports whether this Pi's body does not depend on its own
// binder, i.e. it is a non-dependent arrow type.
func (p *Pi) IsArrow() bool {
	return !HasVar(p.Body, 0)
}

// Lisp implementation for Term interface.
func (p *Pi) Lisp() sexp.SExp {
	return sexp.NewList([]sexp.SExp{
		sexp.NewSymbol("pi"),
		sexp.NewSymbol(p.Name),
		p.Domain.Lisp(),
		p.Body.Lisp(),
	})
}
