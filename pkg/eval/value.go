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

// Package eval provides the reference normalizer for closed primitive
// expressions and builtin values. It supplies two concrete
// term.Primitive backings — field elements (backed by gnark-crypto's
// bls12-377 scalar field) and booleans — plus builtin definitions the
// environment can register so that pkg/simplify's evaluation step has
// something to normalize.
package eval

import (
	"github.com/consensys/gnark-crypto/ecc/bls12-377/fr"

	"github.com/varro-lang/varro/pkg/term"
	"github.com/varro-lang/varro/pkg/util/source/sexp"
)

// FieldElem is a closed numeral literal in the bls12-377 scalar field.
type FieldElem struct {
	Value fr.Element
}

// NewFieldElem constructs a Value term wrapping the field element n.
func NewFieldElem(n uint64) term.Term {
	var e fr.Element

	e.SetUint64(n)

	return term.MkValue(FieldElem{e})
}

// Lisp implementation for term.Primitive interface.
func (p FieldElem) Lisp() sexp.SExp {
	return sexp.NewSymbol(p.Value.String())
}

// Equal implementation for term.Primitive interface.
func (p FieldElem) Equal(other term.Primitive) bool {
	o, ok := other.(FieldElem)
	return ok && p.Value.Equal(&o.Value)
}

// Type implementation for term.Primitive interface.
func (p FieldElem) Type() term.Term {
	return term.MkConstant("Field")
}

// Add returns the field sum of p and q.
func (p FieldElem) Add(q FieldElem) FieldElem {
	var z fr.Element
	z.Add(&p.Value, &q.Value)

	return FieldElem{z}
}

// Mul returns the field product of p and q.
func (p FieldElem) Mul(q FieldElem) FieldElem {
	var z fr.Element
	z.Mul(&p.Value, &q.Value)

	return FieldElem{z}
}

// Bool is a closed boolean literal, e.g. the result of evaluating a
// decidable equality between two field elements.
type Bool bool

// NewBool constructs a Value term wrapping b.
func NewBool(b bool) term.Term {
	return term.MkValue(Bool(b))
}

// Lisp implementation for term.Primitive interface.
func (p Bool) Lisp() sexp.SExp {
	if p {
		return sexp.NewSymbol("true")
	}

	return sexp.NewSymbol("false")
}

// Equal implementation for term.Primitive interface.
func (p Bool) Equal(other term.Primitive) bool {
	o, ok := other.(Bool)
	return ok && p == o
}

// Type implementation for term.Primitive interface.
func (p Bool) Type() term.Term {
	return term.MkConstant("Bool")
}

// AsValue extracts the Primitive wrapped by t, if t is a Value node.
func AsValue(t term.Term) (term.Primitive, bool) {
	v, ok := t.(*term.Value)
	if !ok {
		return nil, false
	}

	return v.Prim, true
}

// IsValue reports whether t is a closed Value node.
func IsValue(t term.Term) bool {
	_, ok := AsValue(t)
	return ok
}
