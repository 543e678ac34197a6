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

// Value wraps an opaque semantic primitive produced by the
// normalizer/evaluator collaborator (pkg/eval), e.g. a field-element
// literal or a boolean.  The simplifier core never inspects Prim beyond
// calling its Equal/Lisp methods; all arithmetic is delegated to pkg/eval.
type Value struct {
	Prim Primitive
}

// MkValue constructs a (possibly shared) value node wrapping prim.
func MkValue(prim Primitive) Term {
	var t Term = &Value{prim}
	return intern(t)
}

// Lisp implementation for Term interface.
func (p *Value) Lisp() sexp.SExp {
	return p.Prim.Lisp()
}
