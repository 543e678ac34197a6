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

import (
	"fmt"

	"github.com/varro-lang/varro/pkg/util/source/sexp"
)

// Var is a de Bruijn indexed bound (or, relative to the ambient Context,
// free) variable.  Index 0 refers to the innermost enclosing binder.
type Var struct {
	Index int
}

// MkVar constructs a (possibly shared) variable reference.
func MkVar(index int) Term {
	var t Term = &Var{index}
	return intern(t)
}

// Lisp implementation for Term interface.
func (p *Var) Lisp() sexp.SExp {
	return sexp.NewSymbol(fmt.Sprintf("#%d", p.Index))
}
