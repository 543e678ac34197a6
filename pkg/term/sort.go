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

// Sort is a universe, e.g. Prop (level 0) or Type u (level u).
type Sort struct {
	Level uint
}

// MkSort constructs a (possibly shared) universe at the given level.
func MkSort(level uint) Term {
	var t Term = &Sort{level}
	return intern(t)
}

// IsProp reports whether this sort is the impredicative proposition
// universe, by convention level 0.
func (p *Sort) IsProp() bool { return p.Level == 0 }

// Lisp implementation for Term interface.
func (p *Sort) Lisp() sexp.SExp {
	if p.IsProp() {
		return sexp.NewSymbol("Prop")
	}
	//
	return sexp.NewSymbol(fmt.Sprintf("Type%d", p.Level))
}
