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

// Metavar is a placeholder standing for a yet-undetermined term, e.g. a
// substitution slot produced by the higher-order matcher (pkg/match)
// before it has been filled in.
type Metavar struct {
	Id uint64
}

// MkMetavar constructs a (possibly shared) metavariable reference.
func MkMetavar(id uint64) Term {
	var t Term = &Metavar{id}
	return intern(t)
}

// Lisp implementation for Term interface.
func (p *Metavar) Lisp() sexp.SExp {
	return sexp.NewSymbol(fmt.Sprintf("?m%d", p.Id))
}
