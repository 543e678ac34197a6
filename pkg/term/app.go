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

// App represents the application of a head term to one or more arguments,
// all at once: Children[0] is the head, Children[1:] are the arguments,
// left to right.  An App always has at least two children.  Flattening
// applications this way (rather than curried binary nodes) is what lets
// the congruence driver (pkg/simplify) walk arguments against a single
// function-type telescope.
type App struct {
	Children []Term
}

// MkApp constructs an application node from a head and one or more
// arguments.
func MkApp(head Term, args ...Term) Term {
	if len(args) == 0 {
		panic("MkApp requires at least one argument")
	}
	//
	children := make([]Term, 0, len(args)+1)
	children = append(children, head)
	children = append(children, args...)
	var t Term = &App{children}
	//
	return intern(t)
}

// WithChildren rebuilds this application with a (possibly) new head and
// argument list, preserving arity.
func (p *App) WithChildren(children []Term) Term {
	if len(children) != len(p.Children) {
		panic("WithChildren must preserve arity")
	}
	//
	var t Term = &App{children}
	return intern(t)
}

// Head returns the function being applied.
func (p *App) Head() Term { return p.Children[0] }

// Args returns the arguments, left to right.
func (p *App) Args() []Term { return p.Children[1:] }

// Lisp implementation for Term interface.
func (p *App) Lisp() sexp.SExp {
	if len(p.Children) < 2 {
		panic(fmt.Sprintf("malformed application with %d children", len(p.Children)))
	}
	//
	elements := make([]sexp.SExp, len(p.Children))
	//
	for i, c := range p.Children {
		elements[i] = c.Lisp()
	}
	//
	return sexp.NewList(elements)
}
