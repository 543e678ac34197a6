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

// Package order provides a total term order used to orient permutative
// rules: a rule whose left- and right-hand sides agree up to reordering
// is only ever applied when doing so strictly decreases the target in
// this order, which is what guarantees termination for a rule set built
// entirely out of such rules.
//
// The order compares terms by a fixed per-shape rank first (so e.g. no
// Constant is ever ordered above any App regardless of name), then
// arity, then lexicographically component-by-component. This is a
// simplified lexicographic path order: sufficient to orient rules like
// commutativity deterministically, without claiming to be a
// general-purpose term-rewriting completion order.
package order

import (
	"fmt"

	"github.com/varro-lang/varro/pkg/term"
)

// IsLt reports whether a precedes b in the term order. When weak is
// true, it reports whether a does not follow b (i.e. a <= b).
func IsLt(a, b term.Term, weak bool) bool {
	c := Compare(a, b)
	if weak {
		return c <= 0
	}

	return c < 0
}

// Compare returns -1, 0 or 1 according to whether a is ordered before,
// equal to, or after b.
func Compare(a, b term.Term) int {
	if term.Same(a, b) {
		return 0
	}

	ra, rb := rank(a), rank(b)
	if ra != rb {
		return cmpInt(ra, rb)
	}

	switch x := a.(type) {
	case *term.Var:
		y := b.(*term.Var)
		return cmpInt(x.Index, y.Index)
	case *term.Constant:
		y := b.(*term.Constant)
		return cmpString(x.Name, y.Name)
	case *term.Sort:
		y := b.(*term.Sort)
		return cmpInt(int(x.Level), int(y.Level))
	case *term.Metavar:
		y := b.(*term.Metavar)
		return cmpInt(int(x.Id), int(y.Id))
	case *term.Value:
		y := b.(*term.Value)
		return cmpString(x.Lisp().String(true), y.Lisp().String(true))
	case *term.App:
		y := b.(*term.App)
		return compareApp(x, y)
	case *term.Lambda:
		y := b.(*term.Lambda)
		return compareBinder(x.Domain, x.Body, y.Domain, y.Body)
	case *term.Pi:
		y := b.(*term.Pi)
		return compareBinder(x.Domain, x.Body, y.Domain, y.Body)
	case *term.Let:
		y := b.(*term.Let)
		if c := Compare(x.Value, y.Value); c != 0 {
			return c
		}

		return Compare(x.Body, y.Body)
	default:
		panic(fmt.Sprintf("unknown term encountered: %s", term.String(a)))
	}
}

func compareApp(x, y *term.App) int {
	if c := cmpInt(len(x.Children), len(y.Children)); c != 0 {
		return c
	}

	for i := range x.Children {
		if c := Compare(x.Children[i], y.Children[i]); c != 0 {
			return c
		}
	}

	return 0
}

func compareBinder(domA, bodyA, domB, bodyB term.Term) int {
	if c := Compare(domA, domB); c != 0 {
		return c
	}

	return Compare(bodyA, bodyB)
}

func rank(t term.Term) int {
	switch t.(type) {
	case *term.Var:
		return 0
	case *term.Constant:
		return 1
	case *term.Sort:
		return 2
	case *term.Metavar:
		return 3
	case *term.Value:
		return 4
	case *term.App:
		return 5
	case *term.Lambda:
		return 6
	case *term.Pi:
		return 7
	case *term.Let:
		return 8
	default:
		panic(fmt.Sprintf("unknown term encountered: %s", term.String(t)))
	}
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func cmpString(a, b string) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
