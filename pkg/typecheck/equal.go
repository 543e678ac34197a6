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
package typecheck

import (
	"fmt"

	"github.com/varro-lang/varro/pkg/term"
)

// IsConvertible implementation for Checker interface.
func (c *Reference) IsConvertible(ctx *term.Context, a, b term.Term) bool {
	aw := c.WHNF(ctx, a)
	bw := c.WHNF(ctx, b)

	if as, ok := aw.(*term.Sort); ok {
		if bs, ok := bw.(*term.Sort); ok {
			return as.Level <= bs.Level
		}
	}

	return c.IsDefinitionallyEqual(ctx, a, b)
}

// IsDefinitionallyEqual implementation for Checker interface.
func (c *Reference) IsDefinitionallyEqual(ctx *term.Context, a, b term.Term) bool {
	a = c.WHNF(ctx, a)
	b = c.WHNF(ctx, b)

	if term.Same(a, b) {
		return true
	}

	switch x := a.(type) {
	case *term.Var:
		y, ok := b.(*term.Var)
		return ok && x.Index == y.Index
	case *term.Constant:
		y, ok := b.(*term.Constant)
		return ok && x.Name == y.Name
	case *term.Sort:
		y, ok := b.(*term.Sort)
		return ok && x.Level == y.Level
	case *term.Metavar:
		y, ok := b.(*term.Metavar)
		return ok && x.Id == y.Id
	case *term.Value:
		y, ok := b.(*term.Value)
		return ok && x.Prim.Equal(y.Prim)
	case *term.App:
		return c.appEqual(ctx, x, a, b)
	case *term.Lambda:
		y, ok := b.(*term.Lambda)
		if !ok {
			return c.etaEqual(ctx, a, b)
		}

		return c.binderEqual(ctx, x.Name, x.Domain, x.Body, y.Domain, y.Body)
	case *term.Pi:
		y, ok := b.(*term.Pi)
		if !ok {
			return false
		}

		return c.binderEqual(ctx, x.Name, x.Domain, x.Body, y.Domain, y.Body)
	default:
		panic(fmt.Sprintf("unknown term encountered: %s", term.String(a)))
	}
}

func (c *Reference) appEqual(ctx *term.Context, x *term.App, a, b term.Term) bool {
	y, ok := b.(*term.App)
	if !ok || len(x.Children) != len(y.Children) {
		return c.etaEqual(ctx, a, b)
	}

	for i := range x.Children {
		if !c.IsDefinitionallyEqual(ctx, x.Children[i], y.Children[i]) {
			return c.etaEqual(ctx, a, b)
		}
	}

	return true
}

func (c *Reference) binderEqual(ctx *term.Context, name string, domA, bodyA, domB, bodyB term.Term) bool {
	if !c.IsDefinitionallyEqual(ctx, domA, domB) {
		return false
	}

	ctx.Push(name, domA)
	eq := c.IsDefinitionallyEqual(ctx, bodyA, bodyB)
	ctx.Pop()

	return eq
}

// etaEqual compares a and b when one of them is a lambda and the other
// is not, by eta-expanding the non-lambda side: g ~ (lambda x. g x).
func (c *Reference) etaEqual(ctx *term.Context, a, b term.Term) bool {
	if lam, ok := a.(*term.Lambda); ok {
		expanded := term.MkApp(term.Lift(b, 0, 1), term.MkVar(0))

		ctx.Push(lam.Name, lam.Domain)
		eq := c.IsDefinitionallyEqual(ctx, lam.Body, expanded)
		ctx.Pop()

		return eq
	}

	if lam, ok := b.(*term.Lambda); ok {
		expanded := term.MkApp(term.Lift(a, 0, 1), term.MkVar(0))

		ctx.Push(lam.Name, lam.Domain)
		eq := c.IsDefinitionallyEqual(ctx, expanded, lam.Body)
		ctx.Pop()

		return eq
	}

	return false
}
