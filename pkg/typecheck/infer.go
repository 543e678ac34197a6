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

// InferType implementation for Checker interface.
func (c *Reference) InferType(ctx *term.Context, t term.Term) (term.Term, error) {
	switch x := t.(type) {
	case *term.Var:
		if x.Index < 0 || x.Index >= ctx.Len() {
			return nil, fmt.Errorf("variable index %d out of range in context of length %d", x.Index, ctx.Len())
		}

		entry := ctx.At(x.Index)

		return term.Lift(entry.Type, 0, x.Index+1), nil
	case *term.Constant:
		def, ok := c.Env.FindObject(x.Name)
		if !ok {
			return nil, fmt.Errorf("unknown constant %q", x.Name)
		}

		return def.Type, nil
	case *term.Sort:
		return term.MkSort(x.Level + 1), nil
	case *term.Metavar:
		return nil, fmt.Errorf("cannot infer type of unresolved metavariable ?m%d", x.Id)
	case *term.Value:
		return x.Prim.Type(), nil
	case *term.App:
		return c.inferApp(ctx, x)
	case *term.Lambda:
		ctx.Push(x.Name, x.Domain)
		bodyType, err := c.InferType(ctx, x.Body)
		ctx.Pop()

		if err != nil {
			return nil, err
		}

		return term.MkPi(x.Name, x.Domain, bodyType), nil
	case *term.Pi:
		return c.inferPi(ctx, x)
	case *term.Let:
		return c.inferLet(ctx, x)
	default:
		panic(fmt.Sprintf("unknown term encountered: %s", term.String(t)))
	}
}

func (c *Reference) inferApp(ctx *term.Context, x *term.App) (term.Term, error) {
	result, err := c.InferType(ctx, x.Head())
	if err != nil {
		return nil, err
	}

	for _, arg := range x.Args() {
		pi, ok := c.EnsurePi(ctx, result)
		if !ok {
			return nil, fmt.Errorf("expected function type, found %s", term.String(result))
		}

		result = term.Subst(pi.Body, 0, arg)
	}

	return result, nil
}

func (c *Reference) inferPi(ctx *term.Context, x *term.Pi) (term.Term, error) {
	domSort, err := c.InferType(ctx, x.Domain)
	if err != nil {
		return nil, err
	}

	domSort = c.WHNF(ctx, domSort)

	ctx.Push(x.Name, x.Domain)
	codSort, err := c.InferType(ctx, x.Body)
	ctx.Pop()

	if err != nil {
		return nil, err
	}

	codSort = c.WHNF(ctx, codSort)

	return maxSort(domSort, codSort), nil
}

func (c *Reference) inferLet(ctx *term.Context, x *term.Let) (term.Term, error) {
	valType, err := c.InferType(ctx, x.Value)
	if err != nil {
		return nil, err
	}

	ctx.Push(x.Name, valType)
	bodyType, err := c.InferType(ctx, x.Body)
	ctx.Pop()

	if err != nil {
		return nil, err
	}

	return term.Subst(bodyType, 0, x.Value), nil
}

// maxSort implements this calculus's impredicative Prop: a Pi whose
// codomain is Prop is itself in Prop regardless of the domain's sort,
// otherwise the Pi lives in the larger of the two sorts.
func maxSort(dom, cod term.Term) term.Term {
	codSort, ok := cod.(*term.Sort)
	if ok && codSort.IsProp() {
		return cod
	}

	domSort, ok2 := dom.(*term.Sort)
	if !ok || !ok2 {
		return cod
	}

	if domSort.Level > codSort.Level {
		return dom
	}

	return cod
}

// EnsurePi implementation for Checker interface.
func (c *Reference) EnsurePi(ctx *term.Context, t term.Term) (*term.Pi, bool) {
	pi, ok := c.WHNF(ctx, t).(*term.Pi)
	return pi, ok
}

// IsProposition implementation for Checker interface.
func (c *Reference) IsProposition(ctx *term.Context, t term.Term) bool {
	ty, err := c.InferType(ctx, t)
	if err != nil {
		return false
	}

	sort, ok := c.WHNF(ctx, ty).(*term.Sort)

	return ok && sort.IsProp()
}
