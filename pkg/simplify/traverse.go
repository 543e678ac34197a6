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
package simplify

import (
	"fmt"

	"github.com/varro-lang/varro/pkg/proof"
	"github.com/varro-lang/varro/pkg/term"
	"github.com/varro-lang/varro/pkg/typecheck"
)

// simplify is the traversal core: it ticks the step budget, consults
// the cache, dispatches on e's shape, and memoizes the result.
func (s *Session) simplify(e term.Term, ctx *term.Context) (Result, error) {
	if err := s.tick(); err != nil {
		return Result{}, err
	}

	if r, ok := s.cacheGet(e); ok {
		return r, nil
	}

	r, err := s.dispatch(e, ctx)
	if err != nil {
		return Result{}, err
	}

	s.cacheSet(e, r)

	return r, nil
}

func (s *Session) dispatch(e term.Term, ctx *term.Context) (Result, error) {
	switch t := e.(type) {
	case *term.Var, *term.Sort, *term.Metavar, *term.Value:
		// Deliberately unhandled branches (simplify_var and friends):
		// always reflexive, never errors.
		return Refl(e), nil
	case *term.Constant:
		return s.simplifyConstant(t, ctx)
	case *term.App:
		return s.simplifyApp(t, ctx)
	case *term.Lambda:
		return s.simplifyLambda(t, ctx)
	case *term.Pi:
		return s.simplifyPi(t, ctx)
	case *term.Let:
		return s.simplify(term.Subst(t.Body, 0, t.Value), ctx)
	default:
		panic(fmt.Sprintf("simplify: unknown term shape %T", e))
	}
}

// simplifyConstant implements the delta/evaluation step, then falls
// back to rewrite for opaque (or otherwise untouched) constants.
func (s *Session) simplifyConstant(c *term.Constant, ctx *term.Context) (Result, error) {
	def, ok := s.Env.FindObject(c.Name)
	if ok && !def.Opaque {
		if s.Options.Unfold && def.Body != nil {
			if s.Options.SinglePass {
				return Refl(def.Body), nil
			}

			return s.simplify(def.Body, ctx)
		}

		if s.Options.Eval && def.Builtin && def.Eval != nil {
			if v, ok := def.Eval(nil); ok {
				return Refl(v), nil
			}
		}
	}

	return s.rewrite(c, Refl(c), ctx)
}

// simplifyLambda descends under the binder, extending the context; a
// heterogeneous body result is left deliberately unhandled (returns
// refl), matching the core's documented scope.
func (s *Session) simplifyLambda(l *term.Lambda, ctx *term.Context) (Result, error) {
	ctx.Push(l.Name, l.Domain)
	bodyRes, err := s.simplify(l.Body, ctx)
	ctx.Pop()

	if err != nil {
		return Result{}, err
	}

	if bodyRes.Heq || term.Same(bodyRes.Out, l.Body) {
		return s.rewriteLambda(l, Refl(l), ctx)
	}

	newLam := term.MkLambda(l.Name, l.Domain, bodyRes.Out)

	var p term.Term
	if s.Options.Proofs && !bodyRes.IsRefl() {
		pointwise := term.MkLambda(l.Name, l.Domain, bodyRes.Proof)
		p = proof.Funext(l.Domain, l, newLam, pointwise)
	}

	return s.rewriteLambda(l, Proved(newLam, p, false), ctx)
}

// rewriteLambda applies eta-contraction (if eligible and enabled), then
// defers to the rule engine.
func (s *Session) rewriteLambda(original term.Term, r Result, ctx *term.Context) (Result, error) {
	if lam, ok := r.Out.(*term.Lambda); ok && s.Options.Eta {
		if f, ok := etaBody(lam); ok {
			codomain := etaCodomain(s.Checker, ctx, lam.Domain, f)

			var p term.Term
			if s.Options.Proofs {
				p = proof.Eta(lam.Domain, codomain, f)
			}

			r = Trans(original, r, Proved(f, p, false))
		}
	}

	return s.rewrite(original, r, ctx)
}

// etaBody reports whether lam has the shape "\x. f x" with x the bound
// variable, not itself occurring in f, returning f lowered out of the
// binder.
func etaBody(lam *term.Lambda) (term.Term, bool) {
	app, ok := lam.Body.(*term.App)
	if !ok {
		return nil, false
	}

	args := app.Args()

	last, ok := args[len(args)-1].(*term.Var)
	if !ok || last.Index != 0 {
		return nil, false
	}

	var f term.Term
	if len(args) == 1 {
		f = app.Head()
	} else {
		f = term.MkApp(app.Head(), args[:len(args)-1]...)
	}

	if term.HasVar(f, 0) {
		return nil, false
	}

	return term.Lift(f, 0, -1), true
}

func etaCodomain(checker typecheck.Checker, ctx *term.Context, domain, f term.Term) term.Term {
	fTy, err := checker.InferType(ctx, f)
	if err != nil {
		return domain
	}

	pi, ok := checker.EnsurePi(ctx, fTy)
	if !ok {
		return domain
	}

	return term.Subst(pi.Body, 0, f)
}

// simplifyPi descends under a propositional Pi's binder exactly as for
// lambdas, with allext in place of funext. A non-propositional Pi is
// returned unchanged: heterogeneous equality at sort level is not
// handled by this core.
func (s *Session) simplifyPi(pi *term.Pi, ctx *term.Context) (Result, error) {
	if !s.Checker.IsProposition(ctx, pi) {
		return Refl(pi), nil
	}

	ctx.Push(pi.Name, pi.Domain)
	bodyRes, err := s.simplify(pi.Body, ctx)
	ctx.Pop()

	if err != nil {
		return Result{}, err
	}

	if bodyRes.Heq || term.Same(bodyRes.Out, pi.Body) {
		return Refl(pi), nil
	}

	newPi := term.MkPi(pi.Name, pi.Domain, bodyRes.Out)

	var p term.Term
	if s.Options.Proofs && !bodyRes.IsRefl() {
		pointwise := term.MkLambda(pi.Name, pi.Domain, bodyRes.Proof)
		p = proof.Allext(pi.Domain, pi, newPi, pointwise)
	}

	return Proved(newPi, p, false), nil
}
