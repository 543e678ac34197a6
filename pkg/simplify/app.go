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

	"github.com/varro-lang/varro/pkg/eval"
	"github.com/varro-lang/varro/pkg/proof"
	"github.com/varro-lang/varro/pkg/rules"
	"github.com/varro-lang/varro/pkg/term"
)

// simplifyApp is the central dispatch for application nodes: cast
// elimination first, then either the congruence-schema path or default
// left-to-right congruence, then the post-rewrite step.
func (s *Session) simplifyApp(app *term.App, ctx *term.Context) (Result, error) {
	if a, b, h, arg, ok := isCast(app); ok {
		return s.simplifyCast(app, a, b, h, arg, ctx)
	}

	schema := s.findCongr(app)

	var (
		r   Result
		err error
	)

	if schema != nil && s.Options.Contextual {
		r, err = s.congruenceSchema(app, schema, ctx)
		if err == errFallbackToDefault {
			schema = nil
		} else if err != nil {
			return Result{}, err
		}
	}

	if schema == nil || !s.Options.Contextual {
		r, err = s.defaultCongruence(app, ctx)
		if err != nil {
			return Result{}, err
		}
	}

	return s.rewriteApp(app, r, ctx)
}

func (s *Session) findCongr(app *term.App) *rules.CongruenceSchema {
	c, ok := app.Head().(*term.Constant)
	if !ok {
		return nil
	}

	for _, rs := range s.RuleSets {
		if schema, found := rs.FindCongr(c.Name); found {
			return schema
		}
	}

	return nil
}

func isCast(app *term.App) (a, b, h, arg term.Term, ok bool) {
	c, isConst := app.Head().(*term.Constant)
	if !isConst || c.Name != "cast" {
		return nil, nil, nil, nil, false
	}

	args := app.Args()
	if len(args) != 4 {
		return nil, nil, nil, nil, false
	}

	return args[0], args[1], args[2], args[3], true
}

// simplifyCast implements §4.4.1: cast A B H a simplifies by
// simplifying a alone; the cast node itself vanishes, replaced by a
// heterogeneous proof chaining cast_heq with the recursive proof of a
// = a'.
func (s *Session) simplifyCast(app *term.App, a, b, h, arg term.Term, ctx *term.Context) (Result, error) {
	r, err := s.simplify(arg, ctx)
	if err != nil {
		return Result{}, err
	}

	castProof := proof.CastHeq(a, b, h, arg)

	if r.IsRefl() {
		return Proved(r.Out, castProof, true), nil
	}

	pArgHeq := r.Proof
	if !r.Heq {
		pArgHeq = proof.ToHeq(pArgHeq)
	}

	return Proved(r.Out, proof.HTrans(app, arg, r.Out, castProof, pArgHeq), true), nil
}

// congrChange records one argument position that changed during
// congruence, ready to feed a schema's proof skeleton or the default
// incremental proof chain.
type congrChange struct {
	index    int
	oldArg   term.Term
	newArg   term.Term
	argProof term.Term
	heq      bool
}

func indexOfChange(changes []congrChange, argIdx int) int {
	for i, c := range changes {
		if c.index == argIdx {
			return i
		}
	}

	return -1
}

// congruenceSchema implements §4.4.2: each declared argument is either
// simplified plainly, simplified under a sibling-derived hypothesis, or
// copied verbatim. If no argument changed, the original term is
// returned untouched; otherwise the schema's proof skeleton is
// instantiated with the collected (old, new, proof) triples.
func (s *Session) congruenceSchema(app *term.App, schema *rules.CongruenceSchema, ctx *term.Context) (Result, error) {
	args := app.Args()
	newArgs := make([]term.Term, len(args))
	copy(newArgs, args)

	var changes []congrChange

	for i := range args {
		if i >= len(schema.Args) {
			break
		}

		desc := schema.Args[i]
		if !desc.ShouldSimplify {
			continue
		}

		var (
			argRes Result
			err    error
		)

		if !desc.HasContext {
			argRes, err = s.simplify(args[i], ctx)
			if err != nil {
				return Result{}, err
			}

			if argRes.Heq {
				coerced, ok := EnsureHomogeneous(ctx, s.Checker, args[i], argRes)
				if !ok {
					return Result{}, errFallbackToDefault
				}

				argRes = coerced
			}
		} else {
			hyp := args[desc.ContextArg]
			if desc.UseSimplified {
				if j := indexOfChange(changes, desc.ContextArg); j >= 0 {
					hyp = changes[j].newArg
				}
			}

			if desc.Negate {
				hyp = term.MkApp(term.MkConstant("not"), hyp)
			}

			witness := fmt.Sprintf("%s$h%d", schema.Head, s.nextWitness())

			s.ctxDepth++
			argRes, err = s.withHypothesis(witness, hyp, func() (Result, error) {
				return s.simplify(args[i], ctx)
			})
			s.ctxDepth--

			if err != nil {
				return Result{}, err
			}

			if s.Options.Proofs && !argRes.IsRefl() {
				body := replaceConstant(argRes.Proof, witness, term.MkVar(0))
				argRes = Proved(argRes.Out, term.MkLambda("h", hyp, body), argRes.Heq)
			}
		}

		if !term.Same(argRes.Out, args[i]) {
			newArgs[i] = argRes.Out
			changes = append(changes, congrChange{i, args[i], argRes.Out, argRes.Proof, argRes.Heq})
		}
	}

	if len(changes) == 0 {
		return Refl(app), nil
	}

	newApp := term.MkApp(app.Head(), newArgs...)

	if !s.Options.Proofs {
		return Refl(newApp), nil
	}

	return Proved(newApp, instantiateCongrProof(schema, changes), false), nil
}

func instantiateCongrProof(schema *rules.CongruenceSchema, changes []congrChange) term.Term {
	parts := make([]term.Term, 0, len(changes)*3)

	for _, c := range changes {
		p := c.argProof
		if p == nil {
			p = proof.Refl(c.oldArg)
		}

		parts = append(parts, c.oldArg, c.newArg, p)
	}

	return term.MkApp(schema.Proof, parts...)
}

// defaultCongruence implements §4.4.3: arguments are walked left to
// right against the function type's telescope. Dependent arguments are
// only simplified when heterogeneous equality is already in play along
// the chain; otherwise only non-dependent (arrow) positions are. The
// equality proof is built incrementally: unchanged leading arguments
// contribute nothing, and each subsequent changed argument extends the
// chain via congr1 (argument varies, function fixed), congr2 (function
// varies, argument fixed) or the general congr/hcongr form.
func (s *Session) defaultCongruence(app *term.App, ctx *term.Context) (Result, error) {
	head := app.Head()
	args := app.Args()

	funTy, tyErr := s.Checker.InferType(ctx, head)

	oldPartial := head
	newPartial := head
	acc := Refl(head)

	newArgs := make([]term.Term, len(args))

	for i, a := range args {
		var (
			pi         *term.Pi
			dependent  bool
			haveTySoFar = tyErr == nil
		)

		if haveTySoFar {
			if p, ok := s.Checker.EnsurePi(ctx, funTy); ok {
				pi = p
				dependent = term.HasVar(pi.Body, 0)
				funTy = term.Subst(pi.Body, 0, a)
			} else {
				tyErr = fmt.Errorf("defaultCongruence: head is not a function at argument %d", i)
			}
		}

		canSimplify := acc.Heq || pi == nil || !dependent

		var ar Result
		if canSimplify {
			var err error

			ar, err = s.simplify(a, ctx)
			if err != nil {
				return Result{}, err
			}
		} else {
			ar = Refl(a)
		}

		newArgs[i] = ar.Out

		newOldPartial := term.MkApp(oldPartial, a)
		newNewPartial := term.MkApp(newPartial, ar.Out)

		funChanged := !acc.IsRefl()
		argChanged := !ar.IsRefl()

		switch {
		case !funChanged && !argChanged:
			acc = Refl(newNewPartial)
		case !funChanged && argChanged:
			acc = stepArgChanged(oldPartial, a, ar, newNewPartial)
		case funChanged && !argChanged:
			acc = stepFunChanged(oldPartial, newPartial, a, acc, newNewPartial)
		default:
			acc = stepBothChanged(oldPartial, newPartial, a, ar, acc, newNewPartial)
		}

		oldPartial, newPartial = newOldPartial, newNewPartial
	}

	newApp := term.MkApp(head, newArgs...)

	if acc.IsRefl() {
		return Refl(newApp), nil
	}

	return Proved(newApp, acc.Proof, acc.Heq), nil
}

func stepArgChanged(f, a term.Term, ar Result, out term.Term) Result {
	if !ar.Heq {
		return Proved(out, proof.Congr1(f, a, ar.Out, ar.Proof), false)
	}

	return Proved(out, proof.HCongr(f, f, a, ar.Out, proof.Refl(f), ar.Proof), true)
}

func stepFunChanged(oldF, newF, a term.Term, facc Result, out term.Term) Result {
	if !facc.Heq {
		return Proved(out, proof.Congr2(oldF, newF, a, facc.Proof), false)
	}

	return Proved(out, proof.HCongr(oldF, newF, a, a, facc.Proof, proof.Refl(a)), true)
}

func stepBothChanged(oldF, newF, a term.Term, ar, facc Result, out term.Term) Result {
	if !facc.Heq && !ar.Heq {
		return Proved(out, proof.Congr(oldF, newF, a, ar.Out, facc.Proof, ar.Proof), false)
	}

	pfg := facc.Proof
	if !facc.Heq {
		pfg = proof.ToHeq(pfg)
	}

	pab := ar.Proof
	if !ar.Heq {
		pab = proof.ToHeq(pab)
	}

	return Proved(out, proof.HCongr(oldF, newF, a, ar.Out, pfg, pab), true)
}

// rewriteApp implements §4.4.4: head beta, then value evaluation, then
// user-rule rewriting.
func (s *Session) rewriteApp(original *term.App, r Result, ctx *term.Context) (Result, error) {
	if app, ok := r.Out.(*term.App); ok && s.Options.Beta {
		if lam, ok := app.Head().(*term.Lambda); ok {
			reduced := term.Subst(lam.Body, 0, app.Args()[0])
			if len(app.Args()) > 1 {
				reduced = term.MkApp(reduced, app.Args()[1:]...)
			}

			r = Trans(original, r, Refl(reduced))
		}
	}

	if s.Options.Eval {
		if v, ok := s.tryEval(r.Out); ok {
			r = Trans(original, r, Refl(v))
		}
	}

	return s.rewrite(original, r, ctx)
}

func (s *Session) tryEval(t term.Term) (term.Term, bool) {
	app, ok := t.(*term.App)
	if !ok {
		return nil, false
	}

	c, ok := app.Head().(*term.Constant)
	if !ok {
		return nil, false
	}

	def, ok := s.Env.FindObject(c.Name)
	if !ok || !def.Builtin || def.Eval == nil {
		return nil, false
	}

	args := app.Args()
	if len(args) < 2 {
		return nil, false
	}

	for _, a := range args[len(args)-2:] {
		if !eval.IsValue(a) {
			return nil, false
		}
	}

	v, ok := def.Eval(args)
	if !ok || !eval.IsValue(v) {
		return nil, false
	}

	return v, true
}

// replaceConstant substitutes every occurrence of the constant named
// name, throughout t, with replacement, lifting replacement across
// binders crossed along the way. This is how a contextual congruence
// proof, built under a locally-named hypothesis witness, is turned into
// a function of that hypothesis once the witness goes out of scope.
func replaceConstant(t term.Term, name string, replacement term.Term) term.Term {
	switch t := t.(type) {
	case *term.Constant:
		if t.Name == name {
			return replacement
		}

		return t
	case *term.Var, *term.Sort, *term.Metavar, *term.Value:
		return t
	case *term.App:
		children := make([]term.Term, len(t.Children))
		changed := false

		for i, c := range t.Children {
			nc := replaceConstant(c, name, replacement)
			children[i] = nc
			changed = changed || !term.Same(nc, c)
		}

		if !changed {
			return t
		}

		return t.WithChildren(children)
	case *term.Lambda:
		return term.MkLambda(t.Name, replaceConstant(t.Domain, name, replacement), replaceConstant(t.Body, name, term.Lift(replacement, 0, 1)))
	case *term.Pi:
		return term.MkPi(t.Name, replaceConstant(t.Domain, name, replacement), replaceConstant(t.Body, name, term.Lift(replacement, 0, 1)))
	case *term.Let:
		return term.MkLet(t.Name, replaceConstant(t.Value, name, replacement), replaceConstant(t.Body, name, term.Lift(replacement, 0, 1)))
	default:
		panic(fmt.Sprintf("replaceConstant: unknown term shape %T", t))
	}
}
