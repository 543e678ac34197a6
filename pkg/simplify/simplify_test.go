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
package simplify_test

import (
	"testing"

	"github.com/varro-lang/varro/pkg/env"
	"github.com/varro-lang/varro/pkg/eval"
	"github.com/varro-lang/varro/pkg/rules"
	"github.com/varro-lang/varro/pkg/simplify"
	"github.com/varro-lang/varro/pkg/term"
	"github.com/varro-lang/varro/pkg/typecheck"
	"github.com/varro-lang/varro/pkg/util/assert"
)

func fieldEnv() *env.Env {
	e := env.New()
	eval.RegisterBuiltins(e)

	return e
}

func newSession(t *testing.T, e env.Environment, ruleSets []*rules.RuleSet, opts simplify.Options) *simplify.Session {
	t.Helper()

	return simplify.NewSession(e, typecheck.New(e), ruleSets, opts)
}

// S1: beta reduction of a directly applied lambda.
func TestSimplifyBetaReducesApplication(t *testing.T) {
	s := newSession(t, env.New(), nil, simplify.DefaultOptions())
	ctx := term.NewContext()

	lam := term.MkLambda("x", term.MkConstant("Field"), term.MkVar(0))
	app := term.MkApp(lam, term.MkConstant("a"))

	out, _, err := s.Simplify(app, ctx)
	assert.Equal(t, nil, err)
	assert.True(t, term.Same(out, term.MkConstant("a")))
}

// S2: eta-contraction of a lambda wrapping an application of its own
// bound variable.
func TestSimplifyEtaContractsWrapper(t *testing.T) {
	s := newSession(t, env.New(), nil, simplify.DefaultOptions())
	ctx := term.NewContext()

	g := term.MkConstant("g")
	wrapped := term.MkLambda("x", term.MkConstant("Field"), term.MkApp(g, term.MkVar(0)))

	out, _, err := s.Simplify(wrapped, ctx)
	assert.Equal(t, nil, err)
	assert.True(t, term.Same(out, g))
}

// S3 (permutative rewriting): a commutativity rule only fires when it
// strictly decreases the target in the term order, guaranteeing it
// cannot loop.
func TestSimplifyAppliesPermutationRuleOnlyWhenDecreasing(t *testing.T) {
	rs := rules.New("arith")

	x := term.MkMetavar(0)
	y := term.MkMetavar(1)
	lhs := term.MkApp(term.MkConstant("add"), x, y)
	rhs := term.MkApp(term.MkConstant("add"), y, x)

	require(t, rs.AddRule(&rules.Rule{
		Name:          "add-comm",
		Lhs:           lhs,
		Rhs:           rhs,
		Proof:         term.MkConstant("add-comm-pf"),
		Arity:         2,
		IsPermutation: true,
	}))

	s := newSession(t, env.New(), []*rules.RuleSet{rs}, simplify.DefaultOptions())
	ctx := term.NewContext()

	b := term.MkConstant("b")
	a := term.MkConstant("a")

	target := term.MkApp(term.MkConstant("add"), b, a)

	out, _, err := s.Simplify(target, ctx)
	assert.Equal(t, nil, err)
	assert.True(t, term.Same(out, term.MkApp(term.MkConstant("add"), a, b)))

	// Applying again to the now-ordered term must not flip it back.
	out2, _, err := s.Simplify(out, ctx)
	assert.Equal(t, nil, err)
	assert.True(t, term.Same(out2, out))
}

// S4 (conditional rewriting): a rule with an undischarged premise never
// fires; once the premise is registered as a transient hypothesis, it
// does.
func TestSimplifyDischargesConditionalPremise(t *testing.T) {
	rs := rules.New("cond")

	x := term.MkMetavar(0)
	lhs := term.MkApp(term.MkConstant("safe-div"), x, term.MkConstant("one"))
	rhs := x
	ceq := term.MkPi("_", term.MkApp(term.MkConstant("nonzero"), term.MkConstant("one")), term.MkApp(term.MkConstant("eq"), lhs, rhs))

	require(t, rs.AddRule(&rules.Rule{
		Name:  "safe-div-one",
		Lhs:   lhs,
		Rhs:   rhs,
		Proof: term.MkConstant("safe-div-one-pf"),
		Arity: 1,
		Ceq:   ceq,
	}))

	e := env.New()
	opts := simplify.DefaultOptions()
	s := newSession(t, e, []*rules.RuleSet{rs}, opts)
	ctx := term.NewContext()

	target := term.MkApp(term.MkConstant("safe-div"), term.MkConstant("v"), term.MkConstant("one"))

	out, _, err := s.Simplify(target, ctx)
	assert.Equal(t, nil, err)
	assert.True(t, term.Same(out, target), "rule must not fire while its premise is undischarged")

	s2 := newSession(t, e, []*rules.RuleSet{rs}, opts)
	fact := term.MkApp(term.MkConstant("nonzero"), term.MkConstant("one"))

	rs.Insert("given", fact, term.MkConstant("given-pf"))
	out2, _, err := s2.Simplify(target, ctx)
	rs.Pop()

	assert.Equal(t, nil, err)
	assert.True(t, term.Same(out2, term.MkConstant("v")))
}

// S5 (contextual congruence): a congruence schema with a hypothetical
// context argument simplifies its dependent argument under that
// hypothesis.
func TestSimplifyContextualCongruenceSimplifiesUnderHypothesis(t *testing.T) {
	rs := rules.New("ite")
	rs.DeclareCongr(&rules.CongruenceSchema{
		Head: "ite",
		Args: []rules.CongruenceArg{
			{ShouldSimplify: true},
			{ShouldSimplify: true, HasContext: true, ContextArg: 0},
			{ShouldSimplify: true, HasContext: true, ContextArg: 0, Negate: true},
		},
		Proof: term.MkConstant("ite-congr"),
	})

	x := term.MkMetavar(0)
	lhs := term.MkApp(term.MkConstant("when-true"), x)
	require(t, rs.AddRule(&rules.Rule{
		Name:  "when-true-simp",
		Lhs:   lhs,
		Rhs:   term.MkConstant("42"),
		Proof: term.MkConstant("when-true-pf"),
		Arity: 1,
	}))

	cond := term.MkConstant("cond")
	thenBranch := term.MkApp(term.MkConstant("when-true"), cond)
	elseBranch := term.MkConstant("else-value")

	app := term.MkApp(term.MkConstant("ite"), cond, thenBranch, elseBranch)

	s := newSession(t, env.New(), []*rules.RuleSet{rs}, simplify.DefaultOptions())
	ctx := term.NewContext()

	out, _, err := s.Simplify(app, ctx)
	assert.Equal(t, nil, err)

	app2, ok := out.(*term.App)
	assert.True(t, ok)
	assert.True(t, term.Same(app2.Args()[1], term.MkConstant("42")))
}

// S6 (cast elimination): cast A B H a simplifies to a's own
// simplification, with the cast node vanishing.
func TestSimplifyEliminatesCast(t *testing.T) {
	s := newSession(t, env.New(), nil, simplify.DefaultOptions())
	ctx := term.NewContext()

	lam := term.MkLambda("x", term.MkConstant("Field"), term.MkVar(0))
	inner := term.MkApp(lam, term.MkConstant("a"))

	cast := term.MkApp(term.MkConstant("cast"), term.MkConstant("A"), term.MkConstant("B"), term.MkConstant("H"), inner)

	out, _, err := s.Simplify(cast, ctx)
	assert.Equal(t, nil, err)
	assert.True(t, term.Same(out, term.MkConstant("a")))
}

// Evaluation: a builtin applies once both of its arguments are values.
func TestSimplifyEvaluatesBuiltinOnValues(t *testing.T) {
	s := newSession(t, fieldEnv(), nil, simplify.DefaultOptions())
	ctx := term.NewContext()

	a := eval.NewFieldElem(2)
	b := eval.NewFieldElem(3)
	app := term.MkApp(term.MkConstant("add"), a, b)

	out, _, err := s.Simplify(app, ctx)
	assert.Equal(t, nil, err)
	assert.True(t, term.Same(out, eval.NewFieldElem(5)))
}

// A term no rule, reduction or congruence can change comes back as
// itself, and Simplify still supplies a (reflexive) proof for it.
func TestSimplifyReflexiveOnAlreadyNormalTerm(t *testing.T) {
	s := newSession(t, env.New(), nil, simplify.DefaultOptions())
	ctx := term.NewContext()

	v := term.MkConstant("irreducible")

	out, proofTerm, err := s.Simplify(v, ctx)
	assert.Equal(t, nil, err)
	assert.True(t, term.Same(out, v))
	assert.True(t, proofTerm != nil)
}

// Idempotence under fixpoint mode: re-simplifying an already-simplified
// term is a no-op.
func TestSimplifyIsIdempotent(t *testing.T) {
	rs := rules.New("arith")

	x := term.MkMetavar(0)
	lhs := term.MkApp(term.MkConstant("add"), term.MkConstant("0"), x)

	require(t, rs.AddRule(&rules.Rule{
		Name:  "add-zero-left",
		Lhs:   lhs,
		Rhs:   x,
		Proof: term.MkConstant("add-zero-left-pf"),
		Arity: 1,
	}))

	s := newSession(t, env.New(), []*rules.RuleSet{rs}, simplify.DefaultOptions())
	ctx := term.NewContext()

	target := term.MkApp(term.MkConstant("add"), term.MkConstant("0"), term.MkConstant("v"))

	out1, _, err := s.Simplify(target, ctx)
	assert.Equal(t, nil, err)

	s2 := newSession(t, env.New(), []*rules.RuleSet{rs}, simplify.DefaultOptions())
	out2, _, err := s2.Simplify(out1, ctx)
	assert.Equal(t, nil, err)
	assert.True(t, term.Same(out1, out2))
}

// Cache validity: memoization never changes the result a fresh session
// would produce for the same term.
func TestSimplifyMemoizationDoesNotChangeResult(t *testing.T) {
	rs := rules.New("arith")

	x := term.MkMetavar(0)
	lhs := term.MkApp(term.MkConstant("add"), term.MkConstant("0"), x)

	require(t, rs.AddRule(&rules.Rule{
		Name:  "add-zero-left",
		Lhs:   lhs,
		Rhs:   x,
		Proof: term.MkConstant("add-zero-left-pf"),
		Arity: 1,
	}))

	ctx := term.NewContext()
	target := term.MkApp(term.MkConstant("add"), term.MkConstant("0"), term.MkConstant("v"))

	memOn := simplify.DefaultOptions()
	memOn.Memoize = true

	memOff := simplify.DefaultOptions()
	memOff.Memoize = false

	sOn := newSession(t, env.New(), []*rules.RuleSet{rs}, memOn)
	sOff := newSession(t, env.New(), []*rules.RuleSet{rs}, memOff)

	outOn, _, errOn := sOn.Simplify(target, ctx)
	outOff, _, errOff := sOff.Simplify(target, ctx)

	assert.Equal(t, nil, errOn)
	assert.Equal(t, nil, errOff)
	assert.True(t, term.Same(outOn, outOff))

	// A second call against the same (now memoizing) session reaches the
	// same answer from cache.
	outOn2, _, errOn2 := sOn.Simplify(target, ctx)
	assert.Equal(t, nil, errOn2)
	assert.True(t, term.Same(outOn, outOn2))
}

// Context scoping: Simplify leaves ctx exactly as it found it.
func TestSimplifyLeavesContextUnchanged(t *testing.T) {
	s := newSession(t, env.New(), nil, simplify.DefaultOptions())
	ctx := term.NewContext()
	ctx.Push("x", term.MkConstant("Field"))

	before := ctx.Snapshot()

	lam := term.MkLambda("y", term.MkConstant("Field"), term.MkVar(0))
	_, _, err := s.Simplify(term.MkApp(lam, term.MkVar(0)), ctx)
	assert.Equal(t, nil, err)

	assert.Equal(t, len(before), ctx.Len())
}

// Budget enforcement: a step budget too small to reach a normal form
// aborts with ErrBudgetExceeded rather than looping or panicking.
func TestSimplifyEnforcesStepBudget(t *testing.T) {
	rs := rules.New("loop")

	// A (deliberately non-terminating outside the budget) rule: f(x) ->
	// f(f(x)), never a permutation so no order check protects it. Budget
	// enforcement is what must stop it.
	x := term.MkMetavar(0)
	lhs := term.MkApp(term.MkConstant("f"), x)
	rhs := term.MkApp(term.MkConstant("f"), term.MkApp(term.MkConstant("f"), x))

	require(t, rs.AddRule(&rules.Rule{
		Name:  "f-grows",
		Lhs:   lhs,
		Rhs:   rhs,
		Proof: term.MkConstant("f-grows-pf"),
		Arity: 1,
	}))

	opts := simplify.DefaultOptions()
	opts.MaxSteps = 16

	s := newSession(t, env.New(), []*rules.RuleSet{rs}, opts)
	ctx := term.NewContext()

	_, _, err := s.Simplify(term.MkApp(term.MkConstant("f"), term.MkConstant("a")), ctx)
	assert.True(t, err == simplify.ErrBudgetExceeded)
}

// Interruption: cancelling a call already in flight against a
// non-terminating rule (no step budget to fall back on) reports
// ErrInterrupted rather than hanging forever.
func TestSimplifyReportsInterrupted(t *testing.T) {
	rs := rules.New("loop")

	x := term.MkMetavar(0)
	lhs := term.MkApp(term.MkConstant("f"), x)
	rhs := term.MkApp(term.MkConstant("f"), term.MkApp(term.MkConstant("f"), x))

	require(t, rs.AddRule(&rules.Rule{
		Name:  "f-grows",
		Lhs:   lhs,
		Rhs:   rhs,
		Proof: term.MkConstant("f-grows-pf"),
		Arity: 1,
	}))

	s := newSession(t, env.New(), []*rules.RuleSet{rs}, simplify.DefaultOptions())
	ctx := term.NewContext()

	done := make(chan error, 1)

	go func() {
		_, _, err := s.Simplify(term.MkApp(term.MkConstant("f"), term.MkConstant("a")), ctx)
		done <- err
	}()

	s.Interrupt()

	err := <-done
	assert.True(t, err == simplify.ErrInterrupted)
}

func require(t *testing.T, err error) {
	t.Helper()

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
