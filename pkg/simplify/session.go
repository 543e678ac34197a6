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
	"go.uber.org/atomic"

	"github.com/varro-lang/varro/pkg/env"
	"github.com/varro-lang/varro/pkg/proof"
	"github.com/varro-lang/varro/pkg/rules"
	"github.com/varro-lang/varro/pkg/term"
	"github.com/varro-lang/varro/pkg/typecheck"
)

// Session holds everything one simplification run needs: the
// environment and type checker it consults, the active rule sets and
// their congruence schemas, configuration, and the memoization cache
// and step budget. A Session is not safe for concurrent Simplify calls,
// but Interrupt may be called from another goroutine while a call is in
// flight.
type Session struct {
	Env      env.Environment
	Checker  typecheck.Checker
	Options  Options
	RuleSets []*rules.RuleSet

	cache     map[term.Term]Result
	steps     int
	ctxDepth  int
	witnesses int
	interrupt *atomic.Bool
}

// NewSession constructs a session ready to drive Simplify.
func NewSession(e env.Environment, checker typecheck.Checker, ruleSets []*rules.RuleSet, opts Options) *Session {
	return &Session{
		Env:       e,
		Checker:   checker,
		Options:   opts,
		RuleSets:  ruleSets,
		cache:     make(map[term.Term]Result),
		interrupt: atomic.NewBool(false),
	}
}

// Interrupt requests cooperative cancellation of this session, now and
// for every future call: like a cancelled context.Context, it never
// un-cancels. A session that has observed an interrupt is done; start a
// fresh Session for the next call.
func (s *Session) Interrupt() {
	s.interrupt.Store(true)
}

// Simplify is the core entry point: simplifies t in ctx, returning the
// reduced term and a proof (reflexivity if none was produced). The step
// counter resets on entry; the memoization cache persists across calls
// except where a contextual scope resets it. ctx is left structurally
// unchanged on every return path, including error returns.
func (s *Session) Simplify(t term.Term, ctx *term.Context) (term.Term, term.Term, error) {
	s.steps = 0

	before := ctx.Snapshot()

	r, err := s.simplify(t, ctx)

	after := ctx.Snapshot()
	if len(before) != len(after) {
		panic("simplify: context scoping invariant violated")
	}

	if err != nil {
		return t, proof.Refl(t), err
	}

	p := r.Proof
	if p == nil {
		p = proof.Refl(t)
	}

	return r.Out, p, nil
}

func (s *Session) tick() error {
	if s.interrupt.Load() {
		return ErrInterrupted
	}

	s.steps++

	if s.Options.MaxSteps > 0 && s.steps > s.Options.MaxSteps {
		return ErrBudgetExceeded
	}

	return nil
}

func (s *Session) cacheGet(t term.Term) (Result, bool) {
	if !s.Options.Memoize {
		return Result{}, false
	}

	r, ok := s.cache[t]

	return r, ok
}

func (s *Session) cacheSet(t term.Term, r Result) {
	if !s.Options.Memoize {
		return
	}

	s.cache[t] = r
}

func (s *Session) nextWitness() int {
	s.witnesses++
	return s.witnesses
}

// withHypothesis inserts fact (witnessed by a local constant named
// name) as a transient rule into every active rule set for the
// duration of fn, resetting the memoization cache for that duration
// (per the cache-validity invariant: any scope that mutates the rule
// set must reset the cache on entry and restore it on exit). The
// transient rule and the cache are always restored, including when fn
// panics.
func (s *Session) withHypothesis(name string, fact term.Term, fn func() (Result, error)) (Result, error) {
	witness := term.MkConstant(name)

	for _, rs := range s.RuleSets {
		rs.Insert(name, fact, witness)
	}

	saved := s.cache
	s.cache = make(map[term.Term]Result)

	defer func() {
		s.cache = saved

		for i := len(s.RuleSets) - 1; i >= 0; i-- {
			s.RuleSets[i].Pop()
		}
	}()

	return fn()
}
