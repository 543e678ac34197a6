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
	"github.com/varro-lang/varro/pkg/match"
	"github.com/varro-lang/varro/pkg/order"
	"github.com/varro-lang/varro/pkg/proof"
	"github.com/varro-lang/varro/pkg/rules"
	"github.com/varro-lang/varro/pkg/term"
)

// rewrite is the rule engine: it tries every rule indexed under
// r.Out's head, across every active rule set, and applies the first
// one whose pattern matches, whose premises (if any) discharge, and
// whose orientation (for a permutation rule) strictly decreases the
// target. original is the term the accumulated result r rewrote from
// (r.Out is the current candidate); a successful rewrite's proof is
// composed onto r via Trans, and the engine re-enters on the result
// unless Options.SinglePass is set.
func (s *Session) rewrite(original term.Term, r Result, ctx *term.Context) (Result, error) {
	if err := s.tick(); err != nil {
		return Result{}, err
	}

	var (
		found *rules.Rule
		subst match.Subst
		fired bool
	)

	for _, rs := range s.RuleSets {
		rs.FindMatch(r.Out, func(rule *rules.Rule) bool {
			sub := match.New(rule.Arity)
			if !match.Match(rule.Lhs, r.Out, sub, s.Env) {
				return false
			}

			if !sub.Complete() {
				return false
			}

			if rule.IsPermutation {
				rhs := instantiate(rule.Rhs, sub)
				if !order.IsLt(rhs, r.Out, false) {
					return false
				}
			}

			if hasPremises(rule) {
				if !s.Options.Conditional {
					return false
				}

				ok, err := s.dischargePremises(rule, sub, ctx)
				if err != nil || !ok {
					return false
				}
			}

			found, subst, fired = rule, sub, true

			return true
		})

		if fired {
			break
		}
	}

	if !fired {
		if !s.Options.SinglePass && !term.Same(original, r.Out) {
			next, err := s.simplify(r.Out, ctx)
			if err != nil {
				return Result{}, err
			}

			return Trans(original, r, next), nil
		}

		return r, nil
	}

	rhs := instantiate(found.Rhs, subst)

	var step Result
	if s.Options.Proofs {
		step = Proved(rhs, instantiateRuleProof(found.Proof, subst), false)
	} else {
		step = Refl(rhs)
	}

	combined := Trans(original, r, step)

	if s.Options.SinglePass {
		return combined, nil
	}

	next, err := s.simplify(combined.Out, ctx)
	if err != nil {
		return Result{}, err
	}

	return Trans(original, combined, next), nil
}

// hasPremises reports whether rule's defining theorem carries a Pi
// prefix at all: Ceq is written over the same metavariables as Lhs and
// Rhs (quantification is implicit in those slots, exactly as for Lhs),
// so every leading Pi in Ceq is a conditional hypothesis the matcher
// left undischarged, never a separate universal quantifier.
func hasPremises(rule *rules.Rule) bool {
	_, ok := rule.Ceq.(*term.Pi)
	return ok
}

// dischargePremises walks rule.Ceq's Pi prefix, simplifying each
// premise's domain (instantiated against the matched substitution) and
// requiring it reduce to the canonical true; it reports whether every
// premise discharged.
func (s *Session) dischargePremises(rule *rules.Rule, subst match.Subst, ctx *term.Context) (bool, error) {
	t := rule.Ceq

	for {
		pi, ok := t.(*term.Pi)
		if !ok {
			return true, nil
		}

		prop := instantiate(pi.Domain, subst)

		r, err := s.simplify(prop, ctx)
		if err != nil {
			return false, err
		}

		if !isCanonicalTrue(r.Out) {
			return false, nil
		}

		t = pi.Body
	}
}

func isCanonicalTrue(t term.Term) bool {
	c, ok := t.(*term.Constant)
	return ok && c.Name == "true"
}

// instantiate substitutes each metavariable in t with its bound value
// in sub, used to build a rule's concrete right-hand side.
func instantiate(t term.Term, sub match.Subst) term.Term {
	switch t := t.(type) {
	case *term.Metavar:
		if sub.Bound(int(t.Id)) {
			return sub[t.Id]
		}

		return t
	case *term.Var, *term.Constant, *term.Sort, *term.Value:
		return t
	case *term.App:
		children := make([]term.Term, len(t.Children))
		changed := false

		for i, c := range t.Children {
			nc := instantiate(c, sub)
			children[i] = nc
			changed = changed || !term.Same(nc, c)
		}

		if !changed {
			return t
		}

		return t.WithChildren(children)
	case *term.Lambda:
		return term.MkLambda(t.Name, instantiate(t.Domain, sub), instantiate(t.Body, sub))
	case *term.Pi:
		return term.MkPi(t.Name, instantiate(t.Domain, sub), instantiate(t.Body, sub))
	case *term.Let:
		return term.MkLet(t.Name, instantiate(t.Value, sub), instantiate(t.Body, sub))
	default:
		return t
	}
}

// instantiateRuleProof applies rule.Proof, in Pi-order, to the bound
// values of sub: unlike instantiate (a structural substitution over
// Rhs), a rule's Proof is itself a function abstracted over its
// quantified slots, so producing a concrete proof witness is ordinary
// application rather than substitution.
func instantiateRuleProof(proofTerm term.Term, sub match.Subst) term.Term {
	if len(sub) == 0 {
		return proofTerm
	}

	args := make([]term.Term, len(sub))

	for i, v := range sub {
		if v == nil {
			v = proof.Trivial()
		}

		args[i] = v
	}

	return term.MkApp(proofTerm, args...)
}
