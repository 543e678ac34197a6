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

// Package rules provides the rewrite-rule-set store: compiled equational
// theorems indexed by head symbol, transient hypothesis insertion under
// strict push/pop discipline, and the declared congruence schemas that
// drive contextual argument rewriting.
package rules

import (
	"fmt"

	"github.com/varro-lang/varro/pkg/term"
)

func errNoHead(lhs term.Term) error {
	return fmt.Errorf("rule left-hand side %s has no indexable head constant", term.String(lhs))
}

// Rule is one compiled equational theorem, oriented left-to-right.
type Rule struct {
	// Name identifies the rule for diagnostics; for a transient rule
	// derived from a hypothesis, this is the owning schema's witness
	// name.
	Name string
	// Lhs is the pattern matched against a rewrite target.
	Lhs term.Term
	// Rhs is the replacement, in terms of the same metavariables as
	// Lhs.
	Rhs term.Term
	// Proof is applied (in Pi-order) to the matched substitution to
	// build a concrete proof of Lhs[subst] = Rhs[subst].
	Proof term.Term
	// Arity is the number of universally quantified slots (and hence
	// the length of the substitution the matcher must fill in).
	Arity int
	// Ceq is the full Pi-prefixed equational theorem the rule was
	// compiled from, consulted during conditional rewriting to
	// discharge propositional premises left unbound by the matcher.
	Ceq term.Term
	// IsPermutation marks a rule whose LHS and RHS agree up to
	// reordering; such a rule only fires when doing so strictly
	// decreases the target in the term order (pkg/order).
	IsPermutation bool
}

// CongruenceArg describes how one argument position of a congruence
// schema's head may be rewritten.
type CongruenceArg struct {
	// ShouldSimplify marks this position as eligible for rewriting at
	// all; false means the argument is always copied verbatim.
	ShouldSimplify bool
	// HasContext marks that simplification of this argument happens
	// under a hypothesis drawn from a sibling.
	HasContext bool
	// ContextArg is the sibling argument index supplying the
	// hypothesis, when HasContext is set.
	ContextArg int
	// Negate requests the negation of the sibling's proposition as the
	// hypothesis (e.g. the "else" branch of a conditional).
	Negate bool
	// UseSimplified selects the already-simplified value of the
	// context sibling as the hypothesis source, rather than its
	// original (pre-simplification) form.
	UseSimplified bool
}

// CongruenceSchema declares, for one function head, which arguments may
// be rewritten and how the resulting congruence proof is assembled.
type CongruenceSchema struct {
	// Head is the constant name this schema applies to.
	Head string
	// Args has one entry per argument position of an application of
	// Head.
	Args []CongruenceArg
	// Proof is the proof-term skeleton instantiated, in argument
	// order, with the (oldArg, newArg, argProof) triples collected for
	// every position that changed.
	Proof term.Term
}

// RuleSet is an indexed collection of rules and congruence schemas.
type RuleSet struct {
	// Name identifies this rule set (for resolving rule-set references
	// by name, and for diagnostics).
	Name string

	byHead      map[string][]*Rule
	congruences map[string]*CongruenceSchema
	transient   []*Rule
}

// New returns an empty, named rule set.
func New(name string) *RuleSet {
	return &RuleSet{
		Name:        name,
		byHead:      make(map[string][]*Rule),
		congruences: make(map[string]*CongruenceSchema),
	}
}

// AddRule registers a permanent rule, indexed by its LHS's head symbol.
func (rs *RuleSet) AddRule(r *Rule) error {
	head, ok := headName(r.Lhs)
	if !ok {
		return errNoHead(r.Lhs)
	}

	rs.byHead[head] = append(rs.byHead[head], r)

	return nil
}

// DeclareCongr registers a congruence schema, keyed by its head.
func (rs *RuleSet) DeclareCongr(schema *CongruenceSchema) {
	rs.congruences[schema.Head] = schema
}

// FindCongr looks up the congruence schema declared for head, if any.
func (rs *RuleSet) FindCongr(head string) (*CongruenceSchema, bool) {
	schema, ok := rs.congruences[head]
	return schema, ok
}

// ForEachCongr calls fn once per declared congruence schema.
func (rs *RuleSet) ForEachCongr(fn func(*CongruenceSchema)) {
	for _, schema := range rs.congruences {
		fn(schema)
	}
}

// ForEachRule calls fn once per permanent rule (transient hypotheses
// currently pushed via Insert are not visited), grouped by head symbol,
// for diagnostics such as pkg/cmd's "rules" subcommand.
func (rs *RuleSet) ForEachRule(fn func(head string, r *Rule)) {
	transient := make(map[*Rule]bool, len(rs.transient))
	for _, r := range rs.transient {
		transient[r] = true
	}

	for head, bucket := range rs.byHead {
		for _, r := range bucket {
			if !transient[r] {
				fn(head, r)
			}
		}
	}
}

// Insert pushes a transient rule rewriting fact to the canonical true,
// witnessed by proof, under owner's name. It must be paired with
// exactly one later Pop, restoring the rule set to its prior state; the
// cache reset this implies is the caller's (pkg/simplify's)
// responsibility, not this package's.
func (rs *RuleSet) Insert(owner string, fact, proof term.Term) {
	r := &Rule{
		Name:  owner,
		Lhs:   fact,
		Rhs:   term.MkConstant("true"),
		Proof: proof,
		Arity: 0,
		Ceq:   fact,
	}

	rs.transient = append(rs.transient, r)

	if head, ok := headName(fact); ok {
		rs.byHead[head] = append(rs.byHead[head], r)
	}
}

// Pop removes the most recently Inserted transient rule.
func (rs *RuleSet) Pop() {
	n := len(rs.transient)
	if n == 0 {
		return
	}

	r := rs.transient[n-1]
	rs.transient = rs.transient[:n-1]

	if head, ok := headName(r.Lhs); ok {
		bucket := rs.byHead[head]
		if m := len(bucket); m > 0 && bucket[m-1] == r {
			rs.byHead[head] = bucket[:m-1]
		}
	}
}

// FindMatch calls try, in order, with every rule indexed under target's
// head symbol (permanent rules first, then transient rules in the order
// they were inserted), stopping and reporting true as soon as try
// accepts one.
func (rs *RuleSet) FindMatch(target term.Term, try func(*Rule) bool) bool {
	head, ok := headName(target)
	if !ok {
		return false
	}

	for _, r := range rs.byHead[head] {
		if try(r) {
			return true
		}
	}

	return false
}

// headName extracts the head constant name of t, if t is either a bare
// constant or an application headed by one. Rules and targets headed by
// anything else (a variable, a lambda, ...) cannot be indexed and are
// simply never matched.
func headName(t term.Term) (string, bool) {
	switch t := t.(type) {
	case *term.Constant:
		return t.Name, true
	case *term.App:
		if c, ok := t.Head().(*term.Constant); ok {
			return c.Name, true
		}
	}

	return "", false
}
