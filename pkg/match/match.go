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

// Package match provides the higher-order pattern matcher: matching a
// rule's left-hand side (a term whose metavariables stand for the
// rule's universally quantified slots) against a concrete target,
// producing a partial substitution. A pattern metavariable that does
// not occur applied to a spine of the rule's own bound variables simply
// captures the target subterm wholesale, provided that subterm does not
// itself depend on a binder introduced only while descending through
// the pattern (a variable local to the match, with no counterpart in
// the instantiated rule).
package match

import (
	"github.com/varro-lang/varro/pkg/env"
	"github.com/varro-lang/varro/pkg/term"
)

// Subst is a partial substitution indexed by metavariable id (0-based,
// dense, one slot per universally quantified rule slot). A nil entry
// marks an unbound slot.
type Subst []term.Term

// New returns an empty substitution with arity slots.
func New(arity int) Subst {
	return make(Subst, arity)
}

// Bound reports whether slot i has been assigned.
func (s Subst) Bound(i int) bool {
	return i >= 0 && i < len(s) && s[i] != nil
}

// Complete reports whether every slot of s is bound.
func (s Subst) Complete() bool {
	for _, t := range s {
		if t == nil {
			return false
		}
	}

	return true
}

// Match attempts to unify pattern against target, binding unbound slots
// of subst and checking already-bound slots for consistency. It reports
// whether the match succeeded; on failure, subst may have been
// partially mutated and must be discarded by the caller (see pkg/simplify's
// rule engine, which always matches against a fresh Subst per rule attempt).
func Match(pattern, target term.Term, subst Subst, e env.Environment) bool {
	return matchAt(pattern, target, subst, 0, e)
}

func matchAt(pattern, target term.Term, subst Subst, depth int, e env.Environment) bool {
	if mv, ok := pattern.(*term.Metavar); ok {
		return bindMetavar(mv, target, subst, depth)
	}

	switch p := pattern.(type) {
	case *term.Var:
		t, ok := target.(*term.Var)
		return ok && p.Index == t.Index
	case *term.Constant:
		return matchConstant(p, target, subst, depth, e)
	case *term.Sort:
		t, ok := target.(*term.Sort)
		return ok && p.Level == t.Level
	case *term.Value:
		t, ok := target.(*term.Value)
		return ok && p.Prim.Equal(t.Prim)
	case *term.App:
		t, ok := target.(*term.App)
		if !ok || len(p.Children) != len(t.Children) {
			return false
		}

		for i := range p.Children {
			if !matchAt(p.Children[i], t.Children[i], subst, depth, e) {
				return false
			}
		}

		return true
	case *term.Lambda:
		t, ok := target.(*term.Lambda)
		if !ok {
			return false
		}

		return matchAt(p.Domain, t.Domain, subst, depth, e) &&
			matchAt(p.Body, t.Body, subst, depth+1, e)
	case *term.Pi:
		t, ok := target.(*term.Pi)
		if !ok {
			return false
		}

		return matchAt(p.Domain, t.Domain, subst, depth, e) &&
			matchAt(p.Body, t.Body, subst, depth+1, e)
	case *term.Let:
		t, ok := target.(*term.Let)
		if !ok {
			return false
		}

		return matchAt(p.Value, t.Value, subst, depth, e) &&
			matchAt(p.Body, t.Body, subst, depth+1, e)
	default:
		return false
	}
}

// matchConstant matches a literal constant occurring in the pattern. If
// the target is not syntactically the same constant, it may still be
// unfolded (when non-opaque) and matched against, so that a rule
// written against a definition's unfolding still fires against uses of
// the (unexpanded) defined name.
func matchConstant(p *term.Constant, target term.Term, subst Subst, depth int, e env.Environment) bool {
	if t, ok := target.(*term.Constant); ok && p.Name == t.Name {
		return true
	}

	if e == nil {
		return false
	}

	t, ok := target.(*term.Constant)
	if !ok {
		return false
	}

	def, ok := e.FindObject(t.Name)
	if !ok || def.Opaque || def.Body == nil {
		return false
	}

	return matchAt(p, def.Body, subst, depth, e)
}

// bindMetavar binds pattern slot mv.Id to target, lowered out of the
// binders entered since the start of this match. Fails if target
// depends on one of those local binders (a dependency the rule's
// metavariable, standing for a closed rule-level term, cannot express),
// or if the slot was already bound to something structurally distinct.
func bindMetavar(mv *term.Metavar, target term.Term, subst Subst, depth int) bool {
	id := int(mv.Id)
	if id < 0 || id >= len(subst) {
		return false
	}

	if depth > 0 {
		fv := term.FreeVars(target)

		for i := 0; i < depth; i++ {
			if fv.Test(uint(i)) {
				return false
			}
		}
	}

	captured := term.Lift(target, depth, -depth)

	if subst.Bound(id) {
		return term.Same(subst[id], captured)
	}

	subst[id] = captured

	return true
}
