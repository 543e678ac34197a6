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
package term

import "fmt"

// Lift shifts every free variable of t (i.e. every Var whose index is at
// least cutoff) by amount.  This is the term-library primitive underlying
// free-variable lowering: whenever a term computed in one context is
// reused in a context with more (or fewer) enclosing binders, its free
// variables must be renumbered accordingly.
func Lift(t Term, cutoff, amount int) Term {
	if amount == 0 {
		return t
	}
	//
	switch t := t.(type) {
	case *Var:
		if t.Index >= cutoff {
			return MkVar(t.Index + amount)
		}
		//
		return t
	case *Constant, *Sort, *Metavar, *Value:
		return t
	case *App:
		children := make([]Term, len(t.Children))
		changed := false
		//
		for i, c := range t.Children {
			nc := Lift(c, cutoff, amount)
			children[i] = nc
			changed = changed || !Same(nc, c)
		}
		//
		if !changed {
			return t
		}
		//
		return t.WithChildren(children)
	case *Lambda:
		domain := Lift(t.Domain, cutoff, amount)
		body := Lift(t.Body, cutoff+1, amount)
		//
		if Same(domain, t.Domain) && Same(body, t.Body) {
			return t
		}
		//
		return MkLambda(t.Name, domain, body)
	case *Pi:
		domain := Lift(t.Domain, cutoff, amount)
		body := Lift(t.Body, cutoff+1, amount)
		//
		if Same(domain, t.Domain) && Same(body, t.Body) {
			return t
		}
		//
		return MkPi(t.Name, domain, body)
	case *Let:
		value := Lift(t.Value, cutoff, amount)
		body := Lift(t.Body, cutoff+1, amount)
		//
		if Same(value, t.Value) && Same(body, t.Body) {
			return t
		}
		//
		return MkLet(t.Name, value, body)
	default:
		panic(fmt.Sprintf("unknown term encountered: %s", String(t)))
	}
}

// Subst replaces Var(depth) throughout t with replacement, decrementing
// every free variable above depth by one (since the binder depth is
// retired) and lifting replacement by the number of binders crossed. This
// is instantiation: beta-reduction applies it at depth 0 with the
// argument as replacement, and Let-elimination applies it at depth 0 with
// the bound value.
func Subst(t Term, depth int, replacement Term) Term {
	switch t := t.(type) {
	case *Var:
		switch {
		case t.Index == depth:
			return Lift(replacement, 0, depth)
		case t.Index > depth:
			return MkVar(t.Index - 1)
		default:
			return t
		}
	case *Constant, *Sort, *Metavar, *Value:
		return t
	case *App:
		children := make([]Term, len(t.Children))
		changed := false
		//
		for i, c := range t.Children {
			nc := Subst(c, depth, replacement)
			children[i] = nc
			changed = changed || !Same(nc, c)
		}
		//
		if !changed {
			return t
		}
		//
		return t.WithChildren(children)
	case *Lambda:
		domain := Subst(t.Domain, depth, replacement)
		body := Subst(t.Body, depth+1, replacement)
		//
		if Same(domain, t.Domain) && Same(body, t.Body) {
			return t
		}
		//
		return MkLambda(t.Name, domain, body)
	case *Pi:
		domain := Subst(t.Domain, depth, replacement)
		body := Subst(t.Body, depth+1, replacement)
		//
		if Same(domain, t.Domain) && Same(body, t.Body) {
			return t
		}
		//
		return MkPi(t.Name, domain, body)
	case *Let:
		value := Subst(t.Value, depth, replacement)
		body := Subst(t.Body, depth+1, replacement)
		//
		if Same(value, t.Value) && Same(body, t.Body) {
			return t
		}
		//
		return MkLet(t.Name, value, body)
	default:
		panic(fmt.Sprintf("unknown term encountered: %s", String(t)))
	}
}

// HasVar reports whether Var(index) occurs free in t. This underlies the
// lambda simplifier's eta check: the bound variable must not occur
// anywhere except as the trailing argument being eta-contracted away.
func HasVar(t Term, index int) bool {
	switch t := t.(type) {
	case *Var:
		return t.Index == index
	case *Constant, *Sort, *Metavar, *Value:
		return false
	case *App:
		for _, c := range t.Children {
			if HasVar(c, index) {
				return true
			}
		}
		//
		return false
	case *Lambda:
		return HasVar(t.Domain, index) || HasVar(t.Body, index+1)
	case *Pi:
		return HasVar(t.Domain, index) || HasVar(t.Body, index+1)
	case *Let:
		return HasVar(t.Value, index) || HasVar(t.Body, index+1)
	default:
		panic(fmt.Sprintf("unknown term encountered: %s", String(t)))
	}
}
