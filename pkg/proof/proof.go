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

// Package proof assembles equality proof terms. It is a thin adapter
// layer over pkg/term: every function here builds an application of a
// named proof-rule constant to its arguments and does no typechecking of
// its own (that is the type checker's job — see pkg/typecheck).
package proof

import "github.com/varro-lang/varro/pkg/term"

func rule(name string, args ...term.Term) term.Term {
	return term.MkApp(term.MkConstant(name), args...)
}

// Refl builds a proof of a = a.
func Refl(a term.Term) term.Term {
	return rule("refl", a)
}

// Trans composes homogeneous proofs pab : a = b and pbc : b = c into a
// proof of a = c.
func Trans(a, b, c, pab, pbc term.Term) term.Term {
	return rule("trans", a, b, c, pab, pbc)
}

// HTrans composes heterogeneous proofs pab : a == b and pbc : b == c
// into a proof of a == c.
func HTrans(a, b, c, pab, pbc term.Term) term.Term {
	return rule("htrans", a, b, c, pab, pbc)
}

// Congr combines pfg : f = g and pab : a = b into a proof of f a = g b.
func Congr(f, g, a, b, pfg, pab term.Term) term.Term {
	return rule("congr", f, g, a, b, pfg, pab)
}

// Congr1 specializes Congr to a fixed function: given pab : a = b, proves
// f a = f b.
func Congr1(f, a, b, pab term.Term) term.Term {
	return rule("congr1", f, a, b, pab)
}

// Congr2 specializes Congr to a fixed argument: given pfg : f = g, proves
// f a = g a.
func Congr2(f, g, a, pfg term.Term) term.Term {
	return rule("congr2", f, g, a, pfg)
}

// HCongr is the heterogeneous-equality form of Congr, used when the
// domain or codomain types of f and g are not definitionally equal.
func HCongr(f, g, a, b, pfg, pab term.Term) term.Term {
	return rule("hcongr", f, g, a, b, pfg, pab)
}

// Subst translates a proof of a motive at a into a proof of the motive
// at b, given pab : a = b. This is the subst-based type translation
// used to bridge heterogeneous and homogeneous equality.
func Subst(motive, a, b, pab, proofAtA term.Term) term.Term {
	return rule("subst", motive, a, b, pab, proofAtA)
}

// Funext builds a proof of f = g from pointwise, a function mapping each
// point x to a proof of f x = g x.
func Funext(domain, f, g, pointwise term.Term) term.Term {
	return rule("funext", domain, f, g, pointwise)
}

// Allext is Funext's analogue for universally quantified propositions
// (Pi types whose codomain is Prop): it builds a proof that two
// predicates p and q are equal from a pointwise iff/eq proof.
func Allext(domain, p, q, pointwise term.Term) term.Term {
	return rule("allext", domain, p, q, pointwise)
}

// Eta builds a proof that (lambda x:domain. f x) = f, for f : domain -> codomain.
func Eta(domain, codomain, f term.Term) term.Term {
	return rule("eta", domain, codomain, f)
}

// ToEq converts a heterogeneous proof to a homogeneous one. Callers must
// only invoke this once the endpoints' types are known to be
// definitionally equal (see pkg/simplify's EnsureHomogeneous).
func ToEq(heqProof term.Term) term.Term {
	return rule("to_eq", heqProof)
}

// ToHeq widens a homogeneous proof to a heterogeneous one.
func ToHeq(eqProof term.Term) term.Term {
	return rule("to_heq", eqProof)
}

// EqtElim extracts a proof of prop from a proof that prop = True.
func EqtElim(prop, proofEqTrue term.Term) term.Term {
	return rule("eqt_elim", prop, proofEqTrue)
}

// CastHeq builds the standard lemma that cast A B H a == a.
func CastHeq(a, b, h, arg term.Term) term.Term {
	return rule("cast_heq", a, b, h, arg)
}

// Trivial is the canonical proof of the proposition True.
func Trivial() term.Term {
	return rule("trivial")
}
