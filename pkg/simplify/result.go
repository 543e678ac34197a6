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

// Package simplify is the proof-producing term simplifier: the result
// algebra, proof-builder wiring, rule engine, congruence driver,
// traversal core, memoization/budget, and the Session entry point that
// ties them together over the term/typecheck/env/eval/match/order/rules
// collaborators.
package simplify

import (
	"github.com/varro-lang/varro/pkg/proof"
	"github.com/varro-lang/varro/pkg/term"
	"github.com/varro-lang/varro/pkg/typecheck"
)

// Result pairs a simplified term with an optional equality proof. A nil
// Proof means the input and Out are definitionally equal without any
// constructed witness (reflexivity, delta-unfolding, evaluation). Heq
// marks Proof as witnessing heterogeneous rather than homogeneous
// equality.
type Result struct {
	Out   term.Term
	Proof term.Term
	Heq   bool
}

// Refl returns the no-op result: out is definitionally equal to
// whatever it was simplified from, with no proof term built.
func Refl(out term.Term) Result {
	return Result{Out: out}
}

// Proved returns a result carrying an explicit equality proof.
func Proved(out, p term.Term, heq bool) Result {
	return Result{Out: out, Proof: p, Heq: heq}
}

// IsRefl reports whether r carries no explicit proof.
func (r Result) IsRefl() bool {
	return r.Proof == nil
}

// Trans composes two legs of an equality chain: in = mid.Out (via mid),
// and mid.Out = next.Out (via next, whose Out is also the chain's final
// value). A reflexive leg collapses into the other; otherwise the two
// proofs are stitched with trans or htrans, widening a homogeneous leg
// via to_heq when the other leg is heterogeneous.
func Trans(in term.Term, mid, next Result) Result {
	if mid.IsRefl() {
		return next
	}

	if next.IsRefl() {
		return Proved(next.Out, mid.Proof, mid.Heq)
	}

	a, b, c := in, mid.Out, next.Out

	if !mid.Heq && !next.Heq {
		return Proved(c, proof.Trans(a, b, c, mid.Proof, next.Proof), false)
	}

	pab := mid.Proof
	if !mid.Heq {
		pab = proof.ToHeq(pab)
	}

	pbc := next.Proof
	if !next.Heq {
		pbc = proof.ToHeq(pbc)
	}

	return Proved(c, proof.HTrans(a, b, c, pab, pbc), true)
}

// EnsureHomogeneous attempts to coerce a heterogeneous result back to a
// homogeneous one via to_eq, which is only sound once the endpoint types
// are known to be definitionally equal. It reports false (leaving r
// untouched) when that cannot be established, signalling the caller to
// fall back to the default congruence path.
func EnsureHomogeneous(ctx *term.Context, checker typecheck.Checker, in term.Term, r Result) (Result, bool) {
	if !r.Heq || r.IsRefl() {
		return r, true
	}

	ta, err := checker.InferType(ctx, in)
	if err != nil {
		return r, false
	}

	tb, err := checker.InferType(ctx, r.Out)
	if err != nil {
		return r, false
	}

	if !checker.IsDefinitionallyEqual(ctx, ta, tb) {
		return r, false
	}

	return Proved(r.Out, proof.ToEq(r.Proof), false), true
}
