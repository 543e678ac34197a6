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

// Options configures one Session's simplification behaviour.
type Options struct {
	// Proofs, when false, skips constructing equality proofs; only the
	// reduced term is returned (still wrapped in a reflexive Result).
	Proofs bool
	// Contextual honors congruence schemas with hypothetical context.
	Contextual bool
	// SinglePass disables re-simplification after a successful rewrite.
	SinglePass bool
	// Beta enables head-beta reduction of applied lambdas.
	Beta bool
	// Eta enables eta-contraction of eligible lambdas.
	Eta bool
	// Eval enables normalization of applications whose relevant
	// arguments are already values.
	Eval bool
	// Unfold enables unfolding of non-opaque constants.
	Unfold bool
	// Conditional enables discharging propositional rule premises to
	// canonical true.
	Conditional bool
	// Memoize enables the term-identity result cache.
	Memoize bool
	// MaxSteps bounds the number of traversal steps; zero means
	// unbounded.
	MaxSteps int
}

// DefaultOptions returns the documented defaults.
func DefaultOptions() Options {
	return Options{
		Proofs:      true,
		Contextual:  true,
		SinglePass:  false,
		Beta:        true,
		Eta:         true,
		Eval:        true,
		Unfold:      false,
		Conditional: true,
		Memoize:     true,
		MaxSteps:    0,
	}
}
