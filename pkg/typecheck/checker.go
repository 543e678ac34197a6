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

// Package typecheck provides the reference type checker for the term
// calculus: type inference, convertibility, definitional equality,
// weak-head Pi elimination and propositionhood. pkg/simplify depends
// only on the Checker interface; this package's Reference type is what
// the CLI and tests wire in.
package typecheck

import (
	"github.com/varro-lang/varro/pkg/env"
	"github.com/varro-lang/varro/pkg/term"
)

// Checker is the contract pkg/simplify consumes.
type Checker interface {
	// InferType computes the type of t in ctx, or an error if t is
	// ill-typed (e.g. an unresolvable metavariable, an unknown
	// constant, or an application of a non-function).
	InferType(ctx *term.Context, t term.Term) (term.Term, error)
	// IsConvertible reports whether a and b may stand in for one
	// another, which for this calculus is definitional equality plus
	// sort-level cumulativity.
	IsConvertible(ctx *term.Context, a, b term.Term) bool
	// IsDefinitionallyEqual reports whether a and b reduce to the same
	// normal form (up to eta).
	IsDefinitionallyEqual(ctx *term.Context, a, b term.Term) bool
	// EnsurePi reduces t to weak-head normal form and reports whether
	// the result is a Pi.
	EnsurePi(ctx *term.Context, t term.Term) (*term.Pi, bool)
	// IsProposition reports whether t's type is the Prop sort.
	IsProposition(ctx *term.Context, t term.Term) bool
}

// Reference is the concrete, environment-backed Checker implementation.
type Reference struct {
	Env env.Environment
}

var _ Checker = (*Reference)(nil)

// New constructs a Reference checker against the given environment.
func New(e env.Environment) *Reference {
	return &Reference{Env: e}
}
