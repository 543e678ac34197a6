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

// Package env provides the read-only environment consulted while
// simplifying: constant lookup for typechecking, and constant-unfolding
// and builtin-evaluation during rewriting.
package env

import "github.com/varro-lang/varro/pkg/term"

// Definition records what the environment knows about a declared
// constant.
type Definition struct {
	// Name this definition was registered under.
	Name string
	// Type of the constant.
	Type term.Term
	// Body is the constant's unfolding, or nil for an axiom/opaque
	// declaration with no definitional body.
	Body term.Term
	// Opaque marks a definition whose Body (if any) must never be
	// unfolded by the simplifier, even when Body is present (e.g.
	// because it was produced by a proof irrelevant to computation).
	Opaque bool
	// Builtin marks a definition whose value, when fully applied to
	// closed Value arguments, is computed by Eval rather than by
	// unfolding Body.
	Builtin bool
	// Eval computes this builtin's value given fully-evaluated
	// arguments. Only consulted when Builtin is set.
	Eval func(args []term.Term) (term.Term, bool)
}

// Environment is the read-only contract pkg/simplify and pkg/typecheck
// depend on; it is never mutated by either.
type Environment interface {
	// FindObject looks up a declared constant by name.
	FindObject(name string) (*Definition, bool)
	// Imported reports whether name was brought in from another module
	// (as opposed to being declared locally), which some congruence
	// schemas use to decide whether a rewrite is permitted to fire at
	// all on an externally-owned symbol.
	Imported(name string) bool
}

// Env is a concrete, in-memory Environment, sufficient to drive
// pkg/simplify end-to-end in tests and from the CLI.
type Env struct {
	objects  map[string]*Definition
	imported map[string]bool
}

var _ Environment = (*Env)(nil)

// New returns an empty environment.
func New() *Env {
	return &Env{
		objects:  make(map[string]*Definition),
		imported: make(map[string]bool),
	}
}

// Declare registers a definition, overwriting any previous definition of
// the same name.
func (e *Env) Declare(def *Definition) {
	e.objects[def.Name] = def
}

// MarkImported flags name as having come from another module.
func (e *Env) MarkImported(name string) {
	e.imported[name] = true
}

// FindObject implementation for Environment interface.
func (e *Env) FindObject(name string) (*Definition, bool) {
	d, ok := e.objects[name]
	return d, ok
}

// Imported implementation for Environment interface.
func (e *Env) Imported(name string) bool {
	return e.imported[name]
}
