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

// Package term provides the immutable term representation for the
// dependently-typed lambda calculus: de Bruijn indexed variables,
// constants, sorts, metavariables, opaque semantic values, applications,
// lambdas, pis and lets.  It also provides the smart constructors,
// substitution, free-variable lowering and maximal-sharing machinery
// that pkg/simplify treats as a settled foundation rather than
// something it reimplements.
package term

import (
	"github.com/varro-lang/varro/pkg/util/collection/stack"
	"github.com/varro-lang/varro/pkg/util/source/sexp"
)

// Term is the closed sum-type of the calculus.  All nine variants are
// constructed exclusively via the smart constructors in this package, which
// route every node through the intern table so that reference equality
// implies structural equality (maximal sharing).
type Term interface {
	// Lisp renders this term as an s-expression. This is both the debug
	// representation and the concrete syntax rule-set manifests embed
	// their LHS/RHS/proof terms in (see pkg/rules).
	Lisp() sexp.SExp
}

// String renders a term using its Lisp representation, unquoted.
func String(t Term) string {
	return t.Lisp().String(false)
}

// Same reports whether a and b are the same interned node.  Because every
// constructor in this package interns its result, two terms built
// separately from equal structure always satisfy Same, and Same can be
// used as a term's identity for cache keys.
func Same(a, b Term) bool {
	return a == b
}

// Primitive is the contract implemented by opaque semantic values produced
// by the normalizer/evaluator collaborator (pkg/eval) and wrapped by Value
// nodes.  It is declared here, rather than in pkg/eval, to avoid a cyclic
// dependency between the term representation and its evaluator.
type Primitive interface {
	// Lisp renders this primitive for inclusion in a Value's Lisp form.
	Lisp() sexp.SExp
	// Equal reports whether this primitive denotes the same semantic
	// value as other.
	Equal(other Primitive) bool
	// Type returns the (closed) type this primitive inhabits, e.g. the
	// field-element or boolean type constant.
	Type() Term
}

// Entry is one binder in a Context: a name (for display only; binding is by
// de Bruijn index) and the binder's declared type, expressed in the
// context that existed before this entry was pushed.
type Entry struct {
	Name string
	Type Term
}

// Context is an ordered sequence of binder entries, innermost last,
// extended only by scoped Push/Pop: every entry pushed while descending
// into a binder must be popped again on every exit path, including
// panics recovered further up the call stack.  The entries themselves
// live in a stack.Stack, since a binder scope is exactly a LIFO
// discipline.
type Context struct {
	entries *stack.Stack[Entry]
}

// NewContext returns an empty context.
func NewContext() *Context {
	return &Context{entries: stack.NewStack[Entry]()}
}

// Len returns the number of bound entries.
func (c *Context) Len() int {
	return int(c.entries.Len())
}

// At returns the entry bound by Var(index): index 0 is the innermost
// (most recently pushed) binder.
func (c *Context) At(index int) Entry {
	return c.entries.Peek(uint(index))
}

// Push extends the context with a new innermost binder.  Callers must
// pair every Push with exactly one Pop, typically via defer, to preserve
// stack discipline.
func (c *Context) Push(name string, typ Term) {
	c.entries.Push(Entry{name, typ})
}

// Pop removes the innermost binder.
func (c *Context) Pop() {
	c.entries.Pop()
}

// Snapshot captures the current entries for later comparison, used by
// callers (pkg/simplify's tests) to verify that a top-level call leaves
// the context structurally unchanged.
func (c *Context) Snapshot() []Entry {
	n := c.entries.Len()
	out := make([]Entry, n)
	for i := range out {
		out[i] = c.entries.Peek(n - 1 - uint(i))
	}

	return out
}
