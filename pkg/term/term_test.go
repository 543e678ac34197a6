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
package term_test

import (
	"testing"

	"github.com/varro-lang/varro/pkg/term"
	"github.com/varro-lang/varro/pkg/util/assert"
)

func TestMaximalSharing(t *testing.T) {
	a := term.MkApp(term.MkConstant("f"), term.MkVar(0), term.MkConstant("x"))
	b := term.MkApp(term.MkConstant("f"), term.MkVar(0), term.MkConstant("x"))
	//
	assert.True(t, term.Same(a, b), "structurally equal terms must be interned to the same node")
}

func TestBetaSubstitution(t *testing.T) {
	// (lambda x:A. f #0) a  ~~>  f a
	body := term.MkApp(term.MkConstant("f"), term.MkVar(0))
	arg := term.MkConstant("a")
	got := term.Subst(body, 0, arg)
	want := term.MkApp(term.MkConstant("f"), term.MkConstant("a"))
	//
	assert.True(t, term.Same(got, want), "expected %s, got %s", term.String(want), term.String(got))
}

func TestSubstLiftsReplacementAcrossBinders(t *testing.T) {
	// lambda y:B. #1   with   #0 := g #0   (a term referencing the enclosing
	// binder) should become   lambda y:B. (g #0) lifted, i.e. g #1
	inner := term.MkLambda("y", term.MkConstant("B"), term.MkVar(1))
	replacement := term.MkApp(term.MkConstant("g"), term.MkVar(0))
	got := term.Subst(inner, 0, replacement)
	//
	lam, ok := got.(*term.Lambda)
	assert.True(t, ok, "expected a lambda")
	want := term.MkApp(term.MkConstant("g"), term.MkVar(1))
	assert.True(t, term.Same(lam.Body, want), "expected %s, got %s", term.String(want), term.String(lam.Body))
}

func TestHasVarDetectsEtaEligibility(t *testing.T) {
	// g #0 depends on the bound variable only as the final argument: eligible for eta.
	body := term.MkApp(term.MkConstant("g"), term.MkVar(0))
	app := body.(*term.App)
	//
	assert.False(t, term.HasVar(app.Head(), 0), "head must not reference the bound variable")
	assert.True(t, term.HasVar(app.Args()[0], 0), "the stripped argument must be exactly the bound variable")
}

func TestFreeVars(t *testing.T) {
	e := term.MkLambda("x", term.MkConstant("A"), term.MkApp(term.MkConstant("f"), term.MkVar(0), term.MkVar(1)))
	fv := term.FreeVars(e)
	//
	assert.True(t, fv.Test(0), "expected index 0 free in the outer context")
	assert.False(t, fv.Test(1), "index 1 is bound by the lambda, not free")
}
