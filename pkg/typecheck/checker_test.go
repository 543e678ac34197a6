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
package typecheck_test

import (
	"testing"

	"github.com/varro-lang/varro/pkg/env"
	"github.com/varro-lang/varro/pkg/eval"
	"github.com/varro-lang/varro/pkg/term"
	"github.com/varro-lang/varro/pkg/typecheck"
	"github.com/varro-lang/varro/pkg/util/assert"
)

func fieldEnv() *env.Env {
	e := env.New()
	eval.RegisterBuiltins(e)

	return e
}

func TestInferTypeOfVar(t *testing.T) {
	ctx := term.NewContext()
	ctx.Push("x", term.MkConstant("Field"))

	c := typecheck.New(fieldEnv())

	ty, err := c.InferType(ctx, term.MkVar(0))
	assert.Equal(t, nil, err)
	assert.True(t, term.Same(ty, term.MkConstant("Field")))
}

func TestInferTypeOfBuiltinApplication(t *testing.T) {
	c := typecheck.New(fieldEnv())
	ctx := term.NewContext()

	a := eval.NewFieldElem(2)
	b := eval.NewFieldElem(3)
	app := term.MkApp(term.MkConstant("add"), a, b)

	ty, err := c.InferType(ctx, app)
	assert.Equal(t, nil, err)
	assert.True(t, term.Same(ty, term.MkConstant("Field")))
}

func TestInferTypeRejectsApplicationOfNonFunction(t *testing.T) {
	e := env.New()
	e.Declare(&env.Definition{Name: "x", Type: term.MkConstant("Field")})

	c := typecheck.New(e)
	ctx := term.NewContext()

	app := term.MkApp(term.MkConstant("x"), term.MkConstant("x"))

	_, err := c.InferType(ctx, app)
	assert.True(t, err != nil)
}

func TestWHNFBetaReducesApplication(t *testing.T) {
	c := typecheck.New(env.New())
	ctx := term.NewContext()

	lam := term.MkLambda("x", term.MkConstant("Field"), term.MkVar(0))
	app := term.MkApp(lam, term.MkConstant("a"))

	result := c.WHNF(ctx, app)
	assert.True(t, term.Same(result, term.MkConstant("a")))
}

func TestWHNFUnfoldsNonOpaqueConstant(t *testing.T) {
	e := env.New()
	e.Declare(&env.Definition{
		Name: "two",
		Type: term.MkConstant("Field"),
		Body: term.MkConstant("2"),
	})

	c := typecheck.New(e)
	ctx := term.NewContext()

	result := c.WHNF(ctx, term.MkConstant("two"))
	assert.True(t, term.Same(result, term.MkConstant("2")))
}

func TestWHNFLeavesOpaqueConstantAlone(t *testing.T) {
	e := env.New()
	e.Declare(&env.Definition{
		Name:   "secret",
		Type:   term.MkConstant("Field"),
		Body:   term.MkConstant("2"),
		Opaque: true,
	})

	c := typecheck.New(e)
	ctx := term.NewContext()

	result := c.WHNF(ctx, term.MkConstant("secret"))
	assert.True(t, term.Same(result, term.MkConstant("secret")))
}

func TestIsDefinitionallyEqualUpToBeta(t *testing.T) {
	c := typecheck.New(env.New())
	ctx := term.NewContext()

	lam := term.MkLambda("x", term.MkConstant("Field"), term.MkVar(0))
	reduced := term.MkApp(lam, term.MkConstant("a"))

	assert.True(t, c.IsDefinitionallyEqual(ctx, reduced, term.MkConstant("a")))
}

func TestIsDefinitionallyEqualUpToEta(t *testing.T) {
	c := typecheck.New(env.New())
	ctx := term.NewContext()

	g := term.MkConstant("g")
	expanded := term.MkLambda("x", term.MkConstant("Field"), term.MkApp(g, term.MkVar(0)))

	assert.True(t, c.IsDefinitionallyEqual(ctx, expanded, g))
}

func TestIsDefinitionallyEqualRejectsDistinctConstants(t *testing.T) {
	c := typecheck.New(env.New())
	ctx := term.NewContext()

	assert.False(t, c.IsDefinitionallyEqual(ctx, term.MkConstant("a"), term.MkConstant("b")))
}

func TestIsConvertibleAllowsSortCumulativity(t *testing.T) {
	c := typecheck.New(env.New())
	ctx := term.NewContext()

	assert.True(t, c.IsConvertible(ctx, term.MkSort(0), term.MkSort(1)))
	assert.False(t, c.IsConvertible(ctx, term.MkSort(1), term.MkSort(0)))
}

func TestEnsurePiUnfoldsToFindFunctionType(t *testing.T) {
	e := env.New()
	arrow := term.Arrow(term.MkConstant("Field"), term.MkConstant("Field"))
	e.Declare(&env.Definition{Name: "endo", Type: term.MkSort(1), Body: arrow})

	c := typecheck.New(e)
	ctx := term.NewContext()

	_, ok := c.EnsurePi(ctx, term.MkConstant("endo"))
	assert.True(t, ok)
}

func TestIsPropositionOfEqualityType(t *testing.T) {
	e := env.New()
	e.Declare(&env.Definition{Name: "p", Type: term.MkSort(0)})

	c := typecheck.New(e)
	ctx := term.NewContext()

	assert.True(t, c.IsProposition(ctx, term.MkConstant("p")))
}
