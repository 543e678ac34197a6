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
package eval

import (
	"github.com/varro-lang/varro/pkg/env"
	"github.com/varro-lang/varro/pkg/term"
)

// fieldBinOp wraps a two-argument field operation as a builtin Eval
// function: it requires both arguments to already be FieldElem values,
// and declines (returns ok=false) otherwise, leaving the caller (pkg/
// simplify's congruence-argument simplification runs first, so this
// only fires once both arguments are already irreducible) to retain the
// unevaluated application.
func fieldBinOp(op func(a, b FieldElem) FieldElem) func([]term.Term) (term.Term, bool) {
	return func(args []term.Term) (term.Term, bool) {
		if len(args) != 2 {
			return nil, false
		}

		a, aok := AsValue(args[0])
		b, bok := AsValue(args[1])

		if !aok || !bok {
			return nil, false
		}

		af, aIsField := a.(FieldElem)
		bf, bIsField := b.(FieldElem)

		if !aIsField || !bIsField {
			return nil, false
		}

		return term.MkValue(op(af, bf)), true
	}
}

// RegisterBuiltins declares the standard arithmetic and decidable
// equality builtins ("add", "mul", "eq", "neq") into env, each backed by
// gnark-crypto bls12-377 field arithmetic. A real deployment would
// register many more.
func RegisterBuiltins(e *env.Env) {
	field := term.MkConstant("Field")
	fieldArrow2 := term.Arrow(field, term.Arrow(field, field))
	boolArrow2 := term.Arrow(field, term.Arrow(field, term.MkConstant("Bool")))

	e.Declare(&env.Definition{
		Name:    "add",
		Type:    fieldArrow2,
		Builtin: true,
		Eval:    fieldBinOp(FieldElem.Add),
	})
	e.Declare(&env.Definition{
		Name:    "mul",
		Type:    fieldArrow2,
		Builtin: true,
		Eval:    fieldBinOp(FieldElem.Mul),
	})
	e.Declare(&env.Definition{
		Name: "eq",
		Type: boolArrow2,
		Builtin: true,
		Eval: func(args []term.Term) (term.Term, bool) {
			if len(args) != 2 {
				return nil, false
			}

			a, aok := AsValue(args[0])
			b, bok := AsValue(args[1])

			if !aok || !bok {
				return nil, false
			}

			return NewBool(a.Equal(b)), true
		},
	})
	e.Declare(&env.Definition{
		Name: "neq",
		Type: boolArrow2,
		Builtin: true,
		Eval: func(args []term.Term) (term.Term, bool) {
			if len(args) != 2 {
				return nil, false
			}

			a, aok := AsValue(args[0])
			b, bok := AsValue(args[1])

			if !aok || !bok {
				return nil, false
			}

			return NewBool(!a.Equal(b)), true
		},
	})
}
