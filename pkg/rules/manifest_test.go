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
package rules_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/varro-lang/varro/pkg/rules"
	"github.com/varro-lang/varro/pkg/term"
)

const sampleManifest = `{
	"name": "arith",
	"rules": [
		{
			"name": "add-zero-left",
			"lhs": "(add 0 ?m0)",
			"rhs": "?m0",
			"proof": "add-zero-left-pf",
			"ceq": "(eq (add 0 ?m0) ?m0)"
		},
		{
			"name": "add-comm",
			"lhs": "(add ?m0 ?m1)",
			"rhs": "(add ?m1 ?m0)",
			"proof": "add-comm-pf",
			"permutation": true
		}
	],
	"congruences": [
		{
			"head": "add",
			"args": [
				{"simplify": true},
				{"simplify": true}
			],
			"proof": "add-congr"
		}
	]
}`

func TestCompileBuildsRuleSetFromManifest(t *testing.T) {
	rs, err := rules.Compile([]byte(sampleManifest))
	require.NoError(t, err)
	require.Equal(t, "arith", rs.Name)

	target := term.MkApp(term.MkConstant("add"), term.MkConstant("0"), term.MkConstant("x"))

	matchedName := ""
	rs.FindMatch(target, func(r *rules.Rule) bool {
		matchedName = r.Name
		return r.Name == "add-zero-left"
	})
	require.Equal(t, "add-zero-left", matchedName)

	schema, ok := rs.FindCongr("add")
	require.True(t, ok)
	require.Len(t, schema.Args, 2)
}

func TestCompileComputesArityFromMetavariables(t *testing.T) {
	rs, err := rules.Compile([]byte(sampleManifest))
	require.NoError(t, err)

	var commArity int

	target := term.MkApp(term.MkConstant("add"), term.MkConstant("x"), term.MkConstant("y"))
	rs.FindMatch(target, func(r *rules.Rule) bool {
		if r.Name == "add-comm" {
			commArity = r.Arity
		}
		return false
	})
	require.Equal(t, 2, commArity)
}

func TestCompileRejectsInvalidJSON(t *testing.T) {
	_, err := rules.Compile([]byte("not json"))
	require.Error(t, err)
}

func TestCompileRejectsUnparsableTermField(t *testing.T) {
	bad := `{"name":"bad","rules":[{"name":"r","lhs":"(","rhs":"x","proof":"p"}]}`

	_, err := rules.Compile([]byte(bad))
	require.Error(t, err)
}

func TestCompileRejectsSkippedMetavariable(t *testing.T) {
	bad := `{"name":"bad","rules":[{"name":"r","lhs":"(add ?m0 ?m2)","rhs":"?m0","proof":"p"}]}`

	_, err := rules.Compile([]byte(bad))
	require.Error(t, err)
}
