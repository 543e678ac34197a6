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

func mkRule(name string, lhs, rhs term.Term) *rules.Rule {
	return &rules.Rule{
		Name:  name,
		Lhs:   lhs,
		Rhs:   rhs,
		Proof: term.MkConstant("refl"),
		Arity: 0,
		Ceq:   lhs,
	}
}

func TestAddRuleIndexesByHeadSymbol(t *testing.T) {
	rs := rules.New("arith")

	zero := term.MkConstant("0")
	lhs := term.MkApp(term.MkConstant("add"), zero, term.MkVar(0))

	require.NoError(t, rs.AddRule(mkRule("add-zero-left", lhs, term.MkVar(0))))

	found := false
	rs.FindMatch(lhs, func(r *rules.Rule) bool {
		found = found || r.Name == "add-zero-left"
		return false
	})
	require.True(t, found)
}

func TestAddRuleRejectsUnindexableLhs(t *testing.T) {
	rs := rules.New("broken")

	err := rs.AddRule(mkRule("var-lhs", term.MkVar(0), term.MkVar(0)))
	require.Error(t, err)
}

func TestFindMatchSkipsUnrelatedHeads(t *testing.T) {
	rs := rules.New("arith")

	addLhs := term.MkApp(term.MkConstant("add"), term.MkConstant("0"), term.MkVar(0))
	require.NoError(t, rs.AddRule(mkRule("add-zero", addLhs, term.MkVar(0))))

	mulTarget := term.MkApp(term.MkConstant("mul"), term.MkConstant("1"), term.MkVar(0))

	hit := rs.FindMatch(mulTarget, func(*rules.Rule) bool { return true })
	require.False(t, hit)
}

func TestInsertAndPopRestorePriorState(t *testing.T) {
	rs := rules.New("hyps")

	fact := term.MkApp(term.MkConstant("lt"), term.MkVar(0), term.MkVar(1))
	rs.Insert("hyp1", fact, term.MkConstant("h"))

	seen := rs.FindMatch(fact, func(r *rules.Rule) bool { return r.Name == "hyp1" })
	require.True(t, seen)

	rs.Pop()

	seen = rs.FindMatch(fact, func(r *rules.Rule) bool { return r.Name == "hyp1" })
	require.False(t, seen)
}

func TestInsertNestsLifoAcrossMultiplePushes(t *testing.T) {
	rs := rules.New("hyps")

	fact := term.MkApp(term.MkConstant("lt"), term.MkVar(0), term.MkVar(1))

	rs.Insert("outer", fact, term.MkConstant("h1"))
	rs.Insert("inner", fact, term.MkConstant("h2"))

	var order []string
	rs.FindMatch(fact, func(r *rules.Rule) bool {
		order = append(order, r.Name)
		return false
	})
	require.Equal(t, []string{"outer", "inner"}, order)

	rs.Pop()

	order = nil
	rs.FindMatch(fact, func(r *rules.Rule) bool {
		order = append(order, r.Name)
		return false
	})
	require.Equal(t, []string{"outer"}, order)

	rs.Pop()

	order = nil
	rs.FindMatch(fact, func(r *rules.Rule) bool {
		order = append(order, r.Name)
		return false
	})
	require.Empty(t, order)
}

func TestPopOnEmptyTransientStackIsANoop(t *testing.T) {
	rs := rules.New("empty")
	require.NotPanics(t, func() { rs.Pop() })
}

func TestDeclareAndFindCongr(t *testing.T) {
	rs := rules.New("arith")

	schema := &rules.CongruenceSchema{
		Head: "add",
		Args: []rules.CongruenceArg{
			{ShouldSimplify: true},
			{ShouldSimplify: true},
		},
		Proof: term.MkConstant("add-congr"),
	}
	rs.DeclareCongr(schema)

	found, ok := rs.FindCongr("add")
	require.True(t, ok)
	require.Equal(t, schema, found)

	_, ok = rs.FindCongr("mul")
	require.False(t, ok)
}
