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
package rules

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/varro-lang/varro/pkg/term"
)

func TestParseTermRoundTripsEveryShapeButValue(t *testing.T) {
	cases := []term.Term{
		term.MkVar(2),
		term.MkConstant("add"),
		term.MkSort(0),
		term.MkSort(3),
		term.MkMetavar(5),
		term.MkApp(term.MkConstant("add"), term.MkVar(0), term.MkVar(1)),
		term.MkLambda("x", term.MkConstant("Field"), term.MkVar(0)),
		term.MkPi("x", term.MkConstant("Field"), term.MkVar(0)),
		term.MkLet("x", term.MkConstant("0"), term.MkVar(0)),
	}

	for _, want := range cases {
		text := term.String(want)

		got, err := parseText("case", text)
		require.NoError(t, err, text)
		require.True(t, term.Same(want, got) || term.String(got) == text, text)
	}
}

func TestParseSymbolRecognisesProp(t *testing.T) {
	got, err := parseText("prop", "Prop")
	require.NoError(t, err)
	require.True(t, term.Same(term.MkSort(0), got))
}

func TestParseSymbolRecognisesTypeLevel(t *testing.T) {
	got, err := parseText("type2", "Type2")
	require.NoError(t, err)
	require.True(t, term.Same(term.MkSort(2), got))
}

func TestParseTermRejectsEmptyList(t *testing.T) {
	_, err := parseText("empty", "()")
	require.Error(t, err)
}

func TestParseTermRejectsMalformedVariable(t *testing.T) {
	_, err := parseText("bad-var", "#x")
	require.Error(t, err)
}

func TestParseBinderRequiresThreeArguments(t *testing.T) {
	_, err := parseText("bad-lambda", "(lambda x Field)")
	require.Error(t, err)
}
