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
package order_test

import (
	"testing"

	"github.com/varro-lang/varro/pkg/order"
	"github.com/varro-lang/varro/pkg/term"
	"github.com/varro-lang/varro/pkg/util/assert"
)

func TestIsLtOrdersCommutativeArguments(t *testing.T) {
	one := term.MkConstant("1")
	two := term.MkConstant("2")

	lo := term.MkApp(term.MkConstant("add"), one, two)
	hi := term.MkApp(term.MkConstant("add"), two, one)

	assert.True(t, order.IsLt(lo, hi, false))
	assert.False(t, order.IsLt(hi, lo, false))
}

func TestIsLtIsIrreflexiveUnlessWeak(t *testing.T) {
	a := term.MkApp(term.MkConstant("f"), term.MkConstant("x"))

	assert.False(t, order.IsLt(a, a, false))
	assert.True(t, order.IsLt(a, a, true))
}

func TestCompareRanksConstantsBeforeApplications(t *testing.T) {
	c := term.MkConstant("x")
	app := term.MkApp(term.MkConstant("f"), term.MkConstant("x"))

	assert.True(t, order.IsLt(c, app, false))
}

func TestCompareOrdersShorterApplicationFirst(t *testing.T) {
	short := term.MkApp(term.MkConstant("f"), term.MkConstant("x"))
	long := term.MkApp(term.MkConstant("f"), term.MkConstant("x"), term.MkConstant("y"))

	assert.True(t, order.IsLt(short, long, false))
}
