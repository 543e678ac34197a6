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
package term

import (
	"fmt"

	"github.com/bits-and-blooms/bitset"
)

// FreeVars returns the occurs-check bitset of t: bit i is set iff Var(i)
// occurs free in t.  Used by the higher-order matcher (pkg/match) to
// reject a metavariable instantiation that would capture a bound
// variable.
func FreeVars(t Term) *bitset.BitSet {
	occurs := bitset.New(0)
	collectFreeVars(t, 0, occurs)

	return occurs
}

func collectFreeVars(t Term, depth uint, occurs *bitset.BitSet) {
	switch t := t.(type) {
	case *Var:
		if uint(t.Index) >= depth {
			occurs.Set(uint(t.Index) - depth)
		}
	case *Constant, *Sort, *Metavar, *Value:
		// no variables
	case *App:
		for _, c := range t.Children {
			collectFreeVars(c, depth, occurs)
		}
	case *Lambda:
		collectFreeVars(t.Domain, depth, occurs)
		collectFreeVars(t.Body, depth+1, occurs)
	case *Pi:
		collectFreeVars(t.Domain, depth, occurs)
		collectFreeVars(t.Body, depth+1, occurs)
	case *Let:
		collectFreeVars(t.Value, depth, occurs)
		collectFreeVars(t.Body, depth+1, occurs)
	default:
		panic(fmt.Sprintf("unknown term encountered: %s", String(t)))
	}
}
