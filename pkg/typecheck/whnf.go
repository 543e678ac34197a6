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
package typecheck

import "github.com/varro-lang/varro/pkg/term"

// WHNF reduces t to weak-head normal form using beta, let and
// non-opaque delta reduction. It does not unfold builtins: that is
// pkg/simplify's job, once arguments have themselves reached a value.
func (c *Reference) WHNF(ctx *term.Context, t term.Term) term.Term {
	for {
		switch x := t.(type) {
		case *term.App:
			head := c.WHNF(ctx, x.Head())

			if lam, ok := head.(*term.Lambda); ok {
				args := x.Args()
				reduced := term.Subst(lam.Body, 0, args[0])

				if rest := args[1:]; len(rest) > 0 {
					t = term.MkApp(reduced, rest...)
				} else {
					t = reduced
				}

				continue
			}

			if !term.Same(head, x.Head()) {
				children := append([]term.Term{head}, x.Args()...)
				t = x.WithChildren(children)

				continue
			}

			return t
		case *term.Constant:
			def, ok := c.Env.FindObject(x.Name)
			if !ok || def.Opaque || def.Body == nil {
				return t
			}

			t = def.Body
		case *term.Let:
			t = term.Subst(x.Body, 0, x.Value)
		default:
			return t
		}
	}
}
