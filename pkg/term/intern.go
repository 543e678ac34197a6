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
	"sync"

	"github.com/varro-lang/varro/pkg/util/collection/pool"
)

// internTable implements pool.Pool[string,Term], keyed on a node's
// canonical (quoted) Lisp encoding.  Every smart constructor in this
// package routes its freshly built node through intern, so that two
// requests to build structurally equal terms always yield the same
// pointer.  This is what makes reference equality a valid cache key.
type internTable struct {
	mu    sync.Mutex
	table map[string]Term
}

var _ pool.Pool[string, Term] = (*internTable)(nil)

// Get looks up a previously interned term by its canonical key.
func (p *internTable) Get(key string) Term {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.table[key]
}

// Put interns t under its canonical key, returning that key: t itself
// is stored only if no structurally equal node was interned already.
func (p *internTable) Put(t Term) string {
	key := t.Lisp().String(true)
	//
	p.mu.Lock()
	defer p.mu.Unlock()
	//
	if _, ok := p.table[key]; !ok {
		p.table[key] = t
	}

	return key
}

var pkgPool = &internTable{table: make(map[string]Term)}

// intern canonicalizes a freshly constructed node.
func intern(t Term) Term {
	return pkgPool.Get(pkgPool.Put(t))
}
