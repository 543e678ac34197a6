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
	"fmt"

	"github.com/segmentio/encoding/json"

	"github.com/varro-lang/varro/pkg/term"
	"github.com/varro-lang/varro/pkg/util/collection/set"
)

// Manifest is the on-disk (JSON) description of a rule set: every term
// field (lhs, rhs, proof, ceq) is embedded concrete syntax, parsed with
// pkg/util/source/sexp and pkg/rules.ParseTerm.
type Manifest struct {
	Name        string             `json:"name"`
	Rules       []RuleManifest     `json:"rules"`
	Congruences []CongrManifest    `json:"congruences,omitempty"`
	Imports     []string           `json:"imports,omitempty"`
}

// RuleManifest is one compiled-from-JSON rule entry.
type RuleManifest struct {
	Name        string `json:"name"`
	Lhs         string `json:"lhs"`
	Rhs         string `json:"rhs"`
	Proof       string `json:"proof"`
	Ceq         string `json:"ceq,omitempty"`
	Permutation bool   `json:"permutation,omitempty"`
}

// CongrArgManifest is one argument descriptor of a congruence schema.
type CongrArgManifest struct {
	Simplify      bool `json:"simplify"`
	ContextArg    *int `json:"contextArg,omitempty"`
	Negate        bool `json:"negate,omitempty"`
	UseSimplified bool `json:"useSimplified,omitempty"`
}

// CongrManifest is one JSON-encoded congruence schema declaration.
type CongrManifest struct {
	Head  string             `json:"head"`
	Args  []CongrArgManifest `json:"args"`
	Proof string             `json:"proof"`
}

// Compile parses a JSON rule-set manifest into a fully indexed RuleSet.
func Compile(data []byte) (*RuleSet, error) {
	var m Manifest

	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing rule manifest: %w", err)
	}

	rs := New(m.Name)

	for i, rm := range m.Rules {
		rule, err := compileRule(rm)
		if err != nil {
			return nil, fmt.Errorf("rule %d (%s): %w", i, rm.Name, err)
		}

		if err := rs.AddRule(rule); err != nil {
			return nil, fmt.Errorf("rule %d (%s): %w", i, rm.Name, err)
		}
	}

	for i, cm := range m.Congruences {
		schema, err := compileCongr(cm)
		if err != nil {
			return nil, fmt.Errorf("congruence schema %d (%s): %w", i, cm.Head, err)
		}

		rs.DeclareCongr(schema)
	}

	return rs, nil
}

func compileRule(rm RuleManifest) (*Rule, error) {
	lhs, err := parseText(rm.Name+":lhs", rm.Lhs)
	if err != nil {
		return nil, err
	}

	rhs, err := parseText(rm.Name+":rhs", rm.Rhs)
	if err != nil {
		return nil, err
	}

	proof, err := parseText(rm.Name+":proof", rm.Proof)
	if err != nil {
		return nil, err
	}

	if err := checkMetavarsContiguous(lhs); err != nil {
		return nil, err
	}

	var ceq term.Term

	if rm.Ceq != "" {
		ceq, err = parseText(rm.Name+":ceq", rm.Ceq)
		if err != nil {
			return nil, err
		}
	}

	return &Rule{
		Name:          rm.Name,
		Lhs:           lhs,
		Rhs:           rhs,
		Proof:         proof,
		Arity:         arityOf(lhs),
		Ceq:           ceq,
		IsPermutation: rm.Permutation,
	}, nil
}

func compileCongr(cm CongrManifest) (*CongruenceSchema, error) {
	proof, err := parseText(cm.Head+":congr-proof", cm.Proof)
	if err != nil {
		return nil, err
	}

	args := make([]CongruenceArg, len(cm.Args))

	for i, am := range cm.Args {
		arg := CongruenceArg{
			ShouldSimplify: am.Simplify,
			Negate:         am.Negate,
			UseSimplified:  am.UseSimplified,
		}

		if am.ContextArg != nil {
			arg.HasContext = true
			arg.ContextArg = *am.ContextArg
		}

		args[i] = arg
	}

	return &CongruenceSchema{Head: cm.Head, Args: args, Proof: proof}, nil
}

// arityOf returns one more than the highest metavariable id occurring
// in t, i.e. the number of substitution slots a rule built from t
// (as its LHS) requires. A rule mentioning no metavariables has arity
// 0.
func arityOf(t term.Term) int {
	max := -1
	walkMetavars(t, func(id uint64) {
		if int(id) > max {
			max = int(id)
		}
	})

	return max + 1
}

// checkMetavarsContiguous reports an error if lhs mentions a
// metavariable id that leaves a gap in the 0..max range, almost
// certainly a manifest typo: the matcher builds a dense substitution
// slot vector sized by arityOf, so a skipped id (mv0 and mv2 used, mv1
// never mentioned) would silently leave an unbound, zero-valued slot
// rather than failing to compile.
func checkMetavarsContiguous(lhs term.Term) error {
	seen := set.NewSortedSet[uint64]()

	walkMetavars(lhs, func(id uint64) {
		seen.Insert(id)
	})

	ids := seen.ToArray()
	for i, id := range ids {
		if id != uint64(i) {
			return fmt.Errorf("left-hand side %s skips metavariable ?%d", term.String(lhs), i)
		}
	}

	return nil
}

func walkMetavars(t term.Term, fn func(uint64)) {
	switch t := t.(type) {
	case *term.Metavar:
		fn(t.Id)
	case *term.App:
		for _, c := range t.Children {
			walkMetavars(c, fn)
		}
	case *term.Lambda:
		walkMetavars(t.Domain, fn)
		walkMetavars(t.Body, fn)
	case *term.Pi:
		walkMetavars(t.Domain, fn)
		walkMetavars(t.Body, fn)
	case *term.Let:
		walkMetavars(t.Value, fn)
		walkMetavars(t.Body, fn)
	}
}
