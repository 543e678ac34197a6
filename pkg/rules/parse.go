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
	"strconv"
	"strings"

	"github.com/varro-lang/varro/pkg/term"
	"github.com/varro-lang/varro/pkg/util/source"
	"github.com/varro-lang/varro/pkg/util/source/sexp"
)

// ParseTerm translates the concrete syntax pkg/term.Term.Lisp() produces
// back into a term.Term, for reading rule manifests. It is the inverse
// of every Lisp() implementation in pkg/term except term.Value, which a
// manifest cannot express (primitive values are only ever introduced at
// runtime, by the evaluator).
func ParseTerm(s sexp.SExp) (term.Term, error) {
	if sym := s.AsSymbol(); sym != nil {
		return parseSymbol(sym.Value)
	}

	l := s.AsList()
	if l == nil {
		return nil, fmt.Errorf("unsupported s-expression %q: rule terms must be symbols or lists", s.String(false))
	}

	if l.Len() == 0 {
		return nil, fmt.Errorf("empty list is not a valid term")
	}

	if head := l.Get(0).AsSymbol(); head != nil {
		switch head.Value {
		case "lambda":
			return parseBinder(l, term.MkLambda)
		case "pi":
			return parseBinder(l, term.MkPi)
		case "let":
			return parseBinder(l, term.MkLet)
		}
	}

	children := make([]term.Term, l.Len())

	for i := 0; i < l.Len(); i++ {
		c, err := ParseTerm(l.Get(i))
		if err != nil {
			return nil, err
		}

		children[i] = c
	}

	if len(children) < 2 {
		return nil, fmt.Errorf("application %q must have a head and at least one argument", s.String(false))
	}

	return term.MkApp(children[0], children[1:]...), nil
}

func parseBinder(l *sexp.List, mk func(name string, a, b term.Term) term.Term) (term.Term, error) {
	if l.Len() != 4 {
		return nil, fmt.Errorf("binder form %q must have exactly 3 arguments", l.String(false))
	}

	name := l.Get(1).AsSymbol()
	if name == nil {
		return nil, fmt.Errorf("binder name in %q must be a symbol", l.String(false))
	}

	a, err := ParseTerm(l.Get(2))
	if err != nil {
		return nil, err
	}

	b, err := ParseTerm(l.Get(3))
	if err != nil {
		return nil, err
	}

	return mk(name.Value, a, b), nil
}

func parseSymbol(value string) (term.Term, error) {
	switch {
	case strings.HasPrefix(value, "#"):
		n, err := strconv.Atoi(value[1:])
		if err != nil {
			return nil, fmt.Errorf("malformed variable %q: %w", value, err)
		}

		return term.MkVar(n), nil
	case strings.HasPrefix(value, "?m"):
		n, err := strconv.ParseUint(value[2:], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("malformed metavariable %q: %w", value, err)
		}

		return term.MkMetavar(n), nil
	case value == "Prop":
		return term.MkSort(0), nil
	case strings.HasPrefix(value, "Type"):
		n, err := strconv.ParseUint(value[4:], 10, 64)
		if err != nil {
			return term.MkConstant(value), nil
		}

		return term.MkSort(uint(n)), nil
	default:
		return term.MkConstant(value), nil
	}
}

// parseText parses a single s-expression from a string, as embedded in a
// rule manifest field.
func parseText(name, text string) (term.Term, error) {
	file := source.NewSourceFile(name, []byte(text))

	s, _, synErr := sexp.Parse(file)
	if synErr != nil {
		return nil, fmt.Errorf("%s: %s", name, synErr.Message())
	}

	return ParseTerm(s)
}

// ParseText is the exported form of parseText, for callers outside this
// package reading a one-off term from concrete syntax (pkg/cmd's
// "simplify" subcommand, pkg/rpc's simplify method).
func ParseText(name, text string) (term.Term, error) {
	return parseText(name, text)
}
