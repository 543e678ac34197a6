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

// Package config resolves a simplify.Session's configuration: named
// option presets (selected with --profile) and rule-set manifests
// (loaded from disk and compiled via pkg/rules).
package config

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/varro-lang/varro/pkg/rules"
	"github.com/varro-lang/varro/pkg/simplify"
)

// Profile names a precanned simplify.Options preset.
type Profile string

// The three precanned profiles, ordered from least to most thorough.
const (
	ProfileFast     Profile = "fast"
	ProfileDefault  Profile = "default"
	ProfileThorough Profile = "thorough"
)

// DefaultProfile is selected when --profile is left unset.
const DefaultProfile = ProfileDefault

// Profiles is a small, named set of precanned simplify.Options, selected
// by name rather than assembled flag-by-flag.
var Profiles = map[Profile]simplify.Options{
	ProfileFast: {
		Proofs:      false,
		Contextual:  false,
		SinglePass:  true,
		Beta:        true,
		Eta:         false,
		Eval:        true,
		Unfold:      false,
		Conditional: false,
		Memoize:     true,
		MaxSteps:    10_000,
	},
	ProfileDefault: simplify.DefaultOptions(),
	ProfileThorough: {
		Proofs:      true,
		Contextual:  true,
		SinglePass:  false,
		Beta:        true,
		Eta:         true,
		Eval:        true,
		Unfold:      true,
		Conditional: true,
		Memoize:     true,
		MaxSteps:    0,
	},
}

// Resolve looks up a named profile, falling back to DefaultProfile (with
// a logged warning) if name is empty or unrecognised.
func Resolve(name string) simplify.Options {
	if name == "" {
		return Profiles[DefaultProfile]
	}

	opts, ok := Profiles[Profile(name)]
	if !ok {
		logrus.Warnf("config: unknown profile %q, falling back to %q", name, DefaultProfile)
		return Profiles[DefaultProfile]
	}

	return opts
}

// LoadRuleSets reads and compiles every manifest at paths, in order,
// returning one RuleSet per file.
func LoadRuleSets(paths []string) ([]*rules.RuleSet, error) {
	out := make([]*rules.RuleSet, 0, len(paths))

	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("reading rule manifest %s: %w", p, err)
		}

		rs, err := rules.Compile(data)
		if err != nil {
			return nil, fmt.Errorf("compiling rule manifest %s: %w", p, err)
		}

		logrus.Debugf("config: loaded rule set %q from %s", rs.Name, p)

		out = append(out, rs)
	}

	return out, nil
}
