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
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/varro-lang/varro/pkg/config"
	"github.com/varro-lang/varro/pkg/rules"
	"github.com/varro-lang/varro/pkg/term"
)

var rulesCmd = &cobra.Command{
	Use:   "rules [flags] <manifest-file>...",
	Short: "Validate rule-set manifests and report their contents.",
	Long: `Rules compiles each given manifest file (pkg/rules.Compile) and prints, per
rule set, every rule's name and orientation plus every declared congruence
schema's head and argument count. A manifest that fails to parse or compile is
reported as an error without affecting the others.`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		configureLogging(cmd)

		failed := false

		for _, path := range args {
			rs, err := config.LoadRuleSets([]string{path})
			if err != nil {
				fmt.Printf("%s: %s\n", path, err)

				failed = true

				continue
			}

			describeRuleSet(path, rs[0])
		}

		if failed {
			os.Exit(1)
		}
	},
}

func describeRuleSet(path string, rs *rules.RuleSet) {
	fmt.Printf("%s: rule set %q\n", path, rs.Name)

	rs.ForEachRule(func(head string, r *rules.Rule) {
		kind := "rule"
		if r.IsPermutation {
			kind = "permutation rule"
		}

		fmt.Printf("  %s %-24s %s -> %s (head %s)\n", kind, r.Name, term.String(r.Lhs), term.String(r.Rhs), head)
	})

	rs.ForEachCongr(func(schema *rules.CongruenceSchema) {
		fmt.Printf("  congruence %-15s %d argument(s)\n", schema.Head, len(schema.Args))
	})
}
