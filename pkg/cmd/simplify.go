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

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/varro-lang/varro/pkg/config"
	"github.com/varro-lang/varro/pkg/env"
	"github.com/varro-lang/varro/pkg/eval"
	"github.com/varro-lang/varro/pkg/rules"
	"github.com/varro-lang/varro/pkg/simplify"
	termpkg "github.com/varro-lang/varro/pkg/term"
	"github.com/varro-lang/varro/pkg/typecheck"
)

var simplifyCmd = &cobra.Command{
	Use:   "simplify [flags] <term>",
	Short: "Simplify a single term and print the result and its proof.",
	Long: `Simplify parses <term> as concrete syntax (the same s-expression form
pkg/term.Term.Lisp() produces), loads any rule-set manifests given with --rules,
and prints the reduced term followed by its equality proof.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		configureLogging(cmd)

		ruleSets, err := config.LoadRuleSets(GetStringArray(cmd, "rules"))
		if err != nil {
			fmt.Println(err)
			os.Exit(2)
		}

		e := env.New()
		eval.RegisterBuiltins(e)

		t, err := rules.ParseText("argv[0]", args[0])
		if err != nil {
			fmt.Println(err)
			os.Exit(2)
		}

		opts := config.Resolve(GetString(cmd, "profile"))
		if GetFlag(cmd, "no-proof") {
			opts.Proofs = false
		}

		if n := GetUint(cmd, "max-steps"); n != 0 {
			opts.MaxSteps = int(n)
		}

		checker := typecheck.New(e)
		session := simplify.NewSession(e, checker, ruleSets, opts)

		log.Debugf("simplify: %d rule set(s) loaded", len(ruleSets))

		out, proof, err := session.Simplify(t, termpkg.NewContext())
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		printResult(out, proof, opts.Proofs)
	},
}

func init() {
	simplifyCmd.Flags().Bool("no-proof", false, "omit the proof term from the printed result")
	simplifyCmd.Flags().Uint("max-steps", 0, "bound the number of traversal steps (0: unbounded, or the profile's own default)")
}

func printResult(out, proof termpkg.Term, showProof bool) {
	colour := term.IsTerminal(int(os.Stdout.Fd()))

	printLabelled("term", termpkg.String(out), colour)

	if showProof && proof != nil {
		printLabelled("proof", termpkg.String(proof), colour)
	}
}

func printLabelled(label, value string, colour bool) {
	if colour {
		fmt.Printf("\x1b[1;36m%s:\x1b[0m %s\n", label, value)
		return
	}

	fmt.Printf("%s: %s\n", label, value)
}
