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
package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/varro-lang/varro/pkg/config"
	"github.com/varro-lang/varro/pkg/util/assert"
)

func TestResolveDefaultsToDefaultProfile(t *testing.T) {
	assert.Equal(t, config.Profiles[config.DefaultProfile], config.Resolve(""))
}

func TestResolveFallsBackOnUnknownName(t *testing.T) {
	assert.Equal(t, config.Profiles[config.DefaultProfile], config.Resolve("nonsense"))
}

func TestResolveFastDisablesProofsAndContextual(t *testing.T) {
	opts := config.Resolve("fast")
	assert.True(t, !opts.Proofs)
	assert.True(t, !opts.Contextual)
	assert.True(t, opts.MaxSteps > 0)
}

func TestResolveThoroughHasNoStepBudget(t *testing.T) {
	opts := config.Resolve("thorough")
	assert.Equal(t, 0, opts.MaxSteps)
	assert.True(t, opts.Proofs)
}

func TestLoadRuleSetsCompilesManifestFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "arith.json")

	manifest := `{
		"name": "arith",
		"rules": [
			{"name": "add-zero-left", "lhs": "(add 0 ?m0)", "rhs": "?m0", "proof": "add-zero-left-pf"}
		]
	}`

	if err := os.WriteFile(path, []byte(manifest), 0o600); err != nil {
		t.Fatalf("writing manifest fixture: %v", err)
	}

	sets, err := config.LoadRuleSets([]string{path})
	assert.Equal(t, nil, err)
	assert.Equal(t, 1, len(sets))
	assert.Equal(t, "arith", sets[0].Name)
}

func TestLoadRuleSetsReportsMissingFile(t *testing.T) {
	_, err := config.LoadRuleSets([]string{"/nonexistent/path/to/manifest.json"})
	assert.True(t, err != nil)
}
