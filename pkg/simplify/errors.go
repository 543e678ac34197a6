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
package simplify

import "errors"

// ErrBudgetExceeded is returned when the step counter surpasses
// Options.MaxSteps.
var ErrBudgetExceeded = errors.New("simplify: step budget exceeded")

// ErrInterrupted is returned when a cooperative cancellation request
// was observed.
var ErrInterrupted = errors.New("simplify: interrupted")

// errFallbackToDefault is an internal control-flow signal used by the
// congruence-schema path to defer to default left-to-right congruence;
// it never escapes this package. Congruence and rule-match failures are
// otherwise never surfaced as errors (they fall back silently to refl).
var errFallbackToDefault = errors.New("simplify: congruence schema inapplicable")
