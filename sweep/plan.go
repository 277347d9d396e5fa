// Copyright 2026 PingCAP, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// See the License for the specific language governing permissions and
// limitations under the License.

package sweep

import "strconv"

// Invocation is one (model, trials, tuner) combination of a sweep.
type Invocation struct {
	// Seq is the 1-based position of this invocation in the sweep plan.
	Seq    int
	Model  string
	Trials int
	Tuner  string
}

// Args returns the positional arguments passed to the external program,
// in the order it expects: model, trial count, tuner.
func (inv Invocation) Args() []string {
	return []string{inv.Model, strconv.Itoa(inv.Trials), inv.Tuner}
}

// BuildPlan enumerates the cross product of models and tuners in
// model-major, tuner-minor order. Every combination appears exactly once
// and all invocations share the same trial count.
func BuildPlan(models []string, trials int, tuners []string) []Invocation {
	plan := make([]Invocation, 0, len(models)*len(tuners))
	for _, model := range models {
		for _, tuner := range tuners {
			plan = append(plan, Invocation{
				Seq:    len(plan) + 1,
				Model:  model,
				Trials: trials,
				Tuner:  tuner,
			})
		}
	}
	return plan
}
