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

import (
	"reflect"
	"testing"
)

func TestBuildPlan(t *testing.T) {
	t.Parallel()

	t.Run("model-major order", func(t *testing.T) {
		plan := BuildPlan([]string{"A", "B"}, 20, []string{"S1", "S2"})
		if len(plan) != 4 {
			t.Fatalf("expected 4 invocations, got %d", len(plan))
		}
		want := []Invocation{
			{Seq: 1, Model: "A", Trials: 20, Tuner: "S1"},
			{Seq: 2, Model: "A", Trials: 20, Tuner: "S2"},
			{Seq: 3, Model: "B", Trials: 20, Tuner: "S1"},
			{Seq: 4, Model: "B", Trials: 20, Tuner: "S2"},
		}
		if !reflect.DeepEqual(plan, want) {
			t.Fatalf("unexpected plan: %+v", plan)
		}
	})

	t.Run("deterministic", func(t *testing.T) {
		models := []string{"resnet_50", "mob_v1", "mob_v2", "gprox_3"}
		tuners := []string{"xgb_knob", "ga", "random"}
		first := BuildPlan(models, 2000, tuners)
		second := BuildPlan(models, 2000, tuners)
		if len(first) != len(models)*len(tuners) {
			t.Fatalf("expected %d invocations, got %d", len(models)*len(tuners), len(first))
		}
		if !reflect.DeepEqual(first, second) {
			t.Fatalf("plans differ across builds")
		}
	})

	t.Run("trials identical across plan", func(t *testing.T) {
		plan := BuildPlan([]string{"a", "b", "c"}, 7, []string{"x", "y"})
		for _, inv := range plan {
			if inv.Trials != 7 {
				t.Fatalf("trials changed mid-plan: %+v", inv)
			}
		}
	})

	t.Run("empty inputs", func(t *testing.T) {
		if plan := BuildPlan(nil, 10, []string{"x"}); len(plan) != 0 {
			t.Fatalf("expected empty plan, got %+v", plan)
		}
		if plan := BuildPlan([]string{"a"}, 10, nil); len(plan) != 0 {
			t.Fatalf("expected empty plan, got %+v", plan)
		}
	})
}

func TestInvocationArgs(t *testing.T) {
	t.Parallel()

	inv := Invocation{Seq: 1, Model: "mob_v2", Trials: 2000, Tuner: "xgb_knob"}
	want := []string{"mob_v2", "2000", "xgb_knob"}
	if got := inv.Args(); !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected args: %v", got)
	}
}
