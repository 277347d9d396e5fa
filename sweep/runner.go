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
	"context"
	"time"

	plog "github.com/pingcap/log"
	"go.uber.org/zap"
)

// Observer is notified after each invocation completes. Observer failures
// must never influence the sweep; implementations log and swallow their
// own errors.
type Observer interface {
	Record(inv Invocation, res Result)
}

// Failure identifies one combination that did not succeed.
type Failure struct {
	Invocation Invocation
	ExitCode   int
	StartErr   error
}

// Summary is the final pass/fail report of a sweep.
type Summary struct {
	Executed  int
	Succeeded int
	Failed    int
	Failures  []Failure
	Duration  time.Duration
}

// Runner drives the plan strictly in order, one invocation at a time.
// A failed invocation is recorded and the sweep moves on; nothing the
// child does can stop the remaining combinations from running.
type Runner struct {
	Plan      []Invocation
	Exec      Executor
	Stats     *Stats
	Observers []Observer
}

func (r *Runner) Run(ctx context.Context) Summary {
	start := time.Now()
	summary := Summary{}

	for _, inv := range r.Plan {
		plog.Info("start tuning task",
			zap.Int("seq", inv.Seq),
			zap.Int("total", len(r.Plan)),
			zap.String("model", inv.Model),
			zap.Int("trials", inv.Trials),
			zap.String("tuner", inv.Tuner))

		res := r.Exec.Run(ctx, inv)
		r.record(inv, res, &summary)
	}

	summary.Duration = time.Since(start)
	plog.Info("sweep finished",
		zap.Int("executed", summary.Executed),
		zap.Int("succeeded", summary.Succeeded),
		zap.Int("failed", summary.Failed),
		zap.Duration("cost", summary.Duration))
	for _, f := range summary.Failures {
		plog.Info("failed combination",
			zap.String("model", f.Invocation.Model),
			zap.Int("trials", f.Invocation.Trials),
			zap.String("tuner", f.Invocation.Tuner),
			zap.Int("exitCode", f.ExitCode),
			zap.Error(f.StartErr))
	}
	return summary
}

func (r *Runner) record(inv Invocation, res Result, summary *Summary) {
	summary.Executed++
	if r.Stats != nil {
		r.Stats.Executed.Add(1)
	}

	switch {
	case res.Succeeded():
		summary.Succeeded++
		if r.Stats != nil {
			r.Stats.Succeeded.Add(1)
		}
		plog.Info("tuning task finished",
			zap.String("model", inv.Model),
			zap.String("tuner", inv.Tuner),
			zap.Duration("cost", res.Duration))
	case res.StartErr != nil:
		summary.Failed++
		summary.Failures = append(summary.Failures, Failure{Invocation: inv, ExitCode: res.ExitCode, StartErr: res.StartErr})
		if r.Stats != nil {
			r.Stats.Failed.Add(1)
			r.Stats.StartErrors.Add(1)
		}
		plog.Info("tuning task could not start",
			zap.String("model", inv.Model),
			zap.String("tuner", inv.Tuner),
			zap.Error(res.StartErr))
	default:
		summary.Failed++
		summary.Failures = append(summary.Failures, Failure{Invocation: inv, ExitCode: res.ExitCode})
		if r.Stats != nil {
			r.Stats.Failed.Add(1)
		}
		plog.Info("tuning task failed",
			zap.String("model", inv.Model),
			zap.String("tuner", inv.Tuner),
			zap.Int("exitCode", res.ExitCode),
			zap.Duration("cost", res.Duration))
	}

	for _, ob := range r.Observers {
		ob.Record(inv, res)
	}
}
