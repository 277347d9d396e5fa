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

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/pingcap/errors"
	plog "github.com/pingcap/log"
	"go.uber.org/zap"

	"tunesweep/sweep"
)

// SweepApp wires configuration, the sweep runner, and the optional result
// sink for one run.
type SweepApp struct {
	Config *SweepConfig
	Stats  *sweep.Stats
	RunID  string
}

func NewSweepApp(cfg *SweepConfig) *SweepApp {
	return &SweepApp{
		Config: cfg,
		Stats:  &sweep.Stats{},
		RunID:  uuid.NewString(),
	}
}

// PrintPlan writes the planned invocations to stdout without executing
// anything.
func (app *SweepApp) PrintPlan() {
	plan := app.plan()
	for _, inv := range plan {
		fmt.Printf("[%d/%d] %s %s %d %s\n",
			inv.Seq, len(plan), app.Config.Program(), inv.Model, inv.Trials, inv.Tuner)
	}
}

// Execute runs the whole sweep sequentially. The returned error covers
// startup problems only; child failures are reported through the summary
// and never abort the sweep.
func (app *SweepApp) Execute(ctx context.Context) error {
	info, err := os.Stat(app.Config.WorkDir)
	if err != nil {
		return errors.Annotate(err, "work dir is not accessible")
	}
	if !info.IsDir() {
		return errors.Errorf("work dir is not a directory: %s", app.Config.WorkDir)
	}

	var observers []sweep.Observer
	if app.Config.Results.Enabled() {
		sink, err := NewResultSink(&app.Config.Results, app.RunID, app.Config.Action)
		if err != nil {
			return errors.Trace(err)
		}
		defer sink.Close()
		observers = append(observers, sink)
	}

	plan := app.plan()
	plog.Info("start sweep",
		zap.String("runID", app.RunID),
		zap.String("action", app.Config.Action),
		zap.String("program", app.Config.Program()),
		zap.String("workDir", app.Config.WorkDir),
		zap.Int("models", len(app.Config.Models)),
		zap.Int("tuners", len(app.Config.Tuners)),
		zap.Int("trials", app.Config.Trials),
		zap.Int("combinations", len(plan)))

	runner := &sweep.Runner{
		Plan: plan,
		Exec: &sweep.CommandExecutor{
			Interpreter: app.Config.Programs.Interpreter,
			Program:     app.Config.Program(),
			WorkDir:     app.Config.WorkDir,
		},
		Stats:     app.Stats,
		Observers: observers,
	}
	runner.Run(ctx)
	return nil
}

func (app *SweepApp) plan() []sweep.Invocation {
	return sweep.BuildPlan(app.Config.Models, app.Config.Trials, app.Config.Tuners)
}
