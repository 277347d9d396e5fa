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
	"errors"
	"io"
	"os"
	"os/exec"
	"time"
)

// Result is the observed outcome of one external invocation. A non-zero
// exit code is recorded here, not returned as an error; only a process
// that could not be started at all sets StartErr.
type Result struct {
	ExitCode int
	Duration time.Duration
	StartErr error
}

func (r Result) Succeeded() bool {
	return r.StartErr == nil && r.ExitCode == 0
}

// Executor runs one invocation synchronously and reports its outcome.
type Executor interface {
	Run(ctx context.Context, inv Invocation) Result
}

// CommandExecutor invokes an external program with the invocation's
// positional arguments. The child runs in WorkDir instead of changing the
// driver's own working directory, and inherits the driver's stdout and
// stderr so tuning progress from the child stays visible.
type CommandExecutor struct {
	// Interpreter, when non-empty, is prepended to the command line,
	// e.g. "python3" for driving a python script.
	Interpreter string
	Program     string
	WorkDir     string

	// Stdout and Stderr default to the driver's own streams.
	Stdout io.Writer
	Stderr io.Writer
}

func (e *CommandExecutor) command(ctx context.Context, inv Invocation) *exec.Cmd {
	name := e.Program
	args := inv.Args()
	if e.Interpreter != "" {
		name = e.Interpreter
		args = append([]string{e.Program}, args...)
	}

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = e.WorkDir
	cmd.Stdout = e.Stdout
	if cmd.Stdout == nil {
		cmd.Stdout = os.Stdout
	}
	cmd.Stderr = e.Stderr
	if cmd.Stderr == nil {
		cmd.Stderr = os.Stderr
	}
	return cmd
}

// Run blocks until the child process exits.
func (e *CommandExecutor) Run(ctx context.Context, inv Invocation) Result {
	start := time.Now()
	err := e.command(ctx, inv).Run()
	res := Result{Duration: time.Since(start)}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			res.ExitCode = exitErr.ExitCode()
		} else {
			res.StartErr = err
			res.ExitCode = -1
		}
	}
	return res
}
