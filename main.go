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

	plog "github.com/pingcap/log"
	"github.com/spf13/cobra"
)

const (
	ExitCodeStartupFailed = 1
	ExitCodeInvalidConfig = 2
)

var (
	cfgPath string
	dryRun  bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "tunesweep",
		Short: "Drive an autotuning sweep over models and tuner strategies",
		Long: "tunesweep enumerates the cross product of neural-network models and " +
			"autotuner search strategies and invokes the external tuning or " +
			"benchmarking program once per combination, sequentially.",
		Run: run,
	}

	flags := rootCmd.Flags()
	flags.StringVarP(&cfgPath, "config", "c", "", "configuration file path")
	flags.BoolVar(&dryRun, "dry-run", false, "print the planned invocations without executing")
	flags.String("action", "", "program to drive: tune or bench")
	flags.String("work-dir", "", "directory the external program runs in")
	flags.Int("trials", 0, "tuning trials per combination")
	flags.StringSlice("models", nil, "model identifiers to sweep")
	flags.StringSlice("tuners", nil, "tuner strategies to sweep")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitCodeStartupFailed)
	}
}

func run(cmd *cobra.Command, args []string) {
	cfg, err := LoadSweepConfig(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(ExitCodeInvalidConfig)
	}
	applyFlagOverrides(cmd, cfg)

	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid config: %v\n", err)
		os.Exit(ExitCodeInvalidConfig)
	}

	if err := initLogger(&cfg.Log); err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(ExitCodeStartupFailed)
	}

	app := NewSweepApp(cfg)
	if dryRun {
		app.PrintPlan()
		return
	}

	if err := app.Execute(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "sweep failed to start: %v\n", err)
		os.Exit(ExitCodeStartupFailed)
	}
}

func applyFlagOverrides(cmd *cobra.Command, cfg *SweepConfig) {
	flags := cmd.Flags()
	if flags.Changed("action") {
		cfg.Action, _ = flags.GetString("action")
	}
	if flags.Changed("work-dir") {
		cfg.WorkDir, _ = flags.GetString("work-dir")
	}
	if flags.Changed("trials") {
		cfg.Trials, _ = flags.GetInt("trials")
	}
	if flags.Changed("models") {
		cfg.Models, _ = flags.GetStringSlice("models")
	}
	if flags.Changed("tuners") {
		cfg.Tuners, _ = flags.GetStringSlice("tuners")
	}
}

func initLogger(cfg *LogConfig) error {
	logCfg := &plog.Config{Level: cfg.Level}
	if cfg.File != "" {
		logCfg.File.Filename = cfg.File
	}
	logger, props, err := plog.InitLogger(logCfg)
	if err != nil {
		return err
	}
	plog.ReplaceGlobals(logger, props)
	return nil
}
