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
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/pingcap/errors"
)

const (
	actionTune  = "tune"
	actionBench = "bench"
)

type SweepConfig struct {
	Models  []string `toml:"models"`
	Trials  int      `toml:"trials"`
	Tuners  []string `toml:"tuners"`
	WorkDir string   `toml:"work-dir"`
	Action  string   `toml:"action"`

	Programs ProgramConfig `toml:"programs"`
	Log      LogConfig     `toml:"log"`
	Results  ResultsConfig `toml:"results"`
}

type ProgramConfig struct {
	Interpreter string `toml:"interpreter"`
	Tune        string `toml:"tune"`
	Bench       string `toml:"bench"`
}

type LogConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// ResultsConfig enables the optional MySQL result sink when a host is set.
type ResultsConfig struct {
	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	User     string `toml:"user"`
	Password string `toml:"password"`
	Database string `toml:"database"`
}

func (c *ResultsConfig) Enabled() bool {
	return c.Host != ""
}

// DefaultSweepConfig matches the sweep the tuning scripts were written
// for: the four model variants and three tuner algorithms accepted by the
// external tuner, at a fixed trial count.
func DefaultSweepConfig() *SweepConfig {
	return &SweepConfig{
		Models:  []string{"resnet_50", "mob_v1", "mob_v2", "gprox_3"},
		Trials:  2000,
		Tuners:  []string{"xgb_knob", "ga", "random"},
		WorkDir: ".",
		Action:  actionTune,
		Programs: ProgramConfig{
			Interpreter: "python3",
			Tune:        "tune_relay_cuda.py",
			Bench:       "from_lib_fp32.py",
		},
		Log: LogConfig{
			Level: "info",
		},
		Results: ResultsConfig{
			Port: 3306,
			User: "root",
		},
	}
}

// LoadSweepConfig reads a TOML config over the defaults. An empty path
// returns the defaults untouched.
func LoadSweepConfig(path string) (*SweepConfig, error) {
	cfg := DefaultSweepConfig()
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}
	if filepath.Ext(path) != ".toml" {
		return nil, errors.Errorf("sweep config must be a .toml file: %s", path)
	}

	meta, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, errors.Annotate(err, "decode sweep config failed")
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, errors.Errorf("unknown keys in sweep config: %v", undecoded)
	}
	return cfg, nil
}

func (c *SweepConfig) Normalize() {
	c.Models = trimList(c.Models)
	c.Tuners = trimList(c.Tuners)
	c.Action = strings.ToLower(strings.TrimSpace(c.Action))
	c.WorkDir = strings.TrimSpace(c.WorkDir)
	c.Programs.Interpreter = strings.TrimSpace(c.Programs.Interpreter)
	c.Programs.Tune = strings.TrimSpace(c.Programs.Tune)
	c.Programs.Bench = strings.TrimSpace(c.Programs.Bench)
	c.Log.Level = strings.ToLower(strings.TrimSpace(c.Log.Level))
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}

func (c *SweepConfig) Validate() error {
	if len(c.Models) == 0 {
		return errors.New("sweep config requires at least one model")
	}
	if len(c.Tuners) == 0 {
		return errors.New("sweep config requires at least one tuner")
	}
	if c.Trials <= 0 {
		return errors.Errorf("trials must be > 0: %d", c.Trials)
	}
	if c.Action != actionTune && c.Action != actionBench {
		return errors.Errorf("unsupported action: %s", c.Action)
	}
	if c.WorkDir == "" {
		return errors.New("work-dir is empty")
	}
	if c.Program() == "" {
		return errors.Errorf("no program configured for action %s", c.Action)
	}
	if c.Results.Enabled() && c.Results.Database == "" {
		return errors.New("results sink requires a database name")
	}
	return nil
}

// Program returns the external program driven by the configured action.
func (c *SweepConfig) Program() string {
	if c.Action == actionBench {
		return c.Programs.Bench
	}
	return c.Programs.Tune
}

func trimList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, v := range in {
		v = strings.TrimSpace(v)
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}
