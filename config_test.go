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
	"os"
	"path/filepath"
	"testing"
)

func TestLoadSweepConfig(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	t.Run("defaults on empty path", func(t *testing.T) {
		cfg, err := LoadSweepConfig("")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		cfg.Normalize()
		if err := cfg.Validate(); err != nil {
			t.Fatalf("default config must validate: %v", err)
		}
		if len(cfg.Models) != 4 || len(cfg.Tuners) != 3 {
			t.Fatalf("unexpected default lists: %v %v", cfg.Models, cfg.Tuners)
		}
		if cfg.Program() != "tune_relay_cuda.py" {
			t.Fatalf("unexpected default program: %s", cfg.Program())
		}
	})

	t.Run("extension check", func(t *testing.T) {
		path := filepath.Join(dir, "sweep.yaml")
		if err := os.WriteFile(path, []byte("trials = 20"), 0o644); err != nil {
			t.Fatalf("write file failed: %v", err)
		}
		_, err := LoadSweepConfig(path)
		if err == nil {
			t.Fatalf("expected error")
		}
	})

	t.Run("file overrides defaults", func(t *testing.T) {
		path := filepath.Join(dir, "sweep.toml")
		content := `
models = ["mob_v2", "gprox_3"]
trials = 20
tuners = ["random"]
action = "bench"
work-dir = "/tmp"
`
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("write file failed: %v", err)
		}
		cfg, err := LoadSweepConfig(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		cfg.Normalize()
		if err := cfg.Validate(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(cfg.Models) != 2 || cfg.Trials != 20 || len(cfg.Tuners) != 1 {
			t.Fatalf("unexpected config: %+v", cfg)
		}
		if cfg.Program() != "from_lib_fp32.py" {
			t.Fatalf("bench action must select the bench program, got %s", cfg.Program())
		}
	})

	t.Run("unknown keys rejected", func(t *testing.T) {
		path := filepath.Join(dir, "unknown.toml")
		if err := os.WriteFile(path, []byte("paralel = true"), 0o644); err != nil {
			t.Fatalf("write file failed: %v", err)
		}
		_, err := LoadSweepConfig(path)
		if err == nil {
			t.Fatalf("expected error")
		}
	})
}

func TestSweepConfigValidate(t *testing.T) {
	t.Parallel()

	t.Run("no models", func(t *testing.T) {
		cfg := DefaultSweepConfig()
		cfg.Models = []string{"  ", ""}
		cfg.Normalize()
		if err := cfg.Validate(); err == nil {
			t.Fatalf("expected error")
		}
	})

	t.Run("no tuners", func(t *testing.T) {
		cfg := DefaultSweepConfig()
		cfg.Tuners = nil
		cfg.Normalize()
		if err := cfg.Validate(); err == nil {
			t.Fatalf("expected error")
		}
	})

	t.Run("non-positive trials", func(t *testing.T) {
		cfg := DefaultSweepConfig()
		cfg.Trials = 0
		cfg.Normalize()
		if err := cfg.Validate(); err == nil {
			t.Fatalf("expected error")
		}
	})

	t.Run("unknown action", func(t *testing.T) {
		cfg := DefaultSweepConfig()
		cfg.Action = "retune"
		cfg.Normalize()
		if err := cfg.Validate(); err == nil {
			t.Fatalf("expected error")
		}
	})

	t.Run("action is case insensitive", func(t *testing.T) {
		cfg := DefaultSweepConfig()
		cfg.Action = " Bench "
		cfg.Normalize()
		if err := cfg.Validate(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("results sink requires database", func(t *testing.T) {
		cfg := DefaultSweepConfig()
		cfg.Results.Host = "127.0.0.1"
		cfg.Normalize()
		if err := cfg.Validate(); err == nil {
			t.Fatalf("expected error")
		}
	})
}
