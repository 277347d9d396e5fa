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
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/pingcap/errors"
	plog "github.com/pingcap/log"
	"go.uber.org/zap"

	"tunesweep/sweep"
)

const createResultTable = `
CREATE TABLE IF NOT EXISTS sweep_result (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	run_id VARCHAR(36) NOT NULL,
	action VARCHAR(16) NOT NULL,
	model VARCHAR(64) NOT NULL,
	trials INT NOT NULL,
	tuner VARCHAR(64) NOT NULL,
	exit_code INT NOT NULL,
	duration_ms BIGINT NOT NULL,
	started_at DATETIME NOT NULL,
	INDEX idx_run (run_id)
)`

// ResultSink records each invocation outcome in MySQL. It is an observer
// only: insert failures are logged and never reach the sweep loop.
type ResultSink struct {
	db     *sql.DB
	runID  string
	action string
}

func NewResultSink(cfg *ResultsConfig, runID, action string) (*ResultSink, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.Database)
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, errors.Annotate(err, "open results database failed")
	}
	db.SetMaxIdleConns(2)
	db.SetMaxOpenConns(2)
	db.SetConnMaxLifetime(time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, errors.Annotate(err, "connect results database failed")
	}
	if _, err := db.ExecContext(ctx, createResultTable); err != nil {
		db.Close()
		return nil, errors.Annotate(err, "create results table failed")
	}

	plog.Info("results sink ready",
		zap.String("host", cfg.Host),
		zap.String("database", cfg.Database),
		zap.String("runID", runID))
	return &ResultSink{db: db, runID: runID, action: action}, nil
}

func (s *ResultSink) Record(inv sweep.Invocation, res sweep.Result) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	startedAt := time.Now().Add(-res.Duration)
	_, err := s.db.ExecContext(ctx, `
INSERT INTO sweep_result (run_id, action, model, trials, tuner, exit_code, duration_ms, started_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		s.runID, s.action, inv.Model, inv.Trials, inv.Tuner,
		res.ExitCode, res.Duration.Milliseconds(), startedAt)
	if err != nil {
		plog.Info("record sweep result failed",
			zap.String("model", inv.Model),
			zap.String("tuner", inv.Tuner),
			zap.Error(err))
	}
}

func (s *ResultSink) Close() {
	if err := s.db.Close(); err != nil {
		plog.Error("failed to close results database", zap.Error(err))
	}
}
