package db

import "mergebench/internal/benchmark"

// Store is a suite history backed by a database connection.
type Store interface {
	benchmark.Store
	Close() error
}

// schema is shared by both backends. Timestamps are unix nanoseconds so that
// neither driver has to agree on a date format.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS suites (
		id %s,
		label TEXT NOT NULL DEFAULT '',
		created_at BIGINT NOT NULL,
		aborted BOOLEAN NOT NULL DEFAULT FALSE
	);`,
	`CREATE TABLE IF NOT EXISTS trial_results (
		suite_id INTEGER NOT NULL REFERENCES suites(id) ON DELETE CASCADE,
		position INTEGER NOT NULL,
		size INTEGER NOT NULL,
		run1_ms BIGINT NOT NULL,
		run2_ms BIGINT NOT NULL,
		defect BOOLEAN NOT NULL DEFAULT FALSE,
		PRIMARY KEY (suite_id, position)
	);`,
	`CREATE TABLE IF NOT EXISTS trial_failures (
		suite_id INTEGER NOT NULL REFERENCES suites(id) ON DELETE CASCADE,
		position INTEGER NOT NULL,
		size INTEGER NOT NULL,
		run INTEGER NOT NULL,
		error TEXT NOT NULL,
		PRIMARY KEY (suite_id, position)
	);`,
}
