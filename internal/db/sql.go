package db

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"mergebench/internal/benchmark"
)

// sqlStore holds the queries common to SQLite and Postgres. Queries are
// written with ? placeholders and rewritten for drivers that number them.
type sqlStore struct {
	db       *sql.DB
	numbered bool
}

func (s *sqlStore) rebind(query string) string {
	if !s.numbered {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func (s *sqlStore) migrate(idColumn string) error {
	for i, query := range schema {
		if i == 0 {
			query = fmt.Sprintf(query, idColumn)
		}
		if _, err := s.db.Exec(query); err != nil {
			return err
		}
	}
	return nil
}

// Close closes the database connection
func (s *sqlStore) Close() error {
	return s.db.Close()
}

// Save records suite, its results and failures in one transaction.
func (s *sqlStore) Save(suite benchmark.Suite) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	ts := suite.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}

	var id int64
	err = tx.QueryRow(
		s.rebind(`INSERT INTO suites (label, created_at, aborted) VALUES (?, ?, ?) RETURNING id`),
		suite.Label, ts.UnixNano(), suite.Aborted,
	).Scan(&id)
	if err != nil {
		return fmt.Errorf("failed to insert suite: %w", err)
	}

	for i, r := range suite.Results {
		_, err := tx.Exec(
			s.rebind(`INSERT INTO trial_results (suite_id, position, size, run1_ms, run2_ms, defect) VALUES (?, ?, ?, ?, ?, ?)`),
			id, i, r.Size, r.Run1Millis, r.Run2Millis, r.Defect,
		)
		if err != nil {
			return fmt.Errorf("failed to insert result %d: %w", i, err)
		}
	}

	for i, f := range suite.Failures {
		_, err := tx.Exec(
			s.rebind(`INSERT INTO trial_failures (suite_id, position, size, run, error) VALUES (?, ?, ?, ?, ?)`),
			id, i, f.Size, f.Run, f.Error,
		)
		if err != nil {
			return fmt.Errorf("failed to insert failure %d: %w", i, err)
		}
	}

	return tx.Commit()
}

// LoadAll returns every suite, oldest first.
func (s *sqlStore) LoadAll() ([]benchmark.Suite, error) {
	return s.query(`SELECT id, label, created_at, aborted FROM suites ORDER BY created_at ASC, id ASC`)
}

// LoadLatest returns the newest suite or nil when there is none.
func (s *sqlStore) LoadLatest() (*benchmark.Suite, error) {
	suites, err := s.query(`SELECT id, label, created_at, aborted FROM suites ORDER BY created_at DESC, id DESC LIMIT 1`)
	if err != nil {
		return nil, err
	}
	if len(suites) == 0 {
		return nil, nil
	}
	return &suites[0], nil
}

func (s *sqlStore) query(query string, args ...any) ([]benchmark.Suite, error) {
	rows, err := s.db.Query(s.rebind(query), args...)
	if err != nil {
		return nil, err
	}

	var ids []int64
	suites := []benchmark.Suite{}
	for rows.Next() {
		var (
			id      int64
			suite   benchmark.Suite
			created int64
		)
		if err := rows.Scan(&id, &suite.Label, &created, &suite.Aborted); err != nil {
			rows.Close()
			return nil, err
		}
		suite.Timestamp = time.Unix(0, created)
		suite.Results = []benchmark.TrialResult{}
		ids = append(ids, id)
		suites = append(suites, suite)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	for i, id := range ids {
		if err := s.loadChildren(id, &suites[i]); err != nil {
			return nil, err
		}
	}
	return suites, nil
}

func (s *sqlStore) loadChildren(id int64, suite *benchmark.Suite) error {
	// each result set is drained and closed before the next query; SQLite
	// runs on a single connection
	rows, err := s.db.Query(s.rebind(`SELECT size, run1_ms, run2_ms, defect FROM trial_results WHERE suite_id = ? ORDER BY position`), id)
	if err != nil {
		return err
	}
	for rows.Next() {
		var r benchmark.TrialResult
		if err := rows.Scan(&r.Size, &r.Run1Millis, &r.Run2Millis, &r.Defect); err != nil {
			rows.Close()
			return err
		}
		suite.Results = append(suite.Results, r)
	}
	if err := rows.Close(); err != nil {
		return err
	}
	if err := rows.Err(); err != nil {
		return err
	}

	frows, err := s.db.Query(s.rebind(`SELECT size, run, error FROM trial_failures WHERE suite_id = ? ORDER BY position`), id)
	if err != nil {
		return err
	}
	defer frows.Close()
	for frows.Next() {
		var f benchmark.Failure
		if err := frows.Scan(&f.Size, &f.Run, &f.Error); err != nil {
			return err
		}
		suite.Failures = append(suite.Failures, f)
	}
	return frows.Err()
}
