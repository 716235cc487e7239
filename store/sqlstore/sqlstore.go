/*
 * Copyright 2025 CloudWeGo Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package sqlstore keeps a profile in a SQLite table of (section, key, value) rows.
package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	_ "modernc.org/sqlite"
)

const schema = `CREATE TABLE IF NOT EXISTS profile (
	section TEXT NOT NULL,
	key     TEXT NOT NULL,
	value   TEXT NOT NULL,
	seq     INTEGER NOT NULL,
	PRIMARY KEY (section, key)
)`

// Store is a profile store backed by SQLite. It is safe for concurrent use.
type Store struct {
	db     *sql.DB
	logger *slog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger that receives query failures.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// Open opens or creates the database at path.
// Pass ":memory:" for an in-memory database.
func Open(path string, opts ...Option) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sqlstore: opening database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlstore: pinging database: %w", err)
	}

	// one connection, so ":memory:" is a single database and writers never contend
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlstore: setting busy timeout: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlstore: creating schema: %w", err)
	}

	s := &Store{db: db, logger: slog.New(slog.DiscardHandler)}
	for _, o := range opts {
		o(s)
	}
	return s, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// GetContext returns the value of (section, key).
// A missing row is reported as ok == false with a nil error.
func (s *Store) GetContext(ctx context.Context, section, key string) (value string, ok bool, err error) {
	err = s.db.QueryRowContext(ctx,
		"SELECT value FROM profile WHERE section = ? AND key = ?", section, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("sqlstore: querying %s/%s: %w", section, key, err)
	}
	return value, true, nil
}

// SetContext inserts or replaces the value of (section, key).
// A replaced row keeps its position in Range order.
func (s *Store) SetContext(ctx context.Context, section, key, value string) error {
	_, err := s.db.ExecContext(ctx, `INSERT INTO profile (section, key, value, seq)
		VALUES (?, ?, ?, (SELECT COALESCE(MAX(seq), 0) + 1 FROM profile))
		ON CONFLICT (section, key) DO UPDATE SET value = excluded.value`,
		section, key, value)
	if err != nil {
		return fmt.Errorf("sqlstore: writing %s/%s: %w", section, key, err)
	}
	return nil
}

// DeleteContext removes (section, key). Deleting a missing row is not an error.
func (s *Store) DeleteContext(ctx context.Context, section, key string) error {
	if _, err := s.db.ExecContext(ctx,
		"DELETE FROM profile WHERE section = ? AND key = ?", section, key); err != nil {
		return fmt.Errorf("sqlstore: deleting %s/%s: %w", section, key, err)
	}
	return nil
}

// Get implements profile.Store. Query failures are logged and reported as missing.
func (s *Store) Get(section, key string) (string, bool) {
	v, ok, err := s.GetContext(context.Background(), section, key)
	if err != nil {
		s.logger.Error("sqlstore: get failed", "section", section, "key", key, "err", err)
	}
	return v, ok
}

// Set implements profile.Store. Write failures are logged and reported as rejected.
func (s *Store) Set(section, key, value string) bool {
	if err := s.SetContext(context.Background(), section, key, value); err != nil {
		s.logger.Error("sqlstore: set failed", "section", section, "key", key, "err", err)
		return false
	}
	return true
}

// RangeContext calls fn for every row until fn returns false.
// Sections come out contiguously, in the order they were first written,
// and rows within a section in insertion order.
func (s *Store) RangeContext(ctx context.Context, fn func(section, key, value string) bool) error {
	rows, err := s.db.QueryContext(ctx, `SELECT p.section, p.key, p.value FROM profile p
		JOIN (SELECT section, MIN(seq) AS first FROM profile GROUP BY section) f ON f.section = p.section
		ORDER BY f.first, p.seq`)
	if err != nil {
		return fmt.Errorf("sqlstore: listing entries: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var section, key, value string
		if err := rows.Scan(&section, &key, &value); err != nil {
			return fmt.Errorf("sqlstore: scanning entry: %w", err)
		}
		if !fn(section, key, value) {
			return nil
		}
	}
	return rows.Err()
}

// Range is RangeContext with a background context; failures are logged.
func (s *Store) Range(fn func(section, key, value string) bool) {
	if err := s.RangeContext(context.Background(), fn); err != nil {
		s.logger.Error("sqlstore: range failed", "err", err)
	}
}
