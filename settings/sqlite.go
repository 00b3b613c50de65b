package settings

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/eapache/go-resiliency/retrier"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/jonwraymond/compendium/pack"
	"github.com/jonwraymond/compendium/vocab"
)

const schema = `
CREATE TABLE IF NOT EXISTS pack_settings (
	category TEXT NOT NULL,
	pack_id  TEXT NOT NULL,
	load     INTEGER NOT NULL,
	name     TEXT NOT NULL,
	package  TEXT NOT NULL,
	PRIMARY KEY (category, pack_id)
)`

// SQLiteStore persists settings in a SQLite database. Busy and locked
// errors are retried with exponential backoff.
type SQLiteStore struct {
	db    *sql.DB
	retry *retrier.Retrier
}

// OpenSQLite opens (creating if needed) the database at dsn.
func OpenSQLite(ctx context.Context, dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	}
	for _, pragma := range pragmas {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &SQLiteStore{
		db:    db,
		retry: retrier.New(retrier.ExponentialBackoff(4, 20*time.Millisecond), busyClassifier{}),
	}, nil
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Get implements Store.
func (s *SQLiteStore) Get(ctx context.Context) (pack.Settings, error) {
	var out pack.Settings
	err := s.retry.RunCtx(ctx, func(ctx context.Context) error {
		rows, err := s.db.QueryContext(ctx, `SELECT category, pack_id, load, name, package FROM pack_settings`)
		if err != nil {
			return err
		}
		defer rows.Close()

		out = pack.Settings{}
		for rows.Next() {
			var (
				category, id string
				info         pack.Info
			)
			if err := rows.Scan(&category, &id, &info.Load, &info.Name, &info.Package); err != nil {
				return err
			}
			c := vocab.Category(category)
			if out[c] == nil {
				out[c] = map[string]pack.Info{}
			}
			out[c][id] = info
		}
		return rows.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("read pack settings: %w", err)
	}
	return out, nil
}

// Set implements Store. The stored blob is replaced.
func (s *SQLiteStore) Set(ctx context.Context, settings pack.Settings) error {
	err := s.retry.RunCtx(ctx, func(ctx context.Context) error {
		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return err
		}
		defer tx.Rollback()

		if _, err := tx.ExecContext(ctx, `DELETE FROM pack_settings`); err != nil {
			return err
		}
		stmt, err := tx.PrepareContext(ctx, `INSERT INTO pack_settings (category, pack_id, load, name, package) VALUES (?, ?, ?, ?, ?)`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for c, packs := range settings {
			for id, info := range packs {
				if _, err := stmt.ExecContext(ctx, string(c), id, info.Load, info.Name, info.Package); err != nil {
					return err
				}
			}
		}
		return tx.Commit()
	})
	if err != nil {
		return fmt.Errorf("write pack settings: %w", err)
	}
	return nil
}

type busyClassifier struct{}

func (busyClassifier) Classify(err error) retrier.Action {
	if err == nil {
		return retrier.Succeed
	}
	var serr *sqlite.Error
	if errors.As(err, &serr) {
		switch serr.Code() & 0xff {
		case sqlite3.SQLITE_BUSY, sqlite3.SQLITE_LOCKED:
			return retrier.Retry
		}
	}
	return retrier.Fail
}
