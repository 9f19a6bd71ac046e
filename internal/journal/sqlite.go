package journal

import (
	"context"
	"database/sql"
	"strings"

	_ "modernc.org/sqlite"

	"alertsim/internal/model"
)

type sqliteJournal struct {
	baseJournal
}

func NewSQLite(dsn string) (Journal, error) {
	if strings.TrimSpace(dsn) == "" {
		dsn = "file:alertsim.db?_pragma=busy_timeout(5000)"
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	return &sqliteJournal{baseJournal{db: db}}, nil
}

func (s *sqliteJournal) Init(ctx context.Context) error {
	if s.db == nil {
		return nil
	}
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS events (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			event_id TEXT NOT NULL,
			event_type TEXT NOT NULL,
			event_timestamp TEXT NOT NULL,
			data_json TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_events_type ON events(event_type)`,
		`CREATE INDEX IF NOT EXISTS idx_events_timestamp ON events(event_timestamp)`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

func (s *sqliteJournal) Append(ctx context.Context, env model.Envelope) error {
	if s.db == nil {
		return nil
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO events (event_id, event_type, event_timestamp, data_json)
		VALUES (?, ?, ?, ?)`,
		env.EventID,
		env.EventType,
		env.EventTimestamp,
		encodeJSON(env.Data),
	)
	return err
}

func (s *sqliteJournal) Recent(ctx context.Context, limit int) ([]model.Envelope, error) {
	return s.queryRecent(ctx,
		`SELECT event_id, event_type, event_timestamp, data_json
		FROM events ORDER BY id DESC LIMIT ?`, limit)
}
