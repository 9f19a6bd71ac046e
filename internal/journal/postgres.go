package journal

import (
	"context"
	"database/sql"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"

	"alertsim/internal/model"
)

type postgresJournal struct {
	baseJournal
}

func NewPostgres(dsn string) (Journal, error) {
	if strings.TrimSpace(dsn) == "" {
		dsn = "postgres://localhost:5432/alertsim?sslmode=disable"
	}
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	return &postgresJournal{baseJournal{db: db}}, nil
}

func (s *postgresJournal) Init(ctx context.Context) error {
	if s.db == nil {
		return nil
	}
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS events (
			id BIGSERIAL PRIMARY KEY,
			event_id TEXT NOT NULL,
			event_type TEXT NOT NULL,
			event_timestamp TEXT NOT NULL,
			data_json JSONB NOT NULL
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

func (s *postgresJournal) Append(ctx context.Context, env model.Envelope) error {
	if s.db == nil {
		return nil
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO events (event_id, event_type, event_timestamp, data_json)
		VALUES ($1, $2, $3, $4)`,
		env.EventID,
		env.EventType,
		env.EventTimestamp,
		encodeJSON(env.Data),
	)
	return err
}

func (s *postgresJournal) Recent(ctx context.Context, limit int) ([]model.Envelope, error) {
	return s.queryRecent(ctx,
		`SELECT event_id, event_type, event_timestamp, data_json
		FROM events ORDER BY id DESC LIMIT $1`, limit)
}
