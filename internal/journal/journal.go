package journal

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"

	"alertsim/internal/config"
	"alertsim/internal/model"
)

// Journal archives every emitted event so a session can be audited or
// replayed later. Backends share the events schema.
type Journal interface {
	Init(ctx context.Context) error
	Close() error
	Append(ctx context.Context, env model.Envelope) error
	Recent(ctx context.Context, limit int) ([]model.Envelope, error)
}

// Open returns a ready journal for the configured driver, or nil when the
// journal is disabled.
func Open(cfg config.JournalConfig) (Journal, error) {
	if !cfg.Enabled {
		return nil, nil
	}
	var (
		j   Journal
		err error
	)
	switch strings.ToLower(cfg.Driver) {
	case "sqlite":
		j, err = NewSQLite(cfg.DSN)
	case "postgres", "postgresql":
		j, err = NewPostgres(cfg.DSN)
	default:
		return nil, errors.New("unsupported journal driver")
	}
	if err != nil {
		return nil, err
	}
	if err := j.Init(context.Background()); err != nil {
		_ = j.Close()
		return nil, err
	}
	return j, nil
}

type baseJournal struct {
	db *sql.DB
}

func (b *baseJournal) Close() error {
	if b.db != nil {
		return b.db.Close()
	}
	return nil
}

func (b *baseJournal) queryRecent(ctx context.Context, query string, limit int) ([]model.Envelope, error) {
	if b.db == nil {
		return nil, nil
	}
	if limit <= 0 {
		limit = 100
	}
	rows, err := b.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	// Newest-first from the query; reversed so callers read oldest-first.
	var out []model.Envelope
	for rows.Next() {
		var env model.Envelope
		var data string
		if err := rows.Scan(&env.EventID, &env.EventType, &env.EventTimestamp, &data); err != nil {
			return nil, err
		}
		if data != "" {
			_ = json.Unmarshal([]byte(data), &env.Data)
		}
		out = append(out, env)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out, nil
}

func encodeJSON(value any) string {
	data, _ := json.Marshal(value)
	return string(data)
}
