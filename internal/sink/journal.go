package sink

import (
	"context"

	"alertsim/internal/journal"
	"alertsim/internal/model"
)

// Journal archives every delivered event through a journal backend.
type Journal struct {
	j journal.Journal
}

func NewJournal(j journal.Journal) *Journal {
	return &Journal{j: j}
}

func (s *Journal) Name() string { return "journal" }

func (s *Journal) Deliver(ctx context.Context, env model.Envelope) error {
	return s.j.Append(ctx, env)
}

func (s *Journal) Close() error {
	return s.j.Close()
}
