package stats

import (
	"sync"
	"time"

	"alertsim/internal/model"
)

const defaultRecentLimit = 100

// TypeStats tracks delivery counts for one event type.
type TypeStats struct {
	Sent   int       `json:"sent"`
	Failed int       `json:"failed"`
	Last   time.Time `json:"last"`
}

// Store accumulates per-type counters and a bounded buffer of recent
// envelopes for the running session. Nothing here is persisted.
type Store struct {
	mu     sync.RWMutex
	byType map[string]*TypeStats
	recent []model.Envelope
	limit  int
}

func New(recentLimit int) *Store {
	if recentLimit <= 0 {
		recentLimit = defaultRecentLimit
	}
	return &Store{
		byType: make(map[string]*TypeStats),
		limit:  recentLimit,
	}
}

// Record counts env against its type; delivered reports whether every sink
// accepted it.
func (s *Store) Record(env model.Envelope, delivered bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.byType[env.EventType]
	if !ok {
		st = &TypeStats{}
		s.byType[env.EventType] = st
	}
	if delivered {
		st.Sent++
	} else {
		st.Failed++
	}
	st.Last = time.Now()
	s.recent = append(s.recent, env)
	if len(s.recent) > s.limit {
		s.recent = s.recent[len(s.recent)-s.limit:]
	}
}

func (s *Store) ByType() map[string]TypeStats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]TypeStats, len(s.byType))
	for k, v := range s.byType {
		out[k] = *v
	}
	return out
}

func (s *Store) Totals() (sent, failed int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, v := range s.byType {
		sent += v.Sent
		failed += v.Failed
	}
	return sent, failed
}

// Recent returns up to limit envelopes, oldest first; limit <= 0 means all
// retained.
func (s *Store) Recent(limit int) []model.Envelope {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if limit <= 0 || limit > len(s.recent) {
		limit = len(s.recent)
	}
	out := make([]model.Envelope, limit)
	copy(out, s.recent[len(s.recent)-limit:])
	return out
}

func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byType = make(map[string]*TypeStats)
	s.recent = nil
}
