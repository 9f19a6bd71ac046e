package receiver

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/fatih/color"

	"alertsim/internal/model"
	"alertsim/internal/stats"
)

// Server is a debug ingestion endpoint. It accepts the envelopes the
// simulator posts, pretty-prints them and keeps per-type counters,
// standing in for the real monitoring platform during development.
type Server struct {
	addr   string
	out    io.Writer
	logger *slog.Logger
	stats  *stats.Store

	mu sync.Mutex
}

func New(addr string, out io.Writer, logger *slog.Logger) *Server {
	return &Server{addr: addr, out: out, logger: logger, stats: stats.New(0)}
}

// Handler exposes the route table; Run wraps it in a managed http.Server.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/events", s.handleEvents)
	mux.HandleFunc("/stats", s.handleStats)
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	return mux
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	httpServer := &http.Server{Addr: s.addr, Handler: s.Handler()}
	errc := make(chan error, 1)
	go func() {
		errc <- httpServer.ListenAndServe()
	}()
	if s.logger != nil {
		s.logger.Info("receiver listening", "addr", s.addr)
	}
	select {
	case err := <-errc:
		if err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	case <-ctx.Done():
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return httpServer.Shutdown(ctxShutdown)
	}
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, 2<<20))
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	trim := bytes.TrimSpace(body)
	if len(trim) == 0 {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	accepted := 0
	failed := 0
	if trim[0] == '[' {
		var list []map[string]any
		if err := json.Unmarshal(trim, &list); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		for _, obj := range list {
			if err := s.accept(obj); err != nil {
				failed++
				continue
			}
			accepted++
		}
	} else {
		var obj map[string]any
		if err := json.Unmarshal(trim, &obj); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if err := s.accept(obj); err != nil {
			failed++
		} else {
			accepted++
		}
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"accepted": accepted,
		"failed":   failed,
	})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	accepted, failed := s.stats.Totals()
	writeJSON(w, http.StatusOK, map[string]any{
		"accepted": accepted,
		"failed":   failed,
		"events":   s.stats.ByType(),
		"recent":   s.stats.Recent(10),
	})
}

func (s *Server) accept(obj map[string]any) error {
	eventType, _ := obj["eventType"].(string)
	if eventType == "" {
		if s.logger != nil {
			s.logger.Warn("event rejected", "reason", "missing eventType")
		}
		s.stats.Record(model.Envelope{EventType: "(invalid)"}, false)
		return errors.New("missing eventType")
	}
	env := model.Envelope{EventType: eventType}
	env.EventID, _ = obj["eventId"].(string)
	env.EventTimestamp, _ = obj["eventTimestamp"].(string)
	if data, ok := obj["data"].(map[string]any); ok {
		env.Data = data
	}
	s.stats.Record(env, true)

	pretty, err := json.MarshalIndent(obj, "", "  ")
	if err != nil {
		return err
	}
	banner := color.New(color.FgGreen, color.Bold).Sprintf("-- Event Received (%s) --", eventType)

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := fmt.Fprintf(s.out, "%s %s\n%s\n", banner, env.EventID, pretty); err != nil {
		return err
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
