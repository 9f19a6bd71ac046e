package journal

import (
	"context"
	"path/filepath"
	"testing"

	"alertsim/internal/config"
	"alertsim/internal/model"
)

func TestOpenDisabledReturnsNil(t *testing.T) {
	j, err := Open(config.JournalConfig{Enabled: false})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if j != nil {
		t.Fatal("expected nil journal when disabled")
	}
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	if _, err := Open(config.JournalConfig{Enabled: true, Driver: "oracle"}); err == nil {
		t.Fatal("expected unsupported driver error")
	}
}

func TestSQLiteJournalRoundTrip(t *testing.T) {
	cfg := config.JournalConfig{
		Enabled: true,
		Driver:  "sqlite",
		DSN:     filepath.Join(t.TempDir(), "events.db"),
	}
	j, err := Open(cfg)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer j.Close()

	ctx := context.Background()
	envs := []model.Envelope{
		{EventID: "id-1", EventType: "SIEM_Alert", EventTimestamp: "2026-01-02T10:30:00.000000Z", Data: map[string]any{"severity": "High"}},
		{EventID: "id-2", EventType: "Login_Alert", EventTimestamp: "2026-01-02T10:30:01.000000Z", Data: map[string]any{"loginStatus": "Failure"}},
		{EventID: "id-3", EventType: "SIEM_Alert", EventTimestamp: "2026-01-02T10:30:02.000000Z", Data: map[string]any{"severity": "Low"}},
	}
	for _, env := range envs {
		if err := j.Append(ctx, env); err != nil {
			t.Fatalf("Append %s: %v", env.EventID, err)
		}
	}

	recent, err := j.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("expected 2 events, got %d", len(recent))
	}
	if recent[0].EventID != "id-2" || recent[1].EventID != "id-3" {
		t.Fatalf("wrong order: %s, %s", recent[0].EventID, recent[1].EventID)
	}
	if recent[1].Data["severity"] != "Low" {
		t.Fatalf("data not restored: %v", recent[1].Data)
	}
	if recent[0].EventTimestamp != "2026-01-02T10:30:01.000000Z" {
		t.Fatalf("timestamp = %s", recent[0].EventTimestamp)
	}
}

func TestSQLiteJournalSurvivesReopen(t *testing.T) {
	cfg := config.JournalConfig{
		Enabled: true,
		Driver:  "sqlite",
		DSN:     filepath.Join(t.TempDir(), "events.db"),
	}
	j, err := Open(cfg)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	env := model.Envelope{EventID: "id-1", EventType: "SIEM_Alert", EventTimestamp: "2026-01-02T10:30:00.000000Z", Data: map[string]any{}}
	if err := j.Append(context.Background(), env); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := j.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	again, err := Open(cfg)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer again.Close()
	recent, err := again.Recent(context.Background(), 10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(recent) != 1 || recent[0].EventID != "id-1" {
		t.Fatalf("journal lost events: %v", recent)
	}
}
