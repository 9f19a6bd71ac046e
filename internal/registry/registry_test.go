package registry

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"alertsim/internal/model"
	"alertsim/internal/store"
)

func newTestRegistry(t *testing.T) (*Registry, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	return New(store.New(path, nil), nil), path
}

func TestFreshStartMigratesBuiltins(t *testing.T) {
	reg, _ := newTestRegistry(t)
	names := reg.List()
	if len(names) != 6 {
		t.Fatalf("expected 6 builtin sources, got %v", names)
	}
	if names[0] != "SIEM_Alert" || names[5] != "IR_Sensor_Alert" {
		t.Fatalf("builtin order wrong: %v", names)
	}
	if got := reg.Setting("SIEM_Alert", "default_severity", ""); got != "Medium" {
		t.Fatalf("default_severity not absorbed: %q", got)
	}
	if got := reg.Setting("Smart_Fence_Alert", "default_status", ""); got != "Breached" {
		t.Fatalf("default_status not absorbed: %q", got)
	}
	fields, err := reg.Fields("Motion_Sensor_Alert")
	if err != nil || len(fields) != 5 || fields[1] != "location" {
		t.Fatalf("default fields wrong: %v %v", fields, err)
	}
}

func TestMigrationAbsorbsLegacyDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	legacy := `{
  "SIEM_Alert": {"default_severity": "High", "thresholds": {"severity": ["Low","High"]}},
  "items": {"Motion_Sensor_Alert": [{"id": "MOT-001", "location": "Lobby", "status": "Clear"}]},
  "sensor_types": {}
}`
	if err := os.WriteFile(path, []byte(legacy), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	reg := New(store.New(path, nil), nil)

	if got := reg.Setting("SIEM_Alert", "default_severity", ""); got != "High" {
		t.Fatalf("legacy setting lost: %q", got)
	}
	th, err := reg.Thresholds("SIEM_Alert")
	if err != nil {
		t.Fatalf("thresholds: %v", err)
	}
	rule, ok := th["severity"]
	if !ok || rule.Kind != model.RuleEnum {
		t.Fatalf("legacy threshold not moved verbatim: %+v", th)
	}
	items, err := reg.Items("Motion_Sensor_Alert")
	if err != nil || len(items) != 1 || items[0].ID != "MOT-001" {
		t.Fatalf("legacy items not absorbed: %v %v", items, err)
	}

	// The migration result is saved immediately with legacy keys consumed.
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("parse saved: %v", err)
	}
	if _, ok := raw["items"]; ok {
		t.Fatalf("legacy items key not consumed")
	}
	if _, ok := raw["SIEM_Alert"]; ok {
		t.Fatalf("legacy per-type key not consumed")
	}
	if _, ok := raw["sensor_types"]; !ok {
		t.Fatalf("unrelated top-level key dropped")
	}

	// A second construction must not re-run the migration.
	again := New(store.New(path, nil), nil)
	if got := again.Setting("SIEM_Alert", "default_severity", ""); got != "High" {
		t.Fatalf("migration not idempotent: %q", got)
	}
}

func TestAddListReload(t *testing.T) {
	reg, path := newTestRegistry(t)
	if err := reg.Add("TestAlert", []string{"val"}); err != nil {
		t.Fatalf("add: %v", err)
	}
	found := false
	for _, n := range reg.List() {
		if n == "TestAlert" {
			found = true
		}
	}
	if !found {
		t.Fatalf("added source missing from list")
	}
	reloaded := New(store.New(path, nil), nil)
	if !reloaded.Has("TestAlert") {
		t.Fatalf("added source missing after reload")
	}
}

func TestAddDuplicateFails(t *testing.T) {
	reg, _ := newTestRegistry(t)
	if err := reg.Add("TestAlert", []string{"val"}); err != nil {
		t.Fatalf("first add: %v", err)
	}
	before := len(reg.List())
	err := reg.Add("TestAlert", []string{"other"})
	if !errors.Is(err, ErrDuplicateName) {
		t.Fatalf("expected ErrDuplicateName, got %v", err)
	}
	if len(reg.List()) != before {
		t.Fatalf("failed add changed state")
	}
	fields, _ := reg.Fields("TestAlert")
	if len(fields) != 1 || fields[0] != "val" {
		t.Fatalf("failed add overwrote fields: %v", fields)
	}
}

func TestAddEmptyFieldsFails(t *testing.T) {
	reg, _ := newTestRegistry(t)
	err := reg.Add("Empty", nil)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestRemoveMissingFails(t *testing.T) {
	reg, _ := newTestRegistry(t)
	if err := reg.Remove("Nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := reg.Remove("Login_Alert"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if reg.Has("Login_Alert") {
		t.Fatalf("source still present after remove")
	}
}

func TestSettingsLifecycle(t *testing.T) {
	reg, _ := newTestRegistry(t)
	if err := reg.SetSetting("SIEM_Alert", "batch_size", model.NumberValue(json.Number("25"))); err != nil {
		t.Fatalf("set: %v", err)
	}
	settings, err := reg.Settings("SIEM_Alert")
	if err != nil || settings["batch_size"].String() != "25" {
		t.Fatalf("setting not stored: %v %v", settings, err)
	}
	if err := reg.DeleteSetting("SIEM_Alert", "batch_size"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := reg.DeleteSetting("SIEM_Alert", "batch_size"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("deleting absent key should fail, got %v", err)
	}
	if _, err := reg.Settings("Ghost"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("settings of unknown source should fail, got %v", err)
	}
}

func TestThresholdsLifecycle(t *testing.T) {
	reg, _ := newTestRegistry(t)
	rule := model.RangeRule(json.Number("1"), json.Number("10"))
	if err := reg.SetThreshold("SIEM_Alert", "sourcePort", rule); err != nil {
		t.Fatalf("set: %v", err)
	}
	th, err := reg.Thresholds("SIEM_Alert")
	if err != nil || th["sourcePort"].Kind != model.RuleRange {
		t.Fatalf("threshold not stored: %v %v", th, err)
	}
	if err := reg.DeleteThreshold("SIEM_Alert", "sourcePort"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := reg.DeleteThreshold("SIEM_Alert", "sourcePort"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("deleting absent threshold should fail, got %v", err)
	}
}
