package gen

import (
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"alertsim/internal/model"
	"alertsim/internal/registry"
	"alertsim/internal/store"
)

// stubProvider returns fixed values; IntBetween returns roll when it fits the
// bounds, otherwise the minimum.
type stubProvider struct {
	roll int
}

func (p *stubProvider) Username() string { return "jdoe" }

func (p *stubProvider) IPv4() string { return "10.0.0.9" }

func (p *stubProvider) Sentence(words int) string { return "stub sentence" }

func (p *stubProvider) UserAgent() string { return "agent/1.0" }

func (p *stubProvider) Latitude() float64 { return 51.5 }

func (p *stubProvider) Longitude() float64 { return -0.12 }

func (p *stubProvider) Word() string { return "alpha" }

func (p *stubProvider) Pick(options []string) string { return options[0] }

func (p *stubProvider) URIPath() string { return "/stub" }

func (p *stubProvider) IntBetween(min, max int) int {
	if p.roll >= min && p.roll <= max {
		return p.roll
	}
	return min
}

func (p *stubProvider) FloatBetween(min, max float64) float64 { return min }

type scriptPrompter struct {
	answers map[string]string
	warns   []string
}

func (p *scriptPrompter) Ask(label, def string) string {
	if v, ok := p.answers[label]; ok && v != "" {
		return v
	}
	return def
}

func (p *scriptPrompter) Warn(msg string) {
	p.warns = append(p.warns, msg)
}

func newGenRegistry(t *testing.T) *registry.Registry {
	t.Helper()
	return registry.New(store.New(filepath.Join(t.TempDir(), "config.json"), nil), nil)
}

func TestDetailsUnknownType(t *testing.T) {
	s := New(newGenRegistry(t), &stubProvider{roll: 1}, nil, nil)
	_, err := s.Details("Nonexistent_Alert", false)
	if !errors.Is(err, registry.ErrUnknownEventType) {
		t.Fatalf("expected ErrUnknownEventType, got %v", err)
	}
}

func TestGenericDetailsRandom(t *testing.T) {
	reg := newGenRegistry(t)
	if err := reg.Add("Demo", []string{"mode", "level", "code"}); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := reg.SetThreshold("Demo", "mode", model.EnumRule([]string{"A", "B"})); err != nil {
		t.Fatalf("threshold: %v", err)
	}
	if err := reg.SetThreshold("Demo", "level", model.RangeRule(json.Number("1"), json.Number("10"))); err != nil {
		t.Fatalf("threshold: %v", err)
	}

	s := New(reg, &stubProvider{roll: 7}, nil, nil)
	data, err := s.Details("Demo", false)
	if err != nil {
		t.Fatalf("details: %v", err)
	}
	if data["mode"] != "A" {
		t.Fatalf("enum field = %v", data["mode"])
	}
	if data["level"] != 7 {
		t.Fatalf("range field = %v", data["level"])
	}
	if data["code"] != "alpha" {
		t.Fatalf("unruled field = %v", data["code"])
	}
}

func TestGenericDetailsManualAbortsOnInvalid(t *testing.T) {
	reg := newGenRegistry(t)
	if err := reg.Add("Demo", []string{"mode", "level"}); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := reg.SetThreshold("Demo", "level", model.RangeRule(json.Number("1"), json.Number("10"))); err != nil {
		t.Fatalf("threshold: %v", err)
	}

	prompt := &scriptPrompter{answers: map[string]string{"mode": "standard", "level": "99"}}
	s := New(reg, &stubProvider{roll: 1}, prompt, nil)
	_, err := s.Details("Demo", true)
	if err == nil || !strings.Contains(err.Error(), "must be between 1 and 10.") {
		t.Fatalf("expected range failure, got %v", err)
	}
}

func TestMotionDetailsTracksItem(t *testing.T) {
	reg := newGenRegistry(t)
	s := New(reg, &stubProvider{roll: 1}, nil, nil)

	data, err := s.Details("Motion_Sensor_Alert", false)
	if err != nil {
		t.Fatalf("details: %v", err)
	}
	if data["itemId"] != "MOT-001" || data["location"] != "Corridor 1" || data["status"] != "Detected" {
		t.Fatalf("item fields wrong: %v", data)
	}
	if data["source"] != "PIR Motion Sensor" {
		t.Fatalf("source = %v", data["source"])
	}

	// Same location must reuse the tracked item, not mint another.
	if _, err := s.Details("Motion_Sensor_Alert", false); err != nil {
		t.Fatalf("details: %v", err)
	}
	items, _ := reg.Items("Motion_Sensor_Alert")
	if len(items) != 1 || !items[0].AutoGenerated {
		t.Fatalf("expected one auto item, got %+v", items)
	}
}

func TestLoginFailureReason(t *testing.T) {
	reg := newGenRegistry(t)

	failing := New(reg, &stubProvider{roll: 100}, nil, nil)
	data, err := failing.Details("Login_Alert", false)
	if err != nil {
		t.Fatalf("details: %v", err)
	}
	if data["loginStatus"] != "Failure" || data["failureReason"] == nil {
		t.Fatalf("failure path wrong: %v", data)
	}

	succeeding := New(reg, &stubProvider{roll: 1}, nil, nil)
	data, err = succeeding.Details("Login_Alert", false)
	if err != nil {
		t.Fatalf("details: %v", err)
	}
	if data["loginStatus"] != "Success" || data["failureReason"] != nil {
		t.Fatalf("success path wrong: %v", data)
	}
}

func TestSIEMManualInvalidSeverityFallsBack(t *testing.T) {
	reg := newGenRegistry(t)
	rule := model.EnumRule([]string{"Low", "Medium", "High", "Critical"})
	if err := reg.SetThreshold("SIEM_Alert", "severity", rule); err != nil {
		t.Fatalf("threshold: %v", err)
	}

	prompt := &scriptPrompter{answers: map[string]string{"Severity": "Bogus"}}
	s := New(reg, &stubProvider{roll: 1}, prompt, nil)
	data, err := s.Details("SIEM_Alert", true)
	if err != nil {
		t.Fatalf("details: %v", err)
	}
	if data["severity"] != "Medium" {
		t.Fatalf("expected fallback to default severity, got %v", data["severity"])
	}
	if len(prompt.warns) == 0 || !strings.Contains(prompt.warns[0], "must be one of") {
		t.Fatalf("validation failure not surfaced: %v", prompt.warns)
	}
	if data["alertName"] != "Medium severity alert detected" {
		t.Fatalf("alert name = %v", data["alertName"])
	}
}

func TestFenceSensorDataFollowsStatus(t *testing.T) {
	reg := newGenRegistry(t)

	lowBattery := New(reg, &stubProvider{roll: 100}, nil, nil)
	data, err := lowBattery.Details("Smart_Fence_Alert", false)
	if err != nil {
		t.Fatalf("details: %v", err)
	}
	if data["status"] != "Low Battery" {
		t.Fatalf("status = %v", data["status"])
	}
	sensor := data["sensorData"].(map[string]any)
	if sensor["voltage"] != 10.0 {
		t.Fatalf("low battery voltage = %v", sensor["voltage"])
	}
	if sensor["vibration"] != 0.0 {
		t.Fatalf("vibration without impact = %v", sensor["vibration"])
	}
}

func TestManualTimestampNormalized(t *testing.T) {
	reg := newGenRegistry(t)
	prompt := &scriptPrompter{answers: map[string]string{"Detection timestamp": "2026-01-02 10:30:00"}}
	s := New(reg, &stubProvider{roll: 1}, prompt, nil)

	data, err := s.Details("Motion_Sensor_Alert", true)
	if err != nil {
		t.Fatalf("details: %v", err)
	}
	if data["detectionTimestamp"] != "2026-01-02T10:30:00.000000Z" {
		t.Fatalf("timestamp not normalized: %v", data["detectionTimestamp"])
	}
	if len(prompt.warns) != 0 {
		t.Fatalf("unexpected warnings: %v", prompt.warns)
	}
}
