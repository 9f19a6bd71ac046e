package console

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"alertsim/internal/config"
	"alertsim/internal/gen"
	"alertsim/internal/registry"
	"alertsim/internal/sim"
	"alertsim/internal/sink"
	"alertsim/internal/stats"
	"alertsim/internal/store"
)

type quietProvider struct{}

func (quietProvider) Username() string { return "jdoe" }

func (quietProvider) IPv4() string { return "10.0.0.1" }

func (quietProvider) Sentence(words int) string { return "synthetic event" }

func (quietProvider) UserAgent() string { return "agent/1.0" }

func (quietProvider) Latitude() float64 { return 1.5 }

func (quietProvider) Longitude() float64 { return 2.5 }

func (quietProvider) Word() string { return "word" }

func (quietProvider) IntBetween(min, max int) int { return min }

func (quietProvider) FloatBetween(min, max float64) float64 { return min }

func (quietProvider) Pick(options []string) string { return options[0] }

func (quietProvider) URIPath() string { return "/a/b" }

func script(lines ...string) string {
	return strings.Join(lines, "\n") + "\n"
}

func newTestConsole(t *testing.T, input string, opts func(*Options)) (*Console, *bytes.Buffer, *registry.Registry) {
	t.Helper()
	st := store.New(filepath.Join(t.TempDir(), "config.json"), nil)
	reg := registry.New(st, nil)
	var out bytes.Buffer
	options := Options{
		In:       strings.NewReader(input),
		Out:      &out,
		Registry: reg,
		Stats:    stats.New(0),
	}
	if opts != nil {
		opts(&options)
	}
	c := New(options)
	gens := gen.New(reg, quietProvider{}, c, nil)
	orch := sim.New(reg, gens, nil, options.Stats, c, nil)
	c.Attach(orch)
	return c, &out, reg
}

func TestRunExitsOnQuit(t *testing.T) {
	c, out, _ := newTestConsole(t, script("9"), nil)
	if err := c.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !strings.Contains(out.String(), "Goodbye.") {
		t.Fatalf("missing goodbye, got:\n%s", out.String())
	}
}

func TestRunStopsAtEOF(t *testing.T) {
	c, _, _ := newTestConsole(t, "", nil)
	if err := c.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
}

func TestRunRejectsUnknownChoice(t *testing.T) {
	c, out, _ := newTestConsole(t, script("nope", "9"), nil)
	if err := c.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !strings.Contains(out.String(), "Invalid choice.") {
		t.Fatalf("missing invalid-choice notice, got:\n%s", out.String())
	}
}

// Walks sources menu: add Door_Alert with two fields, list, remove it, back,
// exit.
func TestManageSourcesAddListRemove(t *testing.T) {
	in := script("1", "2", "Door_Alert", "location, status", "1", "3", "Door_Alert", "4", "9")
	c, out, reg := newTestConsole(t, in, nil)
	if err := c.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	got := out.String()
	if !strings.Contains(got, `Added "Door_Alert" with 2 fields.`) {
		t.Fatalf("missing add confirmation, got:\n%s", got)
	}
	if !strings.Contains(got, "Door_Alert: 2 fields") {
		t.Fatalf("missing listing line, got:\n%s", got)
	}
	if !strings.Contains(got, `Removed "Door_Alert".`) {
		t.Fatalf("missing remove confirmation, got:\n%s", got)
	}
	if reg.Has("Door_Alert") {
		t.Fatal("Door_Alert still registered after removal")
	}
}

// Walks items menu on a custom source: add an item, search for it, back, exit.
func TestManageItemsAddAndSearch(t *testing.T) {
	in := script("2", "Door_Alert", "2", "Lobby", "Closed", "5", "lob", "6", "9")
	c, out, reg := newTestConsole(t, in, nil)
	if err := reg.Add("Door_Alert", []string{"location", "status"}); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := c.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	got := out.String()
	if !strings.Contains(got, "Added item DOO-001.") {
		t.Fatalf("missing item confirmation, got:\n%s", got)
	}
	if !strings.Contains(got, "DOO-001: location=Lobby, status=Closed") {
		t.Fatalf("missing search hit, got:\n%s", got)
	}
	items, err := reg.Items("Door_Alert")
	if err != nil {
		t.Fatalf("Items: %v", err)
	}
	if len(items) != 1 || items[0].Attr("location") != "Lobby" {
		t.Fatalf("unexpected items %+v", items)
	}
}

// Sets an enum threshold on status, lists it, back, exit.
func TestManageThresholdsSetAndList(t *testing.T) {
	in := script("3", "Door_Alert", "2", "status", "enum", "Open,Closed", "1", "4", "9")
	c, out, reg := newTestConsole(t, in, nil)
	if err := reg.Add("Door_Alert", []string{"location", "status"}); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := c.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	got := out.String()
	if !strings.Contains(got, `Set enumeration threshold on "status".`) {
		t.Fatalf("missing set confirmation, got:\n%s", got)
	}
	if !strings.Contains(got, "status: one of [Open Closed]") {
		t.Fatalf("missing threshold listing, got:\n%s", got)
	}
	thresholds, err := reg.Thresholds("Door_Alert")
	if err != nil {
		t.Fatalf("Thresholds: %v", err)
	}
	if _, ok := thresholds["status"]; !ok {
		t.Fatalf("threshold not persisted, got %v", thresholds)
	}
}

// Overwrites an existing string setting, adds a numeric one, lists both.
func TestManageSettingsCoercesByPriorKind(t *testing.T) {
	in := script("4", "SIEM_Alert", "2", "default_severity", "High", "2", "retry_count", "3", "1", "4", "9")
	c, out, reg := newTestConsole(t, in, nil)
	if err := c.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	got := out.String()
	if !strings.Contains(got, `Set "default_severity" = High.`) {
		t.Fatalf("missing string set confirmation, got:\n%s", got)
	}
	if !strings.Contains(got, "retry_count = 3 (number)") {
		t.Fatalf("missing numeric listing, got:\n%s", got)
	}
	settings, err := reg.Settings("SIEM_Alert")
	if err != nil {
		t.Fatalf("Settings: %v", err)
	}
	if settings["default_severity"].String() != "High" {
		t.Fatalf("default_severity = %s", settings["default_severity"].String())
	}
	if settings["retry_count"].KindName() != "number" {
		t.Fatalf("retry_count kind = %s", settings["retry_count"].KindName())
	}
}

func TestSimulateMenuEmitsEvent(t *testing.T) {
	var captured *stats.Store
	c, out, _ := newTestConsole(t, script("5", "Login_Alert", "n", "9"), func(o *Options) {
		captured = o.Stats
	})
	if err := c.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !strings.Contains(out.String(), "emitted.") {
		t.Fatalf("missing emit confirmation, got:\n%s", out.String())
	}
	sent, failed := captured.Totals()
	if sent != 1 || failed != 0 {
		t.Fatalf("totals = %d sent, %d failed", sent, failed)
	}
}

func TestKeepItemPromptsWithLocation(t *testing.T) {
	c, out, reg := newTestConsole(t, script("n"), nil)
	if err := reg.Add("Door_Alert", []string{"location", "status"}); err != nil {
		t.Fatalf("Add: %v", err)
	}
	item, _, err := reg.FindOrCreateAuto("Door_Alert", "location", "Lobby", "status", "Open")
	if err != nil {
		t.Fatalf("FindOrCreateAuto: %v", err)
	}
	if c.KeepItem("Door_Alert", item) {
		t.Fatal("expected decline")
	}
	if !strings.Contains(out.String(), "(location: Lobby)") {
		t.Fatalf("missing location hint, got:\n%s", out.String())
	}
}

func TestKeepItemDefaultsToKeep(t *testing.T) {
	c, _, reg := newTestConsole(t, "\n", nil)
	if err := reg.Add("Door_Alert", []string{"location", "status"}); err != nil {
		t.Fatalf("Add: %v", err)
	}
	item, _, err := reg.FindOrCreateAuto("Door_Alert", "location", "Lobby", "status", "Open")
	if err != nil {
		t.Fatalf("FindOrCreateAuto: %v", err)
	}
	if !c.KeepItem("Door_Alert", item) {
		t.Fatal("expected keep on blank input")
	}
}

func TestConfigureSinkRebuildsAndPersists(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "alertsim.yaml")
	if err := config.Save(cfgPath, config.DefaultConfig()); err != nil {
		t.Fatalf("Save: %v", err)
	}
	manager, err := config.NewManager(cfgPath)
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	var rebuilds []string
	in := script("8", "http://localhost:9000", "y", "9")
	c, out, _ := newTestConsole(t, in, func(o *Options) {
		o.Manager = manager
		o.BuildSinks = func(apiURL string) []sink.Sink {
			rebuilds = append(rebuilds, apiURL)
			return nil
		}
	})
	if err := c.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(rebuilds) != 1 || rebuilds[0] != "http://localhost:9000" {
		t.Fatalf("rebuilds = %v", rebuilds)
	}
	if !strings.Contains(out.String(), "posted to http://localhost:9000/events") {
		t.Fatalf("missing sink confirmation, got:\n%s", out.String())
	}
	if manager.Get().Sink.APIBaseURL != "http://localhost:9000" {
		t.Fatalf("manager not updated, got %q", manager.Get().Sink.APIBaseURL)
	}
	reloaded, err := config.Load(cfgPath)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if reloaded.Sink.APIBaseURL != "http://localhost:9000" {
		t.Fatalf("persisted url = %q", reloaded.Sink.APIBaseURL)
	}
}

func TestPromptFloatSecondsParsesFractions(t *testing.T) {
	c, _, _ := newTestConsole(t, script("0.5", "bogus"), nil)
	if d := c.promptFloatSeconds("Delay", 2); d != 500*time.Millisecond {
		t.Fatalf("delay = %v", d)
	}
	if d := c.promptFloatSeconds("Delay", 2); d != 2*time.Second {
		t.Fatalf("fallback delay = %v", d)
	}
}
