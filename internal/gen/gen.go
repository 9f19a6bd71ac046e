package gen

import (
	"fmt"
	"log/slog"

	"alertsim/internal/registry"
)

// Provider supplies randomized detail values. Satisfied by fake.Faker.
type Provider interface {
	Username() string
	IPv4() string
	Sentence(words int) string
	UserAgent() string
	Latitude() float64
	Longitude() float64
	Word() string
	IntBetween(min, max int) int
	FloatBetween(min, max float64) float64
	Pick(options []string) string
	URIPath() string
}

// Prompter solicits field values from the operator during manual entry.
type Prompter interface {
	Ask(label, def string) string
	Warn(msg string)
}

// DetailFunc builds the data payload for one event type.
type DetailFunc func(manual bool) (map[string]any, error)

// Set routes event types to their detail generators. Types without a
// registered routine fall back to a threshold-driven generic one as long as
// the registry knows the source.
type Set struct {
	reg    *registry.Registry
	fake   Provider
	prompt Prompter
	logger *slog.Logger
	byType map[string]DetailFunc
}

func New(reg *registry.Registry, fake Provider, prompt Prompter, logger *slog.Logger) *Set {
	s := &Set{
		reg:    reg,
		fake:   fake,
		prompt: prompt,
		logger: logger,
		byType: make(map[string]DetailFunc),
	}
	s.Register("SIEM_Alert", s.siemDetails)
	s.Register("Login_Alert", s.loginDetails)
	s.Register("Smart_Fence_Alert", s.fenceDetails)
	s.Register("Location_Based_Alert", s.locationDetails)
	s.Register("Motion_Sensor_Alert", s.motionDetails)
	s.Register("IR_Sensor_Alert", s.irDetails)
	return s
}

func (s *Set) Register(eventType string, fn DetailFunc) {
	s.byType[eventType] = fn
}

// Details produces the data payload for eventType. Unknown types, meaning no
// registered routine and no registry entry, fail with ErrUnknownEventType.
func (s *Set) Details(eventType string, manual bool) (map[string]any, error) {
	if fn, ok := s.byType[eventType]; ok {
		return fn(manual)
	}
	if s.reg.Has(eventType) {
		return s.genericDetails(eventType, manual)
	}
	return nil, fmt.Errorf("event type %q: %w", eventType, registry.ErrUnknownEventType)
}

// ask prompts with a default, or silently takes the default when no prompter
// is wired (batch mode).
func (s *Set) ask(label, def string) string {
	if s.prompt == nil {
		return def
	}
	return s.prompt.Ask(label, def)
}

// askValidated prompts and validates; a failing value is surfaced and
// replaced by the default.
func (s *Set) askValidated(source, field, label, def string) string {
	v := s.ask(label, def)
	if err := s.reg.Validate(source, field, v); err != nil {
		if s.prompt != nil {
			s.prompt.Warn(fmt.Sprintf("%v Using %q.", err, def))
		}
		if s.logger != nil {
			s.logger.Warn("invalid manual value, using default", "field", field, "err", err)
		}
		return def
	}
	return v
}
