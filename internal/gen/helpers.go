package gen

import (
	"fmt"
	"math"
	"time"

	"alertsim/internal/envelope"
)

type weighted struct {
	value  string
	weight int
}

// weightedChoice rolls 1-100 against cumulative percentage weights.
func (s *Set) weightedChoice(choices []weighted) string {
	roll := s.fake.IntBetween(1, 100)
	total := 0
	for _, c := range choices {
		total += c.weight
		if roll <= total {
			return c.value
		}
	}
	return choices[len(choices)-1].value
}

// recentTimestamp is a wire-format timestamp between one and maxAgeSeconds
// seconds in the past.
func (s *Set) recentTimestamp(maxAgeSeconds int) string {
	age := time.Duration(s.fake.IntBetween(1, maxAgeSeconds)) * time.Second
	return time.Now().UTC().Add(-age).Format(envelope.TimestampLayout)
}

var manualTimestampLayouts = []string{
	envelope.TimestampLayout,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// askTimestamp prompts for a timestamp and normalizes it to the wire format.
// Unparseable input is surfaced and replaced by the generated default.
func (s *Set) askTimestamp(label string, maxAgeSeconds int) string {
	def := s.recentTimestamp(maxAgeSeconds)
	v := s.ask(label, def)
	if v == def {
		return def
	}
	for _, layout := range manualTimestampLayouts {
		if ts, err := time.Parse(layout, v); err == nil {
			return ts.UTC().Format(envelope.TimestampLayout)
		}
	}
	if s.prompt != nil {
		s.prompt.Warn(fmt.Sprintf("timestamp %q not understood. Using %q.", v, def))
	}
	return def
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
