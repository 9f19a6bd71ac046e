package sink

import (
	"context"

	"alertsim/internal/model"
)

// Sink delivers assembled envelopes to one destination. Implementations
// report failures to the caller and never retry on their own.
type Sink interface {
	Name() string
	Deliver(ctx context.Context, env model.Envelope) error
}
