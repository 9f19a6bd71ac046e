package envelope

import (
	"time"

	"github.com/google/uuid"

	"alertsim/internal/model"
)

// TimestampLayout is the wire format for event timestamps: UTC with
// microsecond precision and a literal Z suffix.
const TimestampLayout = "2006-01-02T15:04:05.000000Z"

// New wraps generated detail fields in the delivery envelope expected by the
// ingestion API.
func New(eventType string, data map[string]any) model.Envelope {
	return model.Envelope{
		EventID:        uuid.NewString(),
		EventType:      eventType,
		EventTimestamp: time.Now().UTC().Format(TimestampLayout),
		Data:           data,
	}
}
