package events

import (
	"encoding/json"
	"time"
)

const (
	TypeConsultationTranscribed = "CONSULTATION_TRANSCRIBED"
	TypeConsultationPublished   = "CONSULTATION_PUBLISHED"
)

// BaseEvent is the envelope every message on the consultation bus
// travels in. Data carries the type-specific payload.
type BaseEvent struct {
	Type       string      `json:"type"`
	Data       interface{} `json:"data"`
	OccurredAt time.Time   `json:"occurred_at"`
}

// Envelope is the consumer-side view of BaseEvent: the payload stays
// raw until the type is known.
type Envelope struct {
	Type       string          `json:"type"`
	Data       json.RawMessage `json:"data"`
	OccurredAt time.Time       `json:"occurred_at"`
}
