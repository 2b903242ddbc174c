package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type Event struct {
	Event         string      `json:"event"`   // e.g., "item.created"
	Version       string      `json:"version"` // e.g., "v1"
	Timestamp     time.Time   `json:"timestamp"`
	Payload       interface{} `json:"payload"`
	TraceID       string      `json:"traceId"`
	CorrelationID string      `json:"correlationId"`
}

type Headers struct {
	TraceID       string
	CorrelationID string
}

func NewEvent(eventName, version string, payload interface{}, headers Headers) *Event {
	return &Event{
		Event:         eventName,
		Version:       version,
		Timestamp:     time.Now().UTC(),
		Payload:       payload,
		TraceID:       headers.TraceID,
		CorrelationID: headers.CorrelationID,
	}
}

func (e *Event) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

func (e *Event) GetRoutingKey() string {
	return e.Event + "." + e.Version
}

// NewHeaders starts a fresh trace and reuses the request correlation id
// carried by ctx, generating one when the request had none.
func NewHeaders(ctx context.Context) Headers {
	correlationID := CorrelationIDFromContext(ctx)
	if correlationID == "" {
		correlationID = GenerateCorrelationID()
	}

	return Headers{
		TraceID:       GenerateTraceID(),
		CorrelationID: correlationID,
	}
}

func GenerateTraceID() string {
	return uuid.New().String()
}

func GenerateCorrelationID() string {
	return uuid.New().String()
}
