package events

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventRoutingKey(t *testing.T) {
	event := NewEvent(ItemCreatedEvent, EventVersionV1, nil, Headers{})

	assert.Equal(t, "item.created.v1", event.GetRoutingKey())
}

func TestEventToJSON(t *testing.T) {
	headers := Headers{TraceID: "trace", CorrelationID: "corr"}
	event := NewEvent(ItemDeletedEvent, EventVersionV1, ItemDeletedPayload{ID: "abc"}, headers)

	body, err := event.ToJSON()
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(body, &decoded))
	assert.Equal(t, "item.deleted", decoded["event"])
	assert.Equal(t, "v1", decoded["version"])
	assert.Equal(t, "trace", decoded["traceId"])
	assert.Equal(t, "corr", decoded["correlationId"])
	assert.Equal(t, "abc", decoded["payload"].(map[string]any)["id"])
}

func TestNewHeadersReusesCorrelationID(t *testing.T) {
	ctx := WithCorrelationID(context.Background(), "request-42")

	headers := NewHeaders(ctx)

	assert.Equal(t, "request-42", headers.CorrelationID)
	_, err := uuid.Parse(headers.TraceID)
	assert.NoError(t, err)
}

func TestNewHeadersGeneratesCorrelationID(t *testing.T) {
	headers := NewHeaders(context.Background())

	_, err := uuid.Parse(headers.CorrelationID)
	assert.NoError(t, err)
	assert.NotEqual(t, headers.TraceID, headers.CorrelationID)
}
