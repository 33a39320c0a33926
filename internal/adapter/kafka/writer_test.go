package kafka

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/iot-temp-etl/internal/domain"
)

func TestSerializeToMessage(t *testing.T) {
	event := domain.StageEvent{
		RunID:       "run-123",
		Stage:       "clean_temperature",
		CompletedAt: time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC),
		Facts: map[string]any{
			"outliers_removed": 7,
			"p95":              39.5,
		},
	}

	msg, err := serializeToMessage(event)
	require.NoError(t, err)

	assert.Equal(t, []byte("run-123"), msg.Key)

	var decoded domain.StageEvent
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, event.RunID, decoded.RunID)
	assert.Equal(t, event.Stage, decoded.Stage)
	assert.True(t, event.CompletedAt.Equal(decoded.CompletedAt))
	assert.InDelta(t, 39.5, decoded.Facts["p95"], 1e-9)

	require.Len(t, msg.Headers, 2)
	assert.Equal(t, "stage", msg.Headers[0].Key)
	assert.Equal(t, []byte("clean_temperature"), msg.Headers[0].Value)
	assert.Equal(t, "completed_at", msg.Headers[1].Key)
	assert.Equal(t, []byte("2026-08-30T10:00:00Z"), msg.Headers[1].Value)
}

func TestSerializeToMessage_EmptyFacts(t *testing.T) {
	msg, err := serializeToMessage(domain.StageEvent{RunID: "r", Stage: "load_and_filter_data"})
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"run_id": "r",
		"stage": "load_and_filter_data",
		"completed_at": "0001-01-01T00:00:00Z"
	}`, string(msg.Value))
}
