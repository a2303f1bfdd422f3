package eventlog_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"groundhandling/internal/adapters/out/eventlog"
	"groundhandling/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublisher_Publish(t *testing.T) {
	t.Run("should log the event as structured attributes", func(t *testing.T) {
		var buf bytes.Buffer
		p := eventlog.NewPublisher(slog.New(slog.NewJSONHandler(&buf, nil)))

		err := p.Publish(t.Context(), ports.OrderEvent{
			ID:         "e-1",
			Type:       ports.OrderRequeued,
			OrderID:    "17",
			FlightID:   "SU-1402",
			Kind:       "discharge",
			Attempts:   1,
			Reason:     "transport failure",
			OccurredAt: time.Now(),
		})
		require.NoError(t, err)

		var line map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
		assert.Equal(t, "order event", line["msg"])
		assert.Equal(t, "order_events", line["component"])
		assert.Equal(t, "requeued", line["type"])
		assert.Equal(t, "17", line["order_id"])
		assert.Equal(t, "transport failure", line["reason"])
	})

	t.Run("should omit an empty reason", func(t *testing.T) {
		var buf bytes.Buffer
		p := eventlog.NewPublisher(slog.New(slog.NewJSONHandler(&buf, nil)))

		require.NoError(t, p.Publish(t.Context(), ports.OrderEvent{Type: ports.OrderReceived, OrderID: "17"}))

		var line map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
		assert.NotContains(t, line, "reason")
	})
}
