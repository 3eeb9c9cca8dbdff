package kafka

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/carrier-tracker/internal/config"
	"github.com/couchcryptid/carrier-tracker/internal/domain"
)

func TestSerializeToMessage(t *testing.T) {
	generatedAt := time.Date(2024, 6, 1, 6, 0, 0, 0, time.UTC)
	carrier := domain.VesselReport{
		Name:         "USS Dwight D. Eisenhower",
		MMSI:         "368789000",
		Position:     domain.Geo{Lat: 20.5, Lon: 40.2},
		Course:       45,
		Arrow:        "↗",
		CompassPoint: "NE",
		SpeedKnots:   18.5,
		TargetRegion: "Middle East",
	}

	msg, err := serializeToMessage(carrier, generatedAt)
	require.NoError(t, err)

	assert.Equal(t, []byte("368789000"), msg.Key)

	var decoded domain.VesselReport
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, carrier, decoded)

	headers := make(map[string]string, len(msg.Headers))
	for _, h := range msg.Headers {
		headers[h.Key] = string(h.Value)
	}
	assert.Equal(t, "Middle East", headers["target_region"])
	assert.Equal(t, "2024-06-01T06:00:00Z", headers["generated_at"])
}

func TestNewWriterConfiguration(t *testing.T) {
	cfg := &config.Config{
		KafkaBrokers:   []string{"broker1:9092", "broker2:9092"},
		KafkaSinkTopic: "carrier-classifications",
	}

	w := NewWriter(cfg, nil)
	t.Cleanup(func() { _ = w.Close() })

	assert.Equal(t, "carrier-classifications", w.writer.Topic)
	assert.Equal(t, "broker1:9092,broker2:9092", w.writer.Addr.String())
}
