package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/couchcryptid/carrier-tracker/internal/config"
	"github.com/couchcryptid/carrier-tracker/internal/domain"
)

// Writer publishes classified vessel reports to a Kafka topic.
// It implements tracker.ReportPublisher.
type Writer struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the configured sink topic.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaSinkTopic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Writer{writer: w, logger: logger}
}

// PublishReport writes one message per carrier in a single WriteMessages call.
// Keys are MMSIs, so per-vessel ordering survives partitioning.
func (w *Writer) PublishReport(ctx context.Context, report *domain.DeploymentReport) error {
	if len(report.Carriers) == 0 {
		return nil
	}

	msgs := make([]kafkago.Message, len(report.Carriers))
	for i := range report.Carriers {
		msg, err := serializeToMessage(report.Carriers[i], report.GeneratedAt)
		if err != nil {
			return err
		}
		msgs[i] = msg
	}
	return w.writer.WriteMessages(ctx, msgs...)
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// serializeToMessage marshals a vessel report into a Kafka message.
func serializeToMessage(carrier domain.VesselReport, generatedAt time.Time) (kafkago.Message, error) {
	data, err := json.Marshal(carrier)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize vessel report: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(carrier.MMSI),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "target_region", Value: []byte(carrier.TargetRegion)},
			{Key: "generated_at", Value: []byte(generatedAt.Format(time.RFC3339))},
		},
	}, nil
}
