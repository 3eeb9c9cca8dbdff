//go:build integration

package integration_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net"
	"strconv"
	"testing"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tckafka "github.com/testcontainers/testcontainers-go/modules/kafka"

	"github.com/couchcryptid/carrier-tracker/internal/adapter/kafka"
	"github.com/couchcryptid/carrier-tracker/internal/config"
	"github.com/couchcryptid/carrier-tracker/internal/domain"
)

const testSinkTopic = "test-deployment-reports"

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// startKafka launches a single-node Kafka container and returns its broker address.
func startKafka(ctx context.Context, t *testing.T) string {
	t.Helper()

	container, err := tckafka.Run(ctx,
		"confluentinc/confluent-local:7.5.0",
		tckafka.WithClusterID("test-cluster"),
	)
	require.NoError(t, err, "start kafka container")
	t.Cleanup(func() {
		_ = container.Terminate(context.Background())
	})

	brokers, err := container.Brokers(ctx)
	require.NoError(t, err, "resolve broker addresses")
	require.NotEmpty(t, brokers)
	return brokers[0]
}

func createTopic(t *testing.T, broker, topic string) {
	t.Helper()

	conn, err := kafkago.Dial("tcp", broker)
	require.NoError(t, err, "dial broker")
	defer conn.Close()

	controller, err := conn.Controller()
	require.NoError(t, err, "find controller")

	ctrlConn, err := kafkago.Dial("tcp", net.JoinHostPort(controller.Host, strconv.Itoa(controller.Port)))
	require.NoError(t, err, "dial controller")
	defer ctrlConn.Close()

	require.NoError(t, ctrlConn.CreateTopics(kafkago.TopicConfig{
		Topic:             topic,
		NumPartitions:     1,
		ReplicationFactor: 1,
	}))
}

// publishedReport holds a deserialized per-carrier message read from the sink topic.
type publishedReport struct {
	Report  domain.VesselReport
	Key     string
	Headers map[string]string
}

func readPublished(ctx context.Context, t *testing.T, consumer *kafkago.Reader) publishedReport {
	t.Helper()
	readCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	msg, err := consumer.ReadMessage(readCtx)
	require.NoError(t, err, "read from sink topic")

	headers := make(map[string]string, len(msg.Headers))
	for _, h := range msg.Headers {
		headers[h.Key] = string(h.Value)
	}
	var report domain.VesselReport
	require.NoError(t, json.Unmarshal(msg.Value, &report), "unmarshal sink message")

	return publishedReport{
		Report:  report,
		Key:     string(msg.Key),
		Headers: headers,
	}
}

// TestWriterPublishesReport verifies that kafka.Writer fans a deployment report
// out as one keyed message per carrier with region and timestamp headers.
func TestWriterPublishesReport(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	broker := startKafka(ctx, t)
	createTopic(t, broker, testSinkTopic)

	cfg := &config.Config{
		KafkaBrokers:   []string{broker},
		KafkaSinkTopic: testSinkTopic,
	}

	generatedAt := time.Date(2024, time.June, 1, 6, 0, 0, 0, time.UTC)
	report := &domain.DeploymentReport{
		GeneratedAt: generatedAt,
		Carriers: []domain.VesselReport{
			{
				Name:         "USS Gerald R. Ford",
				MMSI:         "368123000",
				Position:     domain.Geo{Lat: 35.2, Lon: 33.1},
				Course:       90,
				Arrow:        "→",
				CompassPoint: "E",
				SpeedKnots:   18.5,
				TargetRegion: "Middle East",
				Timestamp:    generatedAt,
			},
			{
				Name:         "USS Carl Vinson",
				MMSI:         "368567000",
				Position:     domain.Geo{Lat: 35.7, Lon: 139.7},
				Course:       180,
				Arrow:        "↓",
				CompassPoint: "S",
				SpeedKnots:   18.5,
				TargetRegion: domain.RegionOtherOperations,
				Timestamp:    generatedAt,
			},
		},
		DataSource: "static",
		Disclaimer: domain.Disclaimer,
	}

	writer := kafka.NewWriter(cfg, discardLogger())
	t.Cleanup(func() { _ = writer.Close() })

	require.NoError(t, writer.PublishReport(ctx, report))

	consumer := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:     []string{broker},
		Topic:       testSinkTopic,
		GroupID:     fmt.Sprintf("test-consumer-%d", time.Now().UnixNano()),
		StartOffset: kafkago.FirstOffset,
	})
	t.Cleanup(func() { _ = consumer.Close() })

	byMMSI := make(map[string]publishedReport, len(report.Carriers))
	for range report.Carriers {
		pr := readPublished(ctx, t, consumer)
		byMMSI[pr.Key] = pr
	}
	require.Len(t, byMMSI, 2)

	ford, ok := byMMSI["368123000"]
	require.True(t, ok, "expected message keyed by Ford MMSI")
	assert.Equal(t, "USS Gerald R. Ford", ford.Report.Name)
	assert.Equal(t, "Middle East", ford.Report.TargetRegion)
	assert.Equal(t, "Middle East", ford.Headers["target_region"])
	assert.Equal(t, generatedAt.Format(time.RFC3339), ford.Headers["generated_at"])
	assert.Equal(t, 90.0, ford.Report.Course)
	assert.Equal(t, "→", ford.Report.Arrow)

	vinson, ok := byMMSI["368567000"]
	require.True(t, ok, "expected message keyed by Vinson MMSI")
	assert.Equal(t, domain.RegionOtherOperations, vinson.Report.TargetRegion)
	assert.Equal(t, domain.RegionOtherOperations, vinson.Headers["target_region"])

	// Verify nothing beyond the two carrier messages was produced.
	readCtx, readCancel := context.WithTimeout(ctx, 5*time.Second)
	_, err := consumer.ReadMessage(readCtx)
	readCancel()
	assert.Error(t, err, "expected no extra message on sink topic")
}
