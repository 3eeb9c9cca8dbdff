package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// Update loop.
	UpdateInterval   time.Duration
	HeadingTolerance float64

	// Fleet and region configuration file; empty means the compiled-in defaults.
	FleetConfigPath string

	// MarineTraffic position provider.
	MarineTrafficToken   string
	MarineTrafficEnabled bool
	MarineTrafficTimeout time.Duration
	PositionCacheSize    int
	PositionCacheTTL     time.Duration

	// Kafka report publishing.
	KafkaEnabled   bool
	KafkaBrokers   []string
	KafkaSinkTopic string

	// Optional on-disk artifacts written after each update cycle.
	ReportPath string
	MapPath    string
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := durationEnv("SHUTDOWN_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}

	updateInterval, err := durationEnv("UPDATE_INTERVAL", 5*time.Minute)
	if err != nil {
		return nil, err
	}

	mtTimeout, err := durationEnv("MARINETRAFFIC_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}

	cacheTTL, err := durationEnv("POSITION_CACHE_TTL", 2*time.Minute)
	if err != nil {
		return nil, err
	}

	tolerance, err := floatEnv("HEADING_TOLERANCE_DEG", 45)
	if err != nil {
		return nil, err
	}

	token := os.Getenv("MARINETRAFFIC_TOKEN")
	mtEnabled := token != ""
	if v := os.Getenv("MARINETRAFFIC_ENABLED"); v != "" {
		mtEnabled = v == "true"
	}

	cfg := &Config{
		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		LogFormat:       envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		UpdateInterval:   updateInterval,
		HeadingTolerance: tolerance,

		FleetConfigPath: os.Getenv("FLEET_CONFIG"),

		MarineTrafficToken:   token,
		MarineTrafficEnabled: mtEnabled,
		MarineTrafficTimeout: mtTimeout,
		PositionCacheSize:    intEnvOrDefault("POSITION_CACHE_SIZE", 256),
		PositionCacheTTL:     cacheTTL,

		KafkaEnabled:   os.Getenv("KAFKA_ENABLED") == "true",
		KafkaBrokers:   parseBrokers(envOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaSinkTopic: envOrDefault("KAFKA_SINK_TOPIC", "carrier-classifications"),

		ReportPath: os.Getenv("REPORT_PATH"),
		MapPath:    os.Getenv("MAP_PATH"),
	}

	if cfg.HeadingTolerance <= 0 || cfg.HeadingTolerance > 180 {
		return nil, fmt.Errorf("HEADING_TOLERANCE_DEG must be in (0, 180], got %g", cfg.HeadingTolerance)
	}
	if cfg.UpdateInterval <= 0 {
		return nil, errors.New("UPDATE_INTERVAL must be positive")
	}
	if cfg.MarineTrafficEnabled && cfg.MarineTrafficToken == "" {
		return nil, errors.New("MARINETRAFFIC_ENABLED is true but MARINETRAFFIC_TOKEN is not set")
	}
	if cfg.KafkaEnabled {
		if len(cfg.KafkaBrokers) == 0 {
			return nil, errors.New("KAFKA_ENABLED is true but KAFKA_BROKERS is empty")
		}
		if cfg.KafkaSinkTopic == "" {
			return nil, errors.New("KAFKA_ENABLED is true but KAFKA_SINK_TOPIC is empty")
		}
	}

	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func intEnvOrDefault(key string, fallback int) int {
	if s := os.Getenv(key); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}

func durationEnv(key string, fallback time.Duration) (time.Duration, error) {
	s := os.Getenv(key)
	if s == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s: %q", key, s)
	}
	return d, nil
}

func floatEnv(key string, fallback float64) (float64, error) {
	s := os.Getenv(key)
	if s == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %q", key, s)
	}
	return f, nil
}

func parseBrokers(s string) []string {
	parts := strings.Split(s, ",")
	brokers := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			brokers = append(brokers, p)
		}
	}
	return brokers
}
