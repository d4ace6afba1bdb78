package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/pkg/errors"
)

const minSessionSecretLen = 32

type BackendConfig struct {
	BaseURL string
	LiveURL string
	Timeout time.Duration
	Retries uint
}

type SessionConfig struct {
	Secret string
	Secure bool
	MaxAge int // seconds
}

type ObservabilityConfig struct {
	ServiceName  string
	MetricsAddr  string
	OTLPEndpoint string
	PprofAddr    string
}

type Config struct {
	ServerPort    string
	Backend       BackendConfig
	Session       SessionConfig
	Observability ObservabilityConfig

	LoginRatePerMinute int
	UploadMaxBytes     int64
}

func Load() (*Config, error) {
	timeout, err := getEnvDuration("BACKEND_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}
	retries, err := getEnvInt("BACKEND_RETRIES", 3)
	if err != nil {
		return nil, err
	}
	maxAge, err := getEnvInt("SESSION_MAX_AGE", int((24 * time.Hour).Seconds()))
	if err != nil {
		return nil, err
	}
	loginRate, err := getEnvInt("LOGIN_RATE_PER_MINUTE", 10)
	if err != nil {
		return nil, err
	}
	uploadMax, err := getEnvInt("UPLOAD_MAX_BYTES", 5<<20)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		ServerPort: getEnvOrDefault("SERVER_PORT", "8091"),
		Backend: BackendConfig{
			BaseURL: getEnvOrDefault("BACKEND_BASE_URL", "http://localhost:5000/api"),
			LiveURL: getEnvOrDefault("BACKEND_LIVE_URL", "ws://localhost:5000/live"),
			Timeout: timeout,
			Retries: uint(retries),
		},
		Session: SessionConfig{
			Secret: os.Getenv("SESSION_SECRET"),
			Secure: getEnvOrDefault("SESSION_SECURE", "false") == "true",
			MaxAge: maxAge,
		},
		Observability: ObservabilityConfig{
			ServiceName:  getEnvOrDefault("SERVICE_NAME", "sportsmeet-web"),
			MetricsAddr:  getEnvOrDefault("METRICS_ADDR", ":9092"),
			OTLPEndpoint: getEnvOrDefault("OTLP_ENDPOINT", "otel-collector:4318"),
			PprofAddr:    getEnvOrDefault("PPROF_ADDR", ":6060"),
		},
		LoginRatePerMinute: loginRate,
		UploadMaxBytes:     int64(uploadMax),
	}

	if cfg.Session.Secret == "" {
		return nil, fmt.Errorf("SESSION_SECRET environment variable is required")
	}
	if len(cfg.Session.Secret) < minSessionSecretLen {
		return nil, fmt.Errorf("SESSION_SECRET must be at least %d bytes", minSessionSecretLen)
	}

	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid %s", key)
	}
	if v < 0 {
		return 0, errors.Errorf("%s must not be negative", key)
	}
	return v, nil
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid %s", key)
	}
	return d, nil
}
