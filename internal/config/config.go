package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/riskibarqy/fixture-reconciler/internal/platform/logging"
	"github.com/riskibarqy/fixture-reconciler/internal/platform/resilience"
)

const maxReconcileWorkers = 64

// Config stores runtime configuration for the service.
type Config struct {
	AppEnv                 string
	ServiceName            string
	ServiceVersion         string
	HTTPAddr               string
	ReadTimeout            time.Duration
	WriteTimeout           time.Duration
	ShutdownTimeout        time.Duration
	LogLevel               logging.Level
	CORSAllowedOrigins     []string
	SwaggerEnabled         bool
	ReconcileMaxWorkers    int
	ReconcileDatasetPath   string
	ReconcileAliasesPath   string
	SourceCacheEnabled     bool
	SourceCacheTTL         time.Duration
	SourceCircuit          resilience.CircuitBreakerConfig
	SourceFeedBaseURL      string
	SourceFeedToken        string
	SourceFeedTimeout      time.Duration
	SourceFeedMaxRetries   int
	UptraceEnabled         bool
	UptraceDSN             string
	PyroscopeEnabled       bool
	PyroscopeServerAddress string
	PyroscopeAppName       string
	PyroscopeAuthToken     string
	PyroscopeUploadRate    time.Duration
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	readTimeout, err := getEnvAsPositiveDuration("APP_READ_TIMEOUT", "10s")
	if err != nil {
		return Config{}, err
	}
	writeTimeout, err := getEnvAsPositiveDuration("APP_WRITE_TIMEOUT", "15s")
	if err != nil {
		return Config{}, err
	}
	shutdownTimeout, err := getEnvAsPositiveDuration("APP_SHUTDOWN_TIMEOUT", "10s")
	if err != nil {
		return Config{}, err
	}

	swaggerDefault := "true"
	if appEnv == EnvProd {
		swaggerDefault = "false"
	}
	swaggerEnabled, err := strconv.ParseBool(getEnv("SWAGGER_ENABLED", swaggerDefault))
	if err != nil {
		return Config{}, fmt.Errorf("parse SWAGGER_ENABLED: %w", err)
	}

	reconcileMaxWorkers, err := getEnvAsInt("RECONCILE_MAX_WORKERS", 8)
	if err != nil {
		return Config{}, fmt.Errorf("parse RECONCILE_MAX_WORKERS: %w", err)
	}
	if reconcileMaxWorkers < 1 || reconcileMaxWorkers > maxReconcileWorkers {
		return Config{}, fmt.Errorf("RECONCILE_MAX_WORKERS must be between 1 and %d", maxReconcileWorkers)
	}

	sourceCacheEnabled, err := strconv.ParseBool(getEnv("SOURCE_CACHE_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse SOURCE_CACHE_ENABLED: %w", err)
	}
	sourceCacheTTL, err := getEnvAsPositiveDuration("SOURCE_CACHE_TTL", "60s")
	if err != nil {
		return Config{}, err
	}
	sourceCircuit, err := loadCircuitBreaker("SOURCE_CIRCUIT")
	if err != nil {
		return Config{}, err
	}

	sourceFeedBaseURL := strings.TrimSpace(getEnv("SOURCE_FEED_BASE_URL", ""))
	if sourceFeedBaseURL != "" {
		if parsed, err := url.Parse(sourceFeedBaseURL); err != nil || parsed.Scheme == "" || parsed.Host == "" {
			return Config{}, fmt.Errorf("SOURCE_FEED_BASE_URL must be an absolute URL")
		}
	}
	sourceFeedTimeout, err := getEnvAsPositiveDuration("SOURCE_FEED_TIMEOUT", "10s")
	if err != nil {
		return Config{}, err
	}
	sourceFeedMaxRetries, err := getEnvAsInt("SOURCE_FEED_MAX_RETRIES", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse SOURCE_FEED_MAX_RETRIES: %w", err)
	}
	if sourceFeedMaxRetries < 0 {
		return Config{}, fmt.Errorf("SOURCE_FEED_MAX_RETRIES must be >= 0")
	}

	uptraceEnabled, err := strconv.ParseBool(getEnv("UPTRACE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_ENABLED: %w", err)
	}
	uptraceDSN := strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if uptraceDSN == "" {
		uptraceDSN = parseUptraceDSNFromOTLPHeaders(getEnv("OTEL_EXPORTER_OTLP_HEADERS", ""))
	}
	if uptraceEnabled && uptraceDSN == "" {
		return Config{}, fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}

	pyroscopeEnabled, err := strconv.ParseBool(getEnv("PYROSCOPE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_ENABLED: %w", err)
	}
	pyroscopeServerAddress := strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", ""))
	if pyroscopeEnabled && pyroscopeServerAddress == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}
	pyroscopeUploadRate, err := getEnvAsPositiveDuration("PYROSCOPE_UPLOAD_RATE", "15s")
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		AppEnv:                 appEnv,
		ServiceName:            getEnv("APP_SERVICE_NAME", "fixture-reconciler-api"),
		ServiceVersion:         getEnv("APP_SERVICE_VERSION", "dev"),
		HTTPAddr:               strings.TrimSpace(getEnv("APP_HTTP_ADDR", ":8080")),
		ReadTimeout:            readTimeout,
		WriteTimeout:           writeTimeout,
		ShutdownTimeout:        shutdownTimeout,
		LogLevel:               logging.ParseLevel(getEnv("APP_LOG_LEVEL", "info")),
		CORSAllowedOrigins:     splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		SwaggerEnabled:         swaggerEnabled,
		ReconcileMaxWorkers:    reconcileMaxWorkers,
		ReconcileDatasetPath:   strings.TrimSpace(getEnv("RECONCILE_DATASET_PATH", "")),
		ReconcileAliasesPath:   strings.TrimSpace(getEnv("RECONCILE_ALIASES_PATH", "")),
		SourceCacheEnabled:     sourceCacheEnabled,
		SourceCacheTTL:         sourceCacheTTL,
		SourceCircuit:          sourceCircuit,
		SourceFeedBaseURL:      sourceFeedBaseURL,
		SourceFeedToken:        strings.TrimSpace(getEnv("SOURCE_FEED_TOKEN", "")),
		SourceFeedTimeout:      sourceFeedTimeout,
		SourceFeedMaxRetries:   sourceFeedMaxRetries,
		UptraceEnabled:         uptraceEnabled,
		UptraceDSN:             uptraceDSN,
		PyroscopeEnabled:       pyroscopeEnabled,
		PyroscopeServerAddress: pyroscopeServerAddress,
		PyroscopeAuthToken:     strings.TrimSpace(getEnv("PYROSCOPE_AUTH_TOKEN", "")),
		PyroscopeUploadRate:    pyroscopeUploadRate,
	}
	cfg.PyroscopeAppName = strings.TrimSpace(getEnv("PYROSCOPE_APP_NAME", cfg.ServiceName))
	if cfg.PyroscopeEnabled && cfg.PyroscopeAppName == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_APP_NAME cannot be empty when PYROSCOPE_ENABLED=true")
	}
	if len(cfg.CORSAllowedOrigins) == 0 {
		return Config{}, fmt.Errorf("CORS_ALLOWED_ORIGINS cannot be empty")
	}

	return cfg, nil
}

func loadCircuitBreaker(prefix string) (resilience.CircuitBreakerConfig, error) {
	enabled, err := strconv.ParseBool(getEnv(prefix+"_ENABLED", "true"))
	if err != nil {
		return resilience.CircuitBreakerConfig{}, fmt.Errorf("parse %s_ENABLED: %w", prefix, err)
	}
	failureCount, err := getEnvAsInt(prefix+"_FAILURE_COUNT", resilience.DefaultFailureThreshold)
	if err != nil {
		return resilience.CircuitBreakerConfig{}, fmt.Errorf("parse %s_FAILURE_COUNT: %w", prefix, err)
	}
	if failureCount < 1 {
		return resilience.CircuitBreakerConfig{}, fmt.Errorf("%s_FAILURE_COUNT must be >= 1", prefix)
	}
	openTimeout, err := getEnvAsPositiveDuration(prefix+"_OPEN_TIMEOUT", resilience.DefaultOpenTimeout.String())
	if err != nil {
		return resilience.CircuitBreakerConfig{}, err
	}
	halfOpenMaxReq, err := getEnvAsInt(prefix+"_HALF_OPEN_MAX_REQ", resilience.DefaultHalfOpenMaxReq)
	if err != nil {
		return resilience.CircuitBreakerConfig{}, fmt.Errorf("parse %s_HALF_OPEN_MAX_REQ: %w", prefix, err)
	}
	if halfOpenMaxReq < 1 {
		return resilience.CircuitBreakerConfig{}, fmt.Errorf("%s_HALF_OPEN_MAX_REQ must be >= 1", prefix)
	}

	return resilience.CircuitBreakerConfig{
		Enabled:          enabled,
		FailureThreshold: failureCount,
		OpenTimeout:      openTimeout,
		HalfOpenMaxReq:   halfOpenMaxReq,
	}, nil
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}

func getEnvAsPositiveDuration(key, fallback string) (time.Duration, error) {
	value, err := time.ParseDuration(getEnv(key, fallback))
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	if value <= 0 {
		return 0, fmt.Errorf("%s must be > 0", key)
	}
	return value, nil
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		out = append(out, item)
	}

	return out
}

func parseUptraceDSNFromOTLPHeaders(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}

	for _, item := range strings.Split(raw, ",") {
		parts := strings.SplitN(strings.TrimSpace(item), "=", 2)
		if len(parts) != 2 {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(parts[0]), "uptrace-dsn") {
			return strings.Trim(strings.TrimSpace(parts[1]), "\"'")
		}
	}

	return ""
}

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}
