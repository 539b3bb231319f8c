package config

import (
	"testing"
	"time"

	"github.com/riskibarqy/fixture-reconciler/internal/platform/logging"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "")
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("RECONCILE_MAX_WORKERS", "")
	t.Setenv("RECONCILE_DATASET_PATH", "")
	t.Setenv("RECONCILE_ALIASES_PATH", "")
	t.Setenv("APP_LOG_LEVEL", "")
	t.Setenv("SWAGGER_ENABLED", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.AppEnv != EnvDev {
		t.Fatalf("unexpected app env: %q", cfg.AppEnv)
	}
	if cfg.HTTPAddr != ":8080" {
		t.Fatalf("unexpected http addr: %q", cfg.HTTPAddr)
	}
	if cfg.ReadTimeout != 10*time.Second || cfg.WriteTimeout != 15*time.Second {
		t.Fatalf("unexpected timeouts: read=%s write=%s", cfg.ReadTimeout, cfg.WriteTimeout)
	}
	if cfg.ShutdownTimeout != 10*time.Second {
		t.Fatalf("unexpected shutdown timeout: %s", cfg.ShutdownTimeout)
	}
	if cfg.ReconcileMaxWorkers != 8 {
		t.Fatalf("unexpected reconcile max workers: %d", cfg.ReconcileMaxWorkers)
	}
	if cfg.ReconcileDatasetPath != "" || cfg.ReconcileAliasesPath != "" {
		t.Fatalf("expected empty dataset and alias paths, got %q %q", cfg.ReconcileDatasetPath, cfg.ReconcileAliasesPath)
	}
	if !cfg.SwaggerEnabled {
		t.Fatalf("expected swagger enabled outside prod")
	}
	if cfg.LogLevel != logging.LevelInfo {
		t.Fatalf("unexpected log level: %s", cfg.LogLevel)
	}
}

func TestLoad_AppEnvValidation(t *testing.T) {
	t.Setenv("APP_ENV", "invalid")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_ReconcileMaxWorkers(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")

	tests := []struct {
		name    string
		value   string
		want    int
		wantErr bool
	}{
		{name: "explicit", value: "16", want: 16},
		{name: "upper bound", value: "64", want: 64},
		{name: "zero", value: "0", wantErr: true},
		{name: "too many", value: "65", wantErr: true},
		{name: "not a number", value: "many", wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("RECONCILE_MAX_WORKERS", tc.value)

			cfg, err := Load()
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error for RECONCILE_MAX_WORKERS=%q", tc.value)
				}
				return
			}
			if err != nil {
				t.Fatalf("load config: %v", err)
			}
			if cfg.ReconcileMaxWorkers != tc.want {
				t.Fatalf("unexpected reconcile max workers: %d", cfg.ReconcileMaxWorkers)
			}
		})
	}
}

func TestLoad_SourceResilienceConfig(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")

	t.Run("defaults", func(t *testing.T) {
		t.Setenv("SOURCE_CACHE_ENABLED", "")
		t.Setenv("SOURCE_CACHE_TTL", "")
		t.Setenv("SOURCE_CIRCUIT_ENABLED", "")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if !cfg.SourceCacheEnabled || cfg.SourceCacheTTL != time.Minute {
			t.Fatalf("unexpected source cache config: enabled=%v ttl=%s", cfg.SourceCacheEnabled, cfg.SourceCacheTTL)
		}
		if !cfg.SourceCircuit.Enabled || cfg.SourceCircuit.FailureThreshold != 5 {
			t.Fatalf("unexpected source circuit config: %+v", cfg.SourceCircuit)
		}
		if cfg.SourceCircuit.OpenTimeout != 15*time.Second || cfg.SourceCircuit.HalfOpenMaxReq != 2 {
			t.Fatalf("unexpected source circuit timings: %+v", cfg.SourceCircuit)
		}
	})

	t.Run("invalid failure count", func(t *testing.T) {
		t.Setenv("SOURCE_CIRCUIT_FAILURE_COUNT", "0")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for SOURCE_CIRCUIT_FAILURE_COUNT=0")
		}
	})

	t.Run("invalid cache flag", func(t *testing.T) {
		t.Setenv("SOURCE_CACHE_ENABLED", "sometimes")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for invalid SOURCE_CACHE_ENABLED")
		}
	})
}

func TestLoad_DurationValidation(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")

	for _, key := range []string{"APP_READ_TIMEOUT", "APP_WRITE_TIMEOUT", "APP_SHUTDOWN_TIMEOUT", "SOURCE_CACHE_TTL", "SOURCE_CIRCUIT_OPEN_TIMEOUT", "SOURCE_FEED_TIMEOUT", "PYROSCOPE_UPLOAD_RATE"} {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, "bad")
			if _, err := Load(); err == nil {
				t.Fatalf("expected error for invalid %s", key)
			}

			t.Setenv(key, "-1s")
			if _, err := Load(); err == nil {
				t.Fatalf("expected error for negative %s", key)
			}
		})
	}
}

func TestLoad_UptraceRequiresDSNWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when UPTRACE_ENABLED=true without UPTRACE_DSN")
	}
}

func TestLoad_UptraceDSNFromOTLPHeaders(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", "x-other=1, uptrace-dsn=\"https://token@api.uptrace.dev?grpc=4317\"")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.UptraceDSN != "https://token@api.uptrace.dev?grpc=4317" {
		t.Fatalf("unexpected uptrace dsn: %q", cfg.UptraceDSN)
	}
}

func TestLoad_PyroscopeRequiresServerAddressWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("PYROSCOPE_ENABLED", "true")
	t.Setenv("PYROSCOPE_SERVER_ADDRESS", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when PYROSCOPE_ENABLED=true without PYROSCOPE_SERVER_ADDRESS")
	}
}

func TestLoad_PyroscopeAppNameDefaultsToServiceName(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("APP_SERVICE_NAME", "fixture-reconciler-test")
	t.Setenv("PYROSCOPE_ENABLED", "true")
	t.Setenv("PYROSCOPE_SERVER_ADDRESS", "http://localhost:4040")
	t.Setenv("PYROSCOPE_APP_NAME", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.PyroscopeAppName != "fixture-reconciler-test" {
		t.Fatalf("unexpected pyroscope app name: %q", cfg.PyroscopeAppName)
	}
}

func TestLoad_CORSOriginsDefaultAndParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")

	t.Run("default wildcard", func(t *testing.T) {
		t.Setenv("CORS_ALLOWED_ORIGINS", "")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if len(cfg.CORSAllowedOrigins) != 1 || cfg.CORSAllowedOrigins[0] != "*" {
			t.Fatalf("unexpected default CORS origins: %+v", cfg.CORSAllowedOrigins)
		}
	})

	t.Run("comma separated parsing", func(t *testing.T) {
		t.Setenv("CORS_ALLOWED_ORIGINS", " https://a.example.com, http://localhost:5173 ")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if len(cfg.CORSAllowedOrigins) != 2 {
			t.Fatalf("unexpected CORS origins length: %d", len(cfg.CORSAllowedOrigins))
		}
		if cfg.CORSAllowedOrigins[1] != "http://localhost:5173" {
			t.Fatalf("unexpected second CORS origin: %s", cfg.CORSAllowedOrigins[1])
		}
	})

	t.Run("only separators", func(t *testing.T) {
		t.Setenv("CORS_ALLOWED_ORIGINS", " , ,")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for empty CORS origin list")
		}
	})
}

func TestLoad_SwaggerDefaultsByEnvironment(t *testing.T) {
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("SWAGGER_ENABLED", "")

	tests := []struct {
		env  string
		want bool
	}{
		{env: EnvDev, want: true},
		{env: EnvStage, want: true},
		{env: EnvProd, want: false},
	}

	for _, tc := range tests {
		t.Run(tc.env, func(t *testing.T) {
			t.Setenv("APP_ENV", tc.env)
			cfg, err := Load()
			if err != nil {
				t.Fatalf("load config: %v", err)
			}
			if cfg.SwaggerEnabled != tc.want {
				t.Fatalf("unexpected swagger flag for %s: %v", tc.env, cfg.SwaggerEnabled)
			}
		})
	}

	t.Run("explicit override", func(t *testing.T) {
		t.Setenv("APP_ENV", EnvProd)
		t.Setenv("SWAGGER_ENABLED", "true")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if !cfg.SwaggerEnabled {
			t.Fatalf("expected SWAGGER_ENABLED=true to win over prod default")
		}
	})
}

func TestLoad_SourceFeed(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")

	t.Run("defaults", func(t *testing.T) {
		t.Setenv("SOURCE_FEED_BASE_URL", "")
		t.Setenv("SOURCE_FEED_MAX_RETRIES", "")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.SourceFeedBaseURL != "" || cfg.SourceFeedMaxRetries != 2 || cfg.SourceFeedTimeout != 10*time.Second {
			t.Fatalf("unexpected feed defaults: url=%q retries=%d timeout=%s", cfg.SourceFeedBaseURL, cfg.SourceFeedMaxRetries, cfg.SourceFeedTimeout)
		}
	})

	t.Run("configured", func(t *testing.T) {
		t.Setenv("SOURCE_FEED_BASE_URL", " https://feeds.example.com/v2 ")
		t.Setenv("SOURCE_FEED_TOKEN", " abc ")
		t.Setenv("SOURCE_FEED_MAX_RETRIES", "0")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.SourceFeedBaseURL != "https://feeds.example.com/v2" || cfg.SourceFeedToken != "abc" || cfg.SourceFeedMaxRetries != 0 {
			t.Fatalf("unexpected feed config: %+v", cfg)
		}
	})

	t.Run("relative url", func(t *testing.T) {
		t.Setenv("SOURCE_FEED_BASE_URL", "feeds.example.com")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for relative SOURCE_FEED_BASE_URL")
		}
	})

	t.Run("negative retries", func(t *testing.T) {
		t.Setenv("SOURCE_FEED_BASE_URL", "")
		t.Setenv("SOURCE_FEED_MAX_RETRIES", "-1")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for negative SOURCE_FEED_MAX_RETRIES")
		}
	})
}
