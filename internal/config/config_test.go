package config

import (
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"
)

// setRequired populates the secrets every valid configuration needs.
func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("MAIL_PROVIDER", "resend")
	t.Setenv("MAIL_FROM", "Northwind Advisory <hello@northwind.example>")
	t.Setenv("INTAKE_EMAIL", "intake@northwind.example")
	t.Setenv("RESEND_API_KEY", "re_test_key")
}

// --- MustLoad ---

func TestMustLoad_PanicsOnInvalidConfig(t *testing.T) {
	setRequired(t)
	t.Setenv("LOG_LEVEL", "verbose") // invalid -> Load() error
	defer func() {
		if r := recover(); r == nil {
			t.Fatalf("MustLoad should panic on invalid config")
		}
	}()
	_ = MustLoad()
}

// --- Load success + normalization + parsing ---

func TestLoad_Success_DefaultsAndOverrides(t *testing.T) {
	setRequired(t)

	t.Setenv("PORT", "8088")
	t.Setenv("READ_TIMEOUT", "2s")
	t.Setenv("READ_HEADER_TIMEOUT", "1s")
	t.Setenv("WRITE_TIMEOUT", "3s")
	t.Setenv("IDLE_TIMEOUT", "4s")
	t.Setenv("MAX_HEADER_BYTES", "8192")
	t.Setenv("GIN_MODE", "weird") // will normalize to "release"

	t.Setenv("LOG_LEVEL", "warning") // will normalize to "warn"
	t.Setenv("LOG_PRETTY", "yes")
	t.Setenv("SWAGGER_ENABLED", "on")
	t.Setenv("API_BASE_PATH", "api/v1/")

	t.Setenv("DB_DRIVER", "SQLite")
	t.Setenv("DB_PATH", "db.sqlite")

	t.Setenv("UPSTREAM_TIMEOUT", "3s")
	t.Setenv("PHONE_MIN_DIGITS", "7")
	t.Setenv("SCHEDULING_URL", "https://cal.example.com/northwind/discovery")

	t.Setenv("RATE_RPS", "x")      // -> default 1.0
	t.Setenv("RATE_BURST", "nope") // -> default 5

	t.Setenv("CORS_ALLOWED_ORIGINS", " https://a.com , , http://b ")
	t.Setenv("ENABLE_HSTS", "TRUE")
	t.Setenv("HSTS_MAX_AGE", "24h")

	t.Setenv("IDEMPOTENCY_TTL", "48h")

	t.Setenv("GUIDE_BUCKET", "northwind-guides")
	t.Setenv("GUIDE_PREFIX", "/frameworks/")
	t.Setenv("GUIDE_BASE_URL", "https://cdn.example.com/guides/")

	t.Setenv("OTEL_ENABLED", "1")
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "otel:4317")
	t.Setenv("OTEL_EXPORTER_OTLP_INSECURE", "0")
	t.Setenv("OTEL_SERVICE_NAME", "svc")
	t.Setenv("OTEL_TRACES_SAMPLER_ARG", "0.75")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Port != "8088" ||
		cfg.ReadTimeout != 2*time.Second ||
		cfg.ReadHeaderTimeout != 1*time.Second ||
		cfg.WriteTimeout != 3*time.Second ||
		cfg.IdleTimeout != 4*time.Second ||
		cfg.MaxHeaderBytes != 8192 ||
		cfg.GinMode != "release" {
		t.Fatalf("server fields unexpected: %+v", cfg)
	}

	if cfg.LogLevel != "warn" || !cfg.LogPretty || !cfg.SwaggerEnabled || cfg.APIBasePath != "/api/v1" {
		t.Fatalf("logging/docs unexpected: %+v", cfg)
	}

	if cfg.DB.Driver != DriverSQLite || cfg.DB.Path != "db.sqlite" {
		t.Fatalf("db unexpected: %+v", cfg.DB)
	}

	if cfg.UpstreamTimeout != 3*time.Second || cfg.PhoneMinDigits != 7 ||
		cfg.SchedulingURL != "https://cal.example.com/northwind/discovery" {
		t.Fatalf("intake fields unexpected: %+v", cfg)
	}

	if cfg.RateRPS != 1.0 || cfg.RateBurst != 5 {
		t.Fatalf("rate limiting unexpected: %+v", cfg)
	}

	if !reflect.DeepEqual(cfg.CORS.AllowedOrigins, []string{"https://a.com", "http://b"}) {
		t.Fatalf("cors origins unexpected: %#v", cfg.CORS.AllowedOrigins)
	}
	if cfg.CORS.MaxAge != 24*time.Hour {
		t.Fatalf("cors max age should default to 24h, got %v", cfg.CORS.MaxAge)
	}
	if !cfg.Security.EnableHSTS || cfg.Security.HSTSMaxAge != 24*time.Hour {
		t.Fatalf("security unexpected: %+v", cfg.Security)
	}

	if cfg.IdempotencyTTL != 48*time.Hour {
		t.Fatalf("idempotency ttl unexpected: %v", cfg.IdempotencyTTL)
	}

	if cfg.Guide.Bucket != "northwind-guides" || cfg.Guide.Prefix != "frameworks" ||
		cfg.Guide.BaseURL != "https://cdn.example.com/guides" || cfg.Guide.LinkTTL != 15*time.Minute {
		t.Fatalf("guide unexpected: %+v", cfg.Guide)
	}

	if cfg.Mail.Provider != MailProviderResend || cfg.Mail.ResendAPIURL != "https://api.resend.com/emails" || cfg.Mail.SMTPPort != 587 {
		t.Fatalf("mail unexpected: %+v", cfg.Mail)
	}

	if !cfg.OTEL.Enabled || cfg.OTEL.Endpoint != "otel:4317" || cfg.OTEL.Insecure || cfg.OTEL.ServiceName != "svc" || cfg.OTEL.SampleRatio != 0.75 {
		t.Fatalf("otel unexpected: %+v", cfg.OTEL)
	}
}

// --- required settings ---

func TestLoad_ConfigurationMissing(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantVar string
	}{
		{"no MAIL_FROM", map[string]string{"MAIL_FROM": ""}, "MAIL_FROM"},
		{"no INTAKE_EMAIL", map[string]string{"INTAKE_EMAIL": ""}, "INTAKE_EMAIL"},
		{"resend without key", map[string]string{"RESEND_API_KEY": ""}, "RESEND_API_KEY"},
		{"smtp without host", map[string]string{"MAIL_PROVIDER": "smtp", "SMTP_HOST": ""}, "SMTP_HOST"},
		{"postgres without url", map[string]string{"DB_DRIVER": "postgres", "DATABASE_URL": ""}, "DATABASE_URL"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			setRequired(t)
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			if !errors.Is(err, ErrConfigurationMissing) {
				t.Fatalf("expected ErrConfigurationMissing, got %v", err)
			}
			if !strings.Contains(err.Error(), tc.wantVar) {
				t.Fatalf("error %q should name %s", err.Error(), tc.wantVar)
			}
		})
	}
}

func TestLoad_LogProviderNeedsNoSecrets(t *testing.T) {
	setRequired(t)
	t.Setenv("MAIL_PROVIDER", "log")
	t.Setenv("RESEND_API_KEY", "")
	if _, err := Load(); err != nil {
		t.Fatalf("log provider should not require provider secrets: %v", err)
	}
}

// --- Load validations (each case triggers exactly one validation error) ---

func TestLoad_ValidationErrors(t *testing.T) {
	cases := []struct {
		name, key, val, want string
	}{
		{"invalid LOG_LEVEL", "LOG_LEVEL", "chatty", "LOG_LEVEL"},
		{"empty PORT", "PORT", "   ", "PORT"},
		{"non-positive timeout", "READ_TIMEOUT", "0s", "timeouts"},
		{"MAX_HEADER_BYTES <= 0", "MAX_HEADER_BYTES", "0", "MAX_HEADER_BYTES"},
		{"unknown DB_DRIVER", "DB_DRIVER", "mysql", "DB_DRIVER"},
		{"unknown MAIL_PROVIDER", "MAIL_PROVIDER", "pigeon", "MAIL_PROVIDER"},
		{"bad SMTP_PORT", "SMTP_PORT", "70000", "SMTP_PORT"},
		{"zero UPSTREAM_TIMEOUT", "UPSTREAM_TIMEOUT", "0s", "UPSTREAM_TIMEOUT"},
		{"zero PHONE_MIN_DIGITS", "PHONE_MIN_DIGITS", "0", "PHONE_MIN_DIGITS"},
		{"negative RATE_RPS", "RATE_RPS", "-1", "RATE_RPS"},
		{"zero RATE_BURST", "RATE_BURST", "0", "RATE_BURST"},
		{"negative HSTS_MAX_AGE", "HSTS_MAX_AGE", "-1s", "HSTS_MAX_AGE"},
		{"zero IDEMPOTENCY_TTL", "IDEMPOTENCY_TTL", "0s", "IDEMPOTENCY_TTL"},
		{"zero GUIDE_LINK_TTL", "GUIDE_LINK_TTL", "0s", "GUIDE_LINK_TTL"},
		{"sample ratio out of range", "OTEL_TRACES_SAMPLER_ARG", "1.5", "OTEL_TRACES_SAMPLER_ARG"},
		{"intake email malformed", "INTAKE_EMAIL", "not-an-email", "INTAKE_EMAIL"},
		{"scheduling url malformed", "SCHEDULING_URL", "cal example", "SCHEDULING_URL"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			setRequired(t)
			t.Setenv(tc.key, tc.val)
			_, err := Load()
			if err == nil {
				t.Fatalf("expected error for %s=%q", tc.key, tc.val)
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("error %q should mention %q", err.Error(), tc.want)
			}
		})
	}
}

// --- helpers ---

func TestHelpers(t *testing.T) {
	t.Run("getbool accepts common spellings", func(t *testing.T) {
		for _, v := range []string{"1", "true", "YES", "y", "On"} {
			t.Setenv("X_BOOL", v)
			if !getbool("X_BOOL", false) {
				t.Fatalf("getbool(%q) should be true", v)
			}
		}
		t.Setenv("X_BOOL", "maybe")
		if !getbool("X_BOOL", true) {
			t.Fatalf("unrecognized value should fall back to default")
		}
	})

	t.Run("getdur falls back on parse error", func(t *testing.T) {
		t.Setenv("X_DUR", "soon")
		if got := getdur("X_DUR", time.Minute); got != time.Minute {
			t.Fatalf("getdur fallback = %v", got)
		}
	})

	t.Run("normalizeBasePath", func(t *testing.T) {
		cases := map[string]string{
			"":        "/",
			"  ":      "/",
			"api":     "/api",
			"/api/":   "/api",
			"/api//":  "/api",
			"/":       "/",
			"/a/b/c/": "/a/b/c",
		}
		for in, want := range cases {
			if got := normalizeBasePath(in); got != want {
				t.Fatalf("normalizeBasePath(%q) = %q; want %q", in, got, want)
			}
		}
	})

	t.Run("splitCSV", func(t *testing.T) {
		if splitCSV("") != nil {
			t.Fatalf("empty input should give nil")
		}
		if got := splitCSV("a, ,b"); !reflect.DeepEqual(got, []string{"a", "b"}) {
			t.Fatalf("splitCSV = %#v", got)
		}
	})
}
