// Package config provides application configuration loaded from environment
// variables with defaults and validation. It centralizes settings for the HTTP
// server, logging, storage, rate limiting, outbound email, guide downloads and
// observability.
//
// Required secrets are checked once at startup; a missing value yields an error
// wrapping ErrConfigurationMissing so the process never discovers the gap
// mid-request.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// ErrConfigurationMissing is wrapped by Load when a required setting is absent.
var ErrConfigurationMissing = errors.New("configuration missing")

// Mail provider identifiers accepted by MAIL_PROVIDER.
const (
	MailProviderResend = "resend"
	MailProviderSMTP   = "smtp"
	MailProviderLog    = "log"
)

// Database drivers accepted by DB_DRIVER.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// CORSConfig defines Cross-Origin Resource Sharing settings.
type CORSConfig struct {
	AllowedOrigins []string
	MaxAge         time.Duration
}

// SecurityConfig defines security-related settings such as HSTS.
type SecurityConfig struct {
	EnableHSTS bool
	HSTSMaxAge time.Duration
}

// OTELConfig defines OpenTelemetry observability settings.
type OTELConfig struct {
	Enabled     bool    // OTEL_ENABLED
	Endpoint    string  // OTEL_EXPORTER_OTLP_ENDPOINT (e.g. "otel:4317")
	Insecure    bool    // OTEL_EXPORTER_OTLP_INSECURE (true if no TLS)
	ServiceName string  // OTEL_SERVICE_NAME
	SampleRatio float64 // OTEL_TRACES_SAMPLER_ARG in [0..1]
}

// DatabaseConfig selects the storage backend.
type DatabaseConfig struct {
	Driver string // sqlite|postgres
	Path   string // SQLite file path
	URL    string // Postgres DSN
}

// MailConfig holds the outbound email settings.
type MailConfig struct {
	Provider     string // resend|smtp|log
	From         string // sender address for every message
	IntakeEmail  string // business inbox receiving internal notifications
	ResendAPIKey string
	ResendAPIURL string
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
}

// GuideConfig controls how framework-guide download links are produced.
type GuideConfig struct {
	Bucket  string        // S3 bucket; presigned links when set
	Prefix  string        // key prefix inside the bucket
	BaseURL string        // static fallback base URL
	LinkTTL time.Duration // presigned link validity
	Region  string        // AWS_REGION
}

// Config holds all configuration values for the application.
type Config struct {
	// Server
	Port              string
	ReadTimeout       time.Duration
	ReadHeaderTimeout time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
	MaxHeaderBytes    int
	GinMode           string // debug|release|test

	// Logging / Docs
	LogLevel       string
	LogPretty      bool
	SwaggerEnabled bool
	APIBasePath    string

	// Storage
	DB DatabaseConfig

	// Intake
	UpstreamTimeout time.Duration // bound on each storage / email call
	PhoneMinDigits  int
	SchedulingURL   string // link restated in booking confirmations

	// Rate limiting
	RateRPS   float64
	RateBurst int

	// Web protection
	CORS     CORSConfig
	Security SecurityConfig

	// Idempotency
	IdempotencyTTL time.Duration

	Mail  MailConfig
	Guide GuideConfig

	// Observability
	OTEL OTELConfig
}

// MustLoad loads the configuration and panics if validation fails.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

// Load reads configuration from environment variables,
// applies defaults, normalizes values, and validates the result.
func Load() (Config, error) {
	cfg := Config{
		Port:              getenv("PORT", "8080"),
		ReadTimeout:       getdur("READ_TIMEOUT", 15*time.Second),
		ReadHeaderTimeout: getdur("READ_HEADER_TIMEOUT", 10*time.Second),
		WriteTimeout:      getdur("WRITE_TIMEOUT", 30*time.Second),
		IdleTimeout:       getdur("IDLE_TIMEOUT", 60*time.Second),
		MaxHeaderBytes:    getint("MAX_HEADER_BYTES", 1<<20),
		GinMode:           strings.ToLower(getenv("GIN_MODE", "release")),

		LogLevel:       strings.ToLower(getenv("LOG_LEVEL", "info")),
		LogPretty:      getbool("LOG_PRETTY", false),
		SwaggerEnabled: getbool("SWAGGER_ENABLED", false),
		APIBasePath:    normalizeBasePath(getenv("API_BASE_PATH", "/api")),

		DB: DatabaseConfig{
			Driver: strings.ToLower(getenv("DB_DRIVER", DriverSQLite)),
			Path:   getenv("DB_PATH", "intake.db"),
			URL:    getenv("DATABASE_URL", ""),
		},

		UpstreamTimeout: getdur("UPSTREAM_TIMEOUT", 10*time.Second),
		PhoneMinDigits:  getint("PHONE_MIN_DIGITS", 10),
		SchedulingURL:   getenv("SCHEDULING_URL", ""),

		RateRPS:   getfloat("RATE_RPS", 1.0),
		RateBurst: getint("RATE_BURST", 5),

		CORS: CORSConfig{
			AllowedOrigins: splitCSV(getenv("CORS_ALLOWED_ORIGINS", "")),
			MaxAge:         getdur("CORS_MAX_AGE", 24*time.Hour),
		},
		Security: SecurityConfig{
			EnableHSTS: getbool("ENABLE_HSTS", false),
			HSTSMaxAge: getdur("HSTS_MAX_AGE", 180*24*time.Hour),
		},

		IdempotencyTTL: getdur("IDEMPOTENCY_TTL", 24*time.Hour),

		Mail: MailConfig{
			Provider:     strings.ToLower(getenv("MAIL_PROVIDER", MailProviderResend)),
			From:         getenv("MAIL_FROM", ""),
			IntakeEmail:  getenv("INTAKE_EMAIL", ""),
			ResendAPIKey: getenv("RESEND_API_KEY", ""),
			ResendAPIURL: getenv("RESEND_API_URL", "https://api.resend.com/emails"),
			SMTPHost:     getenv("SMTP_HOST", ""),
			SMTPPort:     getint("SMTP_PORT", 587),
			SMTPUsername: getenv("SMTP_USERNAME", ""),
			SMTPPassword: getenv("SMTP_PASSWORD", ""),
		},
		Guide: GuideConfig{
			Bucket:  getenv("GUIDE_BUCKET", ""),
			Prefix:  strings.Trim(getenv("GUIDE_PREFIX", "guides"), "/"),
			BaseURL: strings.TrimRight(getenv("GUIDE_BASE_URL", ""), "/"),
			LinkTTL: getdur("GUIDE_LINK_TTL", 15*time.Minute),
			Region:  getenv("AWS_REGION", "us-east-1"),
		},

		OTEL: OTELConfig{
			Enabled:     getbool("OTEL_ENABLED", false),
			Endpoint:    getenv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
			Insecure:    getbool("OTEL_EXPORTER_OTLP_INSECURE", true),
			ServiceName: getenv("OTEL_SERVICE_NAME", "go-intake-backend"),
			SampleRatio: getfloat("OTEL_TRACES_SAMPLER_ARG", 1.0),
		},
	}

	// --- normalization ---
	if cfg.LogLevel == "warning" {
		cfg.LogLevel = "warn"
	}
	switch cfg.GinMode {
	case "debug", "release", "test":
	default:
		cfg.GinMode = "release"
	}

	// --- required secrets ---
	if missing := cfg.missing(); len(missing) > 0 {
		return cfg, fmt.Errorf("%w: %s", ErrConfigurationMissing, strings.Join(missing, ", "))
	}

	// --- validation ---
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error", "fatal", "panic":
	default:
		return cfg, errors.New("LOG_LEVEL must be one of: debug, info, warn, error, fatal, panic")
	}
	if strings.TrimSpace(cfg.Port) == "" {
		return cfg, errors.New("PORT must not be empty")
	}
	if cfg.ReadTimeout <= 0 || cfg.ReadHeaderTimeout <= 0 || cfg.WriteTimeout <= 0 || cfg.IdleTimeout <= 0 {
		return cfg, errors.New("timeouts must be positive durations")
	}
	if cfg.MaxHeaderBytes <= 0 {
		return cfg, errors.New("MAX_HEADER_BYTES must be > 0")
	}
	switch cfg.DB.Driver {
	case DriverSQLite:
		if strings.TrimSpace(cfg.DB.Path) == "" {
			return cfg, errors.New("DB_PATH must not be empty")
		}
	case DriverPostgres:
	default:
		return cfg, errors.New("DB_DRIVER must be one of: sqlite, postgres")
	}
	switch cfg.Mail.Provider {
	case MailProviderResend, MailProviderSMTP, MailProviderLog:
	default:
		return cfg, errors.New("MAIL_PROVIDER must be one of: resend, smtp, log")
	}
	if cfg.Mail.SMTPPort <= 0 || cfg.Mail.SMTPPort > 65535 {
		return cfg, errors.New("SMTP_PORT must be a valid port")
	}
	if cfg.UpstreamTimeout <= 0 {
		return cfg, errors.New("UPSTREAM_TIMEOUT must be > 0")
	}
	if cfg.PhoneMinDigits < 1 {
		return cfg, errors.New("PHONE_MIN_DIGITS must be >= 1")
	}
	if cfg.RateRPS < 0 {
		return cfg, errors.New("RATE_RPS must be >= 0")
	}
	if cfg.RateBurst < 1 {
		return cfg, errors.New("RATE_BURST must be >= 1")
	}
	if cfg.CORS.MaxAge < 0 {
		return cfg, errors.New("CORS_MAX_AGE must be >= 0")
	}
	if cfg.Security.HSTSMaxAge < 0 {
		return cfg, errors.New("HSTS_MAX_AGE must be >= 0")
	}
	if cfg.IdempotencyTTL <= 0 {
		return cfg, errors.New("IDEMPOTENCY_TTL must be > 0")
	}
	if cfg.Guide.LinkTTL <= 0 {
		return cfg, errors.New("GUIDE_LINK_TTL must be > 0")
	}
	if cfg.OTEL.SampleRatio < 0 || cfg.OTEL.SampleRatio > 1 {
		return cfg, errors.New("OTEL_TRACES_SAMPLER_ARG must be in [0,1]")
	}
	if err := cfg.validateFormats(); err != nil {
		return cfg, err
	}

	return cfg, nil
}

// missing lists the environment variables that must be set for the selected
// providers but are empty.
func (c Config) missing() []string {
	var out []string
	if strings.TrimSpace(c.Mail.From) == "" {
		out = append(out, "MAIL_FROM")
	}
	if strings.TrimSpace(c.Mail.IntakeEmail) == "" {
		out = append(out, "INTAKE_EMAIL")
	}
	switch c.Mail.Provider {
	case MailProviderResend:
		if strings.TrimSpace(c.Mail.ResendAPIKey) == "" {
			out = append(out, "RESEND_API_KEY")
		}
	case MailProviderSMTP:
		if strings.TrimSpace(c.Mail.SMTPHost) == "" {
			out = append(out, "SMTP_HOST")
		}
	}
	if c.DB.Driver == DriverPostgres && strings.TrimSpace(c.DB.URL) == "" {
		out = append(out, "DATABASE_URL")
	}
	return out
}

// formatRules are checked with validator tags; empty optional values are skipped.
var formatRules = []struct {
	name string
	tag  string
	get  func(Config) string
}{
	{"MAIL_FROM", "required", func(c Config) string { return c.Mail.From }},
	{"INTAKE_EMAIL", "required,email", func(c Config) string { return c.Mail.IntakeEmail }},
	{"RESEND_API_URL", "omitempty,url", func(c Config) string { return c.Mail.ResendAPIURL }},
	{"SCHEDULING_URL", "omitempty,url", func(c Config) string { return c.SchedulingURL }},
	{"GUIDE_BASE_URL", "omitempty,url", func(c Config) string { return c.Guide.BaseURL }},
}

func (c Config) validateFormats() error {
	v := validator.New()
	for _, r := range formatRules {
		if err := v.Var(r.get(c), r.tag); err != nil {
			return fmt.Errorf("%s is not valid (%s)", r.name, r.tag)
		}
	}
	return nil
}

// ---- helpers ----

func getenv(k, def string) string {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		return v
	}
	return def
}

func getfloat(k string, def float64) float64 {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func getint(k string, def int) int {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func getbool(k string, def bool) bool {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "1", "true", "yes", "y", "on":
			return true
		case "0", "false", "no", "n", "off":
			return false
		}
	}
	return def
}

func getdur(k string, def time.Duration) time.Duration {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func splitCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		t := strings.TrimSpace(p)
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}

// normalizeBasePath ensures leading '/' and strips trailing '/' (except root).
func normalizeBasePath(p string) string {
	p = strings.TrimSpace(p)
	if p == "" {
		return "/"
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	if len(p) > 1 && strings.HasSuffix(p, "/") {
		p = strings.TrimRight(p, "/")
	}
	return p
}
