// Package httpapi wires the HTTP transport (Gin) to the intake services,
// middleware, and route handlers. It centralizes cross-cutting concerns such
// as tracing, correlation IDs, logging/redaction, panic recovery, metrics,
// compression, idempotency, rate limiting, CORS and security headers.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"gorm.io/gorm"

	_ "github.com/tbourn/go-intake-backend/docs"
	"github.com/tbourn/go-intake-backend/internal/assets"
	"github.com/tbourn/go-intake-backend/internal/config"
	"github.com/tbourn/go-intake-backend/internal/http/handlers"
	"github.com/tbourn/go-intake-backend/internal/http/middleware"
	"github.com/tbourn/go-intake-backend/internal/notify"
	"github.com/tbourn/go-intake-backend/internal/repo"
	"github.com/tbourn/go-intake-backend/internal/services"
)

// maxBodyBytes caps every request body. Form payloads are a few KiB.
const maxBodyBytes = 64 << 10

// RegisterRoutes attaches all middleware and HTTP endpoints to the given Gin
// engine and mounts the intake API under cfg.APIBasePath.
//
// Middleware order matters:
//  1. OpenTelemetry: trace everything
//  2. RequestID: generate/propagate correlation id
//  3. RedactingLogger: structured logs with PII scrubbing
//  4. Recovery: capture panics after logger
//  5. Body size limiter
//  6. Metrics
//  7. CORS (so preflights are answered before limiting) and security headers
//  8. Gzip (outside idempotency so stored bodies are uncompressed)
//  9. Idempotency replay (before rate limiting so replays are free)
//  10. Rate limiter per client IP
func RegisterRoutes(r *gin.Engine, db *gorm.DB, mailer notify.Mailer, links assets.Linker, cfg config.Config) {
	r.HandleMethodNotAllowed = true

	// 1) Trace all HTTP requests
	r.Use(otelgin.Middleware(cfg.OTEL.ServiceName))

	// 2) Correlate requests and logs
	r.Use(middleware.RequestID())

	// 3) Structured logging with redaction
	r.Use(middleware.RedactingLogger(middleware.RedactOptions{
		MaskHeaders: []string{"X-API-Key"},
	}))

	// 4) Panic recovery to JSON 500 (with request id)
	r.Use(middleware.Recovery())

	// 5) Global body size limit
	r.Use(limitBody(maxBodyBytes))

	// 6) Prometheus metrics and /metrics endpoint
	r.Use(middleware.Metrics())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 7) CORS posture and security headers
	r.Use(cors.New(corsConfig(cfg.CORS)))
	r.Use(middleware.SecurityHeaders(middleware.SecurityOptions{
		EnableHSTS:         cfg.Security.EnableHSTS,
		HSTSMaxAge:         cfg.Security.HSTSMaxAge,
		NoStoreSubmissions: true,
		EnablePolicy:       true,
		Expose:             []string{middleware.HeaderIdempotencyReplayed},
	}))

	// 8) Compression
	r.Use(gzip.Gzip(gzip.DefaultCompression))

	// Fallbacks
	r.NoRoute(func(c *gin.Context) {
		handlers.Fail(c, http.StatusNotFound, handlers.ErrCodeNotFound, "route not found")
	})
	r.NoMethod(func(c *gin.Context) {
		handlers.Fail(c, http.StatusMethodNotAllowed, handlers.ErrCodeMethodNotAllowed, "method not allowed")
	})

	// Liveness/health
	r.GET("/health", health(db))

	if cfg.SwaggerEnabled {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	// Dependency injection: services ← repo/db/notifier/linker
	h := newHandlers(db, mailer, links, cfg)
	h.OnOutcome = middleware.RecordSubmission

	api := groupWithPrefix(r, cfg.APIBasePath)

	// 9) Idempotency replay, 10) rate limiting: API routes only
	api.Use(middleware.IdempotencyValidator(
		middleware.IdempotencyOptions{
			MaxLen: 200,
			Save: func(ctx context.Context, scope, key string, status int, body []byte) error {
				_, err := repo.SaveIdempotency(ctx, db, scope, key, status, body, cfg.IdempotencyTTL)
				if errors.Is(err, repo.ErrDuplicate) {
					return nil // a concurrent duplicate already stored its response
				}
				return err
			},
		},
		func(ctx context.Context, scope, key string, now time.Time) (*middleware.StoredResponse, error) {
			rec, err := repo.GetIdempotency(ctx, db, scope, key, now)
			if errors.Is(err, repo.ErrNotFound) {
				return nil, middleware.ErrNoStoredResponse
			}
			if err != nil {
				return nil, err
			}
			return &middleware.StoredResponse{Status: rec.Status, Body: rec.Body}, nil
		},
	))
	rl := middleware.NewRateLimiter(cfg.RateRPS, cfg.RateBurst, middleware.KeyByClientIP())
	api.Use(rl.Handler())

	{
		api.POST("/contact", h.SubmitContact)

		api.POST("/bookings", h.BookCall)
		api.GET("/bookings/availability", h.Availability)
		api.GET("/bookings/dates", h.Dates)

		api.POST("/leads", h.CaptureLead)
	}
}

// newHandlers builds the intake services and binds them to handlers.
func newHandlers(db *gorm.DB, mailer notify.Mailer, links assets.Linker, cfg config.Config) *handlers.Handlers {
	mail := services.Mail{
		Notifier:    notify.New(mailer, cfg.Mail.From),
		IntakeEmail: cfg.Mail.IntakeEmail,
		Timeout:     cfg.UpstreamTimeout,
		OnResult: func(kind notify.Kind, sent bool) {
			middleware.RecordEmail(string(kind), sent)
		},
	}
	store := services.RepoStore{}
	avail := services.NewAvailabilityChecker(db, store, cfg.UpstreamTimeout)

	contact := &services.ContactService{
		DB:             db,
		Store:          store,
		Mail:           mail,
		PhoneMinDigits: cfg.PhoneMinDigits,
		Timeout:        cfg.UpstreamTimeout,
	}
	booking := &services.BookingService{
		DB:             db,
		Store:          store,
		Availability:   avail,
		Mail:           mail,
		PhoneMinDigits: cfg.PhoneMinDigits,
		SchedulingURL:  cfg.SchedulingURL,
		Timeout:        cfg.UpstreamTimeout,
		Now:            time.Now,
	}
	leads := &services.LeadService{
		DB:      db,
		Store:   store,
		Links:   links,
		Mail:    mail,
		Timeout: cfg.UpstreamTimeout,
	}

	return handlers.New(contact, booking, avail, leads)
}

// corsConfig allows any origin unless an allowlist is configured.
func corsConfig(c config.CORSConfig) cors.Config {
	cc := cors.Config{
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.HeaderIdempotencyKey},
		ExposeHeaders:    []string{"X-Request-ID", "Content-Length", middleware.HeaderIdempotencyReplayed},
		AllowCredentials: false,
		MaxAge:           c.MaxAge,
	}
	if len(c.AllowedOrigins) == 0 {
		cc.AllowAllOrigins = true
	} else {
		cc.AllowOrigins = c.AllowedOrigins
	}
	return cc
}

// health pings the database.
func health(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		status, code := "ok", http.StatusOK
		if sqlDB, err := db.DB(); err != nil || sqlDB.PingContext(c.Request.Context()) != nil {
			status, code = "degraded", http.StatusServiceUnavailable
		}
		c.JSON(code, gin.H{"status": status})
	}
}

// limitBody returns a Gin middleware that caps the request body size for all
// endpoints to maxBytes using http.MaxBytesReader. Requests exceeding the cap
// will cause downstream body reads to error.
func limitBody(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

// groupWithPrefix mounts a group at prefix, treating "/" (or empty) as root.
func groupWithPrefix(r *gin.Engine, prefix string) *gin.RouterGroup {
	if prefix == "" || prefix == "/" {
		return r.Group("")
	}
	return r.Group(prefix)
}
