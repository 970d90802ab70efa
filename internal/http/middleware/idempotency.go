// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file implements idempotent form submissions. A client that sends an
// Idempotency-Key header with a POST gets the stored response replayed when it
// repeats the same submission inside the TTL window; the flow, its storage
// writes and its emails run only once. Keys are scoped by route so the same
// key may be used on different forms.
package middleware

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"regexp"
	"time"

	"github.com/gin-gonic/gin"
)

// HeaderIdempotencyKey is the request header carrying the client key.
const HeaderIdempotencyKey = "Idempotency-Key"

// HeaderIdempotencyReplayed marks a response served from the store.
const HeaderIdempotencyReplayed = "Idempotency-Replayed"

const (
	ctxKeyIdemKey    = "idem.key"
	ctxKeyIdemReplay = "idem.replay" // bool: true when a stored response was served
	ctxKeyRateBypass = "rate.bypass" // bool: true to skip rate limiting
)

// GetIdempotencyKey returns the validated key stored by IdempotencyValidator.
func GetIdempotencyKey(c *gin.Context) (string, bool) {
	v, ok := c.Get(ctxKeyIdemKey)
	if !ok {
		return "", false
	}
	s, _ := v.(string)
	return s, s != ""
}

// IsReplay reports whether the response was served from the store.
func IsReplay(c *gin.Context) bool {
	v, ok := c.Get(ctxKeyIdemReplay)
	if !ok {
		return false
	}
	b, _ := v.(bool)
	return b
}

// StoredResponse is a previously completed response.
type StoredResponse struct {
	Status int
	Body   []byte
}

// ErrNoStoredResponse is returned by an IdempotencyLookup that has nothing
// to replay.
var ErrNoStoredResponse = errors.New("no stored response")

// IdempotencyLookup returns the still-valid response stored for (scope, key),
// or ErrNoStoredResponse. Other errors are treated as a miss.
type IdempotencyLookup func(ctx context.Context, scope, key string, now time.Time) (*StoredResponse, error)

// IdempotencySave stores a completed 2xx response for (scope, key).
type IdempotencySave func(ctx context.Context, scope, key string, status int, body []byte) error

// IdempotencyOptions configures IdempotencyValidator.
type IdempotencyOptions struct {
	// MaxLen caps the accepted key length. Values <= 0 default to 200.
	MaxLen int
	// Pattern restricts allowed characters. Defaults to ^[A-Za-z0-9._~\-:]+$
	Pattern *regexp.Regexp
	// Save persists successful responses; nil disables recording.
	Save IdempotencySave
}

// IdempotencyValidator validates the Idempotency-Key header of POST requests.
//
// Behavior:
//   - Other methods and requests without the header pass through untouched.
//   - A malformed key is answered with 400 BAD_IDEMPOTENCY_KEY.
//   - A stored response is replayed verbatim with Idempotency-Replayed: true
//     and the chain is aborted; the rate-bypass flag is set for limiters
//     mounted earlier in the chain.
//   - Otherwise the response is captured and, when 2xx, saved via opts.Save.
func IdempotencyValidator(opts IdempotencyOptions, lookup IdempotencyLookup) gin.HandlerFunc {
	maxLen := opts.MaxLen
	if maxLen <= 0 {
		maxLen = 200
	}
	pat := opts.Pattern
	if pat == nil {
		pat = regexp.MustCompile(`^[A-Za-z0-9._~\-:]+$`)
	}

	return func(c *gin.Context) {
		if c.Request.Method != http.MethodPost {
			c.Next()
			return
		}
		key := c.GetHeader(HeaderIdempotencyKey)
		if key == "" {
			c.Next()
			return
		}
		if len(key) > maxLen || !pat.MatchString(key) {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"error": gin.H{
					"code":    "BAD_IDEMPOTENCY_KEY",
					"message": "invalid Idempotency-Key",
				},
			})
			return
		}

		c.Set(ctxKeyIdemKey, key)
		scope := c.FullPath()
		if scope == "" {
			scope = c.Request.URL.Path
		}

		if lookup != nil {
			stored, err := lookup(c.Request.Context(), scope, key, time.Now().UTC())
			if err == nil && stored != nil {
				c.Set(ctxKeyIdemReplay, true)
				c.Set(ctxKeyRateBypass, true)
				c.Header(HeaderIdempotencyReplayed, "true")
				c.Data(stored.Status, "application/json; charset=utf-8", stored.Body)
				c.Abort()
				return
			}
			if err != nil && !errors.Is(err, ErrNoStoredResponse) {
				LoggerFrom(c).Warn().Err(err).Str("scope", scope).Msg("idempotency lookup failed")
			}
		}

		if opts.Save == nil {
			c.Next()
			return
		}

		cw := &captureWriter{ResponseWriter: c.Writer}
		c.Writer = cw
		c.Next()

		status := cw.Status()
		if status < 200 || status >= 300 {
			return
		}
		if err := opts.Save(c.Request.Context(), scope, key, status, cw.buf.Bytes()); err != nil {
			LoggerFrom(c).Warn().Err(err).Str("scope", scope).Msg("idempotency save failed")
		}
	}
}

// captureWriter tees the response body so it can be stored for replay.
type captureWriter struct {
	gin.ResponseWriter
	buf bytes.Buffer
}

func (w *captureWriter) Write(b []byte) (int, error) {
	w.buf.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *captureWriter) WriteString(s string) (int, error) {
	w.buf.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}
