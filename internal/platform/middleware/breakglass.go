package middleware

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/clinic/reception/internal/platform/auth"
)

// breakGlassContextKey is the unexported type used for break-glass context
// values to avoid collisions with other packages.
type breakGlassContextKey string

const (
	breakGlassKey       breakGlassContextKey = "break_glass"
	breakGlassReasonKey breakGlassContextKey = "break_glass_reason"
)

// breakGlassRateLimit tracks per-actor request counts within a rolling window.
type breakGlassRateLimit struct {
	mu      sync.Mutex
	entries map[string][]time.Time // actorID -> list of request timestamps
}

func newBreakGlassRateLimit() *breakGlassRateLimit {
	return &breakGlassRateLimit{
		entries: make(map[string][]time.Time),
	}
}

// allow checks whether the actor is under the break-glass rate limit.
// It keeps only timestamps within the last hour and enforces a maximum of
// maxPerHour requests. If the request is allowed, the current timestamp is
// recorded. The caller must supply the current time so that tests can inject
// a deterministic clock.
func (rl *breakGlassRateLimit) allow(actorID string, now time.Time, maxPerHour int) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cutoff := now.Add(-1 * time.Hour)

	// Prune expired entries for this actor.
	existing := rl.entries[actorID]
	pruned := existing[:0]
	for _, ts := range existing {
		if ts.After(cutoff) {
			pruned = append(pruned, ts)
		}
	}

	if len(pruned) >= maxPerHour {
		rl.entries[actorID] = pruned
		return false
	}

	rl.entries[actorID] = append(pruned, now)
	return true
}

// cleanup removes all entries older than one hour. Called periodically from
// a background goroutine to prevent unbounded memory growth.
func (rl *breakGlassRateLimit) cleanup(now time.Time) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cutoff := now.Add(-1 * time.Hour)
	for actorID, timestamps := range rl.entries {
		pruned := timestamps[:0]
		for _, ts := range timestamps {
			if ts.After(cutoff) {
				pruned = append(pruned, ts)
			}
		}
		if len(pruned) == 0 {
			delete(rl.entries, actorID)
		} else {
			rl.entries[actorID] = pruned
		}
	}
}

const (
	breakGlassMaxPerHour    = 10
	breakGlassCleanupPeriod = 5 * time.Minute
)

// isClinicalPath returns true if the request path is under /api/v1/.
func isClinicalPath(path string) bool {
	return strings.HasPrefix(path, "/api/v1/")
}

// BreakGlass returns Echo middleware that implements the emergency override
// for patient data access. When a request includes the X-Break-Glass header
// with a non-empty reason string, the middleware:
//
//  1. Verifies the actor is authenticated.
//  2. Enforces a per-actor rate limit (10 requests per hour).
//  3. Injects "admin" into the actor's roles so downstream role checks pass.
//  4. Stores break_glass and break_glass_reason in the request context for
//     downstream handlers and audit logging.
//  5. Emits a WARN-level structured log entry.
//
// The middleware only activates on /api/v1/* paths. It must be placed AFTER
// authentication middleware and BEFORE role-checking route groups.
func BreakGlass(logger zerolog.Logger) echo.MiddlewareFunc {
	rl := newBreakGlassRateLimit()

	// Background cleanup goroutine to prevent unbounded memory growth.
	go func() {
		ticker := time.NewTicker(breakGlassCleanupPeriod)
		defer ticker.Stop()
		for range ticker.C {
			rl.cleanup(time.Now())
		}
	}()

	return breakGlassMiddleware(logger, rl, time.Now)
}

// breakGlassMiddleware is the internal constructor that accepts a clock
// function for testing determinism and a pre-built rate limiter.
func breakGlassMiddleware(logger zerolog.Logger, rl *breakGlassRateLimit, nowFn func() time.Time) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			path := req.URL.Path

			if !isClinicalPath(path) {
				return next(c)
			}

			reason := strings.TrimSpace(req.Header.Get("X-Break-Glass"))
			if reason == "" {
				return next(c)
			}

			// The actor must be authenticated. The JWT middleware runs before
			// this middleware and sets the actor id in the request context.
			ctx := req.Context()
			actorID := auth.ActorIDFromContext(ctx)
			if actorID == uuid.Nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "break-glass requires authentication")
			}

			// Rate limiting.
			now := nowFn()
			if !rl.allow(actorID.String(), now, breakGlassMaxPerHour) {
				return echo.NewHTTPError(http.StatusTooManyRequests,
					"break-glass rate limit exceeded: maximum 10 requests per user per hour")
			}

			// Retrieve current roles and append "admin" if not already present.
			roles := auth.RolesFromContext(ctx)
			hasAdmin := false
			for _, r := range roles {
				if r == "admin" {
					hasAdmin = true
					break
				}
			}
			if !hasAdmin {
				roles = append(roles, "admin")
			}

			// Update the request context with break-glass flags and elevated roles.
			ctx = context.WithValue(ctx, breakGlassKey, true)
			ctx = context.WithValue(ctx, breakGlassReasonKey, reason)
			ctx = context.WithValue(ctx, auth.UserRolesKey, roles)
			c.SetRequest(req.WithContext(ctx))

			// Structured WARN log for the audit trail.
			logger.Warn().
				Str("type", "break_glass").
				Str("actor_id", actorID.String()).
				Strs("original_roles", auth.RolesFromContext(req.Context())).
				Str("break_glass_reason", reason).
				Str("path", path).
				Str("method", req.Method).
				Str("remote_ip", c.RealIP()).
				Time("timestamp", now).
				Msg("break_glass_override")

			return next(c)
		}
	}
}

// IsBreakGlass returns true if the request is a break-glass override.
func IsBreakGlass(ctx context.Context) bool {
	v, _ := ctx.Value(breakGlassKey).(bool)
	return v
}

// BreakGlassReason returns the reason string provided in the X-Break-Glass
// header, or an empty string if break-glass was not invoked.
func BreakGlassReason(ctx context.Context) string {
	v, _ := ctx.Value(breakGlassReasonKey).(string)
	return v
}
