package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/hms/hms/internal/platform/auth"
)

// SecurityEntry captures a rejected request: who tried to do what, from
// where, and why it was refused. Only authentication and authorization
// failures are recorded; successful stage transitions have their own audit
// trail in the database.
type SecurityEntry struct {
	UserID     string
	UserRoles  []string
	Resource   string
	Method     string
	Path       string
	IPAddress  string
	UserAgent  string
	RequestID  string
	StatusCode int
	Timestamp  time.Time
}

// SecurityRecorder persists security entries. The middleware falls back to
// structured logging when no recorder is provided; tests supply a mock.
type SecurityRecorder interface {
	RecordRejection(entry SecurityEntry) error
}

// SecurityRecorderFunc is a function adapter for SecurityRecorder.
type SecurityRecorderFunc func(entry SecurityEntry) error

func (f SecurityRecorderFunc) RecordRejection(entry SecurityEntry) error {
	return f(entry)
}

// SecurityAudit returns middleware that logs every request under /api/v1/
// that is rejected with 401 or 403. Rejections never reach the database
// audit trail, so this log is the only record of refused attempts.
func SecurityAudit(logger zerolog.Logger, recorders ...SecurityRecorder) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			path := req.URL.Path

			if !strings.HasPrefix(path, "/api/v1/") {
				return next(c)
			}

			err := next(c)

			status := c.Response().Status
			if he, ok := err.(*echo.HTTPError); ok {
				status = he.Code
			}
			if status != http.StatusUnauthorized && status != http.StatusForbidden {
				return err
			}

			ctx := req.Context()
			entry := SecurityEntry{
				UserID:     auth.UserIDFromContext(ctx),
				UserRoles:  auth.RolesFromContext(ctx),
				Resource:   extractResource(path),
				Method:     req.Method,
				Path:       path,
				IPAddress:  c.RealIP(),
				UserAgent:  req.UserAgent(),
				StatusCode: status,
				Timestamp:  time.Now().UTC(),
			}
			if rid, ok := c.Get("request_id").(string); ok {
				entry.RequestID = rid
			}

			if len(recorders) > 0 && recorders[0] != nil {
				if recErr := recorders[0].RecordRejection(entry); recErr != nil {
					logger.Error().Err(recErr).
						Str("request_id", entry.RequestID).
						Msg("failed to record security entry")
				}
			}

			logger.Warn().
				Str("type", "security_audit").
				Str("request_id", entry.RequestID).
				Str("user_id", entry.UserID).
				Strs("user_roles", entry.UserRoles).
				Str("resource", entry.Resource).
				Str("method", entry.Method).
				Str("path", entry.Path).
				Str("remote_ip", entry.IPAddress).
				Int("status", entry.StatusCode).
				Msg("request_rejected")

			return err
		}
	}
}

// extractResource returns the first path segment after /api/v1/.
func extractResource(path string) string {
	segments := strings.Split(strings.TrimPrefix(path, "/api/v1/"), "/")
	if len(segments) > 0 && segments[0] != "" {
		return segments[0]
	}
	return "unknown"
}
