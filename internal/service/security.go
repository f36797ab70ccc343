package service

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/alexnev/accountcore/internal/logger"
	"github.com/alexnev/accountcore/internal/model"
	"github.com/alexnev/accountcore/internal/security"
)

// RedactionMarker replaces values stored under sensitive metadata keys.
const RedactionMarker = "[REDACTED]"

var sensitiveKeyPatterns = []string{
	"pass",
	"secret",
	"token",
	"authorization",
	"cookie",
	"email",
	"phone",
}

// SecurityConfig tunes the windowed rate limiter.
type SecurityConfig struct {
	MaxRequests int
	Window      time.Duration
}

// Security combines the windowed rate limiter and the audit logger, the two
// services request handlers compose around protected endpoints.
type Security struct {
	store  model.RateLimitStore
	audit  model.AuditStore
	config SecurityConfig
	logger *logger.Logger
	now    func() time.Time
}

// NewSecurity creates the security service. Zero config fields fall back to
// the defaults of 30 requests per 60 seconds.
func NewSecurity(store model.RateLimitStore, audit model.AuditStore, cfg SecurityConfig, logger *logger.Logger) *Security {
	if cfg.MaxRequests <= 0 {
		cfg.MaxRequests = 30
	}
	if cfg.Window <= 0 {
		cfg.Window = time.Minute
	}
	return &Security{
		store:  store,
		audit:  audit,
		config: cfg,
		logger: logger,
		now:    time.Now,
	}
}

// RateLimitKey scopes the counter to the authenticated actor when one is
// known, otherwise to the client address.
func (s *Security) RateLimitKey(r *http.Request, actorID *uuid.UUID) string {
	if actorID != nil {
		return "user:" + actorID.String()
	}
	return "ip:" + security.ClientIP(r)
}

// EnforceRateLimit atomically counts one request against the key and decides
// whether it may proceed. Denials carry a retry hint of at least one second.
func (s *Security) EnforceRateLimit(ctx context.Context, key string) (model.RateLimitDecision, error) {
	now := s.now()
	state, err := s.store.IncrementWindow(ctx, key, now, s.config.Window)
	if err != nil {
		return model.RateLimitDecision{}, fmt.Errorf("failed to increment rate limit counter: %w", err)
	}

	if state.Count > int64(s.config.MaxRequests) {
		retryAfter := int((state.ResetAt.Sub(now) + time.Second - 1) / time.Second)
		if retryAfter < 1 {
			retryAfter = 1
		}
		return model.RateLimitDecision{
			Allowed:           false,
			RetryAfterSeconds: retryAfter,
			ResetAt:           state.ResetAt,
		}, nil
	}

	return model.RateLimitDecision{
		Allowed:   true,
		Remaining: s.config.MaxRequests - int(state.Count),
		ResetAt:   state.ResetAt,
	}, nil
}

// AuditAction sanitizes the entry's metadata, stamps it and persists it.
// Persistence failures are logged and swallowed: the security decision the
// entry describes has already been returned to the caller and must stand.
func (s *Security) AuditAction(ctx context.Context, entry model.AuditEntry) {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	entry.CreatedAt = s.now()
	if sanitized, ok := Sanitize(entry.Metadata).(map[string]any); ok {
		entry.Metadata = sanitized
	}

	if err := s.audit.Create(ctx, entry); err != nil {
		s.logger.Error("security service: failed to persist audit entry",
			"action", entry.Action,
			"outcome", entry.Outcome,
			"error", err.Error())
	}
}

func isSensitiveKey(key string) bool {
	lower := strings.ToLower(key)
	for _, pattern := range sensitiveKeyPatterns {
		if strings.Contains(lower, pattern) {
			return true
		}
	}
	return false
}

// Sanitize walks nested maps and slices, replacing any value stored under a
// sensitive key with the redaction marker. Structure is otherwise preserved.
func Sanitize(value any) any {
	switch v := value.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, val := range v {
			if isSensitiveKey(key) {
				out[key] = RedactionMarker
				continue
			}
			out[key] = Sanitize(val)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, val := range v {
			out[i] = Sanitize(val)
		}
		return out
	default:
		return value
	}
}
