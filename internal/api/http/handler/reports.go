package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/alexnev/accountcore/internal/logger"
	"github.com/alexnev/accountcore/internal/model"
)

// SecurityService is the rate-limiting and audit surface the reports
// handler needs.
type SecurityService interface {
	RateLimitKey(r *http.Request, actorID *uuid.UUID) string
	EnforceRateLimit(ctx context.Context, key string) (model.RateLimitDecision, error)
	AuditAction(ctx context.Context, entry model.AuditEntry)
}

// Reports serves admin-only report endpoints. Every request is counted
// against the rate limit and audited, whatever the outcome.
type Reports struct {
	security       SecurityService
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewReports creates a new Reports handler.
func NewReports(security SecurityService, contextManager model.ContextManager, logger *logger.Logger) *Reports {
	return &Reports{security: security, contextManager: contextManager, logger: logger}
}

type roleReport struct {
	Role        model.Role         `json:"role"`
	Permissions []model.Permission `json:"permissions"`
}

type authorizationReport struct {
	Roles []roleReport `json:"roles"`
}

// Authorization handles GET /api/admin/reports/authorization. The rate
// limit is enforced before authentication so anonymous floods burn
// budget instead of probing responses.
func (h *Reports) Authorization(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	claims, authenticated := h.contextManager.GetClaimsFromContext(ctx)

	var actorID *uuid.UUID
	if authenticated {
		actorID = &claims.UserID
	}

	key := h.security.RateLimitKey(r, actorID)
	decision, err := h.security.EnforceRateLimit(ctx, key)
	if err != nil {
		h.logger.Error("rate limit backend unavailable", "error", err.Error())
		h.security.AuditAction(ctx, model.AuditEntry{
			ActorID:    actorID,
			Action:     model.ActionViewReports,
			Outcome:    model.AuditOutcomeError,
			StatusCode: http.StatusInternalServerError,
			Metadata:   map[string]any{"reason": "rate limit backend unavailable"},
		})
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}

	w.Header().Set("X-Ratelimit-Remaining", strconv.Itoa(decision.Remaining))
	w.Header().Set("X-Ratelimit-Reset", strconv.FormatInt(decision.ResetAt.Unix(), 10))

	if !decision.Allowed {
		w.Header().Set("Retry-After", strconv.Itoa(decision.RetryAfterSeconds))
		h.security.AuditAction(ctx, model.AuditEntry{
			ActorID:    actorID,
			Action:     model.ActionViewReports,
			Outcome:    model.AuditOutcomeRateLimited,
			StatusCode: http.StatusTooManyRequests,
			Metadata:   map[string]any{"rateLimitKey": key, "retryAfterSeconds": decision.RetryAfterSeconds},
		})
		respondError(w, http.StatusTooManyRequests, "too many requests")
		return
	}

	if !authenticated {
		h.security.AuditAction(ctx, model.AuditEntry{
			Action:     model.ActionViewReports,
			Outcome:    model.AuditOutcomeDenied,
			StatusCode: http.StatusUnauthorized,
			Metadata:   map[string]any{"reason": "no session"},
		})
		respondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	if !model.Can(claims.Role, model.ActionViewReports) {
		h.security.AuditAction(ctx, model.AuditEntry{
			ActorID:    actorID,
			Action:     model.ActionViewReports,
			Outcome:    model.AuditOutcomeDenied,
			StatusCode: http.StatusForbidden,
			Metadata:   map[string]any{"role": string(claims.Role)},
		})
		respondError(w, http.StatusForbidden, "forbidden")
		return
	}

	report := authorizationReport{
		Roles: []roleReport{
			{Role: model.RoleUser, Permissions: model.Permissions(model.RoleUser)},
			{Role: model.RoleAdmin, Permissions: model.Permissions(model.RoleAdmin)},
		},
	}

	h.security.AuditAction(ctx, model.AuditEntry{
		ActorID:    actorID,
		Action:     model.ActionViewReports,
		Outcome:    model.AuditOutcomeAllowed,
		StatusCode: http.StatusOK,
		Metadata:   map[string]any{"remainingBudget": decision.Remaining},
	})
	respondJSON(w, http.StatusOK, report)
}
