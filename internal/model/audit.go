package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// AuditOutcome classifies the result of an audited action.
type AuditOutcome string

const (
	AuditOutcomeAllowed     AuditOutcome = "allowed"
	AuditOutcomeDenied      AuditOutcome = "denied"
	AuditOutcomeError       AuditOutcome = "error"
	AuditOutcomeRateLimited AuditOutcome = "rate_limited"
)

// AuditStore persists append-only security event rows.
type AuditStore interface {
	Create(ctx context.Context, entry AuditEntry) error
}

// AuditEntry is one security event. Metadata is stored sanitized: values
// under sensitive keys are replaced by a redaction marker before the entry
// reaches the store.
type AuditEntry struct {
	ID         uuid.UUID
	ActorID    *uuid.UUID
	Action     Action
	Outcome    AuditOutcome
	StatusCode int
	Metadata   map[string]any
	CreatedAt  time.Time
}
