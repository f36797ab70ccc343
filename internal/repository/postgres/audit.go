package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/alexnev/accountcore/internal/model"
)

var _ model.AuditStore = (*AuditRepository)(nil)

// AuditRepository persists append-only security event rows.
type AuditRepository struct {
	db *Connection
}

// NewAuditRepository creates an AuditRepository on the shared connection.
func NewAuditRepository(db *Connection) *AuditRepository {
	return &AuditRepository{
		db: db,
	}
}

func (r *AuditRepository) Create(ctx context.Context, entry model.AuditEntry) error {
	metadata := entry.Metadata
	if metadata == nil {
		metadata = map[string]any{}
	}
	encoded, err := json.Marshal(metadata)
	if err != nil {
		return fmt.Errorf("failed to encode audit metadata: %w", err)
	}

	query := `INSERT INTO audit_log (id, actor_id, action, outcome, status_code, metadata, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err = r.db.ExecContext(ctx, query,
		entry.ID, entry.ActorID, entry.Action, entry.Outcome, entry.StatusCode, encoded, entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create audit entry: %w", err)
	}
	return nil
}
