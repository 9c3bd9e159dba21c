package dispatch

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Auditable is implemented by commands that leave an audit trail entry.
// Values are read after the handler returns, so a handler may fill in an id it assigns.
type Auditable interface {
	AuditEntityName() string
	AuditEntityID() uuid.UUID
	AuditAction() string
	AuditDetails() string
	AuditPerformedBy() string
}

// AuditRecorder appends one audit entry.
type AuditRecorder interface {
	Record(ctx context.Context, entityName string, entityID uuid.UUID, action, details, performedBy string) error
}

// Audit writes exactly one entry for every Auditable message whose handler succeeds.
// The write is separate from the handler's own persistence and ignores cancellation
// of the request context. A failed write is logged; with strict it is also returned.
func Audit(rec AuditRecorder, log zerolog.Logger, strict bool) Behavior {
	return func(ctx context.Context, msg any, next Next) (any, error) {
		out, err := next(ctx, msg)
		if err != nil {
			return out, err
		}

		a, ok := msg.(Auditable)
		if !ok {
			return out, nil
		}

		if recErr := rec.Record(context.WithoutCancel(ctx),
			a.AuditEntityName(), a.AuditEntityID(), a.AuditAction(), a.AuditDetails(), a.AuditPerformedBy(),
		); recErr != nil {
			log.Error().
				Err(recErr).
				Str("entity_name", a.AuditEntityName()).
				Str("entity_id", a.AuditEntityID().String()).
				Str("action", a.AuditAction()).
				Str("performed_by", a.AuditPerformedBy()).
				Msg("audit write failed")
			if strict {
				return nil, fmt.Errorf("audit %s %s: %w", a.AuditEntityName(), a.AuditAction(), recErr)
			}
		}
		return out, nil
	}
}
