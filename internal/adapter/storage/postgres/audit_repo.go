package postgres

import (
	"context"
	"fmt"
	"strings"

	"credit-app/internal/core/domain"
	"credit-app/internal/core/ports"
)

// AuditRepo implements ports.AuditRepository. It only inserts and reads.
type AuditRepo struct {
	pool Pool
}

func NewAuditRepo(pool Pool) *AuditRepo {
	return &AuditRepo{pool: pool}
}

func (r *AuditRepo) Create(ctx context.Context, l *domain.AuditLog) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO audit_logs (id, entity_name, entity_id, action, details, performed_by, timestamp)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		l.ID, l.EntityName, l.EntityID, l.Action, l.Details, l.PerformedBy, l.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("insert audit log: %w", err)
	}
	return nil
}

// List returns matching audit rows, newest first.
func (r *AuditRepo) List(ctx context.Context, f ports.AuditLogFilter) ([]domain.AuditLog, error) {
	var conditions []string
	var args []any
	argIdx := 1

	add := func(cond string, v any) {
		conditions = append(conditions, fmt.Sprintf(cond, argIdx))
		args = append(args, v)
		argIdx++
	}
	if f.EntityName != nil {
		add("entity_name = $%d", *f.EntityName)
	}
	if f.EntityID != nil {
		add("entity_id = $%d", *f.EntityID)
	}
	if f.Action != nil {
		add("action = $%d", *f.Action)
	}
	if f.PerformedBy != nil {
		add("performed_by = $%d", *f.PerformedBy)
	}
	if f.From != nil {
		add("timestamp >= $%d", *f.From)
	}
	if f.To != nil {
		add("timestamp <= $%d", *f.To)
	}

	where := ""
	if len(conditions) > 0 {
		where = "WHERE " + strings.Join(conditions, " AND ")
	}
	query := fmt.Sprintf(`SELECT id, entity_name, entity_id, action, details, performed_by, timestamp
		FROM audit_logs %s ORDER BY timestamp DESC, id DESC`, where)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list audit logs: %w", err)
	}
	defer rows.Close()

	var out []domain.AuditLog
	for rows.Next() {
		var l domain.AuditLog
		if err := rows.Scan(&l.ID, &l.EntityName, &l.EntityID, &l.Action, &l.Details, &l.PerformedBy, &l.Timestamp); err != nil {
			return nil, fmt.Errorf("scan audit log: %w", err)
		}
		out = append(out, l)
	}
	return out, rows.Err()
}
