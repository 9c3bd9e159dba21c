package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"credit-app/internal/core/domain"
	"credit-app/internal/core/ports"
	"credit-app/pkg/apperror"
)

// AuditServiceImpl implements ports.AuditService and dispatch.AuditRecorder.
type AuditServiceImpl struct {
	repo ports.AuditRepository
	log  zerolog.Logger
}

func NewAuditService(repo ports.AuditRepository, log zerolog.Logger) *AuditServiceImpl {
	return &AuditServiceImpl{repo: repo, log: log}
}

// Record validates and persists one entry. The write is synchronous so the
// caller can decide what a failure means.
func (s *AuditServiceImpl) Record(ctx context.Context, entityName string, entityID uuid.UUID, action, details, performedBy string) error {
	entry, err := domain.NewAuditLog(entityName, entityID, action, details, performedBy)
	if err != nil {
		return err
	}

	s.log.Info().
		Str("entity_name", entry.EntityName).
		Str("entity_id", entry.EntityID.String()).
		Str("action", entry.Action).
		Str("performed_by", entry.PerformedBy).
		Msg("audit")

	if err := s.repo.Create(ctx, entry); err != nil {
		return apperror.ErrDatabaseError(fmt.Errorf("persist audit log: %w", err))
	}
	return nil
}

// List returns matching entries, newest first.
func (s *AuditServiceImpl) List(ctx context.Context, filter ports.AuditLogFilter) ([]domain.AuditLog, error) {
	if filter.From != nil && filter.To != nil && filter.To.Before(*filter.From) {
		return nil, apperror.ValidationField("end_date", "end date must not be before start date")
	}

	logs, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("list audit logs: %w", err))
	}
	return logs, nil
}

// ListViews adapts List to the ListAuditLogs query.
func (s *AuditServiceImpl) ListViews(ctx context.Context, q ports.ListAuditLogs) ([]ports.AuditLogView, error) {
	logs, err := s.List(ctx, ports.AuditLogFilter{
		EntityName:  q.EntityName,
		EntityID:    q.EntityID,
		Action:      q.Action,
		PerformedBy: q.PerformedBy,
		From:        q.StartDate,
		To:          q.EndDate,
	})
	if err != nil {
		return nil, err
	}

	views := make([]ports.AuditLogView, len(logs))
	for i := range logs {
		views[i] = ports.NewAuditLogView(&logs[i])
	}
	return views, nil
}
