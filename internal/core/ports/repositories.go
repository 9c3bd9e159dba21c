package ports

//go:generate mockgen -source=repositories.go -destination=mocks/repositories_mock.go -package=mocks

import (
	"context"
	"time"

	"github.com/google/uuid"

	"credit-app/internal/core/domain"
)

// Lookups return (nil, nil) when the row does not exist.

// CreditRequestRepository defines persistence operations for credit requests.
type CreditRequestRepository interface {
	Create(ctx context.Context, cr *domain.CreditRequest) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.CreditRequest, error)
	GetDetail(ctx context.Context, id uuid.UUID) (*CreditRequestDetail, error)
	// UpdateStatus persists the decision fields and reports whether a row
	// matched. Last writer wins.
	UpdateStatus(ctx context.Context, cr *domain.CreditRequest) (bool, error)
	// Delete reports whether a row was removed.
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.CreditRequest, error)
	// ListPaged returns one page newest first plus the filtered total.
	ListPaged(ctx context.Context, params CreditRequestListParams) ([]CreditRequestDetail, int64, error)
	// ListForExport returns every filtered row newest first.
	ListForExport(ctx context.Context, status *string) ([]CreditRequestDetail, error)
}

// CreditRequestDetail joins a credit request with its requester.
type CreditRequestDetail struct {
	domain.CreditRequest
	Username string
	Email    string
}

// CreditRequestListParams holds filter + pagination for listing credit requests.
type CreditRequestListParams struct {
	Status   *string
	Page     int
	PageSize int
}

// AuditRepository is append-only.
type AuditRepository interface {
	Create(ctx context.Context, log *domain.AuditLog) error
	List(ctx context.Context, filter AuditLogFilter) ([]domain.AuditLog, error)
}

// AuditLogFilter narrows an audit listing. Nil fields match everything.
type AuditLogFilter struct {
	EntityName  *string
	EntityID    *uuid.UUID
	Action      *string
	PerformedBy *string
	From        *time.Time
	To          *time.Time
}

// UserRepository defines persistence operations for users.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error
	Count(ctx context.Context) (int64, error)
}
