package ports

import (
	"time"

	"github.com/google/uuid"
)

// Queries are dispatched by value and never audited.

type GetCreditRequest struct {
	ID uuid.UUID
}

type ListMyCreditRequests struct {
	UserID uuid.UUID
}

// ListCreditRequests pages through every request, newest first.
type ListCreditRequests struct {
	Page   int
	Size   int
	Status *string
}

// ExportCreditRequests renders the filtered set as xlsx or csv.
type ExportCreditRequests struct {
	Status *string
	Format string
}

type ListAuditLogs struct {
	EntityName  *string
	EntityID    *uuid.UUID
	Action      *string
	PerformedBy *string
	StartDate   *time.Time
	EndDate     *time.Time
}

// GetCurrentUser refreshes the caller's token.
type GetCurrentUser struct {
	UserID uuid.UUID
}
