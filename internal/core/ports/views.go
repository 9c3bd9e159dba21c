package ports

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"credit-app/internal/core/domain"
)

// CreditRequestView is the API projection of a credit request.
type CreditRequestView struct {
	ID                    uuid.UUID       `json:"id"`
	UserID                uuid.UUID       `json:"user_id"`
	Amount                decimal.Decimal `json:"amount"`
	Currency              string          `json:"currency"`
	TermInMonths          int             `json:"term_in_months"`
	MonthlyIncome         decimal.Decimal `json:"monthly_income"`
	MonthlyIncomeCurrency string          `json:"monthly_income_currency"`
	WorkSeniorityYears    int             `json:"work_seniority_years"`
	Purpose               string          `json:"purpose"`
	Status                string          `json:"status"`
	RejectionReason       string          `json:"rejection_reason"`
	ApprovedBy            string          `json:"approved_by"`
	ApprovedAt            *time.Time      `json:"approved_at,omitempty"`
	CreatedAt             time.Time       `json:"created_at"`
	UpdatedAt             *time.Time      `json:"updated_at,omitempty"`
}

func NewCreditRequestView(cr *domain.CreditRequest) CreditRequestView {
	return CreditRequestView{
		ID:                    cr.ID,
		UserID:                cr.UserID,
		Amount:                cr.Amount.Amount(),
		Currency:              cr.Amount.Currency(),
		TermInMonths:          cr.TermInMonths,
		MonthlyIncome:         cr.MonthlyIncome.Amount(),
		MonthlyIncomeCurrency: cr.MonthlyIncome.Currency(),
		WorkSeniorityYears:    cr.WorkSeniorityYears,
		Purpose:               cr.Purpose,
		Status:                cr.Status,
		RejectionReason:       cr.RejectionReason,
		ApprovedBy:            cr.ApprovedBy,
		ApprovedAt:            cr.ApprovedAt,
		CreatedAt:             cr.CreatedAt,
		UpdatedAt:             cr.UpdatedAt,
	}
}

// CreditRequestDetailView adds the requester's identity.
type CreditRequestDetailView struct {
	CreditRequestView
	Username string `json:"username"`
	Email    string `json:"email"`
}

func NewCreditRequestDetailView(d *CreditRequestDetail) CreditRequestDetailView {
	return CreditRequestDetailView{
		CreditRequestView: NewCreditRequestView(&d.CreditRequest),
		Username:          d.Username,
		Email:             d.Email,
	}
}

// PagedResult is one page of items plus paging metadata.
type PagedResult[T any] struct {
	Items      []T   `json:"items"`
	Page       int   `json:"page"`
	Size       int   `json:"size"`
	TotalCount int64 `json:"total_count"`
	TotalPages int   `json:"total_pages"`
}

// NewPagedResult computes TotalPages as ceil(total/size).
func NewPagedResult[T any](items []T, page, size int, total int64) PagedResult[T] {
	if items == nil {
		items = []T{}
	}
	totalPages := 0
	if size > 0 {
		totalPages = int((total + int64(size) - 1) / int64(size))
	}
	return PagedResult[T]{
		Items:      items,
		Page:       page,
		Size:       size,
		TotalCount: total,
		TotalPages: totalPages,
	}
}

type AuditLogView struct {
	ID          uuid.UUID `json:"id"`
	EntityName  string    `json:"entity_name"`
	EntityID    uuid.UUID `json:"entity_id"`
	Action      string    `json:"action"`
	Details     string    `json:"details"`
	PerformedBy string    `json:"performed_by"`
	Timestamp   time.Time `json:"timestamp"`
}

func NewAuditLogView(l *domain.AuditLog) AuditLogView {
	return AuditLogView{
		ID:          l.ID,
		EntityName:  l.EntityName,
		EntityID:    l.EntityID,
		Action:      l.Action,
		Details:     l.Details,
		PerformedBy: l.PerformedBy,
		Timestamp:   l.Timestamp,
	}
}

// AuthResponse is returned by register and login.
type AuthResponse struct {
	Token     string          `json:"token"`
	UserID    uuid.UUID       `json:"user_id"`
	Username  string          `json:"username"`
	Email     string          `json:"email"`
	Role      domain.UserRole `json:"role"`
	ExpiresAt time.Time       `json:"expires_at"`
}

// ExportFile is a rendered export ready to stream.
type ExportFile struct {
	FileName    string
	ContentType string
	Data        []byte
}
