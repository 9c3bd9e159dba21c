package dto

import "github.com/shopspring/decimal"

// RegisterRequest is the request body for user and analyst registration.
type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50,safe_id"`
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,min=8,max=128" sanitize:"-"`
}

// LoginRequest is the request body for login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required" sanitize:"-"`
}

// CreateCreditRequestRequest is the request body for submitting a credit request.
// Currencies default to USD when omitted.
type CreateCreditRequestRequest struct {
	Amount                decimal.Decimal `json:"amount"`
	Currency              string          `json:"currency" binding:"omitempty,currency_code"`
	TermInMonths          int             `json:"term_in_months" binding:"required,gt=0,lte=600"`
	MonthlyIncome         decimal.Decimal `json:"monthly_income"`
	MonthlyIncomeCurrency string          `json:"monthly_income_currency" binding:"omitempty,currency_code"`
	WorkSeniorityYears    int             `json:"work_seniority_years" binding:"gte=0,lte=80"`
	Purpose               string          `json:"purpose" binding:"required,max=500" sanitize:"trim"`
}

// UpdateStatusRequest is the request body for an analyst decision.
type UpdateStatusRequest struct {
	Status          string `json:"status" binding:"required,max=50" sanitize:"trim"`
	RejectionReason string `json:"rejection_reason" binding:"max=1000" sanitize:"trim"`
}

// ListCreditRequestsQuery holds paging query parameters.
type ListCreditRequestsQuery struct {
	Page   int    `form:"page,default=1"`
	Size   int    `form:"size,default=10"`
	Status string `form:"status"`
}

// ExportQuery holds export query parameters. An empty format uses the server default.
type ExportQuery struct {
	Status string `form:"status"`
	Format string `form:"format" binding:"omitempty,oneof=xlsx csv XLSX CSV"`
}

// AuditLogQuery holds audit filter query parameters. Dates accept RFC 3339 or YYYY-MM-DD.
type AuditLogQuery struct {
	EntityName  string `form:"entity_name"`
	EntityID    string `form:"entity_id" binding:"omitempty,uuid"`
	Action      string `form:"action"`
	PerformedBy string `form:"performed_by"`
	StartDate   string `form:"start_date"`
	EndDate     string `form:"end_date"`
}
