package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"credit-app/pkg/apperror"
)

// Well-known credit request statuses. UpdateStatus accepts any non-blank value.
const (
	CreditStatusPending  = "Pending"
	CreditStatusApproved = "Approved"
	CreditStatusRejected = "Rejected"
)

// CreditRequest is a lending application owned by UserID and decided by an analyst.
type CreditRequest struct {
	Entity
	UserID             uuid.UUID  `json:"user_id"`
	Amount             Money      `json:"-"`
	TermInMonths       int        `json:"term_in_months"`
	MonthlyIncome      Money      `json:"-"`
	WorkSeniorityYears int        `json:"work_seniority_years"`
	Purpose            string     `json:"purpose"`
	Status             string     `json:"status"`
	RejectionReason    string     `json:"rejection_reason"`
	ApprovedBy         string     `json:"approved_by"`
	ApprovedAt         *time.Time `json:"approved_at,omitempty"`
}

// NewCreditRequest builds a Pending request. A nil id is replaced with a random one.
func NewCreditRequest(
	id, userID uuid.UUID,
	amount Money,
	termInMonths int,
	monthlyIncome Money,
	workSeniorityYears int,
	purpose string,
) (*CreditRequest, error) {
	if userID == uuid.Nil {
		return nil, apperror.ValidationField("user_id", "user id is required")
	}
	if termInMonths <= 0 {
		return nil, apperror.ValidationField("term_in_months", "term must be greater than zero")
	}
	if workSeniorityYears < 0 {
		return nil, apperror.ValidationField("work_seniority_years", "work seniority cannot be negative")
	}
	if strings.TrimSpace(purpose) == "" {
		return nil, apperror.ValidationField("purpose", "purpose cannot be blank")
	}

	return &CreditRequest{
		Entity:             NewEntity(id),
		UserID:             userID,
		Amount:             amount,
		TermInMonths:       termInMonths,
		MonthlyIncome:      monthlyIncome,
		WorkSeniorityYears: workSeniorityYears,
		Purpose:            purpose,
		Status:             CreditStatusPending,
	}, nil
}

// UpdateStatus replaces the decision fields and stamps ApprovedAt and UpdatedAt.
// Any transition order is accepted. ApprovedAt is set for rejections too.
func (c *CreditRequest) UpdateStatus(newStatus, rejectionReason, approvedBy string) error {
	if strings.TrimSpace(newStatus) == "" {
		return apperror.ValidationField("status", "status cannot be blank")
	}

	now := time.Now().UTC()
	c.Status = newStatus
	c.RejectionReason = rejectionReason
	c.ApprovedBy = approvedBy
	c.ApprovedAt = &now
	c.Touch(now)
	return nil
}

// IsPending reports whether no decision has been recorded yet.
func (c *CreditRequest) IsPending() bool {
	return c.Status == CreditStatusPending
}
