package ports

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"credit-app/internal/core/domain"
)

// Commands are dispatched by pointer so a handler can assign ids
// that the audit entry later reports.

// CreateCreditRequest submits a new application on behalf of UserID.
type CreateCreditRequest struct {
	ID                    uuid.UUID // assigned by the handler
	UserID                uuid.UUID
	Amount                decimal.Decimal
	Currency              string
	TermInMonths          int
	MonthlyIncome         decimal.Decimal
	MonthlyIncomeCurrency string
	WorkSeniorityYears    int
	Purpose               string
	ActorName             string
}

func (c *CreateCreditRequest) AuditEntityName() string  { return domain.AuditEntityCreditRequest }
func (c *CreateCreditRequest) AuditEntityID() uuid.UUID { return c.ID }
func (c *CreateCreditRequest) AuditAction() string      { return domain.AuditActionCreate }
func (c *CreateCreditRequest) AuditPerformedBy() string { return c.ActorName }
func (c *CreateCreditRequest) AuditDetails() string {
	return fmt.Sprintf("Credit request for %s %s: %s", c.Amount.StringFixed(2), c.Currency, c.Purpose)
}

// UpdateCreditRequestStatus records an analyst decision.
type UpdateCreditRequestStatus struct {
	ID              uuid.UUID
	Status          string
	RejectionReason string
	ApproverName    string
}

func (c *UpdateCreditRequestStatus) AuditEntityName() string  { return domain.AuditEntityCreditRequest }
func (c *UpdateCreditRequestStatus) AuditEntityID() uuid.UUID { return c.ID }
func (c *UpdateCreditRequestStatus) AuditAction() string      { return domain.AuditActionStatusUpdate }
func (c *UpdateCreditRequestStatus) AuditPerformedBy() string { return c.ApproverName }
func (c *UpdateCreditRequestStatus) AuditDetails() string {
	if c.RejectionReason != "" {
		return fmt.Sprintf("Status changed to %s. Reason: %s", c.Status, c.RejectionReason)
	}
	return "Status changed to " + c.Status
}

// DeleteCreditRequest removes an application. The result reports whether it existed.
type DeleteCreditRequest struct {
	ID        uuid.UUID
	ActorName string
}

func (c *DeleteCreditRequest) AuditEntityName() string  { return domain.AuditEntityCreditRequest }
func (c *DeleteCreditRequest) AuditEntityID() uuid.UUID { return c.ID }
func (c *DeleteCreditRequest) AuditAction() string      { return domain.AuditActionDelete }
func (c *DeleteCreditRequest) AuditDetails() string     { return "Credit request deleted" }
func (c *DeleteCreditRequest) AuditPerformedBy() string { return c.ActorName }

// RegisterUser creates a requester account.
type RegisterUser struct {
	UserID    uuid.UUID // assigned by the handler
	Username  string
	Email     string
	Password  string
	IPAddress string
}

func (c *RegisterUser) AuditEntityName() string  { return domain.AuditEntityUser }
func (c *RegisterUser) AuditEntityID() uuid.UUID { return c.UserID }
func (c *RegisterUser) AuditAction() string      { return domain.AuditActionRegister }
func (c *RegisterUser) AuditDetails() string     { return "User registered from IP " + c.IPAddress }
func (c *RegisterUser) AuditPerformedBy() string { return c.Email }

// RegisterAnalyst creates a staff account. Only admins reach it.
type RegisterAnalyst struct {
	UserID      uuid.UUID // assigned by the handler
	Username    string
	Email       string
	Password    string
	IPAddress   string
	RequestedBy string
}

func (c *RegisterAnalyst) AuditEntityName() string  { return domain.AuditEntityUser }
func (c *RegisterAnalyst) AuditEntityID() uuid.UUID { return c.UserID }
func (c *RegisterAnalyst) AuditAction() string      { return domain.AuditActionRegisterAnalyst }
func (c *RegisterAnalyst) AuditPerformedBy() string { return c.Email }
func (c *RegisterAnalyst) AuditDetails() string {
	return fmt.Sprintf("Analyst registered by %s from IP %s", c.RequestedBy, c.IPAddress)
}

// Login exchanges credentials for a token. It has no natural entity id.
type Login struct {
	Email     string
	Password  string
	IPAddress string
}

func (c *Login) AuditEntityName() string  { return domain.AuditEntityUser }
func (c *Login) AuditEntityID() uuid.UUID { return uuid.Nil }
func (c *Login) AuditAction() string      { return domain.AuditActionLogin }
func (c *Login) AuditDetails() string     { return "User login from IP " + c.IPAddress }
func (c *Login) AuditPerformedBy() string { return c.Email }
