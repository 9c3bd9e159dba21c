package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"credit-app/pkg/apperror"
)

// Audited entity names.
const (
	AuditEntityCreditRequest = "CreditRequest"
	AuditEntityUser          = "User"
)

// Audited actions.
const (
	AuditActionCreate          = "Create"
	AuditActionStatusUpdate    = "StatusUpdate"
	AuditActionDelete          = "Delete"
	AuditActionLogin           = "Login"
	AuditActionRegister        = "Register"
	AuditActionRegisterAnalyst = "RegisterAnalyst"
)

// AuditLog records who did what to which entity. Rows are append-only.
// EntityID may be uuid.Nil for events with no natural entity, such as a login.
type AuditLog struct {
	ID          uuid.UUID `json:"id"`
	EntityName  string    `json:"entity_name"`
	EntityID    uuid.UUID `json:"entity_id"`
	Action      string    `json:"action"`
	Details     string    `json:"details"`
	PerformedBy string    `json:"performed_by"`
	Timestamp   time.Time `json:"timestamp"`
}

func NewAuditLog(entityName string, entityID uuid.UUID, action, details, performedBy string) (*AuditLog, error) {
	for _, f := range []struct{ name, value string }{
		{"entity_name", entityName},
		{"action", action},
		{"details", details},
		{"performed_by", performedBy},
	} {
		if strings.TrimSpace(f.value) == "" {
			return nil, apperror.ValidationField(f.name, f.name+" cannot be blank")
		}
	}

	return &AuditLog{
		ID:          uuid.New(),
		EntityName:  entityName,
		EntityID:    entityID,
		Action:      action,
		Details:     details,
		PerformedBy: performedBy,
		Timestamp:   time.Now().UTC(),
	}, nil
}
