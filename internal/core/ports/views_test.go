package ports

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"credit-app/internal/core/domain"
)

func TestNewPagedResult_TotalPages(t *testing.T) {
	tests := []struct {
		name  string
		total int64
		size  int
		want  int
	}{
		{"empty", 0, 10, 0},
		{"exact", 9, 3, 3},
		{"remainder", 7, 3, 3},
		{"single", 1, 100, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewPagedResult[int](nil, 1, tt.size, tt.total)
			assert.Equal(t, tt.want, r.TotalPages)
			assert.NotNil(t, r.Items)
		})
	}
}

func TestNewCreditRequestDetailView(t *testing.T) {
	cr, err := domain.NewCreditRequest(uuid.Nil, uuid.New(),
		domain.MustMoney("5000", "usd"), 12, domain.MustMoney("3000", "USD"), 2, "Home renovation")
	require.NoError(t, err)

	v := NewCreditRequestDetailView(&CreditRequestDetail{CreditRequest: *cr, Username: "user1", Email: "user1@example.com"})

	assert.Equal(t, cr.ID, v.ID)
	assert.True(t, decimal.NewFromInt(5000).Equal(v.Amount))
	assert.Equal(t, "USD", v.Currency)
	assert.Equal(t, domain.CreditStatusPending, v.Status)
	assert.Equal(t, "user1", v.Username)
}

func TestCommandAuditMetadata(t *testing.T) {
	id := uuid.New()

	create := &CreateCreditRequest{ID: id, Amount: decimal.NewFromInt(5000), Currency: "USD", Purpose: "Car", ActorName: "user1"}
	assert.Equal(t, "CreditRequest", create.AuditEntityName())
	assert.Equal(t, id, create.AuditEntityID())
	assert.Equal(t, "Create", create.AuditAction())
	assert.Equal(t, "Credit request for 5000.00 USD: Car", create.AuditDetails())
	assert.Equal(t, "user1", create.AuditPerformedBy())

	update := &UpdateCreditRequestStatus{ID: id, Status: "Rejected", RejectionReason: "Low income", ApproverName: "analyst1"}
	assert.Equal(t, "StatusUpdate", update.AuditAction())
	assert.Equal(t, "Status changed to Rejected. Reason: Low income", update.AuditDetails())
	assert.Equal(t, "analyst1", update.AuditPerformedBy())

	approve := &UpdateCreditRequestStatus{ID: id, Status: "Approved", ApproverName: "analyst1"}
	assert.Equal(t, "Status changed to Approved", approve.AuditDetails())

	del := &DeleteCreditRequest{ID: id, ActorName: "admin1"}
	assert.Equal(t, "Delete", del.AuditAction())
	assert.Equal(t, id, del.AuditEntityID())

	login := &Login{Email: "a@b.c", IPAddress: "10.0.0.1"}
	assert.Equal(t, uuid.Nil, login.AuditEntityID())
	assert.Equal(t, "User login from IP 10.0.0.1", login.AuditDetails())
	assert.Equal(t, "a@b.c", login.AuditPerformedBy())

	reg := &RegisterUser{Email: "a@b.c", IPAddress: "10.0.0.1"}
	assert.Equal(t, "Register", reg.AuditAction())
	analyst := &RegisterAnalyst{Email: "x@y.z", RequestedBy: "admin1", IPAddress: "1.2.3.4"}
	assert.Equal(t, "RegisterAnalyst", analyst.AuditAction())
	assert.Equal(t, "Analyst registered by admin1 from IP 1.2.3.4", analyst.AuditDetails())
}
