package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"credit-app/internal/adapter/http/dto"
	"credit-app/internal/core/dispatch"
	"credit-app/internal/core/ports"
	"credit-app/pkg/apperror"
	"credit-app/pkg/response"
)

const dateOnly = "2006-01-02"

// AuditHandler serves the audit trail to reviewers.
type AuditHandler struct {
	bus *dispatch.Bus
}

func NewAuditHandler(bus *dispatch.Bus) *AuditHandler {
	return &AuditHandler{bus: bus}
}

// List handles GET /api/v1/audit-logs.
func (h *AuditHandler) List(c *gin.Context) {
	var q dto.AuditLogQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	query := ports.ListAuditLogs{
		EntityName:  optional(q.EntityName),
		Action:      optional(q.Action),
		PerformedBy: optional(q.PerformedBy),
	}
	if q.EntityID != "" {
		id, err := uuid.Parse(q.EntityID)
		if err != nil {
			response.Error(c, apperror.ValidationField("entity_id", "invalid uuid"))
			return
		}
		query.EntityID = &id
	}

	var err error
	if query.StartDate, err = parseDate(q.StartDate, false); err != nil {
		response.Error(c, apperror.ValidationField("start_date", err.Error()))
		return
	}
	if query.EndDate, err = parseDate(q.EndDate, true); err != nil {
		response.Error(c, apperror.ValidationField("end_date", err.Error()))
		return
	}

	logs, err := dispatch.Send[[]ports.AuditLogView](c.Request.Context(), h.bus, query)
	if err != nil {
		response.Error(c, err)
		return
	}
	if logs == nil {
		logs = []ports.AuditLogView{}
	}

	response.OK(c, logs)
}

// parseDate accepts RFC 3339 or a bare date. A bare end date covers the whole day.
func parseDate(s string, endOfDay bool) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return &t, nil
	}
	t, err := time.Parse(dateOnly, s)
	if err != nil {
		return nil, err
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return &t, nil
}
