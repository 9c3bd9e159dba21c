package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"credit-app/internal/adapter/http/dto"
	"credit-app/internal/adapter/http/middleware"
	"credit-app/internal/core/dispatch"
	"credit-app/internal/core/ports"
	"credit-app/pkg/apperror"
	"credit-app/pkg/response"
)

// CreditRequestHandler handles credit request endpoints.
type CreditRequestHandler struct {
	bus *dispatch.Bus
}

func NewCreditRequestHandler(bus *dispatch.Bus) *CreditRequestHandler {
	return &CreditRequestHandler{bus: bus}
}

// Create handles POST /api/v1/credit-requests.
func (h *CreditRequestHandler) Create(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	var req dto.CreateCreditRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	view, err := dispatch.Send[ports.CreditRequestView](c.Request.Context(), h.bus, &ports.CreateCreditRequest{
		UserID:                userID,
		Amount:                req.Amount,
		Currency:              req.Currency,
		TermInMonths:          req.TermInMonths,
		MonthlyIncome:         req.MonthlyIncome,
		MonthlyIncomeCurrency: req.MonthlyIncomeCurrency,
		WorkSeniorityYears:    req.WorkSeniorityYears,
		Purpose:               req.Purpose,
		ActorName:             middleware.Username(c),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, view)
}

// ListMine handles GET /api/v1/credit-requests/mine.
func (h *CreditRequestHandler) ListMine(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	views, err := dispatch.Send[[]ports.CreditRequestView](c.Request.Context(), h.bus, ports.ListMyCreditRequests{UserID: userID})
	if err != nil {
		response.Error(c, err)
		return
	}
	if views == nil {
		views = []ports.CreditRequestView{}
	}

	response.OK(c, views)
}

// Get handles GET /api/v1/credit-requests/:id. Requesters only see their own.
func (h *CreditRequestHandler) Get(c *gin.Context) {
	detail, ok := h.loadAuthorized(c)
	if !ok {
		return
	}
	response.OK(c, detail)
}

// List handles GET /api/v1/credit-requests. Analyst or admin only.
func (h *CreditRequestHandler) List(c *gin.Context) {
	var q dto.ListCreditRequestsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	result, err := dispatch.Send[ports.PagedResult[ports.CreditRequestDetailView]](c.Request.Context(), h.bus, ports.ListCreditRequests{
		Page:   q.Page,
		Size:   q.Size,
		Status: optional(q.Status),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, result)
}

// UpdateStatus handles PUT /api/v1/credit-requests/:id/status. Analyst or admin only.
func (h *CreditRequestHandler) UpdateStatus(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req dto.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	view, err := dispatch.Send[ports.CreditRequestView](c.Request.Context(), h.bus, &ports.UpdateCreditRequestStatus{
		ID:              id,
		Status:          req.Status,
		RejectionReason: req.RejectionReason,
		ApproverName:    middleware.Username(c),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, view)
}

// Delete handles DELETE /api/v1/credit-requests/:id. Owner, analyst or admin.
func (h *CreditRequestHandler) Delete(c *gin.Context) {
	detail, ok := h.loadAuthorized(c)
	if !ok {
		return
	}

	deleted, err := dispatch.Send[bool](c.Request.Context(), h.bus, &ports.DeleteCreditRequest{
		ID:        detail.ID,
		ActorName: middleware.Username(c),
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	if !deleted {
		response.Error(c, apperror.ErrNotFound("credit request"))
		return
	}

	response.NoContent(c)
}

// Export handles GET /api/v1/credit-requests/export. Analyst or admin only.
func (h *CreditRequestHandler) Export(c *gin.Context) {
	var q dto.ExportQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	file, err := dispatch.Send[ports.ExportFile](c.Request.Context(), h.bus, ports.ExportCreditRequests{
		Status: optional(q.Status),
		Format: q.Format,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.File(c, file.FileName, file.ContentType, file.Data)
}

// loadAuthorized fetches the request named by :id and checks the caller may see it.
func (h *CreditRequestHandler) loadAuthorized(c *gin.Context) (ports.CreditRequestDetailView, bool) {
	id, ok := pathID(c)
	if !ok {
		return ports.CreditRequestDetailView{}, false
	}

	detail, err := dispatch.Send[ports.CreditRequestDetailView](c.Request.Context(), h.bus, ports.GetCreditRequest{ID: id})
	if err != nil {
		response.Error(c, err)
		return ports.CreditRequestDetailView{}, false
	}

	callerID, _ := middleware.UserID(c)
	if detail.UserID != callerID && !middleware.Role(c).CanReview() {
		response.Error(c, apperror.ErrForbidden())
		return ports.CreditRequestDetailView{}, false
	}
	return detail, true
}

func pathID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.ValidationField("id", "invalid credit request id"))
		return uuid.Nil, false
	}
	return id, true
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
