package handler

import (
	"github.com/gin-gonic/gin"

	"credit-app/internal/adapter/http/dto"
	"credit-app/internal/adapter/http/middleware"
	"credit-app/internal/core/dispatch"
	"credit-app/internal/core/ports"
	"credit-app/pkg/apperror"
	"credit-app/pkg/response"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	bus *dispatch.Bus
}

func NewAuthHandler(bus *dispatch.Bus) *AuthHandler {
	return &AuthHandler{bus: bus}
}

// Register handles POST /api/v1/auth/register.
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	result, err := dispatch.Send[ports.AuthResponse](c.Request.Context(), h.bus, &ports.RegisterUser{
		Username:  req.Username,
		Email:     req.Email,
		Password:  req.Password,
		IPAddress: c.ClientIP(),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, result)
}

// RegisterAnalyst handles POST /api/v1/auth/register-analyst. Admin only.
func (h *AuthHandler) RegisterAnalyst(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	result, err := dispatch.Send[ports.AuthResponse](c.Request.Context(), h.bus, &ports.RegisterAnalyst{
		Username:    req.Username,
		Email:       req.Email,
		Password:    req.Password,
		IPAddress:   c.ClientIP(),
		RequestedBy: middleware.Username(c),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, result)
}

// Login handles POST /api/v1/auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	result, err := dispatch.Send[ports.AuthResponse](c.Request.Context(), h.bus, &ports.Login{
		Email:     req.Email,
		Password:  req.Password,
		IPAddress: c.ClientIP(),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, result)
}

// Me handles GET /api/v1/auth/me and returns a fresh token for the caller.
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	result, err := dispatch.Send[ports.AuthResponse](c.Request.Context(), h.bus, ports.GetCurrentUser{UserID: userID})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, result)
}
