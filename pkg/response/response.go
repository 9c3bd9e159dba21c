package response

import (
	"errors"
	"mime"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"credit-app/pkg/apperror"
)

// RequestIDKey is the gin context key holding the request id.
const RequestIDKey = "request_id"

// SuccessResponse is the envelope around every successful JSON body.
type SuccessResponse struct {
	Data      any    `json:"data"`
	RequestID string `json:"request_id"`
	Timestamp string `json:"timestamp"`
}

// ErrorResponse is the envelope around every error body.
type ErrorResponse struct {
	ErrorCode string `json:"error_code"`
	Message   string `json:"message"`
	Field     string `json:"field,omitempty"`
	RequestID string `json:"request_id"`
	Timestamp string `json:"timestamp"`
}

func OK(c *gin.Context, data any) {
	success(c, http.StatusOK, data)
}

func Created(c *gin.Context, data any) {
	success(c, http.StatusCreated, data)
}

// Error renders err through its AppError code and status. Anything else is
// reported as SYS_001 without leaking the underlying message.
func Error(c *gin.Context, err error) {
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) {
		appErr = apperror.InternalError(err)
	}
	if appErr.HTTPStatus == 0 {
		appErr.HTTPStatus = http.StatusInternalServerError
	}

	c.JSON(appErr.HTTPStatus, ErrorResponse{
		ErrorCode: appErr.Code,
		Message:   appErr.Message,
		Field:     appErr.Field,
		RequestID: requestID(c),
		Timestamp: timestamp(),
	})
}

func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// File streams data as a download named fileName.
func File(c *gin.Context, fileName, contentType string, data []byte) {
	c.Header("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": fileName}))
	c.Data(http.StatusOK, contentType, data)
}

func success(c *gin.Context, status int, data any) {
	c.JSON(status, SuccessResponse{
		Data:      data,
		RequestID: requestID(c),
		Timestamp: timestamp(),
	})
}

func timestamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// requestID falls back to a fresh id when the RequestID middleware did not run.
func requestID(c *gin.Context) string {
	if s := c.GetString(RequestIDKey); s != "" {
		return s
	}
	return uuid.New().String()
}
