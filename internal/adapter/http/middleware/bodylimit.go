package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"credit-app/pkg/apperror"
	"credit-app/pkg/response"
)

// MaxBodySize caps request bodies at maxBytes. A declared Content-Length over
// the cap is rejected with 413 up front; an undeclared one fails when read.
func MaxBodySize(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			response.Error(c, apperror.New(apperror.CodeValidation,
				fmt.Sprintf("request body exceeds %d bytes", maxBytes),
				http.StatusRequestEntityTooLarge))
			c.Abort()
			return
		}
		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}
		c.Next()
	}
}
