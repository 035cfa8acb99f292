// Package resp renders the single JSON envelope every endpoint returns,
// success and error alike, so API clients parse one shape.
package resp

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Envelope wraps every response body. Validation outcomes from the core
// services (penalty applied, QR rejected) travel inside Data; Status and
// Description only describe the HTTP-level result.
type Envelope struct {
	Status      string `json:"status"` // success | error
	Code        int    `json:"code"`   // mirrors the HTTP status
	Description string `json:"description"`
	Data        any    `json:"data"` // object | array | null
}

func Success(c *gin.Context, httpCode int, description string, data any) {
	c.JSON(httpCode, Envelope{
		Status:      "success",
		Code:        httpCode,
		Description: description,
		Data:        data,
	})
}

// OK is the common-case 200 success.
func OK(c *gin.Context, data any) {
	Success(c, http.StatusOK, "ok", data)
}

func Error(c *gin.Context, httpCode int, description string) {
	c.JSON(httpCode, Envelope{
		Status:      "error",
		Code:        httpCode,
		Description: description,
		Data:        nil,
	})
}
