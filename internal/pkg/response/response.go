package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"avenstudio/internal/contract"
	"avenstudio/internal/pkg/apperr"
)

func Success(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, gin.H{
		"success": true,
		"data":    data,
	})
}

func Error(c *gin.Context, statusCode int, code string, message string) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}

func ErrorWithDetails(c *gin.Context, statusCode int, code string, message string, details any) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
			"details": details,
		},
	})
}

// Envelope writes a module response, using okStatus on success and the
// status derived from the error kind otherwise.
func Envelope(c *gin.Context, okStatus int, resp contract.Response) {
	if resp.Success {
		Success(c, okStatus, resp.Data)
		return
	}
	status, code := Status(resp.Kind)
	Error(c, status, code, resp.Error)
}

// Status maps an error kind onto an HTTP status and envelope error code.
func Status(kind apperr.Kind) (int, string) {
	switch kind {
	case apperr.KindValidation:
		return http.StatusBadRequest, "VALIDATION_ERROR"
	case apperr.KindNotFound:
		return http.StatusNotFound, "NOT_FOUND"
	case apperr.KindConstraint:
		return http.StatusBadRequest, "CONSTRAINT_VIOLATION"
	case apperr.KindConflict:
		return http.StatusConflict, "CONFLICT"
	case apperr.KindProtected:
		return http.StatusForbidden, "FORBIDDEN"
	default:
		return http.StatusInternalServerError, "INTERNAL"
	}
}

// InvalidRequest is written when the body or path cannot be bound at all.
func InvalidRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, "INVALID_REQUEST", message)
}
