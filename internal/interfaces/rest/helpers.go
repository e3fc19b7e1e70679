package rest

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/rankmath/repair-action-scheduler/pkg/errors"
)

// RespondAppError sends a standardised JSON error response using pkg/errors
func RespondAppError(c *gin.Context, err error) {
	code := errors.GetHTTPStatus(err)
	resp := errors.ToResponse(err)

	if code >= 500 {
		log.Printf("❌ ERROR [%d] %s %s: %s", code, c.Request.Method, c.Request.URL.Path, resp.Message)
	}

	c.JSON(code, gin.H{
		"error":   resp.Message,
		"message": resp.Message,
		"code":    resp.Code,
		"data":    nil,
	})
}
