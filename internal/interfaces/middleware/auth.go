package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rankmath/repair-action-scheduler/pkg/auth"
	apperrors "github.com/rankmath/repair-action-scheduler/pkg/errors"
)

// ContextKeyOperator is where RequireToken stores the authenticated operator
const ContextKeyOperator = "operator"

// RequireToken is a middleware that validates HS256 bearer tokens.
// An empty secret disables the check.
func RequireToken(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		if len(secret) == 0 {
			c.Next()
			return
		}

		// Get token from Authorization header
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			unauthorized(c, "No authorization token provided")
			return
		}

		// Extract token (format: "Bearer <token>")
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			unauthorized(c, "Invalid authorization header format")
			return
		}

		claims, err := auth.ValidateToken(secret, parts[1])
		if err != nil {
			unauthorized(c, err.Error())
			return
		}

		c.Set(ContextKeyOperator, claims.Operator)
		c.Next()
	}
}

func unauthorized(c *gin.Context, reason string) {
	err := apperrors.NewUnauthorizedError(reason)
	resp := apperrors.ToResponse(err)
	c.AbortWithStatusJSON(apperrors.GetHTTPStatus(err), gin.H{
		"error":   resp.Message,
		"message": resp.Message,
		"code":    resp.Code,
		"data":    nil,
	})
}
