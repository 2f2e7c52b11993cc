package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/booking-api/internal/auth"
	"github.com/BruksfildServices01/booking-api/internal/httperr"
)

const (
	ContextEmployeeID = "employeeID"
	ContextEmail      = "employeeEmail"
	ContextIsAdmin    = "isAdmin"
)

func AuthMiddleware(tokens *auth.TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			httperr.Unauthorized(c, "missing_authorization_header", "Authorization header is required.")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			httperr.Unauthorized(c, "invalid_authorization_header", "Authorization header must be a Bearer token.")
			c.Abort()
			return
		}

		id, err := tokens.Parse(strings.TrimSpace(parts[1]))
		if err != nil {
			httperr.Unauthorized(c, "invalid_token", "Invalid or expired token.")
			c.Abort()
			return
		}

		c.Set(ContextEmployeeID, id.EmployeeID)
		c.Set(ContextEmail, id.Email)
		c.Set(ContextIsAdmin, id.IsAdmin)

		c.Next()
	}
}

// EmployeeID returns the authenticated employee, if any.
func EmployeeID(c *gin.Context) (uint, bool) {
	v, ok := c.Get(ContextEmployeeID)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}
