package middleware

import (
	"github.com/gin-gonic/gin"

	"library-backend/internal/shared/response"
)

// RequireRole chặn request nếu role trong context (set bởi AuthMiddleware)
// không nằm trong danh sách cho phép.
func RequireRole(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}

	return func(c *gin.Context) {
		roleValue, exists := c.Get(CtxRole)
		if !exists {
			response.Forbidden(c, "access denied: missing role")
			c.Abort()
			return
		}

		role, ok := roleValue.(string)
		if !ok || !allowed[role] {
			response.Forbidden(c, "access denied: insufficient role")
			c.Abort()
			return
		}

		c.Next()
	}
}

// AdminMiddleware checks if user has admin role.
func AdminMiddleware() gin.HandlerFunc {
	return RequireRole("admin")
}

// StaffMiddleware cho phép admin và librarian (mutating routes).
func StaffMiddleware() gin.HandlerFunc {
	return RequireRole("admin", "librarian")
}
