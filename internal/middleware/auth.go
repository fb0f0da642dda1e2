package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"

	"clinic-app-server/internal/models"
	"clinic-app-server/internal/session"
	"clinic-app-server/internal/utils"
)

// SessionMiddleware creates a guard that resolves the session cookie to an
// account via the injected store. Requests without a live session are
// rejected uniformly with 401.
func SessionMiddleware(store session.Store, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(cookieName)
		if err != nil || token == "" {
			utils.Unauthorized(c, "Not authenticated")
			c.Abort()
			return
		}

		user, err := store.Resolve(token)
		if err != nil {
			if errors.Is(err, session.ErrNoSession) {
				utils.Unauthorized(c, "Not authenticated")
			} else {
				utils.InternalServerError(c, "Failed to resolve session: "+err.Error())
			}
			c.Abort()
			return
		}

		// Set account information in context for downstream handlers
		c.Set("currentUser", user)
		c.Set("userRole", user.Role)

		c.Next()
	}
}

// RoleMiddleware creates a middleware for role-based authorization.
// It should be used *after* SessionMiddleware.
func RoleMiddleware(allowedRoles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := GetUserRoleFromContext(c)
		if !ok {
			utils.InternalServerError(c, "User role not found in context. SessionMiddleware might be missing.")
			c.Abort()
			return
		}

		for _, allowed := range allowedRoles {
			if role == allowed {
				c.Next()
				return
			}
		}

		utils.Forbidden(c, "You do not have permission to access this resource.")
		c.Abort()
	}
}

// GetCurrentUser returns the account resolved by SessionMiddleware.
func GetCurrentUser(c *gin.Context) (*models.User, bool) {
	v, exists := c.Get("currentUser")
	if !exists {
		return nil, false
	}
	user, ok := v.(*models.User)
	return user, ok
}

// GetUserRoleFromContext returns the authenticated account's role.
func GetUserRoleFromContext(c *gin.Context) (models.Role, bool) {
	userRole, exists := c.Get("userRole")
	if !exists {
		return "", false
	}
	role, ok := userRole.(models.Role)
	return role, ok
}
