package middleware

import (
	"net/http"

	"github.com/clubops/backend/internal/domain/identity"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RoleConfig holds configuration for role guard middleware
type RoleConfig struct {
	// Logger for middleware logging
	Logger *zap.Logger
	// OnDenied is called when access is denied (optional)
	OnDenied func(c *gin.Context, requiredRoles []identity.Role)
}

// RequireRole creates middleware that allows only the listed roles.
// The JWT middleware must run first so the role claim is in context.
func RequireRole(roles ...identity.Role) gin.HandlerFunc {
	return RequireRoleWithConfig(RoleConfig{}, roles...)
}

// RequireRoleWithConfig creates role guard middleware with custom config
func RequireRoleWithConfig(cfg RoleConfig, roles ...identity.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetJWTClaims(c)
		if claims == nil {
			handleRoleDenied(c, cfg, roles, "No authentication claims found")
			return
		}

		for _, role := range roles {
			if claims.Role == string(role) {
				if cfg.Logger != nil {
					cfg.Logger.Debug("Role check passed",
						zap.String("user_id", claims.UserID),
						zap.String("role", claims.Role),
					)
				}
				c.Next()
				return
			}
		}

		handleRoleDenied(c, cfg, roles, "User role not permitted for this route")
	}
}

// RequireSuperAdmin restricts a route to platform super admins
func RequireSuperAdmin() gin.HandlerFunc {
	return RequireRole(identity.RoleSuperAdmin)
}

// RequireClubAdmin restricts a route to club administrators
func RequireClubAdmin() gin.HandlerFunc {
	return RequireRole(identity.RoleClubAdmin)
}

// RequireClubStaff restricts a route to club administrators and coaches
func RequireClubStaff() gin.HandlerFunc {
	return RequireRole(identity.RoleClubAdmin, identity.RoleCoach)
}

// handleRoleDenied handles role denied scenarios
func handleRoleDenied(c *gin.Context, cfg RoleConfig, roles []identity.Role, reason string) {
	if cfg.OnDenied != nil {
		cfg.OnDenied(c, roles)
		return
	}

	if cfg.Logger != nil {
		userID := ""
		userRole := ""
		if claims := GetJWTClaims(c); claims != nil {
			userID = claims.UserID
			userRole = claims.Role
		}

		required := make([]string, len(roles))
		for i, r := range roles {
			required[i] = string(r)
		}

		cfg.Logger.Warn("Role check denied",
			zap.String("reason", reason),
			zap.String("user_id", userID),
			zap.String("user_role", userRole),
			zap.Strings("required_roles", required),
			zap.String("path", c.Request.URL.Path),
			zap.String("method", c.Request.Method),
		)
	}

	c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
		"success": false,
		"error": gin.H{
			"code":    "ERR_FORBIDDEN",
			"message": "Access denied: insufficient role",
		},
	})
}

// HasRole is a helper to check the authenticated user's role in handlers
func HasRole(c *gin.Context, role identity.Role) bool {
	claims := GetJWTClaims(c)
	if claims == nil {
		return false
	}
	return claims.Role == string(role)
}
