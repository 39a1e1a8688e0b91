package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"bluemoon-http-service/internal/domain/services"
	"bluemoon-http-service/internal/error/code"
	"bluemoon-http-service/internal/error/response"
)

// Context keys set by RequireRoles
const (
	ContextUserID   = "user_id"
	ContextUsername = "username"
	ContextRole     = "role"
	ContextClaims   = "claims"
)

var jwtService services.InterfaceJWTService

// InitAuthMiddleware sets the token verifier used by RequireRoles
func InitAuthMiddleware(svc services.InterfaceJWTService) {
	jwtService = svc
}

// extractToken strips the "Bearer " prefix; anything else is not a bearer token
func extractToken(authHeader string) string {
	if len(authHeader) > 7 && strings.EqualFold(authHeader[:7], "Bearer ") {
		return strings.TrimSpace(authHeader[7:])
	}
	return ""
}

// RequireRoles validates the bearer access token and checks the role claim.
// With no roles any authenticated staff account passes.
func RequireRoles(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(roles))
	for _, role := range roles {
		allowed[role] = struct{}{}
	}

	return func(c *gin.Context) {
		tokenString := extractToken(c.GetHeader("Authorization"))
		if tokenString == "" || jwtService == nil {
			response.FailWithMessage(c, code.ErrTokenInvalid, "Authorization header must be Bearer {token}", nil)
			c.Abort()
			return
		}

		claims, err := jwtService.ExtractClaims(tokenString)
		if err != nil || claims.TokenType != services.TokenTypeAccess {
			response.AbortWithFail(c, code.ErrTokenInvalid)
			return
		}

		if len(allowed) > 0 {
			if _, ok := allowed[claims.Role]; !ok {
				response.AbortWithFail(c, code.ErrForbidden)
				return
			}
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextUsername, claims.Username)
		c.Set(ContextRole, claims.Role)
		c.Set(ContextClaims, claims)
		c.Next()
	}
}

// CurrentUserID returns the authenticated admin id, empty outside RequireRoles
func CurrentUserID(c *gin.Context) string {
	return c.GetString(ContextUserID)
}
