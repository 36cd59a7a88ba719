package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/uni-advisory-api/internal/service"
	appErrors "github.com/noah-isme/uni-advisory-api/pkg/errors"
	"github.com/noah-isme/uni-advisory-api/pkg/response"
)

// ContextAdvisorKey is the gin context key storing JWT claims.
const ContextAdvisorKey = "currentAdvisor"

// JWT protects routes by requiring a valid advisor access token.
func JWT(authService *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			response.Error(c, appErrors.Clone(appErrors.ErrUnauthorized, "invalid authorization header"))
			c.Abort()
			return
		}

		claims, err := authService.ValidateToken(parts[1])
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}

		c.Set(ContextAdvisorKey, claims)
		c.Next()
	}
}
