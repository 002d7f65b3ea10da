package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"permitflow/internal/infrastructure/auth"
	"permitflow/internal/shared/actor"
	"permitflow/internal/shared/constants"
	"permitflow/internal/shared/logger"
	"permitflow/internal/shared/utils"
)

type AuthMiddleware struct {
	jwtService *auth.JWTService
	logger     logger.Interface
}

func NewAuthMiddleware(jwtService *auth.JWTService, logger logger.Interface) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
		logger:     logger,
	}
}

// RequireAuth verifies the bearer token and stores the resulting actor in
// the gin context. Handlers downstream read the actor, never raw claims.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.ErrorResponse(c, http.StatusUnauthorized, "missing authorization token")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			utils.ErrorResponse(c, http.StatusUnauthorized, "invalid authorization header format")
			c.Abort()
			return
		}

		claims, err := m.jwtService.Verify(parts[1])
		if err != nil {
			m.logger.Warnw("failed to verify token", "error", err)
			utils.ErrorResponse(c, http.StatusUnauthorized, "invalid or expired token")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyActor, actor.Actor{
			UserID: claims.UserID,
			OrgID:  claims.OrgID,
			Name:   claims.Name,
		})

		c.Next()
	}
}

// GetActor returns the authenticated actor stored by RequireAuth.
func GetActor(c *gin.Context) (actor.Actor, bool) {
	value, exists := c.Get(constants.ContextKeyActor)
	if !exists {
		return actor.Actor{}, false
	}
	a, ok := value.(actor.Actor)
	return a, ok
}
