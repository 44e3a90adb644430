package middleware

import (
	"net/http"

	"skillink/internal/core/domain"
	"skillink/pkg/apierrors"
	"skillink/pkg/auth"

	"github.com/gin-gonic/gin"
)

const actorKey = "actor"

// AuthMiddleware attaches the caller's actor to the context. A request
// without a token is a guest; a token that fails to parse is rejected.
func AuthMiddleware(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := auth.ExtractToken(c.Request)
		if token == "" {
			c.Set(actorKey, domain.Guest())
			c.Next()
			return
		}

		actor, err := auth.ParseJWT(token, jwtSecret)
		if err != nil {
			c.AbortWithStatusJSON(
				http.StatusUnauthorized,
				apierrors.CreateError(http.StatusUnauthorized, apierrors.MsgUnauthorized, GetLang(c)),
			)
			return
		}

		c.Set(actorKey, actor)
		c.Next()
	}
}

func GetActor(c *gin.Context) domain.Actor {
	if value, exists := c.Get(actorKey); exists {
		if actor, ok := value.(domain.Actor); ok {
			return actor
		}
	}
	return domain.Guest()
}
