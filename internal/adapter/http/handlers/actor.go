package handlers

import (
	"net/http"
	"strings"

	"cremacao_pet/internal/domain/entities"
	"cremacao_pet/pkg"

	"github.com/gin-gonic/gin"
)

// Identity headers set by the gateway in front of the service.
const (
	HeaderUserID   = "X-User-ID"
	HeaderUserName = "X-User-Name"
	HeaderUserRole = "X-User-Role"
)

const actorContextKey = "actor"

var errMissingActor = pkg.NewDomainErrorSimple("MISSING_ACTOR", "Missing or invalid X-User-Role header", http.StatusUnauthorized)

// ActorMiddleware resolves the caller from the identity headers. The system role is reserved for
// the scheduling sweep and is refused here.
func ActorMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		role := entities.Role(strings.ToLower(strings.TrimSpace(c.GetHeader(HeaderUserRole))))
		if !role.IsValid() || role == entities.RoleSystem {
			c.AbortWithStatusJSON(errMissingActor.HTTPStatus, errMissingActor.ToHTTPError())
			return
		}
		c.Set(actorContextKey, entities.Actor{
			ID:   strings.TrimSpace(c.GetHeader(HeaderUserID)),
			Name: strings.TrimSpace(c.GetHeader(HeaderUserName)),
			Role: role,
		})
		c.Next()
	}
}

func actorFrom(c *gin.Context) entities.Actor {
	v, _ := c.Get(actorContextKey)
	actor, _ := v.(entities.Actor)
	return actor
}
