package middleware

import (
	"github.com/gin-gonic/gin"

	appErrors "github.com/controledu/controledu-api/pkg/errors"
	"github.com/controledu/controledu-api/pkg/response"
)

// RequireRol enforces role-based access on routes behind Session.
func RequireRol(allowed ...string) gin.HandlerFunc {
	allowedRoles := make(map[string]struct{}, len(allowed))
	for _, rol := range allowed {
		allowedRoles[rol] = struct{}{}
	}

	return func(c *gin.Context) {
		session, ok := SessionFrom(c)
		if !ok {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}

		if _, permitted := allowedRoles[session.Rol]; !permitted {
			response.Error(c, appErrors.Clone(appErrors.ErrForbidden, "no tiene permisos para acceder a este recurso"))
			c.Abort()
			return
		}

		c.Next()
	}
}
