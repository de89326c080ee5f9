package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nthumods/mods-backend/internal/response"
	"github.com/nthumods/mods-backend/internal/service"
)

// AdminKeyHeader carries the plaintext admin key.
const AdminKeyHeader = "X-Admin-Key"

// RequireAdminKey guards maintenance routes with the bcrypt-hashed admin key.
func RequireAdminKey(authService *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader(AdminKeyHeader)
		if key == "" {
			response.AbortFail(c, http.StatusUnauthorized, response.ErrAdminKeyRequired)
			return
		}

		err := authService.CheckAdminKey(key)
		switch {
		case errors.Is(err, service.ErrAdminDisabled):
			response.AbortFail(c, http.StatusForbidden, response.ErrAdminDisabled)
			return
		case err != nil:
			response.AbortFail(c, http.StatusUnauthorized, response.ErrAdminKeyInvalid)
			return
		}

		c.Next()
	}
}
