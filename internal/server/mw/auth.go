package mw

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/baitolink/backend/internal/domain"
	"github.com/baitolink/backend/internal/security"
	"github.com/baitolink/backend/internal/server/resp"
)

const (
	CtxUserID = "user_id"
	CtxRole   = "role"
)

// requireRole parses the bearer token and gates on the caller's role.
func requireRole(jwtm *security.JWTManager, role domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := strings.TrimSpace(strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer "))
		if raw == "" {
			resp.Error(c, http.StatusUnauthorized, "missing bearer token")
			c.Abort()
			return
		}
		id, got, err := jwtm.ParseAccess(raw)
		if err != nil || id == uuid.Nil {
			resp.Error(c, http.StatusUnauthorized, "invalid token")
			c.Abort()
			return
		}
		if got != role {
			resp.Error(c, http.StatusForbidden, "forbidden for this role")
			c.Abort()
			return
		}
		c.Set(CtxUserID, id)
		c.Set(CtxRole, got)
		c.Next()
	}
}

func RequireWorker(jwtm *security.JWTManager) gin.HandlerFunc {
	return requireRole(jwtm, domain.RoleWorker)
}

func RequireOwner(jwtm *security.JWTManager) gin.HandlerFunc {
	return requireRole(jwtm, domain.RoleOwner)
}

// UserID returns the authenticated caller's id set by the auth middleware.
func UserID(c *gin.Context) uuid.UUID {
	v, ok := c.Get(CtxUserID)
	if !ok {
		return uuid.Nil
	}
	id, _ := v.(uuid.UUID)
	return id
}
