package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/baitolink/backend/internal/domain"
	"github.com/baitolink/backend/internal/owners"
	"github.com/baitolink/backend/internal/security"
	"github.com/baitolink/backend/internal/server/resp"
	"github.com/baitolink/backend/internal/store"
	"github.com/baitolink/backend/internal/workers"
)

type AuthHandler struct {
	logger  *zap.Logger
	workers *workers.Repo
	owners  *owners.Repo
	jwtm    *security.JWTManager
	refresh *store.RefreshStore
}

func NewAuthHandler(logger *zap.Logger, workersRepo *workers.Repo, ownersRepo *owners.Repo, jwtm *security.JWTManager, refreshStore *store.RefreshStore) *AuthHandler {
	return &AuthHandler{
		logger:  logger,
		workers: workersRepo,
		owners:  ownersRepo,
		jwtm:    jwtm,
		refresh: refreshStore,
	}
}

type loginReq struct {
	Phone    string `json:"phone" binding:"required"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role" binding:"required"` // worker | owner
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.Error(c, http.StatusBadRequest, "invalid payload")
		return
	}

	var (
		id   uuid.UUID
		hash string
		role domain.Role
	)
	switch domain.Role(req.Role) {
	case domain.RoleWorker:
		w, err := h.workers.FindByPhone(c.Request.Context(), req.Phone)
		if err != nil {
			if errors.Is(err, workers.ErrNotFound) {
				resp.Error(c, http.StatusUnauthorized, "invalid credentials")
				return
			}
			h.logger.Error("worker lookup failed", zap.Error(err))
			resp.Error(c, http.StatusInternalServerError, "internal error")
			return
		}
		id, hash, role = w.ID, w.PasswordHash, domain.RoleWorker
	case domain.RoleOwner:
		o, err := h.owners.FindByPhone(c.Request.Context(), req.Phone)
		if err != nil {
			if errors.Is(err, owners.ErrNotFound) {
				resp.Error(c, http.StatusUnauthorized, "invalid credentials")
				return
			}
			h.logger.Error("owner lookup failed", zap.Error(err))
			resp.Error(c, http.StatusInternalServerError, "internal error")
			return
		}
		id, hash, role = o.ID, o.PasswordHash, domain.RoleOwner
	default:
		resp.Error(c, http.StatusBadRequest, "unknown role")
		return
	}

	if !security.CheckPassword(hash, req.Password) {
		resp.Error(c, http.StatusUnauthorized, "invalid credentials")
		return
	}

	tokens, refreshClaims, err := h.jwtm.Issue(role, id)
	if err != nil {
		h.logger.Error("token issue failed", zap.Error(err))
		resp.Error(c, http.StatusInternalServerError, "internal error")
		return
	}
	if err := h.refresh.Put(c.Request.Context(), refreshClaims.UserID, refreshClaims.JTI); err != nil {
		h.logger.Error("refresh store failed", zap.Error(err))
		resp.Error(c, http.StatusInternalServerError, "internal error")
		return
	}

	resp.OK(c, tokens)
}

type refreshReq struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	var req refreshReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.Error(c, http.StatusBadRequest, "invalid payload")
		return
	}

	claims, err := h.jwtm.ParseRefresh(req.RefreshToken)
	if err != nil {
		resp.Error(c, http.StatusUnauthorized, "invalid refresh token")
		return
	}
	if err := h.refresh.Consume(c.Request.Context(), claims.UserID, claims.JTI); err != nil {
		resp.Error(c, http.StatusUnauthorized, "refresh token already used or revoked")
		return
	}

	uid, err := uuid.Parse(claims.UserID)
	if err != nil {
		resp.Error(c, http.StatusUnauthorized, "invalid refresh token")
		return
	}
	tokens, newClaims, err := h.jwtm.Issue(domain.Role(claims.Role), uid)
	if err != nil {
		h.logger.Error("token issue failed", zap.Error(err))
		resp.Error(c, http.StatusInternalServerError, "internal error")
		return
	}
	if err := h.refresh.Put(c.Request.Context(), newClaims.UserID, newClaims.JTI); err != nil {
		h.logger.Error("refresh store failed", zap.Error(err))
		resp.Error(c, http.StatusInternalServerError, "internal error")
		return
	}

	resp.OK(c, tokens)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	var req refreshReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.Error(c, http.StatusBadRequest, "invalid payload")
		return
	}
	claims, err := h.jwtm.ParseRefresh(req.RefreshToken)
	if err != nil {
		// Already invalid; treat logout as done.
		resp.OK(c, gin.H{"event": "logged_out"})
		return
	}
	_ = h.refresh.Consume(c.Request.Context(), claims.UserID, claims.JTI)
	resp.OK(c, gin.H{"event": "logged_out"})
}
