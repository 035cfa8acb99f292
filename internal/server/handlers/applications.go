package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/baitolink/backend/internal/applications"
	"github.com/baitolink/backend/internal/qrsign"
	"github.com/baitolink/backend/internal/server/mw"
	"github.com/baitolink/backend/internal/server/resp"
)

type ApplicationHandler struct {
	logger *zap.Logger
	svc    *applications.Service
}

func NewApplicationHandler(logger *zap.Logger, svc *applications.Service) *ApplicationHandler {
	return &ApplicationHandler{logger: logger, svc: svc}
}

type cancelReq struct {
	Reason string `json:"reason"`
}

// CancelByWorker runs the penalty-bearing cancellation path.
func (h *ApplicationHandler) CancelByWorker(c *gin.Context) {
	appID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		resp.Error(c, http.StatusBadRequest, "invalid application id")
		return
	}
	var req cancelReq
	_ = c.ShouldBindJSON(&req)

	result, err := h.svc.CancelByWorker(c.Request.Context(), appID, mw.UserID(c), req.Reason)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	resp.OK(c, result)
}

// CancelByOwner is the penalty-free owner path.
func (h *ApplicationHandler) CancelByOwner(c *gin.Context) {
	appID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		resp.Error(c, http.StatusBadRequest, "invalid application id")
		return
	}
	var req cancelReq
	_ = c.ShouldBindJSON(&req)

	result, err := h.svc.CancelByOwner(c.Request.Context(), appID, mw.UserID(c), req.Reason)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	resp.OK(c, result)
}

type checkinReq struct {
	QRData    string   `json:"qr_data" binding:"required"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

// CheckIn consumes a scanned QR (plus optional GPS fix) for the worker's
// application. QR/GPS rejections come back inside the result body, not as
// HTTP errors.
func (h *ApplicationHandler) CheckIn(c *gin.Context) {
	appID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		resp.Error(c, http.StatusBadRequest, "invalid application id")
		return
	}
	var req checkinReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.Error(c, http.StatusBadRequest, "invalid payload")
		return
	}

	var coord *qrsign.Coordinate
	if req.Latitude != nil && req.Longitude != nil {
		coord = &qrsign.Coordinate{Latitude: *req.Latitude, Longitude: *req.Longitude}
	}

	result, err := h.svc.CheckIn(c.Request.Context(), appID, mw.UserID(c), req.QRData, coord)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	resp.OK(c, result)
}

func (h *ApplicationHandler) CheckOut(c *gin.Context) {
	appID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		resp.Error(c, http.StatusBadRequest, "invalid application id")
		return
	}
	result, err := h.svc.CheckOut(c.Request.Context(), appID, mw.UserID(c))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	resp.OK(c, result)
}

// writeServiceError maps service sentinels onto HTTP statuses.
func (h *ApplicationHandler) writeServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, applications.ErrNotFound):
		resp.Error(c, http.StatusNotFound, "application not found")
	case errors.Is(err, applications.ErrNotOwned):
		resp.Error(c, http.StatusForbidden, "application does not belong to you")
	case errors.Is(err, applications.ErrAlreadyCancelled):
		resp.Error(c, http.StatusConflict, "application already cancelled")
	case errors.Is(err, applications.ErrAlreadyCheckedIn):
		resp.Error(c, http.StatusConflict, "already checked in")
	case errors.Is(err, applications.ErrNotCheckedIn):
		resp.Error(c, http.StatusConflict, "not checked in")
	default:
		h.logger.Error("application operation failed", zap.Error(err))
		resp.Error(c, http.StatusInternalServerError, "internal error")
	}
}
