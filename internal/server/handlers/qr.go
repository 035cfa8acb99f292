package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/baitolink/backend/internal/jobs"
	"github.com/baitolink/backend/internal/qrsign"
	"github.com/baitolink/backend/internal/server/mw"
	"github.com/baitolink/backend/internal/server/resp"
)

type QRHandler struct {
	logger *zap.Logger
	jobs   *jobs.Repo
	signer *qrsign.Signer
}

func NewQRHandler(logger *zap.Logger, jobsRepo *jobs.Repo, signer *qrsign.Signer) *QRHandler {
	return &QRHandler{logger: logger, jobs: jobsRepo, signer: signer}
}

// Generate issues (or reissues) the signed check-in QR for one of the owner's
// jobs. The upsert keeps a single live secret per job, so any previously
// issued QR stops validating.
func (h *QRHandler) Generate(c *gin.Context) {
	jobID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		resp.Error(c, http.StatusBadRequest, "invalid job id")
		return
	}
	ownerID := mw.UserID(c)

	job, err := h.jobs.FindByID(c.Request.Context(), jobID)
	if err != nil {
		if errors.Is(err, jobs.ErrNotFound) {
			resp.Error(c, http.StatusNotFound, "job not found")
			return
		}
		h.logger.Error("job lookup failed", zap.Error(err))
		resp.Error(c, http.StatusInternalServerError, "internal error")
		return
	}
	if job.OwnerID != ownerID {
		resp.Error(c, http.StatusForbidden, "job does not belong to you")
		return
	}

	gen, err := h.signer.Generate(jobID.String(), ownerID.String())
	if err != nil {
		h.logger.Error("qr generation failed", zap.Error(err))
		resp.Error(c, http.StatusInternalServerError, "internal error")
		return
	}
	if err := h.jobs.UpsertQR(c.Request.Context(), jobID, gen.QRData, gen.SecretKey); err != nil {
		h.logger.Error("qr persist failed", zap.Error(err))
		resp.Error(c, http.StatusInternalServerError, "internal error")
		return
	}

	resp.OK(c, gin.H{
		"qr_data_url": gen.QRDataURL,
		"qr_data":     gen.QRData,
		"secret_key":  gen.SecretKey,
		"created_at":  gen.CreatedAt,
	})
}
