package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/baitolink/backend/internal/jobs"
	"github.com/baitolink/backend/internal/qualification"
	"github.com/baitolink/backend/internal/server/mw"
	"github.com/baitolink/backend/internal/server/resp"
	"github.com/baitolink/backend/internal/workers"
)

type QualificationHandler struct {
	logger    *zap.Logger
	workers   *workers.Repo
	jobs      *jobs.Repo
	evaluator *qualification.Evaluator
}

func NewQualificationHandler(logger *zap.Logger, workersRepo *workers.Repo, jobsRepo *jobs.Repo, evaluator *qualification.Evaluator) *QualificationHandler {
	return &QualificationHandler{
		logger:    logger,
		workers:   workersRepo,
		jobs:      jobsRepo,
		evaluator: evaluator,
	}
}

// Get evaluates the authenticated worker against one job and returns the
// per-criterion result plus the full list of feedback keys, so the client can
// show every blocker at once.
func (h *QualificationHandler) Get(c *gin.Context) {
	jobID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		resp.Error(c, http.StatusBadRequest, "invalid job id")
		return
	}
	workerID := mw.UserID(c)

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

	profile, err := h.workers.QualificationProfile(c.Request.Context(), workerID)
	if err != nil {
		h.logger.Error("profile load failed", zap.Error(err))
		resp.Error(c, http.StatusInternalServerError, "internal error")
		return
	}

	result := h.evaluator.Evaluate(profile, job.Requirements())
	resp.OK(c, gin.H{
		"qualification": result,
		"feedback_keys": qualification.Feedback(result),
		"feedback":      qualification.FeedbackText(result),
	})
}
