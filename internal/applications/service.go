package applications

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/baitolink/backend/internal/domain"
	"github.com/baitolink/backend/internal/jobs"
	"github.com/baitolink/backend/internal/notify"
	"github.com/baitolink/backend/internal/penalty"
	"github.com/baitolink/backend/internal/qrsign"
)

var ErrNotOwned = errors.New("application does not belong to caller")

// Store is the persistence contract the service needs; *Repo satisfies it.
type Store interface {
	GetByID(ctx context.Context, id uuid.UUID) (*Application, error)
	CancelByWorker(ctx context.Context, appID uuid.UUID, reason string, out penalty.Outcome, freezeUntil *time.Time) error
	CancelByOwner(ctx context.Context, appID uuid.UUID, reason string) error
	SetCheckedIn(ctx context.Context, appID uuid.UUID, at time.Time) error
	SetCheckedOut(ctx context.Context, appID uuid.UUID, at time.Time) error
}

// JobStore is the slice of the jobs repo the service consumes.
type JobStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*jobs.Job, error)
	GetQR(ctx context.Context, jobID uuid.UUID) (*jobs.QRRecord, error)
}

// CancelResult is the caller-facing outcome of a cancellation. Validation
// failures come back as Success=false with a message, not as errors, so
// handlers can render them without ceremony.
type CancelResult struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Penalty penalty.Outcome `json:"penalty"`
}

// CheckinResult mirrors CancelResult for the QR/GPS path.
type CheckinResult struct {
	Success   bool    `json:"success"`
	Message   string  `json:"message"`
	ErrorCode string  `json:"error_code,omitempty"`
	DistanceM float64 `json:"distance_m,omitempty"`
}

// Service orchestrates cancellation and check-in around the pure cores.
type Service struct {
	logger *zap.Logger

	store    Store
	jobs     JobStore
	signer   *qrsign.Signer
	notifier notify.Notifier

	gpsRadiusM float64
	now        func() time.Time
}

func NewService(logger *zap.Logger, store Store, jobStore JobStore, signer *qrsign.Signer, notifier notify.Notifier, gpsRadiusM float64) *Service {
	return &Service{
		logger:     logger,
		store:      store,
		jobs:       jobStore,
		signer:     signer,
		notifier:   notifier,
		gpsRadiusM: gpsRadiusM,
		now:        time.Now,
	}
}

// CancelByWorker applies the tiered penalty for a worker-initiated
// cancellation. Status change, score delta, and freeze land in one
// transaction inside the store.
func (s *Service) CancelByWorker(ctx context.Context, appID, workerID uuid.UUID, reason string) (CancelResult, error) {
	app, err := s.store.GetByID(ctx, appID)
	if err != nil {
		return CancelResult{}, err
	}
	if app.WorkerID != workerID {
		return CancelResult{}, ErrNotOwned
	}
	if app.Status == domain.ApplicationCancelled {
		return CancelResult{}, ErrAlreadyCancelled
	}

	job, err := s.jobs.FindByID(ctx, app.JobID)
	if err != nil {
		return CancelResult{}, err
	}
	hours, err := penalty.HoursUntilShift(job.ShiftDate, job.ShiftStartTime, jobLocation(job), s.now())
	if err != nil {
		return CancelResult{}, err
	}
	out := penalty.WorkerPenalty(hours)

	var freezeUntil *time.Time
	if out.Freeze {
		t := s.now().Add(penalty.FreezeDuration)
		freezeUntil = &t
	}

	if err := s.store.CancelByWorker(ctx, appID, reason, out, freezeUntil); err != nil {
		return CancelResult{}, err
	}

	if err := s.notifier.Notify(ctx, job.OwnerID, notify.KindCancelledByWorker, "a worker cancelled their application for your shift"); err != nil {
		s.logger.Warn("owner notification failed", zap.Error(err))
	}
	if out.Points < 0 {
		body := fmt.Sprintf("cancellation penalty applied: %d points (%s)", out.Points, out.Tier)
		if err := s.notifier.Notify(ctx, workerID, notify.KindPenaltyApplied, body); err != nil {
			s.logger.Warn("penalty notification failed", zap.Error(err))
		}
	}

	return CancelResult{
		Success: true,
		Message: cancelMessage(out),
		Penalty: out,
	}, nil
}

// CancelByOwner cancels without penalty. When the shift is less than an hour
// away the worker notification carries a late-cancellation note; the worker's
// score and freeze state are never touched.
func (s *Service) CancelByOwner(ctx context.Context, appID, ownerID uuid.UUID, reason string) (CancelResult, error) {
	app, err := s.store.GetByID(ctx, appID)
	if err != nil {
		return CancelResult{}, err
	}

	job, err := s.jobs.FindByID(ctx, app.JobID)
	if err != nil {
		return CancelResult{}, err
	}
	if job.OwnerID != ownerID {
		return CancelResult{}, ErrNotOwned
	}
	if app.Status == domain.ApplicationCancelled {
		return CancelResult{}, ErrAlreadyCancelled
	}

	if err := s.store.CancelByOwner(ctx, appID, reason); err != nil {
		return CancelResult{}, err
	}

	hours, err := penalty.HoursUntilShift(job.ShiftDate, job.ShiftStartTime, jobLocation(job), s.now())
	body := "the restaurant cancelled your shift"
	if err == nil && penalty.OwnerLateCancellation(hours) {
		body += " (late cancellation)"
	}
	if err := s.notifier.Notify(ctx, app.WorkerID, notify.KindCancelledByOwner, body); err != nil {
		s.logger.Warn("cancellation notification failed", zap.Error(err))
	}

	return CancelResult{Success: true, Message: "application cancelled, no penalty"}, nil
}

// CheckIn validates a scanned QR against the job's currently stored secret,
// optionally gates on GPS proximity, and stamps the check-in.
func (s *Service) CheckIn(ctx context.Context, appID, workerID uuid.UUID, qrRaw string, workerCoord *qrsign.Coordinate) (CheckinResult, error) {
	app, err := s.store.GetByID(ctx, appID)
	if err != nil {
		return CheckinResult{}, err
	}
	if app.WorkerID != workerID {
		return CheckinResult{}, ErrNotOwned
	}

	rec, err := s.jobs.GetQR(ctx, app.JobID)
	if err != nil {
		return CheckinResult{}, err
	}

	v := s.signer.Validate(qrRaw, rec.SecretKey)
	if !v.Valid {
		return CheckinResult{Message: v.Message, ErrorCode: v.ErrorCode}, nil
	}
	if v.JobID != app.JobID.String() {
		return CheckinResult{Message: "QR does not match this job", ErrorCode: qrsign.CodeInvalidSignature}, nil
	}

	job, err := s.jobs.FindByID(ctx, app.JobID)
	if err != nil {
		return CheckinResult{}, err
	}
	if workerCoord != nil && job.Latitude != nil && job.Longitude != nil {
		g := qrsign.ValidateGPS(*workerCoord, qrsign.Coordinate{Latitude: *job.Latitude, Longitude: *job.Longitude}, s.gpsRadiusM)
		if !g.Valid {
			return CheckinResult{Message: g.Message, ErrorCode: g.ErrorCode, DistanceM: g.DistanceM}, nil
		}
	}

	if err := s.store.SetCheckedIn(ctx, appID, s.now()); err != nil {
		return CheckinResult{}, err
	}
	return CheckinResult{Success: true, Message: "checked in"}, nil
}

// CheckOut stamps the check-out for a checked-in application.
func (s *Service) CheckOut(ctx context.Context, appID, workerID uuid.UUID) (CheckinResult, error) {
	app, err := s.store.GetByID(ctx, appID)
	if err != nil {
		return CheckinResult{}, err
	}
	if app.WorkerID != workerID {
		return CheckinResult{}, ErrNotOwned
	}
	if err := s.store.SetCheckedOut(ctx, appID, s.now()); err != nil {
		return CheckinResult{}, err
	}
	return CheckinResult{Success: true, Message: "checked out"}, nil
}

func jobLocation(job *jobs.Job) *time.Location {
	if job.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(job.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func cancelMessage(out penalty.Outcome) string {
	switch out.Tier {
	case penalty.TierFree:
		return "application cancelled, no penalty"
	case penalty.TierNoShow:
		return fmt.Sprintf("no-show recorded: %d points and a 7-day freeze", out.Points)
	default:
		return fmt.Sprintf("application cancelled with a %d point penalty", out.Points)
	}
}
