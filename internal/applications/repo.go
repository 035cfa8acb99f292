package applications

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/baitolink/backend/internal/domain"
	"github.com/baitolink/backend/internal/penalty"
	"github.com/baitolink/backend/internal/score"
)

var (
	ErrNotFound         = errors.New("application not found")
	ErrAlreadyCancelled = errors.New("application already cancelled")
	ErrAlreadyCheckedIn = errors.New("application already checked in")
	ErrNotCheckedIn     = errors.New("application not checked in")
)

type Repo struct {
	pg     *pgxpool.Pool
	ledger *score.Ledger
}

func NewRepo(pg *pgxpool.Pool, ledger *score.Ledger) *Repo {
	return &Repo{pg: pg, ledger: ledger}
}

func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*Application, error) {
	const q = `
SELECT id, job_id, worker_id, status, cancelled_by, cancellation_reason,
       penalty_points, checked_in_at, checked_out_at, created_at, updated_at
FROM applications
WHERE id = $1
LIMIT 1`
	var a Application
	err := r.pg.QueryRow(ctx, q, id).Scan(
		&a.ID, &a.JobID, &a.WorkerID, &a.Status, &a.CancelledBy, &a.CancellationReason,
		&a.PenaltyPoints, &a.CheckedInAt, &a.CheckedOutAt, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

// CancelByWorker records the cancellation and applies its penalty as one
// transaction: the status change, the score delta, and the freeze commit or
// roll back together, so a worker is never penalized without the cancellation
// recorded (or vice versa).
func (r *Repo) CancelByWorker(ctx context.Context, appID uuid.UUID, reason string, out penalty.Outcome, freezeUntil *time.Time) error {
	tx, err := r.pg.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin cancel tx: %w", err)
	}
	defer tx.Rollback(ctx)

	workerID, err := r.markCancelled(ctx, tx, appID, domain.CancelledByWorker, reason, out.Points)
	if err != nil {
		return err
	}

	if out.Points < 0 {
		if _, err := r.ledger.ApplyDelta(ctx, tx, workerID, out.Points, "cancellation:"+string(out.Tier)); err != nil {
			return err
		}
	}
	if out.Freeze && freezeUntil != nil {
		if err := r.ledger.Freeze(ctx, tx, workerID, *freezeUntil); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

// CancelByOwner records an owner-side cancellation; the worker's score and
// freeze state are never touched.
func (r *Repo) CancelByOwner(ctx context.Context, appID uuid.UUID, reason string) error {
	tx, err := r.pg.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin cancel tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := r.markCancelled(ctx, tx, appID, domain.CancelledByOwner, reason, 0); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// markCancelled flips the status with a guard against double cancellation:
// the WHERE clause refuses rows already cancelled, so re-cancelling fails
// loudly instead of double-penalizing.
func (r *Repo) markCancelled(ctx context.Context, tx pgx.Tx, appID uuid.UUID, by domain.CancelledBy, reason string, points int) (uuid.UUID, error) {
	const q = `
UPDATE applications
SET status = 'cancelled', cancelled_by = $2, cancellation_reason = $3,
    penalty_points = $4, updated_at = now()
WHERE id = $1 AND status <> 'cancelled'
RETURNING worker_id`

	magnitude := points
	if magnitude < 0 {
		magnitude = -magnitude
	}

	var workerID uuid.UUID
	err := tx.QueryRow(ctx, q, appID, by, reason, magnitude).Scan(&workerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Either missing or already cancelled; the service pre-checks
			// existence, so this is the idempotency guard firing.
			return uuid.Nil, ErrAlreadyCancelled
		}
		return uuid.Nil, fmt.Errorf("mark cancelled: %w", err)
	}
	return workerID, nil
}

// SetCheckedIn stamps the check-in time; at most one check-in per application.
func (r *Repo) SetCheckedIn(ctx context.Context, appID uuid.UUID, at time.Time) error {
	const q = `
UPDATE applications
SET status = 'checked_in', checked_in_at = $2, updated_at = now()
WHERE id = $1 AND status = 'approved' AND checked_in_at IS NULL`
	tag, err := r.pg.Exec(ctx, q, appID, at)
	if err != nil {
		return fmt.Errorf("set checked in: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrAlreadyCheckedIn
	}
	return nil
}

func (r *Repo) SetCheckedOut(ctx context.Context, appID uuid.UUID, at time.Time) error {
	const q = `
UPDATE applications
SET status = 'completed', checked_out_at = $2, updated_at = now()
WHERE id = $1 AND status = 'checked_in' AND checked_out_at IS NULL`
	tag, err := r.pg.Exec(ctx, q, appID, at)
	if err != nil {
		return fmt.Errorf("set checked out: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotCheckedIn
	}
	return nil
}
