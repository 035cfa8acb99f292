// Package score owns reliability score mutation. Scores live in [0,100] and
// change only through signed deltas recorded as events, never by direct
// assignment.
package score

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var ErrWorkerNotFound = errors.New("score: worker not found")

// Querier is satisfied by both *pgxpool.Pool and pgx.Tx so a delta can be
// applied inside a caller-owned transaction (cancellation and its penalty
// commit or roll back together).
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Ledger applies score deltas and freeze state against the workers table.
type Ledger struct{}

// NewLedger returns a ledger; it carries no connection so every call binds to
// the caller's Querier.
func NewLedger() *Ledger {
	return &Ledger{}
}

// ApplyDelta adjusts a worker's reliability score by delta, clamped to
// [0,100] inside a single UPDATE so concurrent penalty events cannot lose
// updates, and appends the event with its reason. Returns the new score.
func (l *Ledger) ApplyDelta(ctx context.Context, q Querier, workerID uuid.UUID, delta int, reason string) (int, error) {
	const upd = `
UPDATE workers
SET reliability_score = GREATEST(0, LEAST(100, reliability_score + $2)),
    updated_at = now()
WHERE id = $1
RETURNING reliability_score`

	var newScore int
	if err := q.QueryRow(ctx, upd, workerID, delta).Scan(&newScore); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, ErrWorkerNotFound
		}
		return 0, fmt.Errorf("apply score delta: %w", err)
	}

	const ins = `
INSERT INTO score_events (worker_id, delta, reason, created_at)
VALUES ($1, $2, $3, now())`
	if _, err := q.Exec(ctx, ins, workerID, delta, reason); err != nil {
		return 0, fmt.Errorf("record score event: %w", err)
	}
	return newScore, nil
}

// Freeze marks the account frozen until the given time.
func (l *Ledger) Freeze(ctx context.Context, q Querier, workerID uuid.UUID, until time.Time) error {
	const upd = `
UPDATE workers
SET is_account_frozen = true, frozen_until = $2, updated_at = now()
WHERE id = $1`
	tag, err := q.Exec(ctx, upd, workerID, until)
	if err != nil {
		return fmt.Errorf("freeze worker: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrWorkerNotFound
	}
	return nil
}

// UnfreezeExpired clears the frozen flag on accounts whose freeze window has
// passed; the flag is otherwise only logically expired. Returns the number of
// accounts unfrozen.
func (l *Ledger) UnfreezeExpired(ctx context.Context, q Querier) (int64, error) {
	const upd = `
UPDATE workers
SET is_account_frozen = false, frozen_until = NULL, updated_at = now()
WHERE is_account_frozen AND frozen_until IS NOT NULL AND frozen_until < now()`
	tag, err := q.Exec(ctx, upd)
	if err != nil {
		return 0, fmt.Errorf("unfreeze expired: %w", err)
	}
	return tag.RowsAffected(), nil
}
