// Package notify records user-facing notifications. Delivery (push, in-app
// rendering) is handled elsewhere; this layer only persists the fact.
package notify

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Notification kinds written by the core services.
const (
	KindCancelledByWorker = "application_cancelled_by_worker"
	KindCancelledByOwner  = "application_cancelled_by_owner"
	KindPenaltyApplied    = "penalty_applied"
)

// Notifier is the narrow contract the services depend on.
type Notifier interface {
	Notify(ctx context.Context, recipientID uuid.UUID, kind, body string) error
}

// PGNotifier appends notifications to Postgres.
type PGNotifier struct {
	pg *pgxpool.Pool
}

func NewPGNotifier(pg *pgxpool.Pool) *PGNotifier {
	return &PGNotifier{pg: pg}
}

func (n *PGNotifier) Notify(ctx context.Context, recipientID uuid.UUID, kind, body string) error {
	const q = `
INSERT INTO notifications (recipient_id, kind, body, created_at)
VALUES ($1, $2, $3, now())`
	_, err := n.pg.Exec(ctx, q, recipientID, kind, body)
	return err
}
