package applications

import (
	"time"

	"github.com/google/uuid"

	"github.com/baitolink/backend/internal/domain"
)

// Application is one worker's application to one job.
type Application struct {
	ID       uuid.UUID
	JobID    uuid.UUID
	WorkerID uuid.UUID

	Status             domain.ApplicationStatus
	CancelledBy        *domain.CancelledBy
	CancellationReason *string
	// PenaltyPoints stores the absolute magnitude of the applied penalty.
	PenaltyPoints int

	CheckedInAt  *time.Time
	CheckedOutAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}
