package workers

import (
	"time"

	"github.com/google/uuid"

	"github.com/baitolink/backend/internal/domain"
)

// Worker is one hourly worker account.
type Worker struct {
	ID           uuid.UUID
	Phone        string
	PasswordHash string
	Name         string

	ReliabilityScore int
	IsAccountFrozen  bool
	FrozenUntil      *time.Time
	IsVerified       bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// LanguageSkill is one certified language on a worker profile; unique per
// (worker, language).
type LanguageSkill struct {
	WorkerID uuid.UUID
	Language string
	Level    string
	Status   domain.VerificationStatus
}
