package jobs

import (
	"time"

	"github.com/google/uuid"

	"github.com/baitolink/backend/internal/qualification"
)

// Job is one posted shift at a restaurant.
type Job struct {
	ID      uuid.UUID
	OwnerID uuid.UUID
	Title   string

	// ShiftDate is "2006-01-02", ShiftStartTime "15:04", both wall-clock in
	// the restaurant's Timezone (IANA name, e.g. "Asia/Tokyo").
	ShiftDate      string
	ShiftStartTime string
	Timezone       string

	Latitude  *float64
	Longitude *float64

	RequiredLanguage      string
	RequiredLanguageLevel string
	MinReliabilityScore   int

	CreatedAt time.Time
}

// Requirements maps the job row into the evaluator's input shape.
func (j *Job) Requirements() qualification.JobRequirements {
	return qualification.JobRequirements{
		RequiredLanguage:      qualification.Language(j.RequiredLanguage),
		RequiredLanguageLevel: j.RequiredLanguageLevel,
		MinReliabilityScore:   j.MinReliabilityScore,
	}
}

// QRRecord is the persisted check-in QR for a job; one live secret per job,
// upserted on reissue.
type QRRecord struct {
	JobID     uuid.UUID
	QRData    string
	SecretKey string
	IsActive  bool
	CreatedAt time.Time
}
