package jobs

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNotFound   = errors.New("job not found")
	ErrQRNotFound = errors.New("job has no active QR")
)

type Repo struct {
	pg *pgxpool.Pool
}

func NewRepo(pg *pgxpool.Pool) *Repo {
	return &Repo{pg: pg}
}

func (r *Repo) FindByID(ctx context.Context, id uuid.UUID) (*Job, error) {
	const q = `
SELECT id, owner_id, title, shift_date, shift_start_time, timezone,
       latitude, longitude, required_language, required_language_level,
       min_reliability_score, created_at
FROM jobs
WHERE id = $1
LIMIT 1`
	var j Job
	err := r.pg.QueryRow(ctx, q, id).Scan(
		&j.ID, &j.OwnerID, &j.Title, &j.ShiftDate, &j.ShiftStartTime, &j.Timezone,
		&j.Latitude, &j.Longitude, &j.RequiredLanguage, &j.RequiredLanguageLevel,
		&j.MinReliabilityScore, &j.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &j, nil
}

// UpsertQR stores the freshly issued QR for a job, superseding any prior one.
// The unique job_id key makes reissue an upsert; the validator then checks the
// presented secret against this row, so old QR codes stop working even though
// their signatures still verify.
func (r *Repo) UpsertQR(ctx context.Context, jobID uuid.UUID, qrData, secretKey string) error {
	const q = `
INSERT INTO job_qr_codes (job_id, qr_data, secret_key, is_active, created_at)
VALUES ($1, $2, $3, true, now())
ON CONFLICT (job_id) DO UPDATE
SET qr_data = EXCLUDED.qr_data,
    secret_key = EXCLUDED.secret_key,
    is_active = true,
    created_at = now()`
	if _, err := r.pg.Exec(ctx, q, jobID, qrData, secretKey); err != nil {
		return fmt.Errorf("upsert job qr: %w", err)
	}
	return nil
}

func (r *Repo) GetQR(ctx context.Context, jobID uuid.UUID) (*QRRecord, error) {
	const q = `
SELECT job_id, qr_data, secret_key, is_active, created_at
FROM job_qr_codes
WHERE job_id = $1 AND is_active
LIMIT 1`
	var rec QRRecord
	err := r.pg.QueryRow(ctx, q, jobID).Scan(
		&rec.JobID, &rec.QRData, &rec.SecretKey, &rec.IsActive, &rec.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrQRNotFound
		}
		return nil, err
	}
	return &rec, nil
}
