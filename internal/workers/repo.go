package workers

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/baitolink/backend/internal/qualification"
)

var ErrNotFound = errors.New("worker not found")

type Repo struct {
	pg *pgxpool.Pool
}

func NewRepo(pg *pgxpool.Pool) *Repo {
	return &Repo{pg: pg}
}

func (r *Repo) FindByID(ctx context.Context, id uuid.UUID) (*Worker, error) {
	const q = `
SELECT id, phone, password_hash, name, reliability_score, is_account_frozen,
       frozen_until, is_verified, created_at, updated_at
FROM workers
WHERE id = $1
LIMIT 1`
	return scanWorker(r.pg.QueryRow(ctx, q, id))
}

func (r *Repo) FindByPhone(ctx context.Context, phone string) (*Worker, error) {
	const q = `
SELECT id, phone, password_hash, name, reliability_score, is_account_frozen,
       frozen_until, is_verified, created_at, updated_at
FROM workers
WHERE phone = $1
LIMIT 1`
	return scanWorker(r.pg.QueryRow(ctx, q, phone))
}

func scanWorker(row pgx.Row) (*Worker, error) {
	var w Worker
	err := row.Scan(
		&w.ID, &w.Phone, &w.PasswordHash, &w.Name, &w.ReliabilityScore,
		&w.IsAccountFrozen, &w.FrozenUntil, &w.IsVerified, &w.CreatedAt, &w.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &w, nil
}

func (r *Repo) LanguageSkills(ctx context.Context, workerID uuid.UUID) ([]LanguageSkill, error) {
	const q = `
SELECT worker_id, language, level, verification_status
FROM worker_language_skills
WHERE worker_id = $1
ORDER BY language`
	rows, err := r.pg.Query(ctx, q, workerID)
	if err != nil {
		return nil, fmt.Errorf("load language skills: %w", err)
	}
	defer rows.Close()

	var skills []LanguageSkill
	for rows.Next() {
		var s LanguageSkill
		if err := rows.Scan(&s.WorkerID, &s.Language, &s.Level, &s.Status); err != nil {
			return nil, err
		}
		skills = append(skills, s)
	}
	return skills, rows.Err()
}

// QualificationProfile assembles the read-only snapshot the qualification
// evaluator consumes.
func (r *Repo) QualificationProfile(ctx context.Context, workerID uuid.UUID) (qualification.Profile, error) {
	w, err := r.FindByID(ctx, workerID)
	if err != nil {
		return qualification.Profile{}, err
	}
	skills, err := r.LanguageSkills(ctx, workerID)
	if err != nil {
		return qualification.Profile{}, err
	}

	p := qualification.Profile{
		ReliabilityScore: w.ReliabilityScore,
		AccountFrozen:    w.IsAccountFrozen,
		FrozenUntil:      w.FrozenUntil,
		Verified:         w.IsVerified,
	}
	for _, s := range skills {
		p.LanguageSkills = append(p.LanguageSkills, qualification.LanguageSkill{
			Language: qualification.Language(s.Language),
			Level:    s.Level,
			Status:   s.Status,
		})
	}
	return p, nil
}
