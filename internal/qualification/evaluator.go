package qualification

import (
	"time"

	"github.com/baitolink/backend/internal/domain"
)

// LanguageSkill is one certified language entry on a worker profile. A worker
// holds at most one level per language.
type LanguageSkill struct {
	Language Language
	Level    string
	Status   domain.VerificationStatus
}

// Profile is the read-only snapshot of a worker the evaluator consumes.
type Profile struct {
	ReliabilityScore int
	AccountFrozen    bool
	FrozenUntil      *time.Time
	Verified         bool
	LanguageSkills   []LanguageSkill
}

// JobRequirements are the qualification thresholds attached to a job posting.
type JobRequirements struct {
	RequiredLanguage      Language
	RequiredLanguageLevel string
	MinReliabilityScore   int
}

// Result is the per-criterion outcome of one evaluation. All five checks are
// computed independently even though only their conjunction gates Instant
// Book: the partial results drive user-facing feedback.
type Result struct {
	HasRequiredLanguage     bool `json:"has_required_language"`
	MeetsLanguageLevel      bool `json:"meets_language_level"`
	MeetsReliabilityScore   bool `json:"meets_reliability_score"`
	IsAccountActive         bool `json:"is_account_active"`
	IsVerified              bool `json:"is_verified"`
	QualifiesForInstantBook bool `json:"qualifies_for_instant_book"`
}

// Policy tunes contested evaluation rules.
type Policy struct {
	// LenientPending lets a language skill still under review satisfy the
	// level check. The strict rule (default) requires a verified skill; the
	// product decision is still open, so both behaviors live behind this flag.
	LenientPending bool
}

// Evaluator runs qualification checks at a fixed point in time.
type Evaluator struct {
	policy Policy
	now    func() time.Time
}

// NewEvaluator returns an evaluator with the given policy using wall-clock time.
func NewEvaluator(policy Policy) *Evaluator {
	return &Evaluator{policy: policy, now: time.Now}
}

// Evaluate computes all five qualification criteria for a worker against a
// job's requirements and their conjunction. It is a pure function of its
// inputs and the current time; nothing is persisted.
func (e *Evaluator) Evaluate(p Profile, req JobRequirements) Result {
	var r Result

	skill, ok := findSkill(p.LanguageSkills, req.RequiredLanguage)
	r.HasRequiredLanguage = ok

	if ok {
		statusOK := skill.Status == domain.VerificationVerified ||
			(e.policy.LenientPending && skill.Status == domain.VerificationPending)
		r.MeetsLanguageLevel = statusOK && CompareLevels(skill.Level, req.RequiredLanguageLevel)
	}

	r.MeetsReliabilityScore = p.ReliabilityScore >= req.MinReliabilityScore
	r.IsAccountActive = isAccountActive(p, e.now())
	r.IsVerified = p.Verified

	r.QualifiesForInstantBook = r.HasRequiredLanguage &&
		r.MeetsLanguageLevel &&
		r.MeetsReliabilityScore &&
		r.IsAccountActive &&
		r.IsVerified

	return r
}

// isAccountActive treats a frozen account whose freeze has expired as active,
// even when the flag has not been cleared yet. The boundary is strict: a
// freeze expiring exactly now is still frozen.
func isAccountActive(p Profile, now time.Time) bool {
	if !p.AccountFrozen {
		return true
	}
	if p.FrozenUntil != nil && now.After(*p.FrozenUntil) {
		return true
	}
	return false
}

func findSkill(skills []LanguageSkill, lang Language) (LanguageSkill, bool) {
	for _, s := range skills {
		if s.Language == lang {
			return s, true
		}
	}
	return LanguageSkill{}, false
}
