package qualification

import (
	"testing"
	"time"

	"github.com/baitolink/backend/internal/domain"
)

var testNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func testEvaluator(p Policy) *Evaluator {
	e := NewEvaluator(p)
	e.now = func() time.Time { return testNow }
	return e
}

func qualifyingProfile() Profile {
	return Profile{
		ReliabilityScore: 95,
		AccountFrozen:    false,
		Verified:         true,
		LanguageSkills: []LanguageSkill{
			{Language: LanguageJapanese, Level: "n3", Status: domain.VerificationVerified},
		},
	}
}

func jobReq() JobRequirements {
	return JobRequirements{
		RequiredLanguage:      LanguageJapanese,
		RequiredLanguageLevel: "n4",
		MinReliabilityScore:   90,
	}
}

func TestEvaluate_InstantBookHappyPath(t *testing.T) {
	r := testEvaluator(Policy{}).Evaluate(qualifyingProfile(), jobReq())

	if !r.HasRequiredLanguage || !r.MeetsLanguageLevel || !r.MeetsReliabilityScore ||
		!r.IsAccountActive || !r.IsVerified {
		t.Fatalf("all criteria should pass, got %+v", r)
	}
	if !r.QualifiesForInstantBook {
		t.Error("worker with N3 verified, score 95, active, verified should instant-book an N4/90 job")
	}
}

func TestEvaluate_HigherRequiredLevelFails(t *testing.T) {
	req := jobReq()
	req.RequiredLanguageLevel = "n2"
	r := testEvaluator(Policy{}).Evaluate(qualifyingProfile(), req)

	if !r.HasRequiredLanguage {
		t.Error("language existence is independent of level")
	}
	if r.MeetsLanguageLevel {
		t.Error("N3 (rank 3) must not satisfy N2 (rank 4)")
	}
	if r.QualifiesForInstantBook {
		t.Error("missing one criterion must block instant book")
	}
}

func TestEvaluate_MissingLanguage(t *testing.T) {
	p := qualifyingProfile()
	p.LanguageSkills = []LanguageSkill{
		{Language: LanguageKorean, Level: "topik6", Status: domain.VerificationVerified},
	}
	r := testEvaluator(Policy{}).Evaluate(p, jobReq())

	if r.HasRequiredLanguage {
		t.Error("a TOPIK skill must not count as the required Japanese skill")
	}
	if r.MeetsLanguageLevel {
		t.Error("level check cannot pass without the language; ranks never compare across scales")
	}
}

func TestEvaluate_SkillStatusStrictPolicy(t *testing.T) {
	for _, status := range []domain.VerificationStatus{domain.VerificationPending, domain.VerificationRejected} {
		p := qualifyingProfile()
		p.LanguageSkills[0].Status = status
		r := testEvaluator(Policy{}).Evaluate(p, jobReq())

		if !r.HasRequiredLanguage {
			t.Errorf("status %s: existence check is status-independent", status)
		}
		if r.MeetsLanguageLevel {
			t.Errorf("status %s must not satisfy the level check under the strict policy", status)
		}
	}
}

func TestEvaluate_LenientPendingPolicy(t *testing.T) {
	p := qualifyingProfile()
	p.LanguageSkills[0].Status = domain.VerificationPending

	r := testEvaluator(Policy{LenientPending: true}).Evaluate(p, jobReq())
	if !r.MeetsLanguageLevel {
		t.Error("pending skill should satisfy the level check when LenientPending is set")
	}

	p.LanguageSkills[0].Status = domain.VerificationRejected
	r = testEvaluator(Policy{LenientPending: true}).Evaluate(p, jobReq())
	if r.MeetsLanguageLevel {
		t.Error("rejected skill must never satisfy the level check, even leniently")
	}
}

func TestEvaluate_ReliabilityBoundaryInclusive(t *testing.T) {
	p := qualifyingProfile()
	p.ReliabilityScore = 90
	r := testEvaluator(Policy{}).Evaluate(p, jobReq())
	if !r.MeetsReliabilityScore {
		t.Error("score equal to the minimum must pass")
	}

	p.ReliabilityScore = 89
	r = testEvaluator(Policy{}).Evaluate(p, jobReq())
	if r.MeetsReliabilityScore {
		t.Error("score below the minimum must fail")
	}
}

func TestEvaluate_FrozenAccount(t *testing.T) {
	past := testNow.Add(-time.Hour)
	future := testNow.Add(time.Hour)
	exactly := testNow

	cases := []struct {
		name       string
		frozen     bool
		until      *time.Time
		wantActive bool
	}{
		{"not frozen", false, nil, true},
		{"frozen no expiry", true, nil, false},
		{"frozen, expired", true, &past, true},
		{"frozen, still active freeze", true, &future, false},
		{"frozen, expires exactly now", true, &exactly, false},
	}
	for _, c := range cases {
		p := qualifyingProfile()
		p.AccountFrozen = c.frozen
		p.FrozenUntil = c.until
		r := testEvaluator(Policy{}).Evaluate(p, jobReq())
		if r.IsAccountActive != c.wantActive {
			t.Errorf("%s: IsAccountActive = %v, want %v", c.name, r.IsAccountActive, c.wantActive)
		}
	}
}

func TestEvaluate_Monotonic(t *testing.T) {
	// Raising the score never turns a qualifying worker non-qualifying.
	p := qualifyingProfile()
	e := testEvaluator(Policy{})
	base := e.Evaluate(p, jobReq())
	if !base.QualifiesForInstantBook {
		t.Fatal("baseline should qualify")
	}
	for score := 90; score <= 100; score++ {
		p.ReliabilityScore = score
		if !e.Evaluate(p, jobReq()).QualifiesForInstantBook {
			t.Errorf("score %d: raising the score must never disqualify", score)
		}
	}

	// Lowering any single criterion never flips the aggregate to true.
	p = qualifyingProfile()
	p.Verified = false
	if e.Evaluate(p, jobReq()).QualifiesForInstantBook {
		t.Error("unverified worker must not instant-book")
	}
}

func TestFeedback_EnumeratesAllBlockers(t *testing.T) {
	p := Profile{
		ReliabilityScore: 10,
		AccountFrozen:    true,
		Verified:         false,
	}
	r := testEvaluator(Policy{}).Evaluate(p, jobReq())
	keys := Feedback(r)

	want := []MessageKey{MsgMissingLanguage, MsgLowReliability, MsgAccountFrozen, MsgNotVerified}
	if len(keys) != len(want) {
		t.Fatalf("Feedback keys = %v, want %v", keys, want)
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Errorf("Feedback[%d] = %s, want %s (order must be deterministic)", i, keys[i], want[i])
		}
	}
}

func TestFeedback_LowLevelReplacesMissingLanguage(t *testing.T) {
	p := qualifyingProfile()
	p.LanguageSkills[0].Level = "n5"
	r := testEvaluator(Policy{}).Evaluate(p, jobReq())

	keys := Feedback(r)
	if len(keys) != 1 || keys[0] != MsgLowLanguageLevel {
		t.Errorf("Feedback = %v, want [%s]", keys, MsgLowLanguageLevel)
	}
}

func TestFeedback_Success(t *testing.T) {
	r := testEvaluator(Policy{}).Evaluate(qualifyingProfile(), jobReq())
	keys := Feedback(r)
	if len(keys) != 1 || keys[0] != MsgInstantBookSuccess {
		t.Errorf("Feedback = %v, want [%s]", keys, MsgInstantBookSuccess)
	}
	if FeedbackText(r) == "" {
		t.Error("FeedbackText should render the success message")
	}
}
