// Package qualification decides whether a worker automatically qualifies for
// Instant Book on a job, or is routed to manual Request to Book.
package qualification

import "strings"

// Language identifies a certification scale. Levels are only comparable within
// their own scale; the evaluator matches the job's required language against
// the skill's language before any rank comparison happens.
type Language string

const (
	LanguageJapanese Language = "japanese"
	LanguageKorean   Language = "korean"
	LanguageEnglish  Language = "english"
)

// levelRanks maps a certified level to its ordinal rank within its own scale.
// Higher rank means higher proficiency. "beginner" is a generic floor valid in
// any scale. Unknown levels rank 0: an unrecognized certification is treated
// as the lowest level, never as an automatic pass.
var levelRanks = map[string]int{
	"beginner": 0,

	// JLPT (Japanese): N5 is the lowest, N1 the highest.
	"n5": 1,
	"n4": 2,
	"n3": 3,
	"n2": 4,
	"n1": 5,

	// TOPIK (Korean): 1..6.
	"topik1": 1,
	"topik2": 2,
	"topik3": 3,
	"topik4": 4,
	"topik5": 5,
	"topik6": 6,

	// CEFR (English): A1..C2.
	"a1": 1,
	"a2": 2,
	"b1": 3,
	"b2": 4,
	"c1": 5,
	"c2": 6,
}

// LevelRank returns the ordinal rank of a certified level within its scale,
// or 0 for unknown levels.
func LevelRank(level string) int {
	return levelRanks[strings.ToLower(strings.TrimSpace(level))]
}

// CompareLevels reports whether workerLevel certifies at or above
// requiredLevel. Both levels must belong to the same scale; the caller is
// responsible for matching languages first.
func CompareLevels(workerLevel, requiredLevel string) bool {
	return LevelRank(workerLevel) >= LevelRank(requiredLevel)
}
