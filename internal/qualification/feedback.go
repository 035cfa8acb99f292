package qualification

import "strings"

// MessageKey is a stable identifier for one feedback reason. Keys are part of
// the API contract; clients map them to localized copy.
type MessageKey string

const (
	MsgMissingLanguage    MessageKey = "missingLanguage"
	MsgLowLanguageLevel   MessageKey = "lowLanguageLevel"
	MsgLowReliability     MessageKey = "lowReliability"
	MsgAccountFrozen      MessageKey = "accountFrozen"
	MsgNotVerified        MessageKey = "notVerified"
	MsgInstantBookSuccess MessageKey = "instantBookSuccess"
)

// messageText is the default English copy per key.
var messageText = map[MessageKey]string{
	MsgMissingLanguage:    "you have not registered the language this job requires",
	MsgLowLanguageLevel:   "your verified language level does not meet the job requirement",
	MsgLowReliability:     "your reliability score is below the job minimum",
	MsgAccountFrozen:      "your account is temporarily frozen",
	MsgNotVerified:        "your identity has not been verified yet",
	MsgInstantBookSuccess: "you qualify for Instant Book on this job",
}

// Feedback enumerates every failing criterion in a deterministic order
// (language existence, language level, reliability, freeze, verification) so
// a worker sees all blockers at once. A fully qualifying result yields the
// single success key.
func Feedback(r Result) []MessageKey {
	if r.QualifiesForInstantBook {
		return []MessageKey{MsgInstantBookSuccess}
	}

	var keys []MessageKey
	if !r.HasRequiredLanguage {
		keys = append(keys, MsgMissingLanguage)
	} else if !r.MeetsLanguageLevel {
		keys = append(keys, MsgLowLanguageLevel)
	}
	if !r.MeetsReliabilityScore {
		keys = append(keys, MsgLowReliability)
	}
	if !r.IsAccountActive {
		keys = append(keys, MsgAccountFrozen)
	}
	if !r.IsVerified {
		keys = append(keys, MsgNotVerified)
	}
	return keys
}

// FeedbackText renders the feedback keys as a single human-readable string.
func FeedbackText(r Result) string {
	keys := Feedback(r)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, messageText[k])
	}
	return strings.Join(parts, "; ")
}
