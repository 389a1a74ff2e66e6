package signals

import "strings"

// Word sets are initialised once and only read afterwards, so they are safe
// to share between concurrent reviews.
var (
	fillerWords = map[string]bool{
		"um":        true,
		"uh":        true,
		"like":      true,
		"you know":  true,
		"literally": true,
		"basically": true,
	}

	emotionWords = map[string]bool{
		"love":   true,
		"hate":   true,
		"fear":   true,
		"hope":   true,
		"cry":    true,
		"laugh":  true,
		"anger":  true,
		"hurt":   true,
		"joy":    true,
		"regret": true,
	}

	evidenceCues = []string{
		"because", "therefore", "however", "according",
		"data", "study", "evidence", "statistic", "%",
	}

	signposts = []string{"first", "second", "finally", "in conclusion"}
)

// IsFillerWord reports whether w (any case) is a filler word or phrase.
// Nothing scores fillers yet; the set is kept for upcoming delivery checks.
func IsFillerWord(w string) bool {
	return fillerWords[strings.ToLower(w)]
}

// IsEmotionWord reports whether w (any case) is one of the emotion words.
func IsEmotionWord(w string) bool {
	return emotionWords[strings.ToLower(w)]
}

// MentionsEmotion reports whether any emotion word occurs as a substring of
// the already-lowercased text.
func MentionsEmotion(lower string) bool {
	for w := range emotionWords {
		if strings.Contains(lower, w) {
			return true
		}
	}
	return false
}

// HasEvidenceCue reports whether the already-lowercased text contains any
// evidentiary cue.
func HasEvidenceCue(lower string) bool {
	return containsAny(lower, evidenceCues)
}

// HasSignpost reports whether the already-lowercased text contains an
// ordering phrase such as "first" or "in conclusion".
func HasSignpost(lower string) bool {
	return containsAny(lower, signposts)
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
