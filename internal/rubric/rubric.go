// Package rubric scores a script on three speech-type specific categories.
package rubric

import (
	"strings"

	"github.com/dgallion1/scriptcoach/internal/feedback"
	"github.com/dgallion1/scriptcoach/internal/signals"
)

const (
	MinScore = 0
	MaxScore = 5

	// Above this many words a debate case loses its clarity bonus.
	debateClarityWords = 900
	// Beyond this many words a monologue has room for beat changes.
	monologueBeatWords = 250
)

// Score is one named rubric category.
type Score struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// Scores is an ordered list of categories as they should be displayed.
type Scores []Score

// Value returns the score for name and whether it exists.
func (s Scores) Value(name string) (int, bool) {
	for _, sc := range s {
		if sc.Name == name {
			return sc.Value, true
		}
	}
	return 0, false
}

// Names returns the category names in order.
func (s Scores) Names() []string {
	names := make([]string, len(s))
	for i, sc := range s {
		names[i] = sc.Name
	}
	return names
}

type predicates struct {
	wordCount int
	evidence  bool
	signposts bool
	emotion   bool
	question  bool
	takeaway  bool
}

func derive(text string) predicates {
	lower := strings.ToLower(text)
	return predicates{
		wordCount: signals.CountWords(text),
		evidence:  signals.HasEvidenceCue(lower),
		signposts: signals.HasSignpost(lower),
		emotion:   signals.MentionsEmotion(lower),
		question:  strings.Contains(text, "?"),
		takeaway:  strings.Contains(lower, "call") || strings.Contains(lower, "action"),
	}
}

// Evaluate scores text for speech type t. Unknown types are scored as a
// public speech. Every value is clamped to [MinScore, MaxScore].
func Evaluate(t feedback.SpeechType, text string) Scores {
	p := derive(text)

	var out Scores
	switch t {
	case feedback.Debate:
		out = Scores{
			{"Structure", 3 + bonus(p.signposts, 1)},
			{"Evidence", 2 + bonus(p.evidence, 2)},
			{"Clarity", 3 + bonus(p.wordCount < debateClarityWords, 1)},
		}
	case feedback.Monologue:
		out = Scores{
			{"Emotional Stakes", 2 + bonus(p.emotion, 2)},
			{"Objective Clarity", 3},
			{"Beat Changes", 2 + bonus(p.wordCount > monologueBeatWords, 1)},
		}
	default:
		out = Scores{
			{"Hook", 2 + bonus(p.question, 1) + bonus(p.signposts, 1)},
			{"Organization", 3 + bonus(p.signposts, 1)},
			{"Takeaway", 3 + bonus(p.takeaway, 1)},
		}
	}

	for i := range out {
		out[i].Value = clamp(out[i].Value)
	}
	return out
}

func bonus(ok bool, n int) int {
	if ok {
		return n
	}
	return 0
}

func clamp(v int) int {
	return max(MinScore, min(MaxScore, v))
}
