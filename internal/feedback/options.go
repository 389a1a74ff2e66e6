package feedback

import "strings"

// SpeechType selects the template bundle and rubric categories.
type SpeechType string

const (
	PublicSpeech SpeechType = "public_speech"
	Monologue    SpeechType = "monologue"
	Debate       SpeechType = "debate"
)

// SpeechTypes lists the supported speech types in display order.
var SpeechTypes = []SpeechType{PublicSpeech, Monologue, Debate}

// ParseSpeechType maps s to a known speech type. Anything unrecognised is
// treated as a public speech.
func ParseSpeechType(s string) SpeechType {
	switch t := SpeechType(strings.TrimSpace(s)); t {
	case Monologue, Debate:
		return t
	default:
		return PublicSpeech
	}
}

// Style is the coaching voice applied to feedback lines.
type Style string

const (
	StyleBalanced   Style = "balanced"
	StyleStrict     Style = "strict"
	StyleSupportive Style = "supportive"
)

// ParseStyle maps s to a known style, defaulting to balanced.
func ParseStyle(s string) Style {
	switch st := Style(strings.TrimSpace(s)); st {
	case StyleStrict, StyleSupportive:
		return st
	default:
		return StyleBalanced
	}
}

// Goal adds a framing prefix to feedback lines. Unknown goals add nothing.
type Goal string

const (
	GoalNone        Goal = ""
	GoalConfidence  Goal = "confidence"
	GoalCompetition Goal = "competition"
)

// ParseGoal maps s to a known goal; anything else adds no prefix.
func ParseGoal(s string) Goal {
	switch g := Goal(strings.TrimSpace(s)); g {
	case GoalConfidence, GoalCompetition:
		return g
	default:
		return GoalNone
	}
}

// Complexity is the reading level feedback is rewritten for.
type Complexity string

const (
	ComplexityStandard   Complexity = "standard"
	ComplexitySimplified Complexity = "simplified"
	ComplexityESL        Complexity = "esl"
)

// ParseComplexity maps s to a known level; unknown levels leave text as is.
func ParseComplexity(s string) Complexity {
	switch c := Complexity(strings.TrimSpace(s)); c {
	case ComplexitySimplified, ComplexityESL:
		return c
	default:
		return ComplexityStandard
	}
}
