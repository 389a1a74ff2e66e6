package coach

import (
	"strings"

	"github.com/dgallion1/scriptcoach/internal/feedback"
)

// DefaultGoal is applied by callers when the goal field is absent. An
// explicitly empty goal means no goal prefix.
const DefaultGoal = string(feedback.GoalConfidence)

// RubricOff disables the rubric block; any other value keeps it.
const RubricOff = "off"

// Request is one script submitted for review, with the options as the user
// supplied them.
type Request struct {
	Filename   string
	Data       []byte
	SpeechType string
	Audience   string
	Style      string
	Complexity string
	Goal       string
	RubricMode string
}

// Options are the parsed analysis settings.
type Options struct {
	SpeechType feedback.SpeechType
	Audience   string
	Style      feedback.Style
	Complexity feedback.Complexity
	Goal       feedback.Goal
	Rubric     bool
}

// Options parses the request's option fields. Unknown values fall back to
// the defaults of each option type.
func (r Request) Options() Options {
	return Options{
		SpeechType: feedback.ParseSpeechType(r.SpeechType),
		Audience:   strings.TrimSpace(r.Audience),
		Style:      feedback.ParseStyle(r.Style),
		Complexity: feedback.ParseComplexity(r.Complexity),
		Goal:       feedback.ParseGoal(r.Goal),
		Rubric:     strings.TrimSpace(r.RubricMode) != RubricOff,
	}
}

func (r Request) validate() *Error {
	switch {
	case strings.TrimSpace(r.Filename) == "":
		return missingInput(MsgMissingFile)
	case strings.TrimSpace(r.SpeechType) == "":
		return missingInput(MsgMissingSpeechType)
	case strings.TrimSpace(r.Audience) == "":
		return missingInput(MsgMissingAudience)
	}
	return nil
}
