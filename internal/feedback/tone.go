package feedback

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	confidencePrefix  = "You're doing a lot right — "
	competitionPrefix = "For competition-level scoring: "
	supportivePrefix  = "You're close — "
)

var (
	strictReplacer = strings.NewReplacer("Consider", "You need to", "Try", "Do")

	simplifiedReplacements = [][2]string{
		{"opportunities", "chances"},
		{"structure", "order"},
		{"audience", "people listening"},
	}
	eslReplacements = [][2]string{
		{"warrant", "reason"},
		{"signposting", "clear transitions"},
		{"impact", "why it matters"},
	}
)

// ApplyTone wraps msg for the coaching goal, then for the style. Both can
// apply: a supportive confidence line gets two prefixes.
func ApplyTone(msg string, style Style, goal Goal) string {
	if msg == "" {
		return msg
	}

	switch goal {
	case GoalConfidence:
		msg = confidencePrefix + lowerFirst(msg)
	case GoalCompetition:
		msg = competitionPrefix + msg
	}

	switch style {
	case StyleStrict:
		msg = strictReplacer.Replace(msg)
	case StyleSupportive:
		msg = supportivePrefix + lowerFirst(msg)
	}
	return msg
}

// ApplySimplify rewrites vocabulary for the reading level. Replacements run
// one after another, so a later rule sees the output of an earlier one.
func ApplySimplify(msg string, c Complexity) string {
	var rules [][2]string
	switch c {
	case ComplexitySimplified:
		rules = simplifiedReplacements
	case ComplexityESL:
		rules = eslReplacements
	default:
		return msg
	}
	for _, r := range rules {
		msg = strings.ReplaceAll(msg, r[0], r[1])
	}
	return msg
}

// Adjust runs the tone wrap and then the reading-level rewrite.
func Adjust(msg string, style Style, goal Goal, c Complexity) string {
	return ApplySimplify(ApplyTone(msg, style, goal), c)
}

// Adjusted returns a copy of f with Adjust applied to strengths,
// improvements and notes. The checklist is left verbatim.
func (f Feedback) Adjusted(style Style, goal Goal, c Complexity) Feedback {
	adjust := func(lines []string) []string {
		out := make([]string, len(lines))
		for i, l := range lines {
			out[i] = Adjust(l, style, goal, c)
		}
		return out
	}
	return Feedback{
		Strengths:    adjust(f.Strengths),
		Improvements: adjust(f.Improvements),
		Notes:        adjust(f.Notes),
		Checklist:    append([]string(nil), f.Checklist...),
	}
}

func lowerFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToLower(r)) + s[size:]
}
