package feedback

import (
	"strings"

	"github.com/dgallion1/scriptcoach/internal/signals"
)

// Feedback is the composed coaching text for one script.
type Feedback struct {
	Strengths    []string `json:"strengths"`
	Improvements []string `json:"improvements"`
	Notes        []string `json:"line_notes"`
	Checklist    []string `json:"checklist"`
}

// Input carries the values templates are filled from.
type Input struct {
	Audience string
	Q1, Q2   string
	Signals  signals.Signals
}

// Compose fills the bundle for t with in and applies its overrides.
func (c *Catalog) Compose(t SpeechType, in Input) Feedback {
	b := c.Bundle(t)
	fill := strings.NewReplacer("{audience}", in.Audience, "{q1}", in.Q1, "{q2}", in.Q2)

	fb := Feedback{
		Strengths:    fillAll(fill, b.Strengths),
		Improvements: fillAll(fill, b.Improvements),
		Notes:        fillAll(fill, b.Notes),
		Checklist:    fillAll(fill, b.Checklist),
	}

	for _, o := range b.Overrides {
		if !o.applies(in.Signals) {
			continue
		}
		lines := fb.group(o.Group)
		if o.Index >= 0 && o.Index < len(lines) {
			lines[o.Index] = fill.Replace(o.Text)
		}
	}
	return fb
}

func (o Override) applies(sig signals.Signals) bool {
	switch o.When {
	case MissingEmotion:
		return !sig.HasEmotion
	case MissingEvidence:
		return !sig.HasEvidence
	case MissingQuestion:
		return !sig.HasQuestion
	case WordCountBelow:
		return sig.WordCount < o.Threshold
	}
	return false
}

func (f Feedback) group(g Group) []string {
	switch g {
	case GroupStrengths:
		return f.Strengths
	case GroupImprovements:
		return f.Improvements
	case GroupNotes:
		return f.Notes
	case GroupChecklist:
		return f.Checklist
	}
	return nil
}

// fillAll returns a fresh slice so catalog templates are never modified.
func fillAll(r *strings.Replacer, lines []string) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = r.Replace(l)
	}
	return out
}
