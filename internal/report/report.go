// Package report computes text statistics and renders the final coaching
// report.
package report

import (
	"fmt"
	"strings"

	"github.com/dgallion1/scriptcoach/internal/feedback"
	"github.com/dgallion1/scriptcoach/internal/rubric"
	"github.com/dgallion1/scriptcoach/internal/signals"
)

// WordsPerMinute is the speaking rate used for time estimates.
const WordsPerMinute = 160

// Complexity labels derived from the average sentence length.
const (
	LabelSimple   = "Simple"
	LabelMedium   = "Medium"
	LabelAdvanced = "Advanced"
)

// Stats is the "Text Analysis" block.
type Stats struct {
	WordCount         int      `json:"word_count"`
	SentenceCount     int      `json:"sentence_count"`
	Minutes           int      `json:"speaking_minutes"`
	Seconds           int      `json:"speaking_seconds"`
	AvgSentenceLength float64  `json:"avg_sentence_length"`
	ComplexityLabel   string   `json:"complexity_level"`
	Repeated          []string `json:"repeated_words,omitempty"`
}

// ComputeStats derives the analysis block from extracted signals.
func ComputeStats(sig signals.Signals) Stats {
	sc := max(1, sig.SentenceCount)
	minutes := float64(sig.WordCount) / WordsPerMinute
	whole := int(minutes)
	avg := float64(sig.WordCount) / float64(sc)

	return Stats{
		WordCount:         sig.WordCount,
		SentenceCount:     sc,
		Minutes:           whole,
		Seconds:           int((minutes - float64(whole)) * 60),
		AvgSentenceLength: avg,
		ComplexityLabel:   complexityLabel(avg),
		Repeated:          sig.Repeated,
	}
}

func complexityLabel(avg float64) string {
	switch {
	case avg < 12:
		return LabelSimple
	case avg < 18:
		return LabelMedium
	default:
		return LabelAdvanced
	}
}

// RepetitionNote is the advice shown for repeated words, or "" if none.
func (s Stats) RepetitionNote() string {
	if len(s.Repeated) == 0 {
		return ""
	}
	return strings.Join(s.Repeated, ", ") + " appear frequently. Consider varying word choice."
}

// Report is a complete analysis of one script. Rubric is nil when rubric
// scoring was switched off.
type Report struct {
	Stats    Stats             `json:"stats"`
	Rubric   rubric.Scores     `json:"rubric,omitempty"`
	Feedback feedback.Feedback `json:"feedback"`
}

// String renders the report in its fixed plain-text layout.
func (r Report) String() string {
	var b strings.Builder

	b.WriteString("Text Analysis:\n")
	fmt.Fprintf(&b, "- Word Count: %d\n", r.Stats.WordCount)
	fmt.Fprintf(&b, "- Estimated Speaking Time: %d min %d sec\n", r.Stats.Minutes, r.Stats.Seconds)
	fmt.Fprintf(&b, "- Complexity Level: %s\n", r.Stats.ComplexityLabel)
	if note := r.Stats.RepetitionNote(); note != "" {
		fmt.Fprintf(&b, "- Repetition Focus: %s\n", note)
	}
	b.WriteString("\n")

	if r.Rubric != nil {
		b.WriteString("Rubric Scores:\n")
		for _, s := range r.Rubric {
			fmt.Fprintf(&b, "- %s: %d/5\n", s.Name, s.Value)
		}
		b.WriteString("\n")
	}

	fb := r.Feedback
	b.WriteString("Strengths:\n")
	fmt.Fprintf(&b, "- %s\n- %s\n- %s\n\n", at(fb.Strengths, 0), at(fb.Strengths, 1), at(fb.Strengths, 2))

	// Third improvement keeps its historical four-space indent.
	b.WriteString("Improvements:\n")
	fmt.Fprintf(&b, "- %s\n- %s\n-    %s\n\n", at(fb.Improvements, 0), at(fb.Improvements, 1), at(fb.Improvements, 2))

	b.WriteString("Line-specific notes:\n")
	fmt.Fprintf(&b, "- %s\n- %s\n\n", at(fb.Notes, 0), at(fb.Notes, 1))

	b.WriteString("Next Take Checklist:\n")
	fmt.Fprintf(&b, "1) %s\n2) %s\n3) %s\n", at(fb.Checklist, 0), at(fb.Checklist, 1), at(fb.Checklist, 2))

	return b.String()
}

func at(lines []string, i int) string {
	if i < len(lines) {
		return lines[i]
	}
	return ""
}
