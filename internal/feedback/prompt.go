package feedback

import (
	"fmt"
	"strings"
)

var styleTones = map[Style]string{
	StyleBalanced:   "Balanced: encouraging but direct.",
	StyleStrict:     "Strict coach: blunt, specific, no fluff.",
	StyleSupportive: "Supportive coach: kind, confidence-building, still specific.",
}

const coachingRules = `Rules:
- Give EXACTLY these sections in this order:
  1) Strengths (3 bullet points)
  2) Improvements (3 bullet points)
  3) Line-specific notes (2 bullets). Each bullet must quote a short snippet (<= 12 words) then a coaching note.
  4) Next Take Checklist (exactly 3 numbered items)
- Keep it actionable and rehearsal-focused (pacing, emphasis, structure, clarity, delivery).
- Do NOT rewrite the entire piece. Do NOT add extra sections.`

// BuildPrompt renders a coaching brief for the script that can be handed to
// a human coach or an external assistant. The speech type is echoed as
// given; only the style is normalised.
func BuildPrompt(speechType, audience string, style Style, text string) string {
	tone, ok := styleTones[style]
	if !ok {
		tone = styleTones[StyleBalanced]
	}

	var sb strings.Builder
	sb.WriteString("You are a performance coach helping students improve with deliberate practice.\n")
	sb.WriteString(fmt.Sprintf("Tone: %s\n\n", tone))
	sb.WriteString("Context:\n")
	sb.WriteString(fmt.Sprintf("- Type: %s\n", speechType))
	sb.WriteString(fmt.Sprintf("- Intended audience: %s\n\n", audience))
	sb.WriteString(coachingRules)
	sb.WriteString("\n\nStudent text:\n")
	sb.WriteString(text)
	return strings.TrimSpace(sb.String())
}
