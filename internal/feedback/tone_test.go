package feedback

import (
	"strings"
	"testing"
)

func TestApplyTone(t *testing.T) {
	tests := []struct {
		name  string
		msg   string
		style Style
		goal  Goal
		want  string
	}{
		{"balanced no goal", "Keep going.", StyleBalanced, GoalNone, "Keep going."},
		{"confidence", "Keep going.", StyleBalanced, GoalConfidence, "You're doing a lot right — keep going."},
		{"competition", "Keep going.", StyleBalanced, GoalCompetition, "For competition-level scoring: Keep going."},
		{"strict", "Consider this. Try that.", StyleStrict, GoalNone, "You need to this. Do that."},
		{"strict after competition", "Try it.", StyleStrict, GoalCompetition, "For competition-level scoring: Do it."},
		{"supportive", "Add a pause.", StyleSupportive, GoalNone, "You're close — add a pause."},
		{
			"supportive wraps confidence", "Add a pause.", StyleSupportive, GoalConfidence,
			"You're close — you're doing a lot right — add a pause.",
		},
		{"quote first", `"Hi" → pause.`, StyleSupportive, GoalNone, `You're close — "Hi" → pause.`},
		{"empty", "", StyleSupportive, GoalConfidence, ""},
		{"unknown style", "Try it.", Style("loud"), GoalNone, "Try it."},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := ApplyTone(tc.msg, tc.style, tc.goal); got != tc.want {
				t.Errorf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestApplySimplify(t *testing.T) {
	tests := []struct {
		msg  string
		c    Complexity
		want string
	}{
		{"the structure and audience", ComplexitySimplified, "the order and people listening"},
		{"many opportunities", ComplexitySimplified, "many chances"},
		{"warrant with signposting and impact", ComplexityESL, "reason with clear transitions and why it matters"},
		{"the structure and audience", ComplexityStandard, "the structure and audience"},
		{"the structure and audience", Complexity("expert"), "the structure and audience"},
		{"warrant", ComplexitySimplified, "warrant"},
	}
	for _, tc := range tests {
		if got := ApplySimplify(tc.msg, tc.c); got != tc.want {
			t.Errorf("ApplySimplify(%q, %q) = %q, want %q", tc.msg, tc.c, got, tc.want)
		}
	}
}

func TestAdjust_ToneBeforeSimplify(t *testing.T) {
	// The supportive prefix lowercases the first word, so the simplifier
	// then catches it too.
	got := Adjust("Audience first: know your audience.", StyleSupportive, GoalNone, ComplexitySimplified)
	want := "You're close — people listening first: know your people listening."
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}

	got = Adjust("Audience first: know your audience.", StyleBalanced, GoalNone, ComplexitySimplified)
	want = "Audience first: know your people listening."
	if got != want {
		t.Errorf("expected case-sensitive rewrite %q, got %q", want, got)
	}
}

func TestAdjusted_LeavesChecklist(t *testing.T) {
	fb := Feedback{
		Strengths:    []string{"Try A.", "Try B.", "Try C."},
		Improvements: []string{"Consider D.", "E.", "F."},
		Notes:        []string{"G.", "H."},
		Checklist:    []string{"Try I.", "Consider J.", "K."},
	}
	got := fb.Adjusted(StyleStrict, GoalNone, ComplexityStandard)
	if got.Strengths[0] != "Do A." || got.Improvements[0] != "You need to D." {
		t.Errorf("expected strict rewrite, got %q / %q", got.Strengths[0], got.Improvements[0])
	}
	if got.Checklist[0] != "Try I." || got.Checklist[1] != "Consider J." {
		t.Errorf("expected checklist untouched, got %v", got.Checklist)
	}
	if fb.Strengths[0] != "Try A." {
		t.Errorf("expected original feedback unchanged, got %q", fb.Strengths[0])
	}
}

func TestBuildPrompt(t *testing.T) {
	p := BuildPrompt("debate", "judges", StyleStrict, "Resolved: homework should be banned.")
	for _, want := range []string{
		"Tone: Strict coach: blunt, specific, no fluff.",
		"- Type: debate",
		"- Intended audience: judges",
		"4) Next Take Checklist (exactly 3 numbered items)",
		"Student text:\nResolved: homework should be banned.",
	} {
		if !strings.Contains(p, want) {
			t.Errorf("expected prompt to contain %q\n%s", want, p)
		}
	}
	if strings.HasPrefix(p, "\n") || strings.HasSuffix(p, "\n") {
		t.Error("expected prompt to be trimmed")
	}

	p = BuildPrompt("monologue", "class", Style("other"), "x")
	if !strings.Contains(p, "Tone: Balanced: encouraging but direct.") {
		t.Errorf("expected balanced fallback tone, got %q", p)
	}
}
