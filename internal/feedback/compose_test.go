package feedback

import (
	"strings"
	"testing"

	"github.com/dgallion1/scriptcoach/internal/signals"
	"github.com/google/go-cmp/cmp"
)

func richSignals() signals.Signals {
	return signals.Signals{
		WordCount:   400,
		HasQuestion: true,
		HasEmotion:  true,
		HasEvidence: true,
	}
}

func TestCompose_Sizes(t *testing.T) {
	c := DefaultCatalog()
	for _, st := range SpeechTypes {
		fb := c.Compose(st, Input{Audience: "judges", Q1: "a", Q2: "b"})
		if len(fb.Strengths) != 3 || len(fb.Improvements) != 3 || len(fb.Notes) != 2 || len(fb.Checklist) != 3 {
			t.Errorf("%s: unexpected group sizes %d/%d/%d/%d", st,
				len(fb.Strengths), len(fb.Improvements), len(fb.Notes), len(fb.Checklist))
		}
	}
}

func TestCompose_MonologueInterpolation(t *testing.T) {
	fb := DefaultCatalog().Compose(Monologue, Input{
		Audience: "drama teachers",
		Q1:       "To be or not",
		Q2:       "Whether tis nobler",
		Signals:  richSignals(),
	})
	if fb.Strengths[1] != "You can tailor delivery to your audience vibe: drama teachers." {
		t.Errorf("unexpected strength %q", fb.Strengths[1])
	}
	if !strings.HasPrefix(fb.Notes[0], `"To be or not" → `) {
		t.Errorf("expected q1 quoted in note, got %q", fb.Notes[0])
	}
	if !strings.HasPrefix(fb.Notes[1], `"Whether tis nobler" → Add a pause`) {
		t.Errorf("expected q2 quoted in note, got %q", fb.Notes[1])
	}
	if fb.Improvements[0] != "Add playable actions per beat: persuade, deflect, confess, challenge." {
		t.Errorf("expected default improvement with emotion present, got %q", fb.Improvements[0])
	}
}

func TestCompose_MonologueWithoutEmotion(t *testing.T) {
	sig := richSignals()
	sig.HasEmotion = false
	fb := DefaultCatalog().Compose(Monologue, Input{Signals: sig})
	if fb.Improvements[0] != "Add emotional stakes: what is lost if the character fails?" {
		t.Errorf("expected emotional stakes override, got %q", fb.Improvements[0])
	}
}

func TestCompose_DebateOverrides(t *testing.T) {
	tests := []struct {
		name     string
		evidence bool
		question bool
		want1    string
		want2    string
	}{
		{
			"all present", true, true,
			"Add evidence: a statistic, a credible source, and an example.",
			"Preempt a likely counterargument and answer it in one clean paragraph.",
		},
		{
			"no evidence", false, true,
			"Right now it reads like opinion—add at least 2 pieces of evidence.",
			"Preempt a likely counterargument and answer it in one clean paragraph.",
		},
		{
			"no question", true, false,
			"Add evidence: a statistic, a credible source, and an example.",
			"Add one strategic rhetorical question to frame the judge’s choice.",
		},
		{
			"neither", false, false,
			"Right now it reads like opinion—add at least 2 pieces of evidence.",
			"Add one strategic rhetorical question to frame the judge’s choice.",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			sig := richSignals()
			sig.HasEvidence = tc.evidence
			sig.HasQuestion = tc.question
			fb := DefaultCatalog().Compose(Debate, Input{Signals: sig})
			if fb.Improvements[1] != tc.want1 {
				t.Errorf("improvement 2: expected %q, got %q", tc.want1, fb.Improvements[1])
			}
			if fb.Improvements[2] != tc.want2 {
				t.Errorf("improvement 3: expected %q, got %q", tc.want2, fb.Improvements[2])
			}
		})
	}
}

func TestCompose_PublicSpeechShortText(t *testing.T) {
	sig := richSignals()
	for _, tc := range []struct {
		words int
		short bool
	}{{0, true}, {179, true}, {180, false}, {500, false}} {
		sig.WordCount = tc.words
		fb := DefaultCatalog().Compose(PublicSpeech, Input{Signals: sig})
		isShort := fb.Improvements[1] == "It may be too short—add one example story to deepen the point."
		if isShort != tc.short {
			t.Errorf("words=%d: expected short override=%v, got %q", tc.words, tc.short, fb.Improvements[1])
		}
	}
}

func TestCompose_UnknownTypeMatchesPublicSpeech(t *testing.T) {
	c := DefaultCatalog()
	in := Input{Audience: "class", Q1: "x", Q2: "y", Signals: richSignals()}
	want := c.Compose(PublicSpeech, in)
	got := c.Compose(SpeechType("poetry"), in)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("fallback mismatch (-want +got):\n%s", diff)
	}
}

func TestCompose_DoesNotMutateCatalog(t *testing.T) {
	c := DefaultCatalog()
	before := c.Bundle(Debate).Improvements[1]
	sig := richSignals()
	sig.HasEvidence = false
	_ = c.Compose(Debate, Input{Signals: sig})
	if after := c.Bundle(Debate).Improvements[1]; after != before {
		t.Errorf("catalog modified: %q -> %q", before, after)
	}
}

func TestCompose_PlaceholdersNotReexpanded(t *testing.T) {
	fb := DefaultCatalog().Compose(Monologue, Input{Audience: "{q1}", Q1: "{audience}"})
	if !strings.Contains(fb.Strengths[1], "vibe: {q1}.") {
		t.Errorf("expected audience inserted literally, got %q", fb.Strengths[1])
	}
	if !strings.HasPrefix(fb.Notes[0], `"{audience}"`) {
		t.Errorf("expected q1 inserted literally, got %q", fb.Notes[0])
	}
}
