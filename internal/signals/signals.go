// Package signals derives the surface features of a script that feedback
// selection and scoring depend on.
package signals

import (
	"regexp"
	"sort"
	"strings"
)

const (
	// snippetWords is the maximum number of tokens quoted in a line note.
	snippetWords = 12

	repeatMinLen   = 4
	repeatMinCount = 3
	repeatTop      = 3
)

var (
	wordRe          = regexp.MustCompile(`[A-Za-z']+`)
	sentenceBreakRe = regexp.MustCompile(`[.!?]\s+`)
)

// Signals is the set of features extracted from one cleaned script.
type Signals struct {
	Sentences     []string `json:"-"`
	Words         []string `json:"-"`
	WordCount     int      `json:"word_count"`
	SentenceCount int      `json:"sentence_count"`
	Repeated      []string `json:"repeated"`
	HasQuestion   bool     `json:"has_question"`
	HasEmotion    bool     `json:"has_emotion"`
	HasEvidence   bool     `json:"has_evidence"`
}

// Extract computes Signals for text. It never fails; empty text yields zero
// counts with SentenceCount floored at 1.
func Extract(text string) Signals {
	words := Words(text)
	sentences := Sentences(text)

	hasEmotion := false
	for _, w := range words {
		if IsEmotionWord(w) {
			hasEmotion = true
			break
		}
	}

	return Signals{
		Sentences:     sentences,
		Words:         words,
		WordCount:     len(words),
		SentenceCount: max(1, len(sentences)),
		Repeated:      TopRepeats(text),
		HasQuestion:   strings.Contains(text, "?"),
		HasEmotion:    hasEmotion,
		HasEvidence:   HasEvidenceCue(strings.ToLower(text)),
	}
}

// Words returns every maximal run of ASCII letters and apostrophes.
func Words(text string) []string {
	return wordRe.FindAllString(text, -1)
}

// CountWords is len(Words(text)) without keeping the slice.
func CountWords(text string) int {
	return len(wordRe.FindAllStringIndex(text, -1))
}

// Sentences splits text on whitespace that directly follows a terminator
// (. ! ?). Terminators stay with their sentence and empty pieces are dropped.
func Sentences(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	var out []string
	start := 0
	for _, loc := range sentenceBreakRe.FindAllStringIndex(text, -1) {
		if s := text[start : loc[0]+1]; s != "" {
			out = append(out, s)
		}
		start = loc[1]
	}
	if s := text[start:]; s != "" {
		out = append(out, s)
	}
	return out
}

// TopRepeats returns up to three lowercased words longer than three letters
// that occur at least three times, most frequent first. Ties keep the order
// in which the words first appear.
func TopRepeats(text string) []string {
	counts := make(map[string]int)
	var order []string
	for _, w := range wordRe.FindAllString(strings.ToLower(text), -1) {
		if len(w) < repeatMinLen {
			continue
		}
		if counts[w] == 0 {
			order = append(order, w)
		}
		counts[w]++
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})

	var out []string
	for i, w := range order {
		if i >= repeatTop {
			break
		}
		if counts[w] >= repeatMinCount {
			out = append(out, w)
		}
	}
	return out
}

// Snippets picks the two short quotes used by line notes: the opening of the
// first and second sentences (the first twice when there is only one). With
// no sentences it falls back to tokens 1-12 and 13-24 of text.
func (s Signals) Snippets(text string) (q1, q2 string) {
	if len(s.Sentences) > 0 {
		q1 = firstTokens(s.Sentences[0], snippetWords)
		q2 = firstTokens(s.Sentences[min(1, len(s.Sentences)-1)], snippetWords)
		return q1, q2
	}

	tokens := strings.Fields(text)
	q1 = strings.Join(tokens[:min(snippetWords, len(tokens))], " ")
	if len(tokens) > snippetWords {
		q2 = strings.Join(tokens[snippetWords:min(2*snippetWords, len(tokens))], " ")
	}
	return q1, q2
}

func firstTokens(s string, n int) string {
	tokens := strings.Fields(s)
	if len(tokens) > n {
		tokens = tokens[:n]
	}
	return strings.Join(tokens, " ")
}
