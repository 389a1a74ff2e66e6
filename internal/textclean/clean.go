// Package textclean normalizes raw extracted document text into the
// ASCII-only form the analysis pipeline works on.
package textclean

import (
	"regexp"
	"strings"
)

const rtfMarker = `{\rtf`

var (
	rtfControlRe = regexp.MustCompile(`\{\\.*?\}|\\[a-zA-Z]+\d* ?`)
	blankRunRe   = regexp.MustCompile(`[ \t]+`)
	newlineRunRe = regexp.MustCompile(`\n{3,}`)

	displayRTFRe  = regexp.MustCompile(`\{\\rtf1.*?\}|\\[a-z]+\d*`)
	displayJunkRe = regexp.MustCompile(`[^\x09\x0A\x0D\x20-\x7E]`)
	whitespaceRe  = regexp.MustCompile(`\s+`)
)

// Clean strips RTF remnants and non-printable characters and collapses
// whitespace. Paragraph breaks survive as at most one blank line.
// Clean(Clean(s)) == Clean(s) for every s.
func Clean(s string) string {
	if s == "" {
		return ""
	}

	if isRTF(s) {
		s = rtfControlRe.ReplaceAllString(s, " ")
		s = strings.NewReplacer("{", " ", "}", " ").Replace(s)
	}

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r == '\n' || r == '\t' || (r >= 0x20 && r <= 0x7e) {
			b.WriteRune(r)
		} else {
			b.WriteByte(' ')
		}
	}
	s = b.String()

	s = blankRunRe.ReplaceAllString(s, " ")
	s = newlineRunRe.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}

// CleanForDisplay is the lossier variant used right before analysis: every
// whitespace run, newlines included, becomes a single space.
func CleanForDisplay(s string) string {
	s = displayRTFRe.ReplaceAllString(s, " ")
	s = displayJunkRe.ReplaceAllString(s, " ")
	s = whitespaceRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// isRTF reports whether s opens with the RTF marker. Leading control and
// non-ASCII runes are skipped along with whitespace so that the answer is
// the same before and after cleaning.
func isRTF(s string) bool {
	s = strings.TrimLeftFunc(s, func(r rune) bool { return r <= ' ' || r > '~' })
	return strings.HasPrefix(s, rtfMarker)
}
