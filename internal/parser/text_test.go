package parser

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func parseText(t *testing.T, input, filename string) (string, []string) {
	t.Helper()
	tree, err := (&TextParser{}).Parse(strings.NewReader(input), filename)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var got []string
	for _, c := range tree.Children {
		got = append(got, c.Text)
	}
	return tree.Title, got
}

func TestTextParser_KeepsRawText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "paragraphs stay in one node",
			input: "Friends, neighbors.\nLend me your ears.\n\nI come to bury Caesar.",
			want:  []string{"Friends, neighbors.\nLend me your ears.\n\nI come to bury Caesar."},
		},
		{"single line", "Hello world", []string{"Hello world"}},
		{"empty", "", nil},
		{"whitespace only", " \r\n\t\n", nil},
		{"runs of blank lines", "Para one.\n\n\n\nPara two.", []string{"Para one.\n\n\n\nPara two."}},
		{"whitespace-only line kept", "Para one.\n   \t\nPara two.", []string{"Para one.\n   \t\nPara two."}},
		{"CRLF kept", "Line one.\r\nLine two.\r\n\r\nNext.\r\n", []string{"Line one.\r\nLine two.\r\n\r\nNext.\r\n"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, got := parseText(t, tc.input, "speech.txt")
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("nodes mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestTextParser_TitleFromFilename(t *testing.T) {
	for _, name := range []string{"closing.txt", "closing.rtf", "closing.text"} {
		if title, _ := parseText(t, "x", name); title != "closing" {
			t.Errorf("%s: title = %q, want %q", name, title, "closing")
		}
	}
}

func TestTextParser_UTF16WithBOM(t *testing.T) {
	// "Hi.\r\n\r\nBye." as UTF-16LE with a byte order mark, as saved by Notepad.
	raw := []byte{0xFF, 0xFE, 'H', 0, 'i', 0, '.', 0, '\r', 0, '\n', 0, '\r', 0, '\n', 0, 'B', 0, 'y', 0, 'e', 0, '.', 0}
	_, got := parseText(t, string(raw), "notepad.txt")
	if diff := cmp.Diff([]string{"Hi.\r\n\r\nBye."}, got); diff != "" {
		t.Errorf("nodes mismatch (-want +got):\n%s", diff)
	}
}

func TestTextParser_LongLine(t *testing.T) {
	long := strings.Repeat("word ", 300000)
	_, got := parseText(t, long, "monologue.txt")
	if len(got) != 1 || len(got[0]) != len(long) {
		t.Fatalf("expected the long line as one node, got %d nodes", len(got))
	}
}

func TestExtract_TextTrimmedOnlyAtEnds(t *testing.T) {
	got, err := Extract("cue.txt", []byte("\r\n  Enter.\r\n\r\n\r\nExit.\r\n"), Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := "Enter.\r\n\r\n\r\nExit."; got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}
