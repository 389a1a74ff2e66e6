package parser

import (
	"strings"
	"testing"
)

func TestHTMLParser_HeadingsAndSkippedElements(t *testing.T) {
	input := `<html><head><title>My Speech</title><style>p{}</style></head>
<body>
<nav>Home | About</nav>
<p>Opening words.</p>
<h1>Part One</h1>
<p>First point.</p>
<script>alert("x")</script>
<h2>Detail</h2>
<ul><li>Item A</li><li>Item B</li></ul>
</body></html>`

	tree, err := (&HTMLParser{}).Parse(strings.NewReader(input), "speech.html")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tree.Title != "My Speech" {
		t.Errorf("expected title from <title>, got %q", tree.Title)
	}
	if len(tree.Children) != 2 {
		t.Fatalf("expected intro text plus one h1, got %d children", len(tree.Children))
	}
	if tree.Children[0].Text != "Opening words." {
		t.Errorf("expected intro text first, got %q", tree.Children[0].Text)
	}

	text := tree.Text()
	for _, want := range []string{"Part One", "First point.", "Detail", "Item A", "Item B"} {
		if !strings.Contains(text, want) {
			t.Errorf("expected %q in %q", want, text)
		}
	}
	for _, unwanted := range []string{"Home | About", "alert", "p{}"} {
		if strings.Contains(text, unwanted) {
			t.Errorf("did not expect %q in %q", unwanted, text)
		}
	}
}

func TestHTMLParser_FilenameTitle(t *testing.T) {
	tree, err := (&HTMLParser{}).Parse(strings.NewReader("<p>hi</p>"), "page.htm")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tree.Title != "page" {
		t.Errorf("expected %q, got %q", "page", tree.Title)
	}
}

func TestHTMLParser_LineBreaksAndWhitespace(t *testing.T) {
	input := `<body>
<p>JULIET:   O Romeo,
   Romeo!<br>Wherefore art thou Romeo?</p>
<pre>  keep
    this</pre>
<div>Loose <b>bold</b> line.</div>
</body>`

	tree, err := (&HTMLParser{}).Parse(strings.NewReader(input), "scene.html")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := tree.Text()
	want := "JULIET: O Romeo, Romeo!\nWherefore art thou Romeo?\n\n  keep\n    this\n\nLoose bold line."
	if got != want {
		t.Errorf("text mismatch\n got: %q\nwant: %q", got, want)
	}
}

func TestHTMLParser_NestedHeadings(t *testing.T) {
	input := `<h1>Act I</h1><h2>Scene 1</h2><p>a</p><h2>Scene 2</h2><p>b</p><h1>Act II</h1><p>c</p>`
	tree, err := (&HTMLParser{}).Parse(strings.NewReader(input), "play.html")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tree.Children) != 2 {
		t.Fatalf("expected 2 acts, got %d", len(tree.Children))
	}
	act1 := tree.Children[0]
	if act1.Title != "Act I" || len(act1.Children) != 2 || act1.Children[1].Text != "b" {
		t.Errorf("unexpected Act I: %+v", act1)
	}
	if tree.Children[1].Text != "c" {
		t.Errorf("Act II text = %q", tree.Children[1].Text)
	}
}
