package markdown

import (
	"strings"
	"testing"

	"github.com/goliatone/go-sitegen/pkg/interfaces"
)

func TestTOCHTML_Nesting(t *testing.T) {
	headings := []interfaces.Heading{
		{Level: 2, ID: "sdk", Text: "What the SDK does"},
		{Level: 3, ID: "deep-dive", Text: "Deep dive"},
		{Level: 2, ID: "you", Text: "What you should do"},
	}

	got := TOCHTML(headings, 0)

	want := `<nav class="toc"><ul><li><a href="#sdk">What the SDK does</a>` +
		`<ul><li><a href="#deep-dive">Deep dive</a></li></ul></li>` +
		`<li><a href="#you">What you should do</a></li></ul></nav>`
	if got != want {
		t.Fatalf("TOCHTML mismatch:\n got %s\nwant %s", got, want)
	}
}

func TestTOCHTML_MaxLevel(t *testing.T) {
	headings := []interfaces.Heading{
		{Level: 2, ID: "a", Text: "A"},
		{Level: 4, ID: "b", Text: "B"},
	}

	got := TOCHTML(headings, 3)
	if strings.Contains(got, "#b") {
		t.Fatalf("expected level 4 heading to be filtered, got %s", got)
	}
}

func TestTOCHTML_Empty(t *testing.T) {
	if got := TOCHTML(nil, 0); got != "" {
		t.Fatalf("expected empty outline to produce no markup, got %q", got)
	}
}

func TestTOCHTML_EscapesText(t *testing.T) {
	headings := []interfaces.Heading{
		{Level: 2, ID: "generics", Text: "Using <T> safely"},
	}

	got := TOCHTML(headings, 0)
	if !strings.Contains(got, "Using &lt;T&gt; safely") {
		t.Fatalf("expected heading text to be escaped, got %s", got)
	}
}
