package markdown

import (
	"strings"
	"testing"
)

const sample = `# Title

Intro with a [link](https://example.com "Example").

- one
- two

## Second

Visit https://go.dev today.
`

func TestParseCollectsBlocks(t *testing.T) {
	tree := Parse(sample)

	if tree.Source != sample {
		t.Fatalf("expected tree to keep its source")
	}

	kinds := []Kind{}
	for _, n := range tree.Nodes {
		kinds = append(kinds, n.Kind)
	}
	want := []Kind{KindHeading, KindParagraph, KindList, KindHeading, KindParagraph}
	if len(kinds) != len(want) {
		t.Fatalf("expected kinds %v, got %v", want, kinds)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Fatalf("expected kinds %v, got %v", want, kinds)
		}
	}

	headings := tree.Headings()
	if len(headings) != 2 {
		t.Fatalf("expected 2 headings, got %d", len(headings))
	}
	if headings[0].Text != "Title" || headings[0].Level != 1 || headings[0].Line != 0 {
		t.Fatalf("unexpected first heading %+v", headings[0])
	}
	if headings[1].Text != "Second" || headings[1].Level != 2 || headings[1].Line != 7 {
		t.Fatalf("unexpected second heading %+v", headings[1])
	}
}

func TestParseCollectsLinks(t *testing.T) {
	tree := Parse(sample)

	if len(tree.Links) != 2 {
		t.Fatalf("expected 2 links, got %+v", tree.Links)
	}

	first := tree.Links[0]
	if first.URL != "https://example.com" || first.Title != "Example" || first.Line != 2 {
		t.Fatalf("unexpected inline link %+v", first)
	}

	second := tree.Links[1]
	if second.URL != "https://go.dev" || second.Line != 9 {
		t.Fatalf("unexpected autolink %+v", second)
	}

	if got := tree.LinksOnLine(2); len(got) != 1 || got[0].URL != "https://example.com" {
		t.Fatalf("expected link on line 2, got %+v", got)
	}
	if got := tree.LinksOnLine(0); len(got) != 0 {
		t.Fatalf("expected no links on heading line, got %+v", got)
	}
}

func TestParseEmpty(t *testing.T) {
	tree := Parse("")
	if len(tree.Nodes) != 0 || len(tree.Links) != 0 {
		t.Fatalf("expected empty tree, got %+v", tree)
	}
}

func TestRendererCachesOutput(t *testing.T) {
	r := NewRenderer("notty")
	tree := Parse("# Hello\n\nworld\n")

	first := r.Render(tree, 40)
	if !strings.Contains(first, "Hello") || !strings.Contains(first, "world") {
		t.Fatalf("expected rendered text to contain content, got %q", first)
	}
	if r.cache.Len() != 1 {
		t.Fatalf("expected one cached render, got %d", r.cache.Len())
	}

	second := r.Render(tree, 40)
	if second != first {
		t.Fatalf("expected cached output to match")
	}
	if r.cache.Len() != 1 {
		t.Fatalf("expected cache hit, got %d entries", r.cache.Len())
	}

	r.Render(tree, 60)
	if r.cache.Len() != 2 {
		t.Fatalf("expected width to be part of the cache key, got %d entries", r.cache.Len())
	}
}

func TestRenderNilTree(t *testing.T) {
	if out := NewRenderer("dark").Render(nil, 80); out != "" {
		t.Fatalf("expected empty output, got %q", out)
	}
}

func TestBuildRendersAtWidth(t *testing.T) {
	r := NewRenderer("notty")
	tree := r.Build("# Hello\n\nworld\n", 40)

	if tree.Width != 40 {
		t.Fatalf("expected width 40, got %d", tree.Width)
	}
	if !strings.Contains(tree.Preview, "Hello") || !strings.Contains(tree.Preview, "world") {
		t.Fatalf("expected preview to contain content, got %q", tree.Preview)
	}
	if len(tree.Headings()) != 1 {
		t.Fatalf("expected parsed heading alongside the preview")
	}
}

func TestBuildWithoutRendererOnlyParses(t *testing.T) {
	var r *Renderer
	tree := r.Build("# Hello\n", 40)
	if tree.Preview != "" || tree.Width != 0 {
		t.Fatalf("expected no preview, got %q at %d", tree.Preview, tree.Width)
	}
	if tree.Source != "# Hello\n" {
		t.Fatalf("expected source to be kept")
	}
}
