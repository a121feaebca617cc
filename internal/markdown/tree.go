// Package markdown turns document text into the render tree shown beside the
// editor and draws it for the terminal.
package markdown

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

type Kind string

const (
	KindHeading       Kind = "heading"
	KindParagraph     Kind = "paragraph"
	KindList          Kind = "list"
	KindCode          Kind = "code"
	KindQuote         Kind = "quote"
	KindThematicBreak Kind = "break"
	KindHTML          Kind = "html"
	KindTable         Kind = "table"
	KindOther         Kind = "other"
)

// Link is an inline or automatic link found in the document. Line is zero
// based.
type Link struct {
	URL   string
	Title string
	Line  int
}

// Node is a top-level block. Level is only set for headings.
type Node struct {
	Kind  Kind
	Level int
	Line  int
	Text  string
}

// Tree is the parsed form of one text snapshot. Source is the snapshot itself
// so the view always draws exactly what was parsed. Preview holds the styled
// output for Width when the tree was built by a Renderer.
type Tree struct {
	Source string
	Nodes  []Node
	Links  []Link

	Preview string
	Width   int
}

var md = goldmark.New(goldmark.WithExtensions(extension.GFM))

// Parse builds the render tree for src. It never fails; unparseable input
// degrades to paragraphs.
func Parse(src string) *Tree {
	source := []byte(src)
	doc := md.Parser().Parse(text.NewReader(source))

	tree := &Tree{Source: src}
	lastLine := 0
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		line := lastLine
		start, ok := firstOffset(n)
		if ok {
			line = lineAt(source, start)
		}
		lastLine = line

		node := Node{Kind: kindOf(n), Line: line}
		if h, ok := n.(*ast.Heading); ok {
			node.Level = h.Level
		}
		node.Text = strings.TrimSpace(string(n.Text(source)))
		tree.Nodes = append(tree.Nodes, node)

		tree.Links = append(tree.Links, collectLinks(n, source, start, line)...)
	}

	return tree
}

// LinksOnLine returns the links that start on the given zero-based line.
func (t *Tree) LinksOnLine(line int) []Link {
	if t == nil {
		return nil
	}
	var out []Link
	for _, l := range t.Links {
		if l.Line == line {
			out = append(out, l)
		}
	}
	return out
}

// Headings returns the heading nodes in document order.
func (t *Tree) Headings() []Node {
	if t == nil {
		return nil
	}
	var out []Node
	for _, n := range t.Nodes {
		if n.Kind == KindHeading {
			out = append(out, n)
		}
	}
	return out
}

func collectLinks(block ast.Node, source []byte, blockStart, blockLine int) []Link {
	var links []Link
	_ = ast.Walk(block, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch link := n.(type) {
		case *ast.Link:
			line := blockLine
			if off, ok := firstOffset(link); ok {
				line = lineAt(source, off)
			}
			links = append(links, Link{
				URL:   string(link.Destination),
				Title: string(link.Title),
				Line:  line,
			})
			return ast.WalkSkipChildren, nil
		case *ast.AutoLink:
			url := string(link.URL(source))
			line := blockLine
			if blockStart >= 0 && blockStart <= len(source) {
				if idx := strings.Index(string(source[blockStart:]), string(link.Label(source))); idx >= 0 {
					line = lineAt(source, blockStart+idx)
				}
			}
			links = append(links, Link{URL: url, Line: line})
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	return links
}

// firstOffset finds the byte offset where n's content begins by looking at
// its own lines or, for container blocks, its first descendant with content.
func firstOffset(n ast.Node) (int, bool) {
	if n.Type() == ast.TypeBlock {
		if lines := n.Lines(); lines != nil && lines.Len() > 0 {
			return lines.At(0).Start, true
		}
	}
	if t, ok := n.(*ast.Text); ok {
		return t.Segment.Start, true
	}
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if off, ok := firstOffset(c); ok {
			return off, true
		}
	}
	return 0, false
}

func lineAt(source []byte, offset int) int {
	if offset > len(source) {
		offset = len(source)
	}
	return strings.Count(string(source[:offset]), "\n")
}

func kindOf(n ast.Node) Kind {
	switch n.Kind() {
	case ast.KindHeading:
		return KindHeading
	case ast.KindParagraph, ast.KindTextBlock:
		return KindParagraph
	case ast.KindList:
		return KindList
	case ast.KindFencedCodeBlock, ast.KindCodeBlock:
		return KindCode
	case ast.KindBlockquote:
		return KindQuote
	case ast.KindThematicBreak:
		return KindThematicBreak
	case ast.KindHTMLBlock:
		return KindHTML
	case extast.KindTable:
		return KindTable
	}
	return KindOther
}
