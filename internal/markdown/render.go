package markdown

import (
	"crypto/sha256"

	"github.com/charmbracelet/glamour"
	"github.com/muesli/termenv"

	"github.com/Paintersrp/astromark/internal/cache"
	"github.com/Paintersrp/astromark/internal/logging"
)

const renderCacheSize = 32

type renderKey struct {
	sum   [32]byte
	width int
}

// Renderer draws render trees with glamour, memoizing output per source and
// width so redraws between edits stay cheap.
type Renderer struct {
	style string
	cache *cache.LRU[renderKey, string]
}

// NewRenderer returns a renderer using one of glamour's standard styles.
func NewRenderer(style string) *Renderer {
	return &Renderer{
		style: style,
		cache: cache.New[renderKey, string](renderCacheSize),
	}
}

func (r *Renderer) Style() string {
	return r.style
}

// Build parses src and renders it at width. It does all the expensive work
// for a preview and is meant to run off the event loop. A nil renderer only
// parses.
func (r *Renderer) Build(src string, width int) *Tree {
	tree := Parse(src)
	if r == nil {
		return tree
	}
	tree.Width = width
	tree.Preview = r.Render(tree, width)
	return tree
}

// Render draws tree at the given width. Rendering failures fall back to the
// raw source.
func (r *Renderer) Render(tree *Tree, width int) string {
	if tree == nil {
		return ""
	}
	if width < 10 {
		width = 10
	}

	key := renderKey{sum: sha256.Sum256([]byte(tree.Source)), width: width}
	if out, ok := r.cache.Get(key); ok {
		return out
	}

	tr, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(r.style),
		glamour.WithWordWrap(width),
		glamour.WithColorProfile(termenv.ANSI256),
	)
	if err != nil {
		logging.Errorf("unable to create markdown renderer: %v", err)
		return tree.Source
	}

	out, err := tr.Render(tree.Source)
	if err != nil {
		logging.Errorf("unable to render markdown: %v", err)
		return tree.Source
	}

	r.cache.Put(key, out)
	return out
}
