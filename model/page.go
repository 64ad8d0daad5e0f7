package model

import "github.com/tsawler/reflow/overlay"

// Viewport describes the reflow target area in device-independent units.
type Viewport struct {
	Width  float64
	Height float64
}

// Line is one laid-out line of page content: a measurer-produced break point
// of a content unit, placed on a page by the paginator.
type Line struct {
	// Text is the line's text content.
	Text string

	// Height is the line's vertical extent, including leading.
	Height float64

	// Indent is the horizontal offset from the content area's left edge.
	Indent float64

	// Kind is the kind of the unit this line came from.
	Kind UnitKind
}

// Page is the maximal run of chapter content fitting one viewport under the
// active chrome configuration. A page is produced once per render call and
// owned by the caller thereafter.
type Page struct {
	// Index is the page's 0-based position within its chapter. Indices
	// within one render are strictly increasing and contiguous from zero.
	Index int

	// Lines is the laid-out content, top to bottom.
	Lines []Line

	// Overlays is the ordered decoration attached post-layout. It is
	// empty unless a composer was attached to the producing render call.
	Overlays []overlay.Item
}

// ContentHeight returns the summed height of the page's lines.
func (p *Page) ContentHeight() float64 {
	var h float64
	for _, l := range p.Lines {
		h += l.Height
	}
	return h
}

// Text concatenates the page's lines, one per row. Useful for tests and
// plain-text consumers.
func (p *Page) Text() string {
	var s string
	for i, l := range p.Lines {
		if i > 0 {
			s += "\n"
		}
		s += l.Text
	}
	return s
}
