// Package overlay defines per-page decoration attached after layout.
//
// Overlays never participate in reflow: the engine lays out a page first,
// then asks an attached [Composer] for decoration items positioned by slot
// and stacking order. Composers receive transient [PageMetrics] and compose
// against their own [Viewport], which is independent of the reflow viewport.
package overlay

// Slot names one of the six fixed anchor regions for overlay items.
type Slot int

const (
	TopLeft Slot = iota
	TopCenter
	TopRight
	BottomLeft
	BottomCenter
	BottomRight
)

// String returns a string representation of the slot.
func (s Slot) String() string {
	switch s {
	case TopLeft:
		return "top-left"
	case TopCenter:
		return "top-center"
	case TopRight:
		return "top-right"
	case BottomLeft:
		return "bottom-left"
	case BottomCenter:
		return "bottom-center"
	case BottomRight:
		return "bottom-right"
	default:
		return "unknown"
	}
}

// Content is the sealed payload variant of an overlay item. The only
// concrete type today is [Text]; display integrations may grow more kinds.
type Content interface {
	overlayContent()
}

// Text is plain-text overlay content.
type Text string

func (Text) overlayContent() {}

// Item is one piece of page decoration. Items sharing a slot stack by Z,
// higher drawn over lower.
type Item struct {
	Slot    Slot
	Z       int
	Content Content
}

// Viewport is the logical canvas a composer positions items against. It is
// independent of the reflow viewport; callers may decorate a differently
// sized surface than the one the content was paginated for.
type Viewport struct {
	Width  float64
	Height float64
}

// PageMetrics describes the page being decorated. It is passed to a composer
// at composition time and does not outlive that call.
type PageMetrics struct {
	// PageIndex is the page's 0-based index within its chapter.
	PageIndex int

	// LineCount is the number of laid-out lines on the page.
	LineCount int
}

// Composer computes the decoration for one page.
type Composer interface {
	Compose(metrics PageMetrics, viewport Viewport) []Item
}

// ComposeFunc adapts a function to the Composer interface.
type ComposeFunc func(metrics PageMetrics, viewport Viewport) []Item

// Compose calls f.
func (f ComposeFunc) Compose(metrics PageMetrics, viewport Viewport) []Item {
	return f(metrics, viewport)
}
