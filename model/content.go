package model

// UnitKind identifies the structural role of a content unit.
type UnitKind int

const (
	UnitParagraph UnitKind = iota
	UnitHeading
	UnitListItem
	UnitBlockquote
	UnitCode
)

// String returns a string representation of the unit kind.
func (k UnitKind) String() string {
	switch k {
	case UnitParagraph:
		return "paragraph"
	case UnitHeading:
		return "heading"
	case UnitListItem:
		return "list-item"
	case UnitBlockquote:
		return "blockquote"
	case UnitCode:
		return "code"
	default:
		return "unknown"
	}
}

// StyleHints carries presentation hints a measurer may honor when breaking
// a unit into lines. Zero values mean "use the measurer's defaults".
type StyleHints struct {
	// Scale multiplies the measurer's base line height (0 = 1.0).
	Scale float64

	// Indent is the nesting depth in indentation steps (list nesting,
	// blockquote depth). The measurer decides the step width.
	Indent int

	// Emphasis marks strongly emphasized content. Purely advisory.
	Emphasis bool
}

// ContentUnit is one element of a chapter's forward-only content stream.
// Units are supplied by a document source and measured, never rendered,
// by this module.
type ContentUnit struct {
	Kind UnitKind

	// Text is the unit's text content.
	Text string

	// Level is the heading level (1-6) for UnitHeading, otherwise 0.
	Level int

	Style StyleHints
}
