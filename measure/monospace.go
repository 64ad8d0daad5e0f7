package measure

import (
	"github.com/tsawler/reflow/model"

	"golang.org/x/text/width"
)

// Default cell geometry for the monospace measurer, chosen to match a
// typical terminal-style reader cell.
const (
	DefaultCellWidth  = 7.0
	DefaultLineHeight = 14.0
)

// indentStepCells is the width of one indentation step, in cells.
const indentStepCells = 2

// Monospace measures content on a fixed character grid. Every rune occupies
// one cell, except East Asian wide and fullwidth runes which occupy two
// (per Unicode UAX #11, via golang.org/x/text/width).
type Monospace struct {
	// CellWidth is the horizontal extent of one cell.
	CellWidth float64

	// LineHeight is the vertical extent of one body line.
	LineHeight float64
}

// NewMonospace creates a monospace measurer with default cell geometry.
func NewMonospace() *Monospace {
	return &Monospace{
		CellWidth:  DefaultCellWidth,
		LineHeight: DefaultLineHeight,
	}
}

// Measure breaks unit into grid lines no wider than width.
func (m *Monospace) Measure(unit model.ContentUnit, w float64) (Measurement, error) {
	cells := int(w / m.CellWidth)
	steps := indentSteps(unit)
	cells -= steps * indentStepCells
	if cells < 1 {
		cells = 1
	}

	var texts []string
	if unit.Kind == model.UnitCode {
		// Code is never word-wrapped; overly long lines break between runes
		// so whitespace stays intact.
		texts = wrapCode(unit.Text, float64(cells), m.cellAdvance)
	} else {
		texts = wrapWords(unit.Text, float64(cells), m.cellAdvance)
	}

	lineHeight := m.LineHeight * unitScale(unit)
	indent := float64(steps*indentStepCells) * m.CellWidth

	lines := make([]model.Line, 0, len(texts))
	for _, t := range texts {
		lines = append(lines, model.Line{
			Text:   t,
			Height: lineHeight,
			Indent: indent,
			Kind:   unit.Kind,
		})
	}

	return Measurement{
		Lines:       lines,
		SpaceBefore: m.LineHeight * spaceBeforeFactor(unit.Kind),
	}, nil
}

// cellAdvance returns the grid width of s in cells.
func (m *Monospace) cellAdvance(s string) float64 {
	var cells int
	for _, r := range s {
		cells += runeCells(r)
	}
	return float64(cells)
}

// runeCells returns the number of grid cells a rune occupies.
func runeCells(r rune) int {
	switch width.LookupRune(r).Kind() {
	case width.EastAsianWide, width.EastAsianFullwidth:
		return 2
	default:
		return 1
	}
}
