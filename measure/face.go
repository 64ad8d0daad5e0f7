package measure

import (
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/tsawler/reflow/model"
)

// FaceMeasurer measures content with proportional font metrics from a
// golang.org/x/image/font Face. It performs no rasterization; only advances
// and vertical metrics are consulted, so measurement stays deterministic
// for a fixed face.
type FaceMeasurer struct {
	face       font.Face
	lineHeight float64
	indentStep float64
}

// NewFace creates a measurer over the given face. A nil face selects
// basicfont.Face7x13.
func NewFace(face font.Face) *FaceMeasurer {
	if face == nil {
		face = basicfont.Face7x13
	}
	metrics := face.Metrics()
	return &FaceMeasurer{
		face:       face,
		lineHeight: fixedToFloat(metrics.Height),
		indentStep: fixedToFloat(font.MeasureString(face, "  ")),
	}
}

// Measure breaks unit into lines no wider than width using the face's
// string advances.
func (m *FaceMeasurer) Measure(unit model.ContentUnit, w float64) (Measurement, error) {
	steps := indentSteps(unit)
	indent := float64(steps) * m.indentStep
	avail := w - indent
	if avail < 1 {
		avail = 1
	}

	var texts []string
	if unit.Kind == model.UnitCode {
		texts = wrapCode(unit.Text, avail, m.advance)
	} else {
		texts = wrapWords(unit.Text, avail, m.advance)
	}

	lineHeight := m.lineHeight * unitScale(unit)

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
		SpaceBefore: m.lineHeight * spaceBeforeFactor(unit.Kind),
	}, nil
}

// advance returns the horizontal extent of s under the measurer's face.
func (m *FaceMeasurer) advance(s string) float64 {
	return fixedToFloat(font.MeasureString(m.face, s))
}

// fixedToFloat converts a 26.6 fixed-point value to float64.
func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}
