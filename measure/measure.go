// Package measure defines the content-measurer capability consumed by the
// pagination engine.
//
// A [Measurer] turns one content unit into the lines it would occupy at a
// given available width. The returned lines are the unit's break points: the
// paginator may split a unit across pages at line boundaries, never below
// them. Measurement must be deterministic (identical unit, width, and
// measurer state always produce identical results) because page boundaries
// are part of the engine's cache-key contract.
package measure

import (
	"strings"

	"github.com/tsawler/reflow/model"
)

// Measurement is the result of measuring one content unit against a width.
type Measurement struct {
	// Lines are the unit's break points, in order. Each carries its own
	// height so mixed-size content stacks correctly.
	Lines []model.Line

	// SpaceBefore is the vertical gap requested before the unit's first
	// line. The paginator applies it only when the page already has
	// content and drops it across a page break.
	SpaceBefore float64
}

// Measurer measures content units against an available width.
type Measurer interface {
	Measure(unit model.ContentUnit, width float64) (Measurement, error)
}

// headingScale returns the line-height multiplier for a heading level.
// Level 1 is largest; levels beyond 6 degrade to body size.
func headingScale(level int) float64 {
	switch level {
	case 1:
		return 2.0
	case 2:
		return 1.75
	case 3:
		return 1.5
	case 4:
		return 1.3
	case 5:
		return 1.15
	default:
		return 1.0
	}
}

// unitScale resolves a unit's line-height multiplier: an explicit style hint
// wins, then the kind default.
func unitScale(unit model.ContentUnit) float64 {
	if unit.Style.Scale > 0 {
		return unit.Style.Scale
	}
	if unit.Kind == model.UnitHeading {
		return headingScale(unit.Level)
	}
	return 1.0
}

// indentSteps resolves a unit's indentation depth. Blockquotes indent at
// least one step even without an explicit hint.
func indentSteps(unit model.ContentUnit) int {
	steps := unit.Style.Indent
	if unit.Kind == model.UnitBlockquote && steps == 0 {
		steps = 1
	}
	if steps < 0 {
		steps = 0
	}
	return steps
}

// spaceBeforeFactor returns the inter-unit gap as a fraction of the base
// line height, by unit kind.
func spaceBeforeFactor(kind model.UnitKind) float64 {
	switch kind {
	case model.UnitHeading:
		return 1.0
	case model.UnitListItem:
		return 0.0
	default:
		return 0.5
	}
}

// wrapWords breaks text into lines no wider than maxAdvance, using advance
// to measure candidate strings. Wrapping is greedy on space-separated words;
// a single word wider than maxAdvance is broken at rune granularity.
func wrapWords(text string, maxAdvance float64, advance func(string) float64) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	var lines []string
	var current string

	flush := func() {
		if current != "" {
			lines = append(lines, current)
			current = ""
		}
	}

	for _, word := range words {
		candidate := word
		if current != "" {
			candidate = current + " " + word
		}
		if advance(candidate) <= maxAdvance {
			current = candidate
			continue
		}
		flush()
		if advance(word) <= maxAdvance {
			current = word
			continue
		}
		// Word alone exceeds the width: break it at rune granularity.
		for _, piece := range breakRunes(word, maxAdvance, advance) {
			lines = append(lines, piece)
		}
		// Re-open the last piece so following words can join it.
		if n := len(lines); n > 0 {
			current = lines[n-1]
			lines = lines[:n-1]
		}
	}
	flush()

	return lines
}

// wrapCode breaks preformatted text into lines: hard newlines are kept, and
// overly long lines break between runes so embedded whitespace stays intact.
func wrapCode(text string, maxAdvance float64, advance func(string) float64) []string {
	var lines []string
	for _, raw := range strings.Split(text, "\n") {
		if raw == "" {
			lines = append(lines, "")
			continue
		}
		lines = append(lines, breakRunes(raw, maxAdvance, advance)...)
	}
	return lines
}

// breakRunes splits s into pieces no wider than maxAdvance, breaking between
// runes. Every piece contains at least one rune so progress is guaranteed.
func breakRunes(s string, maxAdvance float64, advance func(string) float64) []string {
	var pieces []string
	var current string

	for _, r := range s {
		candidate := current + string(r)
		if current != "" && advance(candidate) > maxAdvance {
			pieces = append(pieces, current)
			current = string(r)
			continue
		}
		current = candidate
	}
	if current != "" {
		pieces = append(pieces, current)
	}

	return pieces
}
