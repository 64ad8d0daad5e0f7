package measure

import (
	"testing"

	"golang.org/x/image/font/basicfont"

	"github.com/tsawler/reflow/model"
)

func TestFaceMeasurer_DefaultsToBasicfont(t *testing.T) {
	m := NewFace(nil)

	got, err := m.Measure(model.ContentUnit{Kind: model.UnitParagraph, Text: "hello"}, 200)
	if err != nil {
		t.Fatalf("Measure: %v", err)
	}
	if len(got.Lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(got.Lines))
	}
	if got.Lines[0].Height <= 0 {
		t.Errorf("expected positive line height, got %v", got.Lines[0].Height)
	}
}

func TestFaceMeasurer_WrapsByAdvance(t *testing.T) {
	// Face7x13 advances 7 per glyph: 70 points fit 10 characters.
	m := NewFace(basicfont.Face7x13)

	got, err := m.Measure(model.ContentUnit{Kind: model.UnitParagraph, Text: "aaaa bbbb cccc"}, 70)
	if err != nil {
		t.Fatalf("Measure: %v", err)
	}

	want := []string{"aaaa bbbb", "cccc"}
	if texts := lineTexts(got); len(texts) != 2 || texts[0] != want[0] || texts[1] != want[1] {
		t.Errorf("lines = %v, want %v", texts, want)
	}
}

func TestFaceMeasurer_HeadingTallerThanBody(t *testing.T) {
	m := NewFace(basicfont.Face7x13)

	body, err := m.Measure(model.ContentUnit{Kind: model.UnitParagraph, Text: "x"}, 200)
	if err != nil {
		t.Fatalf("Measure paragraph: %v", err)
	}
	head, err := m.Measure(model.ContentUnit{Kind: model.UnitHeading, Text: "x", Level: 1}, 200)
	if err != nil {
		t.Fatalf("Measure heading: %v", err)
	}

	if head.Lines[0].Height <= body.Lines[0].Height {
		t.Errorf("heading height %v should exceed body height %v",
			head.Lines[0].Height, body.Lines[0].Height)
	}
}

func TestFaceMeasurer_Deterministic(t *testing.T) {
	m := NewFace(basicfont.Face7x13)
	unit := model.ContentUnit{Kind: model.UnitParagraph, Text: "the quick brown fox jumps over the lazy dog"}

	first, err := m.Measure(unit, 100)
	if err != nil {
		t.Fatalf("Measure: %v", err)
	}
	second, err := m.Measure(unit, 100)
	if err != nil {
		t.Fatalf("Measure: %v", err)
	}

	if len(first.Lines) != len(second.Lines) {
		t.Fatalf("line counts differ: %d vs %d", len(first.Lines), len(second.Lines))
	}
	for i := range first.Lines {
		if first.Lines[i] != second.Lines[i] {
			t.Errorf("line %d differs: %+v vs %+v", i, first.Lines[i], second.Lines[i])
		}
	}
}
