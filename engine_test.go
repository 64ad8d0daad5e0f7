package reflow

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"testing"

	"github.com/tsawler/reflow/layout"
	"github.com/tsawler/reflow/model"
	"github.com/tsawler/reflow/overlay"
	"github.com/tsawler/reflow/source"
)

// testUnits builds a deterministic chapter long enough to paginate into
// several pages at the test viewport.
func testUnits(paragraphs int) []model.ContentUnit {
	units := make([]model.ContentUnit, 0, paragraphs+1)
	units = append(units, model.ContentUnit{Kind: model.UnitHeading, Text: "Chapter One", Level: 1})
	for i := 0; i < paragraphs; i++ {
		units = append(units, model.ContentUnit{
			Kind: model.UnitParagraph,
			Text: strings.TrimSpace(strings.Repeat(fmt.Sprintf("paragraph %d lorem ipsum dolor sit amet ", i), 8)),
		})
	}
	return units
}

func testSource(paragraphs int) *source.MemorySource {
	return source.NewMemorySource([][]model.ContentUnit{testUnits(paragraphs)})
}

// testConfig is the concrete scenario configuration from the acceptance
// checklist: 420x180 with both chrome elements enabled.
func testConfig() Config {
	return Config{Width: 420, Height: 180, ShowProgress: true, ShowFooter: true}
}

// badSource fails to supply content for every chapter.
type badSource struct{}

func (badSource) ChapterCount() int                  { return 1 }
func (badSource) Chapter(int) (source.Stream, error) { return nil, errors.New("corrupt payload") }
func (badSource) Close() error                       { return nil }

// truncatedSource supplies a fixed prefix of units and then fails
// mid-chapter.
type truncatedSource struct {
	units []model.ContentUnit
}

func (s *truncatedSource) ChapterCount() int { return 1 }
func (s *truncatedSource) Chapter(int) (source.Stream, error) {
	return &truncatedStream{units: s.units}, nil
}
func (s *truncatedSource) Close() error { return nil }

type truncatedStream struct {
	units []model.ContentUnit
	pos   int
}

func (st *truncatedStream) Next() (model.ContentUnit, error) {
	if st.pos >= len(st.units) {
		return model.ContentUnit{}, errors.New("stream truncated")
	}
	u := st.units[st.pos]
	st.pos++
	return u, nil
}

func TestRenderChapter_ProducesContiguousIndices(t *testing.T) {
	engine := New(testConfig())

	pages, err := engine.RenderChapter(testSource(10), 0)
	if err != nil {
		t.Fatalf("RenderChapter: %v", err)
	}
	if len(pages) < 3 {
		t.Fatalf("test chapter should span at least 3 pages, got %d", len(pages))
	}

	for i, page := range pages {
		if page.Index != i {
			t.Errorf("page at position %d has index %d", i, page.Index)
		}
	}
}

func TestRenderChapter_InvalidChapter(t *testing.T) {
	engine := New(testConfig())
	src := testSource(2)

	for _, chapter := range []int{-1, 1, 42} {
		if _, err := engine.RenderChapter(src, chapter); !errors.Is(err, source.ErrInvalidChapter) {
			t.Errorf("chapter %d: expected source.ErrInvalidChapter, got %v", chapter, err)
		}
	}
}

func TestRenderChapter_ContentError(t *testing.T) {
	engine := New(testConfig())

	if _, err := engine.RenderChapter(badSource{}, 0); !errors.Is(err, source.ErrContent) {
		t.Errorf("expected source.ErrContent, got %v", err)
	}
}

func TestAccessModes_AgreeExactly(t *testing.T) {
	engine := New(testConfig())
	units := testUnits(10)
	chapters := [][]model.ContentUnit{units}

	full, err := engine.RenderChapter(source.NewMemorySource(chapters), 0)
	if err != nil {
		t.Fatalf("RenderChapter: %v", err)
	}

	// Range covering everything.
	ranged, err := engine.RenderChapterRange(source.NewMemorySource(chapters), 0, 0, len(full))
	if err != nil {
		t.Fatalf("RenderChapterRange: %v", err)
	}
	if !reflect.DeepEqual(ranged, full) {
		t.Error("RenderChapterRange(0, N) differs from RenderChapter")
	}

	// Borrowed lazy sequence.
	it, err := engine.PageIterator(source.NewMemorySource(chapters), 0)
	if err != nil {
		t.Fatalf("PageIterator: %v", err)
	}
	var borrowed []model.Page
	for it.Next() {
		borrowed = append(borrowed, it.Page())
	}
	if err := it.Err(); err != nil {
		t.Fatalf("PageIter.Err: %v", err)
	}
	if !reflect.DeepEqual(borrowed, full) {
		t.Error("fully consumed PageIterator differs from RenderChapter")
	}

	// Owned streaming sequence.
	stream := engine.StreamPages(source.NewMemorySource(chapters), 0)
	var streamed []model.Page
	for stream.Next() {
		streamed = append(streamed, stream.Page())
	}
	if err := stream.Err(); err != nil {
		t.Fatalf("PageStream.Err: %v", err)
	}
	if !reflect.DeepEqual(streamed, full) {
		t.Error("fully consumed StreamPages differs from RenderChapter")
	}

	// Callback mode without a signal.
	var delivered []model.Page
	err = engine.RenderWithCancel(source.NewMemorySource(chapters), 0, nil, func(p model.Page) {
		delivered = append(delivered, p)
	})
	if err != nil {
		t.Fatalf("RenderWithCancel: %v", err)
	}
	if !reflect.DeepEqual(delivered, full) {
		t.Error("RenderWithCancel delivery differs from RenderChapter")
	}
}

func TestRenderChapterRange_EqualsFullSlice(t *testing.T) {
	engine := New(testConfig())
	src := testSource(10)

	full, err := engine.RenderChapter(src, 0)
	if err != nil {
		t.Fatalf("RenderChapter: %v", err)
	}
	n := len(full)

	tests := []struct {
		start, end int
	}{
		{0, 0},
		{0, 1},
		{1, 3},
		{0, n},
		{n, n},
		{2, n + 50}, // end clamps to n
	}

	for _, tt := range tests {
		got, err := engine.RenderChapterRange(src, 0, tt.start, tt.end)
		if err != nil {
			t.Fatalf("RenderChapterRange(%d, %d): %v", tt.start, tt.end, err)
		}

		end := tt.end
		if end > n {
			end = n
		}
		want := full[tt.start:end]
		if !reflect.DeepEqual(got, want) {
			t.Errorf("RenderChapterRange(%d, %d) differs from full[%d:%d]", tt.start, tt.end, tt.start, end)
		}
	}
}

func TestRenderChapterRange_InvalidArguments(t *testing.T) {
	engine := New(testConfig())
	src := testSource(3)

	tests := []struct {
		start, end int
	}{
		{-1, 2},
		{3, 1},
	}

	for _, tt := range tests {
		if _, err := engine.RenderChapterRange(src, 0, tt.start, tt.end); err == nil {
			t.Errorf("RenderChapterRange(%d, %d): expected an error", tt.start, tt.end)
		}
	}
}

func TestRenderChapterRange_ConcreteScenario(t *testing.T) {
	// Viewport 420x180, progress and footer enabled, a chapter spanning
	// at least 3 pages: pages [1, 3) are exactly the second and third
	// pages of the full render.
	engine := New(testConfig())
	src := testSource(10)

	full, err := engine.RenderChapter(src, 0)
	if err != nil {
		t.Fatalf("RenderChapter: %v", err)
	}
	if len(full) < 3 {
		t.Fatalf("scenario needs at least 3 pages, got %d", len(full))
	}

	got, err := engine.RenderChapterRange(src, 0, 1, 3)
	if err != nil {
		t.Fatalf("RenderChapterRange: %v", err)
	}

	if len(got) != 2 {
		t.Fatalf("expected 2 pages, got %d", len(got))
	}
	if got[0].Index != 1 || got[1].Index != 2 {
		t.Errorf("expected page indices 1 and 2, got %d and %d", got[0].Index, got[1].Index)
	}
	if !reflect.DeepEqual(got, full[1:3]) {
		t.Error("range result differs from the full render's slice")
	}
}

func TestRenderWithCancel_AlreadySignalled(t *testing.T) {
	engine := New(testConfig())

	calls := 0
	err := engine.RenderWithCancel(testSource(5), 0, CancelFunc(func() bool { return true }), func(model.Page) {
		calls++
	})

	if !errors.Is(err, ErrCancelled) {
		t.Fatalf("expected ErrCancelled, got %v", err)
	}
	if calls != 0 {
		t.Errorf("callback invoked %d times, want 0", calls)
	}
}

func TestRenderWithCancel_MidSequenceKeepsDeliveredPages(t *testing.T) {
	engine := New(testConfig())
	src := testSource(10)

	full, err := engine.RenderChapter(src, 0)
	if err != nil {
		t.Fatalf("RenderChapter: %v", err)
	}

	// Trip the signal once the first page has been delivered.
	var delivered []model.Page
	signal := CancelFunc(func() bool { return len(delivered) >= 1 })

	err = engine.RenderWithCancel(src, 0, signal, func(p model.Page) {
		delivered = append(delivered, p)
	})

	if !errors.Is(err, ErrCancelled) {
		t.Fatalf("expected ErrCancelled, got %v", err)
	}
	if len(delivered) != 1 {
		t.Fatalf("expected exactly 1 delivered page, got %d", len(delivered))
	}
	if !reflect.DeepEqual(delivered[0], full[0]) {
		t.Error("delivered page differs from the full render's first page")
	}
}

func TestRenderWithCancel_ContentErrorAfterDelivery(t *testing.T) {
	// A source that fails mid-chapter: pages delivered before the
	// failure stand, and the call reports a content error.
	engine := New(Config{Width: 420, Height: 34})
	src := &truncatedSource{units: testUnits(4)[1:]} // paragraphs only

	delivered := 0
	err := engine.RenderWithCancel(src, 0, nil, func(model.Page) { delivered++ })

	if !errors.Is(err, source.ErrContent) {
		t.Fatalf("expected source.ErrContent, got %v", err)
	}
	if delivered == 0 {
		t.Error("expected pages delivered before the failure to stand")
	}
}

func TestRenderWithOverlay_AttachesComposedItems(t *testing.T) {
	engine := New(testConfig())
	viewport := overlay.Viewport{Width: 100, Height: 30}

	var seenMetrics []overlay.PageMetrics
	var seenViewports []overlay.Viewport
	composer := overlay.ComposeFunc(func(m overlay.PageMetrics, vp overlay.Viewport) []overlay.Item {
		seenMetrics = append(seenMetrics, m)
		seenViewports = append(seenViewports, vp)
		return []overlay.Item{{
			Slot:    overlay.BottomCenter,
			Z:       1,
			Content: overlay.Text(fmt.Sprintf("%d", m.PageIndex+1)),
		}}
	})

	var pages []model.Page
	err := engine.RenderWithOverlay(testSource(10), 0, viewport, composer, func(p model.Page) {
		pages = append(pages, p)
	})
	if err != nil {
		t.Fatalf("RenderWithOverlay: %v", err)
	}
	if len(pages) == 0 {
		t.Fatal("no pages produced")
	}

	for i, page := range pages {
		if len(page.Overlays) != 1 {
			t.Fatalf("page %d: expected exactly 1 overlay item, got %d", i, len(page.Overlays))
		}
		item := page.Overlays[0]
		if item.Slot != overlay.BottomCenter {
			t.Errorf("page %d: slot = %s, want bottom-center", i, item.Slot)
		}
		if want := overlay.Text(fmt.Sprintf("%d", i+1)); item.Content != want {
			t.Errorf("page %d: content = %v, want %v", i, item.Content, want)
		}
		if seenMetrics[i].PageIndex != page.Index {
			t.Errorf("page %d: composer saw index %d", i, seenMetrics[i].PageIndex)
		}
		if seenMetrics[i].LineCount != len(page.Lines) {
			t.Errorf("page %d: composer saw %d lines, page has %d", i, seenMetrics[i].LineCount, len(page.Lines))
		}
		if seenViewports[i] != viewport {
			t.Errorf("page %d: composer saw viewport %+v", i, seenViewports[i])
		}
	}
}

func TestRenderWithOverlay_EmptyComposeIsNeverAbsent(t *testing.T) {
	engine := New(testConfig())

	composer := overlay.ComposeFunc(func(overlay.PageMetrics, overlay.Viewport) []overlay.Item {
		return nil
	})

	err := engine.RenderWithOverlay(testSource(4), 0, overlay.Viewport{}, composer, func(p model.Page) {
		if p.Overlays == nil {
			t.Errorf("page %d: Overlays is absent, want empty", p.Index)
		}
		if len(p.Overlays) != 0 {
			t.Errorf("page %d: expected no overlay items, got %d", p.Index, len(p.Overlays))
		}
	})
	if err != nil {
		t.Fatalf("RenderWithOverlay: %v", err)
	}
}

func TestRenderChapter_MatchesOverlayModeContent(t *testing.T) {
	// Overlay composition must not disturb page boundaries or content.
	engine := New(testConfig())
	units := testUnits(10)

	full, err := engine.RenderChapter(source.NewMemorySource([][]model.ContentUnit{units}), 0)
	if err != nil {
		t.Fatalf("RenderChapter: %v", err)
	}

	composer := overlay.ComposeFunc(func(overlay.PageMetrics, overlay.Viewport) []overlay.Item {
		return []overlay.Item{{Slot: overlay.TopRight, Content: overlay.Text("x")}}
	})

	i := 0
	err = engine.RenderWithOverlay(source.NewMemorySource([][]model.ContentUnit{units}), 0, overlay.Viewport{}, composer, func(p model.Page) {
		if i >= len(full) {
			t.Fatalf("overlay mode produced extra page %d", p.Index)
		}
		if !reflect.DeepEqual(p.Lines, full[i].Lines) {
			t.Errorf("page %d: content differs between overlay mode and batch mode", i)
		}
		i++
	})
	if err != nil {
		t.Fatalf("RenderWithOverlay: %v", err)
	}
	if i != len(full) {
		t.Errorf("overlay mode produced %d pages, batch produced %d", i, len(full))
	}
}

func TestEmptyChapter_SingleEmptyPageInAllModes(t *testing.T) {
	engine := New(testConfig())
	chapters := [][]model.ContentUnit{{}}

	full, err := engine.RenderChapter(source.NewMemorySource(chapters), 0)
	if err != nil {
		t.Fatalf("RenderChapter: %v", err)
	}
	if len(full) != 1 || len(full[0].Lines) != 0 {
		t.Fatalf("expected one empty page, got %+v", full)
	}

	stream := engine.StreamPages(source.NewMemorySource(chapters), 0)
	var streamed []model.Page
	for stream.Next() {
		streamed = append(streamed, stream.Page())
	}
	if err := stream.Err(); err != nil {
		t.Fatalf("PageStream.Err: %v", err)
	}
	if !reflect.DeepEqual(streamed, full) {
		t.Error("streamed empty chapter differs from batch render")
	}
}

func TestUsableAreaMatchesChromeConstants(t *testing.T) {
	// The concrete scenario viewport: 180 high with both chrome bands.
	cfg := testConfig().layout()
	want := 180.0 - layout.ProgressHeight - layout.FooterHeight
	if got := cfg.UsableHeight(); got != want {
		t.Errorf("UsableHeight() = %v, want %v", got, want)
	}
}
