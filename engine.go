package reflow

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/tsawler/reflow/diag"
	"github.com/tsawler/reflow/layout"
	"github.com/tsawler/reflow/measure"
	"github.com/tsawler/reflow/model"
	"github.com/tsawler/reflow/overlay"
	"github.com/tsawler/reflow/source"
)

// ErrCancelled is returned when cancellation is observed before or while
// producing pages.
var ErrCancelled = errors.New("reflow: render cancelled")

// Engine orchestrates the reflow process across its access modes. The bound
// configuration and measurer never change; the diagnostic sink is the only
// mutable engine state.
//
// An Engine borrows the document source exclusively for the duration of each
// call, except StreamPages which takes ownership of it. Engines hold no
// per-document state, so one engine may serve many documents sequentially.
type Engine struct {
	cfg      Config
	measurer measure.Measurer
	sink     diag.Sink
}

// viewport returns the configured reflow viewport.
func (c Config) viewport() model.Viewport {
	return model.Viewport{Width: c.Width, Height: c.Height}
}

// SetDiagnosticSink registers a sink receiving instrumentation events for
// every subsequent chapter render on this engine. Re-registering overwrites
// the previous sink; nil clears it. Sink calls are synchronous on the
// rendering goroutine and are not guarded against sink failures.
func (e *Engine) SetDiagnosticSink(sink diag.Sink) {
	e.sink = sink
}

// newPaginator validates the chapter index, acquires the chapter's content
// stream, and builds the single reflow path every access mode shares.
func (e *Engine) newPaginator(src source.Source, chapter int) (*timedPaginator, error) {
	count := src.ChapterCount()
	if chapter < 0 || chapter >= count {
		return nil, fmt.Errorf("chapter %d of %d: %w", chapter, count, source.ErrInvalidChapter)
	}

	stream, err := src.Chapter(chapter)
	if err != nil {
		if errors.Is(err, source.ErrInvalidChapter) || errors.Is(err, source.ErrContent) {
			return nil, err
		}
		return nil, fmt.Errorf("acquiring chapter %d: %w: %v", chapter, source.ErrContent, err)
	}

	return &timedPaginator{
		p: layout.NewPaginator(e.cfg.layout(), e.measurer, stream),
	}, nil
}

// timedPaginator accumulates the wall-clock time spent inside the reflow
// step, excluding caller pauses between pages and callback work.
type timedPaginator struct {
	p       *layout.Paginator
	elapsed time.Duration
}

func (t *timedPaginator) Next() (model.Page, error) {
	start := time.Now()
	page, err := t.p.Next()
	t.elapsed += time.Since(start)
	return page, err
}

func (t *timedPaginator) PageIndex() int {
	return t.p.PageIndex()
}

// emitReflowTime reports the accumulated reflow duration to the registered
// sink, if any.
func (e *Engine) emitReflowTime(t *timedPaginator) {
	if e.sink == nil {
		return
	}
	ms := float64(t.elapsed) / float64(time.Millisecond)
	e.sink.Receive(diag.ReflowTimeMs(ms))
}

// RenderChapter reflows one chapter and returns its complete ordered page
// sequence. The source is borrowed for the duration of the call only.
//
// It fails with an error wrapping source.ErrInvalidChapter when chapter is
// outside the document's range, and with one wrapping source.ErrContent when
// the source cannot supply usable content.
func (e *Engine) RenderChapter(src source.Source, chapter int) ([]model.Page, error) {
	p, err := e.newPaginator(src, chapter)
	if err != nil {
		return nil, err
	}
	defer e.emitReflowTime(p)

	var pages []model.Page
	for {
		page, err := p.Next()
		if errors.Is(err, io.EOF) {
			return pages, nil
		}
		if err != nil {
			return nil, err
		}
		pages = append(pages, page)
	}
}

// RenderChapterRange reflows one chapter and returns the half-open page
// range [start, end). The result always equals the corresponding slice of
// RenderChapter's output: the full reflow runs and the range is selected
// from it, never computed by a shortcut that could diverge.
//
// end is silently clamped to the chapter's page count. A negative start or
// a start greater than end is an argument error.
func (e *Engine) RenderChapterRange(src source.Source, chapter, start, end int) ([]model.Page, error) {
	if start < 0 || end < start {
		return nil, fmt.Errorf("reflow: invalid page range [%d, %d)", start, end)
	}

	pages, err := e.RenderChapter(src, chapter)
	if err != nil {
		return nil, err
	}

	if start > len(pages) {
		start = len(pages)
	}
	if end > len(pages) {
		end = len(pages)
	}
	return pages[start:end], nil
}

// RenderWithCancel drives production page by page, invoking fn with each
// page as produced. The cancel signal is polled immediately before producing
// each page, including the first; it cannot interrupt a page already being
// measured.
//
// If signal is already set at entry, zero pages are produced, fn is invoked
// zero times, and the call fails with ErrCancelled. If it trips
// mid-sequence, production stops after the last delivered page; prior fn
// invocations stand (cancellation is non-transactional).
func (e *Engine) RenderWithCancel(src source.Source, chapter int, signal CancelSignal, fn func(model.Page)) error {
	p, err := e.newPaginator(src, chapter)
	if err != nil {
		return err
	}
	defer e.emitReflowTime(p)

	for {
		if signal != nil && signal.Cancelled() {
			return fmt.Errorf("chapter %d after %d pages: %w", chapter, p.PageIndex(), ErrCancelled)
		}

		page, err := p.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if fn != nil {
			fn(page)
		}
	}
}

// RenderWithOverlay drives production page by page, composing decoration for
// every page before handing it to fn. The composer receives the page's
// transient metrics and the overlay viewport (which is independent of the
// reflow viewport); returned items attach to the page in composer order.
// A page's Overlays is always non-nil in this mode, empty when the composer
// returned nothing.
func (e *Engine) RenderWithOverlay(src source.Source, chapter int, viewport overlay.Viewport, composer overlay.Composer, fn func(model.Page)) error {
	p, err := e.newPaginator(src, chapter)
	if err != nil {
		return err
	}
	defer e.emitReflowTime(p)

	for {
		page, err := p.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		items := make([]overlay.Item, 0)
		if composer != nil {
			metrics := overlay.PageMetrics{
				PageIndex: page.Index,
				LineCount: len(page.Lines),
			}
			items = append(items, composer.Compose(metrics, viewport)...)
		}
		page.Overlays = items

		if fn != nil {
			fn(page)
		}
	}
}
