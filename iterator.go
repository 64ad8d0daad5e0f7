package reflow

import (
	"errors"
	"fmt"
	"io"

	"github.com/tsawler/reflow/model"
	"github.com/tsawler/reflow/source"
)

// PageIter is a lazy page sequence that borrows its document source: the
// source must stay valid, and must not be used elsewhere, for the iterator's
// lifetime. Chapter validity is checked when the iterator is constructed,
// before any page is produced.
//
// Iteration follows the scanner pattern:
//
//	it, err := engine.PageIterator(src, 0)
//	if err != nil {
//	    // invalid chapter or unusable content
//	}
//	for it.Next() {
//	    page := it.Page()
//	    // ...
//	}
//	if err := it.Err(); err != nil {
//	    // reflow failed mid-chapter
//	}
type PageIter struct {
	engine *Engine
	p      *timedPaginator
	page   model.Page
	err    error
	done   bool
}

// PageIterator creates a borrowed lazy page sequence over one chapter.
// Fully consumed, it yields exactly the pages of RenderChapter, in order.
// Suspension occurs only between pages; an unconsumed iterator costs
// nothing while paused.
func (e *Engine) PageIterator(src source.Source, chapter int) (*PageIter, error) {
	p, err := e.newPaginator(src, chapter)
	if err != nil {
		return nil, err
	}
	return &PageIter{engine: e, p: p}, nil
}

// Next advances to the next page. It returns false when the chapter is
// exhausted or reflow failed; Err distinguishes the two.
func (it *PageIter) Next() bool {
	if it.done {
		return false
	}

	page, err := it.p.Next()
	if errors.Is(err, io.EOF) {
		it.finish(nil)
		return false
	}
	if err != nil {
		it.finish(err)
		return false
	}

	it.page = page
	return true
}

// Page returns the page produced by the last successful Next.
func (it *PageIter) Page() model.Page {
	return it.page
}

// Err returns the terminal error, if any. It is nil after normal exhaustion.
func (it *PageIter) Err() error {
	return it.err
}

// finish records the terminal state and reports the reflow duration.
func (it *PageIter) finish(err error) {
	it.done = true
	it.err = err
	it.engine.emitReflowTime(it.p)
}

// PageStream is a lazy page sequence that owns its document source: the
// caller hands the source over at construction and must not touch it again.
// The stream closes the source when it terminates, whether by exhaustion or
// by failure.
//
// Because the source is not touched until the first advance, every advance
// is itself an outcome: a success carrying a page, or a failure reported by
// Err. The first failure is terminal: no further items, success or failure,
// are ever produced after it.
type PageStream struct {
	engine  *Engine
	src     source.Source
	chapter int

	p    *timedPaginator
	page model.Page
	err  error
	done bool
}

// StreamPages creates an owned lazy page sequence over one chapter, taking
// ownership of src. Fully consumed on a valid chapter, it yields exactly the
// pages of RenderChapter, in order. On an invalid chapter it yields exactly
// one failure, surfaced by the first Next returning false with a non-nil
// Err, then terminates permanently.
func (e *Engine) StreamPages(src source.Source, chapter int) *PageStream {
	return &PageStream{engine: e, src: src, chapter: chapter}
}

// Next advances to the next page. It returns false when the chapter is
// exhausted or production failed; Err distinguishes the two.
func (s *PageStream) Next() bool {
	if s.done {
		return false
	}

	if s.p == nil {
		p, err := s.engine.newPaginator(s.src, s.chapter)
		if err != nil {
			s.finish(err)
			return false
		}
		s.p = p
	}

	page, err := s.p.Next()
	if errors.Is(err, io.EOF) {
		s.finish(nil)
		return false
	}
	if err != nil {
		s.finish(err)
		return false
	}

	s.page = page
	return true
}

// Page returns the page produced by the last successful Next.
func (s *PageStream) Page() model.Page {
	return s.page
}

// Err returns the terminal error, if any. It is nil after normal exhaustion.
func (s *PageStream) Err() error {
	return s.err
}

// finish records the terminal state, closes the owned source, and reports
// the reflow duration when a reflow step actually ran.
func (s *PageStream) finish(err error) {
	s.done = true
	s.err = err

	if cerr := s.src.Close(); cerr != nil && s.err == nil {
		s.err = fmt.Errorf("closing source: %w", cerr)
	}
	if s.p != nil {
		s.engine.emitReflowTime(s.p)
	}
}
