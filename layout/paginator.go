package layout

import (
	"errors"
	"fmt"
	"io"

	"github.com/tsawler/reflow/measure"
	"github.com/tsawler/reflow/model"
	"github.com/tsawler/reflow/source"
)

// Chrome reservation heights. Chrome regions are content-independent: they
// reduce the usable content area by a fixed amount regardless of what the
// chapter contains, which keeps page boundaries a pure function of
// configuration and content.
const (
	// ProgressHeight is the vertical space reserved for the reading
	// progress indicator when enabled.
	ProgressHeight = 12.0

	// FooterHeight is the vertical space reserved for the footer when
	// enabled.
	FooterHeight = 18.0
)

// Config holds the frozen reflow parameters for one chapter.
type Config struct {
	// Viewport is the reflow target area.
	Viewport model.Viewport

	// ReserveProgress reserves ProgressHeight of the viewport for the
	// progress indicator.
	ReserveProgress bool

	// ReserveFooter reserves FooterHeight of the viewport for the footer.
	ReserveFooter bool
}

// UsableHeight returns the content area height after chrome reservations.
func (c Config) UsableHeight() float64 {
	h := c.Viewport.Height
	if c.ReserveProgress {
		h -= ProgressHeight
	}
	if c.ReserveFooter {
		h -= FooterHeight
	}
	if h < 0 {
		h = 0
	}
	return h
}

// Paginator reflows one chapter into pages, one Next call per page.
//
// A Paginator is single-use and forward-only. It holds the content cursor
// plus the in-progress, not-yet-placed lines; advancement is always
// caller-driven and synchronous, so an unconsumed paginator costs nothing
// while paused.
type Paginator struct {
	cfg      Config
	measurer measure.Measurer
	stream   source.Stream

	// pending are measured lines waiting for placement: the remainder of
	// a unit that overflowed the previous page. Their inter-unit gap was
	// dropped at the page break.
	pending []model.Line

	nextIndex int
	exhausted bool
	err       error
}

// NewPaginator creates a paginator over an already-acquired chapter stream.
func NewPaginator(cfg Config, m measure.Measurer, stream source.Stream) *Paginator {
	return &Paginator{
		cfg:      cfg,
		measurer: m,
		stream:   stream,
	}
}

// Next produces the next page. It returns io.EOF when the chapter is fully
// paginated. Any other error is terminal: it wraps source.ErrContent and
// subsequent calls return the same error.
//
// A chapter with no content units yields exactly one empty page.
func (p *Paginator) Next() (model.Page, error) {
	if p.err != nil {
		return model.Page{}, p.err
	}
	if p.exhausted {
		return model.Page{}, io.EOF
	}

	area := p.cfg.UsableHeight()
	page := model.Page{Index: p.nextIndex}
	var used float64

	place := func(lines []model.Line, gap float64) (rest []model.Line, full bool) {
		for i, line := range lines {
			need := line.Height
			if len(page.Lines) > 0 && gap > 0 {
				need += gap
			}
			if used+need > area && len(page.Lines) > 0 {
				return lines[i:], true
			}
			// Oversized line on an empty page: force-place it alone
			// rather than fail. The page closes immediately after.
			if len(page.Lines) == 0 && line.Height > area {
				page.Lines = append(page.Lines, line)
				used += line.Height
				return lines[i+1:], true
			}
			if len(page.Lines) > 0 && gap > 0 {
				used += gap
			}
			gap = 0
			page.Lines = append(page.Lines, line)
			used += line.Height
		}
		return nil, false
	}

	// Carry-over from the previous page goes first.
	if len(p.pending) > 0 {
		rest, full := place(p.pending, 0)
		p.pending = rest
		if full {
			p.nextIndex++
			return page, nil
		}
	}

	for {
		unit, err := p.stream.Next()
		if errors.Is(err, io.EOF) {
			p.exhausted = true
			// The final partial page still counts; so does the single
			// empty page of an empty chapter.
			if len(page.Lines) > 0 || p.nextIndex == 0 {
				p.nextIndex++
				return page, nil
			}
			return model.Page{}, io.EOF
		}
		if err != nil {
			p.err = contentErr("reading content unit", err)
			return model.Page{}, p.err
		}

		m, err := p.measurer.Measure(unit, p.cfg.Viewport.Width)
		if err != nil {
			p.err = contentErr("measuring content unit", err)
			return model.Page{}, p.err
		}

		rest, full := place(m.Lines, m.SpaceBefore)
		if full {
			p.pending = rest
			p.nextIndex++
			return page, nil
		}
	}
}

// PageIndex returns the index the next produced page will carry.
func (p *Paginator) PageIndex() int {
	return p.nextIndex
}

// contentErr wraps err so callers can always test errors.Is against
// source.ErrContent, whatever the stream or measurer returned.
func contentErr(context string, err error) error {
	if errors.Is(err, source.ErrContent) {
		return fmt.Errorf("%s: %w", context, err)
	}
	return fmt.Errorf("%s: %w: %v", context, source.ErrContent, err)
}
