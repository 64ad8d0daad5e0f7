package source

import (
	"fmt"
	"io"

	"github.com/tsawler/reflow/model"
)

// MemorySource serves chapters from in-memory content units. It is the
// simplest Source implementation, intended for callers that convert markup
// upstream and for tests.
type MemorySource struct {
	chapters [][]model.ContentUnit
	closed   bool
}

// NewMemorySource creates a source over pre-converted chapter content.
// The slices are retained, not copied.
func NewMemorySource(chapters [][]model.ContentUnit) *MemorySource {
	return &MemorySource{chapters: chapters}
}

// ChapterCount reports the number of chapters.
func (s *MemorySource) ChapterCount() int {
	return len(s.chapters)
}

// Chapter returns a forward-only stream over one chapter's units.
func (s *MemorySource) Chapter(index int) (Stream, error) {
	if s.closed {
		return nil, fmt.Errorf("%w: %v", ErrContent, ErrClosed)
	}
	if index < 0 || index >= len(s.chapters) {
		return nil, fmt.Errorf("chapter %d of %d: %w", index, len(s.chapters), ErrInvalidChapter)
	}
	return &sliceStream{units: s.chapters[index]}, nil
}

// Close marks the source unusable. It is safe to call Close multiple times.
func (s *MemorySource) Close() error {
	s.closed = true
	return nil
}

// Closed reports whether Close has been called.
func (s *MemorySource) Closed() bool {
	return s.closed
}

// sliceStream is a Stream over a fixed unit slice.
type sliceStream struct {
	units []model.ContentUnit
	pos   int
}

func (st *sliceStream) Next() (model.ContentUnit, error) {
	if st.pos >= len(st.units) {
		return model.ContentUnit{}, io.EOF
	}
	u := st.units[st.pos]
	st.pos++
	return u, nil
}
