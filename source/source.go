// Package source defines the document-source capability consumed by the
// pagination engine.
//
// A [Source] exposes one already-opened reader document as spine-ordered
// chapters of forward-only content units. Container parsing (archive,
// manifest, spine extraction) happens upstream of this package; a Source
// only hands out what a container reader already extracted.
//
// Sources are not safe for concurrent use. The engine either borrows a
// Source exclusively for the duration of one call or takes ownership of it
// for the lifetime of an owned page stream; interleaved access to the same
// handle is a caller error.
package source

import (
	"errors"

	"github.com/tsawler/reflow/model"
)

// Sentinel errors returned by document sources.
var (
	// ErrInvalidChapter is returned when a chapter index is outside the
	// document's valid range.
	ErrInvalidChapter = errors.New("source: chapter index out of range")

	// ErrContent is returned when a source cannot supply usable content
	// for a valid chapter index.
	ErrContent = errors.New("source: unusable chapter content")

	// ErrClosed is returned when operating on a closed source.
	ErrClosed = errors.New("source: source is closed")
)

// Stream is a forward-only cursor over one chapter's content units.
// Next returns io.EOF after the last unit. Streams are never rewound;
// a sub-range of pages is obtained by reflowing from the chapter start.
type Stream interface {
	Next() (model.ContentUnit, error)
}

// Source provides chapter-addressed access to one document's content.
type Source interface {
	// ChapterCount reports the number of spine-ordered chapters.
	ChapterCount() int

	// Chapter returns a forward-only stream over one chapter's units.
	// It fails with ErrInvalidChapter for an out-of-range index and with
	// an error wrapping ErrContent when the content cannot be supplied.
	Chapter(index int) (Stream, error)

	// Close releases the source. A closed source supplies no content.
	Close() error
}
