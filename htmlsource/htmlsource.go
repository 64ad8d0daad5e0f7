// Package htmlsource provides a document source over pre-extracted XHTML
// chapter payloads.
//
// Container parsing (archive, manifest, spine extraction) happens upstream:
// this package receives each chapter's markup as a raw byte payload, already
// pulled from its container in spine order, and converts it into the
// forward-only content units the pagination engine consumes. Headings,
// paragraphs, list items, blockquotes, and code blocks become units with
// style hints; navigation and non-content elements are skipped.
package htmlsource

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"

	"github.com/tsawler/reflow/model"
	"github.com/tsawler/reflow/source"
)

// Source serves chapters from raw XHTML payloads. Chapters are parsed
// lazily, once per Chapter call; parsing is deterministic for fixed
// payloads so repeated reflows see identical unit streams.
type Source struct {
	chapters [][]byte
	closed   bool
}

// New creates a source over spine-ordered chapter payloads. The payload
// slices are retained, not copied.
func New(chapters [][]byte) *Source {
	return &Source{chapters: chapters}
}

// ChapterCount reports the number of chapters.
func (s *Source) ChapterCount() int {
	return len(s.chapters)
}

// Chapter parses one chapter's markup and returns a stream over its units.
func (s *Source) Chapter(index int) (source.Stream, error) {
	if s.closed {
		return nil, fmt.Errorf("%w: %v", source.ErrContent, source.ErrClosed)
	}
	if index < 0 || index >= len(s.chapters) {
		return nil, fmt.Errorf("chapter %d of %d: %w", index, len(s.chapters), source.ErrInvalidChapter)
	}

	units, err := parseChapter(s.chapters[index])
	if err != nil {
		return nil, fmt.Errorf("chapter %d: %w: %v", index, source.ErrContent, err)
	}

	return &unitStream{units: units}, nil
}

// Close marks the source unusable. It is safe to call Close multiple times.
func (s *Source) Close() error {
	s.closed = true
	return nil
}

// parseChapter converts one chapter's markup into content units.
func parseChapter(payload []byte) ([]model.ContentUnit, error) {
	doc, err := html.Parse(bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("parsing markup: %w", err)
	}

	p := &parser{}
	body := findElement(doc, "body")
	if body == nil {
		body = doc
	}
	p.walk(body, 0)

	return p.units, nil
}

// parser accumulates content units while walking the DOM.
type parser struct {
	units []model.ContentUnit
}

// walk processes n and its children. listLevel is the current list nesting
// depth; 0 means not inside a list.
func (p *parser) walk(n *html.Node, listLevel int) {
	if n.Type != html.ElementNode {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			p.walk(c, listLevel)
		}
		return
	}

	if skipElement(n.Data) {
		return
	}

	switch n.Data {
	case "h1", "h2", "h3", "h4", "h5", "h6":
		level := int(n.Data[1] - '0')
		if text := collapse(textContent(n)); text != "" {
			p.units = append(p.units, model.ContentUnit{
				Kind:  model.UnitHeading,
				Text:  text,
				Level: level,
			})
		}

	case "p":
		if text := collapse(textContent(n)); text != "" {
			p.units = append(p.units, model.ContentUnit{
				Kind: model.UnitParagraph,
				Text: text,
			})
		}

	case "ul", "ol":
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			p.walk(c, listLevel+1)
		}

	case "li":
		if text := collapse(directTextContent(n)); text != "" {
			level := listLevel
			if level < 1 {
				level = 1
			}
			p.units = append(p.units, model.ContentUnit{
				Kind:  model.UnitListItem,
				Text:  text,
				Style: model.StyleHints{Indent: level},
			})
		}
		// Nested lists under this item keep walking.
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode && (c.Data == "ul" || c.Data == "ol") {
				p.walk(c, listLevel)
			}
		}

	case "blockquote":
		if text := collapse(textContent(n)); text != "" {
			p.units = append(p.units, model.ContentUnit{
				Kind: model.UnitBlockquote,
				Text: text,
			})
		}

	case "pre":
		if text := strings.Trim(textContent(n), "\n"); text != "" {
			p.units = append(p.units, model.ContentUnit{
				Kind: model.UnitCode,
				Text: text,
			})
		}

	default:
		// Block containers (div, section, article, body wrappers):
		// descend and let recognized children emit units.
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			p.walk(c, listLevel)
		}
	}
}

// skipElement reports whether an element never contributes chapter content.
func skipElement(tag string) bool {
	switch tag {
	case "script", "style", "head", "nav", "aside", "header", "footer",
		"noscript", "iframe", "svg", "template":
		return true
	}
	return false
}

// findElement finds the first element with the given tag name.
func findElement(n *html.Node, tag string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tag {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, tag); found != nil {
			return found
		}
	}
	return nil
}

// textContent returns the concatenated text of n and its descendants.
func textContent(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		sb.WriteString(textContent(c))
	}
	return sb.String()
}

// directTextContent returns the text of n excluding nested lists, so a list
// item's own text does not swallow its sub-items.
func directTextContent(n *html.Node) string {
	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && (c.Data == "ul" || c.Data == "ol") {
			continue
		}
		sb.WriteString(textContent(c))
	}
	return sb.String()
}

// collapse trims text and collapses internal whitespace runs to single
// spaces, normalizing markup formatting away from unit content.
func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// unitStream is a forward-only cursor over parsed units.
type unitStream struct {
	units []model.ContentUnit
	pos   int
}

func (st *unitStream) Next() (model.ContentUnit, error) {
	if st.pos >= len(st.units) {
		return model.ContentUnit{}, io.EOF
	}
	u := st.units[st.pos]
	st.pos++
	return u, nil
}
