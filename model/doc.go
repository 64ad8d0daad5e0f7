// Package model provides the intermediate representation (IR) for paginated
// reader content.
//
// This package defines the user-facing data structures shared by the engine,
// the document sources, and the content measurers. All pagination operations
// ultimately produce these types, making them the primary API for consuming
// reflowed content.
//
// # Content Units
//
// A [ContentUnit] is one forward-only element of a chapter's content stream:
// a paragraph, a heading, a list item, and so on. Units carry [StyleHints]
// that measurers may honor when computing line breaks.
//
// # Pages
//
// A [Page] is the maximal run of chapter content fitting one viewport under
// the active chrome configuration. Pages hold laid-out [Line] values and an
// optional ordered sequence of overlay items attached post-layout.
//
// Pages are plain values: two pages produced from identical configuration and
// identical content compare equal with reflect.DeepEqual.
package model
