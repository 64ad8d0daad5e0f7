// Package layout implements the reflow engine: the resumable process that
// turns one chapter's forward-only content stream into page boundaries.
//
// A [Paginator] is advanced one page at a time by its caller. It pulls
// content units from a source stream, measures them, and accumulates the
// resulting lines until the next line would overflow the area left after
// reserving space for enabled chrome; the page then closes at the last line
// that fits. Lines that did not fit carry over to the next page.
//
// Pagination is fully deterministic: identical configuration and identical
// content always produce identical page boundaries and counts. Production
// only proceeds forward from the chapter start; there is no seeking.
package layout
