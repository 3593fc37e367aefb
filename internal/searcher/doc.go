// Package searcher turns user-facing search requests into validated,
// cached store queries.
//
// Free-text input is compiled into an FTS5 MATCH expression by
// BuildMatchQuery: quoted phrases are preserved, remaining terms are
// prefix-matched, and everything is AND-combined. Filter values are
// checked against the known trigger and complexity vocabularies before
// the store is touched.
//
// Result pages are cached in a small LRU keyed by the full parameter
// set. The cache must be invalidated after indexing; the MCP layer does
// this whenever an index run completes.
package searcher
