// Package storage provides SQLite-based persistence for indexed workflow
// metadata.
//
// The store holds one row per workflow document plus an FTS5 shadow table
// over the searchable text columns (filename, name, description,
// integrations, tags). Database triggers keep the shadow table synchronized
// with every insert, update, and delete, so a reader can never observe a
// record without its full-text entry or vice versa.
//
// # Basic Usage
//
//	store, err := storage.NewSQLiteStore("workflows.db")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer store.Close()
//
//	err = store.UpsertWorkflow(ctx, wf)
//
//	results, total, err := store.Search(ctx, storage.SearchParams{
//	    Match:      `"telegram"* AND "backup"*`,
//	    ActiveOnly: true,
//	    Limit:      20,
//	})
//
// # Writes
//
// UpsertWorkflow is a single INSERT ... ON CONFLICT(filename) DO UPDATE
// statement keyed by the filename natural key. Re-indexing a document
// replaces its prior record atomically.
//
// # Search
//
// Search accepts a prebuilt FTS5 MATCH expression (see the searcher package
// for query construction) plus structured filters on trigger type,
// complexity, and the active flag. Results are ordered by name
// case-insensitively with filename as tiebreak; pagination is LIMIT/OFFSET
// with the total computed by a count query over the same predicates.
//
// # Schema management
//
// The schema is created and upgraded by semver-ordered migrations recorded
// in a schema_version table.
//
// # Build Tags
//
// Two build configurations select the SQLite driver:
//
// Pure Go (default):
//
//   - Uses modernc.org/sqlite
//
//   - No C compiler needed
//
//     CGO_ENABLED=0 go build ./...
//
// CGO (sqlite_cgo tag):
//
//   - Uses github.com/mattn/go-sqlite3
//
//   - Requires the fts5 tag for full-text search
//
//     CGO_ENABLED=1 go build -tags "sqlite_cgo,fts5" ./...
package storage
