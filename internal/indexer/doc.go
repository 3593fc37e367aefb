// Package indexer walks the workflow corpus and keeps the index store
// synchronized with it.
//
// # Basic Usage
//
//	idx := indexer.New(store, "workflows")
//
//	stats, err := idx.IndexCorpus(ctx, &indexer.Config{ForceReindex: false})
//
//	fmt.Printf("Indexed %d, skipped %d, %d errors (of %d files) in %v\n",
//	    stats.Processed, stats.Skipped, stats.Errors, stats.Total, stats.Duration)
//
// # Incremental Indexing
//
// Each document's sha256 fingerprint is compared against the stored one;
// unchanged documents are skipped without a write. Indexing the same
// unchanged corpus twice therefore yields Processed=0 on the second run.
// ForceReindex rewrites every record regardless of fingerprints.
//
// # Failure isolation
//
// A document that fails to parse, analyze, or upsert increments the Errors
// count and is reported in ErrorMessages; the rest of the corpus still
// indexes. Only corpus enumeration failure aborts the run.
//
// # Concurrency
//
// Documents are processed by an errgroup pool (default NumCPU workers).
// Counts are the only observable contract; no processing order is exposed.
// Concurrent runs are not supported: callers serialize them, typically with
// IndexLock.
package indexer
