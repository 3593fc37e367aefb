package indexer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Zie619/n8n-workflows/internal/analyzer"
	"github.com/Zie619/n8n-workflows/internal/storage"
)

// Indexer walks the workflow corpus and keeps the index store in sync with
// it, skipping documents whose content fingerprint has not changed.
type Indexer struct {
	analyzer *analyzer.Analyzer
	store    storage.Store

	corpusRoot string
	workers    int
}

// Config contains configuration for the indexer
type Config struct {
	Workers      int  // Number of concurrent workers (default: runtime.NumCPU())
	ForceReindex bool // Re-analyze every document regardless of stored hashes
}

// Stats reports the outcome of one indexing run.
type Stats struct {
	Processed int // documents analyzed and written
	Skipped   int // documents unchanged since last run
	Errors    int // documents that failed analysis or write
	Total     int // documents enumerated under the corpus root

	Duration      time.Duration
	ErrorMessages []string
}

// New creates an Indexer over the corpus rooted at corpusRoot.
func New(store storage.Store, corpusRoot string) *Indexer {
	return &Indexer{
		analyzer:   analyzer.New(corpusRoot),
		store:      store,
		corpusRoot: corpusRoot,
		workers:    runtime.NumCPU(),
	}
}

// IndexCorpus indexes every workflow document under the corpus root.
// Per-document failures are counted and collected, never fatal; only a
// corpus enumeration failure aborts the run.
func (idx *Indexer) IndexCorpus(ctx context.Context, config *Config) (*Stats, error) {
	if config == nil {
		config = &Config{}
	}
	if config.Workers > 0 {
		idx.workers = config.Workers
	}

	startTime := time.Now()
	stats := &Stats{ErrorMessages: make([]string, 0)}

	files, err := idx.discoverFiles()
	if err != nil {
		return nil, fmt.Errorf("failed to discover workflow files: %w", err)
	}
	stats.Total = len(files)

	var (
		processed int32
		skipped   int32
		errored   int32
	)
	var mu sync.Mutex // protects stats.ErrorMessages

	// Worker pool with bounded concurrency. Counts are the only observable
	// contract; processing order is not.
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(idx.workers)

	for _, filePath := range files {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			if err := idx.indexFile(gctx, filePath, config.ForceReindex, &processed, &skipped); err != nil {
				atomic.AddInt32(&errored, 1)
				mu.Lock()
				stats.ErrorMessages = append(stats.ErrorMessages, fmt.Sprintf("%s: %v", filePath, err))
				mu.Unlock()
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	stats.Processed = int(processed)
	stats.Skipped = int(skipped)
	stats.Errors = int(errored)
	stats.Duration = time.Since(startTime)
	return stats, nil
}

// discoverFiles finds all workflow JSON files under the corpus root.
func (idx *Indexer) discoverFiles() ([]string, error) {
	var files []string

	err := filepath.Walk(idx.corpusRoot, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			// Skip hidden directories
			if strings.HasPrefix(info.Name(), ".") && path != idx.corpusRoot {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasSuffix(path, ".json") {
			files = append(files, path)
		}
		return nil
	})

	return files, err
}

// indexFile analyzes one document and upserts it unless the stored
// fingerprint shows it is unchanged.
func (idx *Indexer) indexFile(ctx context.Context, filePath string, force bool, processed, skipped *int32) error {
	wf, err := idx.analyzer.Analyze(filePath)
	if err != nil {
		return err
	}

	if !force {
		storedHash, err := idx.store.GetFileHash(ctx, wf.Filename)
		if err != nil && err != storage.ErrNotFound {
			return err
		}
		if err == nil && storedHash == wf.FileHash {
			atomic.AddInt32(skipped, 1)
			return nil
		}
	}

	wf.AnalyzedAt = time.Now()
	if err := idx.store.UpsertWorkflow(ctx, wf); err != nil {
		return err
	}

	atomic.AddInt32(processed, 1)
	return nil
}
