package worker

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/ppiankov/fnoltriage/internal/cache"
	"github.com/ppiankov/fnoltriage/internal/extract"
	"github.com/ppiankov/fnoltriage/internal/ingest"
	"github.com/ppiankov/fnoltriage/internal/model"
)

// TextProcessor is the part of the pipeline the batch layer needs
type TextProcessor interface {
	ProcessText(text string) model.ProcessingResult
	Narrate(ctx context.Context, result model.ProcessingResult) (string, error)
}

// DocumentResult is the outcome of processing one document in a batch
type DocumentResult struct {
	Path      string
	Result    model.ProcessingResult
	Narrative string
	Cached    bool
	Err       error
}

// BatchProcessor processes claim documents concurrently. Identical
// documents (by normalized content) are memoized within the run, so a
// folder with duplicated FNOL submissions is triaged once per document
// body.
type BatchProcessor struct {
	processor TextProcessor
	workers   int
	memo      cache.Cache // nil disables memoization
	ttl       time.Duration
}

// NewBatchProcessor creates a batch processor
func NewBatchProcessor(processor TextProcessor, workers int, memo cache.Cache, ttl time.Duration) *BatchProcessor {
	if workers <= 0 {
		workers = 1
	}
	return &BatchProcessor{
		processor: processor,
		workers:   workers,
		memo:      memo,
		ttl:       ttl,
	}
}

// ProcessFolder triages every claim document in a folder
func (b *BatchProcessor) ProcessFolder(ctx context.Context, dir string) ([]*DocumentResult, error) {
	paths, err := ingest.ListDocuments(dir)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no claim documents found in %s", dir)
	}
	return b.ProcessPaths(ctx, paths), nil
}

// ProcessPaths triages the given documents concurrently. A failed document
// yields a result with Err set; the batch always continues.
func (b *BatchProcessor) ProcessPaths(ctx context.Context, paths []string) []*DocumentResult {
	results := make([]*DocumentResult, len(paths))
	var mu sync.Mutex

	pool := NewPool(b.workers)
	pool.Start(ctx)

	for i, path := range paths {
		i, path := i, path
		pool.Submit(ctx, func(ctx context.Context) {
			res := b.processOne(ctx, path)
			mu.Lock()
			results[i] = res
			mu.Unlock()
		})
	}
	pool.Wait()

	// Tasks skipped by cancellation leave nil slots
	for i, res := range results {
		if res == nil {
			results[i] = &DocumentResult{Path: paths[i], Err: ctx.Err()}
		}
	}
	return results
}

func (b *BatchProcessor) processOne(ctx context.Context, path string) *DocumentResult {
	text, err := ingest.ReadDocument(path)
	if err != nil {
		return &DocumentResult{Path: path, Err: err}
	}

	var key string
	if b.memo != nil {
		key = cache.Key(extract.Normalize(text))
		if data, ok := b.memo.Get(key); ok {
			var cached model.ProcessingResult
			if err := json.Unmarshal(data, &cached); err == nil {
				// The replayed decision belongs to this document now: give
				// it its own identity instead of the original's
				cached.ID = uuid.NewString()
				cached.ProcessingTimestamp = time.Now().UTC().Format(time.RFC3339)
				return &DocumentResult{Path: path, Result: cached, Cached: true}
			}
		}
	}

	result := b.processor.ProcessText(text)

	if b.memo != nil {
		if data, err := json.Marshal(result); err == nil {
			b.memo.Set(key, data, b.ttl)
		}
	}

	doc := &DocumentResult{Path: path, Result: result}
	narrative, err := b.processor.Narrate(ctx, result)
	if err != nil {
		// The decision stands on its own; a failed summary is a warning
		fmt.Fprintf(os.Stderr, "Warning: narrative summary failed for %s: %v\n", path, err)
	} else {
		doc.Narrative = narrative
	}
	return doc
}
