package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ppiankov/fnoltriage/internal/cache"
	"github.com/ppiankov/fnoltriage/internal/pipeline"
	"github.com/ppiankov/fnoltriage/internal/worker"
)

var (
	concurrency  int
	outputDir    string
	batchTimeout time.Duration
	noCache      bool
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <folder>",
	Short: "Triage every claim document in a folder in parallel",
	Long: `Batch processes a folder of FNOL documents concurrently:
- Discover .txt, .md, and .html documents in the folder
- Triage documents in parallel with a configurable worker count
- Memoize identical document bodies within the run
- Write one JSON result per document

Example:
  fnoltriage batch ./claims
  fnoltriage batch ./claims --concurrency 10 --output-dir ./results
  fnoltriage batch ./claims --threshold 10000`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	// Concurrency flags
	batchCmd.Flags().IntVar(&concurrency, "concurrency", runtime.NumCPU(), "number of concurrent workers")
	batchCmd.Flags().StringVar(&outputDir, "output-dir", "./fnol-results", "output directory for results")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "total timeout for batch processing")
	batchCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable memoization of identical documents")

	// Routing flags
	batchCmd.Flags().Float64Var(&threshold, "threshold", 0, "fast-track damage threshold (overrides config)")

	// LLM flags
	batchCmd.Flags().BoolVar(&llmEnabled, "llm", false, "enable narrative summary generation")
	batchCmd.Flags().StringVar(&llmProvider, "llm-provider", "openai", "LLM provider (openai, ollama)")
	batchCmd.Flags().StringVar(&llmModel, "llm-model", "", "LLM model name")
}

func runBatch(cmd *cobra.Command, args []string) error {
	folder := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	cfg := loadConfig()
	cfg.Concurrency.Workers = concurrency
	cfg.Cache.Enabled = !noCache
	if threshold > 0 {
		cfg.Routing.FastTrackThreshold = threshold
	}
	if err := configureLLM(cfg); err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Input folder: %s\n", folder)
	fmt.Fprintf(os.Stderr, "  Workers:      %d\n", cfg.Concurrency.Workers)
	fmt.Fprintf(os.Stderr, "  Output dir:   %s\n", outputDir)
	fmt.Fprintf(os.Stderr, "  Timeout:      %v\n", batchTimeout)
	fmt.Fprintf(os.Stderr, "\n")

	// Create output directory
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	p, err := pipeline.NewProcessor(cfg)
	if err != nil {
		return err
	}

	var memo cache.Cache
	if cfg.Cache.Enabled {
		memo = cache.NewMemoryCache(cfg.Cache.TTL, 10*time.Minute)
	}

	processor := worker.NewBatchProcessor(p, cfg.Concurrency.Workers, memo, cfg.Cache.TTL)

	results, err := processor.ProcessFolder(ctx, folder)
	if err != nil {
		return fmt.Errorf("process folder: %w", err)
	}

	renderer := pipeline.NewRenderer()
	successCount := 0
	failureCount := 0

	for _, result := range results {
		if result.Err != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", result.Path, result.Err)
			continue
		}

		jsonPath := filepath.Join(outputDir, resultFilename(result.Path))
		if err := renderer.RenderJSON(result.Result, jsonPath); err != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "✗ %s: failed to write JSON: %v\n", result.Path, err)
			continue
		}

		successCount++
		cached := ""
		if result.Cached {
			cached = " (cached)"
		}
		fmt.Fprintf(os.Stderr, "✓ %s -> %s%s\n", result.Path, result.Result.RecommendedRoute, cached)
	}

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Total:     %d documents\n", len(results))
	fmt.Fprintf(os.Stderr, "  Success:   %d\n", successCount)
	fmt.Fprintf(os.Stderr, "  Failures:  %d\n", failureCount)
	fmt.Fprintf(os.Stderr, "  Output:    %s\n", outputDir)
	fmt.Fprintf(os.Stderr, "\n")

	return nil
}

// resultFilename maps a document path to its result file name
func resultFilename(docPath string) string {
	base := filepath.Base(docPath)
	ext := filepath.Ext(base)
	return strings.TrimSuffix(base, ext) + ".json"
}
