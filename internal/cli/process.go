package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ppiankov/fnoltriage/internal/model"
	"github.com/ppiankov/fnoltriage/internal/pipeline"
)

var (
	outJSON     string
	format      string
	threshold   float64
	timeout     time.Duration
	llmEnabled  bool
	llmProvider string
	llmModel    string
)

// processCmd represents the process command
var processCmd = &cobra.Command{
	Use:   "process <file>",
	Short: "Triage a single claim document",
	Long: `Process reads one FNOL document (.txt, .md, or .html), extracts a
structured claim record with per-field confidence, and routes the claim:
- bodily injury claims go to the specialist queue
- fraud indicators route to investigation
- missing mandatory fields route to manual review
- low-damage claims qualify for fast-track
- everything else is standard processing

Example:
  fnoltriage process claim.txt
  fnoltriage process claim.html --json result.json --format pretty
  fnoltriage process claim.txt --llm --llm-provider openai`,
	Args: cobra.ExactArgs(1),
	RunE: runProcess,
}

func init() {
	rootCmd.AddCommand(processCmd)

	// Output flags
	processCmd.Flags().StringVar(&outJSON, "json", "", "output JSON path (optional)")
	processCmd.Flags().StringVar(&format, "format", "json", "console output format (json, pretty)")

	// Routing flags
	processCmd.Flags().Float64Var(&threshold, "threshold", 0, "fast-track damage threshold (overrides config)")
	processCmd.Flags().DurationVar(&timeout, "timeout", 2*time.Minute, "overall processing timeout")

	// LLM flags
	processCmd.Flags().BoolVar(&llmEnabled, "llm", false, "enable narrative summary generation")
	processCmd.Flags().StringVar(&llmProvider, "llm-provider", "openai", "LLM provider (openai, ollama)")
	processCmd.Flags().StringVar(&llmModel, "llm-model", "", "LLM model name")
}

func runProcess(cmd *cobra.Command, args []string) error {
	path := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	cfg := loadConfig()
	cfg.Output.Format = format
	if threshold > 0 {
		cfg.Routing.FastTrackThreshold = threshold
	}
	if err := configureLLM(cfg); err != nil {
		return err
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Processing: %s\n", path)
		fmt.Fprintf(os.Stderr, "Fast-track threshold: %v\n", cfg.Routing.FastTrackThreshold)
		fmt.Fprintln(os.Stderr)
	}

	p, err := pipeline.NewProcessor(cfg)
	if err != nil {
		return err
	}

	doc, err := p.ProcessFile(ctx, path)
	if err != nil {
		return fmt.Errorf("process %s: %w", path, err)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "✓ Extracted %d fields\n", len(doc.Result.ExtractedFields.FieldConfidence))
		fmt.Fprintf(os.Stderr, "✓ Route: %s\n", doc.Result.RecommendedRoute)
		fmt.Fprintln(os.Stderr)
	}

	renderer := pipeline.NewRenderer()
	if outJSON != "" {
		if err := renderer.RenderJSON(doc.Result, outJSON); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "✓ Wrote JSON: %s\n", outJSON)
	}

	switch cfg.Output.Format {
	case "pretty":
		renderer.WriteSummary(os.Stdout, doc.Result)
	default:
		if err := renderer.WriteJSON(os.Stdout, doc.Result); err != nil {
			return err
		}
	}

	if doc.Narrative != "" {
		fmt.Fprintf(os.Stdout, "\nNarrative:\n%s\n", doc.Narrative)
	}

	return nil
}

// configureLLM wires the narrative summarizer flags and API key into the
// config. The key comes from the environment, never from flags or files.
func configureLLM(cfg *model.Config) error {
	if !llmEnabled {
		cfg.LLM.Provider = ""
		return nil
	}

	cfg.LLM.Provider = llmProvider
	if llmModel != "" {
		cfg.LLM.Model = llmModel
	}

	switch llmProvider {
	case "openai":
		cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
		if cfg.LLM.APIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY environment variable not set")
		}
	case "ollama":
		// Ollama doesn't need an API key
		if baseURL := os.Getenv("OLLAMA_BASE_URL"); baseURL != "" {
			cfg.LLM.BaseURL = baseURL
		}
	}

	return nil
}
