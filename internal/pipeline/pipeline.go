// Package pipeline wires the extraction and routing engines together and
// renders their output. The core extract-then-route path is pure; file
// reading and the optional narrative summary live at the edges.
package pipeline

import (
	"context"
	"fmt"
	"os"

	"github.com/ppiankov/fnoltriage/internal/extract"
	"github.com/ppiankov/fnoltriage/internal/ingest"
	"github.com/ppiankov/fnoltriage/internal/llm"
	"github.com/ppiankov/fnoltriage/internal/model"
	"github.com/ppiankov/fnoltriage/internal/route"
)

// Processor runs the full triage pipeline for single documents. It holds
// no per-document state and is safe for concurrent use.
type Processor struct {
	extractor  *extract.FieldExtractor
	router     *route.Router
	summarizer *llm.Summarizer // nil when narrative summaries are disabled
	config     *model.Config
}

// NewProcessor validates the configuration and builds the pipeline.
// Configuration errors are the only fatal-error class: malformed documents
// degrade per-field later, a broken config fails here.
func NewProcessor(cfg *model.Config) (*Processor, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	var summarizer *llm.Summarizer
	if cfg.LLM.Provider != "" {
		s, err := llm.NewSummarizer(llm.ConfigFromModel(cfg.LLM))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to initialize LLM provider: %v\n", err)
		} else {
			summarizer = s
		}
	}

	return &Processor{
		extractor:  extract.NewFieldExtractor(cfg.Extraction),
		router:     route.NewRouter(cfg.Routing),
		summarizer: summarizer,
		config:     cfg,
	}, nil
}

// ProcessText runs extract then route on document text. It never fails:
// any string input, including empty text, produces a result.
func (p *Processor) ProcessText(text string) model.ProcessingResult {
	record := p.extractor.Extract(text)
	decision := p.router.Route(record)
	return model.NewProcessingResult(record, decision)
}

// DocumentResult is one processed document plus its optional narrative
type DocumentResult struct {
	Path      string
	Result    model.ProcessingResult
	Narrative string
}

// ProcessFile reads a claim document from disk and processes it. The
// narrative summary, when enabled, is generated after routing and never
// feeds back into the decision.
func (p *Processor) ProcessFile(ctx context.Context, path string) (*DocumentResult, error) {
	text, err := ingest.ReadDocument(path)
	if err != nil {
		return nil, err
	}

	result := p.ProcessText(text)
	doc := &DocumentResult{Path: path, Result: result}

	narrative, err := p.Narrate(ctx, result)
	if err != nil {
		// The decision stands on its own; a failed summary is a warning
		fmt.Fprintf(os.Stderr, "Warning: narrative summary failed for %s: %v\n", path, err)
	} else {
		doc.Narrative = narrative
	}

	return doc, nil
}

// Narrate generates the optional narrative for a finished result. It
// returns an empty string when summaries are disabled.
func (p *Processor) Narrate(ctx context.Context, result model.ProcessingResult) (string, error) {
	if p.summarizer == nil || !p.summarizer.IsEnabled() {
		return "", nil
	}
	return p.summarizer.Summarize(ctx, result)
}
