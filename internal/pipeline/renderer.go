package pipeline

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	json "github.com/goccy/go-json"

	"github.com/ppiankov/fnoltriage/internal/model"
)

// Renderer writes processing results as JSON or a human-readable summary
type Renderer struct{}

// NewRenderer creates a renderer
func NewRenderer() *Renderer {
	return &Renderer{}
}

// RenderJSON writes a result to a JSON file, creating parent directories
func (r *Renderer) RenderJSON(result model.ProcessingResult, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}

	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("write result: %w", err)
	}
	return nil
}

// WriteJSON writes a result as indented JSON to the given writer
func (r *Renderer) WriteJSON(w io.Writer, result model.ProcessingResult) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}
	_, err = fmt.Fprintf(w, "%s\n", data)
	return err
}

// WriteSummary writes a human-readable summary of a result
func (r *Renderer) WriteSummary(w io.Writer, result model.ProcessingResult) {
	fmt.Fprintf(w, "Recommended Route: %s\n", result.RecommendedRoute)
	fmt.Fprintf(w, "Confidence Score:  %.0f%%\n", result.ConfidenceScore*100)
	fmt.Fprintf(w, "\nReasoning: %s\n", result.Reasoning)

	if len(result.Flags) > 0 {
		fmt.Fprintf(w, "\nFlags Raised:\n")
		for _, flag := range result.Flags {
			fmt.Fprintf(w, "  • %s\n", flag)
		}
	}

	fmt.Fprintf(w, "\nMissing Fields (%d):\n", len(result.MissingFields))
	if len(result.MissingFields) > 0 {
		for _, field := range result.MissingFields {
			fmt.Fprintf(w, "  ⚠ %s\n", field)
		}
	} else {
		fmt.Fprintf(w, "  ✓ All mandatory fields present\n")
	}

	extracted := result.ExtractedFields
	fmt.Fprintf(w, "\nExtracted Fields Summary:\n")
	if extracted.Policy.Number != "" {
		fmt.Fprintf(w, "  Policy:           %s\n", extracted.Policy.Number)
	}
	if extracted.Policy.PolicyholderName != "" {
		fmt.Fprintf(w, "  Policyholder:     %s\n", extracted.Policy.PolicyholderName)
	}
	if extracted.Incident.Date != "" {
		fmt.Fprintf(w, "  Incident Date:    %s\n", extracted.Incident.Date)
	}
	if extracted.Asset.EstimatedDamage != nil {
		fmt.Fprintf(w, "  Estimated Damage: $%s\n", extracted.Asset.EstimatedDamage.StringFixed(2))
	}
	fmt.Fprintf(w, "  Claim Type:       %s\n", extracted.ClaimType)
	fmt.Fprintf(w, "  Extraction Confidence: %.2f\n", extracted.ExtractionConfidence())
}
