package model

import (
	"time"

	"github.com/google/uuid"
)

// ProcessingResult is the final output for one document: the extracted
// record plus the routing decision, in the downstream JSON shape.
type ProcessingResult struct {
	ID                  string      `json:"id"`
	ExtractedFields     ClaimRecord `json:"extractedFields"`
	MissingFields       []string    `json:"missingFields"`
	RecommendedRoute    ClaimRoute  `json:"recommendedRoute"`
	Reasoning           string      `json:"reasoning"`
	Flags               []Flag      `json:"flags"`
	ConfidenceScore     float64     `json:"confidenceScore"`
	ProcessingTimestamp string      `json:"processingTimestamp"`
}

// NewProcessingResult assembles the result envelope from a record and its
// decision. Slices are never nil so the JSON output carries [] rather
// than null.
func NewProcessingResult(record ClaimRecord, decision RoutingDecision) ProcessingResult {
	missing := decision.MissingFields
	if missing == nil {
		missing = []string{}
	}
	flags := decision.Flags
	if flags == nil {
		flags = []Flag{}
	}
	if record.Attachments == nil {
		record.Attachments = []string{}
	}
	if record.Parties == nil {
		record.Parties = []Party{}
	}

	return ProcessingResult{
		ID:                  uuid.NewString(),
		ExtractedFields:     record,
		MissingFields:       missing,
		RecommendedRoute:    decision.Route,
		Reasoning:           decision.Reasoning,
		Flags:               flags,
		ConfidenceScore:     decision.Confidence,
		ProcessingTimestamp: time.Now().UTC().Format(time.RFC3339),
	}
}
