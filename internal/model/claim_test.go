package model

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestExtractionConfidence(t *testing.T) {
	cases := []struct {
		name string
		conf map[string]Confidence
		want float64
	}{
		{"empty map", nil, 0.0},
		{"all hits", map[string]Confidence{"a": ConfidenceHit, "b": ConfidenceHit}, 0.95},
		{"hit plus unknown claim type", map[string]Confidence{"a": ConfidenceHit, "claim_type": ConfidenceNone}, 0.475},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := ClaimRecord{FieldConfidence: tc.conf}
			got := rec.ExtractionConfidence()
			if diff := got - tc.want; diff > 1e-9 || diff < -1e-9 {
				t.Errorf("Expected %.4f, got %.4f", tc.want, got)
			}
		})
	}
}

func TestHasPartyContact(t *testing.T) {
	rec := ClaimRecord{Parties: []Party{{Name: "A"}, {Name: "B"}}}
	if rec.HasPartyContact() {
		t.Error("Expected no contact without phone or email")
	}

	rec.Parties[1].Phone = "555-0000"
	if !rec.HasPartyContact() {
		t.Error("Expected phone on any party to count")
	}

	rec = ClaimRecord{Parties: []Party{{Name: "A", Email: "a@example.com"}}}
	if !rec.HasPartyContact() {
		t.Error("Expected email to count as contact")
	}

	rec = ClaimRecord{Parties: []Party{{Name: "A", Address: "1 Elm St"}}}
	if rec.HasPartyContact() {
		t.Error("Expected address alone not to count as contact")
	}
}

func TestFraudScanText(t *testing.T) {
	rec := ClaimRecord{
		SourceText: "full document text",
		Incident:   IncidentInfo{Description: "description only"},
	}
	if rec.FraudScanText() != "full document text" {
		t.Errorf("Expected source text preferred, got %q", rec.FraudScanText())
	}

	rec.SourceText = ""
	if !strings.Contains(rec.FraudScanText(), "description only") {
		t.Errorf("Expected description fallback, got %q", rec.FraudScanText())
	}
}

func TestNewProcessingResult_Envelope(t *testing.T) {
	damage := decimal.NewFromInt(1000)
	record := ClaimRecord{
		ClaimType: ClaimTypeCollision,
		Asset:     AssetDetails{EstimatedDamage: &damage},
	}
	decision := RoutingDecision{
		Route:      RouteFastTrack,
		Reasoning:  "below threshold",
		Confidence: 0.95,
	}

	result := NewProcessingResult(record, decision)

	if result.ID == "" {
		t.Error("Expected a generated id")
	}
	if result.ProcessingTimestamp == "" {
		t.Error("Expected a processing timestamp")
	}
	if result.RecommendedRoute != RouteFastTrack || result.ConfidenceScore != 0.95 {
		t.Errorf("Decision not carried into envelope: %+v", result)
	}

	// nil slices become empty so JSON carries [] instead of null
	if result.MissingFields == nil || result.Flags == nil {
		t.Error("Expected non-nil missing fields and flags")
	}
	if result.ExtractedFields.Parties == nil || result.ExtractedFields.Attachments == nil {
		t.Error("Expected non-nil parties and attachments")
	}

	// Each result gets its own identity
	if other := NewProcessingResult(record, decision); other.ID == result.ID {
		t.Error("Expected distinct ids per result")
	}
}

func TestRoutingDecision_HasFlag(t *testing.T) {
	d := RoutingDecision{Flags: []Flag{FlagFraud}}
	if !d.HasFlag(FlagFraud) {
		t.Error("Expected fraud flag present")
	}
	if d.HasFlag(FlagMissingMandatoryFields) {
		t.Error("Expected missing-fields flag absent")
	}
}
