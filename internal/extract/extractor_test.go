package extract

import (
	"strings"
	"testing"

	"github.com/ppiankov/fnoltriage/internal/model"
)

func newExtractor(t *testing.T) *FieldExtractor {
	t.Helper()
	return NewFieldExtractor(model.ExtractionConfig{})
}

func TestNormalize_CollapsesSpacesPreservesNewlines(t *testing.T) {
	text := "Field    name:   value   \n\n  next\tfield  \n"
	norm := Normalize(text)

	if strings.Contains(norm, "  ") {
		t.Errorf("Expected space runs collapsed, got %q", norm)
	}
	if !strings.Contains(norm, "\n\n") {
		t.Errorf("Expected blank line preserved, got %q", norm)
	}
	if norm != "Field name: value\n\nnext field\n" {
		t.Errorf("Unexpected normalization result: %q", norm)
	}
}

func TestExtract_PolicyNumberInline(t *testing.T) {
	rec := newExtractor(t).Extract("Policy Number: POL-2024-001234\n")

	if rec.Policy.Number != "POL-2024-001234" {
		t.Errorf("Expected policy number POL-2024-001234, got %q", rec.Policy.Number)
	}
	if rec.FieldConfidence["policy_number"] != model.ConfidenceHit {
		t.Errorf("Expected hit confidence for policy_number, got %v", rec.FieldConfidence["policy_number"])
	}
}

func TestExtract_PolicyNumberACORDLayout(t *testing.T) {
	text := "POLICY NUMBER\nHO-558812\n"
	rec := newExtractor(t).Extract(text)

	if rec.Policy.Number != "HO-558812" {
		t.Errorf("Expected policy number HO-558812, got %q", rec.Policy.Number)
	}
}

func TestExtract_PatternOrderFirstMatchWins(t *testing.T) {
	// Both the ACORD form and an inline mention are present; the ACORD
	// pattern is earlier in the list and must win even though the inline
	// form appears first in the text
	text := "Reported under Policy Number: INLINE-111\nPOLICY NUMBER\nACORD-222\n"
	rec := newExtractor(t).Extract(text)

	if rec.Policy.Number != "ACORD-222" {
		t.Errorf("Expected first pattern in table order to win, got %q", rec.Policy.Number)
	}
}

func TestExtract_IncidentDateFormats(t *testing.T) {
	cases := []struct {
		name string
		text string
		want string
	}{
		{"slash format", "Date of Loss: 01/15/2024\n", "01/15/2024"},
		{"month name", "Date of Loss: January 15, 2024\n", "January 15, 2024"},
		{"acord layout", "DATE OF LOSS AND TIME\n03/22/2024\n", "03/22/2024"},
	}

	e := newExtractor(t)
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := e.Extract(tc.text)
			if rec.Incident.Date != tc.want {
				t.Errorf("Expected incident date %q, got %q", tc.want, rec.Incident.Date)
			}
		})
	}
}

func TestExtract_EstimatedDamageCurrency(t *testing.T) {
	rec := newExtractor(t).Extract("Estimated Damage: $45,000\n")

	if rec.Asset.EstimatedDamage == nil {
		t.Fatal("Expected estimated damage to be present")
	}
	if rec.Asset.EstimatedDamage.StringFixed(2) != "45000.00" {
		t.Errorf("Expected 45000.00, got %s", rec.Asset.EstimatedDamage.StringFixed(2))
	}
	if rec.InitialEstimate == nil || !rec.InitialEstimate.Equal(*rec.Asset.EstimatedDamage) {
		t.Error("Expected initial estimate to mirror estimated damage")
	}
}

func TestExtract_EstimatedDamageWithDecimals(t *testing.T) {
	rec := newExtractor(t).Extract("Estimated Damage: $12,345.67\n")

	if rec.Asset.EstimatedDamage == nil {
		t.Fatal("Expected estimated damage to be present")
	}
	if rec.Asset.EstimatedDamage.StringFixed(2) != "12345.67" {
		t.Errorf("Expected 12345.67, got %s", rec.Asset.EstimatedDamage.StringFixed(2))
	}
}

func TestExtract_MalformedDamageIsAbsent(t *testing.T) {
	// Two decimal points cannot parse; the field degrades to absent
	// instead of failing extraction
	rec := newExtractor(t).Extract("Estimated Damage: $12.34.56.78\nPolicy Number: POL-1\n")

	if rec.Asset.EstimatedDamage != nil {
		t.Errorf("Expected malformed damage to be absent, got %v", rec.Asset.EstimatedDamage)
	}
	if _, ok := rec.FieldConfidence["estimated_damage"]; ok {
		t.Error("Expected no confidence entry for absent estimated_damage")
	}
	if rec.Policy.Number != "POL-1" {
		t.Error("Expected extraction to continue past the malformed amount")
	}
}

func TestExtract_LabelsMatchRegardlessOfCase(t *testing.T) {
	e := newExtractor(t)

	// These labels only hit patterns that open with a non-capturing group,
	// which must still compile case-insensitively
	rec := e.Extract("estimated damage: $5,000\n")
	if rec.Asset.EstimatedDamage == nil {
		t.Fatal("Expected lowercase damage label to match")
	}
	if rec.Asset.EstimatedDamage.StringFixed(2) != "5000.00" {
		t.Errorf("Expected 5000.00, got %s", rec.Asset.EstimatedDamage.StringFixed(2))
	}

	rec = e.Extract("ESTIMATED DAMAGE: $5,000\n")
	if rec.Asset.EstimatedDamage == nil {
		t.Error("Expected all-caps inline damage label to match")
	}

	rec = e.Extract("vin: 1HGCM82633A004352\n")
	if rec.Asset.Identifier != "1HGCM82633A004352" {
		t.Errorf("Expected lowercase vin label to match, got %q", rec.Asset.Identifier)
	}

	rec = e.Extract("policyholder: John Doe\n")
	if rec.Policy.PolicyholderName != "John Doe" {
		t.Errorf("Expected lowercase policyholder label to match, got %q", rec.Policy.PolicyholderName)
	}
}

func TestExtract_OverrideWithNonCapturingGroupIsCaseInsensitive(t *testing.T) {
	e := NewFieldExtractor(model.ExtractionConfig{
		Patterns: map[string][]string{
			"policy_number": {`(?:Contract|Agreement)\s+Ref\s*[:=]\s*([A-Z0-9\-]+)`},
		},
	})

	rec := e.Extract("contract ref: CR-777\n")
	if rec.Policy.Number != "CR-777" {
		t.Errorf("Expected override with (?: prefix to match case-insensitively, got %q", rec.Policy.Number)
	}
}

func TestExtract_OverrideWithOwnFlagsKept(t *testing.T) {
	// An explicit flag group opts the pattern out of the default (?i)
	e := NewFieldExtractor(model.ExtractionConfig{
		Patterns: map[string][]string{
			"policy_number": {`(?s)REF\s*[:=]\s*([A-Z0-9\-]+)`},
		},
	})

	if rec := e.Extract("ref: CR-777\n"); rec.Policy.Number != "" {
		t.Errorf("Expected case-sensitive override to miss lowercase label, got %q", rec.Policy.Number)
	}
	if rec := e.Extract("REF: CR-777\n"); rec.Policy.Number != "CR-777" {
		t.Errorf("Expected case-sensitive override to match its own case, got %q", rec.Policy.Number)
	}
}

func TestExtract_ClaimTypeLabeled(t *testing.T) {
	cases := []struct {
		text string
		want model.ClaimType
	}{
		{"Claim Type: Bodily Injury\n", model.ClaimTypeBodilyInjury},
		{"Type of Claim: Collision\n", model.ClaimTypeCollision},
		{"Claim Type: Theft\n", model.ClaimTypeTheft},
		{"Claim Type: Property Damage\n", model.ClaimTypePropertyDamage},
		{"Claim Type: Comprehensive\n", model.ClaimTypeOther},
		{"Claim Type: Liability\n", model.ClaimTypeOther},
	}

	e := newExtractor(t)
	for _, tc := range cases {
		rec := e.Extract(tc.text)
		if rec.ClaimType != tc.want {
			t.Errorf("Text %q: expected claim type %s, got %s", tc.text, tc.want, rec.ClaimType)
		}
	}
}

func TestExtract_ClaimTypeKeywordPriority(t *testing.T) {
	// Bodily-injury keywords are checked before collision keywords, so a
	// document mentioning both classifies as bodily injury
	text := "The collision left the driver injured at the scene.\n"
	rec := newExtractor(t).Extract(text)

	if rec.ClaimType != model.ClaimTypeBodilyInjury {
		t.Errorf("Expected bodily_injury to win keyword priority, got %s", rec.ClaimType)
	}
}

func TestExtract_ClaimTypeUnknownAlwaysHasConfidenceEntry(t *testing.T) {
	rec := newExtractor(t).Extract("Nothing recognizable here.\n")

	if rec.ClaimType != model.ClaimTypeUnknown {
		t.Errorf("Expected unknown claim type, got %s", rec.ClaimType)
	}
	c, ok := rec.FieldConfidence["claim_type"]
	if !ok {
		t.Fatal("Expected claim_type confidence entry even when unknown")
	}
	if c != model.ConfidenceNone {
		t.Errorf("Expected zero confidence for unknown claim type, got %v", c)
	}
}

func TestExtract_PartiesWithContacts(t *testing.T) {
	text := strings.Join([]string{
		"Claimant Name",
		"Maria Gonzalez",
		"Contact Phone",
		"555-867-5309",
		"Contact Email",
		"maria.g@example.com",
		"Third Party Driver Name",
		"Robert Chen",
		"Third Party Phone",
		"555-201-3344",
		"",
	}, "\n")

	rec := newExtractor(t).Extract(text)

	if len(rec.Parties) != 2 {
		t.Fatalf("Expected 2 parties, got %d", len(rec.Parties))
	}

	claimant := rec.Parties[0]
	if claimant.Role != model.RoleClaimant || claimant.Name != "Maria Gonzalez" {
		t.Errorf("Unexpected claimant: %+v", claimant)
	}
	if claimant.Phone != "555-867-5309" || claimant.Email != "maria.g@example.com" {
		t.Errorf("Expected claimant contact info, got phone=%q email=%q", claimant.Phone, claimant.Email)
	}

	third := rec.Parties[1]
	if third.Role != model.RoleThirdParty || third.Name != "Robert Chen" {
		t.Errorf("Unexpected third party: %+v", third)
	}
	if third.Phone != "555-201-3344" {
		t.Errorf("Expected third party phone, got %q", third.Phone)
	}

	if !rec.HasPartyContact() {
		t.Error("Expected HasPartyContact to be true")
	}
}

func TestExtract_PartyContactPartiallyPresent(t *testing.T) {
	text := "Claimant Name\nJohn Doe\n"
	rec := newExtractor(t).Extract(text)

	if len(rec.Parties) != 1 {
		t.Fatalf("Expected 1 party, got %d", len(rec.Parties))
	}
	if rec.Parties[0].Phone != "" || rec.Parties[0].Email != "" {
		t.Errorf("Expected no contact sub-fields, got %+v", rec.Parties[0])
	}
	if rec.HasPartyContact() {
		t.Error("Expected HasPartyContact to be false for a party without contacts")
	}
}

func TestExtract_AttachmentsOrderedAndDeduped(t *testing.T) {
	text := "ATTACHMENTS\nphoto1.jpg, police_report.pdf, photo1.jpg, estimate.pdf\n"
	rec := newExtractor(t).Extract(text)

	want := []string{"photo1.jpg", "police_report.pdf", "estimate.pdf"}
	if len(rec.Attachments) != len(want) {
		t.Fatalf("Expected %d attachments, got %d: %v", len(want), len(rec.Attachments), rec.Attachments)
	}
	for i, a := range want {
		if rec.Attachments[i] != a {
			t.Errorf("Attachment %d: expected %q, got %q", i, a, rec.Attachments[i])
		}
	}
}

func TestExtract_EmptyTextNeverFails(t *testing.T) {
	rec := newExtractor(t).Extract("")

	if rec.ClaimType != model.ClaimTypeUnknown {
		t.Errorf("Expected unknown claim type for empty text, got %s", rec.ClaimType)
	}
	if rec.Policy.Number != "" || rec.Incident.Date != "" {
		t.Error("Expected all fields absent for empty text")
	}
	if len(rec.Parties) != 0 {
		t.Errorf("Expected no parties, got %d", len(rec.Parties))
	}
	// Only the always-present claim_type entry remains
	if len(rec.FieldConfidence) != 1 {
		t.Errorf("Expected only the claim_type confidence entry, got %v", rec.FieldConfidence)
	}
}

func TestExtract_ConfidenceEntryOnlyForPopulatedFields(t *testing.T) {
	rec := newExtractor(t).Extract("Policy Number: POL-9\nDate of Loss: 02/01/2024\n")

	for field, c := range rec.FieldConfidence {
		if field == "claim_type" {
			continue
		}
		if c != model.ConfidenceHit {
			t.Errorf("Field %s: populated fields carry hit confidence, got %v", field, c)
		}
	}
	if _, ok := rec.FieldConfidence["incident_location"]; ok {
		t.Error("Absent field incident_location must not appear in field_confidence")
	}
}

func TestExtractionConfidence_MeanOfPopulatedOnly(t *testing.T) {
	// Two hits plus the zero-confidence claim_type entry: (0.95+0.95+0)/3
	rec := newExtractor(t).Extract("Policy Number: POL-9\nDate of Loss: 02/01/2024\n")

	got := rec.ExtractionConfidence()
	want := (0.95 + 0.95 + 0.0) / 3.0
	if diff := got - want; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("Expected extraction confidence %.4f, got %.4f", want, got)
	}
}

func TestNewFieldExtractor_PatternOverride(t *testing.T) {
	cfg := model.ExtractionConfig{
		Patterns: map[string][]string{
			"policy_number": {`Contract\s+Ref\s*[:=]\s*([A-Z0-9\-]+)`},
		},
	}
	e := NewFieldExtractor(cfg)

	rec := e.Extract("Contract Ref: CR-777\n")
	if rec.Policy.Number != "CR-777" {
		t.Errorf("Expected override pattern to apply, got %q", rec.Policy.Number)
	}

	// The default patterns for the overridden field no longer apply
	rec = e.Extract("Policy Number: POL-1\n")
	if rec.Policy.Number != "" {
		t.Errorf("Expected default pattern to be replaced, got %q", rec.Policy.Number)
	}
}

func TestExtract_MultiLineDescription(t *testing.T) {
	text := strings.Join([]string{
		"DESCRIPTION OF ACCIDENT",
		"Insured vehicle was struck from behind while stopped.",
		"Rear bumper and trunk sustained damage.",
		"",
		"POLICY NUMBER",
		"AU-99100",
		"",
	}, "\n")

	rec := newExtractor(t).Extract(text)

	if !strings.Contains(rec.Incident.Description, "struck from behind") {
		t.Errorf("Expected description first line, got %q", rec.Incident.Description)
	}
	if !strings.Contains(rec.Incident.Description, "trunk sustained damage") {
		t.Errorf("Expected description to span lines, got %q", rec.Incident.Description)
	}
	if strings.Contains(rec.Incident.Description, "POLICY NUMBER") {
		t.Errorf("Description overran the blank-line boundary: %q", rec.Incident.Description)
	}
}
