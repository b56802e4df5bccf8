package model

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ClaimType categorizes the nature of the claim
type ClaimType string

const (
	ClaimTypeCollision      ClaimType = "collision"
	ClaimTypeBodilyInjury   ClaimType = "bodily_injury"
	ClaimTypePropertyDamage ClaimType = "property_damage"
	ClaimTypeTheft          ClaimType = "theft"
	ClaimTypeOther          ClaimType = "other"      // comprehensive, liability, anything recognized but unclassified
	ClaimTypeUnknown        ClaimType = "unknown"
)

// PartyRole describes how a person relates to the claim
type PartyRole string

const (
	RoleClaimant   PartyRole = "claimant"
	RoleThirdParty PartyRole = "third_party"
	RoleWitness    PartyRole = "witness"
)

// Confidence is the two-tier extraction confidence: a field either matched
// one of its patterns or it did not. There is no intermediate tier.
type Confidence float64

const (
	ConfidenceNone Confidence = 0.0
	ConfidenceHit  Confidence = 0.95
)

// PolicyInfo holds policy-related fields extracted from the document
type PolicyInfo struct {
	Number           string `json:"policy_number,omitempty"`
	PolicyholderName string `json:"policyholder_name,omitempty"`
	EffectiveDate    string `json:"policy_effective_date,omitempty"`
	ExpirationDate   string `json:"policy_expiration_date,omitempty"`
	Insurer          string `json:"insurance_company,omitempty"`
}

// IncidentInfo holds incident-related fields extracted from the document
type IncidentInfo struct {
	Date        string `json:"incident_date,omitempty"`
	Time        string `json:"incident_time,omitempty"`
	Location    string `json:"incident_location,omitempty"`
	Description string `json:"incident_description,omitempty"`
}

// Party is a person involved in the claim; contact sub-fields are extracted
// independently and may be partially present
type Party struct {
	Name    string    `json:"name,omitempty"`
	Role    PartyRole `json:"role,omitempty"`
	Phone   string    `json:"contact_phone,omitempty"`
	Email   string    `json:"contact_email,omitempty"`
	Address string    `json:"address,omitempty"`
}

// HasContact reports whether the party carries any usable contact information
func (p Party) HasContact() bool {
	return p.Phone != "" || p.Email != ""
}

// AssetDetails holds the damaged asset fields
type AssetDetails struct {
	Type            string           `json:"asset_type,omitempty"`
	Identifier      string           `json:"asset_id,omitempty"` // VIN or property id
	EstimatedDamage *decimal.Decimal `json:"estimated_damage,omitempty"`
}

// ClaimRecord is the extraction result for a single FNOL document.
// It is built once by the extractor and never mutated afterwards.
type ClaimRecord struct {
	ClaimType       ClaimType             `json:"claim_type"`
	Policy          PolicyInfo            `json:"policy_info"`
	Incident        IncidentInfo          `json:"incident_info"`
	Parties         []Party               `json:"involved_parties"`
	Asset           AssetDetails          `json:"asset_details"`
	InitialEstimate *decimal.Decimal      `json:"initial_estimate,omitempty"`
	Attachments     []string              `json:"attachments"`
	FieldConfidence map[string]Confidence `json:"extraction_confidence"`

	// SourceText is the normalized document the record was extracted from.
	// The router matches fraud keywords against it; it is never serialized.
	SourceText string `json:"-"`
}

// ExtractionConfidence is the arithmetic mean of the confidences of all
// populated fields. Absent fields carry no entry and do not drag the mean
// down; the result reflects reliability of what was found, not completeness.
func (r ClaimRecord) ExtractionConfidence() float64 {
	if len(r.FieldConfidence) == 0 {
		return 0.0
	}
	var sum float64
	for _, c := range r.FieldConfidence {
		sum += float64(c)
	}
	return sum / float64(len(r.FieldConfidence))
}

// HasPartyContact reports whether at least one involved party has contact
// information, which is what the mandatory-field check counts as present
func (r ClaimRecord) HasPartyContact() bool {
	for _, p := range r.Parties {
		if p.HasContact() {
			return true
		}
	}
	return false
}

// FraudScanText returns the text the router scans for fraud keywords:
// the full normalized document when available, otherwise whatever text
// fields a hand-built record carries.
func (r ClaimRecord) FraudScanText() string {
	if r.SourceText != "" {
		return r.SourceText
	}
	return strings.Join([]string{r.Incident.Description, r.Asset.Type}, " ")
}
