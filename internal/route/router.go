// Package route implements the routing decision engine: an ordered,
// mutually-exclusive set of business rules that selects a processing queue
// for an extracted claim record and produces an auditable justification.
package route

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ppiankov/fnoltriage/internal/model"
)

// Decision confidence is a static lookup by winning rule, not computed from
// extraction confidence. The fraud rule sits lowest: keyword presence is a
// weak signal.
const (
	confidenceSpecialist    = 0.95
	confidenceInvestigation = 0.80
	confidenceManualReview  = 0.90
	confidenceFastTrack     = 0.95
	confidenceStandard      = 0.90
)

// Router applies the routing rules to claim records. Its keyword list,
// threshold, and mandatory-field list are bound at construction and
// read-only afterwards, so one router serves concurrent documents.
type Router struct {
	threshold       decimal.Decimal
	fraudKeywords   []string
	mandatoryFields []string
}

// NewRouter builds a router from validated routing configuration
func NewRouter(cfg model.RoutingConfig) *Router {
	keywords := make([]string, len(cfg.FraudKeywords))
	for i, kw := range cfg.FraudKeywords {
		keywords[i] = strings.ToLower(kw)
	}

	return &Router{
		threshold:       decimal.NewFromFloat(cfg.FastTrackThreshold),
		fraudKeywords:   keywords,
		mandatoryFields: append([]string(nil), cfg.MandatoryFields...),
	}
}

// Route decides the processing queue for a claim record. Every rule
// predicate is evaluated and every true predicate contributes its flag;
// only the route is decided by the first true predicate in priority order.
// Collapsing this into one short-circuiting chain would silently drop the
// lower flags.
func (r *Router) Route(rec model.ClaimRecord) model.RoutingDecision {
	missing := r.MissingFields(rec)
	fraudKeyword, fraudHit := r.matchFraudKeyword(rec)
	injury := rec.ClaimType == model.ClaimTypeBodilyInjury
	fastTrack := rec.Asset.EstimatedDamage != nil && rec.Asset.EstimatedDamage.LessThan(r.threshold)

	flags := make([]model.Flag, 0, 3)
	if injury {
		flags = append(flags, model.FlagSpecializationRequired)
	}
	if fraudHit {
		flags = append(flags, model.FlagFraud)
	}
	if len(missing) > 0 {
		flags = append(flags, model.FlagMissingMandatoryFields)
	}

	decision := model.RoutingDecision{
		Flags:         flags,
		MissingFields: missing,
	}

	switch {
	case injury:
		decision.Route = model.RouteSpecialistQueue
		decision.Confidence = confidenceSpecialist
		decision.Reasoning = "claim type bodily_injury requires specialist handling"

	case fraudHit:
		decision.Route = model.RouteInvestigationFlag
		decision.Confidence = confidenceInvestigation
		decision.Reasoning = fmt.Sprintf("document contains fraud indicator %q", fraudKeyword)

	case len(missing) > 0:
		decision.Route = model.RouteManualReview
		decision.Confidence = confidenceManualReview
		decision.Reasoning = fmt.Sprintf("missing mandatory fields: %s", strings.Join(missing, ", "))

	case fastTrack:
		decision.Route = model.RouteFastTrack
		decision.Confidence = confidenceFastTrack
		decision.Reasoning = fmt.Sprintf("estimated damage $%s is below the $%s fast-track threshold",
			rec.Asset.EstimatedDamage.StringFixed(2), r.threshold.StringFixed(2))

	default:
		decision.Route = model.RouteStandardProcessing
		decision.Confidence = confidenceStandard
		decision.Reasoning = fmt.Sprintf("no routing rule matched: claim type %s, estimated damage %s",
			rec.ClaimType, formatDamage(rec.Asset.EstimatedDamage))
	}

	return decision
}

// MissingFields lists the mandatory fields absent from the record, in
// declaration order. A field counts as present only when extraction
// produced a non-empty value; confidence is not a factor.
func (r *Router) MissingFields(rec model.ClaimRecord) []string {
	missing := []string{}
	for _, field := range r.mandatoryFields {
		if !fieldPresent(rec, field) {
			missing = append(missing, field)
		}
	}
	return missing
}

func fieldPresent(rec model.ClaimRecord, field string) bool {
	switch field {
	case model.FieldPolicyNumber:
		return rec.Policy.Number != ""
	case model.FieldPolicyholderName:
		return rec.Policy.PolicyholderName != ""
	case model.FieldIncidentDate:
		return rec.Incident.Date != ""
	case model.FieldIncidentLocation:
		return rec.Incident.Location != ""
	case model.FieldIncidentDescription:
		return rec.Incident.Description != ""
	case model.FieldClaimType:
		return rec.ClaimType != model.ClaimTypeUnknown
	case model.FieldEstimatedDamage:
		return rec.Asset.EstimatedDamage != nil
	case model.FieldPartyContact:
		return rec.HasPartyContact()
	}
	return false
}

// matchFraudKeyword scans the full normalized document text for the first
// configured fraud keyword, case-insensitive substring match
func (r *Router) matchFraudKeyword(rec model.ClaimRecord) (string, bool) {
	text := strings.ToLower(rec.FraudScanText())
	for _, kw := range r.fraudKeywords {
		if strings.Contains(text, kw) {
			return kw, true
		}
	}
	return "", false
}

func formatDamage(amount *decimal.Decimal) string {
	if amount == nil {
		return "not reported"
	}
	return "$" + amount.StringFixed(2)
}
