package model

// ClaimRoute is the destination processing queue assigned to a claim
type ClaimRoute string

const (
	RouteFastTrack          ClaimRoute = "fast_track"
	RouteStandardProcessing ClaimRoute = "standard_processing"
	RouteManualReview       ClaimRoute = "manual_review"
	RouteInvestigationFlag  ClaimRoute = "investigation_flag"
	RouteSpecialistQueue    ClaimRoute = "specialist_queue"
)

// Flag is an independent advisory signal attached to a decision regardless
// of which rule determined the route
type Flag string

const (
	FlagFraud                  Flag = "fraud_flag"
	FlagMissingMandatoryFields Flag = "missing_mandatory_fields"
	FlagSpecializationRequired Flag = "specialization_required"
)

// RoutingDecision is the router's output for a single claim record
type RoutingDecision struct {
	Route         ClaimRoute `json:"recommended_route"`
	Reasoning     string     `json:"reasoning"`
	Flags         []Flag     `json:"flags"`
	Confidence    float64    `json:"confidence_score"`
	MissingFields []string   `json:"missing_fields"`
}

// HasFlag reports whether the decision carries the given flag
func (d RoutingDecision) HasFlag(f Flag) bool {
	for _, have := range d.Flags {
		if have == f {
			return true
		}
	}
	return false
}
