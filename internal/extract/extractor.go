package extract

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ppiankov/fnoltriage/internal/model"
)

var spaceRuns = regexp.MustCompile(`[ \t]+`)

// Normalize prepares document text for pattern matching: runs of spaces and
// tabs collapse to a single space, every line is trimmed, newlines are
// preserved verbatim. Label-then-value-on-next-line is the dominant FNOL
// layout, so the line structure must survive.
func Normalize(text string) string {
	text = spaceRuns.ReplaceAllString(text, " ")
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	return strings.Join(lines, "\n")
}

// FieldExtractor converts raw FNOL document text into a structured claim
// record with per-field confidence. Pattern tables and keyword groups are
// bound at construction and read-only afterwards, so a single extractor is
// safe for concurrent use across documents.
type FieldExtractor struct {
	patterns      map[string][]*regexp.Regexp
	keywordGroups []keywordGroup
}

// NewFieldExtractor builds an extractor from the built-in pattern table,
// with per-field overrides from cfg applied on top. cfg must have passed
// Config.Validate; an invalid override pattern panics here by contract.
func NewFieldExtractor(cfg model.ExtractionConfig) *FieldExtractor {
	compiled := make(map[string][]*regexp.Regexp, len(defaultPatterns))
	for field, patterns := range defaultPatterns {
		if override, ok := cfg.Patterns[field]; ok {
			patterns = override
		}
		compiled[field] = compilePatterns(patterns)
	}
	// Overrides for fields without built-in defaults are honored too
	for field, patterns := range cfg.Patterns {
		if _, ok := compiled[field]; !ok {
			compiled[field] = compilePatterns(patterns)
		}
	}

	return &FieldExtractor{
		patterns:      compiled,
		keywordGroups: defaultKeywordGroups,
	}
}

// compilePatterns compiles a pattern list with case-insensitive matching,
// unless a pattern sets its own flag group. A bare "(?" prefix is not
// enough to tell: non-capturing groups start the same way.
func compilePatterns(patterns []string) []*regexp.Regexp {
	compiled := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		if !hasFlagPrefix(p) {
			p = "(?i)" + p
		}
		compiled = append(compiled, regexp.MustCompile(p))
	}
	return compiled
}

// hasFlagPrefix reports whether a pattern opens with an inline flag group
// such as (?i) or (?s:...), as opposed to a non-capturing group (?: or a
// named group (?P<...>
func hasFlagPrefix(p string) bool {
	if !strings.HasPrefix(p, "(?") {
		return false
	}
	rest := p[2:]
	if rest == "" || rest[0] == ':' || rest[0] == 'P' || rest[0] == '<' {
		return false
	}
	for i := 0; i < len(rest); i++ {
		switch rest[i] {
		case 'i', 'm', 's', 'U', '-':
		case ')', ':':
			return true
		default:
			return false
		}
	}
	return false
}

// Extract converts document text into a claim record. It never fails:
// fields without a pattern hit stay empty at zero confidence, malformed
// currency values degrade to absent. Empty input yields an empty record
// with claim_type unknown.
func (e *FieldExtractor) Extract(text string) model.ClaimRecord {
	norm := Normalize(text)
	conf := make(map[string]model.Confidence)

	rec := model.ClaimRecord{
		SourceText:      norm,
		FieldConfidence: conf,
	}

	rec.Policy = model.PolicyInfo{
		Number:           e.field(norm, patPolicyNumber, conf),
		PolicyholderName: e.field(norm, patPolicyholderName, conf),
		EffectiveDate:    e.field(norm, patEffectiveDate, conf),
		ExpirationDate:   e.field(norm, patExpirationDate, conf),
		Insurer:          e.field(norm, patInsurer, conf),
	}

	rec.Incident = model.IncidentInfo{
		Date:        e.field(norm, patIncidentDate, conf),
		Time:        e.field(norm, patIncidentTime, conf),
		Location:    e.field(norm, patIncidentLocation, conf),
		Description: e.field(norm, patIncidentDesc, conf),
	}

	rec.Asset = model.AssetDetails{
		Type:       e.field(norm, patAssetType, conf),
		Identifier: e.field(norm, patAssetID, conf),
	}
	if raw, _ := e.match(norm, patEstimatedDamage); raw != "" {
		if amount := parseCurrency(raw); amount != nil {
			rec.Asset.EstimatedDamage = amount
			conf[patEstimatedDamage] = model.ConfidenceHit
			// The initial estimate is read from the same currency slot
			estimate := *amount
			rec.InitialEstimate = &estimate
			conf["initial_estimate"] = model.ConfidenceHit
		}
	}

	rec.ClaimType = e.classifyClaimType(norm)
	if rec.ClaimType != model.ClaimTypeUnknown {
		conf[patClaimType] = model.ConfidenceHit
	} else {
		// claim_type is always present in the record, possibly at zero
		// confidence; every other field only gets an entry when populated
		conf[patClaimType] = model.ConfidenceNone
	}

	rec.Parties = e.extractParties(norm)
	if len(rec.Parties) > 0 {
		conf["involved_parties"] = model.ConfidenceHit
	}

	rec.Attachments = e.extractAttachments(norm)
	if len(rec.Attachments) > 0 {
		conf["attachments"] = model.ConfidenceHit
	}

	return rec
}

// field extracts one field and records its confidence entry on a hit
func (e *FieldExtractor) field(text, name string, conf map[string]model.Confidence) string {
	value, c := e.match(text, name)
	if value != "" {
		conf[name] = c
	}
	return value
}

// match tries the field's patterns strictly in order; the first pattern
// that matches anywhere wins. A non-empty capture yields ConfidenceHit,
// no match yields empty value at ConfidenceNone. There is no intermediate
// tier and no best-match selection across patterns.
func (e *FieldExtractor) match(text, name string) (string, model.Confidence) {
	for _, re := range e.patterns[name] {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		value := strings.TrimSpace(m[1])
		if value != "" {
			return value, model.ConfidenceHit
		}
	}
	return "", model.ConfidenceNone
}

// classifyClaimType reads a labeled claim-type field when one exists, then
// falls back to scanning the whole text against the keyword groups in
// priority order
func (e *FieldExtractor) classifyClaimType(norm string) model.ClaimType {
	if labeled, _ := e.match(norm, patClaimType); labeled != "" {
		if ct := classifyLabel(labeled); ct != model.ClaimTypeUnknown {
			return ct
		}
	}

	lower := strings.ToLower(norm)
	for _, group := range e.keywordGroups {
		for _, kw := range group.keywords {
			if strings.Contains(lower, kw) {
				return group.claimType
			}
		}
	}
	return model.ClaimTypeUnknown
}

// classifyLabel maps a labeled claim-type value onto the closed enum
func classifyLabel(label string) model.ClaimType {
	lower := strings.ToLower(label)
	switch {
	case strings.Contains(lower, "injury"):
		return model.ClaimTypeBodilyInjury
	case strings.Contains(lower, "theft"):
		return model.ClaimTypeTheft
	case strings.Contains(lower, "collision"):
		return model.ClaimTypeCollision
	case strings.Contains(lower, "comprehensive"), strings.Contains(lower, "liability"):
		return model.ClaimTypeOther
	case strings.Contains(lower, "property"), strings.Contains(lower, "damage"):
		return model.ClaimTypePropertyDamage
	}
	return model.ClaimTypeUnknown
}

// extractParties collects claimant, third-party, and witness blocks.
// Contact sub-fields are extracted independently of the name and may be
// partially present.
func (e *FieldExtractor) extractParties(norm string) []model.Party {
	var parties []model.Party

	if name, _ := e.match(norm, patClaimant); name != "" {
		phone, _ := e.match(norm, patClaimantPhone)
		email, _ := e.match(norm, patClaimantEmail)
		address, _ := e.match(norm, patClaimantAddress)
		parties = append(parties, model.Party{
			Name:    name,
			Role:    model.RoleClaimant,
			Phone:   phone,
			Email:   email,
			Address: address,
		})
	}

	if name, _ := e.match(norm, patThirdParty); name != "" {
		phone, _ := e.match(norm, patThirdPartyPhone)
		parties = append(parties, model.Party{
			Name:  name,
			Role:  model.RoleThirdParty,
			Phone: phone,
		})
	}

	if name, _ := e.match(norm, patWitness); name != "" {
		phone, _ := e.match(norm, patWitnessPhone)
		parties = append(parties, model.Party{
			Name:  name,
			Role:  model.RoleWitness,
			Phone: phone,
		})
	}

	return parties
}

// extractAttachments collects file references from every attachment
// pattern, splitting comma-separated lists and dropping duplicates while
// keeping first-seen order
func (e *FieldExtractor) extractAttachments(norm string) []string {
	var attachments []string
	seen := make(map[string]bool)

	add := func(raw string) {
		raw = strings.TrimSpace(raw)
		if raw == "" || seen[strings.ToLower(raw)] {
			return
		}
		seen[strings.ToLower(raw)] = true
		attachments = append(attachments, raw)
	}

	for _, re := range e.patterns[patAttachments] {
		for _, m := range re.FindAllStringSubmatch(norm, -1) {
			for _, part := range strings.Split(m[1], ",") {
				add(part)
			}
		}
	}

	return attachments
}

// parseCurrency converts a currency-formatted substring into a decimal.
// Parse failures mean field-absent, never an error: one malformed dollar
// amount must not abort extraction of the rest of the document.
func parseCurrency(raw string) *decimal.Decimal {
	clean := strings.NewReplacer("$", "", ",", "", " ", "").Replace(raw)
	clean = strings.TrimRight(clean, ".")
	if clean == "" {
		return nil
	}
	d, err := decimal.NewFromString(clean)
	if err != nil {
		return nil
	}
	return &d
}
