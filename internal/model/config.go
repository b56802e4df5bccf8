package model

import (
	"fmt"
	"regexp"
	"time"
)

// Mandatory field names, in declaration order. Missing-field lists are
// reported in this order, never alphabetically.
const (
	FieldPolicyNumber        = "policy_number"
	FieldPolicyholderName    = "policyholder_name"
	FieldIncidentDate        = "incident_date"
	FieldIncidentLocation    = "incident_location"
	FieldIncidentDescription = "incident_description"
	FieldClaimType           = "claim_type"
	FieldEstimatedDamage     = "estimated_damage"
	FieldPartyContact        = "party_contact"
)

// DefaultMandatoryFields returns the fields whose absence routes a claim to
// manual review
func DefaultMandatoryFields() []string {
	return []string{
		FieldPolicyNumber,
		FieldPolicyholderName,
		FieldIncidentDate,
		FieldIncidentLocation,
		FieldIncidentDescription,
		FieldClaimType,
		FieldEstimatedDamage,
		FieldPartyContact,
	}
}

// Config is the complete runtime configuration. The engines never read
// files or environment variables themselves; callers resolve settings and
// inject them here.
type Config struct {
	Routing     RoutingConfig     `yaml:"routing" mapstructure:"routing"`
	Extraction  ExtractionConfig  `yaml:"extraction" mapstructure:"extraction"`
	Concurrency ConcurrencyConfig `yaml:"concurrency" mapstructure:"concurrency"`
	Cache       CacheConfig       `yaml:"cache" mapstructure:"cache"`
	Output      OutputConfig      `yaml:"output" mapstructure:"output"`
	LLM         LLMConfig         `yaml:"llm" mapstructure:"llm"`
}

// RoutingConfig controls the routing decision engine
type RoutingConfig struct {
	// FastTrackThreshold is the damage amount (currency units) below which
	// a claim qualifies for fast-track processing. Strict less-than.
	FastTrackThreshold float64 `yaml:"fast_track_threshold" mapstructure:"fast_track_threshold"`

	// FraudKeywords trigger the investigation route via case-insensitive
	// substring match against the normalized document text
	FraudKeywords []string `yaml:"fraud_keywords" mapstructure:"fraud_keywords"`

	// MandatoryFields lists the fields whose absence triggers manual review
	MandatoryFields []string `yaml:"mandatory_fields" mapstructure:"mandatory_fields"`
}

// ExtractionConfig controls the field extraction engine
type ExtractionConfig struct {
	// Patterns overrides the built-in pattern table per logical field.
	// A field absent from the map keeps its defaults.
	Patterns map[string][]string `yaml:"patterns,omitempty" mapstructure:"patterns"`
}

// ConcurrencyConfig controls batch processing
type ConcurrencyConfig struct {
	Workers int `yaml:"workers" mapstructure:"workers"`
}

// CacheConfig controls within-run memoization of identical documents
type CacheConfig struct {
	Enabled bool          `yaml:"enabled" mapstructure:"enabled"`
	TTL     time.Duration `yaml:"ttl" mapstructure:"ttl"`
}

// OutputConfig controls console output
type OutputConfig struct {
	Verbose bool   `yaml:"verbose" mapstructure:"verbose"`
	Format  string `yaml:"format" mapstructure:"format"` // json or pretty
}

// LLMConfig configures the optional narrative summarizer. The summary is
// generated after routing and never affects the decision.
type LLMConfig struct {
	Provider          string  `yaml:"provider" mapstructure:"provider"` // openai, ollama, "" = disabled
	Model             string  `yaml:"model" mapstructure:"model"`
	APIKey            string  `yaml:"-" mapstructure:"-"`
	BaseURL           string  `yaml:"base_url,omitempty" mapstructure:"base_url"`
	TimeoutSeconds    int     `yaml:"timeout_seconds" mapstructure:"timeout_seconds"`
	MaxTokens         int     `yaml:"max_tokens" mapstructure:"max_tokens"`
	RequestsPerSecond float64 `yaml:"requests_per_second" mapstructure:"requests_per_second"`
}

// DefaultConfig returns the built-in defaults
func DefaultConfig() *Config {
	return &Config{
		Routing: RoutingConfig{
			FastTrackThreshold: 25000,
			FraudKeywords:      []string{"fraud", "inconsistent", "staged", "suspicious", "fabricated"},
			MandatoryFields:    DefaultMandatoryFields(),
		},
		Concurrency: ConcurrencyConfig{
			Workers: 4,
		},
		Cache: CacheConfig{
			Enabled: true,
			TTL:     15 * time.Minute,
		},
		Output: OutputConfig{
			Format: "json",
		},
		LLM: LLMConfig{
			TimeoutSeconds:    30,
			MaxTokens:         600,
			RequestsPerSecond: 1,
		},
	}
}

// Validate fails fast on contract violations. Malformed documents never
// error at processing time; a broken configuration must.
func (c *Config) Validate() error {
	if c.Routing.FastTrackThreshold <= 0 {
		return fmt.Errorf("routing: fast_track_threshold must be positive, got %v", c.Routing.FastTrackThreshold)
	}
	if len(c.Routing.FraudKeywords) == 0 {
		return fmt.Errorf("routing: fraud_keywords must not be empty")
	}
	if len(c.Routing.MandatoryFields) == 0 {
		return fmt.Errorf("routing: mandatory_fields must not be empty")
	}

	known := make(map[string]bool)
	for _, f := range DefaultMandatoryFields() {
		known[f] = true
	}
	for _, f := range c.Routing.MandatoryFields {
		if !known[f] {
			return fmt.Errorf("routing: unknown mandatory field %q", f)
		}
	}

	for field, patterns := range c.Extraction.Patterns {
		if len(patterns) == 0 {
			return fmt.Errorf("extraction: empty pattern list for field %q", field)
		}
		for _, p := range patterns {
			re, err := regexp.Compile(p)
			if err != nil {
				return fmt.Errorf("extraction: invalid pattern for field %q: %w", field, err)
			}
			// The extractor reads the first submatch; a pattern without a
			// capture group would fail on the first document it matches
			if re.NumSubexp() < 1 {
				return fmt.Errorf("extraction: pattern for field %q has no capture group: %s", field, p)
			}
		}
	}

	if c.Concurrency.Workers < 0 {
		return fmt.Errorf("concurrency: workers must not be negative, got %d", c.Concurrency.Workers)
	}
	if c.Cache.TTL < 0 {
		return fmt.Errorf("cache: ttl must not be negative, got %v", c.Cache.TTL)
	}

	switch c.Output.Format {
	case "", "json", "pretty":
	default:
		return fmt.Errorf("output: unknown format %q (supported: json, pretty)", c.Output.Format)
	}

	switch c.LLM.Provider {
	case "", "openai", "ollama":
	default:
		return fmt.Errorf("llm: unknown provider %q (supported: openai, ollama)", c.LLM.Provider)
	}

	return nil
}
