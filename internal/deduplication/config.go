package deduplication

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/steveyegge/dupcheck/internal/normalize"
)

// Policy holds the tuning parameters of the duplicate classifier.
type Policy struct {
	// SemanticThreshold is the minimum TF-IDF cosine similarity (0.0-1.0) for a
	// semantic match
	// Default: 0.35
	SemanticThreshold float64 `yaml:"semantic_threshold" json:"semantic_threshold"`

	// MaxTypoDistance is the largest token edit distance treated as a typo.
	// Distance 0 is never a typo (that is a shared word, not a misspelling)
	// Default: 2
	MaxTypoDistance int `yaml:"max_typo_distance" json:"max_typo_distance"`

	// TypoLengthFloor is the minimum token length used to normalize typo scores,
	// so one edit in a very short word does not produce an extreme score
	// Default: 3
	TypoLengthFloor int `yaml:"typo_length_floor" json:"typo_length_floor"`

	// MinTokenLength is the shortest stemmed token kept by normalization
	// Default: 3 (drops "of", "an", "xl")
	MinTokenLength int `yaml:"min_token_length" json:"min_token_length"`

	// Stemmer selects the stemming algorithm: "inflection" or "porter2"
	// Default: "inflection"
	Stemmer string `yaml:"stemmer" json:"stemmer"`

	// ScanConcurrency bounds the number of parallel checks in a batch scan
	// Default: 4
	ScanConcurrency int `yaml:"scan_concurrency" json:"scan_concurrency"`

	// EnableWithinBatchDedup also compares each batch candidate against the
	// earlier unique candidates of the same batch
	// Default: true
	EnableWithinBatchDedup bool `yaml:"within_batch" json:"within_batch"`
}

// DefaultPolicy returns the default classifier policy.
func DefaultPolicy() Policy {
	return Policy{
		SemanticThreshold:      0.35,
		MaxTypoDistance:        2,
		TypoLengthFloor:        3,
		MinTokenLength:         normalize.DefaultMinTokenLength,
		Stemmer:                normalize.StemmerInflection,
		ScanConcurrency:        4,
		EnableWithinBatchDedup: true,
	}
}

// Validate checks if the policy has valid values
func (p Policy) Validate() error {
	if p.SemanticThreshold <= 0.0 || p.SemanticThreshold > 1.0 {
		return fmt.Errorf("semantic_threshold must be in (0.0, 1.0] (got %.2f)", p.SemanticThreshold)
	}
	if p.MaxTypoDistance < 1 {
		return fmt.Errorf("max_typo_distance must be at least 1 (got %d)", p.MaxTypoDistance)
	}
	if p.MaxTypoDistance > 10 {
		return fmt.Errorf("max_typo_distance too large (got %d, max 10)", p.MaxTypoDistance)
	}
	if p.TypoLengthFloor < 1 {
		return fmt.Errorf("typo_length_floor must be positive (got %d)", p.TypoLengthFloor)
	}
	if p.TypoLengthFloor > 20 {
		return fmt.Errorf("typo_length_floor too large (got %d, max 20)", p.TypoLengthFloor)
	}
	if p.MinTokenLength < 1 {
		return fmt.Errorf("min_token_length must be positive (got %d)", p.MinTokenLength)
	}
	if p.MinTokenLength > 20 {
		return fmt.Errorf("min_token_length too large (got %d, max 20)", p.MinTokenLength)
	}
	if _, err := normalize.ParseStemmer(p.Stemmer); err != nil {
		return fmt.Errorf("stemmer: %w", err)
	}
	if p.ScanConcurrency < 1 {
		return fmt.Errorf("scan_concurrency must be positive (got %d)", p.ScanConcurrency)
	}
	if p.ScanConcurrency > 64 {
		return fmt.Errorf("scan_concurrency too large (got %d, max 64)", p.ScanConcurrency)
	}
	return nil
}

// String returns a human-readable representation of the policy
func (p Policy) String() string {
	return fmt.Sprintf(
		"Policy{SemanticThreshold: %.2f, MaxTypoDistance: %d, TypoLengthFloor: %d, "+
			"MinTokenLength: %d, Stemmer: %s, ScanConcurrency: %d, WithinBatch: %t}",
		p.SemanticThreshold, p.MaxTypoDistance, p.TypoLengthFloor,
		p.MinTokenLength, p.Stemmer, p.ScanConcurrency, p.EnableWithinBatchDedup,
	)
}

// LoadPolicy reads a YAML policy file. Keys missing from the file keep their
// default values; unknown keys are rejected.
func LoadPolicy(path string) (Policy, error) {
	policy := DefaultPolicy()

	data, err := os.ReadFile(path)
	if err != nil {
		return policy, fmt.Errorf("reading policy file: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&policy); err != nil && !errors.Is(err, io.EOF) {
		return policy, fmt.Errorf("parsing YAML: %w", err)
	}

	if err := policy.Validate(); err != nil {
		return policy, fmt.Errorf("invalid policy in %s: %w", path, err)
	}
	return policy, nil
}

// ApplyEnv overrides p with any policy environment variables that are set.
//
// Environment variables:
//   - DUPCHECK_SEMANTIC_THRESHOLD: Minimum cosine similarity for semantic matches (default: 0.35)
//   - DUPCHECK_MAX_TYPO_DISTANCE: Largest edit distance counted as a typo (default: 2)
//   - DUPCHECK_TYPO_LENGTH_FLOOR: Minimum length used to normalize typo scores (default: 3)
//   - DUPCHECK_MIN_TOKEN_LENGTH: Shortest stemmed token kept (default: 3)
//   - DUPCHECK_STEMMER: "inflection" or "porter2" (default: inflection)
//   - DUPCHECK_SCAN_CONCURRENCY: Parallel checks during batch scans (default: 4)
//   - DUPCHECK_WITHIN_BATCH: Deduplicate candidates against each other (default: true)
//
// The result is not validated; callers validate once all sources are applied.
func ApplyEnv(p Policy) (Policy, error) {
	if err := parseEnvFloat("DUPCHECK_SEMANTIC_THRESHOLD", &p.SemanticThreshold); err != nil {
		return p, err
	}
	if err := parseEnvInt("DUPCHECK_MAX_TYPO_DISTANCE", &p.MaxTypoDistance); err != nil {
		return p, err
	}
	if err := parseEnvInt("DUPCHECK_TYPO_LENGTH_FLOOR", &p.TypoLengthFloor); err != nil {
		return p, err
	}
	if err := parseEnvInt("DUPCHECK_MIN_TOKEN_LENGTH", &p.MinTokenLength); err != nil {
		return p, err
	}
	if v := os.Getenv("DUPCHECK_STEMMER"); v != "" {
		p.Stemmer = v
	}
	if err := parseEnvInt("DUPCHECK_SCAN_CONCURRENCY", &p.ScanConcurrency); err != nil {
		return p, err
	}
	if err := parseEnvBool("DUPCHECK_WITHIN_BATCH", &p.EnableWithinBatchDedup); err != nil {
		return p, err
	}
	return p, nil
}

// PolicyFromEnv creates a Policy from environment variables, falling back to
// defaults. Returns an error if any variable has an invalid value.
func PolicyFromEnv() (Policy, error) {
	policy, err := ApplyEnv(DefaultPolicy())
	if err != nil {
		return policy, err
	}
	if err := policy.Validate(); err != nil {
		return policy, fmt.Errorf("invalid policy from environment: %w", err)
	}
	return policy, nil
}

// parseEnvFloat parses a float64 from an environment variable
func parseEnvFloat(key string, dest *float64) error {
	value := os.Getenv(key)
	if value == "" {
		return nil // Use default
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fmt.Errorf("invalid value for %s: %w", key, err)
	}
	*dest = parsed
	return nil
}

// parseEnvInt parses an int from an environment variable
func parseEnvInt(key string, dest *int) error {
	value := os.Getenv(key)
	if value == "" {
		return nil // Use default
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("invalid value for %s: %w", key, err)
	}
	*dest = parsed
	return nil
}

// parseEnvBool parses a bool from an environment variable
func parseEnvBool(key string, dest *bool) error {
	value := os.Getenv(key)
	if value == "" {
		return nil // Use default
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fmt.Errorf("invalid value for %s: %w", key, err)
	}
	*dest = parsed
	return nil
}
