package deduplication

import (
	"fmt"
)

// Item is an existing inventory record as seen by the engine. Only the name
// is read; everything else about the caller's record passes through
// untouched in Match.Item. A nil Item behaves like an item with an empty name.
type Item interface {
	ItemName() string
}

// Name is the simplest Item: a bare product name.
type Name string

// ItemName implements Item.
func (n Name) ItemName() string { return string(n) }

// Names wraps plain strings as Items, preserving order.
func Names(names ...string) []Item {
	items := make([]Item, len(names))
	for i, n := range names {
		items[i] = Name(n)
	}
	return items
}

func itemName(it Item) string {
	if it == nil {
		return ""
	}
	return it.ItemName()
}

// DetectionMethod names the rule that classified a pair as duplicates.
type DetectionMethod string

// Detection methods in decision priority order.
const (
	MethodExact    DetectionMethod = "Exact Match (Stemmed)"
	MethodTypo     DetectionMethod = "Typo Detection"
	MethodSemantic DetectionMethod = "Semantic Similarity"
)

// Valid reports whether m is one of the known detection methods.
func (m DetectionMethod) Valid() bool {
	switch m {
	case MethodExact, MethodTypo, MethodSemantic:
		return true
	}
	return false
}

// Match is the result of a duplicate check: the existing item the candidate
// duplicates, how it was detected and how similar the two names are.
type Match struct {
	// Item is the caller's existing item, returned as supplied
	Item Item `json:"item"`

	// Index is the position of Item in the slice that was searched
	Index int `json:"index"`

	// Similarity is a 0-100 score; 100 for exact stemmed matches
	Similarity int `json:"similarity"`

	// Method is the rule that fired first for this item
	Method DetectionMethod `json:"detection_method"`
}

// Validate checks if the match has valid values
func (m *Match) Validate() error {
	if m.Similarity < 0 || m.Similarity > 100 {
		return fmt.Errorf("similarity must be between 0 and 100 (got %d)", m.Similarity)
	}
	if !m.Method.Valid() {
		return fmt.Errorf("detection_method is not a known method (got %q)", m.Method)
	}
	if m.Index < 0 {
		return fmt.Errorf("index cannot be negative (got %d)", m.Index)
	}
	if m.Method == MethodExact && m.Similarity != 100 {
		return fmt.Errorf("exact matches must have similarity 100 (got %d)", m.Similarity)
	}
	return nil
}

// Evaluation is the per-item breakdown behind a classification decision.
type Evaluation struct {
	// Index is the position of the item in the searched slice
	Index int `json:"index"`

	// Name is the item's raw name
	Name string `json:"name"`

	// Tokens is the item's normalized name
	Tokens []string `json:"tokens"`

	// StemmedMatch is true when both normalized names are identical and non-empty
	StemmedMatch bool `json:"stemmed_match"`

	// Distance is the best token edit distance, or -1 when either name has no tokens
	Distance int `json:"distance"`

	// MatchedToken is the item token that achieved Distance
	MatchedToken string `json:"matched_token,omitempty"`

	// Cosine is the TF-IDF cosine similarity between candidate and item
	Cosine float64 `json:"cosine"`

	// Method is empty when the item is not a duplicate
	Method DetectionMethod `json:"detection_method,omitempty"`

	// Similarity is 0 when the item is not a duplicate
	Similarity int `json:"similarity"`
}

// BatchResult represents the result of scanning a batch of candidates
type BatchResult struct {
	// UniqueIndices are the candidate indices that are not duplicates, in order
	UniqueIndices []int `json:"unique_indices"`

	// Duplicates maps candidate indices to their match among the existing items
	// Match.Index is a position in the existing slice
	Duplicates map[int]*Match `json:"duplicates"`

	// WithinBatch maps candidate indices to their match among earlier candidates
	// Match.Index is a position in the candidates slice, always before the key
	WithinBatch map[int]*Match `json:"within_batch,omitempty"`

	// Statistics about the scan
	Stats BatchStats `json:"stats"`
}

// BatchStats provides metrics about a batch scan
type BatchStats struct {
	// TotalCandidates is the number of candidates scanned
	TotalCandidates int `json:"total_candidates"`

	// UniqueCount is the number of unique candidates
	UniqueCount int `json:"unique_count"`

	// DuplicateCount is the number of duplicates found against existing items
	DuplicateCount int `json:"duplicate_count"`

	// WithinBatchDuplicateCount is the number of duplicates within the batch
	WithinBatchDuplicateCount int `json:"within_batch_duplicate_count"`

	// ComparisonsMade is the total number of pairwise comparisons
	ComparisonsMade int `json:"comparisons_made"`

	// ProcessingTimeMs is the time taken for the scan in milliseconds
	ProcessingTimeMs int64 `json:"processing_time_ms"`
}

// Validate checks if the batch result has valid values
func (r *BatchResult) Validate() error {
	uniqueCount := len(r.UniqueIndices)
	duplicateCount := len(r.Duplicates)
	withinBatchCount := len(r.WithinBatch)

	if r.Stats.UniqueCount != uniqueCount {
		return fmt.Errorf("stats.unique_count (%d) does not match unique_indices length (%d)",
			r.Stats.UniqueCount, uniqueCount)
	}
	if r.Stats.DuplicateCount != duplicateCount {
		return fmt.Errorf("stats.duplicate_count (%d) does not match duplicates length (%d)",
			r.Stats.DuplicateCount, duplicateCount)
	}
	if r.Stats.WithinBatchDuplicateCount != withinBatchCount {
		return fmt.Errorf("stats.within_batch_duplicate_count (%d) does not match within_batch length (%d)",
			r.Stats.WithinBatchDuplicateCount, withinBatchCount)
	}

	total := uniqueCount + duplicateCount + withinBatchCount
	if r.Stats.TotalCandidates != total {
		return fmt.Errorf("stats.total_candidates (%d) does not match sum of unique + duplicates + within_batch (%d)",
			r.Stats.TotalCandidates, total)
	}

	seen := make(map[int]bool, total)
	prev := -1
	for _, idx := range r.UniqueIndices {
		if idx < 0 || idx >= r.Stats.TotalCandidates {
			return fmt.Errorf("unique_indices contains invalid index %d (total: %d)", idx, r.Stats.TotalCandidates)
		}
		if idx <= prev {
			return fmt.Errorf("unique_indices must be strictly increasing (got %d after %d)", idx, prev)
		}
		prev = idx
		seen[idx] = true
	}

	for idx, m := range r.Duplicates {
		if idx < 0 || idx >= r.Stats.TotalCandidates {
			return fmt.Errorf("duplicates contains invalid index %d (total: %d)", idx, r.Stats.TotalCandidates)
		}
		if seen[idx] {
			return fmt.Errorf("index %d is both unique and a duplicate", idx)
		}
		if m == nil {
			return fmt.Errorf("duplicates[%d] has no match", idx)
		}
		if err := m.Validate(); err != nil {
			return fmt.Errorf("duplicates[%d]: %w", idx, err)
		}
		seen[idx] = true
	}

	for dupIdx, m := range r.WithinBatch {
		if dupIdx < 0 || dupIdx >= r.Stats.TotalCandidates {
			return fmt.Errorf("within_batch contains invalid duplicate index %d (total: %d)",
				dupIdx, r.Stats.TotalCandidates)
		}
		if seen[dupIdx] {
			return fmt.Errorf("index %d appears in within_batch and elsewhere", dupIdx)
		}
		if m == nil {
			return fmt.Errorf("within_batch[%d] has no match", dupIdx)
		}
		if err := m.Validate(); err != nil {
			return fmt.Errorf("within_batch[%d]: %w", dupIdx, err)
		}
		if m.Index >= dupIdx {
			return fmt.Errorf("within_batch: duplicate index %d must be > original index %d", dupIdx, m.Index)
		}
		seen[dupIdx] = true
	}

	// Originals of within-batch duplicates must themselves be unique
	for dupIdx, m := range r.WithinBatch {
		if _, exists := r.Duplicates[m.Index]; exists {
			return fmt.Errorf("within_batch[%d] references index %d as original, but it appears in duplicates", dupIdx, m.Index)
		}
		if _, exists := r.WithinBatch[m.Index]; exists {
			return fmt.Errorf("within_batch[%d] references index %d as original, but it is also a duplicate", dupIdx, m.Index)
		}
	}

	return nil
}
