package deduplication

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"
)

// ScanBatch classifies every candidate against the existing items and, when
// EnableWithinBatchDedup is set, against the earlier unique candidates of the
// same batch. A candidate that duplicates an existing item is reported
// against that item even if it also duplicates an earlier candidate.
//
// Checks against existing items run in parallel, bounded by ScanConcurrency;
// each check builds its own corpus. The only error is context cancellation.
func (c *Classifier) ScanBatch(ctx context.Context, candidates, existing []Item) (*BatchResult, error) {
	startTime := time.Now()

	result := &BatchResult{
		UniqueIndices: []int{},
		Duplicates:    make(map[int]*Match),
		WithinBatch:   make(map[int]*Match),
	}

	against := make([]*Match, len(candidates))
	comparisons := 0
	if len(existing) > 0 && len(candidates) > 0 {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(c.policy.ScanConcurrency)
		for i, cand := range candidates {
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				against[i] = c.FindDuplicate(itemName(cand), existing)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, fmt.Errorf("scanning against existing items: %w", err)
		}
		comparisons += len(candidates) * len(existing)
	}

	var uniqueItems []Item
	for i, cand := range candidates {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("scanning within batch: %w", err)
		}

		if m := against[i]; m != nil {
			result.Duplicates[i] = m
			slog.Debug("batch duplicate of existing item",
				"candidate", i, "existing", m.Index, "method", string(m.Method), "similarity", m.Similarity)
			continue
		}

		if c.policy.EnableWithinBatchDedup && len(uniqueItems) > 0 {
			comparisons += len(uniqueItems)
			if m := c.FindDuplicate(itemName(cand), uniqueItems); m != nil {
				// Re-address the match from the unique subset to the batch.
				m.Index = result.UniqueIndices[m.Index]
				result.WithinBatch[i] = m
				slog.Debug("within-batch duplicate",
					"candidate", i, "original", m.Index, "method", string(m.Method), "similarity", m.Similarity)
				continue
			}
		}

		uniqueItems = append(uniqueItems, cand)
		result.UniqueIndices = append(result.UniqueIndices, i)
	}

	result.Stats = BatchStats{
		TotalCandidates:           len(candidates),
		UniqueCount:               len(result.UniqueIndices),
		DuplicateCount:            len(result.Duplicates),
		WithinBatchDuplicateCount: len(result.WithinBatch),
		ComparisonsMade:           comparisons,
		ProcessingTimeMs:          time.Since(startTime).Milliseconds(),
	}
	return result, nil
}
