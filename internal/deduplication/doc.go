// Package deduplication detects duplicate products before they enter an inventory.
//
// # Overview
//
// Sellers add the same product twice more often than you would think:
// "Tomatoes" next to "Tomato", "Potatoe" next to "Potato", "Organic Spinach"
// next to "Fresh Organic Spinach Leaves". The deduplication package answers a
// single question for the caller: given a candidate name and the items that
// already exist, is the candidate a duplicate, of which item, by what method
// and how confidently?
//
// # Architecture
//
// The classifier layers three analyzers:
//
//  1. Normalizer (package normalize): lowercase, split on whitespace, stem,
//     drop tokens shorter than MinTokenLength
//  2. Lexical matcher (package lexical): minimum Levenshtein distance over
//     the token cross product, for typos
//  3. Vector similarity index (package tfidf): TF-IDF cosine similarity over
//     a corpus of all existing items plus the candidate, for reordered or
//     partially overlapping names
//
// For every existing item the first satisfied rule wins, in fixed priority:
//   - Exact Match (Stemmed): normalized names are identical, similarity 100
//   - Typo Detection: 0 < distance <= MaxTypoDistance, similarity from TypoScore
//   - Semantic Similarity: cosine >= SemanticThreshold, similarity = cosine*100
//
// The item with the highest similarity is returned. Ties keep the earlier item.
//
// # Usage Examples
//
// Single check with defaults:
//
//	match := deduplication.FindDuplicate("Potatoe", deduplication.Names("Potato", "Carrots"))
//	if match != nil {
//	    fmt.Printf("looks like %q (%s, %d%%) - add anyway?\n",
//	        match.Item.ItemName(), match.Method, match.Similarity)
//	}
//
// Custom policy:
//
//	policy := deduplication.DefaultPolicy()
//	policy.Stemmer = "porter2"
//	classifier, err := deduplication.NewClassifier(policy)
//	if err != nil {
//	    return fmt.Errorf("creating classifier: %w", err)
//	}
//	match := classifier.FindDuplicate(name, items)
//
// Batch scan of an import file against the live catalog:
//
//	result, err := classifier.ScanBatch(ctx, imported, catalog)
//	if err != nil {
//	    return err
//	}
//	for _, idx := range result.UniqueIndices {
//	    // safe to add imported[idx]
//	}
//
// # Design Principles
//
// No hidden state:
//   - The TF-IDF corpus is rebuilt from the caller's snapshot on every call;
//     term rarity only means something relative to that catalog
//   - A Classifier is immutable after construction and safe for concurrent use
//
// Degrade, never fail:
//   - FindDuplicate has no error return; empty names and empty item lists
//     simply produce no match
//   - Zero-magnitude vectors have cosine similarity 0
//
// Deterministic:
//   - Items are processed in caller order and ties keep the first item, so
//     identical inputs always produce identical results
//
// # Configuration
//
// See DefaultPolicy for defaults, LoadPolicy for YAML files and ApplyEnv for
// the DUPCHECK_* environment variables.
package deduplication
