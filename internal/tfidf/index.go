// Package tfidf builds a call-local TF-IDF corpus over normalized product
// names and scores documents against each other with cosine similarity.
//
// Term weights are relative to the corpus they were computed from. Build a
// new Index for every comparison set; an Index is never shared across calls.
package tfidf

import (
	"math"
)

// Index holds the TF-IDF vectors of one corpus: the existing documents in
// caller order followed by a single candidate document.
type Index struct {
	vectors []map[string]float64
	norms   []float64
	idf     map[string]float64
}

// Build constructs the index. The candidate document is stored at
// position len(existing).
func Build(existing [][]string, candidate []string) *Index {
	docs := make([][]string, 0, len(existing)+1)
	docs = append(docs, existing...)
	docs = append(docs, candidate)

	df := make(map[string]int)
	for _, doc := range docs {
		seen := make(map[string]struct{}, len(doc))
		for _, term := range doc {
			if _, ok := seen[term]; ok {
				continue
			}
			seen[term] = struct{}{}
			df[term]++
		}
	}

	n := float64(len(docs))
	idf := make(map[string]float64, len(df))
	for term, count := range df {
		idf[term] = 1 + math.Log(n/float64(1+count))
	}

	idx := &Index{
		vectors: make([]map[string]float64, len(docs)),
		norms:   make([]float64, len(docs)),
		idf:     idf,
	}
	for i, doc := range docs {
		vec := make(map[string]float64, len(doc))
		for _, term := range doc {
			vec[term]++
		}
		var sum float64
		for term, tf := range vec {
			w := tf * idf[term]
			vec[term] = w
			sum += w * w
		}
		idx.vectors[i] = vec
		idx.norms[i] = math.Sqrt(sum)
	}
	return idx
}

// Len returns the number of documents, candidate included.
func (idx *Index) Len() int {
	return len(idx.vectors)
}

// CandidateIndex returns the position of the candidate document.
func (idx *Index) CandidateIndex() int {
	return len(idx.vectors) - 1
}

// IDF returns the inverse document frequency of term, or 0 when the term
// does not occur in the corpus.
func (idx *Index) IDF(term string) float64 {
	return idx.idf[term]
}

// Vector returns a copy of the weights of document i, or nil when i is out of range.
func (idx *Index) Vector(i int) map[string]float64 {
	if i < 0 || i >= len(idx.vectors) {
		return nil
	}
	out := make(map[string]float64, len(idx.vectors[i]))
	for term, w := range idx.vectors[i] {
		out[term] = w
	}
	return out
}

// Cosine returns the cosine similarity of documents i and j in [0, 1].
// It is 0 when either index is out of range or either vector has zero magnitude.
func (idx *Index) Cosine(i, j int) float64 {
	if i < 0 || j < 0 || i >= len(idx.vectors) || j >= len(idx.vectors) {
		return 0
	}
	if idx.norms[i] == 0 || idx.norms[j] == 0 {
		return 0
	}

	a, b := idx.vectors[i], idx.vectors[j]
	if len(b) < len(a) {
		a, b = b, a
	}
	var dot float64
	for term, wa := range a {
		dot += wa * b[term]
	}

	sim := dot / (idx.norms[i] * idx.norms[j])
	switch {
	case sim < 0:
		return 0
	case sim > 1:
		return 1
	}
	return sim
}
