package deduplication

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/steveyegge/dupcheck/internal/lexical"
	"github.com/steveyegge/dupcheck/internal/normalize"
	"github.com/steveyegge/dupcheck/internal/tfidf"
)

// Classifier decides whether a candidate product name duplicates one of a
// set of existing items. It holds only immutable configuration, so a single
// Classifier may serve concurrent calls.
type Classifier struct {
	policy     Policy
	normalizer *normalize.Normalizer
}

// NewClassifier creates a classifier for the given policy.
//
// Returns an error if the policy fails validation.
func NewClassifier(policy Policy) (*Classifier, error) {
	if err := policy.Validate(); err != nil {
		return nil, fmt.Errorf("invalid policy: %w", err)
	}

	stemmer, err := normalize.ParseStemmer(policy.Stemmer)
	if err != nil {
		return nil, fmt.Errorf("invalid policy: %w", err)
	}

	return &Classifier{
		policy:     policy,
		normalizer: normalize.New(stemmer, policy.MinTokenLength),
	}, nil
}

var defaultClassifier = mustClassifier(DefaultPolicy())

func mustClassifier(p Policy) *Classifier {
	c, err := NewClassifier(p)
	if err != nil {
		panic(err)
	}
	return c
}

// FindDuplicate checks candidate against items using DefaultPolicy.
func FindDuplicate(candidate string, items []Item) *Match {
	return defaultClassifier.FindDuplicate(candidate, items)
}

// Policy returns the classifier's policy.
func (c *Classifier) Policy() Policy {
	return c.policy
}

// Normalize returns the tokens the classifier derives from a raw name.
func (c *Classifier) Normalize(name string) []string {
	return c.normalizer.Normalize(name)
}

// FindDuplicate returns the best duplicate of candidate among items, or nil
// when no item qualifies.
//
// Each item is classified by the first rule that holds, in this order:
// identical stemmed names, a typo within MaxTypoDistance edits, or TF-IDF
// cosine similarity of at least SemanticThreshold. The item with the highest
// similarity wins; on equal similarity the earlier item is kept.
func (c *Classifier) FindDuplicate(candidate string, items []Item) *Match {
	if len(items) == 0 {
		return nil
	}

	var best *Match
	bestSimilarity := 0
	for _, ev := range c.evaluate(candidate, items) {
		if ev.Method == "" || ev.Similarity <= bestSimilarity {
			continue
		}
		bestSimilarity = ev.Similarity
		best = &Match{
			Item:       items[ev.Index],
			Index:      ev.Index,
			Similarity: ev.Similarity,
			Method:     ev.Method,
		}
	}
	return best
}

// Explain returns the per-item evaluation that FindDuplicate folds into its
// result, in caller order.
func (c *Classifier) Explain(candidate string, items []Item) []Evaluation {
	if len(items) == 0 {
		return nil
	}
	return c.evaluate(candidate, items)
}

func (c *Classifier) evaluate(candidate string, items []Item) []Evaluation {
	candTokens := c.normalizer.Normalize(candidate)
	candJoined := normalize.Join(candTokens)

	docs := make([][]string, len(items))
	for i, it := range items {
		docs[i] = c.normalizer.Normalize(itemName(it))
	}
	index := tfidf.Build(docs, candTokens)
	candIdx := index.CandidateIndex()

	evals := make([]Evaluation, len(items))
	for i, tokens := range docs {
		ev := Evaluation{
			Index:    i,
			Name:     itemName(items[i]),
			Tokens:   tokens,
			Distance: -1,
			Cosine:   index.Cosine(candIdx, i),
		}
		ev.StemmedMatch = len(candTokens) > 0 && len(tokens) > 0 && candJoined == normalize.Join(tokens)

		d, word, ok := lexical.BestEditDistance(candTokens, tokens)
		if ok {
			ev.Distance = d
			ev.MatchedToken = word
		}

		switch {
		case ev.StemmedMatch:
			ev.Method, ev.Similarity = MethodExact, 100
		case ok && lexical.IsTypo(d, c.policy.MaxTypoDistance):
			ev.Method, ev.Similarity = MethodTypo, lexical.TypoScore(d, word, c.policy.TypoLengthFloor)
		case ev.Cosine >= c.policy.SemanticThreshold:
			ev.Method, ev.Similarity = MethodSemantic, int(math.Round(ev.Cosine*100))
		}

		if ev.Method != "" {
			slog.Debug("duplicate candidate",
				"candidate", candidate,
				"item", ev.Name,
				"index", i,
				"method", string(ev.Method),
				"similarity", ev.Similarity)
		}
		evals[i] = ev
	}
	return evals
}
