package sentiment

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// MaxFeatures caps the fitted vocabulary size.
const MaxFeatures = 5000

// A Vectorizer maps cleaned text into a fixed-dimension TF-IDF feature
// space. Fit must run before Transform, and vectors produced under one
// fit are meaningless against another.
type Vectorizer struct {
	vocab  map[string]int
	idf    []float64
	fitted bool
}

// NewVectorizer returns an unfitted vectorizer.
func NewVectorizer() *Vectorizer {
	return &Vectorizer{}
}

// Fit builds the vocabulary and idf table from the training corpus.
// Terms are ranked by corpus frequency (lexicographic tiebreak) and
// capped at MaxFeatures; idf uses the smoothed form
// ln((1+n)/(1+df)) + 1.
func (v *Vectorizer) Fit(corpus []string) error {
	if len(corpus) == 0 {
		return fmt.Errorf("vectorizer: empty fit corpus")
	}

	termCount := make(map[string]int)
	docCount := make(map[string]int)
	for _, doc := range corpus {
		seen := make(map[string]bool)
		for _, term := range strings.Fields(doc) {
			termCount[term]++
			if !seen[term] {
				docCount[term]++
				seen[term] = true
			}
		}
	}
	if len(termCount) == 0 {
		return fmt.Errorf("vectorizer: fit corpus contains no terms")
	}

	terms := make([]string, 0, len(termCount))
	for term := range termCount {
		terms = append(terms, term)
	}
	sort.Slice(terms, func(i, j int) bool {
		if termCount[terms[i]] != termCount[terms[j]] {
			return termCount[terms[i]] > termCount[terms[j]]
		}
		return terms[i] < terms[j]
	})
	if len(terms) > MaxFeatures {
		terms = terms[:MaxFeatures]
	}
	// Column order follows the sorted vocabulary so indices are stable.
	sort.Strings(terms)

	n := float64(len(corpus))
	v.vocab = make(map[string]int, len(terms))
	v.idf = make([]float64, len(terms))
	for i, term := range terms {
		v.vocab[term] = i
		v.idf[i] = math.Log((1+n)/(1+float64(docCount[term]))) + 1
	}
	v.fitted = true
	return nil
}

// Transform maps text into the fitted space. Out-of-vocabulary terms
// contribute nothing, and the result is L2-normalized.
func (v *Vectorizer) Transform(text string) (*mat.VecDense, error) {
	if !v.fitted {
		return nil, fmt.Errorf("vectorizer: %w", ErrNotFitted)
	}

	vec := mat.NewVecDense(len(v.idf), nil)
	for _, term := range strings.Fields(text) {
		if idx, ok := v.vocab[term]; ok {
			vec.SetVec(idx, vec.AtVec(idx)+v.idf[idx])
		}
	}
	if norm := mat.Norm(vec, 2); norm > 0 {
		vec.ScaleVec(1/norm, vec)
	}
	return vec, nil
}

// TransformAll stacks the transforms of a corpus into a design matrix,
// one row per document.
func (v *Vectorizer) TransformAll(corpus []string) (*mat.Dense, error) {
	if !v.fitted {
		return nil, fmt.Errorf("vectorizer: %w", ErrNotFitted)
	}

	X := mat.NewDense(len(corpus), len(v.idf), nil)
	for i, doc := range corpus {
		vec, err := v.Transform(doc)
		if err != nil {
			return nil, err
		}
		X.SetRow(i, vec.RawVector().Data)
	}
	return X, nil
}

// NumFeatures returns the fitted vocabulary size.
func (v *Vectorizer) NumFeatures() int {
	return len(v.idf)
}
