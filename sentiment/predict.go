package sentiment

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// MinTextLength is the shortest review Predict accepts, counted in
// characters after trimming surrounding whitespace.
const MinTextLength = 10

// A Predictor maps raw text to a sentiment verdict using the currently
// published model snapshot. It is stateless and safe for concurrent use.
type Predictor struct {
	normalizer *Normalizer
	store      *Store
}

// NewPredictor creates a predictor reading snapshots from store.
func NewPredictor(normalizer *Normalizer, store *Store) *Predictor {
	return &Predictor{normalizer: normalizer, store: store}
}

// Predict validates the input, runs normalize → transform →
// predict_proba against the current snapshot and reports the winning
// class with its probability as confidence.
func (p *Predictor) Predict(text string) (*PredictionResult, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, &ValidationError{Reason: "no text provided"}
	}
	if utf8.RuneCountInString(trimmed) < MinTextLength {
		return nil, &ValidationError{Reason: "text too short; please provide a longer review"}
	}

	model := p.store.Current()
	if model == nil {
		return nil, ErrModelNotTrained
	}

	vec, err := model.vectorizer.Transform(p.normalizer.Normalize(trimmed))
	if err != nil {
		return nil, err
	}
	p0, p1, err := model.classifier.PredictProba(vec)
	if err != nil {
		return nil, err
	}

	label, confidence := Negative, p0
	if p1 >= 0.5 {
		label, confidence = Positive, p1
	}
	return &PredictionResult{
		Sentiment:           label,
		Confidence:          formatPercent(confidence),
		ProbabilityPositive: formatPercent(p1),
		ProbabilityNegative: formatPercent(p0),
	}, nil
}

func formatPercent(p float64) string {
	return fmt.Sprintf("%.2f%%", p*100)
}
