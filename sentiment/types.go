package sentiment

// Label is a binary sentiment class as reported to callers.
type Label string

const (
	Positive Label = "Positive"
	Negative Label = "Negative"
)

// A Review is one labeled example from the dataset. Reviews are
// immutable; the trainer derives everything else from them.
type Review struct {
	Text      string // The raw review text.
	Sentiment string // The textual label: "positive" or "negative".
}

// PredictionResult is the verdict for a single piece of text.
//
// Probabilities are formatted as percentages ("93.25%") because that is
// the wire contract of the API; they always sum to 100%.
type PredictionResult struct {
	Sentiment           Label  `json:"sentiment"`
	Confidence          string `json:"confidence"`
	ProbabilityPositive string `json:"probability_positive"`
	ProbabilityNegative string `json:"probability_negative"`
}
