package sentiment

import (
	"fmt"
	"math"
	"math/rand"
	"sort"
	"time"

	"github.com/rs/zerolog"
)

// TrainingConfig contains configuration for one training run. All
// randomness (sampling, splitting) flows from Seed, so a run is fully
// reproducible.
type TrainingConfig struct {
	DatasetPath  string
	SampleSize   int     // examples drawn from the dataset; 0 means "use everything"
	TestFraction float64 // held-out share of the sample
	Seed         int64
	Classifier   ClassifierConfig
}

// DefaultTrainingConfig returns the standard run configuration: a
// 500-example sample with a stratified 80/20 split.
func DefaultTrainingConfig(datasetPath string) TrainingConfig {
	return TrainingConfig{
		DatasetPath:  datasetPath,
		SampleSize:   500,
		TestFraction: 0.2,
		Seed:         42,
		Classifier:   DefaultClassifierConfig(),
	}
}

// TrainingMetrics describes a completed training run.
type TrainingMetrics struct {
	SampleCount  int
	TrainCount   int
	TestCount    int
	VocabSize    int
	Accuracy     float64
	TrainingTime time.Duration
}

// A Trainer fits a fresh (vectorizer, classifier) pair from the labeled
// dataset. It holds no model state itself; the returned Model is handed
// to a Store for publication.
type Trainer struct {
	normalizer *Normalizer
	logger     zerolog.Logger
}

// NewTrainer creates a trainer around the given normalizer.
func NewTrainer(normalizer *Normalizer, logger zerolog.Logger) *Trainer {
	return &Trainer{normalizer: normalizer, logger: logger}
}

// Train runs the full pipeline: load, sample, normalize, map labels,
// stratified split, fit vectorizer on the training split only, fit the
// classifier on its features, then evaluate held-out accuracy.
func (t *Trainer) Train(cfg TrainingConfig) (*Model, TrainingMetrics, error) {
	start := time.Now()
	var metrics TrainingMetrics

	reviews, err := LoadDataset(cfg.DatasetPath)
	if err != nil {
		return nil, metrics, err
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	sample := sampleReviews(reviews, cfg.SampleSize, rng)
	metrics.SampleCount = len(sample)
	t.logger.Info().Int("rows", len(reviews)).Int("sampled", len(sample)).Msg("dataset loaded")

	cleaned := make([]string, len(sample))
	labels := make([]int, len(sample))
	for i, review := range sample {
		cleaned[i] = t.normalizer.Normalize(review.Text)
		label, err := labelToClass(review.Sentiment)
		if err != nil {
			return nil, metrics, err
		}
		labels[i] = label
	}

	trainIdx, testIdx, err := stratifiedSplit(labels, cfg.TestFraction, rng)
	if err != nil {
		return nil, metrics, err
	}
	metrics.TrainCount = len(trainIdx)
	metrics.TestCount = len(testIdx)

	trainTexts := make([]string, len(trainIdx))
	trainLabels := make([]int, len(trainIdx))
	for i, idx := range trainIdx {
		trainTexts[i] = cleaned[idx]
		trainLabels[i] = labels[idx]
	}

	vectorizer := NewVectorizer()
	if err := vectorizer.Fit(trainTexts); err != nil {
		return nil, metrics, err
	}
	metrics.VocabSize = vectorizer.NumFeatures()

	X, err := vectorizer.TransformAll(trainTexts)
	if err != nil {
		return nil, metrics, err
	}
	classifier := NewClassifier(cfg.Classifier)
	if err := classifier.Fit(X, trainLabels); err != nil {
		return nil, metrics, err
	}

	correct := 0
	for _, idx := range testIdx {
		vec, err := vectorizer.Transform(cleaned[idx])
		if err != nil {
			return nil, metrics, err
		}
		_, p1, err := classifier.PredictProba(vec)
		if err != nil {
			return nil, metrics, err
		}
		predicted := 0
		if p1 >= 0.5 {
			predicted = 1
		}
		if predicted == labels[idx] {
			correct++
		}
	}
	if len(testIdx) > 0 {
		metrics.Accuracy = float64(correct) / float64(len(testIdx))
	}
	metrics.TrainingTime = time.Since(start)

	t.logger.Info().
		Int("train", metrics.TrainCount).
		Int("test", metrics.TestCount).
		Int("vocab", metrics.VocabSize).
		Float64("accuracy", metrics.Accuracy).
		Dur("took", metrics.TrainingTime).
		Msg("training complete")

	return &Model{
		vectorizer: vectorizer,
		classifier: classifier,
		Accuracy:   metrics.Accuracy,
		TrainedAt:  time.Now(),
	}, metrics, nil
}

// labelToClass maps textual labels to {0,1}. Anything unrecognized is
// rejected before fitting.
func labelToClass(sentiment string) (int, error) {
	switch sentiment {
	case "positive":
		return 1, nil
	case "negative":
		return 0, nil
	}
	return 0, &DataLoadError{Reason: fmt.Sprintf("unrecognized sentiment label %q", sentiment)}
}

// sampleReviews draws a uniform sample without replacement, capped at
// the dataset size.
func sampleReviews(reviews []Review, size int, rng *rand.Rand) []Review {
	if size <= 0 || size >= len(reviews) {
		out := make([]Review, len(reviews))
		copy(out, reviews)
		return out
	}
	out := make([]Review, 0, size)
	for _, idx := range rng.Perm(len(reviews))[:size] {
		out = append(out, reviews[idx])
	}
	return out
}

// stratifiedSplit partitions indices into train and test sets while
// preserving the class ratio. Each class contributes at least one
// held-out example; both classes must be present.
func stratifiedSplit(labels []int, testFraction float64, rng *rand.Rand) (train, test []int, err error) {
	var pos, neg []int
	for i, y := range labels {
		if y == 1 {
			pos = append(pos, i)
		} else {
			neg = append(neg, i)
		}
	}
	if len(pos) == 0 || len(neg) == 0 {
		return nil, nil, &DataLoadError{
			Reason: "stratified split needs both positive and negative examples",
		}
	}

	for _, class := range [][]int{neg, pos} {
		shuffled := make([]int, len(class))
		copy(shuffled, class)
		rng.Shuffle(len(shuffled), func(i, j int) {
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		})
		cut := int(math.Round(float64(len(shuffled)) * testFraction))
		if cut == 0 && len(shuffled) > 1 {
			cut = 1
		}
		test = append(test, shuffled[:cut]...)
		train = append(train, shuffled[cut:]...)
	}
	if len(train) == 0 {
		return nil, nil, &DataLoadError{Reason: "sample too small to split"}
	}
	sort.Ints(train)
	sort.Ints(test)
	return train, test, nil
}
