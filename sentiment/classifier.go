package sentiment

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// ClassifierConfig controls the logistic regression solver.
type ClassifierConfig struct {
	LearningRate     float64
	RegularizationL2 float64
	MaxIterations    int
	Tolerance        float64
}

// DefaultClassifierConfig returns solver settings that converge on
// TF-IDF review features within the iteration cap.
func DefaultClassifierConfig() ClassifierConfig {
	return ClassifierConfig{
		LearningRate:     0.5,
		RegularizationL2: 1e-4,
		MaxIterations:    500,
		Tolerance:        1e-6,
	}
}

// A Classifier is a binary logistic regression model over TF-IDF
// features. Refitting discards prior state.
type Classifier struct {
	config  ClassifierConfig
	weights *mat.VecDense
	bias    float64
	fitted  bool
}

// NewClassifier returns an untrained classifier.
func NewClassifier(config ClassifierConfig) *Classifier {
	return &Classifier{config: config}
}

// Fit trains the model by full-batch gradient descent until the update
// norm falls below the tolerance or the iteration cap is reached.
// Weights start at zero, so training is deterministic for fixed input.
func (c *Classifier) Fit(X *mat.Dense, y []int) error {
	rows, cols := X.Dims()
	if rows == 0 || cols == 0 {
		return fmt.Errorf("classifier: empty design matrix")
	}
	if rows != len(y) {
		return fmt.Errorf("classifier: %d feature rows but %d labels", rows, len(y))
	}
	for i, label := range y {
		if label != 0 && label != 1 {
			return fmt.Errorf("classifier: label %d at row %d outside {0,1}", label, i)
		}
	}

	weights := mat.NewVecDense(cols, nil)
	grad := mat.NewVecDense(cols, nil)
	bias := 0.0
	n := float64(rows)
	lr := c.config.LearningRate

	for iter := 0; iter < c.config.MaxIterations; iter++ {
		grad.Zero()
		biasGrad := 0.0
		for i := 0; i < rows; i++ {
			row := X.RowView(i)
			residual := sigmoid(mat.Dot(row, weights)+bias) - float64(y[i])
			grad.AddScaledVec(grad, residual, row)
			biasGrad += residual
		}
		grad.ScaleVec(1/n, grad)
		grad.AddScaledVec(grad, c.config.RegularizationL2, weights)
		biasGrad /= n

		weights.AddScaledVec(weights, -lr, grad)
		bias -= lr * biasGrad

		step := lr * math.Sqrt(mat.Dot(grad, grad)+biasGrad*biasGrad)
		if step < c.config.Tolerance {
			break
		}
	}

	c.weights = weights
	c.bias = bias
	c.fitted = true
	return nil
}

// PredictProba returns the class probabilities (p0, p1); they sum to one.
func (c *Classifier) PredictProba(x *mat.VecDense) (p0, p1 float64, err error) {
	if !c.fitted {
		return 0, 0, fmt.Errorf("classifier: %w", ErrNotFitted)
	}
	if x.Len() != c.weights.Len() {
		return 0, 0, fmt.Errorf("classifier: feature vector has %d dimensions, model expects %d",
			x.Len(), c.weights.Len())
	}
	p1 = sigmoid(mat.Dot(x, c.weights) + c.bias)
	return 1 - p1, p1, nil
}

// sigmoid is the numerically stable logistic function.
func sigmoid(z float64) float64 {
	if z >= 0 {
		return 1 / (1 + math.Exp(-z))
	}
	e := math.Exp(z)
	return e / (1 + e)
}
