package sentiment

import (
	"errors"
	"fmt"
)

// ErrModelNotTrained is returned by Predict before any successful
// training run has published a model.
var ErrModelNotTrained = errors.New("model not trained")

// ErrNotFitted is returned when Transform or PredictProba is invoked on
// an unfitted vectorizer or classifier.
var ErrNotFitted = errors.New("not fitted")

// ErrTrainingInProgress is returned when a training run is requested
// while another one is still active.
var ErrTrainingInProgress = errors.New("a training run is already in progress")

// A ValidationError reports a user-correctable problem with input text.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

// A DataLoadError reports a missing or malformed dataset.
type DataLoadError struct {
	Path   string
	Reason string
}

func (e *DataLoadError) Error() string {
	if e.Path == "" {
		return e.Reason
	}
	return fmt.Sprintf("dataset %s: %s", e.Path, e.Reason)
}
