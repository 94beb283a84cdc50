package sentiment

import (
	"sync/atomic"
	"time"
)

// State is the training lifecycle state.
type State int32

const (
	StateUntrained State = iota
	StateTraining
	StateReady
)

func (s State) String() string {
	switch s {
	case StateTraining:
		return "training"
	case StateReady:
		return "ready"
	default:
		return "untrained"
	}
}

// A Model is an immutable fitted (vectorizer, classifier) pair. The
// trainer builds it off to the side and the store publishes it
// wholesale; nothing mutates it afterwards, so readers may share it
// freely across goroutines.
type Model struct {
	vectorizer *Vectorizer
	classifier *Classifier

	Accuracy  float64
	TrainedAt time.Time
}

// A Store publishes the current model snapshot behind a single atomic
// pointer. Readers always observe a matched pair or nothing, and
// training runs are single-flight: a second request while one is active
// fails with ErrTrainingInProgress.
type Store struct {
	training atomic.Bool
	state    atomic.Int32
	current  atomic.Pointer[Model]
}

// NewStore returns an empty store in the untrained state.
func NewStore() *Store {
	return &Store{}
}

// Current returns the published snapshot, or nil before the first
// successful training run.
func (s *Store) Current() *Model {
	return s.current.Load()
}

// State reports the lifecycle state.
func (s *Store) State() State {
	return State(s.state.Load())
}

// Ready reports whether a model is servable.
func (s *Store) Ready() bool {
	return s.Current() != nil
}

// Train runs build under the single-flight guard and publishes its
// result in one pointer swap. On failure any previously published model
// stays servable and the state returns to what the snapshot implies.
func (s *Store) Train(build func() (*Model, error)) (*Model, error) {
	if !s.training.CompareAndSwap(false, true) {
		return nil, ErrTrainingInProgress
	}
	defer s.training.Store(false)

	s.state.Store(int32(StateTraining))
	model, err := build()
	if err != nil {
		if s.Current() != nil {
			s.state.Store(int32(StateReady))
		} else {
			s.state.Store(int32(StateUntrained))
		}
		return nil, err
	}

	s.current.Store(model)
	s.state.Store(int32(StateReady))
	return model, nil
}
