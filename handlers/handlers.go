package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"reviewpulse/sentiment"
)

// Service wires the sentiment pipeline into the HTTP handlers. All
// fields must be set; handlers never touch global state.
type Service struct {
	Trainer   *sentiment.Trainer
	Predictor *sentiment.Predictor
	Store     *sentiment.Store
	Training  sentiment.TrainingConfig
	Logger    zerolog.Logger
}

type predictRequest struct {
	Text string `json:"text"`
}

// RunTraining executes one single-flight training run and publishes the
// result. It is shared by the train endpoint, the startup path and the
// retrain cron job.
func (s *Service) RunTraining() (*sentiment.Model, sentiment.TrainingMetrics, error) {
	var metrics sentiment.TrainingMetrics
	model, err := s.Store.Train(func() (*sentiment.Model, error) {
		m, tm, err := s.Trainer.Train(s.Training)
		metrics = tm
		return m, err
	})
	return model, metrics, err
}

// Predict handles POST /api/predict.
func (s *Service) Predict(c *gin.Context) {
	var req predictRequest
	dec := json.NewDecoder(c.Request.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": `request body must be JSON with a single "text" field`,
		})
		return
	}

	result, err := s.Predictor.Predict(req.Text)
	if err != nil {
		s.renderPredictError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (s *Service) renderPredictError(c *gin.Context, err error) {
	var validationErr *sentiment.ValidationError
	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Error()})
	case errors.Is(err, sentiment.ErrModelNotTrained):
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "model not trained yet; POST /api/train first",
		})
	default:
		s.Logger.Error().Err(err).Msg("prediction failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error during prediction"})
	}
}

// Train handles POST /api/train.
func (s *Service) Train(c *gin.Context) {
	_, metrics, err := s.RunTraining()
	if err != nil {
		s.renderTrainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": fmt.Sprintf("Model trained successfully! Accuracy: %.4f", metrics.Accuracy),
	})
}

func (s *Service) renderTrainError(c *gin.Context, err error) {
	var dataErr *sentiment.DataLoadError
	switch {
	case errors.Is(err, sentiment.ErrTrainingInProgress):
		c.JSON(http.StatusConflict, gin.H{"success": false, "message": err.Error()})
	case errors.As(err, &dataErr):
		// Expected failure mode: the dataset is missing or malformed. The
		// process keeps serving, and any previously trained model stays up.
		s.Logger.Warn().Err(err).Msg("training failed")
		c.JSON(http.StatusOK, gin.H{"success": false, "message": "Training failed: " + dataErr.Error()})
	default:
		s.Logger.Error().Err(err).Msg("training failed unexpectedly")
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Training failed: " + err.Error(),
		})
	}
}

// Status handles GET /api/status.
func (s *Service) Status(c *gin.Context) {
	ready := s.Store.Ready()
	message := "Model not trained yet"
	if ready {
		message = "Model is ready"
	}
	c.JSON(http.StatusOK, gin.H{"model_ready": ready, "message": message})
}
