package main

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"reviewpulse/cronjobs"
	"reviewpulse/handlers"
	"reviewpulse/routes"
	"reviewpulse/sentiment"
)

func main() {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	// .env is optional; deployments may set the environment directly.
	if err := godotenv.Load(); err == nil {
		logger.Info().Msg(".env loaded")
	}

	datasetPath := envOr("DATASET_PATH", "dataset.csv")
	port := envOr("PORT", "5000")

	cfg := sentiment.DefaultTrainingConfig(datasetPath)
	if v := os.Getenv("SAMPLE_SIZE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			logger.Fatal().Str("value", v).Msg("SAMPLE_SIZE must be a positive integer")
		}
		cfg.SampleSize = n
	}
	if v := os.Getenv("SEED"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			logger.Fatal().Str("value", v).Msg("SEED must be an integer")
		}
		cfg.Seed = n
	}

	normalizer, err := sentiment.NewNormalizer()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize normalizer")
	}

	store := sentiment.NewStore()
	svc := &handlers.Service{
		Trainer:   sentiment.NewTrainer(normalizer, logger),
		Predictor: sentiment.NewPredictor(normalizer, store),
		Store:     store,
		Training:  cfg,
		Logger:    logger,
	}

	if envOr("TRAIN_ON_STARTUP", "true") != "false" {
		logger.Info().Str("dataset", datasetPath).Msg("training model on startup")
		if _, metrics, err := svc.RunTraining(); err != nil {
			// The server still comes up; /api/train can retry later.
			logger.Error().Err(err).Msg("startup training failed")
		} else {
			logger.Info().Float64("accuracy", metrics.Accuracy).Msg("model ready")
		}
	}

	if spec := os.Getenv("RETRAIN_SCHEDULE"); spec != "" {
		if _, err := cronjobs.InitRetrainJob(spec, svc, logger); err != nil {
			logger.Fatal().Err(err).Str("schedule", spec).Msg("invalid retrain schedule")
		}
		logger.Info().Str("schedule", spec).Msg("scheduled retraining enabled")
	}

	r := routes.SetupRouter(svc)
	if err := r.Run(":" + port); err != nil {
		logger.Fatal().Err(err).Msg("server exited")
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
