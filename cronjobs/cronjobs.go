package cronjobs

import (
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"reviewpulse/handlers"
)

// InitRetrainJob schedules periodic retraining. The job goes through the
// same single-flight store path as the train endpoint, so an overlapping
// manual run simply wins. Returns the started scheduler so the caller
// can stop it on shutdown.
func InitRetrainJob(spec string, svc *handlers.Service, logger zerolog.Logger) (*cron.Cron, error) {
	c := cron.New()
	_, err := c.AddFunc(spec, func() {
		logger.Info().Msg("scheduled retraining starting")
		_, metrics, err := svc.RunTraining()
		if err != nil {
			logger.Error().Err(err).Msg("scheduled retraining failed")
			return
		}
		logger.Info().Float64("accuracy", metrics.Accuracy).Msg("scheduled retraining complete")
	})
	if err != nil {
		return nil, err
	}
	c.Start()
	return c, nil
}
