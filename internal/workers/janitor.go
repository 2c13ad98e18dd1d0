package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/go-budget-tracker/internal/logger"
	"github.com/MKhiriev/go-budget-tracker/internal/service"
)

// ChallengeJanitor periodically deletes expired verification challenges so
// stale one-time codes do not accumulate in storage.
type ChallengeJanitor struct {
	challengeService service.ChallengeService
	interval         time.Duration

	stop chan struct{}

	logger *logger.Logger
}

func NewChallengeJanitor(challengeService service.ChallengeService, interval time.Duration, logger *logger.Logger) *ChallengeJanitor {
	return &ChallengeJanitor{
		challengeService: challengeService,
		interval:         interval,
		stop:             make(chan struct{}),
		logger:           logger,
	}
}

// Run starts the sweep loop in its own goroutine and returns immediately.
func (j *ChallengeJanitor) Run() {
	j.logger.Info().Dur("interval", j.interval).Msg("challenge janitor started")

	go func() {
		ticker := time.NewTicker(j.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				j.sweep()
			case <-j.stop:
				j.logger.Info().Msg("challenge janitor stopped")
				return
			}
		}
	}()
}

// Stop terminates the sweep loop. Safe to call once.
func (j *ChallengeJanitor) Stop() {
	close(j.stop)
}

func (j *ChallengeJanitor) sweep() {
	purged, err := j.challengeService.PurgeExpired(context.Background(), time.Now())
	if err != nil {
		j.logger.Err(err).Msg("challenge sweep ended with error")
		return
	}

	if purged > 0 {
		j.logger.Info().Int64("purged", purged).Msg("expired challenges removed")
	}
}
