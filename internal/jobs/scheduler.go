package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// Sweeper reclaims expired sessions and reports how many it dropped.
type Sweeper interface {
	Sweep(now time.Time) int
}

type Scheduler struct {
	cron     *cron.Cron
	sweeper  Sweeper
	schedule string
	log      zerolog.Logger
	now      func() time.Time
}

// NewScheduler runs sweeper on schedule (six-field cron, seconds first).
// A nil sweeper means the session store expires records on its own.
func NewScheduler(sweeper Sweeper, schedule string, log zerolog.Logger) *Scheduler {
	c := cron.New(cron.WithSeconds())
	return &Scheduler{
		cron:     c,
		sweeper:  sweeper,
		schedule: schedule,
		log:      log,
		now:      time.Now,
	}
}

func (s *Scheduler) Start() error {
	if s.sweeper == nil {
		return nil
	}

	if _, err := s.cron.AddFunc(s.schedule, s.sweepSessions); err != nil {
		return err
	}

	s.cron.Start()
	return nil
}

// Stop waits for a running sweep to finish or for ctx to expire.
func (s *Scheduler) Stop(ctx context.Context) error {
	select {
	case <-s.cron.Stop().Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Scheduler) sweepSessions() {
	dropped := s.sweeper.Sweep(s.now())
	if dropped > 0 {
		s.log.Debug().Int("dropped", dropped).Msg("expired sessions swept")
	}
}
