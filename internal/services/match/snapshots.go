package match

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/sirupsen/logrus"
)

// SnapshotterConfig configures periodic snapshots
type SnapshotterConfig struct {
	Service  Service
	Interval time.Duration
	Timeout  time.Duration
	Logger   logrus.FieldLogger
}

// Snapshotter saves the state of every running session on an interval
type Snapshotter struct {
	sched gocron.Scheduler
}

// NewSnapshotter schedules SnapshotAll. Call Start to begin.
func NewSnapshotter(cfg *SnapshotterConfig) (*Snapshotter, error) {
	if cfg == nil || cfg.Service == nil {
		return nil, errors.New("service is required")
	}
	if cfg.Interval <= 0 {
		return nil, errors.New("interval must be positive")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = cfg.Interval
	}
	log := cfg.Logger
	if log == nil {
		l := logrus.New()
		l.SetLevel(logrus.PanicLevel)
		log = l
	}
	log = log.WithField("component", "snapshotter")

	sched, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	_, err = sched.NewJob(
		gocron.DurationJob(cfg.Interval),
		gocron.NewTask(func() {
			ctx, cancel := context.WithTimeout(context.Background(), timeout)
			defer cancel()
			if err := cfg.Service.SnapshotAll(ctx); err != nil {
				log.WithError(err).Warn("periodic snapshot failed")
			}
		}),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		_ = sched.Shutdown()
		return nil, fmt.Errorf("failed to schedule snapshots: %w", err)
	}

	return &Snapshotter{sched: sched}, nil
}

func (s *Snapshotter) Start() {
	s.sched.Start()
}

// Stop waits for a running snapshot and stops the schedule
func (s *Snapshotter) Stop() error {
	return s.sched.Shutdown()
}
