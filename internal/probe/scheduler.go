// file: internal/probe/scheduler.go

package probe

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"

	"apiprobe/internal/logger"
)

// runTimeout bounds a single scheduled plan run
const runTimeout = 5 * time.Minute

// Scheduler runs a check plan on its cron schedule for monitor mode
type Scheduler struct {
	scheduler gocron.Scheduler
	logger    *logger.Logger
}

// NewScheduler creates a scheduler for the plan. The plan must carry a
// schedule; LoadPlan has already validated the expression.
func NewScheduler(plan *Plan, runner *Runner, log *logger.Logger) (*Scheduler, error) {
	if plan.Schedule == "" {
		return nil, fmt.Errorf("plan has no schedule")
	}
	if log == nil {
		log = logger.NewNopLogger()
	}

	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	_, err = s.NewJob(
		gocron.CronJob(plan.Schedule, false),
		gocron.NewTask(func() {
			ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
			defer cancel()

			results := runner.Run(ctx, plan)
			failures := 0
			for _, result := range results {
				if !result.OK() {
					failures++
				}
			}

			log.Info("scheduled check run complete",
				"checks", len(results),
				"failures", failures)
		}),
	)
	if err != nil {
		s.Shutdown()
		return nil, fmt.Errorf("failed to schedule plan: %w", err)
	}

	return &Scheduler{scheduler: s, logger: log}, nil
}

// Start begins scheduled runs
func (s *Scheduler) Start() {
	s.scheduler.Start()
	s.logger.Info("check scheduler started")
}

// Stop shuts the scheduler down and waits for a running job to finish
func (s *Scheduler) Stop() error {
	s.logger.Info("stopping check scheduler")
	return s.scheduler.Shutdown()
}
