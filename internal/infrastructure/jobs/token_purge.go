package jobs

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/LexovateAyacucho/qhoar-web/pkg/logger"
	"github.com/LexovateAyacucho/qhoar-web/pkg/metrics"
)

// DefaultPurgeSchedule runs the purge hourly
const DefaultPurgeSchedule = "@every 1h"

type verificationPurger interface {
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
}

// TokenPurgeJob removes expired e-mail verification tokens on a cron schedule
type TokenPurgeJob struct {
	repo     verificationPurger
	schedule string
	timeout  time.Duration
	now      func() time.Time

	mu   sync.Mutex
	cron *cron.Cron
}

func NewTokenPurgeJob(repo verificationPurger, schedule string) *TokenPurgeJob {
	if schedule == "" {
		schedule = DefaultPurgeSchedule
	}
	return &TokenPurgeJob{
		repo:     repo,
		schedule: schedule,
		timeout:  30 * time.Second,
		now:      time.Now,
	}
}

// Start registers the schedule and blocks until ctx is done or Stop is called
func (j *TokenPurgeJob) Start(ctx context.Context) error {
	c := cron.New()
	if _, err := c.AddFunc(j.schedule, func() { j.purge(ctx) }); err != nil {
		return fmt.Errorf("invalid purge schedule %q: %w", j.schedule, err)
	}

	j.mu.Lock()
	j.cron = c
	j.mu.Unlock()

	logger.Info(ctx, "Starting verification token purge job", zap.String("schedule", j.schedule))
	c.Start()

	<-ctx.Done()
	j.Stop()
	logger.Info(context.Background(), "Verification token purge job stopped")
	return nil
}

// Stop halts the scheduler and waits for a running purge
func (j *TokenPurgeJob) Stop() {
	j.mu.Lock()
	c := j.cron
	j.cron = nil
	j.mu.Unlock()

	if c != nil {
		<-c.Stop().Done()
	}
}

func (j *TokenPurgeJob) purge(parent context.Context) {
	ctx, cancel := context.WithTimeout(parent, j.timeout)
	defer cancel()

	n, err := j.repo.DeleteExpired(ctx, j.now())
	if err != nil {
		logger.Error(ctx, "Failed to purge verification tokens", zap.Error(err))
		return
	}
	if n == 0 {
		return
	}
	metrics.TokensPurged.Add(float64(n))
	logger.Info(ctx, "Purged expired verification tokens", zap.Int64("count", n))
}
