// Package jobs runs the periodic housekeeping tasks.
package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/sirupsen/logrus"
)

// CartPurger drops cart entries that can no longer be booked
type CartPurger interface {
	PurgeExpired(ctx context.Context, now time.Time) (int64, error)
}

// PurgeCartJob is the name the purge job is registered under
const PurgeCartJob = "purge-expired-cart"

// NewScheduler registers the cart purge to run every interval, starting
// immediately. The caller starts and shuts down the scheduler.
func NewScheduler(ctx context.Context, purger CartPurger, every time.Duration, opts ...gocron.SchedulerOption) (gocron.Scheduler, error) {
	sched, err := gocron.NewScheduler(opts...)
	if err != nil {
		return nil, fmt.Errorf("new scheduler: %w", err)
	}
	_, err = sched.NewJob(
		gocron.DurationJob(every),
		gocron.NewTask(func() { PurgeCart(ctx, purger, time.Now()) }),
		gocron.WithName(PurgeCartJob),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)
	if err != nil {
		_ = sched.Shutdown()
		return nil, fmt.Errorf("register %s: %w", PurgeCartJob, err)
	}
	logrus.WithFields(logrus.Fields{
		"job":   PurgeCartJob,
		"every": every.String(),
	}).Info("Job scheduled")
	return sched, nil
}

// PurgeCart runs one purge pass and logs the outcome
func PurgeCart(ctx context.Context, purger CartPurger, now time.Time) {
	n, err := purger.PurgeExpired(ctx, now)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"job":   PurgeCartJob,
			"error": err.Error(),
		}).Error("Cart purge failed")
		return
	}
	if n > 0 {
		logrus.WithFields(logrus.Fields{
			"job":     PurgeCartJob,
			"removed": n,
		}).Info("Expired cart entries removed")
	}
}
