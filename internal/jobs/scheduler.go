// Package jobs runs the periodic maintenance work: polling pending payments,
// cleaning up abandoned checkouts, rechecking posts the upload-time copyright
// scan missed, and generating the daily platform rollup.
package jobs

import (
	"context"
	"sync"
	"time"

	"github.com/tunespace/tunespace-api/internal/features/admin"
	"github.com/tunespace/tunespace-api/internal/features/payments"
	"github.com/tunespace/tunespace-api/internal/features/posts"
	"github.com/tunespace/tunespace-api/internal/pkg/logger"
)

const (
	paymentPollInterval    = time.Hour
	cleanupInterval        = 24 * time.Hour
	copyrightScanInterval  = 6 * time.Hour
	unpaidMaxAge           = 24 * time.Hour
	paymentPollBatchSize   = 100
	copyrightScanBatchSize = 50
	jobTimeout             = 5 * time.Minute
)

type Scheduler struct {
	payments *payments.Service
	posts    *posts.Service
	admin    *admin.Service

	stop chan struct{}
	wg   sync.WaitGroup
	once sync.Once
}

func NewScheduler(paymentsService *payments.Service, postsService *posts.Service, adminService *admin.Service) *Scheduler {
	return &Scheduler{
		payments: paymentsService,
		posts:    postsService,
		admin:    adminService,
		stop:     make(chan struct{}),
	}
}

// Start launches the periodic jobs. Each runs in its own goroutine on its
// own interval; Stop waits for in-flight runs to finish.
func (s *Scheduler) Start() {
	s.run(paymentPollInterval, "payment poll", s.pollPayments)
	s.run(cleanupInterval, "unpaid cleanup", s.cleanupUnpaid)
	s.run(copyrightScanInterval, "copyright recheck", s.recheckCopyright)
	s.run(cleanupInterval, "daily rollup", s.generateRollup)
	logger.Info("background jobs started")
}

// Stop signals the jobs to exit and blocks until they do.
func (s *Scheduler) Stop() {
	s.once.Do(func() { close(s.stop) })
	s.wg.Wait()
	logger.Info("background jobs stopped")
}

func (s *Scheduler) run(interval time.Duration, name string, job func(context.Context)) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-s.stop:
				return
			case <-ticker.C:
				ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
				job(ctx)
				cancel()
				logger.Debug("job %q completed", name)
			}
		}
	}()
}

func (s *Scheduler) pollPayments(ctx context.Context) {
	settled, err := s.payments.PollPending(ctx, paymentPollBatchSize)
	if err != nil {
		logger.Error("payment poll: %v", err)
		return
	}
	if settled > 0 {
		logger.Info("payment poll settled %d payment(s)", settled)
	}
}

func (s *Scheduler) cleanupUnpaid(ctx context.Context) {
	deleted, err := s.payments.CleanupUnpaid(ctx, unpaidMaxAge)
	if err != nil {
		logger.Error("unpaid cleanup: %v", err)
		return
	}
	if deleted > 0 {
		logger.Info("unpaid cleanup removed %d payment(s)", deleted)
	}
}

func (s *Scheduler) recheckCopyright(ctx context.Context) {
	checked, err := s.posts.RecheckUnchecked(ctx, copyrightScanBatchSize)
	if err != nil {
		logger.Error("copyright recheck: %v", err)
		return
	}
	if checked > 0 {
		logger.Info("copyright recheck processed %d post(s)", checked)
	}
}

func (s *Scheduler) generateRollup(ctx context.Context) {
	if _, err := s.admin.GenerateDailyRollup(ctx, time.Time{}); err != nil {
		logger.Error("daily rollup: %v", err)
	}
}
