package admin

import (
	"context"
	"time"

	"github.com/tunespace/tunespace-api/internal/features/analytics"
	"github.com/tunespace/tunespace-api/internal/features/payments"
	"github.com/tunespace/tunespace-api/internal/pkg/logger"
)

type Service struct {
	repo       Repository
	payments   *payments.Service
	engagement *analytics.Service
	now        func() time.Time
}

func NewService(repo Repository, paymentsService *payments.Service, engagementService *analytics.Service) *Service {
	return &Service{
		repo:       repo,
		payments:   paymentsService,
		engagement: engagementService,
		now:        time.Now,
	}
}

func (s *Service) Overview(ctx context.Context) (*Overview, error) {
	return s.repo.Overview(ctx)
}

func (s *Service) Transactions(ctx context.Context, page, limit int) ([]payments.Payment, int64, error) {
	return s.payments.ListAll(ctx, page, limit)
}

// ClaimFees withdraws all accumulated platform fees.
func (s *Service) ClaimFees(ctx context.Context) (int64, error) {
	return s.payments.ClaimFees(ctx)
}

func (s *Service) UpdateFee(percent int) error {
	return s.payments.SetFeePercent(percent)
}

func (s *Service) CurrentFee() int {
	return s.payments.FeePercent()
}

// GenerateDailyRollup computes and stores the platform rollup for the given
// day (defaulting to yesterday). Re-running replaces the existing row.
func (s *Service) GenerateDailyRollup(ctx context.Context, day time.Time) (*AppAnalytics, error) {
	if day.IsZero() {
		day = s.now().UTC().AddDate(0, 0, -1)
	}
	dayStart := day.UTC().Truncate(24 * time.Hour)
	dayEnd := dayStart.Add(24 * time.Hour)

	rollup, err := s.repo.DailyCounts(ctx, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}

	plays, err := s.engagement.CountEngagements(ctx, analytics.TypePostPlay, dayStart, dayEnd)
	if err != nil {
		logger.Warn("count plays for rollup %s: %v", dayStart.Format("2006-01-02"), err)
	}
	rollup.Plays = plays

	views, err := s.engagement.CountEngagements(ctx, analytics.TypeProfileView, dayStart, dayEnd)
	if err != nil {
		logger.Warn("count profile views for rollup %s: %v", dayStart.Format("2006-01-02"), err)
	}
	rollup.ProfileViews = views

	if err := s.repo.UpsertRollup(ctx, rollup); err != nil {
		return nil, err
	}
	return rollup, nil
}

// RollupRange returns the stored daily rollups, defaulting to the last 30 days.
func (s *Service) RollupRange(ctx context.Context, from, to time.Time) ([]AppAnalytics, error) {
	if to.IsZero() {
		to = s.now().UTC().Truncate(24 * time.Hour)
	}
	if from.IsZero() {
		from = to.AddDate(0, 0, -30)
	}
	return s.repo.RollupRange(ctx, from, to)
}
