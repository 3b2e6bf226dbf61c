package analytics

import (
	"context"
	"time"

	"github.com/tunespace/tunespace-api/internal/pkg/logger"
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// Track stores the raw event and bumps the creator's daily rollup. The raw
// event is kept for auditing; all reads go through the rollups.
func (s *Service) Track(ctx context.Context, typ string, userID uint, req *TrackRequest) error {
	e := &Engagement{
		UserID:     userID,
		CreatorID:  req.CreatorID,
		PostID:     req.PostID,
		Type:       typ,
		DeviceInfo: req.DeviceInfo,
		Location:   req.Location,
		SessionID:  req.SessionID,
	}
	if err := s.repo.CreateEngagement(ctx, e); err != nil {
		return err
	}

	if req.CreatorID != 0 {
		date := s.now().UTC().Truncate(24 * time.Hour)
		if err := s.repo.IncrementRollup(ctx, req.CreatorID, date, typ); err != nil {
			// The raw event survives even when the rollup write fails.
			logger.Error("increment rollup for creator %d type %s: %v", req.CreatorID, typ, err)
		}
	}
	return nil
}

// CreatorSummary aggregates the rollups for a creator over the range,
// defaulting to the last 30 days.
func (s *Service) CreatorSummary(ctx context.Context, creatorID uint, from, to time.Time) (*CreatorSummary, error) {
	if to.IsZero() {
		to = s.now().UTC().Truncate(24 * time.Hour)
	}
	if from.IsZero() {
		from = to.AddDate(0, 0, -30)
	}

	daily, err := s.repo.RollupsForCreator(ctx, creatorID, from, to)
	if err != nil {
		return nil, err
	}

	totals := make(map[string]int64)
	for _, row := range daily {
		totals[row.Type] += row.Count
	}

	return &CreatorSummary{
		CreatorID: creatorID,
		From:      from,
		To:        to,
		Totals:    totals,
		Daily:     daily,
	}, nil
}

// CountEngagements exposes raw event counts for the platform rollup job.
func (s *Service) CountEngagements(ctx context.Context, typ string, from, to time.Time) (int64, error) {
	return s.repo.CountEngagements(ctx, typ, from, to)
}
