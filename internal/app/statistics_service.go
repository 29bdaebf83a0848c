// Package app holds the application services and aggregation logic.
package app

import (
	"context"
	"time"

	"go.uber.org/zap"

	"nutristats/internal/domain"
)

// StatisticsService rebuilds the daily nutrition statistics incrementally
// from the consumption collection.
type StatisticsService struct {
	consumptions domain.ConsumptionRepository
	statistics   domain.StatisticsRepository
	log          *zap.SugaredLogger
	now          func() time.Time
}

// NewStatisticsService creates a StatisticsService backed by the given
// repositories. A nil clock defaults to time.Now.
func NewStatisticsService(consumptions domain.ConsumptionRepository, statistics domain.StatisticsRepository, log *zap.SugaredLogger, now func() time.Time) *StatisticsService {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	if now == nil {
		now = time.Now
	}
	return &StatisticsService{consumptions: consumptions, statistics: statistics, log: log, now: now}
}

// RunSync performs one incremental aggregation run for the user. It loads the
// previous aggregate (a missing document means empty rows and watermark 0),
// fetches every record modified at or after the watermark, merges the batch
// into the row set and persists the whole aggregate with a fresh watermark.
// It returns false, with no write at all, when nothing changed.
func (s *StatisticsService) RunSync(ctx context.Context, userID string) (bool, error) {
	s.log.Infow("creating statistics", "user_id", userID)

	var (
		rows  []domain.DailyStatisticRow
		since int64
	)
	agg, err := s.statistics.GetDailyStatistics(ctx, userID)
	if err != nil {
		return false, err
	}
	if agg != nil {
		rows = agg.Rows
		since = agg.LastModified
	}

	changed, err := s.consumptions.ModifiedSince(ctx, userID, since)
	if err != nil {
		return false, err
	}
	if len(changed) == 0 {
		s.log.Infow("statistics up to date", "user_id", userID)
		return false, nil
	}

	rows = domain.MergeStatistics(rows, changed)

	// The watermark never regresses, even with a skewed clock.
	watermark := s.now().UnixMilli()
	if watermark < since {
		watermark = since
	}

	next := domain.StatisticsAggregate{Rows: rows, LastModified: watermark}
	if err := s.statistics.SetDailyStatistics(ctx, userID, next); err != nil {
		return false, err
	}

	s.log.Infow("finished creating statistics", "user_id", userID,
		"changed_records", len(changed), "rows", len(rows))
	return true, nil
}

// GetDailyStatistics returns the current aggregate, or an empty one if no
// sync has run yet.
func (s *StatisticsService) GetDailyStatistics(ctx context.Context, userID string) (domain.StatisticsAggregate, error) {
	agg, err := s.statistics.GetDailyStatistics(ctx, userID)
	if err != nil {
		return domain.StatisticsAggregate{}, err
	}
	if agg == nil {
		return domain.StatisticsAggregate{}, nil
	}
	return *agg, nil
}
