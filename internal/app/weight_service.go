package app

import (
	"context"
	"time"

	"go.uber.org/zap"

	"nutristats/internal/domain"
)

// WeightService maintains the per-day weight history and owns the profile
// update that triggers it.
type WeightService struct {
	statistics domain.StatisticsRepository
	profiles   domain.ProfileRepository
	log        *zap.SugaredLogger
	now        func() time.Time
}

// NewWeightService creates a WeightService backed by the given repositories.
// A nil clock defaults to time.Now.
func NewWeightService(statistics domain.StatisticsRepository, profiles domain.ProfileRepository, log *zap.SugaredLogger, now func() time.Time) *WeightService {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	if now == nil {
		now = time.Now
	}
	return &WeightService{statistics: statistics, profiles: profiles, log: log, now: now}
}

// OnWeightChanged records newWeight as today's weight observation. It is a
// no-op when either weight is zero. Old and new do not have to differ: a
// re-confirmed weight is still that day's observation.
func (s *WeightService) OnWeightChanged(ctx context.Context, userID string, oldWeight, newWeight float64) error {
	if oldWeight == 0 || newWeight == 0 {
		return nil
	}
	s.log.Infow("detected weight change", "user_id", userID)

	var rows []domain.WeightHistoryRow
	agg, err := s.statistics.GetWeightHistory(ctx, userID)
	if err != nil {
		return err
	}
	if agg != nil {
		rows = agg.Rows
	}

	today := domain.DayStart(s.now())
	rows = domain.UpsertWeight(rows, today, newWeight)

	next := domain.WeightAggregate{Rows: rows, LastModified: s.now().UnixMilli()}
	if err := s.statistics.SetWeightHistory(ctx, userID, next); err != nil {
		return err
	}

	s.log.Infow("weight history updated", "user_id", userID, "rows", len(rows))
	return nil
}

// UpdateProfile stores the new profile and invokes the weight trigger with
// the weight read from the previous profile, so change detection compares a
// genuine before/after pair.
func (s *WeightService) UpdateProfile(ctx context.Context, userID string, p domain.Profile) (domain.Profile, error) {
	var oldWeight float64
	old, err := s.profiles.GetProfile(ctx, userID)
	if err != nil {
		return domain.Profile{}, err
	}
	if old != nil {
		oldWeight = old.Weight
	}

	p.UpdatedAt = s.now().UnixMilli()
	if err := s.profiles.SetProfile(ctx, userID, p); err != nil {
		return domain.Profile{}, err
	}

	if err := s.OnWeightChanged(ctx, userID, oldWeight, p.Weight); err != nil {
		return domain.Profile{}, err
	}
	return p, nil
}

// GetProfile returns the stored profile, or an empty one if none exists.
func (s *WeightService) GetProfile(ctx context.Context, userID string) (domain.Profile, error) {
	p, err := s.profiles.GetProfile(ctx, userID)
	if err != nil {
		return domain.Profile{}, err
	}
	if p == nil {
		return domain.Profile{}, nil
	}
	return *p, nil
}

// GetWeightHistory returns the current weight aggregate, or an empty one if
// no weight has been recorded yet.
func (s *WeightService) GetWeightHistory(ctx context.Context, userID string) (domain.WeightAggregate, error) {
	agg, err := s.statistics.GetWeightHistory(ctx, userID)
	if err != nil {
		return domain.WeightAggregate{}, err
	}
	if agg == nil {
		return domain.WeightAggregate{}, nil
	}
	return *agg, nil
}
