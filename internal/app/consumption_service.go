package app

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"nutristats/internal/domain"
)

// ErrRecordNotFound indicates that the referenced consumption record does not exist.
var ErrRecordNotFound = errors.New("consumption record not found")

// ConsumptionService is the producer side of the pipeline: it writes the
// source records the aggregator later reads. It never touches the aggregates.
type ConsumptionService struct {
	repo domain.ConsumptionRepository
	now  func() time.Time
}

// NewConsumptionService creates a ConsumptionService backed by the given
// repository. A nil clock defaults to time.Now.
func NewConsumptionService(repo domain.ConsumptionRepository, now func() time.Time) *ConsumptionService {
	if now == nil {
		now = time.Now
	}
	return &ConsumptionService{repo: repo, now: now}
}

// Log validates and stores a new consumption record for the given day,
// minting an ID and stamping LastModified.
func (s *ConsumptionService) Log(ctx context.Context, userID string, date int64, items []domain.ConsumptionItem) (domain.ConsumptionRecord, error) {
	return s.save(ctx, userID, uuid.NewString(), date, items)
}

// Update replaces an existing record's day and items and bumps LastModified
// so the next sync reprocesses it.
func (s *ConsumptionService) Update(ctx context.Context, userID, id string, date int64, items []domain.ConsumptionItem) (domain.ConsumptionRecord, error) {
	if id == "" {
		return domain.ConsumptionRecord{}, errors.New("id must not be empty")
	}
	return s.save(ctx, userID, id, date, items)
}

func (s *ConsumptionService) save(ctx context.Context, userID, id string, date int64, items []domain.ConsumptionItem) (domain.ConsumptionRecord, error) {
	if date <= 0 {
		return domain.ConsumptionRecord{}, errors.New("date must be a positive timestamp")
	}
	for _, it := range items {
		if it.Quantity < 0 || it.Calories < 0 || it.Carbohydrates < 0 || it.Fat < 0 || it.Protein < 0 {
			return domain.ConsumptionRecord{}, errors.New("item values must be non-negative")
		}
	}

	rec := domain.ConsumptionRecord{
		ID:           id,
		Date:         domain.DayStartMillis(date),
		Items:        items,
		LastModified: s.now().UnixMilli(),
	}
	if err := s.repo.Upsert(ctx, userID, rec); err != nil {
		return domain.ConsumptionRecord{}, err
	}
	return rec, nil
}

// Delete soft-deletes a record and bumps LastModified, so the next sync
// retracts its contribution from the day's row.
func (s *ConsumptionService) Delete(ctx context.Context, userID, id string) error {
	found, err := s.repo.SoftDelete(ctx, userID, id, s.now().UnixMilli())
	if err != nil {
		return err
	}
	if !found {
		return ErrRecordNotFound
	}
	return nil
}
