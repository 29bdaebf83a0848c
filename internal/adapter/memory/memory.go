// Package memory implements the repository ports in memory for development
// and testing.
package memory

import (
	"context"
	"sync"

	"nutristats/internal/domain"
)

// DB implements an in-memory document store.
type DB struct {
	mu           sync.Mutex
	consumptions map[string]map[string]domain.ConsumptionRecord
	statistics   map[string]domain.StatisticsAggregate
	weights      map[string]domain.WeightAggregate
	profiles     map[string]domain.Profile
}

// New creates a new in-memory database.
func New() *DB {
	return &DB{
		consumptions: make(map[string]map[string]domain.ConsumptionRecord),
		statistics:   make(map[string]domain.StatisticsAggregate),
		weights:      make(map[string]domain.WeightAggregate),
		profiles:     make(map[string]domain.Profile),
	}
}

// Ensure interfaces are met.
var _ domain.ConsumptionRepository = (*DB)(nil)
var _ domain.StatisticsRepository = (*DB)(nil)
var _ domain.ProfileRepository = (*DB)(nil)

// --- ConsumptionRepository ---

// ModifiedSince returns all records with LastModified >= since (inclusive).
func (db *DB) ModifiedSince(ctx context.Context, userID string, since int64) ([]domain.ConsumptionRecord, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	var out []domain.ConsumptionRecord
	for _, rec := range db.consumptions[userID] {
		if rec.LastModified >= since {
			out = append(out, cloneRecord(rec))
		}
	}
	return out, nil
}

// Upsert stores a full record keyed by its ID.
func (db *DB) Upsert(ctx context.Context, userID string, rec domain.ConsumptionRecord) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if db.consumptions[userID] == nil {
		db.consumptions[userID] = make(map[string]domain.ConsumptionRecord)
	}
	db.consumptions[userID][rec.ID] = cloneRecord(rec)
	return nil
}

// SoftDelete marks a record deleted and bumps its LastModified.
func (db *DB) SoftDelete(ctx context.Context, userID, id string, modifiedAt int64) (bool, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	rec, ok := db.consumptions[userID][id]
	if !ok {
		return false, nil
	}
	rec.Deleted = true
	rec.LastModified = modifiedAt
	db.consumptions[userID][id] = rec
	return true, nil
}

// --- StatisticsRepository ---

// GetDailyStatistics returns a copy of the stored aggregate, or nil.
func (db *DB) GetDailyStatistics(ctx context.Context, userID string) (*domain.StatisticsAggregate, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	agg, ok := db.statistics[userID]
	if !ok {
		return nil, nil
	}
	cp := domain.StatisticsAggregate{
		Rows:         append([]domain.DailyStatisticRow(nil), agg.Rows...),
		LastModified: agg.LastModified,
	}
	return &cp, nil
}

// SetDailyStatistics replaces the whole aggregate.
func (db *DB) SetDailyStatistics(ctx context.Context, userID string, agg domain.StatisticsAggregate) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.statistics[userID] = domain.StatisticsAggregate{
		Rows:         append([]domain.DailyStatisticRow(nil), agg.Rows...),
		LastModified: agg.LastModified,
	}
	return nil
}

// GetWeightHistory returns a copy of the stored weight aggregate, or nil.
func (db *DB) GetWeightHistory(ctx context.Context, userID string) (*domain.WeightAggregate, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	agg, ok := db.weights[userID]
	if !ok {
		return nil, nil
	}
	cp := domain.WeightAggregate{
		Rows:         append([]domain.WeightHistoryRow(nil), agg.Rows...),
		LastModified: agg.LastModified,
	}
	return &cp, nil
}

// SetWeightHistory replaces the whole weight aggregate.
func (db *DB) SetWeightHistory(ctx context.Context, userID string, agg domain.WeightAggregate) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.weights[userID] = domain.WeightAggregate{
		Rows:         append([]domain.WeightHistoryRow(nil), agg.Rows...),
		LastModified: agg.LastModified,
	}
	return nil
}

// --- ProfileRepository ---

// GetProfile returns a copy of the stored profile, or nil.
func (db *DB) GetProfile(ctx context.Context, userID string) (*domain.Profile, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	p, ok := db.profiles[userID]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

// SetProfile replaces the stored profile.
func (db *DB) SetProfile(ctx context.Context, userID string, p domain.Profile) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.profiles[userID] = p
	return nil
}

func cloneRecord(rec domain.ConsumptionRecord) domain.ConsumptionRecord {
	rec.Items = append([]domain.ConsumptionItem(nil), rec.Items...)
	return rec
}
