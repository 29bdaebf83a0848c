package app_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"nutristats/internal/app"
	"nutristats/internal/domain"
)

type mockProfileRepo struct {
	getFn func(ctx context.Context, userID string) (*domain.Profile, error)
	setFn func(ctx context.Context, userID string, p domain.Profile) error
}

func (m *mockProfileRepo) GetProfile(ctx context.Context, userID string) (*domain.Profile, error) {
	if m.getFn != nil {
		return m.getFn(ctx, userID)
	}
	return nil, nil
}

func (m *mockProfileRepo) SetProfile(ctx context.Context, userID string, p domain.Profile) error {
	if m.setFn != nil {
		return m.setFn(ctx, userID, p)
	}
	return nil
}

func TestOnWeightChanged_FalsyWeightIsNoop(t *testing.T) {
	getCalls := 0
	stats := &mockStatisticsRepo{
		getWeightFn: func(_ context.Context, _ string) (*domain.WeightAggregate, error) {
			getCalls++
			return nil, nil
		},
	}
	svc := app.NewWeightService(stats, &mockProfileRepo{}, nil, nil)

	tests := []struct {
		name     string
		old, new float64
	}{
		{"old zero", 0, 80},
		{"new zero", 80, 0},
		{"both zero", 0, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if err := svc.OnWeightChanged(context.Background(), "u1", tc.old, tc.new); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
	if getCalls != 0 {
		t.Fatalf("expected no store access for falsy weights, got %d reads", getCalls)
	}
}

func TestOnWeightChanged_AppendsTodayRow(t *testing.T) {
	now := time.Date(2024, 5, 1, 15, 30, 0, 0, time.UTC)
	var saved *domain.WeightAggregate
	stats := &mockStatisticsRepo{
		setWeightFn: func(_ context.Context, _ string, agg domain.WeightAggregate) error {
			saved = &agg
			return nil
		},
	}

	svc := app.NewWeightService(stats, &mockProfileRepo{}, nil, fixedClock(now))
	if err := svc.OnWeightChanged(context.Background(), "u1", 81, 80); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if saved == nil {
		t.Fatal("expected aggregate to be persisted")
	}
	if len(saved.Rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(saved.Rows))
	}
	wantDay := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC).UnixMilli()
	if saved.Rows[0].Date != wantDay || saved.Rows[0].Weight != 80 {
		t.Fatalf("unexpected row: %+v", saved.Rows[0])
	}
	if saved.LastModified != now.UnixMilli() {
		t.Fatalf("expected lastModified %d, got %d", now.UnixMilli(), saved.LastModified)
	}
}

func TestOnWeightChanged_SameDayLaterEventWins(t *testing.T) {
	var stored *domain.WeightAggregate
	stats := &mockStatisticsRepo{
		getWeightFn: func(_ context.Context, _ string) (*domain.WeightAggregate, error) {
			return stored, nil
		},
		setWeightFn: func(_ context.Context, _ string, agg domain.WeightAggregate) error {
			stored = &agg
			return nil
		},
	}

	day := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	svc := app.NewWeightService(stats, &mockProfileRepo{}, nil, fixedClock(day.Add(8*time.Hour)))
	if err := svc.OnWeightChanged(context.Background(), "u1", 81, 80); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	svc = app.NewWeightService(stats, &mockProfileRepo{}, nil, fixedClock(day.Add(20*time.Hour)))
	if err := svc.OnWeightChanged(context.Background(), "u1", 80, 79.5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(stored.Rows) != 1 {
		t.Fatalf("expected exactly one row for the day, got %d", len(stored.Rows))
	}
	if stored.Rows[0].Weight != 79.5 {
		t.Fatalf("expected later event to win with 79.5, got %v", stored.Rows[0].Weight)
	}
}

func TestOnWeightChanged_NewDayAppends(t *testing.T) {
	stored := &domain.WeightAggregate{
		Rows: []domain.WeightHistoryRow{
			{Date: time.Date(2024, 4, 30, 0, 0, 0, 0, time.UTC).UnixMilli(), Weight: 81},
		},
	}
	stats := &mockStatisticsRepo{
		getWeightFn: func(_ context.Context, _ string) (*domain.WeightAggregate, error) {
			return stored, nil
		},
		setWeightFn: func(_ context.Context, _ string, agg domain.WeightAggregate) error {
			stored = &agg
			return nil
		},
	}

	svc := app.NewWeightService(stats, &mockProfileRepo{}, nil, fixedClock(time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)))
	if err := svc.OnWeightChanged(context.Background(), "u1", 81, 80); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(stored.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(stored.Rows))
	}
}

func TestOnWeightChanged_StoreErrorPropagates(t *testing.T) {
	dbDown := errors.New("db down")
	stats := &mockStatisticsRepo{
		setWeightFn: func(_ context.Context, _ string, _ domain.WeightAggregate) error {
			return dbDown
		},
	}
	svc := app.NewWeightService(stats, &mockProfileRepo{}, nil, nil)
	if err := svc.OnWeightChanged(context.Background(), "u1", 81, 80); !errors.Is(err, dbDown) {
		t.Fatalf("expected db error, got %v", err)
	}
}

// The trigger must compare the weight stored before the update with the
// incoming one, not read the same snapshot twice.
func TestUpdateProfile_ReadsOldWeightBeforeWrite(t *testing.T) {
	writes := 0
	profiles := &mockProfileRepo{
		getFn: func(_ context.Context, _ string) (*domain.Profile, error) {
			if writes > 0 {
				t.Fatal("profile was written before the old weight was read")
			}
			return &domain.Profile{Weight: 85}, nil
		},
		setFn: func(_ context.Context, _ string, _ domain.Profile) error {
			writes++
			return nil
		},
	}

	var saved *domain.WeightAggregate
	stats := &mockStatisticsRepo{
		setWeightFn: func(_ context.Context, _ string, agg domain.WeightAggregate) error {
			saved = &agg
			return nil
		},
	}

	svc := app.NewWeightService(stats, profiles, nil, nil)
	if _, err := svc.UpdateProfile(context.Background(), "u1", domain.Profile{Weight: 82}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if writes != 1 {
		t.Fatalf("expected exactly one profile write, got %d", writes)
	}
	if saved == nil || saved.Rows[len(saved.Rows)-1].Weight != 82 {
		t.Fatalf("expected new weight in history, got %+v", saved)
	}
}

func TestUpdateProfile_FirstProfileSkipsHistory(t *testing.T) {
	setWeightCalls := 0
	stats := &mockStatisticsRepo{
		setWeightFn: func(_ context.Context, _ string, _ domain.WeightAggregate) error {
			setWeightCalls++
			return nil
		},
	}

	svc := app.NewWeightService(stats, &mockProfileRepo{}, nil, nil)
	if _, err := svc.UpdateProfile(context.Background(), "u1", domain.Profile{Weight: 82}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// No previous weight means the old value is falsy and the trigger no-ops.
	if setWeightCalls != 0 {
		t.Fatalf("expected no history write for first profile, got %d", setWeightCalls)
	}
}

func TestUpdateProfile_StampsUpdatedAt(t *testing.T) {
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	var savedProfile *domain.Profile
	profiles := &mockProfileRepo{
		setFn: func(_ context.Context, _ string, p domain.Profile) error {
			savedProfile = &p
			return nil
		},
	}

	svc := app.NewWeightService(&mockStatisticsRepo{}, profiles, nil, fixedClock(now))
	got, err := svc.UpdateProfile(context.Background(), "u1", domain.Profile{Weight: 82, Height: 180})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if savedProfile == nil || savedProfile.UpdatedAt != now.UnixMilli() {
		t.Fatalf("expected updatedAt stamp, got %+v", savedProfile)
	}
	if got.UpdatedAt != now.UnixMilli() {
		t.Fatalf("expected returned profile to carry the stamp, got %+v", got)
	}
}

func TestGetWeightHistory_EmptyWhenMissing(t *testing.T) {
	svc := app.NewWeightService(&mockStatisticsRepo{}, &mockProfileRepo{}, nil, nil)
	agg, err := svc.GetWeightHistory(context.Background(), "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(agg.Rows) != 0 {
		t.Fatalf("expected empty history, got %+v", agg)
	}
}
