package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"nutristats/internal/domain"
)

const (
	docDailyStatistics = "dailyStatistics"
	docWeightStatistic = "weightStatistic"
)

// GetDailyStatistics returns the stored dailyStatistics document, or nil if
// it has never been written.
func (d *DB) GetDailyStatistics(ctx context.Context, userID string) (*domain.StatisticsAggregate, error) {
	data, lastModified, err := d.getDoc(ctx, userID, docDailyStatistics)
	if err != nil || data == nil {
		return nil, err
	}
	agg := domain.StatisticsAggregate{LastModified: lastModified}
	if err := json.Unmarshal(data, &agg.Rows); err != nil {
		agg.Rows = nil
	}
	return &agg, nil
}

// SetDailyStatistics replaces the whole dailyStatistics document.
func (d *DB) SetDailyStatistics(ctx context.Context, userID string, agg domain.StatisticsAggregate) error {
	return d.setDoc(ctx, userID, docDailyStatistics, agg.Rows, agg.LastModified)
}

// GetWeightHistory returns the stored weightStatistic document, or nil if it
// has never been written.
func (d *DB) GetWeightHistory(ctx context.Context, userID string) (*domain.WeightAggregate, error) {
	data, lastModified, err := d.getDoc(ctx, userID, docWeightStatistic)
	if err != nil || data == nil {
		return nil, err
	}
	agg := domain.WeightAggregate{LastModified: lastModified}
	if err := json.Unmarshal(data, &agg.Rows); err != nil {
		agg.Rows = nil
	}
	return &agg, nil
}

// SetWeightHistory replaces the whole weightStatistic document.
func (d *DB) SetWeightHistory(ctx context.Context, userID string, agg domain.WeightAggregate) error {
	return d.setDoc(ctx, userID, docWeightStatistic, agg.Rows, agg.LastModified)
}

func (d *DB) getDoc(ctx context.Context, userID, doc string) ([]byte, int64, error) {
	var (
		data         []byte
		lastModified int64
	)
	err := d.sql.QueryRowContext(ctx,
		"SELECT data, last_modified FROM statistics WHERE user_id=$1 AND doc=$2;",
		userID, doc).Scan(&data, &lastModified)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, 0, nil
		}
		return nil, 0, err
	}
	return data, lastModified, nil
}

func (d *DB) setDoc(ctx context.Context, userID, doc string, rows any, lastModified int64) error {
	data, err := json.Marshal(rows)
	if err != nil {
		return err
	}
	_, err = d.sql.ExecContext(ctx,
		`INSERT INTO statistics(user_id, doc, data, last_modified) VALUES($1, $2, $3, $4)
		 ON CONFLICT (user_id, doc) DO UPDATE SET data=EXCLUDED.data, last_modified=EXCLUDED.last_modified;`,
		userID, doc, data, lastModified)
	return err
}
