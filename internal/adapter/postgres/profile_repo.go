package postgres

import (
	"context"
	"database/sql"
	"errors"

	"nutristats/internal/domain"
)

// GetProfile returns the user's profile, or nil if none was stored yet.
func (d *DB) GetProfile(ctx context.Context, userID string) (*domain.Profile, error) {
	var p domain.Profile
	err := d.sql.QueryRowContext(ctx,
		"SELECT weight, height, updated_at FROM profiles WHERE user_id=$1;",
		userID).Scan(&p.Weight, &p.Height, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

// SetProfile replaces the user's profile.
func (d *DB) SetProfile(ctx context.Context, userID string, p domain.Profile) error {
	_, err := d.sql.ExecContext(ctx,
		`INSERT INTO profiles(user_id, weight, height, updated_at) VALUES($1, $2, $3, $4)
		 ON CONFLICT (user_id) DO UPDATE SET weight=EXCLUDED.weight, height=EXCLUDED.height, updated_at=EXCLUDED.updated_at;`,
		userID, p.Weight, p.Height, p.UpdatedAt)
	return err
}
