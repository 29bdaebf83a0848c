package postgres

import (
	"context"
	"encoding/json"

	"nutristats/internal/domain"
)

// ModifiedSince returns all of the user's records with last_modified >= since.
// The bound is inclusive so a record written in the same millisecond as the
// watermark is reprocessed.
func (d *DB) ModifiedSince(ctx context.Context, userID string, since int64) ([]domain.ConsumptionRecord, error) {
	rows, err := d.sql.QueryContext(ctx,
		"SELECT id, date, items, deleted, last_modified FROM consumptions WHERE user_id=$1 AND last_modified >= $2;",
		userID, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.ConsumptionRecord
	for rows.Next() {
		var (
			rec      domain.ConsumptionRecord
			rawItems []byte
		)
		if err := rows.Scan(&rec.ID, &rec.Date, &rawItems, &rec.Deleted, &rec.LastModified); err != nil {
			return nil, err
		}
		// Malformed item payloads contribute nothing rather than failing the run.
		if err := json.Unmarshal(rawItems, &rec.Items); err != nil {
			rec.Items = nil
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Upsert writes a full record, reactivating it if it was soft-deleted.
func (d *DB) Upsert(ctx context.Context, userID string, rec domain.ConsumptionRecord) error {
	items, err := json.Marshal(rec.Items)
	if err != nil {
		return err
	}
	_, err = d.sql.ExecContext(ctx,
		`INSERT INTO consumptions(user_id, id, date, items, deleted, last_modified) VALUES($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (user_id, id) DO UPDATE SET date=EXCLUDED.date, items=EXCLUDED.items, deleted=EXCLUDED.deleted, last_modified=EXCLUDED.last_modified;`,
		userID, rec.ID, rec.Date, items, rec.Deleted, rec.LastModified)
	return err
}

// SoftDelete marks a record deleted and bumps last_modified so the next sync
// retracts it. Returns false when the record does not exist.
func (d *DB) SoftDelete(ctx context.Context, userID, id string, modifiedAt int64) (bool, error) {
	res, err := d.sql.ExecContext(ctx,
		"UPDATE consumptions SET deleted=TRUE, last_modified=$3 WHERE user_id=$1 AND id=$2;",
		userID, id, modifiedAt)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
