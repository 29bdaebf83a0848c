// Package domain contains the core entities, merge logic and repository ports.
package domain

import "context"

// ConsumptionItem is a single line item of a logged meal. All values are
// per-unit; the item contributes value*quantity to the day's totals.
type ConsumptionItem struct {
	Calories      float64 `json:"calories"`
	Carbohydrates float64 `json:"carbohydrates"`
	Fat           float64 `json:"fat"`
	Protein       float64 `json:"protein"`
	Quantity      float64 `json:"quantity"`
}

// ConsumptionRecord is one logged meal, produced by the food-logging client
// and only ever read by the aggregator. Date is a UTC day key in epoch
// milliseconds. A record with Deleted set keeps its row in the store so the
// next sync can retract its contribution.
type ConsumptionRecord struct {
	ID           string            `json:"id"`
	Date         int64             `json:"date"`
	Items        []ConsumptionItem `json:"items"`
	Deleted      bool              `json:"deleted,omitempty"`
	LastModified int64             `json:"lastModified"`
}

// ConsumptionRepository is the port for the consumption source collection.
type ConsumptionRepository interface {
	// ModifiedSince returns all records with LastModified >= since. The bound
	// is inclusive so a record written in the same millisecond as the stored
	// watermark is reprocessed rather than lost.
	ModifiedSince(ctx context.Context, userID string, since int64) ([]ConsumptionRecord, error)
	Upsert(ctx context.Context, userID string, rec ConsumptionRecord) error
	// SoftDelete marks a record deleted and bumps its LastModified so the next
	// sync sees the retraction. Returns false if no such record exists.
	SoftDelete(ctx context.Context, userID string, id string, modifiedAt int64) (bool, error)
}
