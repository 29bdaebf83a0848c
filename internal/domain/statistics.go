package domain

import "context"

// DailyStatisticRow holds the nutrient totals for one calendar day, summed
// over the currently active consumption records of that day.
type DailyStatisticRow struct {
	Date          int64   `json:"date"`
	Calories      float64 `json:"calories"`
	Carbohydrates float64 `json:"carbohydrates"`
	Fat           float64 `json:"fat"`
	Protein       float64 `json:"protein"`
}

// StatisticsAggregate is the persisted dailyStatistics document. Rows keep
// insertion order and are unique by Date. LastModified is the watermark for
// the next incremental sync.
type StatisticsAggregate struct {
	Rows         []DailyStatisticRow `json:"data"`
	LastModified int64               `json:"lastModified"`
}

// WeightHistoryRow is one weight observation, unique per Date.
type WeightHistoryRow struct {
	Date   int64   `json:"date"`
	Weight float64 `json:"weight"`
}

// WeightAggregate is the persisted weightStatistic document.
type WeightAggregate struct {
	Rows         []WeightHistoryRow `json:"weightHistory"`
	LastModified int64              `json:"lastModified"`
}

// StatisticsRepository is the port for both aggregate documents. Gets return
// (nil, nil) when the document does not exist yet; sets replace the whole
// document, never a single field.
type StatisticsRepository interface {
	GetDailyStatistics(ctx context.Context, userID string) (*StatisticsAggregate, error)
	SetDailyStatistics(ctx context.Context, userID string, agg StatisticsAggregate) error
	GetWeightHistory(ctx context.Context, userID string) (*WeightAggregate, error)
	SetWeightHistory(ctx context.Context, userID string, agg WeightAggregate) error
}

// RecordTotals computes a record's daily row: each nutrient is the sum of
// item value times quantity over all items. A record without items yields a
// zero row for its date.
func RecordTotals(rec ConsumptionRecord) DailyStatisticRow {
	row := DailyStatisticRow{Date: rec.Date}
	for _, it := range rec.Items {
		row.Calories += it.Calories * it.Quantity
		row.Carbohydrates += it.Carbohydrates * it.Quantity
		row.Fat += it.Fat * it.Quantity
		row.Protein += it.Protein * it.Quantity
	}
	return row
}

// MergeStatistics folds a batch of changed records into the existing row set
// and returns the new row set; the input slice is not modified. An active
// record replaces (or inserts) the row for its date with totals recomputed
// from that record alone; a deleted record removes the row for its date.
// When a batch carries several records for the same date, the last one
// processed determines that date's row.
func MergeStatistics(rows []DailyStatisticRow, records []ConsumptionRecord) []DailyStatisticRow {
	out := make([]DailyStatisticRow, len(rows))
	copy(out, rows)

	for _, rec := range records {
		idx := -1
		for i := range out {
			if out[i].Date == rec.Date {
				idx = i
				break
			}
		}

		if rec.Deleted {
			if idx != -1 {
				out = append(out[:idx], out[idx+1:]...)
			}
			continue
		}

		row := RecordTotals(rec)
		if idx == -1 {
			out = append(out, row)
		} else {
			out[idx] = row
		}
	}
	return out
}

// UpsertWeight returns the row set with the given day's weight overwritten,
// or a new row appended if the day is not present yet. The input slice is
// not modified.
func UpsertWeight(rows []WeightHistoryRow, date int64, weight float64) []WeightHistoryRow {
	out := make([]WeightHistoryRow, len(rows))
	copy(out, rows)

	for i := range out {
		if out[i].Date == date {
			out[i].Weight = weight
			return out
		}
	}
	return append(out, WeightHistoryRow{Date: date, Weight: weight})
}
