package indicators

import (
	"math"
	"sort"

	models "finboard/database/models_pkg"
)

// Trend is the direction of a percentage change
type Trend string

const (
	TrendUp      Trend = "up"
	TrendDown    Trend = "down"
	TrendNeutral Trend = "neutral"
)

// Comparison holds the reference values of one metric in one quarter.
// Changes are percentages and are nil when the reference value is missing or zero.
type Comparison struct {
	Field               string   `json:"field"`
	Quarter             string   `json:"quarter"`
	Current             float64  `json:"current"`
	PreviousQuarter     *float64 `json:"previous_quarter,omitempty"`
	SameQuarterLastYear *float64 `json:"same_quarter_last_year,omitempty"`
	QuarterChange       *float64 `json:"quarter_change,omitempty"`
	YearChange          *float64 `json:"year_change,omitempty"`
}

// SortQuarters returns a copy of records ordered by year desc, then quarter_number desc
func SortQuarters(records []models.FinancialIndicator) []models.FinancialIndicator {
	sorted := make([]models.FinancialIndicator, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Year != sorted[j].Year {
			return sorted[i].Year > sorted[j].Year
		}
		return sorted[i].QuarterNumber > sorted[j].QuarterNumber
	})
	return sorted
}

// Latest returns the most recent quarter, or nil for an empty history
func Latest(records []models.FinancialIndicator) *models.FinancialIndicator {
	if len(records) == 0 {
		return nil
	}
	sorted := SortQuarters(records)
	return &sorted[0]
}

// Compare locates the quarter whose field equals current and returns its
// previous-quarter and same-quarter-last-year references.
//
// No comparison is produced when current is nil or zero, when the history is empty,
// or when no quarter reports that value. With repeated values the most recent match wins.
func Compare(records []models.FinancialIndicator, field string, current *float64) (*Comparison, bool) {
	if current == nil || *current == 0 || len(records) == 0 {
		return nil, false
	}

	sorted := SortQuarters(records)
	idx := -1
	for i := range sorted {
		v, ok := sorted[i].Metric(field)
		if !ok {
			return nil, false
		}
		if v != nil && *v == *current {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, false
	}

	match := sorted[idx]
	cmp := &Comparison{
		Field:   field,
		Quarter: match.Quarter,
		Current: *current,
	}

	if idx+1 < len(sorted) {
		cmp.PreviousQuarter, _ = sorted[idx+1].Metric(field)
	}
	for i := range sorted {
		if sorted[i].Year == match.Year-1 && sorted[i].QuarterNumber == match.QuarterNumber {
			cmp.SameQuarterLastYear, _ = sorted[i].Metric(field)
			break
		}
	}

	cmp.QuarterChange = PercentChange(current, cmp.PreviousQuarter)
	cmp.YearChange = PercentChange(current, cmp.SameQuarterLastYear)
	return cmp, true
}

// CompareQuarter compares field for the given quarter record against the history
func CompareQuarter(records []models.FinancialIndicator, record *models.FinancialIndicator, field string) (*Comparison, bool) {
	if record == nil {
		return nil, false
	}
	v, ok := record.Metric(field)
	if !ok {
		return nil, false
	}
	return Compare(records, field, v)
}

// PercentChange returns (current - previous) / |previous| * 100.
// It returns nil when either value is missing or previous is zero.
func PercentChange(current, previous *float64) *float64 {
	if current == nil || previous == nil || *previous == 0 {
		return nil
	}
	change := (*current - *previous) / math.Abs(*previous) * 100
	if math.IsNaN(change) || math.IsInf(change, 0) {
		return nil
	}
	return &change
}

// TrendOf classifies a percentage change by its sign
func TrendOf(change float64) Trend {
	switch {
	case change > 0:
		return TrendUp
	case change < 0:
		return TrendDown
	default:
		return TrendNeutral
	}
}
