package indicators

import (
	models "finboard/database/models_pkg"
)

// Point is one chart sample
type Point struct {
	Quarter string  `json:"quarter"`
	Year    int     `json:"year"`
	Number  int     `json:"quarter_number"`
	Value   float64 `json:"value"`
}

// Series returns the values of field in chronological order.
// Quarters that did not report the field are skipped.
func Series(records []models.FinancialIndicator, field string) []Point {
	sorted := SortQuarters(records)
	points := make([]Point, 0, len(sorted))
	for i := len(sorted) - 1; i >= 0; i-- {
		v, ok := sorted[i].Metric(field)
		if !ok || v == nil {
			continue
		}
		points = append(points, Point{
			Quarter: sorted[i].Quarter,
			Year:    sorted[i].Year,
			Number:  sorted[i].QuarterNumber,
			Value:   *v,
		})
	}
	return points
}

// Section is one dashboard block: the comparisons of every metric in a category
type Section struct {
	Category Category      `json:"category"`
	Label    string        `json:"label"`
	Cards    []SectionCard `json:"cards"`
}

// SectionCard pairs a metric with its comparison for the selected quarter.
// Comparison is nil when no comparison could be made.
type SectionCard struct {
	Metric     Metric      `json:"metric"`
	Value      *float64    `json:"value"`
	Comparison *Comparison `json:"comparison,omitempty"`
}

// Dashboard builds every section for the given quarter of the history
func Dashboard(records []models.FinancialIndicator, selected *models.FinancialIndicator) []Section {
	sections := make([]Section, 0, len(categories))
	for _, c := range categories {
		sec := Section{Category: c, Label: CategoryLabel(c)}
		for _, m := range ByCategory(c) {
			card := SectionCard{Metric: m}
			if selected != nil {
				card.Value, _ = selected.Metric(m.Field)
				if cmp, ok := CompareQuarter(records, selected, m.Field); ok {
					card.Comparison = cmp
				}
			}
			sec.Cards = append(sec.Cards, card)
		}
		sections = append(sections, sec)
	}
	return sections
}
