package api

import (
	"net/http"
	"strings"

	"finboard/database"
	models "finboard/database/models_pkg"
	"finboard/helpers"
	"finboard/indicators"
)

// Dashboard API Handlers

// summaryFields are the headline amounts shown in millions above the sections
var summaryFields = []string{
	models.FieldReceitas,
	models.FieldLucroLiquido,
	models.FieldEBITDA,
	models.FieldCaixa,
}

type summaryView struct {
	Field     string   `json:"field"`
	Title     string   `json:"title"`
	Value     *float64 `json:"value"`
	Formatted string   `json:"formatted"`
}

type comparisonView struct {
	PreviousQuarter          *float64         `json:"previous_quarter,omitempty"`
	PreviousQuarterLabel     string           `json:"previous_quarter_label"`
	SameQuarterLastYear      *float64         `json:"same_quarter_last_year,omitempty"`
	SameQuarterLastYearLabel string           `json:"same_quarter_last_year_label"`
	QuarterChange            *float64         `json:"quarter_change,omitempty"`
	QuarterChangeLabel       string           `json:"quarter_change_label"`
	QuarterTrend             indicators.Trend `json:"quarter_trend"`
	YearChange               *float64         `json:"year_change,omitempty"`
	YearChangeLabel          string           `json:"year_change_label"`
	YearTrend                indicators.Trend `json:"year_trend"`
}

type cardView struct {
	Field      string          `json:"field"`
	Title      string          `json:"title"`
	Unit       indicators.Unit `json:"unit"`
	Value      *float64        `json:"value"`
	Formatted  string          `json:"formatted"`
	Comparison *comparisonView `json:"comparison,omitempty"`
}

type sectionView struct {
	Category indicators.Category `json:"category"`
	Label    string              `json:"label"`
	Cards    []cardView          `json:"cards"`
}

type dashboardResponse struct {
	Company  *database.Company `json:"company"`
	Quarter  string            `json:"quarter"`
	Quarters []string          `json:"quarters"`
	Summary  []summaryView     `json:"summary"`
	Sections []sectionView     `json:"sections"`
}

// handleDashboard returns the comparison cards of a company for one quarter.
// The latest quarter is used unless ?quarter= names another one.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	company, err := s.repo.GetCompany(r.PathValue("id"))
	if err != nil {
		respondWithStoreError(w, "Failed to load company", err)
		return
	}

	records, err := s.repo.ListQuarters(company.ID)
	if err != nil {
		respondWithStoreError(w, "Failed to load quarterly records", err)
		return
	}

	sorted := indicators.SortQuarters(records)
	quarters := make([]string, 0, len(sorted))
	for _, rec := range sorted {
		quarters = append(quarters, rec.Quarter)
	}

	var selected *models.FinancialIndicator
	if q := strings.TrimSpace(r.URL.Query().Get("quarter")); q != "" {
		for i := range sorted {
			if sorted[i].Quarter == q {
				selected = &sorted[i]
				break
			}
		}
		if selected == nil {
			respondWithError(w, http.StatusNotFound, "Quarter not found: "+q, nil)
			return
		}
	} else {
		selected = indicators.Latest(records)
	}

	resp := dashboardResponse{
		Company:  company,
		Quarters: quarters,
		Summary:  make([]summaryView, 0, len(summaryFields)),
	}
	if selected != nil {
		resp.Quarter = selected.Quarter
		for _, field := range summaryFields {
			v, _ := selected.Metric(field)
			resp.Summary = append(resp.Summary, summaryView{
				Field:     field,
				Title:     indicators.Title(field),
				Value:     v,
				Formatted: s.formatter.FormatMillions(v),
			})
		}
	}

	for _, sec := range indicators.Dashboard(records, selected) {
		resp.Sections = append(resp.Sections, s.sectionView(sec))
	}

	respondJSON(w, http.StatusOK, resp)
}

func (s *Server) sectionView(sec indicators.Section) sectionView {
	view := sectionView{
		Category: sec.Category,
		Label:    sec.Label,
		Cards:    make([]cardView, 0, len(sec.Cards)),
	}
	for _, c := range sec.Cards {
		unit := string(c.Metric.Unit)
		card := cardView{
			Field:     c.Metric.Field,
			Title:     c.Metric.Title,
			Unit:      c.Metric.Unit,
			Value:     c.Value,
			Formatted: s.formatter.FormatValue(c.Value, unit),
		}
		if cmp := c.Comparison; cmp != nil {
			card.Comparison = &comparisonView{
				PreviousQuarter:          cmp.PreviousQuarter,
				PreviousQuarterLabel:     s.formatter.FormatComparison(cmp.PreviousQuarter, unit),
				SameQuarterLastYear:      cmp.SameQuarterLastYear,
				SameQuarterLastYearLabel: s.formatter.FormatComparison(cmp.SameQuarterLastYear, unit),
				QuarterChange:            cmp.QuarterChange,
				QuarterChangeLabel:       helpers.FormatChange(cmp.QuarterChange),
				QuarterTrend:             trendOf(cmp.QuarterChange),
				YearChange:               cmp.YearChange,
				YearChangeLabel:          helpers.FormatChange(cmp.YearChange),
				YearTrend:                trendOf(cmp.YearChange),
			}
		}
		view.Cards = append(view.Cards, card)
	}
	return view
}

func trendOf(change *float64) indicators.Trend {
	if change == nil {
		return indicators.TrendNeutral
	}
	return indicators.TrendOf(*change)
}

type pointView struct {
	indicators.Point
	Label     string `json:"label"`
	AxisLabel string `json:"axis_label"`
}

// handleSeries returns the chart series of one metric in chronological order
func (s *Server) handleSeries(w http.ResponseWriter, r *http.Request) {
	field := r.PathValue("field")
	metric, ok := indicators.Lookup(field)
	if !ok {
		respondWithError(w, http.StatusNotFound, "Unknown metric: "+field, nil)
		return
	}

	company, err := s.repo.GetCompany(r.PathValue("id"))
	if err != nil {
		respondWithStoreError(w, "Failed to load company", err)
		return
	}
	records, err := s.repo.ListQuarters(company.ID)
	if err != nil {
		respondWithStoreError(w, "Failed to load quarterly records", err)
		return
	}

	unit := string(metric.Unit)
	series := indicators.Series(records, field)
	points := make([]pointView, 0, len(series))
	for _, p := range series {
		v := p.Value
		points = append(points, pointView{
			Point:     p,
			Label:     s.formatter.FormatValue(&v, unit),
			AxisLabel: s.formatter.FormatAxis(&v, unit),
		})
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"metric": metric,
		"points": points,
		"count":  len(points),
	})
}
