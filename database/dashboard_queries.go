package database

import (
	"time"
)

// CompanyCoverage summarizes the quarters recorded for a company
type CompanyCoverage struct {
	CompanyID     string     `json:"company_id"`
	Nome          string     `json:"nome"`
	Ticker        string     `json:"ticker"`
	QuarterCount  int64      `json:"quarter_count"`
	FirstQuarter  *string    `json:"first_quarter,omitempty"`
	LatestQuarter *string    `json:"latest_quarter,omitempty"`
	LastUpdated   *time.Time `json:"last_updated,omitempty"`
}

// GetCoverage returns, for every company, how many quarters are recorded and
// which period the history spans. Companies without records are included.
func (r *Repository) GetCoverage() ([]CompanyCoverage, error) {
	var rows []CompanyCoverage

	query := `
		SELECT
			c.id AS company_id,
			c.nome,
			c.ticker,
			COUNT(fi.id) AS quarter_count,
			(SELECT f.quarter FROM financial_indicators f
				WHERE f.company_id = c.id
				ORDER BY f.year ASC, f.quarter_number ASC LIMIT 1) AS first_quarter,
			(SELECT f.quarter FROM financial_indicators f
				WHERE f.company_id = c.id
				ORDER BY f.year DESC, f.quarter_number DESC LIMIT 1) AS latest_quarter,
			MAX(fi.updated_at) AS last_updated
		FROM companies c
		LEFT JOIN financial_indicators fi ON fi.company_id = c.id
		GROUP BY c.id, c.nome, c.ticker
		ORDER BY c.nome ASC
	`

	if err := r.db.db.Raw(query).Scan(&rows).Error; err != nil {
		return nil, WrapDBError("GetCoverage", err)
	}
	return rows, nil
}
