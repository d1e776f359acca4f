package database

import "time"

// Connection pool settings. The service is human-paced, a small pool is enough.
const (
	MaxOpenConns    = 10
	MaxIdleConns    = 5
	ConnMaxLifetime = 30 * time.Minute
	ConnMaxIdleTime = 5 * time.Minute
)

// Index names created by InitSchema
const (
	IndexQuarterLookup = "idx_financial_indicators_company_period"
	IndexQuarterKey    = "idx_financial_indicators_company_quarter"
)
