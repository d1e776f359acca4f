package brapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// QuoteResponse is the body of GET /quote/{ticker}
type QuoteResponse struct {
	Results []QuoteResult `json:"results"`
}

// QuoteResult holds the modules requested for one ticker. Every section is optional.
type QuoteResult struct {
	Symbol                       string                 `json:"symbol"`
	ShortName                    string                 `json:"shortName,omitempty"`
	Currency                     string                 `json:"currency,omitempty"`
	RegularMarketPrice           *float64               `json:"regularMarketPrice,omitempty"`
	BalanceSheetHistoryQuarterly BalanceSheetHistory    `json:"balanceSheetHistoryQuarterly,omitempty"`
	IncomeStatementHistory       IncomeStatementHistory `json:"incomeStatementHistory,omitempty"`
	CashflowHistoryQuarterly     CashFlowHistory        `json:"cashflowHistoryQuarterly,omitempty"`
	FinancialData                *FinancialData         `json:"financialData,omitempty"`
}

// BalanceSheet is one quarterly balance sheet statement
type BalanceSheet struct {
	EndDate                 *Date    `json:"endDate,omitempty"`
	Cash                    *float64 `json:"cash,omitempty"`
	TotalCurrentAssets      *float64 `json:"totalCurrentAssets,omitempty"`
	TotalCurrentLiabilities *float64 `json:"totalCurrentLiabilities,omitempty"`
	TotalAssets             *float64 `json:"totalAssets,omitempty"`
	TotalLiab               *float64 `json:"totalLiab,omitempty"`
	TotalDebt               *float64 `json:"totalDebt,omitempty"`
}

// IncomeStatement is one income statement
type IncomeStatement struct {
	EndDate                *Date    `json:"endDate,omitempty"`
	TotalRevenue           *float64 `json:"totalRevenue,omitempty"`
	CostOfRevenue          *float64 `json:"costOfRevenue,omitempty"`
	GrossProfit            *float64 `json:"grossProfit,omitempty"`
	TotalOperatingExpenses *float64 `json:"totalOperatingExpenses,omitempty"`
	OperatingIncome        *float64 `json:"operatingIncome,omitempty"`
	NetIncome              *float64 `json:"netIncome,omitempty"`
	NetIncomeRatio         *float64 `json:"netIncomeRatio,omitempty"`
	EBIT                   *float64 `json:"ebit,omitempty"`
	EBITDA                 *float64 `json:"ebitda,omitempty"`
	EPS                    *float64 `json:"eps,omitempty"`
}

// CashFlow is one quarterly cash flow statement
type CashFlow struct {
	EndDate                          *Date    `json:"endDate,omitempty"`
	TotalCashFromOperatingActivities *float64 `json:"totalCashFromOperatingActivities,omitempty"`
	ChangeInCash                     *float64 `json:"changeInCash,omitempty"`
}

// FinancialData is the ratios block. Returns and yields are fractions (0.15 = 15%).
type FinancialData struct {
	ReturnOnEquity          *float64 `json:"returnOnEquity,omitempty"`
	ReturnOnAssets          *float64 `json:"returnOnAssets,omitempty"`
	ReturnOnInvestedCapital *float64 `json:"returnOnInvestedCapital,omitempty"`
	DividendYield           *float64 `json:"dividendYield,omitempty"`
	EarningsPerShare        *float64 `json:"earningsPerShare,omitempty"`
}

// BalanceSheetHistory accepts both a bare array of statements and
// an object wrapping them in "balanceSheetStatements".
type BalanceSheetHistory []BalanceSheet

func (h *BalanceSheetHistory) UnmarshalJSON(data []byte) error {
	var wrapped struct {
		Statements []BalanceSheet `json:"balanceSheetStatements"`
	}
	list, err := decodeList(data, &wrapped, func() []BalanceSheet { return wrapped.Statements })
	if err != nil {
		return fmt.Errorf("balanceSheetHistoryQuarterly: %w", err)
	}
	*h = list
	return nil
}

// IncomeStatementHistory accepts {"incomeStatementHistory": [...]} or a bare array
type IncomeStatementHistory []IncomeStatement

func (h *IncomeStatementHistory) UnmarshalJSON(data []byte) error {
	var wrapped struct {
		Statements []IncomeStatement `json:"incomeStatementHistory"`
	}
	list, err := decodeList(data, &wrapped, func() []IncomeStatement { return wrapped.Statements })
	if err != nil {
		return fmt.Errorf("incomeStatementHistory: %w", err)
	}
	*h = list
	return nil
}

// CashFlowHistory accepts {"cashflowStatements": [...]} or a bare array
type CashFlowHistory []CashFlow

func (h *CashFlowHistory) UnmarshalJSON(data []byte) error {
	var wrapped struct {
		Statements []CashFlow `json:"cashflowStatements"`
	}
	list, err := decodeList(data, &wrapped, func() []CashFlow { return wrapped.Statements })
	if err != nil {
		return fmt.Errorf("cashflowHistoryQuarterly: %w", err)
	}
	*h = list
	return nil
}

func decodeList[T any](data []byte, wrapper any, unwrap func() []T) ([]T, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil, nil
	}
	switch data[0] {
	case '[':
		var list []T
		if err := json.Unmarshal(data, &list); err != nil {
			return nil, err
		}
		return list, nil
	case '{':
		if err := json.Unmarshal(data, wrapper); err != nil {
			return nil, err
		}
		return unwrap(), nil
	}
	return nil, fmt.Errorf("unexpected JSON value %.20q", data)
}

// Date is a statement end date. The provider sends RFC 3339 timestamps,
// plain YYYY-MM-DD dates or unix seconds.
type Date struct {
	time.Time
}

func (d *Date) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	if len(data) > 0 && data[0] != '"' {
		var secs int64
		if err := json.Unmarshal(data, &secs); err != nil {
			return fmt.Errorf("invalid date %s", data)
		}
		d.Time = time.Unix(secs, 0).UTC()
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, time.DateOnly} {
		if t, err := time.Parse(layout, s); err == nil {
			d.Time = t.UTC()
			return nil
		}
	}
	return fmt.Errorf("invalid date %q", s)
}

// Sections are the most recent statements of a result
type Sections struct {
	BalanceSheet    *BalanceSheet
	IncomeStatement *IncomeStatement
	CashFlow        *CashFlow
	FinancialData   *FinancialData
}

// Empty reports whether no quarterly statement is available
func (s Sections) Empty() bool {
	return s.BalanceSheet == nil && s.IncomeStatement == nil && s.CashFlow == nil
}

// EndDate returns the period end of the first statement that carries one,
// in balance sheet, income statement, cash flow order.
func (s Sections) EndDate() (time.Time, bool) {
	switch {
	case s.BalanceSheet != nil && s.BalanceSheet.EndDate != nil && !s.BalanceSheet.EndDate.IsZero():
		return s.BalanceSheet.EndDate.Time, true
	case s.IncomeStatement != nil && s.IncomeStatement.EndDate != nil && !s.IncomeStatement.EndDate.IsZero():
		return s.IncomeStatement.EndDate.Time, true
	case s.CashFlow != nil && s.CashFlow.EndDate != nil && !s.CashFlow.EndDate.IsZero():
		return s.CashFlow.EndDate.Time, true
	}
	return time.Time{}, false
}

// Sections picks the first statement of each history
func (r *QuoteResult) Sections() Sections {
	var s Sections
	if len(r.BalanceSheetHistoryQuarterly) > 0 {
		s.BalanceSheet = &r.BalanceSheetHistoryQuarterly[0]
	}
	if len(r.IncomeStatementHistory) > 0 {
		s.IncomeStatement = &r.IncomeStatementHistory[0]
	}
	if len(r.CashflowHistoryQuarterly) > 0 {
		s.CashFlow = &r.CashflowHistoryQuarterly[0]
	}
	s.FinancialData = r.FinancialData
	return s
}
