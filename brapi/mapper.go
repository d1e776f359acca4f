package brapi

import (
	"errors"
	"time"

	models "finboard/database/models_pkg"
)

var (
	// ErrNoResult is returned when the response carries no result entry
	ErrNoResult = errors.New("no result found for ticker")
	// ErrNoQuarterlyData is returned when balance sheet, income statement and cash flow are all absent
	ErrNoQuarterlyData = errors.New("no quarterly data found for ticker")
)

// now is replaced in tests
var now = time.Now

// Map converts the first result of a quote response into a quarterly record of companyID
func Map(resp *QuoteResponse, companyID string) (*models.FinancialIndicator, error) {
	if resp == nil || len(resp.Results) == 0 {
		return nil, ErrNoResult
	}
	result := resp.Results[0]
	sections := result.Sections()
	if sections.Empty() {
		return nil, ErrNoQuarterlyData
	}

	end, ok := sections.EndDate()
	if !ok {
		end = now()
	}
	year, quarterNumber := QuarterOf(end)

	fi := &models.FinancialIndicator{
		CompanyID:     companyID,
		Year:          year,
		QuarterNumber: quarterNumber,
		Quarter:       models.QuarterKey(year, quarterNumber),
	}

	if is := sections.IncomeStatement; is != nil {
		fi.ReceitasBensServicos = present(is.TotalRevenue)
		fi.CustoReceitaOperacional = present(is.CostOfRevenue)
		fi.DespesasOperacionaisTotal = present(is.TotalOperatingExpenses)
		fi.LucroOperacional = present(is.OperatingIncome)
		fi.LucroLiquidoAposImpostos = present(is.NetIncome)
		fi.EBIT = present(is.EBIT)
		fi.EBITDA = present(is.EBITDA)
		fi.LucroPorAcao = present(is.EPS)

		fi.MargemEBITDAPercent = percentOf(is.EBITDA, is.TotalRevenue)
		fi.MargemOperacionalPercent = percentOf(is.OperatingIncome, is.TotalRevenue)
		fi.MargemLucroBrutoPercent = percentOf(is.GrossProfit, is.TotalRevenue)
		fi.MargemLiquidaPercent = scaled(is.NetIncomeRatio)
	}

	if bs := sections.BalanceSheet; bs != nil {
		fi.CaixaEquivalentesCaixa = present(bs.Cash)
		fi.EndividamentoTotal = present(bs.TotalDebt)

		if both(bs.TotalCurrentAssets, bs.TotalCurrentLiabilities) {
			wc := *bs.TotalCurrentAssets - *bs.TotalCurrentLiabilities
			fi.CapitalGiro = &wc
		}
		fi.PercentualDividaTotalAtivoTotal = percentOf(bs.TotalDebt, bs.TotalAssets)
		fi.LiquidezCorrente = ratio(bs.TotalCurrentAssets, bs.TotalCurrentLiabilities)
		fi.LiquidezGeral = ratio(bs.TotalAssets, bs.TotalLiab)
	}

	if cf := sections.CashFlow; cf != nil {
		fi.FluxoCaixaLiquidoAtividadesOperacionais = present(cf.TotalCashFromOperatingActivities)
		fi.VariacaoLiquidaCaixaTotal = present(cf.ChangeInCash)
	}

	if fd := sections.FinancialData; fd != nil {
		fi.ROE = scaled(fd.ReturnOnEquity)
		fi.ROA = scaled(fd.ReturnOnAssets)
		fi.ROIC = scaled(fd.ReturnOnInvestedCapital)
		fi.DividendYield = scaled(fd.DividendYield)
		if fi.LucroPorAcao == nil {
			fi.LucroPorAcao = present(fd.EarningsPerShare)
		}
	}

	return fi, nil
}

// QuarterOf returns the calendar year and quarter (1-4) of t
func QuarterOf(t time.Time) (year, quarterNumber int) {
	return t.Year(), (int(t.Month())-1)/3 + 1
}

// present keeps reported non-zero values. The provider reports missing figures as 0.
func present(v *float64) *float64 {
	if v == nil || *v == 0 {
		return nil
	}
	out := *v
	return &out
}

func both(a, b *float64) bool {
	return a != nil && b != nil && *a != 0 && *b != 0
}

func ratio(num, den *float64) *float64 {
	if !both(num, den) {
		return nil
	}
	r := *num / *den
	return &r
}

func percentOf(num, den *float64) *float64 {
	r := ratio(num, den)
	if r == nil {
		return nil
	}
	p := *r * 100
	return &p
}

// scaled turns a fraction into a percentage
func scaled(v *float64) *float64 {
	if v == nil || *v == 0 {
		return nil
	}
	p := *v * 100
	return &p
}
