// Package indicators holds the metric registry and the comparison engine used by
// the dashboard: which metrics exist, how each one is displayed, and how a quarter
// compares with the previous quarter and with the same quarter of the previous year.
//
// The registry is the single place where a metric is declared. Adding a metric is
// one entry in the metrics table below; its unit, category and title follow from it.
package indicators

import (
	"fmt"

	models "finboard/database/models_pkg"
)

// Unit is the display unit of a metric
type Unit string

const (
	UnitCurrency   Unit = "currency"
	UnitPercentage Unit = "percentage"
	UnitRatio      Unit = "ratio"
)

// Category groups metrics into dashboard sections
type Category string

const (
	CategoryRevenue       Category = "revenue"
	CategoryCashFlow      Category = "cash_flow"
	CategoryDebt          Category = "debt"
	CategoryLiquidity     Category = "liquidity"
	CategoryProfitability Category = "profitability"
	CategoryReturns       Category = "returns"
)

// Metric describes one column of financial_indicators
type Metric struct {
	Field    string   `json:"field"`
	Title    string   `json:"title"`
	Category Category `json:"category"`
	Unit     Unit     `json:"unit"`
}

// categories lists the dashboard sections in display order
var categories = []Category{
	CategoryRevenue,
	CategoryCashFlow,
	CategoryDebt,
	CategoryLiquidity,
	CategoryProfitability,
	CategoryReturns,
}

var categoryLabels = map[Category]string{
	CategoryRevenue:       "Receitas e Operacionais",
	CategoryCashFlow:      "Fluxo de Caixa",
	CategoryDebt:          "Capital de Giro e Endividamento",
	CategoryLiquidity:     "Liquidez",
	CategoryProfitability: "Rentabilidade",
	CategoryReturns:       "Retornos",
}

// metrics is the registry table, in dashboard order within each category.
var metrics = []Metric{
	{models.FieldReceitas, "Receitas de Bens e Serviços", CategoryRevenue, UnitCurrency},
	{models.FieldCustoReceita, "Custo da Receita Operacional", CategoryRevenue, UnitCurrency},
	{models.FieldDespesasOperacionais, "Despesas Operacionais - Total", CategoryRevenue, UnitCurrency},
	{models.FieldLucroOperacional, "Lucro Operacional antes da Receita/Despesa Não Recorrente", CategoryRevenue, UnitCurrency},
	{models.FieldLucroLiquido, "Lucro Líquido após Impostos", CategoryRevenue, UnitCurrency},
	{models.FieldLucroPorAcao, "Lucro por Ação", CategoryRevenue, UnitCurrency},

	{models.FieldCaixa, "Caixa e Equivalentes de Caixa", CategoryCashFlow, UnitCurrency},
	{models.FieldFluxoCaixaOperacional, "Fluxo de caixa líquido das atividades operacionais", CategoryCashFlow, UnitCurrency},
	{models.FieldVariacaoCaixa, "Variação líquida de Caixa Total", CategoryCashFlow, UnitCurrency},

	{models.FieldCapitalGiro, "Capital de Giro", CategoryDebt, UnitCurrency},
	{models.FieldEndividamentoTotal, "Endividamento total", CategoryDebt, UnitCurrency},
	{models.FieldPercentualDividaAtivo, "Percentual da dívida total do ativo total", CategoryDebt, UnitPercentage},

	{models.FieldLiquidezGeral, "Liquidez Geral", CategoryLiquidity, UnitRatio},
	{models.FieldLiquidezCorrente, "Liquidez Corrente", CategoryLiquidity, UnitRatio},

	{models.FieldEBIT, "EBIT", CategoryProfitability, UnitCurrency},
	{models.FieldEBITDA, "EBITDA", CategoryProfitability, UnitCurrency},
	{models.FieldMargemEBITDA, "Margem EBITDA %", CategoryProfitability, UnitPercentage},
	{models.FieldMargemLucroBruto, "Margem de lucro bruto %", CategoryProfitability, UnitPercentage},
	{models.FieldMargemOperacional, "Margem operacional %", CategoryProfitability, UnitPercentage},
	{models.FieldMargemLiquida, "Margem líquida %", CategoryProfitability, UnitPercentage},

	{models.FieldROIC, "ROIC", CategoryReturns, UnitPercentage},
	{models.FieldROE, "ROE", CategoryReturns, UnitPercentage},
	{models.FieldROA, "ROA", CategoryReturns, UnitPercentage},
	{models.FieldDividendYield, "Dividend Yield", CategoryReturns, UnitPercentage},
}

var byField map[string]Metric

func init() {
	if err := load(); err != nil {
		panic(err)
	}
}

// load indexes the registry table and rejects inconsistent entries
func load() error {
	idx := make(map[string]Metric, len(metrics))
	var probe models.FinancialIndicator
	for _, m := range metrics {
		if _, dup := idx[m.Field]; dup {
			return fmt.Errorf("indicators: metric %q declared twice", m.Field)
		}
		if !m.Unit.Valid() {
			return fmt.Errorf("indicators: metric %q has invalid unit %q", m.Field, m.Unit)
		}
		if !m.Category.Valid() {
			return fmt.Errorf("indicators: metric %q has invalid category %q", m.Field, m.Category)
		}
		if _, ok := probe.Metric(m.Field); !ok {
			return fmt.Errorf("indicators: metric %q has no backing column", m.Field)
		}
		idx[m.Field] = m
	}
	byField = idx
	return nil
}

// Valid reports whether u is one of the known units
func (u Unit) Valid() bool {
	switch u {
	case UnitCurrency, UnitPercentage, UnitRatio:
		return true
	}
	return false
}

// Valid reports whether c is one of the known categories
func (c Category) Valid() bool {
	_, ok := categoryLabels[c]
	return ok
}

// ParseUnit validates a unit coming from user input
func ParseUnit(s string) (Unit, error) {
	u := Unit(s)
	if !u.Valid() {
		return "", fmt.Errorf("unknown unit %q", s)
	}
	return u, nil
}

// ParseCategory validates a category coming from user input
func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if !c.Valid() {
		return "", fmt.Errorf("unknown category %q", s)
	}
	return c, nil
}

// Lookup returns the registry entry of a field
func Lookup(field string) (Metric, bool) {
	m, ok := byField[field]
	return m, ok
}

// UnitOf returns the display unit of a field.
// Fields missing from the registry are displayed as currency.
func UnitOf(field string) Unit {
	if m, ok := byField[field]; ok {
		return m.Unit
	}
	return UnitCurrency
}

// Title returns the display title of a field, or the field itself when unknown
func Title(field string) string {
	if m, ok := byField[field]; ok {
		return m.Title
	}
	return field
}

// All returns every registered metric in dashboard order
func All() []Metric {
	out := make([]Metric, len(metrics))
	copy(out, metrics)
	return out
}

// ByCategory returns the metrics of one dashboard section
func ByCategory(c Category) []Metric {
	var out []Metric
	for _, m := range metrics {
		if m.Category == c {
			out = append(out, m)
		}
	}
	return out
}

// Categories returns the dashboard sections in display order
func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

// CategoryLabel returns the section heading of a category
func CategoryLabel(c Category) string {
	if l, ok := categoryLabels[c]; ok {
		return l
	}
	return string(c)
}
