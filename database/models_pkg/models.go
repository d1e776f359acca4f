package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Sector categories a company (or an indicator definition) can be tagged with.
const (
	CategoriaIndustria = "Industria"
	CategoriaFinancas  = "Financas"
)

// Metric column identifiers of financial_indicators.
// They double as JSON keys and as the identifiers used by the metric registry.
const (
	FieldReceitas              = "receitas_bens_servicos"
	FieldCustoReceita          = "custo_receita_operacional"
	FieldDespesasOperacionais  = "despesas_operacionais_total"
	FieldLucroOperacional      = "lucro_operacional_antes_receita_despesa_nao_recorrente"
	FieldLucroLiquido          = "lucro_liquido_apos_impostos"
	FieldLucroPorAcao          = "lucro_por_acao"
	FieldCaixa                 = "caixa_equivalentes_caixa"
	FieldFluxoCaixaOperacional = "fluxo_caixa_liquido_atividades_operacionais"
	FieldVariacaoCaixa         = "variacao_liquida_caixa_total"
	FieldCapitalGiro           = "capital_giro"
	FieldEndividamentoTotal    = "endividamento_total"
	FieldPercentualDividaAtivo = "percentual_divida_total_ativo_total"
	FieldLiquidezGeral         = "liquidez_geral"
	FieldLiquidezCorrente      = "liquidez_corrente"
	FieldEBIT                  = "ebit"
	FieldEBITDA                = "ebitda"
	FieldMargemEBITDA          = "margem_ebitda_percent"
	FieldMargemLucroBruto      = "margem_lucro_bruto_percent"
	FieldMargemOperacional     = "margem_operacional_percent"
	FieldMargemLiquida         = "margem_liquida_percent"
	FieldROIC                  = "roic"
	FieldROE                   = "roe"
	FieldROA                   = "roa"
	FieldDividendYield         = "dividend_yield"
)

// Company is the identity record of a listed company.
// Ticker is the lookup key against the market-data provider.
type Company struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	Nome      string    `gorm:"type:text;not null;index" json:"nome"`
	Ticker    string    `gorm:"size:16;not null;index" json:"ticker"`
	LinkRI    *string   `gorm:"column:link_ri;type:text" json:"link_ri,omitempty"`
	Categoria *string   `gorm:"size:20" json:"categoria,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for Company
func (Company) TableName() string {
	return "companies"
}

// BeforeCreate assigns a UUID when the caller did not provide one
func (c *Company) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

// FinancialIndicator is one quarterly record of a company.
//
// Key Fields:
//   - CompanyID/Year/QuarterNumber: identity of the quarter, expected to be unique
//   - Quarter: display key of the period, formatted as "{year}TRI{quarter_number}"
//
// Every metric is optional. A nil pointer means the value was not reported,
// which is not the same as a reported zero.
type FinancialIndicator struct {
	ID            string    `gorm:"type:uuid;primaryKey" json:"id"`
	CompanyID     string    `gorm:"type:uuid;not null;index" json:"company_id"`
	Company       *Company  `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Year          int       `gorm:"not null" json:"year"`
	QuarterNumber int       `gorm:"not null" json:"quarter_number"`
	Quarter       string    `gorm:"size:16;not null;index" json:"quarter"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	// Revenue and operational
	ReceitasBensServicos      *float64 `gorm:"type:decimal(20,2)" json:"receitas_bens_servicos,omitempty"`
	CustoReceitaOperacional   *float64 `gorm:"type:decimal(20,2)" json:"custo_receita_operacional,omitempty"`
	DespesasOperacionaisTotal *float64 `gorm:"type:decimal(20,2)" json:"despesas_operacionais_total,omitempty"`
	LucroOperacional          *float64 `gorm:"column:lucro_operacional_antes_receita_despesa_nao_recorrente;type:decimal(20,2)" json:"lucro_operacional_antes_receita_despesa_nao_recorrente,omitempty"`
	LucroLiquidoAposImpostos  *float64 `gorm:"type:decimal(20,2)" json:"lucro_liquido_apos_impostos,omitempty"`
	LucroPorAcao              *float64 `gorm:"type:decimal(15,4)" json:"lucro_por_acao,omitempty"`

	// Cash flow
	CaixaEquivalentesCaixa                  *float64 `gorm:"type:decimal(20,2)" json:"caixa_equivalentes_caixa,omitempty"`
	FluxoCaixaLiquidoAtividadesOperacionais *float64 `gorm:"type:decimal(20,2)" json:"fluxo_caixa_liquido_atividades_operacionais,omitempty"`
	VariacaoLiquidaCaixaTotal               *float64 `gorm:"type:decimal(20,2)" json:"variacao_liquida_caixa_total,omitempty"`

	// Working capital and debt
	CapitalGiro                     *float64 `gorm:"type:decimal(20,2)" json:"capital_giro,omitempty"`
	EndividamentoTotal              *float64 `gorm:"type:decimal(20,2)" json:"endividamento_total,omitempty"`
	PercentualDividaTotalAtivoTotal *float64 `gorm:"type:decimal(10,4)" json:"percentual_divida_total_ativo_total,omitempty"`

	// Liquidity
	LiquidezGeral    *float64 `gorm:"type:decimal(10,4)" json:"liquidez_geral,omitempty"`
	LiquidezCorrente *float64 `gorm:"type:decimal(10,4)" json:"liquidez_corrente,omitempty"`

	// Profitability
	EBIT                     *float64 `gorm:"column:ebit;type:decimal(20,2)" json:"ebit,omitempty"`
	EBITDA                   *float64 `gorm:"column:ebitda;type:decimal(20,2)" json:"ebitda,omitempty"`
	MargemEBITDAPercent      *float64 `gorm:"column:margem_ebitda_percent;type:decimal(10,4)" json:"margem_ebitda_percent,omitempty"`
	MargemLucroBrutoPercent  *float64 `gorm:"type:decimal(10,4)" json:"margem_lucro_bruto_percent,omitempty"`
	MargemOperacionalPercent *float64 `gorm:"type:decimal(10,4)" json:"margem_operacional_percent,omitempty"`
	MargemLiquidaPercent     *float64 `gorm:"type:decimal(10,4)" json:"margem_liquida_percent,omitempty"`

	// Returns
	ROIC          *float64 `gorm:"column:roic;type:decimal(10,4)" json:"roic,omitempty"`
	ROE           *float64 `gorm:"column:roe;type:decimal(10,4)" json:"roe,omitempty"`
	ROA           *float64 `gorm:"column:roa;type:decimal(10,4)" json:"roa,omitempty"`
	DividendYield *float64 `gorm:"type:decimal(10,4)" json:"dividend_yield,omitempty"`
}

// TableName specifies the table name for FinancialIndicator
func (FinancialIndicator) TableName() string {
	return "financial_indicators"
}

// BeforeCreate assigns a UUID when the caller did not provide one
func (f *FinancialIndicator) BeforeCreate(tx *gorm.DB) error {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	return nil
}

// metricRef returns the address of the struct field backing a metric column.
func (f *FinancialIndicator) metricRef(field string) (**float64, bool) {
	switch field {
	case FieldReceitas:
		return &f.ReceitasBensServicos, true
	case FieldCustoReceita:
		return &f.CustoReceitaOperacional, true
	case FieldDespesasOperacionais:
		return &f.DespesasOperacionaisTotal, true
	case FieldLucroOperacional:
		return &f.LucroOperacional, true
	case FieldLucroLiquido:
		return &f.LucroLiquidoAposImpostos, true
	case FieldLucroPorAcao:
		return &f.LucroPorAcao, true
	case FieldCaixa:
		return &f.CaixaEquivalentesCaixa, true
	case FieldFluxoCaixaOperacional:
		return &f.FluxoCaixaLiquidoAtividadesOperacionais, true
	case FieldVariacaoCaixa:
		return &f.VariacaoLiquidaCaixaTotal, true
	case FieldCapitalGiro:
		return &f.CapitalGiro, true
	case FieldEndividamentoTotal:
		return &f.EndividamentoTotal, true
	case FieldPercentualDividaAtivo:
		return &f.PercentualDividaTotalAtivoTotal, true
	case FieldLiquidezGeral:
		return &f.LiquidezGeral, true
	case FieldLiquidezCorrente:
		return &f.LiquidezCorrente, true
	case FieldEBIT:
		return &f.EBIT, true
	case FieldEBITDA:
		return &f.EBITDA, true
	case FieldMargemEBITDA:
		return &f.MargemEBITDAPercent, true
	case FieldMargemLucroBruto:
		return &f.MargemLucroBrutoPercent, true
	case FieldMargemOperacional:
		return &f.MargemOperacionalPercent, true
	case FieldMargemLiquida:
		return &f.MargemLiquidaPercent, true
	case FieldROIC:
		return &f.ROIC, true
	case FieldROE:
		return &f.ROE, true
	case FieldROA:
		return &f.ROA, true
	case FieldDividendYield:
		return &f.DividendYield, true
	}
	return nil, false
}

// Metric returns the value of a metric column. The second result is false
// when field is not a metric column; the value itself may still be nil.
func (f *FinancialIndicator) Metric(field string) (*float64, bool) {
	ref, ok := f.metricRef(field)
	if !ok {
		return nil, false
	}
	return *ref, true
}

// SetMetric stores a value in a metric column. It returns false for unknown fields.
func (f *FinancialIndicator) SetMetric(field string, v *float64) bool {
	ref, ok := f.metricRef(field)
	if !ok {
		return false
	}
	*ref = v
	return true
}

// QuarterKey builds the display key of a quarter, e.g. "2024TRI1"
func QuarterKey(year, quarterNumber int) string {
	return fmt.Sprintf("%dTRI%d", year, quarterNumber)
}

// IndicatorDefinition documents a metric: display name, column, category and unit.
// It is informal metadata and is not linked to financial_indicators by a foreign key.
type IndicatorDefinition struct {
	ID          string    `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string    `gorm:"type:text;not null" json:"name"`
	FieldName   string    `gorm:"size:100;not null;index" json:"field_name"`
	Category    string    `gorm:"size:20;not null" json:"category"` // revenue, cash_flow, debt, liquidity, profitability, returns
	Unit        string    `gorm:"size:20;not null" json:"unit"`     // currency, percentage, ratio
	Description *string   `gorm:"type:text" json:"description,omitempty"`
	SQLColumn   string    `gorm:"column:sql_column;type:text;not null" json:"sql_column"`
	Categoria   *string   `gorm:"size:20" json:"categoria,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName specifies the table name for IndicatorDefinition
func (IndicatorDefinition) TableName() string {
	return "indicator_definitions"
}

// BeforeCreate assigns a UUID when the caller did not provide one
func (d *IndicatorDefinition) BeforeCreate(tx *gorm.DB) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	return nil
}
