package api

import (
	"strings"

	"finboard/database"
	"finboard/helpers"
	"finboard/indicators"

	"github.com/go-playground/validator/v10"
)

// CompanyRequest is the body of company create and update
type CompanyRequest struct {
	Nome      string  `json:"nome" validate:"required,max=200"`
	Ticker    string  `json:"ticker" validate:"required,max=16"`
	LinkRI    *string `json:"link_ri" validate:"omitempty,url"`
	Categoria *string `json:"categoria" validate:"omitempty,oneof=Industria Financas"`
}

func (req *CompanyRequest) toModel(id string) *database.Company {
	c := &database.Company{
		ID:        id,
		Nome:      strings.TrimSpace(req.Nome),
		Ticker:    strings.ToUpper(strings.TrimSpace(req.Ticker)),
		Categoria: req.Categoria,
	}
	if req.LinkRI != nil && strings.TrimSpace(*req.LinkRI) != "" {
		link := strings.TrimSpace(*req.LinkRI)
		c.LinkRI = &link
	}
	return c
}

// QuarterRequest is the body of quarterly record create and update.
// Values is keyed by metric field; absent or null entries are stored as missing.
type QuarterRequest struct {
	Year          int                 `json:"year" validate:"required,min=1900,max=2999"`
	QuarterNumber int                 `json:"quarter_number" validate:"required,min=1,max=4"`
	Quarter       string              `json:"quarter" validate:"omitempty,max=16"`
	Values        map[string]*float64 `json:"values" validate:"omitempty,dive,keys,metric_field,endkeys"`
}

func (req *QuarterRequest) toModel(id, companyID string) *database.FinancialIndicator {
	record := &database.FinancialIndicator{
		ID:            id,
		CompanyID:     companyID,
		Year:          req.Year,
		QuarterNumber: req.QuarterNumber,
		Quarter:       req.Quarter,
	}
	for field, v := range req.Values {
		record.SetMetric(field, v)
	}
	return record
}

// DefinitionRequest is the body of indicator definition create and update.
// FieldName is derived from Name when empty.
type DefinitionRequest struct {
	Name        string  `json:"name" validate:"required,max=200"`
	FieldName   string  `json:"field_name" validate:"omitempty,max=100"`
	Category    string  `json:"category" validate:"required,metric_category"`
	Unit        string  `json:"unit" validate:"required,metric_unit"`
	Description *string `json:"description"`
	Categoria   *string `json:"categoria" validate:"omitempty,oneof=Industria Financas"`
}

func (req *DefinitionRequest) toModel(id string) *database.IndicatorDefinition {
	field := strings.TrimSpace(req.FieldName)
	if field == "" {
		field = helpers.GenerateFieldName(req.Name)
	}
	return &database.IndicatorDefinition{
		ID:          id,
		Name:        strings.TrimSpace(req.Name),
		FieldName:   field,
		Category:    req.Category,
		Unit:        req.Unit,
		Description: req.Description,
		SQLColumn:   helpers.GenerateSQLColumn(field, req.Unit),
		Categoria:   req.Categoria,
	}
}

// validateMetricField accepts the metric columns known to the registry
func validateMetricField(fl validator.FieldLevel) bool {
	_, ok := indicators.Lookup(fl.Field().String())
	return ok
}

// validateMetricUnit accepts the display units of the registry
func validateMetricUnit(fl validator.FieldLevel) bool {
	_, err := indicators.ParseUnit(fl.Field().String())
	return err == nil
}

// validateMetricCategory accepts the dashboard sections of the registry
func validateMetricCategory(fl validator.FieldLevel) bool {
	_, err := indicators.ParseCategory(fl.Field().String())
	return err == nil
}
