package app

import (
	"finboard/database"
	"finboard/helpers"
	"finboard/indicators"
)

// DefaultDefinitions describes every registry metric as an indicator definition.
// They document the built-in columns, so the generated SQL is informational only.
func DefaultDefinitions() []database.IndicatorDefinition {
	metrics := indicators.All()
	defs := make([]database.IndicatorDefinition, 0, len(metrics))
	for _, m := range metrics {
		defs = append(defs, database.IndicatorDefinition{
			Name:      m.Title,
			FieldName: m.Field,
			Category:  string(m.Category),
			Unit:      string(m.Unit),
			SQLColumn: helpers.GenerateSQLColumn(m.Field, string(m.Unit)),
		})
	}
	return defs
}
