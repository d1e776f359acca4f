package helpers

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/lib/pq"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// IndicatorTable is the table that receives new metric columns
const IndicatorTable = "financial_indicators"

var (
	nonAlnum   = regexp.MustCompile(`[^a-z0-9]`)
	underscore = regexp.MustCompile(`_+`)
	plainIdent = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)
)

// GenerateFieldName derives a column identifier from a display name:
// "Margem Líquida %" becomes "margem_liquida".
func GenerateFieldName(name string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)))
	s, _, err := transform.String(t, strings.ToLower(name))
	if err != nil {
		s = strings.ToLower(name)
	}
	s = nonAlnum.ReplaceAllString(s, "_")
	s = underscore.ReplaceAllString(s, "_")
	return strings.Trim(s, "_")
}

// IsPlainIdentifier reports whether field can be used in SQL without quoting
func IsPlainIdentifier(field string) bool {
	return plainIdent.MatchString(field)
}

// GenerateSQLColumn builds the column declaration of a metric.
// Currency metrics get DECIMAL(15,2), percentages and ratios DECIMAL(10,4).
func GenerateSQLColumn(field, unit string) string {
	dataType := "DECIMAL(10,4)"
	if unit == UnitCurrency {
		dataType = "DECIMAL(15,2)"
	}
	if !IsPlainIdentifier(field) {
		field = pq.QuoteIdentifier(field)
	}
	return fmt.Sprintf("%s %s", field, dataType)
}

// AlterTableStatement returns the statement that adds a column declaration to financial_indicators
func AlterTableStatement(sqlColumn string) string {
	return fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s;", IndicatorTable, sqlColumn)
}
