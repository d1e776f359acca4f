package helpers

import (
	"math"
	"testing"
)

func floatPtr(v float64) *float64 {
	return &v
}

func TestFormatValue(t *testing.T) {
	f := DefaultFormatter()

	tests := []struct {
		name  string
		value *float64
		unit  string
		want  string
	}{
		{"currency groups thousands", floatPtr(1234567.89), UnitCurrency, "R$ 1.234.568"},
		{"currency small", floatPtr(999), UnitCurrency, "R$ 999"},
		{"currency zero is not missing", floatPtr(0), UnitCurrency, "R$ 0"},
		{"currency negative", floatPtr(-1500), UnitCurrency, "-R$ 1.500"},
		{"percentage", floatPtr(12.345), UnitPercentage, "12.35%"},
		{"percentage zero", floatPtr(0), UnitPercentage, "0.00%"},
		{"ratio", floatPtr(2.5), UnitRatio, "2.50"},
		{"nil", nil, UnitCurrency, NotApplicable},
		{"nil ratio", nil, UnitRatio, NotApplicable},
		{"NaN", floatPtr(math.NaN()), UnitPercentage, NotApplicable},
		{"Inf", floatPtr(math.Inf(1)), UnitCurrency, NotApplicable},
		{"currency beyond int64", floatPtr(1e20), UnitCurrency, NotApplicable},
		{"negative currency beyond int64", floatPtr(-1e20), UnitCurrency, NotApplicable},
		{"currency near int64 limit", floatPtr(9e18), UnitCurrency, "R$ 9.000.000.000.000.000.000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := f.FormatValue(tt.value, tt.unit); got != tt.want {
				t.Errorf("FormatValue() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatAxis(t *testing.T) {
	f := DefaultFormatter()

	tests := []struct {
		value float64
		unit  string
		want  string
	}{
		{1_500_000_000, UnitCurrency, "1.5B"},
		{2_300_000, UnitCurrency, "2.3M"},
		{45_000, UnitCurrency, "45.0K"},
		{1_000, UnitCurrency, "1.0K"},
		{999, UnitCurrency, "R$ 999"},
		{12.5, UnitPercentage, "12.50%"},
		{1_500_000, UnitRatio, "1500000.00"},
	}

	for _, tt := range tests {
		if got := f.FormatAxis(&tt.value, tt.unit); got != tt.want {
			t.Errorf("FormatAxis(%v, %s) = %q, want %q", tt.value, tt.unit, got, tt.want)
		}
	}

	if got := f.FormatAxis(nil, UnitCurrency); got != NotApplicable {
		t.Errorf("FormatAxis(nil) = %q", got)
	}
}

func TestFormatMillions(t *testing.T) {
	f := DefaultFormatter()

	if got := f.FormatMillions(floatPtr(0)); got != "R$ 0" {
		t.Errorf("zero: got %q", got)
	}
	if got := f.FormatMillions(floatPtr(1_500_000)); got != "R$ 1,5 milhões" {
		t.Errorf("1.5M: got %q", got)
	}
	if got := f.FormatMillions(nil); got != NotApplicable {
		t.Errorf("nil: got %q", got)
	}
}

func TestFormatComparison(t *testing.T) {
	f := DefaultFormatter()

	if got := f.FormatComparison(floatPtr(2_500_000), UnitCurrency); got != "2.5 milhões" {
		t.Errorf("currency: got %q", got)
	}
	if got := f.FormatComparison(floatPtr(-1_240_000), UnitCurrency); got != "-1.2 milhões" {
		t.Errorf("negative currency: got %q", got)
	}
	if got := f.FormatComparison(floatPtr(1.234), UnitRatio); got != "1.23" {
		t.Errorf("ratio: got %q", got)
	}
}

func TestFormatChange(t *testing.T) {
	tests := []struct {
		change *float64
		want   string
	}{
		{floatPtr(12.34), "+12.3%"},
		{floatPtr(-5), "-5.0%"},
		{floatPtr(0), "0.0%"},
		{nil, NotApplicable},
	}
	for _, tt := range tests {
		if got := FormatChange(tt.change); got != tt.want {
			t.Errorf("FormatChange(%v) = %q, want %q", tt.change, got, tt.want)
		}
	}
}

func TestNewFormatterRejectsUnknownCurrency(t *testing.T) {
	if _, err := NewFormatter("XXX1", "pt-BR"); err == nil {
		t.Error("expected error for unknown currency")
	}
	if _, err := NewFormatter("BRL", "not a locale!"); err == nil {
		t.Error("expected error for invalid locale")
	}
}
