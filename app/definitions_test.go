package app

import (
	"strings"
	"testing"

	"finboard/config"
	"finboard/helpers"
	"finboard/indicators"

	"github.com/rs/zerolog"
)

func TestDefaultDefinitions(t *testing.T) {
	defs := DefaultDefinitions()
	if len(defs) != len(indicators.All()) {
		t.Fatalf("expected one definition per metric, got %d", len(defs))
	}

	seen := map[string]bool{}
	for _, d := range defs {
		if seen[d.FieldName] {
			t.Errorf("duplicate field %s", d.FieldName)
		}
		seen[d.FieldName] = true

		if _, ok := indicators.Lookup(d.FieldName); !ok {
			t.Errorf("definition %s is not a registry metric", d.FieldName)
		}
		if d.Name == "" || d.ID != "" || d.Categoria != nil {
			t.Errorf("unexpected definition %+v", d)
		}

		wantType := "DECIMAL(10,4)"
		if d.Unit == helpers.UnitCurrency {
			wantType = "DECIMAL(15,2)"
		}
		if !strings.HasSuffix(d.SQLColumn, wantType) {
			t.Errorf("%s: sql column %q should end with %s", d.FieldName, d.SQLColumn, wantType)
		}
	}
}

func TestSetupLogging(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.GlobalLevel())

	SetupLogging(&config.Config{LogLevel: "warn"})
	if zerolog.GlobalLevel() != zerolog.WarnLevel {
		t.Errorf("expected warn level, got %s", zerolog.GlobalLevel())
	}

	SetupLogging(&config.Config{LogLevel: "bogus"})
	if zerolog.GlobalLevel() != zerolog.InfoLevel {
		t.Errorf("unknown level should fall back to info, got %s", zerolog.GlobalLevel())
	}
}
