package app

import (
	"strings"
	"testing"

	"finboard/config"
)

func TestStartRejectsDisplaySettingsBeforeConnecting(t *testing.T) {
	cfg := &config.Config{
		LogLevel:     "error",
		DatabasePort: "not a port",
		Display:      config.DisplayConfig{Currency: "XXX1", Locale: "pt-BR"},
	}

	a := New(cfg)
	err := a.Start()
	if err == nil || !strings.Contains(err.Error(), "invalid display settings") {
		t.Fatalf("expected display settings error, got %v", err)
	}
	if a.db != nil || a.redis != nil {
		t.Error("nothing should be opened when the display settings are invalid")
	}
}
