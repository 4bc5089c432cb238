package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"":        slog.LevelInfo,
		"DEBUG":   slog.LevelDebug,
		"warning": slog.LevelWarn,
		" error ": slog.LevelError,
		"verbose": slog.LevelInfo,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestNew(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, slog.LevelInfo, "json").Info("Bill created", "invoice", "INV-20250105-0001")
	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("json output expected: %v", err)
	}
	if rec["invoice"] != "INV-20250105-0001" {
		t.Errorf("invoice = %v", rec["invoice"])
	}

	buf.Reset()
	New(&buf, slog.LevelWarn, "").Info("dropped")
	if buf.Len() != 0 {
		t.Errorf("info should be filtered at warn level, got %q", buf.String())
	}
	New(&buf, slog.LevelWarn, "").Warn("Negative stock", "item", "i1")
	if !strings.Contains(buf.String(), "Negative stock") {
		t.Errorf("warn missing from %q", buf.String())
	}
}
