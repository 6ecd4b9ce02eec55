package logger

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		wantNil bool
	}{
		{in: "debug"},
		{in: "info"},
		{in: "warn"},
		{in: "error"},
		{in: "verbose", wantNil: true},
		{in: "", wantNil: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := parseLevel(tt.in)
			if (got == nil) != tt.wantNil {
				t.Errorf("parseLevel(%q) = %v, wantNil %v", tt.in, got, tt.wantNil)
			}
		})
	}
}

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bark.log")

	log, err := New("info", false, path)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	log.With(String("run_id", "abc")).Info("imported", Int("count", 3), Error(errors.New("boom")))
	log.Debug("hidden at info level")
	_ = log.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	out := string(data)
	if !strings.Contains(out, `"run_id":"abc"`) || !strings.Contains(out, `"count":3`) {
		t.Errorf("Expected structured fields in output, got %s", out)
	}
	if strings.Contains(out, "hidden at info level") {
		t.Error("Expected debug message to be filtered")
	}
}

func TestNop(t *testing.T) {
	log := Nop()
	log.Info("nothing")
	log.With(Bool("k", true)).Warn("nothing")
}
