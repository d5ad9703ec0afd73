package apiexception

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestSetLogLevel(t *testing.T) {
	orig := zerolog.GlobalLevel()
	t.Cleanup(func() { zerolog.SetGlobalLevel(orig) })

	cases := map[string]zerolog.Level{
		"debug":   zerolog.DebugLevel,
		"info":    zerolog.InfoLevel,
		"WARN":    zerolog.WarnLevel,
		"warning": zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
		"fatal":   zerolog.FatalLevel,
		"panic":   zerolog.PanicLevel,
		"":        zerolog.InfoLevel,
	}
	for in, want := range cases {
		if err := SetLogLevel(in); err != nil {
			t.Fatalf("%q: %v", in, err)
		}
		if got := zerolog.GlobalLevel(); got != want {
			t.Fatalf("%q: level=%s want %s", in, got, want)
		}
	}

	if err := SetLogLevel("verbose"); err == nil {
		t.Fatal("expected error for unknown level")
	}
}

func TestNewLogger_FileSink(t *testing.T) {
	path := filepath.Join(t.TempDir(), "api_errors.log")

	lg, err := NewLogger("info", false, path)
	if err != nil {
		t.Fatalf("NewLogger: %v", err)
	}
	lg.Error().Str("event", "test_sink").Msg("written to file")

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(raw), `"event":"test_sink"`) {
		t.Fatalf("file content: %s", raw)
	}
}

func TestNewLogger_LevelFiltering(t *testing.T) {
	path := filepath.Join(t.TempDir(), "filtered.log")

	lg, err := NewLogger("error", false, path)
	if err != nil {
		t.Fatalf("NewLogger: %v", err)
	}
	lg.Info().Msg("below threshold")

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if len(raw) != 0 {
		t.Fatalf("expected empty file, got: %s", raw)
	}
}

func TestNewLogger_BadLevel(t *testing.T) {
	if _, err := NewLogger("loud", false, ""); err == nil {
		t.Fatal("expected error for bad level")
	}
}
