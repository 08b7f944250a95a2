package logger

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]zerolog.Level{
		"trace":   zerolog.TraceLevel,
		"debug":   zerolog.DebugLevel,
		"info":    zerolog.InfoLevel,
		"warn":    zerolog.WarnLevel,
		"warning": zerolog.WarnLevel,
		"ERROR":   zerolog.ErrorLevel,
		" info ":  zerolog.InfoLevel,
		"":        zerolog.InfoLevel,
		"bogus":   zerolog.InfoLevel,
	}
	for in, want := range cases {
		if got := parseLevel(in); got != want {
			t.Fatalf("parseLevel(%q): expected %v, got %v", in, want, got)
		}
	}
}

func TestInitAndGet(t *testing.T) {
	Reset()
	defer Reset()

	var buf bytes.Buffer
	log := Init(Options{Level: "debug", Output: &buf})
	log.Info().Str("component", "test").Msg("hello")

	if !strings.Contains(buf.String(), `"hello"`) {
		t.Fatalf("expected log output, got %q", buf.String())
	}

	// Subsequent Init calls must not rebuild the logger.
	var other bytes.Buffer
	Init(Options{Level: "error", Output: &other})
	got := Get()
	got.Info().Msg("again")
	if other.Len() != 0 {
		t.Fatalf("second Init replaced the singleton")
	}
}

func TestGetBeforeInitPanics(t *testing.T) {
	Reset()
	defer Reset()

	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic from Get before Init")
		}
	}()
	Get()
}
