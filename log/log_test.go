package log

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  Level
	}{
		{"trace", LevelTrace},
		{"TRACE", LevelTrace},
		{"debug", LevelDebug},
		{"info", LevelInfo},
		{"WARN", LevelWarn},
		{"error", LevelError},
		{"bogus", DefaultLevel},
		{"", DefaultLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			if got := ParseLevel(tt.input); got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v",
					tt.input, got, tt.want)
			}
		})
	}
}

func TestLevelString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		level Level
		want  string
	}{
		{LevelTrace, "trace"},
		{LevelDebug, "debug"},
		{LevelInfo, "info"},
		{LevelWarn, "warn"},
		{LevelError, "error"},
	}

	for _, tt := range tests {
		if got := tt.level.String(); got != tt.want {
			t.Errorf("Level(%d).String() = %q, want %q",
				tt.level, got, tt.want)
		}
	}
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  Format
	}{
		{"json", FormatJSON},
		{"JSON", FormatJSON},
		{" json ", FormatJSON},
		{"text", FormatText},
		{"anything", FormatText},
		{"", FormatText},
	}

	for _, tt := range tests {
		if got := ParseFormat(tt.input); got != tt.want {
			t.Errorf("ParseFormat(%q) = %v, want %v",
				tt.input, got, tt.want)
		}
	}
}

func TestLoggerLevelFiltering(t *testing.T) {
	t.Parallel()

	buf := new(bytes.Buffer)
	logger := Make(buf,
		WithFormat(FormatJSON),
		WithLevel(LevelWarn))

	logger.Info("dropped")
	logger.Warn("kept")

	out := buf.String()
	if strings.Contains(out, "dropped") {
		t.Errorf("info message logged below configured level: %q", out)
	}

	if !strings.Contains(out, "kept") {
		t.Errorf("warn message missing from output: %q", out)
	}
}

func TestLoggerJSONOutput(t *testing.T) {
	t.Parallel()

	buf := new(bytes.Buffer)
	logger := Make(buf,
		WithFormat(FormatJSON),
		WithLevel(LevelInfo),
		WithTimeLayout("none"))

	logger.Info("hello", "count", 3)

	var record map[string]any

	err := json.Unmarshal(buf.Bytes(), &record)
	if err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, buf.String())
	}

	if record["msg"] != "hello" {
		t.Errorf("msg = %v, want hello", record["msg"])
	}

	if record["count"] != float64(3) {
		t.Errorf("count = %v, want 3", record["count"])
	}

	if _, ok := record["time"]; ok {
		t.Error("time present despite layout \"none\"")
	}
}

func TestLoggerTraceLevelName(t *testing.T) {
	t.Parallel()

	buf := new(bytes.Buffer)
	logger := Make(buf,
		WithFormat(FormatJSON),
		WithLevel(LevelTrace),
		WithTimeLayout("none"))

	logger.Trace("deep")

	if !strings.Contains(buf.String(), `"level":"TRACE"`) {
		t.Errorf("trace record missing TRACE level: %q", buf.String())
	}
}

func TestConfigRebuildsHandler(t *testing.T) {
	t.Parallel()

	buf := new(bytes.Buffer)
	logger := Make(buf, WithFormat(FormatJSON))

	logger.Debug("before")

	if buf.Len() != 0 {
		t.Fatalf("debug logged at default level: %q", buf.String())
	}

	logger.Config(WithLevel(LevelDebug))
	logger.Debug("after")

	if !strings.Contains(buf.String(), "after") {
		t.Errorf("debug message missing after reconfigure: %q", buf.String())
	}

	if got := logger.Level(); got != LevelDebug {
		t.Errorf("Level() = %v, want %v", got, LevelDebug)
	}
}

func TestCloneDoesNotAffectOriginal(t *testing.T) {
	t.Parallel()

	buf := new(bytes.Buffer)
	logger := Make(buf, WithFormat(FormatJSON))

	clone := logger.Clone(WithLevel(LevelTrace))

	if logger.Level() != DefaultLevel {
		t.Errorf("original level changed to %v", logger.Level())
	}

	if clone.Level() != LevelTrace {
		t.Errorf("clone level = %v, want %v", clone.Level(), LevelTrace)
	}
}

func TestPrettyTextOutput(t *testing.T) {
	t.Parallel()

	buf := new(bytes.Buffer)
	logger := Make(buf,
		WithLevel(LevelInfo),
		WithTimeLayout("none"),
		WithPretty(true))

	logger.Info("lines written", "n", 2)

	out := buf.String()
	for _, want := range []string{"info", "lines written", "n=", "2"} {
		if !strings.Contains(out, want) {
			t.Errorf("pretty output missing %q: %q", want, out)
		}
	}
}
