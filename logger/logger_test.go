package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func jsonLogger(buf *bytes.Buffer, level string) *Logger {
	return NewWithWriter(&Config{Level: level, Format: FormatJSON}, buf, "voicelist")
}

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]interface{} {
	t.Helper()
	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not a JSON line: %v (%s)", err, buf.String())
	}
	return entry
}

func TestJSONOutputCarriesFields(t *testing.T) {
	var buf bytes.Buffer
	jsonLogger(&buf, "debug").WithComponent("transcription").
		Warn("upstream slow", Fields(FieldProvider, "groq", FieldDuration, 1200))

	entry := decodeLine(t, &buf)
	want := map[string]interface{}{
		"level":        "warn",
		"message":      "upstream slow",
		FieldComponent: "transcription",
		FieldProvider:  "groq",
		FieldDuration:  float64(1200),
	}
	for k, v := range want {
		if entry[k] != v {
			t.Errorf("%s = %v, want %v", k, entry[k], v)
		}
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := jsonLogger(&buf, "warn")
	l.Debug("hidden")
	l.Info("hidden")
	if buf.Len() != 0 {
		t.Errorf("below-level lines were written: %s", buf.String())
	}
	l.Error("shown")
	if !strings.Contains(buf.String(), `"shown"`) {
		t.Errorf("error line missing: %s", buf.String())
	}
}

func TestUnknownLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	l := jsonLogger(&buf, "loud")
	l.Debug("hidden")
	l.Info("shown")
	if strings.Contains(buf.String(), "hidden") || !strings.Contains(buf.String(), "shown") {
		t.Errorf("output = %s, want info level", buf.String())
	}
}

func TestWithContext(t *testing.T) {
	var buf bytes.Buffer
	l := jsonLogger(&buf, "info")

	if l.WithContext(context.Background()) != l {
		t.Error("WithContext without a request ID should return the same logger")
	}

	ctx := ContextWithRequestID(context.Background(), "req-42")
	l.WithContext(ctx).Info("handled")
	if entry := decodeLine(t, &buf); entry[FieldRequestID] != "req-42" {
		t.Errorf("request_id = %v, want req-42", entry[FieldRequestID])
	}
	if got := RequestIDFromContext(ctx); got != "req-42" {
		t.Errorf("RequestIDFromContext() = %q, want req-42", got)
	}
}

func TestWithFieldsAndError(t *testing.T) {
	var buf bytes.Buffer
	jsonLogger(&buf, "info").
		WithFields(Fields(FieldFileName, "list.mp3")).
		WithError(errors.New("boom")).
		Error("failed")

	entry := decodeLine(t, &buf)
	if entry[FieldFileName] != "list.mp3" || entry[FieldError] != "boom" {
		t.Errorf("entry = %v", entry)
	}
}

func TestConsoleFormat(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&Config{Level: "info", Format: FormatConsole, NoColor: true}, &buf, "voicelist")
	l.Info("spool ready", Fields("path", "/tmp/voicelist"))

	out := buf.String()
	for _, want := range []string{"[VOI][INF]", "spool ready", "path:/tmp/voicelist"} {
		if !strings.Contains(out, want) {
			t.Errorf("console output %q missing %q", out, want)
		}
	}
}

func TestGlobalLogger(t *testing.T) {
	globalLogger = nil
	if GetGlobalLogger() == nil {
		t.Fatal("GetGlobalLogger() should create a default logger")
	}

	var buf bytes.Buffer
	custom := jsonLogger(&buf, "debug")
	SetGlobalLogger(custom)
	t.Cleanup(func() { globalLogger = nil })

	Debug("d")
	Info("i")
	Warn("w")
	Error("e")
	WithComponent("server").Info("component")
	WithContext(ContextWithRequestID(context.Background(), "r1")).Info("ctx")

	if lines := strings.Count(buf.String(), "\n"); lines != 6 {
		t.Errorf("wrote %d lines, want 6: %s", lines, buf.String())
	}
}

func TestInitAppliesDefaults(t *testing.T) {
	cfg := Config{Format: FormatConsole, NoColor: true}
	Init(&cfg)
	t.Cleanup(func() { globalLogger = nil })

	if cfg.Level != "info" || cfg.Output != "stdout" || !cfg.Timestamp {
		t.Errorf("cfg after Init = %+v", cfg)
	}
	if GetGlobalLogger() == nil {
		t.Error("Init should install a global logger")
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{"json stdout", Config{Level: "info", Format: "json", Output: "stdout"}, ""},
		{"console stderr", Config{Level: "debug", Format: "console", Output: "stderr"}, ""},
		{"bad level", Config{Level: "loud", Format: "json", Output: "stdout"}, "logging.level"},
		{"bad format", Config{Level: "info", Format: "xml", Output: "stdout"}, "logging.format"},
		{"bad output", Config{Level: "info", Format: "json", Output: "file"}, "logging.output"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if tc.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() error = %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("Validate() error = %v, want mention of %s", err, tc.wantErr)
			}
		})
	}
}

func TestFields(t *testing.T) {
	tests := []struct {
		name string
		in   []interface{}
		want map[string]interface{}
	}{
		{"pairs", []interface{}{"op", "transcribe", "items", 3}, map[string]interface{}{"op": "transcribe", "items": 3}},
		{"dangling key", []interface{}{"op", "extract", "trailing"}, map[string]interface{}{"op": "extract"}},
		{"non-string key", []interface{}{7, "x", "k", "v"}, map[string]interface{}{"k": "v"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Fields(tc.in...)
			if len(got) != len(tc.want) {
				t.Fatalf("Fields() = %v, want %v", got, tc.want)
			}
			for k, v := range tc.want {
				if got[k] != v {
					t.Errorf("Fields()[%q] = %v, want %v", k, got[k], v)
				}
			}
		})
	}
}

func TestMergeWithError(t *testing.T) {
	if got := MergeWithError(nil, errors.New("x")); got[FieldError] != "x" {
		t.Errorf("MergeWithError(nil) = %v", got)
	}
	fields := Fields(FieldProvider, "gemini")
	MergeWithError(fields, errors.New("quota"))
	if fields[FieldError] != "quota" || fields[FieldProvider] != "gemini" {
		t.Errorf("fields = %v", fields)
	}
}
