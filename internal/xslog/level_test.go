package xslog

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	go_json "github.com/goccy/go-json"
	"github.com/google/go-cmp/cmp"
)

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{in: "debug", want: LevelDebug},
		{in: "INFO", want: LevelInfo},
		{in: "Warn", want: LevelWarn},
		{in: "error", want: LevelError},
		{in: "trace", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			got, err := Parse(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Parse(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestLevel_ToSlog(t *testing.T) {
	t.Parallel()

	if got := LevelDebug.ToSlog(); got != slog.LevelDebug {
		t.Errorf("LevelDebug.ToSlog() = %v, want %v", got, slog.LevelDebug)
	}
	if got := Level("loud").ToSlog(); got != slog.LevelInfo {
		t.Errorf("unknown level ToSlog() = %v, want %v", got, slog.LevelInfo)
	}
}

func TestNewLogger_FiltersByLevel(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := NewLogger(&buf, LevelWarn)

	logger.Info("dropped")
	logger.Warn("kept", Zone("Endurance 2"), HeartRate(142))

	var entry map[string]any
	if err := go_json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("decode log line: %v (%q)", err, buf.String())
	}

	want := map[string]any{
		"msg":        "kept",
		"level":      "WARN",
		"zone":       "Endurance 2",
		"heart_rate": float64(142),
	}
	delete(entry, "time")
	if diff := cmp.Diff(want, entry); diff != "" {
		t.Errorf("log entry mismatch (-want +got):\n%s", diff)
	}
}

func TestFromContext(t *testing.T) {
	t.Parallel()

	if got := FromContext(context.Background()); got != slog.Default() {
		t.Error("FromContext(empty) should fall back to slog.Default()")
	}

	var buf bytes.Buffer
	ctx := WithLogger(t.Context(), NewLogger(&buf, LevelInfo).With(SessionID("s-1")))
	FromContext(ctx).Info("tick")

	var entry map[string]any
	if err := go_json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("decode log line: %v", err)
	}
	if entry["session_id"] != "s-1" {
		t.Errorf("session_id = %v, want s-1", entry["session_id"])
	}
}
