package config

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/garrettladley/pulse/internal/env"
	"github.com/garrettladley/pulse/internal/xerrors"
)

func TestReadFrom_Defaults(t *testing.T) {
	t.Parallel()

	got, err := ReadFrom(map[string]string{"STORE_BACKEND": "memory"})
	if err != nil {
		t.Fatalf("ReadFrom() error = %v", err)
	}

	want := Config{
		Env:              env.Development,
		LogLevel:         "info",
		StoreBackend:     BackendMemory,
		RedisURL:         "redis://localhost:6379/0",
		NATSURL:          "nats://127.0.0.1:4222",
		KafkaBrokers:     []string{"localhost:9092"},
		ZoneTickInterval: time.Second,
		SensorDevice:     "default",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestReadFrom_Overrides(t *testing.T) {
	t.Parallel()

	got, err := ReadFrom(map[string]string{
		"PULSE_ENV":              "production",
		"STORE_BACKEND":          "sqlite",
		"SQLITE_PATH":            "/tmp/pulse.db",
		"ZONE_TICK_INTERVAL":     "250ms",
		"ANAEROBIC_THRESHOLD_HR": "172.5",
		"SENSOR_DEVICE":          "strap-1",
		"KAFKA_BROKERS":          "kafka-1:9092,kafka-2:9092",
	})
	if err != nil {
		t.Fatalf("ReadFrom() error = %v", err)
	}
	if !got.Env.IsProduction() {
		t.Errorf("Env = %q, want production", got.Env)
	}
	if got.SQLitePath != "/tmp/pulse.db" {
		t.Errorf("SQLitePath = %q", got.SQLitePath)
	}
	if got.ZoneTickInterval != 250*time.Millisecond {
		t.Errorf("ZoneTickInterval = %v", got.ZoneTickInterval)
	}
	if got.AnaerobicThresholdHR != 172.5 {
		t.Errorf("AnaerobicThresholdHR = %v", got.AnaerobicThresholdHR)
	}
	if diff := cmp.Diff([]string{"kafka-1:9092", "kafka-2:9092"}, got.KafkaBrokers); diff != "" {
		t.Errorf("KafkaBrokers mismatch (-want +got):\n%s", diff)
	}
}

func TestReadFrom_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		vars      map[string]string
		wantField string
	}{
		{
			name:      "unknown backend",
			vars:      map[string]string{"STORE_BACKEND": "dynamo"},
			wantField: "STORE_BACKEND",
		},
		{
			name:      "postgres without url",
			vars:      map[string]string{"STORE_BACKEND": "postgres"},
			wantField: "DATABASE_URL",
		},
		{
			name:      "negative threshold",
			vars:      map[string]string{"STORE_BACKEND": "memory", "ANAEROBIC_THRESHOLD_HR": "-5"},
			wantField: "ANAEROBIC_THRESHOLD_HR",
		},
		{
			name:      "bad log level",
			vars:      map[string]string{"STORE_BACKEND": "memory", "LOG_LEVEL": "loud"},
			wantField: "LOG_LEVEL",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := ReadFrom(tt.vars)
			e := xerrors.As(err)
			if e == nil || e.Validation == nil {
				t.Fatalf("ReadFrom() error = %v, want validation error", err)
			}
			if _, ok := e.Validation.Fields[tt.wantField]; !ok {
				t.Errorf("fields = %v, want %s", e.Validation.Fields, tt.wantField)
			}
		})
	}
}

func TestReadFrom_BadEnvironment(t *testing.T) {
	t.Parallel()

	if _, err := ReadFrom(map[string]string{"PULSE_ENV": "staging", "STORE_BACKEND": "memory"}); err == nil {
		t.Error("ReadFrom() error = nil, want error for unknown environment")
	}
}
