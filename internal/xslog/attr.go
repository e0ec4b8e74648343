package xslog

import (
	"log/slog"
	"runtime/debug"
	"time"

	"github.com/garrettladley/pulse/internal/version"
)

const (
	keyError = "error"
)

func Error(err error) slog.Attr {
	return slog.String(keyError, err.Error())
}

func ErrorAny(err any) slog.Attr {
	return slog.Any(keyError, err)
}

func Stack() slog.Attr {
	const stackKey = "stack"
	return slog.String(stackKey, string(debug.Stack()))
}

func Duration(duration time.Duration) slog.Attr {
	const durationKey = "duration"
	return slog.Duration(durationKey, duration)
}

func Version() slog.Attr {
	const versionKey = "version"
	return slog.String(versionKey, version.Get())
}

func Count(count int) slog.Attr {
	const countKey = "count"
	return slog.Int(countKey, count)
}

func Start(t time.Time) slog.Attr {
	const startKey = "start"
	return slog.Time(startKey, t)
}

func SessionID(id string) slog.Attr {
	const sessionIDKey = "session_id"
	return slog.String(sessionIDKey, id)
}

func RecordID(id string) slog.Attr {
	const recordIDKey = "record_id"
	return slog.String(recordIDKey, id)
}

func UserID(id string) slog.Attr {
	const userIDKey = "user_id"
	return slog.String(userIDKey, id)
}

func Zone(zone string) slog.Attr {
	const zoneKey = "zone"
	return slog.String(zoneKey, zone)
}

func HeartRate(bpm float64) slog.Attr {
	const heartRateKey = "heart_rate"
	return slog.Float64(heartRateKey, bpm)
}

func SensorState(state string) slog.Attr {
	const stateKey = "sensor_state"
	return slog.String(stateKey, state)
}

func Source(name string) slog.Attr {
	const sourceKey = "source"
	return slog.String(sourceKey, name)
}

func Backend(name string) slog.Attr {
	const backendKey = "backend"
	return slog.String(backendKey, name)
}

func Migration(name string) slog.Attr {
	const migrationKey = "migration"
	return slog.String(migrationKey, name)
}
