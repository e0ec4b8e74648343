package tui

import (
	"time"

	"github.com/garrettladley/pulse/internal/training"
)

const splashDuration = 1200 * time.Millisecond

type SplashTickMsg struct{}

type SnapshotMsg struct {
	Snapshot training.Snapshot
}

// SessionEndedMsg is sent once the snapshot stream is closed.
type SessionEndedMsg struct{}
