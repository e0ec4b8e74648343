package tui

import (
	"log/slog"

	"github.com/garrettladley/pulse/internal/training"
)

type Deps struct {
	Logger    *slog.Logger
	Snapshots <-chan training.Snapshot
	// Stop ends the running session; the final snapshot follows.
	Stop               func()
	UserID             string
	Source             string
	AnaerobicThreshold float64
}
