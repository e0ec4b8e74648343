package tui

import (
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/garrettladley/pulse/internal/training"
)

func splashTickCmd() tea.Cmd {
	return tea.Tick(splashDuration, func(time.Time) tea.Msg {
		return SplashTickMsg{}
	})
}

// listenSnapshotsCmd waits for the next session snapshot. It must be
// re-issued after each SnapshotMsg to keep listening.
func listenSnapshotsCmd(snapshots <-chan training.Snapshot) tea.Cmd {
	return func() tea.Msg {
		snap, ok := <-snapshots
		if !ok {
			return SessionEndedMsg{}
		}
		return SnapshotMsg{Snapshot: snap}
	}
}
