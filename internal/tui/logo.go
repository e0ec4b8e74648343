package tui

import "github.com/garrettladley/pulse/internal/tui/theme"

const Logo = `
 ▄▄▄▄▄▄    ▄▄    ▄▄  ▄▄         ▄▄▄▄▄▄   ▄▄▄▄▄▄▄▄
 ██▀▀▀█▄   ██    ██  ██        ██▀▀▀▀▀   ██▀▀▀▀▀▀
 ██    ██  ██    ██  ██        ▀██▄▄▄    ██▄▄▄▄
 ██████▀   ██    ██  ██           ▀▀▀██  ██▀▀▀▀
 ██        ▀██▄▄██▀  ██▄▄▄▄▄▄  ▄▄▄▄▄██   ██▄▄▄▄▄▄
 ▀▀          ▀▀▀▀    ▀▀▀▀▀▀▀▀  ▀▀▀▀▀▀    ▀▀▀▀▀▀▀▀`

func (m *Model) LogoView() string {
	return m.theme.Base().Foreground(theme.ColorHeartRate).Render(Logo)
}
