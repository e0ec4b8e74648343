package tui

import (
	"fmt"
	"image/color"
	"strconv"

	"charm.land/lipgloss/v2"

	"github.com/garrettladley/pulse/internal/hrv"
	"github.com/garrettladley/pulse/internal/sensor"
	"github.com/garrettladley/pulse/internal/tui/components/footer"
	"github.com/garrettladley/pulse/internal/tui/components/gauge"
	"github.com/garrettladley/pulse/internal/tui/components/status"
	"github.com/garrettladley/pulse/internal/tui/components/trace"
	"github.com/garrettladley/pulse/internal/tui/components/zones"
	"github.com/garrettladley/pulse/internal/tui/theme"
)

const (
	minGaugeHR   = 40.0
	maxGaugeHR   = 200.0
	maxGaugeHRV  = 100.0
	traceWidth   = 60
	traceHeight  = 5
	gaugeSpacing = "    "
)

func (m *Model) LiveView() string {
	var (
		header = m.headerView()
		gauges = m.gaugesView()
		chart  = trace.New(m.trace(), traceWidth, traceHeight, theme.ColorHeartRate).Render()
		table  = zones.Table{
			Seconds:   m.zoneSeconds(),
			Current:   m.zone(),
			RestZones: m.showRest,
		}.Render()
	)

	details := lipgloss.JoinHorizontal(
		lipgloss.Top,
		table,
		gaugeSpacing,
		m.statsView(),
	)

	return lipgloss.JoinVertical(
		lipgloss.Center,
		header,
		"",
		gauges,
		"",
		chart,
		"",
		details,
	)
}

func (m *Model) headerView() string {
	elapsed := "0:00"
	if m.snapshot != nil {
		elapsed = zones.FormatSeconds(int(m.snapshot.Elapsed.Seconds()))
	}

	at := "AT not set"
	if m.deps.AnaerobicThreshold > 0 {
		at = fmt.Sprintf("AT %.0f bpm", m.deps.AnaerobicThreshold)
	}

	zone := m.zone()
	zoneText := m.theme.Muted().Render("no zone yet")
	if zone != "" {
		zoneText = m.theme.Zone(zone).Render(zone.String())
	}

	muted := m.theme.Muted()
	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		m.theme.Base().Bold(true).Render(m.deps.UserID),
		muted.Render("  ·  "+at+"  ·  "),
		m.theme.Base().Render(elapsed),
		muted.Render("  ·  "),
		zoneText,
	)
}

func (m *Model) gaugesView() string {
	var hr, rmssd, pnn50 *float64
	if m.snapshot != nil {
		hr = m.snapshot.Summary.Current
		if m.snapshot.Record.RMSSD > 0 {
			v := m.snapshot.Record.RMSSD
			rmssd = &v
			p := m.snapshot.Record.PNN50
			pnn50 = &p
		}
	}

	hrMax := maxGaugeHR
	if at := m.deps.AnaerobicThreshold; at*1.2 > hrMax {
		hrMax = at * 1.2
	}

	var (
		hrGauge = gauge.New(hr, "HEART RATE", m.heartRateColor(),
			gauge.WithRange(minGaugeHR, hrMax),
			gauge.WithUnit("bpm"),
		)
		rmssdGauge = gauge.New(rmssd, "RMSSD", theme.ColorHRV,
			gauge.WithRange(0, maxGaugeHRV),
			gauge.WithUnit("ms"),
			gauge.WithFormat(oneDecimal),
		)
		pnn50Gauge = gauge.New(pnn50, "pNN50", theme.ColorTeal,
			gauge.WithUnit("%"),
		)
	)

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		hrGauge.Render(),
		gaugeSpacing,
		rmssdGauge.Render(),
		gaugeSpacing,
		pnn50Gauge.Render(),
	)
}

// heartRateColor follows the current zone, neutral before the first tick.
func (m *Model) heartRateColor() color.Color {
	if z := m.zone(); z != "" {
		return theme.ZoneColor(z)
	}
	return theme.ColorHeartRate
}

func (m *Model) statsView() string {
	var (
		label = m.theme.Muted().Width(10)
		value = m.theme.Base()
		rows  []string
	)
	row := func(name, v string) {
		rows = append(rows, label.Render(name)+value.Render(v))
	}

	if m.snapshot == nil {
		row("avg", "--")
		return lipgloss.JoinVertical(lipgloss.Left, rows...)
	}

	rec := m.snapshot.Record
	row("avg", formatBPM(m.snapshot.Summary.Avg))
	row("max", formatBPM(m.snapshot.Summary.Max))
	row("min", formatBPM(m.snapshot.Summary.Min))
	row("sdnn", oneDecimal(rec.SDNN)+" ms")
	row("lf/hf", formatRatio(rec.LFHFRatio))
	row("bands", fmt.Sprintf("%.0f/%.0f/%.0f", rec.VLFPower, rec.LFPower, rec.HFPower))
	row("kcal", oneDecimal(hrv.EstimateCalories(m.snapshot.Summary.Avg, m.snapshot.Elapsed)))
	row("samples", strconv.Itoa(m.snapshot.Samples))
	if m.snapshot.Reason != "" {
		row("ended", m.snapshot.Reason)
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m *Model) FooterView() string {
	var st sensor.State
	if m.snapshot != nil {
		st = m.snapshot.State
	}
	indicator := status.Indicator{State: st, Source: m.deps.Source}

	stopHint := footer.Hint{Key: "q", Desc: "stop"}
	if m.stopping && !m.ended {
		stopHint.Desc = "stopping..."
	}
	zoneHint := footer.Hint{Key: "tab", Desc: "rest zones"}
	if m.showRest {
		zoneHint.Desc = "hr zones"
	}
	helpHint := footer.Hint{Key: "?", Desc: "help"}
	if m.showHelp {
		helpHint.Desc = "back"
	}

	return footer.New(indicator.Render(), m.width, stopHint, zoneHint, helpHint).Render()
}

// HelpView lists the keys and, once a threshold is known, the heart rate
// each zone starts at.
func (m *Model) HelpView() string {
	title := m.theme.Title().Render("keys")
	keys := []string{
		"q / esc   stop the session and save it",
		"tab       switch between hr and rest zones",
		"?         toggle this help",
	}

	at := m.deps.AnaerobicThreshold
	if at <= 0 {
		return lipgloss.JoinVertical(lipgloss.Left,
			title, lipgloss.JoinVertical(lipgloss.Left, keys...), "",
			m.theme.Muted().Render("no anaerobic threshold set: every tick counts as Resting"),
		)
	}

	legend := []string{m.theme.Title().Render(fmt.Sprintf("zones at AT %.0f bpm", at))}
	for _, z := range hrv.HRZonesDescending() {
		floor, _ := hrv.HRZoneFloor(z, at)
		legend = append(legend, m.theme.Zone(z).Render(fmt.Sprintf("%-12s", z))+fmt.Sprintf(" from %.0f bpm", floor))
	}
	legend = append(legend, m.theme.Muted().Render(
		fmt.Sprintf("below %.0f bpm zones follow RMSSD", hrv.RestDispatchFloor(at)),
	))

	return lipgloss.JoinVertical(lipgloss.Left,
		title, lipgloss.JoinVertical(lipgloss.Left, keys...), "",
		lipgloss.JoinVertical(lipgloss.Left, legend...),
	)
}

func (m *Model) trace() []float64 {
	if m.snapshot == nil {
		return nil
	}
	return m.snapshot.Trace
}

func (m *Model) zoneSeconds() map[hrv.Zone]int {
	if m.snapshot == nil {
		return nil
	}
	return m.snapshot.Record.HRZonesTime
}

func (m *Model) zone() hrv.Zone {
	if m.snapshot == nil {
		return ""
	}
	return m.snapshot.Zone
}

func oneDecimal(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}

func formatBPM(v *float64) string {
	if v == nil {
		return "--"
	}
	return fmt.Sprintf("%.0f bpm", *v)
}

func formatRatio(v *float64) string {
	if v == nil {
		return "--"
	}
	return strconv.FormatFloat(*v, 'f', 2, 64)
}
