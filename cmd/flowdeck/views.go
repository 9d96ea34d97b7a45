package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"flowdeck/internal/console"
)

// --- Styles ---

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7C3AED")).
			Background(lipgloss.Color("#1E1E2E")).
			Padding(0, 1)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#313244")).
			Padding(0, 1)

	cardLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C7086"))

	cardValueStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#CDD6F4"))

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#89B4FA"))

	stepActiveStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#1E1E2E")).
			Background(lipgloss.Color("#A6E3A1")).
			Padding(0, 1)

	stepIdleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C7086")).
			Background(lipgloss.Color("#313244")).
			Padding(0, 1)

	stepSelectedStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#CDD6F4")).
				Background(lipgloss.Color("#7C3AED")).
				Padding(0, 1)

	logInfoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A6E3A1"))

	logAIStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#89B4FA"))

	logErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#F38BA8"))

	gaugeFillStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAB387"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C7086"))

	spinnerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F9E2AF"))

	statusBarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#CDD6F4")).
			Background(lipgloss.Color("#1E1E2E"))
)

// --- View rendering ---

func (m uiModel) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	var b strings.Builder

	b.WriteString(m.renderTitleBar())
	b.WriteRune('\n')
	b.WriteRune('\n')

	b.WriteString(m.renderMetricCards())
	b.WriteRune('\n')

	b.WriteString(m.renderWorkflowStrip())
	b.WriteRune('\n')
	b.WriteRune('\n')

	if m.snap.Selected != nil {
		b.WriteString(m.renderStepDetail(*m.snap.Selected))
		b.WriteRune('\n')
	}

	b.WriteString(m.renderLog())

	content := truncateLines(b.String(), m.width)

	var out strings.Builder
	out.WriteString(content)

	// Pad to fill screen.
	rendered := strings.Count(content, "\n")
	for rendered < m.height-2 {
		out.WriteRune('\n')
		rendered++
	}

	// Help / status bar.
	if m.showHelp {
		out.WriteString(m.help.View(keys))
	} else {
		out.WriteString(m.renderStatusBar())
	}

	return out.String()
}

func (m uiModel) renderTitleBar() string {
	title := titleStyle.Render("flowdeck // content ops")
	stats := dimStyle.Render(fmt.Sprintf(
		"%d views | %d ticks | %d log lines",
		m.snap.Metrics.Views,
		m.snap.Ticks,
		len(m.snap.Log),
	))
	gap := strings.Repeat(" ", max(0, m.width-lipgloss.Width(title)-lipgloss.Width(stats)-2))
	return title + gap + stats
}

func (m uiModel) renderMetricCards() string {
	met := m.snap.Metrics
	cards := []string{
		metricCard("CPU LOAD", fmt.Sprintf("%5.1f%%", met.CPULoad), gauge(met.CPULoad, 0, 100, 12)),
		metricCard("FLOW VEL", fmt.Sprintf("%.0f u/s", met.FlowVelocity), gauge(met.FlowVelocity, 100, 2000, 12)),
		metricCard("VIEWS", fmt.Sprintf("%d", met.Views), dimStyle.Render("cumulative")),
		metricCard("CONV RATE", fmt.Sprintf("%.2f%%", met.ConversionRate), dimStyle.Render("rolling")),
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}

func metricCard(label, value, footer string) string {
	body := lipgloss.JoinVertical(lipgloss.Left,
		cardLabelStyle.Render(label),
		cardValueStyle.Render(value),
		footer,
	)
	return cardStyle.Render(body)
}

// gauge renders a fixed-width bar proportional to v inside [lo, hi].
func gauge(v, lo, hi float64, width int) string {
	frac := (v - lo) / (hi - lo)
	if frac < 0 {
		frac = 0
	}
	if frac > 1 {
		frac = 1
	}
	filled := int(frac*float64(width) + 0.5)
	return gaugeFillStyle.Render(strings.Repeat("█", filled)) +
		dimStyle.Render(strings.Repeat("░", width-filled))
}

func (m uiModel) renderWorkflowStrip() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Workflow"))
	b.WriteRune('\n')

	selectedID := ""
	if m.snap.Selected != nil {
		selectedID = m.snap.Selected.ID
	}

	var cells []string
	for i, s := range console.Steps() {
		label := fmt.Sprintf("%d:%s", i+1, s.Label)
		switch {
		case s.ID == selectedID:
			cells = append(cells, stepSelectedStyle.Render(label))
		case i == m.snap.ActiveStep:
			cells = append(cells, stepActiveStyle.Render(label))
		default:
			cells = append(cells, stepIdleStyle.Render(label))
		}
	}
	b.WriteString(strings.Join(cells, dimStyle.Render(" → ")))
	b.WriteRune('\n')

	active := console.Steps()[m.snap.ActiveStep]
	b.WriteString(dimStyle.Render("  " + active.Subtext))
	return b.String()
}

func (m uiModel) renderStepDetail(s console.Step) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Step Detail: " + s.Label))
	b.WriteRune('\n')
	b.WriteString(dimStyle.Render(fmt.Sprintf("  %s | %s", s.ID, s.Subtext)))
	b.WriteRune('\n')
	b.WriteString(fmt.Sprintf("  est %s | alloc %s | threads %d | %s",
		s.Detail.EstTime, s.Detail.Allocation, s.Detail.Threads, s.Detail.Status))
	b.WriteRune('\n')
	return b.String()
}

func (m uiModel) renderLog() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Ops Log"))
	b.WriteRune('\n')

	for _, e := range m.snap.Log {
		ts := dimStyle.Render(e.At.Format("15:04:05"))
		var line string
		switch e.Kind {
		case console.KindAI:
			line = logAIStyle.Render("AI  " + e.Text)
		case console.KindError:
			line = logErrorStyle.Render("ERR " + e.Text)
		default:
			line = logInfoStyle.Render("LOG " + e.Text)
		}
		b.WriteString(fmt.Sprintf("  %s %s\n", ts, line))
	}

	if len(m.snap.Log) == 0 {
		b.WriteString(dimStyle.Render("  (log empty)"))
		b.WriteRune('\n')
	}

	return b.String()
}

func (m uiModel) renderStatusBar() string {
	aiSeg := "AI LINK: READY"
	if m.snap.AdvisorBusy {
		aiSeg = m.spin.View() + " AI LINK: BUSY"
	}

	briefSeg := "no brief"
	if m.briefPath != "" {
		briefSeg = "brief: " + m.briefPath
	}

	left := fmt.Sprintf(" %s | %s", aiSeg, briefSeg)
	right := fmt.Sprintf("%s | flowdeck %s ", m.now.Format("15:04:05"), m.version)
	gap := strings.Repeat(" ", max(0, m.width-lipgloss.Width(left)-lipgloss.Width(right)))
	return statusBarStyle.Render(left + gap + right)
}

// truncateLines truncates each line in content to at most width visible
// characters, preserving ANSI escape codes. This prevents terminal line
// wrapping when the window is resized narrower.
func truncateLines(content string, width int) string {
	if width <= 0 {
		return content
	}
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		if lipgloss.Width(line) > width {
			lines[i] = ansi.Truncate(line, width, "")
		}
	}
	return strings.Join(lines, "\n")
}
