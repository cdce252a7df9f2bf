package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/akshayareddy2629/BillWatch/internal/config"
	"github.com/akshayareddy2629/BillWatch/internal/model"

	"github.com/charmbracelet/lipgloss"
)

// Theme colors (Flexoki Dark)
var (
	ColorTextDim   = lipgloss.Color("#575653")
	ColorTextMuted = lipgloss.Color("#6F6E69")
	ColorText      = lipgloss.Color("#FFFCF0")
	ColorAccent    = lipgloss.Color("#3AA99F")
	ColorGreen     = lipgloss.Color("#879A39")
	ColorRed       = lipgloss.Color("#D14D41")
	ColorYellow    = lipgloss.Color("#D0A215")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorText)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorAccent)

	valueStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	mutedStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted)

	dimStyle = lipgloss.NewStyle().
			Foreground(ColorTextDim)
)

// SeverityColor maps a budget severity to its display color.
func SeverityColor(sev model.Severity) lipgloss.Color {
	switch sev {
	case model.SeverityHigh:
		return ColorRed
	case model.SeverityMedium:
		return ColorYellow
	default:
		return ColorGreen
	}
}

const summaryBarWidth = 30

// RenderSummary renders a one-shot cost report for the summary command.
func RenderSummary(view model.CostView, settings config.Settings) string {
	var b strings.Builder

	sev := model.ClassifySeverity(view.MonthToDate, settings.Budget)
	pct := model.BudgetPercent(view.MonthToDate, settings.Budget)
	sevStyle := lipgloss.NewStyle().Foreground(SeverityColor(sev)).Bold(true)

	b.WriteString("\n")
	b.WriteString("  " + titleStyle.Render("AWS Month-to-Date Spend"))
	b.WriteString("\n\n")

	b.WriteString("  " + sevStyle.Render(FormatCurrency(view.MonthToDate)))
	b.WriteString(mutedStyle.Render(fmt.Sprintf("  of %s budget", FormatCurrency(settings.Budget))))
	b.WriteString("\n\n")

	b.WriteString("  " + renderBudgetBar(pct, sev))
	b.WriteString("\n\n")

	if len(view.Services) > 0 {
		b.WriteString("  " + headerStyle.Render("Top Services"))
		b.WriteString("\n")
		for i, svc := range view.Services {
			line := fmt.Sprintf("  %2d. %-34s %12s %10s",
				i+1,
				TruncateName(svc.Service, 34),
				FormatCurrency(svc.Cost),
				FormatCount(svc.Activity)+" ev",
			)
			b.WriteString(valueStyle.Render(line))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString("  " + dimStyle.Render(fmt.Sprintf("Updated %s · source: %s",
		FormatAge(view.FetchedAt, time.Now()), settings.Mode)))
	b.WriteString("\n")

	return b.String()
}

func renderBudgetBar(pct float64, sev model.Severity) string {
	fill := pct / 100
	if fill > 1 {
		fill = 1
	}
	if fill < 0 {
		fill = 0
	}
	filled := int(fill * summaryBarWidth)

	barStyle := lipgloss.NewStyle().Foreground(SeverityColor(sev))
	return barStyle.Render(strings.Repeat("█", filled)) +
		dimStyle.Render(strings.Repeat("░", summaryBarWidth-filled)) +
		" " + barStyle.Render(FormatPercent(pct))
}
