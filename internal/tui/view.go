package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/akshayareddy2629/BillWatch/internal/awsbill"
	"github.com/akshayareddy2629/BillWatch/internal/cli"
	"github.com/akshayareddy2629/BillWatch/internal/config"
	"github.com/akshayareddy2629/BillWatch/internal/model"
	"github.com/akshayareddy2629/BillWatch/internal/tui/components"
	"github.com/akshayareddy2629/BillWatch/internal/tui/theme"
)

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 || a.height == 0 {
		return ""
	}
	return components.PlaceAt(a.width, a.height, a.x, a.y, a.renderCard())
}

func (a App) cardHeight() int {
	return lipgloss.Height(a.renderCard())
}

func (a App) renderCard() string {
	t := theme.Active

	borderColor := t.Border
	if a.dragging {
		borderColor = t.BorderAccent
	}
	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Background(t.Surface).
		Width(cardWidth - 2).
		Padding(0, 1)

	textWidth := cardWidth - 4

	var lines []string
	lines = append(lines, a.renderTitle(textWidth))
	if a.view == nil {
		lines = append(lines, "", a.spinner.View()+" fetching costs...", "")
	} else {
		lines = append(lines, a.renderSpend(textWidth)...)
		lines = append(lines, a.renderServices(textWidth)...)
	}
	lines = append(lines, a.renderFooter(textWidth))

	return card.Render(strings.Join(lines, "\n"))
}

func (a App) renderTitle(width int) string {
	t := theme.Active
	title := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true).Render("AWS Spend")

	var badge string
	switch {
	case a.settings.Mode == config.ModeSimulated:
		badge = lipgloss.NewStyle().Foreground(t.Yellow).Background(t.Surface).Render("SIM")
	case a.offline:
		badge = lipgloss.NewStyle().Foreground(t.Red).Background(t.Surface).Render("OFFLINE")
	default:
		badge = lipgloss.NewStyle().Foreground(t.Green).Background(t.Surface).Render("LIVE")
	}

	return padBetween(title, badge, width)
}

func (a App) renderSpend(width int) []string {
	t := theme.Active

	amount := lipgloss.NewStyle().
		Foreground(t.TextPrimary).
		Background(t.Surface).
		Bold(true).
		Render(cli.FormatCurrency(a.view.MonthToDate))
	budget := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface).
		Render("of " + cli.FormatCurrency(a.settings.Budget))

	pct := model.BudgetPercent(a.view.MonthToDate, a.settings.Budget)
	bar := components.BudgetBar(pct, width-6)

	return []string{
		padBetween(amount, budget, width),
		bar,
		"",
	}
}

func (a App) renderServices(width int) []string {
	t := theme.Active
	nameStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	costStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	actStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	lines := make([]string, 0, len(a.view.Services))
	for i, svc := range a.view.Services {
		right := costStyle.Render(cli.FormatCurrency(svc.Cost))
		right += actStyle.Render(" " + cli.FormatCount(svc.Activity))

		rightW := lipgloss.Width(right)
		name := cli.TruncateName(svc.Service, width-rightW-4)
		left := nameStyle.Render(fmt.Sprintf("%2d %s", i+1, name))

		lines = append(lines, padBetween(left, right, width))
	}
	return lines
}

func (a App) renderFooter(width int) string {
	t := theme.Active
	style := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	if a.offline && a.fetchErr != nil {
		msg := cli.TruncateName(awsbill.Hint(a.fetchErr), width)
		return lipgloss.NewStyle().Foreground(t.Red).Background(t.Surface).Render(msg)
	}

	var age string
	if a.view != nil {
		age = "updated " + cli.FormatAge(a.view.FetchedAt, a.now())
	} else {
		age = "updated never"
	}
	return padBetween(style.Render(age), style.Render("r refresh  q quit"), width)
}

// padBetween joins left and right with enough spaces that the line spans
// width visible cells, accounting for ANSI styling.
func padBetween(left, right string, width int) string {
	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	fill := lipgloss.NewStyle().Background(theme.Active.Surface).Render(strings.Repeat(" ", gap))
	return left + fill + right
}
