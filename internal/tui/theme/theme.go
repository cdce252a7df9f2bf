// Package theme defines color themes for the billwatch widget.
package theme

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/akshayareddy2629/BillWatch/internal/model"
)

// Theme defines the color roles used by the widget card.
type Theme struct {
	Name         string
	Background   lipgloss.Color // canvas behind the card
	Surface      lipgloss.Color // card background
	Border       lipgloss.Color // card border
	BorderAccent lipgloss.Color // border while dragging
	TextDim      lipgloss.Color // hints, footer
	TextMuted    lipgloss.Color // labels, service names
	TextPrimary  lipgloss.Color // amounts
	Accent       lipgloss.Color // title, spinner
	Green        lipgloss.Color
	Yellow       lipgloss.Color
	Red          lipgloss.Color
}

// Active is the currently selected theme.
var Active = FlexokiDark

// FlexokiDark is the default theme - warm, paper-inspired dark theme.
var FlexokiDark = Theme{
	Name:         "flexoki-dark",
	Background:   lipgloss.Color("#100F0F"),
	Surface:      lipgloss.Color("#1C1B1A"),
	Border:       lipgloss.Color("#403E3C"),
	BorderAccent: lipgloss.Color("#3AA99F"),
	TextDim:      lipgloss.Color("#575653"),
	TextMuted:    lipgloss.Color("#878580"),
	TextPrimary:  lipgloss.Color("#FFFCF0"),
	Accent:       lipgloss.Color("#3AA99F"),
	Green:        lipgloss.Color("#879A39"),
	Yellow:       lipgloss.Color("#D0A215"),
	Red:          lipgloss.Color("#D14D41"),
}

// Terminal uses ANSI 16 colors only - maximum compatibility.
var Terminal = Theme{
	Name:         "terminal",
	Background:   lipgloss.Color("0"),
	Surface:      lipgloss.Color("0"),
	Border:       lipgloss.Color("8"),
	BorderAccent: lipgloss.Color("6"),
	TextDim:      lipgloss.Color("8"),
	TextMuted:    lipgloss.Color("7"),
	TextPrimary:  lipgloss.Color("15"),
	Accent:       lipgloss.Color("6"),
	Green:        lipgloss.Color("2"),
	Yellow:       lipgloss.Color("3"),
	Red:          lipgloss.Color("1"),
}

// All available themes.
var All = []Theme{FlexokiDark, Terminal}

// ByName returns a theme by its name, defaulting to FlexokiDark.
func ByName(name string) Theme {
	for _, t := range All {
		if t.Name == name {
			return t
		}
	}
	return FlexokiDark
}

// SetActive sets the active theme by name.
func SetActive(name string) {
	Active = ByName(name)
}

// SeverityColor maps budget pressure to a traffic light color.
func SeverityColor(sev model.Severity) lipgloss.Color {
	t := Active
	switch sev {
	case model.SeverityLow:
		return t.Green
	case model.SeverityMedium:
		return t.Yellow
	default:
		return t.Red
	}
}
