package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// PlaceAt draws content at cell position (x, y) on a width x height
// canvas, padding the rest with spaces. Content that would extend past
// the right or bottom edge is dropped line by line; callers are
// expected to clamp positions before rendering.
func PlaceAt(width, height, x, y int, content string) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}

	lines := strings.Split(content, "\n")
	rows := make([]string, 0, height)

	for row := 0; row < height; row++ {
		i := row - y
		if i < 0 || i >= len(lines) {
			rows = append(rows, strings.Repeat(" ", width))
			continue
		}

		lineW := lipgloss.Width(lines[i])
		if x+lineW > width {
			// Off-canvas overflow, blank the row rather than wrap.
			rows = append(rows, strings.Repeat(" ", width))
			continue
		}
		rows = append(rows, strings.Repeat(" ", x)+lines[i]+strings.Repeat(" ", width-x-lineW))
	}

	return strings.Join(rows, "\n")
}
