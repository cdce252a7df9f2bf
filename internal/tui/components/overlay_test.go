package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestPlaceAtPositionsContent(t *testing.T) {
	out := PlaceAt(10, 4, 3, 1, "ab\ncd")
	rows := strings.Split(out, "\n")

	if len(rows) != 4 {
		t.Fatalf("rows = %d, want 4", len(rows))
	}
	for i, r := range rows {
		if lipgloss.Width(r) != 10 {
			t.Fatalf("row %d width = %d, want 10", i, lipgloss.Width(r))
		}
	}
	if rows[1] != "   ab     " {
		t.Fatalf("row 1 = %q", rows[1])
	}
	if rows[2] != "   cd     " {
		t.Fatalf("row 2 = %q", rows[2])
	}
	if rows[0] != strings.Repeat(" ", 10) || rows[3] != strings.Repeat(" ", 10) {
		t.Fatal("padding rows not blank")
	}
}

func TestPlaceAtDropsOverflow(t *testing.T) {
	out := PlaceAt(5, 2, 3, 0, "wide line")
	rows := strings.Split(out, "\n")
	for i, r := range rows {
		if r != "     " {
			t.Fatalf("row %d = %q, want blank", i, r)
		}
	}

	// Content below the bottom edge is simply cut.
	out = PlaceAt(5, 2, 0, 1, "a\nb\nc")
	rows = strings.Split(out, "\n")
	if rows[1] != "a    " {
		t.Fatalf("row 1 = %q", rows[1])
	}
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows))
	}
}

func TestBudgetBarFillTracksPercent(t *testing.T) {
	full := BudgetBar(100, 10)
	if !strings.Contains(full, strings.Repeat("█", 10)) {
		t.Fatalf("full bar missing fill: %q", full)
	}
	empty := BudgetBar(0, 10)
	if !strings.Contains(empty, strings.Repeat("░", 10)) {
		t.Fatalf("empty bar missing track: %q", empty)
	}
	over := BudgetBar(250, 10)
	if !strings.Contains(over, strings.Repeat("█", 10)) || strings.Contains(over, "░") {
		t.Fatalf("overspend bar not clamped: %q", over)
	}
	if !strings.Contains(over, "250%") {
		t.Fatalf("overspend bar hides true percent: %q", over)
	}
}
