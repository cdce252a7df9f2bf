package tui

import (
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/akshayareddy2629/BillWatch/internal/config"
	"github.com/akshayareddy2629/BillWatch/internal/model"
	"github.com/akshayareddy2629/BillWatch/internal/scheduler"
)

func testApp() App {
	sched := scheduler.New(nil, scheduler.Config{Interval: time.Hour, FetchTimeout: time.Second})
	a := NewApp(sched, config.Default(), nil)
	a.width = 120
	a.height = 40
	a.view = &model.CostView{
		MonthToDate: 42.5,
		Services: []model.ServiceCost{
			{Service: "Amazon EC2", Cost: 30, Activity: model.KnownActivity(12)},
			{Service: "Amazon S3", Cost: 12.5},
		},
		FetchedAt: time.Now(),
	}
	return a
}

func update(t *testing.T, a App, msg tea.Msg) App {
	t.Helper()
	m, _ := a.Update(msg)
	next, ok := m.(App)
	if !ok {
		t.Fatalf("Update returned %T, want App", m)
	}
	return next
}

func TestDragMovesCard(t *testing.T) {
	a := testApp()
	a.x, a.y = 10, 5

	press := tea.MouseMsg{X: 12, Y: 6, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
	a = update(t, a, press)
	if !a.dragging {
		t.Fatal("press inside card did not start drag")
	}

	a = update(t, a, tea.MouseMsg{X: 30, Y: 14, Action: tea.MouseActionMotion})
	if a.x != 28 || a.y != 13 {
		t.Fatalf("after motion card at (%d,%d), want (28,13)", a.x, a.y)
	}

	a = update(t, a, tea.MouseMsg{Action: tea.MouseActionRelease})
	if a.dragging {
		t.Fatal("release did not end drag")
	}
}

func TestDragClampsToScreen(t *testing.T) {
	a := testApp()
	a.x, a.y = 10, 5

	a = update(t, a, tea.MouseMsg{X: 10, Y: 5, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	a = update(t, a, tea.MouseMsg{X: -40, Y: 500, Action: tea.MouseActionMotion})

	if a.x != 0 {
		t.Fatalf("x = %d, want 0", a.x)
	}
	if want := a.height - a.cardHeight(); a.y != want {
		t.Fatalf("y = %d, want %d", a.y, want)
	}
}

func TestPressOutsideCardIgnored(t *testing.T) {
	a := testApp()
	a.x, a.y = 10, 5

	a = update(t, a, tea.MouseMsg{X: 100, Y: 30, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if a.dragging {
		t.Fatal("press outside card started drag")
	}
}

func TestResizeReclampsPosition(t *testing.T) {
	a := testApp()
	a.x, a.y = 70, 30

	a = update(t, a, tea.WindowSizeMsg{Width: 60, Height: 20})
	if a.x != 60-cardWidth {
		t.Fatalf("x = %d, want %d", a.x, 60-cardWidth)
	}
	if want := 20 - a.cardHeight(); a.y != want {
		t.Fatalf("y = %d, want %d", a.y, want)
	}
}

func TestArrowKeysMoveCard(t *testing.T) {
	a := testApp()
	a.x, a.y = 10, 5

	a = update(t, a, tea.KeyMsg{Type: tea.KeyRight})
	a = update(t, a, tea.KeyMsg{Type: tea.KeyDown})
	if a.x != 10+moveStep || a.y != 5+moveStep {
		t.Fatalf("card at (%d,%d), want (%d,%d)", a.x, a.y, 10+moveStep, 5+moveStep)
	}

	a.x, a.y = 0, 0
	a = update(t, a, tea.KeyMsg{Type: tea.KeyLeft})
	a = update(t, a, tea.KeyMsg{Type: tea.KeyUp})
	if a.x != 0 || a.y != 0 {
		t.Fatalf("card at (%d,%d), want pinned at origin", a.x, a.y)
	}
}

func TestOfflineRetainsStaleView(t *testing.T) {
	a := testApp()
	stale := a.view

	a = update(t, a, costMsg{Err: errors.New("throttled")})
	if !a.offline {
		t.Fatal("error event did not mark offline")
	}
	if a.view != stale {
		t.Fatal("error event replaced the stale view")
	}

	fresh := &model.CostView{MonthToDate: 50, FetchedAt: time.Now()}
	a = update(t, a, costMsg{View: fresh})
	if a.offline || a.fetchErr != nil {
		t.Fatal("successful event did not clear offline state")
	}
	if a.view != fresh {
		t.Fatal("successful event did not install new view")
	}
}

func TestSettingsReloadUpdatesBudget(t *testing.T) {
	a := testApp()
	next := a.settings
	next.Budget = 250

	a = update(t, a, settingsMsg(next))
	if a.settings.Budget != 250 {
		t.Fatalf("budget = %v, want 250", a.settings.Budget)
	}
}
