// Package tui renders the floating cost widget: a draggable card showing
// month-to-date spend, budget pressure, and the top services by cost.
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/akshayareddy2629/BillWatch/internal/config"
	"github.com/akshayareddy2629/BillWatch/internal/model"
	"github.com/akshayareddy2629/BillWatch/internal/scheduler"
	"github.com/akshayareddy2629/BillWatch/internal/tui/theme"
)

const (
	cardWidth = 44
	moveStep  = 2
)

type costMsg scheduler.Event

type settingsMsg config.Settings

type tickMsg time.Time

// App is the bubbletea model for the widget.
type App struct {
	sched      *scheduler.Scheduler
	settingsCh <-chan config.Settings

	settings config.Settings
	view     *model.CostView
	fetchErr error
	offline  bool

	width  int
	height int
	x, y   int

	dragging bool
	dragDX   int
	dragDY   int

	spinner spinner.Model
	now     func() time.Time
}

// NewApp creates the widget model. The scheduler must be running before
// the program starts; settingsCh may be nil when config watching is off.
func NewApp(sched *scheduler.Scheduler, settings config.Settings, settingsCh <-chan config.Settings) App {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Active.Accent).Background(theme.Active.Surface)

	return App{
		sched:      sched,
		settingsCh: settingsCh,
		settings:   settings,
		view:       sched.LastView(),
		x:          2,
		y:          1,
		spinner:    sp,
		now:        time.Now,
	}
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tea.EnableMouseAllMotion,
		a.spinner.Tick,
		tickCmd(),
		waitCost(a.sched),
	}
	if a.settingsCh != nil {
		cmds = append(cmds, waitSettings(a.settingsCh))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.x, a.y = ClampPosition(a.x, a.y, cardWidth, a.cardHeight(), a.width, a.height)
		return a, nil

	case tea.MouseMsg:
		return a.updateMouse(msg)

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return a, tea.Quit
		case "r":
			a.sched.RefreshNow()
			return a, nil
		case "up":
			return a.move(0, -moveStep), nil
		case "down":
			return a.move(0, moveStep), nil
		case "left":
			return a.move(-moveStep, 0), nil
		case "right":
			return a.move(moveStep, 0), nil
		}
		return a, nil

	case costMsg:
		if msg.Err != nil {
			a.offline = true
			a.fetchErr = msg.Err
		} else {
			a.offline = false
			a.fetchErr = nil
			a.view = msg.View
			// Height can change with the number of services.
			a.x, a.y = ClampPosition(a.x, a.y, cardWidth, a.cardHeight(), a.width, a.height)
		}
		return a, waitCost(a.sched)

	case settingsMsg:
		prev := a.settings
		a.settings = config.Settings(msg)
		if a.settings.RefreshIntervalSec != prev.RefreshIntervalSec {
			a.sched.SetInterval(time.Duration(a.settings.RefreshIntervalSec) * time.Second)
		}
		if a.settingsCh == nil {
			return a, nil
		}
		return a, waitSettings(a.settingsCh)

	case tickMsg:
		// Redraw so the "updated Xs ago" footer stays current.
		return a, tickCmd()

	case spinner.TickMsg:
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd
	}

	return a, nil
}

func (a App) move(dx, dy int) App {
	a.x, a.y = ClampPosition(a.x+dx, a.y+dy, cardWidth, a.cardHeight(), a.width, a.height)
	return a
}

func (a App) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return a, nil
		}
		if a.hitCard(msg.X, msg.Y) {
			a.dragging = true
			a.dragDX = msg.X - a.x
			a.dragDY = msg.Y - a.y
		}
		return a, nil

	case tea.MouseActionMotion:
		if a.dragging {
			a.x, a.y = ClampPosition(msg.X-a.dragDX, msg.Y-a.dragDY, cardWidth, a.cardHeight(), a.width, a.height)
		}
		return a, nil

	case tea.MouseActionRelease:
		a.dragging = false
		return a, nil
	}
	return a, nil
}

func (a App) hitCard(x, y int) bool {
	return x >= a.x && x < a.x+cardWidth && y >= a.y && y < a.y+a.cardHeight()
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// waitCost blocks on the scheduler's event channel and converts the next
// delivery into a message, so all display state changes on the UI loop.
func waitCost(s *scheduler.Scheduler) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-s.Events()
		if !ok {
			return nil
		}
		return costMsg(ev)
	}
}

func waitSettings(ch <-chan config.Settings) tea.Cmd {
	return func() tea.Msg {
		st, ok := <-ch
		if !ok {
			return nil
		}
		return settingsMsg(st)
	}
}
