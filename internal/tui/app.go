package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/staffyhq/staffy-console/internal/controller"
)

// Page identifies one of the three console pages.
type Page int

const (
	PageDashboard Page = iota
	PageEmployees
	PageAttendance
)

// View-model publications delivered into the bubbletea event loop. The
// controllers publish from their own goroutines; main forwards each
// publication here via Program.Send.
type (
	DashboardViewMsg  controller.DashboardView
	EmployeesViewMsg  controller.EmployeesView
	AttendanceViewMsg controller.AttendanceView
)

// Controllers bundles the three page controllers the app drives.
type Controllers struct {
	Dashboard  *controller.DashboardController
	Employees  *controller.EmployeesController
	Attendance *controller.AttendanceController
}

// App is the root bubbletea model: tab navigation, theme toggling, and
// dispatch to the active page model.
type App struct {
	ctx   context.Context
	ctrl  Controllers
	theme Theme

	active     Page
	dashboard  dashboardModel
	employees  employeesModel
	attendance attendanceModel

	width  int
	height int
}

// NewApp creates the root model. The initial theme comes from configuration.
func NewApp(ctx context.Context, ctrl Controllers, theme Theme) App {
	return App{
		ctx:        ctx,
		ctrl:       ctrl,
		theme:      theme,
		active:     PageDashboard,
		dashboard:  newDashboardModel(),
		employees:  newEmployeesModel(),
		attendance: newAttendanceModel(),
	}
}

func (a App) Init() tea.Cmd {
	return tea.Batch(
		a.dashboard.Init(),
		func() tea.Msg {
			a.ctrl.Dashboard.Open(a.ctx)
			return nil
		},
	)
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height

		return a, nil

	case DashboardViewMsg:
		a.dashboard.view = controller.DashboardView(msg)
		return a, nil

	case EmployeesViewMsg:
		a.employees.view = controller.EmployeesView(msg)
		return a, nil

	case AttendanceViewMsg:
		a.attendance.view = controller.AttendanceView(msg)
		return a, nil

	case tea.KeyMsg:
		// Global keys apply only while no text input is capturing.
		if !a.capturing() {
			switch msg.String() {
			case "ctrl+c", "q":
				return a, tea.Quit
			case "1":
				return a.switchTo(PageDashboard)
			case "2":
				return a.switchTo(PageEmployees)
			case "3":
				return a.switchTo(PageAttendance)
			case "T":
				a.theme = ToggleTheme(a.theme)
				return a, nil
			}
		}
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
	}

	return a.updateActive(msg)
}

// switchTo activates a page and opens its controller. Opening resets the
// page-scoped filter state, so nothing survives navigation.
func (a App) switchTo(target Page) (tea.Model, tea.Cmd) {
	if a.active == target {
		return a, nil
	}

	a.active = target

	switch target {
	case PageDashboard:
		return a, tea.Batch(a.dashboard.Init(), func() tea.Msg {
			a.ctrl.Dashboard.Open(a.ctx)
			return nil
		})
	case PageEmployees:
		a.employees = newEmployeesModel()
		return a, tea.Batch(a.employees.Init(), func() tea.Msg {
			a.ctrl.Employees.Open(a.ctx)
			return nil
		})
	case PageAttendance:
		a.attendance = newAttendanceModel()
		return a, tea.Batch(a.attendance.Init(), func() tea.Msg {
			a.ctrl.Attendance.Open(a.ctx)
			return nil
		})
	}

	return a, nil
}

func (a App) updateActive(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch a.active {
	case PageDashboard:
		a.dashboard, cmd = a.dashboard.Update(msg, a.ctx, a.ctrl.Dashboard)
	case PageEmployees:
		a.employees, cmd = a.employees.Update(msg, a.ctx, a.ctrl.Employees)
	case PageAttendance:
		a.attendance, cmd = a.attendance.Update(msg, a.ctx, a.ctrl.Attendance)
	}

	return a, cmd
}

// capturing reports whether the active page holds keyboard focus in a text
// input, in which case global single-letter keys must pass through.
func (a App) capturing() bool {
	switch a.active {
	case PageEmployees:
		return a.employees.capturing()
	case PageAttendance:
		return a.attendance.capturing()
	default:
		return false
	}
}

func (a App) View() string {
	tabs := a.renderTabs()

	var body string
	switch a.active {
	case PageDashboard:
		body = a.dashboard.View(a.theme)
	case PageEmployees:
		body = a.employees.View(a.theme)
	case PageAttendance:
		body = a.attendance.View(a.theme)
	}

	help := a.theme.Help.Render("1/2/3 pages · T theme · q quit")

	return lipgloss.JoinVertical(lipgloss.Left, tabs, "", body, "", help)
}

func (a App) renderTabs() string {
	titles := []string{"Dashboard", "Employees", "Attendance"}

	rendered := make([]string, 0, len(titles))
	for i, title := range titles {
		style := a.theme.Tab
		if Page(i) == a.active {
			style = a.theme.TabActive
		}
		rendered = append(rendered, style.Render(title))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}
