package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/staffyhq/staffy-console/internal/controller"
	"github.com/staffyhq/staffy-console/internal/fetchstate"
)

type dashboardModel struct {
	view    controller.DashboardView
	spinner spinner.Model
}

func newDashboardModel() dashboardModel {
	spin := spinner.New()
	spin.Spinner = spinner.Dot

	return dashboardModel{spinner: spin}
}

func (m dashboardModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m dashboardModel) Update(
	msg tea.Msg, ctx context.Context, ctrl *controller.DashboardController,
) (dashboardModel, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)

		return m, cmd

	case tea.KeyMsg:
		if msg.String() == "r" {
			return m, func() tea.Msg {
				ctrl.Refresh(ctx)
				return nil
			}
		}
	}

	return m, nil
}

func (m dashboardModel) View(theme Theme) string {
	var b strings.Builder

	b.WriteString(theme.Title.Render("Dashboard Overview"))
	b.WriteString("\n\n")

	switch m.view.Status {
	case fetchstate.StatusIdle, fetchstate.StatusLoading:
		b.WriteString(m.spinner.View() + " Loading dashboard...")
		return b.String()
	case fetchstate.StatusError:
		b.WriteString(theme.ErrorText.Render(m.view.Error))
		b.WriteString("\n\n")
		b.WriteString(theme.Help.Render("r retry"))

		return b.String()
	}

	summary := m.view.Summary
	if summary.TotalEmployees > 0 {
		b.WriteString(theme.Subtitle.Render(fmt.Sprintf(
			"You have %d %s with a %d%% attendance rate today.",
			summary.TotalEmployees, plural(summary.TotalEmployees, "employee", "employees"),
			m.view.AttendanceRate,
		)))
	} else {
		b.WriteString(theme.Subtitle.Render("Add your first employee to get started managing your team."))
	}
	b.WriteString("\n\n")

	stats := []struct {
		label string
		value int
	}{
		{"Total Employees", summary.TotalEmployees},
		{"Present Today", summary.TotalPresentToday},
		{"Absent Today", summary.TotalAbsentToday},
		{"Departments", summary.DepartmentCount},
	}
	for _, stat := range stats {
		b.WriteString(fmt.Sprintf("%s %s   ", theme.Header.Render(fmt.Sprintf("%3d", stat.value)), stat.label))
	}
	b.WriteString("\n\n")

	b.WriteString(theme.Header.Render("Team Overview"))
	b.WriteString("\n")

	if len(m.view.Overview) == 0 {
		b.WriteString(theme.Muted.Render("No employees added yet"))
		return b.String()
	}

	b.WriteString(theme.Muted.Render(fmt.Sprintf(
		"%-22s %-14s %8s %8s %6s", "EMPLOYEE", "DEPARTMENT", "PRESENT", "ABSENT", "RATE",
	)))
	b.WriteString("\n")

	for _, employee := range m.view.Overview {
		b.WriteString(fmt.Sprintf(
			"%-22s %s %8d %8d %5d%%\n",
			truncate(employee.FullName, 22),
			theme.DepartmentCell(employee.Department, 14),
			employee.TotalPresent,
			employee.TotalAbsent,
			employee.AttendanceRate(),
		))
	}

	b.WriteString("\n")
	b.WriteString(theme.Help.Render("r refresh"))

	return b.String()
}

func plural(n int, singular, pluralForm string) string {
	if n == 1 {
		return singular
	}

	return pluralForm
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	if limit <= 1 {
		return s[:limit]
	}

	return s[:limit-1] + "…"
}
