package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/staffyhq/staffy-console/internal/controller"
	"github.com/staffyhq/staffy-console/internal/fetchstate"
	"github.com/staffyhq/staffy-console/internal/models"
	"github.com/staffyhq/staffy-console/internal/view"
)

// dateTarget names which date setting the shared date input edits.
type dateTarget int

const (
	targetNone dateTarget = iota
	targetMarkDate
	targetViewDate
	targetFilterDate
)

type attendanceModel struct {
	view    controller.AttendanceView
	spinner spinner.Model

	dateInput  textinput.Model
	dateTarget dateTarget
}

func newAttendanceModel() attendanceModel {
	spin := spinner.New()
	spin.Spinner = spinner.Dot

	dateInput := textinput.New()
	dateInput.Placeholder = "YYYY-MM-DD"
	dateInput.CharLimit = 10

	return attendanceModel{spinner: spin, dateInput: dateInput}
}

func (m attendanceModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m attendanceModel) capturing() bool {
	return m.dateInput.Focused()
}

func (m attendanceModel) Update(
	msg tea.Msg, ctx context.Context, ctrl *controller.AttendanceController,
) (attendanceModel, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)

		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg, ctx, ctrl)
	}

	return m, nil
}

func (m attendanceModel) handleKey(
	msg tea.KeyMsg, ctx context.Context, ctrl *controller.AttendanceController,
) (attendanceModel, tea.Cmd) {
	if m.dateInput.Focused() {
		switch msg.String() {
		case "esc":
			m.dateInput.Blur()
			m.dateTarget = targetNone

			return m, nil
		case "enter":
			value := m.dateInput.Value()
			target := m.dateTarget
			m.dateInput.Blur()
			m.dateTarget = targetNone

			return m, func() tea.Msg {
				switch target {
				case targetMarkDate:
					ctrl.SetFormDate(value)
				case targetViewDate:
					ctrl.SetViewDate(ctx, value)
				case targetFilterDate:
					ctrl.SetDateFilter(ctx, value)
				}

				return nil
			}
		default:
			var cmd tea.Cmd
			m.dateInput, cmd = m.dateInput.Update(msg)

			return m, cmd
		}
	}

	switch msg.String() {
	case "r":
		return m, func() tea.Msg {
			ctrl.Refresh(ctx)
			return nil
		}
	case "e":
		employeeID := nextEmployeeID(m.view.Employees, m.view.Form.EmployeeID)
		return m, func() tea.Msg {
			ctrl.SetFormEmployee(employeeID)
			return nil
		}
	case "p":
		status := models.StatusPresent
		if m.view.Form.Status == models.StatusPresent {
			status = models.StatusAbsent
		}

		return m, func() tea.Msg {
			ctrl.SetFormStatus(status)
			return nil
		}
	case "D":
		return m.editDate(targetMarkDate, m.view.Form.Date)
	case "m":
		return m, func() tea.Msg {
			ctrl.Mark(ctx)
			return nil
		}
	case "v":
		mode := view.ViewByEmployee
		if m.view.Selection.Mode == view.ViewByEmployee {
			mode = view.ViewByDate
		}

		return m, func() tea.Msg {
			ctrl.SetViewMode(ctx, mode)
			return nil
		}
	case "E":
		employeeID := nextEmployeeID(m.view.Employees, m.view.Selection.EmployeeID)
		return m, func() tea.Msg {
			ctrl.SelectViewEmployee(ctx, employeeID)
			return nil
		}
	case "V":
		return m.editDate(targetViewDate, m.view.Selection.Date)
	case "F":
		return m.editDate(targetFilterDate, m.view.Selection.DateFilter)
	case "c":
		return m, func() tea.Msg {
			ctrl.SetDateFilter(ctx, "")
			return nil
		}
	}

	return m, nil
}

func (m attendanceModel) editDate(target dateTarget, current string) (attendanceModel, tea.Cmd) {
	m.dateTarget = target
	m.dateInput.SetValue(current)

	return m, m.dateInput.Focus()
}

// nextEmployeeID cycles through the selector list, starting from the top
// when nothing is selected yet.
func nextEmployeeID(employees []models.Employee, current string) string {
	if len(employees) == 0 {
		return ""
	}

	for i, employee := range employees {
		if employee.EmployeeID == current {
			return employees[(i+1)%len(employees)].EmployeeID
		}
	}

	return employees[0].EmployeeID
}

func (m attendanceModel) View(theme Theme) string {
	var b strings.Builder

	b.WriteString(theme.Title.Render("Attendance"))
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Render("Track daily attendance for your team"))
	b.WriteString("\n\n")

	switch m.view.Status {
	case fetchstate.StatusIdle, fetchstate.StatusLoading:
		b.WriteString(m.spinner.View() + " Loading...")
		return b.String()
	case fetchstate.StatusError:
		b.WriteString(theme.ErrorText.Render(m.view.Error))
		b.WriteString("\n\n" + theme.Help.Render("r retry"))

		return b.String()
	}

	if len(m.view.Employees) == 0 {
		b.WriteString(theme.Header.Render("No employees to track") + "\n")
		b.WriteString(theme.Muted.Render("Add employees first before marking attendance."))

		return b.String()
	}

	if notice := m.view.Notice; notice.Text != "" {
		style := theme.Notice
		if notice.IsError {
			style = theme.NoticeErr
		}
		b.WriteString(style.Render(notice.Text) + "\n\n")
	}

	b.WriteString(m.renderMarkPanel(theme))
	b.WriteString("\n")
	b.WriteString(m.renderRecordsPanel(theme))
	b.WriteString("\n\n")

	if m.dateInput.Focused() {
		b.WriteString(m.dateInput.View() + "\n")
	}

	b.WriteString(theme.Help.Render(
		"e employee · D date · p status · m mark | v view mode · E view employee · V view date · F filter · c clear",
	))

	return b.String()
}

func (m attendanceModel) renderMarkPanel(theme Theme) string {
	var b strings.Builder

	b.WriteString(theme.Header.Render("Mark Attendance") + "\n")

	employee := "Select employee..."
	for _, candidate := range m.view.Employees {
		if candidate.EmployeeID == m.view.Form.EmployeeID {
			employee = fmt.Sprintf("%s (%s)", candidate.FullName, candidate.EmployeeID)
			break
		}
	}

	b.WriteString(fmt.Sprintf("  Employee: %s\n", employee))
	b.WriteString(fmt.Sprintf("  Date:     %s\n", m.view.Form.Date))
	b.WriteString(fmt.Sprintf("  Status:   %s\n", theme.StatusBadge(m.view.Form.Status)))

	return b.String()
}

func (m attendanceModel) renderRecordsPanel(theme Theme) string {
	var b strings.Builder

	mode := "By Employee"
	if m.view.Selection.Mode == view.ViewByDate {
		mode = "By Date"
	}
	b.WriteString(theme.Header.Render("Attendance Records") + theme.Muted.Render("  ["+mode+"]") + "\n")

	selection := m.view.Selection
	if selection.Mode == view.ViewByEmployee {
		who := "none"
		if selection.EmployeeID != "" {
			who = selection.EmployeeID
		}
		b.WriteString(theme.Muted.Render("  employee: " + who))
		if selection.DateFilter != "" {
			b.WriteString(theme.Muted.Render(" · date filter: " + selection.DateFilter))
		}
	} else {
		b.WriteString(theme.Muted.Render("  date: " + selection.Date))
	}
	b.WriteString("\n")

	switch m.view.RecordsStatus {
	case fetchstate.StatusLoading:
		return b.String() + "  " + m.spinner.View() + " Loading records..."
	case fetchstate.StatusError:
		return b.String() + "  " + theme.ErrorText.Render(m.view.RecordsError)
	}

	if len(m.view.Records) == 0 {
		b.WriteString("  " + theme.Header.Render("No attendance records") + "\n")
		if selection.Mode == view.ViewByEmployee && selection.EmployeeID == "" {
			b.WriteString("  " + theme.Muted.Render("Select an employee to view their attendance records."))
		} else {
			b.WriteString("  " + theme.Muted.Render("No attendance records found for the selected criteria."))
		}

		return b.String()
	}

	for _, record := range m.view.Records {
		if selection.Mode == view.ViewByDate {
			b.WriteString(fmt.Sprintf(
				"  %-22s %-10s %s %s\n",
				truncate(record.EmployeeName, 22), record.EmployeeID, record.Date,
				theme.StatusBadge(record.Status),
			))
		} else {
			b.WriteString(fmt.Sprintf("  %s %s\n", record.Date, theme.StatusBadge(record.Status)))
		}
	}

	return b.String()
}
