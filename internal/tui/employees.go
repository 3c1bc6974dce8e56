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

// createResultMsg carries the outcome of a create submission back into the
// event loop.
type createResultMsg struct {
	fieldErrors map[string]string
	err         error
}

// formFieldCount covers the three text fields plus the department selector.
const formFieldCount = 4

var sortColumns = []string{
	view.SortByName, view.SortByEmployeeID, view.SortByEmail,
	view.SortByDepartment, view.SortByPresent, view.SortByAbsent,
}

type employeesModel struct {
	view    controller.EmployeesView
	spinner spinner.Model

	search textinput.Model
	cursor int

	confirmDelete *models.Employee

	creating    bool
	formInputs  []textinput.Model
	deptIndex   int
	focusIndex  int
	fieldErrors map[string]string
}

func newEmployeesModel() employeesModel {
	spin := spinner.New()
	spin.Spinner = spinner.Dot

	search := textinput.New()
	search.Placeholder = "Search by name, ID, or email..."
	search.Prompt = "/ "
	search.CharLimit = 64

	inputs := make([]textinput.Model, 3)
	for i := range inputs {
		inputs[i] = textinput.New()
		inputs[i].CharLimit = 64
	}
	inputs[0].Placeholder = "e.g. EMP001"
	inputs[1].Placeholder = "e.g. Aarav Sharma"
	inputs[2].Placeholder = "e.g. aarav@company.com"

	return employeesModel{
		spinner:    spin,
		search:     search,
		formInputs: inputs,
		deptIndex:  -1,
	}
}

func (m employeesModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m employeesModel) capturing() bool {
	return m.search.Focused() || m.creating
}

func (m employeesModel) Update(
	msg tea.Msg, ctx context.Context, ctrl *controller.EmployeesController,
) (employeesModel, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)

		return m, cmd

	case createResultMsg:
		m.fieldErrors = msg.fieldErrors
		if len(msg.fieldErrors) == 0 && msg.err == nil {
			m = m.closeForm()
		}

		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg, ctx, ctrl)
	}

	return m, nil
}

func (m employeesModel) handleKey(
	msg tea.KeyMsg, ctx context.Context, ctrl *controller.EmployeesController,
) (employeesModel, tea.Cmd) {
	if m.creating {
		return m.updateForm(msg, ctx, ctrl)
	}

	if m.confirmDelete != nil {
		return m.updateConfirm(msg, ctx, ctrl)
	}

	if m.search.Focused() {
		switch msg.String() {
		case "esc", "enter":
			m.search.Blur()
			return m, nil
		default:
			var cmd tea.Cmd
			m.search, cmd = m.search.Update(msg)
			query := m.search.Value()

			return m, tea.Batch(cmd, func() tea.Msg {
				ctrl.SetSearch(query)
				return nil
			})
		}
	}

	switch msg.String() {
	case "/":
		return m, m.search.Focus()
	case "r":
		return m, func() tea.Msg {
			ctrl.Refresh(ctx)
			return nil
		}
	case "f":
		department := m.nextDepartment()
		return m, func() tea.Msg {
			ctrl.SelectDepartment(department)
			return nil
		}
	case "s":
		key := nextSortColumn(m.view.Filters.SortKey)
		return m, func() tea.Msg {
			ctrl.ToggleSort(key)
			return nil
		}
	case "o":
		if key := m.view.Filters.SortKey; key != "" {
			return m, func() tea.Msg {
				ctrl.ToggleSort(key)
				return nil
			}
		}

		return m, nil
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}

		return m, nil
	case "down", "j":
		if m.cursor < len(m.view.Employees)-1 {
			m.cursor++
		}

		return m, nil
	case "n":
		m = m.openForm()
		return m, m.formInputs[0].Focus()
	case "d":
		if m.cursor < len(m.view.Employees) {
			selected := m.view.Employees[m.cursor]
			m.confirmDelete = &selected
		}

		return m, nil
	}

	return m, nil
}

func (m employeesModel) updateConfirm(
	msg tea.KeyMsg, ctx context.Context, ctrl *controller.EmployeesController,
) (employeesModel, tea.Cmd) {
	target := *m.confirmDelete

	switch msg.String() {
	case "y", "enter":
		m.confirmDelete = nil
		return m, func() tea.Msg {
			ctrl.Delete(ctx, target.EmployeeID, target.FullName)
			return nil
		}
	case "n", "esc":
		m.confirmDelete = nil
		return m, nil
	}

	return m, nil
}

func (m employeesModel) updateForm(
	msg tea.KeyMsg, ctx context.Context, ctrl *controller.EmployeesController,
) (employeesModel, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return m.closeForm(), nil

	case "tab", "down":
		m = m.focusField((m.focusIndex + 1) % formFieldCount)
		return m, m.fieldFocusCmd()

	case "shift+tab", "up":
		m = m.focusField((m.focusIndex + formFieldCount - 1) % formFieldCount)
		return m, m.fieldFocusCmd()

	case "left", "right":
		if m.focusIndex == formFieldCount-1 {
			departments := models.Departments()
			if msg.String() == "right" {
				m.deptIndex = (m.deptIndex + 1) % len(departments)
			} else if m.deptIndex <= 0 {
				m.deptIndex = len(departments) - 1
			} else {
				m.deptIndex--
			}

			return m, nil
		}

	case "enter":
		form := m.currentForm()
		return m, func() tea.Msg {
			fieldErrors, err := ctrl.Create(ctx, form)
			return createResultMsg{fieldErrors: fieldErrors, err: err}
		}
	}

	if m.focusIndex < len(m.formInputs) {
		var cmd tea.Cmd
		m.formInputs[m.focusIndex], cmd = m.formInputs[m.focusIndex].Update(msg)

		return m, cmd
	}

	return m, nil
}

func (m employeesModel) currentForm() view.EmployeeForm {
	form := view.EmployeeForm{
		EmployeeID: m.formInputs[0].Value(),
		FullName:   m.formInputs[1].Value(),
		Email:      m.formInputs[2].Value(),
	}
	if m.deptIndex >= 0 {
		form.Department = string(models.Departments()[m.deptIndex])
	}

	return form
}

func (m employeesModel) openForm() employeesModel {
	m.creating = true
	m.focusIndex = 0
	m.deptIndex = -1
	m.fieldErrors = nil
	for i := range m.formInputs {
		m.formInputs[i].SetValue("")
		m.formInputs[i].Blur()
	}

	return m
}

func (m employeesModel) closeForm() employeesModel {
	m.creating = false
	m.fieldErrors = nil
	for i := range m.formInputs {
		m.formInputs[i].Blur()
	}

	return m
}

func (m employeesModel) focusField(index int) employeesModel {
	m.focusIndex = index
	for i := range m.formInputs {
		if i == index {
			continue
		}
		m.formInputs[i].Blur()
	}

	return m
}

func (m employeesModel) fieldFocusCmd() tea.Cmd {
	if m.focusIndex < len(m.formInputs) {
		return m.formInputs[m.focusIndex].Focus()
	}

	return nil
}

// nextDepartment cycles the facet: All -> each department -> All.
func (m employeesModel) nextDepartment() string {
	facets := []string{view.DepartmentAll}
	for _, department := range models.Departments() {
		facets = append(facets, string(department))
	}

	current := 0
	for i, facet := range facets {
		if facet == m.view.Filters.SelectedDepartment {
			current = i
			break
		}
	}

	return facets[(current+1)%len(facets)]
}

func nextSortColumn(current string) string {
	for i, column := range sortColumns {
		if column == current {
			return sortColumns[(i+1)%len(sortColumns)]
		}
	}

	return sortColumns[0]
}

func (m employeesModel) View(theme Theme) string {
	var b strings.Builder

	b.WriteString(theme.Title.Render("Employees"))
	b.WriteString("\n")

	switch m.view.Status {
	case fetchstate.StatusIdle, fetchstate.StatusLoading:
		b.WriteString("\n" + m.spinner.View() + " Loading employees...")
		return b.String()
	case fetchstate.StatusError:
		b.WriteString("\n" + theme.ErrorText.Render(m.view.Error))
		b.WriteString("\n\n" + theme.Help.Render("r retry"))

		return b.String()
	}

	b.WriteString(theme.Subtitle.Render(fmt.Sprintf(
		"%d of %d team %s", m.view.FilteredCount, m.view.TotalCount,
		plural(m.view.TotalCount, "member", "members"),
	)))
	b.WriteString("\n\n")

	if notice := m.view.Notice; notice.Text != "" {
		style := theme.Notice
		if notice.IsError {
			style = theme.NoticeErr
		}
		b.WriteString(style.Render(notice.Text) + "\n\n")
	}

	if m.creating {
		b.WriteString(m.renderForm(theme))
		return b.String()
	}

	if m.confirmDelete != nil {
		b.WriteString(theme.Header.Render(fmt.Sprintf(
			"Delete %s? This will also delete all their attendance records.", m.confirmDelete.FullName,
		)))
		b.WriteString("\n" + theme.Help.Render("y confirm · n cancel"))

		return b.String()
	}

	b.WriteString(m.search.View())
	b.WriteString("   " + theme.Muted.Render("dept: "+m.view.Filters.SelectedDepartment))
	if m.view.Filters.SortKey != "" {
		b.WriteString(theme.Muted.Render(fmt.Sprintf(
			" · sort: %s %s", m.view.Filters.SortKey, m.view.Filters.SortDirection,
		)))
	}
	b.WriteString("\n\n")

	switch {
	case m.view.TotalCount == 0:
		b.WriteString(theme.Header.Render("No employees yet") + "\n")
		b.WriteString(theme.Muted.Render("Get started by adding your first employee to the system."))
	case m.view.FilteredCount == 0:
		b.WriteString(theme.Muted.Render(
			"No employees match your search criteria. Try adjusting your filters or search terms.",
		))
	default:
		b.WriteString(m.renderTable(theme))
	}

	b.WriteString("\n\n")
	b.WriteString(theme.Help.Render("/ search · f department · s sort · o order · n add · d delete · r refresh"))

	return b.String()
}

func (m employeesModel) renderTable(theme Theme) string {
	var b strings.Builder

	b.WriteString(theme.Muted.Render(fmt.Sprintf(
		"  %-10s %-22s %-28s %-14s %7s %7s", "ID", "NAME", "EMAIL", "DEPARTMENT", "PRESENT", "ABSENT",
	)))
	b.WriteString("\n")

	for i, employee := range m.view.Employees {
		marker := "  "
		if i == m.cursor {
			marker = theme.Selected.Render("> ")
		}

		row := fmt.Sprintf(
			"%-10s %-22s %-28s %s %7d %7d",
			employee.EmployeeID,
			truncate(employee.FullName, 22),
			truncate(employee.Email, 28),
			theme.DepartmentCell(employee.Department, 14),
			employee.TotalPresent,
			employee.TotalAbsent,
		)
		b.WriteString(marker + row + "\n")
	}

	return b.String()
}

func (m employeesModel) renderForm(theme Theme) string {
	var b strings.Builder

	b.WriteString(theme.Header.Render("Add New Employee") + "\n\n")

	labels := []string{"Employee ID", "Full Name", "Email Address"}
	fields := []string{view.FieldEmployeeID, view.FieldFullName, view.FieldEmail}

	for i, label := range labels {
		b.WriteString(theme.Muted.Render(label) + "\n")
		b.WriteString(m.formInputs[i].View() + "\n")
		if message, failed := m.fieldErrors[fields[i]]; failed {
			b.WriteString(theme.FieldError.Render(message) + "\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(theme.Muted.Render("Department") + "\n")
	selected := "Select a department"
	if m.deptIndex >= 0 {
		selected = string(models.Departments()[m.deptIndex])
	}
	if m.focusIndex == formFieldCount-1 {
		b.WriteString(theme.Selected.Render("< " + selected + " >"))
	} else {
		b.WriteString(selected)
	}
	b.WriteString("\n")
	if message, failed := m.fieldErrors[view.FieldDepartment]; failed {
		b.WriteString(theme.FieldError.Render(message) + "\n")
	}

	b.WriteString("\n")
	b.WriteString(theme.Help.Render("tab next field · left/right pick department · enter submit · esc cancel"))

	return b.String()
}
