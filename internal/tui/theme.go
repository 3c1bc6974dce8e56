// Package tui renders the console pages in the terminal. It is a pure
// subscriber of the page controllers' view-model publications: every frame
// is drawn from the last published view model plus local widget state, and
// all domain actions go back through the controllers.
package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/staffyhq/staffy-console/internal/config"
	"github.com/staffyhq/staffy-console/internal/models"
)

// Theme is the process-wide display preference. It is injected explicitly
// at startup and toggled through ToggleTheme; nothing mutates it ambiently.
type Theme struct {
	Name string

	Title      lipgloss.Style
	Subtitle   lipgloss.Style
	Tab        lipgloss.Style
	TabActive  lipgloss.Style
	Header     lipgloss.Style
	Muted      lipgloss.Style
	ErrorText  lipgloss.Style
	Notice     lipgloss.Style
	NoticeErr  lipgloss.Style
	Selected   lipgloss.Style
	FieldError lipgloss.Style
	Help       lipgloss.Style

	statusPresent lipgloss.Style
	statusAbsent  lipgloss.Style

	departmentColors   map[models.Department]lipgloss.Color
	departmentFallback lipgloss.Color
}

// NewTheme builds the style set for the named theme. Unknown names fall
// back to dark.
func NewTheme(name string) Theme {
	light := name == config.ThemeLight

	text := lipgloss.Color("236")
	muted := lipgloss.Color("245")
	accent := lipgloss.Color("27")
	if !light {
		text = lipgloss.Color("252")
		muted = lipgloss.Color("243")
		accent = lipgloss.Color("39")
	}

	theme := Theme{
		Name:       name,
		Title:      lipgloss.NewStyle().Bold(true).Foreground(accent),
		Subtitle:   lipgloss.NewStyle().Foreground(muted),
		Tab:        lipgloss.NewStyle().Foreground(muted).Padding(0, 1),
		TabActive:  lipgloss.NewStyle().Bold(true).Foreground(accent).Underline(true).Padding(0, 1),
		Header:     lipgloss.NewStyle().Bold(true).Foreground(text),
		Muted:      lipgloss.NewStyle().Foreground(muted),
		ErrorText:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196")),
		Notice:     lipgloss.NewStyle().Foreground(lipgloss.Color("35")),
		NoticeErr:  lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		Selected:   lipgloss.NewStyle().Bold(true).Foreground(accent),
		FieldError: lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		Help:       lipgloss.NewStyle().Foreground(muted),

		statusPresent: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("35")),
		statusAbsent:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),

		// Exhaustive over the closed department set; everything else
		// renders with the fallback color.
		departmentColors: map[models.Department]lipgloss.Color{
			models.DeptHR:          lipgloss.Color("33"),
			models.DeptIT:          lipgloss.Color("135"),
			models.DeptSales:       lipgloss.Color("35"),
			models.DeptMarketing:   lipgloss.Color("205"),
			models.DeptOperations:  lipgloss.Color("214"),
			models.DeptFinance:     lipgloss.Color("178"),
			models.DeptEngineering: lipgloss.Color("45"),
		},
		departmentFallback: muted,
	}

	return theme
}

// ToggleTheme flips between the light and dark themes.
func ToggleTheme(t Theme) Theme {
	if t.Name == config.ThemeLight {
		return NewTheme(config.ThemeDark)
	}

	return NewTheme(config.ThemeLight)
}

// DepartmentBadge renders a department name in its mapped color.
func (t Theme) DepartmentBadge(department models.Department) string {
	color, known := t.departmentColors[department]
	if !known {
		color = t.departmentFallback
	}

	return lipgloss.NewStyle().Bold(true).Foreground(color).Render(string(department))
}

// DepartmentCell renders a department padded to a fixed table-cell width.
// Padding happens before styling so ANSI codes don't skew the column.
func (t Theme) DepartmentCell(department models.Department, width int) string {
	color, known := t.departmentColors[department]
	if !known {
		color = t.departmentFallback
	}

	cell := fmt.Sprintf("%-*s", width, string(department))

	return lipgloss.NewStyle().Bold(true).Foreground(color).Render(cell)
}

// StatusBadge renders an attendance status.
func (t Theme) StatusBadge(status models.AttendanceStatus) string {
	if status == models.StatusPresent {
		return t.statusPresent.Render(string(status))
	}

	return t.statusAbsent.Render(string(status))
}
