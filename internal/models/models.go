package models

import "math"

// DateLayout is the wire format for calendar dates. The API never sends a
// time component.
const DateLayout = "2006-01-02"

// Department is one of the closed set of departments known to the Staffy API.
type Department string

const (
	DeptHR          Department = "HR"
	DeptIT          Department = "IT"
	DeptSales       Department = "Sales"
	DeptMarketing   Department = "Marketing"
	DeptOperations  Department = "Operations"
	DeptFinance     Department = "Finance"
	DeptEngineering Department = "Engineering"
)

// Departments returns every known department in display order.
func Departments() []Department {
	return []Department{
		DeptHR, DeptIT, DeptSales, DeptMarketing, DeptOperations, DeptFinance, DeptEngineering,
	}
}

// Valid reports whether d is a member of the known department set.
func (d Department) Valid() bool {
	for _, known := range Departments() {
		if d == known {
			return true
		}
	}

	return false
}

// AttendanceStatus is the status of a single attendance record.
type AttendanceStatus string

const (
	StatusPresent AttendanceStatus = "Present"
	StatusAbsent  AttendanceStatus = "Absent"
)

// Employee represents an employee as returned by the Staffy API.
// EmployeeID is externally assigned and immutable; the present/absent totals
// are computed server-side and never mutated locally.
type Employee struct {
	EmployeeID   string     `json:"employee_id"`
	FullName     string     `json:"full_name"`
	Email        string     `json:"email"`
	Department   Department `json:"department"`
	TotalPresent int        `json:"total_present"`
	TotalAbsent  int        `json:"total_absent"`
}

// AttendanceRate returns the employee's attendance percentage, rounded to the
// nearest integer. An employee with no records has a rate of zero.
func (e Employee) AttendanceRate() int {
	total := e.TotalPresent + e.TotalAbsent
	if total == 0 {
		return 0
	}

	return int(math.Round(float64(e.TotalPresent) / float64(total) * 100))
}

// AttendanceRecord is a single day's attendance mark for one employee.
// EmployeeName is denormalized and only populated in date-indexed query
// results.
type AttendanceRecord struct {
	ID           int              `json:"id"`
	EmployeeID   string           `json:"employee_id"`
	EmployeeName string           `json:"employee_name,omitempty"`
	Date         string           `json:"date"`
	Status       AttendanceStatus `json:"status"`
}

// DashboardSummary is the read-only aggregate served by GET /dashboard.
// It is recomputed by refetch on every visit, never cached.
type DashboardSummary struct {
	TotalEmployees    int `json:"total_employees"`
	TotalPresentToday int `json:"total_present_today"`
	TotalAbsentToday  int `json:"total_absent_today"`
	DepartmentCount   int `json:"department_count"`
}

// AttendanceRate returns today's attendance percentage across the whole
// company, rounded to the nearest integer.
func (s DashboardSummary) AttendanceRate() int {
	if s.TotalEmployees == 0 {
		return 0
	}

	return int(math.Round(float64(s.TotalPresentToday) / float64(s.TotalEmployees) * 100))
}
