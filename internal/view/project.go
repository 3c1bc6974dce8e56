// Package view holds the pure projection and validation logic of the
// console: filtering, sorting, and searching fetched collections, and
// validating form submissions. Nothing in this package performs I/O.
package view

import (
	"sort"
	"strings"

	"github.com/staffyhq/staffy-console/internal/models"
)

// DepartmentAll is the facet sentinel meaning "no department filter".
const DepartmentAll = "All"

// SortDirection orders a sorted column.
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// Sortable column identifiers for the employee directory.
const (
	SortByName       = "full_name"
	SortByEmployeeID = "employee_id"
	SortByEmail      = "email"
	SortByDepartment = "department"
	SortByPresent    = "total_present"
	SortByAbsent     = "total_absent"
)

// FilterState is the page-local search/filter/sort state. It is owned by one
// page controller, never persisted, and reset to defaults when the page is
// left.
type FilterState struct {
	SearchQuery        string
	SelectedDepartment string
	SortKey            string
	SortDirection      SortDirection
}

// NewFilterState returns the default state: empty search, all departments,
// no sort.
func NewFilterState() FilterState {
	return FilterState{SelectedDepartment: DepartmentAll}
}

// ToggleSort applies one sort interaction: selecting a new key sorts
// ascending, selecting the current key flips the direction.
func (f *FilterState) ToggleSort(key string) {
	if f.SortKey == key {
		if f.SortDirection == SortAsc {
			f.SortDirection = SortDesc
		} else {
			f.SortDirection = SortAsc
		}

		return
	}

	f.SortKey = key
	f.SortDirection = SortAsc
}

// Project computes the rendered subset of employees for the given filter
// state. An employee is kept iff it matches the free-text search (substring
// of name, identifier, or email, case-insensitive) and the department facet.
// When a sort key is set the result is stably sorted, so rows equal under
// the key keep their fetched order.
func Project(employees []models.Employee, filters FilterState) []models.Employee {
	projected := make([]models.Employee, 0, len(employees))
	for _, employee := range employees {
		if matchesSearch(employee, filters.SearchQuery) && matchesDepartment(employee, filters.SelectedDepartment) {
			projected = append(projected, employee)
		}
	}

	if filters.SortKey == "" {
		return projected
	}

	sort.SliceStable(projected, func(i, j int) bool {
		less := compare(projected[i], projected[j], filters.SortKey)
		if filters.SortDirection == SortDesc {
			return compare(projected[j], projected[i], filters.SortKey)
		}

		return less
	})

	return projected
}

func matchesSearch(employee models.Employee, query string) bool {
	if query == "" {
		return true
	}

	needle := strings.ToLower(query)

	return strings.Contains(strings.ToLower(employee.FullName), needle) ||
		strings.Contains(strings.ToLower(employee.EmployeeID), needle) ||
		strings.Contains(strings.ToLower(employee.Email), needle)
}

func matchesDepartment(employee models.Employee, selected string) bool {
	return selected == "" || selected == DepartmentAll || string(employee.Department) == selected
}

// compare reports whether a precedes b under the named key. String columns
// compare case-sensitively per natural ordering; the attendance totals
// compare numerically.
func compare(a, b models.Employee, key string) bool {
	switch key {
	case SortByEmployeeID:
		return a.EmployeeID < b.EmployeeID
	case SortByEmail:
		return a.Email < b.Email
	case SortByDepartment:
		return a.Department < b.Department
	case SortByPresent:
		return a.TotalPresent < b.TotalPresent
	case SortByAbsent:
		return a.TotalAbsent < b.TotalAbsent
	default:
		return a.FullName < b.FullName
	}
}
