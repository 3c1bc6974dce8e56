package view

import "github.com/staffyhq/staffy-console/internal/models"

// RecordViewMode selects which attendance query path the records panel uses.
type RecordViewMode string

const (
	ViewByEmployee RecordViewMode = "employee"
	ViewByDate     RecordViewMode = "date"
)

// RecordSelection is the record-browsing state of the attendance page: the
// active view mode plus its selectors. DateFilter optionally narrows the
// by-employee view to a single day.
type RecordSelection struct {
	Mode       RecordViewMode
	EmployeeID string
	Date       string
	DateFilter string
}

// NewRecordSelection returns the default selection: by-employee view with no
// employee chosen yet, browsing the given date in by-date mode.
func NewRecordSelection(today string) RecordSelection {
	return RecordSelection{Mode: ViewByEmployee, Date: today}
}

// Ready reports whether the selection names everything its query path
// requires. An unready selection warrants no query and projects no records.
func (s RecordSelection) Ready() bool {
	switch s.Mode {
	case ViewByEmployee:
		return s.EmployeeID != ""
	case ViewByDate:
		return s.Date != ""
	default:
		return false
	}
}

// Covers reports whether a freshly marked (employeeID, date) pair is part of
// what the selection currently displays, i.e. whether marking it warrants a
// requery.
func (s RecordSelection) Covers(employeeID, date string) bool {
	switch s.Mode {
	case ViewByEmployee:
		return s.EmployeeID == employeeID && (s.DateFilter == "" || s.DateFilter == date)
	case ViewByDate:
		return s.Date == date
	default:
		return false
	}
}

// ProjectRecords computes the rendered records for the selection. It is pure
// over already-fetched records: an unready selection projects nothing, and
// duplicate records for the same (employee, date) pair collapse to the last
// one received, holding the first one's position. The server upserts on that
// pair, so duplicates can only come from a doubled response.
func ProjectRecords(records []models.AttendanceRecord, s RecordSelection) []models.AttendanceRecord {
	if !s.Ready() {
		return []models.AttendanceRecord{}
	}

	type dayKey struct {
		employeeID string
		date       string
	}

	position := make(map[dayKey]int, len(records))
	projected := make([]models.AttendanceRecord, 0, len(records))

	for _, record := range records {
		key := dayKey{employeeID: record.EmployeeID, date: record.Date}
		if at, seen := position[key]; seen {
			projected[at] = record
			continue
		}

		position[key] = len(projected)
		projected = append(projected, record)
	}

	return projected
}
