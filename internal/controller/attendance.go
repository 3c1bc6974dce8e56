package controller

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/staffyhq/staffy-console/internal/fetchstate"
	"github.com/staffyhq/staffy-console/internal/gateway"
	"github.com/staffyhq/staffy-console/internal/lib/logger/sl"
	"github.com/staffyhq/staffy-console/internal/metrics"
	"github.com/staffyhq/staffy-console/internal/models"
	"github.com/staffyhq/staffy-console/internal/view"
)

// MarkForm is the attendance-marking form state.
type MarkForm struct {
	EmployeeID string
	Date       string
	Status     models.AttendanceStatus
}

// AttendanceView is the render-ready projection of the attendance page:
// the employee selector list, the marking form, and the records panel.
type AttendanceView struct {
	Status    fetchstate.Status
	Error     string
	Employees []models.Employee

	Form      MarkForm
	Selection view.RecordSelection

	RecordsStatus fetchstate.Status
	RecordsError  string
	Records       []models.AttendanceRecord

	Notice Notice
}

// AttendanceController drives the attendance page. The employee list and the
// records panel have independent fetch lifecycles; the records panel
// requeries whenever its view mode or selectors change and shows nothing
// while its required selector is unset.
type AttendanceController struct {
	log     *slog.Logger
	api     gateway.API
	metrics *metrics.Metrics
	publish func(AttendanceView)
	now     func() time.Time

	mu        sync.Mutex
	form      MarkForm
	selection view.RecordSelection
	notice    Notice

	employees *fetchstate.Container[[]models.Employee]
	records   *fetchstate.Container[[]models.AttendanceRecord]
}

// NewAttendanceController creates the attendance controller. publish
// receives every recomputed view model.
func NewAttendanceController(
	log *slog.Logger, api gateway.API, m *metrics.Metrics, publish func(AttendanceView),
) *AttendanceController {
	ctrl := &AttendanceController{
		log:     log,
		api:     api,
		metrics: m,
		publish: publish,
		now:     time.Now,
	}
	ctrl.employees = fetchstate.New("employees", m, func(fetchstate.Snapshot[[]models.Employee]) {
		ctrl.republish()
	})
	ctrl.records = fetchstate.New("attendance records", m, func(fetchstate.Snapshot[[]models.AttendanceRecord]) {
		ctrl.republish()
	})

	return ctrl
}

// Open resets the page to its defaults and fetches the employee selector
// list. The marking form starts on today's date with Present preselected;
// the records panel starts in by-employee mode with nobody selected.
func (c *AttendanceController) Open(ctx context.Context) {
	c.metrics.PageLoads.WithLabelValues(PageAttendance).Inc()

	today := c.now().Format(models.DateLayout)

	c.mu.Lock()
	c.form = MarkForm{Date: today, Status: models.StatusPresent}
	c.selection = view.NewRecordSelection(today)
	c.notice = Notice{}
	c.mu.Unlock()

	c.records.Reset()
	c.employees.Load(ctx, func(ctx context.Context) ([]models.Employee, error) {
		return c.api.ListEmployees(ctx)
	})
}

// Refresh refetches the employee list, keeping form and selection.
func (c *AttendanceController) Refresh(ctx context.Context) {
	c.employees.Load(ctx, func(ctx context.Context) ([]models.Employee, error) {
		return c.api.ListEmployees(ctx)
	})
}

// SetFormEmployee selects the employee to mark.
func (c *AttendanceController) SetFormEmployee(employeeID string) {
	c.mu.Lock()
	c.form.EmployeeID = employeeID
	c.mu.Unlock()

	c.republish()
}

// SetFormDate sets the date to mark, in YYYY-MM-DD form.
func (c *AttendanceController) SetFormDate(date string) {
	c.mu.Lock()
	c.form.Date = date
	c.mu.Unlock()

	c.republish()
}

// SetFormStatus sets the status to mark.
func (c *AttendanceController) SetFormStatus(status models.AttendanceStatus) {
	c.mu.Lock()
	c.form.Status = status
	c.mu.Unlock()

	c.republish()
}

// Mark submits the marking form. Submitting the same employee and date again
// is an upsert on the server, so a retried submit yields one record, not
// two. When the marked pair is currently displayed the records panel is
// requeried so the new mark shows up.
func (c *AttendanceController) Mark(ctx context.Context) {
	const opn = "Attendance.Mark"

	c.mu.Lock()
	form := c.form
	selection := c.selection
	c.mu.Unlock()

	if form.EmployeeID == "" {
		c.setNotice(Notice{Text: "Please select an employee", IsError: true})
		return
	}

	_, err := c.api.MarkAttendance(ctx, gateway.MarkAttendanceInput{
		EmployeeID: form.EmployeeID,
		Date:       form.Date,
		Status:     form.Status,
	})
	if err != nil {
		c.log.ErrorContext(ctx, "failed to mark attendance", sl.Op(opn), sl.Err(err))
		c.metrics.ActionFailures.WithLabelValues("mark_attendance").Inc()
		c.setNotice(actionNotice(err, "Failed to mark attendance"))

		return
	}

	c.setNotice(Notice{Text: "Attendance marked successfully"})

	if selection.Covers(form.EmployeeID, form.Date) {
		c.reloadRecords(ctx, selection)
	}
}

// SetViewMode switches the records panel between by-employee and by-date.
func (c *AttendanceController) SetViewMode(ctx context.Context, mode view.RecordViewMode) {
	c.updateSelection(ctx, func(s *view.RecordSelection) {
		s.Mode = mode
	})
}

// SelectViewEmployee picks the employee whose records the by-employee view
// shows.
func (c *AttendanceController) SelectViewEmployee(ctx context.Context, employeeID string) {
	c.updateSelection(ctx, func(s *view.RecordSelection) {
		s.EmployeeID = employeeID
	})
}

// SetViewDate picks the date the by-date view shows.
func (c *AttendanceController) SetViewDate(ctx context.Context, date string) {
	c.updateSelection(ctx, func(s *view.RecordSelection) {
		s.Date = date
	})
}

// SetDateFilter narrows the by-employee view to one date; empty clears the
// narrowing.
func (c *AttendanceController) SetDateFilter(ctx context.Context, date string) {
	c.updateSelection(ctx, func(s *view.RecordSelection) {
		s.DateFilter = date
	})
}

// ClearNotice drops the transient action notice.
func (c *AttendanceController) ClearNotice() {
	c.setNotice(Notice{})
}

// updateSelection applies one selector change and requeries or clears the
// records panel accordingly. An unchanged selection is left alone.
func (c *AttendanceController) updateSelection(ctx context.Context, change func(*view.RecordSelection)) {
	c.mu.Lock()
	previous := c.selection
	change(&c.selection)
	selection := c.selection
	c.mu.Unlock()

	if selection == previous {
		return
	}

	if selection.Ready() {
		c.reloadRecords(ctx, selection)
	} else {
		c.records.Reset()
	}
}

// reloadRecords issues the query the selection calls for. A stale response
// from a superseded selection is discarded by the container.
func (c *AttendanceController) reloadRecords(ctx context.Context, selection view.RecordSelection) {
	c.records.Load(ctx, func(ctx context.Context) ([]models.AttendanceRecord, error) {
		if selection.Mode == view.ViewByDate {
			return c.api.AttendanceByDate(ctx, selection.Date)
		}

		return c.api.EmployeeAttendance(ctx, selection.EmployeeID, selection.DateFilter)
	})
}

func (c *AttendanceController) setNotice(notice Notice) {
	c.mu.Lock()
	c.notice = notice
	c.mu.Unlock()

	c.republish()
}

func (c *AttendanceController) republish() {
	c.mu.Lock()
	form := c.form
	selection := c.selection
	notice := c.notice
	c.mu.Unlock()

	employeesSnap := c.employees.Snapshot()
	recordsSnap := c.records.Snapshot()

	c.publish(AttendanceView{
		Status:        employeesSnap.Status,
		Error:         employeesSnap.Err,
		Employees:     employeesSnap.Data,
		Form:          form,
		Selection:     selection,
		RecordsStatus: recordsSnap.Status,
		RecordsError:  recordsSnap.Err,
		Records:       view.ProjectRecords(recordsSnap.Data, selection),
		Notice:        notice,
	})
}
