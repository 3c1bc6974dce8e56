package controller

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/staffyhq/staffy-console/internal/fetchstate"
	"github.com/staffyhq/staffy-console/internal/gateway"
	"github.com/staffyhq/staffy-console/internal/lib/logger/sl"
	"github.com/staffyhq/staffy-console/internal/metrics"
	"github.com/staffyhq/staffy-console/internal/models"
	"github.com/staffyhq/staffy-console/internal/view"
)

// EmployeesView is the render-ready projection of the employee directory.
type EmployeesView struct {
	Status        fetchstate.Status
	Error         string
	Employees     []models.Employee
	TotalCount    int
	FilteredCount int
	Filters       view.FilterState
	Notice        Notice
}

// EmployeesController drives the employee directory page: list fetching,
// free-text search, department facet, column sort, create and delete.
type EmployeesController struct {
	log     *slog.Logger
	api     gateway.API
	metrics *metrics.Metrics
	publish func(EmployeesView)

	mu      sync.Mutex
	filters view.FilterState
	notice  Notice

	list *fetchstate.Container[[]models.Employee]
}

// NewEmployeesController creates the directory controller. publish receives
// every recomputed view model; it may be called from a fetching goroutine.
func NewEmployeesController(
	log *slog.Logger, api gateway.API, m *metrics.Metrics, publish func(EmployeesView),
) *EmployeesController {
	ctrl := &EmployeesController{
		log:     log,
		api:     api,
		metrics: m,
		publish: publish,
		filters: view.NewFilterState(),
	}
	ctrl.list = fetchstate.New("employees", m, func(fetchstate.Snapshot[[]models.Employee]) {
		ctrl.republish()
	})

	return ctrl
}

// Open resets the page to its defaults and fetches the directory. Filter
// state never survives navigation away from the page.
func (c *EmployeesController) Open(ctx context.Context) {
	c.metrics.PageLoads.WithLabelValues(PageEmployees).Inc()

	c.mu.Lock()
	c.filters = view.NewFilterState()
	c.notice = Notice{}
	c.mu.Unlock()

	c.load(ctx)
}

// Refresh refetches the directory, keeping the current filters. Used by the
// retry affordance of the error view.
func (c *EmployeesController) Refresh(ctx context.Context) {
	c.load(ctx)
}

func (c *EmployeesController) load(ctx context.Context) {
	c.list.Load(ctx, func(ctx context.Context) ([]models.Employee, error) {
		return c.api.ListEmployees(ctx)
	})
}

// SetSearch updates the free-text query and republishes. No refetch: search
// is a client-side projection.
func (c *EmployeesController) SetSearch(query string) {
	c.mu.Lock()
	c.filters.SearchQuery = query
	c.mu.Unlock()

	c.republish()
}

// SelectDepartment sets the facet filter; view.DepartmentAll clears it.
func (c *EmployeesController) SelectDepartment(department string) {
	c.mu.Lock()
	c.filters.SelectedDepartment = department
	c.mu.Unlock()

	c.republish()
}

// ToggleSort applies one sort interaction to the given column.
func (c *EmployeesController) ToggleSort(key string) {
	c.mu.Lock()
	c.filters.ToggleSort(key)
	c.mu.Unlock()

	c.republish()
}

// ClearNotice drops the transient action notice.
func (c *EmployeesController) ClearNotice() {
	c.mu.Lock()
	c.notice = Notice{}
	c.mu.Unlock()

	c.republish()
}

// Create validates the form and, when it passes, submits it and refetches
// the directory. The returned map holds per-field messages and is empty for
// a valid form; client validation short-circuits before any network call.
// A server-side rejection becomes a transient notice, not a field error,
// and is also returned so the caller can keep the form open for a retry.
func (c *EmployeesController) Create(ctx context.Context, form view.EmployeeForm) (map[string]string, error) {
	const opn = "Employees.Create"

	fieldErrors := view.ValidateEmployeeForm(form)
	if len(fieldErrors) > 0 {
		return fieldErrors, nil
	}

	_, err := c.api.CreateEmployee(ctx, gateway.CreateEmployeeInput{
		EmployeeID: form.EmployeeID,
		FullName:   form.FullName,
		Email:      form.Email,
		Department: models.Department(form.Department),
	})
	if err != nil {
		c.log.ErrorContext(ctx, "failed to create employee", sl.Op(opn), sl.Err(err))
		c.metrics.ActionFailures.WithLabelValues("create_employee").Inc()
		c.setNotice(actionNotice(err, "Failed to add employee"))

		return nil, err
	}

	c.setNotice(Notice{Text: "Employee added successfully"})
	c.load(ctx)

	return nil, nil
}

// Delete removes an employee. On success the row is removed locally without
// a refetch; on failure the list is left untouched and a notice is raised.
// The server cascades the deletion to attendance records.
func (c *EmployeesController) Delete(ctx context.Context, employeeID, fullName string) {
	const opn = "Employees.Delete"

	if err := c.api.DeleteEmployee(ctx, employeeID); err != nil {
		c.log.ErrorContext(ctx, "failed to delete employee", sl.Op(opn), sl.Err(err))
		c.metrics.ActionFailures.WithLabelValues("delete_employee").Inc()
		c.setNotice(actionNotice(err, "Failed to delete employee"))

		return
	}

	c.setNotice(Notice{Text: fmt.Sprintf("%s has been removed", fullName)})
	c.list.Update(func(employees []models.Employee) []models.Employee {
		kept := make([]models.Employee, 0, len(employees))
		for _, employee := range employees {
			if employee.EmployeeID != employeeID {
				kept = append(kept, employee)
			}
		}

		return kept
	})
}

func (c *EmployeesController) setNotice(notice Notice) {
	c.mu.Lock()
	c.notice = notice
	c.mu.Unlock()

	c.republish()
}

// republish recomputes the view model from the current fetch and filter
// state and hands it to the subscriber.
func (c *EmployeesController) republish() {
	c.mu.Lock()
	filters := c.filters
	notice := c.notice
	c.mu.Unlock()

	snap := c.list.Snapshot()
	projected := view.Project(snap.Data, filters)

	c.publish(EmployeesView{
		Status:        snap.Status,
		Error:         snap.Err,
		Employees:     projected,
		TotalCount:    len(snap.Data),
		FilteredCount: len(projected),
		Filters:       filters,
		Notice:        notice,
	})
}

// actionNotice builds the error notice for a failed action, preferring the
// server's detail over the generic fallback.
func actionNotice(err error, fallback string) Notice {
	if detail, ok := gateway.Detail(err); ok {
		return Notice{Text: detail, IsError: true}
	}

	return Notice{Text: fallback, IsError: true}
}
