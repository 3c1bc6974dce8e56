package controller

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/staffyhq/staffy-console/internal/fetchstate"
	"github.com/staffyhq/staffy-console/internal/gateway"
	"github.com/staffyhq/staffy-console/internal/metrics"
	"github.com/staffyhq/staffy-console/internal/models"
)

// overviewLimit caps the team overview table on the dashboard.
const overviewLimit = 10

// dashboardData is the composite result of the two fetches the dashboard
// needs. Both must succeed for the page to leave the loading state.
type dashboardData struct {
	Summary   models.DashboardSummary
	Employees []models.Employee
}

// DashboardView is the render-ready projection of the dashboard page.
type DashboardView struct {
	Status         fetchstate.Status
	Error          string
	Summary        models.DashboardSummary
	AttendanceRate int
	Overview       []models.Employee
	TotalEmployees int
}

// DashboardController drives the dashboard page: one composite fetch of the
// aggregate summary and the employee list, and the derived attendance rates.
type DashboardController struct {
	log     *slog.Logger
	api     gateway.API
	metrics *metrics.Metrics
	publish func(DashboardView)

	data *fetchstate.Container[dashboardData]
}

// NewDashboardController creates the dashboard controller. publish receives
// every recomputed view model.
func NewDashboardController(
	log *slog.Logger, api gateway.API, m *metrics.Metrics, publish func(DashboardView),
) *DashboardController {
	ctrl := &DashboardController{
		log:     log,
		api:     api,
		metrics: m,
		publish: publish,
	}
	ctrl.data = fetchstate.New("dashboard", m, func(fetchstate.Snapshot[dashboardData]) {
		ctrl.republish()
	})

	return ctrl
}

// Open fetches the dashboard. The summary is never cached: every visit
// recomputes it by refetch.
func (c *DashboardController) Open(ctx context.Context) {
	c.metrics.PageLoads.WithLabelValues(PageDashboard).Inc()
	c.load(ctx)
}

// Refresh refetches the dashboard, used by the retry affordance.
func (c *DashboardController) Refresh(ctx context.Context) {
	c.load(ctx)
}

// load fetches the summary and the employee list concurrently and joins the
// outcome into one fetch state.
func (c *DashboardController) load(ctx context.Context) {
	c.data.Load(ctx, func(ctx context.Context) (dashboardData, error) {
		var (
			wgr         sync.WaitGroup
			summary     models.DashboardSummary
			employees   []models.Employee
			summaryErr  error
			employeeErr error
		)

		wgr.Add(2)
		go func() {
			defer wgr.Done()
			summary, summaryErr = c.api.FetchDashboard(ctx)
		}()
		go func() {
			defer wgr.Done()
			employees, employeeErr = c.api.ListEmployees(ctx)
		}()
		wgr.Wait()

		if err := errors.Join(summaryErr, employeeErr); err != nil {
			return dashboardData{}, err
		}

		return dashboardData{Summary: summary, Employees: employees}, nil
	})
}

func (c *DashboardController) republish() {
	snap := c.data.Snapshot()

	overview := snap.Data.Employees
	if len(overview) > overviewLimit {
		overview = overview[:overviewLimit]
	}

	c.publish(DashboardView{
		Status:         snap.Status,
		Error:          snap.Err,
		Summary:        snap.Data.Summary,
		AttendanceRate: snap.Data.Summary.AttendanceRate(),
		Overview:       overview,
		TotalEmployees: len(snap.Data.Employees),
	})
}
