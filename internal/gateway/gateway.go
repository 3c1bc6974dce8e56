package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/staffyhq/staffy-console/internal/metrics"
	"github.com/staffyhq/staffy-console/internal/models"
)

// API is the remote data boundary of the console. Every call is a single
// request/response round-trip against the Staffy HTTP API; no logic lives
// behind it.
type API interface {
	ListEmployees(ctx context.Context) ([]models.Employee, error)
	CreateEmployee(ctx context.Context, input CreateEmployeeInput) (models.Employee, error)
	DeleteEmployee(ctx context.Context, employeeID string) error
	FetchDashboard(ctx context.Context) (models.DashboardSummary, error)
	MarkAttendance(ctx context.Context, input MarkAttendanceInput) (models.AttendanceRecord, error)
	EmployeeAttendance(ctx context.Context, employeeID, dateFilter string) ([]models.AttendanceRecord, error)
	AttendanceByDate(ctx context.Context, date string) ([]models.AttendanceRecord, error)
}

// CreateEmployeeInput is the body of POST /employees.
type CreateEmployeeInput struct {
	EmployeeID string            `json:"employee_id"`
	FullName   string            `json:"full_name"`
	Email      string            `json:"email"`
	Department models.Department `json:"department"`
}

// MarkAttendanceInput is the body of POST /attendance. Marking the same
// (employee, date) pair again is an upsert on the server side.
type MarkAttendanceInput struct {
	EmployeeID string                  `json:"employee_id"`
	Date       string                  `json:"date"`
	Status     models.AttendanceStatus `json:"status"`
}

// Client implements API over HTTP/JSON.
type Client struct {
	log     *slog.Logger
	client  *http.Client
	metrics *metrics.Metrics
	baseURL string
}

// NewClient creates an API client for the Staffy backend at baseURL.
func NewClient(log *slog.Logger, httpClient *http.Client, m *metrics.Metrics, baseURL string) *Client {
	return &Client{
		log:     log,
		client:  httpClient,
		metrics: m,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// ListEmployees retrieves all employees.
func (c *Client) ListEmployees(ctx context.Context) ([]models.Employee, error) {
	var employees []models.Employee
	if err := c.do(ctx, "list_employees", http.MethodGet, "/employees", nil, &employees); err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}

	return employees, nil
}

// CreateEmployee creates a new employee. The server rejects duplicate
// identifiers with a ValidationError.
func (c *Client) CreateEmployee(ctx context.Context, input CreateEmployeeInput) (models.Employee, error) {
	var created models.Employee
	if err := c.do(ctx, "create_employee", http.MethodPost, "/employees", input, &created); err != nil {
		return models.Employee{}, fmt.Errorf("failed to create employee: %w", err)
	}

	return created, nil
}

// DeleteEmployee deletes an employee by identifier. The server cascades the
// deletion to the employee's attendance records.
func (c *Client) DeleteEmployee(ctx context.Context, employeeID string) error {
	path := "/employees/" + url.PathEscape(employeeID)
	if err := c.do(ctx, "delete_employee", http.MethodDelete, path, nil, nil); err != nil {
		return fmt.Errorf("failed to delete employee %q: %w", employeeID, err)
	}

	return nil
}

// FetchDashboard retrieves the aggregate attendance summary.
func (c *Client) FetchDashboard(ctx context.Context) (models.DashboardSummary, error) {
	var summary models.DashboardSummary
	if err := c.do(ctx, "fetch_dashboard", http.MethodGet, "/dashboard", nil, &summary); err != nil {
		return models.DashboardSummary{}, fmt.Errorf("failed to fetch dashboard: %w", err)
	}

	return summary, nil
}

// MarkAttendance records an attendance status for one employee on one date.
func (c *Client) MarkAttendance(ctx context.Context, input MarkAttendanceInput) (models.AttendanceRecord, error) {
	var record models.AttendanceRecord
	if err := c.do(ctx, "mark_attendance", http.MethodPost, "/attendance", input, &record); err != nil {
		return models.AttendanceRecord{}, fmt.Errorf("failed to mark attendance: %w", err)
	}

	return record, nil
}

// EmployeeAttendance retrieves one employee's attendance records, optionally
// narrowed to a single date.
func (c *Client) EmployeeAttendance(ctx context.Context, employeeID, dateFilter string) ([]models.AttendanceRecord, error) {
	path := "/attendance/employee/" + url.PathEscape(employeeID)
	if dateFilter != "" {
		path += "?date=" + url.QueryEscape(dateFilter)
	}

	var records []models.AttendanceRecord
	if err := c.do(ctx, "employee_attendance", http.MethodGet, path, nil, &records); err != nil {
		return nil, fmt.Errorf("failed to get attendance for employee %q: %w", employeeID, err)
	}

	return records, nil
}

// AttendanceByDate retrieves every employee's attendance record for a date.
// Each record carries the denormalized employee name.
func (c *Client) AttendanceByDate(ctx context.Context, date string) ([]models.AttendanceRecord, error) {
	path := "/attendance/date/" + url.PathEscape(date)

	var records []models.AttendanceRecord
	if err := c.do(ctx, "attendance_by_date", http.MethodGet, path, nil, &records); err != nil {
		return nil, fmt.Errorf("failed to get attendance for date %q: %w", date, err)
	}

	return records, nil
}

// do performs a single round-trip and decodes the response into out, if out
// is non-nil. Failures are classified per the API error taxonomy.
func (c *Client) do(ctx context.Context, operation, method, path string, body, out any) error {
	startTime := time.Now()
	defer func() {
		duration := time.Since(startTime).Seconds()
		c.metrics.APIRequestDuration.WithLabelValues(operation).Observe(duration)
	}()

	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request %s %s: %w", method, path, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		c.metrics.APIRequests.WithLabelValues(operation, "failure").Inc()
		return &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		c.metrics.APIRequests.WithLabelValues(operation, "failure").Inc()
		c.log.DebugContext(ctx, "API request rejected",
			"operation", operation, "status_code", resp.StatusCode)

		return classify(resp.StatusCode, resp.Body)
	}

	c.metrics.APIRequests.WithLabelValues(operation, "success").Inc()

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}

	if err = json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response body: %w", err)
	}

	return nil
}

// classify maps a non-2xx response onto the error taxonomy, carrying the
// server's detail message along when one is present.
func classify(statusCode int, body io.Reader) error {
	var payload struct {
		Detail string `json:"detail"`
	}
	// Detail is best-effort; an unparseable error body still classifies.
	_ = json.NewDecoder(body).Decode(&payload)

	switch {
	case statusCode == http.StatusNotFound:
		return &NotFoundError{Detail: payload.Detail}
	case statusCode < http.StatusInternalServerError:
		return &ValidationError{Detail: payload.Detail}
	default:
		return &ServerError{StatusCode: statusCode, Detail: payload.Detail}
	}
}
