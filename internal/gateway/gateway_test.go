package gateway_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/staffyhq/staffy-console/internal/gateway"
	"github.com/staffyhq/staffy-console/internal/metrics"
	"github.com/staffyhq/staffy-console/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.Handler) *gateway.Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	m := metrics.NewMetrics(prometheus.NewRegistry())

	return gateway.NewClient(log, server.Client(), m, server.URL)
}

func TestListEmployees(t *testing.T) {
	t.Parallel()

	expected := []models.Employee{
		{EmployeeID: "EMP001", FullName: "Meera Iyer", Email: "meera@company.com", Department: models.DeptIT, TotalPresent: 15},
		{EmployeeID: "EMP002", FullName: "Rohan Das", Email: "rohan@company.com", Department: models.DeptHR, TotalAbsent: 2},
	}

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/employees", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Accept"))

		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(expected))
	}))

	employees, err := client.ListEmployees(context.Background())

	require.NoError(t, err)
	assert.Equal(t, expected, employees)
}

func TestCreateEmployee(t *testing.T) {
	t.Parallel()

	input := gateway.CreateEmployeeInput{
		EmployeeID: "EMP010",
		FullName:   "Anita Rao",
		Email:      "anita@company.com",
		Department: models.DeptFinance,
	}

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/employees", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var received gateway.CreateEmployeeInput
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		assert.Equal(t, input, received)

		w.WriteHeader(http.StatusCreated)
		require.NoError(t, json.NewEncoder(w).Encode(models.Employee{
			EmployeeID: received.EmployeeID,
			FullName:   received.FullName,
			Email:      received.Email,
			Department: received.Department,
		}))
	}))

	created, err := client.CreateEmployee(context.Background(), input)

	require.NoError(t, err)
	assert.Equal(t, "EMP010", created.EmployeeID)
	assert.Equal(t, models.DeptFinance, created.Department)
}

func TestCreateEmployee_DuplicateIdentifier(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"detail": "Employee ID already exists"}`))
	}))

	_, err := client.CreateEmployee(context.Background(), gateway.CreateEmployeeInput{EmployeeID: "EMP001"})

	require.Error(t, err)

	var validationErr *gateway.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "Employee ID already exists", validationErr.Detail)

	detail, ok := gateway.Detail(err)
	assert.True(t, ok)
	assert.Equal(t, "Employee ID already exists", detail)
}

func TestDeleteEmployee(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/employees/EMP001", r.URL.Path)

		w.WriteHeader(http.StatusNoContent)
	}))

	require.NoError(t, client.DeleteEmployee(context.Background(), "EMP001"))
}

func TestDeleteEmployee_NotFound(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"detail": "Employee not found"}`))
	}))

	err := client.DeleteEmployee(context.Background(), "EMP404")

	var notFoundErr *gateway.NotFoundError
	require.ErrorAs(t, err, &notFoundErr)
	assert.Equal(t, "Employee not found", notFoundErr.Detail)
}

func TestFetchDashboard(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/dashboard", r.URL.Path)

		_, _ = w.Write([]byte(`{
			"total_employees": 12,
			"total_present_today": 9,
			"total_absent_today": 3,
			"department_count": 4
		}`))
	}))

	summary, err := client.FetchDashboard(context.Background())

	require.NoError(t, err)
	assert.Equal(t, models.DashboardSummary{
		TotalEmployees:    12,
		TotalPresentToday: 9,
		TotalAbsentToday:  3,
		DepartmentCount:   4,
	}, summary)
	assert.Equal(t, 75, summary.AttendanceRate())
}

func TestMarkAttendance(t *testing.T) {
	t.Parallel()

	input := gateway.MarkAttendanceInput{
		EmployeeID: "EMP001",
		Date:       "2024-01-15",
		Status:     models.StatusPresent,
	}

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/attendance", r.URL.Path)

		var received gateway.MarkAttendanceInput
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		assert.Equal(t, input, received)

		require.NoError(t, json.NewEncoder(w).Encode(models.AttendanceRecord{
			ID:         7,
			EmployeeID: received.EmployeeID,
			Date:       received.Date,
			Status:     received.Status,
		}))
	}))

	record, err := client.MarkAttendance(context.Background(), input)

	require.NoError(t, err)
	assert.Equal(t, 7, record.ID)
	assert.Equal(t, models.StatusPresent, record.Status)
}

func TestEmployeeAttendance(t *testing.T) {
	t.Parallel()

	t.Run("without date filter", func(t *testing.T) {
		t.Parallel()

		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/attendance/employee/EMP001", r.URL.Path)
			assert.Empty(t, r.URL.Query().Get("date"))

			_, _ = w.Write([]byte(`[{"id": 1, "employee_id": "EMP001", "date": "2024-01-15", "status": "Present"}]`))
		}))

		records, err := client.EmployeeAttendance(context.Background(), "EMP001", "")

		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "2024-01-15", records[0].Date)
	})

	t.Run("with date filter", func(t *testing.T) {
		t.Parallel()

		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/attendance/employee/EMP001", r.URL.Path)
			assert.Equal(t, "2024-01-15", r.URL.Query().Get("date"))

			_, _ = w.Write([]byte(`[]`))
		}))

		records, err := client.EmployeeAttendance(context.Background(), "EMP001", "2024-01-15")

		require.NoError(t, err)
		assert.Empty(t, records)
	})
}

func TestAttendanceByDate(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/attendance/date/2024-01-15", r.URL.Path)

		_, _ = w.Write([]byte(`[
			{"id": 1, "employee_id": "EMP001", "employee_name": "Meera Iyer", "date": "2024-01-15", "status": "Present"},
			{"id": 2, "employee_id": "EMP002", "employee_name": "Rohan Das", "date": "2024-01-15", "status": "Absent"}
		]`))
	}))

	records, err := client.AttendanceByDate(context.Background(), "2024-01-15")

	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "Meera Iyer", records[0].EmployeeName)
	assert.Equal(t, models.StatusAbsent, records[1].Status)
}

func TestClient_ServerError(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"detail": "database unavailable"}`))
	}))

	_, err := client.ListEmployees(context.Background())

	var serverErr *gateway.ServerError
	require.ErrorAs(t, err, &serverErr)
	assert.Equal(t, http.StatusInternalServerError, serverErr.StatusCode)
	assert.Equal(t, "database unavailable", serverErr.Detail)
}

func TestClient_UnparseableErrorBodyStillClassifies(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`<html>bad gateway</html>`))
	}))

	_, err := client.ListEmployees(context.Background())

	var validationErr *gateway.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Empty(t, validationErr.Detail)

	_, ok := gateway.Detail(err)
	assert.False(t, ok)
}

func TestClient_NetworkError(t *testing.T) {
	t.Parallel()

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	m := metrics.NewMetrics(prometheus.NewRegistry())
	httpClient := &http.Client{Timeout: time.Second}

	// Unroutable port: the request never reaches a server.
	client := gateway.NewClient(log, httpClient, m, "http://127.0.0.1:1")

	_, err := client.ListEmployees(context.Background())

	var networkErr *gateway.NetworkError
	require.ErrorAs(t, err, &networkErr)

	_, ok := gateway.Detail(err)
	assert.False(t, ok)
}

func TestClient_ContextCancellation(t *testing.T) {
	t.Parallel()

	started := make(chan struct{})
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(started)
		<-r.Context().Done()
	}))

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		<-started
		cancel()
	}()

	_, err := client.ListEmployees(ctx)

	var networkErr *gateway.NetworkError
	require.ErrorAs(t, err, &networkErr)
}
