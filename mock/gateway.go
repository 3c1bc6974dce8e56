// Package mocks contains testify mocks for the gateway boundary.
package mocks

import (
	"context"

	"github.com/staffyhq/staffy-console/internal/gateway"
	"github.com/staffyhq/staffy-console/internal/models"
	"github.com/stretchr/testify/mock"
)

// API is a mock implementation of gateway.API.
type API struct {
	mock.Mock
}

func (m *API) ListEmployees(ctx context.Context) ([]models.Employee, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]models.Employee), args.Error(1)
}

func (m *API) CreateEmployee(ctx context.Context, input gateway.CreateEmployeeInput) (models.Employee, error) {
	args := m.Called(ctx, input)

	return args.Get(0).(models.Employee), args.Error(1)
}

func (m *API) DeleteEmployee(ctx context.Context, employeeID string) error {
	args := m.Called(ctx, employeeID)

	return args.Error(0)
}

func (m *API) FetchDashboard(ctx context.Context) (models.DashboardSummary, error) {
	args := m.Called(ctx)

	return args.Get(0).(models.DashboardSummary), args.Error(1)
}

func (m *API) MarkAttendance(ctx context.Context, input gateway.MarkAttendanceInput) (models.AttendanceRecord, error) {
	args := m.Called(ctx, input)

	return args.Get(0).(models.AttendanceRecord), args.Error(1)
}

func (m *API) EmployeeAttendance(ctx context.Context, employeeID, dateFilter string) ([]models.AttendanceRecord, error) {
	args := m.Called(ctx, employeeID, dateFilter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]models.AttendanceRecord), args.Error(1)
}

func (m *API) AttendanceByDate(ctx context.Context, date string) ([]models.AttendanceRecord, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]models.AttendanceRecord), args.Error(1)
}
