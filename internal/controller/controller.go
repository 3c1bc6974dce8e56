// Package controller implements the page controllers of the console. Each
// controller owns its page-scoped filter state, composes the gateway with
// fetch-state containers and the pure view projections, and republishes a
// fresh view model whenever fetch state or filter state changes. The render
// layer subscribes to those publications and holds no state of its own.
package controller

// Page names, used for metrics labels.
const (
	PageDashboard  = "dashboard"
	PageEmployees  = "employees"
	PageAttendance = "attendance"
)

// Notice is a transient, non-blocking notification about the outcome of a
// user action. Action failures surface here and leave the page's list state
// untouched, so the action can simply be retried.
type Notice struct {
	Text    string
	IsError bool
}
