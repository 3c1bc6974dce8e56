package view

import (
	"regexp"
	"strings"

	"github.com/staffyhq/staffy-console/internal/models"
)

// Form field names, matching the wire field names of POST /employees.
const (
	FieldEmployeeID = "employee_id"
	FieldFullName   = "full_name"
	FieldEmail      = "email"
	FieldDepartment = "department"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// EmployeeForm is a create-employee submission before validation.
type EmployeeForm struct {
	EmployeeID string
	FullName   string
	Email      string
	Department string
}

// ValidateEmployeeForm checks a submission against the field rules and
// returns field name -> message for every failing field; an empty map means
// the form is valid. Per field the first failing rule wins. Validation is
// synchronous and total: no network call is involved, server-side rules
// (such as duplicate identifiers) are reported by the API on submit.
func ValidateEmployeeForm(form EmployeeForm) map[string]string {
	validationErrors := make(map[string]string)

	if strings.TrimSpace(form.EmployeeID) == "" {
		validationErrors[FieldEmployeeID] = "Employee ID is required"
	}

	if strings.TrimSpace(form.FullName) == "" {
		validationErrors[FieldFullName] = "Full name is required"
	}

	switch {
	case strings.TrimSpace(form.Email) == "":
		validationErrors[FieldEmail] = "Email is required"
	case !emailPattern.MatchString(form.Email):
		validationErrors[FieldEmail] = "Invalid email format"
	}

	if strings.TrimSpace(form.Department) == "" || !models.Department(form.Department).Valid() {
		validationErrors[FieldDepartment] = "Department is required"
	}

	return validationErrors
}
