package view_test

import (
	"testing"

	"github.com/staffyhq/staffy-console/internal/view"
	"github.com/stretchr/testify/assert"
	"github.com/tamathecxder/randomail"
)

func TestValidateEmployeeForm_EmptySubmission(t *testing.T) {
	t.Parallel()

	validationErrors := view.ValidateEmployeeForm(view.EmployeeForm{})

	assert.Equal(t, map[string]string{
		view.FieldEmployeeID: "Employee ID is required",
		view.FieldFullName:   "Full name is required",
		view.FieldEmail:      "Email is required",
		view.FieldDepartment: "Department is required",
	}, validationErrors)
}

func TestValidateEmployeeForm_InvalidEmailOnly(t *testing.T) {
	t.Parallel()

	form := view.EmployeeForm{
		EmployeeID: "E1",
		FullName:   "A",
		Email:      "bad",
		Department: "HR",
	}

	validationErrors := view.ValidateEmployeeForm(form)

	assert.Equal(t, map[string]string{view.FieldEmail: "Invalid email format"}, validationErrors)
}

func TestValidateEmployeeForm_EmailFormats(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		email   string
		message string
	}{
		{"missing at sign", "alice.company.com", "Invalid email format"},
		{"missing domain dot", "alice@company", "Invalid email format"},
		{"whitespace inside", "al ice@company.com", "Invalid email format"},
		{"double at sign", "alice@@company.com", "Invalid email format"},
		{"blank is required, not invalid", "   ", "Email is required"},
		{"plain address", "alice@company.com", ""},
		{"subdomain address", "alice@mail.company.co.uk", ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			form := view.EmployeeForm{
				EmployeeID: "EMP100",
				FullName:   "Alice Doe",
				Email:      tc.email,
				Department: "Engineering",
			}

			validationErrors := view.ValidateEmployeeForm(form)

			if tc.message == "" {
				assert.NotContains(t, validationErrors, view.FieldEmail)
			} else {
				assert.Equal(t, tc.message, validationErrors[view.FieldEmail])
			}
		})
	}
}

func TestValidateEmployeeForm_GeneratedEmailsAreAccepted(t *testing.T) {
	t.Parallel()

	for range 5 {
		email := randomail.GenerateRandomEmail()
		form := view.EmployeeForm{
			EmployeeID: "EMP200",
			FullName:   "Generated User",
			Email:      email,
			Department: "Sales",
		}

		assert.Empty(t, view.ValidateEmployeeForm(form), "email %q should validate", email)
	}
}

func TestValidateEmployeeForm_DepartmentMembership(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		department string
		valid      bool
	}{
		{"known department", "Finance", true},
		{"unknown department", "Legal", false},
		{"wrong case", "hr", false},
		{"whitespace only", "  ", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			form := view.EmployeeForm{
				EmployeeID: "EMP300",
				FullName:   "Bob Roe",
				Email:      "bob@company.com",
				Department: tc.department,
			}

			validationErrors := view.ValidateEmployeeForm(form)

			if tc.valid {
				assert.Empty(t, validationErrors)
			} else {
				assert.Equal(t, map[string]string{view.FieldDepartment: "Department is required"}, validationErrors)
			}
		})
	}
}

func TestValidateEmployeeForm_WhitespaceOnlyFieldsAreRequired(t *testing.T) {
	t.Parallel()

	form := view.EmployeeForm{
		EmployeeID: "   ",
		FullName:   "\t",
		Email:      "ok@company.com",
		Department: "IT",
	}

	validationErrors := view.ValidateEmployeeForm(form)

	assert.Equal(t, map[string]string{
		view.FieldEmployeeID: "Employee ID is required",
		view.FieldFullName:   "Full name is required",
	}, validationErrors)
}
