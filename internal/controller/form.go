package controller

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/csg33k/employee-manager/internal/domain"
)

// Form holds the modal's fields exactly as typed, so a rejected
// submission can be shown again unchanged. ID names the record being
// edited and is empty for a new employee.
type Form struct {
	ID         domain.ID
	Name       string
	Email      string
	Role       string
	Department string
	Salary     string
	DateJoined string
}

// FormFrom pre-fills the modal for editing e.
func FormFrom(e domain.Employee) Form {
	return Form{
		ID:         e.ID,
		Name:       e.Name,
		Email:      e.Email,
		Role:       e.Role,
		Department: e.Department,
		Salary:     strconv.FormatFloat(e.Salary, 'f', -1, 64),
		DateJoined: formDate(e.DateJoined),
	}
}

// formDate shows a parsable date the way a date input expects it.
func formDate(s string) string {
	if t, ok := domain.ParseDate(s); ok {
		return t.Format(domain.DateLayout)
	}
	return s
}

// Draft converts the typed fields into a request body. Salary must be a
// non-negative number and the join date must parse as a calendar date,
// which is always sent as YYYY-MM-DD. Any other problem is left for the
// employee service to reject.
func (f Form) Draft() (domain.Draft, error) {
	salary, err := strconv.ParseFloat(strings.TrimSpace(f.Salary), 64)
	if err != nil || salary < 0 || math.IsNaN(salary) || math.IsInf(salary, 0) {
		return domain.Draft{}, &FieldError{Field: "salary", Value: f.Salary, Reason: "must be a non-negative number"}
	}
	joined, ok := domain.ParseDate(strings.TrimSpace(f.DateJoined))
	if !ok {
		return domain.Draft{}, &FieldError{Field: "date joined", Value: f.DateJoined, Reason: "must be a date (YYYY-MM-DD)"}
	}
	return domain.Draft{
		Name:       strings.TrimSpace(f.Name),
		Email:      strings.TrimSpace(f.Email),
		Role:       strings.TrimSpace(f.Role),
		Department: strings.TrimSpace(f.Department),
		Salary:     salary,
		DateJoined: joined.Format(domain.DateLayout),
	}, nil
}

// FieldError rejects one form field before any request is made. It
// matches domain.ErrValidation.
type FieldError struct {
	Field  string
	Value  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s %q %s", e.Field, e.Value, e.Reason)
}

func (e *FieldError) Unwrap() error { return domain.ErrValidation }
