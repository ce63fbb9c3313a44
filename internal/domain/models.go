package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the calendar-date format used for date_joined.
const DateLayout = "2006-01-02"

// AllDepartments is the department criterion that matches every record.
// Records use the same empty string to mean "no department"; empty
// departments are never offered as filter options, so the two uses
// cannot collide.
const AllDepartments = ""

// ID is the opaque, server-assigned employee identity. The backend may
// send it as a JSON number or a JSON string.
type ID string

func (id ID) String() string { return string(id) }

func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("employee id: %w", err)
	}
	*id = ID(n.String())
	return nil
}

// MarshalJSON writes ids in canonical integer form as numbers and
// everything else, including "007" or "+5", as strings.
func (id ID) MarshalJSON() ([]byte, error) {
	if n, err := strconv.ParseInt(string(id), 10, 64); err == nil && strconv.FormatInt(n, 10) == string(id) {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

// Draft is an employee record without an identity: the body of a create
// or update request.
type Draft struct {
	Name       string  `json:"name"`
	Email      string  `json:"email"`
	Role       string  `json:"role"`
	Department string  `json:"department"`
	Salary     float64 `json:"salary"`
	DateJoined string  `json:"date_joined"`
}

type Employee struct {
	ID         ID      `json:"id"`
	Name       string  `json:"name"`
	Email      string  `json:"email"`
	Role       string  `json:"role"`
	Department string  `json:"department"`
	Salary     float64 `json:"salary"`
	DateJoined string  `json:"date_joined"`
}

// Draft returns the editable fields of e.
func (e Employee) Draft() Draft {
	return Draft{
		Name:       e.Name,
		Email:      e.Email,
		Role:       e.Role,
		Department: e.Department,
		Salary:     e.Salary,
		DateJoined: e.DateJoined,
	}
}

// JoinedOn parses DateJoined as a calendar date. Full RFC 3339 timestamps
// are accepted and truncated to their date.
func (e Employee) JoinedOn() (time.Time, bool) {
	return ParseDate(e.DateJoined)
}

// ParseDate parses a YYYY-MM-DD date or an RFC 3339 timestamp.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		y, m, d := t.Date()
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), true
	}
	return time.Time{}, false
}

// SortKey selects the ordering of the projection.
type SortKey string

const (
	SortNameAsc    SortKey = "name-asc"
	SortNameDesc   SortKey = "name-desc"
	SortSalaryAsc  SortKey = "salary-asc"
	SortSalaryDesc SortKey = "salary-desc"
	SortDateAsc    SortKey = "date-asc"
	SortDateDesc   SortKey = "date-desc"

	DefaultSortKey = SortNameAsc
)

// SortOption pairs a sort key with its display label.
type SortOption struct {
	Key   SortKey
	Label string
}

// SortOptions lists every sort key in display order.
var SortOptions = []SortOption{
	{SortNameAsc, "Name (A-Z)"},
	{SortNameDesc, "Name (Z-A)"},
	{SortSalaryDesc, "Salary (High-Low)"},
	{SortSalaryAsc, "Salary (Low-High)"},
	{SortDateDesc, "Newest First"},
	{SortDateAsc, "Oldest First"},
}

// Valid reports whether k is one of the known sort keys.
func (k SortKey) Valid() bool {
	for _, o := range SortOptions {
		if o.Key == k {
			return true
		}
	}
	return false
}

// Criteria drives the projection: search text, department and sort key.
type Criteria struct {
	Search     string
	Department string // AllDepartments or an exact department name
	Sort       SortKey
}

// DefaultCriteria matches every record sorted by name.
func DefaultCriteria() Criteria {
	return Criteria{Department: AllDepartments, Sort: DefaultSortKey}
}

type Statistics struct {
	Count           int
	TotalSalary     float64
	AvgSalary       float64
	DepartmentCount int
}
