// Package view derives the displayed projection and aggregate statistics
// from the employee collection. Every function is pure: inputs are never
// modified and results are rebuilt from scratch on each call.
package view

import (
	"cmp"
	"math"
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/csg33k/employee-manager/internal/domain"
)

// Project filters records by the search text and department, then sorts
// the survivors by the criteria's sort key. The sort is stable: records
// comparing equal keep their input order.
func Project(records []domain.Employee, c domain.Criteria) []domain.Employee {
	query := strings.ToLower(strings.TrimSpace(c.Search))

	out := make([]domain.Employee, 0, len(records))
	for _, e := range records {
		if Matches(e, query) && inDepartment(e, c.Department) {
			out = append(out, e)
		}
	}

	if cmpFn := comparator(c.Sort); cmpFn != nil {
		slices.SortStableFunc(out, cmpFn)
	}
	return out
}

// Matches reports whether e contains query as a substring of its name,
// email, role or department. query must already be lower-cased; an
// empty query matches everything.
func Matches(e domain.Employee, query string) bool {
	if query == "" {
		return true
	}
	for _, field := range []string{e.Name, e.Email, e.Role, e.Department} {
		if strings.Contains(strings.ToLower(field), query) {
			return true
		}
	}
	return false
}

func inDepartment(e domain.Employee, dept string) bool {
	return dept == domain.AllDepartments || e.Department == dept
}

// comparator returns the ordering for key, or nil to keep input order.
func comparator(key domain.SortKey) func(a, b domain.Employee) int {
	switch key {
	case domain.SortNameAsc, domain.SortNameDesc:
		// Collators keep internal buffers, so each projection gets its own.
		col := collate.New(language.English)
		byName := func(a, b domain.Employee) int { return col.CompareString(a.Name, b.Name) }
		if key == domain.SortNameDesc {
			return reverse(byName)
		}
		return byName
	case domain.SortSalaryAsc:
		return bySalary
	case domain.SortSalaryDesc:
		return reverse(bySalary)
	case domain.SortDateAsc:
		return byDate
	case domain.SortDateDesc:
		return reverse(byDate)
	}
	return nil
}

func bySalary(a, b domain.Employee) int {
	return cmp.Compare(a.Salary, b.Salary)
}

// byDate orders by calendar date. A record whose date does not parse
// compares equal to everything.
func byDate(a, b domain.Employee) int {
	ta, okA := a.JoinedOn()
	tb, okB := b.JoinedOn()
	if !okA || !okB {
		return 0
	}
	return ta.Compare(tb)
}

func reverse(f func(a, b domain.Employee) int) func(a, b domain.Employee) int {
	return func(a, b domain.Employee) int { return f(b, a) }
}

// Summarize folds records into the header statistics. A NaN salary
// counts as 0.
func Summarize(records []domain.Employee) domain.Statistics {
	var s domain.Statistics
	depts := make(map[string]struct{})
	for _, e := range records {
		s.Count++
		if !math.IsNaN(e.Salary) {
			s.TotalSalary += e.Salary
		}
		if e.Department != "" {
			depts[e.Department] = struct{}{}
		}
	}
	if s.Count > 0 {
		s.AvgSalary = s.TotalSalary / float64(s.Count)
	}
	s.DepartmentCount = len(depts)
	return s
}

// DepartmentOptions returns the distinct non-empty departments in
// ascending order.
func DepartmentOptions(records []domain.Employee) []string {
	seen := make(map[string]struct{})
	out := []string{}
	for _, e := range records {
		if e.Department == "" {
			continue
		}
		if _, ok := seen[e.Department]; ok {
			continue
		}
		seen[e.Department] = struct{}{}
		out = append(out, e.Department)
	}
	slices.Sort(out)
	return out
}

// ReconcileDepartment keeps selected if it is still among options and
// otherwise falls back to AllDepartments. options must be sorted, as
// returned by DepartmentOptions.
func ReconcileDepartment(options []string, selected string) string {
	if selected == domain.AllDepartments {
		return selected
	}
	if _, found := slices.BinarySearch(options, selected); found {
		return selected
	}
	return domain.AllDepartments
}
