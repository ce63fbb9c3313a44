package pdf_test

import (
	"bytes"
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/csg33k/employee-manager/internal/adapters/pdf"
	"github.com/csg33k/employee-manager/internal/domain"
	"github.com/csg33k/employee-manager/internal/ports"
)

func roster(n int) ports.Roster {
	r := ports.Roster{Criteria: domain.DefaultCriteria()}
	for i := range n {
		r.Employees = append(r.Employees, domain.Employee{
			ID:         domain.ID(fmt.Sprint(i + 1)),
			Name:       fmt.Sprintf("Employee %03d with a rather long display name", i),
			Email:      fmt.Sprintf("employee%d@example.com", i),
			Role:       "Engineer",
			Department: "Engineering",
			Salary:     70000 + float64(i),
			DateJoined: "2021-06-01",
		})
	}
	r.Stats = domain.Statistics{Count: n, TotalSalary: 70000 * float64(n), AvgSalary: 70000, DepartmentCount: 1}
	return r
}

func TestExportWritesPDF(t *testing.T) {
	var buf bytes.Buffer
	err := pdf.NewRosterExporter().Export(context.Background(), roster(3), &buf)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}

func TestExportPaginatesLongRosters(t *testing.T) {
	var short, long bytes.Buffer
	require.NoError(t, pdf.NewRosterExporter().Export(context.Background(), roster(2), &short))
	require.NoError(t, pdf.NewRosterExporter().Export(context.Background(), roster(120), &long))
	assert.Greater(t, bytes.Count(long.Bytes(), []byte("/Type /Page\n")), bytes.Count(short.Bytes(), []byte("/Type /Page\n")))
}

func TestExportEmptyRoster(t *testing.T) {
	var buf bytes.Buffer
	r := ports.Roster{Employees: []domain.Employee{}, Criteria: domain.Criteria{Search: "zzz", Sort: domain.SortSalaryDesc}}
	require.NoError(t, pdf.NewRosterExporter().Export(context.Background(), r, &buf))
	assert.NotZero(t, buf.Len())
}

func TestExportHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var buf bytes.Buffer
	err := pdf.NewRosterExporter().Export(ctx, roster(1), &buf)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, buf.Len())
}
