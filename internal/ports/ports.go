package ports

import (
	"context"
	"io"

	"github.com/csg33k/employee-manager/internal/domain"
)

// EmployeeStore defines the remote employee collection. Implementations
// perform exactly one remote call per method and never touch local state.
type EmployeeStore interface {
	List(ctx context.Context) ([]domain.Employee, error)
	Create(ctx context.Context, d domain.Draft) (domain.Employee, error)
	Update(ctx context.Context, id domain.ID, d domain.Draft) (domain.Employee, error)
	Delete(ctx context.Context, id domain.ID) error
}

// Roster is the data behind an exported report: the current projection
// together with the statistics and criteria that produced it.
type Roster struct {
	Employees []domain.Employee
	Stats     domain.Statistics
	Criteria  domain.Criteria
}

// RosterExporter defines the report output port.
type RosterExporter interface {
	// Export writes a complete report for r to w.
	Export(ctx context.Context, r Roster, w io.Writer) error
}
