// Package controller coordinates the employee screen. User intents come
// in through Dispatch; remote mutations go out through the store, and
// their results are applied to the local collection before the view is
// derived again.
package controller

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/csg33k/employee-manager/internal/domain"
	"github.com/csg33k/employee-manager/internal/notify"
	"github.com/csg33k/employee-manager/internal/ports"
	"github.com/csg33k/employee-manager/internal/state"
	"github.com/csg33k/employee-manager/internal/view"
)

type LoadStatus int

const (
	StatusLoading LoadStatus = iota
	StatusReady
	StatusLoadFailed
)

// EmptyState says why the grid has nothing to show.
type EmptyState int

const (
	EmptyNone EmptyState = iota
	EmptyNoEmployees
	EmptyNoMatch
	EmptyLoadFailed
)

func (e EmptyState) Title() string {
	switch e {
	case EmptyNoEmployees:
		return "No Employees Found"
	case EmptyNoMatch:
		return "No Employees Match Your Search"
	case EmptyLoadFailed:
		return "Cannot Reach the Employee Service"
	}
	return ""
}

func (e EmptyState) Message() string {
	switch e {
	case EmptyNoEmployees:
		return "Start by adding your first employee to the system"
	case EmptyNoMatch:
		return "Try adjusting your search or filter criteria"
	case EmptyLoadFailed:
		return "Failed to load employees. Make sure the backend is running, then retry."
	}
	return ""
}

// Modal is the add/edit dialog.
type Modal struct {
	Open    bool
	Editing bool
	ID      domain.ID
	Form    Form
}

func (m Modal) Title() string {
	if m.Editing {
		return "Edit Employee"
	}
	return "Add Employee"
}

// Screen is everything the page needs to render one frame.
type Screen struct {
	Status        LoadStatus
	Employees     []domain.Employee
	Stats         domain.Statistics
	Departments   []string
	Criteria      domain.Criteria
	Modal         Modal
	Notifications []notify.Notification
	Empty         EmptyState
	Now           time.Time
}

type Controller struct {
	store   ports.EmployeeStore
	notices *notify.Center
	log     *slog.Logger

	mu          sync.Mutex
	coll        *state.Collection
	status      LoadStatus
	criteria    domain.Criteria
	departments []string
	stats       domain.Statistics
	projection  []domain.Employee
	modal       Modal
}

func New(store ports.EmployeeStore, notices *notify.Center, log *slog.Logger) *Controller {
	if notices == nil {
		notices = notify.NewCenter()
	}
	if log == nil {
		log = slog.Default()
	}
	c := &Controller{
		store:       store,
		notices:     notices,
		log:         log,
		coll:        state.NewCollection(),
		criteria:    domain.DefaultCriteria(),
		departments: []string{},
		projection:  []domain.Employee{},
	}
	return c
}

// Dispatch handles one intent. Store failures never escape: they are
// logged and surfaced as error notifications.
func (c *Controller) Dispatch(ctx context.Context, in Intent) {
	c.log.Debug("dispatch", "intent", in.Kind.String(), "id", in.ID.String())
	switch in.Kind {
	case IntentLoad:
		c.load(ctx)
	case IntentSearchChanged:
		c.withCriteria(func(cr *domain.Criteria) { cr.Search = in.Value })
	case IntentSearchCleared:
		c.withCriteria(func(cr *domain.Criteria) { cr.Search = "" })
	case IntentFilterChanged:
		c.withCriteria(func(cr *domain.Criteria) {
			cr.Department = view.ReconcileDepartment(c.departments, in.Value)
		})
	case IntentSortChanged:
		c.withCriteria(func(cr *domain.Criteria) {
			key := domain.SortKey(in.Value)
			if !key.Valid() {
				c.log.Warn("unknown sort key", "key", in.Value)
				key = domain.DefaultSortKey
			}
			cr.Sort = key
		})
	case IntentAddRequested:
		c.openAdd()
	case IntentEditRequested:
		c.openEdit(in.ID)
	case IntentModalClosed:
		c.closeModal()
	case IntentFormSubmitted:
		c.submit(ctx, in.Form)
	case IntentDeleteRequested:
		c.remove(ctx, in.ID)
	case IntentNotificationDismissed:
		c.notices.Dismiss(in.Value)
	default:
		c.log.Warn("unknown intent", "kind", int(in.Kind))
	}
}

// Snapshot returns the current frame. The returned slices are copies.
func (c *Controller) Snapshot() Screen {
	c.mu.Lock()
	s := Screen{
		Status:      c.status,
		Employees:   slices.Clone(c.projection),
		Stats:       c.stats,
		Departments: slices.Clone(c.departments),
		Criteria:    c.criteria,
		Modal:       c.modal,
	}
	total := c.coll.Len()
	c.mu.Unlock()

	if len(s.Employees) == 0 {
		switch {
		case s.Status == StatusLoadFailed:
			s.Empty = EmptyLoadFailed
		case total == 0:
			s.Empty = EmptyNoEmployees
		default:
			s.Empty = EmptyNoMatch
		}
	}
	s.Notifications = c.notices.Active()
	s.Now = c.notices.Now()
	return s
}

// Roster returns the current projection for export.
func (c *Controller) Roster() ports.Roster {
	c.mu.Lock()
	defer c.mu.Unlock()
	return ports.Roster{
		Employees: slices.Clone(c.projection),
		Stats:     c.stats,
		Criteria:  c.criteria,
	}
}

// ── Criteria and modal ────────────────────────────────────────────────────────

func (c *Controller) withCriteria(fn func(*domain.Criteria)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fn(&c.criteria)
	c.projectLocked()
}

func (c *Controller) openAdd() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.coll.BeginCreate()
	c.modal = Modal{Open: true}
}

func (c *Controller) openEdit(id domain.ID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.coll.Find(id)
	if !ok {
		c.log.Warn("edit requested for unknown employee", "id", id.String())
		c.notices.Error("That employee no longer exists. Reload to refresh the list.")
		return
	}
	c.coll.BeginEdit(id)
	c.modal = Modal{Open: true, Editing: true, ID: id, Form: FormFrom(e)}
}

func (c *Controller) closeModal() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closeModalLocked()
}

func (c *Controller) closeModalLocked() {
	c.coll.BeginCreate()
	c.modal = Modal{}
}

// ── Remote flows ──────────────────────────────────────────────────────────────

func (c *Controller) load(ctx context.Context) {
	records, err := c.store.List(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.log.Error("error loading employees", "err", err)
		c.status = StatusLoadFailed
		return
	}
	c.status = StatusReady
	c.coll.ReplaceAll(records)
	c.refreshLocked()
}

// submit saves f. The form names its own target, so an update goes to
// f.ID whatever the modal showed before and an empty ID always creates.
func (c *Controller) submit(ctx context.Context, f Form) {
	id, editing := f.ID, f.ID != ""
	c.mu.Lock()
	if editing {
		c.coll.BeginEdit(id)
	} else {
		c.coll.BeginCreate()
	}
	c.modal = Modal{Open: true, Editing: editing, ID: id, Form: f}
	c.mu.Unlock()

	draft, err := f.Draft()
	if err != nil {
		c.log.Info("rejected employee form", "err", err)
		c.notices.Error("Invalid employee data: " + err.Error())
		return
	}

	// A started request is never cancelled, even if the browser goes away.
	ctx = context.WithoutCancel(ctx)

	if editing {
		updated, err := c.store.Update(ctx, id, draft)
		if err != nil {
			c.fail("Failed to update employee. Please try again.", "error updating employee", err)
			return
		}
		c.mu.Lock()
		if !c.coll.ReplaceOne(id, updated) {
			c.log.Warn("updated employee missing from collection", "id", id.String())
		}
		c.closeModalLocked()
		c.refreshLocked()
		c.mu.Unlock()
		c.notices.Success("Employee updated successfully!")
		return
	}

	created, err := c.store.Create(ctx, draft)
	if err != nil {
		c.fail("Failed to create employee. Please check the data and try again.", "error creating employee", err)
		return
	}
	c.mu.Lock()
	c.coll.Append(created)
	c.closeModalLocked()
	c.refreshLocked()
	c.mu.Unlock()
	c.notices.Success("Employee added successfully!")
}

func (c *Controller) remove(ctx context.Context, id domain.ID) {
	if err := c.store.Delete(context.WithoutCancel(ctx), id); err != nil {
		c.fail("Failed to delete employee. Please try again.", "error deleting employee", err)
		return
	}
	c.mu.Lock()
	if !c.coll.RemoveOne(id) {
		c.log.Warn("deleted employee missing from collection", "id", id.String())
	}
	c.refreshLocked()
	c.mu.Unlock()
	c.notices.Success("Employee deleted successfully!")
}

// fail logs err and shows message, extended with the service's detail or
// a not-found hint when there is one.
func (c *Controller) fail(message, logMsg string, err error) {
	c.log.Error(logMsg, "err", err)
	var serr *domain.StatusError
	switch {
	case errors.Is(err, domain.ErrNotFound):
		message = "That employee no longer exists. Reload to refresh the list."
	case errors.As(err, &serr) && serr.Detail != "" && errors.Is(err, domain.ErrValidation):
		message += " (" + serr.Detail + ")"
	}
	c.notices.Error(message)
}

// ── Derivation ────────────────────────────────────────────────────────────────

// refreshLocked recomputes everything derived from the collection.
func (c *Controller) refreshLocked() {
	records := c.coll.All()
	c.departments = view.DepartmentOptions(records)
	c.criteria.Department = view.ReconcileDepartment(c.departments, c.criteria.Department)
	c.stats = view.Summarize(records)
	c.projection = view.Project(records, c.criteria)
}

func (c *Controller) projectLocked() {
	c.projection = view.Project(c.coll.All(), c.criteria)
}
