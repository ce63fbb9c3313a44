package handlers_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/csg33k/employee-manager/internal/adapters/pdf"
	"github.com/csg33k/employee-manager/internal/controller"
	"github.com/csg33k/employee-manager/internal/domain"
	"github.com/csg33k/employee-manager/internal/handlers"
	"github.com/csg33k/employee-manager/internal/notify"
)

type memStore struct {
	mu      sync.Mutex
	rows    []domain.Employee
	next    int
	listErr error
}

func (m *memStore) List(context.Context) ([]domain.Employee, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.listErr != nil {
		return nil, m.listErr
	}
	return append([]domain.Employee(nil), m.rows...), nil
}

func (m *memStore) Create(_ context.Context, d domain.Draft) (domain.Employee, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.next++
	e := domain.Employee{ID: domain.ID("new-" + strconv.Itoa(m.next)), Name: d.Name, Email: d.Email,
		Role: d.Role, Department: d.Department, Salary: d.Salary, DateJoined: d.DateJoined}
	m.rows = append(m.rows, e)
	return e, nil
}

func (m *memStore) Update(_ context.Context, id domain.ID, d domain.Draft) (domain.Employee, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, e := range m.rows {
		if e.ID == id {
			m.rows[i] = domain.Employee{ID: id, Name: d.Name, Email: d.Email,
				Role: d.Role, Department: d.Department, Salary: d.Salary, DateJoined: d.DateJoined}
			return m.rows[i], nil
		}
	}
	return domain.Employee{}, &domain.StatusError{Op: "update employee", StatusCode: 404}
}

func (m *memStore) Delete(_ context.Context, id domain.ID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, e := range m.rows {
		if e.ID == id {
			m.rows = append(m.rows[:i], m.rows[i+1:]...)
			return nil
		}
	}
	return &domain.StatusError{Op: "delete employee", StatusCode: 404}
}

// browser replays the session cookie like a real client.
type browser struct {
	h       http.Handler
	cookies []*http.Cookie
}

func newRoutes(t *testing.T, store *memStore) http.Handler {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	sessions := handlers.NewSessions(func() *controller.Controller {
		return controller.New(store, notify.NewCenter(), log)
	})
	return handlers.New(sessions, pdf.NewRosterExporter(), log).Routes()
}

func newServer(t *testing.T, store *memStore) *browser {
	t.Helper()
	return &browser{h: newRoutes(t, store)}
}

func seeded() *memStore {
	return &memStore{rows: []domain.Employee{
		{ID: "1", Name: "Alice Smith", Email: "alice@x.io", Role: "Engineer", Department: "Engineering", Salary: 90000, DateJoined: "2020-01-15"},
		{ID: "2", Name: "Bob Jones", Email: "bob@x.io", Role: "Recruiter", Department: "HR", Salary: 60000, DateJoined: "2021-06-01"},
	}}
}

func do(t *testing.T, b *browser, method, target string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req := httptest.NewRequest(method, target, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	for _, c := range b.cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	b.h.ServeHTTP(rec, req)
	if set := rec.Result().Cookies(); len(set) > 0 {
		b.cookies = set
	}
	return rec
}

func TestIndexLoadsAndRendersPage(t *testing.T) {
	h := newServer(t, seeded())
	rec := do(t, h, http.MethodGet, "/", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	body := rec.Body.String()
	assert.Contains(t, body, "<!DOCTYPE html>")
	assert.Contains(t, body, "Alice Smith")
	assert.Contains(t, body, "Bob Jones")
	assert.Contains(t, body, "$150,000")
	assert.Contains(t, body, "Jan 15, 2020")
}

func TestIndexShowsLoadFailure(t *testing.T) {
	store := seeded()
	store.listErr = errors.New("connection refused")
	h := newServer(t, store)

	body := do(t, h, http.MethodGet, "/", nil).Body.String()
	assert.Contains(t, body, "Cannot Reach the Employee Service")

	store.listErr = nil
	body = do(t, h, http.MethodPost, "/ui/reload", url.Values{}).Body.String()
	assert.Contains(t, body, "Alice Smith")
	assert.NotContains(t, body, "<!DOCTYPE html>")
}

func TestSearchAndClear(t *testing.T) {
	h := newServer(t, seeded())
	do(t, h, http.MethodGet, "/", nil)

	body := do(t, h, http.MethodPost, "/ui/search", url.Values{"search": {"recruit"}}).Body.String()
	assert.Contains(t, body, "Bob Jones")
	assert.NotContains(t, body, "Alice Smith")

	body = do(t, h, http.MethodPost, "/ui/search", url.Values{"search": {"nobody"}}).Body.String()
	assert.Contains(t, body, "No Employees Match Your Search")

	body = do(t, h, http.MethodPost, "/ui/search/clear", url.Values{}).Body.String()
	assert.Contains(t, body, "Alice Smith")
	assert.Contains(t, body, "Bob Jones")
}

func TestFilterAndSort(t *testing.T) {
	h := newServer(t, seeded())
	do(t, h, http.MethodGet, "/", nil)

	body := do(t, h, http.MethodPost, "/ui/filter", url.Values{"department": {"HR"}}).Body.String()
	assert.NotContains(t, body, "Alice Smith")
	assert.Contains(t, body, `<option value="HR" selected>`)

	do(t, h, http.MethodPost, "/ui/filter", url.Values{"department": {""}})
	body = do(t, h, http.MethodPost, "/ui/sort", url.Values{"sort": {"salary-asc"}}).Body.String()
	assert.Less(t, strings.Index(body, "Bob Jones"), strings.Index(body, "Alice Smith"))
}

func TestAddEmployeeFlow(t *testing.T) {
	store := seeded()
	h := newServer(t, store)
	do(t, h, http.MethodGet, "/", nil)

	body := do(t, h, http.MethodGet, "/ui/employees/new", nil).Body.String()
	assert.Contains(t, body, "Add Employee</h2>")

	form := url.Values{
		"name": {"Cara Diaz"}, "email": {"cara@x.io"}, "role": {"Designer"},
		"department": {"Design"}, "salary": {"70000"}, "date_joined": {"2022-03-04"},
	}
	body = do(t, h, http.MethodPost, "/ui/employees", form).Body.String()
	assert.Contains(t, body, "Cara Diaz")
	assert.Contains(t, body, "Employee added successfully!")
	assert.NotContains(t, body, `class="modal"`)
	assert.Len(t, store.rows, 3)
}

func TestInvalidFormKeepsModalOpen(t *testing.T) {
	store := seeded()
	h := newServer(t, store)
	do(t, h, http.MethodGet, "/", nil)
	do(t, h, http.MethodGet, "/ui/employees/new", nil)

	form := url.Values{
		"name": {"Cara Diaz"}, "email": {"cara@x.io"}, "role": {"Designer"},
		"department": {"Design"}, "salary": {"lots"}, "date_joined": {"2022-03-04"},
	}
	body := do(t, h, http.MethodPost, "/ui/employees", form).Body.String()
	assert.Contains(t, body, `class="modal"`)
	assert.Contains(t, body, `value="Cara Diaz"`)
	assert.Contains(t, body, "Invalid employee data")
	assert.Len(t, store.rows, 2)
}

func TestEditEmployeeFlow(t *testing.T) {
	store := seeded()
	h := newServer(t, store)
	do(t, h, http.MethodGet, "/", nil)

	body := do(t, h, http.MethodGet, "/ui/employees/1/edit", nil).Body.String()
	assert.Contains(t, body, "Edit Employee")
	assert.Contains(t, body, `value="alice@x.io"`)

	form := url.Values{
		"name": {"Alice Smith"}, "email": {"alice@x.io"}, "role": {"Staff Engineer"},
		"department": {"Engineering"}, "salary": {"95000"}, "date_joined": {"2020-01-15"},
	}
	body = do(t, h, http.MethodPost, "/ui/employees", form).Body.String()
	assert.Contains(t, body, "Staff Engineer")
	assert.Contains(t, body, "Employee updated successfully!")
	assert.Equal(t, "Staff Engineer", store.rows[0].Role)
}

func TestDeleteEmployee(t *testing.T) {
	store := seeded()
	h := newServer(t, store)
	do(t, h, http.MethodGet, "/", nil)

	body := do(t, h, http.MethodDelete, "/ui/employees/2", nil).Body.String()
	assert.NotContains(t, body, "Bob Jones")
	assert.Contains(t, body, "Employee deleted successfully!")
	assert.Len(t, store.rows, 1)
}

func TestCloseModal(t *testing.T) {
	h := newServer(t, seeded())
	do(t, h, http.MethodGet, "/", nil)
	do(t, h, http.MethodGet, "/ui/employees/new", nil)

	body := do(t, h, http.MethodPost, "/ui/modal/close", url.Values{}).Body.String()
	assert.NotContains(t, body, `class="modal"`)
}

func TestReportIsPDF(t *testing.T) {
	h := newServer(t, seeded())
	do(t, h, http.MethodGet, "/", nil)

	rec := do(t, h, http.MethodGet, "/ui/report.pdf", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "attachment;")
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF-")))
}

func TestHealthz(t *testing.T) {
	rec := do(t, newServer(t, seeded()), http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestLoggingMiddleware(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, nil))
	h := handlers.Logging(log, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ui/report.pdf", nil))

	out := buf.String()
	assert.Contains(t, out, `msg="http request completed"`)
	assert.Contains(t, out, "path=/ui/report.pdf")
	assert.Contains(t, out, "status=500")
	assert.Contains(t, out, `msg="http request failed"`)
}

func TestSaveFromStaleTabUpdatesItsOwnRecord(t *testing.T) {
	store := seeded()
	h := newServer(t, store)
	do(t, h, http.MethodGet, "/", nil)

	// Tab A opens Alice, then tab B (same browser) opens Bob.
	do(t, h, http.MethodGet, "/ui/employees/1/edit", nil)
	do(t, h, http.MethodGet, "/ui/employees/2/edit", nil)

	form := url.Values{
		"id": {"1"}, "name": {"Alice Smith-Renamed"}, "email": {"alice@x.io"}, "role": {"Engineer"},
		"department": {"Engineering"}, "salary": {"90000"}, "date_joined": {"2020-01-15"},
	}
	body := do(t, h, http.MethodPost, "/ui/employees", form).Body.String()

	assert.Equal(t, "Alice Smith-Renamed", store.rows[0].Name)
	assert.Equal(t, "Bob Jones", store.rows[1].Name)
	assert.Len(t, store.rows, 2)
	assert.Contains(t, body, "Employee updated successfully!")
}

func TestResubmittedEditFormDoesNotCreate(t *testing.T) {
	store := seeded()
	h := newServer(t, store)
	do(t, h, http.MethodGet, "/", nil)
	do(t, h, http.MethodGet, "/ui/employees/2/edit", nil)

	form := url.Values{
		"id": {"2"}, "name": {"Bob Jones"}, "email": {"bob@x.io"}, "role": {"Lead Recruiter"},
		"department": {"HR"}, "salary": {"60000"}, "date_joined": {"2021-06-01"},
	}
	do(t, h, http.MethodPost, "/ui/employees", form)
	do(t, h, http.MethodPost, "/ui/employees", form)

	assert.Len(t, store.rows, 2)
	assert.Equal(t, "Lead Recruiter", store.rows[1].Role)
}

func TestBrowsersDoNotShareCriteria(t *testing.T) {
	store := seeded()
	routes := newRoutes(t, store)
	a := &browser{h: routes}
	b := &browser{h: routes}
	do(t, a, http.MethodGet, "/", nil)
	do(t, b, http.MethodGet, "/", nil)
	require.NotEmpty(t, a.cookies)
	require.NotEmpty(t, b.cookies)
	assert.NotEqual(t, a.cookies[0].Value, b.cookies[0].Value)

	do(t, a, http.MethodPost, "/ui/filter", url.Values{"department": {"HR"}})
	do(t, a, http.MethodGet, "/ui/employees/new", nil)

	body := do(t, b, http.MethodPost, "/ui/search/clear", url.Values{}).Body.String()
	assert.Contains(t, body, "Alice Smith")
	assert.NotContains(t, body, `class="modal"`)
}

func TestUnknownSessionLoadsBeforeActing(t *testing.T) {
	store := seeded()
	h := newServer(t, store)

	body := do(t, h, http.MethodGet, "/ui/employees/1/edit", nil).Body.String()
	assert.Contains(t, body, "Edit Employee")
	assert.Contains(t, body, `value="alice@x.io"`)
}
