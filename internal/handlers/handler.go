package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/a-h/templ"

	"github.com/csg33k/employee-manager/internal/controller"
	"github.com/csg33k/employee-manager/internal/domain"
	"github.com/csg33k/employee-manager/internal/ports"
	"github.com/csg33k/employee-manager/internal/templates"
)

var errInvalidID = errors.New("invalid id")

type Handler struct {
	sessions *Sessions
	export   ports.RosterExporter
	log      *slog.Logger
}

func New(sessions *Sessions, export ports.RosterExporter, log *slog.Logger) *Handler {
	if log == nil {
		log = slog.Default()
	}
	return &Handler{sessions: sessions, export: export, log: log}
}

func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", h.index)
	mux.HandleFunc("GET /healthz", h.healthz)
	mux.HandleFunc("GET /ui/report.pdf", h.report)

	mux.HandleFunc("POST /ui/reload", h.intent(fixed(controller.Load())))
	mux.HandleFunc("POST /ui/search", h.intent(formValue("search", controller.SearchChanged)))
	mux.HandleFunc("POST /ui/search/clear", h.intent(fixed(controller.SearchCleared())))
	mux.HandleFunc("POST /ui/filter", h.intent(formValue("department", controller.FilterChanged)))
	mux.HandleFunc("POST /ui/sort", h.intent(formValue("sort", controller.SortChanged)))

	mux.HandleFunc("GET /ui/employees/new", h.intent(fixed(controller.AddRequested())))
	mux.HandleFunc("GET /ui/employees/{id}/edit", h.intent(recordID(controller.EditRequested)))
	mux.HandleFunc("POST /ui/employees", h.intent(employeeForm))
	mux.HandleFunc("DELETE /ui/employees/{id}", h.intent(recordID(controller.DeleteRequested)))
	mux.HandleFunc("POST /ui/modal/close", h.intent(fixed(controller.ModalClosed())))
	mux.HandleFunc("DELETE /ui/notifications/{id}", h.intent(notificationID))
	return mux
}

// index renders the full page, loading the collection if it has not been
// loaded yet or the last attempt failed.
func (h *Handler) index(w http.ResponseWriter, r *http.Request) {
	ctl := h.sessions.Controller(w, r)
	if ctl.Snapshot().Status != controller.StatusReady {
		ctl.Dispatch(r.Context(), controller.Load())
	}
	render(w, r, templates.Page(ctl.Snapshot()))
}

func (h *Handler) healthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("ok"))
}

func (h *Handler) report(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	ctl := h.sessions.Controller(w, r)
	loadOnce(r, ctl)
	if err := h.export.Export(r.Context(), ctl.Roster(), &buf); err != nil {
		h.log.Error("error exporting roster", "err", err)
		http.Error(w, err.Error(), 500)
		return
	}
	filename := fmt.Sprintf("employees_%s.pdf", time.Now().Format("20060102"))
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	w.Write(buf.Bytes())
}

// intent builds an intent from the request, dispatches it to the
// session's controller and re-renders the #app region.
func (h *Handler) intent(build func(*http.Request) (controller.Intent, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		in, err := build(r)
		if err != nil {
			http.Error(w, err.Error(), 400)
			return
		}
		ctl := h.sessions.Controller(w, r)
		if in.Kind != controller.IntentLoad {
			loadOnce(r, ctl)
		}
		ctl.Dispatch(r.Context(), in)
		render(w, r, templates.App(ctl.Snapshot()))
	}
}

// loadOnce fills a session that has never loaded, e.g. one that expired
// while its page stayed open.
func loadOnce(r *http.Request, ctl *controller.Controller) {
	if ctl.Snapshot().Status == controller.StatusLoading {
		ctl.Dispatch(r.Context(), controller.Load())
	}
}

func fixed(in controller.Intent) func(*http.Request) (controller.Intent, error) {
	return func(*http.Request) (controller.Intent, error) { return in, nil }
}

func formValue(key string, mk func(string) controller.Intent) func(*http.Request) (controller.Intent, error) {
	return func(r *http.Request) (controller.Intent, error) {
		if err := r.ParseForm(); err != nil {
			return controller.Intent{}, err
		}
		return mk(r.FormValue(key)), nil
	}
}

func recordID(mk func(domain.ID) controller.Intent) func(*http.Request) (controller.Intent, error) {
	return func(r *http.Request) (controller.Intent, error) {
		id, err := pathID(r, "id")
		if err != nil {
			return controller.Intent{}, err
		}
		return mk(id), nil
	}
}

func notificationID(r *http.Request) (controller.Intent, error) {
	id := r.PathValue("id")
	if id == "" {
		return controller.Intent{}, errInvalidID
	}
	return controller.NotificationDismissed(id), nil
}

func employeeForm(r *http.Request) (controller.Intent, error) {
	if err := r.ParseForm(); err != nil {
		return controller.Intent{}, err
	}
	return controller.FormSubmitted(controller.Form{
		ID:         domain.ID(strings.TrimSpace(r.FormValue("id"))),
		Name:       r.FormValue("name"),
		Email:      r.FormValue("email"),
		Role:       r.FormValue("role"),
		Department: r.FormValue("department"),
		Salary:     r.FormValue("salary"),
		DateJoined: r.FormValue("date_joined"),
	}), nil
}

// render writes a templ component to the response.
func render(w http.ResponseWriter, r *http.Request, c templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := c.Render(r.Context(), w); err != nil {
		http.Error(w, err.Error(), 500)
	}
}

func pathID(r *http.Request, key string) (domain.ID, error) {
	v := r.PathValue(key)
	if v == "" {
		return "", errInvalidID
	}
	return domain.ID(v), nil
}
