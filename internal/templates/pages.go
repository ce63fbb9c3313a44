// Package templates renders the employee screen. The markup lives in
// html/template sources and is exposed as templ components so handlers
// render everything through the same templ.Component contract.
package templates

import (
	"html/template"
	"net/url"
	"time"

	"github.com/a-h/templ"

	"github.com/csg33k/employee-manager/internal/controller"
	"github.com/csg33k/employee-manager/internal/domain"
	"github.com/csg33k/employee-manager/internal/notify"
)

type viewModel struct {
	controller.Screen
	SortOptions []domain.SortOption
}

func newViewModel(s controller.Screen) viewModel {
	return viewModel{Screen: s, SortOptions: domain.SortOptions}
}

// Page is the full document, used on first load.
func Page(s controller.Screen) templ.Component {
	return templ.FromGoHTML(screenTmpl.Lookup("page"), newViewModel(s))
}

// App is the swappable #app region every htmx intent re-renders.
func App(s controller.Screen) templ.Component {
	return templ.FromGoHTML(screenTmpl.Lookup("app"), newViewModel(s))
}

var funcs = template.FuncMap{
	"currency": Currency,
	"number":   Number,
	"date":     Date,
	"path":     func(id domain.ID) string { return url.PathEscape(id.String()) },
	"ttl": func(n notify.Notification, now time.Time) int64 {
		return millis(n.Remaining(now))
	},
	"loadFailed": func(st controller.LoadStatus) bool { return st == controller.StatusLoadFailed },
}

var screenTmpl = template.Must(template.New("screen").Funcs(funcs).Parse(pageSrc + appSrc))

const pageSrc = `{{define "page"}}<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>Employee Manager</title>
<script src="https://unpkg.com/htmx.org@1.9.12"></script>
<link href="https://fonts.googleapis.com/css2?family=IBM+Plex+Mono:wght@400;500;600&family=IBM+Plex+Sans:wght@300;400;500;600&display=swap" rel="stylesheet">
<style>
  :root{--ink:#0d1117;--paper:#f5f0e8;--ledger:#e8e0cc;--accent:#c0392b;--accent2:#2c6e49;--muted:#6b5e4e;--rule:#b8a898;}
  *{box-sizing:border-box;}
  body{background:var(--paper);color:var(--ink);font-family:'IBM Plex Sans',sans-serif;margin:0;min-height:100vh;}
  .mono{font-family:'IBM Plex Mono',monospace;}
  .wrap{max-width:1200px;margin:0 auto;padding:32px 24px;}
  .card{background:rgba(255,255,255,0.7);border:1px solid var(--ledger);border-left:4px solid var(--ink);padding:16px 20px;}
  .stats{display:grid;grid-template-columns:repeat(4,1fr);gap:12px;margin-bottom:24px;}
  .stat-value{font-family:'IBM Plex Mono',monospace;font-size:1.4rem;font-weight:600;}
  .label{font-family:'IBM Plex Mono',monospace;font-size:0.6rem;font-weight:600;letter-spacing:0.1em;text-transform:uppercase;color:var(--muted);display:block;margin-bottom:2px;}
  .toolbar{display:flex;gap:12px;align-items:center;margin-bottom:20px;flex-wrap:wrap;}
  input,select{background:white;border:1px solid var(--rule);border-bottom:2px solid var(--ink);padding:6px 8px;font-family:'IBM Plex Mono',monospace;font-size:0.85rem;outline:none;}
  input:focus,select:focus{border-bottom-color:var(--accent);}
  .btn{font-family:'IBM Plex Mono',monospace;font-weight:600;font-size:0.75rem;letter-spacing:0.08em;padding:8px 16px;border:2px solid var(--ink);cursor:pointer;text-transform:uppercase;background:white;text-decoration:none;color:var(--ink);}
  .btn-primary{background:var(--ink);color:white;}
  .btn-primary:hover{background:var(--accent);border-color:var(--accent);}
  .btn-danger{color:var(--accent);border-color:var(--accent);}
  .grid{display:grid;grid-template-columns:repeat(auto-fill,minmax(320px,1fr));gap:12px;}
  .row{display:flex;justify-content:space-between;font-size:0.8rem;padding:3px 0;border-bottom:1px solid var(--ledger);}
  .salary{color:var(--accent2);font-weight:600;}
  .empty{text-align:center;padding:48px;color:var(--muted);}
  .modal{position:fixed;inset:0;background:rgba(13,17,23,0.5);display:flex;align-items:center;justify-content:center;}
  .modal .card{width:min(520px,92vw);background:white;}
  .form-grid{display:grid;grid-template-columns:1fr 1fr;gap:12px;}
  .form-grid input{width:100%;}
  .toasts{position:fixed;top:16px;right:16px;display:flex;flex-direction:column;gap:8px;z-index:10;}
  .toast{display:flex;gap:10px;align-items:center;background:white;border-left:4px solid var(--accent2);padding:10px 14px;box-shadow:0 2px 6px rgba(0,0,0,0.15);transition:opacity 0.3s;}
  .toast.error{border-left-color:var(--accent);}
  .toast.warning{border-left-color:#d68910;}
  .toast.fade-out{opacity:0;}
  .toast-close{background:none;border:none;font-size:1.1rem;cursor:pointer;}
</style>
</head>
<body>
<div class="wrap">
  <div style="display:flex;justify-content:space-between;align-items:flex-end;margin-bottom:24px;">
    <div>
      <div class="label">Employee Directory</div>
      <h1 class="mono" style="margin:0;font-size:1.6rem;">Employee Manager</h1>
    </div>
    <div style="display:flex;gap:8px;align-items:center;">
      <input id="searchInput" type="search" name="search" value="{{.Criteria.Search}}" placeholder="Search name, email, role, department..."
        hx-post="/ui/search" hx-trigger="input changed delay:250ms, search" hx-target="#app" style="width:320px;">
      <button class="btn" type="button" title="Clear search"
        hx-post="/ui/search/clear" hx-target="#app"
        hx-on::after-request="document.getElementById('searchInput').value=''">&times;</button>
    </div>
  </div>
  <div id="app">{{template "app" .}}</div>
</div>
<script>
function scheduleToasts(root) {
  root.querySelectorAll('.toast[data-ttl]').forEach(function (el) {
    if (el.dataset.scheduled) return;
    el.dataset.scheduled = '1';
    setTimeout(function () {
      el.classList.add('fade-out');
      setTimeout(function () { el.remove(); }, 300);
    }, parseInt(el.dataset.ttl, 10));
  });
}
document.addEventListener('DOMContentLoaded', function () { scheduleToasts(document); });
document.body.addEventListener('htmx:afterSwap', function () { scheduleToasts(document); });
document.addEventListener('keydown', function (e) {
  if (e.key === 'Escape' && document.querySelector('.modal')) {
    htmx.ajax('POST', '/ui/modal/close', {target: '#app'});
  }
});
</script>
</body>
</html>{{end}}`

const appSrc = `{{define "app"}}
<div class="stats">
  <div class="card"><span class="label">Total Employees</span><div class="stat-value">{{.Stats.Count}}</div></div>
  <div class="card"><span class="label">Total Salary</span><div class="stat-value">{{currency .Stats.TotalSalary}}</div></div>
  <div class="card"><span class="label">Average Salary</span><div class="stat-value">{{currency .Stats.AvgSalary}}</div></div>
  <div class="card"><span class="label">Departments</span><div class="stat-value">{{.Stats.DepartmentCount}}</div></div>
</div>

<div class="toolbar">
  <select name="department" hx-post="/ui/filter" hx-trigger="change" hx-target="#app">
    <option value="">All Departments</option>
    {{range .Departments}}<option value="{{.}}"{{if eq . $.Criteria.Department}} selected{{end}}>{{.}}</option>{{end}}
  </select>
  <select name="sort" hx-post="/ui/sort" hx-trigger="change" hx-target="#app">
    {{range .SortOptions}}<option value="{{.Key}}"{{if eq .Key $.Criteria.Sort}} selected{{end}}>{{.Label}}</option>{{end}}
  </select>
  <div style="flex:1;"></div>
  <a class="btn" href="/ui/report.pdf">Export PDF</a>
  <button class="btn btn-primary" hx-get="/ui/employees/new" hx-target="#app">Add Employee +</button>
</div>

{{if and (loadFailed .Status) .Employees}}
<div class="card" style="border-left-color:var(--accent);margin-bottom:16px;display:flex;justify-content:space-between;align-items:center;">
  <span>Could not refresh employees. Showing the last loaded data.</span>
  <button class="btn" hx-post="/ui/reload" hx-target="#app">Retry</button>
</div>
{{end}}

{{if .Employees}}
<div class="grid">
  {{range .Employees}}
  <div class="card">
    <div style="display:flex;justify-content:space-between;align-items:flex-start;margin-bottom:10px;">
      <div>
        <h3 class="mono" style="margin:0;font-size:1rem;">{{.Name}}</h3>
        <p style="margin:2px 0 0;font-size:0.8rem;color:var(--muted);">{{.Email}}</p>
      </div>
      <div style="display:flex;gap:6px;">
        <button class="btn" style="padding:4px 10px;" title="Edit"
          hx-get="/ui/employees/{{path .ID}}/edit" hx-target="#app">Edit</button>
        <button class="btn btn-danger" style="padding:4px 10px;" title="Delete"
          hx-delete="/ui/employees/{{path .ID}}" hx-target="#app"
          hx-confirm="Are you sure you want to delete this employee?">Delete</button>
      </div>
    </div>
    <div class="row"><span class="label">Role</span><span>{{.Role}}</span></div>
    <div class="row"><span class="label">Department</span><span>{{.Department}}</span></div>
    <div class="row"><span class="label">Salary</span><span class="mono salary">${{number .Salary}}</span></div>
    <div class="row"><span class="label">Date Joined</span><span>{{date .DateJoined}}</span></div>
  </div>
  {{end}}
</div>
{{else}}
<div class="card empty">
  <h3 class="mono">{{.Empty.Title}}</h3>
  <p>{{.Empty.Message}}</p>
  {{if loadFailed .Status}}<button class="btn" hx-post="/ui/reload" hx-target="#app">Retry</button>{{end}}
</div>
{{end}}

{{if .Modal.Open}}
<div class="modal">
  <div class="card">
    <div style="display:flex;justify-content:space-between;align-items:center;margin-bottom:16px;">
      <h2 class="mono" style="margin:0;font-size:1.1rem;">{{.Modal.Title}}</h2>
      <button class="toast-close" type="button" hx-post="/ui/modal/close" hx-target="#app">&times;</button>
    </div>
    <form hx-post="/ui/employees" hx-target="#app">
      {{if .Modal.Editing}}<input type="hidden" name="id" value="{{.Modal.Form.ID}}">{{end}}
      <div class="form-grid">
        <div style="grid-column:1/-1;"><label class="label" for="name">Name *</label>
          <input id="name" name="name" required value="{{.Modal.Form.Name}}"></div>
        <div style="grid-column:1/-1;"><label class="label" for="email">Email *</label>
          <input id="email" name="email" type="email" required value="{{.Modal.Form.Email}}"></div>
        <div><label class="label" for="role">Role *</label>
          <input id="role" name="role" required value="{{.Modal.Form.Role}}"></div>
        <div><label class="label" for="department">Department *</label>
          <input id="department" name="department" required value="{{.Modal.Form.Department}}"></div>
        <div><label class="label" for="salary">Salary *</label>
          <input id="salary" name="salary" type="number" min="0" step="0.01" required value="{{.Modal.Form.Salary}}"></div>
        <div><label class="label" for="date_joined">Date Joined *</label>
          <input id="date_joined" name="date_joined" type="date" required value="{{.Modal.Form.DateJoined}}"></div>
      </div>
      <div style="margin-top:16px;display:flex;gap:8px;justify-content:flex-end;">
        <button class="btn" type="button" hx-post="/ui/modal/close" hx-target="#app">Cancel</button>
        <button class="btn btn-primary" type="submit">Save</button>
      </div>
    </form>
  </div>
</div>
{{end}}

<div class="toasts">
  {{range .Notifications}}
  <div class="toast {{.Kind}}" data-ttl="{{ttl . $.Now}}">
    <p style="margin:0;font-size:0.85rem;">{{.Message}}</p>
    <button class="toast-close" hx-delete="/ui/notifications/{{.ID}}" hx-target="#app">&times;</button>
  </div>
  {{end}}
</div>
{{end}}`
