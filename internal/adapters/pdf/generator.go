// Package pdf generates a printable roster of the employees currently in
// view. The report opens with the aggregate statistics and the active
// search/filter/sort criteria, followed by one table row per employee.
package pdf

import (
	"context"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/go-pdf/fpdf"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/csg33k/employee-manager/internal/domain"
	"github.com/csg33k/employee-manager/internal/ports"
)

// RosterExporter satisfies ports.RosterExporter.
type RosterExporter struct {
	now func() time.Time
}

func NewRosterExporter() *RosterExporter {
	return &RosterExporter{now: time.Now}
}

type column struct {
	title string
	frac  float64
	align string
}

var columns = []column{
	{"Name", 0.19, "L"},
	{"Email", 0.25, "L"},
	{"Role", 0.16, "L"},
	{"Department", 0.15, "L"},
	{"Salary", 0.12, "R"},
	{"Joined", 0.13, "L"},
}

// Export writes a Letter-size PDF for r to w.
func (x *RosterExporter) Export(ctx context.Context, r ports.Roster, w io.Writer) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetMargins(18, 18, 18)
	pdf.SetAutoPageBreak(true, 18)
	pdf.AliasNbPages("{nb}")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	generated := x.now().Format("Jan 2, 2006 15:04")

	pdf.SetHeaderFunc(func() { drawHeader(pdf) })
	pdf.SetFooterFunc(func() { drawFooter(pdf, generated) })

	pdf.AddPage()
	drawSummary(pdf, tr, r)
	drawTable(pdf, tr, r.Employees)

	return pdf.Output(w)
}

// ── Sections ─────────────────────────────────────────────────────────────────

func drawHeader(pdf *fpdf.Fpdf) {
	pageW, _ := pdf.GetPageSize()
	marginL, marginT, marginR, _ := pdf.GetMargins()
	contentW := pageW - marginL - marginR

	pdf.SetFillColor(30, 30, 30)
	pdf.Rect(marginL, marginT, contentW, 10, "F")
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetXY(marginL+2, marginT+1.5)
	pdf.CellFormat(contentW-4, 7, "EMPLOYEE ROSTER", "", 0, "L", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginL, marginT+14)
}

func drawFooter(pdf *fpdf.Fpdf, generated string) {
	pageW, pageH := pdf.GetPageSize()
	marginL, _, marginR, marginB := pdf.GetMargins()
	contentW := pageW - marginL - marginR

	pdf.SetXY(marginL, pageH-marginB+4)
	pdf.SetFont("Helvetica", "I", 7.5)
	pdf.SetTextColor(130, 130, 130)
	pdf.CellFormat(contentW/2, 5, "Generated "+generated, "", 0, "L", false, 0, "")
	pdf.CellFormat(contentW/2, 5, fmt.Sprintf("Page %d of {nb}", pdf.PageNo()), "", 0, "R", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
}

func drawSummary(pdf *fpdf.Fpdf, tr func(string) string, r ports.Roster) {
	pageW, _ := pdf.GetPageSize()
	marginL, _, marginR, _ := pdf.GetMargins()
	contentW := pageW - marginL - marginR
	quarter := contentW / 4

	pdf.SetFillColor(240, 240, 240)
	pdf.SetFont("Helvetica", "B", 7.5)
	for i, label := range []string{"TOTAL EMPLOYEES", "TOTAL SALARY", "AVERAGE SALARY", "DEPARTMENTS"} {
		ln := 0
		if i == 3 {
			ln = 1
		}
		pdf.CellFormat(quarter, 5.5, label, "LRT", ln, "L", true, 0, "")
	}
	pdf.SetFont("Helvetica", "B", 12)
	values := []string{
		fmt.Sprint(r.Stats.Count),
		dollars(r.Stats.TotalSalary, 0),
		dollars(r.Stats.AvgSalary, 0),
		fmt.Sprint(r.Stats.DepartmentCount),
	}
	for i, v := range values {
		ln := 0
		if i == 3 {
			ln = 1
		}
		pdf.CellFormat(quarter, 8, v, "LRB", ln, "L", false, 0, "")
	}

	pdf.Ln(3)
	pdf.SetFont("Helvetica", "", 8.5)
	pdf.SetTextColor(90, 90, 90)
	pdf.CellFormat(contentW, 5, tr(describeCriteria(r.Criteria, len(r.Employees))), "", 1, "L", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(2)
}

func drawTable(pdf *fpdf.Fpdf, tr func(string) string, employees []domain.Employee) {
	pageW, _ := pdf.GetPageSize()
	marginL, _, marginR, _ := pdf.GetMargins()
	contentW := pageW - marginL - marginR

	header := func() {
		pdf.SetFillColor(30, 30, 30)
		pdf.SetTextColor(255, 255, 255)
		pdf.SetFont("Helvetica", "B", 8.5)
		for i, c := range columns {
			ln := 0
			if i == len(columns)-1 {
				ln = 1
			}
			pdf.CellFormat(contentW*c.frac, 7, c.title, "1", ln, c.align, true, 0, "")
		}
		pdf.SetTextColor(0, 0, 0)
	}
	header()

	if len(employees) == 0 {
		pdf.SetFont("Helvetica", "I", 9)
		pdf.CellFormat(contentW, 8, "No employees match the current criteria.", "1", 1, "C", false, 0, "")
		return
	}

	_, pageH := pdf.GetPageSize()
	_, _, _, marginB := pdf.GetMargins()
	rowH := 6.5
	pdf.SetFont("Helvetica", "", 8.5)
	for i, e := range employees {
		if pdf.GetY()+rowH > pageH-marginB {
			pdf.AddPage()
			header()
			pdf.SetFont("Helvetica", "", 8.5)
		}
		if i%2 == 0 {
			pdf.SetFillColor(250, 250, 250)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}
		cells := []string{
			e.Name, e.Email, e.Role, e.Department,
			dollars(e.Salary, 2),
			joined(e.DateJoined),
		}
		for j, c := range columns {
			ln := 0
			if j == len(columns)-1 {
				ln = 1
			}
			w := contentW * c.frac
			pdf.CellFormat(w, rowH, fit(pdf, tr(cells[j]), w-2), "1", ln, c.align, true, 0, "")
		}
	}
}

// ── Helpers ──────────────────────────────────────────────────────────────────

// dollars rounds halves away from zero, like the on-screen figures.
func dollars(amount float64, decimals int) string {
	scale := math.Pow10(decimals)
	p := message.NewPrinter(language.AmericanEnglish)
	return "$" + p.Sprintf("%.*f", decimals, math.Round(amount*scale)/scale)
}

func joined(s string) string {
	t, ok := domain.ParseDate(s)
	if !ok {
		return s
	}
	return t.Format("Jan 2, 2006")
}

func describeCriteria(c domain.Criteria, shown int) string {
	dept := c.Department
	if dept == domain.AllDepartments {
		dept = "all departments"
	}
	s := fmt.Sprintf("%d shown - %s - sorted by %s", shown, dept, sortLabel(c.Sort))
	if c.Search != "" {
		s += fmt.Sprintf(" - search %q", c.Search)
	}
	return s
}

func sortLabel(k domain.SortKey) string {
	for _, o := range domain.SortOptions {
		if o.Key == k {
			return o.Label
		}
	}
	return "input order"
}

// fit truncates s with "..." until it is at most w wide.
func fit(pdf *fpdf.Fpdf, s string, w float64) string {
	if pdf.GetStringWidth(s) <= w {
		return s
	}
	r := []rune(s)
	for len(r) > 0 && pdf.GetStringWidth(string(r)+"...") > w {
		r = r[:len(r)-1]
	}
	return string(r) + "..."
}
