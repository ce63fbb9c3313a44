package templates

import (
	"math"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/csg33k/employee-manager/internal/domain"
)

// Printers are not safe for concurrent use; each call builds its own.
func printer() *message.Printer {
	return message.NewPrinter(language.AmericanEnglish)
}

// Currency renders a whole-dollar amount, e.g. "$70,000". Halves round
// away from zero.
func Currency(amount float64) string {
	if amount < 0 {
		return "-$" + printer().Sprintf("%.0f", math.Round(-amount))
	}
	return "$" + printer().Sprintf("%.0f", math.Round(amount))
}

// Number renders an amount with two decimals, e.g. "70,000.00". Halves
// round away from zero.
func Number(amount float64) string {
	return printer().Sprintf("%.2f", math.Round(amount*100)/100)
}

// Date renders a join date as "Jan 2, 2006". Unparsable input is shown
// unchanged.
func Date(s string) string {
	t, ok := domain.ParseDate(s)
	if !ok {
		return s
	}
	return t.Format("Jan 2, 2006")
}

// millis converts a duration to whole milliseconds for client-side timers.
func millis(d time.Duration) int64 {
	return d.Milliseconds()
}
