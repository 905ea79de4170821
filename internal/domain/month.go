package domain

import (
	"slices"
	"strconv"
	"strings"
)

// ThaiMonth is a calendar month. The zero value is MonthUnknown, used for
// names outside the fixed list (typos in back-office data entry).
type ThaiMonth int

const (
	MonthUnknown ThaiMonth = iota
	January
	February
	March
	April
	May
	June
	July
	August
	September
	October
	November
	December
)

var thaiMonthNames = [12]string{
	"มกราคม",
	"กุมภาพันธ์",
	"มีนาคม",
	"เมษายน",
	"พฤษภาคม",
	"มิถุนายน",
	"กรกฎาคม",
	"สิงหาคม",
	"กันยายน",
	"ตุลาคม",
	"พฤศจิกายน",
	"ธันวาคม",
}

// ThaiMonthNames returns the twelve month names in calendar order.
func ThaiMonthNames() []string {
	return slices.Clone(thaiMonthNames[:])
}

// ParseThaiMonth resolves a month name. Unknown names map to MonthUnknown.
func ParseThaiMonth(name string) ThaiMonth {
	name = strings.TrimSpace(name)
	for i, n := range thaiMonthNames {
		if n == name {
			return ThaiMonth(i + 1)
		}
	}
	return MonthUnknown
}

func (m ThaiMonth) Known() bool {
	return m >= January && m <= December
}

func (m ThaiMonth) String() string {
	if !m.Known() {
		return ""
	}
	return thaiMonthNames[m-1]
}

// Period is a billing period keyed by Buddhist-era year and month.
type Period struct {
	Year      int
	YearKnown bool
	Month     ThaiMonth
}

// ParsePeriod builds a Period from the raw string fields stored on invoices.
func ParsePeriod(year, month string) Period {
	p := Period{Month: ParseThaiMonth(month)}
	if y, err := strconv.Atoi(strings.TrimSpace(year)); err == nil {
		p.Year = y
		p.YearKnown = true
	}
	return p
}

// ComparePeriods orders periods by year then month. Unparseable years sort
// after every known year and unknown months sort after December of the same
// year, so bad rows end up at the bottom instead of interleaving.
func ComparePeriods(a, b Period) int {
	switch {
	case a.YearKnown && !b.YearKnown:
		return -1
	case !a.YearKnown && b.YearKnown:
		return 1
	case a.YearKnown && a.Year != b.Year:
		if a.Year < b.Year {
			return -1
		}
		return 1
	}
	return compareMonths(a.Month, b.Month)
}

func compareMonths(a, b ThaiMonth) int {
	ra, rb := monthRank(a), monthRank(b)
	switch {
	case ra < rb:
		return -1
	case ra > rb:
		return 1
	default:
		return 0
	}
}

func monthRank(m ThaiMonth) int {
	if !m.Known() {
		return int(December) + 1
	}
	return int(m)
}

// SortInvoicesByPeriod sorts invoices oldest first. The sort is stable, so
// invoices sharing a period keep the order the store returned them in.
func SortInvoicesByPeriod(invoices []Invoice) {
	slices.SortStableFunc(invoices, func(a, b Invoice) int {
		return ComparePeriods(a.Period(), b.Period())
	})
}
