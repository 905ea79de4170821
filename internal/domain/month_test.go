package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseThaiMonth(t *testing.T) {
	for i, name := range ThaiMonthNames() {
		m := ParseThaiMonth(name)
		assert.True(t, m.Known(), name)
		assert.Equal(t, ThaiMonth(i+1), m)
		assert.Equal(t, name, m.String())
	}

	assert.Equal(t, January, ParseThaiMonth("  มกราคม "))
	assert.Equal(t, MonthUnknown, ParseThaiMonth("มกรา"))
	assert.Equal(t, "", MonthUnknown.String())
}

func TestComparePeriods(t *testing.T) {
	tests := []struct {
		name string
		a, b Period
		want int
	}{
		{"year first", ParsePeriod("2566", "ธันวาคม"), ParsePeriod("2567", "มกราคม"), -1},
		{"month on tie", ParsePeriod("2567", "มีนาคม"), ParsePeriod("2567", "กุมภาพันธ์"), 1},
		{"equal", ParsePeriod("2567", "มีนาคม"), ParsePeriod(" 2567", "มีนาคม"), 0},
		{"unknown month after december", ParsePeriod("2567", "ธันวา"), ParsePeriod("2567", "ธันวาคม"), 1},
		{"unknown year last", ParsePeriod("abc", "มกราคม"), ParsePeriod("2599", "ธันวาคม"), 1},
		{"both years unknown compares month", ParsePeriod("", "มกราคม"), ParsePeriod("x", "มีนาคม"), -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ComparePeriods(tt.a, tt.b))
			assert.Equal(t, -tt.want, ComparePeriods(tt.b, tt.a))
		})
	}
}

func TestSortInvoicesByPeriod(t *testing.T) {
	invoices := []Invoice{
		{ID: "a", Year: "2567", Month: "มีนาคม"},
		{ID: "b", Year: "2566", Month: "ธันวาคม"},
		{ID: "c", Year: "2567", Month: "มกราคม"},
		{ID: "d", Year: "2567", Month: "มีนาคม"},
		{ID: "e", Year: "2567", Month: "typo"},
		{ID: "f", Year: "2566", Month: "มกราคม"},
	}

	t.Run("ascending and stable", func(t *testing.T) {
		SortInvoicesByPeriod(invoices)
		assert.Equal(t, []string{"f", "b", "c", "a", "d", "e"}, ids(invoices))
	})

	t.Run("sorted list is a fixed point", func(t *testing.T) {
		before := ids(invoices)
		SortInvoicesByPeriod(invoices)
		assert.Equal(t, before, ids(invoices))
	})

	t.Run("every adjacent pair is ordered", func(t *testing.T) {
		for i := 1; i < len(invoices); i++ {
			assert.LessOrEqual(t, ComparePeriods(invoices[i-1].Period(), invoices[i].Period()), 0)
		}
	})
}

func ids(invoices []Invoice) []string {
	out := make([]string, len(invoices))
	for i, inv := range invoices {
		out[i] = inv.ID
	}
	return out
}
