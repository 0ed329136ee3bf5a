package budget_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/budget-ledger/budget"
)

func TestStartOfWeek(t *testing.T) {
	tests := []struct {
		name string
		day  budget.Date
		want budget.Date
	}{
		{"monday", budget.NewDate(2025, time.March, 10), budget.NewDate(2025, time.March, 10)},
		{"wednesday", budget.NewDate(2025, time.March, 12), budget.NewDate(2025, time.March, 10)},
		{"sunday", budget.NewDate(2025, time.March, 16), budget.NewDate(2025, time.March, 10)},
		{"across year", budget.NewDate(2025, time.January, 1), budget.NewDate(2024, time.December, 30)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, budget.StartOfWeek(tt.day))
		})
	}
}

func TestEndOfMonth(t *testing.T) {
	assert.Equal(t, 29, budget.EndOfMonth(2024, time.February).Day())
	assert.Equal(t, 28, budget.EndOfMonth(2025, time.February).Day())
	assert.Equal(t, 31, budget.EndOfMonth(2025, time.December).Day())
}

func TestPeriod_ContainsIsInclusive(t *testing.T) {
	p := budget.MonthOf(2025, time.January)

	assert.True(t, p.Contains(budget.NewDate(2025, time.January, 1)))
	assert.True(t, p.Contains(budget.NewDate(2025, time.January, 31)))
	assert.False(t, p.Contains(budget.NewDate(2025, time.February, 1)))
	assert.False(t, p.Contains(budget.NewDate(2024, time.December, 31)))
}

func TestPeriod_Inverted(t *testing.T) {
	p := budget.Period{Start: budget.NewDate(2025, time.May, 4), End: budget.NewDate(2025, time.May, 2)}

	assert.True(t, p.IsEmpty())
	assert.Empty(t, p.Days())
	assert.False(t, p.Contains(budget.NewDate(2025, time.May, 3)))
}

func TestParsePeriodType(t *testing.T) {
	pt, err := budget.ParsePeriodType("weekly")
	require.NoError(t, err)
	assert.Equal(t, budget.Weekly, pt)

	pt, err = budget.ParsePeriodType("monthly")
	require.NoError(t, err)
	assert.Equal(t, budget.Monthly, pt)

	_, err = budget.ParsePeriodType("yearly")
	assert.ErrorIs(t, err, budget.ErrInvalidPeriodType)
}

func TestParseDate(t *testing.T) {
	d, err := budget.ParseDate("2024-02-29")
	require.NoError(t, err)
	assert.Equal(t, budget.NewDate(2024, time.February, 29), d)
	assert.Equal(t, "2024-02-29", d.String())

	_, err = budget.ParseDate("2025-02-29")
	assert.Error(t, err)
	_, err = budget.ParseDate("03/12/2025")
	assert.Error(t, err)
}

func TestDateOf_UsesCalendarDay(t *testing.T) {
	late := time.Date(2025, time.March, 12, 23, 59, 0, 0, time.FixedZone("UTC-8", -8*3600))
	assert.Equal(t, budget.NewDate(2025, time.March, 12), budget.DateOf(late))
}
