package budget

import (
	"fmt"
	"time"
)

// =============================================================================
// PERIOD - Inclusive date range used for bucketing
// =============================================================================

// Period is the inclusive range [Start, End]. A Period whose End is before
// its Start is empty: it contains no dates.
type Period struct {
	Start Date
	End   Date
}

// Contains returns true if d is within [Start, End].
func (p Period) Contains(d Date) bool {
	return d.AfterOrEqual(p.Start) && d.BeforeOrEqual(p.End)
}

// IsEmpty reports whether the period contains no dates.
func (p Period) IsEmpty() bool {
	return p.End.Before(p.Start)
}

// Days returns every day in the period, in order.
func (p Period) Days() []Date {
	var days []Date
	for current := p.Start; current.BeforeOrEqual(p.End); current = current.AddDays(1) {
		days = append(days, current)
	}
	return days
}

func (p Period) String() string {
	return "[" + p.Start.String() + ", " + p.End.String() + "]"
}

// PeriodType selects how spending is bucketed.
type PeriodType string

const (
	Weekly  PeriodType = "weekly"  // 7 daily buckets, Monday..Sunday
	Monthly PeriodType = "monthly" // monthly buckets, January..current month
)

// ParsePeriodType accepts "weekly" or "monthly".
func ParsePeriodType(s string) (PeriodType, error) {
	switch pt := PeriodType(s); pt {
	case Weekly, Monthly:
		return pt, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidPeriodType, s)
	}
}

// =============================================================================
// PERIOD CALCULATOR
// =============================================================================

// DayOf returns the single-day period for d.
func DayOf(d Date) Period {
	return Period{Start: d, End: d}
}

// WeekOf returns Monday..Sunday of the ISO week containing d.
func WeekOf(d Date) Period {
	start := StartOfWeek(d)
	return Period{Start: start, End: start.AddDays(6)}
}

// MonthOf returns the full calendar month.
func MonthOf(year int, month time.Month) Period {
	return Period{Start: StartOfMonth(year, month), End: EndOfMonth(year, month)}
}

// BucketsFor splits the reporting window of the given type around asOf:
// the 7 days of asOf's week for Weekly, the months January..asOf's month of
// asOf's year for Monthly.
func BucketsFor(pt PeriodType, asOf Date) ([]Period, error) {
	switch pt {
	case Weekly:
		days := WeekOf(asOf).Days()
		buckets := make([]Period, len(days))
		for i, day := range days {
			buckets[i] = DayOf(day)
		}
		return buckets, nil

	case Monthly:
		buckets := make([]Period, 0, int(asOf.Month()))
		for m := time.January; m <= asOf.Month(); m++ {
			buckets = append(buckets, MonthOf(asOf.Year(), m))
		}
		return buckets, nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidPeriodType, string(pt))
	}
}
