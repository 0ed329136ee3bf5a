package budget

import (
	"github.com/shopspring/decimal"
)

// =============================================================================
// PERIOD SPENDING - Weekly and monthly bucketing
// =============================================================================

// Bucket is the total spent within one period.
type Bucket struct {
	Period Period
	Total  decimal.Decimal
}

// Spending is the bucketed spending of one category.
//
//   Weekly:  7 buckets, one per day, Monday first
//   Monthly: one bucket per month, January through AsOf's month
type Spending struct {
	Category string
	Type     PeriodType
	AsOf     Date
	Buckets  []Bucket
}

// Totals returns the bucket totals in order.
func (s Spending) Totals() []decimal.Decimal {
	out := make([]decimal.Decimal, len(s.Buckets))
	for i, b := range s.Buckets {
		out[i] = b.Total
	}
	return out
}

// Total sums every bucket.
func (s Spending) Total() decimal.Decimal {
	total := decimal.Zero
	for _, b := range s.Buckets {
		total = total.Add(b.Total)
	}
	return total
}

// Labels names each bucket: "Mon, Jan 02" for days, "January" for months.
func (s Spending) Labels() []string {
	out := make([]string, len(s.Buckets))
	for i, b := range s.Buckets {
		if s.Type == Monthly {
			out[i] = b.Period.Start.Month().String()
		} else {
			out[i] = b.Period.Start.Format("Mon, Jan 02")
		}
	}
	return out
}

// Window is the whole range covered by the buckets.
func (s Spending) Window() Period {
	if len(s.Buckets) == 0 {
		return Period{Start: s.AsOf, End: s.AsOf.AddDays(-1)}
	}
	return Period{Start: s.Buckets[0].Period.Start, End: s.Buckets[len(s.Buckets)-1].Period.End}
}

// CalculatePeriodSpending buckets a category's spending relative to today.
func (l *Ledger) CalculatePeriodSpending(categoryName string, pt PeriodType) (Spending, error) {
	return l.PeriodSpending(categoryName, pt, l.Today())
}

// PeriodSpending buckets a category's spending relative to asOf.
func (l *Ledger) PeriodSpending(categoryName string, pt PeriodType, asOf Date) (Spending, error) {
	category, err := l.lookup(categoryName)
	if err != nil {
		return Spending{}, err
	}
	periods, err := BucketsFor(pt, asOf)
	if err != nil {
		return Spending{}, err
	}

	buckets := make([]Bucket, len(periods))
	for i, p := range periods {
		buckets[i] = Bucket{Period: p, Total: category.SpentIn(p)}
	}
	return Spending{
		Category: categoryName,
		Type:     pt,
		AsOf:     asOf,
		Buckets:  buckets,
	}, nil
}
