// Package stats holds the pure calculations behind the admin dashboard.
//
// Nothing here touches the store or the clock. Callers pass in the records and
// the reference day.
package stats

import (
	"math"
	"time"

	"github.com/vikasdeshmukh63/ecom-backend/internal/domain/model"
)

// MarketingShare is the fraction of gross revenue booked as marketing cost.
const MarketingShare = 0.30

// CalculatePercentage returns the month-over-month change of current against
// previous, rounded half away from zero. A zero previous value yields current*100.
func CalculatePercentage(current, previous float64) int {
	if previous == 0 {
		return int(math.Round(current * 100))
	}
	return int(math.Round((current - previous) / previous * 100))
}

// CategoryDistribution returns one single-entry map per category with its rounded
// share of total, in the order categories were given. A zero total gives zero shares.
func CategoryDistribution(categories []string, counts map[string]int, total int) []map[string]int {
	out := make([]map[string]int, 0, len(categories))
	for _, c := range categories {
		share := 0
		if total > 0 {
			share = int(math.Round(float64(counts[c]) / float64(total) * 100))
		}
		out = append(out, map[string]int{c: share})
	}
	return out
}

// MonthDiff returns how many calendar months t lies before today, evaluated in
// today's location. Records in the future give a negative result.
func MonthDiff(today, t time.Time) int {
	t = t.In(today.Location())
	return (today.Year()-t.Year())*12 + int(today.Month()) - int(t.Month())
}

// MonthlyHistogram buckets records into length calendar months ending with the
// month of today. Bucket length-1 is the current month. Records outside the
// window are dropped. A nil value func counts records instead of summing.
func MonthlyHistogram[T any](length int, today time.Time, records []T, createdAt func(T) time.Time, value func(T) float64) []float64 {
	if length <= 0 {
		return []float64{}
	}
	buckets := make([]float64, length)
	for _, r := range records {
		diff := MonthDiff(today, createdAt(r))
		if diff < 0 || diff > length-1 {
			continue
		}
		v := 1.0
		if value != nil {
			v = value(r)
			if math.IsNaN(v) || math.IsInf(v, 0) {
				v = 0
			}
		}
		buckets[length-1-diff] += v
	}
	return buckets
}

// MonthlyCounts counts records per month over the window.
func MonthlyCounts[T any](length int, today time.Time, records []T, createdAt func(T) time.Time) []int {
	sums := MonthlyHistogram(length, today, records, createdAt, nil)
	out := make([]int, len(sums))
	for i, s := range sums {
		out[i] = int(s)
	}
	return out
}

// MonthlySums sums value per month over the window, rounded to two decimals.
func MonthlySums[T any](length int, today time.Time, records []T, createdAt func(T) time.Time, value func(T) float64) []float64 {
	sums := MonthlyHistogram(length, today, records, createdAt, value)
	for i, s := range sums {
		sums[i] = math.Round(s*100) / 100
	}
	return sums
}

// MonthStart returns midnight on the first day of the month offset months away from t.
func MonthStart(t time.Time, offset int) time.Time {
	return time.Date(t.Year(), t.Month()+time.Month(offset), 1, 0, 0, 0, 0, t.Location())
}

// WindowStart returns the first instant covered by a histogram of length months.
func WindowStart(today time.Time, length int) time.Time {
	return MonthStart(today, -(length - 1))
}

// RevenueBreakdown splits gross revenue. Shipping charges count as production
// cost and tax as burnt. The net margin is what remains after discounts and
// the marketing share.
func RevenueBreakdown(totals model.OrderTotals) model.RevenueDistribution {
	marketing := math.Round(totals.Total * MarketingShare)
	net := totals.Total - totals.Discount - totals.ShippingCharges - totals.Tax - marketing
	return model.RevenueDistribution{
		NetMargin:      math.Round(net*100) / 100,
		Discount:       totals.Discount,
		ProductionCost: totals.ShippingCharges,
		Burnt:          totals.Tax,
		MarketingCost:  marketing,
	}
}

// AgeGroups buckets birth dates by age on today: teen under 20, adult 20 to 39, old 40 and over.
func AgeGroups(today time.Time, birthDates []time.Time) model.UsersAgeGroup {
	var groups model.UsersAgeGroup
	for _, dob := range birthDates {
		u := model.User{DOB: dob}
		switch age := u.AgeOn(today); {
		case age < 20:
			groups.Teen++
		case age < 40:
			groups.Adult++
		default:
			groups.Old++
		}
	}
	return groups
}
