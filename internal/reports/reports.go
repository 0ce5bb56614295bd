package reports

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/sahabhq/console/internal/common/cnst"
	"github.com/sahabhq/console/internal/platform"
	"github.com/sahabhq/console/internal/tenantview"
)

const (
	// monthCap bounds every series to one year of buckets.
	monthCap = 12
	// stepGuard stops the month walk on malformed ranges.
	stepGuard = 60
)

// Range is an optional date filter. Bounds are inclusive and date-only;
// unset bounds fall back to the trailing twelve calendar months.
type Range struct {
	From *time.Time
	To   *time.Time
}

// ParseRange builds a Range from the from/to query values. Blank values
// leave the bound unset.
func ParseRange(from, to string) (Range, error) {
	var r Range
	if strings.TrimSpace(from) != "" {
		t, ok := tenantview.ParseDate(from)
		if !ok {
			return Range{}, fmt.Errorf("invalid from date %q", from)
		}
		r.From = &t
	}
	if strings.TrimSpace(to) != "" {
		t, ok := tenantview.ParseDate(to)
		if !ok {
			return Range{}, fmt.Errorf("invalid to date %q", to)
		}
		r.To = &t
	}
	return r, nil
}

// Filtered reports whether the caller supplied any bound.
func (r Range) Filtered() bool {
	return r.From != nil || r.To != nil
}

// Effective resolves the range against now. An unset To ends today; an
// unset From starts at the first day of the month eleven months before To.
func (r Range) Effective(now time.Time) (from, to time.Time) {
	to = dateOf(now)
	if r.To != nil {
		to = dateOf(*r.To)
	}
	from = monthStart(to).AddDate(0, -(monthCap - 1), 0)
	if r.From != nil {
		from = dateOf(*r.From)
	}
	return from, to
}

// RevenuePoint is one month of revenue. ARR accumulates amount times
// twelve per payment, a naive annualization kept for chart continuity.
type RevenuePoint struct {
	Month string  `json:"month"`
	MRR   float64 `json:"mrr"`
	ARR   float64 `json:"arr"`
}

// SubscriberPoint is one month of subscriber movement.
type SubscriberPoint struct {
	Month   string `json:"month"`
	New     int    `json:"new"`
	Churned int    `json:"churned"`
}

// ConversionReport is the converted versus not-converted split.
type ConversionReport struct {
	Converted    int `json:"converted"`
	NotConverted int `json:"not_converted"`
}

// PaymentStatus is the normalized state of a payment.
type PaymentStatus string

const (
	PaymentSuccessful PaymentStatus = "successful"
	PaymentFailed     PaymentStatus = "failed"
	PaymentCanceled   PaymentStatus = "canceled"
	PaymentPending    PaymentStatus = "pending"
)

// NormalizeStatus folds the upstream payment status vocabulary into four
// states. Unknown values count as pending rather than failing the report.
func NormalizeStatus(raw string) PaymentStatus {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "completed", "successful", "success", "paid":
		return PaymentSuccessful
	case "failed", "failure", "declined":
		return PaymentFailed
	case "canceled", "cancelled", "void":
		return PaymentCanceled
	default:
		return PaymentPending
	}
}

// MonthSequence walks the first-of-month dates from from to to. The walk
// is capped at stepGuard iterations and trimmed to the most recent
// monthCap entries; an inverted range collapses to from's month. The
// result is never empty.
func MonthSequence(from, to time.Time) []time.Time {
	start := monthStart(from)
	end := monthStart(to)
	if start.After(end) {
		return []time.Time{start}
	}

	months := make([]time.Time, 0, monthCap)
	cursor := start
	for steps := 0; !cursor.After(end) && steps < stepGuard; steps++ {
		months = append(months, cursor)
		cursor = cursor.AddDate(0, 1, 0)
	}
	if len(months) > monthCap {
		months = months[len(months)-monthCap:]
	}
	return months
}

// RevenueSeries buckets successful payments by calendar month across the
// effective range.
func RevenueSeries(payments []platform.Payment, r Range, now time.Time) []RevenuePoint {
	from, to := r.Effective(now)
	months := MonthSequence(from, to)

	points := make([]RevenuePoint, len(months))
	index := make(map[string]int, len(months))
	for i, m := range months {
		points[i] = RevenuePoint{Month: m.Format(cnst.MonthLayout)}
		index[points[i].Month] = i
	}

	for _, p := range payments {
		if NormalizeStatus(p.PaymentStatus) != PaymentSuccessful {
			continue
		}
		d, ok := tenantview.ParseDate(p.CreatedAt)
		if !ok || !inRange(d, from, to) {
			continue
		}
		if i, ok := index[d.Format(cnst.MonthLayout)]; ok {
			points[i].MRR += p.Amount
			points[i].ARR += p.Amount * 12
		}
	}
	return points
}

// SubscriberSeries buckets subscriber movement by calendar month. New
// follows created_at; churned follows end_date for subscriptions that
// are inactive and already ended.
func SubscriberSeries(subs []platform.Subscription, r Range, now time.Time) []SubscriberPoint {
	from, to := r.Effective(now)
	months := MonthSequence(from, to)

	points := make([]SubscriberPoint, len(months))
	index := make(map[string]int, len(months))
	for i, m := range months {
		points[i] = SubscriberPoint{Month: m.Format(cnst.MonthLayout)}
		index[points[i].Month] = i
	}

	for _, s := range subs {
		if created, ok := tenantview.ParseDate(s.CreatedAt); ok && inRange(created, from, to) {
			if i, ok := index[created.Format(cnst.MonthLayout)]; ok {
				points[i].New++
			}
		}
		if s.IsActive {
			continue
		}
		end, ok := tenantview.ParseDate(s.EndDate)
		if !ok || !end.Before(now) || !inRange(end, from, to) {
			continue
		}
		if i, ok := index[end.Format(cnst.MonthLayout)]; ok {
			points[i].Churned++
		}
	}
	return points
}

// Conversion counts active in-range subscriptions against the company
// total. The denominator uses the date-filtered company count only when
// a filter is set and matches at least one company, otherwise the
// unfiltered total. The asymmetry is inherited behavior; see DESIGN.md.
func Conversion(subs []platform.Subscription, companies []platform.Company, r Range, now time.Time) ConversionReport {
	from, to := r.Effective(now)

	converted := 0
	for _, s := range subs {
		if !s.IsActive {
			continue
		}
		if d, ok := tenantview.ParseDate(s.CreatedAt); ok && inRange(d, from, to) {
			converted++
		}
	}

	total := len(companies)
	if r.Filtered() {
		filtered := 0
		for _, c := range companies {
			if d, ok := tenantview.ParseDate(c.CreatedAt); ok && inRange(d, from, to) {
				filtered++
			}
		}
		if filtered > 0 {
			total = filtered
		}
	}

	notConverted := total - converted
	if notConverted < 0 {
		notConverted = 0
	}
	return ConversionReport{Converted: converted, NotConverted: notConverted}
}

// RecentSuccessful returns the n most recent successful payments, newest
// first. Payments with unparsable dates sort last.
func RecentSuccessful(payments []platform.Payment, n int) []platform.Payment {
	recent := make([]platform.Payment, 0, len(payments))
	for _, p := range payments {
		if NormalizeStatus(p.PaymentStatus) == PaymentSuccessful {
			recent = append(recent, p)
		}
	}
	sort.SliceStable(recent, func(i, j int) bool {
		di, iok := tenantview.ParseDate(recent[i].CreatedAt)
		dj, jok := tenantview.ParseDate(recent[j].CreatedAt)
		if iok != jok {
			return iok
		}
		return di.After(dj)
	})
	if n >= 0 && len(recent) > n {
		recent = recent[:n]
	}
	return recent
}

func inRange(d, from, to time.Time) bool {
	return !d.Before(from) && !d.After(to)
}

func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func monthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}
