package tenantview

import (
	"strings"
	"time"

	"github.com/sahabhq/console/internal/common/cnst"
	"github.com/sahabhq/console/internal/platform"
)

// Status is the derived lifecycle state of a tenant.
type Status string

const (
	StatusActive  Status = "Active"
	StatusExpired Status = "Expired"
	// StatusTrial exists in the status vocabulary but the projection
	// never assigns it from subscription data; it is reserved for a
	// future plan-type aware projection.
	StatusTrial       Status = "Trial"
	StatusDeactivated Status = "Deactivated"
)

// Tenant is the display model the dashboard renders per company. It is
// derived on every read and never persisted.
type Tenant struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	Domain         string `json:"domain"`
	Specialization string `json:"specialization"`
	Owner          string `json:"owner"`
	CurrentPlan    string `json:"current_plan"`
	Status         Status `json:"status"`
	StartDate      string `json:"start_date"`
	EndDate        string `json:"end_date"`
}

// pick is one company's current-subscription candidate.
type pick struct {
	sub    platform.Subscription
	end    time.Time
	hasEnd bool
}

// Project derives the tenant list from the three upstream collections.
// Output order follows the companies input order. lang selects the plan
// display name; Arabic names are used only when non-blank.
func Project(companies []platform.Company, subs []platform.Subscription, plans []platform.Plan, lang string, now time.Time) []Tenant {
	best := bestActiveSubs(subs)

	plansByID := make(map[int64]platform.Plan, len(plans))
	for _, p := range plans {
		plansByID[p.ID] = p
	}

	tenants := make([]Tenant, 0, len(companies))
	for _, company := range companies {
		t := Tenant{
			ID:             company.ID,
			Name:           company.Name,
			Domain:         company.Domain,
			Specialization: company.Specialization,
			Owner:          company.Owner,
		}

		current, ok := best[company.ID]
		if !ok {
			t.Status = StatusDeactivated
			t.StartDate = normalizeDate(company.CreatedAt)
			tenants = append(tenants, t)
			continue
		}

		t.StartDate = normalizeDate(current.sub.StartDate)
		t.EndDate = normalizeDate(current.sub.EndDate)
		t.CurrentPlan = planDisplayName(current.sub, plansByID, lang)
		if current.hasEnd && current.end.Before(now) {
			t.Status = StatusExpired
		} else {
			t.Status = StatusActive
		}
		tenants = append(tenants, t)
	}
	return tenants
}

// bestActiveSubs picks each company's current subscription: active only,
// strictly later end date wins, ties keep the first seen. A sub with an
// unparsable end date can register only when the company has no pick
// yet, and once registered it is never displaced.
func bestActiveSubs(subs []platform.Subscription) map[int64]pick {
	best := make(map[int64]pick)
	for _, sub := range subs {
		if !sub.IsActive {
			continue
		}
		end, hasEnd := ParseDate(sub.EndDate)

		current, exists := best[sub.Company]
		if !exists {
			best[sub.Company] = pick{sub: sub, end: end, hasEnd: hasEnd}
			continue
		}
		if hasEnd && current.hasEnd && end.After(current.end) {
			best[sub.Company] = pick{sub: sub, end: end, hasEnd: hasEnd}
		}
	}
	return best
}

// planDisplayName resolves what the dashboard shows as the tenant's
// plan. The Arabic name applies only when the language is Arabic and
// the trimmed name is non-empty; a missing plan record falls back to
// the name embedded on the subscription.
func planDisplayName(sub platform.Subscription, plans map[int64]platform.Plan, lang string) string {
	plan, ok := plans[sub.Plan]
	if !ok {
		return sub.PlanName
	}
	if lang == cnst.LangAR && strings.TrimSpace(plan.NameAr) != "" {
		return plan.NameAr
	}
	return plan.Name
}

// ParseDate parses an upstream date that may arrive date-only or as a
// full timestamp. The boolean is false for blank or malformed input.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if len(s) >= len(cnst.DateLayout) {
		if t, err := time.Parse(cnst.DateLayout, s[:len(cnst.DateLayout)]); err == nil {
			return t, true
		}
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	return time.Time{}, false
}

// normalizeDate reformats a parseable date to YYYY-MM-DD and passes
// anything else through untouched.
func normalizeDate(s string) string {
	if t, ok := ParseDate(s); ok {
		return t.Format(cnst.DateLayout)
	}
	return s
}
