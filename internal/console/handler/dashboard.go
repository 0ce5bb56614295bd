package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/sahabhq/console/internal/common/cnst"
	"github.com/sahabhq/console/internal/i18n"
	"github.com/sahabhq/console/internal/platform"
	"github.com/sahabhq/console/internal/reports"
	"github.com/sahabhq/console/internal/tenantview"
)

// Dashboard serves the overview page aggregates.
type Dashboard struct {
	base
}

// NewDashboard creates the dashboard handler family.
func NewDashboard(d Deps) *Dashboard {
	return &Dashboard{base: d.base("handler.dashboard")}
}

// HandleOverview fetches companies, subscriptions, plans and payments
// concurrently and reduces them to the overview aggregates. One failed
// fetch fails the whole response; the dashboard keeps its last state.
func (h *Dashboard) HandleOverview(c *gin.Context) {
	token, ok := sessionToken(c)
	if !ok {
		return
	}

	var (
		companies []platform.Company
		subs      []platform.Subscription
		plans     []platform.Plan
		payments  []platform.Payment
	)

	g, ctx := errgroup.WithContext(c.Request.Context())
	g.Go(func() error {
		var err error
		companies, err = h.platform.ListCompanies(ctx, token)
		return err
	})
	g.Go(func() error {
		var err error
		subs, err = h.platform.ListSubscriptions(ctx, token)
		return err
	})
	g.Go(func() error {
		var err error
		plans, err = h.platform.ListPlans(ctx, token)
		return err
	})
	g.Go(func() error {
		var err error
		payments, err = h.platform.ListPayments(ctx, token, "", "")
		return err
	})
	if err := g.Wait(); err != nil {
		h.upstreamError(c, err)
		return
	}

	now := time.Now()
	lang := i18n.LangFromContext(c)
	tenants := tenantview.Project(companies, subs, plans, lang, now)

	byStatus := map[string]int{
		strings.ToLower(string(tenantview.StatusActive)):      0,
		strings.ToLower(string(tenantview.StatusTrial)):       0,
		strings.ToLower(string(tenantview.StatusExpired)):     0,
		strings.ToLower(string(tenantview.StatusDeactivated)): 0,
	}
	planDistribution := map[string]int{}
	for _, t := range tenants {
		byStatus[strings.ToLower(string(t.Status))]++
		if t.CurrentPlan != "" {
			planDistribution[t.CurrentPlan]++
		}
	}

	series := reports.RevenueSeries(payments, reports.Range{}, now)
	var trailingTotal, currentMonth float64
	currentLabel := now.Format(cnst.MonthLayout)
	for _, p := range series {
		trailingTotal += p.MRR
		if p.Month == currentLabel {
			currentMonth = p.MRR
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"tenants": gin.H{
			"total":     len(tenants),
			"by_status": byStatus,
		},
		"revenue": gin.H{
			"current_month":      currentMonth,
			"trailing_12_months": trailingTotal,
		},
		"recent_payments":   reports.RecentSuccessful(payments, 5),
		"plan_distribution": planDistribution,
	})
}
