package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sahabhq/console/internal/common/dto"
	"github.com/sahabhq/console/internal/i18n"
	"github.com/sahabhq/console/internal/platform"
	"github.com/sahabhq/console/internal/tenantview"
)

// Tenants serves the projected tenant list and company mutations.
type Tenants struct {
	base
}

// NewTenants creates the tenants handler family.
func NewTenants(d Deps) *Tenants {
	return &Tenants{base: d.base("handler.tenants")}
}

// HandleList returns every company with its projected status, plan and
// subscription window. The list is rebuilt from scratch on every call.
func (h *Tenants) HandleList(c *gin.Context) {
	token, ok := sessionToken(c)
	if !ok {
		return
	}

	companies, subs, plans, err := h.fetchProjection(c.Request.Context(), token)
	if err != nil {
		h.upstreamError(c, err)
		return
	}

	tenants := tenantview.Project(companies, subs, plans, i18n.LangFromContext(c), time.Now())
	c.JSON(http.StatusOK, tenants)
}

// HandleCreate registers a company, optionally with its first
// subscription. A failed subscription create leaves the company in
// place; the next list fetch shows it as deactivated.
func (h *Tenants) HandleCreate(c *gin.Context) {
	token, ok := sessionToken(c)
	if !ok {
		return
	}

	var req dto.CreateTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	if req.Subscription != nil && !validSubscriptionDates(req.Subscription.StartDate, req.Subscription.EndDate) {
		i18n.Error(i18n.ErrorSubscriptionDates).Send(c)
		return
	}

	ctx := c.Request.Context()
	company, err := h.platform.CreateCompany(ctx, token, platform.Company{
		Name:           req.Name,
		Domain:         req.Domain,
		Specialization: req.Specialization,
		Owner:          req.Owner,
	})
	if err != nil {
		h.upstreamError(c, err)
		return
	}
	h.logger.Info("company created",
		zap.Int64("company_id", company.ID),
		zap.String("name", company.Name))

	payload := gin.H{"company": company}
	if req.Subscription != nil {
		sub, err := h.platform.CreateSubscription(ctx, token, platform.Subscription{
			Company:   company.ID,
			Plan:      req.Subscription.Plan,
			StartDate: req.Subscription.StartDate,
			EndDate:   req.Subscription.EndDate,
			IsActive:  req.Subscription.IsActive,
		})
		if err != nil {
			h.logger.Warn("initial subscription failed after company create",
				zap.Int64("company_id", company.ID),
				zap.Error(err))
			h.upstreamError(c, err)
			return
		}
		payload["subscription"] = sub
	}

	i18n.Created(i18n.SuccessTenantCreated).WithPayload(payload).Send(c)
}

// HandleUpdate edits a company's profile fields.
func (h *Tenants) HandleUpdate(c *gin.Context) {
	token, ok := sessionToken(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req dto.UpdateTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	company, err := h.platform.UpdateCompany(c.Request.Context(), token, id, platform.Company{
		Name:           req.Name,
		Domain:         req.Domain,
		Specialization: req.Specialization,
		Owner:          req.Owner,
	})
	if err != nil {
		if isNotFound(err) {
			i18n.Error(i18n.ErrorTenantNotFound).Send(c)
			return
		}
		h.upstreamError(c, err)
		return
	}

	i18n.Success(i18n.SuccessTenantUpdated).WithPayload(gin.H{"company": company}).Send(c)
}

// HandleActivateSubscription reactivates the tenant's most recent
// subscription.
func (h *Tenants) HandleActivateSubscription(c *gin.Context) {
	h.toggleSubscription(c, true)
}

// HandleDeactivateSubscription deactivates the tenant's currently
// active subscription.
func (h *Tenants) HandleDeactivateSubscription(c *gin.Context) {
	h.toggleSubscription(c, false)
}

func (h *Tenants) toggleSubscription(c *gin.Context, activate bool) {
	token, ok := sessionToken(c)
	if !ok {
		return
	}
	companyID, ok := pathID(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	subs, err := h.platform.ListSubscriptions(ctx, token)
	if err != nil {
		h.upstreamError(c, err)
		return
	}

	// deactivation targets the active record; activation revives the
	// most recent one regardless of state
	sub, found := latestSubscription(subs, companyID, !activate)
	if !found {
		i18n.Error(i18n.ErrorSubscriptionNotFound).Send(c)
		return
	}

	if activate {
		err = h.platform.ActivateSubscription(ctx, token, sub.ID)
	} else {
		err = h.platform.DeactivateSubscription(ctx, token, sub.ID)
	}
	if err != nil {
		if isNotFound(err) {
			i18n.Error(i18n.ErrorSubscriptionNotFound).Send(c)
			return
		}
		h.upstreamError(c, err)
		return
	}

	h.logger.Info("subscription toggled",
		zap.Int64("company_id", companyID),
		zap.Int64("subscription_id", sub.ID),
		zap.Bool("active", activate))

	if activate {
		i18n.Success(i18n.SuccessSubscriptionActivated).Send(c)
	} else {
		i18n.Success(i18n.SuccessSubscriptionDeactivated).Send(c)
	}
}

// latestSubscription picks the company's most recent subscription by
// end date. activeOnly restricts the pick to active records. Later end
// dates win, equal dates keep the first seen, and a record with an
// unparsable end date only wins when nothing else is in the running.
func latestSubscription(subs []platform.Subscription, companyID int64, activeOnly bool) (platform.Subscription, bool) {
	var (
		best    platform.Subscription
		bestEnd time.Time
		hasBest bool
		hasEnd  bool
	)
	for _, s := range subs {
		if s.Company != companyID {
			continue
		}
		if activeOnly && !s.IsActive {
			continue
		}
		end, okEnd := tenantview.ParseDate(s.EndDate)
		switch {
		case !hasBest:
			best, bestEnd, hasBest, hasEnd = s, end, true, okEnd
		case okEnd && !hasEnd:
			best, bestEnd, hasEnd = s, end, true
		case okEnd && end.After(bestEnd):
			best, bestEnd = s, end
		}
	}
	return best, hasBest
}

// validSubscriptionDates checks that both dates parse and the window is
// not inverted.
func validSubscriptionDates(start, end string) bool {
	s, okS := tenantview.ParseDate(start)
	e, okE := tenantview.ParseDate(end)
	return okS && okE && !e.Before(s)
}
