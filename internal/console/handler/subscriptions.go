package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sahabhq/console/internal/common/cnst"
	"github.com/sahabhq/console/internal/common/dto"
	"github.com/sahabhq/console/internal/i18n"
	"github.com/sahabhq/console/internal/platform"
)

// Subscriptions manages subscription records directly, as opposed to
// the tenant-scoped toggle endpoints.
type Subscriptions struct {
	base
}

// NewSubscriptions creates the subscriptions handler family.
func NewSubscriptions(d Deps) *Subscriptions {
	return &Subscriptions{base: d.base("handler.subscriptions")}
}

// HandleList returns every subscription joined with its company name
// and plan display name.
func (h *Subscriptions) HandleList(c *gin.Context) {
	token, ok := sessionToken(c)
	if !ok {
		return
	}

	companies, subs, plans, err := h.fetchProjection(c.Request.Context(), token)
	if err != nil {
		h.upstreamError(c, err)
		return
	}

	companyNames := make(map[int64]string, len(companies))
	for _, co := range companies {
		companyNames[co.ID] = co.Name
	}
	plansByID := make(map[int64]platform.Plan, len(plans))
	for _, p := range plans {
		plansByID[p.ID] = p
	}

	lang := i18n.LangFromContext(c)
	views := make([]dto.SubscriptionView, 0, len(subs))
	for _, s := range subs {
		planName := s.PlanName
		if p, ok := plansByID[s.Plan]; ok {
			planName = p.Name
			if lang == cnst.LangAR && strings.TrimSpace(p.NameAr) != "" {
				planName = p.NameAr
			}
		}
		views = append(views, dto.SubscriptionView{
			ID:          s.ID,
			Company:     s.Company,
			CompanyName: companyNames[s.Company],
			Plan:        s.Plan,
			PlanName:    planName,
			Owner:       s.Owner,
			StartDate:   s.StartDate,
			EndDate:     s.EndDate,
			IsActive:    s.IsActive,
		})
	}

	c.JSON(http.StatusOK, views)
}

// HandleCreate registers a subscription for a company.
func (h *Subscriptions) HandleCreate(c *gin.Context) {
	token, ok := sessionToken(c)
	if !ok {
		return
	}

	var req dto.CreateSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	if req.Company == 0 {
		i18n.Error(i18n.ErrBadRequest.WithParam("Reason", "company is required")).Send(c)
		return
	}
	if !validSubscriptionDates(req.StartDate, req.EndDate) {
		i18n.Error(i18n.ErrorSubscriptionDates).Send(c)
		return
	}

	sub, err := h.platform.CreateSubscription(c.Request.Context(), token, platform.Subscription{
		Company:   req.Company,
		Plan:      req.Plan,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		IsActive:  req.IsActive,
	})
	if err != nil {
		h.upstreamError(c, err)
		return
	}
	h.logger.Info("subscription created",
		zap.Int64("subscription_id", sub.ID),
		zap.Int64("company_id", sub.Company))

	i18n.Created(i18n.SuccessSubscriptionCreated).WithPayload(gin.H{"subscription": sub}).Send(c)
}

// HandleUpdate edits a subscription's plan, window or active flag.
func (h *Subscriptions) HandleUpdate(c *gin.Context) {
	token, ok := sessionToken(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req dto.UpdateSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	if !validSubscriptionDates(req.StartDate, req.EndDate) {
		i18n.Error(i18n.ErrorSubscriptionDates).Send(c)
		return
	}

	sub, err := h.platform.UpdateSubscription(c.Request.Context(), token, id, platform.Subscription{
		Plan:      req.Plan,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		IsActive:  req.IsActive,
	})
	if err != nil {
		if isNotFound(err) {
			i18n.Error(i18n.ErrorSubscriptionNotFound).Send(c)
			return
		}
		h.upstreamError(c, err)
		return
	}

	i18n.Success(i18n.SuccessSubscriptionUpdated).WithPayload(gin.H{"subscription": sub}).Send(c)
}

// HandleActivate turns a subscription on.
func (h *Subscriptions) HandleActivate(c *gin.Context) {
	h.toggle(c, true)
}

// HandleDeactivate turns a subscription off.
func (h *Subscriptions) HandleDeactivate(c *gin.Context) {
	h.toggle(c, false)
}

func (h *Subscriptions) toggle(c *gin.Context, activate bool) {
	token, ok := sessionToken(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	var err error
	if activate {
		err = h.platform.ActivateSubscription(c.Request.Context(), token, id)
	} else {
		err = h.platform.DeactivateSubscription(c.Request.Context(), token, id)
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
		zap.Int64("subscription_id", id),
		zap.Bool("active", activate))

	if activate {
		i18n.Success(i18n.SuccessSubscriptionActivated).Send(c)
	} else {
		i18n.Success(i18n.SuccessSubscriptionDeactivated).Send(c)
	}
}
