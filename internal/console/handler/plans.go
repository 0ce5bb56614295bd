package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sahabhq/console/internal/common/cnst"
	"github.com/sahabhq/console/internal/common/dto"
	"github.com/sahabhq/console/internal/i18n"
	"github.com/sahabhq/console/internal/tenantview"
)

// Plans manages subscription plans.
type Plans struct {
	base
}

// NewPlans creates the plans handler family.
func NewPlans(d Deps) *Plans {
	return &Plans{base: d.base("handler.plans")}
}

// HandleList returns every plan with its display name resolved for the
// request language.
func (h *Plans) HandleList(c *gin.Context) {
	token, ok := sessionToken(c)
	if !ok {
		return
	}

	plans, err := h.platform.ListPlans(c.Request.Context(), token)
	if err != nil {
		h.upstreamError(c, err)
		return
	}

	lang := i18n.LangFromContext(c)
	views := make([]dto.PlanView, 0, len(plans))
	for _, p := range plans {
		display := p.Name
		if lang == cnst.LangAR && strings.TrimSpace(p.NameAr) != "" {
			display = p.NameAr
		}
		views = append(views, dto.PlanView{Plan: p, DisplayName: display})
	}

	c.JSON(http.StatusOK, views)
}

// HandleCreate registers a new plan.
func (h *Plans) HandleCreate(c *gin.Context) {
	token, ok := sessionToken(c)
	if !ok {
		return
	}

	var req dto.UpsertPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	plan, err := h.platform.CreatePlan(c.Request.Context(), token, req.Plan())
	if err != nil {
		h.upstreamError(c, err)
		return
	}
	h.logger.Info("plan created", zap.Int64("plan_id", plan.ID), zap.String("name", plan.Name))

	i18n.Created(i18n.SuccessPlanCreated).WithPayload(gin.H{"plan": plan}).Send(c)
}

// HandleUpdate edits a plan.
func (h *Plans) HandleUpdate(c *gin.Context) {
	token, ok := sessionToken(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req dto.UpsertPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	plan, err := h.platform.UpdatePlan(c.Request.Context(), token, id, req.Plan())
	if err != nil {
		if isNotFound(err) {
			i18n.Error(i18n.ErrorPlanNotFound).Send(c)
			return
		}
		h.upstreamError(c, err)
		return
	}

	i18n.Success(i18n.SuccessPlanUpdated).WithPayload(gin.H{"plan": plan}).Send(c)
}

// HandleDelete removes a plan unless any tenant currently sits on it.
// The check projects the live tenant list and compares plan names in
// both languages; it is advisory, not atomic with the delete.
func (h *Plans) HandleDelete(c *gin.Context) {
	token, ok := sessionToken(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	companies, subs, plans, err := h.fetchProjection(ctx, token)
	if err != nil {
		h.upstreamError(c, err)
		return
	}

	var name, nameAr string
	found := false
	for _, p := range plans {
		if p.ID == id {
			name = strings.TrimSpace(p.Name)
			nameAr = strings.TrimSpace(p.NameAr)
			found = true
			break
		}
	}
	if !found {
		i18n.Error(i18n.ErrorPlanNotFound).Send(c)
		return
	}

	tenants := tenantview.Project(companies, subs, plans, cnst.LangEN, time.Now())
	for _, t := range tenants {
		cur := strings.TrimSpace(t.CurrentPlan)
		if cur == "" {
			continue
		}
		if cur == name || (nameAr != "" && cur == nameAr) {
			h.logger.Info("plan delete blocked, in use",
				zap.Int64("plan_id", id),
				zap.String("tenant", t.Name))
			i18n.ErrorWithParam(i18n.ErrorPlanInUse, "Plan", name).Send(c)
			return
		}
	}

	if err := h.platform.DeletePlan(ctx, token, id); err != nil {
		if isNotFound(err) {
			i18n.Error(i18n.ErrorPlanNotFound).Send(c)
			return
		}
		h.upstreamError(c, err)
		return
	}
	h.logger.Info("plan deleted", zap.Int64("plan_id", id))

	i18n.Success(i18n.SuccessPlanDeleted).Send(c)
}
