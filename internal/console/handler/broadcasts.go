package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sahabhq/console/internal/broadcast"
	"github.com/sahabhq/console/internal/common/dto"
	"github.com/sahabhq/console/internal/i18n"
	"github.com/sahabhq/console/internal/platform"
	"github.com/sahabhq/console/internal/tenantview"
)

// Broadcast statuses the console initiates transitions between. The set
// itself is backend-owned.
const (
	broadcastDraft     = "draft"
	broadcastScheduled = "scheduled"
	broadcastSent      = "sent"
)

// Broadcasts manages announcement messages to tenants.
type Broadcasts struct {
	base
	renderer *broadcast.Renderer
}

// NewBroadcasts creates the broadcasts handler family.
func NewBroadcasts(d Deps, renderer *broadcast.Renderer) *Broadcasts {
	return &Broadcasts{base: d.base("handler.broadcasts"), renderer: renderer}
}

// HandleList returns every broadcast.
func (h *Broadcasts) HandleList(c *gin.Context) {
	token, ok := sessionToken(c)
	if !ok {
		return
	}

	broadcasts, err := h.platform.ListBroadcasts(c.Request.Context(), token)
	if err != nil {
		h.upstreamError(c, err)
		return
	}

	c.JSON(http.StatusOK, broadcasts)
}

// HandleCreate registers a broadcast as a draft or scheduled message.
func (h *Broadcasts) HandleCreate(c *gin.Context) {
	token, ok := sessionToken(c)
	if !ok {
		return
	}

	var req dto.UpsertBroadcastRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	status := req.Status
	if status == "" {
		status = broadcastDraft
	}
	if status != broadcastDraft && status != broadcastScheduled {
		i18n.Error(i18n.ErrBadRequest.WithParam("Reason", "status must be draft or scheduled")).Send(c)
		return
	}

	created, err := h.platform.CreateBroadcast(c.Request.Context(), token, platform.Broadcast{
		Subject:     req.Subject,
		Content:     req.Content,
		Target:      req.NormalizedTarget(),
		Status:      status,
		ScheduledAt: req.ScheduledAt,
	})
	if err != nil {
		h.upstreamError(c, err)
		return
	}
	h.logger.Info("broadcast created",
		zap.Int64("broadcast_id", created.ID),
		zap.String("status", created.Status))

	i18n.Created(i18n.SuccessBroadcastCreated).WithPayload(gin.H{"broadcast": created}).Send(c)
}

// HandleUpdate edits a broadcast that has not gone out yet.
func (h *Broadcasts) HandleUpdate(c *gin.Context) {
	token, ok := sessionToken(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req dto.UpsertBroadcastRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	status := req.Status
	if status == "" {
		status = broadcastDraft
	}
	if status != broadcastDraft && status != broadcastScheduled {
		i18n.Error(i18n.ErrBadRequest.WithParam("Reason", "status must be draft or scheduled")).Send(c)
		return
	}

	ctx := c.Request.Context()
	existing, found, err := h.findBroadcast(ctx, token, id)
	if err != nil {
		h.upstreamError(c, err)
		return
	}
	if !found {
		i18n.Error(i18n.ErrorBroadcastNotFound).Send(c)
		return
	}
	if existing.Status == broadcastSent {
		i18n.Error(i18n.ErrorBroadcastAlreadySent).Send(c)
		return
	}

	updated, err := h.platform.UpdateBroadcast(ctx, token, id, platform.Broadcast{
		Subject:     req.Subject,
		Content:     req.Content,
		Target:      req.NormalizedTarget(),
		Status:      status,
		ScheduledAt: req.ScheduledAt,
	})
	if err != nil {
		if isNotFound(err) {
			i18n.Error(i18n.ErrorBroadcastNotFound).Send(c)
			return
		}
		h.upstreamError(c, err)
		return
	}

	i18n.Success(i18n.SuccessBroadcastUpdated).WithPayload(gin.H{"broadcast": updated}).Send(c)
}

// HandleDelete removes a broadcast.
func (h *Broadcasts) HandleDelete(c *gin.Context) {
	token, ok := sessionToken(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.platform.DeleteBroadcast(c.Request.Context(), token, id); err != nil {
		if isNotFound(err) {
			i18n.Error(i18n.ErrorBroadcastNotFound).Send(c)
			return
		}
		h.upstreamError(c, err)
		return
	}
	h.logger.Info("broadcast deleted", zap.Int64("broadcast_id", id))

	i18n.Success(i18n.SuccessBroadcastDeleted).Send(c)
}

// HandleSend dispatches a broadcast immediately. Sending twice is
// rejected.
func (h *Broadcasts) HandleSend(c *gin.Context) {
	token, ok := sessionToken(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	existing, found, err := h.findBroadcast(ctx, token, id)
	if err != nil {
		h.upstreamError(c, err)
		return
	}
	if !found {
		i18n.Error(i18n.ErrorBroadcastNotFound).Send(c)
		return
	}
	if existing.Status == broadcastSent {
		i18n.Error(i18n.ErrorBroadcastAlreadySent).Send(c)
		return
	}

	sent, err := h.platform.SendBroadcast(ctx, token, id)
	if err != nil {
		if isNotFound(err) {
			i18n.Error(i18n.ErrorBroadcastNotFound).Send(c)
			return
		}
		h.upstreamError(c, err)
		return
	}
	h.logger.Info("broadcast sent", zap.Int64("broadcast_id", id))

	i18n.Success(i18n.SuccessBroadcastSent).WithPayload(gin.H{"broadcast": sent}).Send(c)
}

// HandlePreview renders the subject and content templates against a
// sample recipient, or against a real tenant when company_id is given.
// Template errors surface verbatim; nothing is partially rendered.
func (h *Broadcasts) HandlePreview(c *gin.Context) {
	token, ok := sessionToken(c)
	if !ok {
		return
	}

	var req dto.PreviewBroadcastRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	recipient := broadcast.SampleRecipient()
	if req.CompanyID != nil {
		companies, subs, plans, err := h.fetchProjection(c.Request.Context(), token)
		if err != nil {
			h.upstreamError(c, err)
			return
		}
		tenants := tenantview.Project(companies, subs, plans, i18n.LangFromContext(c), time.Now())
		found := false
		for _, t := range tenants {
			if t.ID == *req.CompanyID {
				recipient = broadcast.NewRecipient(t)
				found = true
				break
			}
		}
		if !found {
			i18n.Error(i18n.ErrorTenantNotFound).Send(c)
			return
		}
	}

	subject, content, err := h.renderer.RenderMessage(req.Subject, req.Content, recipient)
	if err != nil {
		i18n.ErrorWithParam(i18n.ErrorBroadcastTemplate, "Reason", err.Error()).Send(c)
		return
	}

	c.JSON(http.StatusOK, dto.PreviewBroadcastResponse{Subject: subject, Content: content})
}

// findBroadcast locates a broadcast by id through the list endpoint;
// the upstream API has no single-record fetch for broadcasts.
func (h *Broadcasts) findBroadcast(ctx context.Context, token string, id int64) (platform.Broadcast, bool, error) {
	broadcasts, err := h.platform.ListBroadcasts(ctx, token)
	if err != nil {
		return platform.Broadcast{}, false, err
	}
	for _, b := range broadcasts {
		if b.ID == id {
			return b, true, nil
		}
	}
	return platform.Broadcast{}, false, nil
}
