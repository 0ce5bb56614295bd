package handler

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sahabhq/console/internal/common/cnst"
	"github.com/sahabhq/console/internal/common/dto"
	"github.com/sahabhq/console/internal/gateway"
	"github.com/sahabhq/console/internal/i18n"
	"github.com/sahabhq/console/internal/platform"
)

// Gateways manages payment gateway credentials, the enable/disable
// exclusivity rule and connection tests.
type Gateways struct {
	base
	testers gateway.Testers
}

// NewGateways creates the gateways handler family.
func NewGateways(d Deps, testers gateway.Testers) *Gateways {
	return &Gateways{base: d.base("handler.gateways"), testers: testers}
}

// HandleList returns every gateway with its derived status and the
// credential bag masked.
func (h *Gateways) HandleList(c *gin.Context) {
	token, ok := sessionToken(c)
	if !ok {
		return
	}

	gateways, err := h.platform.ListGateways(c.Request.Context(), token)
	if err != nil {
		h.upstreamError(c, err)
		return
	}

	views := make([]dto.GatewayView, 0, len(gateways))
	for _, g := range gateways {
		views = append(views, gatewayView(g))
	}
	c.JSON(http.StatusOK, views)
}

// HandleUpdate replaces a gateway's credential bag and description. The
// request carries real values; masking applies to responses only.
func (h *Gateways) HandleUpdate(c *gin.Context) {
	token, ok := sessionToken(c)
	if !ok {
		return
	}
	name, ok := h.gatewayName(c)
	if !ok {
		return
	}

	var req dto.UpdateGatewayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	ctx := c.Request.Context()
	record, ok := h.findGateway(ctx, c, token, name)
	if !ok {
		return
	}

	record.Description = req.Description
	record.Config = req.Config
	updated, err := h.platform.UpdateGateway(ctx, token, record.ID, record)
	if err != nil {
		h.upstreamError(c, err)
		return
	}
	h.logger.Info("gateway updated", zap.String("gateway", name.String()))

	i18n.Success(i18n.SuccessGatewayUpdated).WithPayload(gin.H{"gateway": gatewayView(*updated)}).Send(c)
}

// HandleEnable turns a gateway on. PayTabs and Stripe are mutually
// exclusive: the peer is disabled first, so at no point are both
// enabled. Enabling without credentials is rejected.
func (h *Gateways) HandleEnable(c *gin.Context) {
	token, ok := sessionToken(c)
	if !ok {
		return
	}
	name, ok := h.gatewayName(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	gateways, err := h.platform.ListGateways(ctx, token)
	if err != nil {
		h.upstreamError(c, err)
		return
	}

	record, found := pickGateway(gateways, name)
	if !found {
		i18n.Error(i18n.ErrNotFound.WithParam("Reason", "gateway not configured upstream")).Send(c)
		return
	}
	if gateway.DeriveStatus(record) == gateway.StatusSetupRequired {
		i18n.Error(i18n.ErrorGatewayMissingCredentials).Send(c)
		return
	}

	if peerName := name.ExclusiveWith(); peerName != "" {
		if peer, ok := pickGateway(gateways, peerName); ok && peer.Enabled {
			if err := h.platform.DisableGateway(ctx, token, peer.ID); err != nil {
				h.upstreamError(c, err)
				return
			}
			h.logger.Info("peer gateway disabled",
				zap.String("gateway", name.String()),
				zap.String("peer", peerName.String()))
		}
	}

	if err := h.platform.EnableGateway(ctx, token, record.ID); err != nil {
		h.upstreamError(c, err)
		return
	}
	h.logger.Info("gateway enabled", zap.String("gateway", name.String()))

	i18n.Success(i18n.SuccessGatewayEnabled).Send(c)
}

// HandleDisable turns a gateway off. Disabling an already-disabled
// gateway succeeds.
func (h *Gateways) HandleDisable(c *gin.Context) {
	token, ok := sessionToken(c)
	if !ok {
		return
	}
	name, ok := h.gatewayName(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	record, ok := h.findGateway(ctx, c, token, name)
	if !ok {
		return
	}

	if err := h.platform.DisableGateway(ctx, token, record.ID); err != nil {
		h.upstreamError(c, err)
		return
	}
	h.logger.Info("gateway disabled", zap.String("gateway", name.String()))

	i18n.Success(i18n.SuccessGatewayDisabled).Send(c)
}

// HandleTest probes the provider with the submitted credentials, or the
// stored ones when the request body is empty.
func (h *Gateways) HandleTest(c *gin.Context) {
	token, ok := sessionToken(c)
	if !ok {
		return
	}
	name, ok := h.gatewayName(c)
	if !ok {
		return
	}

	tester, ok := h.testers[name]
	if !ok {
		i18n.ErrorWithParam(i18n.ErrorGatewayUnsupported, "Gateway", name.String()).Send(c)
		return
	}

	var req dto.TestGatewayRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		bindError(c, err)
		return
	}

	ctx := c.Request.Context()
	config := req.Config
	if len(config) == 0 {
		record, ok := h.findGateway(ctx, c, token, name)
		if !ok {
			return
		}
		config = record.Config
	}

	if err := tester.Test(ctx, config); err != nil {
		if errors.Is(err, gateway.ErrMissingCredentials) {
			i18n.Error(i18n.ErrorGatewayMissingCredentials).Send(c)
			return
		}
		h.logger.Info("gateway test failed",
			zap.String("gateway", name.String()),
			zap.Error(err))
		i18n.ErrorWithParam(i18n.ErrorGatewayTestFailed, "Reason", err.Error()).Send(c)
		return
	}

	i18n.Success(i18n.SuccessGatewayTestPassed).Send(c)
}

// gatewayName validates the :name path parameter against the supported
// gateway set.
func (h *Gateways) gatewayName(c *gin.Context) (cnst.GatewayName, bool) {
	name := cnst.GatewayName(c.Param("name"))
	switch name {
	case cnst.GatewayPayTabs, cnst.GatewayStripe:
		return name, true
	default:
		i18n.ErrorWithParam(i18n.ErrorGatewayUnsupported, "Gateway", c.Param("name")).Send(c)
		return "", false
	}
}

// findGateway resolves a gateway name to its upstream record, replying
// 404 when the platform has no such record.
func (h *Gateways) findGateway(ctx context.Context, c *gin.Context, token string, name cnst.GatewayName) (platform.Gateway, bool) {
	gateways, err := h.platform.ListGateways(ctx, token)
	if err != nil {
		h.upstreamError(c, err)
		return platform.Gateway{}, false
	}
	record, found := pickGateway(gateways, name)
	if !found {
		i18n.Error(i18n.ErrNotFound.WithParam("Reason", "gateway not configured upstream")).Send(c)
		return platform.Gateway{}, false
	}
	return record, true
}

func pickGateway(gateways []platform.Gateway, name cnst.GatewayName) (platform.Gateway, bool) {
	for _, g := range gateways {
		if cnst.GatewayName(g.Name) == name {
			return g, true
		}
	}
	return platform.Gateway{}, false
}

func gatewayView(g platform.Gateway) dto.GatewayView {
	return dto.GatewayView{
		ID:          g.ID,
		Name:        g.Name,
		Description: g.Description,
		Status:      gateway.DeriveStatus(g),
		Enabled:     g.Enabled,
		Config:      gateway.MaskSecrets(g.Config),
	}
}
