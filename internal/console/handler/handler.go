package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sahabhq/console/internal/access"
	"github.com/sahabhq/console/internal/common/cnst"
	"github.com/sahabhq/console/internal/console/middleware"
	"github.com/sahabhq/console/internal/i18n"
	"github.com/sahabhq/console/internal/platform"
	"github.com/sahabhq/console/internal/session"
	"github.com/sahabhq/console/pkg/metrics"
)

// Deps bundles the dependencies shared by every handler family.
type Deps struct {
	Logger   *zap.Logger
	Platform *platform.Client
	Sessions session.Store
	Resolver *access.Resolver
	Metrics  *metrics.Metrics
}

func (d Deps) base(name string) base {
	return base{
		logger:   d.Logger.Named(name),
		platform: d.Platform,
		sessions: d.Sessions,
		resolver: d.Resolver,
		metrics:  d.Metrics,
	}
}

// base is embedded by every handler family. It owns the mapping from
// upstream client failures to wire responses, which needs the session
// store because an upstream auth failure must tear the session down.
type base struct {
	logger   *zap.Logger
	platform *platform.Client
	sessions session.Store
	resolver *access.Resolver
	metrics  *metrics.Metrics
}

// upstreamError converts a platform client failure into the response the
// dashboard expects. Auth failures destroy the session and send the
// browser to login; validation failures surface per-field messages;
// anything else maps to 502 so the client keeps its last good state.
func (b *base) upstreamError(c *gin.Context, err error) {
	if platform.IsAuthError(err) {
		if sess := middleware.SessionFromContext(c); sess != nil {
			b.dropSession(c, sess)
		}
		i18n.Error(i18n.ErrorSessionExpired).WithRedirect(cnst.RedirectLogin).Send(c)
		return
	}

	if upstream, ok := platform.AsError(err); ok && platform.IsValidationError(err) {
		resp := i18n.ErrorWithParam(i18n.ErrorUpstreamValidation, "Reason", upstream.Message)
		if len(upstream.Fields) > 0 {
			resp = resp.WithFields(upstream.Fields)
		}
		resp.Send(c)
		return
	}

	b.logger.Error("upstream request failed",
		zap.String("path", c.Request.URL.Path),
		zap.Error(err))
	i18n.Error(i18n.ErrorUpstreamUnavailable).Send(c)
}

// dropSession removes a session whose upstream credentials stopped
// working, mirroring the guard's teardown.
func (b *base) dropSession(c *gin.Context, sess *session.Session) {
	b.resolver.Invalidate(sess.ID)
	if err := b.sessions.Delete(c.Request.Context(), sess.ID); err != nil {
		b.logger.Warn("failed to drop session",
			zap.String("session_id", sess.ID),
			zap.Error(err))
		return
	}
	if b.metrics != nil {
		b.metrics.SessionClosed()
	}
}

// fetchProjection loads the three collections the tenant projection
// joins, concurrently. One failed fetch fails the join.
func (b *base) fetchProjection(ctx context.Context, token string) ([]platform.Company, []platform.Subscription, []platform.Plan, error) {
	var (
		companies []platform.Company
		subs      []platform.Subscription
		plans     []platform.Plan
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		companies, err = b.platform.ListCompanies(gctx, token)
		return err
	})
	g.Go(func() error {
		var err error
		subs, err = b.platform.ListSubscriptions(gctx, token)
		return err
	})
	g.Go(func() error {
		var err error
		plans, err = b.platform.ListPlans(gctx, token)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, nil, err
	}
	return companies, subs, plans, nil
}

// isNotFound reports whether the upstream replied 404, so handlers can
// keep their resource-specific not-found messages.
func isNotFound(err error) bool {
	upstream, ok := platform.AsError(err)
	return ok && upstream.Status == http.StatusNotFound
}

// sessionToken returns the upstream access token from the request's
// session. Reaching a handler without a session means the guard chain
// was bypassed; the request ends with 401.
func sessionToken(c *gin.Context) (string, bool) {
	sess := middleware.SessionFromContext(c)
	if sess == nil {
		i18n.Error(i18n.ErrorSessionExpired).WithRedirect(cnst.RedirectLogin).Send(c)
		return "", false
	}
	return sess.AccessToken, true
}

// pathID parses the numeric :id path parameter. A non-numeric value
// responds 400 and returns false.
func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		i18n.Error(i18n.ErrBadRequest.WithParam("Reason", "invalid id parameter")).Send(c)
		return 0, false
	}
	return id, true
}

// bindError responds 400 with the binding failure reason.
func bindError(c *gin.Context, err error) {
	i18n.Error(i18n.ErrBadRequest.WithParam("Reason", err.Error())).Send(c)
}
