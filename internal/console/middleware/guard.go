package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sahabhq/console/internal/access"
	"github.com/sahabhq/console/internal/auth/jwt"
	"github.com/sahabhq/console/internal/common/cnst"
	"github.com/sahabhq/console/internal/i18n"
	"github.com/sahabhq/console/internal/platform"
	"github.com/sahabhq/console/internal/session"
	"github.com/sahabhq/console/pkg/metrics"
)

// Guard holds the dependencies shared by the route guard chain. Guards
// run outer to inner: AuthRequired resolves the session, then
// RequireCapability resolves and checks the admin identity.
type Guard struct {
	logger   *zap.Logger
	jwt      *jwt.Service
	sessions session.Store
	resolver *access.Resolver
	metrics  *metrics.Metrics
}

// NewGuard creates the guard chain. metrics may be nil in tests.
func NewGuard(logger *zap.Logger, jwtService *jwt.Service, sessions session.Store, resolver *access.Resolver, m *metrics.Metrics) *Guard {
	return &Guard{
		logger:   logger.Named("guard"),
		jwt:      jwtService,
		sessions: sessions,
		resolver: resolver,
		metrics:  m,
	}
}

// AuthRequired validates the bearer token and loads the session it
// points at. Missing, invalid or expired credentials end the request
// with 401 and a login redirect hint; the attempted destination is not
// preserved. On success the session is attached to the gin context.
func (g *Guard) AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			abortWithRedirect(c, i18n.ErrorTokenInvalid, cnst.RedirectLogin)
			return
		}

		claims, err := g.jwt.ValidateToken(token)
		if err != nil {
			abortWithRedirect(c, i18n.ErrorTokenInvalid, cnst.RedirectLogin)
			return
		}

		sess, err := g.sessions.Get(c.Request.Context(), claims.SessionID)
		if err != nil {
			abortWithRedirect(c, i18n.ErrorSessionExpired, cnst.RedirectLogin)
			return
		}

		c.Set(cnst.CtxKeySession, sess)
		c.Next()
	}
}

// RequireCapability resolves the caller's identity and checks one
// capability. The request blocks until the identity is resolved. An
// upstream auth failure during resolution destroys the session; any
// other resolver failure maps to 502 so the dashboard can distinguish
// outage from denial.
func (g *Guard) RequireCapability(capability access.Capability) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := SessionFromContext(c)
		if sess == nil {
			abortWithRedirect(c, i18n.ErrorSessionExpired, cnst.RedirectLogin)
			return
		}

		user, err := g.resolver.Identity(c.Request.Context(), sess)
		if err != nil {
			if platform.IsAuthError(err) {
				g.destroySession(c, sess)
				abortWithRedirect(c, i18n.ErrorSessionExpired, cnst.RedirectLogin)
				return
			}
			g.logger.Error("identity resolution failed",
				zap.String("session_id", sess.ID),
				zap.Error(err))
			i18n.Error(i18n.ErrorUpstreamUnavailable).Send(c)
			c.Abort()
			return
		}

		if !user.Can(capability) {
			abortWithRedirect(c, i18n.ErrorPermissionDenied, cnst.RedirectDashboard)
			return
		}

		c.Set(cnst.CtxKeyUser, user)
		c.Next()
	}
}

// destroySession drops a session whose upstream credentials no longer
// work, so the next request goes straight to login.
func (g *Guard) destroySession(c *gin.Context, sess *session.Session) {
	g.resolver.Invalidate(sess.ID)
	if err := g.sessions.Delete(c.Request.Context(), sess.ID); err != nil {
		g.logger.Warn("failed to destroy session",
			zap.String("session_id", sess.ID),
			zap.Error(err))
		return
	}
	if g.metrics != nil {
		g.metrics.SessionClosed()
	}
}

// SessionFromContext returns the session attached by AuthRequired, or
// nil when the route was reached without it.
func SessionFromContext(c *gin.Context) *session.Session {
	v, exists := c.Get(cnst.CtxKeySession)
	if !exists {
		return nil
	}
	sess, ok := v.(*session.Session)
	if !ok {
		return nil
	}
	return sess
}

// UserFromContext returns the identity attached by RequireCapability,
// or nil when no capability guard ran on the route.
func UserFromContext(c *gin.Context) *access.User {
	v, exists := c.Get(cnst.CtxKeyUser)
	if !exists {
		return nil
	}
	user, ok := v.(*access.User)
	if !ok {
		return nil
	}
	return user
}

func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}

func abortWithRedirect(c *gin.Context, err error, path string) {
	i18n.Error(err).WithRedirect(path).Send(c)
	c.Abort()
}
