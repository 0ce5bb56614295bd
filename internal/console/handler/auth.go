package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sahabhq/console/internal/auth/jwt"
	"github.com/sahabhq/console/internal/common/cnst"
	"github.com/sahabhq/console/internal/common/dto"
	"github.com/sahabhq/console/internal/console/middleware"
	"github.com/sahabhq/console/internal/i18n"
	"github.com/sahabhq/console/internal/platform"
	"github.com/sahabhq/console/internal/session"
)

// Auth handles the sign-in lifecycle: login, token refresh, logout and
// the current-identity view.
type Auth struct {
	base
	jwt *jwt.Service
}

// NewAuth creates the auth handler family.
func NewAuth(d Deps, jwtService *jwt.Service) *Auth {
	return &Auth{base: d.base("handler.auth"), jwt: jwtService}
}

// HandleLogin exchanges credentials for a console token. The upstream
// tokens never reach the browser; they live in the server-side session.
// An inactive limited admin is rejected before any session exists.
func (h *Auth) HandleLogin(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	ctx := c.Request.Context()
	tokens, err := h.platform.Login(ctx, platform.Credentials{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		if platform.IsAuthError(err) {
			h.loginResult("invalid")
			h.logger.Info("login rejected", zap.String("username", req.Username))
			i18n.Error(i18n.ErrorInvalidCredentials).Send(c)
			return
		}
		h.loginResult("error")
		h.upstreamError(c, err)
		return
	}

	user, err := h.platform.CurrentUser(ctx, tokens.Access)
	if err != nil {
		h.loginResult("error")
		h.upstreamError(c, err)
		return
	}

	if user.LimitedAdmin != nil && !user.LimitedAdmin.IsActive {
		h.loginResult("disabled")
		h.logger.Info("disabled account login attempt", zap.String("username", req.Username))
		i18n.Error(i18n.ErrorAccountDisabled).Send(c)
		return
	}

	now := time.Now()
	sess := &session.Session{
		ID:           uuid.NewString(),
		Username:     user.Username,
		AccessToken:  tokens.Access,
		RefreshToken: tokens.Refresh,
		Lang:         i18n.LangFromContext(c),
		CreatedAt:    now,
		LastSeenAt:   now,
	}
	if err := h.sessions.Create(ctx, sess); err != nil {
		h.loginResult("error")
		h.logger.Error("failed to create session", zap.Error(err))
		i18n.Error(i18n.ErrInternalServer.WithParam("Reason", "failed to create session")).Send(c)
		return
	}

	token, err := h.jwt.GenerateToken(sess.ID, user.Username)
	if err != nil {
		h.logger.Error("failed to issue token", zap.Error(err))
		_ = h.sessions.Delete(ctx, sess.ID)
		i18n.Error(i18n.ErrInternalServer.WithParam("Reason", "failed to issue token")).Send(c)
		return
	}

	h.loginResult("success")
	if h.metrics != nil {
		h.metrics.SessionOpened()
	}
	h.logger.Info("login succeeded",
		zap.String("username", user.Username),
		zap.String("session_id", sess.ID))

	i18n.Success(i18n.SuccessLogin).WithPayload(dto.LoginResponse{
		Token: token,
		User:  dto.NewUserView(user),
	}).Send(c)
}

// HandleRefresh rotates the session's upstream tokens and mints a fresh
// console token. The identity cache entry is invalidated so capability
// changes land with the new tokens.
func (h *Auth) HandleRefresh(c *gin.Context) {
	sess := middleware.SessionFromContext(c)
	if sess == nil {
		i18n.Error(i18n.ErrorSessionExpired).WithRedirect(cnst.RedirectLogin).Send(c)
		return
	}

	ctx := c.Request.Context()
	tokens, err := h.platform.Refresh(ctx, sess.RefreshToken)
	if err != nil {
		h.upstreamError(c, err)
		return
	}

	sess.AccessToken = tokens.Access
	if tokens.Refresh != "" {
		sess.RefreshToken = tokens.Refresh
	}
	if err := h.sessions.Update(ctx, sess); err != nil {
		h.logger.Error("failed to update session after refresh",
			zap.String("session_id", sess.ID),
			zap.Error(err))
		i18n.Error(i18n.ErrInternalServer.WithParam("Reason", "failed to update session")).Send(c)
		return
	}
	h.resolver.Invalidate(sess.ID)

	token, err := h.jwt.GenerateToken(sess.ID, sess.Username)
	if err != nil {
		h.logger.Error("failed to issue token", zap.Error(err))
		i18n.Error(i18n.ErrInternalServer.WithParam("Reason", "failed to issue token")).Send(c)
		return
	}

	i18n.Success(i18n.SuccessTokenRefreshed).WithPayload(dto.RefreshResponse{Token: token}).Send(c)
}

// HandleLogout destroys the session. Logging out an already-gone session
// still succeeds.
func (h *Auth) HandleLogout(c *gin.Context) {
	if sess := middleware.SessionFromContext(c); sess != nil {
		h.dropSession(c, sess)
		h.logger.Info("logout", zap.String("session_id", sess.ID))
	}
	i18n.Success(i18n.SuccessLogout).Send(c)
}

// HandleMe returns the resolved identity with its capability map.
func (h *Auth) HandleMe(c *gin.Context) {
	sess := middleware.SessionFromContext(c)
	if sess == nil {
		i18n.Error(i18n.ErrorSessionExpired).WithRedirect(cnst.RedirectLogin).Send(c)
		return
	}

	user, err := h.resolver.Identity(c.Request.Context(), sess)
	if err != nil {
		h.upstreamError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewUserView(user))
}

func (h *Auth) loginResult(status string) {
	if h.metrics != nil {
		h.metrics.LoginResult(status)
	}
}
