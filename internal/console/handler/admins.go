package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/sahabhq/console/internal/common/dto"
	"github.com/sahabhq/console/internal/i18n"
	"github.com/sahabhq/console/internal/platform"
)

// Admins manages limited administrator accounts and serves the audit
// trail.
type Admins struct {
	base
}

// NewAdmins creates the admins handler family.
func NewAdmins(d Deps) *Admins {
	return &Admins{base: d.base("handler.admins")}
}

// HandleList returns every limited administrator account.
func (h *Admins) HandleList(c *gin.Context) {
	token, ok := sessionToken(c)
	if !ok {
		return
	}

	admins, err := h.platform.ListAdmins(c.Request.Context(), token)
	if err != nil {
		h.upstreamError(c, err)
		return
	}

	c.JSON(http.StatusOK, admins)
}

// HandleCreate creates a limited administrator account. Capability
// flags and active state travel in the profile; the password is
// required by upstream on create.
func (h *Admins) HandleCreate(c *gin.Context) {
	token, ok := sessionToken(c)
	if !ok {
		return
	}

	var req dto.UpsertAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	admin, err := h.platform.CreateAdmin(c.Request.Context(), token, adminRecord(req))
	if err != nil {
		h.upstreamError(c, err)
		return
	}

	i18n.Created(i18n.SuccessAdminCreated).WithPayload(admin).Send(c)
}

// HandleUpdate updates a limited administrator account. An empty
// password leaves the current one in place.
func (h *Admins) HandleUpdate(c *gin.Context) {
	token, ok := sessionToken(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req dto.UpsertAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	admin, err := h.platform.UpdateAdmin(c.Request.Context(), token, id, adminRecord(req))
	if err != nil {
		if isNotFound(err) {
			i18n.Error(i18n.ErrorAdminNotFound).Send(c)
			return
		}
		h.upstreamError(c, err)
		return
	}

	i18n.Success(i18n.SuccessAdminUpdated).WithPayload(admin).Send(c)
}

// HandleDelete removes a limited administrator account.
func (h *Admins) HandleDelete(c *gin.Context) {
	token, ok := sessionToken(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.platform.DeleteAdmin(c.Request.Context(), token, id); err != nil {
		if isNotFound(err) {
			i18n.Error(i18n.ErrorAdminNotFound).Send(c)
			return
		}
		h.upstreamError(c, err)
		return
	}

	i18n.Success(i18n.SuccessAdminDeleted).Send(c)
}

// HandleAuditLogs pages through the append-only audit trail.
func (h *Admins) HandleAuditLogs(c *gin.Context) {
	token, ok := sessionToken(c)
	if !ok {
		return
	}

	page := intQuery(c, "page", 1)
	pageSize := intQuery(c, "page_size", 20)

	logs, count, err := h.platform.ListAuditLogs(c.Request.Context(), token, page, pageSize)
	if err != nil {
		h.upstreamError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"results": logs, "count": count})
}

func adminRecord(req dto.UpsertAdminRequest) platform.Admin {
	return platform.Admin{
		Username:            req.Username,
		Email:               req.Email,
		Password:            req.Password,
		LimitedAdminProfile: req.LimitedAdminProfile,
	}
}

// intQuery reads a positive integer query parameter, falling back on
// absent or malformed values.
func intQuery(c *gin.Context, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}
