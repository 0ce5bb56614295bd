package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sahabhq/console/internal/backup"
	"github.com/sahabhq/console/internal/common/cnst"
	"github.com/sahabhq/console/internal/common/dto"
	"github.com/sahabhq/console/internal/console/middleware"
	"github.com/sahabhq/console/internal/console/store"
	"github.com/sahabhq/console/internal/i18n"
	"github.com/sahabhq/console/internal/platform"
)

// preferenceKeys maps the public preference names to their stored keys
// and default values. The backup schedule has its own endpoint and the
// scheduler's last-run marker is never exposed.
var preferenceKeys = map[string]struct {
	key      string
	fallback string
}{
	"settings-tab": {key: cnst.PrefSettingsTab, fallback: "general"},
}

// Settings serves the system settings passthrough, backups, the backup
// schedule and per-user preferences.
type Settings struct {
	base
	prefs store.Store
}

// NewSettings creates the settings handler family.
func NewSettings(d Deps, prefs store.Store) *Settings {
	return &Settings{base: d.base("handler.settings"), prefs: prefs}
}

// HandleGet returns the upstream settings bag untouched.
func (h *Settings) HandleGet(c *gin.Context) {
	token, ok := sessionToken(c)
	if !ok {
		return
	}

	settings, err := h.platform.GetSettings(c.Request.Context(), token)
	if err != nil {
		h.upstreamError(c, err)
		return
	}

	c.JSON(http.StatusOK, settings)
}

// HandleUpdate replaces the upstream settings bag. Field validation
// happens upstream and is surfaced per-field.
func (h *Settings) HandleUpdate(c *gin.Context) {
	token, ok := sessionToken(c)
	if !ok {
		return
	}

	var body platform.Settings
	if err := c.ShouldBindJSON(&body); err != nil {
		bindError(c, err)
		return
	}

	updated, err := h.platform.UpdateSettings(c.Request.Context(), token, body)
	if err != nil {
		h.upstreamError(c, err)
		return
	}

	i18n.Success(i18n.SuccessSettingsSaved).WithPayload(updated).Send(c)
}

// HandleListBackups returns every backup record.
func (h *Settings) HandleListBackups(c *gin.Context) {
	token, ok := sessionToken(c)
	if !ok {
		return
	}

	backups, err := h.platform.ListBackups(c.Request.Context(), token)
	if err != nil {
		h.upstreamError(c, err)
		return
	}

	c.JSON(http.StatusOK, backups)
}

// HandleCreateBackup starts a backup on the operator's behalf.
func (h *Settings) HandleCreateBackup(c *gin.Context) {
	token, ok := sessionToken(c)
	if !ok {
		return
	}

	b, err := h.platform.CreateBackup(c.Request.Context(), token, "manual")
	if err != nil {
		h.upstreamError(c, err)
		return
	}

	i18n.Created(i18n.SuccessBackupStarted).WithPayload(b).Send(c)
}

// HandleRestoreBackup restores the system from a stored backup.
func (h *Settings) HandleRestoreBackup(c *gin.Context) {
	token, ok := sessionToken(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.platform.RestoreBackup(c.Request.Context(), token, id); err != nil {
		if isNotFound(err) {
			i18n.Error(i18n.ErrorBackupNotFound).Send(c)
			return
		}
		h.upstreamError(c, err)
		return
	}

	i18n.Success(i18n.SuccessBackupRestored).Send(c)
}

// HandleDeleteBackup deletes a backup record.
func (h *Settings) HandleDeleteBackup(c *gin.Context) {
	token, ok := sessionToken(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.platform.DeleteBackup(c.Request.Context(), token, id); err != nil {
		if isNotFound(err) {
			i18n.Error(i18n.ErrorBackupNotFound).Send(c)
			return
		}
		h.upstreamError(c, err)
		return
	}

	i18n.Success(i18n.SuccessBackupDeleted).Send(c)
}

// HandleGetSchedule returns the stored backup schedule. A missing or
// unreadable schedule reads as the default, backups off.
func (h *Settings) HandleGetSchedule(c *gin.Context) {
	raw, err := h.prefs.Get(c.Request.Context(), cnst.SchedulerUser, cnst.PrefBackupSchedule)
	if err != nil {
		if !errors.Is(err, store.ErrPreferenceNotFound) {
			h.logger.Error("failed to load backup schedule", zap.Error(err))
			i18n.Error(i18n.ErrInternalServer).Send(c)
			return
		}
		c.JSON(http.StatusOK, backup.DefaultSchedule())
		return
	}

	sched, err := backup.ParseSchedule(raw)
	if err != nil {
		h.logger.Warn("stored backup schedule is invalid", zap.Error(err))
		c.JSON(http.StatusOK, backup.DefaultSchedule())
		return
	}

	c.JSON(http.StatusOK, sched)
}

// HandlePutSchedule stores the backup schedule the scheduler runs on.
func (h *Settings) HandlePutSchedule(c *gin.Context) {
	var req dto.BackupScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		i18n.ErrorWithParam(i18n.ErrorScheduleInvalid, "Reason", err.Error()).Send(c)
		return
	}

	sched := backup.Schedule{Frequency: req.Frequency, Hour: req.Hour}
	raw, err := sched.Encode()
	if err != nil {
		i18n.ErrorWithParam(i18n.ErrorScheduleInvalid, "Reason", err.Error()).Send(c)
		return
	}

	if err := h.prefs.Put(c.Request.Context(), cnst.SchedulerUser, cnst.PrefBackupSchedule, raw); err != nil {
		h.logger.Error("failed to store backup schedule", zap.Error(err))
		i18n.Error(i18n.ErrInternalServer).Send(c)
		return
	}

	i18n.Success(i18n.SuccessScheduleSaved).WithPayload(sched).Send(c)
}

// HandleGetPreference returns one of the operator's own preferences,
// falling back to the key's default when nothing is stored yet.
func (h *Settings) HandleGetPreference(c *gin.Context) {
	sess := middleware.SessionFromContext(c)
	if sess == nil {
		i18n.Error(i18n.ErrorSessionExpired).WithRedirect(cnst.RedirectLogin).Send(c)
		return
	}
	pref, ok := preferenceKeys[c.Param("key")]
	if !ok {
		i18n.ErrorWithParam(i18n.ErrorPreferenceKey, "Key", c.Param("key")).Send(c)
		return
	}

	value, err := h.prefs.Get(c.Request.Context(), sess.Username, pref.key)
	if err != nil {
		if errors.Is(err, store.ErrPreferenceNotFound) {
			c.JSON(http.StatusOK, gin.H{"value": pref.fallback})
			return
		}
		h.logger.Error("failed to load preference",
			zap.String("key", pref.key),
			zap.Error(err))
		i18n.Error(i18n.ErrInternalServer).Send(c)
		return
	}

	c.JSON(http.StatusOK, gin.H{"value": value})
}

// HandlePutPreference stores one of the operator's own preferences.
func (h *Settings) HandlePutPreference(c *gin.Context) {
	sess := middleware.SessionFromContext(c)
	if sess == nil {
		i18n.Error(i18n.ErrorSessionExpired).WithRedirect(cnst.RedirectLogin).Send(c)
		return
	}
	pref, ok := preferenceKeys[c.Param("key")]
	if !ok {
		i18n.ErrorWithParam(i18n.ErrorPreferenceKey, "Key", c.Param("key")).Send(c)
		return
	}

	var req dto.PreferenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	if err := h.prefs.Put(c.Request.Context(), sess.Username, pref.key, req.Value); err != nil {
		h.logger.Error("failed to store preference",
			zap.String("key", pref.key),
			zap.Error(err))
		i18n.Error(i18n.ErrInternalServer).Send(c)
		return
	}

	i18n.Success(i18n.SuccessOperationCompleted).WithPayload(gin.H{"value": req.Value}).Send(c)
}
