package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/sahabhq/console/internal/access"
	"github.com/sahabhq/console/internal/console/middleware"
)

// Handlers bundles every handler family the console serves.
type Handlers struct {
	Auth          *Auth
	Dashboard     *Dashboard
	Tenants       *Tenants
	Plans         *Plans
	Subscriptions *Subscriptions
	Reports       *Reports
	Invoices      *Invoices
	Broadcasts    *Broadcasts
	Gateways      *Gateways
	Settings      *Settings
	Admins        *Admins
}

// Register wires the console API under /api. Login is the only
// unauthenticated route; everything else sits behind the session guard
// plus the capability of its management area.
func Register(r gin.IRouter, g *middleware.Guard, h *Handlers) {
	api := r.Group("/api")

	api.POST("/auth/login", h.Auth.HandleLogin)

	authed := api.Group("", g.AuthRequired())
	authed.POST("/auth/refresh", h.Auth.HandleRefresh)
	authed.POST("/auth/logout", h.Auth.HandleLogout)
	authed.GET("/auth/me", h.Auth.HandleMe)

	authed.GET("/dashboard/overview",
		g.RequireCapability(access.CapViewDashboard), h.Dashboard.HandleOverview)

	tenants := authed.Group("/tenants", g.RequireCapability(access.CapManageTenants))
	tenants.GET("", h.Tenants.HandleList)
	tenants.POST("", h.Tenants.HandleCreate)
	tenants.PUT("/:id", h.Tenants.HandleUpdate)
	tenants.POST("/:id/subscription/activate", h.Tenants.HandleActivateSubscription)
	tenants.POST("/:id/subscription/deactivate", h.Tenants.HandleDeactivateSubscription)

	plans := authed.Group("/plans", g.RequireCapability(access.CapManageSubs))
	plans.GET("", h.Plans.HandleList)
	plans.POST("", h.Plans.HandleCreate)
	plans.PUT("/:id", h.Plans.HandleUpdate)
	plans.DELETE("/:id", h.Plans.HandleDelete)

	subs := authed.Group("/subscriptions", g.RequireCapability(access.CapManageSubs))
	subs.GET("", h.Subscriptions.HandleList)
	subs.POST("", h.Subscriptions.HandleCreate)
	subs.PUT("/:id", h.Subscriptions.HandleUpdate)
	subs.POST("/:id/activate", h.Subscriptions.HandleActivate)
	subs.POST("/:id/deactivate", h.Subscriptions.HandleDeactivate)

	reports := authed.Group("/reports", g.RequireCapability(access.CapViewReports))
	reports.GET("/revenue", h.Reports.HandleRevenue)
	reports.GET("/revenue/export", h.Reports.HandleRevenueExport)
	reports.GET("/subscribers", h.Reports.HandleSubscribers)
	reports.GET("/subscribers/export", h.Reports.HandleSubscribersExport)
	reports.GET("/conversion", h.Reports.HandleConversion)

	authed.GET("/invoices",
		g.RequireCapability(access.CapViewReports), h.Invoices.HandleList)

	broadcasts := authed.Group("/broadcasts", g.RequireCapability(access.CapManageComms))
	broadcasts.GET("", h.Broadcasts.HandleList)
	broadcasts.POST("", h.Broadcasts.HandleCreate)
	broadcasts.POST("/preview", h.Broadcasts.HandlePreview)
	broadcasts.PUT("/:id", h.Broadcasts.HandleUpdate)
	broadcasts.DELETE("/:id", h.Broadcasts.HandleDelete)
	broadcasts.POST("/:id/send", h.Broadcasts.HandleSend)

	gateways := authed.Group("/gateways", g.RequireCapability(access.CapManageGateways))
	gateways.GET("", h.Gateways.HandleList)
	gateways.PUT("/:name", h.Gateways.HandleUpdate)
	gateways.POST("/:name/enable", h.Gateways.HandleEnable)
	gateways.POST("/:name/disable", h.Gateways.HandleDisable)
	gateways.POST("/:name/test", h.Gateways.HandleTest)

	settings := authed.Group("", g.RequireCapability(access.CapManageSettings))
	settings.GET("/settings", h.Settings.HandleGet)
	settings.PUT("/settings", h.Settings.HandleUpdate)
	settings.GET("/backups", h.Settings.HandleListBackups)
	settings.POST("/backups", h.Settings.HandleCreateBackup)
	settings.GET("/backups/schedule", h.Settings.HandleGetSchedule)
	settings.PUT("/backups/schedule", h.Settings.HandlePutSchedule)
	settings.POST("/backups/:id/restore", h.Settings.HandleRestoreBackup)
	settings.DELETE("/backups/:id", h.Settings.HandleDeleteBackup)
	settings.GET("/preferences/:key", h.Settings.HandleGetPreference)
	settings.PUT("/preferences/:key", h.Settings.HandlePutPreference)
	settings.GET("/audit-logs", h.Admins.HandleAuditLogs)

	admins := authed.Group("/admins", g.RequireCapability(access.CapManageLimitedAdmin))
	admins.GET("", h.Admins.HandleList)
	admins.POST("", h.Admins.HandleCreate)
	admins.PUT("/:id", h.Admins.HandleUpdate)
	admins.DELETE("/:id", h.Admins.HandleDelete)
}
