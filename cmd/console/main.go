package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"

	"github.com/sahabhq/console/internal/access"
	"github.com/sahabhq/console/internal/auth/jwt"
	"github.com/sahabhq/console/internal/backup"
	"github.com/sahabhq/console/internal/broadcast"
	"github.com/sahabhq/console/internal/common/cnst"
	"github.com/sahabhq/console/internal/common/config"
	"github.com/sahabhq/console/internal/console/handler"
	"github.com/sahabhq/console/internal/console/middleware"
	"github.com/sahabhq/console/internal/console/store"
	"github.com/sahabhq/console/internal/gateway"
	"github.com/sahabhq/console/internal/i18n"
	"github.com/sahabhq/console/internal/platform"
	"github.com/sahabhq/console/internal/session"
	"github.com/sahabhq/console/pkg/helper"
	"github.com/sahabhq/console/pkg/logger"
	"github.com/sahabhq/console/pkg/metrics"
	"github.com/sahabhq/console/pkg/trace"
	"github.com/sahabhq/console/pkg/utils"
	"github.com/sahabhq/console/pkg/version"
)

var (
	configPath string

	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number of the console",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("%s version %s\n", cnst.CommandName, version.Get())
		},
	}

	rootCmd = &cobra.Command{
		Use:   cnst.CommandName,
		Short: "Sahab administration console",
		Long:  `Backend-for-frontend service the administration dashboard talks to`,
		Run: func(cmd *cobra.Command, args []string) {
			run()
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "conf", cnst.ConsoleYaml, "path to configuration file")
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run() {
	cfg, cfgPath, err := config.LoadConfig[config.ConsoleConfig](configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration from %s: %v", cfgPath, err)
	}

	lg, err := logger.NewLogger(&cfg.Logger)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() {
		_ = lg.Sync()
	}()

	lg.Info("Starting console",
		zap.String("version", version.Get()),
		zap.String("config", cfgPath))

	i18n.SetDefaultLanguage(cfg.I18n.DefaultLang)
	if err := i18n.InitTranslator(cfg.I18n.Path); err != nil {
		lg.Warn("Failed to load translations, message ids will be served raw",
			zap.String("path", cfg.I18n.Path),
			zap.Error(err))
	}

	if cfg.Server.PID != "" {
		pidPath := helper.GetPIDPath(cfg.Server.PID)
		if err := utils.NewPIDManagerFromConfig(pidPath).WritePID(); err != nil {
			lg.Fatal("Failed to write PID file",
				zap.String("path", pidPath),
				zap.Error(err))
		}
		lg.Info("PID file written", zap.String("path", pidPath))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	shutdownTracing := func(context.Context) error { return nil }
	if cfg.Tracing.Enabled {
		shutdownTracing, err = trace.InitTracing(ctx, &cfg.Tracing, lg)
		if err != nil {
			lg.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	m := metrics.New(cfg.Metrics)

	sessions, err := session.NewStore(ctx, lg, &cfg.Session)
	if err != nil {
		lg.Fatal("Failed to initialize session store", zap.Error(err))
	}

	prefs, err := store.NewDBStore(lg, &cfg.Database)
	if err != nil {
		lg.Fatal("Failed to initialize preferences store", zap.Error(err))
	}

	client := platform.NewClient(lg, cfg.Upstream, m)
	resolver := access.NewResolver(lg, client, cfg.Identity)

	jwtService, err := jwt.NewService(jwt.Config{
		SecretKey: cfg.JWT.SecretKey,
		Duration:  cfg.JWT.Duration,
	})
	if err != nil {
		lg.Fatal("Failed to initialize token service", zap.Error(err))
	}

	guard := middleware.NewGuard(lg, jwtService, sessions, resolver, m)

	deps := handler.Deps{
		Logger:   lg,
		Platform: client,
		Sessions: sessions,
		Resolver: resolver,
		Metrics:  m,
	}
	handlers := &handler.Handlers{
		Auth:          handler.NewAuth(deps, jwtService),
		Dashboard:     handler.NewDashboard(deps),
		Tenants:       handler.NewTenants(deps),
		Plans:         handler.NewPlans(deps),
		Subscriptions: handler.NewSubscriptions(deps),
		Reports:       handler.NewReports(deps),
		Invoices:      handler.NewInvoices(deps),
		Broadcasts:    handler.NewBroadcasts(deps, broadcast.NewRenderer()),
		Gateways:      handler.NewGateways(deps, gateway.NewTesters()),
		Settings:      handler.NewSettings(deps, prefs),
		Admins:        handler.NewAdmins(deps),
	}

	switch cfg.Server.Mode {
	case gin.DebugMode, gin.ReleaseMode, gin.TestMode:
		gin.SetMode(cfg.Server.Mode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(middleware.Recovery(lg))
	router.Use(middleware.Logger(lg))
	if cfg.Server.CORS != nil {
		router.Use(middleware.CORS(cfg.Server.CORS))
	}
	if cfg.Tracing.Enabled {
		router.Use(otelgin.Middleware(cnst.AppName))
	}
	router.Use(m.Middleware())
	router.Use(middleware.Language())

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "version": version.Get()})
	})
	router.GET("/metrics", gin.WrapH(m.Handler()))

	handler.Register(router, guard, handlers)

	tokens := backup.NewTokenSource(cfg.Upstream.Service, cfg.Upstream.APIKey)
	scheduler := backup.NewScheduler(lg, client, prefs, tokens, m, cfg.Backup)
	scheduler.Start(ctx)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		lg.Info("Console listening", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			lg.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	lg.Info("Shutting down")

	scheduler.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		lg.Error("Server shutdown failed", zap.Error(err))
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		lg.Error("Tracing shutdown failed", zap.Error(err))
	}

	lg.Info("Console stopped")
}
