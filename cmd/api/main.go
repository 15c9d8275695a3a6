package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/perpetual-help/egov-api/internal/config"
	"github.com/perpetual-help/egov-api/internal/handlers"
	"github.com/perpetual-help/egov-api/internal/logging"
	"github.com/perpetual-help/egov-api/internal/middleware"
	"github.com/perpetual-help/egov-api/internal/observability"
	"github.com/perpetual-help/egov-api/internal/services"
	"github.com/perpetual-help/egov-api/internal/wizard"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/perpetual-help/egov-api/docs"
)

// @title           Barangay e-Government Services API
// @version         1.0
// @description     Backend for the barangay citizen services portal: multi-step application wizards, admin review console, news and announcements, and aggregated disaster alerts.

// @contact.name   Portal Support
// @contact.email  support@perpetualhelp.gov.ph

// @host      localhost:8080
// @BasePath  /v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

// @tag.name wizard
// @tag.description Multi-step application wizard

// @tag.name applications
// @tag.description Citizen application tracking

// @tag.name admin
// @tag.description Admin review console

// @tag.name alerts
// @tag.description Disaster alert aggregation

// @tag.name health
// @tag.description Health check operations

func main() {
	if err := logging.InitLogger(); err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}

	if err := config.LoadConfig(); err != nil {
		logging.Logger.Fatal("failed to load config", zap.Error(err))
	}

	observability.InitTracer()
	defer observability.ShutdownTracer()

	config.InitMongoDB()
	config.InitRedis()

	if config.AppConfig.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	logger := logging.Logger

	audit := services.NewAuditService(logger)
	applications := services.NewApplicationService(logger, audit)
	users := services.NewUserService(logger, audit)
	news := services.NewNewsService(logger)
	announcements := services.NewAnnouncementService(logger)
	alerts := services.NewAlertService(logger)
	uploads := services.NewUploadService(logger)
	sessions := wizard.NewStore(config.Redis, config.AppConfig.WizardSessionTTL, logger)

	wizardHandler := handlers.NewWizardHandler(sessions, applications, uploads, logger)
	applicationHandler := handlers.NewApplicationHandler(applications, logger)
	adminApplications := handlers.NewAdminApplicationHandler(applications, audit, logger)
	userHandler := handlers.NewUserHandler(users, logger)
	newsHandler := handlers.NewNewsHandler(news, uploads, logger)
	announcementHandler := handlers.NewAnnouncementHandler(announcements, uploads, logger)
	alertHandler := handlers.NewAlertHandler(alerts, logger)
	exportHandler := handlers.NewExportHandler(applications, logger)

	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.RequestLogger(),
		middleware.RequestTracker(),
		cors.Default(),
	)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.Static("/uploads", config.AppConfig.UploadDir)

	v1 := router.Group("/v1")
	{
		v1.GET("/health", handlers.HealthCheck)

		// Citizen-facing surface
		v1.POST("/wizard/:type", wizardHandler.StartWizard)
		v1.GET("/wizard/sessions/:id", wizardHandler.GetSession)
		v1.PUT("/wizard/sessions/:id/next", wizardHandler.Next)
		v1.PUT("/wizard/sessions/:id/back", wizardHandler.Back)
		v1.POST("/wizard/sessions/:id/submit", wizardHandler.Submit)
		v1.GET("/applications/track/:reference", applicationHandler.Track)
		v1.POST("/users", userHandler.Register)
		v1.GET("/news", newsHandler.ListPublished)
		v1.GET("/announcements", announcementHandler.ListActive)
		v1.GET("/alerts", alertHandler.Aggregate)

		// Admin review console
		admin := v1.Group("/admin", middleware.AuthMiddleware(), middleware.RequireAdmin())
		{
			admin.GET("/applications/:type", adminApplications.List)
			admin.GET("/applications/:type/:id", adminApplications.Get)
			admin.PATCH("/applications/:type/:id", adminApplications.Transition)
			admin.DELETE("/applications/:type/:id", adminApplications.Delete)
			admin.GET("/applications/:type/:id/history", adminApplications.History)

			admin.GET("/users", userHandler.List)
			admin.GET("/users/:id", userHandler.Get)
			admin.PATCH("/users/:id", userHandler.Transition)

			admin.GET("/news", newsHandler.List)
			admin.POST("/news", newsHandler.Create)
			admin.GET("/news/:id", newsHandler.Get)
			admin.PATCH("/news/:id", newsHandler.Update)
			admin.DELETE("/news/:id", newsHandler.Delete)

			admin.GET("/announcements", announcementHandler.List)
			admin.POST("/announcements", announcementHandler.Create)
			admin.GET("/announcements/:id", announcementHandler.Get)
			admin.PATCH("/announcements/:id", announcementHandler.Update)
			admin.DELETE("/announcements/:id", announcementHandler.Delete)

			admin.GET("/alerts", alertHandler.List)
			admin.POST("/alerts", alertHandler.Create)
			admin.GET("/alerts/:id", alertHandler.Get)
			admin.PATCH("/alerts/:id", alertHandler.Update)
			admin.DELETE("/alerts/:id", alertHandler.Delete)

			admin.GET("/legitimacy/:id/pdf", exportHandler.LegitimacyCertificate)
			admin.GET("/export-pdf", exportHandler.ExportApplications)
		}
	}

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	srv := &http.Server{
		Addr: fmt.Sprintf(":%d", config.AppConfig.Port),
		// Browser form posts may carry _method overrides, rewritten before routing
		Handler:      middleware.MethodOverride(router),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logging.Logger.Info("starting server",
			zap.Int("port", config.AppConfig.Port),
			zap.String("environment", config.AppConfig.Environment),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Logger.Fatal("failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logging.Logger.Info("shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logging.Logger.Fatal("server forced to shutdown", zap.Error(err))
	}

	logging.Logger.Info("server exited gracefully")
}
