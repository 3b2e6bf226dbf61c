package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/tunespace/tunespace-api/docs"
	"github.com/tunespace/tunespace-api/internal/config"
	"github.com/tunespace/tunespace-api/internal/database"
	"github.com/tunespace/tunespace-api/internal/features/chat"
	"github.com/tunespace/tunespace-api/internal/jobs"
	"github.com/tunespace/tunespace-api/internal/middleware"
	"github.com/tunespace/tunespace-api/internal/pkg/audiomatch"
	"github.com/tunespace/tunespace-api/internal/pkg/logger"
	"github.com/tunespace/tunespace-api/internal/pkg/mailer"
	"github.com/tunespace/tunespace-api/internal/pkg/paymongo"
	"github.com/tunespace/tunespace-api/internal/pkg/push"
	"github.com/tunespace/tunespace-api/internal/pkg/storage"
	"github.com/tunespace/tunespace-api/internal/routes"
)

// @title TuneSpace API
// @version 1.0
// @description Creator marketplace backend: profiles, posts, payments, chat and moderation.
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Load()

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("database connection failed: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		logger.Fatal("database migration failed: %v", err)
	}

	store, err := storage.New(cfg.UploadDir)
	if err != nil {
		logger.Fatal("upload storage init failed: %v", err)
	}

	var mail mailer.Sender = mailer.NoopSender{}
	if cfg.ResendAPIKey != "" {
		mail = mailer.NewResendSender(cfg.ResendAPIKey, cfg.MailFrom, "TuneSpace")
	}

	var pushSender push.Sender = push.NoopSender{}
	if cfg.FirebaseCredentials != "" {
		pushSender, err = push.NewFCMSender(context.Background(), cfg.FirebaseCredentials)
		if err != nil {
			logger.Fatal("fcm init failed: %v", err)
		}
	}

	var detector audiomatch.Detector = audiomatch.NoopDetector{}
	if cfg.AudioMatchURL != "" {
		detector = audiomatch.New(cfg.AudioMatchURL, cfg.AudioMatchAPIKey, 0)
	}

	gateway := paymongo.New(cfg.PayMongoAPIKey)

	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware.CORS(cfg.FrontendURL))
	engine.Use(middleware.Logger())

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	hub := chat.NewHub()
	go hub.Run()

	services := routes.Setup(engine, routes.Deps{
		DB:       db,
		Config:   cfg,
		Store:    store,
		Mail:     mail,
		Push:     pushSender,
		Detector: detector,
		Gateway:  gateway,
		Hub:      hub,
	})

	scheduler := jobs.NewScheduler(services.Payments, services.Posts, services.Admin)
	scheduler.Start()

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: engine,
	}

	go func() {
		logger.Info("server listening on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down")

	scheduler.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("shutdown: %v", err)
	}
	logger.Info("server stopped")
}
