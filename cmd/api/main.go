package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"bookinghook/internal/config"
	"bookinghook/internal/database"
	"bookinghook/internal/middleware"
	"bookinghook/internal/modules/webhook"
	"bookinghook/internal/pkg/cache"
	jwtsvc "bookinghook/internal/pkg/jwt"
	"bookinghook/internal/pkg/response"
	"bookinghook/internal/repository"
)

func main() {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	config.LoadDotEnv()

	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("invalid configuration")
	}
	logrus.SetLevel(cfg.LogLevel)
	log := logrus.StandardLogger()

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.WithError(err).Fatal("database connect failed")
	}
	if err := database.Migrate(db); err != nil {
		log.WithError(err).Fatal("database migrate failed")
	}

	var guard webhook.InFlightGuard
	if cfg.RedisAddr != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		client, err := cache.Connect(ctx, cfg.RedisAddr, cfg.RedisPassword)
		cancel()
		if err != nil {
			log.WithError(err).Warn("redis unavailable, in-flight guard disabled")
		} else {
			defer client.Close()
			guard = cache.NewGuard(client, cfg.DedupTTL)
		}
	}

	normalizer, err := webhook.NewNormalizerFromConfig(cfg)
	if err != nil {
		log.WithError(err).Fatal("normalizer setup failed")
	}
	records := repository.NewBookingRecordRepository(db)
	webhookService := webhook.NewService(normalizer, records, guard, log)
	webhookHandler := webhook.NewHandler(webhookService)

	j := jwtsvc.New(cfg.JWTSecret, 12*time.Hour)

	if cfg.AppEnv != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(middleware.RequestLogger(log), middleware.CORS(cfg.CORSAllowedOrigins))

	r.GET("/healthz", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := r.Group("/api/v1")
	{
		hooks := v1.Group("/")
		hooks.Use(middleware.WebhookSecret(cfg.WebhookSecret))
		{
			webhookHandler.RegisterWebhookRoutes(hooks)
		}

		staff := v1.Group("/")
		staff.Use(middleware.StaffAuth(j), middleware.StaffOnly())
		{
			webhookHandler.RegisterCheckinRoutes(staff)
		}
	}

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.WithField("addr", cfg.HTTPAddr).Info("http server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("http server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.WithError(err).Error("http server shutdown failed")
	}
	log.Info("http server stopped")
}
