package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/shenikar/crisisflow_dashboard/internal/apiclient"
	"github.com/shenikar/crisisflow_dashboard/internal/config"
	"github.com/shenikar/crisisflow_dashboard/internal/handler/http/middleware"
	v1 "github.com/shenikar/crisisflow_dashboard/internal/handler/http/v1"
	"github.com/shenikar/crisisflow_dashboard/internal/handler/web"
	"github.com/shenikar/crisisflow_dashboard/internal/mapview"
	"github.com/shenikar/crisisflow_dashboard/internal/observability"
	"github.com/shenikar/crisisflow_dashboard/internal/poller"
	"github.com/shenikar/crisisflow_dashboard/internal/repository"
	"github.com/shenikar/crisisflow_dashboard/internal/service"
	"github.com/shenikar/crisisflow_dashboard/internal/webhook"
	"github.com/shenikar/crisisflow_dashboard/pkg/logger"
	redisclient "github.com/shenikar/crisisflow_dashboard/pkg/redis"
	"github.com/sirupsen/logrus"

	_ "github.com/shenikar/crisisflow_dashboard/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title CrisisFlow Dashboard API
// @version 1.0
// @description Backend for the CrisisFlow disaster report dashboard.
// @host localhost:8080
// @BasePath /api/v1
func main() {
	// Загрузка конфигурации
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	// Инициализация логгера
	log := logger.New(cfg.LogLevel, cfg.LogFormat)
	log.WithFields(logrus.Fields{
		"api_url": cfg.APIURL,
		"app_env": cfg.AppEnv,
	}).Info("Starting CrisisFlow dashboard")

	// Контекст для graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	clock := clockwork.NewRealClock()
	metrics := observability.NewMetrics()
	builder := mapview.NewBuilder(cfg)
	client := apiclient.NewClient(cfg, metrics, log)

	opts := service.Options{
		Clock:      clock,
		Production: cfg.IsProduction(),
		PollToken:  cfg.AuthToken,
	}

	// Redis необязателен: без него нет кеша снимка и оповещений
	var alertWorker *webhook.AlertWorker
	if cfg.RedisEnabled() {
		redisClient, err := redisclient.NewRedisClient(ctx, cfg)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer redisClient.Close()
		log.Info("Successfully connected to Redis")

		opts.Cache = repository.NewSnapshotRepository(redisClient, cfg.SnapshotTTL)
		opts.Observer = webhook.NewDangerZoneNotifier(webhook.NewRedisAlertPublisher(redisClient), builder, clock, metrics, log)

		alertWorker = webhook.NewAlertWorker(redisClient, log, cfg, metrics, clock)
		alertWorker.Start(ctx)
	} else {
		log.Info("REDIS_ADDR is not set, snapshot cache and danger zone alerts are disabled")
	}

	// Инициализация сервиса
	reportService := service.NewReportService(client, log, metrics, opts)
	if err := reportService.Restore(ctx); err != nil {
		log.WithError(err).Warn("Failed to restore cached snapshot")
	}

	// Запуск опроса отчетов
	reportPoller := poller.New(reportService, cfg.PollInterval, clock, log)
	reportPoller.Start(ctx)

	// Инициализация хэндлеров
	apiHandler := v1.NewHandler(reportService, builder, log, cfg)
	webHandler, err := web.NewHandler(reportService, builder, log, cfg)
	if err != nil {
		log.Fatalf("Failed to load templates: %v", err)
	}

	// Настройка Gin роутера
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestLogger(log), middleware.BearerTokenMiddleware(cfg))

	api := router.Group("/api/v1")
	apiHandler.RegisterRoutes(api)
	webHandler.RegisterRoutes(router)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	// Добавление маршрута для Swagger UI
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Запуск HTTP-сервера
	serverAddr := fmt.Sprintf(":%s", cfg.HTTPPort)

	srv := &http.Server{
		Addr:              serverAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Запуск сервера в горутине
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Error starting HTTP server: %v", err)
		}
	}()
	log.Infof("HTTP server started on port %s", cfg.HTTPPort)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Received shutdown signal, shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorf("Server forced to shutdown: %v", err)
	}

	// Остановка фоновых горутин
	cancel()
	reportPoller.Wait()
	if alertWorker != nil {
		alertWorker.Wait()
	}

	log.Info("Server gracefully stopped")
}
