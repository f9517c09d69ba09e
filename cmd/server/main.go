package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/rs/cors"

	"fanmon/internal/broadcast"
	"fanmon/internal/config"
	"fanmon/internal/controller"
	"fanmon/internal/repository"
	"fanmon/internal/routes"
	"fanmon/internal/service"
)

const startupTimeout = 10 * time.Second

func main() {
	infoLog := log.New(os.Stdout, "INFO: ", log.Ldate|log.Ltime)
	errorLog := log.New(os.Stdout, "ERROR: ", log.Ldate|log.Ltime|log.Lshortfile)

	cfg, err := config.Load()
	if err != nil {
		errorLog.Fatalf("Error loading configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	startupCtx, cancel := context.WithTimeout(ctx, startupTimeout)
	defer cancel()

	// InfluxDB holds the readings.
	influxClient := influxdb2.NewClient(cfg.InfluxURL, cfg.InfluxToken)
	defer influxClient.Close()
	health, err := influxClient.Health(startupCtx)
	if err != nil {
		errorLog.Fatalf("Error connecting to InfluxDB: %v", err)
	}
	if health.Status != "pass" {
		errorLog.Fatalf("InfluxDB health check failed: %v", health.Message)
	}
	infoLog.Println("Connected to InfluxDB")

	// Redis holds the configuration record.
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
	defer redisClient.Close()
	if err := redisClient.Ping(startupCtx).Err(); err != nil {
		errorLog.Fatalf("Error connecting to Redis: %v", err)
	}
	infoLog.Println("Connected to Redis")

	readingRepo := repository.NewInfluxReadingRepository(influxClient, cfg.InfluxOrg, cfg.InfluxBucket, errorLog)
	if err := readingRepo.EnsureBucket(startupCtx); err != nil {
		errorLog.Fatalf("Error preparing readings bucket: %v", err)
	}
	configRepo := repository.NewRedisConfigRepository(redisClient)

	var pub broadcast.Publisher = broadcast.NopPublisher{}
	var hub *broadcast.Hub
	if cfg.PushEnabled {
		hub = broadcast.NewHub()
		pub = hub
	}

	configService := service.NewConfigService(configRepo, pub)
	ingestionService := service.NewIngestionService(readingRepo, pub)
	queryService := service.NewQueryService(readingRepo)

	if err := configService.EnsureConfigExists(startupCtx); err != nil {
		errorLog.Fatalf("Error ensuring config record: %v", err)
	}

	dataController := controller.NewDataController(ingestionService, queryService, errorLog)
	configController := controller.NewConfigController(configService, errorLog)
	var eventsController *controller.EventsController
	if hub != nil {
		eventsController = controller.NewEventsController(hub, infoLog, errorLog)
	}

	router := routes.SetupRouter(dataController, configController, eventsController)

	c := cors.New(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST"},
		AllowedHeaders: []string{"Content-Type"},
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Port),
		Handler:           c.Handler(router),
		IdleTimeout:       30 * time.Second,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
	}
	// No WriteTimeout when push is enabled: event streams outlive any
	// sane deadline. Short-lived deployments get one.
	if !cfg.PushEnabled {
		srv.WriteTimeout = 5 * time.Second
	}

	errCh := make(chan error, 1)
	go func() {
		infoLog.Printf("Server is running on port %s (push enabled: %t)", cfg.Port, cfg.PushEnabled)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case <-ctx.Done():
		infoLog.Println("Shutdown signal received, shutting down server...")
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 20*time.Second)
		defer cancelShutdown()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			errorLog.Printf("graceful shutdown failed: %v; forcing close", err)
			_ = srv.Close()
		}
		<-errCh
	case err := <-errCh:
		if err != nil {
			errorLog.Fatalf("Error starting server: %v", err)
		}
	}

	infoLog.Println("Shutdown complete")
}
