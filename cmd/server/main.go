package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"time"

	"freightdesk/internal/events"
	"freightdesk/internal/identity"
	identityhandler "freightdesk/internal/identity/handler"
	"freightdesk/internal/jwttoken"
	"freightdesk/internal/platform/config"
	"freightdesk/internal/platform/httpserver"
	"freightdesk/internal/platform/logger"
	"freightdesk/internal/platform/metrics"
	"freightdesk/internal/platform/postgres"
	platformredis "freightdesk/internal/platform/redis"
	"freightdesk/internal/shipment"
	shipmenthandler "freightdesk/internal/shipment/handler"
	httptransport "freightdesk/internal/transport/http"
)

// main wires high-level dependencies and keeps the server lifecycle small.
// Business logic lives in the internal services packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()
	m := metrics.New()

	// Stores: PostgreSQL when configured, in-memory otherwise.
	var userStore identity.UserStore = identity.NewInMemoryUserStore()
	var shipmentStore shipment.Store = shipment.NewInMemoryStore()
	if cfg.DatabaseURL != "" {
		db, err := postgres.Open(cfg.DatabaseURL)
		if err != nil {
			log.Error("postgres connection failed", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		userStore = identity.NewPostgresUserStore(db)
		shipmentStore = shipment.NewPostgresStore(db)
	}

	// Token revocation: shared via Redis when configured.
	var revoked identity.TokenRevocationList = identity.NewMemoryTRL()
	redisClient, err := platformredis.New(cfg.RedisURL)
	if err != nil {
		log.Error("redis connection failed", "error", err)
		os.Exit(1)
	}
	if redisClient != nil {
		defer redisClient.Close()
		revoked = identity.NewRedisTRL(redisClient.Client)
	}

	// Lifecycle events: Kafka when brokers are configured.
	var publisher events.Publisher = events.NoopPublisher{}
	if len(cfg.KafkaBrokers) > 0 {
		kafkaPublisher, err := events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
		if err != nil {
			log.Error("kafka connection failed", "error", err)
			os.Exit(1)
		}
		publisher = kafkaPublisher
	}
	defer publisher.Close()

	jwtService := jwttoken.NewJWTService(cfg.JWTSigningKey, "freightdesk", "freightdesk-api", revoked)
	jwtValidator := jwttoken.NewMiddlewareAdapter(jwtService)

	identityService := identity.NewService(userStore, jwtService, revoked, cfg.TokenTTL, log)
	shipmentService := shipment.NewService(shipmentStore, publisher, m, log)

	router := httptransport.NewRouter(
		log,
		m,
		identityhandler.New(identityService, log, jwtValidator),
		shipmenthandler.New(shipmentService, log, jwtValidator),
	)

	srv := httpserver.New(cfg.Addr, router)

	log.Info("starting freightdesk", "addr", cfg.Addr)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
}
