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

	"github.com/voyatalk/voyatalk/internal/auth"
	"github.com/voyatalk/voyatalk/internal/cache"
	"github.com/voyatalk/voyatalk/internal/config"
	"github.com/voyatalk/voyatalk/internal/domain"
	"github.com/voyatalk/voyatalk/internal/events"
	"github.com/voyatalk/voyatalk/internal/handler"
	"github.com/voyatalk/voyatalk/internal/hub"
	"github.com/voyatalk/voyatalk/internal/payment"
	"github.com/voyatalk/voyatalk/internal/repository"
	"github.com/voyatalk/voyatalk/internal/service"
	"github.com/voyatalk/voyatalk/pkg/database"
	"github.com/voyatalk/voyatalk/pkg/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log.Init(cfg.Log)
	logger := log.L()

	if cfg.Auth.TokenSecret == "" {
		logger.Fatal().Msg("auth.token_secret (JWT_SECRET) is required")
	}

	// Database
	db, err := database.New(&cfg.Database)
	if err != nil {
		logger.Fatal().Err(err).Msg("database connection failed")
	}
	if err := database.AutoMigrate(db,
		&domain.UserModel{},
		&domain.MessageModel{},
		&domain.FlightBookingModel{},
	); err != nil {
		logger.Fatal().Err(err).Msg("database migration failed")
	}
	logger.Info().Str("driver", cfg.Database.Driver).Msg("connected to database")

	userRepo := repository.NewGormUserRepository(db)
	messageRepo := repository.NewGormMessageRepository(db)
	bookingRepo := repository.NewGormBookingRepository(db)

	// Conversation history cache
	var history cache.ConversationCache = cache.NoopCache{}
	if cfg.Redis.Address != "" {
		redisCache, err := cache.NewRedisConversationCache(cfg.Redis)
		if err != nil {
			logger.Fatal().Err(err).Msg("redis connection failed")
		}
		defer redisCache.Close()
		history = redisCache
		logger.Info().Str("address", cfg.Redis.Address).Msg("connected to redis")
	}

	// Message archive
	var archive events.Publisher = events.NoopPublisher{}
	if cfg.Kafka.Brokers != "" {
		producer, err := events.NewConfluentProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic, cfg.Kafka.Partitions)
		if err != nil {
			logger.Fatal().Err(err).Msg("kafka producer failed")
		}
		defer producer.Close()
		archive = producer
		logger.Info().Str("brokers", cfg.Kafka.Brokers).Str("topic", cfg.Kafka.Topic).Msg("connected to kafka")
	}

	// Verifiers: secrets flow from config into constructors only.
	verifier := auth.NewVerifier(cfg.Auth.TokenSecret, cfg.Auth.TokenTTL, cfg.Auth.CookieName)
	payments := payment.NewVerifier(cfg.Payment.Secret)

	// Relay
	wsHub := hub.NewHub(cfg.WebSocket)
	presence := hub.NewPresenceBroadcaster(wsHub)
	relaySvc := service.NewRelayService(wsHub, presence, messageRepo, bookingRepo, payments, history, archive)
	userSvc := service.NewUserService(userRepo, verifier)
	historySvc := service.NewHistoryService(messageRepo, bookingRepo, history)

	// HTTP
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(log.GinMiddleware(logger), gin.Recovery())

	handler.NewHTTPHandler(userSvc, historySvc, verifier).RegisterRoutes(r)
	handler.NewWSHandler(wsHub, relaySvc, verifier).RegisterRoutes(r)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().Str("addr", server.Addr).Msg("relay listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Warn().Err(err).Msg("server forced to shutdown")
	}

	logger.Info().Msg("stopped")
}
