package cmd

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"bolao/cache"
	"bolao/config"
	"bolao/database"
	"bolao/events"
	"bolao/notifier"
	"bolao/repository"
	"bolao/server"
	"bolao/service"
)

// Run initializes and starts the application
func Run(ctx context.Context) error {
	cfg := config.Get()

	if cfg.Environment == "production" {
		log.SetFormatter(&log.JSONFormatter{})
	}
	log.WithField("environment", cfg.Environment).Info("Starting bolao service")

	// Database connection
	db, err := database.NewConnection(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()
	log.Info("Database connection established")

	// Event bus and unit of work factory
	eventBus := events.NewBus()
	uowFactory := repository.NewUnitOfWorkFactory(db, eventBus)

	// Outbound notifications over NATS, enabled when a URL is configured
	if cfg.NATSURL != "" {
		publisher, err := notifier.Connect(cfg.NATSURL)
		if err != nil {
			return fmt.Errorf("failed to connect to NATS: %w", err)
		}
		publisher.Register(eventBus)
		log.WithField("url", cfg.NATSURL).Info("NATS notifier registered")
	}

	// Ranking cache over Redis, enabled when a URL is configured.
	// The ranking service works without it; every read hits the database.
	var rankingCache service.RankingCache
	if cfg.RedisURL != "" {
		c, err := cache.New(cfg.RedisURL, time.Duration(cfg.RankingCacheTTL)*time.Second)
		if err != nil {
			return fmt.Errorf("failed to connect to Redis: %w", err)
		}
		defer c.Close()
		c.RegisterInvalidation(eventBus)
		rankingCache = c
		log.WithField("ttl_seconds", cfg.RankingCacheTTL).Info("Ranking cache registered")
	}

	// Services
	profileService := service.NewProfileService(uowFactory)
	participanteService := service.NewParticipanteService(uowFactory)
	provaService := service.NewProvaService(uowFactory)
	apostaService := service.NewApostaService(uowFactory)
	resolucaoService := service.NewResolucaoService(uowFactory)
	rankingService := service.NewRankingService(uowFactory, rankingCache)

	// HTTP server
	handlers := server.New(
		profileService,
		participanteService,
		provaService,
		apostaService,
		resolucaoService,
		rankingService,
		cfg.AdminToken,
	)
	srv := server.NewServer(cfg.HTTPPort, handlers)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Stop(shutdownCtx); err != nil {
		log.WithError(err).Warn("HTTP server shutdown error")
	}

	return nil
}
