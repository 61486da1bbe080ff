// HealthBite development API: a local stand-in for the auth, health-profile
// and chatbot endpoints.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/Vshn2k5/HEALTHBITE-Kukku/internal/api"
	"github.com/Vshn2k5/HEALTHBITE-Kukku/internal/api/handler"
	"github.com/Vshn2k5/HEALTHBITE-Kukku/internal/backend"
	"github.com/Vshn2k5/HEALTHBITE-Kukku/internal/core/ports"
	"github.com/Vshn2k5/HEALTHBITE-Kukku/internal/core/service"
	mongodb "github.com/Vshn2k5/HEALTHBITE-Kukku/internal/infrastructure/db/mongo"
	"github.com/Vshn2k5/HEALTHBITE-Kukku/internal/infrastructure/memstore"
	"github.com/Vshn2k5/HEALTHBITE-Kukku/internal/pkg/config"
	"github.com/Vshn2k5/HEALTHBITE-Kukku/pkg/logger"
)

const insecureDefaultSecret = "dev-secret-key-only-for-local-testing"

func main() {
	envErr := godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		logger.Init(logger.Options{Pretty: true, Service: "devapi"})
		l := logger.Get()
		l.Fatal().Err(err).Msg("failed to load configuration")
	}

	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: cfg.LogPretty, Service: "devapi"})
	if envErr != nil {
		log.Debug().Msg("no .env file found, using environment variables")
	}
	if cfg.IsProduction() && cfg.DevAPI.JWTSecret == insecureDefaultSecret {
		log.Fatal().Msg("JWT_SECRET must be set in production")
	}

	var repo ports.UserRepository
	probes := map[string]handler.PingFunc{}

	if uri := cfg.DevAPI.Mongo.URI; uri != "" {
		store, err := mongodb.Connect(ctx, mongodb.Config{URI: uri, Database: cfg.DevAPI.Mongo.Database})
		if err != nil {
			log.Fatal().Err(err).Msg("mongo connection failed")
		}
		defer func() {
			if err := store.Close(5 * time.Second); err != nil {
				log.Error().Err(err).Msg("mongo disconnect failed")
			}
		}()

		users := mongodb.NewUserRepository(store.Database())
		if err := users.EnsureIndexes(ctx); err != nil {
			log.Fatal().Err(err).Msg("mongo index creation failed")
		}
		repo = users
		probes["mongodb"] = store.Ping
		log.Info().Str("database", cfg.DevAPI.Mongo.Database).Msg("using mongo user store")
	} else {
		repo = memstore.NewUserRepository()
		log.Info().Msg("MONGO_URI not set, using in-memory user store")
	}

	router := api.NewRouter(api.Deps{
		Accounts:  service.NewAccountService(repo, cfg.DevAPI.JWTSecret, cfg.DevAPI.TokenTTL),
		Replies:   backend.NewEngine(),
		JWTSecret: cfg.DevAPI.JWTSecret,
		Probes:    probes,
		Log:       logger.For("http"),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.DevAPI.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Str("env", cfg.Env).Msg("development API listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
