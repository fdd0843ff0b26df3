package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/cors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/ilyaedelshtein/kornit-chat/pkg/auth"
	"github.com/ilyaedelshtein/kornit-chat/pkg/bot"
	"github.com/ilyaedelshtein/kornit-chat/pkg/config"
	"github.com/ilyaedelshtein/kornit-chat/pkg/handlers"
	"github.com/ilyaedelshtein/kornit-chat/pkg/metrics"
	"github.com/ilyaedelshtein/kornit-chat/pkg/nav"
	"github.com/ilyaedelshtein/kornit-chat/pkg/server"
	"github.com/ilyaedelshtein/kornit-chat/pkg/storage"
	"github.com/ilyaedelshtein/kornit-chat/pkg/store"
)

func main() {
	config.SetupEnv()
	config.SetupLogger()

	backend, ready, err := buildBackend()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to set up snapshot backend")
	}

	s, err := store.New(backend)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to rehydrate store")
	}

	// A fresh login lands the shell on the empty chat root exactly once.
	s.Subscribe(func(ev store.Event) {
		if ev.Type == store.EventLoginSucceeded {
			s.ResetChatView()
		}
	})
	s.Subscribe(func(ev store.Event) {
		if ev.Type == store.EventMessagePosted && ev.Role != "" {
			metrics.MessagesPosted.WithLabelValues(string(ev.Role)).Inc()
		}
	})

	authenticator, err := auth.NewAuthenticator(
		viper.GetString("DEMO_USERNAME"),
		viper.GetString("DEMO_PASSWORD"),
		viper.GetDuration("LOGIN_DELAY"),
	)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to set up authenticator")
	}
	tokens, err := auth.NewTokenIssuer([]byte(viper.GetString("JWT_SECRET")), viper.GetDuration("SESSION_TTL"))
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to set up token issuer")
	}

	responder := bot.NewResponder(s, bot.WithDelayBounds(
		viper.GetDuration("BOT_MIN_DELAY"),
		viper.GetDuration("BOT_MAX_DELAY"),
	))
	binder := nav.NewBinder(s)

	srv := server.NewServer(config.Name,
		cors.New(config.CorsConfig(config.CorsHosts())),
		8,
		viper.GetDuration("HTTP_REQUEST_TIMEOUT"),
	)
	handlers.RegisterRoutes(srv.Mux(), s, responder, binder, authenticator, tokens, ready)
	metrics.Register()
	metrics.AddBuildInfoMetric()

	addr := viper.GetString("HOST") + ":" + viper.GetString("PORT")
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           srv.Mux(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", addr).Msg("Listening")
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Info().Msg("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Shutdown failed")
	}
	// Let in-flight replies land before the final snapshot flush settles.
	responder.Wait()
}

// buildBackend selects the snapshot backend from the environment. The ready
// probe pings whatever the backend depends on.
func buildBackend() (storage.Backend, func() error, error) {
	switch viper.GetString("STORE_BACKEND") {
	case "postgres":
		db, err := gorm.Open(postgres.Open(config.DSN()), &gorm.Config{})
		if err != nil {
			return nil, nil, err
		}
		backend, err := storage.NewGormBackend(db, storage.DefaultSnapshotKey)
		if err != nil {
			return nil, nil, err
		}
		ready := func() error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.Ping()
		}
		return backend, ready, nil
	case "none":
		return storage.Noop{}, nil, nil
	default:
		path := viper.GetString("STORE_PATH")
		if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
			return nil, nil, err
		}
		backend, err := storage.NewFileBackend(path)
		if err != nil {
			return nil, nil, err
		}
		return backend, nil, nil
	}
}
