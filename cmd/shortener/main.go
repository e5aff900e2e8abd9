package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/UndeadDemidov/shortlink-form/cfg"
	"github.com/UndeadDemidov/shortlink-form/internal/app/handlers"
	midware "github.com/UndeadDemidov/shortlink-form/internal/app/middleware"
	"github.com/UndeadDemidov/shortlink-form/internal/app/server"
	"github.com/UndeadDemidov/shortlink-form/internal/app/shortening"
	"github.com/UndeadDemidov/shortlink-form/internal/app/storages/memory"
	"github.com/rs/zerolog/log"
)

func main() {
	c := cfg.GetConfig()
	initLogger(c)

	srv, pages := CreateServer(c)
	Run(srv, pages)
}

// CreateServer собирает сервер формы по конфигурации
func CreateServer(c *cfg.Config) (*http.Server, handlers.PageRepository) {
	pages := memory.NewStorage(memory.WithTTL(midware.SessionMaxAge))
	client := shortening.New(c.APIEndpoint, shortening.WithTimeout(c.RequestTimeout))
	log.Info().
		Str("api_endpoint", client.Endpoint()).
		Str("display_base", c.DisplayBase).
		Msg("In memory page storage will be used")

	router := server.NewRouter(c.DisplayBase, client, pages, []byte(c.SessionSecret), log.Logger)
	return server.NewServer(c.ServerAddress, router), pages
}

func Run(srv *http.Server, pages handlers.PageRepository) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("listen")
		}
	}()
	log.Info().Msgf("Server started on %s", srv.Addr)

	<-ctx.Done()
	log.Info().Msg("Server stopped")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer func() {
		if err := pages.Close(); err != nil {
			log.Err(err).Msg("Caught an error due closing page storage")
		}
		cancel()
	}()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Err(err).Msg("Server Shutdown Failed")
		return
	}
	log.Info().Msg("Server exited properly")
}
