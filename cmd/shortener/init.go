package main

import (
	"os"

	"github.com/UndeadDemidov/shortlink-form/cfg"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func init() {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Caller().Logger()
}

// initLogger выставляет уровень логирования из конфигурации
func initLogger(c *cfg.Config) {
	zerolog.SetGlobalLevel(c.Level())
	log.Info().Msgf("log level is %s", c.Level())
}
