package main

import (
	"finboard/app"
	"finboard/config"

	"github.com/rs/zerolog/log"
)

func main() {
	// Load config from .env file
	cfg := config.LoadFromEnv()

	// Create and start app
	application := app.New(cfg)
	if err := application.Start(); err != nil {
		log.Fatal().Err(err).Msg("finboard stopped")
	}
}
