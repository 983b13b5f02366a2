package main

import (
	"context"
	"os"

	config "github.com/glup3/DotsOfLife/internal"
	"github.com/glup3/DotsOfLife/internal/app"
	"github.com/glup3/DotsOfLife/internal/clock"
	"github.com/glup3/DotsOfLife/internal/lifetime"
	"github.com/glup3/DotsOfLife/internal/render"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Renders the summary and every grid once from REFERENCE_DATE, without a database.
func main() {
	ctx := context.Background()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	configs, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error loading configuration")
	}
	zerolog.SetGlobalLevel(configs.LogLevel)

	if configs.ReferenceDate == "" {
		log.Fatal().Msg("REFERENCE_DATE must be set")
	}

	a := app.New(configs, nil, clock.RealClock{}, render.NewRenderer(false), os.Stdout)

	if err := a.Show(ctx); err != nil {
		log.Fatal().Err(err).Msg("rendering summary failed")
	}

	for _, unit := range lifetime.Units {
		os.Stdout.WriteString("\n")

		if err := a.Grid(ctx, string(unit)); err != nil {
			log.Fatal().Err(err).Str("unit", string(unit)).Msg("rendering grid failed")
		}
	}
}
