package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	config "github.com/glup3/DotsOfLife/internal"
	"github.com/glup3/DotsOfLife/internal/app"
	"github.com/glup3/DotsOfLife/internal/clock"
	database "github.com/glup3/DotsOfLife/internal/db"
	"github.com/glup3/DotsOfLife/internal/provider"
	"github.com/glup3/DotsOfLife/internal/render"
	"github.com/glup3/DotsOfLife/internal/repository"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// main keeps the summary current, refreshing it on REFRESH_INTERVAL until
// interrupted. Logs go to stderr as JSON, the summary to stdout.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	configs, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("loading configuration failed")
	}
	zerolog.SetGlobalLevel(configs.LogLevel)

	var store provider.Store
	if configs.HasDatabase() {
		db, err := database.NewDatabase(ctx, configs.DatabaseURL)
		if err != nil {
			log.Fatal().Err(err).Msg("unable to connect to database")
		}
		defer db.Close()

		err = db.Ping(ctx)
		if err != nil {
			log.Fatal().Err(err).Msg("unable to ping database")
		}

		repo := repository.NewReferenceDateRepository(ctx, db)
		deleted, err := repo.DeleteExpired(clock.RealClock{}.Now())
		if err != nil {
			log.Warn().Err(err).Msg("ignore failed cleanup of expired reference dates")
		} else if deleted > 0 {
			log.Info().Int64("deleted", deleted).Msg("removed expired reference dates")
		}

		store = repo
	}

	a := app.New(configs, store, clock.RealClock{}, render.NewRenderer(true), os.Stdout)

	if err := a.Watch(ctx); err != nil {
		log.Fatal().Err(err).Msg("watching failed")
	}

	log.Info().Msg("Done")
}
