package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	config "github.com/glup3/DotsOfLife/internal"
	"github.com/glup3/DotsOfLife/internal/app"
	"github.com/glup3/DotsOfLife/internal/clock"
	database "github.com/glup3/DotsOfLife/internal/db"
	"github.com/glup3/DotsOfLife/internal/provider"
	"github.com/glup3/DotsOfLife/internal/render"
	"github.com/glup3/DotsOfLife/internal/repository"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

	if len(os.Args) < 2 {
		log.Fatal().Msg("Usage: ./dots [show|grid <days|weeks|years>|set <YYYY-MM-DD>|forget|watch]")
	}

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

		store = repository.NewReferenceDateRepository(ctx, db)
	}

	plain := !isatty.IsTerminal(os.Stdout.Fd())
	a := app.New(configs, store, clock.RealClock{}, render.NewRenderer(plain), os.Stdout)

	mode := os.Args[1]
	switch mode {
	case "show":
		err = a.Show(ctx)
	case "grid":
		if len(os.Args) < 3 {
			log.Fatal().Msg("Usage: ./dots grid <days|weeks|years>")
		}
		err = a.Grid(ctx, os.Args[2])
	case "set":
		if len(os.Args) < 3 {
			log.Fatal().Msg("Usage: ./dots set <YYYY-MM-DD>")
		}
		err = a.Set(ctx, os.Args[2])
	case "forget":
		err = a.Forget(ctx)
	case "watch":
		err = a.Watch(ctx)
	default:
		log.Fatal().Msgf("Invalid mode: %s. Use 'show', 'grid', 'set', 'forget' or 'watch'", mode)
	}

	if err != nil {
		log.Fatal().Err(err).Str("mode", mode).Msg("command failed")
	}
}
