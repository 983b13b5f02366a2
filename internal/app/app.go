package app

import (
	"context"
	"errors"
	"fmt"
	"io"

	config "github.com/glup3/DotsOfLife/internal"
	"github.com/glup3/DotsOfLife/internal/clock"
	"github.com/glup3/DotsOfLife/internal/jobs"
	"github.com/glup3/DotsOfLife/internal/lifetime"
	"github.com/glup3/DotsOfLife/internal/provider"
	"github.com/glup3/DotsOfLife/internal/render"
	"github.com/rs/zerolog/log"
)

const CommandName = "dots"

// App ties the reference date provider, the calculators and the renderer
// together for the command line entry points.
type App struct {
	configs    *config.Config
	provider   *provider.ReferenceDateProvider
	calculator *lifetime.Calculator
	mapper     *lifetime.Mapper
	renderer   *render.Renderer
	clock      clock.Clock
	out        io.Writer
}

func New(configs *config.Config, store provider.Store, c clock.Clock, renderer *render.Renderer, out io.Writer) *App {
	opts := provider.Options{
		Configured: configs.ReferenceDate,
		Key:        configs.ReferenceDateKey,
		TTL:        configs.ReferenceDateTTL,
	}

	return &App{
		configs:    configs,
		provider:   provider.NewReferenceDateProvider(opts, store, c),
		calculator: lifetime.NewCalculator(configs.Lifetime()),
		mapper:     lifetime.NewMapper(configs.Lifetime()),
		renderer:   renderer,
		clock:      c,
		out:        out,
	}
}

// Show prints the summary, or the prompt when no reference date exists.
func (a *App) Show(ctx context.Context) error {
	result, ok, err := a.compute(ctx)
	if err != nil || !ok {
		return err
	}

	return a.renderer.Summary(a.out, result)
}

func (a *App) Grid(ctx context.Context, unitName string) error {
	unit, err := lifetime.ParseUnit(unitName)
	if err != nil {
		return err
	}

	result, ok, err := a.compute(ctx)
	if err != nil || !ok {
		return err
	}

	grid, err := a.mapper.Grid(unit, result)
	if err != nil {
		return err
	}

	log.Debug().
		Str("unit", string(unit)).
		Int("filled", grid.FilledCells).
		Int("total", grid.TotalCells).
		Msg("rendering grid")

	if _, err := fmt.Fprintf(a.out, "%s %s of %s\n",
		a.renderer.Value(unit, result), unit.Title(), a.renderer.FormatCount(grid.TotalCells)); err != nil {
		return err
	}

	return a.renderer.Grid(a.out, grid)
}

func (a *App) Set(ctx context.Context, value string) error {
	if _, err := a.provider.Remember(ctx, value); err != nil {
		return err
	}

	return a.Show(ctx)
}

func (a *App) Forget(ctx context.Context) error {
	if err := a.provider.Forget(ctx); err != nil {
		return err
	}

	_, err := fmt.Fprintln(a.out, "Forgot the remembered date of birth.")
	return err
}

// Watch re-renders the summary on every refresh until ctx is cancelled.
func (a *App) Watch(ctx context.Context) error {
	reference, _, err := a.provider.Resolve(ctx)
	if errors.Is(err, provider.ErrNoReferenceDate) {
		return a.renderer.Prompt(a.out, CommandName)
	}
	if err != nil {
		return err
	}

	job := jobs.NewRefreshJob(a.calculator, a.clock, reference, a.configs.RefreshInterval)
	job.OnUpdate(func(result lifetime.ElapsedResult) {
		if err := a.renderer.Summary(a.out, result); err != nil {
			log.Error().Err(err).Msg("failed rendering summary")
		}
	})

	job.Run(ctx)

	return nil
}

func (a *App) compute(ctx context.Context) (lifetime.ElapsedResult, bool, error) {
	reference, source, err := a.provider.Resolve(ctx)
	if errors.Is(err, provider.ErrNoReferenceDate) {
		return lifetime.ElapsedResult{}, false, a.renderer.Prompt(a.out, CommandName)
	}
	if err != nil {
		return lifetime.ElapsedResult{}, false, err
	}

	log.Debug().Str("source", string(source)).Str("reference", reference.String()).Msg("resolved reference date")

	result, err := a.calculator.Compute(reference, a.clock.Now())
	if err != nil {
		return result, false, err
	}

	return result, true, nil
}
