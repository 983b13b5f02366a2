package provider

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/glup3/DotsOfLife/internal/clock"
	"github.com/glup3/DotsOfLife/internal/lifetime"
	"github.com/glup3/DotsOfLife/internal/repository"
	"github.com/rs/zerolog/log"
)

var (
	ErrNoReferenceDate = errors.New("no reference date available")
	ErrNoStore         = errors.New("no reference date store configured")
)

type Source string

const (
	SourceConfig Source = "config"
	SourceStore  Source = "store"
)

// Store persists a user entered reference date. It is satisfied by
// repository.ReferenceDateRepository.
type Store interface {
	Save(key string, date lifetime.CalendarDate, now time.Time, ttl time.Duration) error
	Find(key string, now time.Time) (repository.StoredReferenceDate, error)
	Delete(key string) error
}

type Options struct {
	Configured string
	Key        string
	TTL        time.Duration
}

type ReferenceDateProvider struct {
	opts  Options
	store Store
	clock clock.Clock
}

// NewReferenceDateProvider accepts a nil store when no database is configured.
func NewReferenceDateProvider(opts Options, store Store, c clock.Clock) *ReferenceDateProvider {
	return &ReferenceDateProvider{
		opts:  opts,
		store: store,
		clock: c,
	}
}

// Resolve prefers the configured date, then a remembered one.
func (p *ReferenceDateProvider) Resolve(ctx context.Context) (lifetime.CalendarDate, Source, error) {
	if p.opts.Configured != "" {
		date, err := lifetime.ParseCalendarDate(p.opts.Configured)
		if err != nil {
			return lifetime.CalendarDate{}, SourceConfig, err
		}
		return date, SourceConfig, nil
	}

	if p.store == nil {
		return lifetime.CalendarDate{}, "", ErrNoReferenceDate
	}

	if err := ctx.Err(); err != nil {
		return lifetime.CalendarDate{}, "", err
	}

	stored, err := p.store.Find(p.opts.Key, p.clock.Now())
	if errors.Is(err, repository.ErrNotFound) {
		return lifetime.CalendarDate{}, "", ErrNoReferenceDate
	}
	if err != nil {
		return lifetime.CalendarDate{}, SourceStore, fmt.Errorf("failed loading reference date: %w", err)
	}

	log.Debug().
		Str("key", stored.Key).
		Time("expiresAt", stored.ExpiresAt).
		Msg("using remembered reference date")

	return stored.Value, SourceStore, nil
}

// Remember parses and stores a user entered date for the configured TTL.
func (p *ReferenceDateProvider) Remember(ctx context.Context, value string) (lifetime.CalendarDate, error) {
	date, err := lifetime.ParseCalendarDate(value)
	if err != nil {
		return lifetime.CalendarDate{}, err
	}

	if p.store == nil {
		return date, ErrNoStore
	}

	if err := ctx.Err(); err != nil {
		return date, err
	}

	now := p.clock.Now()
	if lifetime.DateOf(now).Before(date) {
		return date, fmt.Errorf("%w: %s is in the future", lifetime.ErrInvalidRange, date)
	}

	if err := p.store.Save(p.opts.Key, date, now, p.opts.TTL); err != nil {
		return date, err
	}

	log.Info().Str("key", p.opts.Key).Str("date", date.String()).Msg("remembered reference date")

	return date, nil
}

func (p *ReferenceDateProvider) Forget(ctx context.Context) error {
	if p.store == nil {
		return ErrNoStore
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	return p.store.Delete(p.opts.Key)
}
