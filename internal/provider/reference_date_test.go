package provider

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/glup3/DotsOfLife/internal/clock"
	"github.com/glup3/DotsOfLife/internal/lifetime"
	"github.com/glup3/DotsOfLife/internal/repository"
)

type memoryStore struct {
	values map[string]repository.StoredReferenceDate
	err    error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{values: make(map[string]repository.StoredReferenceDate)}
}

func (s *memoryStore) Save(key string, date lifetime.CalendarDate, now time.Time, ttl time.Duration) error {
	if s.err != nil {
		return s.err
	}
	s.values[key] = repository.StoredReferenceDate{Key: key, Value: date, ExpiresAt: now.Add(ttl)}
	return nil
}

func (s *memoryStore) Find(key string, now time.Time) (repository.StoredReferenceDate, error) {
	if s.err != nil {
		return repository.StoredReferenceDate{}, s.err
	}
	stored, ok := s.values[key]
	if !ok || !stored.ExpiresAt.After(now) {
		return repository.StoredReferenceDate{}, repository.ErrNotFound
	}
	return stored, nil
}

func (s *memoryStore) Delete(key string) error {
	delete(s.values, key)
	return nil
}

func TestResolve(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	remembered := lifetime.NewCalendarDate(1985, time.March, 3)

	tests := []struct {
		name       string
		configured string
		stored     bool
		noStore    bool
		expected   lifetime.CalendarDate
		source     Source
		err        error
	}{
		{
			name:       "Configured date wins",
			configured: "1990-06-15",
			stored:     true,
			expected:   lifetime.NewCalendarDate(1990, time.June, 15),
			source:     SourceConfig,
		},
		{
			name:     "Remembered date",
			stored:   true,
			expected: remembered,
			source:   SourceStore,
		},
		{
			name: "Nothing available",
			err:  ErrNoReferenceDate,
		},
		{
			name:    "Nothing available without store",
			noStore: true,
			err:     ErrNoReferenceDate,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			store := newMemoryStore()
			if test.stored {
				_ = store.Save("dob", remembered, now, time.Hour)
			}

			var s Store = store
			if test.noStore {
				s = nil
			}

			p := NewReferenceDateProvider(Options{Configured: test.configured, Key: "dob", TTL: time.Hour}, s, clock.NewFakeClock(now))

			date, source, err := p.Resolve(ctx)
			if test.err != nil {
				if !errors.Is(err, test.err) {
					t.Fatalf("expected %v, got %v", test.err, err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if date != test.expected || source != test.source {
				t.Errorf("got %s from %s, want %s from %s", date, source, test.expected, test.source)
			}
		})
	}
}

func TestResolveIgnoresExpiredDate(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	c := clock.NewFakeClock(now)
	store := newMemoryStore()
	p := NewReferenceDateProvider(Options{Key: "dob", TTL: 365 * 24 * time.Hour}, store, c)

	if _, err := p.Remember(context.Background(), "1990-06-15"); err != nil {
		t.Fatal(err)
	}

	c.Advance(366 * 24 * time.Hour)

	_, _, err := p.Resolve(context.Background())
	if !errors.Is(err, ErrNoReferenceDate) {
		t.Fatalf("expected ErrNoReferenceDate, got %v", err)
	}
}

func TestResolveStoreFailure(t *testing.T) {
	store := newMemoryStore()
	store.err = errors.New("connection refused")
	p := NewReferenceDateProvider(Options{Key: "dob"}, store, clock.NewFakeClock(time.Now()))

	_, _, err := p.Resolve(context.Background())
	if err == nil || errors.Is(err, ErrNoReferenceDate) {
		t.Fatalf("expected store error, got %v", err)
	}
}

func TestRemember(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

	t.Run("Stores a valid date", func(t *testing.T) {
		store := newMemoryStore()
		p := NewReferenceDateProvider(Options{Key: "dob", TTL: time.Hour}, store, clock.NewFakeClock(now))

		date, err := p.Remember(ctx, "1990-06-15")
		if err != nil {
			t.Fatal(err)
		}

		stored := store.values["dob"]
		if stored.Value != date || !stored.ExpiresAt.Equal(now.Add(time.Hour)) {
			t.Errorf("unexpected stored value %+v", stored)
		}
	})

	t.Run("Rejects malformed input", func(t *testing.T) {
		p := NewReferenceDateProvider(Options{Key: "dob"}, newMemoryStore(), clock.NewFakeClock(now))

		if _, err := p.Remember(ctx, "June 15"); err == nil {
			t.Error("expected parse error")
		}
	})

	t.Run("Rejects future dates", func(t *testing.T) {
		p := NewReferenceDateProvider(Options{Key: "dob"}, newMemoryStore(), clock.NewFakeClock(now))

		_, err := p.Remember(ctx, "2024-06-16")
		if !errors.Is(err, lifetime.ErrInvalidRange) {
			t.Errorf("expected ErrInvalidRange, got %v", err)
		}
	})

	t.Run("Requires a store", func(t *testing.T) {
		p := NewReferenceDateProvider(Options{Key: "dob"}, nil, clock.NewFakeClock(now))

		_, err := p.Remember(ctx, "1990-06-15")
		if !errors.Is(err, ErrNoStore) {
			t.Errorf("expected ErrNoStore, got %v", err)
		}
	})

	t.Run("Forget removes the date", func(t *testing.T) {
		store := newMemoryStore()
		p := NewReferenceDateProvider(Options{Key: "dob", TTL: time.Hour}, store, clock.NewFakeClock(now))

		if _, err := p.Remember(ctx, "1990-06-15"); err != nil {
			t.Fatal(err)
		}
		if err := p.Forget(ctx); err != nil {
			t.Fatal(err)
		}
		if _, _, err := p.Resolve(ctx); !errors.Is(err, ErrNoReferenceDate) {
			t.Errorf("expected ErrNoReferenceDate, got %v", err)
		}
	})
}
