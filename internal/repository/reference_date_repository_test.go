package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/glup3/DotsOfLife/internal/lifetime"
	"github.com/glup3/DotsOfLife/internal/testutil"
)

func TestReferenceDateRepository(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping postgres container test in short mode")
	}

	ctx := context.Background()
	database, cleanup, err := testutil.SetupPostgresContainer(ctx)
	if err != nil {
		t.Fatalf("failed to set up test container: %v", err)
	}
	defer cleanup()

	r := NewReferenceDateRepository(ctx, database)
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	year := 365 * 24 * time.Hour

	t.Run("Test saving and finding a reference date", func(t *testing.T) {
		t.Cleanup(func() { _ = r.Delete("dob") })

		date := lifetime.NewCalendarDate(1990, time.June, 15)
		if err := r.Save("dob", date, now, year); err != nil {
			t.Fatal(err)
		}

		stored, err := r.Find("dob", now)
		if err != nil {
			t.Fatal(err)
		}
		if stored.Value != date {
			t.Fatalf("Expected %s to equal %s", stored.Value, date)
		}
		if !stored.ExpiresAt.Equal(now.Add(year)) {
			t.Fatalf("Expected expiry %s, got %s", now.Add(year), stored.ExpiresAt)
		}
	})

	t.Run("Test saving overrides the previous value", func(t *testing.T) {
		t.Cleanup(func() { _ = r.Delete("dob") })

		if err := r.Save("dob", lifetime.NewCalendarDate(1990, time.June, 15), now, year); err != nil {
			t.Fatal(err)
		}
		updated := lifetime.NewCalendarDate(1985, time.February, 28)
		if err := r.Save("dob", updated, now.Add(time.Hour), year); err != nil {
			t.Fatal(err)
		}

		stored, err := r.Find("dob", now.Add(time.Hour))
		if err != nil {
			t.Fatal(err)
		}
		if stored.Value != updated {
			t.Fatalf("Expected %s to equal %s", stored.Value, updated)
		}
	})

	t.Run("Test expired reference date is not found", func(t *testing.T) {
		t.Cleanup(func() { _ = r.Delete("dob") })

		if err := r.Save("dob", lifetime.NewCalendarDate(1990, time.June, 15), now, year); err != nil {
			t.Fatal(err)
		}

		_, err := r.Find("dob", now.Add(year+time.Second))
		if !errors.Is(err, ErrNotFound) {
			t.Fatalf("Expected ErrNotFound, got %v", err)
		}

		deleted, err := r.DeleteExpired(now.Add(year + time.Second))
		if err != nil {
			t.Fatal(err)
		}
		if deleted != 1 {
			t.Fatalf("Expected 1 deleted row, got %d", deleted)
		}
	})

	t.Run("Test deleting a reference date", func(t *testing.T) {
		if err := r.Save("dob", lifetime.NewCalendarDate(1990, time.June, 15), now, year); err != nil {
			t.Fatal(err)
		}
		if err := r.Delete("dob"); err != nil {
			t.Fatal(err)
		}

		_, err := r.Find("dob", now)
		if !errors.Is(err, ErrNotFound) {
			t.Fatalf("Expected ErrNotFound, got %v", err)
		}
	})
}
