package cache

import (
	"context"
	"database/sql"
	"testing"

	_ "modernc.org/sqlite"

	"trip-planner-service/internal/domain"
)

func newTestSqliteCache(t *testing.T) *SqliteGeocodeCache {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := InitSchema(db); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	return NewSqliteGeocodeCache(db)
}

func TestSqliteGeocodeCacheRoundTrip(t *testing.T) {
	c := newTestSqliteCache(t)
	ctx := context.Background()

	loc := domain.ResolvedLocation{
		Coords:  domain.Coordinates{Lon: -0.09, Lat: 51.5},
		Address: "London, England, United Kingdom",
	}

	if err := c.Put(ctx, "london", loc); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, ok, err := c.Get(ctx, "london")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Fatal("expected cache hit")
	}
	if got != loc {
		t.Fatalf("got %+v, want %+v", got, loc)
	}
}

func TestSqliteGeocodeCacheMissAndUpsert(t *testing.T) {
	c := newTestSqliteCache(t)
	ctx := context.Background()

	if _, ok, err := c.Get(ctx, "nowhere"); err != nil || ok {
		t.Fatalf("ok=%v err=%v, want miss", ok, err)
	}

	first := domain.ResolvedLocation{Coords: domain.Coordinates{Lon: 1, Lat: 2}, Address: "old"}
	second := domain.ResolvedLocation{Coords: domain.Coordinates{Lon: 3, Lat: 4}, Address: "new"}

	if err := c.Put(ctx, "addr", first); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := c.Put(ctx, "addr", second); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, ok, err := c.Get(ctx, "addr")
	if err != nil || !ok {
		t.Fatalf("ok=%v err=%v", ok, err)
	}
	if got != second {
		t.Fatalf("got %+v, want upserted %+v", got, second)
	}
}
