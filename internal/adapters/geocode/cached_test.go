package geocode

import (
	"context"
	"errors"
	"testing"

	"trip-planner-service/internal/domain"
)

type mapCache struct {
	m       map[string]domain.ResolvedLocation
	getErr  error
	putErr  error
	puts    int
	lastKey string
}

func newMapCache() *mapCache {
	return &mapCache{m: make(map[string]domain.ResolvedLocation)}
}

func (c *mapCache) Get(ctx context.Context, address string) (domain.ResolvedLocation, bool, error) {
	if c.getErr != nil {
		return domain.ResolvedLocation{}, false, c.getErr
	}
	loc, ok := c.m[address]
	return loc, ok, nil
}

func (c *mapCache) Put(ctx context.Context, address string, loc domain.ResolvedLocation) error {
	c.puts++
	c.lastKey = address
	if c.putErr != nil {
		return c.putErr
	}
	c.m[address] = loc
	return nil
}

func TestCachedGeocoderHitSkipsResolver(t *testing.T) {
	next := NewMockGeocoder()
	c := newMapCache()

	loc := domain.ResolvedLocation{Coords: domain.Coordinates{Lon: 1, Lat: 2}, Address: "A"}
	c.m["london"] = loc

	g := NewCachedGeocoder(next, c)

	got, found, err := g.Geocode(context.Background(), "  london ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !found || got != loc {
		t.Fatalf("got %+v found=%v", got, found)
	}
	if next.Calls() != 0 {
		t.Fatalf("resolver called %d times on a cache hit", next.Calls())
	}
}

func TestCachedGeocoderMissPopulatesCache(t *testing.T) {
	next := NewMockGeocoder()
	c := newMapCache()

	loc := domain.ResolvedLocation{Coords: domain.Coordinates{Lon: 1, Lat: 2}, Address: "London"}
	next.Set("london uk", MockResult{Loc: loc, Found: true})

	g := NewCachedGeocoder(next, c)

	_, found, err := g.Geocode(context.Background(), " london  uk ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !found {
		t.Fatal("expected a match")
	}
	if c.lastKey != "london uk" {
		t.Fatalf("cache key = %q, want normalized %q", c.lastKey, "london uk")
	}
	if cached, ok := c.m["london uk"]; !ok || cached != loc {
		t.Fatalf("cache not populated: %+v ok=%v", cached, ok)
	}
}

func TestCachedGeocoderDoesNotCacheNotFoundOrFailure(t *testing.T) {
	next := NewMockGeocoder()
	c := newMapCache()
	g := NewCachedGeocoder(next, c)

	// Not in the mock: resolves to not-found.
	if _, found, err := g.Geocode(context.Background(), "zzz"); err != nil || found {
		t.Fatalf("found=%v err=%v", found, err)
	}

	next.Set("down", MockResult{Err: errors.New("boom")})
	if _, _, err := g.Geocode(context.Background(), "down"); err == nil {
		t.Fatal("expected an error")
	}

	if c.puts != 0 {
		t.Fatalf("cache written %d times for unsuccessful outcomes", c.puts)
	}
}

func TestCachedGeocoderCacheFailuresAreSoft(t *testing.T) {
	next := NewMockGeocoder()
	c := newMapCache()
	c.getErr = errors.New("cache down")
	c.putErr = errors.New("cache down")

	loc := domain.ResolvedLocation{Coords: domain.Coordinates{Lon: 1, Lat: 2}, Address: "London"}
	next.Set("london", MockResult{Loc: loc, Found: true})

	g := NewCachedGeocoder(next, c)

	got, found, err := g.Geocode(context.Background(), "london")
	if err != nil {
		t.Fatalf("cache failure surfaced: %v", err)
	}
	if !found || got != loc {
		t.Fatalf("got %+v found=%v", got, found)
	}
}
