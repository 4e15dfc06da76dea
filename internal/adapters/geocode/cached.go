package geocode

import (
	"context"
	"log"

	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/ports"
)

// CachedGeocoder adds a cache-aside layer around another Geocoder.
// Only successful resolutions are cached; not-found and failures always
// reach the wrapped resolver on the next attempt. Cache read/write
// failures are logged and never surfaced to the caller.
type CachedGeocoder struct {
	next  ports.Geocoder
	cache ports.GeocodeCache
}

func NewCachedGeocoder(next ports.Geocoder, cache ports.GeocodeCache) *CachedGeocoder {
	return &CachedGeocoder{next: next, cache: cache}
}

func (c *CachedGeocoder) Geocode(
	ctx context.Context,
	address string,
) (domain.ResolvedLocation, bool, error) {
	norm := normalize(address)

	if c.cache != nil && norm != "" {
		loc, ok, err := c.cache.Get(ctx, norm)
		if err != nil {
			log.Printf("geocode cache read failed: %v", err)
		} else if ok {
			return loc, true, nil
		}
	}

	loc, found, err := c.next.Geocode(ctx, address)
	if err != nil || !found {
		return loc, found, err
	}

	if c.cache != nil && norm != "" {
		if err := c.cache.Put(ctx, norm, loc); err != nil {
			log.Printf("geocode cache write failed: %v", err)
		}
	}

	return loc, true, nil
}
