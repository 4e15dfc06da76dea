package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/platform/obs"
)

// SQLGeocodeCache is the Postgres variant of the geocode cache, for
// deployments that share one cache across instances.
type SQLGeocodeCache struct {
	DB *sql.DB
}

func NewSQLGeocodeCache(db *sql.DB) *SQLGeocodeCache {
	return &SQLGeocodeCache{DB: db}
}

// Fetch the cached resolution for the given address.
func (s *SQLGeocodeCache) Get(
	ctx context.Context,
	address string,
) (_ domain.ResolvedLocation, _ bool, err error) {
	defer obs.Time(ctx, "geocode.cache.Get")(&err)

	if s.DB == nil {
		return domain.ResolvedLocation{}, false, errors.New("geocode cache: db is nil")
	}

	address = strings.TrimSpace(address)
	if address == "" {
		return domain.ResolvedLocation{}, false, nil
	}

	q := `
	SELECT
        lon,
        lat,
        label
    FROM geocode_cache
    WHERE address = $1;
	`

	var lon, lat float64
	var label string
	err = s.DB.QueryRowContext(ctx, q, address).Scan(&lon, &lat, &label)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ResolvedLocation{}, false, nil
	}
	if err != nil {
		return domain.ResolvedLocation{}, false, fmt.Errorf("get geocode cache: query geocode_cache table: %w", err)
	}

	return domain.ResolvedLocation{
		Coords:  domain.Coordinates{Lon: lon, Lat: lat},
		Address: label,
	}, true, nil
}

// Store an address -> resolution mapping in the cache.
func (s *SQLGeocodeCache) Put(
	ctx context.Context,
	address string,
	loc domain.ResolvedLocation,
) (err error) {
	defer obs.Time(ctx, "geocode.cache.Put")(&err)

	if s.DB == nil {
		return errors.New("geocode cache: db is nil")
	}

	address = strings.TrimSpace(address)
	if address == "" {
		return nil
	}

	q := `
	INSERT INTO geocode_cache (address, lon, lat, label)
    VALUES ($1, $2, $3, $4)
    ON CONFLICT (address) DO UPDATE SET
        lon = EXCLUDED.lon,
        lat = EXCLUDED.lat,
        label = EXCLUDED.label;
	`

	if _, err := s.DB.ExecContext(ctx, q, address, loc.Coords.Lon, loc.Coords.Lat, loc.Address); err != nil {
		return fmt.Errorf("put geocode cache: upsert geocode_cache row: %w", err)
	}

	return nil
}
