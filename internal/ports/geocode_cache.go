package ports

import (
	"context"
	"trip-planner-service/internal/domain"
)

// Port: a boundary for caching successful address resolutions.
// Only successful lookups are cached; not-found and service errors
// always go back to the resolver.
type GeocodeCache interface {
	// Get returns the cached resolution for a normalized address.
	Get(ctx context.Context, address string) (domain.ResolvedLocation, bool, error)
	// Put stores a successful resolution under a normalized address.
	Put(ctx context.Context, address string, loc domain.ResolvedLocation) error
}
