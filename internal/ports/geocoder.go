package ports

import (
	"context"
	"trip-planner-service/internal/domain"
)

// Contract for resolving free-text addresses to coordinates.
type Geocoder interface {
	// Resolve a non-empty address. found=false is the explicit
	// "no match" outcome and is not an error; err covers transport
	// and service failures only.
	Geocode(ctx context.Context, address string) (result domain.ResolvedLocation, found bool, err error)
}
