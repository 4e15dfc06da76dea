package ports

import (
	"context"
	"trip-planner-service/internal/domain"
)

// Fully-resolved trip parameters submitted to the routing service.
type RouteRequest struct {
	Start      domain.Coordinates
	End        domain.Coordinates
	CycleHours float64
}

// Contract for submitting a trip to the remote route-planning service.
type RoutePlanner interface {
	// Issue exactly one route request. Implementations must not retry;
	// the error message of a rejected request is shown to the user
	// verbatim.
	PlanRoute(ctx context.Context, req RouteRequest) (domain.RouteResult, error)
}

// Contract for producing compliance log documents for a created trip.
type LogGenerator interface {
	// Fetch the log document for the trip and hand it to the
	// environment's save mechanism. A failed fetch must never result
	// in a save.
	GenerateLogs(ctx context.Context, tripID domain.TripID) error
}
