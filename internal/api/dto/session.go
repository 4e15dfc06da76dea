package dto

import (
	"encoding/json"
	"math"

	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/planner"
)

type CreateSessionResponse struct {
	SessionID string `json:"session_id"`
}

type LocationIntentRequest struct {
	Field string `json:"field"`
	Text  string `json:"text"`
}

type FieldIntentRequest struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

type LocationResponse struct {
	Raw     string   `json:"raw"`
	Lat     *float64 `json:"lat,omitempty"`
	Lng     *float64 `json:"lng,omitempty"`
	Address string   `json:"address,omitempty"`
}

type RouteResponse struct {
	Route       json.RawMessage         `json:"route"`
	FuelStops   int                     `json:"fuel_stops"`
	HOSSchedule []domain.HOSScheduleDay `json:"hos_schedule"`
	TripID      domain.TripID           `json:"trip_id"`
}

type SnapshotResponse struct {
	Pickup      LocationResponse  `json:"pickup"`
	Dropoff     LocationResponse  `json:"dropoff"`
	CycleHours  *float64          `json:"cycle_hours"`
	TripDate    string            `json:"trip_date"`
	VehicleType string            `json:"vehicle_type"`
	Resolving   bool              `json:"resolving"`
	Submitting  bool              `json:"submitting"`
	Errors      map[string]string `json:"errors"`
	SubmitError string            `json:"submit_error,omitempty"`
	Notice      string            `json:"notice,omitempty"`
	Route       *RouteResponse    `json:"result,omitempty"`
	TripID      domain.TripID     `json:"trip_id,omitempty"`
}

func locationResponse(l domain.LocationDraft) LocationResponse {
	out := LocationResponse{Raw: l.Raw}
	if l.Resolved != nil {
		lat, lng := l.Resolved.Coords.Lat, l.Resolved.Coords.Lon
		out.Lat = &lat
		out.Lng = &lng
		out.Address = l.Resolved.Address
	}
	return out
}

// FromSnapshot converts a planner snapshot to its wire form.
// NaN cycle hours (unparsable input) is not representable in JSON and
// becomes null.
func FromSnapshot(s planner.Snapshot) SnapshotResponse {
	out := SnapshotResponse{
		Pickup:      locationResponse(s.Draft.Pickup),
		Dropoff:     locationResponse(s.Draft.Dropoff),
		TripDate:    s.Draft.TripDate,
		VehicleType: string(s.Draft.VehicleType),
		Resolving:   s.Resolving,
		Submitting:  s.Submitting,
		Errors:      s.FieldErrors,
		SubmitError: s.SubmitError,
		Notice:      s.Notice,
		TripID:      s.TripID,
	}

	if !math.IsNaN(s.Draft.CycleHours) && !math.IsInf(s.Draft.CycleHours, 0) {
		hours := s.Draft.CycleHours
		out.CycleHours = &hours
	}

	if s.Route != nil {
		out.Route = &RouteResponse{
			Route:       s.Route.Geometry,
			FuelStops:   s.Route.FuelStops,
			HOSSchedule: s.Route.Schedule,
			TripID:      s.Route.TripID,
		}
	}

	return out
}
