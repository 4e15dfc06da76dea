package domain

import (
	"encoding/json"
	"fmt"
)

// Driver configuration for the trip.
type VehicleType string

const (
	VehicleSolo VehicleType = "solo"
	VehicleTeam VehicleType = "team"
)

func (v VehicleType) Valid() bool {
	return v == VehicleSolo || v == VehicleTeam
}

// Scalar form fields editable through the planner.
type Field string

const (
	FieldCycleHours  Field = "cycleHours"
	FieldTripDate    Field = "tripDate"
	FieldVehicleType Field = "vehicleType"
)

// The in-progress trip being assembled by the user.
// Created empty at session start and mutated only through planner
// operations; consumed read-only by validation and route submission.
type TripDraft struct {
	Pickup      LocationDraft
	Dropoff     LocationDraft
	CycleHours  float64
	TripDate    string
	VehicleType VehicleType
}

// NewTripDraft returns the session-start draft: empty locations,
// zero cycle hours, empty date, solo vehicle.
func NewTripDraft() TripDraft {
	return TripDraft{VehicleType: VehicleSolo}
}

// Location returns a pointer to the named location draft.
func (d *TripDraft) Location(f LocationField) *LocationDraft {
	if f == LocationDropoff {
		return &d.Dropoff
	}
	return &d.Pickup
}

// TripID is the identifier assigned by the remote trip service.
// The service emits it as a JSON number (a database key) but it is
// opaque here, so both number and string encodings are accepted.
type TripID string

// MarshalJSON emits numeric ids back as JSON numbers so the trip
// service receives the same shape it produced.
func (id TripID) MarshalJSON() ([]byte, error) {
	var n json.Number = json.Number(id)
	if _, err := n.Int64(); err == nil {
		return []byte(id), nil
	}
	if _, err := n.Float64(); err == nil {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

func (id *TripID) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return fmt.Errorf("unmarshal trip id: %w", err)
		}
		*id = TripID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("unmarshal trip id: %w", err)
	}
	*id = TripID(n.String())
	return nil
}

// One planning day of the Hours-of-Service schedule, produced entirely
// by the remote service and rendered without recomputation.
type HOSScheduleDay struct {
	Day            int     `json:"day"`
	DrivingHours   float64 `json:"driving_hours"`
	OnDutyHours    float64 `json:"on_duty_hours"`
	CycleRemaining float64 `json:"cycle_remaining"`
}

// The outcome of a successful route submission.
// Geometry is opaque route data passed through to presentation.
// A later successful submission replaces the whole value; there is no
// partial-update path.
type RouteResult struct {
	Geometry  json.RawMessage
	FuelStops int
	Schedule  []HOSScheduleDay
	TripID    TripID
}
