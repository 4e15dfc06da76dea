package planner

import (
	"math"
	"testing"

	"trip-planner-service/internal/domain"
)

func resolvedDraft() domain.TripDraft {
	d := domain.NewTripDraft()
	d.Pickup.Resolved = &domain.ResolvedLocation{
		Coords:  domain.Coordinates{Lon: -0.1, Lat: 51.5},
		Address: "London",
	}
	d.Dropoff.Resolved = &domain.ResolvedLocation{
		Coords:  domain.Coordinates{Lon: 2.35, Lat: 48.85},
		Address: "Paris",
	}
	d.CycleHours = 10
	d.TripDate = "2024-06-01"
	return d
}

func TestValidateTripValidDraft(t *testing.T) {
	vr := ValidateTrip(resolvedDraft())
	if !vr.IsValid() {
		t.Fatalf("expected valid draft, got errors %v", vr.Errors)
	}
}

func TestValidateTripFieldRules(t *testing.T) {
	cases := []struct {
		name      string
		mutate    func(*domain.TripDraft)
		wantField string
		wantMsg   string
	}{
		{
			name:      "unresolved pickup",
			mutate:    func(d *domain.TripDraft) { d.Pickup.Resolved = nil },
			wantField: "pickup",
			wantMsg:   "Valid pickup location is required",
		},
		{
			name:      "unresolved dropoff",
			mutate:    func(d *domain.TripDraft) { d.Dropoff.Resolved = nil },
			wantField: "dropoff",
			wantMsg:   "Valid dropoff location is required",
		},
		{
			name: "non-finite pickup coordinate",
			mutate: func(d *domain.TripDraft) {
				d.Pickup.Resolved.Coords.Lat = math.NaN()
			},
			wantField: "pickup",
			wantMsg:   "Valid pickup location is required",
		},
		{
			name:      "cycle hours below range",
			mutate:    func(d *domain.TripDraft) { d.CycleHours = -1 },
			wantField: "cycleHours",
			wantMsg:   "Cycle hours must be between 0-70",
		},
		{
			name:      "cycle hours above range",
			mutate:    func(d *domain.TripDraft) { d.CycleHours = 70.5 },
			wantField: "cycleHours",
			wantMsg:   "Cycle hours must be between 0-70",
		},
		{
			name:      "cycle hours not a number",
			mutate:    func(d *domain.TripDraft) { d.CycleHours = math.NaN() },
			wantField: "cycleHours",
			wantMsg:   "Cycle hours must be between 0-70",
		},
		{
			name:      "empty trip date",
			mutate:    func(d *domain.TripDraft) { d.TripDate = "" },
			wantField: "tripDate",
			wantMsg:   "Trip date is required",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := resolvedDraft()
			tc.mutate(&d)

			vr := ValidateTrip(d)
			if vr.IsValid() {
				t.Fatal("expected invalid draft")
			}
			if len(vr.Errors) != 1 {
				t.Fatalf("expected exactly one error, got %v", vr.Errors)
			}
			if got := vr.Errors[tc.wantField]; got != tc.wantMsg {
				t.Fatalf("errors[%q] = %q, want %q", tc.wantField, got, tc.wantMsg)
			}
		})
	}
}

func TestValidateTripBoundaryValues(t *testing.T) {
	for _, hours := range []float64{0, 70} {
		d := resolvedDraft()
		d.CycleHours = hours

		if vr := ValidateTrip(d); !vr.IsValid() {
			t.Errorf("cycle hours %v should be valid, got %v", hours, vr.Errors)
		}
	}
}

func TestValidateTripIndependentFields(t *testing.T) {
	// Every rule fails at once on the empty draft.
	vr := ValidateTrip(domain.TripDraft{})
	if vr.IsValid() {
		t.Fatal("expected invalid draft")
	}

	for _, field := range []string{"pickup", "dropoff", "tripDate"} {
		if _, ok := vr.Errors[field]; !ok {
			t.Errorf("expected error for %q, got %v", field, vr.Errors)
		}
	}

	// Zero cycle hours is inside the range, so it must not be flagged.
	if _, ok := vr.Errors["cycleHours"]; ok {
		t.Errorf("cycleHours should be valid at zero, got %v", vr.Errors)
	}
}

func TestValidateTripDeterministic(t *testing.T) {
	d := domain.TripDraft{}

	first := ValidateTrip(d)
	second := ValidateTrip(d)

	if len(first.Errors) != len(second.Errors) {
		t.Fatalf("validation not deterministic: %v vs %v", first.Errors, second.Errors)
	}
	for k, v := range first.Errors {
		if second.Errors[k] != v {
			t.Fatalf("validation not deterministic for %q: %q vs %q", k, v, second.Errors[k])
		}
	}
}
