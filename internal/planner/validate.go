package planner

import "trip-planner-service/internal/domain"

// Static rule failures for a trip draft, keyed by field name.
// An absent key means the field is valid.
type ValidationResult struct {
	Errors map[string]string
}

func (v ValidationResult) IsValid() bool { return len(v.Errors) == 0 }

// ValidateTrip checks a draft against the submission rules.
// Pure function: no side effects, no network access, same input
// always yields the same output.
func ValidateTrip(d domain.TripDraft) ValidationResult {
	errs := make(map[string]string)

	if d.Pickup.Resolved == nil || !d.Pickup.Resolved.Coords.IsFinite() {
		errs[string(domain.LocationPickup)] = "Valid pickup location is required"
	}

	if d.Dropoff.Resolved == nil || !d.Dropoff.Resolved.Coords.IsFinite() {
		errs[string(domain.LocationDropoff)] = "Valid dropoff location is required"
	}

	// Written so NaN cycle hours (from unparsable input) fail the check.
	if !(d.CycleHours >= 0 && d.CycleHours <= 70) {
		errs[string(domain.FieldCycleHours)] = "Cycle hours must be between 0-70"
	}

	if d.TripDate == "" {
		errs[string(domain.FieldTripDate)] = "Trip date is required"
	}

	return ValidationResult{Errors: errs}
}
