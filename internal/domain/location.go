package domain

// Identifies one of the two resolvable address fields of a trip.
type LocationField string

const (
	LocationPickup  LocationField = "pickup"
	LocationDropoff LocationField = "dropoff"
)

func (f LocationField) Valid() bool {
	return f == LocationPickup || f == LocationDropoff
}

// A successfully geocoded address: coordinates plus the normalized
// address text returned by the resolver. The two always travel together.
type ResolvedLocation struct {
	Coords  Coordinates
	Address string
}

// Represents one address field of the trip draft.
// Raw holds whatever the user last typed; Resolved is set only by a
// completed, still-relevant geocode and is nil until one succeeds.
// Retyping does not clear Resolved, so the last good resolution survives
// edits until a newer commit replaces it.
type LocationDraft struct {
	Raw      string
	Resolved *ResolvedLocation
}
