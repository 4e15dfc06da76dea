package planner

import (
	"context"
	"errors"
	"math"
	"strconv"
	"strings"
	"sync"

	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/ports"
)

// ErrBusy rejects a submit or generate-logs while another one is in
// flight for the same session.
var ErrBusy = errors.New("another submission is in flight")

const (
	msgNotFound       = "Could not find location"
	msgGeocodeFailure = "Geocoding service error"
	msgRouteSuccess   = "Route calculated successfully!"
	msgLogsSuccess    = "ELD logs generated successfully!"
)

// Called once per successful route submission with the stored result,
// outside the orchestrator lock. This is the hand-off to sibling
// presentation components (e.g. a map renderer).
type RouteListener func(domain.RouteResult)

// Read-only view of session state handed to the presentation layer.
// Everything is copied; mutating a snapshot never touches the session.
type Snapshot struct {
	Draft       domain.TripDraft
	Resolving   bool
	Submitting  bool
	FieldErrors map[string]string
	SubmitError string
	Notice      string
	Route       *domain.RouteResult
	TripID      domain.TripID
}

// Orchestrator owns the mutable state of one planning session and
// sequences address resolution, validation, route submission and log
// generation against it.
//
// Methods are safe for concurrent use: each presentation request may
// run in its own goroutine. The lock is always released across network
// calls; per-field generation counters decide whether a completed
// resolution is still relevant, and a single in-flight flag keeps
// submit and generate-logs from interleaving.
type Orchestrator struct {
	geocoder ports.Geocoder
	routes   ports.RoutePlanner
	logs     ports.LogGenerator
	onRoute  RouteListener

	mu          sync.Mutex
	draft       domain.TripDraft
	gen         map[domain.LocationField]uint64
	resolving   map[domain.LocationField]int
	submitting  bool
	fieldErrors map[string]string
	submitError string
	notice      string
	route       *domain.RouteResult
	tripID      domain.TripID
}

// New returns a session orchestrator with an empty draft.
// onRoute may be nil.
func New(
	geocoder ports.Geocoder,
	routes ports.RoutePlanner,
	logs ports.LogGenerator,
	onRoute RouteListener,
) *Orchestrator {
	return &Orchestrator{
		geocoder:    geocoder,
		routes:      routes,
		logs:        logs,
		onRoute:     onRoute,
		draft:       domain.NewTripDraft(),
		gen:         make(map[domain.LocationField]uint64),
		resolving:   make(map[domain.LocationField]int),
		fieldErrors: make(map[string]string),
	}
}

// EditLocationText records a keystroke-level edit of an address field.
// The previously resolved coordinate is deliberately kept: resolution
// is only attempted on commit, so retyping never destroys the last
// good result.
func (o *Orchestrator) EditLocationText(which domain.LocationField, text string) {
	if !which.Valid() {
		return
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	o.draft.Location(which).Raw = text
	delete(o.fieldErrors, string(which))
}

// CommitLocation resolves a committed (blurred) address field.
// Empty text is a no-op, distinguishing an untouched field from a
// failed resolution.
//
// The call blocks its goroutine for the duration of the lookup.
// Results are applied in commit order, not response order: each commit
// bumps the field's generation, and a completion whose generation is no
// longer current is discarded without touching state (including its
// error outcomes).
func (o *Orchestrator) CommitLocation(ctx context.Context, which domain.LocationField, text string) error {
	if !which.Valid() || strings.TrimSpace(text) == "" {
		return nil
	}

	o.mu.Lock()
	o.gen[which]++
	gen := o.gen[which]
	o.resolving[which]++
	o.draft.Location(which).Raw = text
	delete(o.fieldErrors, string(which))
	o.mu.Unlock()

	loc, found, err := o.geocoder.Geocode(ctx, text)

	o.mu.Lock()
	defer o.mu.Unlock()

	o.resolving[which]--

	if gen != o.gen[which] {
		// Superseded by a newer commit for this field.
		return nil
	}

	switch {
	case err != nil:
		o.fieldErrors[string(which)] = msgGeocodeFailure
	case !found:
		// Keep any previously resolved coordinate.
		o.fieldErrors[string(which)] = msgNotFound
	default:
		resolved := loc
		o.draft.Location(which).Resolved = &resolved
	}

	return nil
}

// EditField sets a scalar form field from its presentation-layer string
// value and clears any existing error for it.
func (o *Orchestrator) EditField(field domain.Field, value string) {
	o.mu.Lock()
	defer o.mu.Unlock()

	switch field {
	case domain.FieldCycleHours:
		v, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			// Unparsable input must not validate as in-range.
			v = math.NaN()
		}
		o.draft.CycleHours = v
	case domain.FieldTripDate:
		o.draft.TripDate = value
	case domain.FieldVehicleType:
		if vt := domain.VehicleType(value); vt.Valid() {
			o.draft.VehicleType = vt
		}
	default:
		return
	}

	delete(o.fieldErrors, string(field))
}

// Submit validates the draft and, if it passes, issues one route
// request. Validation failures replace the field errors and consume no
// network call, so repeated invalid submits are safe and cheap.
//
// A successful response replaces the whole stored result; a failed one
// surfaces its message as the submit-level error and leaves any prior
// result untouched. Returns ErrBusy while a submit or generate-logs is
// already in flight.
func (o *Orchestrator) Submit(ctx context.Context) error {
	o.mu.Lock()

	vr := ValidateTrip(o.draft)
	if !vr.IsValid() {
		o.fieldErrors = vr.Errors
		o.mu.Unlock()
		return nil
	}

	if o.submitting {
		o.mu.Unlock()
		return ErrBusy
	}
	o.submitting = true
	o.fieldErrors = make(map[string]string)
	o.submitError = ""

	req := ports.RouteRequest{
		Start:      o.draft.Pickup.Resolved.Coords,
		End:        o.draft.Dropoff.Resolved.Coords,
		CycleHours: o.draft.CycleHours,
	}
	o.mu.Unlock()

	res, err := o.routes.PlanRoute(ctx, req)

	o.mu.Lock()
	o.submitting = false

	if err != nil {
		o.submitError = err.Error()
		o.mu.Unlock()
		return nil
	}

	o.route = &res
	o.tripID = res.TripID
	o.notice = msgRouteSuccess
	listener := o.onRoute
	o.mu.Unlock()

	if listener != nil {
		listener(res)
	}
	return nil
}

// GenerateLogs requests the compliance log document for the trip
// created by the last successful submit. No-op without a stored trip
// id; returns ErrBusy while a submit or generate-logs is in flight.
func (o *Orchestrator) GenerateLogs(ctx context.Context) error {
	o.mu.Lock()

	if o.tripID == "" {
		o.mu.Unlock()
		return nil
	}
	if o.submitting {
		o.mu.Unlock()
		return ErrBusy
	}
	o.submitting = true
	o.submitError = ""
	id := o.tripID
	o.mu.Unlock()

	err := o.logs.GenerateLogs(ctx, id)

	o.mu.Lock()
	defer o.mu.Unlock()

	o.submitting = false
	if err != nil {
		o.submitError = err.Error()
		return nil
	}
	o.notice = msgLogsSuccess
	return nil
}

// Dismiss clears the transient submit-level error and success notice.
func (o *Orchestrator) Dismiss() {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.submitError = ""
	o.notice = ""
}

// Snapshot returns a copy of the current session state.
func (o *Orchestrator) Snapshot() Snapshot {
	o.mu.Lock()
	defer o.mu.Unlock()

	s := Snapshot{
		Draft:       o.draft,
		Resolving:   o.resolving[domain.LocationPickup] > 0 || o.resolving[domain.LocationDropoff] > 0,
		Submitting:  o.submitting,
		FieldErrors: make(map[string]string, len(o.fieldErrors)),
		SubmitError: o.submitError,
		Notice:      o.notice,
		TripID:      o.tripID,
	}

	if o.draft.Pickup.Resolved != nil {
		r := *o.draft.Pickup.Resolved
		s.Draft.Pickup.Resolved = &r
	}
	if o.draft.Dropoff.Resolved != nil {
		r := *o.draft.Dropoff.Resolved
		s.Draft.Dropoff.Resolved = &r
	}

	for k, v := range o.fieldErrors {
		s.FieldErrors[k] = v
	}

	if o.route != nil {
		r := *o.route
		r.Geometry = append([]byte(nil), o.route.Geometry...)
		r.Schedule = append([]domain.HOSScheduleDay(nil), o.route.Schedule...)
		s.Route = &r
	}

	return s
}
