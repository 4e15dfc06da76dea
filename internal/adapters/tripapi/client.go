package tripapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/platform/obs"
	"trip-planner-service/internal/ports"
)

// Client talks to the remote trip-planning API: route calculation and
// compliance log generation. It implements both RoutePlanner and
// LogGenerator.
//
// Requests are single-attempt and fail fast; retry policy belongs to
// the caller (none is implemented there either). Error payloads from
// the service are surfaced verbatim to the user.
type Client struct {
	session *http.Client
	baseURL string
	sink    ports.DocumentSink
}

func NewClient(baseURL string, sink ports.DocumentSink) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("trip api base URL is empty")
	}
	if sink == nil {
		return nil, errors.New("trip api document sink is nil")
	}

	return &Client{
		// Route calculation fans out to external routing upstream;
		// allow for its latency.
		session: &http.Client{Timeout: 120 * time.Second},
		baseURL: baseURL,
		sink:    sink,
	}, nil
}

type coordsBody struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type routeRequestBody struct {
	Start      coordsBody `json:"start"`
	End        coordsBody `json:"end"`
	CycleHours float64    `json:"cycle_hours"`
}

type routeResponseBody struct {
	Route       json.RawMessage         `json:"route"`
	FuelStops   int                     `json:"fuel_stops"`
	HOSSchedule []domain.HOSScheduleDay `json:"hos_schedule"`
	Trip        struct {
		ID domain.TripID `json:"id"`
	} `json:"trip"`
}

type errorBody struct {
	Error string `json:"error"`
}

// serviceError extracts the {"error": ...} message from a non-success
// response, falling back to a generic message when the body carries
// none.
func serviceError(body []byte, fallback string) error {
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err == nil && strings.TrimSpace(eb.Error) != "" {
		return errors.New(eb.Error)
	}
	return errors.New(fallback)
}

// PlanRoute submits the trip and returns the computed route, fuel-stop
// count, HOS schedule and created trip id.
func (c *Client) PlanRoute(
	ctx context.Context,
	req ports.RouteRequest,
) (_ domain.RouteResult, err error) {
	defer obs.Time(ctx, "tripapi.PlanRoute")(&err)

	payload, err := json.Marshal(routeRequestBody{
		Start:      coordsBody{Lat: req.Start.Lat, Lng: req.Start.Lon},
		End:        coordsBody{Lat: req.End.Lat, Lng: req.End.Lon},
		CycleHours: req.CycleHours,
	})
	if err != nil {
		return domain.RouteResult{}, fmt.Errorf("marshal route request: %w", err)
	}

	resp, err := c.post(ctx, c.baseURL+"/route/", payload)
	if err != nil {
		return domain.RouteResult{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		return domain.RouteResult{}, serviceError(b, "Route calculation failed")
	}

	var decoded routeResponseBody
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return domain.RouteResult{}, fmt.Errorf("decode route response: %w", err)
	}

	return domain.RouteResult{
		Geometry:  decoded.Route,
		FuelStops: decoded.FuelStops,
		Schedule:  decoded.HOSSchedule,
		TripID:    decoded.Trip.ID,
	}, nil
}

type logsRequestBody struct {
	TripID domain.TripID `json:"trip_id"`
}

// GenerateLogs fetches the compliance log document for a trip and
// hands it to the save mechanism under a filename derived from the
// trip id. Nothing is saved unless the service answered with the
// document itself.
func (c *Client) GenerateLogs(ctx context.Context, tripID domain.TripID) (err error) {
	defer obs.Time(ctx, "tripapi.GenerateLogs")(&err)

	payload, err := json.Marshal(logsRequestBody{TripID: tripID})
	if err != nil {
		return fmt.Errorf("marshal logs request: %w", err)
	}

	resp, err := c.post(ctx, c.baseURL+"/logs/", payload)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		return serviceError(b, "Log generation failed")
	}

	doc, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read log document: %w", err)
	}

	filename := fmt.Sprintf("eld_logs_trip_%s.pdf", tripID)
	if err := c.sink.Save(filename, doc); err != nil {
		return fmt.Errorf("save log document: %w", err)
	}

	return nil
}

func (c *Client) post(ctx context.Context, url string, payload []byte) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.session.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	return resp, nil
}
