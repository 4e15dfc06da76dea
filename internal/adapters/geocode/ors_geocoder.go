package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/platform/obs"
)

// ORSGeocoder resolves free-text addresses using the OpenRouteService
// geocoding endpoint (/geocode/search).
//
// An empty result set from the service is the explicit not-found
// outcome, distinct from transport or service failure. The geocoder is
// safe for concurrent use.
type ORSGeocoder struct {
	session *http.Client
	apiKey  string
	baseURL string
}

func NewORSGeocoder(apiKey string) (*ORSGeocoder, error) {
	if apiKey == "" {
		return nil, errors.New("ORS api key is empty")
	}

	return &ORSGeocoder{
		session: &http.Client{Timeout: 10 * time.Second},
		apiKey:  apiKey,
		baseURL: "https://api.openrouteservice.org",
	}, nil
}

// normalize ensures consistent lookups by collapsing whitespace.
func normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

type geocodeResponse struct {
	Features []struct {
		Geometry struct {
			Coordinates []float64 `json:"coordinates"`
		} `json:"geometry"`
		Properties struct {
			Label string `json:"label"`
		} `json:"properties"`
	} `json:"features"`
}

// Geocode resolves a single address to coordinates plus the normalized
// label reported by the service.
func (g *ORSGeocoder) Geocode(
	ctx context.Context,
	address string,
) (_ domain.ResolvedLocation, _ bool, err error) {
	defer obs.Time(ctx, "ors.Geocode")(&err)

	norm := normalize(address)
	if norm == "" {
		return domain.ResolvedLocation{}, false, errors.New("geocode: address must be non-empty")
	}

	endpoint := g.baseURL + "/geocode/search"

	resp, err := g.doWithRetry(ctx, func() (*http.Request, error) {
		req, err := g.newRequest(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, err
		}
		q := req.URL.Query()
		q.Set("text", norm)
		q.Set("size", "1")
		req.URL.RawQuery = q.Encode()
		return req, nil
	})
	if err != nil {
		return domain.ResolvedLocation{}, false, fmt.Errorf("geocode %q: %w", norm, err)
	}
	defer resp.Body.Close()

	var decoded geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return domain.ResolvedLocation{}, false, fmt.Errorf("decode geocode response: %w", err)
	}

	// An empty feature list is a valid "no match" answer, not a failure.
	if len(decoded.Features) == 0 {
		return domain.ResolvedLocation{}, false, nil
	}

	coords := decoded.Features[0].Geometry.Coordinates
	if len(coords) != 2 {
		return domain.ResolvedLocation{}, false, fmt.Errorf("geocode %q: invalid coordinate format", norm)
	}

	label := strings.TrimSpace(decoded.Features[0].Properties.Label)
	if label == "" {
		label = norm
	}

	return domain.ResolvedLocation{
		Coords:  domain.Coordinates{Lon: coords[0], Lat: coords[1]},
		Address: label,
	}, true, nil
}
