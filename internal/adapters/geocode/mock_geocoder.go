package geocode

import (
	"context"
	"sync"

	"trip-planner-service/internal/domain"
)

// Canned outcome for one address in a MockGeocoder.
type MockResult struct {
	Loc   domain.ResolvedLocation
	Found bool
	Err   error
}

// MockGeocoder serves canned resolutions for tests. A gate channel can
// be attached to an address to hold its lookup open until the test
// releases it, which is how out-of-order completions are exercised.
type MockGeocoder struct {
	mu      sync.Mutex
	results map[string]MockResult
	gates   map[string]chan struct{}
	calls   int
}

func NewMockGeocoder() *MockGeocoder {
	return &MockGeocoder{
		results: make(map[string]MockResult),
		gates:   make(map[string]chan struct{}),
	}
}

func (m *MockGeocoder) Set(address string, r MockResult) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.results[address] = r
}

// Gate makes lookups for address block until the returned channel is
// closed.
func (m *MockGeocoder) Gate(address string) chan struct{} {
	m.mu.Lock()
	defer m.mu.Unlock()
	ch := make(chan struct{})
	m.gates[address] = ch
	return ch
}

func (m *MockGeocoder) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

func (m *MockGeocoder) Geocode(
	ctx context.Context,
	address string,
) (domain.ResolvedLocation, bool, error) {
	m.mu.Lock()
	m.calls++
	r, ok := m.results[address]
	gate := m.gates[address]
	m.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return domain.ResolvedLocation{}, false, ctx.Err()
		}
	}

	if !ok {
		return domain.ResolvedLocation{}, false, nil
	}
	return r.Loc, r.Found, r.Err
}
