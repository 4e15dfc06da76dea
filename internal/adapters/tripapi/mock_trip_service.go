package tripapi

import (
	"context"
	"sync"

	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/ports"
)

// MockTripService serves canned route and log outcomes for tests.
// A gate channel, when set, holds calls open until the test releases
// them, which is how in-flight overlap is exercised.
type MockTripService struct {
	mu         sync.Mutex
	route      domain.RouteResult
	routeErr   error
	logsErr    error
	routeCalls int
	logsCalls  int
	lastReq    ports.RouteRequest
	gate       chan struct{}
}

func NewMockTripService() *MockTripService {
	return &MockTripService{}
}

func (m *MockTripService) SetRoute(r domain.RouteResult, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.route = r
	m.routeErr = err
}

func (m *MockTripService) SetLogsErr(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.logsErr = err
}

// Gate makes subsequent calls block until the returned channel is
// closed.
func (m *MockTripService) Gate() chan struct{} {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gate = make(chan struct{})
	return m.gate
}

func (m *MockTripService) RouteCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.routeCalls
}

func (m *MockTripService) LogsCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.logsCalls
}

func (m *MockTripService) LastRequest() ports.RouteRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastReq
}

func (m *MockTripService) PlanRoute(
	ctx context.Context,
	req ports.RouteRequest,
) (domain.RouteResult, error) {
	m.mu.Lock()
	m.routeCalls++
	m.lastReq = req
	gate := m.gate
	route, err := m.route, m.routeErr
	m.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return domain.RouteResult{}, ctx.Err()
		}
	}

	return route, err
}

func (m *MockTripService) GenerateLogs(ctx context.Context, tripID domain.TripID) error {
	m.mu.Lock()
	m.logsCalls++
	gate := m.gate
	err := m.logsErr
	m.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	return err
}
