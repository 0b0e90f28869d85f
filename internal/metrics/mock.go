package metrics

import "sync"

// Request is one recorded call to ObserveRequest.
type Request struct {
	Endpoint string
	Status   int
	Seconds  float64
}

// Mock is a mock implementation of the Metrics interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu          sync.Mutex
	requests    []Request
	entities    map[string]int
	startupTime float64
}

var _ Metrics = (*Mock)(nil)

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{
		requests: make([]Request, 0),
		entities: make(map[string]int),
	}
}

func (m *Mock) ObserveRequest(endpoint string, status int, seconds float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests = append(m.requests, Request{Endpoint: endpoint, Status: status, Seconds: seconds})
}

func (m *Mock) SetEntityCount(kind string, n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entities[kind] = n
}

func (m *Mock) SetStartupTime(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.startupTime = duration
}

// Requests returns a copy of every recorded ObserveRequest call.
func (m *Mock) Requests() []Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Request(nil), m.requests...)
}

// EntityCount returns the last value set for kind.
func (m *Mock) EntityCount(kind string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.entities[kind]
}

// StartupTime returns the last value passed to SetStartupTime.
func (m *Mock) StartupTime() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.startupTime
}
