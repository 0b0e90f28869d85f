package metrics

// Metrics defines the interface for collecting application metrics.
// This decouples the application from the specific metrics implementation (e.g., Prometheus).
type Metrics interface {
	ObserveRequest(endpoint string, status int, seconds float64)
	SetEntityCount(kind string, n int)
	SetStartupTime(duration float64)
}
