package dto

// HealthResponse represents the response structure for the API health check
type HealthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Version string `json:"version"`
}

// ReadinessResponse represents the response structure for readiness probes
type ReadinessResponse struct {
	Status  string `json:"status"`
	Details any    `json:"details,omitempty"`
}
