package dto

// HealthResponse reports the service and dependency states.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}
