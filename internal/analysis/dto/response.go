package dto

// ErrorResponse represents a generic error response body.
type ErrorResponse struct {
	Error string `json:"error"`
}

// TrendingResponse is the body of the trending endpoint.
type TrendingResponse struct {
	Success bool                `json:"success"`
	Message string              `json:"message"`
	Results []TrendingCandidate `json:"results"`
}

// HealthResponse is the body of the liveness endpoint.
type HealthResponse struct {
	Status string `json:"status"`
}
