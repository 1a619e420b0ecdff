package api

// swagger:model api.HealthResponse
type HealthResponse struct {
	Status    string `json:"status" example:"OK"`
	Message   string `json:"message" example:"Server is running healthy!"`
	Timestamp string `json:"timestamp" example:"2025-05-01T15:04:05Z"`
}

// swagger:model api.PingResponse
type PingResponse struct {
	Message string `json:"message" example:"pong"`
}
