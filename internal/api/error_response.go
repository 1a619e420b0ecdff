package api

// swagger:model api.ErrorResponse
type ErrorResponse struct {
	Message string `json:"message" example:"invalid email or password"`
}

// swagger:model api.MessageResponse
type MessageResponse struct {
	Message string `json:"message" example:"user removed"`
}
