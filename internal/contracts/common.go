package contracts

type MessageResponse struct {
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error   string                 `json:"error"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

type HealthInfo struct {
	URL string `json:"url"`
}

type HealthResponse struct {
	Message string     `json:"message"`
	Info    HealthInfo `json:"info"`
}
