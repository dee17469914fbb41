package dto

// ErrorResponse represents an error in the API response
type ErrorResponse struct {
	Error   string                 `json:"error"`
	Code    string                 `json:"code"`
	Details map[string]interface{} `json:"details,omitempty"`
	Fields  interface{}            `json:"fields,omitempty"`
}

// MessageResponse is returned by delete endpoints
type MessageResponse struct {
	Message string `json:"message"`
}

// HealthResponse reports process and database status
type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}
