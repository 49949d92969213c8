package api

// ErrorResponse is a generic structure for returning errors via API.
type ErrorResponse struct {
	Error   string `json:"error"`             // A high-level error message
	Details string `json:"details,omitempty"` // More specific details, if available
}

// SuccessResponse is a generic structure for simple success messages.
type SuccessResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// PagedResponse wraps a paginated listing. Total is the number of records
// matching the filters independent of pagination.
type PagedResponse struct {
	Results interface{} `json:"results"`
	Total   int64       `json:"total"`
}

// RoleResponse carries the caller's stored role. Role is absent when the
// caller has no account yet.
type RoleResponse struct {
	Role string `json:"role,omitempty"`
}
