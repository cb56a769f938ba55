package dto

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// DateLayout is the format of date-only query parameters.
const DateLayout = "2006-01-02"
