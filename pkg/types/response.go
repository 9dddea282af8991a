package types

type SuccessEnvelope struct {
	Data any `json:"data"`
}

type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

// Pagination echoes page-window metadata alongside list payloads.
type Pagination struct {
	Page  int64 `json:"page"`
	Limit int64 `json:"limit"`
	Total int64 `json:"total"`
	Pages int64 `json:"pages"`
}

// PageEnvelope wraps a list payload with its pagination window.
type PageEnvelope struct {
	Data       any        `json:"data"`
	Pagination Pagination `json:"pagination"`
}
