package response

// ErrorBody is the error format of every endpoint. Detail is a string for
// ordinary failures and a list of field errors for validation failures.
type ErrorBody struct {
	Detail any `json:"detail"`
}

// Error wraps a human readable message.
func Error(msg string) ErrorBody {
	return ErrorBody{Detail: msg}
}

// Detail wraps structured detail, e.g. field-level validation errors.
func Detail(detail any) ErrorBody {
	return ErrorBody{Detail: detail}
}

// Message is the body of endpoints that only acknowledge an action.
type Message struct {
	Message string `json:"message"`
}

// Page is the envelope of paginated listings.
type Page[T any] struct {
	Items []T   `json:"items"`
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
}

// NewPage builds a Page, never serializing a nil item list.
func NewPage[T any](items []T, total int64, page, limit int) Page[T] {
	if items == nil {
		items = []T{}
	}
	return Page[T]{Items: items, Total: total, Page: page, Limit: limit}
}
