package api

// HTTPError is returned by endpoint handlers. Message goes to the client,
// ErrorLog to the server log.
type HTTPError struct {
	StatusCode int
	Message    string
	ErrorLog   error
}

func (e *HTTPError) Error() string {
	return e.Message
}

type ApiError struct {
	Error string `json:"message"`
}
