package ingest

type ErrorCode string

const (
	ErrorCodeValidation ErrorCode = "validation_error"
	ErrorCodeNotFound   ErrorCode = "not_found"
	ErrorCodeInternal   ErrorCode = "internal_error"
)

type Error struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(code ErrorCode, message string, err error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Result reports where an inbound payload landed. Created is true only when
// a new ticket row was written; a payload resolved to an existing ticket, or
// converted from a duplicate-thread conflict, reports the existing code with
// Created false.
type Result struct {
	TicketCode string
	Created    bool
	ReplyID    string
	Message    string
}
