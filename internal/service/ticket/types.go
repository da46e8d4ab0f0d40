package ticket

import "github.com/autoassistgroup-dev/AutoAssist--portal/internal/model"

type ErrorCode string

const (
	ErrorCodeValidation ErrorCode = "validation_error"
	ErrorCodeNotFound   ErrorCode = "not_found"
	ErrorCodeConflict   ErrorCode = "conflict"
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

type CreateParams struct {
	Subject        string
	Body           string
	Email          string
	CustomerName   string
	CustomerNumber string
	Priority       string
	Classification string
	CreationMethod string
	ThreadID       string
	AIDraft        string
	Attachments    []model.AttachmentItem
}

type ListParams struct {
	Page     int
	PerPage  int
	Status   string
	Priority string
	Search   string
}

type ListResult struct {
	Tickets    []model.TicketItem
	Page       int
	PerPage    int
	Total      int
	TotalPages int
}

type SearchParams struct {
	Query          string
	Status         string
	Priority       string
	Classification string
}

type ReplyParams struct {
	TicketCode  string
	Message     string
	SenderName  string
	Attachments []model.AttachmentItem
}

type ReplyResult struct {
	Reply  model.ReplyItem
	Ticket model.TicketItem
}
