package dashboard

import "github.com/autoassistgroup-dev/AutoAssist--portal/internal/model"

type ErrorCode string

const (
	ErrorCodeInternal ErrorCode = "internal_error"
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

type Stats struct {
	Total            int
	Open             int
	Waiting          int
	Resolved         int
	ByPriority       map[string]int
	ByClassification map[string]int
	ByStatus         map[string]int
}

type TechnicianLoad struct {
	Technician string
	Open       int
	Closed     int
}

type Overview struct {
	Approved      int
	Declined      int
	Referred      int
	Overdue       int
	OpenRecent    int
	OpenedToday   int
	UnreadReplies int
	Team          []TechnicianLoad
}

type StatusSummary struct {
	Active        int
	Waiting       int
	ResolvedToday int
}

type TicketGroup struct {
	Label   string
	Tickets []model.TicketItem
}
