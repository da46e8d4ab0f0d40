package document

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

type UploadParams struct {
	TicketCode  string
	Filename    string
	ContentType string
	// Data is the base64 encoded file content as posted by the frontend.
	Data        string
	Description string
	UploadedBy  string
}

type DownloadResult struct {
	Filename    string
	ContentType string
	Data        []byte
}
