package template

import "github.com/autoassistgroup-dev/AutoAssist--portal/internal/model"

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

const (
	TypeWarrantyClaim    = "warranty_claim"
	TypeTechnicalSupport = "technical_support"
	TypeCustomerService  = "customer_service"
	TypeDraft            = "draft"
	TypeDefault          = "default"
)

const (
	ContentSourceTemplate = "template"
	ContentSourceAIDraft  = "ai_draft"
)

// EmailTemplate is a prefilled compose-modal payload. ContentSource tells
// the frontend whether the body came from a canned template or the stored
// assistant draft.
type EmailTemplate struct {
	Subject        string
	Body           string
	RecipientEmail string
	Attachments    []model.AttachmentItem
	HasDraft       bool
	ContentSource  string
	TemplateType   string
}
