package auth

import (
	internaljwt "github.com/autoassistgroup-dev/AutoAssist--portal/internal/jwt"
	"github.com/autoassistgroup-dev/AutoAssist--portal/internal/model"
)

type ErrorCode string

const (
	ErrorCodeValidation   ErrorCode = "validation_error"
	ErrorCodeUnauthorized ErrorCode = "unauthorized"
	ErrorCodeNotFound     ErrorCode = "not_found"
	ErrorCodeConflict     ErrorCode = "conflict"
	ErrorCodeInternal     ErrorCode = "internal_error"
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

type LoginParams struct {
	Email    string
	Password string
}

type CreateMemberParams struct {
	Email    string
	Name     string
	Password string
	Role     string
}

// Identity is what a verified access token proves about the caller.
type Identity struct {
	MemberID string
	Email    string
	Role     internaljwt.Role
}

type AuthResult struct {
	Member model.MemberItem
	Tokens internaljwt.TokenResponse
}
