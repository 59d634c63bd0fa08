// Package apperr holds the closed set of client-facing failure kinds and the
// single place where they are turned into an HTTP status and JSON body.
package apperr

import (
	"errors"
	"net/http"
	"strings"
)

type Kind int

const (
	KindUnknown Kind = iota
	KindValidationFailed
	KindDuplicateEmail
	KindEmailOrPasswordEmpty
	KindEmailNotFound
	KindWrongPassword
	KindNoAuthorization
	KindInvalidToken
	KindUnauthorized
	KindDataNotFound
	KindUpdateNotFound
	KindDeleteNotFound
	KindPageNotFound
	KindTooManyRequests
)

var kindNames = map[Kind]string{
	KindUnknown:              "Unknown",
	KindValidationFailed:     "ValidationFailed",
	KindDuplicateEmail:       "DuplicateEmail",
	KindEmailOrPasswordEmpty: "EmailOrPasswordEmpty",
	KindEmailNotFound:        "EmailNotFound",
	KindWrongPassword:        "WrongPassword",
	KindNoAuthorization:      "NoAuthorization",
	KindInvalidToken:         "InvalidToken",
	KindUnauthorized:         "Unauthorized",
	KindDataNotFound:         "DataNotFound",
	KindUpdateNotFound:       "UpdateNotFound",
	KindDeleteNotFound:       "DeleteNotFound",
	KindPageNotFound:         "PageNotFound",
	KindTooManyRequests:      "TooManyRequests",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "Unknown"
}

type Error struct {
	Kind     Kind
	Messages []string // only set for KindValidationFailed
	Err      error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.String())

	if len(e.Messages) > 0 {
		b.WriteString(": ")
		b.WriteString(strings.Join(e.Messages, "; "))
	}

	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}

	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches on kind so callers can write errors.Is(err, apperr.New(k)).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

func New(kind Kind) *Error {
	return &Error{Kind: kind}
}

func Wrap(kind Kind, err error) *Error {
	return &Error{Kind: kind, Err: err}
}

func Validation(messages []string) *Error {
	return &Error{Kind: KindValidationFailed, Messages: messages}
}

// KindOf returns the kind carried by err, or KindUnknown.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindUnknown
}

// Response is the JSON body of every failed request. Message is a string,
// or a list of strings for validation failures.
type Response struct {
	Message any `json:"message"`
}

const wrongCredentials = "Email or Password is Wrong"

// Translate maps any error to its status code and response body.
func Translate(err error) (int, Response) {
	var appErr *Error
	if !errors.As(err, &appErr) {
		return http.StatusBadRequest, Response{Message: "Bad Request"}
	}

	switch appErr.Kind {
	case KindValidationFailed:
		messages := appErr.Messages
		if messages == nil {
			messages = []string{}
		}
		return http.StatusBadRequest, Response{Message: messages}
	case KindDuplicateEmail:
		return http.StatusBadRequest, Response{Message: "Email already registered"}
	case KindEmailOrPasswordEmpty, KindEmailNotFound, KindWrongPassword:
		return http.StatusUnauthorized, Response{Message: wrongCredentials}
	case KindNoAuthorization:
		return http.StatusUnauthorized, Response{Message: "No Authorization"}
	case KindInvalidToken:
		return http.StatusUnauthorized, Response{Message: "Invalid Token"}
	case KindUnauthorized:
		return http.StatusUnauthorized, Response{Message: "Unauthorized"}
	case KindDataNotFound:
		return http.StatusNotFound, Response{Message: "Data Not Found"}
	case KindUpdateNotFound:
		return http.StatusNotFound, Response{Message: "cannot update because data article not found"}
	case KindDeleteNotFound:
		return http.StatusNotFound, Response{Message: "Cannot delete because data not found"}
	case KindPageNotFound:
		return http.StatusNotFound, Response{Message: "Oopss.. Nothing Here"}
	case KindTooManyRequests:
		return http.StatusTooManyRequests, Response{Message: "Too many requests. Please try again shortly."}
	default:
		return http.StatusBadRequest, Response{Message: "Bad Request"}
	}
}
