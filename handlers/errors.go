package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"

	ds "github.com/oaiiae/huma-phonebook/datastores"
)

// Error is the [huma.StatusError] every failed operation responds with.
// Its body is {"error": Message}.
type Error struct {
	Status  int    `json:"-"`
	Message string `json:"error"`

	err error
}

func (e *Error) Error() string {
	if e.err == nil {
		return e.Message
	}
	return e.Message + ": " + e.err.Error()
}

func (e *Error) GetStatus() int { return e.Status }

func (e *Error) Unwrap() error { return e.err }

const internalErrorMessage = "internal server error"

// mapError translates an error returned by an operation into the response
// the client sees. Unrecognized errors become an opaque 500.
func mapError(err error) huma.StatusError {
	var (
		fieldErr  *FieldError
		statusErr huma.StatusError
	)
	switch {
	case errors.As(err, &fieldErr):
		return &Error{Status: http.StatusBadRequest, Message: fieldErr.Error(), err: err}
	case errors.Is(err, ds.ErrDuplicateName):
		return &Error{Status: http.StatusBadRequest, Message: "name must be unique", err: err}
	case errors.Is(err, ds.ErrMalformedID):
		return &Error{Status: http.StatusBadRequest, Message: "malformatted id", err: err}
	case errors.Is(err, ds.ErrObjectNotFound):
		return &Error{Status: http.StatusNotFound, Message: "person not found", err: err}
	case errors.As(err, &statusErr) && statusErr.GetStatus() < http.StatusInternalServerError:
		return statusErr
	default:
		return &Error{Status: http.StatusInternalServerError, Message: internalErrorMessage, err: err}
	}
}

// NewError replaces [huma.NewError] so that errors raised by huma itself,
// such as undecodable bodies or body fields of the wrong type, share the
// {"error": message} shape. Schema validation failures answer 400 and
// name the first offending body field; a null field counts as missing.
func NewError(status int, msg string, errs ...error) huma.StatusError {
	if status == http.StatusUnprocessableEntity {
		status = http.StatusBadRequest
	}
	for _, err := range errs {
		var detail *huma.ErrorDetail
		if errors.As(err, &detail) {
			if field, ok := strings.CutPrefix(detail.Location, "body."); ok {
				reason := FieldInvalidFormat
				if detail.Value == nil {
					reason = FieldMissing
				}
				return mapError(&FieldError{Field: field, Reason: reason})
			}
			if detail.Location == "body" {
				msg = detail.Message
			}
		}
	}
	if status >= http.StatusInternalServerError {
		msg = internalErrorMessage
	}
	return &Error{Status: status, Message: msg, err: errors.Join(errs...)}
}
