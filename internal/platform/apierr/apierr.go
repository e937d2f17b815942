// Package apierr carries an HTTP status and a stable machine code alongside
// the underlying error, so handlers map domain failures to responses without
// sprinkling status constants through the services.
package apierr

import (
	"fmt"
	"net/http"
)

// Codes returned by the order upload surface.
const (
	CodeInvalidMultipart = "invalid_multipart_form"
	CodeMissingIdentity  = "missing_identity"
	CodeIngestFailed     = "ingest_failed"
)

type Error struct {
	Status int
	Code   string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Code != "" {
		return e.Code
	}
	if e.Status != 0 {
		return fmt.Sprintf("api error (%d)", e.Status)
	}
	return "api error"
}

func (e *Error) Unwrap() error { return e.Err }

func New(status int, code string, err error) *Error {
	return &Error{Status: status, Code: code, Err: err}
}

// BadRequest marks a client fault: the batch is malformed or incomplete and
// retrying it unchanged cannot succeed.
func BadRequest(code string, err error) *Error {
	return New(http.StatusBadRequest, code, err)
}

// Internal marks a server-side fault; the client may retry the whole batch.
func Internal(code string, err error) *Error {
	return New(http.StatusInternalServerError, code, err)
}
