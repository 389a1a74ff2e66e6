package coach

import (
	"fmt"
	"net/http"
)

// Kind classifies why a review did not produce a report.
type Kind int

const (
	// KindMissingInput means a required field (file, speech type or
	// audience) was not supplied.
	KindMissingInput Kind = iota + 1
	// KindExtractionEmpty means no usable text survived extraction and
	// cleaning.
	KindExtractionEmpty
	// KindUnexpected is any other failure during analysis.
	KindUnexpected
)

func (k Kind) String() string {
	switch k {
	case KindMissingInput:
		return "missing_input"
	case KindExtractionEmpty:
		return "extraction_empty"
	case KindUnexpected:
		return "unexpected"
	}
	return "unknown"
}

// User-facing messages.
const (
	MsgMissingFile       = "Please upload a file."
	MsgMissingSpeechType = "Please select a speech type."
	MsgMissingAudience   = "Please describe the audience."
	MsgExtractionEmpty   = "Couldn't extract text. Try .txt, .docx, or a selectable-text PDF."
)

// Error is a review failure with a message safe to show the user.
type Error struct {
	Kind    Kind
	Message string
	Err     error // underlying cause, if any
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Status maps the error kind to an HTTP status code.
func (e *Error) Status() int {
	if e.Kind == KindUnexpected {
		return http.StatusInternalServerError
	}
	return http.StatusBadRequest
}

func missingInput(msg string) *Error {
	return &Error{Kind: KindMissingInput, Message: msg}
}

// unexpected reports v, a recovered panic value or an error, in the
// "Server error: <type>: <detail>" form.
func unexpected(v any) *Error {
	e := &Error{Kind: KindUnexpected, Message: fmt.Sprintf("Server error: %T: %v", v, v)}
	if err, ok := v.(error); ok {
		e.Err = err
	}
	return e
}
