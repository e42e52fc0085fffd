// Package extract turns raw user input (pasted text, uploaded PDFs, remote
// URLs) into plain text suitable for summarization. Every failure surfaces
// as *Error with a stable code and a suggested HTTP status.
package extract

import "fmt"

// FailureCode identifies why extraction failed.
type FailureCode string

const (
	CodeEmptyInput          FailureCode = "empty_input"
	CodeUnreadableDocument  FailureCode = "unreadable_document"
	CodeInvalidSource       FailureCode = "invalid_source"
	CodeTimeout             FailureCode = "timeout"
	CodeUnreachable         FailureCode = "unreachable"
	CodeRemoteRejected      FailureCode = "remote_rejected"
	CodeInsufficientContent FailureCode = "insufficient_content"
)

// Error is a classified extraction failure.
type Error struct {
	Code    FailureCode
	Status  int
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

func newError(code FailureCode, status int, message string, cause error) *Error {
	return &Error{Code: code, Status: status, Message: message, cause: cause}
}
