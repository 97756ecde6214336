// Package resume turns pasted resume text or an uploaded PDF into a structured profile.
package resume

import "fmt"

// ParseError is returned when the resume content itself cannot be turned into a
// profile: unreadable PDF, empty text, malformed or incomplete extraction.
// The server reports it as a client error.
type ParseError struct {
	Message string
	Cause   error
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}
