package server

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/jonathan/internship-generator/internal/db"
	"github.com/jonathan/internship-generator/internal/resume"
	"github.com/jonathan/internship-generator/internal/types"
)

// ErrNotFound indicates a record does not exist
type ErrNotFound struct {
	Resource string
	ID       int64
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s with ID %d not found", e.Resource, e.ID)
}

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Message string
}

func (e *ErrValidation) Error() string {
	return e.Message
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var notFound *ErrNotFound
	var validation *ErrValidation
	var parseErr *resume.ParseError

	switch {
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &validation):
		return http.StatusUnprocessableEntity
	case errors.Is(err, db.ErrDuplicateEmail), errors.As(err, &parseErr):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// writeError maps err to a status code and a {"detail": ...} body. prefix is
// prepended to the message of unexpected errors only.
func (s *Server) writeError(w http.ResponseWriter, err error, prefix string) {
	status := HTTPStatus(err)
	message := err.Error()
	switch {
	case errors.Is(err, db.ErrDuplicateEmail):
		message = "A profile with this email already exists"
	case status == http.StatusInternalServerError:
		message = prefix + message
	}
	s.errorResponse(w, status, message)
}

func validationError(err error) error {
	return &ErrValidation{Message: types.ValidationMessage(err)}
}

func pathID(r *http.Request) (int64, error) {
	raw := r.PathValue("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, &ErrValidation{Message: fmt.Sprintf("Invalid ID: %q", raw)}
	}
	return id, nil
}
