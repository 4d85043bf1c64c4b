package services

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/example/periodic-tables/models"
)

// Error is a rule violation with the HTTP status it maps to at the
// boundary: 400 for validation/transition/conflict, 404 for missing rows.
// Anything that is not an *Error surfaces as a 500.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func ValidationErr(format string, args ...interface{}) *Error {
	return &Error{Status: http.StatusBadRequest, Message: fmt.Sprintf(format, args...)}
}

func NotFoundErr(format string, args ...interface{}) *Error {
	return &Error{Status: http.StatusNotFound, Message: fmt.Sprintf(format, args...)}
}

func ConflictErr(format string, args ...interface{}) *Error {
	return &Error{Status: http.StatusBadRequest, Message: fmt.Sprintf(format, args...)}
}

// TransitionErr rejects a (current -> next) pair that is not in the
// transition table.
func TransitionErr(from, to models.ReservationStatus) *Error {
	return ConflictErr("Status cannot change from %s to %s", from, to)
}

// StatusOf returns the HTTP status for err, defaulting to 500.
func StatusOf(err error) int {
	var svcErr *Error
	if errors.As(err, &svcErr) {
		return svcErr.Status
	}
	return http.StatusInternalServerError
}
