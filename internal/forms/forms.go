// Package forms implements the local, single-view state machines behind the
// data-entry surfaces: the login form, the observation entry form, and the
// species catalog view with its CRUD form and spreadsheet import. Each
// controller owns its field values, validates before any network call, and
// converts failures into display strings at the point of user action.
package forms

import "fmt"

// ValidationError is a client-side rule violation. It is raised before
// submission and never produces a network round trip.
type ValidationError struct {
	Field   string
	Rule    string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func invalid(field, rule, message string) *ValidationError {
	return &ValidationError{Field: field, Rule: rule, Message: message}
}

// ErrAborted is returned when a user declines a confirmation step.
var ErrAborted = fmt.Errorf("forms: action aborted")
