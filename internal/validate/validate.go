// Package validate performs the client-side input checks that run before
// any network call, so obviously bad input never costs a round trip.
package validate

import (
	"fmt"
	"regexp"
	"strings"
)

// MinPasswordLength matches the backend's registration rule.
const MinPasswordLength = 6

// ValidationError describes one rejected input field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Email checks basic address shape. The backend does the real verification.
func Email(email string) error {
	if !emailRe.MatchString(email) {
		return &ValidationError{Field: "email", Reason: "not a valid email address"}
	}
	return nil
}

// Password enforces the minimum length.
func Password(password string) error {
	if len(password) < MinPasswordLength {
		return &ValidationError{
			Field:  "password",
			Reason: fmt.Sprintf("must be at least %d characters", MinPasswordLength),
		}
	}
	return nil
}

// ProjectName requires a non-blank name.
func ProjectName(name string) error {
	if strings.TrimSpace(name) == "" {
		return &ValidationError{Field: "name", Reason: "must not be empty"}
	}
	return nil
}

// TaskTitle requires a non-blank title.
func TaskTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return &ValidationError{Field: "title", Reason: "must not be empty"}
	}
	return nil
}

// ProjectRole accepts only the roles a member can be assigned. creador is
// excluded: it is set once at project creation and never assignable.
func ProjectRole(role string) error {
	switch role {
	case "lider", "colaborador":
		return nil
	default:
		return &ValidationError{Field: "role", Reason: `must be "lider" or "colaborador"`}
	}
}
