// Package taskstate models the task status lifecycle: the three valid
// states, how they cycle, and derived display facts (overdue, colors). All
// functions are total; unrecognized input gets a neutral default instead of
// a panic or error.
package taskstate

import (
	"time"

	"github.com/Tomasivanovich/ProjectManagementApp/internal/api"
)

// Status is a task's lifecycle state. Values match the backend's estado
// strings.
type Status string

const (
	StatusPending    Status = "pendiente"
	StatusInProgress Status = "en progreso"
	StatusCompleted  Status = "completada"
)

// statusOrder fixes the canonical ordering used by Next and
// AvailableTransitions.
var statusOrder = []Status{StatusPending, StatusInProgress, StatusCompleted}

// All returns the valid statuses in canonical order.
func All() []Status {
	out := make([]Status, len(statusOrder))
	copy(out, statusOrder)
	return out
}

// Valid reports whether s is one of the three known statuses.
func Valid(s Status) bool {
	for _, known := range statusOrder {
		if s == known {
			return true
		}
	}
	return false
}

// Next returns the status after s in the cycle
// pendiente -> en progreso -> completada -> pendiente. Used for single-tap
// advancement. An unrecognized status restarts the cycle at pendiente.
func Next(s Status) Status {
	for i, known := range statusOrder {
		if s == known {
			return statusOrder[(i+1)%len(statusOrder)]
		}
	}
	return StatusPending
}

// AvailableTransitions returns the statuses s can move to: every status
// except s itself, in canonical order. Always two entries for a valid s.
// An unrecognized status matches nothing and gets all three, so a caller
// can still recover it to a known state.
func AvailableTransitions(s Status) []Status {
	out := make([]Status, 0, len(statusOrder)-1)
	for _, known := range statusOrder {
		if known != s {
			out = append(out, known)
		}
	}
	return out
}

// IsOverdue reports whether the task's due date has passed. A completed task
// is never overdue, no matter how old its due date.
func IsOverdue(t *api.Task, now time.Time) bool {
	if t == nil || t.DueDate == nil {
		return false
	}
	if Status(t.Status) == StatusCompleted {
		return false
	}
	return t.DueDate.Before(now)
}

// ColorToken is an abstract display color; front ends map tokens to
// concrete styles.
type ColorToken string

const (
	ColorDanger  ColorToken = "danger"
	ColorInfo    ColorToken = "info"
	ColorSuccess ColorToken = "success"
	ColorNeutral ColorToken = "neutral"
)

// StatusColor maps a status to its display token. Total: unexpected values
// render neutral rather than failing.
func StatusColor(s Status) ColorToken {
	switch s {
	case StatusPending:
		return ColorDanger
	case StatusInProgress:
		return ColorInfo
	case StatusCompleted:
		return ColorSuccess
	default:
		return ColorNeutral
	}
}

// RoleColor maps a project or global role to its display token, with the
// same total-function contract as StatusColor.
func RoleColor(role string) ColorToken {
	switch role {
	case "creador", "admin":
		return ColorDanger
	case "lider":
		return ColorSuccess
	case "colaborador", "user":
		return ColorInfo
	default:
		return ColorNeutral
	}
}
