package cli

import "github.com/Tomasivanovich/ProjectManagementApp/internal/taskstate"

// ANSI escapes for the abstract color tokens the state machine hands out.
const colorReset = "\033[0m"

var ansiColors = map[taskstate.ColorToken]string{
	taskstate.ColorDanger:  "\033[31m",
	taskstate.ColorInfo:    "\033[36m",
	taskstate.ColorSuccess: "\033[32m",
	taskstate.ColorNeutral: "\033[90m",
}

func statusColor(s taskstate.Status) string {
	return ansiColors[taskstate.StatusColor(s)]
}

func roleColor(role string) string {
	return ansiColors[taskstate.RoleColor(role)]
}
