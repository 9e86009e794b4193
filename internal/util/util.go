// Package util provides small string helpers shared by the host bridge and handlers.
package util

import (
	"fmt"
	"strconv"
	"strings"
)

// TrimQuotes removes leading and trailing double quotes from a string.
func TrimQuotes(s string) string {
	return strings.Trim(s, `"`)
}

// FixEscapeQuotes replaces escaped double quotes ("") with single double quotes (").
func FixEscapeQuotes(s string) string {
	return strings.ReplaceAll(s, `""`, `"`)
}

// CleanArg trims whitespace and quoting from a single call argument.
func CleanArg(s string) string {
	return FixEscapeQuotes(TrimQuotes(strings.TrimSpace(s)))
}

// SplitCall splits a host call of the form "command|arg1|arg2" into the
// command and its cleaned arguments.
func SplitCall(input string) (command string, args []string) {
	parts := strings.Split(input, "|")
	command = strings.TrimSpace(parts[0])
	for _, p := range parts[1:] {
		args = append(args, CleanArg(p))
	}
	return command, args
}

// ParsePlayerID parses a participant identity (a 64-bit platform user ID).
func ParsePlayerID(s string) (uint64, error) {
	id, err := strconv.ParseUint(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid player id %q: %w", s, err)
	}
	return id, nil
}
