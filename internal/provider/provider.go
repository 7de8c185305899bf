// Package provider holds the HTTP client for the external actor platform
// plus the typed error every provider call surfaces. Providers never panic
// and never leak raw HTTP details past this boundary.
package provider

import "fmt"

// Error is a failed provider call. It carries enough context for the
// assembler to record a partial-success cause without aborting a run.
type Error struct {
	Provider string // search / crawler / directory
	Op       string // start-actor, wait-run, dataset-items, ...
	Message  string
	Err      error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s %s: %s", e.Provider, e.Op, e.Message)
	}
	return fmt.Sprintf("%s %s: %v", e.Provider, e.Op, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

func errf(provider, op, format string, args ...any) *Error {
	return &Error{Provider: provider, Op: op, Message: fmt.Sprintf(format, args...)}
}

func wrapf(provider, op string, err error) *Error {
	return &Error{Provider: provider, Op: op, Err: err}
}
