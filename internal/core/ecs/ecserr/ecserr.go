// Package ecserr defines the error taxonomy shared across the simulation
// core, adapted from the host application's own ECSError pattern: a small
// struct carrying a code plus optional entity/system/component context,
// with fluent With* builders rather than wrapped stdlib errors.
package ecserr

import (
	"fmt"
	"time"
)

// Code is one of the enumerated taxonomy values. Its string form equals
// the identifier.
type Code int

const (
	Success Code = iota
	InvalidArgument
	OutOfMemory
	NotFound
	AlreadyExists
	InvalidState
	Timeout
	NotImplemented
	SystemError
	ValidationFailed
	RollbackRequired
)

var codeNames = [...]string{
	"Success",
	"InvalidArgument",
	"OutOfMemory",
	"NotFound",
	"AlreadyExists",
	"InvalidState",
	"Timeout",
	"NotImplemented",
	"SystemError",
	"ValidationFailed",
	"RollbackRequired",
}

func (c Code) String() string {
	if c < 0 || int(c) >= len(codeNames) {
		return "Unknown"
	}
	return codeNames[c]
}

// Error is the core's boundary error type. Hot-path misses (get_component,
// destroy_entity, remove_component, replace_by_type) are represented as
// returned booleans/optionals, never as *Error -- this type exists for
// construction-time and tooling-level failures a caller can branch on by
// Code, and as the shared shape a higher layer (out of this core's scope)
// can use to surface ValidationFailed or RollbackRequired.
type Error struct {
	Code      Code
	Message   string
	Entity    string
	System    string
	Component string
	Details   map[string]any
	Timestamp time.Time
}

func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message, Timestamp: time.Now()}
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) WithEntity(entity fmt.Stringer) *Error {
	e.Entity = entity.String()
	return e
}

func (e *Error) WithSystem(name string) *Error {
	e.System = name
	return e
}

func (e *Error) WithComponent(name string) *Error {
	e.Component = name
	return e
}

func (e *Error) WithDetail(key string, value any) *Error {
	if e.Details == nil {
		e.Details = make(map[string]any, 1)
	}
	e.Details[key] = value
	return e
}

// Is reports whether err carries the given code. Unlike errors.Is this
// never traverses a Wrap chain -- Error values are not expected to wrap one
// another, matching the flat taxonomy the spec enumerates.
func Is(err error, code Code) bool {
	e, ok := err.(*Error)
	return ok && e.Code == code
}
