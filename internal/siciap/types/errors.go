package types

import (
	"errors"
	"fmt"
)

type ErrorKind string

const (
	KindUnreadableInput     ErrorKind = "unreadable_input"
	KindSchemaMismatch      ErrorKind = "schema_mismatch"
	KindTypeCoercionWarning ErrorKind = "type_coercion_warning"
	KindConnectionFailed    ErrorKind = "connection_failed"
	KindLoadFailed          ErrorKind = "load_failed"
	KindSyncFailed          ErrorKind = "sync_failed"
)

// Error carries a machine kind and a human message for a failed operation.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func NewError(kind ErrorKind, err error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Err: err}
}

// KindOf returns the kind of the first *Error in err's chain, or "" if none.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// Warning is a non-fatal defect recorded during a load.
type Warning struct {
	Kind    ErrorKind `json:"kind"`
	Column  string    `json:"column,omitempty"`
	Message string    `json:"message"`
}
