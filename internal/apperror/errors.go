// Package apperror defines the error kinds reported by the back-office core.
//
// Validation and Conversion errors are raised before any store call.
// Conflict, NotFound, Auth and Store errors come from, or right around, the
// store. Every error keeps the operation that failed and, when there is one,
// the underlying cause.
package apperror

import (
	"errors"
	"fmt"

	"go.uber.org/multierr"
)

type Kind uint8

const (
	KindUnknown Kind = iota
	KindValidation
	KindConversion
	KindConflict
	KindNotFound
	KindAuth
	KindStore
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindConversion:
		return "conversion"
	case KindConflict:
		return "conflict"
	case KindNotFound:
		return "not found"
	case KindAuth:
		return "auth"
	case KindStore:
		return "store"
	default:
		return "unknown"
	}
}

// Sentinels for errors.Is. They match any *Error of the same kind.
var (
	ErrValidation = &Error{Kind: KindValidation}
	ErrConversion = &Error{Kind: KindConversion}
	ErrConflict   = &Error{Kind: KindConflict}
	ErrNotFound   = &Error{Kind: KindNotFound}
	ErrAuth       = &Error{Kind: KindAuth}
	ErrStore      = &Error{Kind: KindStore}
)

type Error struct {
	Kind    Kind
	Op      string // e.g. "product.save"
	Message string
	Err     error
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = e.Kind.String() + " error"
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	if e.Op != "" {
		msg = fmt.Sprintf("%s [op=%s]", msg, e.Op)
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Message == "" && t.Op == "" && t.Err == nil && t.Kind == e.Kind
}

// Causes returns the individual field errors attached to a validation error.
func (e *Error) Causes() []error {
	return multierr.Errors(e.Err)
}

func Validation(op, message string, causes ...error) error {
	return &Error{Kind: KindValidation, Op: op, Message: message, Err: multierr.Combine(causes...)}
}

func Conversion(op, field, value string, err error) error {
	return &Error{
		Kind:    KindConversion,
		Op:      op,
		Message: fmt.Sprintf("invalid %s value %q", field, value),
		Err:     err,
	}
}

func Conflict(op, message string, err error) error {
	return &Error{Kind: KindConflict, Op: op, Message: message, Err: err}
}

func NotFound(op, message string) error {
	return &Error{Kind: KindNotFound, Op: op, Message: message}
}

func Auth(op, message string) error {
	return &Error{Kind: KindAuth, Op: op, Message: message}
}

func Store(op, message string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: KindStore, Op: op, Message: message, Err: err}
}

// KindOf reports the kind of the first *Error in err's chain.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindUnknown
}

// Message returns the user-facing message of err, without the op suffix.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var appErr *Error
	if !errors.As(err, &appErr) {
		return err.Error()
	}
	msg := appErr.Message
	if msg == "" {
		msg = appErr.Kind.String() + " error"
	}
	if appErr.Err != nil && appErr.Kind != KindValidation {
		msg = fmt.Sprintf("%s: %v", msg, appErr.Err)
	}
	return msg
}
