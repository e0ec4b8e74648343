package xerrors

import (
	"errors"
)

type Kind string

const (
	KindStorage    Kind = "storage"
	KindSensor     Kind = "sensor"
	KindValidation Kind = "validation"
	KindNotFound   Kind = "not_found"
	KindInternal   Kind = "internal"
)

// Error is a failure meant for the person running the session. Message is
// shown as-is; Cause carries the underlying error for logs.
type Error struct {
	Kind       Kind
	Message    string
	Cause      error
	Retryable  bool
	Validation *ValidationInfo
}

type ValidationInfo struct {
	Fields map[string]string
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Cause }

var defaultMessages = map[Kind]string{
	KindStorage:    "could not save training data",
	KindSensor:     "heart rate sensor unavailable",
	KindValidation: "invalid input",
	KindNotFound:   "not found",
	KindInternal:   "internal error",
}

// Storage failures are retryable: the session data stays in memory.
func Storage(opts ...Option) *Error {
	e := newErr(KindStorage, opts)
	e.Retryable = true
	return e
}

func Sensor(opts ...Option) *Error   { return newErr(KindSensor, opts) }
func NotFound(opts ...Option) *Error { return newErr(KindNotFound, opts) }
func Internal(opts ...Option) *Error { return newErr(KindInternal, opts) }

func Validation(fields map[string]string, opts ...Option) *Error {
	e := newErr(KindValidation, opts)
	e.Validation = &ValidationInfo{Fields: fields}
	return e
}

func newErr(kind Kind, opts []Option) *Error {
	e := &Error{Kind: kind, Message: defaultMessages[kind]}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

type Option func(*Error)

func WithMessage(msg string) Option { return func(e *Error) { e.Message = msg } }
func WithCause(err error) Option    { return func(e *Error) { e.Cause = err } }

func As(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return nil
}

func IsKind(err error, kind Kind) bool {
	e := As(err)
	return e != nil && e.Kind == kind
}

// IsRetryable reports whether repeating the failed operation may succeed.
func IsRetryable(err error) bool {
	e := As(err)
	return e != nil && e.Retryable
}
