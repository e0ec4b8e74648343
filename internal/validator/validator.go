package validator

import (
	"maps"

	"github.com/garrettladley/pulse/internal/xerrors"
)

type Validator interface {
	// Validate validates the fields of the struct and returns a map of errors.
	// returns nil if no errors are found
	Validate() map[string]string
}

func Validate(v Validator) *xerrors.Error {
	if err := v.Validate(); err != nil {
		return xerrors.Validation(err)
	}
	return nil
}

// Fields accumulates field errors; the zero value is ready to use.
type Fields map[string]string

func (f *Fields) Check(ok bool, field, message string) {
	if ok {
		return
	}
	if *f == nil {
		*f = make(Fields)
	}
	if _, exists := (*f)[field]; !exists {
		(*f)[field] = message
	}
}

// Result returns nil when no check failed.
func (f Fields) Result() map[string]string {
	if len(f) == 0 {
		return nil
	}
	return maps.Clone(f)
}
