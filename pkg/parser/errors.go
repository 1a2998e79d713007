package parser

import (
	"errors"
	"fmt"
)

var (
	// ErrUnrecognizedNumber is returned when a statistic is not an integer,
	// comma-grouped integer or whole percentage
	ErrUnrecognizedNumber = errors.New("unrecognized number")

	// ErrRowWidth is returned when the rankings cells cannot be split into
	// complete rows
	ErrRowWidth = errors.New("rankings row width mismatch")
)

// FieldError reports a page element that was missing or malformed
type FieldError struct {
	Field  string
	Detail string
	Err    error
}

func (e *FieldError) Error() string {
	msg := fmt.Sprintf("field %q: %s", e.Field, e.Detail)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

func missing(field string) error {
	return &FieldError{Field: field, Detail: "not found"}
}

func malformed(field string, err error) error {
	return &FieldError{Field: field, Detail: "malformed", Err: err}
}
