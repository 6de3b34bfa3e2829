package errors

import (
	"fmt"

	"github.com/pkg/errors"
)

// Field attaches the name of an invalid model or message field to err. A nil
// err gives nil, so validation results can be passed in directly.
//
// Names follow the Go field names, for example Amount or UnlockTime. Nested
// fields are joined with a dot (Patch.CancelNotice) and list elements use
// their index (Participants.1).
func Field(name string, err error, description string, args ...interface{}) error {
	if isNilErr(err) {
		return nil
	}
	if stackTrace(err) == nil {
		err = errors.WithStack(err)
	}
	if len(args) > 0 {
		description = fmt.Sprintf(description, args...)
	}
	return &fieldError{parent: err, field: name, desc: description}
}

// AppendField adds the error of a single field to errs. Both errs and err
// can be nil.
func AppendField(errs error, name string, err error) error {
	return Append(errs, Field(name, err, ""))
}

// FieldErrors returns the errors reported for the named field, in the order
// they were appended. The search walks through wrapped and appended errors
// and stops at the outermost error created for that field.
func FieldErrors(err error, name string) []error {
	if isNilErr(err) {
		return nil
	}
	return collectField(nil, err, name)
}

func collectField(found []error, err error, name string) []error {
	for err != nil {
		if f, ok := err.(fielder); ok && f.Field() == name {
			return append(found, err)
		}
		switch e := err.(type) {
		case unpacker:
			// Unpack already returns every child, including the one
			// Cause would lead to.
			for _, child := range e.Unpack() {
				found = collectField(found, child, name)
			}
			return found
		case causer:
			err = e.Cause()
		default:
			return found
		}
	}
	return found
}

type fieldError struct {
	parent error
	field  string
	desc   string
}

func (e *fieldError) Error() string {
	if e.desc == "" {
		return fmt.Sprintf("%s: %s", e.field, e.parent)
	}
	return fmt.Sprintf("%s: %s: %s", e.field, e.desc, e.parent)
}

func (e *fieldError) Cause() error {
	return e.parent
}

func (e *fieldError) Field() string {
	return e.field
}

type fielder interface {
	Field() string
}
