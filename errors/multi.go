package errors

import (
	"fmt"
	"strings"
)

// Append clubs together all provided errors. Nil values are ignored.
//
// If no error is provided or all errors are nil, nil is returned. If only
// one non nil error is provided, it is returned as it is.
func Append(errs ...error) error {
	var res multiErr
	for _, e := range errs {
		if isNilErr(e) {
			continue
		}
		// Flatten so that the result is a single list.
		if m, ok := e.(multiErr); ok {
			res = append(res, m...)
		} else {
			res = append(res, e)
		}
	}
	switch len(res) {
	case 0:
		return nil
	case 1:
		return res[0]
	}
	return res
}

// multiErr is a group of errors that happened together, for example during
// validation of several message fields.
type multiErr []error

func (m multiErr) Error() string {
	msgs := make([]string, len(m))
	for i, e := range m {
		msgs[i] = e.Error()
	}
	return fmt.Sprintf("%d errors: %s", len(m), strings.Join(msgs, "; "))
}

// Unpack returns all errors grouped by this instance.
func (m multiErr) Unpack() []error {
	return m
}

// Code returns the code of the first error, consistent with the fail-fast
// approach.
func (m multiErr) Code() uint32 {
	return code(m[0])
}
