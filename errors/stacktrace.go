package errors

import (
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/pkg/errors"
)

type stackTracer interface {
	error
	StackTrace() errors.StackTrace
}

// stackTrace returns the first found stack trace frame carried by given error
// or any wrapped error. It returns nil if no stack trace is found.
func stackTrace(err error) errors.StackTrace {
	type stackTracer interface {
		StackTrace() errors.StackTrace
	}

	for {
		if st, ok := err.(stackTracer); ok {
			return st.StackTrace()
		}

		if c, ok := err.(causer); ok {
			err = c.Cause()
		} else {
			return nil
		}
	}
}

// Format works like the pkg/errors Format, but hides frames that belong to
// this package so that the first printed location is where the error was
// created.
func (e *wrappedError) Format(s fmt.State, verb rune) {
	if verb != 'v' {
		fmt.Fprint(s, e.Error())
		return
	}

	stack := trimInternal(stackTrace(e))
	if s.Flag('+') {
		fmt.Fprintf(s, "%+v\n", stack)
		fmt.Fprint(s, e.Error())
	} else {
		fmt.Fprint(s, e.Error())
		if len(stack) > 0 {
			writeSimpleFrame(s, stack[0])
		}
	}
}

// trimInternal removes all frames that were produced by the wrapping code of
// this package.
func trimInternal(st errors.StackTrace) errors.StackTrace {
	for len(st) > 0 && isInternalFrame(st[0]) {
		st = st[1:]
	}
	return st
}

func isInternalFrame(f errors.Frame) bool {
	pc := uintptr(f) - 1
	fn := runtime.FuncForPC(pc)
	if fn == nil {
		return false
	}
	file, _ := fn.FileLine(pc)
	if strings.HasSuffix(file, "_test.go") {
		return false
	}
	return strings.HasPrefix(fn.Name(), "github.com/iov-one/paylock/errors.")
}

func writeSimpleFrame(s io.Writer, f errors.Frame) {
	file, line := fileLine(f)
	// Keep only the last two path segments, package and file name.
	chunks := strings.Split(file, "/")
	if len(chunks) > 2 {
		file = strings.Join(chunks[len(chunks)-2:], "/")
	}
	fmt.Fprintf(s, " [%s:%d]", file, line)
}

func fileLine(f errors.Frame) (string, int) {
	// Follows the way pkg/errors resolves a Frame.
	pc := uintptr(f) - 1
	fn := runtime.FuncForPC(pc)
	if fn == nil {
		return "unknown", 0
	}
	return fn.FileLine(pc)
}
