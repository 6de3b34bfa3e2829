/*
Package errors implements custom error interfaces for paylock.

Reuse as many errors from this package as possible and define custom errors
only when absolutely necessary. Every error returned by a handler should wrap
one of the registered root errors so that the caller can test its kind using
the Is method:

	if errors.ErrNotFound.Is(err) {
		// ...
	}

Register a custom root error with Register(code, description). Use
ErrXyz.New, ErrXyz.Newf or Wrap to create an instance with additional context.

There is also support for stacktraces. Create the error using ErrXyz.New("...")
or errors.Wrap(err, "...") at the point of creation to attach a stacktrace. If
you wrap multiple times, only the first wrap records the stacktrace. Do not
declare global `var ErrFoo = errors.ErrState.New("foo")` values, as the
recorded stacktrace would be useless.

Once you have an error, use `fmt.Printf/Sprintf` to get more context:

	%s is just the error message
	%+v is the full stack trace
	%v appends a compressed [filename:line] where the error was created
*/
package errors
