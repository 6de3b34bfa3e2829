package sigs

import "github.com/iov-one/paylock/errors"

// ErrInvalidSequence is returned when a signature carries a nonce that does
// not match the one stored for the signer.
var ErrInvalidSequence = errors.Register(120, "invalid sequence number")
