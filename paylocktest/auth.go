package paylocktest

import (
	"context"
	"fmt"

	"github.com/iov-one/paylock"
)

// Auth is a mock implementing x.Authenticator interface.
//
// This structure authenticates any of referenced conditions. Signer and
// Signers can be used together, in which case all of them are considered.
type Auth struct {
	// Signer represents an authentication of a single signer.
	Signer paylock.Condition

	// Signers represents an authentication of multiple signers.
	Signers []paylock.Condition
}

func (a *Auth) GetConditions(paylock.Context) []paylock.Condition {
	if a.Signer != nil {
		return append(a.Signers, a.Signer)
	}
	return a.Signers
}

func (a *Auth) HasAddress(ctx paylock.Context, addr paylock.Address) bool {
	for _, s := range a.GetConditions(ctx) {
		if addr.Equals(s.Address()) {
			return true
		}
	}
	return false
}

// CtxAuth is a mock implementing x.Authenticator interface.
//
// Conditions are stored in and retrieved from the context.
type CtxAuth struct {
	// Key used to set and retrieve conditions from the context.
	Key string
}

func (a *CtxAuth) SetConditions(ctx paylock.Context, permissions ...paylock.Condition) paylock.Context {
	return context.WithValue(ctx, a.Key, permissions)
}

func (a *CtxAuth) GetConditions(ctx paylock.Context) []paylock.Condition {
	val := ctx.Value(a.Key)
	if val == nil {
		return nil
	}
	conds, ok := val.([]paylock.Condition)
	if !ok {
		panic(fmt.Sprintf("instead of []paylock.Condition got %T", val))
	}
	return conds
}

func (a *CtxAuth) HasAddress(ctx paylock.Context, addr paylock.Address) bool {
	for _, s := range a.GetConditions(ctx) {
		if addr.Equals(s.Address()) {
			return true
		}
	}
	return false
}
