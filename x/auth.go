package x

import (
	"github.com/iov-one/paylock"
)

// Authenticator is an interface we can use to extract authentication info
// from the context. This should be passed into the constructor of
// handlers, so we can plug in another authentication system,
// rather than hard-coding x/auth for all extensions.
type Authenticator interface {
	// GetConditions reveals all Conditions fulfilled,
	// you may want GetAddresses helper
	GetConditions(paylock.Context) []paylock.Condition
	// HasAddress checks if any condition matches this address
	HasAddress(paylock.Context, paylock.Address) bool
}

// MultiAuth chains together many Authenticators into one
type MultiAuth struct {
	impls []Authenticator
}

var _ Authenticator = MultiAuth{}

// ChainAuth groups together a series of Authenticator
func ChainAuth(impls ...Authenticator) MultiAuth {
	return MultiAuth{impls}
}

// GetConditions combines all Conditions from all Authenticators
func (m MultiAuth) GetConditions(ctx paylock.Context) []paylock.Condition {
	var res []paylock.Condition
	for _, impl := range m.impls {
		add := impl.GetConditions(ctx)
		if len(add) > 0 {
			res = append(res, add...)
		}
	}
	return res
}

// HasAddress returns true iff any Authenticator support this
func (m MultiAuth) HasAddress(ctx paylock.Context, addr paylock.Address) bool {
	for _, impl := range m.impls {
		if impl.HasAddress(ctx, addr) {
			return true
		}
	}
	return false
}

// GetAddresses wraps the GetConditions method of any Authenticator
func GetAddresses(ctx paylock.Context, auth Authenticator) []paylock.Address {
	perms := auth.GetConditions(ctx)
	addrs := make([]paylock.Address, len(perms))
	for i, p := range perms {
		addrs[i] = p.Address()
	}
	return addrs
}

// MainSigner returns the first permission if any, otherwise nil
func MainSigner(ctx paylock.Context, auth Authenticator) paylock.Condition {
	signers := auth.GetConditions(ctx)
	if len(signers) == 0 {
		return nil
	}
	return signers[0]
}

// MainSignerAddress returns the address of the first permission, or nil
// when nothing was authenticated.
func MainSignerAddress(ctx paylock.Context, auth Authenticator) paylock.Address {
	if s := MainSigner(ctx, auth); s != nil {
		return s.Address()
	}
	return nil
}

// HasAllAddresses returns true if all elements in required are
// also in context.
func HasAllAddresses(ctx paylock.Context, auth Authenticator, required []paylock.Address) bool {
	for _, r := range required {
		if !auth.HasAddress(ctx, r) {
			return false
		}
	}
	return true
}
