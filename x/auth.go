/*
Package x contains the extensions that provide the actual business logic.

Each extension lives in its own sub-package and exposes messages, models
and handlers. This top level package holds helpers shared by all of them,
most importantly the Authenticator abstraction.
*/
package x

import (
	"github.com/iov-one/tempo"
)

// Authenticator is an interface we can use to extract authentication info
// from the context. This should be passed into the constructor of
// handlers, so we can plug in another authentication system besides
// signature verification.
type Authenticator interface {
	// GetConditions reveals all conditions fulfilled, may be nil.
	GetConditions(tempo.Context) []tempo.Condition

	// HasAddress checks if any condition matches this address.
	HasAddress(tempo.Context, tempo.Address) bool
}

// MultiAuth chains together many Authenticators into one.
type MultiAuth struct {
	impls []Authenticator
}

var _ Authenticator = MultiAuth{}

// ChainAuth groups together a series of Authenticators.
func ChainAuth(impls ...Authenticator) MultiAuth {
	return MultiAuth{impls}
}

// GetConditions combines all conditions of all sub-authenticators.
func (m MultiAuth) GetConditions(ctx tempo.Context) []tempo.Condition {
	var res []tempo.Condition
	for _, impl := range m.impls {
		add := impl.GetConditions(ctx)
		if len(add) > 0 {
			res = append(res, add...)
		}
	}
	return res
}

// HasAddress returns true iff any sub-authenticator approves.
func (m MultiAuth) HasAddress(ctx tempo.Context, addr tempo.Address) bool {
	for _, impl := range m.impls {
		if impl.HasAddress(ctx, addr) {
			return true
		}
	}
	return false
}

// MainSigner returns the first condition returned by the authenticator, or
// nil if none.
func MainSigner(ctx tempo.Context, auth Authenticator) tempo.Condition {
	signers := auth.GetConditions(ctx)
	if len(signers) == 0 {
		return nil
	}
	return signers[0]
}

// HasAllAddresses returns true if all required addresses are
// authenticated.
func HasAllAddresses(ctx tempo.Context, auth Authenticator, required []tempo.Address) bool {
	for _, addr := range required {
		if !auth.HasAddress(ctx, addr) {
			return false
		}
	}
	return true
}

// GetAddresses collects the addresses for all conditions fulfilled in this
// context.
func GetAddresses(ctx tempo.Context, auth Authenticator) []tempo.Address {
	perms := auth.GetConditions(ctx)
	addrs := make([]tempo.Address, len(perms))
	for i, p := range perms {
		addrs[i] = p.Address()
	}
	return addrs
}
