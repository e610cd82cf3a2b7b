package tempotest

import (
	"encoding/binary"
	"sync/atomic"

	"github.com/iov-one/tempo"
	"github.com/iov-one/tempo/x"
)

// Auth is a mock implementing the x.Authenticator interface. It
// authenticates given conditions regardless of the context content.
type Auth struct {
	// Signer is condition to authenticate. This is a convenience
	// attribute when a single signer is needed.
	Signer tempo.Condition

	// Signers are conditions to authenticate. When this attribute is
	// used, the Signer attribute is ignored.
	Signers []tempo.Condition
}

var _ x.Authenticator = (*Auth)(nil)

func (a *Auth) GetConditions(tempo.Context) []tempo.Condition {
	if len(a.Signers) > 0 {
		return a.Signers
	}
	if a.Signer != nil {
		return []tempo.Condition{a.Signer}
	}
	return nil
}

func (a *Auth) HasAddress(ctx tempo.Context, addr tempo.Address) bool {
	for _, s := range a.GetConditions(ctx) {
		if addr.Equals(s.Address()) {
			return true
		}
	}
	return false
}

var condCounter int64

// NewCondition returns a unique, deterministic condition for use as a
// test fixture. No two calls return the same condition.
func NewCondition() tempo.Condition {
	n := atomic.AddInt64(&condCounter, 1)
	data := make([]byte, 8)
	binary.BigEndian.PutUint64(data, uint64(n))
	return tempo.NewCondition("test", "mock", data)
}
