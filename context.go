package tempo

import (
	"context"
	"regexp"
	"time"

	"github.com/iov-one/tempo/errors"
)

// Context is just the context.Context interface, renamed for clarity.
// All per-call environment (chain id, height, block time, signers) travels
// through it.
type Context = context.Context

type contextKey int // local to the tempo module

const (
	contextKeyHeight contextKey = iota
	contextKeyChainID
	contextKeyBlockTime
)

// IsValidChainID is the RegExp to ensure valid chain IDs.
var IsValidChainID = regexp.MustCompile(`^[a-zA-Z0-9_\-]{6,20}$`).MatchString

// WithHeight sets the block height for the Context. Panics if already set.
func WithHeight(ctx Context, height int64) Context {
	if _, ok := GetHeight(ctx); ok {
		panic("can't set height twice")
	}
	return context.WithValue(ctx, contextKeyHeight, height)
}

// GetHeight returns the current block height, ok is false if no height set
// in this Context.
func GetHeight(ctx Context) (int64, bool) {
	val, ok := ctx.Value(contextKeyHeight).(int64)
	return val, ok
}

// WithChainID sets the chain id for the Context. Panics if already set or
// if the id is invalid.
func WithChainID(ctx Context, chainID string) Context {
	if ctx.Value(contextKeyChainID) != nil {
		panic("can't set chain id twice")
	}
	if !IsValidChainID(chainID) {
		panic("invalid chain id: " + chainID)
	}
	return context.WithValue(ctx, contextKeyChainID, chainID)
}

// GetChainID returns the current chain id. Panics if chain id not already
// set, as this is an app-level setting fixed at startup.
func GetChainID(ctx Context) string {
	val, ok := ctx.Value(contextKeyChainID).(string)
	if !ok {
		panic("chain id not set")
	}
	return val
}

// WithBlockTime sets the block time for the Context. The block time is
// always a UTC time.
func WithBlockTime(ctx Context, t time.Time) Context {
	return context.WithValue(ctx, contextKeyBlockTime, t.UTC())
}

// BlockTime returns the block time as declared in this Context.
func BlockTime(ctx Context) (time.Time, error) {
	val, ok := ctx.Value(contextKeyBlockTime).(time.Time)
	if !ok {
		return time.Time{}, errors.Wrap(errors.ErrHuman, "block time not present in the context")
	}
	if val.IsZero() {
		return val, errors.Wrap(errors.ErrHuman, "zero time value")
	}
	return val, nil
}

// IsExpired returns true if given time is in the past as compared to the
// "now" as declared for the block. Expiration is inclusive, meaning that
// if current time is equal to the expiration time then this function
// returns true.
//
// This function panics if the block time is not provided in the context.
// This must never happen. The block time presence is guaranteed by the
// application during the call setup.
func IsExpired(ctx Context, t UnixTime) bool {
	blockNow, err := BlockTime(ctx)
	if err != nil {
		panic("block time is not present")
	}
	return t <= AsUnixTime(blockNow)
}

// InTheFuture returns true if given time is in the future compared to the
// current time as declared in the context. Keep in mind that this function
// is not inclusive of current time. If given time is equal to "now" then
// this function returns false.
//
// This function panics if the block time is not provided in the context.
func InTheFuture(ctx Context, t UnixTime) bool {
	blockNow, err := BlockTime(ctx)
	if err != nil {
		panic("block time is not present")
	}
	return t > AsUnixTime(blockNow)
}
