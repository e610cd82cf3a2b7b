package payout

import "github.com/iov-one/tempo/errors"

var (
	// ErrNothingToWithdraw is returned when a withdrawal is requested for
	// an empty balance.
	ErrNothingToWithdraw = errors.Register(1200, "nothing to withdraw")

	// ErrTransferFailed is returned when the external value transfer
	// reported a failure. The credit balance is restored before this
	// error is returned.
	ErrTransferFailed = errors.Register(1201, "transfer failed")
)
