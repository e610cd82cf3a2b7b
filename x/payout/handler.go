package payout

import (
	"encoding/json"
	"sync"

	"github.com/iov-one/tempo"
	"github.com/iov-one/tempo/coin"
	"github.com/iov-one/tempo/errors"
	"github.com/iov-one/tempo/x"
)

const (
	// pay withdraw gas cost up-front
	withdrawCost int64 = 200
)

// RegisterRoutes will instantiate and register all handlers in this
// package.
func RegisterRoutes(r tempo.Registry, auth x.Authenticator, ctrl Controller, treasury Treasury) {
	r.Handle(pathWithdrawMsg, NewWithdrawHandler(auth, ctrl, treasury))
}

// WithdrawHandler pays out the accrued balance of a party.
//
// This is the only handler that calls into external code (the treasury
// transfer), so it is the only one that needs a reentrancy discipline:
// the balance is zeroed before the transfer is attempted and a mutex
// serializes all withdrawals.
type WithdrawHandler struct {
	auth     x.Authenticator
	ctrl     Controller
	treasury Treasury

	// mu serializes withdrawals. A second withdrawal, no matter how it
	// enters, cannot run while a transfer is in flight.
	mu *sync.Mutex
}

var _ tempo.Handler = (*WithdrawHandler)(nil)

// NewWithdrawHandler returns a handler draining balances through the
// given treasury.
func NewWithdrawHandler(auth x.Authenticator, ctrl Controller, treasury Treasury) *WithdrawHandler {
	return &WithdrawHandler{
		auth:     auth,
		ctrl:     ctrl,
		treasury: treasury,
		mu:       &sync.Mutex{},
	}
}

// Check verifies there is a balance to pay out.
func (h *WithdrawHandler) Check(ctx tempo.Context, db tempo.KVStore, tx tempo.Tx) (*tempo.CheckResult, error) {
	source, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	balance, err := h.ctrl.Balance(db, source)
	if err != nil {
		return nil, err
	}
	if !balance.IsPositive() {
		return nil, errors.Wrapf(ErrNothingToWithdraw, "balance %s", balance)
	}
	return &tempo.CheckResult{GasAllocated: withdrawCost}, nil
}

// Deliver drains the balance and moves the value out through the
// treasury. A failed transfer restores the balance exactly.
func (h *WithdrawHandler) Deliver(ctx tempo.Context, db tempo.KVStore, tx tempo.Tx) (*tempo.DeliverResult, error) {
	source, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	// Checks-effects-interactions: the balance is gone from the store
	// before the treasury gets control.
	amount, err := h.ctrl.Drain(db, source)
	if err != nil {
		return nil, err
	}

	if err := h.treasury.Disburse(source, amount); err != nil {
		if rerr := h.ctrl.Credit(db, source, amount); rerr != nil {
			return nil, errors.Wrapf(rerr, "cannot restore balance after: %s", err)
		}
		return nil, errors.Wrap(ErrTransferFailed, err.Error())
	}

	tag, err := withdrawalTag(source, amount)
	if err != nil {
		return nil, err
	}
	return &tempo.DeliverResult{
		Log:  "withdrawal paid out",
		Tags: []tempo.KVPair{tag},
	}, nil
}

// validate returns the address whose balance this transaction may drain.
func (h *WithdrawHandler) validate(ctx tempo.Context, tx tempo.Tx) (tempo.Address, error) {
	var msg WithdrawMsg
	if err := tempo.LoadMsg(tx, &msg); err != nil {
		return nil, err
	}

	source := msg.Source
	if source == nil {
		signer := x.MainSigner(ctx, h.auth)
		if signer == nil {
			return nil, errors.Wrap(errors.ErrUnauthorized, "no signer")
		}
		source = signer.Address()
	}
	if !h.auth.HasAddress(ctx, source) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "not the balance owner")
	}
	return source, nil
}

func withdrawalTag(recipient tempo.Address, amount coin.Coin) (tempo.KVPair, error) {
	payload, err := json.Marshal(struct {
		Recipient tempo.Address `json:"recipient"`
		Amount    coin.Coin     `json:"amount"`
	}{
		Recipient: recipient,
		Amount:    amount,
	})
	if err != nil {
		return tempo.KVPair{}, errors.Wrap(err, "cannot serialize event")
	}
	return tempo.Pair("payout/withdrawal", payload), nil
}
