package payout

import (
	"github.com/iov-one/tempo"
	"github.com/iov-one/tempo/coin"
	"github.com/iov-one/tempo/errors"
	"github.com/iov-one/tempo/orm"
)

// Controller is the functionality needed by other extensions to grow and
// inspect withdrawal balances. This is implemented by CreditController,
// but extensions should keep to this interface so they can be tested
// with a mock.
type Controller interface {
	// Credit increases the balance of dest by the given amount. This is
	// the only way a balance ever grows.
	Credit(db tempo.KVStore, dest tempo.Address, amount coin.Coin) error

	// Balance returns the withdrawable amount of the given party. A party
	// without an account has a zero balance.
	Balance(db tempo.ReadOnlyKVStore, addr tempo.Address) (coin.Coin, error)

	// Drain zeroes the balance of the given party and returns the prior
	// amount. It fails with ErrNothingToWithdraw if there is nothing to
	// drain.
	Drain(db tempo.KVStore, addr tempo.Address) (coin.Coin, error)
}

// Treasury is the external collaborator holding the actual value. The
// credit ledger only does bookkeeping, all value movement in and out of
// the system custody goes through here.
type Treasury interface {
	// Collect takes custody of the given amount from the party. Value is
	// accepted into the system only through this call.
	Collect(from tempo.Address, amount coin.Coin) error

	// Disburse moves the given amount out of the system custody to the
	// party. It must never be assumed to succeed.
	Disburse(to tempo.Address, amount coin.Coin) error
}

// CreditController maintains the balances of all parties.
type CreditController struct {
	bucket orm.ModelBucket
}

var _ Controller = CreditController{}

// NewController returns a controller operating on the credit bucket.
func NewController() CreditController {
	return CreditController{
		bucket: NewCreditBucket(),
	}
}

// Credit increases the balance of dest by the given amount. The amount
// must be positive. An account holds a single currency, crediting a
// different ticker than the current balance fails with ErrCurrency.
func (c CreditController) Credit(db tempo.KVStore, dest tempo.Address, amount coin.Coin) error {
	if err := dest.Validate(); err != nil {
		return errors.Wrap(err, "destination")
	}
	if err := amount.Validate(); err != nil {
		return errors.Wrap(err, "amount")
	}
	if !amount.IsPositive() {
		return errors.Wrap(errors.ErrAmount, "credit must be positive")
	}

	var acct CreditAccount
	switch err := c.bucket.One(db, dest, &acct); {
	case err == nil:
		total, err := acct.Balance.Add(amount)
		if err != nil {
			return errors.Wrap(err, "cannot grow balance")
		}
		acct.Balance = total
	case errors.ErrNotFound.Is(err):
		acct.Balance = amount
	default:
		return errors.Wrap(err, "cannot load account")
	}

	_, err := c.bucket.Put(db, dest, &acct)
	return err
}

// Balance returns the withdrawable amount of the given party. A missing
// account is reported as a zero balance, not an error.
func (c CreditController) Balance(db tempo.ReadOnlyKVStore, addr tempo.Address) (coin.Coin, error) {
	var acct CreditAccount
	switch err := c.bucket.One(db, addr, &acct); {
	case err == nil:
		return acct.Balance, nil
	case errors.ErrNotFound.Is(err):
		return coin.Coin{}, nil
	default:
		return coin.Coin{}, errors.Wrap(err, "cannot load account")
	}
}

// Drain zeroes the balance of the given party and returns the prior
// amount. The account is kept with a zero amount so that the ticker
// survives for future credits.
func (c CreditController) Drain(db tempo.KVStore, addr tempo.Address) (coin.Coin, error) {
	var acct CreditAccount
	switch err := c.bucket.One(db, addr, &acct); {
	case err == nil:
		// pass
	case errors.ErrNotFound.Is(err):
		return coin.Coin{}, errors.Wrap(ErrNothingToWithdraw, "no account")
	default:
		return coin.Coin{}, errors.Wrap(err, "cannot load account")
	}

	amount := acct.Balance
	if !amount.IsPositive() {
		return coin.Coin{}, errors.Wrapf(ErrNothingToWithdraw, "balance %s", amount)
	}

	acct.Balance = coin.NewCoin(0, 0, amount.Ticker)
	if _, err := c.bucket.Put(db, addr, &acct); err != nil {
		return coin.Coin{}, errors.Wrap(err, "cannot zero balance")
	}
	return amount, nil
}
