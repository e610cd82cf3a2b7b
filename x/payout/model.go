package payout

import (
	"encoding/json"

	"github.com/iov-one/tempo/coin"
	"github.com/iov-one/tempo/errors"
	"github.com/iov-one/tempo/orm"
)

// CreditAccount is the withdrawable balance accrued by a single party.
// It is keyed by the party address and exists independent of any
// capsule.
type CreditAccount struct {
	Balance coin.Coin `json:"balance"`
}

var _ orm.Model = (*CreditAccount)(nil)

// Marshal implements the Persistent interface.
func (c *CreditAccount) Marshal() ([]byte, error) {
	return json.Marshal(c)
}

// Unmarshal implements the Persistent interface.
func (c *CreditAccount) Unmarshal(raw []byte) error {
	return json.Unmarshal(raw, c)
}

// Validate ensures the account can be persisted. A drained account keeps
// its ticker with a zero amount, so the ticker must always be valid.
func (c *CreditAccount) Validate() error {
	if err := c.Balance.Validate(); err != nil {
		return errors.Wrap(err, "balance")
	}
	if !c.Balance.IsNonNegative() {
		return errors.Wrap(errors.ErrAmount, "negative balance")
	}
	return nil
}

// NewCreditBucket returns a bucket for storing credit accounts, keyed by
// the party address.
func NewCreditBucket() orm.ModelBucket {
	return orm.NewModelBucket("credit", &CreditAccount{})
}
