package payout

import (
	"encoding/json"

	"github.com/iov-one/tempo"
	"github.com/iov-one/tempo/errors"
)

const pathWithdrawMsg = "payout/withdraw"

// WithdrawMsg claims the full accrued balance of a party. Source is
// optional and defaults to the main signer. A transaction may only
// withdraw a balance the signer is authorized for.
type WithdrawMsg struct {
	Source tempo.Address `json:"source,omitempty"`
}

var _ tempo.Msg = (*WithdrawMsg)(nil)

// Path implements the Msg interface.
func (WithdrawMsg) Path() string {
	return pathWithdrawMsg
}

// Validate implements the Msg interface.
func (m *WithdrawMsg) Validate() error {
	if m.Source != nil {
		if err := m.Source.Validate(); err != nil {
			return errors.Wrap(err, "source")
		}
	}
	return nil
}

// Marshal implements the Persistent interface.
func (m *WithdrawMsg) Marshal() ([]byte, error) {
	return json.Marshal(m)
}

// Unmarshal implements the Persistent interface.
func (m *WithdrawMsg) Unmarshal(raw []byte) error {
	return json.Unmarshal(raw, m)
}
