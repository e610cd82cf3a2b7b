package capsule

import (
	"encoding/json"

	"github.com/iov-one/tempo"
	"github.com/iov-one/tempo/coin"
	"github.com/iov-one/tempo/errors"
)

const (
	pathCreateCapsuleMsg = "capsule/create"
	pathCancelCapsuleMsg = "capsule/cancel"
	pathExtendCapsuleMsg = "capsule/extend"
	pathRevealCapsuleMsg = "capsule/reveal"
)

// CreateCapsuleMsg commits to a hidden payload, optionally escrowing a
// deposit until reveal or cancellation.
type CreateCapsuleMsg struct {
	// Creator is optional and defaults to the main signer.
	Creator tempo.Address `json:"creator,omitempty"`
	// Beneficiary is optional. When nil the creator receives the payout
	// and is the only party allowed to reveal.
	Beneficiary tempo.Address `json:"beneficiary,omitempty"`
	// UnlockAt must be strictly in the future.
	UnlockAt tempo.UnixTime `json:"unlock_at"`
	// Commit is the digest of the hidden (salt, payload) pair, computed
	// with Commitment.
	Commit []byte `json:"commit"`
	// Deposit is optional escrowed value.
	Deposit *coin.Coin `json:"deposit,omitempty"`
}

var _ tempo.Msg = (*CreateCapsuleMsg)(nil)

// Path implements the Msg interface.
func (CreateCapsuleMsg) Path() string {
	return pathCreateCapsuleMsg
}

// Validate implements the Msg interface.
func (m *CreateCapsuleMsg) Validate() error {
	if m.Creator != nil {
		if err := m.Creator.Validate(); err != nil {
			return errors.Wrap(err, "creator")
		}
	}
	if m.Beneficiary != nil {
		if err := m.Beneficiary.Validate(); err != nil {
			return errors.Wrap(err, "beneficiary")
		}
	}
	if err := validateCommitment(m.Commit); err != nil {
		return err
	}
	if m.UnlockAt == 0 {
		return errors.Wrap(ErrInvalidSchedule, "missing unlock time")
	}
	if err := m.UnlockAt.Validate(); err != nil {
		return errors.Wrap(ErrInvalidSchedule, err.Error())
	}
	if m.Deposit != nil {
		if err := m.Deposit.Validate(); err != nil {
			return errors.Wrap(err, "deposit")
		}
		if !m.Deposit.IsPositive() {
			return errors.Wrap(errors.ErrAmount, "deposit must be positive")
		}
	}
	return nil
}

// Marshal implements the Persistent interface.
func (m *CreateCapsuleMsg) Marshal() ([]byte, error) {
	return json.Marshal(m)
}

// Unmarshal implements the Persistent interface.
func (m *CreateCapsuleMsg) Unmarshal(raw []byte) error {
	return json.Unmarshal(raw, m)
}

// CancelCapsuleMsg withdraws an active commitment before its unlock
// time, returning the deposit to the creator's withdrawal balance.
type CancelCapsuleMsg struct {
	CapsuleID []byte `json:"capsule_id"`
}

var _ tempo.Msg = (*CancelCapsuleMsg)(nil)

// Path implements the Msg interface.
func (CancelCapsuleMsg) Path() string {
	return pathCancelCapsuleMsg
}

// Validate implements the Msg interface.
func (m *CancelCapsuleMsg) Validate() error {
	return validateCapsuleID(m.CapsuleID)
}

// Marshal implements the Persistent interface.
func (m *CancelCapsuleMsg) Marshal() ([]byte, error) {
	return json.Marshal(m)
}

// Unmarshal implements the Persistent interface.
func (m *CancelCapsuleMsg) Unmarshal(raw []byte) error {
	return json.Unmarshal(raw, m)
}

// ExtendCapsuleMsg pushes the unlock time of an active capsule further
// into the future.
type ExtendCapsuleMsg struct {
	CapsuleID []byte         `json:"capsule_id"`
	UnlockAt  tempo.UnixTime `json:"unlock_at"`
}

var _ tempo.Msg = (*ExtendCapsuleMsg)(nil)

// Path implements the Msg interface.
func (ExtendCapsuleMsg) Path() string {
	return pathExtendCapsuleMsg
}

// Validate implements the Msg interface.
func (m *ExtendCapsuleMsg) Validate() error {
	if err := validateCapsuleID(m.CapsuleID); err != nil {
		return err
	}
	if m.UnlockAt == 0 {
		return errors.Wrap(ErrInvalidSchedule, "missing unlock time")
	}
	if err := m.UnlockAt.Validate(); err != nil {
		return errors.Wrap(ErrInvalidSchedule, err.Error())
	}
	return nil
}

// Marshal implements the Persistent interface.
func (m *ExtendCapsuleMsg) Marshal() ([]byte, error) {
	return json.Marshal(m)
}

// Unmarshal implements the Persistent interface.
func (m *ExtendCapsuleMsg) Unmarshal(raw []byte) error {
	return json.Unmarshal(raw, m)
}

// RevealCapsuleMsg publishes the pre-image of the commitment and
// releases the deposit to the payout receiver.
type RevealCapsuleMsg struct {
	CapsuleID []byte `json:"capsule_id"`
	// Salt is the blinding value used when the commitment was computed.
	Salt []byte `json:"salt,omitempty"`
	// Payload is the hidden value, opaque bytes to this extension.
	Payload []byte `json:"payload"`
}

var _ tempo.Msg = (*RevealCapsuleMsg)(nil)

// Path implements the Msg interface.
func (RevealCapsuleMsg) Path() string {
	return pathRevealCapsuleMsg
}

// Validate implements the Msg interface.
func (m *RevealCapsuleMsg) Validate() error {
	if err := validateCapsuleID(m.CapsuleID); err != nil {
		return err
	}
	if len(m.Payload) == 0 {
		return errors.Wrap(errors.ErrEmpty, "payload")
	}
	return nil
}

// Marshal implements the Persistent interface.
func (m *RevealCapsuleMsg) Marshal() ([]byte, error) {
	return json.Marshal(m)
}

// Unmarshal implements the Persistent interface.
func (m *RevealCapsuleMsg) Unmarshal(raw []byte) error {
	return json.Unmarshal(raw, m)
}

func validateCapsuleID(id []byte) error {
	if len(id) != idLength {
		return errors.Wrapf(errors.ErrInput, "capsule id must be %d bytes", idLength)
	}
	return nil
}
