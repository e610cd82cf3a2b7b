package capsule

import (
	"encoding/json"
	"fmt"

	"github.com/iov-one/tempo"
	"github.com/iov-one/tempo/coin"
	"github.com/iov-one/tempo/errors"
	"github.com/iov-one/tempo/orm"
)

// State is the lifecycle position of a capsule. Exactly one of the three
// states holds at any time, and both terminal states are absorbing.
type State uint8

const (
	// StateInvalid is the zero value and never stored.
	StateInvalid State = 0
	// StateActive capsules can be canceled, extended and revealed.
	StateActive State = 1
	// StateRevealed is terminal, the pre-image was published.
	StateRevealed State = 2
	// StateCanceled is terminal, the creator withdrew the commitment.
	StateCanceled State = 3
)

func (s State) String() string {
	switch s {
	case StateActive:
		return "active"
	case StateRevealed:
		return "revealed"
	case StateCanceled:
		return "canceled"
	default:
		return fmt.Sprintf("invalid(%d)", uint8(s))
	}
}

// Capsule is a single commit-reveal record. Once created it is never
// deleted, terminal records persist for audit.
type Capsule struct {
	// Creator holds all mutating rights except reveal-by-beneficiary.
	Creator tempo.Address `json:"creator"`
	// Beneficiary receives the payout on reveal. May be nil, in which
	// case the creator is the payout receiver and the only party allowed
	// to reveal.
	Beneficiary tempo.Address `json:"beneficiary,omitempty"`
	// UnlockAt is the earliest time reveal is permitted. It only ever
	// moves forward, and only while still in the future.
	UnlockAt tempo.UnixTime `json:"unlock_at"`
	// Deposit is the escrowed value. Nil once drained (or when the
	// capsule never carried value).
	Deposit *coin.Coin `json:"deposit,omitempty"`
	// Commit is the digest the reveal pre-image must match. Immutable.
	Commit []byte `json:"commit"`
	// State is the lifecycle position.
	State State `json:"state"`
}

var _ orm.Model = (*Capsule)(nil)

// Marshal implements the Persistent interface.
func (c *Capsule) Marshal() ([]byte, error) {
	return json.Marshal(c)
}

// Unmarshal implements the Persistent interface.
func (c *Capsule) Unmarshal(raw []byte) error {
	return json.Unmarshal(raw, c)
}

// Validate ensures the capsule can be persisted.
func (c *Capsule) Validate() error {
	if err := c.Creator.Validate(); err != nil {
		return errors.Wrap(err, "creator")
	}
	if c.Beneficiary != nil {
		if err := c.Beneficiary.Validate(); err != nil {
			return errors.Wrap(err, "beneficiary")
		}
	}
	if err := validateCommitment(c.Commit); err != nil {
		return err
	}
	if c.UnlockAt == 0 {
		return errors.Wrap(errors.ErrEmpty, "unlock time")
	}
	if err := c.UnlockAt.Validate(); err != nil {
		return errors.Wrap(err, "unlock time")
	}
	if c.Deposit != nil {
		if err := c.Deposit.Validate(); err != nil {
			return errors.Wrap(err, "deposit")
		}
		if !c.Deposit.IsPositive() {
			return errors.Wrap(errors.ErrAmount, "deposit must be positive")
		}
	}
	switch c.State {
	case StateActive, StateRevealed, StateCanceled:
		// all good
	default:
		return errors.Wrapf(errors.ErrState, "state %s", c.State)
	}
	return nil
}

// Terminated returns an error naming the terminal state the capsule is
// in, or nil for an active capsule.
func (c *Capsule) Terminated() error {
	switch c.State {
	case StateRevealed:
		return ErrAlreadyRevealed
	case StateCanceled:
		return ErrAlreadyCanceled
	default:
		return nil
	}
}

// PayoutReceiver returns the address credited when the deposit is
// released on reveal.
func (c *Capsule) PayoutReceiver() tempo.Address {
	if c.Beneficiary != nil {
		return c.Beneficiary
	}
	return c.Creator
}

// NewCapsuleBucket returns a bucket for storing capsules, keyed by the
// derived capsule identifier.
func NewCapsuleBucket() orm.ModelBucket {
	return orm.NewModelBucket("capsule", &Capsule{})
}

// GetCapsule loads the capsule with the given identifier, failing with
// ErrNotFound when absent.
func GetCapsule(db tempo.ReadOnlyKVStore, id []byte) (*Capsule, error) {
	var c Capsule
	if err := NewCapsuleBucket().One(db, id, &c); err != nil {
		return nil, err
	}
	return &c, nil
}
