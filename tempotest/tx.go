package tempotest

import (
	"github.com/iov-one/tempo"
	"github.com/iov-one/tempo/errors"
)

// Tx is a mock implementing the tempo.Tx interface, wrapping a single
// message.
type Tx struct {
	// Msg is the message that this transaction carries.
	Msg tempo.Msg

	// Err if set is returned by any method call.
	Err error
}

var _ tempo.Tx = (*Tx)(nil)

func (tx *Tx) GetMsg() (tempo.Msg, error) {
	if tx.Err != nil {
		return nil, tx.Err
	}
	return tx.Msg, nil
}

func (tx *Tx) Marshal() ([]byte, error) {
	if tx.Err != nil {
		return nil, tx.Err
	}
	return tx.Msg.Marshal()
}

func (tx *Tx) Unmarshal([]byte) error {
	if tx.Err != nil {
		return tx.Err
	}
	return errors.Wrap(errors.ErrHuman, "tempotest tx cannot be unmarshaled")
}

// Msg is a mock implementing the tempo.Msg interface.
type Msg struct {
	// RoutePath is returned by the Path method.
	RoutePath string

	// Serialized is returned by the Marshal method.
	Serialized []byte

	// Err if set is returned by Validate, Marshal and Unmarshal.
	Err error
}

var _ tempo.Msg = (*Msg)(nil)

func (m *Msg) Path() string {
	return m.RoutePath
}

func (m *Msg) Validate() error {
	return m.Err
}

func (m *Msg) Marshal() ([]byte, error) {
	return m.Serialized, m.Err
}

func (m *Msg) Unmarshal(raw []byte) error {
	m.Serialized = raw
	return m.Err
}
