package capsule

import (
	"encoding/json"

	"github.com/iov-one/tempo"
	"github.com/iov-one/tempo/coin"
	"github.com/iov-one/tempo/errors"
)

// Event tag keys. One notification per lifecycle transition, append-only
// and ordered. These are for external indexers and UIs, not queryable
// state.
const (
	createdTagKey  = "capsule/created"
	canceledTagKey = "capsule/canceled"
	extendedTagKey = "capsule/extended"
	revealedTagKey = "capsule/revealed"
)

// CreatedEvent is emitted once per successful capsule creation.
type CreatedEvent struct {
	CapsuleID   []byte         `json:"capsule_id"`
	Creator     tempo.Address  `json:"creator"`
	Beneficiary tempo.Address  `json:"beneficiary,omitempty"`
	UnlockAt    tempo.UnixTime `json:"unlock_at"`
	Commit      []byte         `json:"commit"`
	Deposit     *coin.Coin     `json:"deposit,omitempty"`
}

// CanceledEvent is emitted once per successful cancellation.
type CanceledEvent struct {
	CapsuleID []byte        `json:"capsule_id"`
	Creator   tempo.Address `json:"creator"`
	Deposit   *coin.Coin    `json:"deposit,omitempty"`
}

// ExtendedEvent is emitted once per successful unlock time extension.
type ExtendedEvent struct {
	CapsuleID []byte         `json:"capsule_id"`
	OldUnlock tempo.UnixTime `json:"old_unlock"`
	NewUnlock tempo.UnixTime `json:"new_unlock"`
}

// RevealedEvent is emitted once per successful reveal. The payload is
// opaque bytes, consumers interpret the encoding themselves. This event
// is the only place the revealed payload is kept.
type RevealedEvent struct {
	CapsuleID []byte        `json:"capsule_id"`
	Revealer  tempo.Address `json:"revealer"`
	Commit    []byte        `json:"commit"`
	Payload   []byte        `json:"payload"`
	Receiver  tempo.Address `json:"receiver"`
	Deposit   *coin.Coin    `json:"deposit,omitempty"`
}

func eventTag(key string, ev interface{}) (tempo.KVPair, error) {
	payload, err := json.Marshal(ev)
	if err != nil {
		return tempo.KVPair{}, errors.Wrap(err, "cannot serialize event")
	}
	return tempo.Pair(key, payload), nil
}
