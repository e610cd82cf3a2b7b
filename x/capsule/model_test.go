package capsule

import (
	"testing"

	"github.com/iov-one/tempo"
	"github.com/iov-one/tempo/coin"
	"github.com/iov-one/tempo/errors"
	"github.com/iov-one/tempo/store"
	"github.com/iov-one/tempo/tempotest"
	"github.com/iov-one/tempo/tempotest/assert"
)

func validCapsule() *Capsule {
	return &Capsule{
		Creator:     tempotest.NewCondition().Address(),
		Beneficiary: tempotest.NewCondition().Address(),
		UnlockAt:    tempo.UnixTime(500),
		Deposit:     coin.NewCoinp(10, 0, "IOV"),
		Commit:      Commitment([]byte("s"), []byte("p")),
		State:       StateActive,
	}
}

func TestCapsuleValidate(t *testing.T) {
	cases := map[string]struct {
		mutate  func(*Capsule)
		wantErr *errors.Error
	}{
		"valid capsule": {
			mutate: func(*Capsule) {},
		},
		"no beneficiary is valid": {
			mutate: func(c *Capsule) { c.Beneficiary = nil },
		},
		"no deposit is valid": {
			mutate: func(c *Capsule) { c.Deposit = nil },
		},
		"terminal state is valid": {
			mutate: func(c *Capsule) { c.State = StateRevealed; c.Deposit = nil },
		},
		"missing creator": {
			mutate:  func(c *Capsule) { c.Creator = nil },
			wantErr: errors.ErrInput,
		},
		"truncated beneficiary": {
			mutate:  func(c *Capsule) { c.Beneficiary = c.Beneficiary[:5] },
			wantErr: errors.ErrInput,
		},
		"zero commitment": {
			mutate:  func(c *Capsule) { c.Commit = make([]byte, commitmentLength) },
			wantErr: ErrInvalidCommitment,
		},
		"short commitment": {
			mutate:  func(c *Capsule) { c.Commit = c.Commit[:10] },
			wantErr: ErrInvalidCommitment,
		},
		"missing unlock time": {
			mutate:  func(c *Capsule) { c.UnlockAt = 0 },
			wantErr: errors.ErrEmpty,
		},
		"zero deposit": {
			mutate:  func(c *Capsule) { c.Deposit = coin.NewCoinp(0, 0, "IOV") },
			wantErr: errors.ErrAmount,
		},
		"invalid state": {
			mutate:  func(c *Capsule) { c.State = StateInvalid },
			wantErr: errors.ErrState,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			c := validCapsule()
			tc.mutate(c)
			err := c.Validate()
			if tc.wantErr == nil {
				assert.Nil(t, err)
			} else {
				assert.IsErr(t, tc.wantErr, err)
			}
		})
	}
}

func TestCapsuleTerminated(t *testing.T) {
	c := validCapsule()
	assert.Nil(t, c.Terminated())

	c.State = StateRevealed
	assert.IsErr(t, ErrAlreadyRevealed, c.Terminated())

	c.State = StateCanceled
	assert.IsErr(t, ErrAlreadyCanceled, c.Terminated())
}

func TestCapsulePayoutReceiver(t *testing.T) {
	c := validCapsule()
	if !c.PayoutReceiver().Equals(c.Beneficiary) {
		t.Fatal("a set beneficiary receives the payout")
	}
	c.Beneficiary = nil
	if !c.PayoutReceiver().Equals(c.Creator) {
		t.Fatal("without a beneficiary the creator receives the payout")
	}
}

func TestCapsuleRoundTrip(t *testing.T) {
	db := store.MemStore()
	b := NewCapsuleBucket()

	c := validCapsule()
	if _, err := b.Put(db, []byte("capsule-one"), c); err != nil {
		t.Fatalf("put: %+v", err)
	}

	got, err := GetCapsule(db, []byte("capsule-one"))
	if err != nil {
		t.Fatalf("get: %+v", err)
	}
	assert.Equal(t, c, got)

	if _, err := GetCapsule(db, []byte("no-such-capsule")); !errors.ErrNotFound.Is(err) {
		t.Fatalf("want not found, got %+v", err)
	}
}
