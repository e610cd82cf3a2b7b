package capsule

import (
	"testing"

	"github.com/iov-one/tempo"
	"github.com/iov-one/tempo/coin"
	"github.com/iov-one/tempo/errors"
	"github.com/iov-one/tempo/tempotest"
	"github.com/iov-one/tempo/tempotest/assert"
)

func TestCreateCapsuleMsgValidate(t *testing.T) {
	valid := func() *CreateCapsuleMsg {
		return &CreateCapsuleMsg{
			Creator:     tempotest.NewCondition().Address(),
			Beneficiary: tempotest.NewCondition().Address(),
			UnlockAt:    tempo.UnixTime(1000),
			Commit:      Commitment([]byte("s"), []byte("p")),
			Deposit:     coin.NewCoinp(5, 0, "IOV"),
		}
	}

	cases := map[string]struct {
		mutate  func(*CreateCapsuleMsg)
		wantErr *errors.Error
	}{
		"valid message": {
			mutate: func(*CreateCapsuleMsg) {},
		},
		"creator is optional": {
			mutate: func(m *CreateCapsuleMsg) { m.Creator = nil },
		},
		"beneficiary is optional": {
			mutate: func(m *CreateCapsuleMsg) { m.Beneficiary = nil },
		},
		"deposit is optional": {
			mutate: func(m *CreateCapsuleMsg) { m.Deposit = nil },
		},
		"missing commitment": {
			mutate:  func(m *CreateCapsuleMsg) { m.Commit = nil },
			wantErr: ErrInvalidCommitment,
		},
		"zero commitment": {
			mutate:  func(m *CreateCapsuleMsg) { m.Commit = make([]byte, commitmentLength) },
			wantErr: ErrInvalidCommitment,
		},
		"missing unlock time": {
			mutate:  func(m *CreateCapsuleMsg) { m.UnlockAt = 0 },
			wantErr: ErrInvalidSchedule,
		},
		"negative unlock time": {
			mutate:  func(m *CreateCapsuleMsg) { m.UnlockAt = -5 },
			wantErr: ErrInvalidSchedule,
		},
		"zero deposit": {
			mutate:  func(m *CreateCapsuleMsg) { m.Deposit = coin.NewCoinp(0, 0, "IOV") },
			wantErr: errors.ErrAmount,
		},
		"negative deposit": {
			mutate:  func(m *CreateCapsuleMsg) { m.Deposit = coin.NewCoinp(-1, 0, "IOV") },
			wantErr: errors.ErrAmount,
		},
		"invalid creator": {
			mutate:  func(m *CreateCapsuleMsg) { m.Creator = []byte{1, 2, 3} },
			wantErr: errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			msg := valid()
			tc.mutate(msg)
			err := msg.Validate()
			if tc.wantErr == nil {
				assert.Nil(t, err)
			} else {
				assert.IsErr(t, tc.wantErr, err)
			}
		})
	}
}

func TestCancelCapsuleMsgValidate(t *testing.T) {
	msg := &CancelCapsuleMsg{CapsuleID: make([]byte, idLength)}
	assert.Nil(t, msg.Validate())

	msg = &CancelCapsuleMsg{CapsuleID: []byte("short")}
	assert.IsErr(t, errors.ErrInput, msg.Validate())

	msg = &CancelCapsuleMsg{}
	assert.IsErr(t, errors.ErrInput, msg.Validate())
}

func TestExtendCapsuleMsgValidate(t *testing.T) {
	valid := &ExtendCapsuleMsg{
		CapsuleID: make([]byte, idLength),
		UnlockAt:  tempo.UnixTime(1000),
	}
	assert.Nil(t, valid.Validate())

	missing := &ExtendCapsuleMsg{CapsuleID: make([]byte, idLength)}
	assert.IsErr(t, ErrInvalidSchedule, missing.Validate())

	badID := &ExtendCapsuleMsg{CapsuleID: []byte("x"), UnlockAt: 1000}
	assert.IsErr(t, errors.ErrInput, badID.Validate())
}

func TestRevealCapsuleMsgValidate(t *testing.T) {
	valid := &RevealCapsuleMsg{
		CapsuleID: make([]byte, idLength),
		Salt:      []byte("pepper"),
		Payload:   []byte("secret"),
	}
	assert.Nil(t, valid.Validate())

	// salt is optional, the commitment formula allows an empty one
	noSalt := &RevealCapsuleMsg{
		CapsuleID: make([]byte, idLength),
		Payload:   []byte("secret"),
	}
	assert.Nil(t, noSalt.Validate())

	noPayload := &RevealCapsuleMsg{CapsuleID: make([]byte, idLength)}
	assert.IsErr(t, errors.ErrEmpty, noPayload.Validate())

	badID := &RevealCapsuleMsg{CapsuleID: nil, Payload: []byte("x")}
	assert.IsErr(t, errors.ErrInput, badID.Validate())
}

func TestMessagePaths(t *testing.T) {
	assert.Equal(t, "capsule/create", CreateCapsuleMsg{}.Path())
	assert.Equal(t, "capsule/cancel", CancelCapsuleMsg{}.Path())
	assert.Equal(t, "capsule/extend", ExtendCapsuleMsg{}.Path())
	assert.Equal(t, "capsule/reveal", RevealCapsuleMsg{}.Path())
}
