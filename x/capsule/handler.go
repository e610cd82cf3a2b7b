package capsule

import (
	"bytes"

	"github.com/iov-one/tempo"
	"github.com/iov-one/tempo/errors"
	"github.com/iov-one/tempo/orm"
	"github.com/iov-one/tempo/x"
	"github.com/iov-one/tempo/x/payout"
)

const (
	// pay capsule operation gas cost up-front
	createCapsuleCost int64 = 300
	updateCapsuleCost int64 = 100
	revealCapsuleCost int64 = 200
)

// RegisterRoutes will instantiate and register all handlers in this
// package.
func RegisterRoutes(r tempo.Registry, auth x.Authenticator, ctrl payout.Controller, treasury payout.Treasury) {
	r.Handle(pathCreateCapsuleMsg, CreateCapsuleHandler{
		auth:     auth,
		bucket:   NewCapsuleBucket(),
		treasury: treasury,
	})
	r.Handle(pathCancelCapsuleMsg, CancelCapsuleHandler{
		auth:   auth,
		bucket: NewCapsuleBucket(),
		ctrl:   ctrl,
	})
	r.Handle(pathExtendCapsuleMsg, ExtendCapsuleHandler{
		auth:   auth,
		bucket: NewCapsuleBucket(),
	})
	r.Handle(pathRevealCapsuleMsg, RevealCapsuleHandler{
		auth:   auth,
		bucket: NewCapsuleBucket(),
		ctrl:   ctrl,
	})
}

// CreateCapsuleHandler creates a capsule record and takes custody of the
// deposit.
type CreateCapsuleHandler struct {
	auth     x.Authenticator
	bucket   orm.ModelBucket
	treasury payout.Treasury
}

var _ tempo.Handler = CreateCapsuleHandler{}

// Check verifies it is a valid creation and returns the gas cost.
func (h CreateCapsuleHandler) Check(ctx tempo.Context, db tempo.KVStore, tx tempo.Tx) (*tempo.CheckResult, error) {
	if _, _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &tempo.CheckResult{GasAllocated: createCapsuleCost}, nil
}

// Deliver derives the capsule identifier, collects the deposit and
// stores the new record.
func (h CreateCapsuleHandler) Deliver(ctx tempo.Context, db tempo.KVStore, tx tempo.Tx) (*tempo.DeliverResult, error) {
	msg, creator, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}

	id, err := h.deriveID(ctx, db, msg, creator)
	if err != nil {
		return nil, err
	}

	deposit := msg.Deposit.Clone()
	if deposit != nil {
		if err := h.treasury.Collect(creator, *deposit); err != nil {
			return nil, errors.Wrap(err, "cannot collect deposit")
		}
	}

	c := &Capsule{
		Creator:     creator,
		Beneficiary: msg.Beneficiary,
		UnlockAt:    msg.UnlockAt,
		Deposit:     deposit,
		Commit:      msg.Commit,
		State:       StateActive,
	}
	if _, err := h.bucket.Put(db, id, c); err != nil {
		return nil, err
	}

	tag, err := eventTag(createdTagKey, CreatedEvent{
		CapsuleID:   id,
		Creator:     c.Creator,
		Beneficiary: c.Beneficiary,
		UnlockAt:    c.UnlockAt,
		Commit:      c.Commit,
		Deposit:     c.Deposit,
	})
	if err != nil {
		return nil, err
	}
	return &tempo.DeliverResult{
		Data: id,
		Log:  "capsule created",
		Tags: []tempo.KVPair{tag},
	}, nil
}

// deriveID produces a fresh capsule identifier, incrementing the
// creator's nonce. On a collision with an existing record it retries
// exactly once with a fresh nonce and a secondary domain tag, then
// fails fatally.
func (h CreateCapsuleHandler) deriveID(ctx tempo.Context, db tempo.KVStore, msg *CreateCapsuleMsg, creator tempo.Address) ([]byte, error) {
	chainID := tempo.GetChainID(ctx)
	nonce := creatorNonce(creator)

	for _, tag := range []string{idTag, idRetryTag} {
		n, err := nonce.NextInt(db)
		if err != nil {
			return nil, errors.Wrap(err, "cannot acquire nonce")
		}
		id := capsuleID(tag, chainID, msg, creator, n)
		switch err := h.bucket.Has(db, id); {
		case errors.ErrNotFound.Is(err):
			return id, nil
		case err != nil:
			return nil, err
		}
		// the id is taken, fall through to the bounded retry
	}
	return nil, errors.Wrap(ErrIDCollision, "rederivation exhausted")
}

func (h CreateCapsuleHandler) validate(ctx tempo.Context, tx tempo.Tx) (*CreateCapsuleMsg, tempo.Address, error) {
	var msg CreateCapsuleMsg
	if err := tempo.LoadMsg(tx, &msg); err != nil {
		return nil, nil, err
	}
	if !tempo.InTheFuture(ctx, msg.UnlockAt) {
		return nil, nil, errors.Wrap(ErrInvalidSchedule, "unlock time must be in the future")
	}

	creator := msg.Creator
	if creator == nil {
		signer := x.MainSigner(ctx, h.auth)
		if signer == nil {
			return nil, nil, errors.Wrap(errors.ErrUnauthorized, "no signer")
		}
		creator = signer.Address()
	}
	if !h.auth.HasAddress(ctx, creator) {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "creator signature missing")
	}
	return &msg, creator, nil
}

// creatorNonce is the strictly increasing counter diversifying
// identifier derivation, one per creator. Never reset.
func creatorNonce(creator tempo.Address) orm.Sequence {
	return orm.NewSequence("capsule", "nonce:"+creator.String())
}

// CancelCapsuleHandler withdraws an active commitment before the unlock
// time.
type CancelCapsuleHandler struct {
	auth   x.Authenticator
	bucket orm.ModelBucket
	ctrl   payout.Controller
}

var _ tempo.Handler = CancelCapsuleHandler{}

// Check verifies it is a valid cancellation and returns the gas cost.
func (h CancelCapsuleHandler) Check(ctx tempo.Context, db tempo.KVStore, tx tempo.Tx) (*tempo.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &tempo.CheckResult{GasAllocated: updateCapsuleCost}, nil
}

// Deliver moves the capsule to the canceled state and credits the
// deposit back to the creator.
func (h CancelCapsuleHandler) Deliver(ctx tempo.Context, db tempo.KVStore, tx tempo.Tx) (*tempo.DeliverResult, error) {
	msg, c, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}

	released := c.Deposit
	c.State = StateCanceled
	c.Deposit = nil
	if released != nil {
		if err := h.ctrl.Credit(db, c.Creator, *released); err != nil {
			return nil, errors.Wrap(err, "cannot credit creator")
		}
	}
	if _, err := h.bucket.Put(db, msg.CapsuleID, c); err != nil {
		return nil, err
	}

	tag, err := eventTag(canceledTagKey, CanceledEvent{
		CapsuleID: msg.CapsuleID,
		Creator:   c.Creator,
		Deposit:   released,
	})
	if err != nil {
		return nil, err
	}
	return &tempo.DeliverResult{
		Log:  "capsule canceled",
		Tags: []tempo.KVPair{tag},
	}, nil
}

func (h CancelCapsuleHandler) validate(ctx tempo.Context, db tempo.KVStore, tx tempo.Tx) (*CancelCapsuleMsg, *Capsule, error) {
	var msg CancelCapsuleMsg
	if err := tempo.LoadMsg(tx, &msg); err != nil {
		return nil, nil, err
	}
	c, err := loadMutable(ctx, db, h.bucket, h.auth, msg.CapsuleID)
	if err != nil {
		return nil, nil, err
	}
	return &msg, c, nil
}

// ExtendCapsuleHandler pushes the unlock time of an active capsule
// forward.
type ExtendCapsuleHandler struct {
	auth   x.Authenticator
	bucket orm.ModelBucket
}

var _ tempo.Handler = ExtendCapsuleHandler{}

// Check verifies it is a valid extension and returns the gas cost.
func (h ExtendCapsuleHandler) Check(ctx tempo.Context, db tempo.KVStore, tx tempo.Tx) (*tempo.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &tempo.CheckResult{GasAllocated: updateCapsuleCost}, nil
}

// Deliver updates the unlock time.
func (h ExtendCapsuleHandler) Deliver(ctx tempo.Context, db tempo.KVStore, tx tempo.Tx) (*tempo.DeliverResult, error) {
	msg, c, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}

	old := c.UnlockAt
	c.UnlockAt = msg.UnlockAt
	if _, err := h.bucket.Put(db, msg.CapsuleID, c); err != nil {
		return nil, err
	}

	tag, err := eventTag(extendedTagKey, ExtendedEvent{
		CapsuleID: msg.CapsuleID,
		OldUnlock: old,
		NewUnlock: c.UnlockAt,
	})
	if err != nil {
		return nil, err
	}
	return &tempo.DeliverResult{
		Log:  "capsule unlock extended",
		Tags: []tempo.KVPair{tag},
	}, nil
}

func (h ExtendCapsuleHandler) validate(ctx tempo.Context, db tempo.KVStore, tx tempo.Tx) (*ExtendCapsuleMsg, *Capsule, error) {
	var msg ExtendCapsuleMsg
	if err := tempo.LoadMsg(tx, &msg); err != nil {
		return nil, nil, err
	}
	c, err := loadMutable(ctx, db, h.bucket, h.auth, msg.CapsuleID)
	if err != nil {
		return nil, nil, err
	}
	if msg.UnlockAt <= c.UnlockAt {
		return nil, nil, errors.Wrapf(ErrMustExtendForward, "unlock time %s", msg.UnlockAt)
	}
	return &msg, c, nil
}

// loadMutable loads a capsule for a creator-only, pre-unlock mutation
// (cancel or extend) and enforces the shared guards.
func loadMutable(ctx tempo.Context, db tempo.ReadOnlyKVStore, bucket orm.ModelBucket, auth x.Authenticator, id []byte) (*Capsule, error) {
	var c Capsule
	if err := bucket.One(db, id, &c); err != nil {
		return nil, err
	}
	if err := c.Terminated(); err != nil {
		return nil, err
	}
	if !auth.HasAddress(ctx, c.Creator) {
		return nil, errors.Wrap(ErrNotCreator, "creator signature missing")
	}
	if tempo.IsExpired(ctx, c.UnlockAt) {
		return nil, errors.Wrap(ErrWindowClosed, "unlock time reached")
	}
	return &c, nil
}

// RevealCapsuleHandler publishes a commitment pre-image and releases the
// deposit.
type RevealCapsuleHandler struct {
	auth   x.Authenticator
	bucket orm.ModelBucket
	ctrl   payout.Controller
}

var _ tempo.Handler = RevealCapsuleHandler{}

// Check verifies it is a valid reveal and returns the gas cost.
func (h RevealCapsuleHandler) Check(ctx tempo.Context, db tempo.KVStore, tx tempo.Tx) (*tempo.CheckResult, error) {
	if _, _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &tempo.CheckResult{GasAllocated: revealCapsuleCost}, nil
}

// Deliver moves the capsule to the revealed state and credits the payout
// receiver.
func (h RevealCapsuleHandler) Deliver(ctx tempo.Context, db tempo.KVStore, tx tempo.Tx) (*tempo.DeliverResult, error) {
	msg, c, revealer, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}

	receiver := c.PayoutReceiver()
	released := c.Deposit
	c.State = StateRevealed
	c.Deposit = nil
	if released != nil {
		if err := h.ctrl.Credit(db, receiver, *released); err != nil {
			return nil, errors.Wrap(err, "cannot credit receiver")
		}
	}
	if _, err := h.bucket.Put(db, msg.CapsuleID, c); err != nil {
		return nil, err
	}

	tag, err := eventTag(revealedTagKey, RevealedEvent{
		CapsuleID: msg.CapsuleID,
		Revealer:  revealer,
		Commit:    c.Commit,
		Payload:   msg.Payload,
		Receiver:  receiver,
		Deposit:   released,
	})
	if err != nil {
		return nil, err
	}
	return &tempo.DeliverResult{
		Log:  "capsule revealed",
		Tags: []tempo.KVPair{tag},
	}, nil
}

func (h RevealCapsuleHandler) validate(ctx tempo.Context, db tempo.KVStore, tx tempo.Tx) (*RevealCapsuleMsg, *Capsule, tempo.Address, error) {
	var msg RevealCapsuleMsg
	if err := tempo.LoadMsg(tx, &msg); err != nil {
		return nil, nil, nil, err
	}
	var c Capsule
	if err := h.bucket.One(db, msg.CapsuleID, &c); err != nil {
		return nil, nil, nil, err
	}
	if err := c.Terminated(); err != nil {
		return nil, nil, nil, err
	}
	if tempo.InTheFuture(ctx, c.UnlockAt) {
		return nil, nil, nil, errors.Wrapf(ErrTooEarly, "unlock at %s", c.UnlockAt)
	}

	// The creator may always reveal. The beneficiary may reveal only
	// when one is set, an unset beneficiary keeps reveal creator-only.
	var revealer tempo.Address
	switch {
	case h.auth.HasAddress(ctx, c.Creator):
		revealer = c.Creator
	case c.Beneficiary != nil && h.auth.HasAddress(ctx, c.Beneficiary):
		revealer = c.Beneficiary
	default:
		return nil, nil, nil, errors.Wrap(errors.ErrUnauthorized, "neither creator nor beneficiary")
	}

	if !bytes.Equal(Commitment(msg.Salt, msg.Payload), c.Commit) {
		return nil, nil, nil, ErrCommitMismatch
	}
	return &msg, &c, revealer, nil
}
