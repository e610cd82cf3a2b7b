package capsule

import "github.com/iov-one/tempo/errors"

var (
	// ErrInvalidCommitment is returned when a commitment digest is empty,
	// all zero or of the wrong width.
	ErrInvalidCommitment = errors.Register(1100, "invalid commitment")

	// ErrInvalidSchedule is returned when the unlock time is not strictly
	// in the future at creation.
	ErrInvalidSchedule = errors.Register(1101, "invalid schedule")

	// ErrIDCollision is returned when capsule identifier derivation
	// collided twice with existing records. With a sound digest function
	// this is unreachable.
	ErrIDCollision = errors.Register(1102, "identifier collision")

	// ErrNotCreator is returned when a transaction signed by someone else
	// than the creator attempts to cancel or extend a capsule.
	ErrNotCreator = errors.Register(1103, "not the creator")

	// ErrAlreadyRevealed is returned on any transition attempt against a
	// revealed capsule.
	ErrAlreadyRevealed = errors.Register(1104, "already revealed")

	// ErrAlreadyCanceled is returned on any transition attempt against a
	// canceled capsule.
	ErrAlreadyCanceled = errors.Register(1105, "already canceled")

	// ErrWindowClosed is returned when cancel or extend is attempted at or
	// after the unlock time.
	ErrWindowClosed = errors.Register(1106, "modification window closed")

	// ErrMustExtendForward is returned when an extension does not move the
	// unlock time strictly forward.
	ErrMustExtendForward = errors.Register(1107, "must extend forward")

	// ErrTooEarly is returned when reveal is attempted before the unlock
	// time.
	ErrTooEarly = errors.Register(1108, "too early")

	// ErrCommitMismatch is returned when the revealed pre-image does not
	// hash to the stored commitment.
	ErrCommitMismatch = errors.Register(1109, "commitment mismatch")
)
