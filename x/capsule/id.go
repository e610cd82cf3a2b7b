package capsule

import (
	"crypto/sha256"
	"encoding/binary"

	"github.com/iov-one/tempo"
	"github.com/iov-one/tempo/errors"
)

const (
	// commitmentLength is the width of a commitment digest.
	commitmentLength = sha256.Size

	// idLength is the width of a capsule identifier.
	idLength = sha256.Size

	// idTag is the domain separation tag for capsule identifier
	// derivation.
	idTag = "capsule/v1"
	// idRetryTag is used for the single rederivation allowed after a
	// collision with an existing record.
	idRetryTag = "capsule/v2"
)

// Commitment computes the digest a capsule creation commits to. This is
// the exact formula off-system tooling must use when preparing a
// commitment, otherwise the reveal will never match:
//
//   sha256(bigendian32(len(salt)) || salt || payload)
//
// The length prefix keeps (salt, payload) pairs with shifted boundaries
// from producing the same digest.
func Commitment(salt, payload []byte) []byte {
	h := sha256.New()
	var ln [4]byte
	binary.BigEndian.PutUint32(ln[:], uint32(len(salt)))
	h.Write(ln[:])
	h.Write(salt)
	h.Write(payload)
	return h.Sum(nil)
}

func validateCommitment(commit []byte) error {
	if len(commit) != commitmentLength {
		return errors.Wrapf(ErrInvalidCommitment, "commitment must be %d bytes", commitmentLength)
	}
	for _, b := range commit {
		if b != 0 {
			return nil
		}
	}
	return errors.Wrap(ErrInvalidCommitment, "zero commitment")
}

// capsuleID derives the identifier of a capsule from its causal inputs.
// Identifiers are unpredictable before creation (the nonce is private to
// the chain state) and unique per (creator, nonce) pair.
func capsuleID(tag, chainID string, msg *CreateCapsuleMsg, creator tempo.Address, nonce int64) []byte {
	h := sha256.New()
	h.Write([]byte(tag))
	h.Write([]byte(chainID))
	h.Write(creator)
	h.Write(msg.Beneficiary)
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], uint64(msg.UnlockAt))
	h.Write(buf[:])
	h.Write(msg.Commit)
	binary.BigEndian.PutUint64(buf[:], uint64(nonce))
	h.Write(buf[:])
	return h.Sum(nil)
}
