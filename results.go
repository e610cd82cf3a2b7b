package tempo

// CheckResult captures any non-error, abstract data returned from the
// preliminary validation of a transaction.
type CheckResult struct {
	// GasAllocated is the gas the transaction is expected to cost on
	// delivery.
	GasAllocated int64

	// Log contains a short human readable summary.
	Log string
}

// DeliverResult captures any non-error data and side effect notifications
// returned from executing a transaction.
type DeliverResult struct {
	// Data is the binary result of the operation, for example the
	// identifier of a newly created record.
	Data []byte

	// Log contains a short human readable summary.
	Log string

	// Tags are the append-only, ordered notifications emitted by the
	// operation for external indexers and UIs. They are not queryable
	// state.
	Tags []KVPair
}

// KVPair is a single key-value notification entry.
type KVPair struct {
	Key   []byte
	Value []byte
}

// Pair is a helper to build a KVPair.
func Pair(key string, value []byte) KVPair {
	return KVPair{Key: []byte(key), Value: value}
}
