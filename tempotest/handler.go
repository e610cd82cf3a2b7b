package tempotest

import (
	"github.com/iov-one/tempo"
)

// Handler implements a mock of the tempo.Handler interface. It counts
// the calls and returns configured results.
type Handler struct {
	checkCall   int
	deliverCall int

	// CheckResult is returned by the Check method.
	CheckResult tempo.CheckResult
	// CheckErr if set is returned by the Check method.
	CheckErr error

	// DeliverResult is returned by the Deliver method.
	DeliverResult tempo.DeliverResult
	// DeliverErr if set is returned by the Deliver method.
	DeliverErr error
}

var _ tempo.Handler = (*Handler)(nil)

func (h *Handler) Check(ctx tempo.Context, db tempo.KVStore, tx tempo.Tx) (*tempo.CheckResult, error) {
	h.checkCall++
	if h.CheckErr != nil {
		return nil, h.CheckErr
	}
	res := h.CheckResult
	return &res, nil
}

func (h *Handler) Deliver(ctx tempo.Context, db tempo.KVStore, tx tempo.Tx) (*tempo.DeliverResult, error) {
	h.deliverCall++
	if h.DeliverErr != nil {
		return nil, h.DeliverErr
	}
	res := h.DeliverResult
	return &res, nil
}

// CheckCallCount returns the number of times the Check method was called.
func (h *Handler) CheckCallCount() int {
	return h.checkCall
}

// DeliverCallCount returns the number of times the Deliver method was
// called.
func (h *Handler) DeliverCallCount() int {
	return h.deliverCall
}

// CallCount returns the total number of method calls.
func (h *Handler) CallCount() int {
	return h.checkCall + h.deliverCall
}
