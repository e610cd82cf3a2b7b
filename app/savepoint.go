package app

import (
	"github.com/iov-one/tempo"
	"github.com/iov-one/tempo/errors"
)

// Savepoint will isolate all data inside of the call, and commit or
// rollback the cache depending on the result of calling the wrapped
// handler. An operation that returns an error leaves no trace in the
// store.
type Savepoint struct {
	onCheck   bool
	onDeliver bool
}

var _ tempo.Decorator = Savepoint{}

// NewSavepoint creates a Savepoint decorator. Without calling OnCheck or
// OnDeliver it is a no-op.
func NewSavepoint() Savepoint {
	return Savepoint{}
}

// OnCheck returns a savepoint that isolates all Check calls.
func (s Savepoint) OnCheck() Savepoint {
	return Savepoint{
		onCheck:   true,
		onDeliver: s.onDeliver,
	}
}

// OnDeliver returns a savepoint that isolates all Deliver calls.
func (s Savepoint) OnDeliver() Savepoint {
	return Savepoint{
		onCheck:   s.onCheck,
		onDeliver: true,
	}
}

// Check verifies the transaction against a cache wrap of the store,
// writing on success and discarding on error.
func (s Savepoint) Check(ctx tempo.Context, store tempo.KVStore, tx tempo.Tx, next tempo.Checker) (*tempo.CheckResult, error) {
	if !s.onCheck {
		return next.Check(ctx, store, tx)
	}
	cache, err := cacheWrap(store)
	if err != nil {
		return nil, err
	}

	res, err := next.Check(ctx, cache, tx)
	if err != nil {
		cache.Discard()
		return res, err
	}
	if err := cache.Write(); err != nil {
		return nil, err
	}
	return res, nil
}

// Deliver executes the transaction against a cache wrap of the store,
// writing on success and discarding on error.
func (s Savepoint) Deliver(ctx tempo.Context, store tempo.KVStore, tx tempo.Tx, next tempo.Deliverer) (*tempo.DeliverResult, error) {
	if !s.onDeliver {
		return next.Deliver(ctx, store, tx)
	}
	cache, err := cacheWrap(store)
	if err != nil {
		return nil, err
	}

	res, err := next.Deliver(ctx, cache, tx)
	if err != nil {
		cache.Discard()
		return res, err
	}
	if err := cache.Write(); err != nil {
		return nil, err
	}
	return res, nil
}

func cacheWrap(store tempo.KVStore) (tempo.KVCacheWrap, error) {
	cstore, ok := store.(tempo.CacheableKVStore)
	if !ok {
		return nil, errors.Wrap(errors.ErrHuman, "store cannot be cache wrapped")
	}
	return cstore.CacheWrap(), nil
}

// ChainDecorators wraps a handler with a series of decorators, the first
// decorator in the list being the outermost layer.
func ChainDecorators(h tempo.Handler, decorators ...tempo.Decorator) tempo.Handler {
	for i := len(decorators) - 1; i >= 0; i-- {
		h = decoratedHandler{
			d:    decorators[i],
			next: h,
		}
	}
	return h
}

type decoratedHandler struct {
	d    tempo.Decorator
	next tempo.Handler
}

var _ tempo.Handler = decoratedHandler{}

func (h decoratedHandler) Check(ctx tempo.Context, store tempo.KVStore, tx tempo.Tx) (*tempo.CheckResult, error) {
	return h.d.Check(ctx, store, tx, h.next)
}

func (h decoratedHandler) Deliver(ctx tempo.Context, store tempo.KVStore, tx tempo.Tx) (*tempo.DeliverResult, error) {
	return h.d.Deliver(ctx, store, tx, h.next)
}
