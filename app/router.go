/*
Package app assembles handlers into a dispatching application core.

The Router maps message paths to their handlers. Decorators such as
Savepoint wrap the whole router to provide functionality shared by all
handlers.
*/
package app

import (
	"fmt"
	"regexp"

	"github.com/iov-one/tempo"
	"github.com/iov-one/tempo/errors"
)

// isPath ensures the routes make sense. Valid paths are lower-case
// alphanumeric with the extension separated by a slash, eg. capsule/create.
var isPath = regexp.MustCompile(`^[a-z0-9_]{3,20}/[a-z0-9_]{3,20}$`).MatchString

// Router allows us to register many handlers with different paths and
// then direct each message to the proper handler.
//
// Minimal interface modeled after net/http.ServeMux.
type Router struct {
	routes map[string]tempo.Handler
}

var _ tempo.Registry = (*Router)(nil)
var _ tempo.Handler = (*Router)(nil)

// NewRouter initializes a router with no routes.
func NewRouter() *Router {
	return &Router{
		routes: make(map[string]tempo.Handler),
	}
}

// Handle implements Registry interface. This adds a route to dispatch all
// messages with the given path to this handler. Unlike http routes, this
// is a strict match, no prefixes.
func (r *Router) Handle(path string, h tempo.Handler) {
	if !isPath(path) {
		panic(fmt.Sprintf("invalid path: %s", path))
	}
	if _, ok := r.routes[path]; ok {
		panic(fmt.Sprintf("re-registering route: %s", path))
	}
	r.routes[path] = h
}

// handler returns the registered Handler for this path, or a noSuchPath
// result if none is there.
func (r *Router) handler(tx tempo.Tx) tempo.Handler {
	path := tempo.GetPath(tx)
	if h, ok := r.routes[path]; ok {
		return h
	}
	return noSuchPathHandler{path}
}

// Check dispatches to the proper handler based on the message path.
func (r *Router) Check(ctx tempo.Context, store tempo.KVStore, tx tempo.Tx) (*tempo.CheckResult, error) {
	return r.handler(tx).Check(ctx, store, tx)
}

// Deliver dispatches to the proper handler based on the message path.
func (r *Router) Deliver(ctx tempo.Context, store tempo.KVStore, tx tempo.Tx) (*tempo.DeliverResult, error) {
	return r.handler(tx).Deliver(ctx, store, tx)
}

// noSuchPathHandler always returns ErrNotFound, for paths that cannot be
// handled.
type noSuchPathHandler struct {
	path string
}

var _ tempo.Handler = noSuchPathHandler{}

func (h noSuchPathHandler) Check(ctx tempo.Context, store tempo.KVStore, tx tempo.Tx) (*tempo.CheckResult, error) {
	return nil, errors.Wrapf(errors.ErrNotFound, "no handler for message path: %s", h.path)
}

func (h noSuchPathHandler) Deliver(ctx tempo.Context, store tempo.KVStore, tx tempo.Tx) (*tempo.DeliverResult, error) {
	return nil, errors.Wrapf(errors.ErrNotFound, "no handler for message path: %s", h.path)
}
