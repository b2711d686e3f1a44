package app

import (
	"fmt"
	"regexp"

	"github.com/safeharbor/harbor"
	"github.com/safeharbor/harbor/errors"
)

// isPath is the RegExp to ensure a valid message path: an extension name
// and an action, both lowercase.
var isPath = regexp.MustCompile(`^[a-z0-9_]+/[a-z0-9_]+$`).MatchString

// Router allows us to register many handlers with different paths and
// then direct each message to the proper handler.
//
// Minimal interface modeled after net/http.ServeMux
type Router struct {
	routes map[string]harbor.Handler
}

var _ harbor.Registry = (*Router)(nil)
var _ harbor.Handler = (*Router)(nil)

// NewRouter returns a new empty router instance.
func NewRouter() *Router {
	return &Router{
		routes: make(map[string]harbor.Handler, 16),
	}
}

// Handle adds a new Handler for the given path. This function panics if a
// handler for given path is already registered.
func (r *Router) Handle(path string, h harbor.Handler) {
	if !isPath(path) {
		panic(fmt.Sprintf("invalid path: %q", path))
	}
	if _, ok := r.routes[path]; ok {
		panic(fmt.Sprintf("re-registering route: %s", path))
	}
	r.routes[path] = h
}

// handler returns the registered Handler for this path. If no path is
// found, returns a noSuchPath Handler. This function always returns a
// non-nil value.
func (r *Router) handler(path string) harbor.Handler {
	if h, ok := r.routes[path]; ok {
		return h
	}
	return notFoundHandler(path)
}

// Check dispatches to the proper handler based on path.
func (r *Router) Check(ctx harbor.Context, store harbor.KVStore, tx harbor.Tx) (*harbor.CheckResult, error) {
	return r.handler(harbor.GetPath(tx)).Check(ctx, store, tx)
}

// Deliver dispatches to the proper handler based on path.
func (r *Router) Deliver(ctx harbor.Context, store harbor.KVStore, tx harbor.Tx) (*harbor.DeliverResult, error) {
	return r.handler(harbor.GetPath(tx)).Deliver(ctx, store, tx)
}

// notFoundHandler always returns ErrNotFound error regardless of the
// arguments provided.
type notFoundHandler string

func (path notFoundHandler) Check(harbor.Context, harbor.KVStore, harbor.Tx) (*harbor.CheckResult, error) {
	return nil, errors.Wrapf(errors.ErrNotFound, "no handler for message path %q", string(path))
}

func (path notFoundHandler) Deliver(harbor.Context, harbor.KVStore, harbor.Tx) (*harbor.DeliverResult, error) {
	return nil, errors.Wrapf(errors.ErrNotFound, "no handler for message path %q", string(path))
}
