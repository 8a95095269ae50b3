// Package transport provides the HTTP execution substrate for routekit
// endpoints: a minimal client interface, function adapters, and a
// middleware chain used to attach process-wide request rewriting such
// as base-URL resolution and bearer authentication.
//
// The package deliberately defines no retry, timeout, or redirect
// policy. Those belong to the *http.Client supplied as the base Doer.
package transport

import "net/http"

// Doer performs HTTP requests. *http.Client satisfies it.
type Doer interface {
	Do(*http.Request) (*http.Response, error)
}

// DoerFunc adapts a function to the Doer interface, in the manner of
// http.HandlerFunc.
type DoerFunc func(*http.Request) (*http.Response, error)

// Do implements Doer.
func (f DoerFunc) Do(r *http.Request) (*http.Response, error) {
	return f(r)
}

// Middleware wraps a DoerFunc with additional request processing.
type Middleware func(next DoerFunc) DoerFunc

// Chain wraps base with the given middlewares. The first middleware in
// the slice is the outermost: it sees the request first and the
// response last. Nil middlewares are skipped.
func Chain(base Doer, mws ...Middleware) Doer {
	chain := base.Do
	for i := len(mws) - 1; i >= 0; i-- {
		if mws[i] == nil {
			continue
		}
		chain = mws[i](DoerFunc(chain))
	}
	return DoerFunc(chain)
}
