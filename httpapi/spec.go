// Package httpapi turns declarative route specifications into typed,
// callable endpoints over net/http.
//
// A Spec describes one REST endpoint: its method, URL shape, headers,
// request body encoding, response decoding, and error decoding. Each of
// those fields is one of exactly two shapes, a static value or a
// one-argument function, discriminated by which constructor built it.
// NewEndpoint compiles a Spec into an Endpoint whose Call method runs
// the fixed pipeline: resolve URL, resolve headers, encode body,
// dispatch, then decode the success or failure outcome.
//
//	var getTodos = httpapi.MustEndpoint(client, httpapi.Spec[httpapi.NoParams, []Todo]{
//		Method:   http.MethodGet,
//		URL:      httpapi.Path[httpapi.NoParams]("/todos"),
//		Response: httpapi.ResponseJSON[[]Todo](),
//	})
//
//	todos, err := getTodos.Call(ctx, httpapi.NoParams{})
package httpapi

import (
	"context"
	"net/http"
)

type fieldKind uint8

const (
	kindNone fieldKind = iota
	kindStatic
	kindDynamic
)

// Spec declares one HTTP route. URL and Method are required; the other
// fields are optional. Zero-value fields mean: no extra headers, no
// body, raw *http.Response result, generic HTTPError on failure.
type Spec[P, O any] struct {
	Method   string
	URL      URL[P]
	Headers  Headers[P]
	Body     Body[P]
	Response Response[O]
	Error    ErrorDecoder
}

// NoParams is the parameter type for routes that take no call-time
// input.
type NoParams struct{}

// URL is the declarative URL of a route: a literal path or a function
// of the call parameters.
type URL[P any] struct {
	kind    fieldKind
	literal string
	fn      func(P) string
}

// Path declares a fixed URL. Relative paths (leading slash) are
// resolved against the transport's base URL at dispatch time; absolute
// URLs are dispatched unchanged.
func Path[P any](s string) URL[P] {
	return URL[P]{kind: kindStatic, literal: s}
}

// PathFunc declares a URL computed from the call parameters. The
// function result is used verbatim: escaping and encoding are the
// function author's responsibility.
func PathFunc[P any](fn func(P) string) URL[P] {
	return URL[P]{kind: kindDynamic, fn: fn}
}

func (u URL[P]) resolve(p P) string {
	if u.kind == kindDynamic {
		return u.fn(p)
	}
	return u.literal
}

// Headers is the declarative header set of a route: a fixed map or a
// function of the call parameters. The dynamic variant may suspend on
// the context and may fail.
type Headers[P any] struct {
	kind   fieldKind
	static map[string]string
	fn     func(ctx context.Context, p P) (map[string]string, error)
}

// HeaderMap declares a fixed header set.
func HeaderMap[P any](h map[string]string) Headers[P] {
	return Headers[P]{kind: kindStatic, static: h}
}

// HeaderFunc declares headers computed per call.
func HeaderFunc[P any](fn func(ctx context.Context, p P) (map[string]string, error)) Headers[P] {
	return Headers[P]{kind: kindDynamic, fn: fn}
}

// resolve produces the header set for one call, merged over the client
// defaults. Merge is right-biased per key: the route's headers beat the
// defaults.
func (h Headers[P]) resolve(ctx context.Context, defaults map[string]string, p P) (map[string]string, error) {
	var own map[string]string
	switch h.kind {
	case kindStatic:
		own = h.static
	case kindDynamic:
		resolved, err := h.fn(ctx, p)
		if err != nil {
			return nil, err
		}
		own = resolved
	}
	return mergeHeaders(defaults, own), nil
}

func mergeHeaders(defaults, overrides map[string]string) map[string]string {
	if len(defaults) == 0 && len(overrides) == 0 {
		return nil
	}
	merged := make(map[string]string, len(defaults)+len(overrides))
	for k, v := range defaults {
		merged[k] = v
	}
	for k, v := range overrides {
		merged[k] = v
	}
	return merged
}

// methodAllowsBody reports whether a request body may be declared for
// the method. GET, HEAD, and DELETE routes never invoke the body
// encoder.
func methodAllowsBody(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodDelete:
		return false
	}
	return true
}
