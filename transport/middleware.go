package transport

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/salmonumbrella/routekit/internal/debug"
)

// TokenSupplier returns an access token for the outgoing request. It
// may block (network, keyring, OS prompt); the request context bounds
// it. An empty token with a nil error means "no token available" and
// attaches no header.
type TokenSupplier func(ctx context.Context) (string, error)

// AuthMode controls how BearerAuth treats a failing TokenSupplier.
type AuthMode int

const (
	// AuthLenient dispatches the request without an Authorization
	// header when the supplier fails. This mirrors the upstream
	// policy: an expired keyring session should not take every
	// unauthenticated-capable endpoint down with it.
	AuthLenient AuthMode = iota

	// AuthStrict fails the request when the supplier fails.
	AuthStrict
)

// ResolveBaseURL returns a middleware that rewrites relative request
// URLs against base. Absolute URLs pass through untouched.
func ResolveBaseURL(base string) Middleware {
	base = strings.TrimRight(base, "/")
	return func(next DoerFunc) DoerFunc {
		return func(req *http.Request) (*http.Response, error) {
			if req.URL != nil && !req.URL.IsAbs() {
				target := req.URL.String()
				if !strings.HasPrefix(target, "/") {
					target = "/" + target
				}
				resolved, err := url.Parse(base + target)
				if err != nil {
					return nil, fmt.Errorf("resolve %q against base URL %q: %w", target, base, err)
				}
				req.URL = resolved
				req.Host = ""
			}
			return next(req)
		}
	}
}

// BearerAuth returns a middleware that fetches a token per request and
// attaches it as an Authorization: Bearer header. In AuthLenient mode a
// supplier failure is logged at debug level and the request proceeds
// without the header; in AuthStrict mode it fails the request.
func BearerAuth(supply TokenSupplier, mode AuthMode) Middleware {
	return func(next DoerFunc) DoerFunc {
		return func(req *http.Request) (*http.Response, error) {
			if supply == nil {
				return next(req)
			}
			token, err := supply(req.Context())
			if err != nil {
				if mode == AuthStrict {
					return nil, fmt.Errorf("fetch access token: %w", err)
				}
				if debug.IsEnabled(req.Context()) {
					slog.Debug("token supplier failed, dispatching without auth", "url", req.URL.String(), "error", err)
				}
				return next(req)
			}
			if token != "" {
				req.Header.Set("Authorization", "Bearer "+token)
			}
			return next(req)
		}
	}
}
