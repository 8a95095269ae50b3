// Package config holds the process-wide configuration injected into
// the routekit transport: the base URL every relative route resolves
// against and an optional access-token supplier.
//
// A Config is constructed once at application wiring time and read on
// every outgoing request; no field is mutated after construction.
package config

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/salmonumbrella/routekit/transport"
)

const DefaultTimeout = 30 * time.Second

// Config is the process-wide request-rewriting configuration.
type Config struct {
	// BaseURL prefixes relative route URLs (leading slash). Absolute
	// route URLs bypass it.
	BaseURL string

	// TokenSupplier, when set, is invoked per request to attach an
	// Authorization: Bearer header.
	TokenSupplier transport.TokenSupplier

	// StrictAuth fails the request when the token supplier fails.
	// Default (false) preserves the original silent-degrade policy:
	// the request dispatches without the header.
	StrictAuth bool
}

// Client wraps base with the configured middlewares. A nil base falls
// back to a plain *http.Client with the default timeout.
func (c Config) Client(base transport.Doer) transport.Doer {
	if base == nil {
		base = &http.Client{Timeout: DefaultTimeout}
	}
	var mws []transport.Middleware
	if c.BaseURL != "" {
		mws = append(mws, transport.ResolveBaseURL(c.BaseURL))
	}
	if c.TokenSupplier != nil {
		mode := transport.AuthLenient
		if c.StrictAuth {
			mode = transport.AuthStrict
		}
		mws = append(mws, transport.BearerAuth(c.TokenSupplier, mode))
	}
	return transport.Chain(base, mws...)
}

// StaticToken supplies a fixed token.
func StaticToken(token string) transport.TokenSupplier {
	return func(context.Context) (string, error) {
		return token, nil
	}
}

// EnvToken supplies the token from an environment variable, read per
// request. An unset or blank variable is an error.
func EnvToken(name string) transport.TokenSupplier {
	return func(context.Context) (string, error) {
		token := os.Getenv(name)
		if token == "" {
			return "", fmt.Errorf("environment variable %s is not set", name)
		}
		return token, nil
	}
}

// ErrNoToken is returned by suppliers that have no token configured.
var ErrNoToken = errors.New("no access token configured")
