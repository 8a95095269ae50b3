package httpapi

import (
	"net/http"
	"time"

	"github.com/salmonumbrella/routekit/transport"
)

const DefaultTimeout = 30 * time.Second

// Client carries the shared state of a family of endpoints: the
// transport to dispatch on and per-client defaults merged into every
// route built against it. Construct once, share freely; all fields are
// read-only after construction.
type Client struct {
	doer transport.Doer

	// DefaultHeaders are merged under every route's headers; route
	// headers win key-for-key.
	defaultHeaders map[string]string

	// DefaultError decodes failures for routes that declare no error
	// spec of their own.
	defaultError ErrorDecoder

	userAgent string
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithDefaultHeaders sets headers attached to every request unless
// overridden by the route.
func WithDefaultHeaders(h map[string]string) ClientOption {
	return func(c *Client) { c.defaultHeaders = h }
}

// WithDefaultError sets the failure decoder for routes without one.
func WithDefaultError(d ErrorDecoder) ClientOption {
	return func(c *Client) { c.defaultError = d }
}

// WithUserAgent sets the User-Agent header for every request.
func WithUserAgent(ua string) ClientOption {
	return func(c *Client) { c.userAgent = ua }
}

// NewClient creates a client over the given transport. A nil doer
// falls back to a plain *http.Client with the default timeout; pass a
// transport.Chain (or config.Config.Client) to get base-URL resolution
// and bearer auth.
func NewClient(doer transport.Doer, opts ...ClientOption) *Client {
	if doer == nil {
		doer = &http.Client{Timeout: DefaultTimeout}
	}
	c := &Client{doer: doer}
	for _, opt := range opts {
		opt(c)
	}
	return c
}
