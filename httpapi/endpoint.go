package httpapi

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/salmonumbrella/routekit/internal/debug"
)

// Endpoint is a compiled route: one callable performing the request
// described by its Spec. Safe for concurrent use.
type Endpoint[P, O any] struct {
	client *Client
	spec   Spec[P, O]
}

// NewEndpoint compiles a Spec against a client. Spec shape errors
// (missing method or URL, body on a bodiless method, invalid jq
// expression) are reported here, once, rather than on every call.
func NewEndpoint[P, O any](c *Client, spec Spec[P, O]) (*Endpoint[P, O], error) {
	if c == nil {
		return nil, errors.New("httpapi: nil client")
	}
	if spec.Method == "" {
		return nil, errors.New("httpapi: route has no method")
	}
	if spec.URL.kind == kindNone {
		return nil, errors.New("httpapi: route has no URL")
	}
	if !spec.Body.isZero() && !methodAllowsBody(spec.Method) {
		return nil, fmt.Errorf("httpapi: %s route declares a body", spec.Method)
	}
	if spec.Response.err != nil {
		return nil, spec.Response.err
	}
	return &Endpoint[P, O]{client: c, spec: spec}, nil
}

// MustEndpoint is NewEndpoint for package-level route variables; it
// panics on a malformed spec.
func MustEndpoint[P, O any](c *Client, spec Spec[P, O]) *Endpoint[P, O] {
	e, err := NewEndpoint(c, spec)
	if err != nil {
		panic(err)
	}
	return e
}

// Call performs one request. Resolution runs in a fixed order, each
// suspension awaited before the next: URL, headers, body, dispatch,
// then success or failure decoding. Every failure mode comes back
// through the error return; there is no out-of-band channel.
func (e *Endpoint[P, O]) Call(ctx context.Context, p P) (O, error) {
	var zero O

	reqURL := e.spec.URL.resolve(p)

	headers, err := e.spec.Headers.resolve(ctx, e.client.defaultHeaders, p)
	if err != nil {
		return zero, fmt.Errorf("resolve headers: %w", err)
	}

	var bodyReader io.Reader
	var contentType string
	if methodAllowsBody(e.spec.Method) {
		payload, hasBody, err := e.spec.Body.encode(ctx, p)
		if err != nil {
			return zero, err
		}
		if hasBody {
			bodyReader = bytes.NewReader(payload.Data)
			contentType = payload.ContentType
		}
	}

	req, err := http.NewRequestWithContext(ctx, e.spec.Method, reqURL, bodyReader)
	if err != nil {
		return zero, fmt.Errorf("failed to create request: %w", err)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if req.Header.Get("Accept") == "" {
		req.Header.Set("Accept", "application/json")
	}
	if e.client.userAgent != "" {
		req.Header.Set("User-Agent", e.client.userAgent)
	}

	start := time.Now()
	resp, err := e.client.doer.Do(req)
	if err != nil {
		if debug.IsEnabled(ctx) {
			slog.Debug("request failed", "method", e.spec.Method, "url", reqURL, "error", err)
		}
		return zero, fmt.Errorf("request failed: %w", err)
	}

	// Read the body once and rewind it so every decoder variant (and
	// the raw-response result) sees a readable, already-closed body.
	respBody, err := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if err != nil {
		return zero, fmt.Errorf("failed to read response: %w", err)
	}
	resp.Body = io.NopCloser(bytes.NewReader(respBody))

	if debug.IsEnabled(ctx) {
		slog.Debug("request complete", "method", e.spec.Method, "url", req.URL.String(), "status", resp.StatusCode, "duration", time.Since(start))
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		out, err := e.spec.Response.decode(ctx, resp)
		if err != nil {
			return zero, asDecodeError(err)
		}
		return out, nil
	}

	return zero, e.decodeFailure(ctx, resp, respBody)
}

// decodeFailure turns a non-2xx response into the call's error: the
// route's error spec if present, else the client default, else the
// generic HTTPError.
func (e *Endpoint[P, O]) decodeFailure(ctx context.Context, resp *http.Response, respBody []byte) error {
	decoder := e.spec.Error
	if decoder.isZero() {
		decoder = e.client.defaultError
	}
	if decoder.isZero() {
		return &HTTPError{
			StatusCode: resp.StatusCode,
			Body:       summarizeErrorBody(respBody),
			RequestID:  requestIDFromHeader(resp.Header),
		}
	}

	domainErr, err := decoder.fn(ctx, resp)
	if err != nil {
		return asDecodeError(fmt.Errorf("status %d: %w", resp.StatusCode, err))
	}
	if domainErr == nil {
		return &HTTPError{
			StatusCode: resp.StatusCode,
			Body:       summarizeErrorBody(respBody),
			RequestID:  requestIDFromHeader(resp.Header),
		}
	}
	return domainErr
}

func asDecodeError(err error) error {
	var de *DecodeError
	if errors.As(err, &de) {
		return err
	}
	return &DecodeError{Err: err}
}
