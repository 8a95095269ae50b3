package httpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// Response is the declarative success decoder of a route. Zero value
// means no decoding: the raw *http.Response (body fully read and
// rewound) is the call result, which requires O to be *http.Response.
type Response[O any] struct {
	kind fieldKind
	fn   func(ctx context.Context, resp *http.Response) (O, error)
	err  error
}

// ResponseJSON declares a schema-decoded response: the body is parsed
// as JSON into O and checked against O's validate struct tags. A
// mismatch surfaces as a DecodeError distinct from transport errors.
func ResponseJSON[O any]() Response[O] {
	return Response[O]{kind: kindStatic, fn: func(_ context.Context, resp *http.Response) (O, error) {
		var out O
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return out, fmt.Errorf("read response body: %w", err)
		}
		if err := json.Unmarshal(body, &out); err != nil {
			return out, fmt.Errorf("unexpected API response format (JSON decode failed): %w", err)
		}
		if err := validateValue(out); err != nil {
			return out, fmt.Errorf("response validation: %w", err)
		}
		return out, nil
	}}
}

// ResponseFunc declares a custom decoder. The function receives the
// raw response (body readable, already buffered in memory) and decides
// independently how to read it. Its failure surfaces as a DecodeError.
func ResponseFunc[O any](fn func(ctx context.Context, resp *http.Response) (O, error)) Response[O] {
	return Response[O]{kind: kindDynamic, fn: fn}
}

// decode produces the call result from a success response.
func (r Response[O]) decode(ctx context.Context, resp *http.Response) (O, error) {
	if r.kind == kindNone {
		var out O
		if raw, ok := any(resp).(O); ok {
			return raw, nil
		}
		return out, fmt.Errorf("route has no response spec; result type must be *http.Response, not %T", out)
	}
	return r.fn(ctx, resp)
}

// ErrorDecoder is the declarative failure decoder of a route, invoked
// only when the transport classifies the response as a failure
// (non-2xx). Zero value propagates the generic *HTTPError.
type ErrorDecoder struct {
	kind fieldKind
	// fn returns the decoded domain error, or a decode failure when
	// the response does not match the error spec.
	fn func(ctx context.Context, resp *http.Response) (error, error)
}

// ErrorJSON declares a schema-decoded error: the failure body is
// parsed as JSON into E, checked against E's validate tags, and
// surfaced as *APIError[E] instead of the generic transport error.
func ErrorJSON[E any]() ErrorDecoder {
	return ErrorDecoder{kind: kindStatic, fn: func(_ context.Context, resp *http.Response) (error, error) {
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("read error response body: %w", err)
		}
		var detail E
		if err := json.Unmarshal(body, &detail); err != nil {
			return nil, fmt.Errorf("error response format (JSON decode failed): %w", err)
		}
		if err := validateValue(detail); err != nil {
			return nil, fmt.Errorf("error response validation: %w", err)
		}
		return &APIError[E]{StatusCode: resp.StatusCode, Detail: detail}, nil
	}}
}

// ErrorFunc declares a custom failure decoder producing the domain
// error directly.
func ErrorFunc(fn func(ctx context.Context, resp *http.Response) (error, error)) ErrorDecoder {
	return ErrorDecoder{kind: kindDynamic, fn: fn}
}

func (d ErrorDecoder) isZero() bool { return d.kind == kindNone }
