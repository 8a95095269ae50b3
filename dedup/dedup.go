// Package dedup wraps routekit endpoints as named, deduplicatable
// request values.
//
// A Request pairs an endpoint with its call parameters under a tag;
// its identity is the tag plus the JSON serialization of the
// parameters. A Group collapses concurrent identical requests into a
// single upstream call via singleflight, and can additionally serve
// repeated requests from a TTL store (in-process or Redis) within a
// caching window. Failures are never cached.
package dedup

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/salmonumbrella/routekit/httpapi"
)

// Request is a named request value: an endpoint plus the parameters of
// one call. Params must be JSON-serializable, since the serialization
// is the request identity.
type Request[P, O any] struct {
	Tag      string
	Params   P
	Endpoint *httpapi.Endpoint[P, O]
}

// Key returns the deduplication identity of the request.
func (r Request[P, O]) Key() (string, error) {
	params, err := json.Marshal(r.Params)
	if err != nil {
		return "", fmt.Errorf("serialize request params: %w", err)
	}
	return r.Tag + "\x00" + string(params), nil
}

// Group deduplicates requests. The zero value collapses concurrent
// identical requests only; set Store and TTL to also cache successful
// results across calls. Cached results round-trip through JSON, so
// caching suits schema-decoded outputs, not raw *http.Response routes.
type Group struct {
	flight singleflight.Group

	// Store, when set, caches successful results.
	Store Store

	// TTL bounds cached entries. Zero means DefaultTTL.
	TTL time.Duration
}

// Do performs the request through the group. Concurrent calls with the
// same key share one upstream call and its outcome; the upstream call
// runs under the context of whichever caller started it.
func Do[P, O any](ctx context.Context, g *Group, req Request[P, O]) (O, error) {
	var zero O

	key, err := req.Key()
	if err != nil {
		return zero, err
	}

	if g.Store != nil {
		if data, ok := g.Store.Get(ctx, key); ok {
			var out O
			if err := json.Unmarshal(data, &out); err == nil {
				return out, nil
			}
			// Corrupt entry: fall through to a live call.
		}
	}

	v, err, _ := g.flight.Do(key, func() (any, error) {
		out, err := req.Endpoint.Call(ctx, req.Params)
		if err != nil {
			return nil, err
		}
		if g.Store != nil {
			if data, err := json.Marshal(out); err == nil {
				g.Store.Set(ctx, key, data, g.TTL)
			}
		}
		return out, nil
	})
	if err != nil {
		return zero, err
	}
	return v.(O), nil
}
