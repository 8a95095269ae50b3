package httpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/itchyny/gojq"
)

// ResponseJQ declares a response decoded through a jq expression: the
// body is parsed as JSON, the expression is run over it, and the
// result is decoded into O and checked against O's validate tags.
// A single expression result is decoded directly; multiple results are
// decoded as an array.
//
// An invalid expression is reported by NewEndpoint, not at call time.
func ResponseJQ[O any](expression string) Response[O] {
	query, err := gojq.Parse(expression)
	if err != nil {
		return Response[O]{err: fmt.Errorf("invalid jq expression %q: %w", expression, err)}
	}
	return Response[O]{kind: kindDynamic, fn: func(_ context.Context, resp *http.Response) (O, error) {
		var out O
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return out, fmt.Errorf("read response body: %w", err)
		}
		var data any
		if err := json.Unmarshal(body, &data); err != nil {
			return out, fmt.Errorf("unexpected API response format (JSON decode failed): %w", err)
		}
		result, err := runQuery(query, data)
		if err != nil {
			return out, err
		}
		raw, err := json.Marshal(result)
		if err != nil {
			return out, fmt.Errorf("re-encode jq result: %w", err)
		}
		if err := json.Unmarshal(raw, &out); err != nil {
			return out, fmt.Errorf("jq result does not match result type: %w", err)
		}
		if err := validateValue(out); err != nil {
			return out, fmt.Errorf("response validation: %w", err)
		}
		return out, nil
	}}
}

func runQuery(query *gojq.Query, data any) (any, error) {
	iter := query.Run(data)

	var results []any
	for {
		v, ok := iter.Next()
		if !ok {
			break
		}
		if err, ok := v.(error); ok {
			return nil, fmt.Errorf("jq: %w", err)
		}
		results = append(results, v)
	}

	switch len(results) {
	case 0:
		return nil, nil
	case 1:
		return results[0], nil
	default:
		return results, nil
	}
}
