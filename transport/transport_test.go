package transport

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func okDoer(onReq func(*http.Request)) DoerFunc {
	return func(r *http.Request) (*http.Response, error) {
		if onReq != nil {
			onReq(r)
		}
		rec := httptest.NewRecorder()
		rec.WriteHeader(http.StatusOK)
		return rec.Result(), nil
	}
}

func TestChain_Order(t *testing.T) {
	var order []string
	mw := func(name string) Middleware {
		return func(next DoerFunc) DoerFunc {
			return func(r *http.Request) (*http.Response, error) {
				order = append(order, name)
				return next(r)
			}
		}
	}

	doer := Chain(okDoer(nil), mw("first"), nil, mw("second"))
	req := httptest.NewRequest(http.MethodGet, "http://example.com/", nil)
	if _, err := doer.Do(req); err != nil {
		t.Fatalf("Do: %v", err)
	}

	if len(order) != 2 || order[0] != "first" || order[1] != "second" {
		t.Errorf("middleware order = %v", order)
	}
}

func TestResolveBaseURL(t *testing.T) {
	tests := []struct {
		name     string
		base     string
		reqURL   string
		expected string
	}{
		{
			name:     "relative path is prefixed",
			base:     "https://api.example.com",
			reqURL:   "/todos/1",
			expected: "https://api.example.com/todos/1",
		},
		{
			name:     "trailing base slash is trimmed",
			base:     "https://api.example.com/",
			reqURL:   "/todos",
			expected: "https://api.example.com/todos",
		},
		{
			name:     "absolute URL passes through",
			base:     "https://api.example.com",
			reqURL:   "https://other.example.com/x",
			expected: "https://other.example.com/x",
		},
		{
			name:     "query string survives",
			base:     "https://api.example.com",
			reqURL:   "/todos?page=2",
			expected: "https://api.example.com/todos?page=2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got string
			doer := Chain(okDoer(func(r *http.Request) {
				got = r.URL.String()
			}), ResolveBaseURL(tt.base))

			req, err := http.NewRequest(http.MethodGet, tt.reqURL, nil)
			if err != nil {
				t.Fatalf("NewRequest: %v", err)
			}
			if _, err := doer.Do(req); err != nil {
				t.Fatalf("Do: %v", err)
			}
			if got != tt.expected {
				t.Errorf("dispatched URL = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestBearerAuth_AttachesToken(t *testing.T) {
	var got string
	doer := Chain(okDoer(func(r *http.Request) {
		got = r.Header.Get("Authorization")
	}), BearerAuth(func(context.Context) (string, error) {
		return "tok-123", nil
	}, AuthLenient))

	req := httptest.NewRequest(http.MethodGet, "http://example.com/", nil)
	if _, err := doer.Do(req); err != nil {
		t.Fatalf("Do: %v", err)
	}
	if got != "Bearer tok-123" {
		t.Errorf("Authorization = %q", got)
	}
}

func TestBearerAuth_EmptyTokenNoHeader(t *testing.T) {
	var present bool
	doer := Chain(okDoer(func(r *http.Request) {
		_, present = r.Header["Authorization"]
	}), BearerAuth(func(context.Context) (string, error) {
		return "", nil
	}, AuthLenient))

	req := httptest.NewRequest(http.MethodGet, "http://example.com/", nil)
	if _, err := doer.Do(req); err != nil {
		t.Fatalf("Do: %v", err)
	}
	if present {
		t.Error("empty token must not attach an Authorization header")
	}
}

func TestBearerAuth_LenientSwallowsFailure(t *testing.T) {
	var dispatched bool
	var present bool
	doer := Chain(okDoer(func(r *http.Request) {
		dispatched = true
		_, present = r.Header["Authorization"]
	}), BearerAuth(func(context.Context) (string, error) {
		return "", errors.New("keyring locked")
	}, AuthLenient))

	req := httptest.NewRequest(http.MethodGet, "http://example.com/", nil)
	if _, err := doer.Do(req); err != nil {
		t.Fatalf("lenient mode must not fail the call: %v", err)
	}
	if !dispatched {
		t.Error("request should still dispatch")
	}
	if present {
		t.Error("no Authorization header should be attached")
	}
}

func TestBearerAuth_StrictFailsRequest(t *testing.T) {
	var dispatched bool
	doer := Chain(okDoer(func(r *http.Request) {
		dispatched = true
	}), BearerAuth(func(context.Context) (string, error) {
		return "", errors.New("keyring locked")
	}, AuthStrict))

	req := httptest.NewRequest(http.MethodGet, "http://example.com/", nil)
	if _, err := doer.Do(req); err == nil {
		t.Fatal("strict mode must surface the supplier failure")
	}
	if dispatched {
		t.Error("request must not dispatch in strict mode")
	}
}
