package config

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticToken(t *testing.T) {
	token, err := StaticToken("abc")(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "abc", token)
}

func TestEnvToken(t *testing.T) {
	t.Setenv("ROUTEKIT_TEST_TOKEN", "from-env")
	token, err := EnvToken("ROUTEKIT_TEST_TOKEN")(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "from-env", token)
}

func TestEnvToken_Unset(t *testing.T) {
	t.Setenv("ROUTEKIT_TEST_TOKEN", "")
	_, err := EnvToken("ROUTEKIT_TEST_TOKEN")(context.Background())
	assert.Error(t, err)
}

func TestConfigClient_RewritesAndAuthenticates(t *testing.T) {
	var gotPath, gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
	}))
	defer server.Close()

	cfg := Config{
		BaseURL:       server.URL,
		TokenSupplier: StaticToken("tok-1"),
	}
	doer := cfg.Client(nil)

	req, err := http.NewRequest(http.MethodGet, "/todos/1", nil)
	require.NoError(t, err)
	resp, err := doer.Do(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, "/todos/1", gotPath)
	assert.Equal(t, "Bearer tok-1", gotAuth)
}

func TestConfigClient_AbsoluteURLUnchanged(t *testing.T) {
	var hit bool
	other := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hit = true
	}))
	defer other.Close()

	cfg := Config{BaseURL: "https://api.example.invalid"}
	doer := cfg.Client(nil)

	req, err := http.NewRequest(http.MethodGet, other.URL+"/x", nil)
	require.NoError(t, err)
	resp, err := doer.Do(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.True(t, hit, "absolute URL should bypass the base URL entirely")
}

func TestConfigClient_EmptyConfigIsPassthrough(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
	}))
	defer server.Close()

	doer := Config{}.Client(nil)
	req, err := http.NewRequest(http.MethodGet, server.URL+"/x", nil)
	require.NoError(t, err)
	resp, err := doer.Do(req)
	require.NoError(t, err)
	_ = resp.Body.Close()
}
