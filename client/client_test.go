package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.Handler, opts ...Option) *Client[string, string, string, string] {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := NewStringClient(srv.URL, opts...)
	require.NoError(t, err)
	return c
}

// === New ===

func TestNew_AppendsAPIVersionSegment(t *testing.T) {
	c, err := NewStringClient("http://localhost:8080")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/api/v1", c.BaseURL())
}

func TestNew_TrailingSlash(t *testing.T) {
	c, err := NewStringClient("http://localhost:8080/")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/api/v1", c.BaseURL())
}

func TestNew_BasePathPreserved(t *testing.T) {
	c, err := NewStringClient("https://host.example/access")
	require.NoError(t, err)
	assert.Equal(t, "https://host.example/access/api/v1", c.BaseURL())
}

func TestNew_InvalidBaseURL(t *testing.T) {
	tests := []struct {
		name    string
		baseURL string
	}{
		{name: "empty", baseURL: ""},
		{name: "whitespace", baseURL: "   "},
		{name: "unsupported scheme", baseURL: "ftp://host"},
		{name: "no scheme", baseURL: "host:8080/path"},
		{name: "missing host", baseURL: "http://"},
		{name: "query", baseURL: "http://host?x=1"},
		{name: "fragment", baseURL: "http://host#frag"},
		{name: "unparsable", baseURL: "http://host\x7f"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewStringClient(tt.baseURL)
			assert.Error(t, err)
		})
	}
}

// === URL composition ===

func TestRequestPath_PercentEncodesIdentifierSegments(t *testing.T) {
	var gotEscapedPath string
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotEscapedPath = r.URL.EscapedPath()
		w.WriteHeader(http.StatusOK)
	}))

	_, err := c.ContainsUser(context.Background(), "a b/c")
	require.NoError(t, err)

	assert.Equal(t, "/api/v1/users/a%20b%2Fc", gotEscapedPath)
}

func TestRequestPath_EncodedValueRecoverable(t *testing.T) {
	var gotUser string
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// The server-side decoded path must yield the original identifier.
		gotUser = r.URL.Path[len("/api/v1/users/"):]
		w.WriteHeader(http.StatusOK)
	}))

	_, err := c.ContainsUser(context.Background(), "a b/c")
	require.NoError(t, err)
	assert.Equal(t, "a b/c", gotUser)
}

func TestRequestPath_CompositeEdgePath(t *testing.T) {
	var gotEscapedPath string
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotEscapedPath = r.URL.EscapedPath()
		w.WriteHeader(http.StatusCreated)
	}))

	err := c.AddUserToGroupMapping(context.Background(), "alice", "dev ops")
	require.NoError(t, err)

	assert.Equal(t, "/api/v1/userToGroupMappings/user/alice/group/dev%20ops", gotEscapedPath)
}

// === Headers ===

func TestRequestHeaders_ConfiguredHeadersSent(t *testing.T) {
	var gotAuth, gotAccept string
	headers := http.Header{}
	headers.Set("Authorization", "Bearer token-123")

	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotAccept = r.Header.Get("Accept")
		w.WriteHeader(http.StatusOK)
	}), WithHeaders(headers))

	_, err := c.ContainsUser(context.Background(), "alice")
	require.NoError(t, err)

	assert.Equal(t, "Bearer token-123", gotAuth)
	assert.Equal(t, "application/json", gotAccept)
}
