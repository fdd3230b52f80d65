package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return New(srv.URL+"/", time.Second)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestRegisterAndAuthenticate(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		if body["password"] != "pw" {
			writeJSON(w, http.StatusUnauthorized, map[string]any{"code": "unauthorized", "message": "authentication failed"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"token": r.URL.Path + ":" + body["username"]})
	})
	ctx := context.Background()

	tok, err := c.Register(ctx, "alice", "pw")
	require.NoError(t, err)
	assert.Equal(t, "/api/auth/register:alice", tok)

	tok, err = c.Authenticate(ctx, "alice", "pw")
	require.NoError(t, err)
	assert.Equal(t, "/api/auth/authenticate:alice", tok)

	_, err = c.Authenticate(ctx, "alice", "bad")
	require.ErrorIs(t, err, ErrUnauthorized)
	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "authentication failed", se.Message)
	assert.Equal(t, http.StatusUnauthorized, se.Status)
}

func TestFocusCalls(t *testing.T) {
	parent := "r1"
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/api/focus/root":
			writeJSON(w, http.StatusOK, map[string]any{"root_focus": Focus{ID: "r1", Name: "root", Children: []Focus{{ID: "c1", Name: "Work", ParentFocusID: &parent}}}})
		case r.Method == http.MethodGet && r.URL.Path == "/api/focus":
			if r.URL.Query().Get("id") != "c1" {
				writeJSON(w, http.StatusNotFound, map[string]any{"code": "not_found", "message": "focus not found"})
				return
			}
			writeJSON(w, http.StatusOK, map[string]any{"focus": Focus{ID: "c1", Name: "Work", ParentFocusID: &parent}})
		case r.Method == http.MethodPost && r.URL.Path == "/api/focus":
			var body map[string]string
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			writeJSON(w, http.StatusOK, map[string]any{"focus": Focus{ID: "n1", Name: body["name"], ParentFocusID: &parent}})
		default:
			w.WriteHeader(http.StatusTeapot)
		}
	})
	ctx := context.Background()

	root, err := c.GetRoot(ctx, "tok")
	require.NoError(t, err)
	assert.Equal(t, "root", root.Name)
	require.Len(t, root.Children, 1)
	assert.Equal(t, "Work", root.Children[0].Name)

	f, err := c.Get(ctx, "tok", "c1")
	require.NoError(t, err)
	assert.Equal(t, "r1", *f.ParentFocusID)

	_, err = c.Get(ctx, "tok", "zzz")
	assert.ErrorIs(t, err, ErrNotFound)

	created, err := c.Create(ctx, "tok", "Home", "r1")
	require.NoError(t, err)
	assert.Equal(t, "Home", created.Name)
}

func TestErrorMapping(t *testing.T) {
	tests := []struct {
		status int
		want   error
	}{
		{http.StatusBadRequest, ErrBadRequest},
		{http.StatusNotImplemented, ErrNotImplemented},
		{http.StatusServiceUnavailable, ErrUnavailable},
	}
	for _, tt := range tests {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tt.status)
		})
		err := c.Ping(context.Background())
		assert.ErrorIs(t, err, tt.want, "status %d", tt.status)
	}

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	err := c.Ping(context.Background())
	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Nil(t, se.Unwrap())
}

func TestUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	err := New(url, time.Second).Ping(context.Background())
	assert.ErrorIs(t, err, ErrUnavailable)
}
