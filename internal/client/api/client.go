// Package api is a small client for the FocusKeeper REST API. Failures are
// reported as *StatusError values that match ErrUnauthorized, ErrNotFound and
// the other sentinels with errors.Is.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/focuskeeper/internal/common"
)

// Focus is a node as returned by the server. Children is only filled for the
// node that was requested.
type Focus struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	ParentFocusID *string `json:"parent_focus_id"`
	Children      []Focus `json:"child_focuses,omitempty"`
}

type Client struct {
	baseURL string
	http    *http.Client
}

// New returns a client for the server at baseURL.
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

// Register creates an account and returns its session token.
func (c *Client) Register(ctx context.Context, username, password string) (string, error) {
	var out tokenResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/register", "", credentials{username, password}, &out); err != nil {
		return "", err
	}
	return out.Token, nil
}

// Authenticate logs in and returns a fresh session token.
func (c *Client) Authenticate(ctx context.Context, username, password string) (string, error) {
	var out tokenResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/authenticate", "", credentials{username, password}, &out); err != nil {
		return "", err
	}
	return out.Token, nil
}

func (c *Client) GetRoot(ctx context.Context, token string) (*Focus, error) {
	var out struct {
		RootFocus Focus `json:"root_focus"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/focus/root", token, nil, &out); err != nil {
		return nil, err
	}
	return &out.RootFocus, nil
}

func (c *Client) Get(ctx context.Context, token, id string) (*Focus, error) {
	var out struct {
		Focus Focus `json:"focus"`
	}
	path := "/api/focus?" + url.Values{"id": {id}}.Encode()
	if err := c.do(ctx, http.MethodGet, path, token, nil, &out); err != nil {
		return nil, err
	}
	return &out.Focus, nil
}

func (c *Client) Create(ctx context.Context, token, name, parentFocusID string) (*Focus, error) {
	body := struct {
		Name          string `json:"name"`
		ParentFocusID string `json:"parent_focus_id"`
	}{name, parentFocusID}

	var out struct {
		Focus Focus `json:"focus"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/focus", token, body, &out); err != nil {
		return nil, err
	}
	return &out.Focus, nil
}

// Ping checks /healthz.
func (c *Client) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/healthz", "", nil, nil)
}

func (c *Client) do(ctx context.Context, method, path, token string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return decodeError(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func decodeError(resp *http.Response) error {
	se := &StatusError{Status: resp.StatusCode}

	var body struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil {
		se.Code, se.Message = body.Code, body.Message
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		se.kind = ErrUnauthorized
	case resp.StatusCode == http.StatusNotFound:
		se.kind = ErrNotFound
	case resp.StatusCode == http.StatusNotImplemented:
		se.kind = ErrNotImplemented
	case resp.StatusCode == http.StatusServiceUnavailable:
		se.kind = ErrUnavailable
	case resp.StatusCode < http.StatusInternalServerError:
		se.kind = ErrBadRequest
	}
	return se
}
