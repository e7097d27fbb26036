package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/segmentio/ksuid"
)

// AuthContext holds the bearer token used against the upstream hiring API.
// The token is issued out-of-band; the client only carries it.
type AuthContext struct {
	mu    sync.RWMutex
	token string
}

func NewAuthContext(token string) *AuthContext {
	return &AuthContext{token: token}
}

func (a *AuthContext) Get() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.token
}

func (a *AuthContext) Set(token string) {
	a.mu.Lock()
	a.token = token
	a.mu.Unlock()
}

func (a *AuthContext) Clear() {
	a.Set("")
}

// Meta is the pagination metadata the upstream API returns alongside lists.
type Meta struct {
	CurrentPage int `json:"current_page"`
	LastPage    int `json:"last_page"`
	Total       int `json:"total"`
}

// Error is a non-2xx reply from the upstream API.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	return fmt.Sprintf("upstream api: status code %d: %s", e.StatusCode, e.Message)
}

func IsNotFound(err error) bool {
	apiErr, ok := errors.Cause(err).(*Error)
	return ok && apiErr.StatusCode == http.StatusNotFound
}

// IsValidation reports whether the upstream rejected the request payload
// (e.g. an invalid status transition).
func IsValidation(err error) bool {
	apiErr, ok := errors.Cause(err).(*Error)
	return ok && (apiErr.StatusCode == http.StatusBadRequest || apiErr.StatusCode == http.StatusUnprocessableEntity)
}

type Client struct {
	baseURL string
	auth    *AuthContext
	client  *http.Client
}

func NewClient(baseURL string, auth *AuthContext) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		auth:    auth,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *Client) Get(path string, query url.Values, out interface{}) error {
	return c.do(http.MethodGet, path, query, nil, out)
}

func (c *Client) Post(path string, in, out interface{}) error {
	return c.do(http.MethodPost, path, nil, in, out)
}

func (c *Client) Put(path string, in, out interface{}) error {
	return c.do(http.MethodPut, path, nil, in, out)
}

func (c *Client) Patch(path string, in, out interface{}) error {
	return c.do(http.MethodPatch, path, nil, in, out)
}

func (c *Client) Delete(path string) error {
	return c.do(http.MethodDelete, path, nil, nil, nil)
}

// do performs exactly one request. There is no retry anywhere in this
// client; every retry in the product is a distinct user action.
func (c *Client) do(method, path string, query url.Values, in, out interface{}) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}
	var body io.Reader
	if in != nil {
		reqData, err := json.Marshal(in)
		if err != nil {
			return errors.Wrapf(err, "unable to marshal request body for %s %s", method, path)
		}
		body = bytes.NewReader(reqData)
	}
	req, err := http.NewRequest(method, endpoint, body)
	if err != nil {
		return errors.Wrapf(err, "unable to build request for %s %s", method, path)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.auth.Get(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if k, err := ksuid.NewRandom(); err == nil {
		req.Header.Set("X-Request-ID", k.String())
	}
	res, err := c.client.Do(req)
	if err != nil {
		return errors.Wrapf(err, "request to %s %s failed", method, path)
	}
	defer res.Body.Close()
	if res.StatusCode >= http.StatusBadRequest {
		return &Error{StatusCode: res.StatusCode, Message: errorMessage(res.Body)}
	}
	if out == nil {
		return nil
	}
	// some mutation endpoints reply with an empty body, treat that as ok
	if err := json.NewDecoder(res.Body).Decode(out); err != nil && err != io.EOF {
		return errors.Wrapf(err, "unable to decode response of %s %s", method, path)
	}
	return nil
}

func errorMessage(body io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(body, 4096))
	if err != nil {
		return "unable to read error body"
	}
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(raw, &payload); err == nil {
		if payload.Message != "" {
			return payload.Message
		}
		if payload.Error != "" {
			return payload.Error
		}
	}
	return strings.TrimSpace(string(raw))
}
