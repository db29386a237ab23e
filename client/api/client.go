// Package api wraps every request the apps make: auth token injection,
// one-shot retry on connection failure, 401 session teardown, and
// server-message extraction for everything else.
package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"
)

// HeaderSessionToken carries the table session token on customer requests
const HeaderSessionToken = "X-Session-Token"

// User-facing messages, matching the apps' locale
const (
	MsgSessionExpired = "세션이 만료되었습니다"
	MsgServerError    = "서버 오류가 발생했습니다"
	MsgNetworkError   = "네트워크 연결을 확인해주세요"
)

var (
	// ErrSessionExpired is returned on any 401 after local auth state is torn down
	ErrSessionExpired = errors.New(MsgSessionExpired)
	// ErrNetwork is returned when a request and its single retry both fail to connect
	ErrNetwork = errors.New(MsgNetworkError)
)

// Error carries a server-provided failure through to the caller
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string { return e.Message }

// TokenSource supplies the auth header for outbound requests. The customer
// session store sends X-Session-Token; the admin store a Bearer token.
type TokenSource interface {
	AuthHeader() (name, value string, ok bool)
}

type Client struct {
	baseURL        string
	httpClient     *http.Client
	tokens         TokenSource
	onUnauthorized func()
	retryDelay     time.Duration
}

func New(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		retryDelay: time.Second,
	}
}

// SetTokenSource registers the store that supplies the auth header
func (c *Client) SetTokenSource(ts TokenSource) { c.tokens = ts }

// OnUnauthorized registers the hook run on any 401 response, before the
// request fails with ErrSessionExpired. This is where auth state gets cleared
// and navigation to the login route happens.
func (c *Client) OnUnauthorized(fn func()) { c.onUnauthorized = fn }

// SetHTTPClient swaps the underlying transport. Used in tests.
func (c *Client) SetHTTPClient(hc *http.Client) { c.httpClient = hc }

// SetRetryDelay overrides the fixed delay before the single connection retry
func (c *Client) SetRetryDelay(d time.Duration) { c.retryDelay = d }

func (c *Client) Get(path string, out interface{}) error {
	return c.request(http.MethodGet, path, nil, out)
}

func (c *Client) Post(path string, body, out interface{}) error {
	return c.request(http.MethodPost, path, body, out)
}

func (c *Client) Put(path string, body, out interface{}) error {
	return c.request(http.MethodPut, path, body, out)
}

func (c *Client) Delete(path string, out interface{}) error {
	return c.request(http.MethodDelete, path, nil, out)
}

func (c *Client) request(method, path string, body, out interface{}) error {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return err
		}
	}
	return c.do(method, path, payload, out, false)
}

// errorBody covers both message field conventions the backend has used
type errorBody struct {
	Message string `json:"message"`
	Detail  string `json:"detail"`
	Err     string `json:"error"`
}

func (c *Client) do(method, path string, payload []byte, out interface{}, retried bool) error {
	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}
	req, err := http.NewRequest(method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.tokens != nil {
		if name, value, ok := c.tokens.AuthHeader(); ok {
			req.Header.Set(name, value)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// No response at all: retry the identical request exactly once
		if !retried {
			time.Sleep(c.retryDelay)
			return c.do(method, path, payload, out, true)
		}
		return ErrNetwork
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode == http.StatusUnauthorized {
		// Session is gone — tear down auth state and short-circuit
		if c.onUnauthorized != nil {
			c.onUnauthorized()
		}
		return ErrSessionExpired
	}
	if resp.StatusCode >= 400 {
		var eb errorBody
		_ = json.Unmarshal(data, &eb)
		msg := eb.Message
		if msg == "" {
			msg = eb.Detail
		}
		if msg == "" {
			msg = eb.Err
		}
		if msg == "" {
			msg = MsgServerError
		}
		return &Error{Status: resp.StatusCode, Message: msg}
	}

	if out != nil && len(data) > 0 {
		return json.Unmarshal(data, out)
	}
	return nil
}
