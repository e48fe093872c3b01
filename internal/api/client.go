// Package api talks to the remote sweet shop HTTP API. The Client issues
// authenticated requests and normalizes failures; the service types wrap it
// with one method per endpoint.
package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"sweetshop/internal/logger"
)

// TokenSource yields the current bearer token, or "" when signed out.
type TokenSource interface {
	Token() string
}

// APIError is a failed HTTP exchange: a non-2xx status plus a human-readable
// message, preferring the server-supplied detail over the caller's fallback.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string { return e.Message }

// errorBody is the error payload shape of the remote API.
type errorBody struct {
	Detail string `json:"detail"`
}

// Client issues requests against the API base URL.
type Client struct {
	httpClient *http.Client
	baseURL    string
	tokens     TokenSource
	log        *logger.Logger
}

// NewClient creates an API client rooted at baseURL. tokens supplies the
// bearer token for each request.
func NewClient(baseURL string, tokens TokenSource, log *logger.Logger) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: time.Second * 10,
		},
		baseURL: baseURL,
		tokens:  tokens,
		log:     log,
	}
}

// do performs one exchange. body (if non-nil) is sent as JSON; the response
// body is decoded into out (if non-nil). On any failure the returned error
// carries fallback or the server's detail message.
func (c *Client) do(method, path string, query url.Values, body, out interface{}, fallback string) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: %w", fallback, err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, u, reader)
	if err != nil {
		return fmt.Errorf("%s: %w", fallback, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token := c.tokens.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Warn().Str("method", method).Str("path", path).Err(err).Msg("request failed")
		return fmt.Errorf("%s: %w", fallback, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := fallback
		var eb errorBody
		if err := json.NewDecoder(resp.Body).Decode(&eb); err == nil && eb.Detail != "" {
			msg = eb.Detail
		}
		c.log.Warn().Str("method", method).Str("path", path).Int("status", resp.StatusCode).Msg(msg)
		return &APIError{StatusCode: resp.StatusCode, Message: msg}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s: %w", fallback, err)
	}
	return nil
}

// StatusOf returns the HTTP status behind err, or 0 for transport and
// decode failures.
func StatusOf(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}
