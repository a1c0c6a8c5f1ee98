package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

const defaultTimeout = 30 * time.Second

// TokenProvider supplies the bearer token for outgoing requests. An empty
// string means the request goes out unauthenticated.
type TokenProvider interface {
	Token() string
}

// Client talks to the project-management REST API. It attaches the bearer
// token from its TokenProvider on every request and normalizes failures into
// the error types in errors.go. It imposes no retries: a request either
// completes or fails once and the caller decides what to do.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenProvider
}

// NewClient creates a client for the API rooted at baseURL (including the
// /api prefix). tokens may be nil for a client that never authenticates.
func NewClient(baseURL string, tokens TokenProvider) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
		tokens:     tokens,
	}
}

// SetHTTPClient replaces the underlying HTTP client. Used by tests and by
// callers that need custom timeouts.
func (c *Client) SetHTTPClient(hc *http.Client) { c.httpClient = hc }

// errorPayload is the backend's error body. Validation failures come back as
// an errors array; everything else as a bare message.
type errorPayload struct {
	Message string `json:"message"`
	Errors  []struct {
		Msg string `json:"msg"`
	} `json:"errors"`
}

// Do performs one request and returns the raw response body on success.
// Transport failures become *NetworkError, non-2xx responses *ServerError.
func (c *Client) Do(ctx context.Context, method, path string, body any) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}

	respBody, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return nil, &NetworkError{Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &ServerError{
			Status:  resp.StatusCode,
			Message: serverMessage(respBody),
		}
	}

	return respBody, nil
}

// serverMessage extracts the human-readable message from an error body.
// Validation errors are joined; an unparseable body falls back to a generic
// message rather than leaking raw HTML or truncated JSON to the UI.
func serverMessage(body []byte) string {
	var payload errorPayload
	if json.Unmarshal(body, &payload) == nil {
		if payload.Message != "" {
			return payload.Message
		}
		if len(payload.Errors) > 0 {
			msgs := make([]string, 0, len(payload.Errors))
			for _, e := range payload.Errors {
				if e.Msg != "" {
					msgs = append(msgs, e.Msg)
				}
			}
			if len(msgs) > 0 {
				return strings.Join(msgs, ", ")
			}
		}
	}
	return "request failed"
}

// unwrapData returns the payload under a top-level "data" key when present,
// otherwise the body itself. The backend wraps most, but not all, successful
// responses this way.
func unwrapData(body []byte) []byte {
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if json.Unmarshal(body, &envelope) == nil && len(envelope.Data) > 0 && string(envelope.Data) != "null" {
		return envelope.Data
	}
	return body
}

func (c *Client) request(ctx context.Context, method, path string, body, out any) error {
	respBody, err := c.Do(ctx, method, path, body)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(unwrapData(respBody), out); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidServerResponse, err)
	}
	return nil
}

// Get fetches path and decodes the (unwrapped) response into out.
func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.request(ctx, http.MethodGet, path, nil, out)
}

// Post sends body to path and decodes the response into out when non-nil.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.request(ctx, http.MethodPost, path, body, out)
}

// Put sends body to path and decodes the response into out when non-nil.
func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.request(ctx, http.MethodPut, path, body, out)
}

// Patch sends body to path and decodes the response into out when non-nil.
func (c *Client) Patch(ctx context.Context, path string, body, out any) error {
	return c.request(ctx, http.MethodPatch, path, body, out)
}

// Delete issues a DELETE. The backend's member-removal endpoint takes a
// request body, so body is allowed here unlike in most REST clients.
func (c *Client) Delete(ctx context.Context, path string, body any) error {
	return c.request(ctx, http.MethodDelete, path, body, nil)
}
