// Package api talks to the hosted prompt vault: a Supabase-style backend
// with token auth, REST data endpoints and a license activation RPC.
package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/promptdrive/pd/internal/config"
	"github.com/promptdrive/pd/internal/storage"
)

// Client handles communication with the backend. The session token lives in
// the key-value store and is read per request, so a token cleared elsewhere
// takes effect immediately.
type Client struct {
	baseURL    string
	anonKey    string
	store      storage.Storage
	httpClient *http.Client
}

// NewClient creates a new API client backed by the given session store.
func NewClient(cfg *config.Config, store storage.Storage) *Client {
	return &Client{
		baseURL: cfg.APIURL,
		anonKey: cfg.AnonKey,
		store:   store,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Token returns the stored session token or ErrUnauthorized if none exists.
func (c *Client) Token() (string, error) {
	token, err := c.store.Get(config.AccessTokenKey)
	if errors.Is(err, storage.ErrNotFound) {
		return "", ErrUnauthorized
	}
	if err != nil {
		return "", err
	}
	if token == "" {
		return "", ErrUnauthorized
	}
	return token, nil
}

// ClearToken drops the stored session token.
func (c *Client) ClearToken() error {
	return c.store.Remove(config.AccessTokenKey)
}

func (c *Client) storeToken(token string) error {
	return c.store.Set(config.AccessTokenKey, token)
}

// do sends one request with auth headers and returns status plus body.
// Data endpoints get the Prefer header so mutated rows come back in the body.
func (c *Client) do(method, url, token string, payload any, prefer bool) (int, []byte, error) {
	var body io.Reader
	if payload != nil {
		jsonData, err := json.Marshal(payload)
		if err != nil {
			return 0, nil, fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequest(method, url, body)
	if err != nil {
		return 0, nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", c.anonKey)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if prefer {
		req.Header.Set("Prefer", "return=representation")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: %v", ErrRequest, err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("read response: %w", err)
	}

	return resp.StatusCode, data, nil
}

// checkStatus maps non-2xx data responses onto the error taxonomy.
func checkStatus(status int, body []byte) error {
	switch {
	case status >= 200 && status < 300:
		return nil
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return ErrUnauthorized
	case status == http.StatusConflict:
		return ErrConflict
	default:
		message := string(body)
		var parsed struct {
			Message string `json:"message"`
		}
		if err := json.Unmarshal(body, &parsed); err == nil && parsed.Message != "" {
			message = parsed.Message
		}
		return &StatusError{Code: status, Message: message}
	}
}

// firstRow decodes an array-wrapped PostgREST response into dst.
func firstRow(body []byte, dst any) error {
	var rows []json.RawMessage
	if err := json.Unmarshal(body, &rows); err != nil {
		return fmt.Errorf("unmarshal response: %w", err)
	}
	if len(rows) == 0 {
		return ErrInvalidResponse
	}
	if err := json.Unmarshal(rows[0], dst); err != nil {
		return fmt.Errorf("unmarshal response: %w", err)
	}
	return nil
}
