// Package backend is the HTTP client for the TravelEase REST backend and the
// hotel service.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Agmahima/TravelEase/internal/models"
)

type Config struct {
	BaseURL string
	// HotelBaseURL defaults to BaseURL.
	HotelBaseURL string
	Timeout      time.Duration
}

func DefaultConfig() Config {
	return Config{
		BaseURL: "http://localhost:5000",
		Timeout: 30 * time.Second,
	}
}

type Client struct {
	baseURL      string
	hotelBaseURL string
	httpClient   *http.Client
	now          func() time.Time
}

func NewClient(cfg Config) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	base := strings.TrimRight(cfg.BaseURL, "/")
	hotelBase := strings.TrimRight(cfg.HotelBaseURL, "/")
	if hotelBase == "" {
		hotelBase = base
	}
	return &Client{
		baseURL:      base,
		hotelBaseURL: hotelBase,
		httpClient:   &http.Client{Timeout: cfg.Timeout},
		now:          time.Now,
	}
}

type request struct {
	method string
	base   string
	path   string
	query  url.Values
	body   any
	auth   AuthSession
	// requireAuth fails the call before sending when no usable token exists.
	requireAuth bool
}

func (c *Client) do(ctx context.Context, r request, out any) error {
	op := r.method + " " + r.path

	token := ""
	if r.auth != nil {
		token = r.auth.Token()
	}
	if token != "" && TokenExpired(token, c.now()) {
		r.auth.Clear()
		return &models.AuthenticationError{Message: "session expired, please log in again"}
	}
	if r.requireAuth && token == "" {
		return &models.AuthenticationError{Message: "no authentication token"}
	}

	base := r.base
	if base == "" {
		base = c.baseURL
	}
	endpoint := base + r.path
	if len(r.query) > 0 {
		endpoint += "?" + r.query.Encode()
	}

	var body io.Reader
	if r.body != nil && r.method != http.MethodGet {
		data, err := json.Marshal(r.body)
		if err != nil {
			return fmt.Errorf("failed to encode %s body: %w", op, err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, r.method, endpoint, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &models.NetworkError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &models.NetworkError{Op: op, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return c.statusError(resp.StatusCode, data, r.auth)
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", op, err)
	}
	return nil
}

func (c *Client) statusError(status int, body []byte, auth AuthSession) error {
	msg := errorMessage(status, body)
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		if auth != nil {
			auth.Clear()
		}
		return &models.AuthenticationError{Message: msg}
	case status == http.StatusTooManyRequests || strings.Contains(strings.ToLower(msg), "rate limit"):
		return &models.RateLimitError{Message: msg}
	}
	return &models.APIError{StatusCode: status, Message: msg}
}

func errorMessage(status int, body []byte) string {
	var payload struct {
		Message string `json:"message"`
		Error   any    `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if payload.Message != "" {
			return payload.Message
		}
		if s, ok := payload.Error.(string); ok && s != "" {
			return s
		}
	}
	if text := strings.TrimSpace(string(body)); text != "" && len(text) < 512 {
		return text
	}
	return http.StatusText(status)
}

// unwrapData decodes either {"data": X} or a bare X into out.
func unwrapData(raw json.RawMessage, out any) error {
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(raw, &envelope); err == nil && len(envelope.Data) > 0 && !bytes.Equal(envelope.Data, []byte("null")) {
		raw = envelope.Data
	}
	return json.Unmarshal(raw, out)
}

// IsRetryable reports whether a failed call may succeed on a second attempt:
// transport failures and 5xx responses.
func IsRetryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var netErr *models.NetworkError
	if errors.As(err, &netErr) {
		return true
	}
	var apiErr *models.APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode >= 500
}
