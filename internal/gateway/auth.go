package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Authenticate posts the credentials form-encoded to /token (OAuth2-style
// endpoint). Connection failures are retried up to the configured attempt
// count with a fixed pause between tries; every non-transport outcome is
// final on the first attempt.
func (c *Client) Authenticate(ctx context.Context, username, password string) (string, error) {
	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)

	var lastErr error
	for attempt := 0; attempt < c.loginRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return "", fmt.Errorf("%w: %v", ErrConnection, ctx.Err())
			case <-time.After(c.loginRetryWait):
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/token", strings.NewReader(form.Encode()))
		if err != nil {
			return "", fmt.Errorf("create request: %w", err)
		}
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		status, body, err := c.send(req)
		if err != nil {
			lastErr = err
			c.log.Warn("gateway", "connection error during login, retrying", map[string]interface{}{
				"attempt": attempt + 1,
				"error":   err.Error(),
			})
			continue
		}

		switch status {
		case http.StatusOK:
			var tok struct {
				AccessToken string `json:"access_token"`
			}
			if err := json.Unmarshal(body, &tok); err != nil || tok.AccessToken == "" {
				return "", c.unknown("login", status, body)
			}
			c.log.Info("gateway", "login successful", nil)
			return tok.AccessToken, nil
		case http.StatusBadRequest:
			return "", ErrInvalidCredentials
		case http.StatusNotFound:
			return "", ErrUserNotFound
		default:
			return "", c.unknown("login", status, body)
		}
	}

	c.log.Error("gateway", "could not connect to backend after retries", map[string]interface{}{
		"attempts": c.loginRetries,
	})
	if lastErr != nil && errors.Is(lastErr, ErrConnection) {
		return "", lastErr
	}
	return "", ErrConnection
}

// Register posts the new credentials as JSON. 400 means the username is
// already taken.
func (c *Client) Register(ctx context.Context, username, password string) error {
	payload := map[string]string{"username": username, "password": password}
	status, body, err := c.postJSON(ctx, "/register", "", payload)
	if err != nil {
		return err
	}
	switch status {
	case http.StatusOK:
		c.log.Info("gateway", "registration successful", nil)
		return nil
	case http.StatusBadRequest:
		return ErrUserExists
	default:
		return c.unknown("register", status, body)
	}
}
