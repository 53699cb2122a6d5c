// Package users holds the thin client for the collaborating users
// microservice.  The gateway already authenticated the caller; this client
// only answers "is this account still active", so venues cannot be mutated
// on behalf of a soft-deactivated user.
package users

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// Sentinel errors the identity middleware translates into HTTP statuses.
var (
	// ErrDeactivated means the account exists but has been deactivated (403).
	ErrDeactivated = errors.New("account deactivated")
	// ErrUnreachable means the users-ms could not be reached (503).
	ErrUnreachable = errors.New("users service unreachable")
	// ErrUnexpectedStatus means the users-ms answered with something other
	// than 200 (502).
	ErrUnexpectedStatus = errors.New("users service returned unexpected status")
)

// Client calls the users microservice over HTTP.
type Client struct {
	base string
	http *http.Client
}

// New builds a Client for the given base URL.  An empty base URL yields nil,
// which callers treat as "lookup disabled".
func New(baseURL string) *Client {
	if baseURL == "" {
		return nil
	}
	return &Client{
		base: baseURL,
		http: &http.Client{Timeout: 5 * time.Second},
	}
}

// CheckActive verifies the user exists and is active.  The users-ms trusts
// this service (same mesh behind the gateway), so no credentials are sent.
func (c *Client) CheckActive(ctx context.Context, id uuid.UUID) error {
	url := fmt.Sprintf("%s/users/%s/get", c.base, id)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}
	var body struct {
		IsActive bool `json:"is_active"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return fmt.Errorf("%w: %v", ErrUnexpectedStatus, err)
	}
	if !body.IsActive {
		return ErrDeactivated
	}
	return nil
}
