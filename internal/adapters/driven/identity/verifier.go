// Package identity verifies bearer tokens against the external identity
// provider over HTTP.
package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/coastline-labs/anchor/internal/core/domain"
	"github.com/coastline-labs/anchor/internal/core/ports/driven"
)

// Ensure Verifier implements the interface.
var _ driven.IdentityVerifier = (*Verifier)(nil)

// DefaultTimeout is the default verification request timeout.
const DefaultTimeout = 10 * time.Second

// Config holds configuration for the identity verifier.
type Config struct {
	// BaseURL is the identity provider's API base URL (required).
	BaseURL string

	// Timeout is the request timeout (default: 10s).
	Timeout time.Duration
}

// Verifier checks bearer tokens by calling the provider's session
// endpoint with the token itself.
type Verifier struct {
	client  *http.Client
	baseURL string
}

// sessionResponse is the provider's session endpoint response format.
type sessionResponse struct {
	UserID    string `json:"user_id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	ImageURL  string `json:"image_url"`
}

// NewVerifier creates a new HTTP identity verifier.
func NewVerifier(cfg Config) (*Verifier, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("identity: base URL is required")
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	return &Verifier{
		client:  &http.Client{Timeout: cfg.Timeout},
		baseURL: cfg.BaseURL,
	}, nil
}

// Verify validates a bearer token and returns the identity it belongs
// to. Invalid or expired tokens return domain.ErrUnauthorized.
func (v *Verifier) Verify(ctx context.Context, token string) (*driven.Identity, error) {
	if token == "" {
		return nil, domain.ErrUnauthorized
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, v.baseURL+"/v1/me", http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("identity: create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := v.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("identity: send request: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, domain.ErrUnauthorized
	case resp.StatusCode != http.StatusOK:
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("identity: provider returned status %d: %s", resp.StatusCode, string(body))
	}

	var session sessionResponse
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		return nil, fmt.Errorf("identity: decode response: %w", err)
	}
	if session.UserID == "" {
		return nil, domain.ErrUnauthorized
	}

	return &driven.Identity{
		UserID:    session.UserID,
		Email:     session.Email,
		FirstName: session.FirstName,
		LastName:  session.LastName,
		ImageURL:  session.ImageURL,
	}, nil
}
