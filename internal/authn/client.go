package authn

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/danhigham/contestdash/internal/domain"
)

// Client calls the remote authorization endpoint.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a Client for the server at baseURL. A zero timeout leaves
// the request unbounded; the caller's context is the only way to abandon it.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

var errEmptyBody = errors.New("decode auth response: empty body")

// Fetch performs GET /api/auth for the given identifier.
func (c *Client) Fetch(ctx context.Context, identifier string) (*domain.AuthResult, error) {
	endpoint := c.baseURL + "/api/auth?" + url.Values{IdentifierParam: {identifier}}.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build auth request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("auth request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status: %s", resp.Status)
	}

	var result *domain.AuthResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode auth response: %w", err)
	}
	if result == nil {
		return nil, errEmptyBody
	}
	return result, nil
}
