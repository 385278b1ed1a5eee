package authn

import (
	"fmt"
	"net/url"
	"strings"
)

// IdentifierParam is the query parameter carrying the session identifier.
const IdentifierParam = "tg_id"

// IdentifierFromURL extracts the session identifier from a dashboard URL.
// The value is opaque; only its presence is checked.
func IdentifierFromURL(raw string) (string, bool) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", false
	}
	id := u.Query().Get(IdentifierParam)
	if id == "" {
		return "", false
	}
	return id, true
}

// WithIdentifier returns raw with the session identifier query parameter set.
func WithIdentifier(raw, id string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", fmt.Errorf("parse dashboard url: %w", err)
	}
	q := u.Query()
	q.Set(IdentifierParam, id)
	u.RawQuery = q.Encode()
	return u.String(), nil
}
