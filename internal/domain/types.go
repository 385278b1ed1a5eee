package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// Role is the access level the auth endpoint assigns to a Telegram user.
type Role string

const (
	RoleCreator Role = "creator"
	RoleAdmin   Role = "admin"
	RoleUser    Role = "user"
)

// Privileged reports whether the role unlocks the admin panel.
func (r Role) Privileged() bool {
	return r == RoleCreator || r == RoleAdmin
}

// Known reports whether the role is one the server is expected to send.
func (r Role) Known() bool {
	switch r {
	case RoleCreator, RoleAdmin, RoleUser:
		return true
	}
	return false
}

// TelegramID is the opaque session identifier. The auth server sends it as a
// JSON number, so decoding accepts both numbers and strings.
type TelegramID string

func (id *TelegramID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = TelegramID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("telegram_id: %w", err)
	}
	*id = TelegramID(n.String())
	return nil
}

// AuthResult is the body returned by GET /api/auth.
type AuthResult struct {
	Authorized bool       `json:"authorized"`
	Role       Role       `json:"role,omitempty"`
	TelegramID TelegramID `json:"telegram_id,omitempty"`
	Message    string     `json:"message,omitempty"`
}

// OutcomeKind classifies a single authentication attempt.
type OutcomeKind int

const (
	OutcomeMissingIdentifier OutcomeKind = iota
	OutcomeRejected
	OutcomePrivileged
	OutcomeStandard
	OutcomeConnectionError
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeMissingIdentifier:
		return "missing-identifier"
	case OutcomeRejected:
		return "rejected"
	case OutcomePrivileged:
		return "privileged"
	case OutcomeStandard:
		return "standard"
	case OutcomeConnectionError:
		return "connection-error"
	}
	return fmt.Sprintf("outcome(%d)", int(k))
}

// Outcome is the terminal result of authentication handed to the view layer.
type Outcome struct {
	Kind       OutcomeKind
	TelegramID TelegramID
	Role       Role
	Message    string
	Err        error // set for OutcomeConnectionError
}

// Theme selects the dashboard color palette.
type Theme string

const (
	ThemeDefault   Theme = "default"
	ThemeNewYear   Theme = "newyear"
	ThemeHalloween Theme = "halloween"
)

// Themes lists the selectable themes in cycling order.
var Themes = []Theme{ThemeDefault, ThemeNewYear, ThemeHalloween}

// ParseTheme maps a config value to a Theme, falling back to the default.
func ParseTheme(s string) Theme {
	for _, t := range Themes {
		if string(t) == s {
			return t
		}
	}
	return ThemeDefault
}

// Next returns the theme after t in cycling order.
func (t Theme) Next() Theme {
	for i, th := range Themes {
		if th == t {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return ThemeDefault
}

// Contest is a giveaway drafted from the dashboard. It lives only for the session.
type Contest struct {
	ID        string
	Name      string
	EndDate   time.Time
	Prize     string
	CreatedBy TelegramID
	CreatedAt time.Time
}

// AdminGrant records an "add admin" action taken from the dashboard.
type AdminGrant struct {
	TelegramID  int64
	Username    string
	ChannelLink string
	ChatLink    string
	GrantedBy   TelegramID
	GrantedAt   time.Time
}
