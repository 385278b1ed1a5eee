// Package view holds the dashboard's visible state as plain values: which
// primary screen is shown, which admin tab is active, whether a modal is open.
// Rendering reads from here; nothing here knows about the terminal.
package view

import (
	"errors"

	"github.com/danhigham/contestdash/internal/domain"
)

// Screen is the primary view. Exactly one is shown at a time.
type Screen int

const (
	ScreenLoading Screen = iota
	ScreenUnauthorized
	ScreenConnectionError
	ScreenAdmin
	ScreenUser
)

func (s Screen) String() string {
	switch s {
	case ScreenLoading:
		return "loading"
	case ScreenUnauthorized:
		return "unauthorized"
	case ScreenConnectionError:
		return "connection-error"
	case ScreenAdmin:
		return "admin"
	case ScreenUser:
		return "user"
	}
	return "unknown"
}

// Region is a named area of the dashboard that can be shown or hidden.
type Region string

const (
	RegionLoading    Region = "loading"
	RegionError      Region = "error"
	RegionAdminPanel Region = "admin-panel"
	RegionAdminNav   Region = "admin-nav"
	RegionUserPanel  Region = "user-panel"

	// Secondary regions inside the admin panel; only faded, never resolved.
	RegionSection Region = "section"
	RegionModal   Region = "modal"
)

// State is the resolved view after authentication.
type State struct {
	Screen     Screen
	Message    string
	TelegramID domain.TelegramID
	Role       domain.Role
	// CreatorFeatures enables tab switching and the modal workflows.
	CreatorFeatures bool
}

// Resolve maps an authentication outcome to the view state it produces.
func Resolve(o domain.Outcome) State {
	switch o.Kind {
	case domain.OutcomeMissingIdentifier, domain.OutcomeRejected:
		return State{Screen: ScreenUnauthorized, Message: o.Message}
	case domain.OutcomeConnectionError:
		return State{Screen: ScreenConnectionError, Message: o.Message}
	case domain.OutcomePrivileged:
		return State{
			Screen:          ScreenAdmin,
			TelegramID:      o.TelegramID,
			Role:            o.Role,
			CreatorFeatures: o.Role == domain.RoleCreator,
		}
	case domain.OutcomeStandard:
		return State{Screen: ScreenUser, TelegramID: o.TelegramID, Role: o.Role}
	}
	return State{Screen: ScreenConnectionError, Message: "connection error"}
}

// Visible returns the regions shown for s. The admin screen is the only one
// that shows more than one region (the panel plus its navigation).
func (s State) Visible() []Region {
	switch s.Screen {
	case ScreenLoading:
		return []Region{RegionLoading}
	case ScreenUnauthorized, ScreenConnectionError:
		return []Region{RegionError}
	case ScreenAdmin:
		return []Region{RegionAdminPanel, RegionAdminNav}
	case ScreenUser:
		return []Region{RegionUserPanel}
	}
	return nil
}

// Shows reports whether r is among the visible regions.
func (s State) Shows(r Region) bool {
	for _, v := range s.Visible() {
		if v == r {
			return true
		}
	}
	return false
}

// ErrAlreadySettled is returned when a Machine is settled twice.
var ErrAlreadySettled = errors.New("view already settled")

// Machine moves from Loading to a terminal screen exactly once.
type Machine struct {
	state   State
	settled bool
}

// NewMachine returns a machine in the loading state.
func NewMachine() Machine {
	return Machine{state: State{Screen: ScreenLoading}}
}

// Settle applies the outcome. Subsequent calls leave the state untouched.
func (m Machine) Settle(o domain.Outcome) (Machine, error) {
	if m.settled {
		return m, ErrAlreadySettled
	}
	m.state = Resolve(o)
	m.settled = true
	return m, nil
}

func (m Machine) State() State  { return m.state }
func (m Machine) Settled() bool { return m.settled }
