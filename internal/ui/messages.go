package ui

import (
	"github.com/danhigham/contestdash/internal/domain"
	"github.com/danhigham/contestdash/internal/view"
)

// AuthSettledMsg delivers the single authentication outcome.
type AuthSettledMsg struct {
	Outcome domain.Outcome
}

// StoreUpdatedMsg signals that the store state has changed.
type StoreUpdatedMsg struct{}

// fadeStepMsg advances one fade; stale tokens are dropped on arrival.
type fadeStepMsg struct {
	token view.Token
	step  int
}

// alertExpiredMsg clears the status bar alert if it is still the one shown.
type alertExpiredMsg struct {
	seq int
}

// clockTickMsg triggers a status bar time refresh.
type clockTickMsg struct{}
