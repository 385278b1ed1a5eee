package view

import "errors"

// Tab identifies an admin panel content section.
type Tab string

const (
	TabNone     Tab = ""
	TabContests Tab = "contests"
	TabAdmins   Tab = "admins"
	TabSettings Tab = "settings"
	TabProfile  Tab = "profile"
)

// Tabs lists the nav entries in display order.
var Tabs = []Tab{TabContests, TabAdmins, TabSettings, TabProfile}

// DefaultTab is shown when no tab has been activated.
const DefaultTab = TabContests

func (t Tab) valid() bool {
	for _, v := range Tabs {
		if v == t {
			return true
		}
	}
	return false
}

// ModalKind identifies the workflow a modal dialog runs.
type ModalKind int

const (
	ModalNone ModalKind = iota
	ModalCreateContest
	ModalAddAdmin
	ModalMaintenance
)

func (k ModalKind) String() string {
	switch k {
	case ModalNone:
		return "none"
	case ModalCreateContest:
		return "create-contest"
	case ModalAddAdmin:
		return "add-admin"
	case ModalMaintenance:
		return "maintenance"
	}
	return "unknown"
}

var (
	ErrNotInteractive = errors.New("admin features are not enabled")
	ErrModalOpen      = errors.New("a modal is open")
	ErrNoModal        = errors.New("no modal is open")
	ErrUnknownTab     = errors.New("unknown tab")
	ErrUnknownModal   = errors.New("unknown modal")
)

// Controller tracks the active tab and the open modal. All transitions go
// through its methods, which reject the ones that are not allowed.
type Controller struct {
	active      Tab
	modal       ModalKind
	interactive bool
}

// NewController returns a controller with no active tab and no modal.
// When interactive is false every transition fails with ErrNotInteractive.
func NewController(interactive bool) Controller {
	return Controller{interactive: interactive}
}

// Activate marks tab as the single active tab.
func (c Controller) Activate(tab Tab) (Controller, error) {
	if !c.interactive {
		return c, ErrNotInteractive
	}
	if c.modal != ModalNone {
		return c, ErrModalOpen
	}
	if !tab.valid() {
		return c, ErrUnknownTab
	}
	c.active = tab
	return c, nil
}

// OpenModal opens kind, hiding every section and the nav until closed.
func (c Controller) OpenModal(kind ModalKind) (Controller, error) {
	if !c.interactive {
		return c, ErrNotInteractive
	}
	if c.modal != ModalNone {
		return c, ErrModalOpen
	}
	if kind <= ModalNone || kind > ModalMaintenance {
		return c, ErrUnknownModal
	}
	c.modal = kind
	return c, nil
}

// CloseModal closes the open modal; the active tab's section reappears.
func (c Controller) CloseModal() (Controller, error) {
	if c.modal == ModalNone {
		return c, ErrNoModal
	}
	c.modal = ModalNone
	return c, nil
}

func (c Controller) ActiveTab() Tab    { return c.active }
func (c Controller) Modal() ModalKind  { return c.modal }
func (c Controller) ModalOpen() bool   { return c.modal != ModalNone }
func (c Controller) Interactive() bool { return c.interactive }
func (c Controller) NavVisible() bool  { return c.modal == ModalNone }

// CurrentSection is the section that is (or will be, once a modal closes) shown.
func (c Controller) CurrentSection() Tab {
	if c.active == TabNone {
		return DefaultTab
	}
	return c.active
}

// VisibleSections returns the content sections on screen: none while a modal
// is open, otherwise exactly one.
func (c Controller) VisibleSections() []Tab {
	if c.modal != ModalNone {
		return nil
	}
	return []Tab{c.CurrentSection()}
}
