package view

// Direction of a fade transition.
type Direction int

const (
	FadeIn Direction = iota
	FadeOut
)

// Token identifies one fade on one region. Starting a new fade on the same
// region supersedes every earlier token for it.
type Token struct {
	Region    Region
	Direction Direction
	gen       uint64
}

// Fader hands out transition tokens and tells stale ones apart.
type Fader struct {
	gen     map[Region]uint64
	running map[Region]bool
	dir     map[Region]Direction
}

func NewFader() *Fader {
	return &Fader{
		gen:     make(map[Region]uint64),
		running: make(map[Region]bool),
		dir:     make(map[Region]Direction),
	}
}

// Begin starts a fade on r and cancels any fade already running there.
func (f *Fader) Begin(r Region, d Direction) Token {
	f.gen[r]++
	f.running[r] = true
	f.dir[r] = d
	return Token{Region: r, Direction: d, gen: f.gen[r]}
}

// Live reports whether t is the most recent fade for its region and has not finished.
func (f *Fader) Live(t Token) bool {
	return f.running[t.Region] && f.gen[t.Region] == t.gen
}

// Finish completes t. It reports false, and changes nothing, for stale tokens.
func (f *Fader) Finish(t Token) bool {
	if !f.Live(t) {
		return false
	}
	f.running[t.Region] = false
	return true
}

// Running reports whether any fade is in progress on r.
func (f *Fader) Running(r Region) bool {
	return f.running[r]
}

// Outgoing reports whether r is fading out. An outgoing region stays on
// screen until its fade finishes.
func (f *Fader) Outgoing(r Region) bool {
	return f.running[r] && f.dir[r] == FadeOut
}
