package state

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/danhigham/contestdash/internal/domain"
)

const maxRecords = 200

// Store holds what the mock dashboard actions produce during one session.
// Nothing is written anywhere; the store is discarded on exit.
type Store struct {
	mu          sync.RWMutex
	contests    []domain.Contest
	admins      []domain.AdminGrant
	maintenance bool
	theme       domain.Theme
	drawFunc    func()
	now         func() time.Time
}

func New(drawFunc func()) *Store {
	return &Store{
		theme:    domain.ThemeDefault,
		drawFunc: drawFunc,
		now:      time.Now,
	}
}

func (s *Store) SetDrawFunc(f func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drawFunc = f
}

func (s *Store) draw() {
	if s.drawFunc != nil {
		s.drawFunc()
	}
}

// AddContest records a drafted contest and returns it with id and timestamp set.
func (s *Store) AddContest(c domain.Contest) domain.Contest {
	s.mu.Lock()
	defer s.mu.Unlock()

	c.ID = uuid.NewString()
	c.CreatedAt = s.now()
	s.contests = append(s.contests, c)
	if len(s.contests) > maxRecords {
		s.contests = s.contests[len(s.contests)-maxRecords:]
	}
	s.draw()
	return c
}

// Contests returns drafted contests ordered by end date, soonest first.
func (s *Store) Contests() []domain.Contest {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Contest, len(s.contests))
	copy(out, s.contests)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].EndDate.Before(out[j].EndDate)
	})
	return out
}

// GrantAdmin records an admin grant. A repeated grant for the same Telegram id
// replaces the earlier one.
func (s *Store) GrantAdmin(g domain.AdminGrant) domain.AdminGrant {
	s.mu.Lock()
	defer s.mu.Unlock()

	g.GrantedAt = s.now()
	for i, a := range s.admins {
		if a.TelegramID == g.TelegramID {
			s.admins[i] = g
			s.draw()
			return g
		}
	}
	s.admins = append(s.admins, g)
	if len(s.admins) > maxRecords {
		s.admins = s.admins[len(s.admins)-maxRecords:]
	}
	s.draw()
	return g
}

func (s *Store) Admins() []domain.AdminGrant {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.AdminGrant, len(s.admins))
	copy(out, s.admins)
	return out
}

func (s *Store) SetMaintenance(on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.maintenance = on
	s.draw()
}

func (s *Store) Maintenance() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.maintenance
}

func (s *Store) SetTheme(t domain.Theme) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.theme = t
	s.draw()
}

func (s *Store) Theme() domain.Theme {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.theme
}
