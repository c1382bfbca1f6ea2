package billing

import (
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/LokeshN1/bill-master/internal/domain/repository"
)

// Manager owns the live till sessions. Each counter or handheld opens its
// own session; the manager tracks them so other parts of the system (the
// table delete guard in particular) can ask about in-flight carts.
type Manager struct {
	cfg    Config
	tables repository.TableRepository
	bills  repository.BillRepository
	store  repository.BillCacheRepository
	log    zerolog.Logger

	mu         sync.RWMutex
	sessions   map[uuid.UUID]*Session
	refreshers map[uuid.UUID]*refresher
}

func NewManager(cfg Config, tables repository.TableRepository, bills repository.BillRepository, store repository.BillCacheRepository, log zerolog.Logger) *Manager {
	return &Manager{
		cfg:        cfg.withDefaults(),
		tables:     tables,
		bills:      bills,
		store:      store,
		log:        log,
		sessions:   make(map[uuid.UUID]*Session),
		refreshers: make(map[uuid.UUID]*refresher),
	}
}

// Open creates a new till session and starts its background refresher.
func (m *Manager) Open() *Session {
	s := NewSession(m.cfg, m.tables, m.bills, m.store, m.log)
	m.mu.Lock()
	m.sessions[s.ID()] = s
	m.refreshers[s.ID()] = startRefresher(s, m.cfg.RefreshInterval, m.log.With().Str("session_id", s.ID().String()).Logger())
	m.mu.Unlock()
	m.log.Info().Str("session_id", s.ID().String()).Msg("till session opened")
	return s
}

// Get returns the session with the given id.
func (m *Manager) Get(id uuid.UUID) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	return s, ok
}

// Close stops the session's refresher, flushes its pending cache writes and
// removes it from the registry. The durable cache entries are left in place
// so a reopened till can restore its carts.
func (m *Manager) Close(id uuid.UUID) bool {
	m.mu.Lock()
	s, ok := m.sessions[id]
	r := m.refreshers[id]
	delete(m.sessions, id)
	delete(m.refreshers, id)
	m.mu.Unlock()
	if !ok {
		return false
	}
	if r != nil {
		r.Stop()
	}
	s.Close()
	m.log.Info().Str("session_id", id.String()).Msg("till session closed")
	return true
}

// Shutdown closes every session, used on process exit.
func (m *Manager) Shutdown() {
	m.mu.Lock()
	ids := make([]uuid.UUID, 0, len(m.sessions))
	for id := range m.sessions {
		ids = append(ids, id)
	}
	m.mu.Unlock()
	for _, id := range ids {
		m.Close(id)
	}
}

// HasActiveCart reports whether any open session holds a non-empty cart for
// the table. Satisfies the checker interface the table service consults
// before allowing a delete.
func (m *Manager) HasActiveCart(tableID uuid.UUID) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, s := range m.sessions {
		if s.HasActiveCart(tableID) {
			return true
		}
	}
	return false
}
