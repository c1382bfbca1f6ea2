package billing

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/LokeshN1/bill-master/internal/domain/entity"
	"github.com/LokeshN1/bill-master/internal/domain/enum"
	"github.com/LokeshN1/bill-master/internal/domain/repository"
)

// Config tunes the timing behavior of a till session. Zero values fall back
// to the defaults used in production.
type Config struct {
	// RefreshInterval is how often the background refresher re-reads the
	// floor state.
	RefreshInterval time.Duration
	// CacheTTL bounds how long a persisted cart snapshot stays restorable.
	CacheTTL time.Duration
	// PersistDebounce is the quiet period before a cart burst is written
	// through to the durable cache.
	PersistDebounce time.Duration
	// SwitchCooldown keeps the switch lock held briefly after a table
	// switch completes, absorbing double taps.
	SwitchCooldown time.Duration
}

func (c Config) withDefaults() Config {
	if c.RefreshInterval <= 0 {
		c.RefreshInterval = 30 * time.Second
	}
	if c.CacheTTL <= 0 {
		c.CacheTTL = 30 * time.Minute
	}
	if c.PersistDebounce == 0 {
		c.PersistDebounce = 300 * time.Millisecond
	}
	if c.SwitchCooldown == 0 {
		c.SwitchCooldown = 300 * time.Millisecond
	}
	return c
}

// Session is one till: the currently selected table, its in-progress cart,
// and the cache tiers that let an operator hop between tables without losing
// anything. All exported methods are safe for concurrent use; a single mutex
// serializes state changes so the session behaves as one logical writer.
//
// Store writes that only reconcile floor state (occupancy flips, cache
// persistence) run in the background and are absorbed with a log line on
// failure. Save and explicit cart operations surface their errors.
type Session struct {
	id     uuid.UUID
	cfg    Config
	tables repository.TableRepository
	bills  repository.BillRepository
	store  repository.BillCacheRepository
	log    zerolog.Logger
	now    func() time.Time

	mu              sync.Mutex
	active          *entity.Table
	cart            *Cart
	savedBillID     *uuid.UUID
	savedBillNumber string
	lastSource      CacheSource
	switching       bool

	memory  *memoryCache
	persist *Debouncer

	dirtyMu sync.Mutex
	dirty   map[uuid.UUID]cartSnapshot

	wg sync.WaitGroup
}

// NewSession wires a till session against the given stores. Background
// persistence is debounced per cfg; pass a zero PersistDebounce of -1 via
// cfg only in tests that need synchronous writes.
func NewSession(cfg Config, tables repository.TableRepository, bills repository.BillRepository, store repository.BillCacheRepository, log zerolog.Logger) *Session {
	cfg = cfg.withDefaults()
	s := &Session{
		id:         uuid.New(),
		cfg:        cfg,
		tables:     tables,
		bills:      bills,
		store:      store,
		log:        log,
		now:        time.Now,
		cart:       NewCart(),
		lastSource: SourceEmpty,
		memory:     newMemoryCache(),
		persist:    NewDebouncer(cfg.PersistDebounce),
		dirty:      make(map[uuid.UUID]cartSnapshot),
	}
	s.log = log.With().Str("session_id", s.id.String()).Logger()
	return s
}

// ID returns the session identifier.
func (s *Session) ID() uuid.UUID { return s.id }

// SetClock overrides the session's time source. Test hook.
func (s *Session) SetClock(now func() time.Time) { s.now = now }

// SelectResult describes what a table switch resolved to.
type SelectResult struct {
	Table  entity.Table      `json:"table"`
	Lines  []entity.BillLine `json:"items"`
	Total  float64           `json:"total"`
	Source CacheSource       `json:"cart_source"`
}

// State is a point-in-time snapshot of the session for the status endpoint.
type State struct {
	SessionID       uuid.UUID         `json:"session_id"`
	Table           *entity.Table     `json:"table,omitempty"`
	Lines           []entity.BillLine `json:"items"`
	Total           float64           `json:"total"`
	SavedBillID     *uuid.UUID        `json:"saved_bill_id,omitempty"`
	SavedBillNumber string            `json:"saved_bill_number,omitempty"`
	CartSource      CacheSource       `json:"cart_source"`
	Switching       bool              `json:"switching"`
}

// SelectTable makes the given table the active one. Selecting the already
// active table is a no-op. At most one switch runs at a time; overlapping
// requests fail fast with ErrSwitchInProgress and are never queued.
//
// The outgoing table's cart is snapshotted to the cache tiers before the
// incoming table's cart is resolved, so switching away never loses work.
func (s *Session) SelectTable(ctx context.Context, table *entity.Table) (*SelectResult, error) {
	if table == nil {
		return nil, ErrNoTableSelected
	}

	s.mu.Lock()
	if s.active != nil && s.active.ID == table.ID {
		res := &SelectResult{Table: *s.active, Lines: s.cart.Lines(), Total: s.cart.Total(), Source: s.lastSource}
		s.mu.Unlock()
		return res, nil
	}
	if s.switching {
		s.mu.Unlock()
		return nil, ErrSwitchInProgress
	}
	s.switching = true
	s.stashActiveLocked()
	s.mu.Unlock()

	// Resolve the incoming table's cart outside the lock; the switch flag
	// keeps competing switches out while I/O is in flight.
	snap, source := s.resolveCart(ctx, table)

	s.mu.Lock()
	// Re-stash in case the outgoing cart changed while resolution ran.
	s.stashActiveLocked()

	t := *table
	s.active = &t
	s.cart.Restore(snap.Lines)
	s.savedBillID = snap.BillID
	s.savedBillNumber = snap.BillNumber
	s.lastSource = source
	res := &SelectResult{Table: t, Lines: s.cart.Lines(), Total: s.cart.Total(), Source: source}
	s.mu.Unlock()

	if s.cfg.SwitchCooldown <= 0 {
		s.mu.Lock()
		s.switching = false
		s.mu.Unlock()
	} else {
		time.AfterFunc(s.cfg.SwitchCooldown, func() {
			s.mu.Lock()
			s.switching = false
			s.mu.Unlock()
		})
	}
	return res, nil
}

// stashActiveLocked snapshots the outgoing table's non-empty cart into the
// memory tier, schedules the durable write, and flips the table occupied in
// the background. Caller holds s.mu.
func (s *Session) stashActiveLocked() {
	if s.active == nil || s.cart.IsEmpty() {
		return
	}
	prev := *s.active
	snap := cartSnapshot{
		TableNumber: prev.TableNumber,
		Lines:       s.cart.Lines(),
		BillID:      s.savedBillID,
		BillNumber:  s.savedBillNumber,
		UpdatedAt:   s.now(),
	}
	s.memory.put(prev.ID, snap)
	s.schedulePersist(prev.ID, snap)
	// Occupancy flips only after the snapshot is safely cached.
	s.background("mark table occupied on switch", func(ctx context.Context) error {
		occupied := enum.TableStatusOccupied
		_, err := s.tables.Update(ctx, prev.ID, &repository.TableUpdate{Status: &occupied})
		return err
	})
}

// resolveCart walks the cache tiers for the table: memory first, then the
// table's last saved bill, then the durable cache, then empty. A tier that
// errors is logged and skipped, never fatal.
func (s *Session) resolveCart(ctx context.Context, table *entity.Table) (cartSnapshot, CacheSource) {
	if snap, ok := s.memory.snapshotFor(table.ID); ok {
		return snap, SourceMemory
	}

	if table.LastBillID != nil {
		bill, err := s.bills.GetByID(ctx, *table.LastBillID)
		switch {
		case err == nil:
			id := bill.ID
			return cartSnapshot{
				TableNumber: table.TableNumber,
				Lines:       bill.Lines,
				BillID:      &id,
				BillNumber:  bill.BillNumber,
				UpdatedAt:   s.now(),
			}, SourceBill
		case errors.Is(err, repository.ErrNotFound):
			// Stale reference; fall through to the durable cache.
		default:
			s.log.Warn().Err(err).Str("table", table.TableNumber).Msg("bill lookup failed, falling back to cache")
		}
	}

	entry, err := s.store.Get(ctx, table.ID)
	if err != nil {
		s.log.Warn().Err(err).Str("table", table.TableNumber).Msg("cache lookup failed")
	} else if entry != nil && len(entry.Lines) > 0 {
		return cartSnapshot{
			TableNumber: entry.TableNumber,
			Lines:       entry.Lines,
			BillID:      entry.BillID,
			BillNumber:  entry.BillNumber,
			UpdatedAt:   entry.UpdatedAt,
		}, SourcePersisted
	}

	return cartSnapshot{TableNumber: table.TableNumber}, SourceEmpty
}

// AddItem puts one unit of the item into the active table's cart. The first
// item on an empty cart flips the table occupied locally at once and flips
// the store record in the background.
func (s *Session) AddItem(ctx context.Context, item entity.Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active == nil {
		return ErrNoTableSelected
	}

	wasEmpty := s.cart.IsEmpty()
	s.cart.Add(item)
	s.syncCacheLocked()

	if wasEmpty {
		s.active.Status = enum.TableStatusOccupied
		tableID := s.active.ID
		s.background("mark table occupied", func(ctx context.Context) error {
			occupied := enum.TableStatusOccupied
			_, err := s.tables.Update(ctx, tableID, &repository.TableUpdate{Status: &occupied})
			return err
		})
	}
	return nil
}

// RemoveItem takes one unit of the item out of the cart. Removing the last
// unit of the last line immediately shows the table available again and
// clears the cached cart and bill association.
func (s *Session) RemoveItem(ctx context.Context, itemID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active == nil {
		return ErrNoTableSelected
	}

	s.cart.Remove(itemID)

	if s.cart.IsEmpty() {
		s.active.Status = enum.TableStatusAvailable
		s.savedBillID = nil
		s.savedBillNumber = ""
		s.memory.delete(s.active.ID)
		s.forgetPersist(s.active.ID)
		tableID := s.active.ID
		s.background("release emptied table", func(ctx context.Context) error {
			if err := s.store.Delete(ctx, tableID); err != nil {
				return err
			}
			available := enum.TableStatusAvailable
			_, err := s.tables.Update(ctx, tableID, &repository.TableUpdate{Status: &available, SetLastBillID: true})
			return err
		})
		return nil
	}

	s.syncCacheLocked()
	return nil
}

// syncCacheLocked mirrors the current cart into the memory tier and schedules
// the debounced durable write. Caller holds s.mu and s.active is non-nil.
func (s *Session) syncCacheLocked() {
	snap := cartSnapshot{
		TableNumber: s.active.TableNumber,
		Lines:       s.cart.Lines(),
		BillID:      s.savedBillID,
		BillNumber:  s.savedBillNumber,
		UpdatedAt:   s.now(),
	}
	s.memory.put(s.active.ID, snap)
	s.schedulePersist(s.active.ID, snap)
}

// schedulePersist marks the table's snapshot dirty and (re)arms the debounce
// timer. The eventual flush writes every dirty table, so a snapshot queued
// for one table is never displaced by activity on another.
func (s *Session) schedulePersist(tableID uuid.UUID, snap cartSnapshot) {
	s.dirtyMu.Lock()
	s.dirty[tableID] = snap
	s.dirtyMu.Unlock()
	s.persist.Trigger(s.flushDirty)
}

// forgetPersist drops any not-yet-flushed snapshot for the table so a pending
// write cannot resurrect a cart that was just cleared.
func (s *Session) forgetPersist(tableID uuid.UUID) {
	s.dirtyMu.Lock()
	delete(s.dirty, tableID)
	s.dirtyMu.Unlock()
}

func (s *Session) flushDirty() {
	s.dirtyMu.Lock()
	batch := s.dirty
	s.dirty = make(map[uuid.UUID]cartSnapshot)
	s.dirtyMu.Unlock()
	if len(batch) == 0 {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	for tableID, snap := range batch {
		entry := &entity.BillCacheEntry{
			TableID:     tableID,
			SessionID:   s.id,
			TableNumber: snap.TableNumber,
			Lines:       snap.Lines,
			BillID:      snap.BillID,
			BillNumber:  snap.BillNumber,
			UpdatedAt:   snap.UpdatedAt,
			ExpiresAt:   snap.UpdatedAt.Add(s.cfg.CacheTTL),
		}
		if err := s.store.Put(ctx, entry); err != nil {
			s.log.Warn().Err(err).Str("table", snap.TableNumber).Msg("cart cache write failed")
		}
	}
}

// Save persists the active cart as a bill. A session that already saved a
// bill for this cart updates it in place; otherwise a new bill is created
// with a time-derived number, retrying exactly once with a seconds-precision
// number if two saves collide in the same minute. On failure the cart, cache
// and table state are left untouched.
func (s *Session) Save(ctx context.Context, format enum.ReceiptFormat, totalOverride *float64) (*entity.Bill, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active == nil {
		return nil, ErrNoTableSelected
	}
	if s.cart.IsEmpty() {
		return nil, ErrEmptyCart
	}
	agg, err := BuildAggregate(s.cart.Lines(), totalOverride)
	if err != nil {
		return nil, err
	}
	if format == "" {
		format = enum.ReceiptFormatDetailed
	}

	if s.savedBillID != nil {
		bill, err := s.bills.GetByID(ctx, *s.savedBillID)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
		if err == nil {
			bill.Lines = agg.Lines
			bill.TotalAmount = agg.TotalAmount
			bill.ReceiptFormat = format
			if err := s.bills.Update(ctx, bill); err != nil {
				return nil, err
			}
			s.afterSaveLocked(ctx, bill)
			return bill, nil
		}
		// The referenced bill is gone (deleted from history); fall through
		// and create a fresh one.
		s.savedBillID = nil
		s.savedBillNumber = ""
	}

	now := s.now()
	bill := &entity.Bill{
		BillNumber:    GenerateBillNumber(s.active.TableNumber, now),
		TableNumber:   s.active.TableNumber,
		Lines:         agg.Lines,
		TotalAmount:   agg.TotalAmount,
		ReceiptFormat: format,
	}
	if s.savedBillNumber != "" {
		bill.BillNumber = s.savedBillNumber
	}
	err = s.bills.Create(ctx, bill)
	if errors.Is(err, repository.ErrDuplicateKey) {
		bill.ID = uuid.Nil
		bill.BillNumber = RegenerateBillNumber(s.active.TableNumber, s.now())
		err = s.bills.Create(ctx, bill)
	}
	if err != nil {
		return nil, err
	}

	s.afterSaveLocked(ctx, bill)
	return bill, nil
}

// afterSaveLocked adopts the persisted bill into the session and reconciles
// the table record and cache tiers. Runs with s.mu held; the table write is
// issued only after the bill is durably stored.
func (s *Session) afterSaveLocked(ctx context.Context, bill *entity.Bill) {
	id := bill.ID
	s.savedBillID = &id
	s.savedBillNumber = bill.BillNumber
	s.active.Status = enum.TableStatusOccupied
	s.active.LastBillID = &id

	tableID := s.active.ID
	occupied := enum.TableStatusOccupied
	if _, err := s.tables.Update(ctx, tableID, &repository.TableUpdate{Status: &occupied, LastBillID: &id, SetLastBillID: true}); err != nil {
		// The bill is safe; the refresher will reconcile occupancy.
		s.log.Warn().Err(err).Str("bill_number", bill.BillNumber).Msg("table update after save failed")
	}
	s.syncCacheLocked()
}

// Clear abandons the active cart: local state resets first so the operator
// sees an empty till immediately, then the cache entry and table record are
// reconciled in the background.
func (s *Session) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cart.Reset()
	s.savedBillID = nil
	s.savedBillNumber = ""
	s.lastSource = SourceEmpty

	if s.active == nil {
		return nil
	}
	s.active.Status = enum.TableStatusAvailable
	s.active.LastBillID = nil
	s.memory.delete(s.active.ID)
	s.forgetPersist(s.active.ID)

	tableID := s.active.ID
	s.background("clear table", func(ctx context.Context) error {
		if err := s.store.Delete(ctx, tableID); err != nil {
			return err
		}
		available := enum.TableStatusAvailable
		_, err := s.tables.Update(ctx, tableID, &repository.TableUpdate{Status: &available, SetLastBillID: true})
		return err
	})
	return nil
}

// State returns a snapshot of the session.
func (s *Session) State() *State {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := &State{
		SessionID:       s.id,
		Lines:           s.cart.Lines(),
		Total:           s.cart.Total(),
		SavedBillID:     s.savedBillID,
		SavedBillNumber: s.savedBillNumber,
		CartSource:      s.lastSource,
		Switching:       s.switching,
	}
	if s.active != nil {
		t := *s.active
		st.Table = &t
	}
	return st
}

// RefreshTables re-reads the floor from the table store and overlays local
// knowledge: a table whose cart lives in this session's cache shows occupied
// even if the server record lags. While a switch is in flight the refresh is
// skipped so it cannot clobber mid-swap state.
func (s *Session) RefreshTables(ctx context.Context) ([]entity.TableWithStatus, error) {
	s.mu.Lock()
	if s.switching {
		s.mu.Unlock()
		return nil, ErrSwitchInProgress
	}
	s.mu.Unlock()

	tables, err := s.tables.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]entity.TableWithStatus, 0, len(tables))
	for _, t := range tables {
		tws := entity.TableWithStatus{Table: t, BillID: t.LastBillID, HasBill: t.LastBillID != nil}

		local, hasLocal := s.memory.snapshotFor(t.ID)
		isActive := s.active != nil && s.active.ID == t.ID
		if isActive && !s.cart.IsEmpty() {
			hasLocal = true
			local = cartSnapshot{BillID: s.savedBillID}
		}
		if hasLocal {
			// Local truth wins over a stale server read.
			tws.Status = enum.TableStatusOccupied
			tws.HasBill = true
			if local.BillID != nil {
				tws.BillID = local.BillID
			}
		}

		if isActive && s.active.Status != tws.Status {
			// Adopt the reconciled occupancy on the active copy; other
			// fields keep their local values.
			s.active.Status = tws.Status
			if s.savedBillID == nil {
				s.active.LastBillID = t.LastBillID
			}
		}
		out = append(out, tws)
	}
	return out, nil
}

// HasActiveCart reports whether this session holds a non-empty cart for the
// table, either live or cached. Used to guard table deletion.
func (s *Session) HasActiveCart(tableID uuid.UUID) bool {
	s.mu.Lock()
	if s.active != nil && s.active.ID == tableID && !s.cart.IsEmpty() {
		s.mu.Unlock()
		return true
	}
	s.mu.Unlock()
	return s.memory.hasLines(tableID)
}

// Close flushes the pending cache write and waits for background
// reconciliation writes to finish.
func (s *Session) Close() {
	s.persist.Flush()
	s.wg.Wait()
}

// background runs a reconciling store write off the request path. Failures
// are logged, never surfaced; the periodic refresh converges the state.
func (s *Session) background(op string, fn func(ctx context.Context) error) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := fn(ctx); err != nil {
			s.log.Warn().Err(err).Str("op", op).Msg("background store update failed")
		}
	}()
}
