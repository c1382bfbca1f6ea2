package billing

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/LokeshN1/bill-master/internal/domain/entity"
	"github.com/LokeshN1/bill-master/internal/domain/repository"
)

// fakeTableRepo is an in-memory table store with injectable failures and
// latency, so tests can exercise the reconciliation paths without a
// database.
type fakeTableRepo struct {
	mu      sync.Mutex
	tables  map[uuid.UUID]*entity.Table
	updates int
	failAll bool
	delay   time.Duration
}

func newFakeTableRepo(tables ...*entity.Table) *fakeTableRepo {
	r := &fakeTableRepo{tables: make(map[uuid.UUID]*entity.Table)}
	for _, t := range tables {
		cp := *t
		r.tables[t.ID] = &cp
	}
	return r
}

func (r *fakeTableRepo) get(id uuid.UUID) *entity.Table {
	r.mu.Lock()
	defer r.mu.Unlock()
	if t, ok := r.tables[id]; ok {
		cp := *t
		return &cp
	}
	return nil
}

func (r *fakeTableRepo) Create(ctx context.Context, table *entity.Table) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if table.ID == uuid.Nil {
		table.ID = uuid.New()
	}
	cp := *table
	r.tables[table.ID] = &cp
	return nil
}

func (r *fakeTableRepo) BulkCreate(ctx context.Context, tables []entity.Table) error {
	for i := range tables {
		if err := r.Create(ctx, &tables[i]); err != nil {
			return err
		}
	}
	return nil
}

func (r *fakeTableRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Table, error) {
	if t := r.get(id); t != nil {
		return t, nil
	}
	return nil, repository.ErrNotFound
}

func (r *fakeTableRepo) GetByNumber(ctx context.Context, tableNumber string) (*entity.Table, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.tables {
		if t.TableNumber == tableNumber {
			cp := *t
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeTableRepo) ListAll(ctx context.Context) ([]entity.Table, error) {
	r.mu.Lock()
	failAll, delay := r.failAll, r.delay
	r.mu.Unlock()
	if delay > 0 {
		time.Sleep(delay)
	}
	if failAll {
		return nil, context.DeadlineExceeded
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]entity.Table, 0, len(r.tables))
	for _, t := range r.tables {
		out = append(out, *t)
	}
	return out, nil
}

func (r *fakeTableRepo) Update(ctx context.Context, id uuid.UUID, update *repository.TableUpdate) (*entity.Table, error) {
	r.mu.Lock()
	if r.failAll {
		r.mu.Unlock()
		return nil, context.DeadlineExceeded
	}
	t, ok := r.tables[id]
	if !ok {
		r.mu.Unlock()
		return nil, repository.ErrNotFound
	}
	if update.Status != nil {
		t.Status = *update.Status
	}
	if update.Capacity != nil {
		t.Capacity = *update.Capacity
	}
	if update.SetLastBillID {
		t.LastBillID = update.LastBillID
	}
	r.updates++
	cp := *t
	r.mu.Unlock()
	return &cp, nil
}

func (r *fakeTableRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tables[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.tables, id)
	return nil
}

// fakeBillRepo records bills in memory and can reject creates with a
// duplicate key error a set number of times.
type fakeBillRepo struct {
	mu             sync.Mutex
	bills          map[uuid.UUID]*entity.Bill
	byNumber       map[string]uuid.UUID
	creates        int
	gets           int
	failDuplicates int
	delay          time.Duration
}

func newFakeBillRepo() *fakeBillRepo {
	return &fakeBillRepo{
		bills:    make(map[uuid.UUID]*entity.Bill),
		byNumber: make(map[string]uuid.UUID),
	}
}

func (r *fakeBillRepo) Create(ctx context.Context, bill *entity.Bill) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.creates++
	if r.failDuplicates > 0 {
		r.failDuplicates--
		return repository.ErrDuplicateKey
	}
	if _, exists := r.byNumber[bill.BillNumber]; exists {
		return repository.ErrDuplicateKey
	}
	if bill.ID == uuid.Nil {
		bill.ID = uuid.New()
	}
	bill.CreatedAt = time.Now()
	cp := *bill
	r.bills[bill.ID] = &cp
	r.byNumber[bill.BillNumber] = bill.ID
	return nil
}

func (r *fakeBillRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Bill, error) {
	r.mu.Lock()
	delay := r.delay
	r.gets++
	r.mu.Unlock()
	if delay > 0 {
		time.Sleep(delay)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if b, ok := r.bills[id]; ok {
		cp := *b
		return &cp, nil
	}
	return nil, repository.ErrNotFound
}

func (r *fakeBillRepo) ListAll(ctx context.Context) ([]entity.Bill, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]entity.Bill, 0, len(r.bills))
	for _, b := range r.bills {
		out = append(out, *b)
	}
	return out, nil
}

func (r *fakeBillRepo) List(ctx context.Context, params *repository.BillFilterParams) ([]entity.Bill, int64, error) {
	all, _ := r.ListAll(ctx)
	return all, int64(len(all)), nil
}

func (r *fakeBillRepo) Update(ctx context.Context, bill *entity.Bill) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.bills[bill.ID]
	if !ok {
		return repository.ErrNotFound
	}
	existing.Lines = bill.Lines
	existing.TotalAmount = bill.TotalAmount
	existing.ReceiptFormat = bill.ReceiptFormat
	return nil
}

func (r *fakeBillRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bills[id]
	if !ok {
		return repository.ErrNotFound
	}
	delete(r.byNumber, b.BillNumber)
	delete(r.bills, id)
	return nil
}

// fakeCacheRepo is the durable cart snapshot store.
type fakeCacheRepo struct {
	mu      sync.Mutex
	entries map[uuid.UUID]*entity.BillCacheEntry
	puts    int
}

func newFakeCacheRepo() *fakeCacheRepo {
	return &fakeCacheRepo{entries: make(map[uuid.UUID]*entity.BillCacheEntry)}
}

func (r *fakeCacheRepo) Put(ctx context.Context, entry *entity.BillCacheEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *entry
	r.entries[entry.TableID] = &cp
	r.puts++
	return nil
}

func (r *fakeCacheRepo) Get(ctx context.Context, tableID uuid.UUID) (*entity.BillCacheEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[tableID]
	if !ok {
		return nil, nil
	}
	if e.IsExpired(time.Now()) {
		delete(r.entries, tableID)
		return nil, nil
	}
	cp := *e
	return &cp, nil
}

func (r *fakeCacheRepo) Delete(ctx context.Context, tableID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, tableID)
	return nil
}

func (r *fakeCacheRepo) DeleteBySession(ctx context.Context, sessionID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, e := range r.entries {
		if e.SessionID == sessionID {
			delete(r.entries, id)
		}
	}
	return nil
}

func (r *fakeCacheRepo) Sweep(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	now := time.Now()
	for id, e := range r.entries {
		if e.IsExpired(now) {
			delete(r.entries, id)
			n++
		}
	}
	return n, nil
}
