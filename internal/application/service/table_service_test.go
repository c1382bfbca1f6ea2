package service

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LokeshN1/bill-master/internal/domain/entity"
	"github.com/LokeshN1/bill-master/internal/domain/enum"
	"github.com/LokeshN1/bill-master/internal/domain/repository"
	"github.com/LokeshN1/bill-master/pkg/apperror"
)

type memTableRepo struct {
	mu     sync.Mutex
	tables map[uuid.UUID]*entity.Table
}

func newMemTableRepo(numbers ...string) *memTableRepo {
	r := &memTableRepo{tables: make(map[uuid.UUID]*entity.Table)}
	for _, n := range numbers {
		id := uuid.New()
		r.tables[id] = &entity.Table{ID: id, TableNumber: n, Status: enum.TableStatusAvailable, Capacity: 4}
	}
	return r
}

func (r *memTableRepo) Create(ctx context.Context, table *entity.Table) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.tables {
		if t.TableNumber == table.TableNumber {
			return repository.ErrDuplicateKey
		}
	}
	if table.ID == uuid.Nil {
		table.ID = uuid.New()
	}
	cp := *table
	r.tables[table.ID] = &cp
	return nil
}

func (r *memTableRepo) BulkCreate(ctx context.Context, tables []entity.Table) error {
	// All-or-nothing: validate the whole batch before inserting.
	r.mu.Lock()
	existing := map[string]bool{}
	for _, t := range r.tables {
		existing[t.TableNumber] = true
	}
	r.mu.Unlock()
	for i := range tables {
		if existing[tables[i].TableNumber] {
			return repository.ErrDuplicateKey
		}
		existing[tables[i].TableNumber] = true
	}
	for i := range tables {
		if err := r.Create(ctx, &tables[i]); err != nil {
			return err
		}
	}
	return nil
}

func (r *memTableRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Table, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if t, ok := r.tables[id]; ok {
		cp := *t
		return &cp, nil
	}
	return nil, repository.ErrNotFound
}

func (r *memTableRepo) GetByNumber(ctx context.Context, number string) (*entity.Table, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.tables {
		if t.TableNumber == number {
			cp := *t
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *memTableRepo) ListAll(ctx context.Context) ([]entity.Table, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]entity.Table, 0, len(r.tables))
	for _, t := range r.tables {
		out = append(out, *t)
	}
	return out, nil
}

func (r *memTableRepo) Update(ctx context.Context, id uuid.UUID, update *repository.TableUpdate) (*entity.Table, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tables[id]
	if !ok {
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
	cp := *t
	return &cp, nil
}

func (r *memTableRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tables[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.tables, id)
	return nil
}

type stubCartChecker struct{ busy map[uuid.UUID]bool }

func (c *stubCartChecker) HasActiveCart(tableID uuid.UUID) bool { return c.busy[tableID] }

func TestTableService_CreateAutoNumbers(t *testing.T) {
	repo := newMemTableRepo("1", "2")
	svc := NewTableService(repo, nil)

	result, err := svc.CreateTable(context.Background(), &CreateTableInput{})
	require.NoError(t, err)
	assert.Equal(t, "3", result.Table.TableNumber)
	assert.Empty(t, result.Warning)
}

func TestTableService_CreateSkips13(t *testing.T) {
	repo := newMemTableRepo("1", "2", "3", "4", "5", "6", "7", "8", "9", "10", "11", "12")
	svc := NewTableService(repo, nil)

	result, err := svc.CreateTable(context.Background(), &CreateTableInput{})
	require.NoError(t, err)
	assert.Equal(t, "14", result.Table.TableNumber)
}

func TestTableService_CreateCustomNameConflictWarning(t *testing.T) {
	repo := newMemTableRepo("12", "12A")
	svc := NewTableService(repo, nil)

	result, err := svc.CreateTable(context.Background(), &CreateTableInput{TableNumber: "12B"})
	require.NoError(t, err)
	assert.NotEmpty(t, result.Warning, "custom name shadowing the next auto number should warn")
}

func TestTableService_CreateDuplicateConflicts(t *testing.T) {
	repo := newMemTableRepo("Patio")
	svc := NewTableService(repo, nil)

	_, err := svc.CreateTable(context.Background(), &CreateTableInput{TableNumber: "Patio"})
	require.Error(t, err)
	appErr := apperror.GetAppError(err)
	assert.Equal(t, 409, appErr.Code)
}

func TestTableService_BulkCreateNumbersSequentially(t *testing.T) {
	repo := newMemTableRepo("11", "12")
	svc := NewTableService(repo, nil)

	tables, err := svc.BulkCreateTables(context.Background(), 3, 2)
	require.NoError(t, err)
	require.Len(t, tables, 3)
	// The batch threads one running snapshot, skipping 13.
	assert.Equal(t, "14", tables[0].TableNumber)
	assert.Equal(t, "15", tables[1].TableNumber)
	assert.Equal(t, "16", tables[2].TableNumber)
	for _, tbl := range tables {
		assert.Equal(t, 2, tbl.Capacity)
	}
}

func TestTableService_BulkCreateValidatesCount(t *testing.T) {
	svc := NewTableService(newMemTableRepo(), nil)

	_, err := svc.BulkCreateTables(context.Background(), 0, 4)
	require.Error(t, err)
	_, err = svc.BulkCreateTables(context.Background(), 101, 4)
	require.Error(t, err)
}

func TestTableService_DeleteGuards(t *testing.T) {
	repo := newMemTableRepo()
	svc := NewTableService(repo, nil)

	// Occupied table.
	occupied := &entity.Table{TableNumber: "1", Status: enum.TableStatusOccupied}
	require.NoError(t, repo.Create(context.Background(), occupied))
	err := svc.DeleteTable(context.Background(), occupied.ID)
	require.Error(t, err)
	assert.Equal(t, 409, apperror.GetAppError(err).Code)

	// Table with a lingering bill reference.
	billID := uuid.New()
	linked := &entity.Table{TableNumber: "2", Status: enum.TableStatusAvailable, LastBillID: &billID}
	require.NoError(t, repo.Create(context.Background(), linked))
	err = svc.DeleteTable(context.Background(), linked.ID)
	require.Error(t, err)
	assert.Equal(t, 409, apperror.GetAppError(err).Code)

	// Free table deletes fine.
	free := &entity.Table{TableNumber: "3", Status: enum.TableStatusAvailable}
	require.NoError(t, repo.Create(context.Background(), free))
	require.NoError(t, svc.DeleteTable(context.Background(), free.ID))
}

func TestTableService_DeleteBlockedByActiveCart(t *testing.T) {
	repo := newMemTableRepo()
	table := &entity.Table{TableNumber: "1", Status: enum.TableStatusAvailable}
	require.NoError(t, repo.Create(context.Background(), table))

	checker := &stubCartChecker{busy: map[uuid.UUID]bool{table.ID: true}}
	svc := NewTableService(repo, checker)

	err := svc.DeleteTable(context.Background(), table.ID)
	require.Error(t, err)
	assert.Equal(t, 409, apperror.GetAppError(err).Code)

	checker.busy[table.ID] = false
	require.NoError(t, svc.DeleteTable(context.Background(), table.ID))
}

func TestTableService_NextTableNumberPreview(t *testing.T) {
	svc := NewTableService(newMemTableRepo("12", "12A"), nil)

	next, err := svc.NextTableNumber(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "12B", next)
}
