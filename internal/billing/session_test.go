package billing

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LokeshN1/bill-master/internal/domain/entity"
	"github.com/LokeshN1/bill-master/internal/domain/enum"
)

// testConfig disables the debounce and the switch cooldown so every write is
// synchronous and switches release immediately.
func testConfig() Config {
	return Config{
		RefreshInterval: time.Hour,
		CacheTTL:        time.Hour,
		PersistDebounce: -1,
		SwitchCooldown:  -1,
	}
}

func newTestSession(cfg Config, tables *fakeTableRepo, bills *fakeBillRepo, cache *fakeCacheRepo) *Session {
	return NewSession(cfg, tables, bills, cache, zerolog.Nop())
}

func makeTable(number string) *entity.Table {
	return &entity.Table{
		ID:          uuid.New(),
		TableNumber: number,
		Status:      enum.TableStatusAvailable,
		Capacity:    4,
	}
}

func coffee() entity.Item {
	return entity.Item{ID: uuid.New(), Name: "Coffee", Price: 3.5}
}

func TestSession_SelectTable_EmptyTable(t *testing.T) {
	tableA := makeTable("1")
	s := newTestSession(testConfig(), newFakeTableRepo(tableA), newFakeBillRepo(), newFakeCacheRepo())

	res, err := s.SelectTable(context.Background(), tableA)
	require.NoError(t, err)
	assert.Equal(t, SourceEmpty, res.Source)
	assert.Empty(t, res.Lines)

	st := s.State()
	require.NotNil(t, st.Table)
	assert.Equal(t, "1", st.Table.TableNumber)
}

func TestSession_SelectTable_SameTableIsNoop(t *testing.T) {
	tableA := makeTable("1")
	s := newTestSession(testConfig(), newFakeTableRepo(tableA), newFakeBillRepo(), newFakeCacheRepo())

	_, err := s.SelectTable(context.Background(), tableA)
	require.NoError(t, err)
	require.NoError(t, s.AddItem(context.Background(), coffee()))

	// Re-selecting the active table keeps the cart and never conflicts.
	res, err := s.SelectTable(context.Background(), tableA)
	require.NoError(t, err)
	assert.Len(t, res.Lines, 1)
}

func TestSession_CartOpsRequireTable(t *testing.T) {
	s := newTestSession(testConfig(), newFakeTableRepo(), newFakeBillRepo(), newFakeCacheRepo())

	err := s.AddItem(context.Background(), coffee())
	assert.ErrorIs(t, err, ErrNoTableSelected)

	err = s.RemoveItem(context.Background(), uuid.New().String())
	assert.ErrorIs(t, err, ErrNoTableSelected)

	_, err = s.Save(context.Background(), enum.ReceiptFormatDetailed, nil)
	assert.ErrorIs(t, err, ErrNoTableSelected)
}

func TestSession_SaveEmptyCartFailsWithoutIO(t *testing.T) {
	tableA := makeTable("1")
	bills := newFakeBillRepo()
	s := newTestSession(testConfig(), newFakeTableRepo(tableA), bills, newFakeCacheRepo())

	_, err := s.SelectTable(context.Background(), tableA)
	require.NoError(t, err)

	_, err = s.Save(context.Background(), enum.ReceiptFormatDetailed, nil)
	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.Zero(t, bills.creates)
}

func TestSession_FirstItemMarksTableOccupied(t *testing.T) {
	tableA := makeTable("1")
	tables := newFakeTableRepo(tableA)
	s := newTestSession(testConfig(), tables, newFakeBillRepo(), newFakeCacheRepo())

	_, err := s.SelectTable(context.Background(), tableA)
	require.NoError(t, err)
	require.NoError(t, s.AddItem(context.Background(), coffee()))

	// Local view flips immediately.
	assert.Equal(t, enum.TableStatusOccupied, s.State().Table.Status)

	// The store catches up in the background.
	s.wg.Wait()
	assert.Equal(t, enum.TableStatusOccupied, tables.get(tableA.ID).Status)
}

func TestSession_RemoveLastItemReleasesTable(t *testing.T) {
	tableA := makeTable("1")
	tables := newFakeTableRepo(tableA)
	cache := newFakeCacheRepo()
	s := newTestSession(testConfig(), tables, newFakeBillRepo(), cache)

	item := coffee()
	_, err := s.SelectTable(context.Background(), tableA)
	require.NoError(t, err)
	require.NoError(t, s.AddItem(context.Background(), item))
	require.NoError(t, s.RemoveItem(context.Background(), item.ID.String()))

	st := s.State()
	assert.Empty(t, st.Lines)
	assert.Equal(t, enum.TableStatusAvailable, st.Table.Status)
	assert.Nil(t, st.SavedBillID)

	s.wg.Wait()
	assert.Equal(t, enum.TableStatusAvailable, tables.get(tableA.ID).Status)
	entry, err := cache.Get(context.Background(), tableA.ID)
	require.NoError(t, err)
	assert.Nil(t, entry)
}

func TestSession_SaveCreatesBillAndLinksTable(t *testing.T) {
	tableA := makeTable("7")
	tables := newFakeTableRepo(tableA)
	bills := newFakeBillRepo()
	s := newTestSession(testConfig(), tables, bills, newFakeCacheRepo())
	s.SetClock(func() time.Time {
		return time.Date(2026, 8, 31, 14, 5, 0, 0, time.Local)
	})

	_, err := s.SelectTable(context.Background(), tableA)
	require.NoError(t, err)
	require.NoError(t, s.AddItem(context.Background(), coffee()))

	bill, err := s.Save(context.Background(), enum.ReceiptFormatDetailed, nil)
	require.NoError(t, err)
	assert.Equal(t, "T71405", bill.BillNumber)
	assert.Equal(t, "7", bill.TableNumber)
	assert.InDelta(t, 3.5, bill.TotalAmount, 1e-9)

	st := s.State()
	require.NotNil(t, st.SavedBillID)
	assert.Equal(t, bill.ID, *st.SavedBillID)

	stored := tables.get(tableA.ID)
	require.NotNil(t, stored.LastBillID)
	assert.Equal(t, bill.ID, *stored.LastBillID)
	assert.Equal(t, enum.TableStatusOccupied, stored.Status)
}

func TestSession_SaveRetriesOnceOnDuplicateNumber(t *testing.T) {
	tableA := makeTable("7")
	bills := newFakeBillRepo()
	bills.failDuplicates = 1
	s := newTestSession(testConfig(), newFakeTableRepo(tableA), bills, newFakeCacheRepo())
	s.SetClock(func() time.Time {
		return time.Date(2026, 8, 31, 14, 5, 33, 0, time.Local)
	})

	_, err := s.SelectTable(context.Background(), tableA)
	require.NoError(t, err)
	require.NoError(t, s.AddItem(context.Background(), coffee()))

	bill, err := s.Save(context.Background(), enum.ReceiptFormatDetailed, nil)
	require.NoError(t, err)
	assert.Equal(t, "T7140533", bill.BillNumber, "retry should use the seconds-precision number")
	assert.Equal(t, 2, bills.creates)
}

func TestSession_SaveGivesUpAfterSecondDuplicate(t *testing.T) {
	tableA := makeTable("7")
	bills := newFakeBillRepo()
	bills.failDuplicates = 2
	s := newTestSession(testConfig(), newFakeTableRepo(tableA), bills, newFakeCacheRepo())

	_, err := s.SelectTable(context.Background(), tableA)
	require.NoError(t, err)
	require.NoError(t, s.AddItem(context.Background(), coffee()))

	_, err = s.Save(context.Background(), enum.ReceiptFormatDetailed, nil)
	require.Error(t, err)

	// Failed save leaves the session state untouched.
	st := s.State()
	assert.Nil(t, st.SavedBillID)
	assert.Len(t, st.Lines, 1)
}

func TestSession_SecondSaveUpdatesInPlace(t *testing.T) {
	tableA := makeTable("7")
	bills := newFakeBillRepo()
	s := newTestSession(testConfig(), newFakeTableRepo(tableA), bills, newFakeCacheRepo())

	_, err := s.SelectTable(context.Background(), tableA)
	require.NoError(t, err)
	require.NoError(t, s.AddItem(context.Background(), coffee()))

	first, err := s.Save(context.Background(), enum.ReceiptFormatDetailed, nil)
	require.NoError(t, err)

	require.NoError(t, s.AddItem(context.Background(), coffee()))
	second, err := s.Save(context.Background(), enum.ReceiptFormatDetailed, nil)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.BillNumber, second.BillNumber)
	assert.Equal(t, 1, bills.creates)

	stored, err := bills.GetByID(context.Background(), first.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, stored.Lines[0].Quantity)
}

func TestSession_SaveRecreatesWhenBillDeletedExternally(t *testing.T) {
	tableA := makeTable("7")
	bills := newFakeBillRepo()
	s := newTestSession(testConfig(), newFakeTableRepo(tableA), bills, newFakeCacheRepo())

	_, err := s.SelectTable(context.Background(), tableA)
	require.NoError(t, err)
	require.NoError(t, s.AddItem(context.Background(), coffee()))

	first, err := s.Save(context.Background(), enum.ReceiptFormatDetailed, nil)
	require.NoError(t, err)

	// Someone deletes the bill from the archive behind our back.
	require.NoError(t, bills.Delete(context.Background(), first.ID))

	second, err := s.Save(context.Background(), enum.ReceiptFormatDetailed, nil)
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestSession_SaveSurvivesTableUpdateFailure(t *testing.T) {
	tableA := makeTable("7")
	tables := newFakeTableRepo(tableA)
	bills := newFakeBillRepo()
	s := newTestSession(testConfig(), tables, bills, newFakeCacheRepo())

	_, err := s.SelectTable(context.Background(), tableA)
	require.NoError(t, err)
	require.NoError(t, s.AddItem(context.Background(), coffee()))
	s.wg.Wait()

	tables.mu.Lock()
	tables.failAll = true
	tables.mu.Unlock()

	// The bill still persists; occupancy converges later via refresh.
	bill, err := s.Save(context.Background(), enum.ReceiptFormatDetailed, nil)
	require.NoError(t, err)
	require.NotNil(t, s.State().SavedBillID)
	assert.Equal(t, bill.ID, *s.State().SavedBillID)
}

func TestSession_SwitchPreservesCartInMemory(t *testing.T) {
	tableA := makeTable("1")
	tableB := makeTable("2")
	bills := newFakeBillRepo()
	s := newTestSession(testConfig(), newFakeTableRepo(tableA, tableB), bills, newFakeCacheRepo())

	item := coffee()
	_, err := s.SelectTable(context.Background(), tableA)
	require.NoError(t, err)
	require.NoError(t, s.AddItem(context.Background(), item))
	require.NoError(t, s.AddItem(context.Background(), item))

	_, err = s.SelectTable(context.Background(), tableB)
	require.NoError(t, err)
	assert.Empty(t, s.State().Lines)

	res, err := s.SelectTable(context.Background(), tableA)
	require.NoError(t, err)
	assert.Equal(t, SourceMemory, res.Source)
	require.Len(t, res.Lines, 1)
	assert.Equal(t, 2, res.Lines[0].Quantity)
	assert.Zero(t, bills.gets, "memory hit must not touch the bill store")
}

func TestSession_ResolvesCartFromLastBill(t *testing.T) {
	bills := newFakeBillRepo()
	bill := &entity.Bill{
		BillNumber:  "T31200",
		TableNumber: "3",
		Lines:       entity.BillLines{{ItemID: "x", Name: "Cake", Price: 4.5, Quantity: 2}},
		TotalAmount: 9.0,
	}
	require.NoError(t, bills.Create(context.Background(), bill))

	tableC := makeTable("3")
	tableC.Status = enum.TableStatusOccupied
	tableC.LastBillID = &bill.ID

	s := newTestSession(testConfig(), newFakeTableRepo(tableC), bills, newFakeCacheRepo())

	res, err := s.SelectTable(context.Background(), tableC)
	require.NoError(t, err)
	assert.Equal(t, SourceBill, res.Source)
	require.Len(t, res.Lines, 1)
	assert.Equal(t, "Cake", res.Lines[0].Name)

	st := s.State()
	require.NotNil(t, st.SavedBillID)
	assert.Equal(t, bill.ID, *st.SavedBillID)
	assert.Equal(t, "T31200", st.SavedBillNumber)
}

func TestSession_ResolvesCartFromPersistedCache(t *testing.T) {
	tableA := makeTable("5")
	cache := newFakeCacheRepo()
	require.NoError(t, cache.Put(context.Background(), &entity.BillCacheEntry{
		TableID:     tableA.ID,
		TableNumber: "5",
		Lines:       entity.BillLines{{ItemID: "y", Name: "Tea", Price: 2.5, Quantity: 1}},
		UpdatedAt:   time.Now(),
		ExpiresAt:   time.Now().Add(time.Hour),
	}))

	// A fresh session has no memory tier for this table.
	s := newTestSession(testConfig(), newFakeTableRepo(tableA), newFakeBillRepo(), cache)

	res, err := s.SelectTable(context.Background(), tableA)
	require.NoError(t, err)
	assert.Equal(t, SourcePersisted, res.Source)
	require.Len(t, res.Lines, 1)
	assert.Equal(t, "Tea", res.Lines[0].Name)
}

func TestSession_ExpiredPersistedEntryIgnored(t *testing.T) {
	tableA := makeTable("5")
	cache := newFakeCacheRepo()
	require.NoError(t, cache.Put(context.Background(), &entity.BillCacheEntry{
		TableID:     tableA.ID,
		TableNumber: "5",
		Lines:       entity.BillLines{{ItemID: "y", Name: "Tea", Price: 2.5, Quantity: 1}},
		UpdatedAt:   time.Now().Add(-2 * time.Hour),
		ExpiresAt:   time.Now().Add(-time.Hour),
	}))

	s := newTestSession(testConfig(), newFakeTableRepo(tableA), newFakeBillRepo(), cache)

	res, err := s.SelectTable(context.Background(), tableA)
	require.NoError(t, err)
	assert.Equal(t, SourceEmpty, res.Source)
}

func TestSession_OverlappingSwitchRejected(t *testing.T) {
	bills := newFakeBillRepo()
	bill := &entity.Bill{
		BillNumber:  "T21200",
		TableNumber: "2",
		Lines:       entity.BillLines{{ItemID: "x", Name: "Cake", Price: 4.5, Quantity: 1}},
	}
	require.NoError(t, bills.Create(context.Background(), bill))
	bills.delay = 50 * time.Millisecond

	tableA := makeTable("1")
	tableB := makeTable("2")
	tableB.LastBillID = &bill.ID
	tableC := makeTable("3")

	s := newTestSession(testConfig(), newFakeTableRepo(tableA, tableB, tableC), bills, newFakeCacheRepo())

	done := make(chan error, 1)
	go func() {
		_, err := s.SelectTable(context.Background(), tableB)
		done <- err
	}()

	time.Sleep(10 * time.Millisecond)
	_, err := s.SelectTable(context.Background(), tableC)
	assert.ErrorIs(t, err, ErrSwitchInProgress)

	require.NoError(t, <-done)

	// Once the switch settles and the cooldown lapses, switching works again.
	require.Eventually(t, func() bool {
		_, err := s.SelectTable(context.Background(), tableC)
		return err == nil
	}, time.Second, 10*time.Millisecond)
}

func TestSession_ClearPurgesEverything(t *testing.T) {
	tableA := makeTable("1")
	tables := newFakeTableRepo(tableA)
	cache := newFakeCacheRepo()
	s := newTestSession(testConfig(), tables, newFakeBillRepo(), cache)

	_, err := s.SelectTable(context.Background(), tableA)
	require.NoError(t, err)
	require.NoError(t, s.AddItem(context.Background(), coffee()))
	_, err = s.Save(context.Background(), enum.ReceiptFormatDetailed, nil)
	require.NoError(t, err)

	require.NoError(t, s.Clear(context.Background()))

	st := s.State()
	assert.Empty(t, st.Lines)
	assert.Nil(t, st.SavedBillID)
	assert.Equal(t, enum.TableStatusAvailable, st.Table.Status)

	s.wg.Wait()
	stored := tables.get(tableA.ID)
	assert.Equal(t, enum.TableStatusAvailable, stored.Status)
	assert.Nil(t, stored.LastBillID)
	entry, err := cache.Get(context.Background(), tableA.ID)
	require.NoError(t, err)
	assert.Nil(t, entry)
}

func TestSession_ClearWithoutTableResetsCart(t *testing.T) {
	s := newTestSession(testConfig(), newFakeTableRepo(), newFakeBillRepo(), newFakeCacheRepo())
	require.NoError(t, s.Clear(context.Background()))
	assert.Empty(t, s.State().Lines)
}

func TestSession_RefreshOverlaysLocalCarts(t *testing.T) {
	tableA := makeTable("1")
	tableB := makeTable("2")
	s := newTestSession(testConfig(), newFakeTableRepo(tableA, tableB), newFakeBillRepo(), newFakeCacheRepo())

	// Build a cart on A, then switch to B so A lives only in the cache.
	_, err := s.SelectTable(context.Background(), tableA)
	require.NoError(t, err)
	require.NoError(t, s.AddItem(context.Background(), coffee()))
	_, err = s.SelectTable(context.Background(), tableB)
	require.NoError(t, err)

	out, err := s.RefreshTables(context.Background())
	require.NoError(t, err)

	byNumber := map[string]entity.TableWithStatus{}
	for _, tws := range out {
		byNumber[tws.TableNumber] = tws
	}

	// The server record for A may lag; local truth keeps it occupied.
	assert.Equal(t, enum.TableStatusOccupied, byNumber["1"].Status)
	assert.True(t, byNumber["1"].HasBill)
	assert.Equal(t, enum.TableStatusAvailable, byNumber["2"].Status)
}

func TestSession_RefreshSkippedDuringSwitch(t *testing.T) {
	tableA := makeTable("1")
	s := newTestSession(testConfig(), newFakeTableRepo(tableA), newFakeBillRepo(), newFakeCacheRepo())

	s.mu.Lock()
	s.switching = true
	s.mu.Unlock()

	_, err := s.RefreshTables(context.Background())
	assert.ErrorIs(t, err, ErrSwitchInProgress)
}

func TestManager_OpenGetClose(t *testing.T) {
	m := NewManager(testConfig(), newFakeTableRepo(), newFakeBillRepo(), newFakeCacheRepo(), zerolog.Nop())

	s := m.Open()
	got, ok := m.Get(s.ID())
	require.True(t, ok)
	assert.Same(t, s, got)

	assert.True(t, m.Close(s.ID()))
	_, ok = m.Get(s.ID())
	assert.False(t, ok)
	assert.False(t, m.Close(s.ID()), "closing twice reports not found")
}

func TestManager_HasActiveCart(t *testing.T) {
	tableA := makeTable("1")
	tableB := makeTable("2")
	m := NewManager(testConfig(), newFakeTableRepo(tableA, tableB), newFakeBillRepo(), newFakeCacheRepo(), zerolog.Nop())

	s := m.Open()
	defer m.Shutdown()

	assert.False(t, m.HasActiveCart(tableA.ID))

	_, err := s.SelectTable(context.Background(), tableA)
	require.NoError(t, err)
	require.NoError(t, s.AddItem(context.Background(), coffee()))
	assert.True(t, m.HasActiveCart(tableA.ID), "live cart blocks")

	// Switch away so the cart only lives in the memory cache.
	_, err = s.SelectTable(context.Background(), tableB)
	require.NoError(t, err)
	assert.True(t, m.HasActiveCart(tableA.ID), "cached cart blocks")
	assert.False(t, m.HasActiveCart(tableB.ID))
}
