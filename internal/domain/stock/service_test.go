package stock

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockyard/internal/core/apperror"
	"stockyard/internal/core/entity"
	"stockyard/internal/core/id"
)

// mockTxManager runs the callback with transaction semantics over the
// mock repo: entries and movements are snapshotted before the callback
// and restored when it returns an error, mirroring what the real pgx
// transaction does on rollback. A zero-value manager (no repo) just
// runs the callback.
type mockTxManager struct {
	repo  *mockRepo
	calls int
}

func (m *mockTxManager) RunInTransaction(ctx context.Context, fn func(context.Context) error) error {
	m.calls++
	if m.repo == nil {
		return fn(ctx)
	}

	entries := make(map[pairKey]*entity.StockEntry, len(m.repo.entries))
	for k, e := range m.repo.entries {
		cp := *e
		entries[k] = &cp
	}
	movements := append([]entity.StockMovement(nil), m.repo.movements...)

	if err := fn(ctx); err != nil {
		m.repo.entries = entries
		m.repo.movements = movements
		return err
	}
	return nil
}

type pairKey struct {
	product   id.ID
	warehouse id.ID
}

// mockRepo is an in-memory ledger. Writes land directly in the maps;
// rollback comes from mockTxManager restoring its snapshot.
type mockRepo struct {
	entries   map[pairKey]*entity.StockEntry
	movements []entity.StockMovement

	failOn      pairKey
	failEnabled bool
}

func newMockRepo() *mockRepo {
	return &mockRepo{entries: map[pairKey]*entity.StockEntry{}}
}

func (m *mockRepo) GetByID(ctx context.Context, entryID id.ID) (*entity.StockEntry, error) {
	for _, e := range m.entries {
		if e.ID == entryID {
			cp := *e
			return &cp, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (m *mockRepo) GetByKey(ctx context.Context, productID, warehouseID id.ID) (*entity.StockEntry, error) {
	e, ok := m.entries[pairKey{productID, warehouseID}]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *e
	return &cp, nil
}

func (m *mockRepo) GetByKeyForUpdate(ctx context.Context, productID, warehouseID id.ID) (*entity.StockEntry, error) {
	return m.GetByKey(ctx, productID, warehouseID)
}

func (m *mockRepo) List(ctx context.Context, filter ListFilter) ([]*entity.StockEntry, int, error) {
	var out []*entity.StockEntry
	for _, e := range m.entries {
		if filter.WarehouseID != nil && e.WarehouseID != *filter.WarehouseID {
			continue
		}
		if filter.BelowMin && !e.BelowMinimum() {
			continue
		}
		cp := *e
		out = append(out, &cp)
	}
	return out, len(out), nil
}

func (m *mockRepo) Create(ctx context.Context, entry *entity.StockEntry) error {
	key := pairKey{entry.ProductID, entry.WarehouseID}
	if m.failEnabled && key == m.failOn {
		return errors.New("storage failure")
	}
	cp := *entry
	m.entries[key] = &cp
	return nil
}

func (m *mockRepo) Update(ctx context.Context, entry *entity.StockEntry) error {
	key := pairKey{entry.ProductID, entry.WarehouseID}
	if m.failEnabled && key == m.failOn {
		return errors.New("storage failure")
	}
	cp := *entry
	m.entries[key] = &cp
	return nil
}

func (m *mockRepo) Delete(ctx context.Context, entryID id.ID) error {
	for k, e := range m.entries {
		if e.ID == entryID {
			delete(m.entries, k)
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (m *mockRepo) CreateMovements(ctx context.Context, movements []entity.StockMovement) error {
	m.movements = append(m.movements, movements...)
	return nil
}

func strPtr(s string) *string { return &s }

func TestApplyReceiving_CreatesAndIncrements(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo, &mockTxManager{})

	warehouseID := id.New()
	productID := id.New()

	batch := ReceivingBatch{
		WarehouseID: warehouseID.String(),
		Items: []ReceivingItem{
			{ProductID: strPtr(productID.String()), Quantity: 5},
		},
	}

	result, err := svc.ApplyReceiving(context.Background(), batch)
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, 1, result.UpdatedCount)

	entry, err := repo.GetByKey(context.Background(), productID, warehouseID)
	require.NoError(t, err)
	assert.Equal(t, 5, entry.Quantity)
	assert.Equal(t, 0, entry.MinQuantity)

	// Applying the same batch again doubles the quantity
	result, err = svc.ApplyReceiving(context.Background(), batch)
	require.NoError(t, err)
	assert.Equal(t, 1, result.UpdatedCount)

	entry, err = repo.GetByKey(context.Background(), productID, warehouseID)
	require.NoError(t, err)
	assert.Equal(t, 10, entry.Quantity)
}

func TestApplyReceiving_RejectsEmptyWarehouse(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo, &mockTxManager{})

	_, err := svc.ApplyReceiving(context.Background(), ReceivingBatch{
		WarehouseID: "",
		Items:       []ReceivingItem{{ProductID: strPtr(id.New().String()), Quantity: 1}},
	})

	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)
	assert.Empty(t, repo.entries)
	assert.Empty(t, repo.movements)
}

func TestApplyReceiving_RejectsEmptyItems(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo, &mockTxManager{})

	_, err := svc.ApplyReceiving(context.Background(), ReceivingBatch{
		WarehouseID: id.New().String(),
		Items:       nil,
	})

	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)
	assert.Empty(t, repo.entries)
}

func TestApplyReceiving_SkipsInvalidLines(t *testing.T) {
	repo := newMockRepo()
	txm := &mockTxManager{}
	svc := NewService(repo, txm)

	warehouseID := id.New()
	goodProduct := id.New()

	batch := ReceivingBatch{
		WarehouseID: warehouseID.String(),
		Items: []ReceivingItem{
			{ProductID: nil, Quantity: 3},                             // no product
			{ProductID: strPtr(""), Quantity: 3},                      // blank product
			{ProductID: strPtr(goodProduct.String()), Quantity: 0},    // zero qty
			{ProductID: strPtr(goodProduct.String()), Quantity: -2},   // negative qty
			{ProductID: strPtr("not-a-uuid"), Quantity: 3},            // malformed
			{ProductID: strPtr(goodProduct.String()), Quantity: 7},    // valid
		},
	}

	result, err := svc.ApplyReceiving(context.Background(), batch)
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, 1, result.UpdatedCount)

	entry, err := repo.GetByKey(context.Background(), goodProduct, warehouseID)
	require.NoError(t, err)
	assert.Equal(t, 7, entry.Quantity)
	assert.Len(t, repo.movements, 1)
}

func TestApplyReceiving_AllLinesInvalid(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo, &mockTxManager{})

	result, err := svc.ApplyReceiving(context.Background(), ReceivingBatch{
		WarehouseID: id.New().String(),
		Items: []ReceivingItem{
			{ProductID: nil, Quantity: 1},
			{ProductID: strPtr(id.New().String()), Quantity: 0},
		},
	})

	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, 0, result.UpdatedCount)
	assert.Empty(t, repo.entries)
	assert.Empty(t, repo.movements)
}

func TestApplyReceiving_StorageFailureRollsBack(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo, &mockTxManager{repo: repo})

	warehouseID := id.New()
	existing := id.New()
	first := id.New()
	second := id.New()

	// Pre-existing balance that must survive the failed batch untouched
	seeded := entity.NewStockEntry(existing, warehouseID, 3)
	require.NoError(t, repo.Create(context.Background(), &seeded))

	before := make(map[pairKey]entity.StockEntry, len(repo.entries))
	for k, e := range repo.entries {
		before[k] = *e
	}

	repo.failOn = pairKey{second, warehouseID}
	repo.failEnabled = true

	_, err := svc.ApplyReceiving(context.Background(), ReceivingBatch{
		WarehouseID: warehouseID.String(),
		Items: []ReceivingItem{
			{ProductID: strPtr(first.String()), Quantity: 4},
			{ProductID: strPtr(existing.String()), Quantity: 2},
			{ProductID: strPtr(second.String()), Quantity: 4},
		},
	})

	require.Error(t, err)

	// The first line's insert and the increment on the seeded entry are
	// both discarded with the batch
	require.Len(t, repo.entries, len(before))
	for k, want := range before {
		got, ok := repo.entries[k]
		require.True(t, ok)
		assert.Equal(t, want, *got)
	}
	assert.Empty(t, repo.movements)
}

func TestApplyReceiving_WritesMovementJournal(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo, &mockTxManager{})

	warehouseID := id.New()
	productA := id.New()
	productB := id.New()

	_, err := svc.ApplyReceiving(context.Background(), ReceivingBatch{
		WarehouseID: warehouseID.String(),
		Items: []ReceivingItem{
			{ProductID: strPtr(productA.String()), Quantity: 2},
			{ProductID: strPtr(productB.String()), Quantity: 9},
		},
	})
	require.NoError(t, err)

	require.Len(t, repo.movements, 2)
	for _, mv := range repo.movements {
		assert.Equal(t, RecorderTypeReceiving, mv.RecorderType)
		assert.Equal(t, entity.RecordTypeReceipt, mv.RecordType)
		assert.Equal(t, warehouseID, mv.WarehouseID)
	}
	// Both rows belong to the same batch
	assert.Equal(t, repo.movements[0].RecorderID, repo.movements[1].RecorderID)
}

func TestAdjust_PositiveDeltaCreatesEntry(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo, &mockTxManager{})

	productID := id.New()
	warehouseID := id.New()

	entry, err := svc.Adjust(context.Background(), productID, warehouseID, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, entry.Quantity)

	entry, err = svc.Adjust(context.Background(), productID, warehouseID, -2)
	require.NoError(t, err)
	assert.Equal(t, 1, entry.Quantity)
}

func TestAdjust_NegativeBelowZeroRejected(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo, &mockTxManager{})

	productID := id.New()
	warehouseID := id.New()

	_, err := svc.Adjust(context.Background(), productID, warehouseID, 5)
	require.NoError(t, err)

	_, err = svc.Adjust(context.Background(), productID, warehouseID, -6)
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeInsufficientStock, appErr.Code)

	// Quantity unchanged after the rejected adjustment
	entry, err := repo.GetByKey(context.Background(), productID, warehouseID)
	require.NoError(t, err)
	assert.Equal(t, 5, entry.Quantity)
}

func TestAdjust_NegativeOnMissingEntryRejected(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo, &mockTxManager{})

	_, err := svc.Adjust(context.Background(), id.New(), id.New(), -1)
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeInsufficientStock, appErr.Code)
}

func TestAdjust_ZeroDeltaRejected(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo, &mockTxManager{})

	_, err := svc.Adjust(context.Background(), id.New(), id.New(), 0)
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)
}

func TestSetMinQuantity(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo, &mockTxManager{})

	productID := id.New()
	warehouseID := id.New()

	_, err := svc.Adjust(context.Background(), productID, warehouseID, 2)
	require.NoError(t, err)

	entry, err := svc.SetMinQuantity(context.Background(), productID, warehouseID, 10)
	require.NoError(t, err)
	assert.Equal(t, 10, entry.MinQuantity)
	assert.True(t, entry.BelowMinimum())

	_, err = svc.SetMinQuantity(context.Background(), productID, warehouseID, -1)
	require.Error(t, err)

	_, err = svc.SetMinQuantity(context.Background(), id.New(), warehouseID, 1)
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
}

func TestListBelowMinimum(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo, &mockTxManager{})

	warehouseID := id.New()
	low := id.New()
	ok := id.New()

	_, err := svc.Adjust(context.Background(), low, warehouseID, 1)
	require.NoError(t, err)
	_, err = svc.SetMinQuantity(context.Background(), low, warehouseID, 5)
	require.NoError(t, err)

	_, err = svc.Adjust(context.Background(), ok, warehouseID, 20)
	require.NoError(t, err)

	entries, err := svc.ListBelowMinimum(context.Background(), &warehouseID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, low, entries[0].ProductID)
}

func TestCreate_NewEntryAndConflict(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo, &mockTxManager{})

	productID := id.New()
	warehouseID := id.New()

	entry, err := svc.Create(context.Background(), productID, warehouseID, 3, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, entry.Quantity)
	assert.Equal(t, 2, entry.MinQuantity)

	_, err = svc.Create(context.Background(), productID, warehouseID, 1, 0)
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeDuplicate, appErr.Code)

	_, err = svc.Create(context.Background(), productID, warehouseID, -1, 0)
	require.Error(t, err)
}

func TestDelete_RemovesEntry(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo, &mockTxManager{})

	entry, err := svc.Create(context.Background(), id.New(), id.New(), 7, 0)
	require.NoError(t, err)

	got, err := svc.GetByID(context.Background(), entry.ID)
	require.NoError(t, err)
	assert.Equal(t, 7, got.Quantity)

	require.NoError(t, svc.Delete(context.Background(), entry.ID))

	_, err = svc.GetByID(context.Background(), entry.ID)
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))

	err = svc.Delete(context.Background(), entry.ID)
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
}
