package delivery

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockyard/internal/core/entity"
	"stockyard/internal/core/id"
	"stockyard/internal/domain/stock"
	"stockyard/pkg/numerator"
)

type mockTxManager struct{}

func (m *mockTxManager) RunInTransaction(ctx context.Context, fn func(context.Context) error) error {
	return fn(ctx)
}

type mockRepo struct {
	docs map[id.ID]*Delivery
}

func newMockRepo() *mockRepo { return &mockRepo{docs: map[id.ID]*Delivery{}} }

func (m *mockRepo) Create(ctx context.Context, d *Delivery) error {
	cp := *d
	m.docs[d.ID] = &cp
	return nil
}

func (m *mockRepo) GetByID(ctx context.Context, docID id.ID) (*Delivery, error) {
	d, ok := m.docs[docID]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *d
	return &cp, nil
}

func (m *mockRepo) Update(ctx context.Context, d *Delivery) error {
	if _, ok := m.docs[d.ID]; !ok {
		return pgx.ErrNoRows
	}
	cp := *d
	m.docs[d.ID] = &cp
	return nil
}

func (m *mockRepo) UpdateStatus(ctx context.Context, d *Delivery, updatedBy string) error {
	if _, ok := m.docs[d.ID]; !ok {
		return pgx.ErrNoRows
	}
	cp := *d
	m.docs[d.ID] = &cp
	return nil
}

func (m *mockRepo) List(ctx context.Context, filter ListFilter) ([]*Delivery, int, error) {
	var out []*Delivery
	for _, d := range m.docs {
		cp := *d
		out = append(out, &cp)
	}
	return out, len(out), nil
}

func (m *mockRepo) SetDeletionMark(ctx context.Context, docID id.ID, marked bool) error {
	d, ok := m.docs[docID]
	if !ok {
		return pgx.ErrNoRows
	}
	d.DeletionMark = marked
	return nil
}

type ledgerKey struct {
	product   id.ID
	warehouse id.ID
}

// mockLedger is an in-memory stock.Repository.
type mockLedger struct {
	entries   map[ledgerKey]*entity.StockEntry
	movements []entity.StockMovement
}

func newMockLedger() *mockLedger {
	return &mockLedger{entries: map[ledgerKey]*entity.StockEntry{}}
}

func (l *mockLedger) GetByID(ctx context.Context, entryID id.ID) (*entity.StockEntry, error) {
	for _, e := range l.entries {
		if e.ID == entryID {
			cp := *e
			return &cp, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (l *mockLedger) GetByKey(ctx context.Context, productID, warehouseID id.ID) (*entity.StockEntry, error) {
	e, ok := l.entries[ledgerKey{productID, warehouseID}]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *e
	return &cp, nil
}

func (l *mockLedger) GetByKeyForUpdate(ctx context.Context, productID, warehouseID id.ID) (*entity.StockEntry, error) {
	return l.GetByKey(ctx, productID, warehouseID)
}

func (l *mockLedger) List(ctx context.Context, filter stock.ListFilter) ([]*entity.StockEntry, int, error) {
	return nil, 0, nil
}

func (l *mockLedger) Create(ctx context.Context, entry *entity.StockEntry) error {
	cp := *entry
	l.entries[ledgerKey{entry.ProductID, entry.WarehouseID}] = &cp
	return nil
}

func (l *mockLedger) Update(ctx context.Context, entry *entity.StockEntry) error {
	cp := *entry
	l.entries[ledgerKey{entry.ProductID, entry.WarehouseID}] = &cp
	return nil
}

func (l *mockLedger) Delete(ctx context.Context, entryID id.ID) error {
	return pgx.ErrNoRows
}

func (l *mockLedger) CreateMovements(ctx context.Context, movements []entity.StockMovement) error {
	l.movements = append(l.movements, movements...)
	return nil
}

func newTestService() (*Service, *mockRepo, *mockLedger) {
	repo := newMockRepo()
	ledger := newMockLedger()
	stockSvc := stock.NewService(ledger, &mockTxManager{})
	svc := NewService(repo, stockSvc, &mockTxManager{}, &numerator.MockGenerator{})
	return svc, repo, ledger
}

func TestCreate_AssignsNumberAndStatus(t *testing.T) {
	svc, _, _ := newTestService()

	d := NewDelivery("wh-1")
	d.Lines = []Line{{ProductID: "p1", Quantity: 2}}

	require.NoError(t, svc.Create(context.Background(), d))
	assert.NotEmpty(t, d.Number)
	assert.Equal(t, StatusCreated, d.Status)

	stored, err := svc.GetByID(context.Background(), d.ID)
	require.NoError(t, err)
	assert.Equal(t, d.Number, stored.Number)
}

func TestSetStatus_UnknownRejected(t *testing.T) {
	svc, _, _ := newTestService()

	err := svc.SetStatus(context.Background(), id.New(), "warp_speed")
	require.Error(t, err)
}

func TestSetStatus_DeliveredFeedsLedger(t *testing.T) {
	svc, _, ledger := newTestService()

	warehouseID := id.New()
	productID := id.New()

	d := NewDelivery(warehouseID.String())
	d.Lines = []Line{{ProductID: productID.String(), Quantity: 6}}
	require.NoError(t, svc.Create(context.Background(), d))

	require.NoError(t, svc.SetStatus(context.Background(), d.ID, StatusInTransit))
	assert.Empty(t, ledger.entries)

	require.NoError(t, svc.SetStatus(context.Background(), d.ID, StatusDelivered))

	entry, err := ledger.GetByKey(context.Background(), productID, warehouseID)
	require.NoError(t, err)
	assert.Equal(t, 6, entry.Quantity)
	assert.Len(t, ledger.movements, 1)

	stored, err := svc.GetByID(context.Background(), d.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusDelivered, stored.Status)
	require.NotNil(t, stored.DeliveredAt)

	// Re-entering delivered must not double the stock
	require.NoError(t, svc.SetStatus(context.Background(), d.ID, StatusDelivered))
	entry, err = ledger.GetByKey(context.Background(), productID, warehouseID)
	require.NoError(t, err)
	assert.Equal(t, 6, entry.Quantity)
}
