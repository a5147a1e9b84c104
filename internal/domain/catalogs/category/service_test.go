package category

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockyard/internal/core/apperror"
	"stockyard/internal/core/id"
	"stockyard/internal/domain"
)

type mockTxManager struct{}

func (m *mockTxManager) RunInTransaction(ctx context.Context, fn func(context.Context) error) error {
	return fn(ctx)
}

// mockRepo is an in-memory category store keyed by ID.
type mockRepo struct {
	items map[id.ID]*Category
}

func newMockRepo() *mockRepo {
	return &mockRepo{items: map[id.ID]*Category{}}
}

func (m *mockRepo) Create(ctx context.Context, c *Category) error {
	m.items[c.ID] = c
	return nil
}

func (m *mockRepo) GetByID(ctx context.Context, categoryID id.ID) (*Category, error) {
	c, ok := m.items[categoryID]
	if !ok {
		return nil, apperror.NewNotFound("category", categoryID.String())
	}
	return c, nil
}

func (m *mockRepo) GetByCode(ctx context.Context, code string) (*Category, error) {
	for _, c := range m.items {
		if c.Code == code {
			return c, nil
		}
	}
	return nil, apperror.NewNotFound("category", code)
}

func (m *mockRepo) Update(ctx context.Context, c *Category) error {
	m.items[c.ID] = c
	return nil
}

func (m *mockRepo) Delete(ctx context.Context, categoryID id.ID) error {
	c, ok := m.items[categoryID]
	if !ok {
		return apperror.NewNotFound("category", categoryID.String())
	}
	c.DeletionMark = true
	return nil
}

func (m *mockRepo) SetDeletionMark(ctx context.Context, categoryID id.ID, marked bool) error {
	c, ok := m.items[categoryID]
	if !ok {
		return apperror.NewNotFound("category", categoryID.String())
	}
	c.DeletionMark = marked
	return nil
}

func (m *mockRepo) List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*Category], error) {
	var out []*Category
	for _, c := range m.items {
		if !filter.IncludeDeleted && c.DeletionMark {
			continue
		}
		out = append(out, c)
	}
	return domain.ListResult[*Category]{
		Items:      out,
		TotalCount: int64(len(out)),
	}, nil
}

func (m *mockRepo) Exists(ctx context.Context, categoryID id.ID) (bool, error) {
	_, ok := m.items[categoryID]
	return ok, nil
}

func (m *mockRepo) ExistsByCode(ctx context.Context, code string) (bool, error) {
	for _, c := range m.items {
		if c.Code == code {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockRepo) ListMandatory(ctx context.Context) ([]*Category, error) {
	var out []*Category
	for _, c := range m.items {
		if c.Mandatory && !c.DeletionMark {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *mockRepo) ListChildren(ctx context.Context, parentID string) ([]*Category, error) {
	var out []*Category
	for _, c := range m.items {
		if c.ParentID != nil && *c.ParentID == parentID {
			out = append(out, c)
		}
	}
	return out, nil
}

func newTestService() (*Service, *mockRepo) {
	repo := newMockRepo()
	return NewService(repo, &mockTxManager{}), repo
}

func mustCreate(t *testing.T, svc *Service, c *Category) *Category {
	t.Helper()
	require.NoError(t, svc.Create(context.Background(), c))
	return c
}

func TestCreate_RootAndChild(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	root := mustCreate(t, svc, NewCategory("IT", "IT equipment"))

	child := NewCategory("SERVER", "Server")
	child.SetParent(root.ID.String())
	child.Mandatory = true

	require.NoError(t, svc.Create(ctx, child))
}

func TestCreate_RejectsThirdLevel(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	root := mustCreate(t, svc, NewCategory("IT", "IT equipment"))

	child := NewCategory("SERVER", "Server")
	child.SetParent(root.ID.String())
	mustCreate(t, svc, child)

	grandchild := NewCategory("RACK", "Rack server")
	grandchild.SetParent(child.ID.String())

	err := svc.Create(ctx, grandchild)
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeBusinessRule, appErr.Code)
}

func TestCreate_InvalidParentID(t *testing.T) {
	svc, _ := newTestService()

	c := NewCategory("SERVER", "Server")
	c.SetParent("not-a-uuid")

	err := svc.Create(context.Background(), c)
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)
}

func TestCreate_MissingParent(t *testing.T) {
	svc, _ := newTestService()

	c := NewCategory("SERVER", "Server")
	c.SetParent(id.New().String())

	err := svc.Create(context.Background(), c)
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
}

func TestCreate_DuplicateCode(t *testing.T) {
	svc, _ := newTestService()

	mustCreate(t, svc, NewCategory("IT", "IT equipment"))

	err := svc.Create(context.Background(), NewCategory("IT", "Another IT"))
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeDuplicate, appErr.Code)
}

func TestTree_GroupsChildrenUnderRoots(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	it := mustCreate(t, svc, NewCategory("IT", "IT equipment"))
	store := mustCreate(t, svc, NewCategory("STORE", "Store equipment"))

	server := NewCategory("SERVER", "Server")
	server.SetParent(it.ID.String())
	mustCreate(t, svc, server)

	rack := NewCategory("RACK_SHELF", "Rack shelf")
	rack.SetParent(store.ID.String())
	mustCreate(t, svc, rack)

	nodes, err := svc.Tree(ctx)
	require.NoError(t, err)
	require.Len(t, nodes, 2)

	byCode := make(map[string]*Node)
	for _, n := range nodes {
		byCode[n.Category.Code] = n
	}

	require.Contains(t, byCode, "IT")
	require.Contains(t, byCode, "STORE")
	require.Len(t, byCode["IT"].Children, 1)
	assert.Equal(t, "SERVER", byCode["IT"].Children[0].Code)
	require.Len(t, byCode["STORE"].Children, 1)
	assert.Equal(t, "RACK_SHELF", byCode["STORE"].Children[0].Code)
}

func TestListMandatory(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	it := mustCreate(t, svc, NewCategory("IT", "IT equipment"))

	server := NewCategory("SERVER", "Server")
	server.SetParent(it.ID.String())
	server.Mandatory = true
	mustCreate(t, svc, server)

	monitor := NewCategory("MONITOR", "Monitor")
	monitor.SetParent(it.ID.String())
	mustCreate(t, svc, monitor)

	mandatory, err := svc.ListMandatory(ctx)
	require.NoError(t, err)
	require.Len(t, mandatory, 1)
	assert.Equal(t, "SERVER", mandatory[0].Code)
}
