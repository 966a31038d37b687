package order

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Qathar8/Arianna-beauty/internal/dto"
	"github.com/Qathar8/Arianna-beauty/internal/entity"
	repo "github.com/Qathar8/Arianna-beauty/internal/repository/order"
	"github.com/Qathar8/Arianna-beauty/pkg/errorbank"
)

// fakeStore is an in-memory Store double tracking writes.
type fakeStore struct {
	orders      map[int64]entity.Order
	nextID      int64
	createCalls int
	patchCalls  []map[string]any
	failGet     error
}

func newFakeStore() *fakeStore {
	return &fakeStore{orders: make(map[int64]entity.Order), nextID: 1}
}

func (f *fakeStore) ListRecent(ctx context.Context) ([]entity.Order, error) {
	out := make([]entity.Order, 0, len(f.orders))
	for _, o := range f.orders {
		out = append(out, o)
	}
	return out, nil
}

func (f *fakeStore) GetByIDFromWriter(ctx context.Context, id int64) (*entity.Order, error) {
	if f.failGet != nil {
		return nil, f.failGet
	}
	o, ok := f.orders[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return &o, nil
}

func (f *fakeStore) Create(ctx context.Context, order *entity.Order) error {
	f.createCalls++
	order.ID = f.nextID
	f.nextID++
	f.orders[order.ID] = *order
	return nil
}

func (f *fakeStore) Patch(ctx context.Context, id int64, fields map[string]any) error {
	f.patchCalls = append(f.patchCalls, fields)
	o, ok := f.orders[id]
	if !ok {
		return repo.ErrNotFound
	}
	if v, ok := fields["status"]; ok {
		o.Status = v.(string)
	}
	if v, ok := fields["whatsapp"]; ok {
		o.Whatsapp = v.(string)
	}
	f.orders[id] = o
	return nil
}

func newTestService(store Store) *Service {
	return &Service{store: store}
}

func int64Ptr(v int64) *int64 { return &v }

func strPtr(s string) *string { return &s }

func TestCreateRejectsEmptyItems(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)

	_, err := svc.Create(context.Background(), dto.CreateOrderRequest{
		Items: nil,
		Total: int64Ptr(5000),
	})

	require.Error(t, err)
	assert.Equal(t, errorbank.KindBadRequest, errorbank.From(err).Kind())
	assert.Contains(t, errorbank.From(err).Message(), "items")
	assert.Zero(t, store.createCalls, "validation failure must not touch the store")
}

func TestCreateRejectsMissingTotal(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)

	_, err := svc.Create(context.Background(), dto.CreateOrderRequest{
		Items: []dto.OrderItem{{ID: 1, Name: "Rose Oil", Price: 2500, Quantity: 2}},
	})

	require.Error(t, err)
	assert.Equal(t, errorbank.KindBadRequest, errorbank.From(err).Kind())
	assert.Contains(t, errorbank.From(err).Message(), "total")
	assert.Zero(t, store.createCalls)
}

func TestCreateRejectsNegativeTotal(t *testing.T) {
	svc := newTestService(newFakeStore())

	_, err := svc.Create(context.Background(), dto.CreateOrderRequest{
		Items: []dto.OrderItem{{ID: 1, Name: "Rose Oil", Price: 2500, Quantity: 2}},
		Total: int64Ptr(-1),
	})

	require.Error(t, err)
	assert.Equal(t, errorbank.KindBadRequest, errorbank.From(err).Kind())
}

func TestCreateDefaultsWhatsappSentinel(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)

	items := []dto.OrderItem{{ID: 1, Name: "Rose Oil", Price: 2500, Quantity: 2}}
	created, err := svc.Create(context.Background(), dto.CreateOrderRequest{
		Items: items,
		Total: int64Ptr(5000),
	})

	require.NoError(t, err)
	assert.Equal(t, entity.SentinelPendingContact, created.Whatsapp)
	assert.Equal(t, int64(5000), created.Total)
	require.Len(t, created.Items, 1)
	assert.Equal(t, int64(2), created.Items[0].Quantity)
	assert.NotZero(t, created.ID)
}

func TestCreateKeepsSuppliedWhatsapp(t *testing.T) {
	svc := newTestService(newFakeStore())

	created, err := svc.Create(context.Background(), dto.CreateOrderRequest{
		Items:    []dto.OrderItem{{ID: 1, Name: "Rose Oil", Price: 2500, Quantity: 1}},
		Total:    int64Ptr(2500),
		Whatsapp: "+254700000000",
	})

	require.NoError(t, err)
	assert.Equal(t, "+254700000000", created.Whatsapp)
}

func TestCreateSurfacesPostWriteReadFailure(t *testing.T) {
	store := newFakeStore()
	store.failGet = errors.New("replica lag")
	svc := newTestService(store)

	_, err := svc.Create(context.Background(), dto.CreateOrderRequest{
		Items: []dto.OrderItem{{ID: 1, Name: "Rose Oil", Price: 2500, Quantity: 1}},
		Total: int64Ptr(2500),
	})

	require.Error(t, err)
	assert.Equal(t, errorbank.KindInternal, errorbank.From(err).Kind())
}

func TestPatchRejectsEmptyFieldSet(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)

	_, err := svc.Patch(context.Background(), 1, dto.PatchOrderRequest{})

	require.Error(t, err)
	assert.Equal(t, errorbank.KindBadRequest, errorbank.From(err).Kind())
	assert.Empty(t, store.patchCalls)
}

func TestPatchUnknownOrderIsNotFound(t *testing.T) {
	svc := newTestService(newFakeStore())

	_, err := svc.Patch(context.Background(), 99, dto.PatchOrderRequest{Whatsapp: strPtr("+254700000000")})

	require.Error(t, err)
	assert.Equal(t, errorbank.KindNotFound, errorbank.From(err).Kind())
}

func TestPatchAppliesOnlySuppliedFields(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)

	seedItems, err := encodeItems([]dto.OrderItem{{ID: 1, Name: "Rose Oil", Price: 2500, Quantity: 2}})
	require.NoError(t, err)
	store.orders[1] = entity.Order{
		ID: 1, Items: seedItems, Total: 5000,
		Whatsapp:  entity.SentinelPendingContact,
		Status:    "new",
		CreatedAt: time.Now().UTC(),
	}
	store.nextID = 2

	patched, err := svc.Patch(context.Background(), 1, dto.PatchOrderRequest{Whatsapp: strPtr("+254700000000")})
	require.NoError(t, err)

	require.Len(t, store.patchCalls, 1)
	assert.Equal(t, map[string]any{"whatsapp": "+254700000000"}, store.patchCalls[0])
	assert.Equal(t, "+254700000000", patched.Whatsapp)
	assert.Equal(t, "new", patched.Status, "status must stay untouched")
	assert.Equal(t, int64(5000), patched.Total)
}

func TestListDecodesItemsPerRow(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)

	raw, err := encodeItems([]dto.OrderItem{{ID: 3, Name: "Matte Lipstick Set", Price: 180000, Quantity: 1}})
	require.NoError(t, err)
	store.orders[1] = entity.Order{ID: 1, Items: raw, Total: 180000, Whatsapp: entity.SentinelPendingContact}

	views, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, views, 1)
	require.Len(t, views[0].Items, 1)
	assert.Equal(t, "Matte Lipstick Set", views[0].Items[0].Name)
}

func TestListFailsOnCorruptItems(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)

	store.orders[1] = entity.Order{ID: 1, Items: "{corrupt", Total: 100}

	_, err := svc.List(context.Background())
	require.Error(t, err)
	assert.Equal(t, errorbank.KindInternal, errorbank.From(err).Kind())
}
