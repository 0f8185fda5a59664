package orders

import (
	"context"
	"testing"

	"tavolo/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStorage struct {
	orders map[string]*models.Order
	items  map[string][]models.OrderItem
}

func newFakeStorage(orders ...*models.Order) *fakeStorage {
	f := &fakeStorage{
		orders: make(map[string]*models.Order),
		items:  make(map[string][]models.OrderItem),
	}
	for _, o := range orders {
		f.orders[o.OrderID] = o
	}
	return f
}

func (f *fakeStorage) ByID(_ context.Context, orderID string) (*models.Order, error) {
	o, ok := f.orders[orderID]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *o
	return &copied, nil
}

func (f *fakeStorage) ItemsFor(_ context.Context, orderID string) ([]models.OrderItem, error) {
	return f.items[orderID], nil
}

func (f *fakeStorage) ByRestaurant(_ context.Context, restaurantID string, status models.OrderStatus, _, _ int64) ([]models.Order, error) {
	var out []models.Order
	for _, o := range f.orders {
		if o.RestaurantID != restaurantID {
			continue
		}
		if status != "" && o.Status != status {
			continue
		}
		out = append(out, *o)
	}
	return out, nil
}

func (f *fakeStorage) SetStatus(_ context.Context, orderID string, to models.OrderStatus) error {
	o, ok := f.orders[orderID]
	if !ok {
		return ErrNotFound
	}
	o.Status = to
	return nil
}

func TestAdvanceWalksTheChain(t *testing.T) {
	store := newFakeStorage(&models.Order{OrderID: "o1", RestaurantID: "r1", Status: models.StatusNew})
	svc := NewService(store)

	for _, want := range []models.OrderStatus{
		models.StatusConfirmed, models.StatusPreparing, models.StatusReady, models.StatusDelivered,
	} {
		o, err := svc.Advance(context.Background(), "r1", "o1")
		require.NoError(t, err)
		assert.Equal(t, want, o.Status)
	}

	_, err := svc.Advance(context.Background(), "r1", "o1")
	assert.ErrorIs(t, err, ErrTerminal)
}

func TestAdvanceUnknownOrder(t *testing.T) {
	svc := NewService(newFakeStorage())
	_, err := svc.Advance(context.Background(), "r1", "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAdvanceWrongRestaurant(t *testing.T) {
	store := newFakeStorage(&models.Order{OrderID: "o1", RestaurantID: "r1", Status: models.StatusNew})
	svc := NewService(store)

	_, err := svc.Advance(context.Background(), "r2", "o1")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, models.StatusNew, store.orders["o1"].Status)
}

func TestCancelFromAnyNonTerminal(t *testing.T) {
	for _, from := range []models.OrderStatus{
		models.StatusNew, models.StatusConfirmed, models.StatusPreparing, models.StatusReady,
	} {
		store := newFakeStorage(&models.Order{OrderID: "o1", RestaurantID: "r1", Status: from})
		svc := NewService(store)

		o, err := svc.Cancel(context.Background(), "r1", "o1")
		require.NoError(t, err, "cancel from %s", from)
		assert.Equal(t, models.StatusCancelled, o.Status)
	}
}

func TestCancelTerminalRejected(t *testing.T) {
	for _, from := range []models.OrderStatus{models.StatusDelivered, models.StatusCancelled} {
		store := newFakeStorage(&models.Order{OrderID: "o1", RestaurantID: "r1", Status: from})
		svc := NewService(store)

		_, err := svc.Cancel(context.Background(), "r1", "o1")
		assert.ErrorIs(t, err, ErrTerminal)
		assert.Equal(t, from, store.orders["o1"].Status)
	}
}

func TestGetScopesToRestaurant(t *testing.T) {
	store := newFakeStorage(&models.Order{OrderID: "o1", RestaurantID: "r1", Status: models.StatusNew})
	store.items["o1"] = []models.OrderItem{{OrderID: "o1", Name: "Margherita", Quantity: 2}}
	svc := NewService(store)

	o, items, err := svc.Get(context.Background(), "r1", "o1")
	require.NoError(t, err)
	assert.Equal(t, "o1", o.OrderID)
	assert.Len(t, items, 1)

	_, _, err = svc.Get(context.Background(), "r2", "o1")
	assert.ErrorIs(t, err, ErrNotFound)
}
