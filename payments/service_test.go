package payments

import (
	"context"
	"sync"
	"testing"

	"tavolo/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeOrders struct {
	orders map[string]*models.Order
}

func (f *fakeOrders) ByID(_ context.Context, orderID string) (*models.Order, error) {
	o, ok := f.orders[orderID]
	if !ok {
		return nil, ErrOrderNotFound
	}
	copied := *o
	return &copied, nil
}

func (f *fakeOrders) MarkPaid(_ context.Context, orderID string) error {
	o, ok := f.orders[orderID]
	if !ok {
		return ErrOrderNotFound
	}
	o.PayStatus = models.PaymentPaid
	return nil
}

type fakeSessions struct {
	sessions map[string]*models.PaymentSession
}

func (f *fakeSessions) Save(_ context.Context, s *models.PaymentSession) error {
	if f.sessions == nil {
		f.sessions = make(map[string]*models.PaymentSession)
	}
	f.sessions[s.SessionID] = s
	return nil
}

func (f *fakeSessions) ByID(_ context.Context, sessionID string) (*models.PaymentSession, error) {
	s, ok := f.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

type fakeNames struct{}

func (fakeNames) Name(_ context.Context, _ string) (string, error) { return "Trattoria Uno", nil }

type fakeProvider struct {
	paid     bool
	noID     bool
	lastReq  SessionRequest
	sessions int
}

func (f *fakeProvider) CreateSession(_ context.Context, req SessionRequest) (*Session, error) {
	f.lastReq = req
	f.sessions++
	if f.noID {
		return &Session{RedirectURL: "https://pay.example/broken"}, nil
	}
	return &Session{ID: "sess_1", RedirectURL: "https://pay.example/sess_1"}, nil
}

func (f *fakeProvider) SessionPaid(_ context.Context, _ string) (bool, error) {
	return f.paid, nil
}

type countingNotifier struct {
	mu    sync.Mutex
	calls int
	done  chan struct{}
}

func (n *countingNotifier) OrderPaid(_ string) {
	n.mu.Lock()
	n.calls++
	n.mu.Unlock()
	if n.done != nil {
		n.done <- struct{}{}
	}
}

// onceGuard mirrors the Redis SETNX guard in memory.
type onceGuard struct {
	mu      sync.Mutex
	claimed map[string]bool
}

func (g *onceGuard) FirstClaim(orderID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.claimed == nil {
		g.claimed = make(map[string]bool)
	}
	if g.claimed[orderID] {
		return false
	}
	g.claimed[orderID] = true
	return true
}

func pendingIdealOrder() *models.Order {
	return &models.Order{
		OrderID:      "o1",
		Number:       7,
		RestaurantID: "r1",
		Name:         "Anna",
		Email:        "anna@example.com",
		PayMethod:    models.PayMethodIdeal,
		Total:        1850,
		Status:       models.StatusNew,
		PayStatus:    models.PaymentPending,
	}
}

func newTestService(orders *fakeOrders, sessions *fakeSessions, provider *fakeProvider,
	notifier *countingNotifier, guard *onceGuard) *Service {
	return NewService(orders, sessions, fakeNames{}, provider, notifier, guard,
		"https://menu.example/payment/return")
}

func TestCreateSession(t *testing.T) {
	orders := &fakeOrders{orders: map[string]*models.Order{"o1": pendingIdealOrder()}}
	sessions := &fakeSessions{}
	provider := &fakeProvider{}
	svc := newTestService(orders, sessions, provider, &countingNotifier{}, &onceGuard{})

	sess, err := svc.CreateSession(context.Background(), "o1")
	require.NoError(t, err)
	assert.Equal(t, "sess_1", sess.SessionID)
	assert.Equal(t, "https://pay.example/sess_1", sess.RedirectURL)
	assert.Equal(t, "o1", sess.OrderID)
	assert.Equal(t, int64(1850), sess.Amount)

	assert.Equal(t, "o1", provider.lastReq.OrderID)
	assert.Equal(t, "Order #7 at Trattoria Uno", provider.lastReq.Description)
	assert.Contains(t, provider.lastReq.ReturnURL, "order=o1")

	// the order stays pending until verification
	assert.Equal(t, models.PaymentPending, orders.orders["o1"].PayStatus)
}

func TestCreateSessionRequiresProviderID(t *testing.T) {
	orders := &fakeOrders{orders: map[string]*models.Order{"o1": pendingIdealOrder()}}
	sessions := &fakeSessions{}
	svc := newTestService(orders, sessions, &fakeProvider{noID: true}, &countingNotifier{}, &onceGuard{})

	_, err := svc.CreateSession(context.Background(), "o1")
	require.Error(t, err)
	// a session the provider never issued must not be persisted
	assert.Empty(t, sessions.sessions)
}

func TestCreateSessionRejectsNonIdeal(t *testing.T) {
	cash := pendingIdealOrder()
	cash.PayMethod = models.PayMethodCash
	orders := &fakeOrders{orders: map[string]*models.Order{"o1": cash}}
	svc := newTestService(orders, &fakeSessions{}, &fakeProvider{}, &countingNotifier{}, &onceGuard{})

	_, err := svc.CreateSession(context.Background(), "o1")
	assert.ErrorIs(t, err, ErrNotPayable)
}

func TestVerifyUnknownOrderFailsCleanly(t *testing.T) {
	svc := newTestService(&fakeOrders{orders: map[string]*models.Order{}},
		&fakeSessions{}, &fakeProvider{paid: true}, &countingNotifier{}, &onceGuard{})

	_, err := svc.Verify(context.Background(), "missing", "sess_1")
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestVerifyMarksPaidAndLeavesStatusAlone(t *testing.T) {
	orders := &fakeOrders{orders: map[string]*models.Order{"o1": pendingIdealOrder()}}
	sessions := &fakeSessions{}
	provider := &fakeProvider{paid: true}
	notifier := &countingNotifier{done: make(chan struct{}, 1)}
	svc := newTestService(orders, sessions, provider, notifier, &onceGuard{})

	_, err := svc.CreateSession(context.Background(), "o1")
	require.NoError(t, err)

	order, err := svc.Verify(context.Background(), "o1", "sess_1")
	require.NoError(t, err)
	assert.Equal(t, models.PaymentPaid, order.PayStatus)
	assert.Equal(t, models.StatusNew, order.Status)
	assert.Equal(t, models.PaymentPaid, orders.orders["o1"].PayStatus)
	assert.Equal(t, models.StatusNew, orders.orders["o1"].Status)

	<-notifier.done
}

func TestVerifyTwiceNotifiesOnce(t *testing.T) {
	orders := &fakeOrders{orders: map[string]*models.Order{"o1": pendingIdealOrder()}}
	sessions := &fakeSessions{}
	notifier := &countingNotifier{done: make(chan struct{}, 2)}
	svc := newTestService(orders, sessions, &fakeProvider{paid: true}, notifier, &onceGuard{})

	_, err := svc.CreateSession(context.Background(), "o1")
	require.NoError(t, err)

	_, err = svc.Verify(context.Background(), "o1", "sess_1")
	require.NoError(t, err)
	<-notifier.done

	// re-marking paid as paid is harmless, but only one notification fires
	_, err = svc.Verify(context.Background(), "o1", "sess_1")
	require.NoError(t, err)

	notifier.mu.Lock()
	defer notifier.mu.Unlock()
	assert.Equal(t, 1, notifier.calls)
}

func TestVerifyRequiresProviderPaid(t *testing.T) {
	orders := &fakeOrders{orders: map[string]*models.Order{"o1": pendingIdealOrder()}}
	sessions := &fakeSessions{}
	svc := newTestService(orders, sessions, &fakeProvider{paid: false}, &countingNotifier{}, &onceGuard{})

	_, err := svc.CreateSession(context.Background(), "o1")
	require.NoError(t, err)

	_, err = svc.Verify(context.Background(), "o1", "sess_1")
	assert.ErrorIs(t, err, ErrNotPaid)
	assert.Equal(t, models.PaymentPending, orders.orders["o1"].PayStatus)
}

func TestVerifyRejectsForeignSession(t *testing.T) {
	orders := &fakeOrders{orders: map[string]*models.Order{
		"o1": pendingIdealOrder(),
	}}
	sessions := &fakeSessions{sessions: map[string]*models.PaymentSession{
		"sess_other": {SessionID: "sess_other", OrderID: "o2"},
	}}
	svc := newTestService(orders, sessions, &fakeProvider{paid: true}, &countingNotifier{}, &onceGuard{})

	_, err := svc.Verify(context.Background(), "o1", "sess_other")
	assert.ErrorIs(t, err, ErrMismatch)

	_, err = svc.Verify(context.Background(), "o1", "sess_unknown")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}
