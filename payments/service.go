package payments

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"tavolo/models"
	"tavolo/rdx"
)

var (
	ErrOrderNotFound = errors.New("order not found")
	ErrNotPayable    = errors.New("order is not pending online payment")
	ErrNotPaid       = errors.New("payment has not been completed")
	ErrMismatch      = errors.New("session does not belong to this order")
)

// OrderStore is the slice of the order store the payment flow needs. Payment
// confirmation only ever touches payment_status; order_status belongs to the
// staff dashboard.
type OrderStore interface {
	ByID(ctx context.Context, orderID string) (*models.Order, error)
	MarkPaid(ctx context.Context, orderID string) error
}

// Notifier sends the customer confirmation and owner alert for a paid order.
// It is fire-and-forget: a send failure is logged and never rolls back the
// confirmation.
type Notifier interface {
	OrderPaid(orderID string)
}

// NotifyGuard claims the one notification slot for an order. FirstClaim
// returns true only for the first caller, so a double verification cannot
// double-notify.
type NotifyGuard interface {
	FirstClaim(orderID string) bool
}

// RedisNotifyGuard backs the guard with a Redis SETNX key.
type RedisNotifyGuard struct{}

func (RedisNotifyGuard) FirstClaim(orderID string) bool {
	ok, err := rdx.RdxSetNX("order_notified:"+orderID, 24*time.Hour)
	if err != nil {
		// Redis being down must not block the guest's confirmation; risk a
		// duplicate mail instead of none.
		log.Println("notify guard:", err)
		return true
	}
	return ok
}

// Service owns the two-phase online payment flow: session creation before the
// redirect, verification after the guest returns.
type Service struct {
	orders      OrderStore
	sessions    SessionStore
	restaurants RestaurantNames
	provider    Provider
	notifier    Notifier
	guard       NotifyGuard
	returnURL   string
}

func NewService(orders OrderStore, sessions SessionStore, restaurants RestaurantNames,
	provider Provider, notifier Notifier, guard NotifyGuard, returnURL string) *Service {
	return &Service{
		orders:      orders,
		sessions:    sessions,
		restaurants: restaurants,
		provider:    provider,
		notifier:    notifier,
		guard:       guard,
		returnURL:   returnURL,
	}
}

// CreateSession opens an external payment session for a pending iDEAL order
// and returns the redirect URL. The order stays payment_status=pending until
// verification.
func (s *Service) CreateSession(ctx context.Context, orderID string) (*models.PaymentSession, error) {
	order, err := s.orders.ByID(ctx, orderID)
	if err != nil {
		return nil, ErrOrderNotFound
	}
	if order.PayMethod != models.PayMethodIdeal || order.PayStatus != models.PaymentPending {
		return nil, ErrNotPayable
	}

	name, err := s.restaurants.Name(ctx, order.RestaurantID)
	if err != nil {
		name = "your restaurant"
	}

	sess, err := s.provider.CreateSession(ctx, SessionRequest{
		OrderID:     order.OrderID,
		Amount:      order.Total,
		Description: fmt.Sprintf("Order #%d at %s", order.Number, name),
		Email:       order.Email,
		ReturnURL:   fmt.Sprintf("%s?order=%s", s.returnURL, order.OrderID),
	})
	if err != nil {
		return nil, err
	}
	if sess.ID == "" {
		// A session the provider never issued could not be verified later.
		return nil, errors.New("payment provider returned no session id")
	}

	record := &models.PaymentSession{
		SessionID:    sess.ID,
		OrderID:      order.OrderID,
		RestaurantID: order.RestaurantID,
		Amount:       order.Total,
		RedirectURL:  sess.RedirectURL,
		CreatedAt:    time.Now(),
	}
	if err := s.sessions.Save(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

// Verify confirms a returning guest's payment. The session must exist, must
// belong to the given order, and the provider must report it paid; only then
// is the order marked paid. Marking is idempotent and the notification fires
// at most once per order. Order status is never touched here.
func (s *Service) Verify(ctx context.Context, orderID, sessionID string) (*models.Order, error) {
	order, err := s.orders.ByID(ctx, orderID)
	if err != nil {
		return nil, ErrOrderNotFound
	}

	sess, err := s.sessions.ByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if sess.OrderID != order.OrderID {
		return nil, ErrMismatch
	}

	paid, err := s.provider.SessionPaid(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !paid {
		return nil, ErrNotPaid
	}

	if err := s.orders.MarkPaid(ctx, order.OrderID); err != nil {
		return nil, err
	}
	order.PayStatus = models.PaymentPaid

	if s.guard.FirstClaim(order.OrderID) {
		go s.notifier.OrderPaid(order.OrderID)
	}

	return order, nil
}
