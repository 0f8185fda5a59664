package checkout

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tavolo/billing"
	"tavolo/models"
	"tavolo/utils"

	"github.com/google/uuid"
)

var ErrOrderingDisabled = errors.New("ordering is not available for this restaurant")

// ValidationError is a guest-facing rejection; nothing is persisted when one
// is returned.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string { return e.Msg }

// BelowMinimumError carries the shortfall so the UI can display
// "minimum order is €X".
type BelowMinimumError struct {
	Minimum   int64
	Shortfall int64
}

func (e *BelowMinimumError) Error() string {
	return fmt.Sprintf("minimum order is %s", utils.FormatEuros(e.Minimum))
}

// OrderCreator persists an order and its items as one unit.
type OrderCreator interface {
	CreateWithItems(ctx context.Context, o *models.Order, items []models.OrderItem) error
}

// SettingsSource supplies the restaurant's ordering configuration.
type SettingsSource interface {
	OrderingSettings(ctx context.Context, restaurantID string) (*models.OrderingSettings, error)
}

// Submission is everything the guest sends at checkout, plus the cart lines
// captured from their session.
type Submission struct {
	RestaurantID string            `json:"restaurantId"`
	Lines        []models.CartLine `json:"-"`
	Fulfillment  string            `json:"fulfillment"`
	PayMethod    string            `json:"payMethod"`
	Name         string            `json:"name"`
	Phone        string            `json:"phone"`
	Email        string            `json:"email"`
	Address      string            `json:"address"`
	PostalCode   string            `json:"postalCode"`
	City         string            `json:"city"`
	Notes        string            `json:"notes"`
}

// Service turns a cart plus guest fields into a durable order.
type Service struct {
	store    OrderCreator
	settings SettingsSource
	billing  billing.CapabilityResolver
	now      func() time.Time
}

func NewService(store OrderCreator, settings SettingsSource, resolver billing.CapabilityResolver) *Service {
	return &Service{store: store, settings: settings, billing: resolver, now: time.Now}
}

// Submit validates the submission and atomically creates the order with its
// items. Validation is ordered and the first failure wins: contact fields,
// then delivery fields, then the minimum order amount. Prices and quantities
// are copied verbatim from the cart lines; the catalog is never re-consulted,
// so a mid-session price change cannot affect an in-flight order.
func (s *Service) Submit(ctx context.Context, sub Submission) (*models.Order, error) {
	if len(sub.Lines) == 0 {
		return nil, &ValidationError{Field: "cart", Msg: "cart is empty"}
	}

	included, err := s.billing.OrderingIncluded(ctx, sub.RestaurantID)
	if err != nil {
		return nil, err
	}
	if !included {
		return nil, ErrOrderingDisabled
	}

	st, err := s.settings.OrderingSettings(ctx, sub.RestaurantID)
	if err != nil {
		return nil, err
	}
	if !st.Enabled ||
		!contains(st.FulfillmentTypes, sub.Fulfillment) ||
		!contains(st.PaymentMethods, sub.PayMethod) {
		return nil, ErrOrderingDisabled
	}

	if sub.Name == "" || sub.Phone == "" {
		return nil, &ValidationError{Field: "contact", Msg: "name and phone are required"}
	}

	delivery := sub.Fulfillment == models.FulfillmentDelivery
	if delivery {
		if sub.Address == "" || sub.PostalCode == "" || sub.City == "" {
			return nil, &ValidationError{Field: "delivery", Msg: "delivery address is required"}
		}
	}

	var subtotal int64
	for _, l := range sub.Lines {
		subtotal += l.UnitPrice * int64(l.Quantity)
	}

	var fee int64
	if delivery {
		fee = st.DeliveryFee
	}

	// The minimum compares the subtotal alone; the delivery fee never counts
	// toward it.
	if subtotal < st.MinimumOrder {
		return nil, &BelowMinimumError{Minimum: st.MinimumOrder, Shortfall: st.MinimumOrder - subtotal}
	}

	est := st.EstPickupMinutes
	if delivery {
		est = st.EstDeliveryMinutes
	}

	now := s.now()
	order := &models.Order{
		OrderID:      uuid.NewString(),
		RestaurantID: sub.RestaurantID,
		Name:         sub.Name,
		Phone:        sub.Phone,
		Email:        sub.Email,
		Fulfillment:  sub.Fulfillment,
		PayMethod:    sub.PayMethod,
		Subtotal:     subtotal,
		DeliveryFee:  fee,
		Total:        subtotal + fee,
		Notes:        sub.Notes,
		EstMinutes:   est,
		Status:       models.StatusNew,
		PayStatus:    models.PaymentPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if delivery {
		order.Address = sub.Address
		order.PostalCode = sub.PostalCode
		order.City = sub.City
	}

	items := make([]models.OrderItem, 0, len(sub.Lines))
	for _, l := range sub.Lines {
		items = append(items, models.OrderItem{
			OrderID:    order.OrderID,
			MenuItemID: l.MenuItemID,
			Name:       l.Name,
			UnitPrice:  l.UnitPrice,
			Quantity:   l.Quantity,
			Notes:      l.Notes,
		})
	}

	if err := s.store.CreateWithItems(ctx, order, items); err != nil {
		return nil, err
	}
	return order, nil
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
