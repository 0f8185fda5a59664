package orders

import (
	"context"
	"errors"

	"tavolo/models"
)

var ErrTerminal = errors.New("order is in a terminal status")

// Storage is what the dashboard service needs from the order store.
type Storage interface {
	ByID(ctx context.Context, orderID string) (*models.Order, error)
	ItemsFor(ctx context.Context, orderID string) ([]models.OrderItem, error)
	ByRestaurant(ctx context.Context, restaurantID string, status models.OrderStatus, limit, skip int64) ([]models.Order, error)
	SetStatus(ctx context.Context, orderID string, to models.OrderStatus) error
}

// Service drives the staff-side fulfillment state machine.
type Service struct {
	store Storage
}

func NewService(store Storage) *Service {
	return &Service{store: store}
}

func (s *Service) List(ctx context.Context, restaurantID string, status models.OrderStatus, limit, skip int64) ([]models.Order, error) {
	return s.store.ByRestaurant(ctx, restaurantID, status, limit, skip)
}

func (s *Service) Get(ctx context.Context, restaurantID, orderID string) (*models.Order, []models.OrderItem, error) {
	o, err := s.store.ByID(ctx, orderID)
	if err != nil {
		return nil, nil, err
	}
	if o.RestaurantID != restaurantID {
		return nil, nil, ErrNotFound
	}
	items, err := s.store.ItemsFor(ctx, orderID)
	if err != nil {
		return nil, nil, err
	}
	return o, items, nil
}

// Advance moves the order to the single successor of its current status.
// The successor is computed server-side from the stored status, so the
// dashboard cannot skip ahead or move backwards. Two concurrent advances
// read the same current status and both write the same successor; last
// write wins and no optimistic lock is taken.
func (s *Service) Advance(ctx context.Context, restaurantID, orderID string) (*models.Order, error) {
	o, err := s.store.ByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o.RestaurantID != restaurantID {
		return nil, ErrNotFound
	}

	next, ok := NextStatus(o.Status)
	if !ok {
		return nil, ErrTerminal
	}
	if err := s.store.SetStatus(ctx, orderID, next); err != nil {
		return nil, err
	}
	o.Status = next
	return o, nil
}

// Cancel moves any non-terminal order to cancelled.
func (s *Service) Cancel(ctx context.Context, restaurantID, orderID string) (*models.Order, error) {
	o, err := s.store.ByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o.RestaurantID != restaurantID {
		return nil, ErrNotFound
	}
	if !CanCancel(o.Status) {
		return nil, ErrTerminal
	}
	if err := s.store.SetStatus(ctx, orderID, models.StatusCancelled); err != nil {
		return nil, err
	}
	o.Status = models.StatusCancelled
	return o, nil
}
