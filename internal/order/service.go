package order

import (
	"context"
	"fmt"

	"github.com/dukerupert/dukanam/internal/model"
)

// Backend is the part of the API orders need.
type Backend interface {
	CustomerOrders(ctx context.Context, userID int64) ([]model.Order, error)
	StoreOrders(ctx context.Context, storeID int64) ([]model.Order, error)
	UpdateOrderStatus(ctx context.Context, orderID int64, status model.OrderStatus) error
}

type Service struct {
	backend Backend
}

func NewService(backend Backend) *Service {
	return &Service{backend: backend}
}

// List returns the orders relevant to u: a store owner's incoming orders,
// or a customer's own.
func (s *Service) List(ctx context.Context, u model.AuthUser) ([]model.Order, error) {
	if u.IsStoreOwner() {
		if u.StoreID == nil {
			return nil, fmt.Errorf("list orders: store id not found, log in as a store owner")
		}
		return s.backend.StoreOrders(ctx, *u.StoreID)
	}
	return s.backend.CustomerOrders(ctx, u.UserID)
}

// UpdateStatus sends one status change request. No transition check is
// made here.
func (s *Service) UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error {
	return s.backend.UpdateOrderStatus(ctx, orderID, status)
}
