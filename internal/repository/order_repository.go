package repository

import (
	"context"

	"canteen-service/internal/domain"
)

type OrderRepository interface {
	Save(ctx context.Context, order *domain.Order) error
	FindByID(ctx context.Context, id string) (*domain.Order, error)
	// FindByUserID returns the user's orders newest first.
	FindByUserID(ctx context.Context, userID string) ([]domain.Order, error)
	// FindActive returns non-completed orders oldest first, the
	// first-in-first-served staff queue ordering.
	FindActive(ctx context.Context) ([]domain.Order, error)
	CountActive(ctx context.Context) (int64, error)
	// UpdateStatus writes only the status column, keyed by id.
	UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) error
}
