package repository

import (
	"context"

	"canteen-service/internal/domain"
)

type MenuRepository interface {
	// List returns items ordered by name, optionally only those
	// currently available.
	List(ctx context.Context, availableOnly bool) ([]domain.MenuItem, error)
	FindByID(ctx context.Context, id string) (*domain.MenuItem, error)
	Save(ctx context.Context, item *domain.MenuItem) error
	Update(ctx context.Context, item *domain.MenuItem) error
	Delete(ctx context.Context, id string) error
}
