package services

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"canteen-service/internal/domain"
	"canteen-service/internal/repository"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

const (
	menuCacheKeyAll       = "menu:all"
	menuCacheKeyAvailable = "menu:available"
	menuCacheTTL          = 30 * time.Second
)

type MenuService struct {
	repo        repository.MenuRepository
	redisClient *redis.Client
}

func NewMenuService(repo repository.MenuRepository) *MenuService {
	return &MenuService{repo: repo}
}

func (s *MenuService) SetRedisClient(client *redis.Client) {
	s.redisClient = client
}

// List returns the menu ordered by name. The list is cached briefly;
// every staff mutation invalidates the cache.
func (s *MenuService) List(ctx context.Context, availableOnly bool) ([]domain.MenuItem, error) {
	cacheKey := menuCacheKeyAll
	if availableOnly {
		cacheKey = menuCacheKeyAvailable
	}

	if s.redisClient != nil {
		cached, err := s.redisClient.Get(ctx, cacheKey).Result()
		if err == nil {
			var items []domain.MenuItem
			if err := json.Unmarshal([]byte(cached), &items); err == nil {
				return items, nil
			}
		}
	}

	items, err := s.repo.List(ctx, availableOnly)
	if err != nil {
		return nil, &domain.PersistenceError{Op: "list menu", Err: err}
	}

	if s.redisClient != nil {
		if data, err := json.Marshal(items); err == nil {
			s.redisClient.Set(ctx, cacheKey, data, menuCacheTTL)
		}
	}

	return items, nil
}

// Create adds a menu item. The price bound is enforced here, at the
// store boundary, not only in the staff form.
func (s *MenuService) Create(ctx context.Context, session domain.Session, item domain.MenuItem) (*domain.MenuItem, error) {
	if !session.IsStaff() {
		return nil, domain.ErrForbidden
	}
	if !domain.ValidMenuPrice(item.Price) {
		return nil, &domain.PriceOutOfRangeError{Price: item.Price}
	}

	item.ID = uuid.NewString()
	if err := s.repo.Save(ctx, &item); err != nil {
		return nil, &domain.PersistenceError{Op: "create menu item", Err: err}
	}
	s.invalidateCache(ctx)
	return &item, nil
}

func (s *MenuService) Update(ctx context.Context, session domain.Session, item domain.MenuItem) error {
	if !session.IsStaff() {
		return domain.ErrForbidden
	}
	if !domain.ValidMenuPrice(item.Price) {
		return &domain.PriceOutOfRangeError{Price: item.Price}
	}

	if err := s.repo.Update(ctx, &item); err != nil {
		return &domain.PersistenceError{Op: "update menu item", Err: err}
	}
	s.invalidateCache(ctx)
	return nil
}

// Delete removes an item permanently. Historic orders are unaffected:
// they carry their own item snapshots.
func (s *MenuService) Delete(ctx context.Context, session domain.Session, id string) error {
	if !session.IsStaff() {
		return domain.ErrForbidden
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return &domain.PersistenceError{Op: "delete menu item", Err: err}
	}
	s.invalidateCache(ctx)
	return nil
}

func (s *MenuService) invalidateCache(ctx context.Context) {
	if s.redisClient == nil {
		return
	}
	if err := s.redisClient.Del(ctx, menuCacheKeyAll, menuCacheKeyAvailable).Err(); err != nil {
		log.Printf("menu cache invalidation failed: %v", err)
	}
}
