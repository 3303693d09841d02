package mysql

import (
	"context"
	"errors"
	"log"

	"canteen-service/internal/domain"
	"canteen-service/internal/repository"

	"gorm.io/gorm"
)

type menuRepo struct {
	db *gorm.DB
}

func NewMenuRepository(db *gorm.DB) repository.MenuRepository {
	return &menuRepo{db: db}
}

func (r *menuRepo) List(ctx context.Context, availableOnly bool) ([]domain.MenuItem, error) {
	var out []domain.MenuItem
	q := r.db.WithContext(ctx).Order("name ASC")
	if availableOnly {
		q = q.Where("is_available = ?", true)
	}
	if err := q.Find(&out).Error; err != nil {
		log.Printf("menu List error: %v", err)
		return nil, err
	}
	return out, nil
}

func (r *menuRepo) FindByID(ctx context.Context, id string) (*domain.MenuItem, error) {
	var item domain.MenuItem
	if err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

func (r *menuRepo) Save(ctx context.Context, item *domain.MenuItem) error {
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		log.Printf("menu save error: %v", err)
		return err
	}
	return nil
}

func (r *menuRepo) Update(ctx context.Context, item *domain.MenuItem) error {
	result := r.db.WithContext(ctx).
		Model(&domain.MenuItem{}).
		Where("id = ?", item.ID).
		Updates(map[string]interface{}{
			"name":         item.Name,
			"price":        item.Price,
			"image_url":    item.ImageURL,
			"is_veg":       item.IsVeg,
			"is_available": item.IsAvailable,
		})
	if result.Error != nil {
		log.Printf("menu update error: %v", result.Error)
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrMenuItemNotFound
	}
	return nil
}

func (r *menuRepo) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&domain.MenuItem{}, "id = ?", id)
	if result.Error != nil {
		log.Printf("menu delete error: %v", result.Error)
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrMenuItemNotFound
	}
	return nil
}
