package mysql

import (
	"context"
	"errors"
	"log"

	"canteen-service/internal/domain"
	"canteen-service/internal/repository"

	"gorm.io/gorm"
)

type receiptRepo struct {
	db *gorm.DB
}

func NewReceiptRepository(db *gorm.DB) repository.ReceiptRepository {
	return &receiptRepo{db: db}
}

func (r *receiptRepo) Save(ctx context.Context, receipt *domain.Receipt) error {
	if err := r.db.WithContext(ctx).Create(receipt).Error; err != nil {
		log.Printf("receipt save error: %v", err)
		return err
	}
	return nil
}

func (r *receiptRepo) FindByOrderID(ctx context.Context, orderID string) (*domain.Receipt, error) {
	var rec domain.Receipt
	if err := r.db.WithContext(ctx).First(&rec, "order_id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}
