package repository

import (
	"context"

	"canteen-service/internal/domain"
)

type ReceiptRepository interface {
	Save(ctx context.Context, receipt *domain.Receipt) error
	FindByOrderID(ctx context.Context, orderID string) (*domain.Receipt, error)
}
