package domain

import "time"

// Receipt snapshots the billing details of a completed submission so it
// stays readable even if the order row is ever purged.
type Receipt struct {
	ID            string        `json:"id" gorm:"primaryKey;type:char(36)"`
	ReceiptID     string        `json:"receipt_id" gorm:"uniqueIndex;not null"`
	OrderID       string        `json:"order_id" gorm:"uniqueIndex;not null"`
	UserID        string        `json:"user_id" gorm:"not null;index"`
	TokenNumber   int64         `json:"token_number" gorm:"not null"`
	Items         OrderItems    `json:"items" gorm:"type:json;not null"`
	TotalAmount   int64         `json:"total_amount" gorm:"not null"`
	PaymentMethod PaymentMethod `json:"payment_method" gorm:"not null"`
	PaymentStatus PaymentStatus `json:"payment_status" gorm:"not null"`
	CreatedAt     time.Time     `json:"created_at" gorm:"autoCreateTime"`
}

func (Receipt) TableName() string {
	return "receipts"
}
