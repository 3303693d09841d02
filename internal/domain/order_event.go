package domain

import "time"

type OrderCreatedEvent struct {
	OrderID     string    `json:"order_id"`
	TokenNumber int64     `json:"token_number"`
	UserID      string    `json:"user_id"`
	TotalAmount int64     `json:"total_amount"`
	OrderType   OrderType `json:"order_type"`
	TimeSlot    string    `json:"time_slot"`
	CreatedAt   time.Time `json:"created_at"`
}

type OrderStatusUpdatedEvent struct {
	OrderID     string      `json:"order_id"`
	TokenNumber int64       `json:"token_number"`
	UserID      string      `json:"user_id"`
	Status      OrderStatus `json:"status"`
	UpdatedAt   time.Time   `json:"updated_at"`
}
