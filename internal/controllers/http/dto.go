package http

import (
	"time"

	"canteen-service/internal/domain"
)

type OrderItemRequest struct {
	ID       string `json:"id" binding:"required"`
	Name     string `json:"name" binding:"required"`
	Quantity int    `json:"quantity" binding:"required,min=1"`
	Price    int64  `json:"price" binding:"required,min=0"`
}

type SubmitOrderRequest struct {
	Items         []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
	OrderType     string             `json:"order_type" binding:"required,oneof=INSTANT SCHEDULED"`
	PickupTime    *time.Time         `json:"pickup_time,omitempty"`
	PaymentMethod string             `json:"payment_method" binding:"required,oneof=ONLINE OFFLINE"`
}

// Cart builds the ephemeral cart the submission flow consumes.
func (r SubmitOrderRequest) Cart() *domain.Cart {
	cart := domain.NewCart()
	for _, it := range r.Items {
		cart.Add(domain.OrderItem{
			ID:       it.ID,
			Name:     it.Name,
			Quantity: it.Quantity,
			Price:    it.Price,
		})
	}
	return cart
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=preparing ready completed"`
}

type MenuItemRequest struct {
	Name        string `json:"name" binding:"required"`
	Price       int64  `json:"price" binding:"required"`
	ImageURL    string `json:"image_url"`
	IsVeg       bool   `json:"is_veg"`
	IsAvailable bool   `json:"is_available"`
}
