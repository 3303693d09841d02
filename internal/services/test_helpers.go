package services

import (
	"time"

	"canteen-service/internal/domain"
)

func CreateTestOrder(id string, userID string, tokenNumber int64, status domain.OrderStatus) *domain.Order {
	items := domain.OrderItems{
		{ID: "A", Name: "Samosa", Quantity: 2, Price: 50},
		{ID: "B", Name: "Tea", Quantity: 1, Price: 60},
	}
	return &domain.Order{
		ID:            id,
		TokenNumber:   tokenNumber,
		UserID:        userID,
		Items:         items,
		TotalAmount:   items.TotalAmount(),
		Status:        status,
		OrderType:     domain.OrderTypeInstant,
		TimeSlot:      domain.TimeSlotInstant,
		PaymentMethod: domain.PaymentOffline,
		PaymentStatus: domain.PaymentPayOnPickup,
		CreatedAt:     time.Now(),
	}
}

func CreateTestCart() *domain.Cart {
	cart := domain.NewCart()
	cart.Add(domain.OrderItem{ID: "A", Name: "Samosa", Quantity: 2, Price: 50})
	cart.Add(domain.OrderItem{ID: "B", Name: "Tea", Quantity: 1, Price: 60})
	return cart
}

const (
	TestUserID   = "user-1"
	TestStaffID  = "staff-1"
	TestOrderID  = "order-1"
	TestTotal    = int64(160)
	TestTokenNum = int64(7)
	TestEstimate = "Your order will be ready in approximately 10-15 minutes"
)

func CustomerSession() domain.Session {
	return domain.Session{UserID: TestUserID, Role: domain.RoleCustomer}
}

func StaffSession() domain.Session {
	return domain.Session{UserID: TestStaffID, Role: domain.RoleStaff}
}
