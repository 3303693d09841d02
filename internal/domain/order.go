package domain

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

type OrderStatus string

const (
	StatusQueued    OrderStatus = "queued"
	StatusPreparing OrderStatus = "preparing"
	StatusReady     OrderStatus = "ready"
	StatusCompleted OrderStatus = "completed"
)

type OrderType string

const (
	OrderTypeInstant   OrderType = "INSTANT"
	OrderTypeScheduled OrderType = "SCHEDULED"
)

type PaymentMethod string

const (
	PaymentOnline  PaymentMethod = "ONLINE"
	PaymentOffline PaymentMethod = "OFFLINE"
)

type PaymentStatus string

const (
	PaymentPaid        PaymentStatus = "PAID"
	PaymentPayOnPickup PaymentStatus = "PAY_ON_PICKUP"
)

// TimeSlotInstant is the fixed time-slot label for instant orders.
const TimeSlotInstant = "Instant Order"

type OrderItem struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Price    int64  `json:"price"`
}

// OrderItems is the item snapshot taken at creation, stored as a JSON
// column so historic orders never reference live menu rows.
type OrderItems []OrderItem

func (items OrderItems) Value() (driver.Value, error) {
	return json.Marshal(items)
}

func (items *OrderItems) Scan(value interface{}) error {
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, items)
	case string:
		return json.Unmarshal([]byte(v), items)
	case nil:
		*items = nil
		return nil
	default:
		return errors.New("unsupported type for OrderItems")
	}
}

// TotalAmount is the sum of price x quantity over the snapshot.
func (items OrderItems) TotalAmount() int64 {
	var total int64
	for _, it := range items {
		total += it.Price * int64(it.Quantity)
	}
	return total
}

func (items OrderItems) TotalQuantity() int {
	var n int
	for _, it := range items {
		n += it.Quantity
	}
	return n
}

type Order struct {
	ID                string        `json:"id" gorm:"primaryKey;type:char(36)"`
	TokenNumber       int64         `json:"token_number" gorm:"not null"`
	UserID            string        `json:"user_id" gorm:"not null;index"`
	Items             OrderItems    `json:"items" gorm:"type:json;not null"`
	TotalAmount       int64         `json:"total_amount" gorm:"not null"`
	Status            OrderStatus   `json:"status" gorm:"type:enum('queued','preparing','ready','completed');default:'queued';index"`
	OrderType         OrderType     `json:"order_type" gorm:"type:enum('INSTANT','SCHEDULED');not null"`
	PickupTime        *time.Time    `json:"pickup_time,omitempty"`
	TimeSlot          string        `json:"time_slot" gorm:"not null"`
	EstimatedWaitTime string        `json:"estimated_wait_time,omitempty"`
	PaymentMethod     PaymentMethod `json:"payment_method" gorm:"type:enum('ONLINE','OFFLINE');not null"`
	PaymentStatus     PaymentStatus `json:"payment_status" gorm:"type:enum('PAID','PAY_ON_PICKUP');not null"`
	CreatedAt         time.Time     `json:"created_at" gorm:"autoCreateTime;index"`
}

func (Order) TableName() string {
	return "orders"
}

// NextStatus returns the unique successor in the lifecycle, or false
// when the status is terminal.
func NextStatus(s OrderStatus) (OrderStatus, bool) {
	switch s {
	case StatusQueued:
		return StatusPreparing, true
	case StatusPreparing:
		return StatusReady, true
	case StatusReady:
		return StatusCompleted, true
	default:
		return "", false
	}
}

// CanTransition reports whether from -> to is the single legal step.
// The lifecycle is monotonic: no backward moves, no skipping.
func CanTransition(from, to OrderStatus) bool {
	next, ok := NextStatus(from)
	return ok && next == to
}

// PaymentStatusFor pairs the payment status with the chosen method:
// paying online settles immediately, offline settles at pickup.
func PaymentStatusFor(m PaymentMethod) PaymentStatus {
	if m == PaymentOnline {
		return PaymentPaid
	}
	return PaymentPayOnPickup
}

// TimeSlotLabel derives the human-readable slot shown on tickets.
func TimeSlotLabel(orderType OrderType, pickupTime *time.Time) string {
	if orderType == OrderTypeScheduled && pickupTime != nil {
		return "Scheduled: " + pickupTime.Format("03:04 PM")
	}
	return TimeSlotInstant
}
