package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name string
		from OrderStatus
		to   OrderStatus
		ok   bool
	}{
		{"queued to preparing", StatusQueued, StatusPreparing, true},
		{"preparing to ready", StatusPreparing, StatusReady, true},
		{"ready to completed", StatusReady, StatusCompleted, true},
		{"queued cannot skip to ready", StatusQueued, StatusReady, false},
		{"queued cannot skip to completed", StatusQueued, StatusCompleted, false},
		{"preparing cannot skip to completed", StatusPreparing, StatusCompleted, false},
		{"no backward move", StatusReady, StatusPreparing, false},
		{"no backward to queued", StatusPreparing, StatusQueued, false},
		{"completed is terminal", StatusCompleted, StatusQueued, false},
		{"no self transition", StatusPreparing, StatusPreparing, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.ok, CanTransition(tt.from, tt.to))
		})
	}
}

func TestNextStatus(t *testing.T) {
	next, ok := NextStatus(StatusQueued)
	assert.True(t, ok)
	assert.Equal(t, StatusPreparing, next)

	_, ok = NextStatus(StatusCompleted)
	assert.False(t, ok)
}

func TestOrderItemsTotals(t *testing.T) {
	items := OrderItems{
		{ID: "A", Name: "Samosa", Quantity: 2, Price: 50},
		{ID: "B", Name: "Tea", Quantity: 1, Price: 60},
	}
	assert.Equal(t, int64(160), items.TotalAmount())
	assert.Equal(t, 3, items.TotalQuantity())
}

func TestOrderItemsScanRoundTrip(t *testing.T) {
	items := OrderItems{{ID: "A", Name: "Samosa", Quantity: 2, Price: 50}}

	v, err := items.Value()
	assert.NoError(t, err)

	var decoded OrderItems
	assert.NoError(t, decoded.Scan(v))
	assert.Equal(t, items, decoded)
}

func TestPaymentStatusFor(t *testing.T) {
	assert.Equal(t, PaymentPaid, PaymentStatusFor(PaymentOnline))
	assert.Equal(t, PaymentPayOnPickup, PaymentStatusFor(PaymentOffline))
}

func TestTimeSlotLabel(t *testing.T) {
	assert.Equal(t, "Instant Order", TimeSlotLabel(OrderTypeInstant, nil))

	pickup := time.Date(2026, 8, 31, 15, 30, 0, 0, time.Local)
	assert.Equal(t, "Scheduled: 03:30 PM", TimeSlotLabel(OrderTypeScheduled, &pickup))

	// A scheduled order with no pickup time falls back to instant.
	assert.Equal(t, "Instant Order", TimeSlotLabel(OrderTypeScheduled, nil))
}

func TestCart(t *testing.T) {
	cart := NewCart()
	assert.True(t, cart.IsEmpty())

	cart.Add(OrderItem{ID: "A", Name: "Samosa", Quantity: 2, Price: 50})
	cart.Add(OrderItem{ID: "B", Name: "Tea", Quantity: 1, Price: 60})
	assert.Equal(t, int64(160), cart.TotalAmount())

	// Adding the same item again bumps its quantity.
	cart.Add(OrderItem{ID: "B", Name: "Tea", Quantity: 1, Price: 60})
	assert.Equal(t, int64(220), cart.TotalAmount())

	// Decrementing to zero removes the entry entirely.
	cart.SetQuantity(OrderItem{ID: "B", Name: "Tea", Price: 60}, 0)
	snapshot := cart.Snapshot()
	assert.Len(t, snapshot, 1)
	assert.Equal(t, "A", snapshot[0].ID)

	cart.Clear()
	assert.True(t, cart.IsEmpty())
}

func TestCartSnapshotIsCopy(t *testing.T) {
	cart := NewCart()
	cart.Add(OrderItem{ID: "A", Name: "Samosa", Quantity: 2, Price: 50})

	snapshot := cart.Snapshot()
	cart.Clear()

	assert.Len(t, snapshot, 1, "snapshot must survive cart mutation")
}
