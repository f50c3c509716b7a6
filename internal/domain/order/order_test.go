package order

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testItems() []Item {
	return []Item{
		{ProductID: uuid.New(), Name: "Paracetamol 500mg", UnitPrice: decimal.NewFromInt(25), Quantity: 2},
		{ProductID: uuid.New(), Name: "Vitamin D3", UnitPrice: decimal.NewFromInt(299), Quantity: 1},
	}
}

func createTestOrder(t *testing.T) *Order {
	o, err := NewOrder(uuid.New(), testItems(), "221B Baker Street", "555-0142")
	require.NoError(t, err)
	return o
}

func TestStatus_IsValid(t *testing.T) {
	tests := []struct {
		status  Status
		isValid bool
	}{
		{StatusPending, true},
		{StatusConfirmed, true},
		{StatusProcessing, true},
		{StatusShipped, true},
		{StatusDelivered, true},
		{StatusCancelled, true},
		{Status("refunded"), false},
		{Status(""), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.isValid, tt.status.IsValid())
		})
	}
}

func TestNewOrder(t *testing.T) {
	userID := uuid.New()
	o, err := NewOrder(userID, testItems(), "221B Baker Street", "555-0142")
	require.NoError(t, err)

	assert.Equal(t, userID, o.UserID)
	assert.Equal(t, StatusPending, o.Status)
	assert.True(t, o.TotalAmount.Equal(decimal.NewFromInt(349)), "25*2 + 299 = 349, got %s", o.TotalAmount)
	assert.Equal(t, 3, o.ItemCount())
	assert.Nil(t, o.TrackingNumber)

	// History is seeded with exactly one pending entry
	require.Len(t, o.StatusHistory, 1)
	seed := o.StatusHistory[0]
	assert.Equal(t, StatusPending, seed.Status)
	assert.Equal(t, "Order placed successfully", seed.Note)

	// Delivery estimate is six days out
	expected := time.Now().AddDate(0, 0, 6)
	assert.WithinDuration(t, expected, o.EstimatedDelivery, time.Minute)
}

func TestNewOrder_Validation(t *testing.T) {
	items := testItems()

	_, err := NewOrder(uuid.Nil, items, "addr", "phone")
	assert.Error(t, err)

	_, err = NewOrder(uuid.New(), nil, "addr", "phone")
	assert.Error(t, err)

	_, err = NewOrder(uuid.New(), items, "", "phone")
	assert.Error(t, err)

	_, err = NewOrder(uuid.New(), items, "addr", "")
	assert.Error(t, err)

	bad := []Item{{ProductID: uuid.New(), Name: "x", UnitPrice: decimal.NewFromInt(10), Quantity: 0}}
	_, err = NewOrder(uuid.New(), bad, "addr", "phone")
	assert.Error(t, err)
}

func TestNewOrder_CopiesItems(t *testing.T) {
	items := testItems()
	o, err := NewOrder(uuid.New(), items, "addr", "phone")
	require.NoError(t, err)

	items[0].Quantity = 99

	assert.Equal(t, 2, o.Items[0].Quantity, "order items are snapshots, not references")
}

func TestOrder_ApplyStatus(t *testing.T) {
	o := createTestOrder(t)

	err := o.ApplyStatus(StatusShipped, "On its way", "admin", "TRACK123")
	require.NoError(t, err)

	assert.Equal(t, StatusShipped, o.Status)
	require.NotNil(t, o.TrackingNumber)
	assert.Equal(t, "TRACK123", *o.TrackingNumber)

	require.Len(t, o.StatusHistory, 2)
	entry := o.CurrentHistoryEntry()
	assert.Equal(t, StatusShipped, entry.Status)
	assert.Equal(t, "On its way", entry.Note)
	assert.Equal(t, "admin", entry.UpdatedBy)
}

func TestOrder_ApplyStatus_Defaults(t *testing.T) {
	o := createTestOrder(t)

	err := o.ApplyStatus(StatusConfirmed, "", "", "")
	require.NoError(t, err)

	entry := o.CurrentHistoryEntry()
	assert.Equal(t, "Order status updated to confirmed", entry.Note)
	assert.Equal(t, "system", entry.UpdatedBy)
	assert.Nil(t, o.TrackingNumber, "empty tracking number leaves the field untouched")
}

func TestOrder_ApplyStatus_AnyTransitionAccepted(t *testing.T) {
	// The lifecycle is deliberately permissive: any status may follow any
	// other, including re-entry and backwards moves.
	o := createTestOrder(t)

	require.NoError(t, o.ApplyStatus(StatusDelivered, "", "", ""))
	require.NoError(t, o.ApplyStatus(StatusPending, "", "", ""))
	require.NoError(t, o.ApplyStatus(StatusPending, "", "", ""))

	assert.Equal(t, StatusPending, o.Status)
	assert.Len(t, o.StatusHistory, 4)
}

func TestOrder_ApplyStatus_SequenceLeavesConsistentHistory(t *testing.T) {
	o := createTestOrder(t)

	require.NoError(t, o.ApplyStatus(StatusConfirmed, "", "admin", ""))
	require.NoError(t, o.ApplyStatus(StatusCancelled, "customer request", "admin", ""))

	assert.Equal(t, StatusCancelled, o.Status)
	require.Len(t, o.StatusHistory, 3)
	assert.Equal(t, o.Status, o.CurrentHistoryEntry().Status,
		"current status always equals the last appended entry")
	assert.True(t, o.IsCancelled())
}

func TestOrder_ApplyStatus_RejectsUnknownStatus(t *testing.T) {
	o := createTestOrder(t)

	err := o.ApplyStatus(Status("lost"), "", "", "")
	assert.Error(t, err)
	assert.Len(t, o.StatusHistory, 1)
	assert.Equal(t, StatusPending, o.Status)
}

func TestOrder_ApplyStatus_KeepsPreviousTrackingNumber(t *testing.T) {
	o := createTestOrder(t)

	require.NoError(t, o.ApplyStatus(StatusShipped, "", "", "TRACK123"))
	require.NoError(t, o.ApplyStatus(StatusDelivered, "", "", ""))

	require.NotNil(t, o.TrackingNumber)
	assert.Equal(t, "TRACK123", *o.TrackingNumber)
}

func TestFilterByStatus(t *testing.T) {
	orders := []*Order{
		{Status: StatusPending},
		{Status: StatusShipped},
		{Status: StatusPending},
		{Status: StatusCancelled},
	}

	pending := FilterByStatus(orders, "pending")
	assert.Len(t, pending, 2)

	shipped := FilterByStatus(orders, "shipped")
	assert.Len(t, shipped, 1)

	all := FilterByStatus(orders, "all")
	assert.Equal(t, orders, all)

	unfiltered := FilterByStatus(orders, "")
	assert.Equal(t, orders, unfiltered)

	none := FilterByStatus(orders, "delivered")
	assert.Empty(t, none)
}
