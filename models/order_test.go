package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func sampleItems() []OrderItem {
	return []OrderItem{
		{ProductID: primitive.NewObjectID(), Name: "Brass Diya", Qty: 2, Price: 10.005, Image: "/images/diya.jpg"},
		{ProductID: primitive.NewObjectID(), Name: "Incense Pack", Qty: 1, Price: 5, Image: "/images/incense.jpg"},
	}
}

func sampleAddress() ShippingAddress {
	return ShippingAddress{Address: "12 MG Road", City: "Pune", PostalCode: "411001", Country: "India"}
}

func TestNewOrderRejectsEmptyItems(t *testing.T) {
	_, err := NewOrder(primitive.NewObjectID(), nil, sampleAddress(), "Paypal", 0, 0, 0, 0)
	assert.ErrorIs(t, err, ErrNoOrderItems)

	_, err = NewOrder(primitive.NewObjectID(), []OrderItem{}, sampleAddress(), "Paypal", 0, 0, 0, 0)
	assert.ErrorIs(t, err, ErrNoOrderItems)
}

func TestNewOrderDefaults(t *testing.T) {
	userID := primitive.NewObjectID()
	order, err := NewOrder(userID, sampleItems(), sampleAddress(), "CoD", 25.01, 2.5, 10, 37.51)
	require.NoError(t, err)

	assert.False(t, order.ID.IsZero())
	assert.Equal(t, userID, order.UserID)
	assert.False(t, order.IsPaid)
	assert.Nil(t, order.PaidAt)
	assert.Nil(t, order.PaymentResult)
	assert.False(t, order.IsDelivered)
	assert.Nil(t, order.DeliveredAt)
	assert.False(t, order.IsShipped)
	assert.Nil(t, order.ShippedAt)
	assert.Nil(t, order.Courier)
	assert.Equal(t, 37.51, order.TotalPrice)
}

func TestMarkPaidOverwritesOnRepeat(t *testing.T) {
	order, err := NewOrder(primitive.NewObjectID(), sampleItems(), sampleAddress(), "Paypal", 25.01, 0, 0, 25.01)
	require.NoError(t, err)

	first := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	order.MarkPaid(PaymentResult{ID: "PAY1", Status: "COMPLETED", UpdateTime: "a@b.com"}, first)

	assert.True(t, order.IsPaid)
	require.NotNil(t, order.PaidAt)
	assert.Equal(t, first, *order.PaidAt)
	assert.Equal(t, "PAY1", order.PaymentResult.ID)
	assert.Equal(t, "a@b.com", order.PaymentResult.UpdateTime)

	second := first.Add(time.Hour)
	order.MarkPaid(PaymentResult{ID: "PAY2", Status: "COMPLETED", UpdateTime: "c@d.com"}, second)

	assert.True(t, order.IsPaid)
	assert.Equal(t, second, *order.PaidAt)
	assert.Equal(t, "PAY2", order.PaymentResult.ID)
	assert.Equal(t, "c@d.com", order.PaymentResult.UpdateTime)
}

func TestDeliverAndShipDoNotDependOnPaid(t *testing.T) {
	order, err := NewOrder(primitive.NewObjectID(), sampleItems(), sampleAddress(), "CoD", 25.01, 0, 0, 25.01)
	require.NoError(t, err)

	now := time.Now()
	order.MarkDelivered(now)
	order.MarkShipped(now)

	assert.True(t, order.IsDelivered)
	assert.True(t, order.IsShipped)
	assert.False(t, order.IsPaid, "delivery and shipment must leave the paid flag alone")
	assert.Nil(t, order.PaidAt)
}

func TestSetCourierDetailsOverwritesAllFields(t *testing.T) {
	order, err := NewOrder(primitive.NewObjectID(), sampleItems(), sampleAddress(), "Paypal", 25.01, 0, 0, 25.01)
	require.NoError(t, err)

	now := time.Now()
	order.SetCourierDetails(CourierDetails{
		AWBNumber:   "AWB123",
		CourierName: "Delhivery",
		Label:       "https://labels.example/AWB123.pdf",
		OrderID:     "ORD-1",
		ShipmentID:  "SHP-1",
		Status:      "BOOKED",
	}, now)

	require.NotNil(t, order.Courier)
	assert.Equal(t, "Delhivery", order.Courier.CourierName)

	// A second write with only one field set blanks the rest, no merge.
	order.SetCourierDetails(CourierDetails{AWBNumber: "AWB999"}, now.Add(time.Minute))

	assert.Equal(t, "AWB999", order.Courier.AWBNumber)
	assert.Empty(t, order.Courier.CourierName)
	assert.Empty(t, order.Courier.Label)
	assert.Empty(t, order.Courier.OrderID)
	assert.Empty(t, order.Courier.ShipmentID)
	assert.Empty(t, order.Courier.Status)
}
