package models

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrNoOrderItems is returned when an order is created without any line items.
var ErrNoOrderItems = errors.New("no order items")

type OrderItem struct {
	ProductID primitive.ObjectID `bson:"product" json:"product"`
	Name      string             `bson:"name" json:"name"`
	Qty       int                `bson:"qty" json:"qty"`
	Price     float64            `bson:"price" json:"price"`
	Image     string             `bson:"image" json:"image"`
}

type ShippingAddress struct {
	Address    string `bson:"address" json:"address"`
	City       string `bson:"city" json:"city"`
	PostalCode string `bson:"postalCode" json:"postalCode"`
	Country    string `bson:"country" json:"country"`
}

// PaymentResult holds the payment confirmation payload as supplied by the
// caller. UpdateTime carries the payer email address, matching what the
// storefront frontend sends after a PayPal capture.
type PaymentResult struct {
	ID         string `bson:"id" json:"id"`
	Status     string `bson:"status" json:"status"`
	UpdateTime string `bson:"update_time" json:"update_time"`
}

// CourierDetails is the shipment tracking metadata pushed by an admin after
// booking the parcel with the courier aggregator.
type CourierDetails struct {
	AWBNumber   string `bson:"awb_number" json:"awb_number"`
	CourierName string `bson:"courier_name" json:"courier_name"`
	Label       string `bson:"label" json:"label"`
	OrderID     string `bson:"order_id" json:"order_id"`
	ShipmentID  string `bson:"shipment_id" json:"shipment_id"`
	Status      string `bson:"status" json:"status"`
}

type Order struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID          primitive.ObjectID `bson:"user" json:"userId"`
	OrderItems      []OrderItem        `bson:"orderItems" json:"orderItems"`
	ShippingAddress ShippingAddress    `bson:"shippingAddress" json:"shippingAddress"`
	PaymentMethod   string             `bson:"paymentMethod" json:"paymentMethod"`
	ItemsPrice      float64            `bson:"itemsPrice" json:"itemsPrice"`
	TaxPrice        float64            `bson:"taxPrice" json:"taxPrice"`
	ShippingPrice   float64            `bson:"shippingPrice" json:"shippingPrice"`
	TotalPrice      float64            `bson:"totalPrice" json:"totalPrice"`
	IsPaid          bool               `bson:"isPaid" json:"isPaid"`
	PaidAt          *time.Time         `bson:"paidAt,omitempty" json:"paidAt,omitempty"`
	PaymentResult   *PaymentResult     `bson:"paymentResult,omitempty" json:"paymentResult,omitempty"`
	IsDelivered     bool               `bson:"isDelivered" json:"isDelivered"`
	DeliveredAt     *time.Time         `bson:"deliveredAt,omitempty" json:"deliveredAt,omitempty"`
	IsShipped       bool               `bson:"isShipped" json:"isShipped"`
	ShippedAt       *time.Time         `bson:"shippedAt,omitempty" json:"shippedAt,omitempty"`
	Courier         *CourierDetails    `bson:"courier,omitempty" json:"courier,omitempty"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// NewOrder builds an unpaid, unshipped, undelivered order owned by userID.
// Items, address, and the price breakdown are locked in at creation.
func NewOrder(userID primitive.ObjectID, items []OrderItem, addr ShippingAddress, paymentMethod string, itemsPrice, taxPrice, shippingPrice, totalPrice float64) (*Order, error) {
	if len(items) == 0 {
		return nil, ErrNoOrderItems
	}

	now := time.Now()
	return &Order{
		ID:              primitive.NewObjectID(),
		UserID:          userID,
		OrderItems:      items,
		ShippingAddress: addr,
		PaymentMethod:   paymentMethod,
		ItemsPrice:      itemsPrice,
		TaxPrice:        taxPrice,
		ShippingPrice:   shippingPrice,
		TotalPrice:      totalPrice,
		CreatedAt:       now,
		UpdatedAt:       now,
	}, nil
}

// MarkPaid records a payment confirmation. Re-invoking overwrites paidAt and
// the stored payment result; the paid flag never goes back to false.
func (o *Order) MarkPaid(result PaymentResult, now time.Time) {
	o.IsPaid = true
	o.PaidAt = &now
	o.PaymentResult = &result
	o.UpdatedAt = now
}

// MarkDelivered flags the order delivered. Does not require the order to be
// paid or shipped first; the three status dimensions are independent.
func (o *Order) MarkDelivered(now time.Time) {
	o.IsDelivered = true
	o.DeliveredAt = &now
	o.UpdatedAt = now
}

// MarkShipped flags the order shipped. Independent of the paid status.
func (o *Order) MarkShipped(now time.Time) {
	o.IsShipped = true
	o.ShippedAt = &now
	o.UpdatedAt = now
}

// SetCourierDetails replaces all courier tracking fields as one unit,
// last write wins. Omitted fields in the incoming details blank out any
// previously stored values.
func (o *Order) SetCourierDetails(details CourierDetails, now time.Time) {
	o.Courier = &details
	o.UpdatedAt = now
}
