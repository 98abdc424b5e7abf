package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OrderStatus is the fulfilment state of an order.
type OrderStatus string

const (
	OrderProcessing OrderStatus = "Processing"
	OrderShipped    OrderStatus = "Shipped"
	OrderDelivered  OrderStatus = "Delivered"
)

// Next returns the status an order moves to when processed.
// Delivered is terminal and maps to itself.
func (s OrderStatus) Next() OrderStatus {
	switch s {
	case OrderProcessing:
		return OrderShipped
	default:
		return OrderDelivered
	}
}

// ShippingInfo is the delivery address of an order.
type ShippingInfo struct {
	Address string `bson:"address" json:"address" binding:"required"`
	City    string `bson:"city" json:"city" binding:"required"`
	State   string `bson:"state" json:"state" binding:"required"`
	Country string `bson:"country" json:"country" binding:"required"`
	PinCode int    `bson:"pinCode" json:"pinCode" binding:"required"`
}

// OrderItem is one product line in an order.
type OrderItem struct {
	Name      string             `bson:"name" json:"name"`
	Photo     string             `bson:"photo" json:"photo"`
	Price     float64            `bson:"price" json:"price"`
	Quantity  int                `bson:"quantity" json:"quantity"`
	ProductID primitive.ObjectID `bson:"productId" json:"productId" swaggertype:"string"`
}

// Order is a placed order. User holds the uid of the customer.
type Order struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	ShippingInfo    ShippingInfo       `bson:"shippingInfo" json:"shippingInfo"`
	User            string             `bson:"user" json:"user"`
	UserName        string             `bson:"userName,omitempty" json:"userName,omitempty"`
	Subtotal        float64            `bson:"subtotal" json:"subtotal"`
	Tax             float64            `bson:"tax" json:"tax"`
	ShippingCharges float64            `bson:"shippingCharges" json:"shippingCharges"`
	Discount        float64            `bson:"discount" json:"discount"`
	Total           float64            `bson:"total" json:"total"`
	Status          OrderStatus        `bson:"status" json:"status"`
	OrderItems      []OrderItem        `bson:"orderItems" json:"orderItems"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// ProductIDs returns the hex ids of the ordered products, in item order.
func (o *Order) ProductIDs() []string {
	ids := make([]string, 0, len(o.OrderItems))
	for _, item := range o.OrderItems {
		ids = append(ids, item.ProductID.Hex())
	}
	return ids
}

// OrderTotals aggregates a set of orders.
type OrderTotals struct {
	Count           int64   `bson:"count"`
	Total           float64 `bson:"total"`
	Discount        float64 `bson:"discount"`
	ShippingCharges float64 `bson:"shippingCharges"`
	Tax             float64 `bson:"tax"`
}
