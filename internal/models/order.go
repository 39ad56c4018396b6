package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Order statuses. Orders move between these in place; there is no archived
// state, deletion is physical.
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusDelivered = "delivered"
	StatusCancelled = "cancelled"
)

// Order types: retail vs wholesale.
const (
	OrderTypeRetail    = "minorista"
	OrderTypeWholesale = "mayorista"
)

// ItemOption is a priced, quantified variant of a line item, e.g. the "5 KG"
// SKU of a product.
type ItemOption struct {
	Name     string  `bson:"name" json:"name"`
	Price    float64 `bson:"price" json:"price"`
	Quantity int     `bson:"quantity" json:"quantity"`
}

type OrderItem struct {
	ID      string       `bson:"id,omitempty" json:"id,omitempty"`
	Name    string       `bson:"name" json:"name"`
	Options []ItemOption `bson:"options" json:"options"`
}

// OrderUser is a denormalized snapshot of the purchaser taken at order time.
// UserID may be empty for guest orders; email is then the only stable identity.
type OrderUser struct {
	UserID   string `bson:"userId,omitempty" json:"userId,omitempty"`
	Name     string `bson:"name" json:"name"`
	LastName string `bson:"lastName" json:"lastName"`
	Email    string `bson:"email" json:"email"`
}

type Address struct {
	Address          string `bson:"address" json:"address"`
	City             string `bson:"city" json:"city"`
	Phone            string `bson:"phone" json:"phone"`
	BetweenStreets   string `bson:"betweenStreets,omitempty" json:"betweenStreets,omitempty"`
	FloorNumber      string `bson:"floorNumber,omitempty" json:"floorNumber,omitempty"`
	DepartmentNumber string `bson:"departmentNumber,omitempty" json:"departmentNumber,omitempty"`
}

// Order is the persisted order document. Total is expected to be close to
// subTotal+shippingPrice but drift is tolerated, never enforced here.
type Order struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Status        string             `bson:"status" json:"status"`
	Total         float64            `bson:"total" json:"total"`
	SubTotal      float64            `bson:"subTotal" json:"subTotal"`
	ShippingPrice float64            `bson:"shippingPrice" json:"shippingPrice"`
	PaymentMethod string             `bson:"paymentMethod" json:"paymentMethod"`
	OrderType     string             `bson:"orderType" json:"orderType"`
	Notes         string             `bson:"notes,omitempty" json:"notes,omitempty"`
	NotesOwn      string             `bson:"notesOwn,omitempty" json:"notesOwn,omitempty"`
	Address       Address            `bson:"address" json:"address"`
	User          OrderUser          `bson:"user" json:"user"`
	Items         []OrderItem        `bson:"items" json:"items"`
	DeliveryDay   time.Time          `bson:"deliveryDay" json:"deliveryDay"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
}

func ValidStatus(status string) bool {
	switch status {
	case StatusPending, StatusConfirmed, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

func ValidOrderType(orderType string) bool {
	return orderType == OrderTypeRetail || orderType == OrderTypeWholesale
}
