package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	OrderStatusPending   = "pending"
	OrderStatusCompleted = "completed"
	OrderStatusReturned  = "returned"
	OrderStatusCancelled = "cancelled"
)

// OrderItem is a point-in-time snapshot of a product as it was sold.
// Later edits to the live Product do not touch it.
type OrderItem struct {
	ProductID  string  `bson:"id" json:"id"`
	Title      string  `bson:"title" json:"title"`
	Quantity   int     `bson:"quantity" json:"quantity"`
	UnitPrice  float64 `bson:"unit_price" json:"unitPrice"`
	TotalPrice float64 `bson:"total_price" json:"totalPrice"`
	Category   string  `bson:"category" json:"category"`
}

type Order struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	InvoiceNo     string             `bson:"invoice_no" json:"invoiceNo"`
	Subtotal      float64            `bson:"subtotal" json:"subtotal"`
	Tax           float64            `bson:"tax" json:"tax"`
	Discount      float64            `bson:"discount" json:"discount"`
	Total         float64            `bson:"total" json:"total"`
	ItemsSummary  []OrderItem        `bson:"items_summary" json:"itemsSummary"`
	CustomerName  string             `bson:"customer_name" json:"customerName"`
	PaymentMethod string             `bson:"payment_method" json:"paymentMethod"`
	CashierName   string             `bson:"cashier_name" json:"cashierName"`
	Status        string             `bson:"status" json:"status"`
	Notes         string             `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt     time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updated_at" json:"updatedAt"`
}

// CartItem is one line of an incoming sale.
type CartItem struct {
	ID       string  `json:"id" binding:"required"`
	Title    string  `json:"title" binding:"required"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
	Category string  `json:"category"`
}

type OrderInput struct {
	Items         []CartItem `json:"items" binding:"required"`
	InvoiceNo     string     `json:"invoiceNo"`
	Tax           float64    `json:"tax"`
	Discount      float64    `json:"discount"`
	Status        string     `json:"status"`
	CustomerName  string     `json:"customerName"`
	PaymentMethod string     `json:"paymentMethod"`
	CashierName   string     `json:"cashierName"`
	Notes         string     `json:"notes"`
}
